package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New creates the application logger: JSON output on stdout with the level
// taken from LOG_LEVEL.
func New(serviceName string) *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	log.SetOutput(os.Stdout)

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	log.AddHook(&serviceHook{service: serviceName})
	return log
}

// serviceHook stamps every entry with the service name.
type serviceHook struct {
	service string
}

func (h *serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *serviceHook) Fire(e *logrus.Entry) error {
	e.Data["service"] = h.service
	return nil
}
