package app

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"reeltrivia/internal/cache"
	"reeltrivia/internal/config"
	"reeltrivia/internal/dataset"
	"reeltrivia/internal/enrich"
	"reeltrivia/internal/service"
	"reeltrivia/internal/transport/rest"
	"reeltrivia/internal/transport/ws"
)

// gameMaxIdle is how long an untouched game survives before the sweep
// collects it.
const gameMaxIdle = 2 * time.Hour

// App wires the dataset, services and transport together.
type App struct {
	Config  *config.Config
	Tables  *dataset.Tables
	Handler http.Handler

	GameService  *service.GameService
	EntryService *service.EntryService
}

// New loads the dataset and builds the full service graph. The production
// CSVs are normalized to fully-quoted form first so later row edits never
// change the file shape.
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	for _, name := range []string{dataset.ActorsFile, dataset.ProductionsFile, dataset.RolesFile} {
		path := filepath.Join(cfg.DataDir, name)
		if err := dataset.RewriteWithQuotes(path); err != nil {
			log.WithError(err).WithField("file", name).Warn("could not normalize table")
		}
	}

	tables, err := dataset.Load(cfg.DataDir, log)
	if err != nil {
		return nil, err
	}

	validate := validator.New()
	games := cache.NewGameCache(gameMaxIdle)

	tmdb := enrich.NewTMDBClient(cfg.Enrich)
	omdb := enrich.NewOMDBClient(cfg.Enrich)
	gemini := enrich.NewGeminiClient(cfg.Enrich)
	productionsPath := filepath.Join(cfg.DataDir, dataset.ProductionsFile)
	enricher := enrich.NewService(tmdb, omdb, gemini, productionsPath, log)

	authSvc := service.NewAuthService(cfg)
	catalogSvc := service.NewCatalogService(tables)
	gameSvc := service.NewGameService(tables, games, validate, log)
	entrySvc := service.NewEntryService(tmdb, omdb, gemini, enricher, cfg.DataDir, log)
	reportSvc := service.NewReportService(gameSvc)

	wsHub := ws.NewHub(log)
	gameSvc.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		Config:         cfg,
		AuthService:    authSvc,
		CatalogService: catalogSvc,
		GameService:    gameSvc,
		EntryService:   entrySvc,
		ReportService:  reportSvc,
		WSHub:          wsHub,
	})

	return &App{
		Config:       cfg,
		Tables:       tables,
		Handler:      router,
		GameService:  gameSvc,
		EntryService: entrySvc,
	}, nil
}
