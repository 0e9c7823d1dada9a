package config

import (
	"os"
	"strconv"
)

// Config is the server configuration, read once from the environment.
type Config struct {
	Port    string
	DataDir string

	CORSAllowedOrigins string
	CORSAllowedMethods string
	CORSAllowedHeaders string

	HostUsername string
	HostPassword string
	JWTSecret    string

	Enrich EnrichConfig
}

// Load reads the configuration from environment variables with development
// defaults.
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		DataDir:            getEnv("DATA_DIR", "./data"),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		CORSAllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET, POST, PUT, DELETE, OPTIONS"),
		CORSAllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type, Authorization"),
		HostUsername:       getEnv("HOST_USERNAME", "admin"),
		HostPassword:       getEnv("HOST_PASSWORD", "password123"),
		JWTSecret:          getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		Enrich:             DefaultEnrichConfig(),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
