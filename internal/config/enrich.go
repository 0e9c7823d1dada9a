package config

// EnrichConfig holds the third-party movie database settings for the
// data-entry/enrichment surface.
type EnrichConfig struct {
	TMDBAPIKey    string
	TMDBBaseURL   string
	OMDBAPIKey    string
	OMDBBaseURL   string
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string
	TimeoutMS     int
}

// DefaultEnrichConfig reads the API keys and model settings from the
// environment.
func DefaultEnrichConfig() EnrichConfig {
	return EnrichConfig{
		TMDBAPIKey:    getEnv("TMDB_API_KEY", ""),
		TMDBBaseURL:   getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		OMDBAPIKey:    getEnv("OMDB_API_KEY", ""),
		OMDBBaseURL:   getEnv("OMDB_BASE_URL", "http://www.omdbapi.com"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1/models"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash-lite-001"),
		TimeoutMS:     getEnvInt("ENRICH_TIMEOUT_MS", 10000),
	}
}

// TMDBEnabled reports whether TMDb calls are configured.
func (c *EnrichConfig) TMDBEnabled() bool { return c.TMDBAPIKey != "" }

// OMDBEnabled reports whether OMDb calls are configured.
func (c *EnrichConfig) OMDBEnabled() bool { return c.OMDBAPIKey != "" }

// GeminiEnabled reports whether the generative text endpoint is configured.
func (c *EnrichConfig) GeminiEnabled() bool { return c.GeminiAPIKey != "" }
