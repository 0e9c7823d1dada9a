package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"reeltrivia/internal/config"
)

// ErrMovieNotFound is terminal: OMDb does not know the id and retrying
// cannot change that.
var ErrMovieNotFound = errors.New("movie not found on OMDb")

const (
	omdbRetries      = 5
	omdbInitialDelay = 500 * time.Millisecond
)

// OMDBClient fetches critic rating and US box office from the OMDb API.
type OMDBClient struct {
	cfg    config.EnrichConfig
	client *http.Client

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

func NewOMDBClient(cfg config.EnrichConfig) *OMDBClient {
	return &OMDBClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		sleep: time.Sleep,
	}
}

// Rating is the OMDb result for one title.
type Rating struct {
	IMDbRating string `json:"imdbRating"`
	BoxOffice  string `json:"BoxOffice"`
}

// Rating fetches rating and box office for an IMDb id, retrying transient
// failures with exponential backoff. Responses missing either field count as
// failures and are retried; "Movie not found!" is surfaced immediately.
func (c *OMDBClient) Rating(ctx context.Context, imdbID string) (*Rating, error) {
	delay := omdbInitialDelay
	var lastErr error

	for attempt := 1; attempt <= omdbRetries; attempt++ {
		rating, err := c.fetch(ctx, imdbID)
		if err == nil {
			return rating, nil
		}
		if errors.Is(err, ErrMovieNotFound) || ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
		if attempt < omdbRetries {
			c.sleep(delay)
			delay *= 2
		}
	}
	return nil, fmt.Errorf("omdb failed after %d attempts: %w", omdbRetries, lastErr)
}

func (c *OMDBClient) fetch(ctx context.Context, imdbID string) (*Rating, error) {
	q := url.Values{"i": {imdbID}, "apikey": {c.cfg.OMDBAPIKey}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.OMDBBaseURL+"/?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("omdb returned server error %d", resp.StatusCode)
	}

	var body struct {
		Response   string `json:"Response"`
		Error      string `json:"Error"`
		IMDbRating string `json:"imdbRating"`
		BoxOffice  string `json:"BoxOffice"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if body.Error == "Movie not found!" {
		return nil, ErrMovieNotFound
	}
	if body.Response != "True" ||
		body.IMDbRating == "" || body.IMDbRating == "N/A" ||
		body.BoxOffice == "" || body.BoxOffice == "N/A" {
		return nil, fmt.Errorf("omdb response missing required fields")
	}
	return &Rating{IMDbRating: body.IMDbRating, BoxOffice: body.BoxOffice}, nil
}
