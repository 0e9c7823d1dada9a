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
	"reeltrivia/internal/model"
)

var ErrNotFound = errors.New("not found")

// TMDBClient talks to The Movie Database API.
type TMDBClient struct {
	cfg    config.EnrichConfig
	client *http.Client
}

func NewTMDBClient(cfg config.EnrichConfig) *TMDBClient {
	return &TMDBClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// MovieSummary is one search result.
type MovieSummary struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
	Overview    string `json:"overview"`
}

// CastMember is one credited cast entry, with the person's IMDb id resolved.
type CastMember struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
	IMDbID    string `json:"imdb_id,omitempty"`
}

// MovieDetails combines the detail, external-id, credits and certification
// lookups into the shape the data-entry UI works with.
type MovieDetails struct {
	Title         string        `json:"title"`
	ReleaseDate   string        `json:"release_date"`
	VoteAverage   float64       `json:"vote_average"`
	Revenue       int64         `json:"revenue"`
	IMDbID        string        `json:"imdb_id"`
	PosterPath    string        `json:"poster_path"`
	Overview      string        `json:"overview"`
	Genres        []model.Genre `json:"genres"`
	Runtime       int           `json:"runtime"`
	Cast          []CastMember  `json:"cast"`
	Certification string        `json:"rating"`
	MediaType     string        `json:"media_type"`
}

// SearchMovie queries by title with an optional release year.
func (c *TMDBClient) SearchMovie(ctx context.Context, title, year string) ([]MovieSummary, error) {
	q := url.Values{"query": {title}}
	if year != "" {
		q.Set("year", year)
	}
	var out struct {
		Results []MovieSummary `json:"results"`
	}
	if err := c.get(ctx, "/search/movie", q, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Genres fetches the movie genre catalog.
func (c *TMDBClient) Genres(ctx context.Context) ([]model.Genre, error) {
	var out struct {
		Genres []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"genres"`
	}
	if err := c.get(ctx, "/genre/movie/list", nil, &out); err != nil {
		return nil, err
	}
	genres := make([]model.Genre, len(out.Genres))
	for i, g := range out.Genres {
		genres[i] = model.Genre{ID: fmt.Sprint(g.ID), Name: g.Name}
	}
	return genres, nil
}

// Movie assembles the full detail view for a TMDb movie id: details,
// external ids, credits and the US certification.
func (c *TMDBClient) Movie(ctx context.Context, tmdbID string) (*MovieDetails, error) {
	var details struct {
		Title       string  `json:"title"`
		ReleaseDate string  `json:"release_date"`
		VoteAverage float64 `json:"vote_average"`
		Revenue     int64   `json:"revenue"`
		PosterPath  string  `json:"poster_path"`
		Overview    string  `json:"overview"`
		Runtime     int     `json:"runtime"`
		Genres      []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"genres"`
	}
	if err := c.get(ctx, "/movie/"+tmdbID, nil, &details); err != nil {
		return nil, err
	}

	var external struct {
		IMDbID string `json:"imdb_id"`
	}
	if err := c.get(ctx, "/movie/"+tmdbID+"/external_ids", nil, &external); err != nil {
		return nil, err
	}

	var credits struct {
		Cast []CastMember `json:"cast"`
	}
	if err := c.get(ctx, "/movie/"+tmdbID+"/credits", nil, &credits); err != nil {
		return nil, err
	}

	var releases struct {
		Results []struct {
			Country      string `json:"iso_3166_1"`
			ReleaseDates []struct {
				Certification string `json:"certification"`
			} `json:"release_dates"`
		} `json:"results"`
	}
	if err := c.get(ctx, "/movie/"+tmdbID+"/release_dates", nil, &releases); err != nil {
		return nil, err
	}
	certification := "N/A"
	for _, r := range releases.Results {
		if r.Country == "US" && len(r.ReleaseDates) > 0 {
			certification = r.ReleaseDates[0].Certification
			break
		}
	}

	md := &MovieDetails{
		Title:         details.Title,
		ReleaseDate:   details.ReleaseDate,
		VoteAverage:   details.VoteAverage,
		Revenue:       details.Revenue,
		IMDbID:        external.IMDbID,
		PosterPath:    details.PosterPath,
		Overview:      details.Overview,
		Runtime:       details.Runtime,
		Cast:          credits.Cast,
		Certification: certification,
		MediaType:     "movie",
	}
	for _, g := range details.Genres {
		md.Genres = append(md.Genres, model.Genre{ID: fmt.Sprint(g.ID), Name: g.Name})
	}
	return md, nil
}

// MovieByIMDbID resolves the TMDb movie id first, then assembles the same
// detail view as Movie.
func (c *TMDBClient) MovieByIMDbID(ctx context.Context, imdbID string) (*MovieDetails, error) {
	tmdbID, err := c.findMovieID(ctx, imdbID)
	if err != nil {
		return nil, err
	}
	return c.Movie(ctx, fmt.Sprint(tmdbID))
}

// CastByIMDbID resolves a movie by IMDb id and returns its cast with each
// member's IMDb id filled in through per-person external-id lookups.
func (c *TMDBClient) CastByIMDbID(ctx context.Context, imdbID string) ([]CastMember, error) {
	tmdbID, err := c.findMovieID(ctx, imdbID)
	if err != nil {
		return nil, err
	}

	var credits struct {
		Cast []CastMember `json:"cast"`
	}
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", tmdbID), nil, &credits); err != nil {
		return nil, err
	}

	for i := range credits.Cast {
		var ext struct {
			IMDbID string `json:"imdb_id"`
		}
		if err := c.get(ctx, fmt.Sprintf("/person/%d/external_ids", credits.Cast[i].ID), nil, &ext); err != nil {
			continue
		}
		credits.Cast[i].IMDbID = ext.IMDbID
	}
	return credits.Cast, nil
}

// Person holds the actor fields the dataset needs.
type Person struct {
	IMDbID   string `json:"imdb_id"`
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
}

// PersonByIMDbID resolves a person through the find endpoint and returns
// their name and birthday.
func (c *TMDBClient) PersonByIMDbID(ctx context.Context, imdbID string) (*Person, error) {
	var found struct {
		PersonResults []struct {
			ID int `json:"id"`
		} `json:"person_results"`
	}
	if err := c.get(ctx, "/find/"+imdbID, url.Values{"external_source": {"imdb_id"}}, &found); err != nil {
		return nil, err
	}
	if len(found.PersonResults) == 0 {
		return nil, ErrNotFound
	}

	var person struct {
		Name     string `json:"name"`
		Birthday string `json:"birthday"`
	}
	if err := c.get(ctx, fmt.Sprintf("/person/%d", found.PersonResults[0].ID), nil, &person); err != nil {
		return nil, err
	}
	return &Person{IMDbID: imdbID, Name: person.Name, Birthday: person.Birthday}, nil
}

func (c *TMDBClient) findMovieID(ctx context.Context, imdbID string) (int, error) {
	var found struct {
		MovieResults []struct {
			ID int `json:"id"`
		} `json:"movie_results"`
	}
	if err := c.get(ctx, "/find/"+imdbID, url.Values{"external_source": {"imdb_id"}}, &found); err != nil {
		return 0, err
	}
	if len(found.MovieResults) == 0 {
		return 0, ErrNotFound
	}
	return found.MovieResults[0].ID, nil
}

func (c *TMDBClient) get(ctx context.Context, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.cfg.TMDBAPIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.TMDBBaseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
