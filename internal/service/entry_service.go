package service

import (
	"context"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"reeltrivia/internal/dataset"
	"reeltrivia/internal/enrich"
	"reeltrivia/internal/model"
)

// EntryService backs the data-entry surface: looking movies up in the
// external databases and editing the CSV tables.
type EntryService struct {
	tmdb     *enrich.TMDBClient
	omdb     *enrich.OMDBClient
	gemini   *enrich.GeminiClient
	enricher *enrich.Service

	actorsPath      string
	productionsPath string
	rolesPath       string
	log             logrus.FieldLogger
}

func NewEntryService(tmdb *enrich.TMDBClient, omdb *enrich.OMDBClient, gemini *enrich.GeminiClient, enricher *enrich.Service, dataDir string, log logrus.FieldLogger) *EntryService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &EntryService{
		tmdb:            tmdb,
		omdb:            omdb,
		gemini:          gemini,
		enricher:        enricher,
		actorsPath:      filepath.Join(dataDir, dataset.ActorsFile),
		productionsPath: filepath.Join(dataDir, dataset.ProductionsFile),
		rolesPath:       filepath.Join(dataDir, dataset.RolesFile),
		log:             log,
	}
}

// SearchMovies queries TMDb by title and optional year.
func (s *EntryService) SearchMovies(ctx context.Context, title, year string) ([]enrich.MovieSummary, error) {
	return s.tmdb.SearchMovie(ctx, title, year)
}

// Movie returns the assembled TMDb detail view for a TMDb movie id.
func (s *EntryService) Movie(ctx context.Context, tmdbID string) (*enrich.MovieDetails, error) {
	return s.tmdb.Movie(ctx, tmdbID)
}

// Cast returns the TMDb cast of a movie identified by IMDb id, each member
// with their own IMDb id resolved.
func (s *EntryService) Cast(ctx context.Context, imdbID string) ([]enrich.CastMember, error) {
	return s.tmdb.CastByIMDbID(ctx, imdbID)
}

// OMDbRating fetches critic rating and box office for an IMDb id.
func (s *EntryService) OMDbRating(ctx context.Context, imdbID string) (*enrich.Rating, error) {
	return s.omdb.Rating(ctx, imdbID)
}

// ProductionDates asks the generative endpoint for filming start and end.
func (s *EntryService) ProductionDates(ctx context.Context, imdbID, title, year string) (start, end string, err error) {
	return s.gemini.ProductionDates(ctx, imdbID, title, year)
}

// Production returns the raw CSV row for one production, nil when absent.
func (s *EntryService) Production(id string) (map[string]string, error) {
	return dataset.ReadProductionRow(s.productionsPath, id)
}

// SaveProduction writes one production row through the enrichment writer.
func (s *EntryService) SaveProduction(id string, fields map[string]string) error {
	return s.enricher.SaveProduction(id, fields)
}

// BulkUpdate refreshes production fields from the external databases.
func (s *EntryService) BulkUpdate(ctx context.Context, actions map[string]enrich.Action, all bool, emit func(enrich.Progress)) error {
	return s.enricher.BulkUpdate(ctx, actions, all, emit)
}

// KnownActors filters names down to those already in the actors table.
func (s *EntryService) KnownActors(names []string) ([]string, error) {
	return dataset.KnownActorNames(s.actorsPath, names)
}

// KnownRoles filters actor/character pairs down to those already on file.
func (s *EntryService) KnownRoles(pairs []dataset.RolePair) ([]dataset.RolePair, error) {
	return dataset.KnownRoles(s.rolesPath, pairs)
}

// RoleExists reports whether a character is already recorded for the
// production, with fuzzy matching over cast-list name variants.
func (s *EntryService) RoleExists(productionID, character string) (bool, error) {
	return dataset.RoleExists(s.rolesPath, productionID, character)
}

// AddActor resolves a person on TMDb by IMDb id and appends them to the
// actors table. Returns false when the id is already on file.
func (s *EntryService) AddActor(ctx context.Context, imdbID string) (bool, error) {
	person, err := s.tmdb.PersonByIMDbID(ctx, imdbID)
	if err != nil {
		return false, err
	}
	added, err := dataset.AppendActor(s.actorsPath, person.IMDbID, person.Name, person.Birthday)
	if err != nil {
		return false, err
	}
	if added {
		s.log.WithFields(logrus.Fields{"imdb_id": imdbID, "name": person.Name}).Info("actor added")
	}
	return added, nil
}

// AddRoles appends role rows, skipping exact duplicates. Returns the number
// of rows written.
func (s *EntryService) AddRoles(roles []model.Role) (int, error) {
	rows := make([][]string, len(roles))
	for i, r := range roles {
		rows[i] = []string{r.ActorID, r.ActorName, r.ProductionID, r.ProductionTitle, r.Character}
	}
	added, err := dataset.AppendRoles(s.rolesPath, rows)
	if err != nil {
		return 0, err
	}
	if added > 0 {
		s.log.WithField("added", added).Info("roles added")
	}
	return added, nil
}
