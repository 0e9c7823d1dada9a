package enrich

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"reeltrivia/internal/dataset"
)

// Action is the per-field bulk update policy.
type Action string

const (
	ActionUpdateBlanks Action = "update-blanks"
	ActionOverwrite    Action = "overwrite"
)

// Fields the bulk update can touch, keyed by CSV column, grouped by source API.
var (
	tmdbFields   = []string{"release_date", "poster"}
	omdbFields   = []string{"imdb_rating", "box_office_us"}
	geminiFields = []string{"production_start", "production_end"}
)

// Progress is one bulk-update status line, streamed to the back-office UI.
type Progress struct {
	Message       string          `json:"message"`
	UpdatedFields []string        `json:"updatedFields"`
	APIsUsed      map[string]bool `json:"apisUsed"`
	Error         string          `json:"error,omitempty"`
}

// Service reconciles production rows against the third-party movie
// databases and writes the results back to the CSV file.
type Service struct {
	tmdb   *TMDBClient
	omdb   *OMDBClient
	gemini *GeminiClient

	productionsPath string
	mu              sync.Mutex // serializes CSV writes
	log             logrus.FieldLogger
}

func NewService(tmdb *TMDBClient, omdb *OMDBClient, gemini *GeminiClient, productionsPath string, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{tmdb: tmdb, omdb: omdb, gemini: gemini, productionsPath: productionsPath, log: log}
}

// SaveProduction writes one production row, creating it when the id is new.
func (s *Service) SaveProduction(id string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return dataset.UpsertProduction(s.productionsPath, id, fields)
}

// BulkUpdate walks every production row and refreshes the selected fields
// from TMDb, OMDb and Gemini according to the per-field action. When all is
// false only rows with at least one blank targeted field are touched. Each
// row produces one Progress emit; API failures skip the field and move on.
func (s *Service) BulkUpdate(ctx context.Context, actions map[string]Action, all bool, emit func(Progress)) error {
	rows, err := dataset.ReadRows(s.productionsPath)
	if err != nil {
		return fmt.Errorf("failed to read productions: %w", err)
	}

	targeted := targetedFields(actions)
	for _, row := range rows {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		id := row["imdb_id"]
		if id == "" {
			continue
		}
		if !all && !hasBlank(row, targeted) {
			continue
		}
		s.updateRow(ctx, row, actions, emit)
	}
	return nil
}

func (s *Service) updateRow(ctx context.Context, row map[string]string, actions map[string]Action, emit func(Progress)) {
	id, title := row["imdb_id"], row["title"]
	year := ""
	if len(row["release_date"]) >= 4 {
		year = row["release_date"][:4]
	}

	updates := make(map[string]string)
	apis := map[string]bool{"tmdb": false, "omdb": false, "gemini": false}

	if wantAny(row, actions, tmdbFields) && s.tmdb != nil {
		if details, err := s.tmdb.MovieByIMDbID(ctx, id); err == nil {
			if shouldSet(row, actions, "release_date") && details.ReleaseDate != "" {
				updates["release_date"] = details.ReleaseDate
			}
			if shouldSet(row, actions, "poster") && details.PosterPath != "" {
				updates["poster"] = "https://image.tmdb.org/t/p/w500" + details.PosterPath
			}
			apis["tmdb"] = len(updates) > 0
		} else {
			s.log.WithError(err).WithField("imdb_id", id).Warn("tmdb lookup failed")
		}
	}

	if wantAny(row, actions, omdbFields) && s.omdb != nil {
		if rating, err := s.omdb.Rating(ctx, id); err == nil {
			before := len(updates)
			if shouldSet(row, actions, "imdb_rating") {
				updates["imdb_rating"] = rating.IMDbRating
			}
			if shouldSet(row, actions, "box_office_us") {
				updates["box_office_us"] = rating.BoxOffice
			}
			apis["omdb"] = len(updates) > before
		} else {
			s.log.WithError(err).WithField("imdb_id", id).Warn("omdb lookup failed")
		}
	}

	if wantAny(row, actions, geminiFields) && s.gemini != nil {
		if start, end, err := s.gemini.ProductionDates(ctx, id, title, year); err == nil {
			before := len(updates)
			if shouldSet(row, actions, "production_start") && start != "" {
				updates["production_start"] = start
			}
			if shouldSet(row, actions, "production_end") && end != "" {
				updates["production_end"] = end
			}
			apis["gemini"] = len(updates) > before
		} else {
			s.log.WithError(err).WithField("imdb_id", id).Warn("gemini lookup failed")
		}
	}

	fields := make([]string, 0, len(updates))
	for f := range updates {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	if len(updates) > 0 {
		if err := s.SaveProduction(id, updates); err != nil {
			emit(Progress{Message: fmt.Sprintf("%s: write failed", title), Error: err.Error()})
			return
		}
	}

	msg := fmt.Sprintf("%s: no changes", title)
	if len(fields) > 0 {
		msg = fmt.Sprintf("%s: updated %s", title, strings.Join(fields, ", "))
	}
	emit(Progress{Message: msg, UpdatedFields: fields, APIsUsed: apis})
}

func targetedFields(actions map[string]Action) []string {
	fields := make([]string, 0, len(actions))
	for f := range actions {
		fields = append(fields, f)
	}
	return fields
}

func hasBlank(row map[string]string, fields []string) bool {
	for _, f := range fields {
		if v := strings.TrimSpace(row[f]); v == "" || strings.EqualFold(v, "N/A") {
			return true
		}
	}
	return false
}

func wantAny(row map[string]string, actions map[string]Action, fields []string) bool {
	for _, f := range fields {
		if shouldSet(row, actions, f) {
			return true
		}
	}
	return false
}

// shouldSet applies the per-field action: overwrite always writes,
// update-blanks only fills empty or N/A cells.
func shouldSet(row map[string]string, actions map[string]Action, field string) bool {
	switch actions[field] {
	case ActionOverwrite:
		return true
	case ActionUpdateBlanks:
		v := strings.TrimSpace(row[field])
		return v == "" || strings.EqualFold(v, "N/A")
	default:
		return false
	}
}
