package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"reeltrivia/internal/model"
)

// File names of the flat tables inside the data directory.
const (
	ActorsFile      = "actors.csv"
	ProductionsFile = "productions.csv"
	RolesFile       = "roles.csv"
	GenresFile      = "genres.csv"
)

// Release-year span used when no production has a parseable release date.
const (
	defaultMinYear = 1920
)

// majorGenreThreshold is the production count from which a genre counts as major.
const majorGenreThreshold = 10

// Tables holds the joined in-memory dataset. Read-only after Load.
type Tables struct {
	Actors      map[model.ActorKey]*model.Actor
	Productions map[string]*model.Production
	Roles       []model.Role
	Genres      []model.Genre

	AbsoluteMinYear int
	AbsoluteMaxYear int

	genreNames map[string]string
}

// Actor resolves the composite actor identity, id + display name.
func (t *Tables) Actor(id, name string) (*model.Actor, bool) {
	a, ok := t.Actors[model.ActorKey{ID: id, Name: name}]
	return a, ok
}

// GenreName returns the display name for a genre id, or the id itself when unknown.
func (t *Tables) GenreName(id string) string {
	if n, ok := t.genreNames[id]; ok {
		return n
	}
	return id
}

// Load reads the CSV tables from dir. Genres are optional; the three core
// tables must exist and yield at least one joined row.
func Load(dir string, log *logrus.Logger) (*Tables, error) {
	t := &Tables{
		Actors:      make(map[model.ActorKey]*model.Actor),
		Productions: make(map[string]*model.Production),
		genreNames:  make(map[string]string),
	}

	actorRows, err := readTable(filepath.Join(dir, ActorsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read actors: %w", err)
	}
	for _, row := range actorRows {
		a := &model.Actor{
			ID:       row.get("imdb_id"),
			Name:     row.get("name"),
			Birthday: parseDate(row.getPrefix("birthday")),
		}
		if a.ID == "" || a.Name == "" {
			continue
		}
		t.Actors[a.Key()] = a
	}

	prodRows, err := readTable(filepath.Join(dir, ProductionsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read productions: %w", err)
	}
	for _, row := range prodRows {
		p := &model.Production{
			ID:              row.get("imdb_id"),
			Title:           row.get("title"),
			Type:            row.get("type"),
			Franchise:       row.get("franchise"),
			GenreIDs:        splitGenreIDs(row.get("genre_ids")),
			ReleaseDate:     parseDate(row.get("release_date")),
			ProductionStart: parseDate(row.get("production_start")),
			ProductionEnd:   parseDate(row.get("production_end")),
			BoxOffice:       blankNA(row.get("box_office_us")),
			Rating:          blankNA(row.get("imdb_rating")),
			Poster:          row.get("poster"),
		}
		if p.ID == "" || p.Title == "" {
			continue
		}
		t.Productions[p.ID] = p
	}

	roleRows, err := readTable(filepath.Join(dir, RolesFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read roles: %w", err)
	}
	for _, row := range roleRows {
		r := model.Role{
			ActorID:         row.get("actor_imdb_id"),
			ActorName:       row.get("actor_name"),
			ProductionID:    row.get("production_imdb_id"),
			ProductionTitle: row.get("production_title"),
			Character:       row.get("character"),
		}
		if r.ActorID == "" || r.ProductionID == "" {
			continue
		}
		t.Roles = append(t.Roles, r)
	}

	if len(t.Actors) == 0 || len(t.Productions) == 0 || len(t.Roles) == 0 {
		return nil, fmt.Errorf("no valid data rows loaded from %s", dir)
	}

	// Genres table is optional.
	if genreRows, err := readTable(filepath.Join(dir, GenresFile)); err == nil {
		for _, row := range genreRows {
			id, name := row.get("id"), row.get("name")
			if id == "" {
				continue
			}
			t.genreNames[id] = name
		}
	} else if log != nil {
		log.WithError(err).Warn("genres table not loaded")
	}
	t.classifyGenres()
	t.computeYearBounds()

	if log != nil {
		log.WithFields(logrus.Fields{
			"actors":      len(t.Actors),
			"productions": len(t.Productions),
			"roles":       len(t.Roles),
			"genres":      len(t.Genres),
			"minYear":     t.AbsoluteMinYear,
			"maxYear":     t.AbsoluteMaxYear,
		}).Info("dataset loaded")
	}
	return t, nil
}

// computeYearBounds scans release years for the absolute filter range and
// falls back to a default span when nothing parses.
func (t *Tables) computeYearBounds() {
	minYear, maxYear := 0, 0
	for _, p := range t.Productions {
		y, ok := p.ReleaseYear()
		if !ok {
			continue
		}
		if minYear == 0 || y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}
	if minYear == 0 {
		minYear, maxYear = defaultMinYear, time.Now().Year()
	}
	t.AbsoluteMinYear, t.AbsoluteMaxYear = minYear, maxYear
}

// classifyGenres builds the genre list with the major/minor split used to
// populate the UI filters.
func (t *Tables) classifyGenres() {
	counts := make(map[string]int)
	for _, p := range t.Productions {
		for _, id := range p.GenreIDs {
			counts[id]++
		}
	}
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		t.Genres = append(t.Genres, model.Genre{
			ID:    id,
			Name:  t.GenreName(id),
			Major: counts[id] >= majorGenreThreshold,
		})
	}
}

// tableRow is one parsed CSV record with header-based access.
type tableRow struct {
	header map[string]int
	values []string
}

func (r tableRow) get(key string) string {
	i, ok := r.header[key]
	if !ok || i >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[i])
}

// getPrefix matches a header column by prefix; the actors table names its
// birthday column "birthday (YYYY-MM-DD)".
func (r tableRow) getPrefix(prefix string) string {
	for key, i := range r.header {
		if strings.HasPrefix(key, prefix) && i < len(r.values) {
			return strings.TrimSpace(r.values[i])
		}
	}
	return ""
}

func readTable(path string) ([]tableRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		header[strings.TrimSpace(h)] = i
	}
	rows := make([]tableRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, tableRow{header: header, values: rec})
	}
	return rows, nil
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "N/A") {
		return nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &d
}

func splitGenreIDs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

func blankNA(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "N/A") {
		return ""
	}
	return s
}
