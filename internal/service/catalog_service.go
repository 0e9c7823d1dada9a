package service

import (
	"sort"

	"reeltrivia/internal/dataset"
	"reeltrivia/internal/model"
)

// CatalogBounds is the absolute release-year span of the dataset.
type CatalogBounds struct {
	MinYear int `json:"minYear"`
	MaxYear int `json:"maxYear"`
}

// CatalogService serves the read-only dataset views behind the search tool
// and the game setup screen.
type CatalogService struct {
	tables *dataset.Tables
}

func NewCatalogService(tables *dataset.Tables) *CatalogService {
	return &CatalogService{tables: tables}
}

// Search runs a free-text and age-window query over the joined roles.
func (s *CatalogService) Search(p dataset.SearchParams) []dataset.SearchResult {
	return s.tables.Search(p)
}

// Genres returns the genre catalog with the major/minor split.
func (s *CatalogService) Genres() []model.Genre {
	return s.tables.Genres
}

// Bounds returns the release-year span available to the setup filters.
func (s *CatalogService) Bounds() CatalogBounds {
	return CatalogBounds{MinYear: s.tables.AbsoluteMinYear, MaxYear: s.tables.AbsoluteMaxYear}
}

// Franchises lists the distinct franchise names on file, sorted.
func (s *CatalogService) Franchises() []string {
	seen := make(map[string]struct{})
	for _, p := range s.tables.Productions {
		if p.Franchise != "" {
			seen[p.Franchise] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
