package model

import (
	"strconv"
	"strings"
	"time"
)

// Production is a movie or show from the productions table.
type Production struct {
	ID              string     `json:"imdbId"`
	Title           string     `json:"title"`
	Type            string     `json:"type,omitempty"`
	Franchise       string     `json:"franchise,omitempty"`
	GenreIDs        []string   `json:"genreIds,omitempty"`
	ReleaseDate     *time.Time `json:"releaseDate,omitempty"`
	ProductionStart *time.Time `json:"productionStart,omitempty"`
	ProductionEnd   *time.Time `json:"productionEnd,omitempty"`
	BoxOffice       string     `json:"boxOffice,omitempty"` // currency string, empty when N/A
	Rating          string     `json:"rating,omitempty"`    // numeric string 1-10, empty when N/A
	Poster          string     `json:"poster,omitempty"`
}

// ReleaseYear returns the release year, false when the release date is missing.
func (p *Production) ReleaseYear() (int, bool) {
	if p.ReleaseDate == nil {
		return 0, false
	}
	return p.ReleaseDate.Year(), true
}

// BoxOfficeValue parses the box office currency string into a dollar amount.
func (p *Production) BoxOfficeValue() (int64, bool) {
	s := strings.TrimSpace(p.BoxOffice)
	if s == "" || strings.EqualFold(s, "N/A") {
		return 0, false
	}
	s = strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", "")
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// RatingValue parses the critic rating string.
func (p *Production) RatingValue() (float64, bool) {
	s := strings.TrimSpace(p.Rating)
	if s == "" || strings.EqualFold(s, "N/A") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// HasGenre reports whether the production carries any of the given genre ids.
func (p *Production) HasGenre(ids map[string]struct{}) bool {
	for _, g := range p.GenreIDs {
		if _, ok := ids[g]; ok {
			return true
		}
	}
	return false
}
