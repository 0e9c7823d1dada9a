package game

import "reeltrivia/internal/model"

// FilterContext holds the active sampling constraints: an inclusive release
// year range plus optional genre and franchise selections. The year range may
// be widened temporarily while searching for a question; the player-chosen
// baseline is restored at every round boundary.
type FilterContext struct {
	MinYear int
	MaxYear int

	baseMinYear int
	baseMaxYear int
	absMinYear  int
	absMaxYear  int

	// Empty sets mean "all". Franchises may contain "" to select
	// productions that carry no franchise label.
	Genres     map[string]struct{}
	Franchises map[string]struct{}
}

// NewFilterContext clamps the requested year range to the absolute bounds
// derived from the dataset. Zero values select the full absolute range.
func NewFilterContext(absMin, absMax, minYear, maxYear int, genres, franchises []string) *FilterContext {
	if minYear == 0 || minYear < absMin {
		minYear = absMin
	}
	if maxYear == 0 || maxYear > absMax {
		maxYear = absMax
	}
	if minYear > maxYear {
		minYear, maxYear = maxYear, minYear
	}

	f := &FilterContext{
		MinYear:     minYear,
		MaxYear:     maxYear,
		baseMinYear: minYear,
		baseMaxYear: maxYear,
		absMinYear:  absMin,
		absMaxYear:  absMax,
		Genres:      make(map[string]struct{}, len(genres)),
		Franchises:  make(map[string]struct{}, len(franchises)),
	}
	for _, g := range genres {
		f.Genres[g] = struct{}{}
	}
	for _, fr := range franchises {
		f.Franchises[fr] = struct{}{}
	}
	return f
}

// Matches reports whether a production satisfies all active constraints.
func (f *FilterContext) Matches(p *model.Production) bool {
	year, ok := p.ReleaseYear()
	if !ok || year < f.MinYear || year > f.MaxYear {
		return false
	}
	if len(f.Genres) > 0 && !p.HasGenre(f.Genres) {
		return false
	}
	if len(f.Franchises) > 0 {
		if _, ok := f.Franchises[p.Franchise]; !ok {
			return false
		}
	}
	return true
}

// InYearRange checks only the release-year constraint.
func (f *FilterContext) InYearRange(p *model.Production) bool {
	year, ok := p.ReleaseYear()
	return ok && year >= f.MinYear && year <= f.MaxYear
}

// Widen relaxes the year range by step on each side, clamped to the absolute
// bounds. Returns false when the range was already fully open.
func (f *FilterContext) Widen(step int) bool {
	if f.MinYear <= f.absMinYear && f.MaxYear >= f.absMaxYear {
		return false
	}
	if f.MinYear -= step; f.MinYear < f.absMinYear {
		f.MinYear = f.absMinYear
	}
	if f.MaxYear += step; f.MaxYear > f.absMaxYear {
		f.MaxYear = f.absMaxYear
	}
	return true
}

// ResetBounds restores the player-chosen year range.
func (f *FilterContext) ResetBounds() {
	f.MinYear, f.MaxYear = f.baseMinYear, f.baseMaxYear
}
