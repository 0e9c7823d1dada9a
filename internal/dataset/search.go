package dataset

import (
	"math"
	"sort"
	"strings"

	"reeltrivia/internal/model"
)

// Sort keys accepted by Search.
const (
	SortByActorName       = "actorName"
	SortByProductionTitle = "productionTitle"
	SortByCharacter       = "character"
	SortByAgeAtStart      = "ageAtStart"
)

// SearchParams are the live controls of the search tool. A single age bound
// pins the other to the same value; inverted bounds are swapped.
type SearchParams struct {
	Query      string
	AgeLower   *int
	AgeUpper   *int
	SortKey    string
	Descending bool
}

// SearchResult is one joined, de-duplicated row of the search tool.
type SearchResult struct {
	ActorName       string `json:"actorName"`
	ProductionTitle string `json:"productionTitle"`
	Character       string `json:"character"`
	AgeAtStart      int    `json:"ageAtStart"`
	AgeAtEnd        int    `json:"ageAtEnd"`
}

// Search joins roles against actors and productions and filters by free-text
// query and the age-at-filming window. Rows missing a birthday or a
// production start date are skipped. Results are de-duplicated by
// (actor id, production id, character).
func (t *Tables) Search(p SearchParams) []SearchResult {
	lower, upper := ageWindow(p.AgeLower, p.AgeUpper)
	query := strings.ToLower(strings.TrimSpace(p.Query))

	var results []SearchResult
	seen := make(map[model.QuestionKey]struct{})

	for _, role := range t.Roles {
		actor, ok := t.Actor(role.ActorID, role.ActorName)
		if !ok {
			continue
		}
		prod, ok := t.Productions[role.ProductionID]
		if !ok || actor.Birthday == nil || prod.ProductionStart == nil {
			continue
		}

		if query != "" {
			haystack := strings.ToLower(actor.Name + " " + role.Character + " " + prod.Franchise + " " + prod.Title)
			if !strings.Contains(haystack, query) {
				continue
			}
		}

		start := *prod.ProductionStart
		end := start
		if prod.ProductionEnd != nil {
			end = *prod.ProductionEnd
		}
		ageAtStart := model.AgeAt(*actor.Birthday, start)
		ageAtEnd := model.AgeAt(*actor.Birthday, end)
		if !(lower <= ageAtEnd && ageAtStart <= upper) {
			continue
		}

		key := role.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		results = append(results, SearchResult{
			ActorName:       role.ActorName,
			ProductionTitle: role.ProductionTitle,
			Character:       role.Character,
			AgeAtStart:      ageAtStart,
			AgeAtEnd:        ageAtEnd,
		})
	}

	sortResults(results, p.SortKey, p.Descending)
	return results
}

func ageWindow(lower, upper *int) (int, int) {
	switch {
	case lower != nil && upper == nil:
		return *lower, *lower
	case lower == nil && upper != nil:
		return *upper, *upper
	case lower != nil && upper != nil:
		lo, hi := *lower, *upper
		if lo > hi {
			lo, hi = hi, lo
		}
		return lo, hi
	default:
		return 0, math.MaxInt
	}
}

func sortResults(results []SearchResult, key string, descending bool) {
	less := func(a, b SearchResult) bool {
		switch key {
		case SortByAgeAtStart:
			return a.AgeAtStart < b.AgeAtStart
		case SortByProductionTitle:
			return strings.ToLower(a.ProductionTitle) < strings.ToLower(b.ProductionTitle)
		case SortByCharacter:
			return strings.ToLower(a.Character) < strings.ToLower(b.Character)
		default:
			return strings.ToLower(a.ActorName) < strings.ToLower(b.ActorName)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		if descending {
			return less(results[j], results[i])
		}
		return less(results[i], results[j])
	})
}
