package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reeltrivia/internal/model"
)

func TestNewFilterContextClamping(t *testing.T) {
	t.Run("zero values open the full range", func(t *testing.T) {
		f := NewFilterContext(1990, 2020, 0, 0, nil, nil)
		assert.Equal(t, 1990, f.MinYear)
		assert.Equal(t, 2020, f.MaxYear)
	})

	t.Run("out of range values are clamped", func(t *testing.T) {
		f := NewFilterContext(1990, 2020, 1900, 2099, nil, nil)
		assert.Equal(t, 1990, f.MinYear)
		assert.Equal(t, 2020, f.MaxYear)
	})

	t.Run("inverted bounds are swapped", func(t *testing.T) {
		f := NewFilterContext(1990, 2020, 2010, 2000, nil, nil)
		assert.Equal(t, 2000, f.MinYear)
		assert.Equal(t, 2010, f.MaxYear)
	})
}

func TestFilterContextWiden(t *testing.T) {
	f := NewFilterContext(1990, 2020, 2004, 2006, nil, nil)

	assert.True(t, f.Widen(2))
	assert.Equal(t, 2002, f.MinYear)
	assert.Equal(t, 2008, f.MaxYear)

	// Widening keeps going until both sides hit the absolute bounds.
	for f.Widen(2) {
	}
	assert.Equal(t, 1990, f.MinYear)
	assert.Equal(t, 2020, f.MaxYear)
	assert.False(t, f.Widen(2))

	f.ResetBounds()
	assert.Equal(t, 2004, f.MinYear)
	assert.Equal(t, 2006, f.MaxYear)
}

func TestFilterContextMatches(t *testing.T) {
	prod := func(year int, genres []string, franchise string) *model.Production {
		return &model.Production{
			ID:          "tt1",
			Title:       "Test",
			GenreIDs:    genres,
			Franchise:   franchise,
			ReleaseDate: date(year, 6, 1),
		}
	}

	t.Run("year range", func(t *testing.T) {
		f := NewFilterContext(1990, 2020, 2000, 2005, nil, nil)
		assert.True(t, f.Matches(prod(2003, nil, "")))
		assert.False(t, f.Matches(prod(2006, nil, "")))
		assert.False(t, f.Matches(&model.Production{ID: "tt2", Title: "No Date"}))
	})

	t.Run("genre selection", func(t *testing.T) {
		f := NewFilterContext(1990, 2020, 0, 0, []string{"28", "12"}, nil)
		assert.True(t, f.Matches(prod(2000, []string{"12"}, "")))
		assert.False(t, f.Matches(prod(2000, []string{"35"}, "")))
	})

	t.Run("franchise selection including unlabeled", func(t *testing.T) {
		f := NewFilterContext(1990, 2020, 0, 0, nil, []string{"Saga", ""})
		assert.True(t, f.Matches(prod(2000, nil, "Saga")))
		assert.True(t, f.Matches(prod(2000, nil, "")))
		assert.False(t, f.Matches(prod(2000, nil, "Orbit")))
	})
}

func TestUsedMemoryResets(t *testing.T) {
	m := NewUsedMemory()
	key := model.QuestionKey{ActorID: "nm1", ProductionID: "tt1", Character: "Neo"}

	m.MarkQuestion(key)
	m.MarkFranchise("Saga")
	m.MarkRankingActor("nm1")

	assert.True(t, m.QuestionUsed(key))
	assert.True(t, m.FranchiseUsed("Saga"))
	assert.True(t, m.RankingActorUsed("nm1"))

	m.ResetFranchises()
	m.ResetRankingActors()

	// Question identities survive the round-boundary resets.
	assert.True(t, m.QuestionUsed(key))
	assert.False(t, m.FranchiseUsed("Saga"))
	assert.False(t, m.RankingActorUsed("nm1"))
}
