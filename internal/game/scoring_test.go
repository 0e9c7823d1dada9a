package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reeltrivia/internal/model"
)

func choice(i int) model.Answer { return model.Answer{ChoiceIndex: &i} }
func slider(v int) model.Answer { return model.Answer{SliderValue: &v} }
func order(ids ...string) model.Answer {
	return model.Answer{Order: ids}
}

func TestScoreMultipleChoice(t *testing.T) {
	q := &model.MultipleChoice{
		Kind:         model.ArchetypeMultipleChoice,
		Prompt:       "Which character did Alice Gray play?",
		Choices:      []model.Choice{{Label: "A"}, {Label: "B", ActorName: "Ben", Age: 38}, {Label: "C"}, {Label: "D"}},
		CorrectIndex: 1,
		Points:       5,
	}

	t.Run("correct", func(t *testing.T) {
		res := Score(q, choice(1))
		assert.True(t, res.Correct)
		assert.Equal(t, 5, res.PointsAwarded)
		require.NotNil(t, res.CorrectIndex)
		assert.Equal(t, 1, *res.CorrectIndex)
		require.Len(t, res.Reveals, 4)
		assert.Equal(t, "Ben", res.Reveals[1].ActorName)
	})

	t.Run("wrong", func(t *testing.T) {
		res := Score(q, choice(0))
		assert.False(t, res.Correct)
		assert.Zero(t, res.PointsAwarded)
	})

	t.Run("no answer", func(t *testing.T) {
		res := Score(q, model.Answer{})
		assert.False(t, res.Correct)
		assert.Zero(t, res.PointsAwarded)
	})
}

func TestScorePlaceholder(t *testing.T) {
	q := model.NewPlaceholder()
	res := Score(q, choice(0))
	assert.True(t, res.Correct)
	assert.Zero(t, res.PointsAwarded)
}

func TestScoreSlider(t *testing.T) {
	q := &model.Slider{
		Kind:    model.ArchetypeSlider,
		Min:     20,
		Max:     40,
		Correct: 30,
		Points:  10,
	}

	tests := []struct {
		name       string
		value      int
		wantPoints int
		wantRight  bool
	}{
		{"exact", 30, 10, true},
		{"off by one low", 29, 7, false},
		{"off by one high", 31, 7, false},
		{"off by two", 32, 3, false},
		{"off by three", 27, 0, false},
		{"far off", 20, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Score(q, slider(tt.value))
			assert.Equal(t, tt.wantPoints, res.PointsAwarded)
			assert.Equal(t, tt.wantRight, res.Correct)
			require.NotNil(t, res.CorrectValue)
			assert.Equal(t, 30, *res.CorrectValue)
		})
	}

	t.Run("no answer", func(t *testing.T) {
		res := Score(q, model.Answer{})
		assert.Zero(t, res.PointsAwarded)
		assert.False(t, res.Correct)
	})
}

func TestScoreOrdering(t *testing.T) {
	q := &model.Ordering{
		Kind:         model.ArchetypeOrdering,
		Items:        []model.OrderingItem{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}},
		CorrectOrder: []string{"a", "b", "c", "d"},
		Points:       10,
	}

	t.Run("perfect", func(t *testing.T) {
		// 4 exact positions doubled, no swaps, plus the base two.
		res := Score(q, order("a", "b", "c", "d"))
		assert.Equal(t, 10, res.PointsAwarded)
		assert.True(t, res.Correct)
		assert.Equal(t, []string{"a", "b", "c", "d"}, res.CorrectOrder)
	})

	t.Run("one adjacent swap", func(t *testing.T) {
		// Two exact positions, one swap: 2*2 - 1 + 2.
		res := Score(q, order("b", "a", "c", "d"))
		assert.Equal(t, 5, res.PointsAwarded)
		assert.False(t, res.Correct)
	})

	t.Run("fully reversed", func(t *testing.T) {
		// Zero exact, six inversions: 0 - 6 + 2, floored at zero.
		res := Score(q, order("d", "c", "b", "a"))
		assert.Zero(t, res.PointsAwarded)
		assert.False(t, res.Correct)
	})

	t.Run("wrong length", func(t *testing.T) {
		res := Score(q, order("a", "b"))
		assert.Zero(t, res.PointsAwarded)
		assert.False(t, res.Correct)
	})

	t.Run("unknown id", func(t *testing.T) {
		res := Score(q, order("a", "b", "c", "x"))
		assert.Zero(t, res.PointsAwarded)
		assert.False(t, res.Correct)
	})
}

func TestAdjacentSwaps(t *testing.T) {
	assert.Equal(t, 0, adjacentSwaps([]int{0, 1, 2, 3}))
	assert.Equal(t, 1, adjacentSwaps([]int{1, 0, 2, 3}))
	assert.Equal(t, 6, adjacentSwaps([]int{3, 2, 1, 0}))
	assert.Equal(t, 3, adjacentSwaps([]int{1, 2, 3, 0}))
}
