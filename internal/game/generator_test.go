package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reeltrivia/internal/model"
)

func TestGenerateRoleQuestion(t *testing.T) {
	g, _ := testGenerator(11)
	rc := RoundConfig{Kind: RoundRole, Points: 1, PerPlayer: 1}

	q := g.Generate(rc)
	mc, ok := q.(*model.MultipleChoice)
	require.True(t, ok)
	require.False(t, mc.Placeholder)

	assert.Equal(t, model.ArchetypeMultipleChoice, mc.Archetype())
	assert.Equal(t, 1, mc.Value())
	require.Len(t, mc.Choices, mcChoiceCount+1)

	// The correct choice is the character the keyed role actually played.
	assert.Equal(t, mc.Key.Character, mc.Choices[mc.CorrectIndex].Label)
	for i, c := range mc.Choices {
		if i != mc.CorrectIndex {
			assert.NotEqual(t, mc.Key.Character, c.Label)
		}
	}
}

func TestGenerateNeverRepeatsAFact(t *testing.T) {
	g, tables := testGenerator(12)
	rc := RoundConfig{Kind: RoundRole, Points: 1, PerPlayer: 1}

	seen := make(map[model.QuestionKey]struct{})
	total := len(tables.Roles)
	for i := 0; i < total; i++ {
		q := g.Generate(rc)
		mc, ok := q.(*model.MultipleChoice)
		require.True(t, ok)
		if mc.Placeholder {
			break
		}
		_, dup := seen[mc.Key]
		require.False(t, dup, "fact %v served twice", mc.Key)
		seen[mc.Key] = struct{}{}
	}
	require.NotEmpty(t, seen)

	// Once every role is spent only placeholders remain.
	for i := 0; i < total; i++ {
		g.Generate(rc)
	}
	q := g.Generate(rc)
	mc, ok := q.(*model.MultipleChoice)
	require.True(t, ok)
	assert.True(t, mc.Placeholder)
	assert.Zero(t, mc.Value())
}

func TestGenerateWidensNarrowRange(t *testing.T) {
	tables := testTables()
	// Baseline admits only the single year 2000 release.
	filter := NewFilterContext(tables.AbsoluteMinYear, tables.AbsoluteMaxYear, 2000, 2000, nil, nil)
	g, _ := testGenerator(13)
	g.tables = tables
	g.filter = filter

	rc := RoundConfig{Kind: RoundRole, Points: 1, PerPlayer: 1}

	// More questions than the narrow range can supply; widening must kick in
	// rather than serving placeholders while unused facts remain.
	real := 0
	for i := 0; i < 10; i++ {
		q := g.Generate(rc)
		if mc := q.(*model.MultipleChoice); !mc.Placeholder {
			real++
		}
	}
	assert.Equal(t, 10, real)
	assert.Greater(t, filter.MaxYear, 2000)
}

func TestGenerateEmptyDataset(t *testing.T) {
	g, tables := testGenerator(14)
	tables.Roles = nil

	q := g.Generate(RoundConfig{Kind: RoundRole, Points: 1, PerPlayer: 1})
	mc, ok := q.(*model.MultipleChoice)
	require.True(t, ok)
	assert.True(t, mc.Placeholder)
}

func TestGenerateAgeQuestion(t *testing.T) {
	g, tables := testGenerator(15)
	rc := RoundConfig{Kind: RoundAge, Points: 4, PerPlayer: 1}

	q := g.Generate(rc)
	mc, ok := q.(*model.MultipleChoice)
	require.True(t, ok)
	require.False(t, mc.Placeholder)
	require.Len(t, mc.Choices, 4)

	for _, role := range tables.Roles {
		if role.Key() == mc.Key {
			a, ok := tables.Actor(role.ActorID, role.ActorName)
			require.True(t, ok)
			prod := tables.Productions[role.ProductionID]
			want, ok := a.AgeAt(*prod.ProductionStart)
			require.True(t, ok)
			assert.Equal(t, want, mc.Choices[mc.CorrectIndex].Age)
			return
		}
	}
	t.Fatalf("question key %v not found in roles", mc.Key)
}

func TestGenerateSliderQuestion(t *testing.T) {
	g, _ := testGenerator(16)
	rc := RoundConfig{Kind: RoundAgeSlider, Points: 10, PerPlayer: 1}

	q := g.Generate(rc)
	s, ok := q.(*model.Slider)
	require.True(t, ok)

	assert.LessOrEqual(t, s.Min, s.Correct-sliderBasePad)
	assert.GreaterOrEqual(t, s.Max, s.Correct+sliderBasePad)
	assert.GreaterOrEqual(t, s.Min, 0)
	assert.Equal(t, 10, s.Value())
}

func TestGenerateActorByAgeQuestion(t *testing.T) {
	g, _ := testGenerator(17)
	rc := RoundConfig{Kind: RoundActorByAge, Points: 5, PerPlayer: 1}

	q := g.Generate(rc)
	mc, ok := q.(*model.MultipleChoice)
	require.True(t, ok)
	require.False(t, mc.Placeholder)
	require.Len(t, mc.Choices, 4)

	correct := mc.Choices[mc.CorrectIndex]
	for i, c := range mc.Choices {
		if i != mc.CorrectIndex {
			// No distractor may read as a second correct answer.
			assert.Greater(t, abs(c.Age-correct.Age), 1)
		}
	}
}

func TestGenerateRankingQuestion(t *testing.T) {
	g, tables := testGenerator(18)
	rc := RoundConfig{Kind: RoundRanking, Points: 10, PerPlayer: 1}

	q := g.Generate(rc)
	ord, ok := q.(*model.Ordering)
	require.True(t, ok)

	require.Len(t, ord.Items, rankingItemCount)
	require.Len(t, ord.CorrectOrder, rankingItemCount)
	require.Len(t, ord.Targets, rankingItemCount)
	assert.False(t, ord.Repeat)

	// CorrectOrder is ascending by the ranking value of the chosen mode.
	var prev float64 = -1
	for _, id := range ord.CorrectOrder {
		p := tables.Productions[id]
		require.NotNil(t, p)
		var v float64
		if strings.Contains(ord.Prompt, "box office") {
			b, ok := p.BoxOfficeValue()
			require.True(t, ok)
			v = float64(b)
		} else {
			r, ok := p.RatingValue()
			require.True(t, ok)
			v = r
		}
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestShuffleChoicesTracksDuplicateLabels(t *testing.T) {
	// Remakes can put the same title on two choices; the correct index must
	// follow the shuffled element, not the first value that looks like it.
	seen := make(map[int]bool)
	for seed := uint64(0); seed < 20; seed++ {
		g, _ := testGenerator(seed)
		choices := []model.Choice{
			{Label: "The Thing"}, {Label: "The Thing"},
			{Label: "The Thing"}, {Label: "The Thing"},
		}
		idx := g.shuffleChoices(choices, 0)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, len(choices))
		seen[idx] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestRankingMarksRepeatsAfterExhaustion(t *testing.T) {
	g, _ := testGenerator(19)
	rc := RoundConfig{Kind: RoundRanking, Points: 10, PerPlayer: 1}

	// Two franchises and five actors qualify; after enough rounds the pools
	// are spent and reuse must be flagged.
	sawRepeat := false
	for i := 0; i < 20; i++ {
		q := g.Generate(rc)
		if ord, ok := q.(*model.Ordering); ok && ord.Repeat {
			sawRepeat = true
			break
		}
	}
	assert.True(t, sawRepeat)
}
