package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reeltrivia/internal/model"
)

func TestActorDistractors(t *testing.T) {
	g, tables := testGenerator(1)
	prod := tables.Productions["tt01"]
	correct := tables.Actors[model.ActorKey{ID: "nm1", Name: "Alice Gray"}]
	correctAge, ok := correct.AgeAt(*prod.ProductionStart)
	require.True(t, ok)

	t.Run("closest ages first", func(t *testing.T) {
		out := g.actorDistractors(correct, prod, correctAge, 4)
		require.Len(t, out, 4)
		for i := 1; i < len(out); i++ {
			assert.GreaterOrEqual(t,
				abs(out[i].age-correctAge),
				abs(out[i-1].age-correctAge))
		}
	})

	t.Run("near ties are excluded", func(t *testing.T) {
		near := &model.Actor{ID: "nm9", Name: "Amy Near", Birthday: date(1970, 5, 1)}
		tables.Actors[near.Key()] = near
		tables.Roles = append(tables.Roles, model.Role{
			ActorID: "nm9", ActorName: "Amy Near",
			ProductionID: "tt01", ProductionTitle: "Saga One",
			Character: "Amy of Saga One",
		})

		nearAge, _ := near.AgeAt(*prod.ProductionStart)
		require.LessOrEqual(t, abs(nearAge-correctAge), 1)

		out := g.actorDistractors(correct, prod, correctAge, 10)
		for _, d := range out {
			assert.NotEqual(t, "nm9", d.actor.ID)
			assert.Greater(t, abs(d.age-correctAge), 1)
		}
	})

	t.Run("count cap", func(t *testing.T) {
		out := g.actorDistractors(correct, prod, correctAge, 2)
		assert.Len(t, out, 2)
	})
}

func TestProductionDistractors(t *testing.T) {
	g, _ := testGenerator(2)
	alice := model.ActorKey{ID: "nm1", Name: "Alice Gray"}

	out := g.productionDistractors(alice, "tt01", 3)
	require.Len(t, out, 3)
	seen := map[string]struct{}{}
	for _, p := range out {
		assert.NotEqual(t, "tt01", p.ID)
		_, dup := seen[p.ID]
		assert.False(t, dup)
		seen[p.ID] = struct{}{}
	}
}

func TestProductionDistractorsHonorYearRange(t *testing.T) {
	g, _ := testGenerator(3)
	g.filter.MinYear, g.filter.MaxYear = 2000, 2003

	alice := model.ActorKey{ID: "nm1", Name: "Alice Gray"}
	out := g.productionDistractors(alice, "tt01", 10)
	for _, p := range out {
		y, ok := p.ReleaseYear()
		require.True(t, ok)
		assert.GreaterOrEqual(t, y, 2000)
		assert.LessOrEqual(t, y, 2003)
	}
}

func TestCharacterDistractors(t *testing.T) {
	g, _ := testGenerator(4)

	out := g.characterDistractors("tt01", "Alice Gray of Saga One", 3)
	require.Len(t, out, 3)
	for _, c := range out {
		assert.NotEqual(t, "Alice Gray of Saga One", c)
	}
}

func TestAgeDistractors(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		g, _ := testGenerator(seed)
		const correct = 30

		out := g.ageDistractors(correct, 3)
		require.Len(t, out, 3)

		all := append([]int{correct}, out...)
		for i, a := range all {
			assert.GreaterOrEqual(t, a, ageFloor)
			assert.LessOrEqual(t, abs(a-correct), ageSpread)
			for j, b := range all {
				if i != j {
					assert.GreaterOrEqual(t, abs(a-b), ageSeparation)
				}
			}
		}
	}
}

func TestAgeDistractorsNearFloor(t *testing.T) {
	// At age 19 only values 21..25 qualify, still enough for three.
	g, _ := testGenerator(7)
	out := g.ageDistractors(19, 3)
	for _, v := range out {
		assert.GreaterOrEqual(t, v, ageFloor)
	}
}

func TestAgeLadder(t *testing.T) {
	for seed := uint64(0); seed < 30; seed++ {
		g, _ := testGenerator(seed)
		for _, correct := range []int{18, 19, 21, 30, 55} {
			values, idx := g.ageLadder(correct)

			assert.Equal(t, correct, values[idx])
			for i := 1; i < 4; i++ {
				assert.Greater(t, values[i], values[i-1])
			}
			for _, v := range values {
				assert.GreaterOrEqual(t, v, ageFloor)
			}
		}
	}
}
