package game

import (
	"sort"
	"strings"

	"reeltrivia/internal/model"
)

// Distractor generation. Each generator returns up to count items; callers
// must reject the candidate question when the result comes up short.

const (
	// minAgeGap keeps an actor whose age differs by at most one year out of
	// the distractor pool, so a near-tie cannot read as a second correct answer.
	minAgeGap = 1

	// Numeric age distractors stay within ageSpread of the correct value,
	// at least ageFloor, pairwise separated by at least ageSeparation.
	ageSpread     = 6
	ageFloor      = 18
	ageSeparation = 2
	ageAttemptCap = 100
)

// actorDistractor is a plausible wrong actor with the age it would have had.
type actorDistractor struct {
	actor *model.Actor
	age   int
}

// actorDistractors collects other actors from the same production whose age
// at the production start differs from correctAge by more than one year,
// closest first so the hardest distractors surface.
func (g *Generator) actorDistractors(correct *model.Actor, prod *model.Production, correctAge, count int) []actorDistractor {
	if prod.ProductionStart == nil {
		return nil
	}
	start := *prod.ProductionStart

	seen := map[model.ActorKey]struct{}{correct.Key(): {}}
	var out []actorDistractor
	for _, role := range g.tables.Roles {
		if role.ProductionID != prod.ID {
			continue
		}
		key := model.ActorKey{ID: role.ActorID, Name: role.ActorName}
		if _, dup := seen[key]; dup {
			continue
		}
		actor, ok := g.tables.Actors[key]
		if !ok {
			continue
		}
		age, ok := actor.AgeAt(start)
		if !ok {
			continue
		}
		if diff := age - correctAge; diff >= -minAgeGap && diff <= minAgeGap {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, actorDistractor{actor: actor, age: age})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return abs(out[i].age-correctAge) < abs(out[j].age-correctAge)
	})
	if len(out) > count {
		out = out[:count]
	}
	return out
}

// productionDistractors samples other productions the actor appears in,
// restricted to the current year bounds.
func (g *Generator) productionDistractors(actor model.ActorKey, excludeID string, count int) []*model.Production {
	seen := map[string]struct{}{excludeID: {}}
	var pool []*model.Production
	for _, role := range g.tables.Roles {
		if role.ActorID != actor.ID || role.ActorName != actor.Name {
			continue
		}
		if _, dup := seen[role.ProductionID]; dup {
			continue
		}
		prod, ok := g.tables.Productions[role.ProductionID]
		if !ok || !g.filter.InYearRange(prod) {
			continue
		}
		seen[role.ProductionID] = struct{}{}
		pool = append(pool, prod)
	}
	g.shuffleProductions(pool)
	if len(pool) > count {
		pool = pool[:count]
	}
	return pool
}

// characterDistractors samples other characters from the same production.
func (g *Generator) characterDistractors(productionID, correctCharacter string, count int) []string {
	seen := map[string]struct{}{strings.ToLower(correctCharacter): {}}
	var pool []string
	for _, role := range g.tables.Roles {
		if role.ProductionID != productionID || role.Character == "" {
			continue
		}
		lower := strings.ToLower(role.Character)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		pool = append(pool, role.Character)
	}
	g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > count {
		pool = pool[:count]
	}
	return pool
}

// ageDistractors rejection-samples wrong ages near the correct one: within
// ageSpread, at least ageFloor, and separated from each other and from the
// correct value by at least ageSeparation. May return fewer than count when
// the attempt cap is hit.
func (g *Generator) ageDistractors(correctAge, count int) []int {
	picked := []int{correctAge}
	var out []int
	for attempts := 0; attempts < ageAttemptCap && len(out) < count; attempts++ {
		candidate := correctAge - ageSpread + g.rng.IntN(2*ageSpread+1)
		if candidate < ageFloor {
			continue
		}
		ok := true
		for _, v := range picked {
			if abs(candidate-v) < ageSeparation {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		picked = append(picked, candidate)
		out = append(out, candidate)
	}
	return out
}

// ageLadder builds a strictly increasing set of four ages containing the
// correct value at a random slot, neighbors spaced by random gaps of 2-4.
// The slot is pulled down just enough that the lowest rung stays at or above
// ageFloor, so the correct value itself never moves.
func (g *Generator) ageLadder(correctAge int) (values [4]int, correctIdx int) {
	correctIdx = g.rng.IntN(4)
	if maxSlot := (correctAge - ageFloor) / ageSeparation; correctIdx > maxSlot {
		correctIdx = max(maxSlot, 0)
	}

	values[correctIdx] = correctAge
	for i := correctIdx - 1; i >= 0; i-- {
		v := values[i+1] - (ageSeparation + g.rng.IntN(3))
		// Leave room for the rungs below to stay at or above the floor.
		if minV := ageFloor + ageSeparation*i; v < minV {
			v = minV
		}
		values[i] = v
	}
	for i := correctIdx + 1; i < 4; i++ {
		values[i] = values[i-1] + ageSeparation + g.rng.IntN(3)
	}
	return values, correctIdx
}

func (g *Generator) shuffleProductions(pool []*model.Production) {
	g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
