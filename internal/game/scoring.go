package game

import "reeltrivia/internal/model"

// Slider payouts by distance from the correct value.
var sliderBands = []int{10, 7, 3}

// Score applies the per-archetype scoring rules and fills the reveal fields.
// Player attribution is added by the session.
func Score(q model.Question, a model.Answer) model.ScoreResult {
	switch q := q.(type) {
	case *model.MultipleChoice:
		return scoreMultipleChoice(q, a)
	case *model.Slider:
		return scoreSlider(q, a)
	case *model.Ordering:
		return scoreOrdering(q, a)
	default:
		return model.ScoreResult{}
	}
}

func scoreMultipleChoice(q *model.MultipleChoice, a model.Answer) model.ScoreResult {
	res := model.ScoreResult{CorrectIndex: intPtr(q.CorrectIndex)}
	for _, c := range q.Choices {
		res.Reveals = append(res.Reveals, model.ChoiceReveal{
			Label:     c.Label,
			ActorName: c.ActorName,
			Age:       c.Age,
		})
	}
	if q.Placeholder {
		// Dismissal of a placeholder is neither right nor wrong.
		res.Correct = true
		return res
	}
	if a.ChoiceIndex != nil && *a.ChoiceIndex == q.CorrectIndex {
		res.Correct = true
		res.PointsAwarded = q.Points
	}
	return res
}

// scoreSlider pays out by distance: exact 10, off by one 7, off by two 3,
// anything further nothing.
func scoreSlider(q *model.Slider, a model.Answer) model.ScoreResult {
	res := model.ScoreResult{CorrectValue: intPtr(q.Correct)}
	if a.SliderValue == nil {
		return res
	}
	diff := abs(*a.SliderValue - q.Correct)
	if diff < len(sliderBands) {
		res.PointsAwarded = sliderBands[diff]
	}
	res.Correct = diff == 0
	return res
}

// scoreOrdering rewards exact positions twice, subtracts the adjacent-swap
// distance to the correct permutation and adds two, floored at zero. Near
// misses earn partial credit proportional to how sorted the answer already is.
func scoreOrdering(q *model.Ordering, a model.Answer) model.ScoreResult {
	res := model.ScoreResult{CorrectOrder: q.CorrectOrder}
	if len(a.Order) != len(q.CorrectOrder) {
		return res
	}

	position := make(map[string]int, len(q.CorrectOrder))
	for i, id := range q.CorrectOrder {
		position[id] = i
	}

	perm := make([]int, 0, len(a.Order))
	exact := 0
	for i, id := range a.Order {
		p, ok := position[id]
		if !ok {
			return res
		}
		if p == i {
			exact++
		}
		perm = append(perm, p)
	}

	score := exact*2 - adjacentSwaps(perm) + 2
	if score < 0 {
		score = 0
	}
	res.PointsAwarded = score
	res.Correct = exact == len(q.CorrectOrder)
	return res
}

// adjacentSwaps counts the minimum adjacent transpositions needed to sort
// the permutation, i.e. its inversions.
func adjacentSwaps(perm []int) int {
	swaps := 0
	for i := 0; i < len(perm); i++ {
		for j := i + 1; j < len(perm); j++ {
			if perm[i] > perm[j] {
				swaps++
			}
		}
	}
	return swaps
}

func intPtr(v int) *int { return &v }
