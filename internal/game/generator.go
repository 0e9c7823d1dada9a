package game

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"reeltrivia/internal/dataset"
	"reeltrivia/internal/model"
)

const (
	// widenStep is how far the year range relaxes on each side when sampling
	// runs out of attempts.
	widenStep = 2

	// mcChoiceCount is the distractor count for multiple-choice questions;
	// rankingItemCount the group size for ordering questions.
	mcChoiceCount    = 3
	rankingItemCount = 4

	// Slider ranges get 4 plus a random 0-11 years of padding per side,
	// independently drawn so the correct value doesn't sit in the middle.
	sliderBasePad   = 4
	sliderRandomPad = 12
)

// Generator assembles questions from the dataset under the live filter
// context, consulting and updating the used memories.
type Generator struct {
	tables *dataset.Tables
	filter *FilterContext
	used   *UsedMemory
	rng    *rand.Rand
	log    logrus.FieldLogger
}

func NewGenerator(tables *dataset.Tables, filter *FilterContext, used *UsedMemory, rng *rand.Rand, log logrus.FieldLogger) *Generator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Generator{tables: tables, filter: filter, used: used, rng: rng, log: log}
}

// Generate produces a question for the round, degrading to a neutral
// placeholder when the bounded search comes up empty. It never fails hard.
func (g *Generator) Generate(rc RoundConfig) model.Question {
	if rc.Kind.Ranking() {
		return g.generateRanking(rc)
	}
	return g.generateStandard(rc)
}

// generateStandard samples role records until one survives validation and
// yields enough distractors. When a full run of attempts passes without a
// candidate the year range widens and the counter resets; once the range is
// fully open and attempts run out again, the placeholder goes out.
func (g *Generator) generateStandard(rc RoundConfig) model.Question {
	roles := g.tables.Roles
	if len(roles) == 0 {
		return model.NewPlaceholder()
	}

	maxAttempts := 2 * len(roles)
	attempts := 0
	for {
		if attempts >= maxAttempts {
			if !g.filter.Widen(widenStep) {
				g.log.WithField("kind", rc.Kind).Warn("question generation exhausted, serving placeholder")
				return model.NewPlaceholder()
			}
			attempts = 0
		}
		attempts++

		role := roles[g.rng.IntN(len(roles))]
		actor, ok := g.tables.Actor(role.ActorID, role.ActorName)
		if !ok {
			continue
		}
		prod, ok := g.tables.Productions[role.ProductionID]
		if !ok || !g.filter.Matches(prod) {
			continue
		}
		if g.used.QuestionUsed(role.Key()) {
			continue
		}

		q, ok := g.buildStandard(rc, role, actor, prod)
		if !ok {
			// Not enough distractors or missing dates; keep sampling
			// without widening, other roles may still qualify.
			continue
		}
		g.used.MarkQuestion(role.Key())
		return q
	}
}

func (g *Generator) buildStandard(rc RoundConfig, role model.Role, actor *model.Actor, prod *model.Production) (model.Question, bool) {
	switch rc.Kind {
	case RoundRole:
		return g.buildRoleQuestion(rc, role, actor, prod)
	case RoundProduction:
		return g.buildProductionQuestion(rc, role, actor, prod)
	case RoundAge:
		return g.buildAgeQuestion(rc, role, actor, prod)
	case RoundActorByAge:
		return g.buildActorByAgeQuestion(rc, role, actor, prod)
	case RoundAgeSlider:
		return g.buildSliderQuestion(rc, role, actor, prod)
	default:
		return nil, false
	}
}

func (g *Generator) buildRoleQuestion(rc RoundConfig, role model.Role, actor *model.Actor, prod *model.Production) (model.Question, bool) {
	wrong := g.characterDistractors(prod.ID, role.Character, mcChoiceCount)
	if len(wrong) < mcChoiceCount {
		return nil, false
	}
	choices := []model.Choice{{Label: role.Character}}
	for _, c := range wrong {
		choices = append(choices, model.Choice{Label: c})
	}
	correct := g.shuffleChoices(choices, 0)
	return &model.MultipleChoice{
		Kind:         model.ArchetypeMultipleChoice,
		Prompt:       fmt.Sprintf("Which character did %s play in %s?", actor.Name, prod.Title),
		Choices:      choices,
		CorrectIndex: correct,
		Points:       rc.Points,
		Poster:       prod.Poster,
		Key:          role.Key(),
	}, true
}

func (g *Generator) buildProductionQuestion(rc RoundConfig, role model.Role, actor *model.Actor, prod *model.Production) (model.Question, bool) {
	wrong := g.productionDistractors(actor.Key(), prod.ID, mcChoiceCount)
	if len(wrong) < mcChoiceCount {
		return nil, false
	}
	choices := []model.Choice{{Label: prod.Title}}
	for _, p := range wrong {
		choices = append(choices, model.Choice{Label: p.Title})
	}
	correct := g.shuffleChoices(choices, 0)
	return &model.MultipleChoice{
		Kind:         model.ArchetypeMultipleChoice,
		Prompt:       fmt.Sprintf("In which production did %s play %s?", actor.Name, role.Character),
		Choices:      choices,
		CorrectIndex: correct,
		Points:       rc.Points,
		Key:          role.Key(),
	}, true
}

func (g *Generator) buildAgeQuestion(rc RoundConfig, role model.Role, actor *model.Actor, prod *model.Production) (model.Question, bool) {
	age, ok := ageAtFilming(actor, prod)
	if !ok {
		return nil, false
	}

	var choices []model.Choice
	var correct int
	if g.rng.IntN(2) == 0 {
		values, idx := g.ageLadder(age)
		for _, v := range values {
			choices = append(choices, model.Choice{Label: strconv.Itoa(v), Age: v, ActorName: actor.Name})
		}
		correct = idx
	} else {
		wrong := g.ageDistractors(age, mcChoiceCount)
		if len(wrong) < mcChoiceCount {
			return nil, false
		}
		choices = []model.Choice{{Label: strconv.Itoa(age), Age: age, ActorName: actor.Name}}
		for _, v := range wrong {
			choices = append(choices, model.Choice{Label: strconv.Itoa(v), Age: v})
		}
		correct = g.shuffleChoices(choices, 0)
	}
	return &model.MultipleChoice{
		Kind:         model.ArchetypeMultipleChoice,
		Prompt:       fmt.Sprintf("How old was %s when filming began on %s?", actor.Name, prod.Title),
		Choices:      choices,
		CorrectIndex: correct,
		Points:       rc.Points,
		Poster:       prod.Poster,
		Key:          role.Key(),
	}, true
}

func (g *Generator) buildActorByAgeQuestion(rc RoundConfig, role model.Role, actor *model.Actor, prod *model.Production) (model.Question, bool) {
	age, ok := ageAtFilming(actor, prod)
	if !ok {
		return nil, false
	}
	wrong := g.actorDistractors(actor, prod, age, mcChoiceCount)
	if len(wrong) < mcChoiceCount {
		return nil, false
	}
	choices := []model.Choice{{Label: actor.Name, ActorName: actor.Name, Age: age}}
	for _, d := range wrong {
		choices = append(choices, model.Choice{Label: d.actor.Name, ActorName: d.actor.Name, Age: d.age})
	}
	correct := g.shuffleChoices(choices, 0)
	return &model.MultipleChoice{
		Kind:         model.ArchetypeMultipleChoice,
		Prompt:       fmt.Sprintf("Which actor was %d years old when filming began on %s?", age, prod.Title),
		Choices:      choices,
		CorrectIndex: correct,
		Points:       rc.Points,
		Poster:       prod.Poster,
		Key:          role.Key(),
	}, true
}

func (g *Generator) buildSliderQuestion(rc RoundConfig, role model.Role, actor *model.Actor, prod *model.Production) (model.Question, bool) {
	age, ok := ageAtFilming(actor, prod)
	if !ok {
		return nil, false
	}
	lo := age - (sliderBasePad + g.rng.IntN(sliderRandomPad))
	if lo < 0 {
		lo = 0
	}
	hi := age + sliderBasePad + g.rng.IntN(sliderRandomPad)
	return &model.Slider{
		Kind:    model.ArchetypeSlider,
		Prompt:  fmt.Sprintf("How old was %s while playing %s in %s?", actor.Name, role.Character, prod.Title),
		Min:     lo,
		Max:     hi,
		Correct: age,
		Points:  rc.Points,
		Poster:  prod.Poster,
		Key:     role.Key(),
	}, true
}

// ageAtFilming requires both a birthday and a production start date.
func ageAtFilming(actor *model.Actor, prod *model.Production) (int, bool) {
	if prod.ProductionStart == nil {
		return 0, false
	}
	age, ok := actor.AgeAt(*prod.ProductionStart)
	if !ok || age < 0 {
		return 0, false
	}
	return age, true
}

// shuffleChoices shuffles in place and returns the new index of the choice
// initially at correctIdx. The index is followed through every swap so
// choices with identical labels, such as remakes sharing a title, stay
// distinguishable.
func (g *Generator) shuffleChoices(choices []model.Choice, correctIdx int) int {
	g.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
		switch correctIdx {
		case i:
			correctIdx = j
		case j:
			correctIdx = i
		}
	})
	return correctIdx
}

// --- ranking rounds ---

// rankingKey extracts the sortable value and its display form.
type rankingKey struct {
	name    string
	value   func(*model.Production) (float64, bool)
	display func(*model.Production) string
}

var boxOfficeKey = rankingKey{
	name: "box office",
	value: func(p *model.Production) (float64, bool) {
		v, ok := p.BoxOfficeValue()
		return float64(v), ok
	},
	display: func(p *model.Production) string {
		v, _ := p.BoxOfficeValue()
		return formatDollars(v)
	},
}

var ratingKey = rankingKey{
	name: "rating",
	value: func(p *model.Production) (float64, bool) {
		return p.RatingValue()
	},
	display: func(p *model.Production) string {
		v, _ := p.RatingValue()
		return strconv.FormatFloat(v, 'f', 1, 64)
	},
}

// generateRanking flips a coin between franchise box-office and actor
// filmography rating. Either sub-mode widens the year range as needed,
// clears its used memory as a last resort (marking the question as an
// explicit repeat) and finally falls back to a random ungrouped pick.
func (g *Generator) generateRanking(rc RoundConfig) model.Question {
	var q model.Question
	if g.rng.IntN(2) == 0 {
		q = g.rankingByFranchise(rc)
		if q == nil {
			q = g.fallbackRanking(rc, boxOfficeKey, "Order these productions from lowest to highest US box office")
		}
	} else {
		q = g.rankingByActor(rc)
		if q == nil {
			q = g.fallbackRanking(rc, ratingKey, "Order these productions from lowest to highest critic rating")
		}
	}
	if q == nil {
		g.log.WithField("kind", rc.Kind).Warn("ranking generation exhausted, serving placeholder")
		return model.NewPlaceholder()
	}
	return q
}

func (g *Generator) rankingByFranchise(rc RoundConfig) model.Question {
	cleared := false
	for {
		groups := make(map[string][]*model.Production)
		for _, p := range g.tables.Productions {
			if p.Franchise == "" || !g.filter.Matches(p) {
				continue
			}
			if _, ok := p.BoxOfficeValue(); !ok {
				continue
			}
			groups[p.Franchise] = append(groups[p.Franchise], p)
		}
		var candidates []string
		for name, prods := range groups {
			if len(prods) >= rankingItemCount {
				candidates = append(candidates, name)
			}
		}
		sort.Strings(candidates)
		g.rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

		for _, name := range candidates {
			if g.used.FranchiseUsed(name) {
				continue
			}
			g.used.MarkFranchise(name)
			picks := g.pickGroup(groups[name])
			prompt := fmt.Sprintf("Order the %s productions from lowest to highest US box office", name)
			return g.buildOrdering(rc, prompt, picks, boxOfficeKey, cleared)
		}

		if g.filter.Widen(widenStep) {
			continue
		}
		if cleared {
			return nil
		}
		// All distinct franchises are spent; from here on questions are
		// explicit repeats rather than silent reuse.
		g.used.ResetFranchises()
		cleared = true
	}
}

func (g *Generator) rankingByActor(rc RoundConfig) model.Question {
	cleared := false
	for {
		groups := make(map[model.ActorKey][]*model.Production)
		for _, role := range g.tables.Roles {
			prod, ok := g.tables.Productions[role.ProductionID]
			if !ok || !g.filter.Matches(prod) {
				continue
			}
			if _, ok := prod.RatingValue(); !ok {
				continue
			}
			key := model.ActorKey{ID: role.ActorID, Name: role.ActorName}
			if containsProduction(groups[key], prod.ID) {
				continue
			}
			groups[key] = append(groups[key], prod)
		}
		var candidates []model.ActorKey
		for key, prods := range groups {
			if len(prods) >= rankingItemCount {
				candidates = append(candidates, key)
			}
		}
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].ID != candidates[j].ID {
				return candidates[i].ID < candidates[j].ID
			}
			return candidates[i].Name < candidates[j].Name
		})
		g.rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

		for _, key := range candidates {
			if g.used.RankingActorUsed(key.ID) {
				continue
			}
			g.used.MarkRankingActor(key.ID)
			picks := g.pickGroup(groups[key])
			prompt := fmt.Sprintf("Order these %s productions from lowest to highest critic rating", key.Name)
			return g.buildOrdering(rc, prompt, picks, ratingKey, cleared)
		}

		if g.filter.Widen(widenStep) {
			continue
		}
		if cleared {
			return nil
		}
		g.used.ResetRankingActors()
		cleared = true
	}
}

// fallbackRanking ignores grouping entirely and orders four random
// productions that carry the ranking key.
func (g *Generator) fallbackRanking(rc RoundConfig, key rankingKey, prompt string) model.Question {
	var pool []*model.Production
	for _, p := range g.tables.Productions {
		if _, ok := key.value(p); ok {
			pool = append(pool, p)
		}
	}
	if len(pool) < rankingItemCount {
		return nil
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })
	g.shuffleProductions(pool)
	return g.buildOrdering(rc, prompt, pool[:rankingItemCount], key, false)
}

// pickGroup samples rankingItemCount productions from a qualifying group.
func (g *Generator) pickGroup(prods []*model.Production) []*model.Production {
	picks := make([]*model.Production, len(prods))
	copy(picks, prods)
	sort.Slice(picks, func(i, j int) bool { return picks[i].ID < picks[j].ID })
	g.shuffleProductions(picks)
	return picks[:rankingItemCount]
}

func (g *Generator) buildOrdering(rc RoundConfig, prompt string, prods []*model.Production, key rankingKey, repeat bool) model.Question {
	byValue := make([]*model.Production, len(prods))
	copy(byValue, prods)
	sort.SliceStable(byValue, func(i, j int) bool {
		vi, _ := key.value(byValue[i])
		vj, _ := key.value(byValue[j])
		return vi < vj
	})

	correct := make([]string, len(byValue))
	targets := make([]string, len(byValue))
	for i, p := range byValue {
		correct[i] = p.ID
		targets[i] = key.display(p)
	}

	alphabetical := make([]*model.Production, len(prods))
	copy(alphabetical, prods)
	sort.SliceStable(alphabetical, func(i, j int) bool {
		return strings.ToLower(alphabetical[i].Title) < strings.ToLower(alphabetical[j].Title)
	})
	items := make([]model.OrderingItem, len(alphabetical))
	for i, p := range alphabetical {
		items[i] = model.OrderingItem{ID: p.ID, Label: p.Title}
	}

	return &model.Ordering{
		Kind:         model.ArchetypeOrdering,
		Prompt:       prompt,
		Items:        items,
		Targets:      targets,
		CorrectOrder: correct,
		Points:       rc.Points,
		Repeat:       repeat,
	}
}

func containsProduction(prods []*model.Production, id string) bool {
	for _, p := range prods {
		if p.ID == id {
			return true
		}
	}
	return false
}

func formatDollars(v int64) string {
	s := strconv.FormatInt(v, 10)
	var b strings.Builder
	b.WriteByte('$')
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}
