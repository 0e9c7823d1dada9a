package game

import "reeltrivia/internal/model"

// UsedMemory tracks facts already turned into questions so a game never
// repeats itself. Question identities live for the whole game; franchise and
// ranking-actor memories reset at ranking-round boundaries.
type UsedMemory struct {
	questions     map[model.QuestionKey]struct{}
	franchises    map[string]struct{}
	rankingActors map[string]struct{}
}

func NewUsedMemory() *UsedMemory {
	return &UsedMemory{
		questions:     make(map[model.QuestionKey]struct{}),
		franchises:    make(map[string]struct{}),
		rankingActors: make(map[string]struct{}),
	}
}

func (m *UsedMemory) QuestionUsed(k model.QuestionKey) bool {
	_, ok := m.questions[k]
	return ok
}

func (m *UsedMemory) MarkQuestion(k model.QuestionKey) {
	m.questions[k] = struct{}{}
}

func (m *UsedMemory) FranchiseUsed(name string) bool {
	_, ok := m.franchises[name]
	return ok
}

func (m *UsedMemory) MarkFranchise(name string) {
	m.franchises[name] = struct{}{}
}

func (m *UsedMemory) ResetFranchises() {
	m.franchises = make(map[string]struct{})
}

func (m *UsedMemory) RankingActorUsed(id string) bool {
	_, ok := m.rankingActors[id]
	return ok
}

func (m *UsedMemory) MarkRankingActor(id string) {
	m.rankingActors[id] = struct{}{}
}

func (m *UsedMemory) ResetRankingActors() {
	m.rankingActors = make(map[string]struct{})
}
