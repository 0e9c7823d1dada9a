package model

// Role joins an actor to a production through a character.
type Role struct {
	ActorID         string `json:"actorImdbId"`
	ActorName       string `json:"actorName"`
	ProductionID    string `json:"productionImdbId"`
	ProductionTitle string `json:"productionTitle"`
	Character       string `json:"character"`
}

// QuestionKey identifies the fact behind a question. Used memories are keyed
// by this struct rather than a delimited string so names containing the
// delimiter cannot collide.
type QuestionKey struct {
	ActorID      string
	ProductionID string
	Character    string
}

// Key returns the question identity of the role.
func (r *Role) Key() QuestionKey {
	return QuestionKey{ActorID: r.ActorID, ProductionID: r.ProductionID, Character: r.Character}
}
