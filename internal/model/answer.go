package model

// Answer is a submitted response. Exactly one field is set, matching the
// archetype of the active question.
type Answer struct {
	ChoiceIndex *int     `json:"choiceIndex,omitempty"`
	SliderValue *int     `json:"sliderValue,omitempty"`
	Order       []string `json:"order,omitempty"` // item ids in submitted order
}

// ChoiceReveal is the post-answer metadata for one multiple-choice option.
type ChoiceReveal struct {
	Label     string `json:"label"`
	ActorName string `json:"actorName,omitempty"`
	Age       int    `json:"age,omitempty"`
}

// ScoreResult is the outcome of scoring one answer. Correct* fields reveal
// the answer to the UI only after the submission.
type ScoreResult struct {
	PlayerID      string         `json:"playerId"`
	PlayerName    string         `json:"playerName"`
	PointsAwarded int            `json:"pointsAwarded"`
	Correct       bool           `json:"correct"` // full marks
	TotalScore    int            `json:"totalScore"`
	CorrectIndex  *int           `json:"correctIndex,omitempty"`
	CorrectValue  *int           `json:"correctValue,omitempty"`
	CorrectOrder  []string       `json:"correctOrder,omitempty"`
	Reveals       []ChoiceReveal `json:"reveals,omitempty"`
}
