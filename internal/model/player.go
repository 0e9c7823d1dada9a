package model

// Player is a participant in a trivia session.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Score int    `json:"score"`
}

// PlayerSetup is the per-player portion of the session setup payload.
type PlayerSetup struct {
	Name  string `json:"name" validate:"required,max=40"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// FinalRank is one row of the end-of-game ranking.
type FinalRank struct {
	Rank   int    `json:"rank"`
	Player Player `json:"player"`
}
