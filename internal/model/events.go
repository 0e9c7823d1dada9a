package model

// Game event types pushed over the WebSocket.
const (
	EventRoundIntro = "round_intro"
	EventQuestion   = "question"
	EventScore      = "score"
	EventGameEnded  = "game_ended"
)

// RoundIntroEvent announces the next round.
type RoundIntroEvent struct {
	Round  int    `json:"round"` // 1-based
	Rounds int    `json:"rounds"`
	Kind   string `json:"kind"`
	Points int    `json:"points"`
}

// QuestionEvent hands the active question to the UI.
type QuestionEvent struct {
	PlayerID   string   `json:"playerId"`
	PlayerName string   `json:"playerName"`
	Round      int      `json:"round"`
	Question   Question `json:"question"`
}

// GameEndedEvent carries the final ranking.
type GameEndedEvent struct {
	Ranking []FinalRank `json:"ranking"`
}
