package game

// RoundKind selects the question recipe of a round.
type RoundKind string

const (
	// RoundRole asks which character an actor played in a production.
	RoundRole RoundKind = "role"
	// RoundProduction asks in which production an actor played a character.
	RoundProduction RoundKind = "production"
	// RoundAge asks how old an actor was when filming began, with numeric choices.
	RoundAge RoundKind = "age"
	// RoundActorByAge asks which of several actors was a given age at filming.
	RoundActorByAge RoundKind = "actor_by_age"
	// RoundAgeSlider asks for an actor's age at filming on a slider.
	RoundAgeSlider RoundKind = "age_slider"
	// RoundRanking asks to order productions by box office or critic rating.
	RoundRanking RoundKind = "ranking"
)

// Ranking reports whether the kind uses the ordering archetype.
func (k RoundKind) Ranking() bool { return k == RoundRanking }

// RoundConfig is one segment of the game: a fixed recipe, a fixed point
// value and the number of questions each player gets.
type RoundConfig struct {
	Kind      RoundKind `json:"kind" validate:"required,oneof=role production age actor_by_age age_slider ranking"`
	Points    int       `json:"points" validate:"min=0"`
	PerPlayer int       `json:"perPlayer" validate:"min=1"`
}

// DefaultRounds is the standard six-round game. Point values never decrease
// across the sequence.
func DefaultRounds() []RoundConfig {
	return []RoundConfig{
		{Kind: RoundRole, Points: 1, PerPlayer: 1},
		{Kind: RoundProduction, Points: 3, PerPlayer: 1},
		{Kind: RoundAge, Points: 4, PerPlayer: 1},
		{Kind: RoundActorByAge, Points: 5, PerPlayer: 1},
		{Kind: RoundAgeSlider, Points: 10, PerPlayer: 1},
		{Kind: RoundRanking, Points: 10, PerPlayer: 1},
	}
}
