package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"reeltrivia/internal/dataset"
	"reeltrivia/internal/model"
)

// Phase is the orchestrator state.
type Phase string

const (
	PhaseSetup       Phase = "setup"
	PhaseRoundIntro  Phase = "round_intro"
	PhaseQuestion    Phase = "question"
	PhaseFeedback    Phase = "feedback"
	PhaseFinalScores Phase = "final_scores"
)

var (
	ErrNotAcceptingAnswers = errors.New("no question is awaiting an answer")
	ErrAnswerPending       = errors.New("the current question has not been answered")
	ErrGameOver            = errors.New("the game has ended")
	ErrNotStarted          = errors.New("the game has not started")
)

// Default player colors, assigned round-robin when the setup omits them.
var defaultColors = []string{"#e63946", "#457b9d", "#2a9d8f", "#f4a261", "#9b5de5", "#ef476f", "#118ab2", "#06d6a0"}

// Config is the session setup payload.
type Config struct {
	Players    []model.PlayerSetup `json:"players" validate:"required,min=1,max=8,unique=Name,dive"`
	MinYear    int                 `json:"minYear"`
	MaxYear    int                 `json:"maxYear"`
	Genres     []string            `json:"genres"`
	Franchises []string            `json:"franchises"`
	Rounds     []RoundConfig       `json:"rounds" validate:"omitempty,dive"`

	// Seed pins the random stream; zero seeds from the clock.
	Seed uint64 `json:"-"`
}

// Event is an orchestrator output for the UI layer.
type Event struct {
	Type    string
	Payload any
}

// Session owns all mutable game state. All mutation goes through its
// methods; there is exactly one active turn at a time.
type Session struct {
	ID string

	mu       sync.Mutex
	players  []*model.Player
	turn     int
	roundIdx int
	answered int // questions answered in the current round
	phase    Phase
	rounds   []RoundConfig
	filter   *FilterContext
	used     *UsedMemory
	gen      *Generator
	question model.Question
	log      logrus.FieldLogger
}

// NewSession validates the setup and prepares a game over the dataset.
// Validation failures (duplicate player names, bad round tables) are the
// caller's to fix; nothing about a session is created until they are.
func NewSession(cfg Config, tables *dataset.Tables, validate *validator.Validate, log logrus.FieldLogger) (*Session, error) {
	if validate == nil {
		validate = validator.New()
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid session setup: %w", err)
	}

	rounds := cfg.Rounds
	if len(rounds) == 0 {
		rounds = DefaultRounds()
	}
	for i := 1; i < len(rounds); i++ {
		if rounds[i].Points < rounds[i-1].Points {
			return nil, fmt.Errorf("invalid session setup: round %d is worth less than round %d", i+1, i)
		}
	}

	players := make([]*model.Player, len(cfg.Players))
	for i, p := range cfg.Players {
		color := p.Color
		if color == "" {
			color = defaultColors[i%len(defaultColors)]
		}
		players[i] = &model.Player{
			ID:    uuid.NewString(),
			Name:  p.Name,
			Color: color,
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	if log == nil {
		log = logrus.StandardLogger()
	}
	filter := NewFilterContext(tables.AbsoluteMinYear, tables.AbsoluteMaxYear, cfg.MinYear, cfg.MaxYear, cfg.Genres, cfg.Franchises)
	used := NewUsedMemory()

	s := &Session{
		ID:      uuid.NewString(),
		players: players,
		phase:   PhaseSetup,
		rounds:  rounds,
		filter:  filter,
		used:    used,
		gen:     NewGenerator(tables, filter, used, rng, log),
		log:     log,
	}
	return s, nil
}

// Phase returns the current orchestrator state.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Players returns a snapshot of the players with their scores.
func (s *Session) Players() []model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Player, len(s.players))
	for i, p := range s.players {
		out[i] = *p
	}
	return out
}

// CurrentQuestion returns the active question, nil outside the question phase.
func (s *Session) CurrentQuestion() model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseQuestion {
		return nil
	}
	return s.question
}

// Start moves the game out of setup into the first round's intro.
func (s *Session) Start() (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSetup {
		return nil, fmt.Errorf("game already started")
	}
	s.enterRound(0)
	return s.roundIntroEvent(), nil
}

// Next advances the state machine: intro to first question, feedback to the
// next question, round or final scores. It is the only way the game moves
// between turns.
func (s *Session) Next() (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseSetup:
		return nil, ErrNotStarted
	case PhaseQuestion:
		return nil, ErrAnswerPending
	case PhaseFinalScores:
		return nil, ErrGameOver
	case PhaseRoundIntro:
		return s.askQuestion(), nil
	case PhaseFeedback:
		round := s.rounds[s.roundIdx]
		if s.answered >= round.PerPlayer*len(s.players) {
			if s.roundIdx+1 >= len(s.rounds) {
				s.phase = PhaseFinalScores
				return &Event{Type: model.EventGameEnded, Payload: model.GameEndedEvent{Ranking: s.finalRanking()}}, nil
			}
			s.enterRound(s.roundIdx + 1)
			return s.roundIntroEvent(), nil
		}
		s.turn = (s.turn + 1) % len(s.players)
		return s.askQuestion(), nil
	default:
		return nil, fmt.Errorf("unexpected phase %q", s.phase)
	}
}

// Submit scores the answer for the current player and moves to feedback.
func (s *Session) Submit(a model.Answer) (*model.ScoreResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseQuestion {
		return nil, ErrNotAcceptingAnswers
	}

	player := s.players[s.turn]
	res := Score(s.question, a)
	player.Score += res.PointsAwarded
	res.PlayerID = player.ID
	res.PlayerName = player.Name
	res.TotalScore = player.Score

	s.question = nil
	s.answered++
	s.phase = PhaseFeedback
	return &res, nil
}

// FinalRanking returns the end-of-game standing, best first.
func (s *Session) FinalRanking() []model.FinalRank {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalRanking()
}

// enterRound applies the round-boundary resets: the year range reverts to
// the player-chosen baseline, and ranking rounds start with fresh franchise
// and actor memories.
func (s *Session) enterRound(idx int) {
	s.roundIdx = idx
	s.answered = 0
	s.turn = 0
	s.phase = PhaseRoundIntro
	s.filter.ResetBounds()
	if s.rounds[idx].Kind.Ranking() {
		s.used.ResetFranchises()
		s.used.ResetRankingActors()
	}
}

func (s *Session) askQuestion() *Event {
	round := s.rounds[s.roundIdx]
	s.question = s.gen.Generate(round)
	s.phase = PhaseQuestion
	player := s.players[s.turn]
	return &Event{Type: model.EventQuestion, Payload: model.QuestionEvent{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Round:      s.roundIdx + 1,
		Question:   s.question,
	}}
}

func (s *Session) roundIntroEvent() *Event {
	round := s.rounds[s.roundIdx]
	return &Event{Type: model.EventRoundIntro, Payload: model.RoundIntroEvent{
		Round:  s.roundIdx + 1,
		Rounds: len(s.rounds),
		Kind:   string(round.Kind),
		Points: round.Points,
	}}
}

func (s *Session) finalRanking() []model.FinalRank {
	ranked := make([]*model.Player, len(s.players))
	copy(ranked, s.players)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	out := make([]model.FinalRank, len(ranked))
	for i, p := range ranked {
		rank := i + 1
		if i > 0 && p.Score == ranked[i-1].Score {
			rank = out[i-1].Rank
		}
		out[i] = model.FinalRank{Rank: rank, Player: *p}
	}
	return out
}
