package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"reeltrivia/internal/cache"
	"reeltrivia/internal/dataset"
	"reeltrivia/internal/game"
	"reeltrivia/internal/model"
)

var ErrGameNotFound = errors.New("game not found")

// GameState is the snapshot handed to clients after every transition.
type GameState struct {
	ID       string         `json:"id"`
	Phase    string         `json:"phase"`
	Players  []model.Player `json:"players"`
	Question model.Question `json:"question,omitempty"`
}

// GameService owns the live sessions and fans their events out over the
// broadcaster.
type GameService struct {
	tables   *dataset.Tables
	games    cache.GameCache
	validate *validator.Validate
	bc       Broadcaster
	log      logrus.FieldLogger
}

func NewGameService(tables *dataset.Tables, games cache.GameCache, validate *validator.Validate, log logrus.FieldLogger) *GameService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &GameService{tables: tables, games: games, validate: validate, log: log}
}

// SetBroadcaster wires the WebSocket hub in after construction.
func (s *GameService) SetBroadcaster(bc Broadcaster) {
	s.bc = bc
}

// Create validates the setup and registers a new session.
func (s *GameService) Create(cfg game.Config) (*GameState, error) {
	sess, err := game.NewSession(cfg, s.tables, s.validate, s.log)
	if err != nil {
		return nil, err
	}
	s.games.Set(sess.ID, sess)
	s.log.WithFields(logrus.Fields{"game_id": sess.ID, "players": len(cfg.Players)}).Info("game created")
	return s.snapshot(sess), nil
}

// Get returns the current state of a game.
func (s *GameService) Get(id string) (*GameState, error) {
	sess, ok := s.games.Get(id)
	if !ok {
		return nil, ErrGameNotFound
	}
	return s.snapshot(sess), nil
}

// Start moves a game out of setup and broadcasts the first round intro.
func (s *GameService) Start(id string) (*game.Event, error) {
	sess, ok := s.games.Get(id)
	if !ok {
		return nil, ErrGameNotFound
	}
	ev, err := sess.Start()
	if err != nil {
		return nil, err
	}
	s.emit(id, ev)
	return ev, nil
}

// Next advances the state machine and broadcasts the resulting event. A game
// that just ended is kept in the cache so the final standings stay readable
// until the idle sweep collects it.
func (s *GameService) Next(id string) (*game.Event, error) {
	sess, ok := s.games.Get(id)
	if !ok {
		return nil, ErrGameNotFound
	}
	ev, err := sess.Next()
	if err != nil {
		return nil, err
	}
	s.emit(id, ev)
	return ev, nil
}

// Submit scores the current player's answer and broadcasts the result.
func (s *GameService) Submit(id string, a model.Answer) (*model.ScoreResult, error) {
	sess, ok := s.games.Get(id)
	if !ok {
		return nil, ErrGameNotFound
	}
	res, err := sess.Submit(a)
	if err != nil {
		return nil, err
	}
	s.emit(id, &game.Event{Type: model.EventScore, Payload: res})
	return res, nil
}

// FinalRanking returns the end-of-game standings.
func (s *GameService) FinalRanking(id string) ([]model.FinalRank, error) {
	sess, ok := s.games.Get(id)
	if !ok {
		return nil, ErrGameNotFound
	}
	return sess.FinalRanking(), nil
}

// Delete removes a game and closes its spectator connections.
func (s *GameService) Delete(id string) {
	s.games.Delete(id)
	if s.bc != nil {
		s.bc.DisconnectGame(id)
	}
	s.log.WithField("game_id", id).Info("game deleted")
}

func (s *GameService) emit(id string, ev *game.Event) {
	if s.bc != nil {
		s.bc.BroadcastToGame(id, ev.Type, ev.Payload)
	}
}

func (s *GameService) snapshot(sess *game.Session) *GameState {
	return &GameState{
		ID:       sess.ID,
		Phase:    string(sess.Phase()),
		Players:  sess.Players(),
		Question: sess.CurrentQuestion(),
	}
}
