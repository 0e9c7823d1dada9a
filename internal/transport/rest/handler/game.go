package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"reeltrivia/internal/game"
	"reeltrivia/internal/model"
	"reeltrivia/internal/service"
)

// GameHandler drives game sessions over REST.
type GameHandler struct {
	gameSvc *service.GameService
}

func NewGameHandler(gameSvc *service.GameService) *GameHandler {
	return &GameHandler{gameSvc: gameSvc}
}

// Create handles POST /v1/games.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var cfg game.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.gameSvc.Create(cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

// Get handles GET /v1/games/{id}.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.gameSvc.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Start handles POST /v1/games/{id}/start.
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	ev, err := h.gameSvc.Start(mux.Vars(r)["id"])
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eventBody(ev))
}

// Next handles POST /v1/games/{id}/next.
func (h *GameHandler) Next(w http.ResponseWriter, r *http.Request) {
	ev, err := h.gameSvc.Next(mux.Vars(r)["id"])
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eventBody(ev))
}

// Submit handles POST /v1/games/{id}/answers.
func (h *GameHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var a model.Answer
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.gameSvc.Submit(mux.Vars(r)["id"], a)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Ranking handles GET /v1/games/{id}/ranking.
func (h *GameHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.gameSvc.FinalRanking(mux.Vars(r)["id"])
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}

// Delete handles DELETE /v1/games/{id}.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.gameSvc.Delete(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

func eventBody(ev *game.Event) map[string]interface{} {
	return map[string]interface{}{"type": ev.Type, "payload": ev.Payload}
}

func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrNotAcceptingAnswers),
		errors.Is(err, game.ErrAnswerPending),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNotStarted):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}
