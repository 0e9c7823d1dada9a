package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"reeltrivia/internal/dataset"
	"reeltrivia/internal/enrich"
	"reeltrivia/internal/model"
	"reeltrivia/internal/service"
)

// EntryHandler backs the data-entry screens: external database lookups and
// CSV edits.
type EntryHandler struct {
	entrySvc *service.EntryService
}

func NewEntryHandler(entrySvc *service.EntryService) *EntryHandler {
	return &EntryHandler{entrySvc: entrySvc}
}

// SearchMovies handles GET /v1/entry/movies.
func (h *EntryHandler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	results, err := h.entrySvc.SearchMovies(r.Context(), title, r.URL.Query().Get("year"))
	if err != nil {
		writeEnrichError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// Movie handles GET /v1/entry/movies/{tmdbId}.
func (h *EntryHandler) Movie(w http.ResponseWriter, r *http.Request) {
	details, err := h.entrySvc.Movie(r.Context(), mux.Vars(r)["tmdbId"])
	if err != nil {
		writeEnrichError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// Cast handles GET /v1/entry/cast/{imdbId}.
func (h *EntryHandler) Cast(w http.ResponseWriter, r *http.Request) {
	cast, err := h.entrySvc.Cast(r.Context(), mux.Vars(r)["imdbId"])
	if err != nil {
		writeEnrichError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cast)
}

// OMDbRating handles GET /v1/entry/omdb/{imdbId}.
func (h *EntryHandler) OMDbRating(w http.ResponseWriter, r *http.Request) {
	rating, err := h.entrySvc.OMDbRating(r.Context(), mux.Vars(r)["imdbId"])
	if err != nil {
		writeEnrichError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rating)
}

// ProductionDates handles GET /v1/entry/dates/{imdbId}.
func (h *EntryHandler) ProductionDates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end, err := h.entrySvc.ProductionDates(r.Context(), mux.Vars(r)["imdbId"], q.Get("title"), q.Get("year"))
	if err != nil {
		writeEnrichError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"productionStart": start,
		"productionEnd":   end,
	})
}

// Production handles GET /v1/entry/productions/{id}.
func (h *EntryHandler) Production(w http.ResponseWriter, r *http.Request) {
	row, err := h.entrySvc.Production(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if row == nil {
		writeError(w, http.StatusNotFound, "production not found")
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// SaveProduction handles PUT /v1/entry/productions/{id}.
func (h *EntryHandler) SaveProduction(w http.ResponseWriter, r *http.Request) {
	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.entrySvc.SaveProduction(mux.Vars(r)["id"], fields); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": true})
}

// CheckActors handles POST /v1/entry/check-actors.
func (h *EntryHandler) CheckActors(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Names []string `json:"names"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	known, err := h.entrySvc.KnownActors(req.Names)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"known": known})
}

// CheckRoles handles POST /v1/entry/check-roles.
func (h *EntryHandler) CheckRoles(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Roles []dataset.RolePair `json:"roles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	known, err := h.entrySvc.KnownRoles(req.Roles)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"known": known})
}

// RoleExists handles GET /v1/entry/role-exists.
func (h *EntryHandler) RoleExists(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	productionID, character := q.Get("productionId"), q.Get("character")
	if productionID == "" || character == "" {
		writeError(w, http.StatusBadRequest, "productionId and character are required")
		return
	}
	exists, err := h.entrySvc.RoleExists(productionID, character)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

// AddActor handles POST /v1/entry/actors.
func (h *EntryHandler) AddActor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IMDbID string `json:"imdbId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IMDbID == "" {
		writeError(w, http.StatusBadRequest, "imdbId is required")
		return
	}
	added, err := h.entrySvc.AddActor(r.Context(), req.IMDbID)
	if err != nil {
		writeEnrichError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"added": added})
}

// AddRoles handles POST /v1/entry/roles.
func (h *EntryHandler) AddRoles(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Roles []model.Role `json:"roles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	added, err := h.entrySvc.AddRoles(req.Roles)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"added": added})
}

// BulkUpdate handles POST /v1/entry/bulk-update. Progress is streamed back
// as server-sent events so the UI can show per-title results as they land.
func (h *EntryHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Actions map[string]enrich.Action `json:"actions"`
		All     bool                     `json:"all"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Actions) == 0 {
		writeError(w, http.StatusBadRequest, "actions are required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	emit := func(p enrich.Progress) {
		data, err := json.Marshal(p)
		if err != nil {
			return
		}
		w.Write([]byte("data: "))
		w.Write(data)
		w.Write([]byte("\n\n"))
		flusher.Flush()
	}

	err := h.entrySvc.BulkUpdate(r.Context(), req.Actions, req.All, emit)
	if err != nil {
		emit(enrich.Progress{Message: "bulk update aborted", Error: err.Error()})
	}
	w.Write([]byte("data: [DONE]\n\n"))
	flusher.Flush()
}

func writeEnrichError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, enrich.ErrNotFound), errors.Is(err, enrich.ErrMovieNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}
