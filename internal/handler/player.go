package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ekaraca/vspecs/internal/apperror"
	"github.com/ekaraca/vspecs/internal/model"
	"github.com/ekaraca/vspecs/internal/seed"
	"github.com/ekaraca/vspecs/internal/service"
)

// PlayerHandler serves the pro-player catalogue. Reads are public; the
// create/update/delete/seed routes are mounted behind the admin gate in
// server.setupRoutes.
type PlayerHandler struct {
	players *service.PlayerService
	logger  *slog.Logger
}

// NewPlayerHandler creates a PlayerHandler.
func NewPlayerHandler(players *service.PlayerService, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{players: players, logger: logger}
}

// HandleList returns every player.
//
// HTTP: GET /api/players
func (h *PlayerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, players)
}

// HandleGetByID returns one player.
//
// HTTP: GET /api/players/{id}
func (h *PlayerHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	player, err := h.players.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, player)
}

type playerResponse struct {
	Message string        `json:"message"`
	Player  *model.Player `json:"player"`
}

// HandleCreate inserts a new player.
//
// HTTP: POST /api/admin/players (admin)
func (h *PlayerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var player model.Player
	if err := json.NewDecoder(r.Body).Decode(&player); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	created, err := h.players.Create(r.Context(), &player)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, playerResponse{
		Message: "player created",
		Player:  created,
	})
}

// HandleUpdate replaces a player record.
//
// HTTP: PUT /api/admin/players/{id} (admin)
func (h *PlayerHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var player model.Player
	if err := json.NewDecoder(r.Body).Decode(&player); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	updated, err := h.players.Update(r.Context(), id, &player)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, playerResponse{
		Message: "player updated",
		Player:  updated,
	})
}

// HandleDelete removes a player.
//
// HTTP: DELETE /api/admin/players/{id} (admin)
func (h *PlayerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.players.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "player deleted"})
}

// HandleSeed wipes the catalogue and loads the embedded dataset.
//
// HTTP: POST /api/admin/seed (admin)
func (h *PlayerHandler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	players, err := seed.Players()
	if err != nil {
		h.logger.Error("seed dataset unreadable", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	count, err := h.players.Seed(r.Context(), players)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "players seeded",
		"count":   count,
	})
}

// idParam parses the {id} chi URL parameter.
func idParam(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed("id", "player id must be a positive number")
	}
	return id, nil
}
