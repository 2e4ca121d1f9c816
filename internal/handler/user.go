package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ekaraca/vspecs/internal/apperror"
	"github.com/ekaraca/vspecs/internal/auth"
	"github.com/ekaraca/vspecs/internal/model"
	"github.com/ekaraca/vspecs/internal/service"
)

// UserHandler exposes the authenticated user's own profile and favorites.
// Every route here sits behind auth.RequireAuth, so the identity in the
// context is always the verified token's — a request body can't address
// someone else's record.
type UserHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(auth *service.AuthService, logger *slog.Logger) *UserHandler {
	return &UserHandler{auth: auth, logger: logger}
}

// HandleGetProfile returns the caller's record, digest excluded.
//
// HTTP: GET /api/user/profile (auth required)
func (h *UserHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("access denied, please log in"))
		return
	}

	user, err := h.auth.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	MySetup   model.SetupPatch `json:"mySetup"`
	AvatarURL *string          `json:"avatarUrl"`
}

type updateProfileResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// HandleUpdateProfile merges setup changes into the caller's record.
//
// HTTP: PUT /api/user/profile (auth required)
// Body: {"mySetup": {...partial...}, "avatarUrl": "..."}
// Setup keys left out of the body keep their stored values; a missing
// avatarUrl leaves the avatar alone.
func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("access denied, please log in"))
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	user, err := h.auth.UpdateProfile(r.Context(), userID, req.MySetup, req.AvatarURL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updateProfileResponse{
		Message: "settings saved",
		User:    user,
	})
}

type favoritesResponse struct {
	Favorites []int64 `json:"favorites"`
}

// HandleAddFavorite puts a player into the caller's favorites.
//
// HTTP: POST /api/user/favorites/{playerID} (auth required)
func (h *UserHandler) HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("access denied, please log in"))
		return
	}

	playerID, err := playerIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	favorites, err := h.auth.AddFavorite(r.Context(), userID, playerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, favoritesResponse{Favorites: favorites})
}

// HandleRemoveFavorite drops a player from the caller's favorites.
//
// HTTP: DELETE /api/user/favorites/{playerID} (auth required)
func (h *UserHandler) HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("access denied, please log in"))
		return
	}

	playerID, err := playerIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	favorites, err := h.auth.RemoveFavorite(r.Context(), userID, playerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, favoritesResponse{Favorites: favorites})
}

// playerIDParam parses the {playerID} chi URL parameter.
func playerIDParam(r *http.Request) (int64, error) {
	raw := r.PathValue("playerID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed("playerID", "player id must be a positive number")
	}
	return id, nil
}
