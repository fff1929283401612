package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"recircle/internal/db"
	"recircle/internal/models"
)

type UserHandler struct {
	users  *db.UserRepository
	events *db.EventRepository
}

func NewUserHandler(users *db.UserRepository, events *db.EventRepository) *UserHandler {
	return &UserHandler{users: users, events: events}
}

// ProfileUser flattens the account and its recycling counters for the
// profile screen.
type ProfileUser struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage"`
	Coins        int    `json:"coins"`
	Plastic      int    `json:"plastic"`
	Glass        int    `json:"glass"`
	Metal        int    `json:"metal"`
	Paper        int    `json:"paper"`
	Organic      int    `json:"organic"`
}

type ProfileResponse struct {
	Success            bool                  `json:"success"`
	User               ProfileUser           `json:"user"`
	CreatedEvents      []models.EventSummary `json:"createdEvents"`
	ParticipatedEvents []models.EventSummary `json:"participatedEvents"`
}

type UpdateMaterialRequest struct {
	UserID        string `json:"userId" validate:"required"`
	MaterialField string `json:"materialField" validate:"required"`
}

type UpdateMaterialResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	UpdatedCount int    `json:"updatedCount"`
	Coins        int    `json:"coins"`
	CoinReward   int    `json:"coinReward"`
}

// GET /api/users/{id}
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.users.FindByID(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		notFound(w, "User not found")
		return
	}
	if err != nil {
		slog.Error("error finding user", "error", err, "user_id", id)
		internalError(w)
		return
	}

	created, err := h.events.ListOwnedSummaries(r.Context(), user.ID)
	if err != nil {
		slog.Error("error listing created events", "error", err, "user_id", id)
		internalError(w)
		return
	}

	participated, err := h.events.ListJoinedSummaries(r.Context(), user.ID)
	if err != nil {
		slog.Error("error listing participated events", "error", err, "user_id", id)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{
		Success: true,
		User: ProfileUser{
			ID:           user.ID,
			Username:     user.Username,
			Email:        user.Email,
			ProfileImage: user.ProfileImage,
			Coins:        user.Coins,
			Plastic:      user.PlasticMaterial,
			Glass:        user.GlassMaterial,
			Metal:        user.MetalMaterial,
			Paper:        user.PaperMaterial,
			Organic:      user.OrganicMaterial,
		},
		CreatedEvents:      created,
		ParticipatedEvents: participated,
	})
}

// POST /api/users/update-material
func (h *UserHandler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	var req UpdateMaterialRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	user, reward, err := h.users.IncrementMaterial(r.Context(), req.UserID, req.MaterialField)
	if errors.Is(err, db.ErrUnknownMaterial) {
		badRequest(w, "Invalid material field")
		return
	}
	if errors.Is(err, db.ErrNotFound) {
		notFound(w, "User not found")
		return
	}
	if err != nil {
		slog.Error("error updating material", "error", err, "user_id", req.UserID, "field", req.MaterialField)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, UpdateMaterialResponse{
		Success:      true,
		Message:      "Material count updated successfully",
		UpdatedCount: user.MaterialCount(req.MaterialField),
		Coins:        user.Coins,
		CoinReward:   reward,
	})
}
