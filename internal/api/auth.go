package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"recircle/internal/auth"
	"recircle/internal/db"
	"recircle/internal/models"
)

type AuthHandler struct {
	users  *db.UserRepository
	tokens *auth.TokenService
}

func NewAuthHandler(users *db.UserRepository, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type AuthResponse struct {
	Token string             `json:"token"`
	User  *models.PublicUser `json:"user"`
}

type ValidateResponse struct {
	Valid bool               `json:"valid"`
	User  *models.PublicUser `json:"user"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	username := sanitizeText(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if len(username) < 3 {
		badRequest(w, "Username should be at least 3 characters long")
		return
	}

	// Friendly pre-checks; the UNIQUE constraints on username and email
	// are the backstop for concurrent registrations.
	if _, err := h.users.FindByEmail(r.Context(), email); err == nil {
		conflict(w, "Email already exists")
		return
	} else if !errors.Is(err, db.ErrNotFound) {
		slog.Error("error checking email availability", "error", err)
		internalError(w)
		return
	}

	if _, err := h.users.FindByUsername(r.Context(), username); err == nil {
		conflict(w, "Username already exists")
		return
	} else if !errors.Is(err, db.ErrNotFound) {
		slog.Error("error checking username availability", "error", err)
		internalError(w)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("error hashing password", "error", err)
		internalError(w)
		return
	}

	userID, err := db.GenerateID("usr")
	if err != nil {
		slog.Error("error generating user id", "error", err)
		internalError(w)
		return
	}

	user := &models.User{
		ID:           userID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		ProfileImage: defaultAvatarURL(username),
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			conflict(w, "Email or username already exists")
			return
		}
		slog.Error("error creating user", "error", err)
		internalError(w)
		return
	}

	token, _, err := h.tokens.Generate(user.ID)
	if err != nil {
		slog.Error("error issuing token", "error", err, "user_id", user.ID)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Token: token,
		User:  user.Public(),
	})
}

// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.FindByEmail(r.Context(), email)
	if errors.Is(err, db.ErrNotFound) {
		badRequest(w, "User does not exist")
		return
	}
	if err != nil {
		slog.Error("error finding user", "error", err)
		internalError(w)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		badRequest(w, "Invalid credentials")
		return
	}

	token, _, err := h.tokens.Generate(user.ID)
	if err != nil {
		slog.Error("error issuing token", "error", err, "user_id", user.ID)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Token: token,
		User:  user.Public(),
	})
}

// GET /api/auth/validate
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)
	if user == nil {
		unauthorized(w, "User not found in context")
		return
	}

	writeJSON(w, http.StatusOK, ValidateResponse{
		Valid: true,
		User:  user.Public(),
	})
}

// defaultAvatarURL builds the deterministic generated avatar for a new
// account.
func defaultAvatarURL(username string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", url.QueryEscape(username))
}
