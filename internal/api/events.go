package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"recircle/internal/db"
	"recircle/internal/models"
)

const (
	defaultEventPageLimit = 5
	maxEventPageLimit     = 100
)

type EventHandler struct {
	events *db.EventRepository
}

func NewEventHandler(events *db.EventRepository) *EventHandler {
	return &EventHandler{events: events}
}

type CreateEventRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Caption   string `json:"caption" validate:"required,max=2000"`
	EventDate string `json:"eventDate" validate:"required,max=100"`
	Location  string `json:"location" validate:"required,max=200"`
}

type UpdateEventRequest struct {
	Title     string `json:"title" validate:"max=200"`
	Caption   string `json:"caption" validate:"max=2000"`
	EventDate string `json:"eventDate" validate:"max=100"`
	Location  string `json:"location" validate:"max=200"`
}

type EventListResponse struct {
	Events      []*models.Event `json:"events"`
	CurrentPage int             `json:"currentPage"`
	TotalEvents int             `json:"totalEvents"`
	TotalPages  int             `json:"totalPages"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// POST /api/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := CurrentUser(r)

	var req CreateEventRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	title := sanitizeText(req.Title)
	caption := sanitizeText(req.Caption)
	eventDate := sanitizeText(req.EventDate)
	location := sanitizeText(req.Location)
	if title == "" || caption == "" || eventDate == "" || location == "" {
		badRequest(w, "Please provide all fields")
		return
	}

	eventID, err := db.GenerateID("evt")
	if err != nil {
		slog.Error("error generating event id", "error", err)
		internalError(w)
		return
	}

	event := &models.Event{
		ID:        eventID,
		Title:     title,
		Caption:   caption,
		EventDate: eventDate,
		Location:  location,
		UserID:    actor.ID,
		User: &models.UserSummary{
			ID:           actor.ID,
			Username:     actor.Username,
			ProfileImage: actor.ProfileImage,
		},
	}

	if err := h.events.Create(r.Context(), event); err != nil {
		slog.Error("error creating event", "error", err)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// GET /api/events?page=&limit=
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parseListQuery(r)

	events, total, err := h.events.List(r.Context(), page, limit)
	if err != nil {
		slog.Error("error listing events", "error", err)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, EventListResponse{
		Events:      events,
		CurrentPage: page,
		TotalEvents: total,
		TotalPages:  (total + limit - 1) / limit,
	})
}

// GET /api/events/user
func (h *EventHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor := CurrentUser(r)

	events, err := h.events.ListByOwner(r.Context(), actor.ID)
	if err != nil {
		slog.Error("error listing user events", "error", err, "user_id", actor.ID)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// GET /api/events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !db.IsValidID(id) {
		badRequest(w, "Invalid event ID format")
		return
	}

	event, err := h.events.FindByID(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		notFound(w, "Event not found")
		return
	}
	if err != nil {
		slog.Error("error getting event", "error", err, "event_id", id)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// PUT /api/events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := CurrentUser(r)
	id := chi.URLParam(r, "id")

	var req UpdateEventRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	event, err := h.events.FindByID(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		notFound(w, "Event not found")
		return
	}
	if err != nil {
		slog.Error("error getting event", "error", err, "event_id", id)
		internalError(w)
		return
	}

	if event.UserID != actor.ID {
		unauthorized(w, "Unauthorized")
		return
	}

	// Empty fields leave the stored value untouched.
	if v := sanitizeText(req.Title); v != "" {
		event.Title = v
	}
	if v := sanitizeText(req.Caption); v != "" {
		event.Caption = v
	}
	if v := sanitizeText(req.EventDate); v != "" {
		event.EventDate = v
	}
	if v := sanitizeText(req.Location); v != "" {
		event.Location = v
	}

	if err := h.events.Update(r.Context(), event); err != nil {
		slog.Error("error updating event", "error", err, "event_id", id)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// DELETE /api/events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := CurrentUser(r)
	id := chi.URLParam(r, "id")

	event, err := h.events.FindByID(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		notFound(w, "Event not found")
		return
	}
	if err != nil {
		slog.Error("error getting event", "error", err, "event_id", id)
		internalError(w)
		return
	}

	if event.UserID != actor.ID {
		unauthorized(w, "Unauthorized")
		return
	}

	if err := h.events.Delete(r.Context(), id); err != nil {
		slog.Error("error deleting event", "error", err, "event_id", id)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Event deleted successfully"})
}

// POST /api/events/{id}/join
func (h *EventHandler) Join(w http.ResponseWriter, r *http.Request) {
	actor := CurrentUser(r)
	id := chi.URLParam(r, "id")

	if _, err := h.events.FindByID(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			notFound(w, "Event not found")
			return
		}
		slog.Error("error getting event", "error", err, "event_id", id)
		internalError(w)
		return
	}

	if err := h.events.AddParticipant(r.Context(), id, actor.ID); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			conflict(w, "You have already joined this event")
			return
		}
		slog.Error("error joining event", "error", err, "event_id", id, "user_id", actor.ID)
		internalError(w)
		return
	}

	h.respondWithEvent(w, r, id)
}

// POST /api/events/{id}/leave
func (h *EventHandler) Leave(w http.ResponseWriter, r *http.Request) {
	actor := CurrentUser(r)
	id := chi.URLParam(r, "id")

	if _, err := h.events.FindByID(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			notFound(w, "Event not found")
			return
		}
		slog.Error("error getting event", "error", err, "event_id", id)
		internalError(w)
		return
	}

	if err := h.events.RemoveParticipant(r.Context(), id, actor.ID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			conflict(w, "You are not a participant of this event")
			return
		}
		slog.Error("error leaving event", "error", err, "event_id", id, "user_id", actor.ID)
		internalError(w)
		return
	}

	h.respondWithEvent(w, r, id)
}

func (h *EventHandler) respondWithEvent(w http.ResponseWriter, r *http.Request, id string) {
	event, err := h.events.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("error reloading event", "error", err, "event_id", id)
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// parseListQuery reads page and limit, clamping anything non-numeric or
// non-positive instead of passing it through to the query.
func parseListQuery(r *http.Request) (page, limit int) {
	page = 1
	limit = defaultEventPageLimit

	if v := strings.TrimSpace(r.URL.Query().Get("page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxEventPageLimit {
		limit = maxEventPageLimit
	}

	return page, limit
}
