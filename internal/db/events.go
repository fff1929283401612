package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recircle/internal/models"
)

type EventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `e.id, e.title, e.caption, e.event_date, e.location, e.user_id,
	u.username, u.profile_image, e.created_at, e.updated_at`

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (id, title, caption, event_date, location, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Title, event.Caption, event.EventDate, event.Location, event.UserID, now, now,
	)
	if err != nil {
		return fmt.Errorf("creating event: %w", err)
	}

	if event.Participants == nil {
		event.Participants = []models.UserSummary{}
	}

	return nil
}

// List returns one page of events, newest first, with owner and
// participants populated, plus the total event count.
func (r *EventRepository) List(ctx context.Context, page, limit int) ([]*models.Event, int, error) {
	offset := (page - 1) * limit

	events, err := r.queryEvents(ctx,
		`ORDER BY e.created_at DESC, e.id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting events: %w", err)
	}

	return events, total, nil
}

func (r *EventRepository) ListByOwner(ctx context.Context, userID string) ([]*models.Event, error) {
	return r.queryEvents(ctx, `WHERE e.user_id = ? ORDER BY e.created_at DESC, e.id`, userID)
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	var owner models.UserSummary

	err := r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+`
		 FROM events e JOIN users u ON u.id = e.user_id
		 WHERE e.id = ?`, id,
	).Scan(
		&e.ID, &e.Title, &e.Caption, &e.EventDate, &e.Location, &e.UserID,
		&owner.Username, &owner.ProfileImage, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}

	owner.ID = e.UserID
	e.User = &owner

	if e.Participants, err = r.participants(ctx, e.ID); err != nil {
		return nil, err
	}

	return &e, nil
}

// Update persists the mutable event fields. Ownership is checked by the
// caller; absent fields were already merged into event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE events SET title = ?, caption = ?, event_date = ?, location = ?, updated_at = ? WHERE id = ?`,
		event.Title, event.Caption, event.EventDate, event.Location, event.UpdatedAt, event.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	return checkRowsAffected(result)
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return checkRowsAffected(result)
}

// AddParticipant records a membership. The composite primary key is the
// backstop against duplicate joins racing past the handler's check.
func (r *EventRepository) AddParticipant(ctx context.Context, eventID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_participants (event_id, user_id, joined_at) VALUES (?, ?, ?)`,
		eventID, userID, time.Now().UTC(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("adding participant: %w", err)
	}
	return nil
}

// RemoveParticipant deletes a membership, returning ErrNotFound when the
// user was not a participant.
func (r *EventRepository) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM event_participants WHERE event_id = ? AND user_id = ?`,
		eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("removing participant: %w", err)
	}
	return checkRowsAffected(result)
}

// ListOwnedSummaries returns the compact profile listing of events the
// user created, most recent event date first.
func (r *EventRepository) ListOwnedSummaries(ctx context.Context, userID string) ([]models.EventSummary, error) {
	return r.querySummaries(ctx,
		`SELECT e.id, e.title, e.event_date, e.location, e.user_id, u.username, u.profile_image
		 FROM events e JOIN users u ON u.id = e.user_id
		 WHERE e.user_id = ?
		 ORDER BY e.event_date DESC, e.id`, userID)
}

// ListJoinedSummaries returns the compact profile listing of events the
// user participates in, most recent event date first.
func (r *EventRepository) ListJoinedSummaries(ctx context.Context, userID string) ([]models.EventSummary, error) {
	return r.querySummaries(ctx,
		`SELECT e.id, e.title, e.event_date, e.location, e.user_id, u.username, u.profile_image
		 FROM event_participants ep
		 JOIN events e ON e.id = ep.event_id
		 JOIN users u ON u.id = e.user_id
		 WHERE ep.user_id = ?
		 ORDER BY e.event_date DESC, e.id`, userID)
}

func (r *EventRepository) queryEvents(ctx context.Context, clause string, args ...any) ([]*models.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+`
		 FROM events e JOIN users u ON u.id = e.user_id `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		var e models.Event
		var owner models.UserSummary

		if err := rows.Scan(
			&e.ID, &e.Title, &e.Caption, &e.EventDate, &e.Location, &e.UserID,
			&owner.Username, &owner.ProfileImage, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}

		owner.ID = e.UserID
		e.User = &owner
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, e := range events {
		if e.Participants, err = r.participants(ctx, e.ID); err != nil {
			return nil, err
		}
	}

	return events, nil
}

func (r *EventRepository) participants(ctx context.Context, eventID string) ([]models.UserSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.username, u.profile_image
		 FROM event_participants ep JOIN users u ON u.id = ep.user_id
		 WHERE ep.event_id = ?
		 ORDER BY u.username`, eventID)
	if err != nil {
		return nil, fmt.Errorf("querying participants: %w", err)
	}
	defer rows.Close()

	participants := []models.UserSummary{}
	for rows.Next() {
		var p models.UserSummary
		if err := rows.Scan(&p.ID, &p.Username, &p.ProfileImage); err != nil {
			return nil, fmt.Errorf("scanning participant: %w", err)
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

func (r *EventRepository) querySummaries(ctx context.Context, query string, args ...any) ([]models.EventSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying event summaries: %w", err)
	}
	defer rows.Close()

	summaries := []models.EventSummary{}
	for rows.Next() {
		var s models.EventSummary
		var owner models.UserSummary
		var ownerID string

		if err := rows.Scan(&s.ID, &s.Title, &s.EventDate, &s.Location, &ownerID, &owner.Username, &owner.ProfileImage); err != nil {
			return nil, fmt.Errorf("scanning event summary: %w", err)
		}

		owner.ID = ownerID
		s.User = &owner
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}
