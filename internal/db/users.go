package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recircle/internal/models"
)

// materialColumns maps the API-facing material field names to their
// backing column and per-scan coin reward.
var materialColumns = map[string]struct {
	column string
	reward int
}{
	"plasticMaterial": {"plastic_material", 2},
	"glassMaterial":   {"glass_material", 4},
	"metalMaterial":   {"metal_material", 5},
	"paperMaterial":   {"paper_material", 1},
	"organicMaterial": {"organic_material", 3},
}

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, profile_image, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.ProfileImage, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, `WHERE id = ?`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, `WHERE email = ?`, email)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, `WHERE username = ?`, username)
}

// IncrementMaterial bumps one material counter and the coin balance in a
// single UPDATE so concurrent scans from multiple sessions cannot lose
// updates. It returns the refreshed user and the coin reward applied.
func (r *UserRepository) IncrementMaterial(ctx context.Context, userID, field string) (*models.User, int, error) {
	m, ok := materialColumns[field]
	if !ok {
		return nil, 0, ErrUnknownMaterial
	}

	query := fmt.Sprintf(
		`UPDATE users SET %s = %s + 1, coins = coins + ?, updated_at = ? WHERE id = ?`,
		m.column, m.column,
	)
	result, err := r.db.ExecContext(ctx, query, m.reward, time.Now().UTC(), userID)
	if err != nil {
		return nil, 0, fmt.Errorf("incrementing material: %w", err)
	}
	if err := checkRowsAffected(result); err != nil {
		return nil, 0, err
	}

	user, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return user, m.reward, nil
}

func (r *UserRepository) findOne(ctx context.Context, where string, args ...any) (*models.User, error) {
	var u models.User

	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, profile_image, coins,
		        plastic_material, glass_material, metal_material, paper_material, organic_material,
		        created_at, updated_at
		 FROM users `+where, args...,
	).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.ProfileImage,
		&u.Coins,
		&u.PlasticMaterial,
		&u.GlassMaterial,
		&u.MetalMaterial,
		&u.PaperMaterial,
		&u.OrganicMaterial,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return &u, nil
}
