package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taskmaster/focusboard/internal/domain/entities"
	"github.com/taskmaster/focusboard/internal/ports"
)

const userColumns = `id, email, name, password_hash, google_subject, xp, level,
			current_streak, longest_streak, last_active_date, created_at, updated_at`

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) ports.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entities.User) error {
	query := r.db.Rebind(`
		INSERT INTO users (id, email, name, password_hash, google_subject, xp, level,
			current_streak, longest_streak, last_active_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Level == 0 {
		user.Level = 1
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash, user.GoogleSubject,
		user.XP, user.Level, user.CurrentStreak, user.LongestStreak, user.LastActiveDate,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.ErrEmailAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return r.getOne(ctx, "get user by id", `id = ?`, id)
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.getOne(ctx, "get user by email", `email = ?`, email)
}

func (r *UserRepositoryImpl) GetByGoogleSubject(ctx context.Context, subject string) (*entities.User, error) {
	return r.getOne(ctx, "get user by google subject", `google_subject = ?`, subject)
}

func (r *UserRepositoryImpl) getOne(ctx context.Context, op, where string, arg interface{}) (*entities.User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + where)

	var user entities.User
	err := r.db.GetContext(ctx, &user, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func (r *UserRepositoryImpl) LinkGoogleSubject(ctx context.Context, id uuid.UUID, subject string) error {
	query := r.db.Rebind(`
		UPDATE users
		SET google_subject = ?, updated_at = ?
		WHERE id = ? AND (google_subject IS NULL OR google_subject = ?)`)

	result, err := r.db.ExecContext(ctx, query, subject, time.Now().UTC(), id, subject)
	if err != nil {
		return fmt.Errorf("link google subject: %w", err)
	}

	// A missing user and an account bound to another subject look the same here.
	return requireRow(result, entities.ErrUserNotFound)
}

func (r *UserRepositoryImpl) UpdateName(ctx context.Context, id uuid.UUID, name *string) (*entities.User, error) {
	query := r.db.Rebind(`
		UPDATE users
		SET name = ?, updated_at = ?
		WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, name, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("update user name: %w", err)
	}
	if err := requireRow(result, entities.ErrUserNotFound); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *UserRepositoryImpl) UpdateGamification(ctx context.Context, id uuid.UUID, g entities.Gamification) error {
	query := r.db.Rebind(`
		UPDATE users
		SET xp = ?, level = ?, current_streak = ?, longest_streak = ?,
			last_active_date = ?, updated_at = ?
		WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		g.XP, g.Level, g.CurrentStreak, g.LongestStreak, g.LastActiveDate,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update gamification: %w", err)
	}

	return requireRow(result, entities.ErrUserNotFound)
}
