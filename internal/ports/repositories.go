package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskmaster/focusboard/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByGoogleSubject(ctx context.Context, subject string) (*entities.User, error)
	LinkGoogleSubject(ctx context.Context, id uuid.UUID, subject string) error
	UpdateName(ctx context.Context, id uuid.UUID, name *string) (*entities.User, error)
	UpdateGamification(ctx context.Context, id uuid.UUID, g entities.Gamification) error
}

// TodoRepository defines the interface for todo data operations. Every
// method is scoped to the owning user.
type TodoRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]entities.Todo, error)
	Create(ctx context.Context, todo *entities.Todo) error
	// CreateMany inserts every todo in one transaction.
	CreateMany(ctx context.Context, todos []*entities.Todo) error
	// Update applies patch to an owned todo and returns the stored row.
	Update(ctx context.Context, userID, id uuid.UUID, patch TodoPatch) (*entities.Todo, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// BulkUpdate applies patch to the listed todos the user owns and returns
	// the number of rows changed.
	BulkUpdate(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, patch TodoPatch) (int64, error)
}

// AuthRepository defines the interface for authentication operations
type AuthRepository interface {
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	// Get decodes the cached value into dest. A miss returns ErrCacheMiss.
	Get(ctx context.Context, key string, dest interface{}) error
	DeletePattern(ctx context.Context, pattern string) error
	Ping(ctx context.Context) error
}

// TodoPatch lists the columns an update may change. Nil fields are left
// untouched.
type TodoPatch struct {
	Title         *string
	Description   *string
	DueDate       *time.Time
	Priority      *entities.Priority
	IsCompleted   *bool
	EstimatedTime *int
	TimeSpent     *int
	IsAISuggested *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil &&
		p.Priority == nil && p.IsCompleted == nil && p.EstimatedTime == nil &&
		p.TimeSpent == nil && p.IsAISuggested == nil
}

// RefreshToken represents a refresh token record
type RefreshToken struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	TokenHash string     `json:"token_hash" db:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	RevokedAt *time.Time `json:"revoked_at" db:"revoked_at"`
}

// IsExpired checks if the refresh token is expired
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// IsRevoked checks if the refresh token is revoked
func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

// IsValid checks if the refresh token is valid
func (rt *RefreshToken) IsValid() bool {
	return !rt.IsExpired() && !rt.IsRevoked()
}
