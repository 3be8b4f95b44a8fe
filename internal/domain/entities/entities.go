package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrTodoNotFound       = errors.New("todo not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Priority is the urgency of a todo.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// User represents an account in the system
type User struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Email          string     `json:"email" db:"email"`
	Name           *string    `json:"name" db:"name"`
	PasswordHash   *string    `json:"-" db:"password_hash"`
	GoogleSubject  *string    `json:"-" db:"google_subject"`
	XP             int        `json:"xp" db:"xp"`
	Level          int        `json:"level" db:"level"`
	CurrentStreak  int        `json:"currentStreak" db:"current_streak"`
	LongestStreak  int        `json:"longestStreak" db:"longest_streak"`
	LastActiveDate *time.Time `json:"lastActiveDate" db:"last_active_date"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

// Todo represents a single task owned by one user
type Todo struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	UserID        uuid.UUID  `json:"userId" db:"user_id"`
	Title         string     `json:"title" db:"title"`
	Description   *string    `json:"description" db:"description"`
	Priority      Priority   `json:"priority" db:"priority"`
	IsCompleted   bool       `json:"isCompleted" db:"is_completed"`
	DueDate       *time.Time `json:"dueDate" db:"due_date"`
	CompletedAt   *time.Time `json:"completedAt" db:"completed_at"`
	EstimatedTime *int       `json:"estimatedTime" db:"estimated_time"`
	TimeSpent     *int       `json:"timeSpent" db:"time_spent"`
	IsAISuggested bool       `json:"isAiSuggested" db:"is_ai_suggested"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}

// Gamification is the persisted snapshot of a user's derived progress.
type Gamification struct {
	XP             int
	Level          int
	CurrentStreak  int
	LongestStreak  int
	LastActiveDate *time.Time
}

// Business logic methods for User

// HasPassword reports whether the account can sign in with credentials.
// OAuth-only accounts have no password hash.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

func (u *User) Gamification() Gamification {
	return Gamification{
		XP:             u.XP,
		Level:          u.Level,
		CurrentStreak:  u.CurrentStreak,
		LongestStreak:  u.LongestStreak,
		LastActiveDate: u.LastActiveDate,
	}
}

// Equal compares two snapshots, treating last active dates by calendar day.
func (g Gamification) Equal(other Gamification) bool {
	if g.XP != other.XP || g.Level != other.Level ||
		g.CurrentStreak != other.CurrentStreak || g.LongestStreak != other.LongestStreak {
		return false
	}
	if g.LastActiveDate == nil || other.LastActiveDate == nil {
		return g.LastActiveDate == nil && other.LastActiveDate == nil
	}
	return g.LastActiveDate.Format(time.DateOnly) == other.LastActiveDate.Format(time.DateOnly)
}

// Business logic methods for Todo

// IsOverdue reports whether an open todo is past its due date.
func (t *Todo) IsOverdue(now time.Time) bool {
	return !t.IsCompleted && t.DueDate != nil && t.DueDate.Before(now)
}

// IsDone reports whether the todo counts as completed for analytics.
func (t *Todo) IsDone() bool {
	return t.IsCompleted && t.CompletedAt != nil
}

// CompletedBeforeDue reports whether the todo was finished ahead of its deadline.
func (t *Todo) CompletedBeforeDue() bool {
	return t.CompletedAt != nil && t.DueDate != nil && t.CompletedAt.Before(*t.DueDate)
}

// Rank orders priorities for sorting: HIGH first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}
