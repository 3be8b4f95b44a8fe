package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/taskmaster/focusboard/internal/domain/analytics"
	"github.com/taskmaster/focusboard/internal/domain/entities"
)

// ErrCacheMiss is returned by CacheRepository.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// AuthService interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*entities.User, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	LoginWithGoogle(ctx context.Context, profile GoogleProfile) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ValidateToken(tokenString string) (*Claims, error)
}

// UserService interface for user profile operations
type UserService interface {
	CreateUser(ctx context.Context, req RegisterRequest) (*entities.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*entities.User, error)
}

// TodoService interface for todo management operations
type TodoService interface {
	List(ctx context.Context, userID uuid.UUID) ([]entities.Todo, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateTodoRequest) (*entities.Todo, error)
	Update(ctx context.Context, userID, id uuid.UUID, req UpdateTodoRequest) (*entities.Todo, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	BulkCreate(ctx context.Context, userID uuid.UUID, reqs []CreateTodoRequest) ([]entities.Todo, error)
	BulkUpdate(ctx context.Context, userID uuid.UUID, req BulkUpdateTodosRequest) (int64, error)
}

// AnalyticsService interface for derived statistics
type AnalyticsService interface {
	Stats(ctx context.Context, userID uuid.UUID, loc *time.Location) (*analytics.Stats, error)
	Heatmap(ctx context.Context, userID uuid.UUID, loc *time.Location, days int) ([]analytics.Day, error)
	Invalidate(ctx context.Context, userID uuid.UUID)
}

// AssistantService interface for AI-assisted planning
type AssistantService interface {
	Suggestions(ctx context.Context, userID uuid.UUID, req SuggestionsRequest) ([]entities.Suggestion, error)
	Breakdown(ctx context.Context, userID uuid.UUID, req BreakdownRequest) (*entities.TaskBreakdown, error)
	SmartPlan(ctx context.Context, userID uuid.UUID, req SmartPlanRequest) (*entities.SmartPlan, error)
}

// TextGenerator produces free-form model output for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// OAuthProvider drives an authorization-code sign-in with an identity provider.
// The verifier is the PKCE secret kept by the client between the two calls.
type OAuthProvider interface {
	AuthCodeURL(state, verifier string) string
	Exchange(ctx context.Context, code, verifier string) (*GoogleProfile, error)
}

// Request/Response Types

// Auth related types
type RegisterRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	TokenType    string         `json:"tokenType"`
	ExpiresIn    int64          `json:"expiresIn"`
	User         *entities.User `json:"user"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// GoogleProfile is the subset of the Google userinfo document used for sign-in.
type GoogleProfile struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// User related types
type UpdateProfileRequest struct {
	Name *string `json:"name" validate:"omitempty,max=100"`
}

// Todo related types
type CreateTodoRequest struct {
	Title         string             `json:"title" validate:"required,max=500"`
	Description   *string            `json:"description" validate:"omitempty,max=5000"`
	DueDate       *time.Time         `json:"dueDate"`
	Priority      *entities.Priority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	EstimatedTime *int               `json:"estimatedTime" validate:"omitempty,gt=0"`
	IsAISuggested bool               `json:"isAiSuggested"`
}

type UpdateTodoRequest struct {
	Title         *string            `json:"title" validate:"omitempty,min=1,max=500"`
	Description   *string            `json:"description" validate:"omitempty,max=5000"`
	DueDate       *time.Time         `json:"dueDate"`
	Priority      *entities.Priority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	IsCompleted   *bool              `json:"isCompleted"`
	EstimatedTime *int               `json:"estimatedTime" validate:"omitempty,gt=0"`
	TimeSpent     *int               `json:"timeSpent" validate:"omitempty,gte=0"`
}

// Patch converts the request into repository column changes.
func (r UpdateTodoRequest) Patch() TodoPatch {
	return TodoPatch{
		Title:         r.Title,
		Description:   r.Description,
		DueDate:       r.DueDate,
		Priority:      r.Priority,
		IsCompleted:   r.IsCompleted,
		EstimatedTime: r.EstimatedTime,
		TimeSpent:     r.TimeSpent,
	}
}

type BulkTodoUpdates struct {
	IsCompleted   *bool              `json:"isCompleted"`
	Priority      *entities.Priority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate       *time.Time         `json:"dueDate"`
	IsAISuggested *bool              `json:"isAiSuggested"`
}

type BulkUpdateTodosRequest struct {
	TodoIDs []uuid.UUID     `json:"todoIds" validate:"required,min=1,max=100"`
	Updates BulkTodoUpdates `json:"updates"`
}

// Patch converts the bulk updates into repository column changes.
func (r BulkUpdateTodosRequest) Patch() TodoPatch {
	return TodoPatch{
		IsCompleted:   r.Updates.IsCompleted,
		Priority:      r.Updates.Priority,
		DueDate:       r.Updates.DueDate,
		IsAISuggested: r.Updates.IsAISuggested,
	}
}

type BulkCreateResponse struct {
	Count int             `json:"count"`
	Todos []entities.Todo `json:"todos"`
}

type BulkUpdateResponse struct {
	Count int64 `json:"count"`
}

type DeleteTodoResponse struct {
	Success bool        `json:"success"`
	Deleted DeleteCount `json:"deleted"`
}

type DeleteCount struct {
	Count int `json:"count"`
}

// AI related types
type SuggestionsRequest struct {
	// Todos defaults to the caller's stored todos when omitted.
	Todos   []entities.Todo `json:"todos"`
	Context string          `json:"context" validate:"max=2000"`
}

type SuggestionsResponse struct {
	Suggestions []entities.Suggestion `json:"suggestions"`
}

type BreakdownRequest struct {
	TaskTitle       string `json:"taskTitle" validate:"max=500"`
	TaskDescription string `json:"taskDescription" validate:"max=5000"`
}

type PlanTask struct {
	ID            string     `json:"id" validate:"required"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	Priority      string     `json:"priority"`
	DueDate       *time.Time `json:"dueDate"`
	EstimatedTime *int       `json:"estimatedTime"`
}

type SmartPlanRequest struct {
	Tasks []PlanTask `json:"tasks" validate:"max=100,dive"`
}

// Response types for common structures
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type ValidationErrorResponse struct {
	Message string                `json:"message"`
	Issues  []entities.FieldIssue `json:"issues"`
}

type ParseErrorResponse struct {
	Message     string `json:"message"`
	RawResponse string `json:"rawResponse"`
}

type RegisterResponse struct {
	Message string         `json:"message"`
	User    RegisteredUser `json:"user"`
}

type RegisteredUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  *string   `json:"name"`
}
