package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/taskmaster/focusboard/internal/domain/entities"
	"github.com/taskmaster/focusboard/internal/infrastructure/logger"
	"github.com/taskmaster/focusboard/internal/ports"
)

// MaxBulkItems bounds bulk create and bulk update requests.
const MaxBulkItems = 100

// analyticsInvalidator drops cached analytics after a todo mutation.
type analyticsInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID)
}

// TodoService handles todo operations. Every query is scoped to the caller.
type TodoService struct {
	todoRepo  ports.TodoRepository
	analytics analyticsInvalidator
	validator *Validator
	logger    *logger.Logger
}

// NewTodoService creates a new todo service. analytics may be nil.
func NewTodoService(todoRepo ports.TodoRepository, analytics analyticsInvalidator, validator *Validator, logger *logger.Logger) *TodoService {
	return &TodoService{
		todoRepo:  todoRepo,
		analytics: analytics,
		validator: validator,
		logger:    logger.WithComponent("todos"),
	}
}

// List returns the caller's todos, newest first
func (s *TodoService) List(ctx context.Context, userID uuid.UUID) ([]entities.Todo, error) {
	todos, err := s.todoRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Create stores a new todo owned by the caller
func (s *TodoService) Create(ctx context.Context, userID uuid.UUID, req ports.CreateTodoRequest) (*entities.Todo, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	todo := newTodo(userID, req)
	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	s.logger.Infow("Todo created", "user_id", userID, "todo_id", todo.ID)
	s.invalidate(ctx, userID)
	return todo, nil
}

// Update applies a partial update to one of the caller's todos
func (s *TodoService) Update(ctx context.Context, userID, id uuid.UUID, req ports.UpdateTodoRequest) (*entities.Todo, error) {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	todo, err := s.todoRepo.Update(ctx, userID, id, req.Patch())
	if err != nil {
		if errors.Is(err, entities.ErrTodoNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	s.logger.Infow("Todo updated", "user_id", userID, "todo_id", id)
	s.invalidate(ctx, userID)
	return todo, nil
}

// Delete removes one of the caller's todos
func (s *TodoService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.todoRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, entities.ErrTodoNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.logger.Infow("Todo deleted", "user_id", userID, "todo_id", id)
	s.invalidate(ctx, userID)
	return nil
}

// BulkCreate validates every item and inserts them all in one transaction
func (s *TodoService) BulkCreate(ctx context.Context, userID uuid.UUID, reqs []ports.CreateTodoRequest) ([]entities.Todo, error) {
	if len(reqs) == 0 {
		return nil, entities.NewValidationError("items", "Must contain at least 1 item(s)")
	}
	if len(reqs) > MaxBulkItems {
		return nil, entities.NewValidationError("items", fmt.Sprintf("Must contain at most %d item(s)", MaxBulkItems))
	}

	verr := &entities.ValidationError{}
	for i := range reqs {
		reqs[i].Title = strings.TrimSpace(reqs[i].Title)
		if err := s.validator.collect(verr, fmt.Sprintf("[%d].", i), reqs[i]); err != nil {
			return nil, err
		}
	}
	if len(verr.Issues) > 0 {
		return nil, verr
	}

	todos := make([]*entities.Todo, len(reqs))
	for i, req := range reqs {
		todos[i] = newTodo(userID, req)
	}
	if err := s.todoRepo.CreateMany(ctx, todos); err != nil {
		return nil, fmt.Errorf("failed to create todos: %w", err)
	}

	created := make([]entities.Todo, len(todos))
	for i, todo := range todos {
		created[i] = *todo
	}

	s.logger.Infow("Todos created", "user_id", userID, "count", len(created))
	s.invalidate(ctx, userID)
	return created, nil
}

// BulkUpdate applies one patch to many todos; ids the caller does not own are skipped
func (s *TodoService) BulkUpdate(ctx context.Context, userID uuid.UUID, req ports.BulkUpdateTodosRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, err
	}

	count, err := s.todoRepo.BulkUpdate(ctx, userID, req.TodoIDs, req.Patch())
	if err != nil {
		return 0, fmt.Errorf("failed to update todos: %w", err)
	}

	s.logger.Infow("Todos updated", "user_id", userID, "requested", len(req.TodoIDs), "updated", count)
	if count > 0 {
		s.invalidate(ctx, userID)
	}
	return count, nil
}

func (s *TodoService) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.analytics != nil {
		s.analytics.Invalidate(ctx, userID)
	}
}

func newTodo(userID uuid.UUID, req ports.CreateTodoRequest) *entities.Todo {
	todo := &entities.Todo{
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		DueDate:       req.DueDate,
		Priority:      entities.PriorityMedium,
		EstimatedTime: req.EstimatedTime,
		IsAISuggested: req.IsAISuggested,
	}
	if req.Priority != nil {
		todo.Priority = *req.Priority
	}
	return todo
}
