package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taskmaster/focusboard/internal/domain/entities"
	"github.com/taskmaster/focusboard/internal/infrastructure/database"
	"github.com/taskmaster/focusboard/internal/ports"
)

const todoColumns = `id, user_id, title, description, priority, is_completed, due_date,
			completed_at, estimated_time, time_spent, is_ai_suggested, created_at, updated_at`

const insertTodo = `
		INSERT INTO todos (id, user_id, title, description, priority, is_completed, due_date,
			completed_at, estimated_time, time_spent, is_ai_suggested, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// TodoRepositoryImpl implements the TodoRepository interface
type TodoRepositoryImpl struct {
	db *sqlx.DB
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(db *sqlx.DB) ports.TodoRepository {
	return &TodoRepositoryImpl{db: db}
}

func (r *TodoRepositoryImpl) List(ctx context.Context, userID uuid.UUID) ([]entities.Todo, error) {
	query := r.db.Rebind(`
		SELECT ` + todoColumns + `
		FROM todos
		WHERE user_id = ?
		ORDER BY created_at DESC`)

	todos := []entities.Todo{}
	if err := r.db.SelectContext(ctx, &todos, query, userID); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return todos, nil
}

func (r *TodoRepositoryImpl) Create(ctx context.Context, todo *entities.Todo) error {
	if err := insert(ctx, r.db, todo); err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

func (r *TodoRepositoryImpl) CreateMany(ctx context.Context, todos []*entities.Todo) error {
	err := database.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		for i, todo := range todos {
			if err := insert(ctx, tx, todo); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create todos: %w", err)
	}
	return nil
}

// execer is satisfied by both *sqlx.DB and *sqlx.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Rebind(query string) string
}

func insert(ctx context.Context, db execer, todo *entities.Todo) error {
	if todo.ID == uuid.Nil {
		todo.ID = uuid.New()
	}
	if todo.Priority == "" {
		todo.Priority = entities.PriorityMedium
	}
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	if todo.IsCompleted && todo.CompletedAt == nil {
		todo.CompletedAt = &now
	}
	if todo.DueDate != nil {
		due := todo.DueDate.UTC()
		todo.DueDate = &due
	}

	_, err := db.ExecContext(ctx, db.Rebind(insertTodo),
		todo.ID, todo.UserID, todo.Title, todo.Description, todo.Priority, todo.IsCompleted,
		todo.DueDate, todo.CompletedAt, todo.EstimatedTime, todo.TimeSpent, todo.IsAISuggested,
		todo.CreatedAt, todo.UpdatedAt,
	)
	return err
}

// Update runs the ownership-scoped UPDATE and reads the row back inside one
// transaction.
func (r *TodoRepositoryImpl) Update(ctx context.Context, userID, id uuid.UUID, patch ports.TodoPatch) (*entities.Todo, error) {
	var todo entities.Todo

	err := database.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if !patch.IsEmpty() {
			set, args := setClauses(patch, time.Now().UTC())
			query := tx.Rebind(`UPDATE todos SET ` + set + ` WHERE id = ? AND user_id = ?`)

			result, err := tx.ExecContext(ctx, query, append(args, id, userID)...)
			if err != nil {
				return fmt.Errorf("update todo: %w", err)
			}
			if err := requireRow(result, entities.ErrTodoNotFound); err != nil {
				return err
			}
		}

		query := tx.Rebind(`SELECT ` + todoColumns + ` FROM todos WHERE id = ? AND user_id = ?`)
		if err := tx.GetContext(ctx, &todo, query, id, userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return entities.ErrTodoNotFound
			}
			return fmt.Errorf("get todo: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &todo, nil
}

func (r *TodoRepositoryImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := r.db.Rebind(`DELETE FROM todos WHERE id = ? AND user_id = ?`)

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	return requireRow(result, entities.ErrTodoNotFound)
}

func (r *TodoRepositoryImpl) BulkUpdate(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, patch ports.TodoPatch) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	set, args := setClauses(patch, time.Now().UTC())
	args = append(args, ids, userID)

	query, args, err := sqlx.In(`UPDATE todos SET `+set+` WHERE id IN (?) AND user_id = ?`, args...)
	if err != nil {
		return 0, fmt.Errorf("build bulk update: %w", err)
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("bulk update todos: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get affected rows: %w", err)
	}

	return rows, nil
}

// setClauses renders the SET list for patch. completed_at is stamped only
// when a todo moves to completed, cleared when it moves back, and left alone
// when the patch does not mention completion.
func setClauses(patch ports.TodoPatch, now time.Time) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	add := func(clause string, arg interface{}) {
		clauses = append(clauses, clause)
		args = append(args, arg)
	}

	if patch.Title != nil {
		add("title = ?", *patch.Title)
	}
	if patch.Description != nil {
		add("description = ?", *patch.Description)
	}
	if patch.DueDate != nil {
		add("due_date = ?", patch.DueDate.UTC())
	}
	if patch.Priority != nil {
		add("priority = ?", string(*patch.Priority))
	}
	if patch.IsCompleted != nil {
		add("is_completed = ?", *patch.IsCompleted)
		if *patch.IsCompleted {
			add("completed_at = COALESCE(completed_at, ?)", now)
		} else {
			clauses = append(clauses, "completed_at = NULL")
		}
	}
	if patch.EstimatedTime != nil {
		add("estimated_time = ?", *patch.EstimatedTime)
	}
	if patch.TimeSpent != nil {
		add("time_spent = ?", *patch.TimeSpent)
	}
	if patch.IsAISuggested != nil {
		add("is_ai_suggested = ?", *patch.IsAISuggested)
	}

	add("updated_at = ?", now)

	return strings.Join(clauses, ", "), args
}
