package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/focusboard/internal/domain/entities"
	"github.com/taskmaster/focusboard/internal/infrastructure/database/dbtest"
	"github.com/taskmaster/focusboard/internal/ports"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

func priorityPtr(p entities.Priority) *entities.Priority { return &p }

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	return dbtest.New(t).DB
}

func createUser(t *testing.T, repo ports.UserRepository, email string) *entities.User {
	t.Helper()
	user := &entities.User{Email: email, PasswordHash: strPtr("hash")}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entities.User{Email: "ada@example.com", Name: strPtr("Ada"), PasswordHash: strPtr("hash")}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, 1, user.Level)

	t.Run("get by id and email", func(t *testing.T) {
		byID, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", byID.Email)
		require.NotNil(t, byID.Name)
		assert.Equal(t, "Ada", *byID.Name)
		assert.Equal(t, 1, byID.Level)

		byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, entities.ErrUserNotFound)

		_, err = repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &entities.User{Email: "ada@example.com"})
		assert.ErrorIs(t, err, entities.ErrEmailAlreadyExists)
	})

	t.Run("google subject", func(t *testing.T) {
		require.NoError(t, repo.LinkGoogleSubject(ctx, user.ID, "google-123"))

		found, err := repo.GetByGoogleSubject(ctx, "google-123")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)

		assert.ErrorIs(t, repo.LinkGoogleSubject(ctx, uuid.New(), "google-456"), entities.ErrUserNotFound)

		// Relinking the same subject is a no-op, a different one is refused.
		require.NoError(t, repo.LinkGoogleSubject(ctx, user.ID, "google-123"))
		assert.ErrorIs(t, repo.LinkGoogleSubject(ctx, user.ID, "google-999"), entities.ErrUserNotFound)

		found, err = repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, found.GoogleSubject)
		assert.Equal(t, "google-123", *found.GoogleSubject)
	})

	t.Run("update name", func(t *testing.T) {
		updated, err := repo.UpdateName(ctx, user.ID, strPtr("Ada Lovelace"))
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", *updated.Name)

		_, err = repo.UpdateName(ctx, uuid.New(), nil)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("update gamification", func(t *testing.T) {
		active := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
		g := entities.Gamification{XP: 170, Level: 2, CurrentStreak: 3, LongestStreak: 4, LastActiveDate: &active}
		require.NoError(t, repo.UpdateGamification(ctx, user.ID, g))

		found, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, g.Equal(found.Gamification()))
	})
}

func TestTodoRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewTodoRepository(db)
	ctx := context.Background()

	owner := createUser(t, users, "owner@example.com")
	other := createUser(t, users, "other@example.com")

	due := time.Date(2025, time.April, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	first := &entities.Todo{UserID: owner.ID, Title: "first", DueDate: &due, EstimatedTime: intPtr(25)}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, entities.PriorityMedium, first.Priority)

	time.Sleep(5 * time.Millisecond)
	second := &entities.Todo{UserID: owner.ID, Title: "second", Priority: entities.PriorityHigh, IsAISuggested: true}
	require.NoError(t, repo.Create(ctx, second))

	require.NoError(t, repo.Create(ctx, &entities.Todo{UserID: other.ID, Title: "not mine"}))

	todos, err := repo.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, todos, 2)

	assert.Equal(t, second.ID, todos[0].ID)
	assert.True(t, todos[0].IsAISuggested)
	assert.Equal(t, entities.PriorityHigh, todos[0].Priority)

	assert.Equal(t, first.ID, todos[1].ID)
	require.NotNil(t, todos[1].DueDate)
	assert.True(t, due.Equal(*todos[1].DueDate))
	require.NotNil(t, todos[1].EstimatedTime)
	assert.Equal(t, 25, *todos[1].EstimatedTime)
	assert.Nil(t, todos[1].CompletedAt)

	empty, err := repo.List(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTodoRepository_CreateManyIsAtomic(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewTodoRepository(db)
	ctx := context.Background()

	owner := createUser(t, users, "owner@example.com")

	batch := []*entities.Todo{
		{UserID: owner.ID, Title: "one"},
		{UserID: owner.ID, Title: "two"},
	}
	require.NoError(t, repo.CreateMany(ctx, batch))
	assert.NotEqual(t, uuid.Nil, batch[1].ID)

	broken := []*entities.Todo{
		{UserID: owner.ID, Title: "three"},
		{UserID: owner.ID, Title: ""}, // violates the title check
	}
	require.Error(t, repo.CreateMany(ctx, broken))

	todos, err := repo.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestTodoRepository_Update(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewTodoRepository(db)
	ctx := context.Background()

	owner := createUser(t, users, "owner@example.com")
	intruder := createUser(t, users, "intruder@example.com")

	todo := &entities.Todo{UserID: owner.ID, Title: "write report", Description: strPtr("q1")}
	require.NoError(t, repo.Create(ctx, todo))

	t.Run("partial fields", func(t *testing.T) {
		updated, err := repo.Update(ctx, owner.ID, todo.ID, ports.TodoPatch{
			Title:     strPtr("write q1 report"),
			Priority:  priorityPtr(entities.PriorityHigh),
			TimeSpent: intPtr(0),
		})
		require.NoError(t, err)
		assert.Equal(t, "write q1 report", updated.Title)
		assert.Equal(t, entities.PriorityHigh, updated.Priority)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "q1", *updated.Description)
		require.NotNil(t, updated.TimeSpent)
		assert.Zero(t, *updated.TimeSpent)
	})

	t.Run("completion stamps once", func(t *testing.T) {
		done, err := repo.Update(ctx, owner.ID, todo.ID, ports.TodoPatch{IsCompleted: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, done.IsCompleted)
		require.NotNil(t, done.CompletedAt)
		stamp := *done.CompletedAt

		time.Sleep(5 * time.Millisecond)
		again, err := repo.Update(ctx, owner.ID, todo.ID, ports.TodoPatch{IsCompleted: boolPtr(true)})
		require.NoError(t, err)
		require.NotNil(t, again.CompletedAt)
		assert.True(t, stamp.Equal(*again.CompletedAt))

		renamed, err := repo.Update(ctx, owner.ID, todo.ID, ports.TodoPatch{Title: strPtr("renamed")})
		require.NoError(t, err)
		require.NotNil(t, renamed.CompletedAt)
		assert.True(t, stamp.Equal(*renamed.CompletedAt))

		reopened, err := repo.Update(ctx, owner.ID, todo.ID, ports.TodoPatch{IsCompleted: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, reopened.IsCompleted)
		assert.Nil(t, reopened.CompletedAt)
	})

	t.Run("empty patch returns current row", func(t *testing.T) {
		current, err := repo.Update(ctx, owner.ID, todo.ID, ports.TodoPatch{})
		require.NoError(t, err)
		assert.Equal(t, todo.ID, current.ID)
	})

	t.Run("foreign todo is not found", func(t *testing.T) {
		_, err := repo.Update(ctx, intruder.ID, todo.ID, ports.TodoPatch{Title: strPtr("mine now")})
		assert.ErrorIs(t, err, entities.ErrTodoNotFound)

		_, err = repo.Update(ctx, intruder.ID, todo.ID, ports.TodoPatch{})
		assert.ErrorIs(t, err, entities.ErrTodoNotFound)

		todos, err := repo.List(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", todos[0].Title)
	})
}

func TestTodoRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewTodoRepository(db)
	ctx := context.Background()

	owner := createUser(t, users, "owner@example.com")
	intruder := createUser(t, users, "intruder@example.com")

	todo := &entities.Todo{UserID: owner.ID, Title: "temporary"}
	require.NoError(t, repo.Create(ctx, todo))

	assert.ErrorIs(t, repo.Delete(ctx, intruder.ID, todo.ID), entities.ErrTodoNotFound)
	require.NoError(t, repo.Delete(ctx, owner.ID, todo.ID))
	assert.ErrorIs(t, repo.Delete(ctx, owner.ID, todo.ID), entities.ErrTodoNotFound)
}

func TestTodoRepository_BulkUpdate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewTodoRepository(db)
	ctx := context.Background()

	owner := createUser(t, users, "owner@example.com")
	other := createUser(t, users, "other@example.com")

	var ids []uuid.UUID
	for _, title := range []string{"a", "b", "c"} {
		todo := &entities.Todo{UserID: owner.ID, Title: title}
		require.NoError(t, repo.Create(ctx, todo))
		ids = append(ids, todo.ID)
	}
	foreign := &entities.Todo{UserID: other.ID, Title: "foreign"}
	require.NoError(t, repo.Create(ctx, foreign))

	count, err := repo.BulkUpdate(ctx, owner.ID, append(ids[:2:2], foreign.ID), ports.TodoPatch{
		IsCompleted: boolPtr(true),
		Priority:    priorityPtr(entities.PriorityLow),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	todos, err := repo.List(ctx, owner.ID)
	require.NoError(t, err)
	completed := 0
	for _, todo := range todos {
		if todo.IsCompleted {
			completed++
			assert.NotNil(t, todo.CompletedAt)
			assert.Equal(t, entities.PriorityLow, todo.Priority)
		}
	}
	assert.Equal(t, 2, completed)

	untouched, err := repo.List(ctx, other.ID)
	require.NoError(t, err)
	assert.False(t, untouched[0].IsCompleted)

	count, err = repo.BulkUpdate(ctx, owner.ID, ids, ports.TodoPatch{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.BulkUpdate(ctx, owner.ID, nil, ports.TodoPatch{IsCompleted: boolPtr(true)})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAuthRepository(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewAuthRepository(db)
	ctx := context.Background()

	owner := createUser(t, users, "owner@example.com")

	require.NoError(t, repo.CreateRefreshToken(ctx, owner.ID, "live", time.Now().Add(time.Hour)))
	require.NoError(t, repo.CreateRefreshToken(ctx, owner.ID, "stale", time.Now().Add(-time.Hour)))

	token, err := repo.GetRefreshToken(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, token.UserID)
	assert.True(t, token.IsValid())

	_, err = repo.GetRefreshToken(ctx, "missing")
	assert.ErrorIs(t, err, entities.ErrInvalidToken)

	require.NoError(t, repo.RevokeRefreshToken(ctx, "live"))
	token, err = repo.GetRefreshToken(ctx, "live")
	require.NoError(t, err)
	assert.True(t, token.IsRevoked())

	assert.ErrorIs(t, repo.RevokeRefreshToken(ctx, "live"), entities.ErrInvalidToken)
	assert.ErrorIs(t, repo.RevokeRefreshToken(ctx, "missing"), entities.ErrInvalidToken)

	require.NoError(t, repo.CreateRefreshToken(ctx, owner.ID, "kept", time.Now().Add(time.Hour)))

	removed, err := repo.CleanupExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = repo.GetRefreshToken(ctx, "live")
	assert.ErrorIs(t, err, entities.ErrInvalidToken)
	_, err = repo.GetRefreshToken(ctx, "stale")
	assert.ErrorIs(t, err, entities.ErrInvalidToken)
	kept, err := repo.GetRefreshToken(ctx, "kept")
	require.NoError(t, err)
	assert.True(t, kept.IsValid())

	require.NoError(t, repo.CreateRefreshToken(ctx, owner.ID, "another", time.Now().Add(time.Hour)))
	require.NoError(t, repo.RevokeAllUserTokens(ctx, owner.ID))
	token, err = repo.GetRefreshToken(ctx, "another")
	require.NoError(t, err)
	assert.False(t, token.IsValid())
}
