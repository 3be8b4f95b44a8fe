package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskmaster/focusboard/internal/adapters/repository"
	"github.com/taskmaster/focusboard/internal/domain/entities"
	"github.com/taskmaster/focusboard/internal/infrastructure/database/dbtest"
	"github.com/taskmaster/focusboard/internal/infrastructure/logger"
	"github.com/taskmaster/focusboard/internal/ports"
)

func TestMain(m *testing.M) {
	passwordCost = bcrypt.MinCost
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

func priorityPtr(p entities.Priority) *entities.Priority { return &p }

// testEnv wires services over a migrated SQLite database.
type testEnv struct {
	users  ports.UserRepository
	todos  ports.TodoRepository
	tokens ports.AuthRepository
	cache  *memoryCache
	log    *logger.Logger
	valid  *Validator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := dbtest.New(t).DB
	return &testEnv{
		users:  repository.NewUserRepository(db),
		todos:  repository.NewTodoRepository(db),
		tokens: repository.NewAuthRepository(db),
		cache:  newMemoryCache(),
		log:    logger.NewNop(),
		valid:  NewValidator(),
	}
}

func (e *testEnv) createUser(t *testing.T, email string) *entities.User {
	t.Helper()
	user := &entities.User{Email: email, PasswordHash: strPtr("unused")}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

// memoryCache is an in-process CacheRepository holding JSON-encoded values.
type memoryCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return context.DeadlineExceeded
	}
	data, ok := c.items[key]
	if !ok {
		return ports.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
	return nil
}

func (c *memoryCache) Ping(context.Context) error { return nil }

func (c *memoryCache) keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.items))
	for key := range c.items {
		keys = append(keys, key)
	}
	return keys
}

// stubGenerator returns a canned reply and records prompts.
type stubGenerator struct {
	mu      sync.Mutex
	reply   string
	err     error
	block   bool
	prompts []string
}

func (g *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()

	if g.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return g.reply, g.err
}

func (g *stubGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

var (
	_ ports.TextGenerator   = (*stubGenerator)(nil)
	_ ports.CacheRepository = (*memoryCache)(nil)
)
