package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskmaster/focusboard/internal/application/aiparse"
	"github.com/taskmaster/focusboard/internal/domain/entities"
	"github.com/taskmaster/focusboard/internal/infrastructure/logger"
	"github.com/taskmaster/focusboard/internal/infrastructure/metrics"
	"github.com/taskmaster/focusboard/internal/ports"
)

// AI gateway errors
var (
	ErrAITimeout        = errors.New("AI request timed out")
	ErrGenerationFailed = errors.New("AI generation failed")
	ErrAIUnavailable    = errors.New("AI assistant is not configured")
)

const (
	opSuggestions = "suggestions"
	opBreakdown   = "breakdown"
	opSmartPlan   = "smart_plan"

	minBreakdownTitle = 10
)

// AssistantService builds prompts for the text generator and turns its output
// into typed, validated results.
type AssistantService struct {
	generator ports.TextGenerator
	todoRepo  ports.TodoRepository
	validator *Validator
	timeout   time.Duration
	metrics   *metrics.Metrics
	logger    *logger.Logger
	now       func() time.Time
}

// NewAssistantService creates a new assistant service. A nil generator makes
// every model-backed call fail with ErrAIUnavailable.
func NewAssistantService(generator ports.TextGenerator, todoRepo ports.TodoRepository, validator *Validator, timeout time.Duration, m *metrics.Metrics, logger *logger.Logger) *AssistantService {
	return &AssistantService{
		generator: generator,
		todoRepo:  todoRepo,
		validator: validator,
		timeout:   timeout,
		metrics:   m,
		logger:    logger.WithComponent("assistant"),
		now:       time.Now,
	}
}

// Suggestions asks the model for productivity advice over the caller's open todos
func (s *AssistantService) Suggestions(ctx context.Context, userID uuid.UUID, req ports.SuggestionsRequest) ([]entities.Suggestion, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	todos := req.Todos
	if todos == nil {
		stored, err := s.todoRepo.List(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load todos: %w", err)
		}
		todos = stored
	}

	open := rankOpenTodos(todos, s.now())
	if len(open) == 0 {
		return []entities.Suggestion{}, nil
	}

	var suggestions []entities.Suggestion
	err := s.call(ctx, opSuggestions, userID, suggestionsPrompt(open, req.Context, s.now()), func(raw string) error {
		parsed, err := s.parseSuggestions(raw)
		if err != nil {
			return err
		}
		suggestions = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}

	return suggestions, nil
}

// Breakdown splits a larger goal into actionable sub-tasks
func (s *AssistantService) Breakdown(ctx context.Context, userID uuid.UUID, req ports.BreakdownRequest) (*entities.TaskBreakdown, error) {
	req.TaskTitle = strings.TrimSpace(req.TaskTitle)
	req.TaskDescription = strings.TrimSpace(req.TaskDescription)
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if len([]rune(req.TaskTitle)) < minBreakdownTitle {
		return nil, entities.NewValidationError("taskTitle", fmt.Sprintf("Must be at least %d characters", minBreakdownTitle))
	}

	var breakdown entities.TaskBreakdown
	err := s.call(ctx, opBreakdown, userID, breakdownPrompt(req), func(raw string) error {
		parsed, err := s.parseBreakdown(raw)
		if err != nil {
			return err
		}
		breakdown = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &breakdown, nil
}

// SmartPlan asks the model for an execution order over the given tasks.
// Unparseable output degrades to an empty plan instead of failing.
func (s *AssistantService) SmartPlan(ctx context.Context, userID uuid.UUID, req ports.SmartPlanRequest) (*entities.SmartPlan, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if len(req.Tasks) == 0 {
		return &entities.SmartPlan{Reasoning: "No tasks to optimize.", Plan: []string{}}, nil
	}

	var plan entities.SmartPlan
	err := s.call(ctx, opSmartPlan, userID, smartPlanPrompt(req.Tasks, s.now()), func(raw string) error {
		parsed, err := aiparse.Decode[entities.SmartPlan](raw, s.validator.Engine())
		if err != nil {
			return err
		}
		plan = parsed
		return nil
	})
	if err != nil {
		if errors.Is(err, aiparse.ErrParse) {
			s.logger.Warnw("Falling back to empty smart plan", "user_id", userID, "error", err)
			return &entities.SmartPlan{Reasoning: "Unable to generate plan", Plan: []string{}}, nil
		}
		return nil, err
	}

	plan.Plan = knownIDs(plan.Plan, req.Tasks)
	return &plan, nil
}

// call runs one bounded model request, hands the text to parse and records
// the outcome.
func (s *AssistantService) call(ctx context.Context, op string, userID uuid.UUID, prompt string, parse func(raw string) error) error {
	start := time.Now()

	raw, err := s.generate(ctx, prompt)
	outcome := metrics.OutcomeSuccess
	switch {
	case errors.Is(err, ErrAITimeout):
		outcome = metrics.OutcomeTimeout
	case err != nil:
		outcome = metrics.OutcomeError
	default:
		if err = parse(raw); err != nil {
			outcome = metrics.OutcomeParseError
		}
	}

	duration := time.Since(start)
	s.metrics.ObserveAIRequest(op, outcome, duration)
	s.logger.LogAIRequest(op, userID.String(), duration, err)
	return err
}

func (s *AssistantService) generate(ctx context.Context, prompt string) (string, error) {
	if s.generator == nil {
		return "", ErrAIUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrAITimeout, err)
		}
		if errors.Is(err, ErrAIUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return text, nil
}

// parseSuggestions accepts either a bare array or an object wrapping one.
func (s *AssistantService) parseSuggestions(raw string) ([]entities.Suggestion, error) {
	return aiparse.First(raw, func(payload json.RawMessage) ([]entities.Suggestion, error) {
		return s.suggestionsFrom(raw, payload)
	})
}

func (s *AssistantService) suggestionsFrom(raw string, payload json.RawMessage) ([]entities.Suggestion, error) {
	var (
		suggestions []entities.Suggestion
		err         error
	)
	if aiparse.IsArray(payload) {
		err = json.Unmarshal(payload, &suggestions)
	} else {
		var wrapped struct {
			Suggestions []entities.Suggestion `json:"suggestions"`
		}
		err = json.Unmarshal(payload, &wrapped)
		suggestions = wrapped.Suggestions
	}
	if err != nil {
		return nil, &aiparse.ParseError{Raw: raw, Reason: "unexpected payload shape", Err: err}
	}
	if suggestions == nil {
		return nil, &aiparse.ParseError{Raw: raw, Reason: "no suggestions in payload"}
	}

	for i := range suggestions {
		suggestions[i].Type = entities.SuggestionType(strings.ToLower(string(suggestions[i].Type)))
		suggestions[i].Priority = strings.ToLower(suggestions[i].Priority)
		if err := aiparse.Validate(s.validator.Engine(), suggestions[i]); err != nil {
			return nil, &aiparse.ParseError{Raw: raw, Reason: fmt.Sprintf("suggestion %d failed validation", i), Err: err}
		}
		if suggestions[i].ID == "" {
			suggestions[i].ID = uuid.NewString()
		}
		if suggestions[i].ActionSteps == nil {
			suggestions[i].ActionSteps = []string{}
		}
	}

	return suggestions, nil
}

// parseBreakdown accepts {subTasks:[...]} or a bare array of strings.
func (s *AssistantService) parseBreakdown(raw string) (entities.TaskBreakdown, error) {
	return aiparse.First(raw, func(payload json.RawMessage) (entities.TaskBreakdown, error) {
		return s.breakdownFrom(raw, payload)
	})
}

func (s *AssistantService) breakdownFrom(raw string, payload json.RawMessage) (entities.TaskBreakdown, error) {
	var (
		breakdown entities.TaskBreakdown
		err       error
	)
	if aiparse.IsArray(payload) {
		err = json.Unmarshal(payload, &breakdown.SubTasks)
	} else {
		err = json.Unmarshal(payload, &breakdown)
	}
	if err != nil {
		return entities.TaskBreakdown{}, &aiparse.ParseError{Raw: raw, Reason: "unexpected payload shape", Err: err}
	}

	for i := range breakdown.SubTasks {
		breakdown.SubTasks[i] = strings.TrimSpace(breakdown.SubTasks[i])
	}
	if err := aiparse.Validate(s.validator.Engine(), breakdown); err != nil {
		return entities.TaskBreakdown{}, &aiparse.ParseError{Raw: raw, Reason: "payload failed validation", Err: err}
	}

	return breakdown, nil
}

// rankOpenTodos keeps incomplete todos ordered overdue first, then by
// priority, then by due date with undated todos last.
func rankOpenTodos(todos []entities.Todo, now time.Time) []entities.Todo {
	open := make([]entities.Todo, 0, len(todos))
	for _, t := range todos {
		if !t.IsCompleted {
			open = append(open, t)
		}
	}

	sort.SliceStable(open, func(i, j int) bool {
		a, b := open[i], open[j]
		if ao, bo := a.IsOverdue(now), b.IsOverdue(now); ao != bo {
			return ao
		}
		if ar, br := a.Priority.Rank(), b.Priority.Rank(); ar != br {
			return ar < br
		}
		switch {
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		default:
			return a.DueDate.Before(*b.DueDate)
		}
	})

	return open
}

// knownIDs keeps plan entries that name an input task, in order, once each.
func knownIDs(plan []string, tasks []ports.PlanTask) []string {
	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}

	out := make([]string, 0, len(plan))
	for _, id := range plan {
		if known[id] {
			out = append(out, id)
			delete(known, id)
		}
	}
	return out
}
