// Package analytics folds a user's todos into XP, level, streak and
// per-day activity figures. Every function here is pure: callers pass the
// clock in, and calendar days are evaluated in now.Location().
package analytics

import (
	"sort"
	"time"

	"github.com/taskmaster/focusboard/internal/domain/entities"
)

const (
	DefaultHeatmapDays = 365
	MaxHeatmapDays     = 730

	statsWindowDays = 30
	xpPerLevel      = 100
	xpPerPomodoro   = 10
	earlyBonusXP    = 5
	aiBonusXP       = 10
)

// Stats is the derived gamification profile of a user.
type Stats struct {
	TotalXP             int   `json:"totalXP"`
	Level               int   `json:"level"`
	CurrentStreak       int   `json:"currentStreak"`
	LongestStreak       int   `json:"longestStreak"`
	XPToNextLevel       int   `json:"xpToNextLevel"`
	XPForCurrentLevel   int   `json:"xpForCurrentLevel"`
	TotalTasksCompleted int   `json:"totalTasksCompleted"`
	PomodoroSessions    int   `json:"pomodoroSessions"`
	TasksCompletedToday int   `json:"tasksCompletedToday"`
	WeeklyProgress      []int `json:"weeklyProgress"`
	HeatmapData         []Day `json:"heatmapData"`
}

// Day aggregates completions for one calendar day.
type Day struct {
	Date      string        `json:"date"`
	Count     int           `json:"count"`
	XP        int           `json:"xp"`
	Intensity int           `json:"intensity"`
	Tasks     []TaskSummary `json:"tasks,omitempty"`
}

// TaskSummary is the heatmap view of a completed todo.
type TaskSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Priority    string    `json:"priority"`
	CompletedAt time.Time `json:"completedAt"`
}

// TaskXP returns the XP a completed todo is worth. Open todos are worth nothing.
func TaskXP(t entities.Todo) int {
	if !t.IsDone() {
		return 0
	}

	xp := 0
	switch t.Priority {
	case entities.PriorityLow:
		xp = 5
	case entities.PriorityMedium:
		xp = 10
	case entities.PriorityHigh:
		xp = 20
	}
	if t.CompletedBeforeDue() {
		xp += earlyBonusXP
	}
	if t.IsAISuggested {
		xp += aiBonusXP
	}
	return xp
}

// Intensity buckets a day's XP into 0-5 for visualisation.
func Intensity(xp int) int {
	switch {
	case xp >= 50:
		return 5
	case xp >= 30:
		return 4
	case xp >= 15:
		return 3
	case xp >= 5:
		return 2
	case xp > 0:
		return 1
	default:
		return 0
	}
}

// StreakBonus is the extra XP granted for the current streak length.
func StreakBonus(streak int) int {
	switch {
	case streak >= 10:
		return 10
	case streak >= 5:
		return 5
	case streak > 0:
		return min(streak, 2)
	default:
		return 0
	}
}

// ComputeStats derives the full profile from every todo a user owns.
func ComputeStats(todos []entities.Todo, now time.Time) Stats {
	loc := now.Location()
	completed := completedTodos(todos)
	byDay := groupByDay(completed, loc)

	baseXP := 0
	for _, t := range completed {
		baseXP += TaskXP(t)
	}

	// Focus sessions are not tracked yet; assume 70% of completed tasks had one.
	sessions := len(completed) * 7 / 10
	totalXP := baseXP + sessions*xpPerPomodoro

	level := totalXP/xpPerLevel + 1

	window := buildDays(byDay, now, statsWindowDays, false)
	current := currentStreak(window)

	stats := Stats{
		Level:               level,
		XPForCurrentLevel:   (level - 1) * xpPerLevel,
		XPToNextLevel:       level*xpPerLevel - totalXP,
		CurrentStreak:       current,
		LongestStreak:       longestStreak(window),
		TotalTasksCompleted: len(completed),
		PomodoroSessions:    sessions,
		TasksCompletedToday: len(byDay[dayKey(now, loc)]),
		WeeklyProgress:      weeklyProgress(byDay, now),
		HeatmapData:         window,
	}
	stats.TotalXP = totalXP + StreakBonus(current)

	return stats
}

// BuildHeatmap returns one entry per day for the trailing window ending today,
// oldest first. A non-positive days value selects the default window.
func BuildHeatmap(todos []entities.Todo, now time.Time, days int) []Day {
	days = ClampHeatmapDays(days)
	byDay := groupByDay(completedTodos(todos), now.Location())
	return buildDays(byDay, now, days, true)
}

// ClampHeatmapDays normalises a requested heatmap length.
func ClampHeatmapDays(days int) int {
	if days <= 0 {
		return DefaultHeatmapDays
	}
	if days > MaxHeatmapDays {
		return MaxHeatmapDays
	}
	return days
}

func completedTodos(todos []entities.Todo) []entities.Todo {
	out := make([]entities.Todo, 0, len(todos))
	for _, t := range todos {
		if t.IsDone() {
			out = append(out, t)
		}
	}
	return out
}

func groupByDay(completed []entities.Todo, loc *time.Location) map[string][]entities.Todo {
	byDay := make(map[string][]entities.Todo)
	for _, t := range completed {
		key := dayKey(*t.CompletedAt, loc)
		byDay[key] = append(byDay[key], t)
	}
	return byDay
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.DateOnly)
}

// buildDays walks calendar dates rather than adding 24h so DST shifts never
// skip or repeat a day.
func buildDays(byDay map[string][]entities.Todo, now time.Time, n int, withTasks bool) []Day {
	y, m, d := now.Date()
	loc := now.Location()

	out := make([]Day, 0, n)
	for i := n - 1; i >= 0; i-- {
		key := time.Date(y, m, d-i, 0, 0, 0, 0, loc).Format(time.DateOnly)
		dayTodos := byDay[key]

		xp := 0
		for _, t := range dayTodos {
			xp += TaskXP(t)
		}

		day := Day{Date: key, Count: len(dayTodos), XP: xp, Intensity: Intensity(xp)}
		if withTasks && len(dayTodos) > 0 {
			day.Tasks = summaries(dayTodos)
		}
		out = append(out, day)
	}
	return out
}

func summaries(todos []entities.Todo) []TaskSummary {
	out := make([]TaskSummary, 0, len(todos))
	for _, t := range todos {
		out = append(out, TaskSummary{
			ID:          t.ID.String(),
			Title:       t.Title,
			Priority:    string(t.Priority),
			CompletedAt: *t.CompletedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletedAt.Before(out[j].CompletedAt)
	})
	return out
}

// currentStreak counts non-zero days backwards from the newest entry. The
// first empty day ends the streak.
func currentStreak(days []Day) int {
	streak := 0
	for i := len(days) - 1; i >= 0; i-- {
		if days[i].Count == 0 {
			break
		}
		streak++
	}
	return streak
}

func longestStreak(days []Day) int {
	longest, run := 0, 0
	for _, day := range days {
		if day.Count == 0 {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return longest
}

// weeklyProgress counts completions for each day of the Sunday-based week
// containing now.
func weeklyProgress(byDay map[string][]entities.Todo, now time.Time) []int {
	y, m, d := now.Date()
	start := d - int(now.Weekday())

	out := make([]int, 7)
	for i := range out {
		key := time.Date(y, m, start+i, 0, 0, 0, 0, now.Location()).Format(time.DateOnly)
		out[i] = len(byDay[key])
	}
	return out
}
