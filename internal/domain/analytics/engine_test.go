package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/focusboard/internal/domain/entities"
)

// Wednesday; the week started on Sunday 2025-03-09.
var now = time.Date(2025, time.March, 12, 15, 0, 0, 0, time.UTC)

func completedTodo(priority entities.Priority, completedAt time.Time) entities.Todo {
	return entities.Todo{
		ID:          uuid.New(),
		Title:       "task " + completedAt.Format(time.RFC3339),
		Priority:    priority,
		IsCompleted: true,
		CompletedAt: &completedAt,
	}
}

func daysAgo(n int) time.Time {
	return now.AddDate(0, 0, -n)
}

func TestTaskXP(t *testing.T) {
	due := now.Add(24 * time.Hour)
	past := now.Add(-48 * time.Hour)

	tests := []struct {
		name string
		todo entities.Todo
		want int
	}{
		{"low", completedTodo(entities.PriorityLow, now), 5},
		{"medium", completedTodo(entities.PriorityMedium, now), 10},
		{"high", completedTodo(entities.PriorityHigh, now), 20},
		{
			name: "high before due date",
			todo: func() entities.Todo {
				td := completedTodo(entities.PriorityHigh, now.Add(-time.Hour))
				td.DueDate = &due
				return td
			}(),
			want: 25,
		},
		{
			name: "completed after due date",
			todo: func() entities.Todo {
				td := completedTodo(entities.PriorityHigh, now)
				td.DueDate = &past
				return td
			}(),
			want: 20,
		},
		{
			name: "ai suggested",
			todo: func() entities.Todo {
				td := completedTodo(entities.PriorityLow, now)
				td.IsAISuggested = true
				return td
			}(),
			want: 15,
		},
		{
			name: "open todo",
			todo: entities.Todo{Priority: entities.PriorityHigh},
			want: 0,
		},
		{
			name: "completed flag without timestamp",
			todo: entities.Todo{Priority: entities.PriorityHigh, IsCompleted: true},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TaskXP(tt.todo))
		})
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, now)

	assert.Equal(t, 0, stats.TotalXP)
	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 0, stats.LongestStreak)
	assert.Equal(t, 0, stats.XPForCurrentLevel)
	assert.Equal(t, 100, stats.XPToNextLevel)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0}, stats.WeeklyProgress)
	require.Len(t, stats.HeatmapData, 30)
	assert.Equal(t, "2025-03-12", stats.HeatmapData[29].Date)
	assert.Equal(t, "2025-02-11", stats.HeatmapData[0].Date)
}

func TestComputeStats_IgnoresOpenTodos(t *testing.T) {
	todos := []entities.Todo{
		{ID: uuid.New(), Priority: entities.PriorityHigh},
		{ID: uuid.New(), Priority: entities.PriorityHigh, IsCompleted: true},
	}

	stats := ComputeStats(todos, now)
	assert.Equal(t, 0, stats.TotalXP)
	assert.Equal(t, 0, stats.TotalTasksCompleted)
}

func TestComputeStats_SingleEarlyHighTodo(t *testing.T) {
	due := now.Add(24 * time.Hour)
	todo := completedTodo(entities.PriorityHigh, now.Add(-time.Hour))
	todo.DueDate = &due

	stats := ComputeStats([]entities.Todo{todo}, now)

	assert.Equal(t, 25, TaskXP(todo))
	assert.Equal(t, 0, stats.PomodoroSessions)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 25+StreakBonus(1), stats.TotalXP)
	assert.Equal(t, 1, stats.TasksCompletedToday)
	assert.Equal(t, 1, stats.TotalTasksCompleted)
}

func TestComputeStats_Streaks(t *testing.T) {
	var todos []entities.Todo
	for _, n := range []int{0, 1, 2} {
		todos = append(todos, completedTodo(entities.PriorityLow, daysAgo(n)))
	}
	// Day 3 is empty and breaks the current streak.
	for _, n := range []int{4, 5} {
		todos = append(todos, completedTodo(entities.PriorityLow, daysAgo(n)))
	}
	for _, n := range []int{10, 11, 12, 13} {
		todos = append(todos, completedTodo(entities.PriorityLow, daysAgo(n)))
	}

	stats := ComputeStats(todos, now)

	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 4, stats.LongestStreak)
}

func TestComputeStats_StreakNeedsToday(t *testing.T) {
	todos := []entities.Todo{
		completedTodo(entities.PriorityLow, daysAgo(1)),
		completedTodo(entities.PriorityLow, daysAgo(2)),
	}

	stats := ComputeStats(todos, now)

	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 2, stats.LongestStreak)
}

func TestComputeStats_LevelProgress(t *testing.T) {
	var todos []entities.Todo
	for i := 0; i < 10; i++ {
		todos = append(todos, completedTodo(entities.PriorityMedium, daysAgo(40)))
	}

	stats := ComputeStats(todos, now)

	// 10*10 task XP + 7 sessions * 10.
	assert.Equal(t, 7, stats.PomodoroSessions)
	assert.Equal(t, 170, stats.TotalXP)
	assert.Equal(t, 2, stats.Level)
	assert.Equal(t, 100, stats.XPForCurrentLevel)
	assert.Equal(t, 30, stats.XPToNextLevel)
	assert.Equal(t, 0, stats.CurrentStreak)
}

func TestComputeStats_StreakBonusIsAddedAfterLevel(t *testing.T) {
	var todos []entities.Todo
	for n := 0; n < 5; n++ {
		todos = append(todos, completedTodo(entities.PriorityLow, daysAgo(n)))
	}

	stats := ComputeStats(todos, now)

	// 5*5 task XP + 3 sessions * 10 = 55, then +5 for a five day streak.
	assert.Equal(t, 5, stats.CurrentStreak)
	assert.Equal(t, 60, stats.TotalXP)
	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, 45, stats.XPToNextLevel)
}

func TestComputeStats_WeeklyProgress(t *testing.T) {
	sunday := time.Date(2025, time.March, 9, 9, 0, 0, 0, time.UTC)
	saturdayBefore := time.Date(2025, time.March, 8, 9, 0, 0, 0, time.UTC)

	todos := []entities.Todo{
		completedTodo(entities.PriorityLow, sunday),
		completedTodo(entities.PriorityLow, sunday.Add(time.Hour)),
		completedTodo(entities.PriorityLow, now),
		completedTodo(entities.PriorityLow, saturdayBefore),
	}

	stats := ComputeStats(todos, now)

	assert.Equal(t, []int{2, 0, 0, 1, 0, 0, 0}, stats.WeeklyProgress)
}

func TestComputeStats_UsesCallerLocation(t *testing.T) {
	completedAt := time.Date(2025, time.March, 12, 2, 0, 0, 0, time.UTC)
	todos := []entities.Todo{completedTodo(entities.PriorityLow, completedAt)}

	utc := ComputeStats(todos, now)
	assert.Equal(t, 1, utc.TasksCompletedToday)

	eastern := time.FixedZone("UTC-4", -4*60*60)
	local := ComputeStats(todos, now.In(eastern))
	assert.Equal(t, 0, local.TasksCompletedToday)
	assert.Equal(t, 1, local.HeatmapData[28].Count)
}

func TestComputeStats_HeatmapWindowXP(t *testing.T) {
	todos := []entities.Todo{
		completedTodo(entities.PriorityHigh, now),
		completedTodo(entities.PriorityMedium, now),
	}

	stats := ComputeStats(todos, now)

	today := stats.HeatmapData[len(stats.HeatmapData)-1]
	assert.Equal(t, 2, today.Count)
	assert.Equal(t, 30, today.XP)
	assert.Equal(t, 4, today.Intensity)
	assert.Nil(t, today.Tasks)
}

func TestBuildHeatmap(t *testing.T) {
	first := completedTodo(entities.PriorityLow, now.Add(-2*time.Hour))
	second := completedTodo(entities.PriorityHigh, now.Add(-4*time.Hour))
	old := completedTodo(entities.PriorityHigh, daysAgo(400))

	t.Run("defaults to a year", func(t *testing.T) {
		days := BuildHeatmap([]entities.Todo{first}, now, 0)
		require.Len(t, days, DefaultHeatmapDays)
		assert.Equal(t, "2025-03-12", days[len(days)-1].Date)
	})

	t.Run("clamps long windows", func(t *testing.T) {
		days := BuildHeatmap(nil, now, 5000)
		assert.Len(t, days, MaxHeatmapDays)
	})

	t.Run("collects task summaries in completion order", func(t *testing.T) {
		days := BuildHeatmap([]entities.Todo{first, second, old}, now, 7)
		require.Len(t, days, 7)

		today := days[6]
		assert.Equal(t, 2, today.Count)
		assert.Equal(t, 25, today.XP)
		assert.Equal(t, 3, today.Intensity)
		require.Len(t, today.Tasks, 2)
		assert.Equal(t, second.ID.String(), today.Tasks[0].ID)
		assert.Equal(t, first.ID.String(), today.Tasks[1].ID)
		assert.Equal(t, "HIGH", today.Tasks[0].Priority)

		for _, day := range days[:6] {
			assert.Zero(t, day.Count)
			assert.Empty(t, day.Tasks)
		}
	})
}

func TestIntensity(t *testing.T) {
	tests := map[int]int{0: 0, 1: 1, 4: 1, 5: 2, 14: 2, 15: 3, 29: 3, 30: 4, 49: 4, 50: 5, 500: 5}
	for xp, want := range tests {
		assert.Equal(t, want, Intensity(xp), "xp=%d", xp)
	}
}

func TestStreakBonus(t *testing.T) {
	tests := map[int]int{0: 0, 1: 1, 2: 2, 4: 2, 5: 5, 9: 5, 10: 10, 30: 10}
	for streak, want := range tests {
		assert.Equal(t, want, StreakBonus(streak), "streak=%d", streak)
	}
}
