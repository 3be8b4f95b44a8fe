package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/taskmaster/focusboard/internal/domain/entities"
	"github.com/taskmaster/focusboard/internal/ports"
)

// promptTask is the compact task shape shown to the model.
type promptTask struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Priority      string `json:"priority,omitempty"`
	DueDate       string `json:"dueDate,omitempty"`
	Overdue       bool   `json:"overdue,omitempty"`
	EstimatedTime *int   `json:"estimatedTime,omitempty"`
}

func suggestionsPrompt(todos []entities.Todo, userContext string, now time.Time) string {
	tasks := make([]promptTask, 0, len(todos))
	for _, t := range todos {
		pt := promptTask{
			ID:            t.ID.String(),
			Title:         t.Title,
			Priority:      string(t.Priority),
			Overdue:       t.IsOverdue(now),
			EstimatedTime: t.EstimatedTime,
		}
		if t.Description != nil {
			pt.Description = *t.Description
		}
		if t.DueDate != nil {
			pt.DueDate = t.DueDate.Format(time.RFC3339)
		}
		tasks = append(tasks, pt)
	}

	var b strings.Builder
	b.WriteString("You are a productivity assistant. Review the user's open tasks, already ordered by urgency, ")
	b.WriteString("and give 3 to 5 concrete suggestions that help them get the most important work done.\n\n")
	fmt.Fprintf(&b, "Current time: %s\n", now.Format(time.RFC3339))
	if userContext = strings.TrimSpace(userContext); userContext != "" {
		fmt.Fprintf(&b, "Additional context from the user: %s\n", userContext)
	}
	b.WriteString("\nOpen tasks:\n")
	b.Write(mustJSON(tasks))
	b.WriteString("\n\nRespond with JSON only, no prose, in this shape:\n")
	b.WriteString(`{"suggestions":[{"id":"string","type":"productivity|scheduling|prioritization|habits|focus",`)
	b.WriteString(`"title":"string","description":"string","reasoning":"string","actionSteps":["string"],`)
	b.WriteString(`"priority":"high|medium|low","estimatedImpact":"string"}]}`)
	return b.String()
}

func breakdownPrompt(req ports.BreakdownRequest) string {
	var b strings.Builder
	b.WriteString("Break the following task into 3 to 5 small, actionable sub-tasks. ")
	b.WriteString("Each sub-task should be one short imperative sentence.\n\n")
	fmt.Fprintf(&b, "Task: %s\n", req.TaskTitle)
	if req.TaskDescription != "" {
		fmt.Fprintf(&b, "Details: %s\n", req.TaskDescription)
	}
	b.WriteString("\nRespond with JSON only, no prose, in this shape:\n")
	b.WriteString(`{"subTasks":["string"]}`)
	return b.String()
}

func smartPlanPrompt(tasks []ports.PlanTask, now time.Time) string {
	shown := make([]promptTask, 0, len(tasks))
	for _, t := range tasks {
		pt := promptTask{
			ID:            t.ID,
			Title:         t.Title,
			Priority:      t.Priority,
			EstimatedTime: t.EstimatedTime,
		}
		if t.Description != nil {
			pt.Description = *t.Description
		}
		if t.DueDate != nil {
			pt.DueDate = t.DueDate.Format(time.RFC3339)
			pt.Overdue = t.DueDate.Before(now)
		}
		shown = append(shown, pt)
	}

	var b strings.Builder
	b.WriteString("You are a planning assistant. Order the tasks below into the sequence the user should ")
	b.WriteString("work through them today, weighing deadlines, priority and estimated effort in minutes.\n\n")
	fmt.Fprintf(&b, "Current time: %s\n\nTasks:\n", now.Format(time.RFC3339))
	b.Write(mustJSON(shown))
	b.WriteString("\n\nRespond with JSON only, no prose, in this shape. Use only the task ids given above:\n")
	b.WriteString(`{"reasoning":"string","plan":["task id"]}`)
	return b.String()
}

func mustJSON(v interface{}) []byte {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return []byte("[]")
	}
	return data
}
