package entities

// SuggestionType classifies an AI suggestion.
type SuggestionType string

const (
	SuggestionProductivity   SuggestionType = "productivity"
	SuggestionScheduling     SuggestionType = "scheduling"
	SuggestionPrioritization SuggestionType = "prioritization"
	SuggestionHabits         SuggestionType = "habits"
	SuggestionFocus          SuggestionType = "focus"
)

// Suggestion is a transient AI recommendation. It is never persisted.
type Suggestion struct {
	ID              string         `json:"id"`
	Type            SuggestionType `json:"type" validate:"required,oneof=productivity scheduling prioritization habits focus"`
	Title           string         `json:"title" validate:"required"`
	Description     string         `json:"description"`
	Reasoning       string         `json:"reasoning"`
	ActionSteps     []string       `json:"actionSteps"`
	Priority        string         `json:"priority" validate:"required,oneof=high medium low"`
	EstimatedImpact string         `json:"estimatedImpact"`
}

// SmartPlan is an AI-suggested execution order over todo ids.
type SmartPlan struct {
	Reasoning string   `json:"reasoning" validate:"required"`
	Plan      []string `json:"plan" validate:"required"`
}

// TaskBreakdown holds actionable sub-tasks for a larger goal.
type TaskBreakdown struct {
	SubTasks []string `json:"subTasks" validate:"required,min=1,max=10,dive,required"`
}
