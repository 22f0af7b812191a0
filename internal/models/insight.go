package models

import "time"

type InsightType string

const (
	InsightSuggestion  InsightType = "suggestion"
	InsightPattern     InsightType = "pattern"
	InsightWarning     InsightType = "warning"
	InsightAchievement InsightType = "achievement"
	InsightTip         InsightType = "tip"
)

type InsightPriority string

const (
	PriorityHigh   InsightPriority = "high"
	PriorityMedium InsightPriority = "medium"
	PriorityLow    InsightPriority = "low"
)

// InsightAction points the UI at a follow-up for an actionable insight.
type InsightAction struct {
	Label   string `json:"label"`
	HabitID string `json:"habit_id,omitempty"`
}

// Insight is a generated, dismissible advisory card. IDs are stable
// across generation passes so a dismissal sticks.
type Insight struct {
	ID          string          `json:"id"`
	Type        InsightType     `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Color       string          `json:"color"`
	Priority    InsightPriority `json:"priority"`
	Actionable  bool            `json:"actionable"`
	Action      *InsightAction  `json:"action,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// HabitPattern summarizes when a habit tends to get done.
type HabitPattern struct {
	HabitID               string   `json:"habit_id"`
	HabitName             string   `json:"habit_name"`
	BestDays              []string `json:"best_days"`
	BestTimeOfDay         string   `json:"best_time_of_day"`
	AverageCompletionRate int      `json:"average_completion_rate"`
}

// HabitSuggestion is a catalog candidate not yet tracked by the user.
type HabitSuggestion struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Icon          string   `json:"icon"`
	Color         string   `json:"color"`
	Reason        string   `json:"reason"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
	EstimatedTime string   `json:"estimated_time"`
	Benefits      []string `json:"benefits"`
}
