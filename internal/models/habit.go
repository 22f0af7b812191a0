package models

import "time"

// Habit represents a recurring practice to track. CompletedDates holds
// YYYY-MM-DD strings with no duplicates; order is not significant.
type Habit struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Icon           string    `json:"icon"`
	Color          string    `json:"color"`
	ReminderTime   string    `json:"reminder_time,omitempty"`
	CompletedDates []string  `json:"completed_dates"`
	CreatedAt      time.Time `json:"created_at"`
	CustomImage    string    `json:"custom_image,omitempty"`
}

// HabitStats is the derived per-habit summary shown alongside a habit.
type HabitStats struct {
	CurrentStreak  int `json:"current_streak"`
	LongestStreak  int `json:"longest_streak"`
	TotalCompleted int `json:"total_completed"`
	CompletionRate int `json:"completion_rate"`
}
