package models

// StepData tracks cumulative steps against a daily goal.
type StepData struct {
	Steps int `json:"steps"`
	Goal  int `json:"goal"`
}

// WaterIntake tracks glasses of water against a daily goal.
type WaterIntake struct {
	Glasses int `json:"glasses"`
	Goal    int `json:"goal"`
}

// SleepLog records one night of sleep. Duration is in hours, Score 0-100.
type SleepLog struct {
	Bedtime  string  `json:"bedtime"`
	WakeTime string  `json:"wake_time"`
	Duration float64 `json:"duration"`
	Score    int     `json:"score"`
}

type MoodEntry struct {
	Emoji string `json:"emoji"`
	Note  string `json:"note,omitempty"`
}

// FocusSession records a timed focus block. Duration is in minutes.
type FocusSession struct {
	Duration  int  `json:"duration"`
	Completed bool `json:"completed"`
}

type GratitudeEntry struct {
	Entries []string `json:"entries"`
}

type BreathingSession struct {
	Completed bool `json:"completed"`
}

type PostureCheck struct {
	Completed bool `json:"completed"`
}

// DailyWellness aggregates one calendar day of wellness logging. Date is
// the primary key (YYYY-MM-DD); at most one record exists per date. Nil
// optional fields mean "not logged that day", not zero.
type DailyWellness struct {
	Date      string            `json:"date"`
	Steps     StepData          `json:"steps"`
	Water     WaterIntake       `json:"water"`
	Sleep     *SleepLog         `json:"sleep,omitempty"`
	Mood      *MoodEntry        `json:"mood,omitempty"`
	Focus     *FocusSession     `json:"focus,omitempty"`
	Gratitude *GratitudeEntry   `json:"gratitude,omitempty"`
	Breathing *BreathingSession `json:"breathing,omitempty"`
	Posture   *PostureCheck     `json:"posture,omitempty"`
}
