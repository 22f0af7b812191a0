package models

import "time"

type BadgeCategory string

const (
	BadgeCategoryStreak      BadgeCategory = "streak"
	BadgeCategoryCompletion  BadgeCategory = "completion"
	BadgeCategoryVariety     BadgeCategory = "variety"
	BadgeCategoryConsistency BadgeCategory = "consistency"
	BadgeCategorySpecial     BadgeCategory = "special"
)

// Badge is a catalog entry; EarnedAt is set only on the persisted copy
// once the badge has been unlocked. Earning is one-time and permanent.
type Badge struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Color       string        `json:"color"`
	Requirement int           `json:"requirement"`
	Category    BadgeCategory `json:"category"`
	EarnedAt    *time.Time    `json:"earned_at,omitempty"`
}

// UserLevel is a pure function of cumulative XP; it is derived, never stored.
type UserLevel struct {
	Level         int `json:"level"`
	CurrentXP     int `json:"current_xp"`
	XPToNextLevel int `json:"xp_to_next_level"`
	TotalXP       int `json:"total_xp"`
}

type ChallengeType string

const (
	ChallengeDaily   ChallengeType = "daily"
	ChallengeWeekly  ChallengeType = "weekly"
	ChallengeMonthly ChallengeType = "monthly"
	ChallengeCustom  ChallengeType = "custom"
)

// Challenge is a time-boxed target with incremental progress. Completed
// must equal CurrentCount >= TargetCount after every update.
type Challenge struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Type         ChallengeType `json:"type"`
	TargetCount  int           `json:"target_count"`
	CurrentCount int           `json:"current_count"`
	Reward       int           `json:"reward"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	Completed    bool          `json:"completed"`
	Icon         string        `json:"icon"`
	Color        string        `json:"color"`
}
