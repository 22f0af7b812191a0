package models

import "time"

// Social types are data shapes only; nothing in the engine consumes them.
// They exist so clients share one wire format for profile/leaderboard
// payloads when a sync layer eventually lands.

type UserProfile struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	DisplayName   string    `json:"display_name"`
	Avatar        string    `json:"avatar,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	Level         int       `json:"level"`
	TotalPoints   int       `json:"total_points"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	Badges        []string  `json:"badges"`
	IsPublic      bool      `json:"is_public"`
	CreatedAt     time.Time `json:"created_at"`
}

type LeaderboardEntry struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Avatar      string `json:"avatar,omitempty"`
	TotalPoints int    `json:"total_points"`
	Level       int    `json:"level"`
	Streak      int    `json:"streak"`
	Rank        int    `json:"rank"`
}
