package gamification

import (
	"time"

	"github.com/julianstephens/tend/internal/habit"
	"github.com/julianstephens/tend/internal/models"
)

// Catalog returns the full badge catalog. The special-category badges
// (early-bird, night-owl) are defined but never auto-evaluated:
// completion dates carry no time of day to judge them against.
func Catalog() []models.Badge {
	return []models.Badge{
		{ID: "first-step", Name: "First Step", Description: "Complete your first habit", Icon: "star.fill", Color: "#F2BE22", Requirement: 1, Category: models.BadgeCategoryCompletion},
		{ID: "week-warrior", Name: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "flame.fill", Color: "#E74C3C", Requirement: 7, Category: models.BadgeCategoryStreak},
		{ID: "month-master", Name: "Month Master", Description: "Maintain a 30-day streak", Icon: "crown.fill", Color: "#9B59B6", Requirement: 30, Category: models.BadgeCategoryStreak},
		{ID: "century-club", Name: "Century Club", Description: "Complete 100 habits", Icon: "trophy.fill", Color: "#FFD700", Requirement: 100, Category: models.BadgeCategoryCompletion},
		{ID: "variety-seeker", Name: "Variety Seeker", Description: "Track 5 different habits", Icon: "sparkles", Color: "#29ABE2", Requirement: 5, Category: models.BadgeCategoryVariety},
		{ID: "consistency-king", Name: "Consistency King", Description: "Achieve 90% completion rate", Icon: "checkmark.seal.fill", Color: "#27AE60", Requirement: 90, Category: models.BadgeCategoryConsistency},
		{ID: "early-bird", Name: "Early Bird", Description: "Complete habits before 8 AM for 7 days", Icon: "sunrise.fill", Color: "#F39C12", Requirement: 7, Category: models.BadgeCategorySpecial},
		{ID: "night-owl", Name: "Night Owl", Description: "Complete habits after 10 PM for 7 days", Icon: "moon.stars.fill", Color: "#34495E", Requirement: 7, Category: models.BadgeCategorySpecial},
	}
}

// CheckBadgeEarned dispatches on badge category with one evaluator per
// variant. Earning is monotonic for completion, streak and variety;
// consistency can regress when new habits lower the mean, but an earned
// badge is never revoked (the service records EarnedAt once).
func CheckBadgeEarned(b models.Badge, habits []models.Habit, now time.Time) bool {
	switch b.Category {
	case models.BadgeCategoryCompletion:
		return totalCompletions(habits) >= b.Requirement
	case models.BadgeCategoryStreak:
		return maxCurrentStreak(habits, now) >= b.Requirement
	case models.BadgeCategoryVariety:
		return len(habits) >= b.Requirement
	case models.BadgeCategoryConsistency:
		return meanCompletionRate(habits, now) >= float64(b.Requirement)
	default:
		// special badges need time-of-completion data we don't record
		return false
	}
}

func totalCompletions(habits []models.Habit) int {
	total := 0
	for _, h := range habits {
		total += len(h.CompletedDates)
	}
	return total
}

func maxCurrentStreak(habits []models.Habit, now time.Time) int {
	best := 0
	for _, h := range habits {
		if s := habit.CurrentStreak(h.CompletedDates, now); s > best {
			best = s
		}
	}
	return best
}

func meanCompletionRate(habits []models.Habit, now time.Time) float64 {
	if len(habits) == 0 {
		return 0
	}
	sum := 0
	for _, h := range habits {
		sum += habit.CompletionRate(h.CompletedDates, h.CreatedAt, now)
	}
	return float64(sum) / float64(len(habits))
}
