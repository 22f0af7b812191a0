package gamification

import (
	"fmt"
	"time"

	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/validation"
)

// GenerateDailyChallenges creates the day's challenges with a [today,
// tomorrow) window. IDs embed the date so one generation per day stays
// naturally idempotent.
func GenerateDailyChallenges(now time.Time) []models.Challenge {
	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	stamp := today.Format(validation.DateLayout)

	return []models.Challenge{
		{
			ID:          fmt.Sprintf("daily-%s-1", stamp),
			Title:       "Perfect Day",
			Description: "Complete all your habits today",
			Type:        models.ChallengeDaily,
			TargetCount: 1,
			Reward:      50,
			StartDate:   today,
			EndDate:     tomorrow,
			Icon:        "star.circle.fill",
			Color:       "#F2BE22",
		},
		{
			ID:          fmt.Sprintf("daily-%s-2", stamp),
			Title:       "Early Achiever",
			Description: "Complete 3 habits before noon",
			Type:        models.ChallengeDaily,
			TargetCount: 3,
			Reward:      30,
			StartDate:   today,
			EndDate:     tomorrow,
			Icon:        "sunrise.fill",
			Color:       "#F39C12",
		},
	}
}

// GenerateWeeklyChallenges creates the week's challenge with a 7-day window.
func GenerateWeeklyChallenges(now time.Time) []models.Challenge {
	today := startOfDay(now)
	nextWeek := today.AddDate(0, 0, 7)

	return []models.Challenge{
		{
			ID:          fmt.Sprintf("weekly-%s", today.Format(validation.DateLayout)),
			Title:       "Weekly Warrior",
			Description: "Complete all habits for 7 consecutive days",
			Type:        models.ChallengeWeekly,
			TargetCount: 7,
			Reward:      200,
			StartDate:   today,
			EndDate:     nextWeek,
			Icon:        "flame.fill",
			Color:       "#E74C3C",
		},
	}
}

// PruneExpired filters out challenges whose window has closed. EndDate
// is exclusive: a daily generated yesterday ends at today's midnight and
// is already expired this morning.
func PruneExpired(challenges []models.Challenge, now time.Time) []models.Challenge {
	today := startOfDay(now)
	active := make([]models.Challenge, 0, len(challenges))
	for _, c := range challenges {
		if c.EndDate.After(today) {
			active = append(active, c)
		}
	}
	return active
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
