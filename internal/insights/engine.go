// Package insights generates advisory cards, weekday patterns and new
// habit suggestions from completion history. Generation is stateless and
// deterministic given (habits, now); only the dismissed-id set persists.
package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/tend/internal/habit"
	"github.com/julianstephens/tend/internal/models"
)

const (
	streakGoalDays      = 30
	lowRateThreshold    = 50
	inactivityDays      = 3
	celebrateThreshold  = 80
	minPatternEntries   = 7
	maxSuggestions      = 4
	consistencyTipID    = "tip-consistency"
	overallInsightID    = "insight-overall-great"
)

// GenerateInsights runs the rule set over every habit plus the global
// rules, returning cards ordered by priority (high first; ties keep
// generation order).
func GenerateInsights(habits []models.Habit, now time.Time) []models.Insight {
	var insights []models.Insight

	for _, h := range habits {
		streak := habit.CurrentStreak(h.CompletedDates, now)
		rate := habit.CompletionRate(h.CompletedDates, h.CreatedAt, now)

		if streak >= 7 && streak < streakGoalDays {
			insights = append(insights, models.Insight{
				ID:          fmt.Sprintf("insight-%s-streak", h.ID),
				Type:        models.InsightAchievement,
				Title:       fmt.Sprintf("%s is on fire!", h.Name),
				Description: fmt.Sprintf("You've maintained a %d-day streak. Keep it up to reach %d days!", streak, streakGoalDays),
				Icon:        "flame.fill",
				Color:       "#E74C3C",
				Priority:    models.PriorityHigh,
				CreatedAt:   now,
			})
		}

		if rate < lowRateThreshold && len(h.CompletedDates) > 7 {
			insights = append(insights, models.Insight{
				ID:          fmt.Sprintf("insight-%s-low-rate", h.ID),
				Type:        models.InsightWarning,
				Title:       fmt.Sprintf("%s needs attention", h.Name),
				Description: fmt.Sprintf("Your completion rate is %d%%. Consider adjusting your goal or reminder time.", rate),
				Icon:        "exclamationmark.triangle.fill",
				Color:       "#F39C12",
				Priority:    models.PriorityMedium,
				Actionable:  true,
				Action:      &models.InsightAction{Label: "Adjust Habit", HabitID: h.ID},
				CreatedAt:   now,
			})
		}

		// The maximum date, not the last list element: toggling does not
		// keep CompletedDates sorted.
		if last, ok := habit.LastCompleted(h.CompletedDates); ok {
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			daysSince := int(today.Sub(last).Hours() / 24)
			if daysSince >= inactivityDays {
				insights = append(insights, models.Insight{
					ID:          fmt.Sprintf("insight-%s-inactive", h.ID),
					Type:        models.InsightWarning,
					Title:       fmt.Sprintf("Missing %s?", h.Name),
					Description: fmt.Sprintf("It's been %d days since you last completed this habit. Get back on track!", daysSince),
					Icon:        "clock.badge.exclamationmark.fill",
					Color:       "#E74C3C",
					Priority:    models.PriorityHigh,
					Actionable:  true,
					Action:      &models.InsightAction{Label: "Complete Now", HabitID: h.ID},
					CreatedAt:   now,
				})
			}
		}
	}

	if len(habits) > 0 {
		sum := 0
		for _, h := range habits {
			sum += habit.CompletionRate(h.CompletedDates, h.CreatedAt, now)
		}
		avg := sum / len(habits)
		if avg >= celebrateThreshold {
			insights = append(insights, models.Insight{
				ID:          overallInsightID,
				Type:        models.InsightAchievement,
				Title:       "You're crushing it!",
				Description: fmt.Sprintf("Your overall completion rate is %d%%. You're building amazing habits!", avg),
				Icon:        "star.fill",
				Color:       "#27AE60",
				Priority:    models.PriorityHigh,
				CreatedAt:   now,
			})
		}
	}

	// Always present; the stable id lets a single dismissal stick.
	insights = append(insights, models.Insight{
		ID:          consistencyTipID,
		Type:        models.InsightTip,
		Title:       "Consistency is key",
		Description: "Studies show that it takes 21-66 days to form a new habit. Stay consistent!",
		Icon:        "lightbulb.fill",
		Color:       "#29ABE2",
		Priority:    models.PriorityLow,
		CreatedAt:   now,
	})

	sort.SliceStable(insights, func(i, j int) bool {
		return priorityRank(insights[i].Priority) < priorityRank(insights[j].Priority)
	})
	return insights
}

func priorityRank(p models.InsightPriority) int {
	switch p {
	case models.PriorityHigh:
		return 0
	case models.PriorityMedium:
		return 1
	default:
		return 2
	}
}

// AnalyzeHabitPatterns computes the top 3 weekdays by completion count.
// Ties keep first-seen order, so the result is stable for a given
// completion list. Only meaningful once a habit has at least
// minPatternEntries completions; callers filter.
func AnalyzeHabitPatterns(h models.Habit, now time.Time) models.HabitPattern {
	type weekdayCount struct {
		name  string
		count int
	}
	var counts []weekdayCount
	index := map[string]int{}

	for _, s := range h.CompletedDates {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			continue
		}
		name := d.Weekday().String()
		if i, ok := index[name]; ok {
			counts[i].count++
		} else {
			index[name] = len(counts)
			counts = append(counts, weekdayCount{name: name, count: 1})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool { return counts[i].count > counts[j].count })

	best := make([]string, 0, 3)
	for i := 0; i < len(counts) && i < 3; i++ {
		best = append(best, counts[i].name)
	}

	return models.HabitPattern{
		HabitID:               h.ID,
		HabitName:             h.Name,
		BestDays:              best,
		BestTimeOfDay:         "morning",
		AverageCompletionRate: habit.CompletionRate(h.CompletedDates, h.CreatedAt, now),
	}
}

// AnalyzeAllPatterns returns patterns for every habit with enough history.
func AnalyzeAllPatterns(habits []models.Habit, now time.Time) []models.HabitPattern {
	patterns := []models.HabitPattern{}
	for _, h := range habits {
		if len(h.CompletedDates) >= minPatternEntries {
			patterns = append(patterns, AnalyzeHabitPatterns(h, now))
		}
	}
	return patterns
}

// GenerateSuggestions filters the candidate catalog against icons the
// user already tracks (the icon is the de-facto category key) and
// returns at most four, in catalog order.
func GenerateSuggestions(existing []models.Habit) []models.HabitSuggestion {
	used := make(map[string]bool, len(existing))
	for _, h := range existing {
		used[h.Icon] = true
	}

	out := []models.HabitSuggestion{}
	for _, s := range suggestionCatalog() {
		if used[s.Icon] {
			continue
		}
		out = append(out, s)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func suggestionCatalog() []models.HabitSuggestion {
	return []models.HabitSuggestion{
		{
			ID: "suggest-meditation", Name: "Daily Meditation", Icon: "spa", Color: "#9B59B6",
			Reason: "Reduce stress and improve focus", Category: "Mental Health",
			Difficulty: "easy", EstimatedTime: "10 minutes",
			Benefits: []string{"Reduces stress", "Improves focus", "Better sleep"},
		},
		{
			ID: "suggest-exercise", Name: "Morning Exercise", Icon: "fitness_center", Color: "#E74C3C",
			Reason: "Boost energy and physical health", Category: "Fitness",
			Difficulty: "medium", EstimatedTime: "30 minutes",
			Benefits: []string{"Increases energy", "Improves mood", "Better health"},
		},
		{
			ID: "suggest-reading", Name: "Read for 20 minutes", Icon: "menu_book", Color: "#3498DB",
			Reason: "Expand knowledge and reduce screen time", Category: "Learning",
			Difficulty: "easy", EstimatedTime: "20 minutes",
			Benefits: []string{"Expands knowledge", "Reduces stress", "Better vocabulary"},
		},
		{
			ID: "suggest-water", Name: "Drink 8 glasses of water", Icon: "water_drop", Color: "#29ABE2",
			Reason: "Stay hydrated for better health", Category: "Health",
			Difficulty: "easy", EstimatedTime: "Throughout day",
			Benefits: []string{"Better hydration", "Clearer skin", "More energy"},
		},
		{
			ID: "suggest-gratitude", Name: "Gratitude Journal", Icon: "favorite", Color: "#F2BE22",
			Reason: "Improve mental well-being", Category: "Mental Health",
			Difficulty: "easy", EstimatedTime: "5 minutes",
			Benefits: []string{"Positive mindset", "Better mood", "Reduced anxiety"},
		},
		{
			ID: "suggest-sleep", Name: "Sleep 8 hours", Icon: "bed", Color: "#34495E",
			Reason: "Essential for recovery and health", Category: "Health",
			Difficulty: "medium", EstimatedTime: "8 hours",
			Benefits: []string{"Better recovery", "Improved focus", "Stronger immune system"},
		},
	}
}
