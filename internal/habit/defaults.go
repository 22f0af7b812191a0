package habit

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tend/internal/models"
)

// defaultHabits is the starter set seeded into an empty store so a new
// install has something to tap on day one.
func defaultHabits(now time.Time) []models.Habit {
	seeds := []struct {
		name  string
		icon  string
		color string
	}{
		{"Drink Water", "water_drop", "#29ABE2"},
		{"Morning Exercise", "fitness_center", "#E74C3C"},
		{"Read for 20 minutes", "menu_book", "#3498DB"},
	}

	habits := make([]models.Habit, 0, len(seeds))
	for _, s := range seeds {
		habits = append(habits, models.Habit{
			ID:             uuid.New().String(),
			Name:           s.name,
			Icon:           s.icon,
			Color:          s.color,
			CompletedDates: []string{},
			CreatedAt:      now,
		})
	}
	return habits
}

// DefaultIconFor suggests an icon key for a habit name, mirroring the
// keys used by the suggestion catalog.
func DefaultIconFor(name string) string {
	cases := []struct {
		keywords []string
		icon     string
	}{
		{[]string{"water", "drink"}, "water_drop"},
		{[]string{"exercise", "workout", "gym"}, "fitness_center"},
		{[]string{"read", "book"}, "menu_book"},
		{[]string{"walk", "run", "jog"}, "directions_run"},
		{[]string{"sleep", "rest"}, "bed"},
		{[]string{"meditat", "mindful"}, "spa"},
		{[]string{"eat", "food", "meal"}, "restaurant"},
	}

	lower := strings.ToLower(strings.TrimSpace(name))
	for _, c := range cases {
		for _, k := range c.keywords {
			if strings.Contains(lower, k) {
				return c.icon
			}
		}
	}
	return "check_circle"
}
