package insights

import (
	"testing"
	"time"

	"github.com/julianstephens/tend/internal/models"
)

func evalTime() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func runEndingAt(end time.Time, days int) []string {
	dates := make([]string, 0, days)
	for i := days - 1; i >= 0; i-- {
		dates = append(dates, end.AddDate(0, 0, -i).Format("2006-01-02"))
	}
	return dates
}

func findInsight(insights []models.Insight, id string) (models.Insight, bool) {
	for _, in := range insights {
		if in.ID == id {
			return in, true
		}
	}
	return models.Insight{}, false
}

func TestGenerateInsights_StreakAchievement(t *testing.T) {
	now := evalTime()
	h := models.Habit{
		ID:             "h1",
		Name:           "Run",
		CompletedDates: runEndingAt(now, 7),
		CreatedAt:      now.AddDate(0, 0, -6),
	}

	insights := GenerateInsights([]models.Habit{h}, now)
	in, ok := findInsight(insights, "insight-h1-streak")
	if !ok {
		t.Fatal("expected a streak achievement insight at 7 days")
	}
	if in.Type != models.InsightAchievement || in.Priority != models.PriorityHigh {
		t.Errorf("unexpected streak insight shape: %+v", in)
	}

	// At 30 days the user has hit the goal; the nudge disappears.
	h.CompletedDates = runEndingAt(now, 30)
	h.CreatedAt = now.AddDate(0, 0, -29)
	insights = GenerateInsights([]models.Habit{h}, now)
	if _, ok := findInsight(insights, "insight-h1-streak"); ok {
		t.Error("streak insight should stop at the 30-day goal")
	}
}

func TestGenerateInsights_LowRateWarning(t *testing.T) {
	now := evalTime()
	// 8 completions in 30 days of ownership: 27%, enough history to judge.
	h := models.Habit{
		ID:             "h1",
		Name:           "Stretch",
		CompletedDates: runEndingAt(now, 8),
		CreatedAt:      now.AddDate(0, 0, -29),
	}

	insights := GenerateInsights([]models.Habit{h}, now)
	in, ok := findInsight(insights, "insight-h1-low-rate")
	if !ok {
		t.Fatal("expected a low-rate warning")
	}
	if in.Priority != models.PriorityMedium || !in.Actionable {
		t.Errorf("unexpected low-rate insight shape: %+v", in)
	}
	if in.Action == nil || in.Action.HabitID != "h1" {
		t.Errorf("low-rate insight should point at the habit, got %+v", in.Action)
	}

	// Too little history: no judgment yet.
	h.CompletedDates = runEndingAt(now, 3)
	insights = GenerateInsights([]models.Habit{h}, now)
	if _, ok := findInsight(insights, "insight-h1-low-rate"); ok {
		t.Error("fewer than 8 completions should not trigger the warning")
	}
}

func TestGenerateInsights_InactivityUsesMaxDate(t *testing.T) {
	now := evalTime()
	// Unsorted on purpose: a back-dated toggle appended an old date after
	// the most recent one.
	h := models.Habit{
		ID:             "h1",
		Name:           "Meditate",
		CompletedDates: []string{"2024-02-25", "2024-02-10", "2024-02-20"},
		CreatedAt:      now.AddDate(0, 0, -60),
	}

	insights := GenerateInsights([]models.Habit{h}, now)
	in, ok := findInsight(insights, "insight-h1-inactive")
	if !ok {
		t.Fatal("expected an inactivity warning")
	}
	if in.Description != "It's been 5 days since you last completed this habit. Get back on track!" {
		t.Errorf("days-since must come from the max date, got %q", in.Description)
	}

	// Completed two days ago: inside the window, no warning.
	h.CompletedDates = []string{"2024-02-28"}
	insights = GenerateInsights([]models.Habit{h}, now)
	if _, ok := findInsight(insights, "insight-h1-inactive"); ok {
		t.Error("a 2-day gap must not trigger the inactivity warning")
	}

	// Never completed: nothing to be inactive from.
	h.CompletedDates = nil
	insights = GenerateInsights([]models.Habit{h}, now)
	if _, ok := findInsight(insights, "insight-h1-inactive"); ok {
		t.Error("a habit with no completions has no inactivity insight")
	}
}

func TestGenerateInsights_Celebration(t *testing.T) {
	now := evalTime()
	h := models.Habit{
		ID:             "h1",
		Name:           "Run",
		CompletedDates: runEndingAt(now, 10),
		CreatedAt:      now.AddDate(0, 0, -9),
	}

	insights := GenerateInsights([]models.Habit{h}, now)
	if _, ok := findInsight(insights, "insight-overall-great"); !ok {
		t.Error("expected the celebration insight at 100% mean rate")
	}

	// An untouched habit drags the mean below the threshold.
	habits := []models.Habit{h, {ID: "h2", Name: "Idle", CreatedAt: now.AddDate(0, 0, -9)}}
	insights = GenerateInsights(habits, now)
	if _, ok := findInsight(insights, "insight-overall-great"); ok {
		t.Error("celebration must not fire below an 80% mean rate")
	}
}

func TestGenerateInsights_TipAlwaysPresent(t *testing.T) {
	now := evalTime()

	insights := GenerateInsights(nil, now)
	if len(insights) != 1 || insights[0].ID != "tip-consistency" {
		t.Fatalf("expected only the consistency tip for no habits, got %+v", insights)
	}

	// Same id on every pass, so one dismissal sticks.
	again := GenerateInsights(nil, now.AddDate(0, 0, 1))
	if again[0].ID != "tip-consistency" {
		t.Error("the tip id must be stable across passes")
	}
}

func TestGenerateInsights_SortedByPriority(t *testing.T) {
	now := evalTime()
	habits := []models.Habit{
		{
			// Low rate: medium priority.
			ID: "low", Name: "Low",
			CompletedDates: runEndingAt(now, 8),
			CreatedAt:      now.AddDate(0, 0, -40),
		},
		{
			// 7-day streak: high priority.
			ID: "hot", Name: "Hot",
			CompletedDates: runEndingAt(now, 7),
			CreatedAt:      now.AddDate(0, 0, -6),
		},
	}

	insights := GenerateInsights(habits, now)

	rank := map[models.InsightPriority]int{
		models.PriorityHigh:   0,
		models.PriorityMedium: 1,
		models.PriorityLow:    2,
	}
	for i := 1; i < len(insights); i++ {
		if rank[insights[i].Priority] < rank[insights[i-1].Priority] {
			t.Fatalf("insights out of priority order at %d: %s after %s",
				i, insights[i].Priority, insights[i-1].Priority)
		}
	}
	if insights[len(insights)-1].ID != "tip-consistency" {
		t.Error("the low-priority tip should sort last")
	}
}

func TestAnalyzeHabitPatterns(t *testing.T) {
	now := evalTime()
	h := models.Habit{
		ID:   "h1",
		Name: "Gym",
		// Three Mondays, two Wednesdays, one Friday, one Saturday.
		CompletedDates: []string{
			"2024-02-05", "2024-02-12", "2024-02-19", // Mondays
			"2024-02-07", "2024-02-14", // Wednesdays
			"2024-02-09", // Friday
			"2024-02-10", // Saturday
		},
		CreatedAt: now.AddDate(0, 0, -30),
	}

	p := AnalyzeHabitPatterns(h, now)
	if len(p.BestDays) != 3 {
		t.Fatalf("expected top 3 weekdays, got %v", p.BestDays)
	}
	if p.BestDays[0] != "Monday" || p.BestDays[1] != "Wednesday" {
		t.Errorf("expected Monday then Wednesday, got %v", p.BestDays)
	}
	// Friday and Saturday tie at one; first-seen order wins.
	if p.BestDays[2] != "Friday" {
		t.Errorf("ties must keep first-seen order, got %v", p.BestDays)
	}
}

func TestAnalyzeAllPatterns_FiltersShortHistories(t *testing.T) {
	now := evalTime()
	habits := []models.Habit{
		{ID: "short", CompletedDates: runEndingAt(now, 6)},
		{ID: "long", CompletedDates: runEndingAt(now, 7), CreatedAt: now.AddDate(0, 0, -6)},
	}

	patterns := AnalyzeAllPatterns(habits, now)
	if len(patterns) != 1 || patterns[0].HabitID != "long" {
		t.Errorf("expected only habits with 7+ completions, got %+v", patterns)
	}
}

func TestGenerateSuggestions(t *testing.T) {
	// Nothing tracked: capped at four, in catalog order.
	out := GenerateSuggestions(nil)
	if len(out) != 4 {
		t.Fatalf("expected 4 suggestions, got %d", len(out))
	}
	if out[0].ID != "suggest-meditation" {
		t.Errorf("expected catalog order, got %s first", out[0].ID)
	}

	// A tracked water habit knocks out the water suggestion by icon.
	existing := []models.Habit{
		{ID: "h1", Name: "Hydrate", Icon: "water_drop"},
		{ID: "h2", Name: "Sit", Icon: "spa"},
	}
	out = GenerateSuggestions(existing)
	for _, s := range out {
		if s.Icon == "water_drop" || s.Icon == "spa" {
			t.Errorf("suggestion %s collides with a tracked icon", s.ID)
		}
	}
	if len(out) != 4 {
		t.Errorf("expected 4 remaining suggestions, got %d", len(out))
	}
}
