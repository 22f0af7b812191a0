package habit

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/validation"
)

// The stats functions are total over their input: unparseable date
// strings are dropped, duplicates collapsed, and no input panics. They
// take the evaluation time explicitly so callers and tests agree on what
// "today" means.

const day = 24 * time.Hour

// Today formats the evaluation time as a YYYY-MM-DD completion date.
func Today(now time.Time) string {
	return now.Format(validation.DateLayout)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseDates filters out unparseable entries, collapses duplicates and
// returns UTC midnights in no particular order.
func parseDates(dates []string) []time.Time {
	seen := make(map[string]bool, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, s := range dates {
		if seen[s] {
			continue
		}
		seen[s] = true
		d, err := time.Parse(validation.DateLayout, s)
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out
}

// CurrentStreak returns the count of consecutive days with a completion
// ending at the most recent entry. The streak only counts while the most
// recent completion is today or yesterday; an older one means the streak
// is already broken and the result is 0.
func CurrentStreak(dates []string, now time.Time) int {
	parsed := parseDates(dates)
	if len(parsed) == 0 {
		return 0
	}

	sort.Slice(parsed, func(i, j int) bool { return parsed[i].After(parsed[j]) })

	today := midnight(now)
	yesterday := today.Add(-day)
	mostRecent := parsed[0]
	if !mostRecent.Equal(today) && !mostRecent.Equal(yesterday) {
		return 0
	}

	streak := 1
	for i := 1; i < len(parsed); i++ {
		if parsed[i-1].Sub(parsed[i]) == day {
			streak++
		} else {
			break
		}
	}
	return streak
}

// LongestStreak returns the longest run of consecutive days anywhere in
// the history, regardless of when it happened.
func LongestStreak(dates []string) int {
	parsed := parseDates(dates)
	if len(parsed) == 0 {
		return 0
	}

	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Before(parsed[j]) })

	longest, run := 1, 1
	for i := 1; i < len(parsed); i++ {
		if parsed[i].Sub(parsed[i-1]) == day {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}

// CompletionRate returns completions as a percentage of days elapsed
// since createdAt, rounded and clamped to [0,100]. A zero createdAt is
// treated as "created now", which is a documented fallback rather than
// an error.
func CompletionRate(dates []string, createdAt time.Time, now time.Time) int {
	if createdAt.IsZero() {
		createdAt = now
	}
	elapsed := int(now.Sub(createdAt).Hours() / 24)
	daysSinceCreation := elapsed + 1
	if daysSinceCreation < 1 {
		daysSinceCreation = 1
	}

	rate := int(math.Round(float64(len(dates)) / float64(daysSinceCreation) * 100))
	if rate > 100 {
		rate = 100
	}
	if rate < 0 {
		rate = 0
	}
	return rate
}

// Stats bundles the derived numbers for one habit.
func Stats(h models.Habit, now time.Time) models.HabitStats {
	return models.HabitStats{
		CurrentStreak:  CurrentStreak(h.CompletedDates, now),
		LongestStreak:  LongestStreak(h.CompletedDates),
		TotalCompleted: len(h.CompletedDates),
		CompletionRate: CompletionRate(h.CompletedDates, h.CreatedAt, now),
	}
}

// IsCompletedToday reports whether the habit has a completion for the
// evaluation date.
func IsCompletedToday(h models.Habit, now time.Time) bool {
	today := Today(now)
	for _, d := range h.CompletedDates {
		if d == today {
			return true
		}
	}
	return false
}

// LastCompleted returns the maximum completed date, not the last list
// element: toggling does not keep CompletedDates sorted. ok is false
// when the habit has no valid completions.
func LastCompleted(dates []string) (time.Time, bool) {
	parsed := parseDates(dates)
	if len(parsed) == 0 {
		return time.Time{}, false
	}
	latest := parsed[0]
	for _, d := range parsed[1:] {
		if d.After(latest) {
			latest = d
		}
	}
	return latest, true
}
