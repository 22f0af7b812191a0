package wellness

import (
	"testing"
	"time"

	"github.com/julianstephens/tend/internal/kvstore"
	"github.com/julianstephens/tend/internal/models"
)

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestTodayData_DefaultsWithoutPersisting(t *testing.T) {
	store := kvstore.NewMemory()
	tracker := NewTracker(store, 10000, 8)
	now := at(2024, 3, 1)

	today, err := tracker.TodayData(now)
	if err != nil {
		t.Fatalf("TodayData failed: %v", err)
	}
	if today.Date != "2024-03-01" {
		t.Errorf("expected date 2024-03-01, got %s", today.Date)
	}
	if today.Water.Goal != 8 || today.Steps.Goal != 10000 {
		t.Errorf("expected configured goals, got water %d steps %d", today.Water.Goal, today.Steps.Goal)
	}

	history, err := tracker.History()
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("reading today must not persist a record, got %d entries", len(history))
	}
}

func TestAddWaterGlass(t *testing.T) {
	tracker := NewTracker(kvstore.NewMemory(), 10000, 8)
	now := at(2024, 3, 1)

	for want := 1; want <= 3; want++ {
		got, err := tracker.AddWaterGlass(now)
		if err != nil {
			t.Fatalf("AddWaterGlass failed: %v", err)
		}
		if got != want {
			t.Errorf("expected %d glasses, got %d", want, got)
		}
	}
}

func TestOneRecordPerDate(t *testing.T) {
	tracker := NewTracker(kvstore.NewMemory(), 10000, 8)
	now := at(2024, 3, 1)

	if _, err := tracker.AddWaterGlass(now); err != nil {
		t.Fatal(err)
	}
	if err := tracker.SetSteps(4000, now); err != nil {
		t.Fatal(err)
	}
	if err := tracker.SetMood(models.MoodEntry{Emoji: "🙂"}, now); err != nil {
		t.Fatal(err)
	}

	history, err := tracker.History()
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 {
		t.Fatalf("expected a single record for the day, got %d", len(history))
	}

	// Each update merged into the same record instead of replacing it.
	day := history[0]
	if day.Water.Glasses != 1 {
		t.Errorf("water lost in merge: %d glasses", day.Water.Glasses)
	}
	if day.Steps.Steps != 4000 {
		t.Errorf("steps lost in merge: %d", day.Steps.Steps)
	}
	if day.Mood == nil || day.Mood.Emoji != "🙂" {
		t.Errorf("mood lost in merge: %+v", day.Mood)
	}
}

func TestHistory_NewestFirst(t *testing.T) {
	tracker := NewTracker(kvstore.NewMemory(), 10000, 8)

	for _, d := range []int{1, 3, 2} {
		if _, err := tracker.AddWaterGlass(at(2024, 3, d)); err != nil {
			t.Fatal(err)
		}
	}

	history, err := tracker.History()
	if err != nil {
		t.Fatal(err)
	}
	var dates []string
	for _, d := range history {
		dates = append(dates, d.Date)
	}
	want := []string{"2024-03-03", "2024-03-02", "2024-03-01"}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, dates)
		}
	}
}

func TestSetWaterGoal_RejectsNonPositive(t *testing.T) {
	tracker := NewTracker(kvstore.NewMemory(), 10000, 8)
	if err := tracker.SetWaterGoal(0, at(2024, 3, 1)); err == nil {
		t.Error("expected an error for a zero goal")
	}
	if err := tracker.SetSteps(-1, at(2024, 3, 1)); err == nil {
		t.Error("expected an error for negative steps")
	}
}

func TestDayQualifies(t *testing.T) {
	base := models.DailyWellness{
		Steps: models.StepData{Goal: 10000},
		Water: models.WaterIntake{Goal: 8},
	}

	if dayQualifies(base) {
		t.Error("an empty day must not qualify")
	}

	d := base
	d.Water.Glasses = 7 // 87% of 8
	if !dayQualifies(d) {
		t.Error("water at 80% of goal should qualify")
	}

	d = base
	d.Water.Glasses = 6 // 75% of 8
	if dayQualifies(d) {
		t.Error("water below 80% of goal must not qualify")
	}

	d = base
	d.Steps.Steps = 8000
	if !dayQualifies(d) {
		t.Error("steps at 80% of goal should qualify")
	}

	d = base
	d.Sleep = &models.SleepLog{Duration: 7.5}
	if !dayQualifies(d) {
		t.Error("a sleep entry should qualify")
	}

	d = base
	d.Mood = &models.MoodEntry{Emoji: "🙂"}
	if !dayQualifies(d) {
		t.Error("a mood entry should qualify")
	}
}

func TestStreak(t *testing.T) {
	tracker := NewTracker(kvstore.NewMemory(), 10000, 8)
	now := at(2024, 3, 5)

	streak, err := tracker.Streak(now)
	if err != nil {
		t.Fatal(err)
	}
	if streak != 0 {
		t.Errorf("expected streak 0 with no history, got %d", streak)
	}

	// A qualifying day today.
	for i := 0; i < 7; i++ {
		if _, err := tracker.AddWaterGlass(now); err != nil {
			t.Fatal(err)
		}
	}
	streak, err = tracker.Streak(now)
	if err != nil {
		t.Fatal(err)
	}
	if streak != 1 {
		t.Errorf("expected streak 1, got %d", streak)
	}

	// Qualifying days walking back without a gap extend the streak.
	if err := tracker.SetSleep(models.SleepLog{Duration: 8}, at(2024, 3, 4)); err != nil {
		t.Fatal(err)
	}
	if err := tracker.SetMood(models.MoodEntry{Emoji: "😴"}, at(2024, 3, 3)); err != nil {
		t.Fatal(err)
	}
	streak, err = tracker.Streak(now)
	if err != nil {
		t.Fatal(err)
	}
	if streak != 3 {
		t.Errorf("expected streak 3, got %d", streak)
	}

	// A day that exists but fails the predicate ends the walk, with no
	// yesterday grace.
	if err := tracker.SetSteps(100, at(2024, 3, 2)); err != nil {
		t.Fatal(err)
	}
	streak, err = tracker.Streak(now)
	if err != nil {
		t.Fatal(err)
	}
	if streak != 3 {
		t.Errorf("expected streak still 3 past a non-qualifying day, got %d", streak)
	}

	// No record for today at a later date means streak 0 immediately.
	streak, err = tracker.Streak(at(2024, 3, 7))
	if err != nil {
		t.Fatal(err)
	}
	if streak != 0 {
		t.Errorf("expected streak 0 when today has no qualifying record, got %d", streak)
	}
}
