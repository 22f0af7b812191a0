// Package wellness tracks per-day aggregate records: steps, water,
// sleep, mood, focus, gratitude, breathing and posture.
package wellness

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/tend/internal/kvstore"
	"github.com/julianstephens/tend/internal/logger"
	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/validation"
)

const wellnessKey = "wellness_data"

// StepSource is the sensor boundary: a pedometer exposing a cumulative
// count since midnight. The tracker treats its output as an opaque
// integer.
type StepSource interface {
	Available() bool
	Steps() (int, error)
}

// Patch is a partial update to today's record. nil pointer means "leave
// as is"; set fields replace the corresponding sub-record wholesale.
type Patch struct {
	Steps     *models.StepData
	Water     *models.WaterIntake
	Sleep     *models.SleepLog
	Mood      *models.MoodEntry
	Focus     *models.FocusSession
	Gratitude *models.GratitudeEntry
	Breathing *models.BreathingSession
	Posture   *models.PostureCheck
}

// Tracker owns the wellness history. Date-uniqueness is enforced by
// replacing today's record on every upsert: filter out the same-date
// entry, merge, append. Writes are serialized by a mutex; rapid logging
// taps cannot drop each other's update.
type Tracker struct {
	mu        sync.Mutex
	store     kvstore.Store
	stepGoal  int
	waterGoal int
}

func NewTracker(store kvstore.Store, stepGoal, waterGoal int) *Tracker {
	if stepGoal <= 0 {
		stepGoal = 10000
	}
	if waterGoal <= 0 {
		waterGoal = 8
	}
	return &Tracker{store: store, stepGoal: stepGoal, waterGoal: waterGoal}
}

func (t *Tracker) load() ([]models.DailyWellness, error) {
	raw, ok, err := t.store.Get(wellnessKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.DailyWellness{}, nil
	}
	var history []models.DailyWellness
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		logger.Warn("wellness data is malformed, treating as empty", "error", err)
		return []models.DailyWellness{}, nil
	}
	return history, nil
}

func (t *Tracker) save(history []models.DailyWellness) error {
	data, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return t.store.Set(wellnessKey, string(data))
}

// History returns the full accumulated record set, newest first.
func (t *Tracker) History() ([]models.DailyWellness, error) {
	history, err := t.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Date > history[j].Date })
	return history, nil
}

// TodayData returns today's record, or a fresh one with default goals if
// nothing has been logged yet. The fresh record is not persisted.
func (t *Tracker) TodayData(now time.Time) (models.DailyWellness, error) {
	history, err := t.load()
	if err != nil {
		return models.DailyWellness{}, err
	}
	return t.todayFrom(history, now), nil
}

func (t *Tracker) todayFrom(history []models.DailyWellness, now time.Time) models.DailyWellness {
	today := now.Format(validation.DateLayout)
	for _, d := range history {
		if d.Date == today {
			return d
		}
	}
	return models.DailyWellness{
		Date:  today,
		Steps: models.StepData{Steps: 0, Goal: t.stepGoal},
		Water: models.WaterIntake{Glasses: 0, Goal: t.waterGoal},
	}
}

// UpdateToday merges a partial update into today's record and persists
// the history with today's entry replaced.
func (t *Tracker) UpdateToday(patch Patch, now time.Time) (models.DailyWellness, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.updateTodayLocked(patch, now)
}

func (t *Tracker) updateTodayLocked(patch Patch, now time.Time) (models.DailyWellness, error) {
	history, err := t.load()
	if err != nil {
		return models.DailyWellness{}, err
	}

	today := t.todayFrom(history, now)
	applyPatch(&today, patch)
	today.Date = now.Format(validation.DateLayout)

	next := make([]models.DailyWellness, 0, len(history)+1)
	for _, d := range history {
		if d.Date != today.Date {
			next = append(next, d)
		}
	}
	next = append(next, today)

	if err := t.save(next); err != nil {
		logger.Error("failed to persist wellness data", "error", err)
		return models.DailyWellness{}, err
	}
	return today, nil
}

func applyPatch(d *models.DailyWellness, p Patch) {
	if p.Steps != nil {
		d.Steps = *p.Steps
	}
	if p.Water != nil {
		d.Water = *p.Water
	}
	if p.Sleep != nil {
		d.Sleep = p.Sleep
	}
	if p.Mood != nil {
		d.Mood = p.Mood
	}
	if p.Focus != nil {
		d.Focus = p.Focus
	}
	if p.Gratitude != nil {
		d.Gratitude = p.Gratitude
	}
	if p.Breathing != nil {
		d.Breathing = p.Breathing
	}
	if p.Posture != nil {
		d.Posture = p.Posture
	}
}

// AddWaterGlass increments today's glass count and returns the new count.
func (t *Tracker) AddWaterGlass(now time.Time) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	history, err := t.load()
	if err != nil {
		return 0, err
	}
	today := t.todayFrom(history, now)
	water := today.Water
	water.Glasses++

	updated, err := t.updateTodayLocked(Patch{Water: &water}, now)
	if err != nil {
		return 0, err
	}
	return updated.Water.Glasses, nil
}

// SetWaterGoal replaces today's water goal.
func (t *Tracker) SetWaterGoal(goal int, now time.Time) error {
	if err := validation.RequirePositive("water goal", goal); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	history, err := t.load()
	if err != nil {
		return err
	}
	today := t.todayFrom(history, now)
	water := today.Water
	water.Goal = goal
	_, err = t.updateTodayLocked(Patch{Water: &water}, now)
	return err
}

// SetSteps records the day's cumulative step count (typically fed from a
// StepSource).
func (t *Tracker) SetSteps(steps int, now time.Time) error {
	if err := validation.RequireNonNegative("steps", steps); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	history, err := t.load()
	if err != nil {
		return err
	}
	today := t.todayFrom(history, now)
	data := today.Steps
	data.Steps = steps
	_, err = t.updateTodayLocked(Patch{Steps: &data}, now)
	return err
}

func (t *Tracker) SetSleep(sleep models.SleepLog, now time.Time) error {
	_, err := t.UpdateToday(Patch{Sleep: &sleep}, now)
	return err
}

func (t *Tracker) SetMood(mood models.MoodEntry, now time.Time) error {
	_, err := t.UpdateToday(Patch{Mood: &mood}, now)
	return err
}

func (t *Tracker) SetFocus(focus models.FocusSession, now time.Time) error {
	_, err := t.UpdateToday(Patch{Focus: &focus}, now)
	return err
}

func (t *Tracker) SetGratitude(entries []string, now time.Time) error {
	_, err := t.UpdateToday(Patch{Gratitude: &models.GratitudeEntry{Entries: entries}}, now)
	return err
}

func (t *Tracker) CompleteBreathing(now time.Time) error {
	_, err := t.UpdateToday(Patch{Breathing: &models.BreathingSession{Completed: true}}, now)
	return err
}

func (t *Tracker) CompletePosture(now time.Time) error {
	_, err := t.UpdateToday(Patch{Posture: &models.PostureCheck{Completed: true}}, now)
	return err
}

// dayQualifies applies the cross-metric streak rule: any one of water at
// 80% of goal, steps at 80% of goal, a sleep entry or a mood entry makes
// the day count.
func dayQualifies(d models.DailyWellness) bool {
	if d.Water.Goal > 0 && float64(d.Water.Glasses) >= float64(d.Water.Goal)*0.8 {
		return true
	}
	if d.Steps.Goal > 0 && float64(d.Steps.Steps) >= float64(d.Steps.Goal)*0.8 {
		return true
	}
	return d.Sleep != nil || d.Mood != nil
}

// Streak counts consecutive qualifying days walking back from today.
// Unlike the habit streak there is no yesterday grace: a day with no
// record, or a record that fails the predicate, ends the walk.
func (t *Tracker) Streak(now time.Time) (int, error) {
	history, err := t.load()
	if err != nil {
		return 0, err
	}

	byDate := make(map[string]models.DailyWellness, len(history))
	for _, d := range history {
		byDate[d.Date] = d
	}

	streak := 0
	cursor := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for {
		d, ok := byDate[cursor.Format(validation.DateLayout)]
		if !ok || !dayQualifies(d) {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak, nil
}
