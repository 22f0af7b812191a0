package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tend/internal/config"
	"github.com/julianstephens/tend/internal/gamification"
	"github.com/julianstephens/tend/internal/habit"
	"github.com/julianstephens/tend/internal/insights"
	"github.com/julianstephens/tend/internal/kvstore"
	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/wellness"
)

type Context struct {
	Config   *config.Config
	Store    kvstore.Store
	Habits   *habit.Repository
	Wellness *wellness.Tracker
	Game     *gamification.Service
	Insights *insights.Service
}

// resolveHabit accepts either a habit ID, an ID prefix, or a
// case-insensitive name match, in that order of preference.
func resolveHabit(ctx *Context, ref string) (models.Habit, error) {
	habits, err := ctx.Habits.List()
	if err != nil {
		return models.Habit{}, err
	}

	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}

	var byPrefix []models.Habit
	for _, h := range habits {
		if strings.HasPrefix(h.ID, ref) {
			byPrefix = append(byPrefix, h)
		}
	}
	if len(byPrefix) == 1 {
		return byPrefix[0], nil
	}
	if len(byPrefix) > 1 {
		return models.Habit{}, fmt.Errorf("habit reference %q is ambiguous (%d matches)", ref, len(byPrefix))
	}

	var byName []models.Habit
	for _, h := range habits {
		if strings.EqualFold(strings.TrimSpace(h.Name), strings.TrimSpace(ref)) {
			byName = append(byName, h)
		}
	}
	if len(byName) == 1 {
		return byName[0], nil
	}
	if len(byName) > 1 {
		return models.Habit{}, fmt.Errorf("habit name %q is ambiguous (%d matches)", ref, len(byName))
	}

	return models.Habit{}, habit.ErrNotFound
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
