package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/julianstephens/tend/internal/habit"
	"github.com/julianstephens/tend/internal/insights"
	"github.com/julianstephens/tend/internal/models"
)

type habitView struct {
	models.Habit
	Stats models.HabitStats `json:"stats"`
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.habits.List()
	if err != nil {
		respondError(w, err)
		return
	}

	now := time.Now()
	views := make([]habitView, 0, len(habits))
	for _, h := range habits {
		views = append(views, habitView{Habit: h, Stats: habit.Stats(h, now)})
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		Icon         string `json:"icon"`
		Color        string `json:"color"`
		ReminderTime string `json:"reminder_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	icon := req.Icon
	if icon == "" {
		icon = habit.DefaultIconFor(req.Name)
	}

	h, err := s.habits.Add(habit.NewHabit{
		Name:         req.Name,
		Icon:         icon,
		Color:        req.Color,
		ReminderTime: req.ReminderTime,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, h)
}

func (s *Server) getHabit(w http.ResponseWriter, r *http.Request) {
	h, err := s.habits.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, habitView{Habit: h, Stats: habit.Stats(h, time.Now())})
}

func (s *Server) updateHabit(w http.ResponseWriter, r *http.Request) {
	var patch habit.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	h, found, err := s.habits.Update(chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(w, err)
		return
	}
	if !found {
		respondError(w, habit.ErrNotFound)
		return
	}
	respondJSON(w, http.StatusOK, h)
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	if err := s.habits.Delete(chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) habitStats(w http.ResponseWriter, r *http.Request) {
	h, err := s.habits.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, habit.Stats(h, time.Now()))
}

// toggleHabit flips a completion and, on the completing transition,
// awards XP and re-evaluates badges in one round trip.
func (s *Server) toggleHabit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}

	now := time.Now()
	date := req.Date
	if date == "" {
		date = habit.Today(now)
	}

	h, completed, err := s.habits.ToggleCompletion(chi.URLParam(r, "id"), date)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := struct {
		Habit     models.Habit      `json:"habit"`
		Completed bool              `json:"completed"`
		XPAwarded int               `json:"xp_awarded"`
		Level     *models.UserLevel `json:"level,omitempty"`
		LeveledUp bool              `json:"leveled_up"`
		NewBadges []models.Badge    `json:"new_badges,omitempty"`
	}{Habit: h, Completed: completed}

	if completed {
		streak := habit.CurrentStreak(h.CompletedDates, now)
		xp, level, leveledUp, err := s.game.AwardCompletionXP(streak)
		if err != nil {
			respondError(w, err)
			return
		}
		resp.XPAwarded = xp
		resp.Level = &level
		resp.LeveledUp = leveledUp

		habits, err := s.habits.List()
		if err != nil {
			respondError(w, err)
			return
		}
		newBadges, err := s.game.CheckAndAwardBadges(habits, now)
		if err != nil {
			respondError(w, err)
			return
		}
		resp.NewBadges = newBadges
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) wellnessToday(w http.ResponseWriter, r *http.Request) {
	today, err := s.wellness.TodayData(time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, today)
}

func (s *Server) wellnessStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := s.wellness.Streak(time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"streak": streak})
}

func (s *Server) addWater(w http.ResponseWriter, r *http.Request) {
	glasses, err := s.wellness.AddWaterGlass(time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"glasses": glasses})
}

func (s *Server) setSteps(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Steps int `json:"steps"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := s.wellness.SetSteps(req.Steps, time.Now()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setSleep(w http.ResponseWriter, r *http.Request) {
	var sleep models.SleepLog
	if err := json.NewDecoder(r.Body).Decode(&sleep); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := s.wellness.SetSleep(sleep, time.Now()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setMood(w http.ResponseWriter, r *http.Request) {
	var mood models.MoodEntry
	if err := json.NewDecoder(r.Body).Decode(&mood); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := s.wellness.SetMood(mood, time.Now()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) level(w http.ResponseWriter, r *http.Request) {
	level, err := s.game.Level()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, level)
}

func (s *Server) badges(w http.ResponseWriter, r *http.Request) {
	earned, err := s.game.EarnedBadges()
	if err != nil {
		respondError(w, err)
		return
	}
	available, err := s.game.AvailableBadges()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]models.Badge{
		"earned":    earned,
		"available": available,
	})
}

func (s *Server) challenges(w http.ResponseWriter, r *http.Request) {
	active, err := s.game.ActiveChallenges(time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, active)
}

func (s *Server) challengeProgress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Increment int `json:"increment"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}
	if req.Increment == 0 {
		req.Increment = 1
	}

	c, rewarded, err := s.game.UpdateChallengeProgress(chi.URLParam(r, "id"), req.Increment)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, struct {
		Challenge models.Challenge `json:"challenge"`
		Rewarded  bool             `json:"rewarded"`
	}{c, rewarded})
}

func (s *Server) listInsights(w http.ResponseWriter, r *http.Request) {
	habits, err := s.habits.List()
	if err != nil {
		respondError(w, err)
		return
	}
	active, err := s.insights.ActiveInsights(habits, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, active)
}

func (s *Server) dismissInsight(w http.ResponseWriter, r *http.Request) {
	if err := s.insights.Dismiss(chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) patterns(w http.ResponseWriter, r *http.Request) {
	habits, err := s.habits.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, insights.AnalyzeAllPatterns(habits, time.Now()))
}

func (s *Server) suggestions(w http.ResponseWriter, r *http.Request) {
	habits, err := s.habits.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, insights.GenerateSuggestions(habits))
}
