// Package server exposes the engine over a local HTTP API so a UI shell
// can drive it.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/julianstephens/tend/internal/gamification"
	"github.com/julianstephens/tend/internal/habit"
	"github.com/julianstephens/tend/internal/insights"
	"github.com/julianstephens/tend/internal/logger"
	"github.com/julianstephens/tend/internal/validation"
	"github.com/julianstephens/tend/internal/wellness"
)

type Server struct {
	habits   *habit.Repository
	wellness *wellness.Tracker
	game     *gamification.Service
	insights *insights.Service
}

func New(habits *habit.Repository, tracker *wellness.Tracker, game *gamification.Service, ins *insights.Service) *Server {
	return &Server{
		habits:   habits,
		wellness: tracker,
		game:     game,
		insights: ins,
	}
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/habits", func(r chi.Router) {
		r.Get("/", s.listHabits)
		r.Post("/", s.createHabit)
		r.Get("/{id}", s.getHabit)
		r.Patch("/{id}", s.updateHabit)
		r.Delete("/{id}", s.deleteHabit)
		r.Get("/{id}/stats", s.habitStats)
		r.Post("/{id}/toggle", s.toggleHabit)
	})

	r.Route("/api/wellness", func(r chi.Router) {
		r.Get("/today", s.wellnessToday)
		r.Get("/streak", s.wellnessStreak)
		r.Post("/water", s.addWater)
		r.Put("/steps", s.setSteps)
		r.Put("/sleep", s.setSleep)
		r.Put("/mood", s.setMood)
	})

	r.Route("/api/gamification", func(r chi.Router) {
		r.Get("/level", s.level)
		r.Get("/badges", s.badges)
		r.Get("/challenges", s.challenges)
		r.Post("/challenges/{id}/progress", s.challengeProgress)
	})

	r.Route("/api/insights", func(r chi.Router) {
		r.Get("/", s.listInsights)
		r.Delete("/{id}", s.dismissInsight)
		r.Get("/patterns", s.patterns)
		r.Get("/suggestions", s.suggestions)
	})

	return r
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// respondError maps the error taxonomy onto status codes: validation
// failures are 400, stale-id conditions 404, storage failures 500.
func respondError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Error()})
	case errors.Is(err, habit.ErrNotFound), errors.Is(err, gamification.ErrChallengeNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		logger.Error("request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
