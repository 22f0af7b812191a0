package insights

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/julianstephens/tend/internal/kvstore"
	"github.com/julianstephens/tend/internal/logger"
	"github.com/julianstephens/tend/internal/models"
)

const dismissedKey = "insights_dismissed"

// Service layers dismissal persistence over the stateless generators. A
// dismissed insight id stays excluded from every later generation pass.
type Service struct {
	mu    sync.Mutex
	store kvstore.Store
}

func NewService(store kvstore.Store) *Service {
	return &Service{store: store}
}

func (s *Service) dismissed() (map[string]bool, error) {
	raw, ok, err := s.store.Get(dismissedKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]bool{}, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		logger.Warn("dismissed insights data is malformed, treating as empty", "error", err)
		return map[string]bool{}, nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// ActiveInsights generates insights and filters out any the user has
// dismissed.
func (s *Service) ActiveInsights(habits []models.Habit, now time.Time) ([]models.Insight, error) {
	dismissed, err := s.dismissed()
	if err != nil {
		return nil, err
	}

	all := GenerateInsights(habits, now)
	active := make([]models.Insight, 0, len(all))
	for _, in := range all {
		if !dismissed[in.ID] {
			active = append(active, in)
		}
	}
	return active, nil
}

// Dismiss records an insight id so it never reappears.
func (s *Service) Dismiss(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dismissed, err := s.dismissed()
	if err != nil {
		return err
	}
	if dismissed[id] {
		return nil
	}
	dismissed[id] = true

	ids := make([]string, 0, len(dismissed))
	for d := range dismissed {
		ids = append(ids, d)
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.store.Set(dismissedKey, string(data))
}

// ClearDismissed forgets all dismissals.
func (s *Service) ClearDismissed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Delete(dismissedKey)
}
