package gamification

import (
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/julianstephens/tend/internal/kvstore"
	"github.com/julianstephens/tend/internal/logger"
	"github.com/julianstephens/tend/internal/models"
)

const (
	totalXPKey      = "gamification_total_xp"
	earnedBadgesKey = "gamification_earned_badges"
	challengesKey   = "gamification_challenges"
)

var ErrChallengeNotFound = errors.New("challenge not found")

// Service persists the gamification state: the XP counter, the earned
// badge list and the active challenge set. A mutex serializes the
// read-modify-write cycles.
type Service struct {
	mu    sync.Mutex
	store kvstore.Store
}

func NewService(store kvstore.Store) *Service {
	return &Service{store: store}
}

// TotalXP returns the cumulative XP counter. Missing or malformed data
// is zero, never an error.
func (s *Service) TotalXP() (int, error) {
	raw, ok, err := s.store.Get(totalXPKey)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	xp, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("xp counter is malformed, resetting to zero", "value", raw)
		return 0, nil
	}
	return xp, nil
}

// Level returns the current derived level.
func (s *Service) Level() (models.UserLevel, error) {
	xp, err := s.TotalXP()
	if err != nil {
		return models.UserLevel{}, err
	}
	return CalculateUserLevel(xp), nil
}

// AddXP adds to the counter and reports whether a level boundary was
// crossed.
func (s *Service) AddXP(amount int) (models.UserLevel, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addXPLocked(amount)
}

func (s *Service) addXPLocked(amount int) (models.UserLevel, bool, error) {
	xp, err := s.TotalXP()
	if err != nil {
		return models.UserLevel{}, false, err
	}
	before := CalculateUserLevel(xp)
	after := CalculateUserLevel(xp + amount)

	if err := s.store.Set(totalXPKey, strconv.Itoa(after.TotalXP)); err != nil {
		logger.Error("failed to persist xp", "error", err)
		return models.UserLevel{}, false, err
	}
	return after, after.Level > before.Level, nil
}

// AwardCompletionXP awards the streak-stepped XP for a habit completion.
func (s *Service) AwardCompletionXP(streak int) (xp int, level models.UserLevel, leveledUp bool, err error) {
	xp = XPForCompletion(streak)
	level, leveledUp, err = s.AddXP(xp)
	return xp, level, leveledUp, err
}

// EarnedBadges returns the persisted earned set.
func (s *Service) EarnedBadges() ([]models.Badge, error) {
	raw, ok, err := s.store.Get(earnedBadgesKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Badge{}, nil
	}
	var badges []models.Badge
	if err := json.Unmarshal([]byte(raw), &badges); err != nil {
		logger.Warn("earned badges data is malformed, treating as empty", "error", err)
		return []models.Badge{}, nil
	}
	return badges, nil
}

// AvailableBadges returns catalog entries not yet earned.
func (s *Service) AvailableBadges() ([]models.Badge, error) {
	earned, err := s.EarnedBadges()
	if err != nil {
		return nil, err
	}
	earnedIDs := make(map[string]bool, len(earned))
	for _, b := range earned {
		earnedIDs[b.ID] = true
	}

	available := []models.Badge{}
	for _, b := range Catalog() {
		if !earnedIDs[b.ID] {
			available = append(available, b)
		}
	}
	return available, nil
}

// CheckAndAwardBadges evaluates unearned catalog badges against the
// habit snapshot and persists any newly earned ones. Each badge is
// earned at most once; earned badges are never re-evaluated.
func (s *Service) CheckAndAwardBadges(habits []models.Habit, now time.Time) ([]models.Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	earned, err := s.EarnedBadges()
	if err != nil {
		return nil, err
	}
	earnedIDs := make(map[string]bool, len(earned))
	for _, b := range earned {
		earnedIDs[b.ID] = true
	}

	var newlyEarned []models.Badge
	for _, b := range Catalog() {
		if earnedIDs[b.ID] || !CheckBadgeEarned(b, habits, now) {
			continue
		}
		at := now.UTC()
		b.EarnedAt = &at
		newlyEarned = append(newlyEarned, b)
	}

	if len(newlyEarned) == 0 {
		return nil, nil
	}

	updated := append(earned, newlyEarned...)
	data, err := json.Marshal(updated)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(earnedBadgesKey, string(data)); err != nil {
		logger.Error("failed to persist earned badges", "error", err)
		return nil, err
	}
	for _, b := range newlyEarned {
		logger.Info("badge earned", "id", b.ID)
	}
	return newlyEarned, nil
}

// ActiveChallenges returns the live challenge set, pruning expired
// entries and topping up with fresh daily/weekly challenges when none of
// their type are active.
func (s *Service) ActiveChallenges(now time.Time) ([]models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.loadChallenges()
	if err != nil {
		return nil, err
	}

	active := PruneExpired(stored, now)

	hasDaily, hasWeekly := false, false
	for _, c := range active {
		switch c.Type {
		case models.ChallengeDaily:
			hasDaily = true
		case models.ChallengeWeekly:
			hasWeekly = true
		}
	}
	if !hasDaily {
		active = append(active, GenerateDailyChallenges(now)...)
	}
	if !hasWeekly {
		active = append(active, GenerateWeeklyChallenges(now)...)
	}

	if len(active) != len(stored) || !hasDaily || !hasWeekly {
		if err := s.saveChallenges(active); err != nil {
			return nil, err
		}
	}
	return active, nil
}

// UpdateChallengeProgress adds increment to a challenge's count,
// recomputes the completed flag and awards the reward XP exactly once,
// on the transition from incomplete to complete.
func (s *Service) UpdateChallengeProgress(id string, increment int) (models.Challenge, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenges, err := s.loadChallenges()
	if err != nil {
		return models.Challenge{}, false, err
	}

	idx := -1
	for i := range challenges {
		if challenges[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Challenge{}, false, ErrChallengeNotFound
	}

	c := &challenges[idx]
	wasCompleted := c.Completed
	c.CurrentCount += increment
	c.Completed = c.CurrentCount >= c.TargetCount

	if err := s.saveChallenges(challenges); err != nil {
		return models.Challenge{}, false, err
	}

	rewarded := false
	if c.Completed && !wasCompleted {
		if _, _, err := s.addXPLocked(c.Reward); err != nil {
			return models.Challenge{}, false, err
		}
		rewarded = true
		logger.Info("challenge completed", "id", c.ID, "reward", c.Reward)
	}
	return *c, rewarded, nil
}

func (s *Service) loadChallenges() ([]models.Challenge, error) {
	raw, ok, err := s.store.Get(challengesKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Challenge{}, nil
	}
	var challenges []models.Challenge
	if err := json.Unmarshal([]byte(raw), &challenges); err != nil {
		logger.Warn("challenge data is malformed, treating as empty", "error", err)
		return []models.Challenge{}, nil
	}
	return challenges, nil
}

func (s *Service) saveChallenges(challenges []models.Challenge) error {
	data, err := json.Marshal(challenges)
	if err != nil {
		return err
	}
	if err := s.store.Set(challengesKey, string(data)); err != nil {
		logger.Error("failed to persist challenges", "error", err)
		return err
	}
	return nil
}
