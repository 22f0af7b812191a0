package habit

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tend/internal/kvstore"
	"github.com/julianstephens/tend/internal/logger"
	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/validation"
)

const habitsKey = "habits"

var ErrNotFound = errors.New("habit not found")

// NewHabit carries the caller-supplied fields for Add; id, creation time
// and the empty completion set are assigned by the repository.
type NewHabit struct {
	Name         string
	Icon         string
	Color        string
	ReminderTime string
	CustomImage  string
}

// Patch is a partial habit update. nil pointer means "no change".
type Patch struct {
	Name         *string `json:"name,omitempty"`
	Icon         *string `json:"icon,omitempty"`
	Color        *string `json:"color,omitempty"`
	ReminderTime *string `json:"reminder_time,omitempty"`
	CustomImage  *string `json:"custom_image,omitempty"`
}

type mutateFunc func(habits []models.Habit) ([]models.Habit, models.Habit, error)

type writeOp struct {
	mutate mutateFunc
	reply  chan writeReply
}

type writeReply struct {
	habit models.Habit
	err   error
}

// Repository owns the canonical habit collection. Every mutation is a
// read-modify-write of the whole collection, pushed through a single
// FIFO queue so two rapid mutations cannot both read the pre-mutation
// state and silently drop each other's write. Reads are not serialized
// against writes and may observe a collection that a queued write is
// about to replace.
type Repository struct {
	store  kvstore.Store
	writes chan writeOp
	done   chan struct{}
}

func NewRepository(store kvstore.Store) *Repository {
	r := &Repository{
		store:  store,
		writes: make(chan writeOp),
		done:   make(chan struct{}),
	}
	go r.run()
	return r
}

// Close drains the write queue and stops the worker. The repository must
// not be used afterwards.
func (r *Repository) Close() {
	close(r.writes)
	<-r.done
}

func (r *Repository) run() {
	defer close(r.done)
	for op := range r.writes {
		habits, err := r.load()
		if err != nil {
			op.reply <- writeReply{err: err}
			continue
		}
		next, changed, err := op.mutate(habits)
		if err != nil {
			op.reply <- writeReply{err: err}
			continue
		}
		if err := r.save(next); err != nil {
			logger.Error("failed to persist habits", "error", err)
			op.reply <- writeReply{err: err}
			continue
		}
		op.reply <- writeReply{habit: changed}
	}
}

func (r *Repository) enqueue(mutate mutateFunc) (models.Habit, error) {
	op := writeOp{mutate: mutate, reply: make(chan writeReply, 1)}
	r.writes <- op
	reply := <-op.reply
	return reply.habit, reply.err
}

// load decodes the stored collection. A missing key is an empty
// collection; a malformed value is logged and treated as empty rather
// than failing every operation forever.
func (r *Repository) load() ([]models.Habit, error) {
	raw, ok, err := r.store.Get(habitsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Habit{}, nil
	}

	var habits []models.Habit
	if err := json.Unmarshal([]byte(raw), &habits); err != nil {
		logger.Warn("habits data is malformed, treating as empty", "error", err)
		return []models.Habit{}, nil
	}
	for i := range habits {
		if habits[i].CompletedDates == nil {
			habits[i].CompletedDates = []string{}
		}
	}
	return habits, nil
}

func (r *Repository) save(habits []models.Habit) error {
	data, err := json.Marshal(habits)
	if err != nil {
		return err
	}
	return r.store.Set(habitsKey, string(data))
}

// List returns a snapshot of all habits.
func (r *Repository) List() ([]models.Habit, error) {
	return r.load()
}

// Get returns one habit by id.
func (r *Repository) Get(id string) (models.Habit, error) {
	habits, err := r.load()
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range habits {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Habit{}, ErrNotFound
}

// Add creates a habit with a fresh id, empty completion set and
// CreatedAt of now.
func (r *Repository) Add(nh NewHabit) (models.Habit, error) {
	if err := validation.RequireName(nh.Name); err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{
		ID:             uuid.New().String(),
		Name:           strings.TrimSpace(nh.Name),
		Icon:           nh.Icon,
		Color:          nh.Color,
		ReminderTime:   nh.ReminderTime,
		CustomImage:    nh.CustomImage,
		CompletedDates: []string{},
		CreatedAt:      time.Now().UTC(),
	}

	return r.enqueue(func(habits []models.Habit) ([]models.Habit, models.Habit, error) {
		return append(habits, habit), habit, nil
	})
}

// Update applies a partial update. A missing id is a soft failure: it is
// logged and reported through found=false, not an error, because the
// caller's view is merely stale and nothing was lost.
func (r *Repository) Update(id string, patch Patch) (updated models.Habit, found bool, err error) {
	if patch.Name != nil {
		if err := validation.RequireName(*patch.Name); err != nil {
			return models.Habit{}, false, err
		}
	}

	h, err := r.enqueue(func(habits []models.Habit) ([]models.Habit, models.Habit, error) {
		for i := range habits {
			if habits[i].ID != id {
				continue
			}
			applyPatch(&habits[i], patch)
			return habits, habits[i], nil
		}
		return habits, models.Habit{}, ErrNotFound
	})
	if errors.Is(err, ErrNotFound) {
		logger.Warn("update on unknown habit", "id", id)
		return models.Habit{}, false, nil
	}
	if err != nil {
		return models.Habit{}, false, err
	}
	return h, true, nil
}

func applyPatch(h *models.Habit, p Patch) {
	if p.Name != nil {
		h.Name = strings.TrimSpace(*p.Name)
	}
	if p.Icon != nil {
		h.Icon = *p.Icon
	}
	if p.Color != nil {
		h.Color = *p.Color
	}
	if p.ReminderTime != nil {
		h.ReminderTime = *p.ReminderTime
	}
	if p.CustomImage != nil {
		h.CustomImage = *p.CustomImage
	}
}

// Delete removes a habit. Deleting an id that is already gone is a no-op.
func (r *Repository) Delete(id string) error {
	_, err := r.enqueue(func(habits []models.Habit) ([]models.Habit, models.Habit, error) {
		next := habits[:0]
		for _, h := range habits {
			if h.ID != id {
				next = append(next, h)
			}
		}
		return next, models.Habit{}, nil
	})
	return err
}

// ToggleCompletion flips membership of date in the habit's completion
// set and reports whether the habit is now completed for that date.
// Unlike Update, a missing id here is a hard ErrNotFound: callers award
// XP on the completing transition and must not be left guessing.
func (r *Repository) ToggleCompletion(id, date string) (habit models.Habit, completed bool, err error) {
	if err := validation.RequireDate(date, time.Now()); err != nil {
		return models.Habit{}, false, err
	}

	h, err := r.enqueue(func(habits []models.Habit) ([]models.Habit, models.Habit, error) {
		for i := range habits {
			if habits[i].ID != id {
				continue
			}
			habits[i].CompletedDates = toggleDate(habits[i].CompletedDates, date)
			return habits, habits[i], nil
		}
		return habits, models.Habit{}, ErrNotFound
	})
	if err != nil {
		return models.Habit{}, false, err
	}

	for _, d := range h.CompletedDates {
		if d == date {
			completed = true
			break
		}
	}
	return h, completed, nil
}

// toggleDate removes date if present, appends it otherwise. It never
// introduces a duplicate even if one already slipped into the list.
func toggleDate(dates []string, date string) []string {
	out := make([]string, 0, len(dates)+1)
	removed := false
	for _, d := range dates {
		if d == date {
			removed = true
			continue
		}
		out = append(out, d)
	}
	if !removed {
		out = append(out, date)
	}
	return out
}

// InitializeDefaults seeds the starter habits when the store is empty.
// It is idempotent and safe to run at every startup.
func (r *Repository) InitializeDefaults() error {
	_, err := r.enqueue(func(habits []models.Habit) ([]models.Habit, models.Habit, error) {
		if len(habits) > 0 {
			return habits, models.Habit{}, nil
		}
		seeded := defaultHabits(time.Now().UTC())
		logger.Info("seeded default habits", "count", len(seeded))
		return seeded, models.Habit{}, nil
	})
	return err
}

// SortedByName returns habits ordered for display.
func SortedByName(habits []models.Habit) []models.Habit {
	out := make([]models.Habit, len(habits))
	copy(out, habits)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
