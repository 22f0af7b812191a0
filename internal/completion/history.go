package completion

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/julianstephens/tend/internal/kvstore"
	"github.com/julianstephens/tend/internal/logger"
)

const (
	historyKey      = "code_completion_history"
	maxHistoryItems = 50
)

type HistoryItem struct {
	ID         string    `json:"id"`
	Language   string    `json:"language"`
	Code       string    `json:"code"`
	Completion string    `json:"completion"`
	Model      string    `json:"model"`
	CreatedAt  time.Time `json:"created_at"`
}

// History persists recent completions, newest first, capped at
// maxHistoryItems.
type History struct {
	mu    sync.Mutex
	store kvstore.Store
}

func NewHistory(store kvstore.Store) *History {
	return &History{store: store}
}

func (h *History) load() ([]HistoryItem, error) {
	raw, ok, err := h.store.Get(historyKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []HistoryItem{}, nil
	}
	var items []HistoryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("completion history is malformed, treating as empty", "error", err)
		return []HistoryItem{}, nil
	}
	return items, nil
}

func (h *History) save(items []HistoryItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return h.store.Set(historyKey, string(data))
}

// List returns the saved items, newest first.
func (h *History) List() ([]HistoryItem, error) {
	return h.load()
}

// Add prepends an item and trims the list to the cap.
func (h *History) Add(item HistoryItem) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	items, err := h.load()
	if err != nil {
		return err
	}
	items = append([]HistoryItem{item}, items...)
	if len(items) > maxHistoryItems {
		items = items[:maxHistoryItems]
	}
	return h.save(items)
}

// Delete removes one item by id.
func (h *History) Delete(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	items, err := h.load()
	if err != nil {
		return err
	}
	next := items[:0]
	for _, it := range items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	return h.save(next)
}

// Clear drops the whole history.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.Delete(historyKey)
}
