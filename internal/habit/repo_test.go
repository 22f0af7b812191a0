package habit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/tend/internal/kvstore"
	"github.com/julianstephens/tend/internal/validation"
)

func newRepoForTest(t *testing.T) (*Repository, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemory()
	repo := NewRepository(store)
	t.Cleanup(repo.Close)
	return repo, store
}

func TestAdd(t *testing.T) {
	repo, _ := newRepoForTest(t)

	h, err := repo.Add(NewHabit{Name: "  Meditate  ", Icon: "spa", Color: "#9B59B6"})
	require.NoError(t, err)

	assert.NotEmpty(t, h.ID)
	assert.Equal(t, "Meditate", h.Name, "name should be trimmed")
	assert.Equal(t, "spa", h.Icon)
	assert.Empty(t, h.CompletedDates)
	assert.False(t, h.CreatedAt.IsZero())

	habits, err := repo.List()
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, h.ID, habits[0].ID)
}

func TestAdd_RejectsEmptyName(t *testing.T) {
	repo, _ := newRepoForTest(t)

	_, err := repo.Add(NewHabit{Name: "   "})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestGet_Unknown(t *testing.T) {
	repo, _ := newRepoForTest(t)

	_, err := repo.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate(t *testing.T) {
	repo, _ := newRepoForTest(t)

	h, err := repo.Add(NewHabit{Name: "Journal"})
	require.NoError(t, err)

	name := "Evening Journal"
	color := "#2ECC71"
	updated, found, err := repo.Update(h.ID, Patch{Name: &name, Color: &color})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Evening Journal", updated.Name)
	assert.Equal(t, "#2ECC71", updated.Color)
	assert.Equal(t, h.Icon, updated.Icon, "unpatched fields keep their value")
}

func TestUpdate_UnknownIsSoftFailure(t *testing.T) {
	repo, _ := newRepoForTest(t)

	name := "whatever"
	_, found, err := repo.Update("missing-id", Patch{Name: &name})
	require.NoError(t, err, "a stale id is not an error")
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	repo, _ := newRepoForTest(t)

	h, err := repo.Add(NewHabit{Name: "Stretch"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(h.ID))
	_, err = repo.Get(h.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(h.ID), "deleting an already-deleted id is a no-op")
}

func TestToggleCompletion(t *testing.T) {
	repo, _ := newRepoForTest(t)

	h, err := repo.Add(NewHabit{Name: "Run"})
	require.NoError(t, err)

	today := Today(time.Now())

	toggled, completed, err := repo.ToggleCompletion(h.ID, today)
	require.NoError(t, err)
	assert.True(t, completed)
	assert.Equal(t, []string{today}, toggled.CompletedDates)

	toggled, completed, err = repo.ToggleCompletion(h.ID, today)
	require.NoError(t, err)
	assert.False(t, completed)
	assert.Empty(t, toggled.CompletedDates, "double toggle restores the original set")
}

func TestToggleCompletion_UnknownIsHardFailure(t *testing.T) {
	repo, _ := newRepoForTest(t)

	_, _, err := repo.ToggleCompletion("missing-id", Today(time.Now()))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleCompletion_RejectsBadDates(t *testing.T) {
	repo, _ := newRepoForTest(t)

	h, err := repo.Add(NewHabit{Name: "Run"})
	require.NoError(t, err)

	var verr *validation.Error
	_, _, err = repo.ToggleCompletion(h.ID, "01/08/2024")
	assert.ErrorAs(t, err, &verr)

	future := Today(time.Now().Add(48 * time.Hour))
	_, _, err = repo.ToggleCompletion(h.ID, future)
	assert.ErrorAs(t, err, &verr, "future dates are rejected")
}

func TestToggleCompletion_ConcurrentWritesAllLand(t *testing.T) {
	repo, _ := newRepoForTest(t)

	a, err := repo.Add(NewHabit{Name: "A"})
	require.NoError(t, err)
	b, err := repo.Add(NewHabit{Name: "B"})
	require.NoError(t, err)

	today := Today(time.Now())

	var wg sync.WaitGroup
	for _, id := range []string{a.ID, b.ID} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _, err := repo.ToggleCompletion(id, today)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	// Both writes went through the queue; neither read-modify-write
	// clobbered the other.
	for _, id := range []string{a.ID, b.ID} {
		h, err := repo.Get(id)
		require.NoError(t, err)
		assert.Equal(t, []string{today}, h.CompletedDates)
	}
}

func TestPersistenceAcrossRepositories(t *testing.T) {
	store := kvstore.NewMemory()

	repo := NewRepository(store)
	h, err := repo.Add(NewHabit{Name: "Hydrate"})
	require.NoError(t, err)
	repo.Close()

	reopened := NewRepository(store)
	defer reopened.Close()

	got, err := reopened.Get(h.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hydrate", got.Name)
}

func TestMalformedDataTreatedAsEmpty(t *testing.T) {
	store := kvstore.NewMemory()
	require.NoError(t, store.Set("habits", "{not json"))

	repo := NewRepository(store)
	defer repo.Close()

	habits, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, habits)
}

func TestInitializeDefaults(t *testing.T) {
	repo, _ := newRepoForTest(t)

	require.NoError(t, repo.InitializeDefaults())
	habits, err := repo.List()
	require.NoError(t, err)
	require.NotEmpty(t, habits)
	seeded := len(habits)

	require.NoError(t, repo.InitializeDefaults())
	habits, err = repo.List()
	require.NoError(t, err)
	assert.Len(t, habits, seeded, "seeding again must not duplicate")
}

func TestSortedByName(t *testing.T) {
	repo, _ := newRepoForTest(t)

	for _, name := range []string{"zebra walk", "Apple log", "mid run"} {
		_, err := repo.Add(NewHabit{Name: name})
		require.NoError(t, err)
	}

	habits, err := repo.List()
	require.NoError(t, err)

	sorted := SortedByName(habits)
	var names []string
	for _, h := range sorted {
		names = append(names, h.Name)
	}
	assert.Equal(t, []string{"Apple log", "mid run", "zebra walk"}, names)
}

func TestDefaultIconFor(t *testing.T) {
	assert.Equal(t, "water_drop", DefaultIconFor("Drink more water"))
	assert.Equal(t, "check_circle", DefaultIconFor("Something unrecognized"))
}
