package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
)

type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func pendingNote(id, slug string, at time.Time) *domain.Note {
	return &domain.Note{
		ID:         id,
		OwnerID:    "user-1",
		Slug:       slug,
		Title:      "Note " + id,
		Visibility: domain.VisibilityPrivate,
		CreatedAt:  at,
		UpdatedAt:  at,
		SyncMeta: domain.SyncMeta{
			SyncStatus:     domain.SyncPending,
			LocalUpdatedAt: at,
		},
	}
}

func TestEntityStore_CreateAndGet(t *testing.T) {
	clock := newTestClock()
	store := NewNoteStore(clock)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, pendingNote("note-1", "first", clock.Now())))

	note, err := store.Get(ctx, "note-1")
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "first", note.Slug)

	note, err = store.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, note)
}

func TestEntityStore_Create_DuplicateID(t *testing.T) {
	clock := newTestClock()
	store := NewNoteStore(clock)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, pendingNote("note-1", "first", clock.Now())))
	err := store.Create(ctx, pendingNote("note-1", "other", clock.Now()))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestEntityStore_Create_UniqueSlugPerOwner(t *testing.T) {
	clock := newTestClock()
	store := NewNoteStore(clock)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, pendingNote("note-1", "kanji", clock.Now())))

	err := store.Create(ctx, pendingNote("note-2", "kanji", clock.Now()))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	// Same slug under a different owner is fine.
	other := pendingNote("note-3", "kanji", clock.Now())
	other.OwnerID = "user-2"
	assert.NoError(t, store.Create(ctx, other))
}

func TestEntityStore_ListByOwner_Order(t *testing.T) {
	clock := newTestClock()
	store := NewNoteStore(clock)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, pendingNote("note-1", "first", clock.Now())))
	require.NoError(t, store.Create(ctx, pendingNote("note-2", "second", clock.Now().Add(time.Minute))))

	notes, err := store.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	// Most recently changed first.
	assert.Equal(t, "note-2", notes[0].ID)
	assert.Equal(t, "note-1", notes[1].ID)
}

func TestEntityStore_Update_Transitions(t *testing.T) {
	clock := newTestClock()
	store := NewNoteStore(clock)
	ctx := context.Background()

	created := pendingNote("note-1", "first", clock.Now())
	require.NoError(t, store.Create(ctx, created))
	require.NoError(t, store.MarkSynced(ctx, "note-1", clock.Now()))

	clock.advance(time.Hour)
	title := "Edited"
	updated, err := store.Update(ctx, "note-1", domain.NotePatch{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, domain.SyncPending, updated.SyncStatus)
	assert.Equal(t, clock.Now(), updated.UpdatedAt)
	assert.Equal(t, clock.Now(), updated.LocalUpdatedAt)
}

func TestEntityStore_Update_Missing(t *testing.T) {
	clock := newTestClock()
	store := NewNoteStore(clock)

	title := "Edited"
	_, err := store.Update(context.Background(), "nope", domain.NotePatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntityStore_Update_ClockSkew(t *testing.T) {
	clock := newTestClock()
	store := NewNoteStore(clock)
	ctx := context.Background()

	// Row stamped an hour ahead of the clock.
	ahead := pendingNote("note-1", "first", clock.Now().Add(time.Hour))
	require.NoError(t, store.Create(ctx, ahead))

	title := "Edited"
	updated, err := store.Update(ctx, "note-1", domain.NotePatch{Title: &title})
	require.NoError(t, err)

	// local_updated_at never moves backwards.
	assert.Equal(t, ahead.LocalUpdatedAt, updated.LocalUpdatedAt)
}

func TestEntityStore_SoftDelete(t *testing.T) {
	clock := newTestClock()
	store := NewNoteStore(clock)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, pendingNote("note-1", "first", clock.Now())))

	clock.advance(time.Hour)
	require.NoError(t, store.SoftDelete(ctx, "note-1"))

	note, err := store.Get(ctx, "note-1")
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, domain.SyncDeleted, note.SyncStatus)
	assert.Equal(t, clock.Now(), note.LocalUpdatedAt)

	assert.ErrorIs(t, store.SoftDelete(ctx, "nope"), domain.ErrNotFound)
}

func TestEntityStore_HardDelete(t *testing.T) {
	clock := newTestClock()
	store := NewNoteStore(clock)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, pendingNote("note-1", "first", clock.Now())))
	require.NoError(t, store.HardDelete(ctx, "note-1"))

	note, err := store.Get(ctx, "note-1")
	require.NoError(t, err)
	assert.Nil(t, note)

	assert.ErrorIs(t, store.HardDelete(ctx, "note-1"), domain.ErrNotFound)
}

func TestEntityStore_Queues(t *testing.T) {
	clock := newTestClock()
	store := NewNoteStore(clock)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, pendingNote("note-1", "first", clock.Now())))
	require.NoError(t, store.Create(ctx, pendingNote("note-2", "second", clock.Now().Add(time.Minute))))
	other := pendingNote("note-3", "third", clock.Now().Add(2*time.Minute))
	other.OwnerID = "user-2"
	require.NoError(t, store.Create(ctx, other))

	clock.advance(time.Hour)
	require.NoError(t, store.SoftDelete(ctx, "note-1"))

	// Queues span all owners.
	pending, err := store.ListPendingSync(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "note-2", pending[0].ID)
	assert.Equal(t, "note-3", pending[1].ID)

	deleted, err := store.ListDeleted(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, "note-1", deleted[0].ID)
}

func TestEntityStore_MarkSynced(t *testing.T) {
	clock := newTestClock()
	store := NewNoteStore(clock)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, pendingNote("note-1", "first", clock.Now())))

	serverAt := clock.Now().Add(30 * time.Second)
	clock.advance(time.Minute)
	require.NoError(t, store.MarkSynced(ctx, "note-1", serverAt))

	note, err := store.Get(ctx, "note-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SyncSynced, note.SyncStatus)
	require.NotNil(t, note.SyncedAt)
	assert.Equal(t, clock.Now(), *note.SyncedAt)
	require.NotNil(t, note.ServerUpdatedAt)
	assert.Equal(t, serverAt, *note.ServerUpdatedAt)

	assert.ErrorIs(t, store.MarkSynced(ctx, "nope", serverAt), domain.ErrNotFound)
}

func TestEntityStore_OverwriteFromRemote(t *testing.T) {
	clock := newTestClock()
	store := NewNoteStore(clock)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, pendingNote("note-1", "first", clock.Now())))

	remote := pendingNote("note-1", "first", clock.Now().Add(2*time.Hour))
	remote.Title = "Server copy"

	clock.advance(time.Hour)
	require.NoError(t, store.OverwriteFromRemote(ctx, remote))

	note, err := store.Get(ctx, "note-1")
	require.NoError(t, err)
	assert.Equal(t, "Server copy", note.Title)
	assert.Equal(t, domain.SyncSynced, note.SyncStatus)
	assert.Equal(t, remote.UpdatedAt, note.LocalUpdatedAt)
	require.NotNil(t, note.ServerUpdatedAt)
	assert.Equal(t, remote.UpdatedAt, *note.ServerUpdatedAt)

	// Upserts when the row does not exist yet.
	fresh := pendingNote("note-9", "ninth", clock.Now())
	require.NoError(t, store.OverwriteFromRemote(ctx, fresh))
	note, err = store.Get(ctx, "note-9")
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, domain.SyncSynced, note.SyncStatus)
}

func TestCardStore_ListDue(t *testing.T) {
	clock := newTestClock()
	store := NewCardStore(clock)
	ctx := context.Background()

	asOf := clock.Now()
	mk := func(id string, due *time.Time) *domain.Card {
		return &domain.Card{
			ID:           id,
			DeckID:       "deck-1",
			UserID:       "user-1",
			FrontContent: "f",
			BackContent:  "b",
			NextReviewAt: due,
			SyncMeta: domain.SyncMeta{
				SyncStatus:     domain.SyncPending,
				LocalUpdatedAt: asOf,
			},
		}
	}

	early := asOf.Add(-time.Hour)
	require.NoError(t, store.Create(ctx, mk("card-2", &asOf)))
	require.NoError(t, store.Create(ctx, mk("card-1", &early)))
	later := asOf.Add(time.Hour)
	require.NoError(t, store.Create(ctx, mk("card-3", &later)))
	require.NoError(t, store.Create(ctx, mk("card-4", nil)))

	due, err := store.ListDue(ctx, "user-1", asOf)
	require.NoError(t, err)
	require.Len(t, due, 2)
	// Soonest first, boundary inclusive.
	assert.Equal(t, "card-1", due[0].ID)
	assert.Equal(t, "card-2", due[1].ID)
}

func TestUserSettingsStore_OneRowPerUser(t *testing.T) {
	clock := newTestClock()
	store := NewUserSettingsStore(clock)
	ctx := context.Background()

	settings := &domain.UserSettings{
		ID:           "settings-1",
		UserID:       "user-1",
		Theme:        domain.ThemeOcean,
		Mode:         domain.ModeLight,
		Locale:       "en",
		Timezone:     "UTC",
		ItemsPerPage: 20,
		SyncMeta: domain.SyncMeta{
			SyncStatus:     domain.SyncPending,
			LocalUpdatedAt: clock.Now(),
		},
	}
	require.NoError(t, store.Create(ctx, settings))

	second := *settings
	second.ID = "settings-2"
	assert.ErrorIs(t, store.Create(ctx, &second), domain.ErrAlreadyExists)
}
