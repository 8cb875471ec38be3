package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
)

// baseTime matches the initial test clock reading.
var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func makeNote(id, owner, slug string) domain.Note {
	return domain.Note{
		ID:         id,
		OwnerID:    owner,
		Slug:       slug,
		Title:      "Note " + id,
		Visibility: domain.VisibilityPrivate,
		CreatedAt:  baseTime,
		UpdatedAt:  baseTime,
		SyncMeta: domain.SyncMeta{
			SyncStatus:     domain.SyncPending,
			LocalUpdatedAt: baseTime,
		},
	}
}

func makeDeck(id, owner string) domain.Deck {
	return domain.Deck{
		ID:        id,
		UserID:    owner,
		Title:     "Deck " + id,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
		SyncMeta: domain.SyncMeta{
			SyncStatus:     domain.SyncPending,
			LocalUpdatedAt: baseTime,
		},
	}
}

func makeCard(id, deckID, owner string) domain.Card {
	return domain.Card{
		ID:           id,
		DeckID:       deckID,
		UserID:       owner,
		FrontContent: "front " + id,
		BackContent:  "back " + id,
		EaseFactor:   2.5,
		Difficulty:   1.0,
		CreatedAt:    baseTime,
		UpdatedAt:    baseTime,
		SyncMeta: domain.SyncMeta{
			SyncStatus:     domain.SyncPending,
			LocalUpdatedAt: baseTime,
		},
	}
}

func makeGoal(id, owner string) domain.StudyGoal {
	return domain.StudyGoal{
		ID:        id,
		UserID:    owner,
		Title:     "Goal " + id,
		Status:    domain.GoalNotStarted,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
		SyncMeta: domain.SyncMeta{
			SyncStatus:     domain.SyncPending,
			LocalUpdatedAt: baseTime,
		},
	}
}

func makeMilestone(id, goalID string) domain.Milestone {
	return domain.Milestone{
		ID:        id,
		GoalID:    goalID,
		Title:     "Milestone " + id,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
		SyncMeta: domain.SyncMeta{
			SyncStatus:     domain.SyncPending,
			LocalUpdatedAt: baseTime,
		},
	}
}

func makeLog(id, cardID, owner string) domain.LearningLog {
	return domain.LearningLog{
		ID:           id,
		UserID:       owner,
		CardID:       cardID,
		AnsweredAt:   baseTime,
		IsCorrect:    true,
		PracticeMode: domain.PracticeFlashcard,
		Quality:      4,
		AttemptCount: 1,
		SyncMeta: domain.SyncMeta{
			SyncStatus:     domain.SyncPending,
			LocalUpdatedAt: baseTime,
		},
	}
}

func makeSettings(id, owner string) domain.UserSettings {
	return domain.UserSettings{
		ID:            id,
		UserID:        owner,
		Theme:         domain.ThemeOcean,
		Mode:          domain.ModeLight,
		Locale:        "en",
		Timezone:      "UTC",
		Notifications: map[string]bool{"review_due": true, "goal_deadline": false},
		ItemsPerPage:  20,
		CreatedAt:     baseTime,
		UpdatedAt:     baseTime,
		SyncMeta: domain.SyncMeta{
			SyncStatus:     domain.SyncPending,
			LocalUpdatedAt: baseTime,
		},
	}
}

// ==================== Create / Get Tests ====================

func TestNoteStore_CreateAndGet(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	description := "a description"
	trashedAt := baseTime.Add(-time.Hour)
	note := makeNote("n1", "owner-1", "my-note")
	note.Description = &description
	note.IsTrashed = true
	note.TrashedAt = &trashedAt

	require.NoError(t, store.Notes().Create(ctx, &note))

	got, err := store.Notes().Get(ctx, "n1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, note.ID, got.ID)
	assert.Equal(t, note.OwnerID, got.OwnerID)
	assert.Equal(t, note.Slug, got.Slug)
	assert.Equal(t, note.Title, got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, description, *got.Description)
	assert.Equal(t, domain.VisibilityPrivate, got.Visibility)
	assert.True(t, got.IsTrashed)
	require.NotNil(t, got.TrashedAt)
	assert.True(t, got.TrashedAt.Equal(trashedAt))
	assert.Equal(t, domain.SyncPending, got.SyncStatus)
	assert.Nil(t, got.SyncedAt)
	assert.Nil(t, got.ServerUpdatedAt)
	assert.True(t, got.LocalUpdatedAt.Equal(baseTime))
}

func TestNoteStore_GetMissingReturnsNil(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()

	got, err := store.Notes().Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNoteStore_CreateDuplicateID(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	first := makeNote("n1", "owner-1", "slug-a")
	require.NoError(t, store.Notes().Create(ctx, &first))

	dup := makeNote("n1", "owner-1", "slug-b")
	err := store.Notes().Create(ctx, &dup)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestNoteStore_SlugUniquePerOwner(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	first := makeNote("n1", "owner-1", "shared-slug")
	require.NoError(t, store.Notes().Create(ctx, &first))

	// Same slug, same owner: rejected.
	clash := makeNote("n2", "owner-1", "shared-slug")
	assert.ErrorIs(t, store.Notes().Create(ctx, &clash), domain.ErrAlreadyExists)

	// Same slug, different owner: fine.
	other := makeNote("n3", "owner-2", "shared-slug")
	assert.NoError(t, store.Notes().Create(ctx, &other))
}

func TestCardStore_ForeignKeyEnforced(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()

	card := makeCard("c1", "missing-deck", "owner-1")
	err := store.Cards().Create(context.Background(), &card)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNoteStore_CheckConstraintMapsToValidation(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()

	note := makeNote("n1", "owner-1", "slug")
	note.Visibility = "everyone"
	err := store.Notes().Create(context.Background(), &note)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ==================== Listing Tests ====================

func TestNoteStore_ListByOwnerOrderAndFiltering(t *testing.T) {
	store, clock, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	older := makeNote("n-old", "owner-1", "old")
	older.LocalUpdatedAt = baseTime.Add(-time.Hour)
	newer := makeNote("n-new", "owner-1", "new")
	foreign := makeNote("n-other", "owner-2", "other")
	require.NoError(t, store.Notes().Create(ctx, &older))
	require.NoError(t, store.Notes().Create(ctx, &newer))
	require.NoError(t, store.Notes().Create(ctx, &foreign))

	deleted := makeNote("n-del", "owner-1", "del")
	require.NoError(t, store.Notes().Create(ctx, &deleted))
	clock.advance(time.Minute)
	require.NoError(t, store.Notes().SoftDelete(ctx, "n-del"))

	notes, err := store.Notes().ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "n-new", notes[0].ID)
	assert.Equal(t, "n-old", notes[1].ID)
}

func TestNoteStore_ListByOwnerTiesBreakByID(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	b := makeNote("b", "owner-1", "b")
	a := makeNote("a", "owner-1", "a")
	require.NoError(t, store.Notes().Create(ctx, &b))
	require.NoError(t, store.Notes().Create(ctx, &a))

	notes, err := store.Notes().ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "a", notes[0].ID)
	assert.Equal(t, "b", notes[1].ID)
}

// ==================== Update Tests ====================

func TestNoteStore_UpdateAppliesPatchAndMarksPending(t *testing.T) {
	store, clock, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	note := makeNote("n1", "owner-1", "slug")
	note.SyncStatus = domain.SyncSynced
	syncedAt := baseTime.Add(-time.Minute)
	note.SyncedAt = &syncedAt
	require.NoError(t, store.Notes().Create(ctx, &note))

	clock.advance(time.Hour)
	newTitle := "renamed"
	updated, err := store.Notes().Update(ctx, "n1", domain.NotePatch{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "slug", updated.Slug, "unpatched field must survive")
	assert.Equal(t, domain.SyncPending, updated.SyncStatus)
	assert.True(t, updated.UpdatedAt.Equal(clock.Now()))
	assert.True(t, updated.LocalUpdatedAt.Equal(clock.Now()))

	// Synced-at history survives the edit.
	got, err := store.Notes().Get(ctx, "n1")
	require.NoError(t, err)
	require.NotNil(t, got.SyncedAt)
}

func TestNoteStore_UpdateClampsLocalUpdatedAt(t *testing.T) {
	store, clock, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	note := makeNote("n1", "owner-1", "slug")
	require.NoError(t, store.Notes().Create(ctx, &note))

	// Clock moved backwards (e.g. NTP step). The sync cursor must not.
	clock.advance(-time.Hour)
	title := "edited"
	updated, err := store.Notes().Update(ctx, "n1", domain.NotePatch{Title: &title})
	require.NoError(t, err)

	assert.True(t, updated.LocalUpdatedAt.Equal(baseTime),
		"local_updated_at must never decrease")
}

func TestNoteStore_UpdateMissingReturnsNotFound(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()

	title := "x"
	_, err := store.Notes().Update(context.Background(), "nope", domain.NotePatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNoteStore_UpdateRevivesSoftDeletedRow(t *testing.T) {
	store, clock, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	note := makeNote("n1", "owner-1", "slug")
	require.NoError(t, store.Notes().Create(ctx, &note))
	require.NoError(t, store.Notes().SoftDelete(ctx, "n1"))

	clock.advance(time.Minute)
	title := "back again"
	updated, err := store.Notes().Update(ctx, "n1", domain.NotePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, domain.SyncPending, updated.SyncStatus)

	notes, err := store.Notes().ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

// ==================== Delete Tests ====================

func TestNoteStore_SoftDelete(t *testing.T) {
	store, clock, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	note := makeNote("n1", "owner-1", "slug")
	require.NoError(t, store.Notes().Create(ctx, &note))

	clock.advance(time.Minute)
	require.NoError(t, store.Notes().SoftDelete(ctx, "n1"))

	// Row still readable by id, just tombstoned.
	got, err := store.Notes().Get(ctx, "n1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.SyncDeleted, got.SyncStatus)
	assert.True(t, got.LocalUpdatedAt.Equal(clock.Now()))

	deleted, err := store.Notes().ListDeleted(ctx)
	require.NoError(t, err)
	assert.Len(t, deleted, 1)
}

func TestNoteStore_SoftDeleteMissingReturnsNotFound(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.Notes().SoftDelete(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNoteStore_HardDelete(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	note := makeNote("n1", "owner-1", "slug")
	require.NoError(t, store.Notes().Create(ctx, &note))
	require.NoError(t, store.Notes().HardDelete(ctx, "n1"))

	got, err := store.Notes().Get(ctx, "n1")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, store.Notes().HardDelete(ctx, "n1"), domain.ErrNotFound)
}

// ==================== Cascade Tests ====================

func TestCascade_DeckToCardsToLogs(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	deck := makeDeck("d1", "owner-1")
	require.NoError(t, store.Decks().Create(ctx, &deck))
	card := makeCard("c1", "d1", "owner-1")
	require.NoError(t, store.Cards().Create(ctx, &card))
	log := makeLog("l1", "c1", "owner-1")
	require.NoError(t, store.LearningLogs().Create(ctx, &log))

	require.NoError(t, store.Decks().HardDelete(ctx, "d1"))

	gotCard, err := store.Cards().Get(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, gotCard, "cards must cascade with their deck")

	gotLog, err := store.LearningLogs().Get(ctx, "l1")
	require.NoError(t, err)
	assert.Nil(t, gotLog, "logs must cascade with their card")
}

func TestCascade_GoalToMilestones(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	goal := makeGoal("g1", "owner-1")
	require.NoError(t, store.StudyGoals().Create(ctx, &goal))
	milestone := makeMilestone("m1", "g1")
	require.NoError(t, store.Milestones().Create(ctx, &milestone))

	require.NoError(t, store.StudyGoals().HardDelete(ctx, "g1"))

	got, err := store.Milestones().Get(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ==================== Sync Queue Tests ====================

func TestNoteStore_ListPendingSyncOrdering(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	// Three pending notes with distinct local edit times, created out
	// of order and spread across two owners, plus one synced note that
	// must not appear. The queue spans all owners.
	second := makeNote("n2", "owner-1", "s2")
	second.LocalUpdatedAt = baseTime.Add(2 * time.Minute)
	first := makeNote("n1", "owner-1", "s1")
	first.LocalUpdatedAt = baseTime.Add(time.Minute)
	third := makeNote("n3", "owner-2", "s3")
	third.LocalUpdatedAt = baseTime.Add(3 * time.Minute)
	synced := makeNote("n4", "owner-1", "s4")
	synced.SyncStatus = domain.SyncSynced

	for _, n := range []*domain.Note{&second, &first, &third, &synced} {
		require.NoError(t, store.Notes().Create(ctx, n))
	}

	pending, err := store.Notes().ListPendingSync(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, "n1", pending[0].ID)
	assert.Equal(t, "n2", pending[1].ID)
	assert.Equal(t, "n3", pending[2].ID)
}

func TestNoteStore_MarkSynced(t *testing.T) {
	store, clock, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	note := makeNote("n1", "owner-1", "slug")
	require.NoError(t, store.Notes().Create(ctx, &note))

	clock.advance(time.Minute)
	serverTime := baseTime.Add(30 * time.Second)
	require.NoError(t, store.Notes().MarkSynced(ctx, "n1", serverTime))

	got, err := store.Notes().Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, domain.SyncSynced, got.SyncStatus)
	require.NotNil(t, got.SyncedAt)
	assert.True(t, got.SyncedAt.Equal(clock.Now()))
	require.NotNil(t, got.ServerUpdatedAt)
	assert.True(t, got.ServerUpdatedAt.Equal(serverTime))

	// Repeating the acknowledgement is harmless.
	require.NoError(t, store.Notes().MarkSynced(ctx, "n1", serverTime))
	again, err := store.Notes().Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, domain.SyncSynced, again.SyncStatus)
}

func TestNoteStore_MarkSyncedMissingReturnsNotFound(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.Notes().MarkSynced(context.Background(), "nope", baseTime)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNoteStore_OverwriteFromRemote(t *testing.T) {
	store, clock, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	local := makeNote("n1", "owner-1", "slug")
	require.NoError(t, store.Notes().Create(ctx, &local))

	clock.advance(time.Hour)
	remoteTime := baseTime.Add(45 * time.Minute)
	remote := makeNote("n1", "owner-1", "slug")
	remote.Title = "server copy"
	remote.UpdatedAt = remoteTime
	require.NoError(t, store.Notes().OverwriteFromRemote(ctx, &remote))

	got, err := store.Notes().Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "server copy", got.Title)
	assert.Equal(t, domain.SyncSynced, got.SyncStatus)
	assert.True(t, got.LocalUpdatedAt.Equal(remoteTime))
	require.NotNil(t, got.ServerUpdatedAt)
	assert.True(t, got.ServerUpdatedAt.Equal(remoteTime))
	require.NotNil(t, got.SyncedAt)
	assert.True(t, got.SyncedAt.Equal(clock.Now()))
}

func TestNoteStore_OverwriteFromRemoteInsertsNewRow(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	remote := makeNote("n-remote", "owner-1", "from-server")
	require.NoError(t, store.Notes().OverwriteFromRemote(ctx, &remote))

	got, err := store.Notes().Get(ctx, "n-remote")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.SyncSynced, got.SyncStatus)
}

func TestDeckStore_OverwriteFromRemoteKeepsCards(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	deck := makeDeck("d1", "owner-1")
	require.NoError(t, store.Decks().Create(ctx, &deck))
	card := makeCard("c1", "d1", "owner-1")
	require.NoError(t, store.Cards().Create(ctx, &card))

	remote := makeDeck("d1", "owner-1")
	remote.Title = "server deck"
	require.NoError(t, store.Decks().OverwriteFromRemote(ctx, &remote))

	// The overwrite is an update, not a delete-and-reinsert, so the
	// deck's cards must survive.
	gotCard, err := store.Cards().Get(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, gotCard)
}

// ==================== Due Card Tests ====================

func TestCardStore_ListDue(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	deck := makeDeck("d1", "owner-1")
	require.NoError(t, store.Decks().Create(ctx, &deck))

	asOf := baseTime.Add(24 * time.Hour)

	overdue := makeCard("c-overdue", "d1", "owner-1")
	overdueAt := baseTime.Add(-time.Hour)
	overdue.NextReviewAt = &overdueAt

	dueNow := makeCard("c-due", "d1", "owner-1")
	dueNow.NextReviewAt = &asOf

	future := makeCard("c-future", "d1", "owner-1")
	futureAt := asOf.Add(time.Minute)
	future.NextReviewAt = &futureAt

	unscheduled := makeCard("c-new", "d1", "owner-1")

	deleted := makeCard("c-del", "d1", "owner-1")
	deleted.NextReviewAt = &overdueAt

	for _, c := range []*domain.Card{&overdue, &dueNow, &future, &unscheduled, &deleted} {
		require.NoError(t, store.Cards().Create(ctx, c))
	}
	require.NoError(t, store.Cards().SoftDelete(ctx, "c-del"))

	due, err := store.Cards().ListDue(ctx, "owner-1", asOf)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "c-overdue", due[0].ID, "soonest first")
	assert.Equal(t, "c-due", due[1].ID, "boundary is inclusive")
}

// ==================== Settings Tests ====================

func TestUserSettingsStore_NotificationsRoundtrip(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	settings := makeSettings("s1", "owner-1")
	require.NoError(t, store.UserSettings().Create(ctx, &settings))

	got, err := store.UserSettings().Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, map[string]bool{"review_due": true, "goal_deadline": false}, got.Notifications)
	assert.Equal(t, domain.ThemeOcean, got.Theme)
}

func TestUserSettingsStore_OneRowPerUser(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	first := makeSettings("s1", "owner-1")
	require.NoError(t, store.UserSettings().Create(ctx, &first))

	second := makeSettings("s2", "owner-1")
	err := store.UserSettings().Create(ctx, &second)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}
