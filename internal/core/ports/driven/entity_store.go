package driven

import (
	"context"
	"time"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
)

// EntityStore persists one entity kind and enforces the sync-state
// machine on every mutation. E is the entity type, P its partial-update
// type. All eight entity kinds share this operation set; the store is
// instantiated once per kind from a declarative table description.
type EntityStore[E any, P any] interface {
	// ListByOwner returns all non-tombstoned records for an owner,
	// most recently touched first (ties broken by id ascending).
	ListByOwner(ctx context.Context, ownerID string) ([]E, error)

	// Get returns a record by id regardless of sync status, so callers
	// can inspect tombstones before physical deletion.
	// Returns nil and no error if the record does not exist.
	Get(ctx context.Context, id string) (*E, error)

	// Create inserts a new record exactly as given. The caller supplies
	// id, timestamps and sync status: locally created records arrive as
	// pending, records hydrated from a remote payload as synced.
	// Returns domain.ErrAlreadyExists on id or uniqueness conflicts.
	Create(ctx context.Context, entity *E) error

	// Update applies the non-nil patch fields over the current record,
	// resets it to pending and refreshes local_updated_at, since any
	// local edit invalidates the prior sync agreement.
	// Returns domain.ErrNotFound if the record does not exist.
	//
	// A tombstoned record may be updated; doing so resurrects it to
	// pending. Callers that want the tombstone preserved must check
	// the status first.
	Update(ctx context.Context, id string, patch P) (*E, error)

	// SoftDelete tombstones a record and refreshes local_updated_at.
	// Field data is retained. Returns domain.ErrNotFound if the record
	// does not exist.
	SoftDelete(ctx context.Context, id string) error

	// HardDelete removes the record unconditionally, cascading to
	// dependents. Intended only once the remote authority has
	// confirmed the tombstone. Returns domain.ErrNotFound if the
	// record does not exist.
	HardDelete(ctx context.Context, id string) error

	// ListPendingSync returns the outbound queue: every pending record
	// across all owners, oldest change first (ties broken by id
	// ascending). A remote-sync process drains this store-wide.
	ListPendingSync(ctx context.Context) ([]E, error)

	// ListDeleted returns all tombstoned records across all owners,
	// oldest first, for outbound delete propagation.
	ListDeleted(ctx context.Context) ([]E, error)

	// MarkSynced transitions a record to synced, stamping synced_at with
	// the current time and server_updated_at with the given value. Other
	// fields are untouched. Idempotent for a given serverUpdatedAt.
	// Returns domain.ErrNotFound if the record does not exist.
	MarkSynced(ctx context.Context, id string, serverUpdatedAt time.Time) error

	// OverwriteFromRemote upserts the remote value over whatever is
	// stored locally: all fields are replaced, the record becomes synced,
	// synced_at is set to now, and both local_updated_at and
	// server_updated_at take the remote's own update timestamp. The
	// remote wins unconditionally; deciding WHEN to invoke this is the
	// remote-sync layer's job.
	OverwriteFromRemote(ctx context.Context, entity *E) error
}

// NoteStore persists notes.
type NoteStore interface {
	EntityStore[domain.Note, domain.NotePatch]
}

// PageStore persists pages.
type PageStore interface {
	EntityStore[domain.Page, domain.PagePatch]
}

// DeckStore persists decks.
type DeckStore interface {
	EntityStore[domain.Deck, domain.DeckPatch]
}

// CardStore persists cards. It is the one kind with a domain-specific
// read beyond the shared operation set.
type CardStore interface {
	EntityStore[domain.Card, domain.CardPatch]

	// ListDue returns an owner's non-tombstoned cards whose
	// next_review_at is set and not after asOf, earliest due first
	// (ties broken by id ascending).
	ListDue(ctx context.Context, ownerID string, asOf time.Time) ([]domain.Card, error)
}

// StudyGoalStore persists study goals.
type StudyGoalStore interface {
	EntityStore[domain.StudyGoal, domain.StudyGoalPatch]
}

// MilestoneStore persists milestones. Milestones are owned by their
// goal, so ListByOwner takes a goal id.
type MilestoneStore interface {
	EntityStore[domain.Milestone, domain.MilestonePatch]
}

// LearningLogStore persists learning logs.
type LearningLogStore interface {
	EntityStore[domain.LearningLog, domain.LearningLogPatch]
}

// UserSettingsStore persists per-user settings.
type UserSettingsStore interface {
	EntityStore[domain.UserSettings, domain.UserSettingsPatch]
}
