package driving

import (
	"context"
	"time"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
)

// EntityService is the per-kind operation set the command surface calls.
// It mirrors the repository contract with caller-side concerns added:
// input validation and id/timestamp defaulting for locally created
// records.
type EntityService[E any, P any] interface {
	// List returns the owner's current (non-tombstoned) records.
	List(ctx context.Context, ownerID string) ([]E, error)

	// Get returns one record by id, tombstoned or not.
	// Returns nil and no error if the record does not exist.
	Get(ctx context.Context, id string) (*E, error)

	// Create validates and stores a new local record as pending.
	// A missing id is filled with a generated one, a blank owner with
	// the configured account, and missing timestamps with the current
	// time. The stored record is returned.
	Create(ctx context.Context, entity E) (*E, error)

	// Update applies a partial update and returns the updated record,
	// or nil if the record does not exist.
	Update(ctx context.Context, id string, patch P) (*E, error)

	// Delete tombstones a record. Returns whether a row existed.
	Delete(ctx context.Context, id string) (bool, error)

	// PendingSync returns the store-wide outbound queue for the
	// remote-sync layer: every pending record across all owners.
	PendingSync(ctx context.Context) ([]E, error)

	// MarkSynced acknowledges a completed sync for one record.
	MarkSynced(ctx context.Context, id string, serverUpdatedAt time.Time) error
}

// NoteService drives note operations. Notes additionally expose the
// delete-propagation surface.
type NoteService interface {
	EntityService[domain.Note, domain.NotePatch]

	// Deleted returns all tombstoned notes awaiting delete propagation.
	Deleted(ctx context.Context) ([]domain.Note, error)

	// HardDelete physically removes a note once the remote authority has
	// confirmed its tombstone.
	HardDelete(ctx context.Context, id string) error

	// OverwriteFromRemote replaces the local note with the remote value.
	OverwriteFromRemote(ctx context.Context, note domain.Note) error
}

// PageService drives page operations.
type PageService interface {
	EntityService[domain.Page, domain.PagePatch]
}

// DeckService drives deck operations.
type DeckService interface {
	EntityService[domain.Deck, domain.DeckPatch]

	// HardDelete physically removes a deck and, by cascade, its cards.
	HardDelete(ctx context.Context, id string) error
}

// CardService drives card operations.
type CardService interface {
	EntityService[domain.Card, domain.CardPatch]

	// Due returns the owner's cards due for review at asOf.
	Due(ctx context.Context, ownerID string, asOf time.Time) ([]domain.Card, error)
}

// StudyGoalService drives study goal operations.
type StudyGoalService interface {
	EntityService[domain.StudyGoal, domain.StudyGoalPatch]
}

// MilestoneService drives milestone operations.
type MilestoneService interface {
	EntityService[domain.Milestone, domain.MilestonePatch]
}

// LearningLogService drives learning log operations.
type LearningLogService interface {
	EntityService[domain.LearningLog, domain.LearningLogPatch]
}

// UserSettingsService drives user settings operations.
type UserSettingsService interface {
	EntityService[domain.UserSettings, domain.UserSettingsPatch]
}
