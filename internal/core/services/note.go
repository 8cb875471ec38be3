package services

import (
	"context"
	"fmt"
	"time"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
	"github.com/studykit-labs/studykit-cli/internal/core/ports/driven"
)

// NoteService handles note operations, including the delete-propagation
// surface the remote-sync layer drives.
type NoteService struct {
	*Entity[domain.Note, domain.NotePatch]
}

// NewNoteService creates a note service backed by the given store.
func NewNoteService(store driven.NoteStore, clock driven.Clock, owner string) *NoteService {
	return &NoteService{newEntity[domain.Note, domain.NotePatch](store, clock, owner, hooks[domain.Note]{
		id:    func(n *domain.Note) string { return n.ID },
		setID: func(n *domain.Note, id string) { n.ID = id },
		stamp: func(n *domain.Note, t time.Time) {
			if n.CreatedAt.IsZero() {
				n.CreatedAt = t
			}
			if n.UpdatedAt.IsZero() {
				n.UpdatedAt = t
			}
		},
		meta:     func(n *domain.Note) *domain.SyncMeta { return n.Meta() },
		owner:    func(n *domain.Note) string { return n.OwnerID },
		setOwner: func(n *domain.Note, id string) { n.OwnerID = id },
	})}
}

// Deleted returns all tombstoned notes awaiting delete propagation.
func (s *NoteService) Deleted(ctx context.Context) ([]domain.Note, error) {
	return s.store.ListDeleted(ctx)
}

// HardDelete physically removes a note after its tombstone has been
// confirmed remotely.
func (s *NoteService) HardDelete(ctx context.Context, id string) error {
	return s.store.HardDelete(ctx, id)
}

// OverwriteFromRemote replaces the local note with the remote value,
// which becomes the synced baseline.
func (s *NoteService) OverwriteFromRemote(ctx context.Context, note domain.Note) error {
	if err := validate.Struct(note); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.store.OverwriteFromRemote(ctx, &note)
}
