package services

import (
	"context"
	"time"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
	"github.com/studykit-labs/studykit-cli/internal/core/ports/driven"
)

// DeckService handles deck operations.
type DeckService struct {
	*Entity[domain.Deck, domain.DeckPatch]
}

// NewDeckService creates a deck service backed by the given store.
func NewDeckService(store driven.DeckStore, clock driven.Clock, owner string) *DeckService {
	return &DeckService{newEntity[domain.Deck, domain.DeckPatch](store, clock, owner, hooks[domain.Deck]{
		id:    func(d *domain.Deck) string { return d.ID },
		setID: func(d *domain.Deck, id string) { d.ID = id },
		stamp: func(d *domain.Deck, t time.Time) {
			if d.CreatedAt.IsZero() {
				d.CreatedAt = t
			}
			if d.UpdatedAt.IsZero() {
				d.UpdatedAt = t
			}
		},
		meta:     func(d *domain.Deck) *domain.SyncMeta { return d.Meta() },
		owner:    func(d *domain.Deck) string { return d.UserID },
		setOwner: func(d *domain.Deck, id string) { d.UserID = id },
	})}
}

// HardDelete physically removes a deck. Its cards, and their learning
// logs, go with it through the storage cascade.
func (s *DeckService) HardDelete(ctx context.Context, id string) error {
	return s.store.HardDelete(ctx, id)
}
