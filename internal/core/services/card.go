package services

import (
	"context"
	"time"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
	"github.com/studykit-labs/studykit-cli/internal/core/ports/driven"
)

// CardService handles card operations, including the review-scheduling
// query the practice surface drives.
type CardService struct {
	*Entity[domain.Card, domain.CardPatch]
	cards driven.CardStore
}

// NewCardService creates a card service backed by the given store.
func NewCardService(store driven.CardStore, clock driven.Clock, owner string) *CardService {
	return &CardService{
		Entity: newEntity[domain.Card, domain.CardPatch](store, clock, owner, hooks[domain.Card]{
			id:    func(c *domain.Card) string { return c.ID },
			setID: func(c *domain.Card, id string) { c.ID = id },
			stamp: func(c *domain.Card, t time.Time) {
				if c.CreatedAt.IsZero() {
					c.CreatedAt = t
				}
				if c.UpdatedAt.IsZero() {
					c.UpdatedAt = t
				}
			},
			meta:     func(c *domain.Card) *domain.SyncMeta { return c.Meta() },
			owner:    func(c *domain.Card) string { return c.UserID },
			setOwner: func(c *domain.Card, id string) { c.UserID = id },
		}),
		cards: store,
	}
}

// Due returns the owner's cards due for review at asOf, soonest first.
func (s *CardService) Due(ctx context.Context, ownerID string, asOf time.Time) ([]domain.Card, error) {
	if ownerID == "" {
		ownerID = s.owner
	}
	return s.cards.ListDue(ctx, ownerID, asOf)
}
