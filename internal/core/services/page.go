package services

import (
	"time"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
	"github.com/studykit-labs/studykit-cli/internal/core/ports/driven"
)

// PageService handles page operations.
type PageService struct {
	*Entity[domain.Page, domain.PagePatch]
}

// NewPageService creates a page service backed by the given store.
func NewPageService(store driven.PageStore, clock driven.Clock, owner string) *PageService {
	return &PageService{newEntity[domain.Page, domain.PagePatch](store, clock, owner, hooks[domain.Page]{
		id:    func(p *domain.Page) string { return p.ID },
		setID: func(p *domain.Page, id string) { p.ID = id },
		stamp: func(p *domain.Page, t time.Time) {
			if p.CreatedAt.IsZero() {
				p.CreatedAt = t
			}
			if p.UpdatedAt.IsZero() {
				p.UpdatedAt = t
			}
		},
		meta:     func(p *domain.Page) *domain.SyncMeta { return p.Meta() },
		owner:    func(p *domain.Page) string { return p.UserID },
		setOwner: func(p *domain.Page, id string) { p.UserID = id },
	})}
}
