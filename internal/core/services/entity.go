package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
	"github.com/studykit-labs/studykit-cli/internal/core/ports/driven"
)

// validate checks the struct tags on domain entities. One instance for
// the package; the validator caches struct metadata internally.
var validate = validator.New(validator.WithRequiredStructEnabled())

// hooks are the per-kind accessors the generic service needs to default
// a freshly created entity.
type hooks[E any] struct {
	id    func(*E) string
	setID func(*E, string)
	stamp func(*E, time.Time)
	meta  func(*E) *domain.SyncMeta

	// owner/setOwner default a blank owner field to the service's
	// configured account. Left nil for kinds owned through a parent
	// record, where a blank parent id is a caller error.
	owner    func(*E) string
	setOwner func(*E, string)
}

// Entity implements the generic service operations for one entity kind.
type Entity[E any, P any] struct {
	store driven.EntityStore[E, P]
	clock driven.Clock
	owner string
	hooks hooks[E]
}

// newEntity builds the generic core of a per-kind service. owner is the
// account id used for the queue listings that take no explicit owner.
func newEntity[E any, P any](store driven.EntityStore[E, P], clock driven.Clock, owner string, h hooks[E]) *Entity[E, P] {
	return &Entity[E, P]{store: store, clock: clock, owner: owner, hooks: h}
}

// List returns the owner's current records.
func (s *Entity[E, P]) List(ctx context.Context, ownerID string) ([]E, error) {
	if ownerID == "" {
		ownerID = s.owner
	}
	return s.store.ListByOwner(ctx, ownerID)
}

// Get returns one record by id, or nil if it does not exist.
func (s *Entity[E, P]) Get(ctx context.Context, id string) (*E, error) {
	return s.store.Get(ctx, id)
}

// Create validates and stores a new local record. A missing id gets a
// generated one, a blank owner the configured account, and zero
// timestamps the current time. The record enters storage as pending
// with no sync history.
func (s *Entity[E, P]) Create(ctx context.Context, entity E) (*E, error) {
	now := s.clock.Now()

	if s.hooks.id(&entity) == "" {
		s.hooks.setID(&entity, uuid.NewString())
	}
	if s.hooks.setOwner != nil && s.hooks.owner(&entity) == "" {
		s.hooks.setOwner(&entity, s.owner)
	}
	s.hooks.stamp(&entity, now)

	meta := s.hooks.meta(&entity)
	meta.SyncStatus = domain.SyncPending
	meta.SyncedAt = nil
	meta.ServerUpdatedAt = nil
	if meta.LocalUpdatedAt.IsZero() {
		meta.LocalUpdatedAt = now
	}

	if err := validate.Struct(entity); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.store.Create(ctx, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// Update applies a partial update and returns the updated record, or
// nil if no record with that id exists.
func (s *Entity[E, P]) Update(ctx context.Context, id string, patch P) (*E, error) {
	entity, err := s.store.Update(ctx, id, patch)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// Delete tombstones a record. Returns false when no row existed.
func (s *Entity[E, P]) Delete(ctx context.Context, id string) (bool, error) {
	err := s.store.SoftDelete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PendingSync returns the store-wide outbound queue.
func (s *Entity[E, P]) PendingSync(ctx context.Context) ([]E, error) {
	return s.store.ListPendingSync(ctx)
}

// MarkSynced acknowledges a completed sync for one record.
func (s *Entity[E, P]) MarkSynced(ctx context.Context, id string, serverUpdatedAt time.Time) error {
	return s.store.MarkSynced(ctx, id, serverUpdatedAt)
}
