// Package memory provides in-memory implementations of the storage
// ports for testing. Behaviour mirrors the sqlite adapter's sync state
// transitions; relational concerns such as cascading deletes are not
// reproduced here.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
	"github.com/studykit-labs/studykit-cli/internal/core/ports/driven"
)

// descriptor holds the per-kind accessors the generic store needs.
type descriptor[E any, P any] struct {
	id         func(*E) string
	owner      func(*E) string
	meta       func(*E) *domain.SyncMeta
	remoteTime func(*E) time.Time
	touch      func(*E, time.Time)
	apply      func(*E, P)

	// conflicts reports a uniqueness violation between two distinct
	// rows, mirroring the relational unique indexes. Optional.
	conflicts func(a, b *E) bool
}

// EntityStore is a map-backed repository for one entity kind.
type EntityStore[E any, P any] struct {
	mu    sync.RWMutex
	rows  map[string]E
	clock driven.Clock
	desc  descriptor[E, P]
}

func newEntityStore[E any, P any](clock driven.Clock, desc descriptor[E, P]) *EntityStore[E, P] {
	return &EntityStore[E, P]{
		rows:  make(map[string]E),
		clock: clock,
		desc:  desc,
	}
}

func (s *EntityStore[E, P]) ListByOwner(_ context.Context, ownerID string) ([]E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []E
	for _, e := range s.rows {
		if s.desc.owner(&e) == ownerID && s.desc.meta(&e).SyncStatus != domain.SyncDeleted {
			out = append(out, e)
		}
	}
	s.sortNewestFirst(out)
	return out, nil
}

func (s *EntityStore[E, P]) Get(_ context.Context, id string) (*E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *EntityStore[E, P]) Create(_ context.Context, e *E) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.desc.id(e)
	if _, exists := s.rows[id]; exists {
		return domain.ErrAlreadyExists
	}
	if s.desc.conflicts != nil {
		for key := range s.rows {
			existing := s.rows[key]
			if s.desc.conflicts(&existing, e) {
				return domain.ErrAlreadyExists
			}
		}
	}
	s.rows[id] = *e
	return nil
}

func (s *EntityStore[E, P]) Update(_ context.Context, id string, patch P) (*E, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	now := s.clock.Now()
	s.desc.apply(&e, patch)
	s.desc.touch(&e, now)

	meta := s.desc.meta(&e)
	meta.SyncStatus = domain.SyncPending
	if now.After(meta.LocalUpdatedAt) {
		meta.LocalUpdatedAt = now
	}

	s.rows[id] = e
	return &e, nil
}

func (s *EntityStore[E, P]) SoftDelete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.rows[id]
	if !ok {
		return domain.ErrNotFound
	}

	now := s.clock.Now()
	meta := s.desc.meta(&e)
	meta.SyncStatus = domain.SyncDeleted
	if now.After(meta.LocalUpdatedAt) {
		meta.LocalUpdatedAt = now
	}
	s.rows[id] = e
	return nil
}

func (s *EntityStore[E, P]) HardDelete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *EntityStore[E, P]) ListPendingSync(_ context.Context) ([]E, error) {
	return s.listByStatus(domain.SyncPending), nil
}

func (s *EntityStore[E, P]) ListDeleted(_ context.Context) ([]E, error) {
	return s.listByStatus(domain.SyncDeleted), nil
}

func (s *EntityStore[E, P]) MarkSynced(_ context.Context, id string, serverUpdatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.rows[id]
	if !ok {
		return domain.ErrNotFound
	}

	meta := s.desc.meta(&e)
	meta.SyncStatus = domain.SyncSynced
	syncedAt := s.clock.Now()
	meta.SyncedAt = &syncedAt
	serverAt := serverUpdatedAt
	meta.ServerUpdatedAt = &serverAt
	s.rows[id] = e
	return nil
}

func (s *EntityStore[E, P]) OverwriteFromRemote(_ context.Context, e *E) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remote := s.desc.remoteTime(e)
	meta := s.desc.meta(e)
	meta.SyncStatus = domain.SyncSynced
	syncedAt := s.clock.Now()
	meta.SyncedAt = &syncedAt
	meta.LocalUpdatedAt = remote
	serverAt := remote
	meta.ServerUpdatedAt = &serverAt

	s.rows[s.desc.id(e)] = *e
	return nil
}

func (s *EntityStore[E, P]) listByStatus(status domain.SyncStatus) []E {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []E
	for _, e := range s.rows {
		if s.desc.meta(&e).SyncStatus == status {
			out = append(out, e)
		}
	}
	s.sortOldestFirst(out)
	return out
}

func (s *EntityStore[E, P]) sortNewestFirst(rows []E) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := s.desc.meta(&rows[i]), s.desc.meta(&rows[j])
		if !a.LocalUpdatedAt.Equal(b.LocalUpdatedAt) {
			return a.LocalUpdatedAt.After(b.LocalUpdatedAt)
		}
		return s.desc.id(&rows[i]) < s.desc.id(&rows[j])
	})
}

func (s *EntityStore[E, P]) sortOldestFirst(rows []E) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := s.desc.meta(&rows[i]), s.desc.meta(&rows[j])
		if !a.LocalUpdatedAt.Equal(b.LocalUpdatedAt) {
			return a.LocalUpdatedAt.Before(b.LocalUpdatedAt)
		}
		return s.desc.id(&rows[i]) < s.desc.id(&rows[j])
	})
}
