package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
)

// scanner abstracts sql.Row and sql.Rows for the descriptor scan
// functions.
type scanner interface {
	Scan(dest ...any) error
}

// table describes one relation to the generic entity store: its name,
// owner column, full column list, and the closures that move an entity
// in and out of a row. columns[0] must be the id column, and args must
// yield values in the same order as columns.
type table[E any, P any] struct {
	name     string
	ownerCol string
	columns  []string

	scan       func(s scanner) (E, error)
	args       func(e *E) []any
	id         func(e *E) string
	meta       func(e *E) *domain.SyncMeta
	remoteTime func(e *E) time.Time
	touch      func(e *E, t time.Time)
	apply      func(e *E, p P)
}

func (t *table[E, P]) selectSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.columns, ", "), t.name)
}

func (t *table[E, P]) insertSQL() string {
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		t.name,
		strings.Join(t.columns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(t.columns)), ", "),
	)
}

func (t *table[E, P]) updateSQL() string {
	sets := make([]string, 0, len(t.columns)-1)
	for _, col := range t.columns[1:] {
		sets = append(sets, col+" = ?")
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", t.name, strings.Join(sets, ", "))
}

func (t *table[E, P]) upsertSQL() string {
	sets := make([]string, 0, len(t.columns)-1)
	for _, col := range t.columns[1:] {
		sets = append(sets, col+" = excluded."+col)
	}
	return fmt.Sprintf(
		"%s ON CONFLICT(id) DO UPDATE SET %s",
		t.insertSQL(),
		strings.Join(sets, ", "),
	)
}

// entityStore implements the repository operations for one relation.
// All SQL flows through the owning Store's exclusive lock, so a
// read-modify-write such as Update is atomic with respect to every
// other operation on the store.
type entityStore[E any, P any] struct {
	store *Store
	tbl   table[E, P]
}

// ListByOwner returns the owner's live entities, most recently changed
// first. Soft-deleted rows are excluded.
func (es *entityStore[E, P]) ListByOwner(ctx context.Context, ownerID string) ([]E, error) {
	query := fmt.Sprintf(
		"%s WHERE %s = ? AND sync_status != ? ORDER BY local_updated_at DESC, id ASC",
		es.tbl.selectSQL(), es.tbl.ownerCol,
	)
	return es.list(ctx, query, ownerID, string(domain.SyncDeleted))
}

// Get returns the entity with the given id, including soft-deleted
// ones, or nil if no such row exists.
func (es *entityStore[E, P]) Get(ctx context.Context, id string) (*E, error) {
	var entity *E
	err := es.store.withConn(func(db *sql.DB) error {
		row := db.QueryRowContext(ctx, es.tbl.selectSQL()+" WHERE id = ?", id)
		e, err := es.tbl.scan(row)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return fmt.Errorf("getting %s %s: %w", es.tbl.name, id, mapError(err))
		}
		entity = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// Create inserts the entity exactly as given, sync metadata included.
func (es *entityStore[E, P]) Create(ctx context.Context, e *E) error {
	return es.store.withConn(func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx, es.tbl.insertSQL(), es.tbl.args(e)...); err != nil {
			return fmt.Errorf("creating %s %s: %w", es.tbl.name, es.tbl.id(e), mapError(err))
		}
		return nil
	})
}

// Update applies the patch to the stored entity and transitions it to
// pending. The updated timestamp moves to now; local_updated_at also
// moves to now but never backwards, so a row stamped by a skewed clock
// keeps its place in the sync queue. Updating a soft-deleted row
// revives it: the row re-enters pending and will sync as an edit.
func (es *entityStore[E, P]) Update(ctx context.Context, id string, patch P) (*E, error) {
	var entity *E
	err := es.store.withConn(func(db *sql.DB) error {
		row := db.QueryRowContext(ctx, es.tbl.selectSQL()+" WHERE id = ?", id)
		e, err := es.tbl.scan(row)
		if err == sql.ErrNoRows {
			return fmt.Errorf("updating %s %s: %w", es.tbl.name, id, domain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("updating %s %s: %w", es.tbl.name, id, mapError(err))
		}

		now := es.store.clock.Now()
		es.tbl.apply(&e, patch)
		es.tbl.touch(&e, now)

		meta := es.tbl.meta(&e)
		meta.SyncStatus = domain.SyncPending
		if now.After(meta.LocalUpdatedAt) {
			meta.LocalUpdatedAt = now
		}

		args := append(es.tbl.args(&e)[1:], id)
		if _, err := db.ExecContext(ctx, es.tbl.updateSQL(), args...); err != nil {
			return fmt.Errorf("updating %s %s: %w", es.tbl.name, id, mapError(err))
		}
		entity = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// SoftDelete marks the entity deleted so the next push propagates the
// deletion. The row itself stays until a hard delete.
func (es *entityStore[E, P]) SoftDelete(ctx context.Context, id string) error {
	return es.store.withConn(func(db *sql.DB) error {
		now := formatTime(es.store.clock.Now())
		res, err := db.ExecContext(ctx,
			fmt.Sprintf(
				"UPDATE %s SET sync_status = ?, local_updated_at = MAX(local_updated_at, ?) WHERE id = ?",
				es.tbl.name,
			),
			string(domain.SyncDeleted), now, id,
		)
		if err != nil {
			return fmt.Errorf("soft-deleting %s %s: %w", es.tbl.name, id, mapError(err))
		}
		return es.requireRow(res, id)
	})
}

// HardDelete removes the row permanently. Child rows go with it via
// the schema's cascading foreign keys.
func (es *entityStore[E, P]) HardDelete(ctx context.Context, id string) error {
	return es.store.withConn(func(db *sql.DB) error {
		res, err := db.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE id = ?", es.tbl.name), id)
		if err != nil {
			return fmt.Errorf("hard-deleting %s %s: %w", es.tbl.name, id, mapError(err))
		}
		return es.requireRow(res, id)
	})
}

// ListPendingSync returns every row awaiting push, regardless of owner,
// oldest change first so the sync queue drains in order.
func (es *entityStore[E, P]) ListPendingSync(ctx context.Context) ([]E, error) {
	query := fmt.Sprintf(
		"%s WHERE sync_status = ? ORDER BY local_updated_at ASC, id ASC",
		es.tbl.selectSQL(),
	)
	return es.list(ctx, query, string(domain.SyncPending))
}

// ListDeleted returns every soft-deleted row, regardless of owner,
// oldest first.
func (es *entityStore[E, P]) ListDeleted(ctx context.Context) ([]E, error) {
	query := fmt.Sprintf(
		"%s WHERE sync_status = ? ORDER BY local_updated_at ASC, id ASC",
		es.tbl.selectSQL(),
	)
	return es.list(ctx, query, string(domain.SyncDeleted))
}

// MarkSynced records a successful push: the row becomes synced, with
// synced_at stamped now and server_updated_at taken from the server's
// response. Calling it again with the same time is a no-op.
func (es *entityStore[E, P]) MarkSynced(ctx context.Context, id string, serverUpdatedAt time.Time) error {
	return es.store.withConn(func(db *sql.DB) error {
		res, err := db.ExecContext(ctx,
			fmt.Sprintf(
				"UPDATE %s SET sync_status = ?, synced_at = ?, server_updated_at = ? WHERE id = ?",
				es.tbl.name,
			),
			string(domain.SyncSynced),
			formatTime(es.store.clock.Now()),
			formatTime(serverUpdatedAt),
			id,
		)
		if err != nil {
			return fmt.Errorf("marking %s %s synced: %w", es.tbl.name, id, mapError(err))
		}
		return es.requireRow(res, id)
	})
}

// OverwriteFromRemote replaces (or inserts) the row with the server's
// copy, which becomes the synced baseline: both local and server
// timestamps take the remote entity's own updated time. An update via
// ON CONFLICT keeps child rows alive, where a delete-and-reinsert
// would cascade them away.
func (es *entityStore[E, P]) OverwriteFromRemote(ctx context.Context, e *E) error {
	return es.store.withConn(func(db *sql.DB) error {
		now := es.store.clock.Now()
		remote := es.tbl.remoteTime(e)

		meta := es.tbl.meta(e)
		meta.SyncStatus = domain.SyncSynced
		syncedAt := now
		meta.SyncedAt = &syncedAt
		meta.LocalUpdatedAt = remote
		serverAt := remote
		meta.ServerUpdatedAt = &serverAt

		if _, err := db.ExecContext(ctx, es.tbl.upsertSQL(), es.tbl.args(e)...); err != nil {
			return fmt.Errorf("overwriting %s %s: %w", es.tbl.name, es.tbl.id(e), mapError(err))
		}
		return nil
	})
}

// list runs a multi-row query and scans every result.
func (es *entityStore[E, P]) list(ctx context.Context, query string, args ...any) ([]E, error) {
	var entities []E
	err := es.store.withConn(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("listing %s: %w", es.tbl.name, mapError(err))
		}
		defer rows.Close()

		for rows.Next() {
			e, err := es.tbl.scan(rows)
			if err != nil {
				return fmt.Errorf("scanning %s row: %w", es.tbl.name, mapError(err))
			}
			entities = append(entities, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// requireRow converts a zero-row write into ErrNotFound.
func (es *entityStore[E, P]) requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows for %s %s: %w", es.tbl.name, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", es.tbl.name, id, domain.ErrNotFound)
	}
	return nil
}

// cardStore adds the review-scheduling query on top of the generic
// card repository.
type cardStore struct {
	*entityStore[domain.Card, domain.CardPatch]
}

// ListDue returns the owner's live cards whose next review time is at
// or before asOf, soonest first. Cards that have never been scheduled
// (no next review time) are not due.
func (cs *cardStore) ListDue(ctx context.Context, ownerID string, asOf time.Time) ([]domain.Card, error) {
	query := fmt.Sprintf(
		"%s WHERE %s = ? AND sync_status != ? AND next_review_at IS NOT NULL AND next_review_at <= ? ORDER BY next_review_at ASC, id ASC",
		cs.tbl.selectSQL(), cs.tbl.ownerCol,
	)
	return cs.list(ctx, query, ownerID, string(domain.SyncDeleted), formatTime(asOf))
}
