package domain

import "time"

// SyncStatus tracks a record's reconciliation state with the remote
// authority.
type SyncStatus string

// Sync status lifecycle states.
const (
	// SyncPending marks a local change that has not been propagated.
	// Every local mutation resets a record to this state.
	SyncPending SyncStatus = "pending"

	// SyncSynced marks a record whose local and remote values agree.
	SyncSynced SyncStatus = "synced"

	// SyncConflict is reserved vocabulary. No operation in this store
	// produces it; conflict policy belongs to the remote-sync layer,
	// which resolves by overwriting from the remote value instead.
	SyncConflict SyncStatus = "conflict"

	// SyncDeleted marks a tombstoned record: logically deleted, retained
	// in storage until the remote authority confirms the deletion.
	SyncDeleted SyncStatus = "deleted"
)

// IsValid returns true if the status is recognised.
func (s SyncStatus) IsValid() bool {
	switch s {
	case SyncPending, SyncSynced, SyncConflict, SyncDeleted:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SyncStatus) String() string {
	return string(s)
}

// SyncMeta carries the four reconciliation fields every stored record
// has, regardless of entity kind.
type SyncMeta struct {
	// SyncStatus is the record's current lifecycle state.
	SyncStatus SyncStatus

	// SyncedAt is when the record was last reconciled with the remote
	// authority. Nil until the first sync.
	SyncedAt *time.Time

	// LocalUpdatedAt is the time of the most recent local mutation.
	// Monotonically non-decreasing per record.
	LocalUpdatedAt time.Time

	// ServerUpdatedAt is the most recent update time known to have
	// originated from, or been confirmed by, the remote authority.
	// Nil until the first sync.
	ServerUpdatedAt *time.Time
}

// Meta returns a pointer to the embedded sync metadata. It exists so the
// generic store can stamp state transitions without knowing the concrete
// entity type.
func (m *SyncMeta) Meta() *SyncMeta {
	return m
}
