// Package sqlite provides the embedded store behind the studykit
// persistence layer.
//
// One Store owns the single physical connection to the database file and
// serialises all access to it. The schema for every entity relation is
// declared in this package (see schema.go) together with a monotonic
// store version; opening a store migrates it to the current version
// before any repository is handed out.
//
// Each entity kind is persisted by one instantiation of a generic entity
// store driven by a declarative table description (see tables.go). The
// sync-state machine (pending, synced and deleted transitions, plus
// their timestamp stamping) is enforced here on every mutation.
package sqlite
