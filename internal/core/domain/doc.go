// Package domain defines the core business entities for the studykit
// local store.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Note, Page: knowledge-base records
//   - Deck, Card: flashcard records with spaced-repetition state
//   - StudyGoal, Milestone: planning records
//   - LearningLog: per-answer review history records
//   - UserSettings: one-per-user preference record
//   - SyncMeta: per-record reconciliation state with the remote authority
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
