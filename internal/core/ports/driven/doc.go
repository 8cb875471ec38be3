// Package driven defines the interfaces that core calls OUT to
// infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - EntityStore: generic persistence for one entity kind, including the
//     sync-state machine operations
//   - NoteStore, PageStore, DeckStore, CardStore, StudyGoalStore,
//     MilestoneStore, LearningLogStore, UserSettingsStore: per-kind
//     instantiations, with entity-specific extensions where one exists
//   - ConfigStore: application configuration
//   - Clock: wall-clock time, injected so state transitions are testable
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
