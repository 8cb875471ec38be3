package domain

import "time"

// GoalStatus tracks a study goal's progress state.
type GoalStatus string

// Available goal statuses.
const (
	GoalNotStarted GoalStatus = "not_started"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
)

// IsValid returns true if the status is recognised.
func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalNotStarted, GoalInProgress, GoalCompleted:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s GoalStatus) String() string {
	return string(s)
}

// StudyGoal represents a long-running learning objective.
// Deleting a goal's row cascades to its milestones.
type StudyGoal struct {
	// ID is the unique identifier for the goal.
	ID string `validate:"required"`

	// UserID identifies the owning user account.
	UserID string `validate:"required"`

	// Title is the human-readable title.
	Title string `validate:"required"`

	// Description is an optional free-text summary.
	Description *string

	// CreatedAt is when the goal was created.
	CreatedAt time.Time

	// UpdatedAt is when the goal was last changed.
	UpdatedAt time.Time

	// Deadline is the target completion date, if one was set.
	Deadline *time.Time

	// ProgressRate is the completion percentage, 0 to 100.
	ProgressRate int `validate:"min=0,max=100"`

	// Status is the goal's progress state.
	Status GoalStatus `validate:"oneof=not_started in_progress completed"`

	// CompletedAt is when the goal was completed, if ever.
	CompletedAt *time.Time

	SyncMeta
}

// EntityID returns the goal's unique id.
func (g StudyGoal) EntityID() string { return g.ID }

// Owner returns the owning account id.
func (g StudyGoal) Owner() string { return g.UserID }

// StudyGoalPatch is a partial update. Nil fields are left unchanged.
type StudyGoalPatch struct {
	Title        *string
	Description  *string
	Deadline     *time.Time
	ProgressRate *int
	Status       *GoalStatus
	CompletedAt  *time.Time
}

// Apply overwrites the goal's fields with the patch's set values.
func (g *StudyGoal) Apply(p StudyGoalPatch) {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Description != nil {
		g.Description = p.Description
	}
	if p.Deadline != nil {
		g.Deadline = p.Deadline
	}
	if p.ProgressRate != nil {
		g.ProgressRate = *p.ProgressRate
	}
	if p.Status != nil {
		g.Status = *p.Status
	}
	if p.CompletedAt != nil {
		g.CompletedAt = p.CompletedAt
	}
}

// Touch records a content edit at t.
func (g *StudyGoal) Touch(t time.Time) { g.UpdatedAt = t }

// RemoteUpdatedAt returns the timestamp the remote authority versions
// this record by.
func (g StudyGoal) RemoteUpdatedAt() time.Time { return g.UpdatedAt }
