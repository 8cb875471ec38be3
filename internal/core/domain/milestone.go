package domain

import "time"

// Milestone represents an intermediate step towards a study goal.
// It belongs to exactly one goal and is owned transitively through it.
type Milestone struct {
	// ID is the unique identifier for the milestone.
	ID string `validate:"required"`

	// GoalID links the milestone to its goal. Removing the goal's row
	// removes the milestone.
	GoalID string `validate:"required"`

	// Title is the human-readable title.
	Title string `validate:"required"`

	// Description is an optional free-text summary.
	Description *string

	// DueDate is the target date, if one was set.
	DueDate *time.Time

	// IsCompleted marks the milestone as done.
	IsCompleted bool

	// CreatedAt is when the milestone was created.
	CreatedAt time.Time

	// UpdatedAt is when the milestone was last changed.
	UpdatedAt time.Time

	SyncMeta
}

// EntityID returns the milestone's unique id.
func (m Milestone) EntityID() string { return m.ID }

// Owner returns the parent goal id; milestones are owned transitively
// through their goal.
func (m Milestone) Owner() string { return m.GoalID }

// MilestonePatch is a partial update. Nil fields are left unchanged.
type MilestonePatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	IsCompleted *bool
}

// Apply overwrites the milestone's fields with the patch's set values.
func (m *Milestone) Apply(p MilestonePatch) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = p.Description
	}
	if p.DueDate != nil {
		m.DueDate = p.DueDate
	}
	if p.IsCompleted != nil {
		m.IsCompleted = *p.IsCompleted
	}
}

// Touch records a content edit at t.
func (m *Milestone) Touch(t time.Time) { m.UpdatedAt = t }

// RemoteUpdatedAt returns the timestamp the remote authority versions
// this record by.
func (m Milestone) RemoteUpdatedAt() time.Time { return m.UpdatedAt }
