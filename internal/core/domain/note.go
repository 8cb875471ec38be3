package domain

import "time"

// Visibility controls who can see a note once it is published remotely.
type Visibility string

// Available note visibilities.
const (
	VisibilityPublic   Visibility = "public"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityInvite   Visibility = "invite"
	VisibilityPrivate  Visibility = "private"
)

// IsValid returns true if the visibility is recognised.
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityUnlisted, VisibilityInvite, VisibilityPrivate:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (v Visibility) String() string {
	return string(v)
}

// Note represents a knowledge-base notebook owned by one user.
type Note struct {
	// ID is the unique identifier for the note.
	ID string `validate:"required"`

	// OwnerID identifies the owning user account.
	OwnerID string `validate:"required"`

	// Slug is the URL-safe name, unique per owner.
	Slug string `validate:"required"`

	// Title is the human-readable title.
	Title string `validate:"required"`

	// Description is an optional free-text summary.
	Description *string

	// Visibility controls remote publication.
	Visibility Visibility `validate:"oneof=public unlisted invite private"`

	// CreatedAt is when the note was created.
	CreatedAt time.Time

	// UpdatedAt is when the note content was last changed.
	UpdatedAt time.Time

	// IsTrashed is the application-level trash flag. Distinct from the
	// sync tombstone: a trashed note still syncs as a live record.
	IsTrashed bool

	// TrashedAt is when the note was moved to the trash, if ever.
	TrashedAt *time.Time

	SyncMeta
}

// EntityID returns the note's unique id.
func (n Note) EntityID() string { return n.ID }

// Owner returns the owning account id.
func (n Note) Owner() string { return n.OwnerID }

// NotePatch is a partial update. Nil fields are left unchanged.
type NotePatch struct {
	Title       *string
	Description *string
	Visibility  *Visibility
	IsTrashed   *bool
	TrashedAt   *time.Time
}

// Apply overwrites the note's fields with the patch's set values.
func (n *Note) Apply(p NotePatch) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Description != nil {
		n.Description = p.Description
	}
	if p.Visibility != nil {
		n.Visibility = *p.Visibility
	}
	if p.IsTrashed != nil {
		n.IsTrashed = *p.IsTrashed
	}
	if p.TrashedAt != nil {
		n.TrashedAt = p.TrashedAt
	}
}

// Touch records a content edit at t.
func (n *Note) Touch(t time.Time) { n.UpdatedAt = t }

// RemoteUpdatedAt returns the timestamp the remote authority versions
// this record by.
func (n Note) RemoteUpdatedAt() time.Time { return n.UpdatedAt }
