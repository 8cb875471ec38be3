package domain

import "time"

// Deck represents a collection of flashcards owned by one user.
// Deleting a deck's row cascades to its cards.
type Deck struct {
	// ID is the unique identifier for the deck.
	ID string `validate:"required"`

	// UserID identifies the owning user account.
	UserID string `validate:"required"`

	// Title is the human-readable title.
	Title string `validate:"required"`

	// Description is an optional free-text summary.
	Description *string

	// IsPublic marks the deck as publicly readable once synced.
	IsPublic bool

	// CreatedAt is when the deck was created.
	CreatedAt time.Time

	// UpdatedAt is when the deck was last changed.
	UpdatedAt time.Time

	SyncMeta
}

// EntityID returns the deck's unique id.
func (d Deck) EntityID() string { return d.ID }

// Owner returns the owning account id.
func (d Deck) Owner() string { return d.UserID }

// DeckPatch is a partial update. Nil fields are left unchanged.
type DeckPatch struct {
	Title       *string
	Description *string
	IsPublic    *bool
}

// Apply overwrites the deck's fields with the patch's set values.
func (d *Deck) Apply(p DeckPatch) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = p.Description
	}
	if p.IsPublic != nil {
		d.IsPublic = *p.IsPublic
	}
}

// Touch records a content edit at t.
func (d *Deck) Touch(t time.Time) { d.UpdatedAt = t }

// RemoteUpdatedAt returns the timestamp the remote authority versions
// this record by.
func (d Deck) RemoteUpdatedAt() time.Time { return d.UpdatedAt }
