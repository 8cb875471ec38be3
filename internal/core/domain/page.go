package domain

import "time"

// Page represents a single page of study content. A page optionally
// belongs to a note; the rich-text content itself is owned by the
// realtime editing subsystem and never stored here.
type Page struct {
	// ID is the unique identifier for the page.
	ID string `validate:"required"`

	// UserID identifies the owning user account.
	UserID string `validate:"required"`

	// NoteID links the page to a note, if any.
	NoteID *string

	// Title is the human-readable title.
	Title string `validate:"required"`

	// ThumbnailURL points at a preview image, if one was generated.
	ThumbnailURL *string

	// IsPublic marks the page as publicly readable once synced.
	IsPublic bool

	// ScrapboxPageID links to an imported Scrapbox page, if any.
	ScrapboxPageID *string

	// ScrapboxListSyncedAt is when the page last appeared in a Scrapbox
	// list import.
	ScrapboxListSyncedAt *time.Time

	// ScrapboxContentSyncedAt is when the page content was last imported
	// from Scrapbox.
	ScrapboxContentSyncedAt *time.Time

	// CreatedAt is when the page was created.
	CreatedAt time.Time

	// UpdatedAt is when the page was last changed.
	UpdatedAt time.Time

	SyncMeta
}

// EntityID returns the page's unique id.
func (p Page) EntityID() string { return p.ID }

// Owner returns the owning account id.
func (p Page) Owner() string { return p.UserID }

// PagePatch is a partial update. Nil fields are left unchanged.
type PagePatch struct {
	Title        *string
	NoteID       *string
	ThumbnailURL *string
	IsPublic     *bool
}

// Apply overwrites the page's fields with the patch's set values.
func (p *Page) Apply(patch PagePatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.NoteID != nil {
		p.NoteID = patch.NoteID
	}
	if patch.ThumbnailURL != nil {
		p.ThumbnailURL = patch.ThumbnailURL
	}
	if patch.IsPublic != nil {
		p.IsPublic = *patch.IsPublic
	}
}

// Touch records a content edit at t.
func (p *Page) Touch(t time.Time) { p.UpdatedAt = t }

// RemoteUpdatedAt returns the timestamp the remote authority versions
// this record by.
func (p Page) RemoteUpdatedAt() time.Time { return p.UpdatedAt }
