package domain

import "time"

// Card represents a single flashcard. It belongs to exactly one deck and
// carries the spaced-repetition scheduling state alongside its content.
// The scheduling formula itself lives in the review subsystem; this store
// only persists the values it produces.
type Card struct {
	// ID is the unique identifier for the card.
	ID string `validate:"required"`

	// DeckID links the card to its deck. Removing the deck's row removes
	// the card.
	DeckID string `validate:"required"`

	// UserID identifies the owning user account.
	UserID string `validate:"required"`

	// FrontContent is the prompt side.
	FrontContent string `validate:"required"`

	// BackContent is the answer side.
	BackContent string `validate:"required"`

	// SourceAudioURL points at the audio clip the card was made from.
	SourceAudioURL *string

	// SourceOCRImageURL points at the scanned image the card was made from.
	SourceOCRImageURL *string

	// CreatedAt is when the card was created.
	CreatedAt time.Time

	// UpdatedAt is when the card was last changed.
	UpdatedAt time.Time

	// EaseFactor is the SM-2 ease multiplier.
	EaseFactor float64

	// RepetitionCount is how many times the card has been reviewed.
	RepetitionCount int

	// ReviewInterval is the current interval in days.
	ReviewInterval int

	// NextReviewAt is when the card next becomes due. Nil for cards that
	// have never been scheduled.
	NextReviewAt *time.Time

	// Stability is the FSRS memory stability estimate.
	Stability float64

	// Difficulty is the FSRS item difficulty estimate.
	Difficulty float64

	// LastReviewedAt is when the card was last answered, if ever.
	LastReviewedAt *time.Time

	SyncMeta
}

// EntityID returns the card's unique id.
func (c Card) EntityID() string { return c.ID }

// Owner returns the owning account id.
func (c Card) Owner() string { return c.UserID }

// CardPatch is a partial update. Nil fields are left unchanged.
type CardPatch struct {
	FrontContent      *string
	BackContent       *string
	SourceAudioURL    *string
	SourceOCRImageURL *string
	EaseFactor        *float64
	RepetitionCount   *int
	ReviewInterval    *int
	NextReviewAt      *time.Time
	Stability         *float64
	Difficulty        *float64
	LastReviewedAt    *time.Time
}

// Apply overwrites the card's fields with the patch's set values.
func (c *Card) Apply(p CardPatch) {
	if p.FrontContent != nil {
		c.FrontContent = *p.FrontContent
	}
	if p.BackContent != nil {
		c.BackContent = *p.BackContent
	}
	if p.SourceAudioURL != nil {
		c.SourceAudioURL = p.SourceAudioURL
	}
	if p.SourceOCRImageURL != nil {
		c.SourceOCRImageURL = p.SourceOCRImageURL
	}
	if p.EaseFactor != nil {
		c.EaseFactor = *p.EaseFactor
	}
	if p.RepetitionCount != nil {
		c.RepetitionCount = *p.RepetitionCount
	}
	if p.ReviewInterval != nil {
		c.ReviewInterval = *p.ReviewInterval
	}
	if p.NextReviewAt != nil {
		c.NextReviewAt = p.NextReviewAt
	}
	if p.Stability != nil {
		c.Stability = *p.Stability
	}
	if p.Difficulty != nil {
		c.Difficulty = *p.Difficulty
	}
	if p.LastReviewedAt != nil {
		c.LastReviewedAt = p.LastReviewedAt
	}
}

// Touch records a content edit at t.
func (c *Card) Touch(t time.Time) { c.UpdatedAt = t }

// RemoteUpdatedAt returns the timestamp the remote authority versions
// this record by.
func (c Card) RemoteUpdatedAt() time.Time { return c.UpdatedAt }
