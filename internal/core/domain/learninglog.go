package domain

import "time"

// PracticeMode identifies which exercise produced a learning log entry.
type PracticeMode string

// Available practice modes.
const (
	PracticeFlashcard PracticeMode = "flashcard"
	PracticeQuiz      PracticeMode = "quiz"
	PracticeTyping    PracticeMode = "typing"
	PracticeListening PracticeMode = "listening"
	PracticeReading   PracticeMode = "reading"
)

// IsValid returns true if the practice mode is recognised.
func (m PracticeMode) IsValid() bool {
	switch m {
	case PracticeFlashcard, PracticeQuiz, PracticeTyping, PracticeListening, PracticeReading:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m PracticeMode) String() string {
	return string(m)
}

// LearningLog records a single answer to a card. It belongs to exactly
// one card; removing the card's row removes its logs.
type LearningLog struct {
	// ID is the unique identifier for the log entry.
	ID string `validate:"required"`

	// UserID identifies the answering user account.
	UserID string `validate:"required"`

	// CardID links the entry to the answered card.
	CardID string `validate:"required"`

	// QuestionID identifies the generated question variant, if any.
	QuestionID *string

	// AnsweredAt is when the answer was given.
	AnsweredAt time.Time

	// IsCorrect records whether the answer was accepted.
	IsCorrect bool

	// UserAnswer is the raw answer text, when the mode captures one.
	UserAnswer *string

	// PracticeMode identifies the exercise kind.
	PracticeMode PracticeMode `validate:"oneof=flashcard quiz typing listening reading"`

	// ReviewInterval is the interval in days produced by this review,
	// if the scheduler ran.
	ReviewInterval *int

	// NextReviewAt is the next due time produced by this review, if any.
	NextReviewAt *time.Time

	// Quality is the SM-2 answer quality grade, 0 to 5.
	Quality int `validate:"min=0,max=5"`

	// ResponseTime is how long the answer took, in milliseconds.
	ResponseTime int

	// EffortTime is total time spent on the exercise, in milliseconds.
	EffortTime int

	// AttemptCount is how many tries the answer took.
	AttemptCount int

	SyncMeta
}

// EntityID returns the log entry's unique id.
func (l LearningLog) EntityID() string { return l.ID }

// Owner returns the owning account id.
func (l LearningLog) Owner() string { return l.UserID }

// LearningLogPatch is a partial update. Nil fields are left unchanged.
// Log entries are normally immutable once written; the patch exists for
// backfilling scheduler output onto an already-recorded answer.
type LearningLogPatch struct {
	IsCorrect      *bool
	UserAnswer     *string
	ReviewInterval *int
	NextReviewAt   *time.Time
	Quality        *int
	AttemptCount   *int
}

// Apply overwrites the entry's fields with the patch's set values.
func (l *LearningLog) Apply(p LearningLogPatch) {
	if p.IsCorrect != nil {
		l.IsCorrect = *p.IsCorrect
	}
	if p.UserAnswer != nil {
		l.UserAnswer = p.UserAnswer
	}
	if p.ReviewInterval != nil {
		l.ReviewInterval = p.ReviewInterval
	}
	if p.NextReviewAt != nil {
		l.NextReviewAt = p.NextReviewAt
	}
	if p.Quality != nil {
		l.Quality = *p.Quality
	}
	if p.AttemptCount != nil {
		l.AttemptCount = *p.AttemptCount
	}
}

// Touch is a no-op: log entries carry no updated timestamp of their
// own, only the sync metadata moves on edit.
func (l *LearningLog) Touch(time.Time) {}

// RemoteUpdatedAt returns the timestamp the remote authority versions
// this record by. For log entries that is the answer time.
func (l LearningLog) RemoteUpdatedAt() time.Time { return l.AnsweredAt }
