package memory

import (
	"context"
	"sort"
	"time"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
	"github.com/studykit-labs/studykit-cli/internal/core/ports/driven"
)

// Interface checks.
var (
	_ driven.NoteStore         = (*EntityStore[domain.Note, domain.NotePatch])(nil)
	_ driven.CardStore         = (*CardStore)(nil)
	_ driven.UserSettingsStore = (*EntityStore[domain.UserSettings, domain.UserSettingsPatch])(nil)
)

// NewNoteStore creates an in-memory note repository.
func NewNoteStore(clock driven.Clock) *EntityStore[domain.Note, domain.NotePatch] {
	return newEntityStore(clock, descriptor[domain.Note, domain.NotePatch]{
		id:         (*domain.Note).EntityID,
		owner:      (*domain.Note).Owner,
		meta:       (*domain.Note).Meta,
		remoteTime: (*domain.Note).RemoteUpdatedAt,
		touch:      (*domain.Note).Touch,
		apply:      (*domain.Note).Apply,
		conflicts: func(a, b *domain.Note) bool {
			return a.OwnerID == b.OwnerID && a.Slug == b.Slug
		},
	})
}

// NewPageStore creates an in-memory page repository.
func NewPageStore(clock driven.Clock) *EntityStore[domain.Page, domain.PagePatch] {
	return newEntityStore(clock, descriptor[domain.Page, domain.PagePatch]{
		id:         (*domain.Page).EntityID,
		owner:      (*domain.Page).Owner,
		meta:       (*domain.Page).Meta,
		remoteTime: (*domain.Page).RemoteUpdatedAt,
		touch:      (*domain.Page).Touch,
		apply:      (*domain.Page).Apply,
	})
}

// NewDeckStore creates an in-memory deck repository.
func NewDeckStore(clock driven.Clock) *EntityStore[domain.Deck, domain.DeckPatch] {
	return newEntityStore(clock, descriptor[domain.Deck, domain.DeckPatch]{
		id:         (*domain.Deck).EntityID,
		owner:      (*domain.Deck).Owner,
		meta:       (*domain.Deck).Meta,
		remoteTime: (*domain.Deck).RemoteUpdatedAt,
		touch:      (*domain.Deck).Touch,
		apply:      (*domain.Deck).Apply,
	})
}

// CardStore adds the due-card query to the generic in-memory card
// repository.
type CardStore struct {
	*EntityStore[domain.Card, domain.CardPatch]
}

// NewCardStore creates an in-memory card repository.
func NewCardStore(clock driven.Clock) *CardStore {
	return &CardStore{newEntityStore(clock, descriptor[domain.Card, domain.CardPatch]{
		id:         (*domain.Card).EntityID,
		owner:      (*domain.Card).Owner,
		meta:       (*domain.Card).Meta,
		remoteTime: (*domain.Card).RemoteUpdatedAt,
		touch:      (*domain.Card).Touch,
		apply:      (*domain.Card).Apply,
	})}
}

// ListDue returns the owner's live cards due at or before asOf,
// soonest first.
func (cs *CardStore) ListDue(ctx context.Context, ownerID string, asOf time.Time) ([]domain.Card, error) {
	live, err := cs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var due []domain.Card
	for _, c := range live {
		if c.NextReviewAt != nil && !c.NextReviewAt.After(asOf) {
			due = append(due, c)
		}
	}
	sortCardsByDue(due)
	return due, nil
}

// NewStudyGoalStore creates an in-memory study goal repository.
func NewStudyGoalStore(clock driven.Clock) *EntityStore[domain.StudyGoal, domain.StudyGoalPatch] {
	return newEntityStore(clock, descriptor[domain.StudyGoal, domain.StudyGoalPatch]{
		id:         (*domain.StudyGoal).EntityID,
		owner:      (*domain.StudyGoal).Owner,
		meta:       (*domain.StudyGoal).Meta,
		remoteTime: (*domain.StudyGoal).RemoteUpdatedAt,
		touch:      (*domain.StudyGoal).Touch,
		apply:      (*domain.StudyGoal).Apply,
	})
}

// NewMilestoneStore creates an in-memory milestone repository.
func NewMilestoneStore(clock driven.Clock) *EntityStore[domain.Milestone, domain.MilestonePatch] {
	return newEntityStore(clock, descriptor[domain.Milestone, domain.MilestonePatch]{
		id:         (*domain.Milestone).EntityID,
		owner:      (*domain.Milestone).Owner,
		meta:       (*domain.Milestone).Meta,
		remoteTime: (*domain.Milestone).RemoteUpdatedAt,
		touch:      (*domain.Milestone).Touch,
		apply:      (*domain.Milestone).Apply,
	})
}

// NewLearningLogStore creates an in-memory learning log repository.
func NewLearningLogStore(clock driven.Clock) *EntityStore[domain.LearningLog, domain.LearningLogPatch] {
	return newEntityStore(clock, descriptor[domain.LearningLog, domain.LearningLogPatch]{
		id:         (*domain.LearningLog).EntityID,
		owner:      (*domain.LearningLog).Owner,
		meta:       (*domain.LearningLog).Meta,
		remoteTime: (*domain.LearningLog).RemoteUpdatedAt,
		touch:      (*domain.LearningLog).Touch,
		apply:      (*domain.LearningLog).Apply,
	})
}

// NewUserSettingsStore creates an in-memory settings repository.
func NewUserSettingsStore(clock driven.Clock) *EntityStore[domain.UserSettings, domain.UserSettingsPatch] {
	return newEntityStore(clock, descriptor[domain.UserSettings, domain.UserSettingsPatch]{
		id:         (*domain.UserSettings).EntityID,
		owner:      (*domain.UserSettings).Owner,
		meta:       (*domain.UserSettings).Meta,
		remoteTime: (*domain.UserSettings).RemoteUpdatedAt,
		touch:      (*domain.UserSettings).Touch,
		apply:      (*domain.UserSettings).Apply,
		conflicts: func(a, b *domain.UserSettings) bool {
			return a.UserID == b.UserID
		},
	})
}

func sortCardsByDue(cards []domain.Card) {
	sort.Slice(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if !a.NextReviewAt.Equal(*b.NextReviewAt) {
			return a.NextReviewAt.Before(*b.NextReviewAt)
		}
		return a.ID < b.ID
	})
}
