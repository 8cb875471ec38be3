package services

import (
	"time"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
	"github.com/studykit-labs/studykit-cli/internal/core/ports/driven"
)

// LearningLogService handles learning log operations. Entries record a
// single answer and carry their own answered timestamp instead of the
// created/updated pair.
type LearningLogService struct {
	*Entity[domain.LearningLog, domain.LearningLogPatch]
}

// NewLearningLogService creates a learning log service backed by the
// given store.
func NewLearningLogService(store driven.LearningLogStore, clock driven.Clock, owner string) *LearningLogService {
	return &LearningLogService{newEntity[domain.LearningLog, domain.LearningLogPatch](store, clock, owner, hooks[domain.LearningLog]{
		id:    func(l *domain.LearningLog) string { return l.ID },
		setID: func(l *domain.LearningLog, id string) { l.ID = id },
		stamp: func(l *domain.LearningLog, t time.Time) {
			if l.AnsweredAt.IsZero() {
				l.AnsweredAt = t
			}
			if l.AttemptCount == 0 {
				l.AttemptCount = 1
			}
		},
		meta:     func(l *domain.LearningLog) *domain.SyncMeta { return l.Meta() },
		owner:    func(l *domain.LearningLog) string { return l.UserID },
		setOwner: func(l *domain.LearningLog, id string) { l.UserID = id },
	})}
}
