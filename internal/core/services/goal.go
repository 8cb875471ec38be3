package services

import (
	"time"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
	"github.com/studykit-labs/studykit-cli/internal/core/ports/driven"
)

// StudyGoalService handles study goal operations.
type StudyGoalService struct {
	*Entity[domain.StudyGoal, domain.StudyGoalPatch]
}

// NewStudyGoalService creates a study goal service backed by the given
// store.
func NewStudyGoalService(store driven.StudyGoalStore, clock driven.Clock, owner string) *StudyGoalService {
	return &StudyGoalService{newEntity[domain.StudyGoal, domain.StudyGoalPatch](store, clock, owner, hooks[domain.StudyGoal]{
		id:    func(g *domain.StudyGoal) string { return g.ID },
		setID: func(g *domain.StudyGoal, id string) { g.ID = id },
		stamp: func(g *domain.StudyGoal, t time.Time) {
			if g.CreatedAt.IsZero() {
				g.CreatedAt = t
			}
			if g.UpdatedAt.IsZero() {
				g.UpdatedAt = t
			}
		},
		meta:     func(g *domain.StudyGoal) *domain.SyncMeta { return g.Meta() },
		owner:    func(g *domain.StudyGoal) string { return g.UserID },
		setOwner: func(g *domain.StudyGoal, id string) { g.UserID = id },
	})}
}

// MilestoneService handles milestone operations. Milestones list under
// their parent goal rather than a user account.
type MilestoneService struct {
	*Entity[domain.Milestone, domain.MilestonePatch]
}

// NewMilestoneService creates a milestone service backed by the given
// store.
func NewMilestoneService(store driven.MilestoneStore, clock driven.Clock) *MilestoneService {
	return &MilestoneService{newEntity[domain.Milestone, domain.MilestonePatch](store, clock, "", hooks[domain.Milestone]{
		id:    func(m *domain.Milestone) string { return m.ID },
		setID: func(m *domain.Milestone, id string) { m.ID = id },
		stamp: func(m *domain.Milestone, t time.Time) {
			if m.CreatedAt.IsZero() {
				m.CreatedAt = t
			}
			if m.UpdatedAt.IsZero() {
				m.UpdatedAt = t
			}
		},
		meta: func(m *domain.Milestone) *domain.SyncMeta { return m.Meta() },
	})}
}
