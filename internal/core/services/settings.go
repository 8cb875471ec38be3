package services

import (
	"time"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
	"github.com/studykit-labs/studykit-cli/internal/core/ports/driven"
)

// UserSettingsService handles user settings operations. The store
// enforces at most one settings row per user, so creating a second row
// for the same user fails with an already-exists error.
type UserSettingsService struct {
	*Entity[domain.UserSettings, domain.UserSettingsPatch]
}

// NewUserSettingsService creates a settings service backed by the given
// store.
func NewUserSettingsService(store driven.UserSettingsStore, clock driven.Clock, owner string) *UserSettingsService {
	return &UserSettingsService{newEntity[domain.UserSettings, domain.UserSettingsPatch](store, clock, owner, hooks[domain.UserSettings]{
		id:    func(u *domain.UserSettings) string { return u.ID },
		setID: func(u *domain.UserSettings, id string) { u.ID = id },
		stamp: func(u *domain.UserSettings, t time.Time) {
			if u.CreatedAt.IsZero() {
				u.CreatedAt = t
			}
			if u.UpdatedAt.IsZero() {
				u.UpdatedAt = t
			}
			if u.Theme == "" {
				u.Theme = domain.ThemeOcean
			}
			if u.Mode == "" {
				u.Mode = domain.ModeLight
			}
			if u.Locale == "" {
				u.Locale = "en"
			}
			if u.Timezone == "" {
				u.Timezone = "UTC"
			}
			if u.ItemsPerPage == 0 {
				u.ItemsPerPage = 20
			}
			if u.Notifications == nil {
				u.Notifications = map[string]bool{}
			}
		},
		meta:     func(u *domain.UserSettings) *domain.SyncMeta { return u.Meta() },
		owner:    func(u *domain.UserSettings) string { return u.UserID },
		setOwner: func(u *domain.UserSettings, id string) { u.UserID = id },
	})}
}
