package domain

import "time"

// Theme identifies a colour theme.
type Theme string

// Available themes.
const (
	ThemeOcean    Theme = "ocean"
	ThemeForest   Theme = "forest"
	ThemeSunset   Theme = "sunset"
	ThemeNightSky Theme = "night-sky"
	ThemeDesert   Theme = "desert"
)

// IsValid returns true if the theme is recognised.
func (t Theme) IsValid() bool {
	switch t {
	case ThemeOcean, ThemeForest, ThemeSunset, ThemeNightSky, ThemeDesert:
		return true
	default:
		return false
	}
}

// DisplayMode selects light or dark rendering.
type DisplayMode string

// Available display modes.
const (
	ModeLight DisplayMode = "light"
	ModeDark  DisplayMode = "dark"
)

// IsValid returns true if the display mode is recognised.
func (m DisplayMode) IsValid() bool {
	return m == ModeLight || m == ModeDark
}

// UserSettings holds one user's preferences. At most one row exists per
// user; the store enforces the uniqueness.
type UserSettings struct {
	// ID is the unique identifier for the settings row.
	ID string `validate:"required"`

	// UserID identifies the owning user account. Unique.
	UserID string `validate:"required"`

	// Theme is the selected colour theme.
	Theme Theme `validate:"oneof=ocean forest sunset night-sky desert"`

	// Mode selects light or dark rendering.
	Mode DisplayMode `validate:"oneof=light dark"`

	// Locale is the BCP 47 UI language tag.
	Locale string `validate:"required"`

	// Timezone is the IANA timezone name.
	Timezone string `validate:"required"`

	// Notifications maps notification kinds to enabled flags. Persisted
	// as a JSON object.
	Notifications map[string]bool

	// ItemsPerPage is the list page size.
	ItemsPerPage int `validate:"min=1"`

	// PlayHelpVideoAudio enables audio on help videos.
	PlayHelpVideoAudio bool

	// Integration toggles for external import/export services.
	CosenseSyncEnabled bool
	NotionSyncEnabled  bool
	GyazoSyncEnabled   bool
	QuizletSyncEnabled bool

	// CreatedAt is when the settings row was created.
	CreatedAt time.Time

	// UpdatedAt is when the settings were last changed.
	UpdatedAt time.Time

	SyncMeta
}

// EntityID returns the settings row's unique id.
func (s UserSettings) EntityID() string { return s.ID }

// Owner returns the owning account id.
func (s UserSettings) Owner() string { return s.UserID }

// UserSettingsPatch is a partial update. Nil fields are left unchanged.
type UserSettingsPatch struct {
	Theme              *Theme
	Mode               *DisplayMode
	Locale             *string
	Timezone           *string
	Notifications      map[string]bool
	ItemsPerPage       *int
	PlayHelpVideoAudio *bool
	CosenseSyncEnabled *bool
	NotionSyncEnabled  *bool
	GyazoSyncEnabled   *bool
	QuizletSyncEnabled *bool
}

// Apply overwrites the settings' fields with the patch's set values.
func (s *UserSettings) Apply(p UserSettingsPatch) {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.Mode != nil {
		s.Mode = *p.Mode
	}
	if p.Locale != nil {
		s.Locale = *p.Locale
	}
	if p.Timezone != nil {
		s.Timezone = *p.Timezone
	}
	if p.Notifications != nil {
		s.Notifications = p.Notifications
	}
	if p.ItemsPerPage != nil {
		s.ItemsPerPage = *p.ItemsPerPage
	}
	if p.PlayHelpVideoAudio != nil {
		s.PlayHelpVideoAudio = *p.PlayHelpVideoAudio
	}
	if p.CosenseSyncEnabled != nil {
		s.CosenseSyncEnabled = *p.CosenseSyncEnabled
	}
	if p.NotionSyncEnabled != nil {
		s.NotionSyncEnabled = *p.NotionSyncEnabled
	}
	if p.GyazoSyncEnabled != nil {
		s.GyazoSyncEnabled = *p.GyazoSyncEnabled
	}
	if p.QuizletSyncEnabled != nil {
		s.QuizletSyncEnabled = *p.QuizletSyncEnabled
	}
}

// Touch records a content edit at t.
func (s *UserSettings) Touch(t time.Time) { s.UpdatedAt = t }

// RemoteUpdatedAt returns the timestamp the remote authority versions
// this record by.
func (s UserSettings) RemoteUpdatedAt() time.Time { return s.UpdatedAt }
