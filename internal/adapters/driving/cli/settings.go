package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage user settings",
	RunE:  runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	RunE:  runSettingsShow,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the settings record with defaults",
	RunE:  runSettingsInit,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings values",
	RunE:  runSettingsSet,
}

var (
	settingsTheme    string
	settingsMode     string
	settingsLocale   string
	settingsTimezone string
	settingsPerPage  int
	settingsNotify   []string
)

func init() {
	settingsSetCmd.Flags().StringVar(&settingsTheme, "theme", "", "Colour theme: ocean, forest, sunset, night-sky or desert")
	settingsSetCmd.Flags().StringVar(&settingsMode, "mode", "", "Display mode: light or dark")
	settingsSetCmd.Flags().StringVar(&settingsLocale, "locale", "", "UI language tag")
	settingsSetCmd.Flags().StringVar(&settingsTimezone, "timezone", "", "IANA timezone name")
	settingsSetCmd.Flags().IntVar(&settingsPerPage, "items-per-page", 0, "List page size")
	settingsSetCmd.Flags().StringSliceVar(&settingsNotify, "notify", nil, "Notification toggles as kind=on|off")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsInitCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

// currentSettings finds the owner's settings row, if any.
func currentSettings(ctx context.Context) (*domain.UserSettings, error) {
	rows, err := settingsService.List(ctx, flagOwner)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := currentSettings(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if settings == nil {
		cmd.Println("No settings found. Run 'studykit settings init' first.")
		return nil
	}

	cmd.Printf("Theme:          %s (%s)\n", settings.Theme, settings.Mode)
	cmd.Printf("Locale:         %s\n", settings.Locale)
	cmd.Printf("Timezone:       %s\n", settings.Timezone)
	cmd.Printf("Items per page: %d\n", settings.ItemsPerPage)
	if len(settings.Notifications) > 0 {
		cmd.Println("Notifications:")
		for kind, enabled := range settings.Notifications {
			cmd.Printf("  %s: %t\n", kind, enabled)
		}
	}
	printSyncMeta(cmd, &settings.SyncMeta)
	return nil
}

func runSettingsInit(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	created, err := settingsService.Create(context.Background(), domain.UserSettings{
		UserID: flagOwner,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			cmd.Println("Settings already initialised.")
			return nil
		}
		return fmt.Errorf("failed to initialise settings: %w", err)
	}

	cmd.Printf("Settings initialised (%s)\n", created.ID)
	return nil
}

func runSettingsSet(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	ctx := context.Background()
	settings, err := currentSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if settings == nil {
		return errors.New("no settings found; run 'studykit settings init' first")
	}

	var patch domain.UserSettingsPatch
	if cmd.Flags().Changed("theme") {
		t := domain.Theme(settingsTheme)
		if !t.IsValid() {
			return fmt.Errorf("invalid theme %q", settingsTheme)
		}
		patch.Theme = &t
	}
	if cmd.Flags().Changed("mode") {
		m := domain.DisplayMode(settingsMode)
		if !m.IsValid() {
			return fmt.Errorf("invalid mode %q", settingsMode)
		}
		patch.Mode = &m
	}
	if cmd.Flags().Changed("locale") {
		patch.Locale = &settingsLocale
	}
	if cmd.Flags().Changed("timezone") {
		patch.Timezone = &settingsTimezone
	}
	if cmd.Flags().Changed("items-per-page") {
		patch.ItemsPerPage = &settingsPerPage
	}
	if len(settingsNotify) > 0 {
		notifications := make(map[string]bool, len(settings.Notifications)+len(settingsNotify))
		for k, v := range settings.Notifications {
			notifications[k] = v
		}
		for _, pair := range settingsNotify {
			kind, value, ok := strings.Cut(pair, "=")
			if !ok || (value != "on" && value != "off") {
				return fmt.Errorf("invalid notification toggle %q: use kind=on|off", pair)
			}
			notifications[kind] = value == "on"
		}
		patch.Notifications = notifications
	}

	updated, err := settingsService.Update(ctx, settings.ID, patch)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	if updated == nil {
		return errors.New("settings row disappeared during update")
	}

	cmd.Println("Settings updated.")
	return nil
}
