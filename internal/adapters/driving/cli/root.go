// Package cli implements the studykit command-line interface with
// cobra. Commands talk to the driving ports only; the composition root
// in cmd/studykit injects the concrete services before Execute runs.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/studykit-labs/studykit-cli/internal/core/ports/driving"
	"github.com/studykit-labs/studykit-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services wired in by the composition root.
var (
	noteService      driving.NoteService
	pageService      driving.PageService
	deckService      driving.DeckService
	cardService      driving.CardService
	goalService      driving.StudyGoalService
	milestoneService driving.MilestoneService
	logService       driving.LearningLogService
	settingsService  driving.UserSettingsService
)

// Services bundles everything the CLI needs injected.
type Services struct {
	Notes      driving.NoteService
	Pages      driving.PageService
	Decks      driving.DeckService
	Cards      driving.CardService
	Goals      driving.StudyGoalService
	Milestones driving.MilestoneService
	Logs       driving.LearningLogService
	Settings   driving.UserSettingsService
}

// SetServices injects the service implementations the commands call.
func SetServices(s Services) {
	noteService = s.Notes
	pageService = s.Pages
	deckService = s.Decks
	cardService = s.Cards
	goalService = s.Goals
	milestoneService = s.Milestones
	logService = s.Logs
	settingsService = s.Settings
}

// ServiceInitializer builds the services once persistent flags are
// parsed, so --data-dir can influence where the store opens.
type ServiceInitializer func(dataDir string) (Services, error)

var initServices ServiceInitializer

// SetInitializer registers the deferred service constructor. The root
// command runs it before any subcommand executes, unless services were
// already injected directly with SetServices.
func SetInitializer(fn ServiceInitializer) {
	initServices = fn
}

// Persistent flag values.
var (
	flagVerbose bool
	flagDataDir string
	flagOwner   string
)

var rootCmd = &cobra.Command{
	Use:   "studykit",
	Short: "Offline-first study data store",
	Long: `StudyKit keeps your notes, flashcard decks, study goals and review
history in a local store and tracks which records still need to be
pushed to the remote account.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		if noteService == nil && initServices != nil {
			services, err := initServices(flagDataDir)
			if err != nil {
				return err
			}
			SetServices(services)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Override the data directory")
	rootCmd.PersistentFlags().StringVar(&flagOwner, "owner", "", "Owner account id (defaults to the configured default_owner)")
}

// DataDir returns the --data-dir override, or empty for the default.
func DataDir() string {
	return flagDataDir
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// fmtTime renders a timestamp for display.
func fmtTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

// fmtOptTime renders an optional timestamp for display.
func fmtOptTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return fmtTime(*t)
}

// parseTimeArg parses a user-supplied timestamp. Accepts RFC 3339 and
// a plain date.
func parseTimeArg(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use RFC 3339 or YYYY-MM-DD", s)
	}
	return t, nil
}
