// Command studykit is the StudyKit command-line interface.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/studykit-labs/studykit-cli/internal/adapters/driven/config/file"
	"github.com/studykit-labs/studykit-cli/internal/adapters/driven/storage/sqlite"
	"github.com/studykit-labs/studykit-cli/internal/adapters/driving/cli"
	"github.com/studykit-labs/studykit-cli/internal/core/services"
	"github.com/studykit-labs/studykit-cli/internal/logger"
)

// wallClock is the production clock.
type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

func main() {
	config, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		os.Exit(1)
	}

	if config.GetBool("verbose") {
		logger.SetVerbose(true)
	}

	cli.SetInitializer(func(dataDir string) (cli.Services, error) {
		if dataDir == "" {
			dataDir = config.GetString("data_dir")
		}

		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return cli.Services{}, fmt.Errorf("opening store: %w", err)
		}
		logger.Debug("store opened at %s", store.Path())

		clock := wallClock{}
		owner := config.GetString("default_owner")

		return cli.Services{
			Notes:      services.NewNoteService(store.Notes(), clock, owner),
			Pages:      services.NewPageService(store.Pages(), clock, owner),
			Decks:      services.NewDeckService(store.Decks(), clock, owner),
			Cards:      services.NewCardService(store.Cards(), clock, owner),
			Goals:      services.NewStudyGoalService(store.StudyGoals(), clock, owner),
			Milestones: services.NewMilestoneService(store.Milestones(), clock),
			Logs:       services.NewLearningLogService(store.LearningLogs(), clock, owner),
			Settings:   services.NewUserSettingsService(store.UserSettings(), clock, owner),
		}, nil
	})

	cli.Execute()
}
