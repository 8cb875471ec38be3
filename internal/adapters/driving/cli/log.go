package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record and inspect learning history",
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List learning log entries",
	RunE:  runLogList,
}

var logRecordCmd = &cobra.Command{
	Use:   "record [card-id]",
	Short: "Record an answer to a card",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogRecord,
}

var logPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List log entries with unsynced local changes",
	RunE:  runLogPending,
}

var logMarkSyncedCmd = &cobra.Command{
	Use:   "mark-synced [log-id] [server-time]",
	Short: "Acknowledge a completed sync for a log entry",
	Args:  cobra.ExactArgs(2),
	RunE:  runLogMarkSynced,
}

var (
	logCorrect bool
	logMode    string
	logQuality int
	logAnswer  string
)

func init() {
	logRecordCmd.Flags().BoolVar(&logCorrect, "correct", false, "The answer was correct")
	logRecordCmd.Flags().StringVar(&logMode, "mode", "flashcard", "Practice mode: flashcard, quiz, typing, listening or reading")
	logRecordCmd.Flags().IntVar(&logQuality, "quality", 0, "Answer quality grade (0-5)")
	logRecordCmd.Flags().StringVar(&logAnswer, "answer", "", "The raw answer text")

	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logRecordCmd)
	logCmd.AddCommand(logPendingCmd)
	logCmd.AddCommand(logMarkSyncedCmd)
	rootCmd.AddCommand(logCmd)
}

func runLogList(cmd *cobra.Command, _ []string) error {
	if logService == nil {
		return errors.New("log service not configured")
	}

	logs, err := logService.List(context.Background(), flagOwner)
	if err != nil {
		return fmt.Errorf("failed to list log entries: %w", err)
	}

	if len(logs) == 0 {
		cmd.Println("No log entries found.")
		return nil
	}
	for i := range logs {
		result := "wrong"
		if logs[i].IsCorrect {
			result = "correct"
		}
		cmd.Printf("%s  %s  card %s  %s (%s, q%d)\n",
			logs[i].ID, fmtTime(logs[i].AnsweredAt), logs[i].CardID,
			result, logs[i].PracticeMode, logs[i].Quality)
	}
	cmd.Printf("\nTotal: %d entries\n", len(logs))
	return nil
}

func runLogRecord(cmd *cobra.Command, args []string) error {
	if logService == nil {
		return errors.New("log service not configured")
	}

	mode := domain.PracticeMode(logMode)
	if !mode.IsValid() {
		return fmt.Errorf("invalid practice mode %q", logMode)
	}

	entry := domain.LearningLog{
		UserID:       flagOwner,
		CardID:       args[0],
		IsCorrect:    logCorrect,
		PracticeMode: mode,
		Quality:      logQuality,
	}
	if cmd.Flags().Changed("answer") {
		entry.UserAnswer = &logAnswer
	}

	created, err := logService.Create(context.Background(), entry)
	if err != nil {
		return fmt.Errorf("failed to record answer: %w", err)
	}

	cmd.Printf("Recorded answer %s for card %s\n", created.ID, created.CardID)
	return nil
}

func runLogPending(cmd *cobra.Command, _ []string) error {
	if logService == nil {
		return errors.New("log service not configured")
	}

	logs, err := logService.PendingSync(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list pending log entries: %w", err)
	}

	if len(logs) == 0 {
		cmd.Println("Nothing pending.")
		return nil
	}
	for i := range logs {
		cmd.Printf("%s  [%s]  card %s\n", logs[i].ID, logs[i].SyncStatus, logs[i].CardID)
	}
	return nil
}

func runLogMarkSynced(cmd *cobra.Command, args []string) error {
	if logService == nil {
		return errors.New("log service not configured")
	}

	serverTime, err := parseTimeArg(args[1])
	if err != nil {
		return err
	}

	if err := logService.MarkSynced(context.Background(), args[0], serverTime); err != nil {
		return fmt.Errorf("failed to mark log entry synced: %w", err)
	}

	cmd.Printf("Log entry %s marked synced\n", args[0])
	return nil
}
