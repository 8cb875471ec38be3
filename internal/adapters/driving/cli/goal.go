package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage study goals and milestones",
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List study goals",
	RunE:  runGoalList,
}

var goalGetCmd = &cobra.Command{
	Use:   "get [goal-id]",
	Short: "Show one goal and its milestones",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalGet,
}

var goalCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a study goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalCreate,
}

var goalUpdateCmd = &cobra.Command{
	Use:   "update [goal-id]",
	Short: "Edit a study goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalUpdate,
}

var goalDeleteCmd = &cobra.Command{
	Use:   "delete [goal-id]",
	Short: "Delete a study goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalDelete,
}

var goalPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List goals with unsynced local changes",
	RunE:  runGoalPending,
}

var goalMarkSyncedCmd = &cobra.Command{
	Use:   "mark-synced [goal-id] [server-time]",
	Short: "Acknowledge a completed sync for a goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalMarkSynced,
}

var milestoneAddCmd = &cobra.Command{
	Use:   "milestone-add [goal-id] [title]",
	Short: "Add a milestone to a goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runMilestoneAdd,
}

var milestoneDoneCmd = &cobra.Command{
	Use:   "milestone-done [milestone-id]",
	Short: "Mark a milestone completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runMilestoneDone,
}

var milestoneDeleteCmd = &cobra.Command{
	Use:   "milestone-delete [milestone-id]",
	Short: "Delete a milestone",
	Args:  cobra.ExactArgs(1),
	RunE:  runMilestoneDelete,
}

var (
	goalTitle       string
	goalDescription string
	goalDeadline    string
	goalProgress    int
	goalStatus      string
	milestoneDue    string
)

func init() {
	goalCreateCmd.Flags().StringVar(&goalDescription, "description", "", "Free-text summary")
	goalCreateCmd.Flags().StringVar(&goalDeadline, "deadline", "", "Target completion date")

	goalUpdateCmd.Flags().StringVar(&goalTitle, "title", "", "New title")
	goalUpdateCmd.Flags().StringVar(&goalDescription, "description", "", "New description")
	goalUpdateCmd.Flags().StringVar(&goalDeadline, "deadline", "", "New deadline")
	goalUpdateCmd.Flags().IntVar(&goalProgress, "progress", 0, "Progress percentage (0-100)")
	goalUpdateCmd.Flags().StringVar(&goalStatus, "status", "", "Status: not_started, in_progress or completed")

	milestoneAddCmd.Flags().StringVar(&milestoneDue, "due", "", "Target date")

	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalGetCmd)
	goalCmd.AddCommand(goalCreateCmd)
	goalCmd.AddCommand(goalUpdateCmd)
	goalCmd.AddCommand(goalDeleteCmd)
	goalCmd.AddCommand(goalPendingCmd)
	goalCmd.AddCommand(goalMarkSyncedCmd)
	goalCmd.AddCommand(milestoneAddCmd)
	goalCmd.AddCommand(milestoneDoneCmd)
	goalCmd.AddCommand(milestoneDeleteCmd)
	rootCmd.AddCommand(goalCmd)
}

func runGoalList(cmd *cobra.Command, _ []string) error {
	if goalService == nil {
		return errors.New("goal service not configured")
	}

	goals, err := goalService.List(context.Background(), flagOwner)
	if err != nil {
		return fmt.Errorf("failed to list goals: %w", err)
	}

	if len(goals) == 0 {
		cmd.Println("No study goals found.")
		return nil
	}
	for i := range goals {
		cmd.Printf("%s  [%s]  %3d%%  %s\n",
			goals[i].ID, goals[i].Status, goals[i].ProgressRate, goals[i].Title)
	}
	cmd.Printf("\nTotal: %d goals\n", len(goals))
	return nil
}

func runGoalGet(cmd *cobra.Command, args []string) error {
	if goalService == nil || milestoneService == nil {
		return errors.New("goal service not configured")
	}

	goal, err := goalService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get goal: %w", err)
	}
	if goal == nil {
		cmd.Printf("Goal not found: %s\n", args[0])
		return nil
	}

	cmd.Printf("ID:       %s\n", goal.ID)
	cmd.Printf("Title:    %s\n", goal.Title)
	if goal.Description != nil {
		cmd.Printf("Description: %s\n", *goal.Description)
	}
	cmd.Printf("Status:   %s (%d%%)\n", goal.Status, goal.ProgressRate)
	cmd.Printf("Deadline: %s\n", fmtOptTime(goal.Deadline))
	cmd.Printf("Done at:  %s\n", fmtOptTime(goal.CompletedAt))
	printSyncMeta(cmd, &goal.SyncMeta)

	milestones, err := milestoneService.List(context.Background(), goal.ID)
	if err != nil {
		return fmt.Errorf("failed to list milestones: %w", err)
	}
	if len(milestones) > 0 {
		cmd.Println("\nMilestones:")
		for i := range milestones {
			mark := " "
			if milestones[i].IsCompleted {
				mark = "x"
			}
			cmd.Printf("  [%s] %s  %s (due %s)\n",
				mark, milestones[i].ID, milestones[i].Title, fmtOptTime(milestones[i].DueDate))
		}
	}
	return nil
}

func runGoalCreate(cmd *cobra.Command, args []string) error {
	if goalService == nil {
		return errors.New("goal service not configured")
	}

	goal := domain.StudyGoal{
		UserID: flagOwner,
		Title:  args[0],
		Status: domain.GoalNotStarted,
	}
	if cmd.Flags().Changed("description") {
		goal.Description = &goalDescription
	}
	if goalDeadline != "" {
		t, err := parseTimeArg(goalDeadline)
		if err != nil {
			return err
		}
		goal.Deadline = &t
	}

	created, err := goalService.Create(context.Background(), goal)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	cmd.Printf("Created goal %s\n", created.ID)
	return nil
}

func runGoalUpdate(cmd *cobra.Command, args []string) error {
	if goalService == nil {
		return errors.New("goal service not configured")
	}

	var patch domain.StudyGoalPatch
	if cmd.Flags().Changed("title") {
		patch.Title = &goalTitle
	}
	if cmd.Flags().Changed("description") {
		patch.Description = &goalDescription
	}
	if cmd.Flags().Changed("deadline") {
		t, err := parseTimeArg(goalDeadline)
		if err != nil {
			return err
		}
		patch.Deadline = &t
	}
	if cmd.Flags().Changed("progress") {
		patch.ProgressRate = &goalProgress
	}
	if cmd.Flags().Changed("status") {
		s := domain.GoalStatus(goalStatus)
		if !s.IsValid() {
			return fmt.Errorf("invalid status %q", goalStatus)
		}
		patch.Status = &s
	}

	goal, err := goalService.Update(context.Background(), args[0], patch)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if goal == nil {
		cmd.Printf("Goal not found: %s\n", args[0])
		return nil
	}

	cmd.Printf("Updated goal %s\n", goal.ID)
	return nil
}

func runGoalDelete(cmd *cobra.Command, args []string) error {
	if goalService == nil {
		return errors.New("goal service not configured")
	}

	existed, err := goalService.Delete(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if !existed {
		cmd.Printf("Goal not found: %s\n", args[0])
		return nil
	}

	cmd.Printf("Deleted goal %s (pending remote propagation)\n", args[0])
	return nil
}

func runGoalPending(cmd *cobra.Command, _ []string) error {
	if goalService == nil {
		return errors.New("goal service not configured")
	}

	goals, err := goalService.PendingSync(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list pending goals: %w", err)
	}

	if len(goals) == 0 {
		cmd.Println("Nothing pending.")
		return nil
	}
	for i := range goals {
		cmd.Printf("%s  [%s]  %s\n", goals[i].ID, goals[i].SyncStatus, goals[i].Title)
	}
	return nil
}

func runGoalMarkSynced(cmd *cobra.Command, args []string) error {
	if goalService == nil {
		return errors.New("goal service not configured")
	}

	serverTime, err := parseTimeArg(args[1])
	if err != nil {
		return err
	}

	if err := goalService.MarkSynced(context.Background(), args[0], serverTime); err != nil {
		return fmt.Errorf("failed to mark goal synced: %w", err)
	}

	cmd.Printf("Goal %s marked synced\n", args[0])
	return nil
}

func runMilestoneAdd(cmd *cobra.Command, args []string) error {
	if milestoneService == nil {
		return errors.New("milestone service not configured")
	}

	milestone := domain.Milestone{
		GoalID: args[0],
		Title:  args[1],
	}
	if milestoneDue != "" {
		t, err := parseTimeArg(milestoneDue)
		if err != nil {
			return err
		}
		milestone.DueDate = &t
	}

	created, err := milestoneService.Create(context.Background(), milestone)
	if err != nil {
		return fmt.Errorf("failed to add milestone: %w", err)
	}

	cmd.Printf("Added milestone %s to goal %s\n", created.ID, created.GoalID)
	return nil
}

func runMilestoneDone(cmd *cobra.Command, args []string) error {
	if milestoneService == nil {
		return errors.New("milestone service not configured")
	}

	done := true
	milestone, err := milestoneService.Update(context.Background(), args[0],
		domain.MilestonePatch{IsCompleted: &done})
	if err != nil {
		return fmt.Errorf("failed to complete milestone: %w", err)
	}
	if milestone == nil {
		cmd.Printf("Milestone not found: %s\n", args[0])
		return nil
	}

	cmd.Printf("Milestone %s completed\n", milestone.ID)
	return nil
}

func runMilestoneDelete(cmd *cobra.Command, args []string) error {
	if milestoneService == nil {
		return errors.New("milestone service not configured")
	}

	existed, err := milestoneService.Delete(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}
	if !existed {
		cmd.Printf("Milestone not found: %s\n", args[0])
		return nil
	}

	cmd.Printf("Deleted milestone %s (pending remote propagation)\n", args[0])
	return nil
}
