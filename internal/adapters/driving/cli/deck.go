package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage flashcard decks",
}

var deckListCmd = &cobra.Command{
	Use:   "list",
	Short: "List decks",
	RunE:  runDeckList,
}

var deckGetCmd = &cobra.Command{
	Use:   "get [deck-id]",
	Short: "Show one deck",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckGet,
}

var deckCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a deck",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckCreate,
}

var deckUpdateCmd = &cobra.Command{
	Use:   "update [deck-id]",
	Short: "Edit a deck",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckUpdate,
}

var deckDeleteCmd = &cobra.Command{
	Use:   "delete [deck-id]",
	Short: "Delete a deck",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckDelete,
}

var deckPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List decks with unsynced local changes",
	RunE:  runDeckPending,
}

var deckMarkSyncedCmd = &cobra.Command{
	Use:   "mark-synced [deck-id] [server-time]",
	Short: "Acknowledge a completed sync for a deck",
	Args:  cobra.ExactArgs(2),
	RunE:  runDeckMarkSynced,
}

var deckHardDeleteCmd = &cobra.Command{
	Use:   "hard-delete [deck-id]",
	Short: "Physically remove a deck and its cards",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckHardDelete,
}

var (
	deckTitle       string
	deckDescription string
	deckPublic      bool
)

func init() {
	deckCreateCmd.Flags().StringVar(&deckDescription, "description", "", "Free-text summary")
	deckCreateCmd.Flags().BoolVar(&deckPublic, "public", false, "Make the deck publicly readable once synced")

	deckUpdateCmd.Flags().StringVar(&deckTitle, "title", "", "New title")
	deckUpdateCmd.Flags().StringVar(&deckDescription, "description", "", "New description")
	deckUpdateCmd.Flags().BoolVar(&deckPublic, "public", false, "Public visibility")

	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckGetCmd)
	deckCmd.AddCommand(deckCreateCmd)
	deckCmd.AddCommand(deckUpdateCmd)
	deckCmd.AddCommand(deckDeleteCmd)
	deckCmd.AddCommand(deckPendingCmd)
	deckCmd.AddCommand(deckMarkSyncedCmd)
	deckCmd.AddCommand(deckHardDeleteCmd)
	rootCmd.AddCommand(deckCmd)
}

func runDeckList(cmd *cobra.Command, _ []string) error {
	if deckService == nil {
		return errors.New("deck service not configured")
	}

	decks, err := deckService.List(context.Background(), flagOwner)
	if err != nil {
		return fmt.Errorf("failed to list decks: %w", err)
	}

	if len(decks) == 0 {
		cmd.Println("No decks found.")
		return nil
	}
	for i := range decks {
		cmd.Printf("%s  [%s]  %s\n", decks[i].ID, decks[i].SyncStatus, decks[i].Title)
	}
	cmd.Printf("\nTotal: %d decks\n", len(decks))
	return nil
}

func runDeckGet(cmd *cobra.Command, args []string) error {
	if deckService == nil {
		return errors.New("deck service not configured")
	}

	deck, err := deckService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get deck: %w", err)
	}
	if deck == nil {
		cmd.Printf("Deck not found: %s\n", args[0])
		return nil
	}

	cmd.Printf("ID:      %s\n", deck.ID)
	cmd.Printf("Owner:   %s\n", deck.UserID)
	cmd.Printf("Title:   %s\n", deck.Title)
	if deck.Description != nil {
		cmd.Printf("Description: %s\n", *deck.Description)
	}
	cmd.Printf("Public:  %t\n", deck.IsPublic)
	cmd.Printf("Created: %s\n", fmtTime(deck.CreatedAt))
	cmd.Printf("Updated: %s\n", fmtTime(deck.UpdatedAt))
	printSyncMeta(cmd, &deck.SyncMeta)
	return nil
}

func runDeckCreate(cmd *cobra.Command, args []string) error {
	if deckService == nil {
		return errors.New("deck service not configured")
	}

	deck := domain.Deck{
		UserID:   flagOwner,
		Title:    args[0],
		IsPublic: deckPublic,
	}
	if cmd.Flags().Changed("description") {
		deck.Description = &deckDescription
	}

	created, err := deckService.Create(context.Background(), deck)
	if err != nil {
		return fmt.Errorf("failed to create deck: %w", err)
	}

	cmd.Printf("Created deck %s\n", created.ID)
	return nil
}

func runDeckUpdate(cmd *cobra.Command, args []string) error {
	if deckService == nil {
		return errors.New("deck service not configured")
	}

	var patch domain.DeckPatch
	if cmd.Flags().Changed("title") {
		patch.Title = &deckTitle
	}
	if cmd.Flags().Changed("description") {
		patch.Description = &deckDescription
	}
	if cmd.Flags().Changed("public") {
		patch.IsPublic = &deckPublic
	}

	deck, err := deckService.Update(context.Background(), args[0], patch)
	if err != nil {
		return fmt.Errorf("failed to update deck: %w", err)
	}
	if deck == nil {
		cmd.Printf("Deck not found: %s\n", args[0])
		return nil
	}

	cmd.Printf("Updated deck %s\n", deck.ID)
	return nil
}

func runDeckDelete(cmd *cobra.Command, args []string) error {
	if deckService == nil {
		return errors.New("deck service not configured")
	}

	existed, err := deckService.Delete(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	if !existed {
		cmd.Printf("Deck not found: %s\n", args[0])
		return nil
	}

	cmd.Printf("Deleted deck %s (pending remote propagation)\n", args[0])
	return nil
}

func runDeckPending(cmd *cobra.Command, _ []string) error {
	if deckService == nil {
		return errors.New("deck service not configured")
	}

	decks, err := deckService.PendingSync(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list pending decks: %w", err)
	}

	if len(decks) == 0 {
		cmd.Println("Nothing pending.")
		return nil
	}
	for i := range decks {
		cmd.Printf("%s  [%s]  %s\n", decks[i].ID, decks[i].SyncStatus, decks[i].Title)
	}
	return nil
}

func runDeckMarkSynced(cmd *cobra.Command, args []string) error {
	if deckService == nil {
		return errors.New("deck service not configured")
	}

	serverTime, err := parseTimeArg(args[1])
	if err != nil {
		return err
	}

	if err := deckService.MarkSynced(context.Background(), args[0], serverTime); err != nil {
		return fmt.Errorf("failed to mark deck synced: %w", err)
	}

	cmd.Printf("Deck %s marked synced\n", args[0])
	return nil
}

func runDeckHardDelete(cmd *cobra.Command, args []string) error {
	if deckService == nil {
		return errors.New("deck service not configured")
	}

	if err := deckService.HardDelete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to remove deck: %w", err)
	}

	cmd.Printf("Deck %s removed\n", args[0])
	return nil
}
