package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage flashcards",
}

var cardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cards",
	RunE:  runCardList,
}

var cardGetCmd = &cobra.Command{
	Use:   "get [card-id]",
	Short: "Show one card",
	Args:  cobra.ExactArgs(1),
	RunE:  runCardGet,
}

var cardCreateCmd = &cobra.Command{
	Use:   "create [deck-id] [front] [back]",
	Short: "Create a card in a deck",
	Args:  cobra.ExactArgs(3),
	RunE:  runCardCreate,
}

var cardUpdateCmd = &cobra.Command{
	Use:   "update [card-id]",
	Short: "Edit a card",
	Args:  cobra.ExactArgs(1),
	RunE:  runCardUpdate,
}

var cardDeleteCmd = &cobra.Command{
	Use:   "delete [card-id]",
	Short: "Delete a card",
	Args:  cobra.ExactArgs(1),
	RunE:  runCardDelete,
}

var cardDueCmd = &cobra.Command{
	Use:   "due",
	Short: "List cards due for review",
	RunE:  runCardDue,
}

var cardPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List cards with unsynced local changes",
	RunE:  runCardPending,
}

var cardMarkSyncedCmd = &cobra.Command{
	Use:   "mark-synced [card-id] [server-time]",
	Short: "Acknowledge a completed sync for a card",
	Args:  cobra.ExactArgs(2),
	RunE:  runCardMarkSynced,
}

var (
	cardFront string
	cardBack  string
	cardAsOf  string
)

func init() {
	cardUpdateCmd.Flags().StringVar(&cardFront, "front", "", "New front content")
	cardUpdateCmd.Flags().StringVar(&cardBack, "back", "", "New back content")

	cardDueCmd.Flags().StringVar(&cardAsOf, "as-of", "", "Review time (defaults to now)")

	cardCmd.AddCommand(cardListCmd)
	cardCmd.AddCommand(cardGetCmd)
	cardCmd.AddCommand(cardCreateCmd)
	cardCmd.AddCommand(cardUpdateCmd)
	cardCmd.AddCommand(cardDeleteCmd)
	cardCmd.AddCommand(cardDueCmd)
	cardCmd.AddCommand(cardPendingCmd)
	cardCmd.AddCommand(cardMarkSyncedCmd)
	rootCmd.AddCommand(cardCmd)
}

func runCardList(cmd *cobra.Command, _ []string) error {
	if cardService == nil {
		return errors.New("card service not configured")
	}

	cards, err := cardService.List(context.Background(), flagOwner)
	if err != nil {
		return fmt.Errorf("failed to list cards: %w", err)
	}

	if len(cards) == 0 {
		cmd.Println("No cards found.")
		return nil
	}
	for i := range cards {
		printCardLine(cmd, &cards[i])
	}
	cmd.Printf("\nTotal: %d cards\n", len(cards))
	return nil
}

func runCardGet(cmd *cobra.Command, args []string) error {
	if cardService == nil {
		return errors.New("card service not configured")
	}

	card, err := cardService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get card: %w", err)
	}
	if card == nil {
		cmd.Printf("Card not found: %s\n", args[0])
		return nil
	}

	cmd.Printf("ID:       %s\n", card.ID)
	cmd.Printf("Deck:     %s\n", card.DeckID)
	cmd.Printf("Front:    %s\n", card.FrontContent)
	cmd.Printf("Back:     %s\n", card.BackContent)
	cmd.Printf("Reviews:  %d (interval %dd, ease %.2f)\n",
		card.RepetitionCount, card.ReviewInterval, card.EaseFactor)
	cmd.Printf("Next due: %s\n", fmtOptTime(card.NextReviewAt))
	cmd.Printf("Last:     %s\n", fmtOptTime(card.LastReviewedAt))
	printSyncMeta(cmd, &card.SyncMeta)
	return nil
}

func runCardCreate(cmd *cobra.Command, args []string) error {
	if cardService == nil {
		return errors.New("card service not configured")
	}

	card := domain.Card{
		DeckID:       args[0],
		UserID:       flagOwner,
		FrontContent: args[1],
		BackContent:  args[2],
		EaseFactor:   2.5,
		Difficulty:   1.0,
	}

	created, err := cardService.Create(context.Background(), card)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}

	cmd.Printf("Created card %s in deck %s\n", created.ID, created.DeckID)
	return nil
}

func runCardUpdate(cmd *cobra.Command, args []string) error {
	if cardService == nil {
		return errors.New("card service not configured")
	}

	var patch domain.CardPatch
	if cmd.Flags().Changed("front") {
		patch.FrontContent = &cardFront
	}
	if cmd.Flags().Changed("back") {
		patch.BackContent = &cardBack
	}

	card, err := cardService.Update(context.Background(), args[0], patch)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	if card == nil {
		cmd.Printf("Card not found: %s\n", args[0])
		return nil
	}

	cmd.Printf("Updated card %s\n", card.ID)
	return nil
}

func runCardDelete(cmd *cobra.Command, args []string) error {
	if cardService == nil {
		return errors.New("card service not configured")
	}

	existed, err := cardService.Delete(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	if !existed {
		cmd.Printf("Card not found: %s\n", args[0])
		return nil
	}

	cmd.Printf("Deleted card %s (pending remote propagation)\n", args[0])
	return nil
}

func runCardDue(cmd *cobra.Command, _ []string) error {
	if cardService == nil {
		return errors.New("card service not configured")
	}

	asOf := time.Now()
	if cardAsOf != "" {
		t, err := parseTimeArg(cardAsOf)
		if err != nil {
			return err
		}
		asOf = t
	}

	cards, err := cardService.Due(context.Background(), flagOwner, asOf)
	if err != nil {
		return fmt.Errorf("failed to list due cards: %w", err)
	}

	if len(cards) == 0 {
		cmd.Println("No cards due.")
		return nil
	}
	for i := range cards {
		cmd.Printf("%s  due %s  %s\n",
			cards[i].ID, fmtOptTime(cards[i].NextReviewAt), cards[i].FrontContent)
	}
	cmd.Printf("\n%d cards due\n", len(cards))
	return nil
}

func runCardPending(cmd *cobra.Command, _ []string) error {
	if cardService == nil {
		return errors.New("card service not configured")
	}

	cards, err := cardService.PendingSync(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list pending cards: %w", err)
	}

	if len(cards) == 0 {
		cmd.Println("Nothing pending.")
		return nil
	}
	for i := range cards {
		printCardLine(cmd, &cards[i])
	}
	return nil
}

func runCardMarkSynced(cmd *cobra.Command, args []string) error {
	if cardService == nil {
		return errors.New("card service not configured")
	}

	serverTime, err := parseTimeArg(args[1])
	if err != nil {
		return err
	}

	if err := cardService.MarkSynced(context.Background(), args[0], serverTime); err != nil {
		return fmt.Errorf("failed to mark card synced: %w", err)
	}

	cmd.Printf("Card %s marked synced\n", args[0])
	return nil
}

func printCardLine(cmd *cobra.Command, c *domain.Card) {
	cmd.Printf("%s  [%s]  %s\n", c.ID, c.SyncStatus, c.FrontContent)
}
