package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Manage pages",
}

var pageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pages",
	RunE:  runPageList,
}

var pageGetCmd = &cobra.Command{
	Use:   "get [page-id]",
	Short: "Show one page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageGet,
}

var pageCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageCreate,
}

var pageUpdateCmd = &cobra.Command{
	Use:   "update [page-id]",
	Short: "Edit a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageUpdate,
}

var pageDeleteCmd = &cobra.Command{
	Use:   "delete [page-id]",
	Short: "Delete a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageDelete,
}

var pagePendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List pages with unsynced local changes",
	RunE:  runPagePending,
}

var pageMarkSyncedCmd = &cobra.Command{
	Use:   "mark-synced [page-id] [server-time]",
	Short: "Acknowledge a completed sync for a page",
	Args:  cobra.ExactArgs(2),
	RunE:  runPageMarkSynced,
}

var (
	pageTitle  string
	pageNoteID string
	pagePublic bool
)

func init() {
	pageCreateCmd.Flags().StringVar(&pageNoteID, "note", "", "Attach the page to a note")
	pageCreateCmd.Flags().BoolVar(&pagePublic, "public", false, "Make the page publicly readable once synced")

	pageUpdateCmd.Flags().StringVar(&pageTitle, "title", "", "New title")
	pageUpdateCmd.Flags().StringVar(&pageNoteID, "note", "", "Move the page to a note")
	pageUpdateCmd.Flags().BoolVar(&pagePublic, "public", false, "Public visibility")

	pageCmd.AddCommand(pageListCmd)
	pageCmd.AddCommand(pageGetCmd)
	pageCmd.AddCommand(pageCreateCmd)
	pageCmd.AddCommand(pageUpdateCmd)
	pageCmd.AddCommand(pageDeleteCmd)
	pageCmd.AddCommand(pagePendingCmd)
	pageCmd.AddCommand(pageMarkSyncedCmd)
	rootCmd.AddCommand(pageCmd)
}

func runPageList(cmd *cobra.Command, _ []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	pages, err := pageService.List(context.Background(), flagOwner)
	if err != nil {
		return fmt.Errorf("failed to list pages: %w", err)
	}

	if len(pages) == 0 {
		cmd.Println("No pages found.")
		return nil
	}
	for i := range pages {
		cmd.Printf("%s  [%s]  %s\n", pages[i].ID, pages[i].SyncStatus, pages[i].Title)
	}
	cmd.Printf("\nTotal: %d pages\n", len(pages))
	return nil
}

func runPageGet(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	page, err := pageService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get page: %w", err)
	}
	if page == nil {
		cmd.Printf("Page not found: %s\n", args[0])
		return nil
	}

	cmd.Printf("ID:      %s\n", page.ID)
	cmd.Printf("Owner:   %s\n", page.UserID)
	cmd.Printf("Title:   %s\n", page.Title)
	if page.NoteID != nil {
		cmd.Printf("Note:    %s\n", *page.NoteID)
	}
	cmd.Printf("Public:  %t\n", page.IsPublic)
	cmd.Printf("Created: %s\n", fmtTime(page.CreatedAt))
	cmd.Printf("Updated: %s\n", fmtTime(page.UpdatedAt))
	printSyncMeta(cmd, &page.SyncMeta)
	return nil
}

func runPageCreate(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	page := domain.Page{
		UserID:   flagOwner,
		Title:    args[0],
		IsPublic: pagePublic,
	}
	if cmd.Flags().Changed("note") {
		page.NoteID = &pageNoteID
	}

	created, err := pageService.Create(context.Background(), page)
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}

	cmd.Printf("Created page %s\n", created.ID)
	return nil
}

func runPageUpdate(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	var patch domain.PagePatch
	if cmd.Flags().Changed("title") {
		patch.Title = &pageTitle
	}
	if cmd.Flags().Changed("note") {
		patch.NoteID = &pageNoteID
	}
	if cmd.Flags().Changed("public") {
		patch.IsPublic = &pagePublic
	}

	page, err := pageService.Update(context.Background(), args[0], patch)
	if err != nil {
		return fmt.Errorf("failed to update page: %w", err)
	}
	if page == nil {
		cmd.Printf("Page not found: %s\n", args[0])
		return nil
	}

	cmd.Printf("Updated page %s\n", page.ID)
	return nil
}

func runPageDelete(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	existed, err := pageService.Delete(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}
	if !existed {
		cmd.Printf("Page not found: %s\n", args[0])
		return nil
	}

	cmd.Printf("Deleted page %s (pending remote propagation)\n", args[0])
	return nil
}

func runPagePending(cmd *cobra.Command, _ []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	pages, err := pageService.PendingSync(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list pending pages: %w", err)
	}

	if len(pages) == 0 {
		cmd.Println("Nothing pending.")
		return nil
	}
	for i := range pages {
		cmd.Printf("%s  [%s]  %s\n", pages[i].ID, pages[i].SyncStatus, pages[i].Title)
	}
	return nil
}

func runPageMarkSynced(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	serverTime, err := parseTimeArg(args[1])
	if err != nil {
		return err
	}

	if err := pageService.MarkSynced(context.Background(), args[0], serverTime); err != nil {
		return fmt.Errorf("failed to mark page synced: %w", err)
	}

	cmd.Printf("Page %s marked synced\n", args[0])
	return nil
}
