package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studykit-labs/studykit-cli/internal/core/domain"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
	Long:  `Create, list, edit and delete notes, and inspect their sync state.`,
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	RunE:  runNoteList,
}

var noteGetCmd = &cobra.Command{
	Use:   "get [note-id]",
	Short: "Show one note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteGet,
}

var noteCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteCreate,
}

var noteUpdateCmd = &cobra.Command{
	Use:   "update [note-id]",
	Short: "Edit a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteUpdate,
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete [note-id]",
	Short: "Delete a note",
	Long:  `Marks the note deleted locally. The deletion is propagated on the next sync.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteDelete,
}

var notePendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List notes with unsynced local changes",
	RunE:  runNotePending,
}

var noteDeletedCmd = &cobra.Command{
	Use:   "deleted",
	Short: "List locally deleted notes awaiting propagation",
	RunE:  runNoteDeleted,
}

var noteMarkSyncedCmd = &cobra.Command{
	Use:   "mark-synced [note-id] [server-time]",
	Short: "Acknowledge a completed sync for a note",
	Args:  cobra.ExactArgs(2),
	RunE:  runNoteMarkSynced,
}

var noteHardDeleteCmd = &cobra.Command{
	Use:   "hard-delete [note-id]",
	Short: "Physically remove a note",
	Long:  `Removes the note row permanently. Only safe after the remote side has confirmed the deletion.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteHardDelete,
}

var noteOverwriteCmd = &cobra.Command{
	Use:   "overwrite [note-id] [server-time]",
	Short: "Replace a note with the remote copy",
	Long:  `Resolves a conflict by taking the remote side: the given field values become the local record, marked synced as of the server time.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runNoteOverwrite,
}

// Flags for note create/update.
var (
	noteSlug        string
	noteTitle       string
	noteDescription string
	noteVisibility  string
	noteTrash       bool
	noteRestore     bool
)

func init() {
	noteCreateCmd.Flags().StringVar(&noteSlug, "slug", "", "URL-safe name, unique per owner (defaults to the title)")
	noteCreateCmd.Flags().StringVar(&noteDescription, "description", "", "Free-text summary")
	noteCreateCmd.Flags().StringVar(&noteVisibility, "visibility", "private", "Visibility: public, unlisted, invite or private")

	noteUpdateCmd.Flags().StringVar(&noteTitle, "title", "", "New title")
	noteUpdateCmd.Flags().StringVar(&noteDescription, "description", "", "New description")
	noteUpdateCmd.Flags().StringVar(&noteVisibility, "visibility", "", "New visibility")
	noteUpdateCmd.Flags().BoolVar(&noteTrash, "trash", false, "Move the note to the trash")
	noteUpdateCmd.Flags().BoolVar(&noteRestore, "restore", false, "Restore the note from the trash")

	noteOverwriteCmd.Flags().StringVar(&noteSlug, "slug", "", "Remote slug")
	noteOverwriteCmd.Flags().StringVar(&noteTitle, "title", "", "Remote title")
	noteOverwriteCmd.Flags().StringVar(&noteDescription, "description", "", "Remote description")
	noteOverwriteCmd.Flags().StringVar(&noteVisibility, "visibility", "", "Remote visibility")

	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteGetCmd)
	noteCmd.AddCommand(noteCreateCmd)
	noteCmd.AddCommand(noteUpdateCmd)
	noteCmd.AddCommand(noteDeleteCmd)
	noteCmd.AddCommand(notePendingCmd)
	noteCmd.AddCommand(noteDeletedCmd)
	noteCmd.AddCommand(noteMarkSyncedCmd)
	noteCmd.AddCommand(noteHardDeleteCmd)
	noteCmd.AddCommand(noteOverwriteCmd)
	rootCmd.AddCommand(noteCmd)
}

func runNoteList(cmd *cobra.Command, _ []string) error {
	if noteService == nil {
		return errors.New("note service not configured")
	}

	notes, err := noteService.List(context.Background(), flagOwner)
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	if len(notes) == 0 {
		cmd.Println("No notes found.")
		return nil
	}

	for i := range notes {
		printNoteLine(cmd, &notes[i])
	}
	cmd.Printf("\nTotal: %d notes\n", len(notes))
	return nil
}

func runNoteGet(cmd *cobra.Command, args []string) error {
	if noteService == nil {
		return errors.New("note service not configured")
	}

	note, err := noteService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		cmd.Printf("Note not found: %s\n", args[0])
		return nil
	}

	cmd.Printf("ID:         %s\n", note.ID)
	cmd.Printf("Owner:      %s\n", note.OwnerID)
	cmd.Printf("Slug:       %s\n", note.Slug)
	cmd.Printf("Title:      %s\n", note.Title)
	if note.Description != nil {
		cmd.Printf("Description: %s\n", *note.Description)
	}
	cmd.Printf("Visibility: %s\n", note.Visibility)
	if note.IsTrashed {
		cmd.Printf("Trashed:    %s\n", fmtOptTime(note.TrashedAt))
	}
	cmd.Printf("Created:    %s\n", fmtTime(note.CreatedAt))
	cmd.Printf("Updated:    %s\n", fmtTime(note.UpdatedAt))
	printSyncMeta(cmd, &note.SyncMeta)
	return nil
}

func runNoteCreate(cmd *cobra.Command, args []string) error {
	if noteService == nil {
		return errors.New("note service not configured")
	}

	slug := noteSlug
	if slug == "" {
		slug = args[0]
	}

	note := domain.Note{
		OwnerID:    flagOwner,
		Slug:       slug,
		Title:      args[0],
		Visibility: domain.Visibility(noteVisibility),
	}
	if cmd.Flags().Changed("description") {
		note.Description = &noteDescription
	}

	created, err := noteService.Create(context.Background(), note)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	cmd.Printf("Created note %s\n", created.ID)
	return nil
}

func runNoteUpdate(cmd *cobra.Command, args []string) error {
	if noteService == nil {
		return errors.New("note service not configured")
	}

	var patch domain.NotePatch
	if cmd.Flags().Changed("title") {
		patch.Title = &noteTitle
	}
	if cmd.Flags().Changed("description") {
		patch.Description = &noteDescription
	}
	if cmd.Flags().Changed("visibility") {
		v := domain.Visibility(noteVisibility)
		if !v.IsValid() {
			return fmt.Errorf("invalid visibility %q", noteVisibility)
		}
		patch.Visibility = &v
	}
	if noteTrash {
		trashed := true
		patch.IsTrashed = &trashed
	}
	if noteRestore {
		trashed := false
		patch.IsTrashed = &trashed
	}

	note, err := noteService.Update(context.Background(), args[0], patch)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if note == nil {
		cmd.Printf("Note not found: %s\n", args[0])
		return nil
	}

	cmd.Printf("Updated note %s\n", note.ID)
	return nil
}

func runNoteDelete(cmd *cobra.Command, args []string) error {
	if noteService == nil {
		return errors.New("note service not configured")
	}

	existed, err := noteService.Delete(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if !existed {
		cmd.Printf("Note not found: %s\n", args[0])
		return nil
	}

	cmd.Printf("Deleted note %s (pending remote propagation)\n", args[0])
	return nil
}

func runNotePending(cmd *cobra.Command, _ []string) error {
	if noteService == nil {
		return errors.New("note service not configured")
	}

	notes, err := noteService.PendingSync(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list pending notes: %w", err)
	}

	if len(notes) == 0 {
		cmd.Println("Nothing pending.")
		return nil
	}
	for i := range notes {
		printNoteLine(cmd, &notes[i])
	}
	return nil
}

func runNoteDeleted(cmd *cobra.Command, _ []string) error {
	if noteService == nil {
		return errors.New("note service not configured")
	}

	notes, err := noteService.Deleted(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list deleted notes: %w", err)
	}

	if len(notes) == 0 {
		cmd.Println("No deletions awaiting propagation.")
		return nil
	}
	for i := range notes {
		printNoteLine(cmd, &notes[i])
	}
	return nil
}

func runNoteMarkSynced(cmd *cobra.Command, args []string) error {
	if noteService == nil {
		return errors.New("note service not configured")
	}

	serverTime, err := parseTimeArg(args[1])
	if err != nil {
		return err
	}

	if err := noteService.MarkSynced(context.Background(), args[0], serverTime); err != nil {
		return fmt.Errorf("failed to mark note synced: %w", err)
	}

	cmd.Printf("Note %s marked synced\n", args[0])
	return nil
}

func runNoteHardDelete(cmd *cobra.Command, args []string) error {
	if noteService == nil {
		return errors.New("note service not configured")
	}

	if err := noteService.HardDelete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to remove note: %w", err)
	}

	cmd.Printf("Note %s removed\n", args[0])
	return nil
}

func runNoteOverwrite(cmd *cobra.Command, args []string) error {
	if noteService == nil {
		return errors.New("note service not configured")
	}

	serverTime, err := parseTimeArg(args[1])
	if err != nil {
		return err
	}

	// Start from the local record where one exists so flags only need to
	// name the fields the remote side changed.
	note := domain.Note{
		ID:         args[0],
		OwnerID:    flagOwner,
		Visibility: domain.VisibilityPrivate,
	}
	if existing, err := noteService.Get(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to load note: %w", err)
	} else if existing != nil {
		note = *existing
	}

	if cmd.Flags().Changed("slug") {
		note.Slug = noteSlug
	}
	if cmd.Flags().Changed("title") {
		note.Title = noteTitle
	}
	if cmd.Flags().Changed("description") {
		note.Description = &noteDescription
	}
	if cmd.Flags().Changed("visibility") {
		v := domain.Visibility(noteVisibility)
		if !v.IsValid() {
			return fmt.Errorf("invalid visibility %q", noteVisibility)
		}
		note.Visibility = v
	}
	note.UpdatedAt = serverTime
	if note.CreatedAt.IsZero() {
		note.CreatedAt = serverTime
	}

	if err := noteService.OverwriteFromRemote(context.Background(), note); err != nil {
		return fmt.Errorf("failed to overwrite note: %w", err)
	}

	cmd.Printf("Note %s overwritten from remote\n", args[0])
	return nil
}

func printNoteLine(cmd *cobra.Command, n *domain.Note) {
	marker := " "
	if n.IsTrashed {
		marker = "T"
	}
	cmd.Printf("%s %s  [%s]  %s (%s)\n", marker, n.ID, n.SyncStatus, n.Title, n.Slug)
}

// printSyncMeta prints the shared sync block for `get` commands.
func printSyncMeta(cmd *cobra.Command, m *domain.SyncMeta) {
	cmd.Printf("Sync:       %s\n", m.SyncStatus)
	cmd.Printf("Local edit: %s\n", fmtTime(m.LocalUpdatedAt))
	cmd.Printf("Synced at:  %s\n", fmtOptTime(m.SyncedAt))
	cmd.Printf("Server at:  %s\n", fmtOptTime(m.ServerUpdatedAt))
}
