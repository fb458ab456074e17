package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/curio-labs/curio-cli/internal/core/domain"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Generate and browse study notes for module videos",
}

var notesTakeCmd = &cobra.Command{
	Use:   "take [module-id] [video-link]",
	Short: "Generate study notes from a video's transcript",
	Args:  cobra.ExactArgs(2),
	RunE:  runNotesTake,
}

var notesListCmd = &cobra.Command{
	Use:   "list [module-id]",
	Short: "Show stored notes for a module, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesList,
}

func init() {
	notesCmd.AddCommand(notesTakeCmd)
	notesCmd.AddCommand(notesListCmd)
	rootCmd.AddCommand(notesCmd)
}

func runNotesTake(cmd *cobra.Command, args []string) error {
	if noteService == nil {
		return errors.New("note service not configured")
	}

	cmd.Println("Fetching transcript and taking notes...")
	note, err := noteService.TakeNotes(cmd.Context(), args[0], args[1])
	if errors.Is(err, domain.ErrNoTranscript) {
		cmd.Println("That video has no transcript to take notes from.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("taking notes: %w", err)
	}

	cmd.Println()
	cmd.Println(note.Content)
	return nil
}

func runNotesList(cmd *cobra.Command, args []string) error {
	if noteService == nil {
		return errors.New("note service not configured")
	}

	notes, err := noteService.ListNotes(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("listing notes: %w", err)
	}

	if len(notes) == 0 {
		cmd.Println("No notes for this module yet.")
		return nil
	}

	for _, note := range notes {
		cmd.Println(titleStyle.Render("Notes: " + note.VideoLink))
		cmd.Println(mutedStyle.Render("taken " + note.CreatedAt.Format("2006-01-02 15:04")))
		cmd.Println(note.Content)
		cmd.Println()
	}
	return nil
}
