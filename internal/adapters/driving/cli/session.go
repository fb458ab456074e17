package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driving"
)

var sessionCmd = &cobra.Command{
	Use:   "session [topic]",
	Short: "Start an interactive study session for a plan",
	Long: `Work through a plan one step at a time.

Each round shows the first incomplete step with its curated resources.
From there you can mark the step done, rate a resource, generate study
notes for a video, view the whole plan, or quit. Progress is saved as
you go; quitting and restarting resumes at the first incomplete step.`,
	Args: cobra.ExactArgs(1),
	RunE: runSession,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	if planService == nil {
		return errors.New("plan service not configured")
	}

	ctx := cmd.Context()
	plan, err := planService.FindByTopic(ctx, args[0])
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("No plan found for %q. Create one with: curio learn %q\n", args[0], args[0])
		return nil
	}
	if err != nil {
		return fmt.Errorf("finding plan for %q: %w", args[0], err)
	}

	cmd.Println(titleStyle.Render("Study Session: " + plan.Topic))
	input := bufio.NewScanner(cmd.InOrStdin())

	for {
		module := plan.NextModule()
		if module == nil {
			cmd.Println("All steps complete. Well done!")
			return nil
		}

		cmd.Println()
		var b strings.Builder
		renderModule(&b, *module)
		cmd.Print(b.String())

		choice, ok := prompt(cmd, input, "[d]one  [r]ate  [n]otes  [p]lan  [q]uit > ")
		if !ok {
			return nil
		}

		switch strings.ToLower(choice) {
		case "d", "done":
			if err := planService.CompleteModule(ctx, module.ID); err != nil {
				return fmt.Errorf("completing step %d: %w", module.StepNumber, err)
			}
			cmd.Printf("Step %d marked complete.\n", module.StepNumber)
			plan, err = planService.GetPlan(ctx, plan.ID)
			if err != nil {
				return fmt.Errorf("reloading plan: %w", err)
			}
		case "r", "rate":
			if err := ratePrompt(cmd, input, module.ID); err != nil {
				return err
			}
		case "n", "notes":
			if err := notesPrompt(cmd, input, module.ID); err != nil {
				return err
			}
		case "p", "plan":
			cmd.Print(renderPlan(plan))
		case "q", "quit":
			return nil
		default:
			cmd.Println("Unknown choice. Use d, r, n, p or q.")
		}
	}
}

// ratePrompt collects a resource rating, re-asking until the input is
// valid or the input stream ends.
func ratePrompt(cmd *cobra.Command, input *bufio.Scanner, moduleID string) error {
	if feedbackService == nil {
		return errors.New("feedback service not configured")
	}

	link, ok := prompt(cmd, input, "Resource link > ")
	if !ok || link == "" {
		return nil
	}

	resourceType := domain.ResourceTypeArticle
	for {
		kind, ok := prompt(cmd, input, "Type (article/video) > ")
		if !ok {
			return nil
		}
		resourceType = domain.ResourceType(strings.ToLower(kind))
		if resourceType.IsValid() {
			break
		}
		cmd.Println("Please answer article or video.")
	}

	var rating int
	for {
		answer, ok := prompt(cmd, input, "Rating (1-5) > ")
		if !ok {
			return nil
		}
		value, err := strconv.Atoi(answer)
		if err == nil && domain.ValidateRating(value) == nil {
			rating = value
			break
		}
		cmd.Println("Please enter a whole number from 1 to 5.")
	}

	_, err := feedbackService.RecordFeedback(cmd.Context(), driving.RecordFeedbackRequest{
		ModuleID:     moduleID,
		ResourceLink: link,
		ResourceType: resourceType,
		Rating:       rating,
	})
	if err != nil {
		return fmt.Errorf("recording feedback: %w", err)
	}
	cmd.Printf("Recorded rating %d for %s.\n", rating, link)
	return nil
}

// notesPrompt generates study notes for one of the step's videos.
func notesPrompt(cmd *cobra.Command, input *bufio.Scanner, moduleID string) error {
	if noteService == nil {
		return errors.New("note service not configured")
	}

	link, ok := prompt(cmd, input, "Video link > ")
	if !ok || link == "" {
		return nil
	}

	cmd.Println("Fetching transcript and taking notes...")
	note, err := noteService.TakeNotes(cmd.Context(), moduleID, link)
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

// prompt prints the prompt and returns the next trimmed input line.
// ok is false when the input stream has ended.
func prompt(cmd *cobra.Command, input *bufio.Scanner, text string) (string, bool) {
	cmd.Print(text)
	if !input.Scan() {
		return "", false
	}
	return strings.TrimSpace(input.Text()), true
}
