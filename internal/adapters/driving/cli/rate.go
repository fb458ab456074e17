package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driving"
)

var rateResourceType string

var rateCmd = &cobra.Command{
	Use:   "rate [module-id] [link] [rating]",
	Short: "Rate a curated resource from 1 to 5",
	Long: `Record a rating for a resource within a module.

Ratings of 4 or 5 mark the resource's source as liked; once a source
collects three ratings of 2 or below, future curation avoids it.
Module IDs are shown by "curio plan view" and during sessions.`,
	Args: cobra.ExactArgs(3),
	RunE: runRate,
}

var reputationCmd = &cobra.Command{
	Use:   "reputation [topic]",
	Short: "Show which sources past feedback prefers for a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runReputation,
}

func init() {
	rateCmd.Flags().StringVarP(&rateResourceType, "type", "t", "article", "resource type (article or video)")
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(reputationCmd)
}

func runRate(cmd *cobra.Command, args []string) error {
	if feedbackService == nil {
		return errors.New("feedback service not configured")
	}

	rating, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("%w: rating must be a whole number, got %q", domain.ErrInvalidInput, args[2])
	}

	resourceType := domain.ResourceType(rateResourceType)
	if !resourceType.IsValid() {
		return fmt.Errorf("%w: unknown resource type %q", domain.ErrInvalidInput, rateResourceType)
	}

	feedback, err := feedbackService.RecordFeedback(cmd.Context(), driving.RecordFeedbackRequest{
		ModuleID:     args[0],
		ResourceLink: args[1],
		ResourceType: resourceType,
		Rating:       rating,
	})
	if err != nil {
		return fmt.Errorf("recording feedback: %w", err)
	}

	cmd.Printf("Recorded rating %d for %s (source: %s)\n", feedback.Rating, feedback.ResourceLink, feedback.Source)
	return nil
}

func runReputation(cmd *cobra.Command, args []string) error {
	if feedbackService == nil {
		return errors.New("feedback service not configured")
	}

	summary, err := feedbackService.SummarizeReputation(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("summarising reputation for %q: %w", args[0], err)
	}

	cmd.Println(summary)
	return nil
}
