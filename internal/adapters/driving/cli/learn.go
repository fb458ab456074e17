package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var learnCmd = &cobra.Command{
	Use:   "learn [topic]",
	Short: "Build or retrieve a learning plan for a topic",
	Long: `Build a curated learning plan for the given topic.

If a sufficiently similar plan already exists it is returned as-is.
Otherwise a curriculum outline is generated and every step is curated:
the best article and the best video per category are selected from
live search results by the AI judge.`,
	Args: cobra.ExactArgs(1),
	RunE: runLearn,
}

func init() {
	rootCmd.AddCommand(learnCmd)
}

func runLearn(cmd *cobra.Command, args []string) error {
	if plannerService == nil {
		return errors.New("planner service not configured")
	}

	topic := args[0]
	cmd.Printf("Curating a learning plan for %q. This can take a minute...\n\n", topic)

	plan, err := plannerService.Learn(cmd.Context(), topic)
	if err != nil {
		return fmt.Errorf("learning %q: %w", topic, err)
	}

	cmd.Print(renderPlan(plan))
	cmd.Printf("Start studying with: curio session %q\n", plan.Topic)
	return nil
}
