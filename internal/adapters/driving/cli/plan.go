package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Inspect stored learning plans",
	RunE:  runPlanList,
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored plans",
	RunE:  runPlanList,
}

var planViewCmd = &cobra.Command{
	Use:   "view [topic]",
	Short: "Show a plan with all its curated resources",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanView,
}

func init() {
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planViewCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlanList(cmd *cobra.Command, _ []string) error {
	if planService == nil {
		return errors.New("plan service not configured")
	}

	plans, err := planService.ListPlans(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing plans: %w", err)
	}

	if len(plans) == 0 {
		cmd.Println("No plans yet. Start one with: curio learn \"a topic\"")
		return nil
	}

	cmd.Println(titleStyle.Render("Stored Plans"))
	for _, plan := range plans {
		cmd.Printf("  %s\n", renderPlanSummary(plan))
	}
	return nil
}

func runPlanView(cmd *cobra.Command, args []string) error {
	if planService == nil {
		return errors.New("plan service not configured")
	}

	plan, err := planService.FindByTopic(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("finding plan for %q: %w", args[0], err)
	}

	cmd.Print(renderPlan(plan))
	return nil
}
