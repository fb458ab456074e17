// Package cli provides the command-line interface for Curio.
// Commands talk to the core services through the driving ports; the
// composition root wires real implementations in via SetServices.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/curio-labs/curio-cli/internal/core/ports/driven"
	"github.com/curio-labs/curio-cli/internal/core/ports/driving"
	"github.com/curio-labs/curio-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// verbose enables debug logging for the curation pipeline.
var verbose bool

// Services the commands depend on. Nil until SetServices is called;
// every command guards against running unwired.
var (
	plannerService  driving.PlannerService
	planService     driving.PlanService
	feedbackService driving.FeedbackService
	noteService     driving.NoteService
	configStore     driven.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "curio",
	Short: "Curate personalised learning plans from the terminal",
	Long: `Curio builds learning plans for any topic you want to study.

Given a topic, it generates a step-by-step curriculum, then searches the
web and YouTube for each step and picks the best article and videos using
an AI judge. Plans are stored locally; asking about a sufficiently
similar topic returns the existing plan instead of curating a new one.

Rate the resources you use and Curio learns which sources you trust,
preferring them (or avoiding them) in future curation.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services bundles the driving ports the commands need.
type Services struct {
	Planner  driving.PlannerService
	Plans    driving.PlanService
	Feedback driving.FeedbackService
	Notes    driving.NoteService
	Config   driven.ConfigStore
}

// SetServices wires core services into the commands. Call before Execute.
func SetServices(s Services) {
	plannerService = s.Planner
	planService = s.Plans
	feedbackService = s.Feedback
	noteService = s.Notes
	configStore = s.Config
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
