package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/curio-labs/curio-cli/internal/core/domain"
)

// Display styles, colours shared with the default terminal theme.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	stepStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	sentinelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
)

// renderPlan renders a full plan with all its modules.
func renderPlan(plan *domain.Plan) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Learning Plan: "+plan.Topic) + "\n\n")
	for _, module := range plan.SortedModules() {
		renderModule(&b, module)
		b.WriteString("\n")
	}
	return b.String()
}

// renderModule renders one step with its curated resources.
func renderModule(b *strings.Builder, module domain.Module) {
	marker := "[ ]"
	if module.IsComplete {
		marker = doneStyle.Render("[x]")
	}
	fmt.Fprintf(b, "%s %s\n", marker, stepStyle.Render(fmt.Sprintf("Step %d: %s", module.StepNumber, module.Title)))
	fmt.Fprintf(b, "    %s\n", mutedStyle.Render("module "+module.ID))

	renderResource(b, "Article", module.Article)
	for _, category := range sortedCategories(module.Videos) {
		renderResource(b, category, module.Videos[category])
	}
}

// renderResource renders one labelled resource, dimming sentinels.
func renderResource(b *strings.Builder, label string, r domain.CuratedResource) {
	if r.IsSentinel() {
		fmt.Fprintf(b, "    %s: %s\n", label, sentinelStyle.Render(r.Reason))
		return
	}
	fmt.Fprintf(b, "    %s: %s\n", label, r.Title)
	fmt.Fprintf(b, "        %s\n", r.Link)
	if r.Reason != "" {
		fmt.Fprintf(b, "        %s\n", mutedStyle.Render(r.Reason))
	}
}

// sortedCategories returns the video category names in stable order.
func sortedCategories(videos map[string]domain.CuratedResource) []string {
	categories := make([]string, 0, len(videos))
	for name := range videos {
		categories = append(categories, name)
	}
	sort.Strings(categories)
	return categories
}

// renderPlanSummary renders a one-line progress summary for plan listings.
func renderPlanSummary(plan domain.Plan) string {
	completed := 0
	for _, module := range plan.Modules {
		if module.IsComplete {
			completed++
		}
	}
	return fmt.Sprintf("%s  %s", plan.Topic,
		mutedStyle.Render(fmt.Sprintf("(%d/%d steps complete, created %s)",
			completed, len(plan.Modules), plan.CreatedAt.Format("2006-01-02"))))
}
