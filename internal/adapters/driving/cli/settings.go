package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	configfile "github.com/curio-labs/curio-cli/internal/adapters/driven/config/file"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure curation settings and AI models.

Settings are stored as TOML. Keys use dot notation, e.g.:

  curation.steps             curriculum steps per plan
  curation.max_results       candidates per search
  curation.video_categories  "Name:order" pairs
  ai.chat_model              judge model
  ai.embedding_model         embedding model`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value by key.

Numbers are stored as integers and comma-separated values as lists;
everything else is stored as a string.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	settings := configfile.SettingsFromConfig(configStore)

	cmd.Println(titleStyle.Render("Settings"))
	cmd.Printf("  %s: %d\n", configfile.KeyStepCount, settings.StepCount)
	cmd.Printf("  %s: %d\n", configfile.KeyMaxResults, settings.MaxResults)
	cmd.Printf("  %s: %s\n", configfile.KeyChatModel, settings.ChatModel)
	cmd.Printf("  %s: %s\n", configfile.KeyEmbeddingModel, settings.EmbeddingModel)
	cmd.Printf("  %s:\n", configfile.KeyVideoCategories)
	for _, category := range settings.VideoCategories {
		cmd.Printf("    %s:%s\n", category.Name, category.Order)
	}
	cmd.Println()
	cmd.Println(mutedStyle.Render("config file: " + configStore.Path()))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]

	var value any = raw
	if n, err := strconv.Atoi(raw); err == nil {
		value = n
	} else if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		list := make([]string, 0, len(parts))
		for _, p := range parts {
			list = append(list, strings.TrimSpace(p))
		}
		value = list
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	cmd.Printf("Set %s\n", key)
	return nil
}
