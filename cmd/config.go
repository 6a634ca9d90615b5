package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect ccm configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		data, err := json.MarshalIndent(a.cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format config: %w", err)
		}
		return printHighlighted(cmd.OutOrStdout(), string(data)+"\n", "json")
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
