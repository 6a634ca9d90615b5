package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccm-dev/ccm/internal/auth"
	"github.com/ccm-dev/ccm/internal/config"
	"github.com/ccm-dev/ccm/internal/profile"
)

var listOutput string

type listEntry struct {
	profile.Profile `yaml:",inline"`
	Status          auth.Status `json:"status" yaml:"status"`
	Active          bool        `json:"active" yaml:"active"`
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List profiles",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(listOutput); err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		profiles, err := a.registry.List()
		if err != nil {
			return err
		}
		activeID := a.activeID()
		entries := make([]listEntry, 0, len(profiles))
		for _, p := range profiles {
			entries = append(entries, listEntry{
				Profile: p,
				Status:  a.vault.AuthStatus(p.ID),
				Active:  p.ID == activeID,
			})
		}

		out := cmd.OutOrStdout()
		if listOutput != formatTable {
			return printStructured(out, listOutput, entries)
		}
		if len(entries) == 0 {
			fmt.Fprintln(out, "No profiles. Run `ccm add` to create one.")
			return nil
		}
		now := time.Now()
		for _, e := range entries {
			dot := "○"
			if e.Status == auth.StatusAuthenticated {
				dot = "●"
			}
			fmt.Fprintf(out, "  %s %-20s %-30s %s\n", dot, e.Name, e.Email, e.LastUsed(now))
		}
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the active profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		out := cmd.OutOrStdout()
		marker, err := config.LoadActive(a.paths)
		if err != nil {
			return err
		}
		if marker == nil {
			fmt.Fprintln(out, "No active profile")
			return nil
		}
		if p, err := a.registry.Get(marker.ProfileID); err == nil {
			fmt.Fprintln(out, p.Name)
			return nil
		}
		// the marker outlived its profile; report what it recorded
		fmt.Fprintln(out, marker.ProfileName)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", formatTable, "Output format (table, json, yaml)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(whoamiCmd)
}
