package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccm-dev/ccm/internal/auth"
)

var (
	useNoLogin   bool
	statusOutput string
)

var useCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Put a profile's credential in the OS credential store",
	Long: `Switch the OS credential store to a profile so every tool that reads the
Claude Code credential uses that account. The credential currently in the
store is saved to the active profile first.

A profile without a saved credential goes through "claude auth login"
unless --no-login is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		p, err := a.profileByName(args[0])
		if err != nil {
			return err
		}
		if useNoLogin && !a.vault.HasBackup(p.ID) {
			return fmt.Errorf("no saved credential for %s, run `ccm login %s` first: %w", p.Name, p.Name, auth.ErrNoCredential)
		}
		if err := a.swap.SwapTo(cmd.Context(), target(p), a.activeID()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Active profile: %s\n", p.Name)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <name>",
	Short: "Run claude auth login for a profile and save the credential",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		p, err := a.profileByName(args[0])
		if err != nil {
			return err
		}
		if err := a.swap.Login(cmd.Context(), target(p), a.activeID()); err != nil {
			if errors.Is(err, auth.ErrNoCredential) {
				return fmt.Errorf("login finished but no credential was found to save for %s", p.Name)
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Credential saved for %s.\n", p.Name)
		return nil
	},
}

type statusEntry struct {
	Name       string `json:"name" yaml:"name"`
	ID         string `json:"id" yaml:"id"`
	Credential string `json:"credential" yaml:"credential"`
	Active     bool   `json:"active" yaml:"active"`
}

type statusReport struct {
	Backend  string        `json:"backend" yaml:"backend"`
	Active   string        `json:"active,omitempty" yaml:"active,omitempty"`
	Profiles []statusEntry `json:"profiles" yaml:"profiles"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which profiles have a saved credential",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(statusOutput); err != nil {
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
		backend, _ := auth.ValidateBackend(a.cfg.Backend)
		report := statusReport{
			Backend:  string(backend.ResolveCurrent()),
			Profiles: []statusEntry{},
		}
		activeID := a.activeID()
		for _, p := range profiles {
			active := p.ID == activeID
			if active {
				report.Active = p.Name
			}
			report.Profiles = append(report.Profiles, statusEntry{
				Name:       p.Name,
				ID:         p.ID,
				Credential: string(a.vault.AuthStatus(p.ID)),
				Active:     active,
			})
		}

		out := cmd.OutOrStdout()
		if statusOutput != formatTable {
			return printStructured(out, statusOutput, report)
		}

		if len(report.Profiles) == 0 {
			fmt.Fprintln(out, "No profiles.")
			return nil
		}
		for _, e := range report.Profiles {
			state := "no credential"
			if e.Credential == string(auth.StatusAuthenticated) {
				state = "credential backed up"
			}
			marker := " "
			if e.Active {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %-20s %s\n", marker, e.Name, state)
		}
		fmt.Fprintf(out, "\nCredential store: %s\n", report.Backend)
		return nil
	},
}

func init() {
	useCmd.Flags().BoolVar(&useNoLogin, "no-login", false, "Fail instead of logging in when the profile has no saved credential")
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", formatTable, "Output format (table, json, yaml)")

	rootCmd.AddCommand(useCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(statusCmd)
}
