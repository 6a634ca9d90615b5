package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var launchCmd = &cobra.Command{
	Use:   "launch [name] [-- claude args...]",
	Short: "Switch to a profile and start Claude Code",
	Long: `Switch the OS credential store to a profile and start Claude Code with that
profile's config directory. ccm exits with Claude Code's exit status.

Without a name the profile is picked from the directory map (see ccm map),
then the default profile, then the first profile.

Examples:
  ccm launch work
  ccm launch work -- --resume
  ccm launch`,
	Args: func(cmd *cobra.Command, args []string) error {
		named, _ := splitArgsAtDash(args, cmd.ArgsLenAtDash())
		if len(named) > 1 {
			return fmt.Errorf("accepts at most one profile name before --, received %d", len(named))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		name, passthrough := splitLaunchArgs(args, cmd.ArgsLenAtDash())

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		cwd := workingDir()
		p, fromDir, err := a.resolveLaunchProfile(name, cwd)
		if err != nil {
			return err
		}

		// a mapped directory is where the user wants to work; otherwise use
		// the profile's project directory if it has one
		dir := cwd
		if !fromDir && p.DefaultProjectDir != "" {
			dir = p.DefaultProjectDir
		}
		return a.launch(cmd.Context(), p, passthrough, dir)
	},
}

// splitLaunchArgs separates the optional profile name from the arguments
// after "--"
func splitLaunchArgs(args []string, dash int) (name string, passthrough []string) {
	named, passthrough := splitArgsAtDash(args, dash)
	if len(named) > 0 {
		name = named[0]
	}
	return name, passthrough
}

// the flag set keeps the dash position of an earlier parse, so it is bounded
// by the current args
func splitArgsAtDash(args []string, dash int) (before, after []string) {
	if dash < 0 || dash > len(args) {
		return args, nil
	}
	return args[:dash], args[dash:]
}

func init() {
	rootCmd.AddCommand(launchCmd)
}
