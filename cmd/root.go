package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ccm-dev/ccm/internal/ui"
)

var (
	// Command line flags
	themeFlag string
	debugFlag bool
	version   = "0.1.0" // This will be set during build
)

// isTerminal reports whether stdin and stdout are a terminal. Tests override it.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ccm",
	Short: "ccm - switch Claude Code between accounts",
	Long: `ccm keeps one Claude Code identity per profile and swaps the credential in
the OS credential store when you switch. Run without arguments to open the
interactive dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context(), ui.ScreenDashboard)
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a profile in the interactive editor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context(), ui.ScreenEditor)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ccm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ccm v%s\n", version)
	},
}

// Execute runs the CLI. SIGTERM cancels the context, which stops any child.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		var coded interface{ ExitCode() int }
		if !errors.As(err, &coded) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return err
}

// ExitCode maps an error returned by Execute to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) && coded.ExitCode() > 0 {
		return coded.ExitCode()
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "Theme for this run: midnight, aura, minimal")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Write debug logs to ~/.ccm/logs/ccm.log")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(versionCmd)
}
