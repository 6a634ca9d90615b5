package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ccm-dev/ccm/internal/config"
)

var mapExact bool

var mapCmd = &cobra.Command{
	Use:   "map <name> [dir]",
	Short: "Use a profile by default inside a directory",
	Long: `Map a directory to a profile so "ccm launch" without a name picks it there
and in every subdirectory. Inside a git repository the repository root is
mapped unless --exact is given. dir defaults to the current directory.`,
	Args: cobra.RangeArgs(1, 2),
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

		dir := workingDir()
		if len(args) == 2 {
			dir = args[1]
		}
		if dir, err = filepath.Abs(dir); err != nil {
			return fmt.Errorf("failed to resolve directory: %w", err)
		}
		if !mapExact {
			if dir, err = config.RepoRoot(dir); err != nil {
				return err
			}
		}

		a.cfg.MapDirectory(dir, p.ID)
		if err := config.Save(a.paths, a.cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Mapped %s to %s\n", dir, p.Name)
		return nil
	},
}

var unmapCmd = &cobra.Command{
	Use:   "unmap [dir]",
	Short: "Remove a directory mapping",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		dir := workingDir()
		if len(args) == 1 {
			dir = args[0]
		}
		if dir, err = filepath.Abs(dir); err != nil {
			return fmt.Errorf("failed to resolve directory: %w", err)
		}

		removed := a.cfg.UnmapDirectory(dir)
		if !removed {
			if root, err := config.RepoRoot(dir); err == nil && root != dir {
				removed = a.cfg.UnmapDirectory(root)
				dir = root
			}
		}
		if !removed {
			return fmt.Errorf("%s is not mapped", dir)
		}
		if err := config.Save(a.paths, a.cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Unmapped %s\n", dir)
		return nil
	},
}

func init() {
	mapCmd.Flags().BoolVar(&mapExact, "exact", false, "Map the directory itself rather than its repository root")

	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(unmapCmd)
}
