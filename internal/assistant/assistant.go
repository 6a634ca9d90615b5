// Package assistant runs the assistant CLI scoped to one profile's config
// directory.
package assistant

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ccm-dev/ccm/internal/config"
	"github.com/ccm-dev/ccm/internal/runner"
)

const (
	// BinEnv overrides the assistant binary
	BinEnv = "CCM_CLAUDE_BIN"
	// DefaultBin is looked up on PATH
	DefaultBin = "claude"
	// ConfigDirEnv points the assistant at a profile's config tree
	ConfigDirEnv = "CLAUDE_CONFIG_DIR"
)

// ExitError carries the assistant's non-zero exit status
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", DefaultBin, e.Code)
}

// ExitCode is the status ccm itself should exit with
func (e *ExitError) ExitCode() int {
	return e.Code
}

// CLI invokes the assistant
type CLI struct {
	exec  runner.Executor
	paths config.Paths
	bin   string
}

// New creates a CLI using the binary named by CCM_CLAUDE_BIN, or claude
func New(exec runner.Executor, paths config.Paths) *CLI {
	bin := strings.TrimSpace(os.Getenv(BinEnv))
	if bin == "" {
		bin = DefaultBin
	}
	return &CLI{exec: exec, paths: paths, bin: bin}
}

// Bin returns the binary that will be run
func (c *CLI) Bin() string {
	return c.bin
}

// Login runs the interactive `auth login` flow for profileID and returns its
// exit status. The child owns the terminal until it exits.
func (c *CLI) Login(ctx context.Context, profileID string) (int, error) {
	res, err := c.exec.Run(ctx, c.command(profileID, []string{"auth", "login"}, ""))
	if err != nil {
		return 0, err
	}
	return res.ExitCode, nil
}

// Launch starts an interactive session for profileID in cwd
func (c *CLI) Launch(ctx context.Context, profileID string, args []string, cwd string) (int, error) {
	res, err := c.exec.Run(ctx, c.command(profileID, args, cwd))
	if err != nil {
		return 0, err
	}
	return res.ExitCode, nil
}

func (c *CLI) command(profileID string, args []string, cwd string) runner.Command {
	return runner.Command{
		Name:  c.bin,
		Args:  args,
		Env:   map[string]string{ConfigDirEnv: c.paths.AssistantConfigDir(profileID)},
		Dir:   cwd,
		Stdio: runner.StdioInherit,
	}
}
