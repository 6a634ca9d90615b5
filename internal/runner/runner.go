// Package runner executes external commands (the OS credential tool and the
// assistant CLI) behind a narrow interface so callers can be tested with a
// fake executor.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"sort"
	"strings"
)

// ErrSpawnFailed is returned when a command could not be started at all
// (binary missing, permission denied). A command that starts and exits with
// a non-zero status is not an error; see Result.ExitCode.
var ErrSpawnFailed = errors.New("failed to start subprocess")

// StdioMode selects how a command's standard streams are wired.
type StdioMode int

const (
	// StdioCapture buffers stdout and stderr into the Result.
	StdioCapture StdioMode = iota
	// StdioInherit hands the parent's terminal to the child for its lifetime.
	StdioInherit
)

// Command describes one subprocess invocation.
type Command struct {
	Name  string
	Args  []string
	Env   map[string]string // overrides applied on top of the parent environment
	Dir   string
	Stdin string // fed to the child in StdioCapture mode; never part of argv
	Stdio StdioMode
}

// String renders the command for logs. Stdin is never included.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result is the outcome of a command that was started.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Executor runs commands.
type Executor interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// SpawnError reports a command that never started.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() []error {
	return []error{ErrSpawnFailed, e.Err}
}

// OS runs commands with os/exec.
type OS struct {
	// Stdin, Stdout and Stderr are used in StdioInherit mode; nil means the
	// process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts cmd and waits for it. Cancelling ctx kills the child.
func (o *OS) Run(ctx context.Context, c Command) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = MergeEnv(os.Environ(), c.Env)

	var stdout, stderr bytes.Buffer
	switch c.Stdio {
	case StdioInherit:
		// The child receives the terminal's SIGINT itself; keep it from
		// killing the parent while the child owns the terminal.
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt)
		defer signal.Stop(sigs)

		cmd.Stdin = orReader(o.Stdin, os.Stdin)
		cmd.Stdout = orWriter(o.Stdout, os.Stdout)
		cmd.Stderr = orWriter(o.Stderr, os.Stderr)
	default:
		if c.Stdin != "" {
			cmd.Stdin = strings.NewReader(c.Stdin)
		}
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		if res.ExitCode < 0 {
			// killed by a signal
			res.ExitCode = 1
		}
		return res, nil
	}
	return res, &SpawnError{Command: c.Name, Err: err}
}

// MergeEnv returns base with every key in overrides replaced or appended.
// The output is deterministic: overrides are appended in key order.
func MergeEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, replaced := overrides[key]; replaced {
			continue
		}
		out = append(out, kv)
	}
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+overrides[k])
	}
	return out
}

func orReader(r, def io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return def
}

func orWriter(w, def io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return def
}
