package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ccm-dev/ccm/internal/handoff"
)

// Session runs one bubbletea program per render. Each run reloads state from
// disk because a child process may have changed it.
type Session struct {
	opts        Options
	programOpts []tea.ProgramOption
	rendered    bool
}

// NewSession creates a session. programOpts are appended to the defaults.
func NewSession(opts Options, programOpts ...tea.ProgramOption) *Session {
	return &Session{opts: opts, programOpts: programOpts}
}

// Run shows the UI until the user quits or picks an action. The terminal is
// fully restored when it returns.
func (s *Session) Run(ctx context.Context, notice string) (*handoff.Intent, error) {
	opts := s.opts
	opts.Notice = notice
	if s.rendered {
		// the start screen only applies to the first render
		opts.Start = ScreenDashboard
	}
	s.rendered = true

	m, err := New(opts)
	if err != nil {
		return nil, err
	}

	programOpts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, s.programOpts...)
	final, err := tea.NewProgram(m, programOpts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to run interface: %w", err)
	}

	fm, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	return fm.Intent(), nil
}
