package handoff

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// Session renders the interactive UI until the user quits or commits an
// action. It must have released the terminal when it returns.
type Session interface {
	Run(ctx context.Context, notice string) (*Intent, error)
}

// Dispatcher performs an intent. It may hand the terminal to a child.
type Dispatcher interface {
	Dispatch(ctx context.Context, intent Intent) error
}

// Loop drives Next with a real UI and dispatcher
type Loop struct {
	UI      Session
	Actions Dispatcher
	Logger  *zap.Logger
	// Out receives the farewell message; nil means stdout
	Out io.Writer
}

// Run alternates between the UI and dispatched actions until the machine
// terminates. Errors from Launch end the run; other action errors are shown
// in the next render.
func (l *Loop) Run(ctx context.Context) error {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	out := l.Out
	if out == nil {
		out = os.Stdout
	}

	var (
		m        = Start()
		notice   string
		childErr error
	)
	for {
		var ev Event
		switch m.State {
		case RenderingUI:
			if err := ctx.Err(); err != nil {
				return err
			}
			intent, err := l.UI.Run(ctx, notice)
			if err != nil {
				return fmt.Errorf("interactive session failed: %w", err)
			}
			notice = ""
			ev = UIClosed{Intent: intent}
		case ActionPending:
			ev = TerminalReleased{}
		case RunningChild:
			ev = ChildExited{Err: childErr}
			childErr = nil
		case Terminated:
			return nil
		}

		next, eff, err := Next(m, ev)
		if err != nil {
			return err
		}
		logger.Debug("handoff transition",
			zap.Stringer("from", m.State),
			zap.Stringer("to", next.State),
			zap.String("event", fmt.Sprintf("%T", ev)))
		m = next

		switch eff.Kind {
		case EffectRunChild:
			logger.Info("dispatching", zap.Stringer("intent", eff.Intent.Kind), zap.String("profile", eff.Intent.ProfileID))
			childErr = l.Actions.Dispatch(ctx, *eff.Intent)
			if childErr != nil {
				logger.Warn("action failed", zap.Stringer("intent", eff.Intent.Kind), zap.Error(childErr))
			}
		case EffectRender:
			notice = eff.Notice
		case EffectFail:
			return eff.Err
		case EffectExit:
			if eff.Notice != "" {
				fmt.Fprintf(out, "\n  %s\n\n", eff.Notice)
			}
			return nil
		}
	}
}
