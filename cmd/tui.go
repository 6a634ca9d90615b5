package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/ccm-dev/ccm/internal/handoff"
	"github.com/ccm-dev/ccm/internal/ui"
)

// runInteractive alternates between the dashboard and the actions it hands
// off until the user quits, launches, or activates a profile.
func runInteractive(ctx context.Context, start ui.Screen) error {
	if !isTerminal() {
		return errors.New("the dashboard needs an interactive terminal; see `ccm --help` for scriptable commands")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ui.InitColorProfile()
	session := ui.NewSession(ui.Options{
		Paths:    a.paths,
		Registry: a.registry,
		Status:   a.vault.AuthStatus,
		Theme:    a.theme,
		Start:    start,
		Logger:   a.logger.Named("ui"),
	})

	loop := &handoff.Loop{
		UI:      session,
		Actions: &dispatcher{app: a},
		Logger:  a.logger.Named("handoff"),
	}
	return loop.Run(ctx)
}

// dispatcher runs the intents the dashboard hands off
type dispatcher struct {
	app *app
}

func (d *dispatcher) Dispatch(ctx context.Context, intent handoff.Intent) error {
	a := d.app
	p, err := a.registry.Get(intent.ProfileID)
	if err != nil {
		return err
	}

	switch intent.Kind {
	case handoff.Launch:
		return a.launch(ctx, p, nil, intent.Cwd)
	case handoff.Login:
		return a.swap.Login(ctx, target(p), a.activeID())
	case handoff.Activate:
		return a.swap.SwapTo(ctx, target(p), a.activeID())
	default:
		return fmt.Errorf("unknown action %s", intent.Kind)
	}
}

var _ handoff.Dispatcher = (*dispatcher)(nil)
