// Package handoff passes the terminal back and forth between the interactive
// UI and a child process. The UI and a child that inherits the terminal can
// never run at the same time: the UI returns an Intent and exits, the loop
// runs the child, then decides whether to render again.
package handoff

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned by Next for an event the state does not accept
var ErrInvalidTransition = errors.New("invalid handoff transition")

// State of the handoff machine
type State int

const (
	RenderingUI State = iota
	ActionPending
	RunningChild
	Terminated
)

func (s State) String() string {
	switch s {
	case RenderingUI:
		return "rendering-ui"
	case ActionPending:
		return "action-pending"
	case RunningChild:
		return "running-child"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// IntentKind says what the user asked the UI for
type IntentKind int

const (
	Launch IntentKind = iota
	Login
	Activate
)

func (k IntentKind) String() string {
	switch k {
	case Launch:
		return "launch"
	case Login:
		return "login"
	case Activate:
		return "activate"
	default:
		return fmt.Sprintf("intent(%d)", int(k))
	}
}

// Intent is what the UI hands to the loop when it closes
type Intent struct {
	Kind        IntentKind
	ProfileID   string
	ProfileName string
	// Cwd is the working directory for Launch
	Cwd string
}

// LaunchIntent starts the assistant for a profile in cwd
func LaunchIntent(profileID, profileName, cwd string) Intent {
	return Intent{Kind: Launch, ProfileID: profileID, ProfileName: profileName, Cwd: cwd}
}

// LoginIntent runs the login flow for a profile
func LoginIntent(profileID, profileName string) Intent {
	return Intent{Kind: Login, ProfileID: profileID, ProfileName: profileName}
}

// ActivateIntent swaps a profile's credential into the shared store
func ActivateIntent(profileID, profileName string) Intent {
	return Intent{Kind: Activate, ProfileID: profileID, ProfileName: profileName}
}

// Event drives the machine
type Event interface {
	event()
}

// UIClosed is sent when the UI program has exited. Intent is nil on quit.
type UIClosed struct {
	Intent *Intent
}

// TerminalReleased is sent once the UI no longer holds the terminal
type TerminalReleased struct{}

// ChildExited is sent when the dispatched action finished
type ChildExited struct {
	Err error
}

func (UIClosed) event()         {}
func (TerminalReleased) event() {}
func (ChildExited) event()      {}

// EffectKind is the instruction Next gives its driver
type EffectKind int

const (
	EffectNone EffectKind = iota
	// EffectExit ends the invocation successfully
	EffectExit
	// EffectFail ends the invocation with Err
	EffectFail
	// EffectRunChild dispatches Intent
	EffectRunChild
	// EffectRender opens the UI again showing Notice
	EffectRender
)

// Effect is returned by Next
type Effect struct {
	Kind   EffectKind
	Intent *Intent
	Err    error
	Notice string
}

// Machine is the handoff state. Pending is the single-slot mailbox filled
// by the UI; Running is the intent whose child is in flight.
type Machine struct {
	State   State
	Pending *Intent
	Running *Intent
}

// Start returns the initial machine
func Start() Machine {
	return Machine{State: RenderingUI}
}

// Next applies ev to m. It has no side effects.
func Next(m Machine, ev Event) (Machine, Effect, error) {
	switch m.State {
	case RenderingUI:
		if e, ok := ev.(UIClosed); ok {
			if e.Intent == nil {
				return Machine{State: Terminated}, Effect{Kind: EffectExit}, nil
			}
			intent := *e.Intent
			return Machine{State: ActionPending, Pending: &intent}, Effect{Kind: EffectNone}, nil
		}

	case ActionPending:
		if _, ok := ev.(TerminalReleased); ok && m.Pending != nil {
			intent := *m.Pending
			return Machine{State: RunningChild, Running: &intent}, Effect{Kind: EffectRunChild, Intent: &intent}, nil
		}

	case RunningChild:
		if e, ok := ev.(ChildExited); ok && m.Running != nil {
			return childExited(*m.Running, e.Err)
		}
	}
	return m, Effect{}, fmt.Errorf("%w: %T in state %s", ErrInvalidTransition, ev, m.State)
}

func childExited(intent Intent, err error) (Machine, Effect, error) {
	done := Machine{State: Terminated}
	render := Machine{State: RenderingUI}

	switch intent.Kind {
	case Launch:
		if err != nil {
			return done, Effect{Kind: EffectFail, Err: err}, nil
		}
		return done, Effect{Kind: EffectExit}, nil

	case Activate:
		if err != nil {
			return render, Effect{
				Kind:   EffectRender,
				Notice: fmt.Sprintf("Could not activate %s: %v", intent.ProfileName, err),
			}, nil
		}
		return done, Effect{
			Kind:   EffectExit,
			Notice: fmt.Sprintf("Active profile: %s\nCredential swapped. Any CLI tool now uses this account.", intent.ProfileName),
		}, nil

	case Login:
		if err != nil {
			return render, Effect{
				Kind:   EffectRender,
				Notice: fmt.Sprintf("Login for %s failed: %v", intent.ProfileName, err),
			}, nil
		}
		return render, Effect{
			Kind:   EffectRender,
			Notice: fmt.Sprintf("Logged in. Credential saved for %s.", intent.ProfileName),
		}, nil
	}
	return Machine{State: RunningChild, Running: &intent}, Effect{}, fmt.Errorf("%w: unknown intent %s", ErrInvalidTransition, intent.Kind)
}
