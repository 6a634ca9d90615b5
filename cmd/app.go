package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ccm-dev/ccm/internal/assistant"
	"github.com/ccm-dev/ccm/internal/auth"
	"github.com/ccm-dev/ccm/internal/config"
	"github.com/ccm-dev/ccm/internal/logging"
	"github.com/ccm-dev/ccm/internal/profile"
	"github.com/ccm-dev/ccm/internal/runner"
	"github.com/ccm-dev/ccm/internal/swap"
)

// overridden in tests
var (
	newExecutor = func() runner.Executor { return &runner.OS{} }
	newStore    = auth.NewStore
)

// app is everything a command needs, built once per invocation
type app struct {
	paths    config.Paths
	cfg      *config.Config
	theme    config.ThemeName // session override, empty when unset
	logger   *zap.Logger
	registry *profile.Registry
	vault    *auth.Vault
	swap     *swap.Coordinator
	claude   *assistant.CLI
}

func newApp() (*app, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(paths)
	if err != nil {
		return nil, err
	}
	// --theme applies to this run only and is never saved
	var theme config.ThemeName
	if themeFlag != "" {
		if theme, err = config.ValidateTheme(themeFlag); err != nil {
			return nil, err
		}
	}

	logger, err := logging.New(logging.Options{Debug: debugFlag, LogDir: paths.LogDir()})
	if err != nil {
		return nil, err
	}

	backend, err := auth.ValidateBackend(cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("invalid config.json: %w", err)
	}
	exec := newExecutor()
	store, err := newStore(backend, exec, "")
	if err != nil {
		return nil, err
	}

	vault := auth.NewVault(store, paths, logger.Named("vault"))
	claude := assistant.New(exec, paths)
	return &app{
		paths:    paths,
		cfg:      cfg,
		theme:    theme,
		logger:   logger,
		registry: profile.NewRegistry(paths, logger.Named("registry")),
		vault:    vault,
		swap:     swap.New(vault, claude, paths, logger.Named("swap")),
		claude:   claude,
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

// activeID is the profile recorded as occupying the store, if it still exists
func (a *app) activeID() string {
	marker, err := config.LoadActive(a.paths)
	if err != nil || marker == nil {
		return ""
	}
	if _, err := a.registry.Get(marker.ProfileID); err != nil {
		return ""
	}
	return marker.ProfileID
}

func (a *app) profileByName(name string) (*profile.Profile, error) {
	p, err := a.registry.FindByName(name)
	if errors.Is(err, profile.ErrProfileNotFound) {
		return nil, fmt.Errorf("profile %q not found", name)
	}
	return p, err
}

func target(p *profile.Profile) swap.Target {
	return swap.Target{ID: p.ID, Name: p.Name}
}

// launch swaps p in and runs the assistant in cwd until it exits
func (a *app) launch(ctx context.Context, p *profile.Profile, args []string, cwd string) error {
	if err := a.swap.SwapTo(ctx, target(p), a.activeID()); err != nil {
		return err
	}

	code, err := a.claude.Launch(ctx, p.ID, args, cwd)
	if err != nil {
		return err
	}
	if err := a.registry.Touch(p.ID); err != nil {
		a.logger.Warn("failed to record last use", zap.String("profile", p.ID), zap.Error(err))
	}
	if code != 0 {
		return &assistant.ExitError{Code: code}
	}
	return nil
}

// resolveLaunchProfile picks the profile for `launch`: explicit name, then
// the directory map, then the default profile, then the first one. fromDir
// reports whether the directory map decided.
func (a *app) resolveLaunchProfile(name, cwd string) (p *profile.Profile, fromDir bool, err error) {
	if name != "" {
		p, err := a.profileByName(name)
		return p, false, err
	}

	if id, ok := a.cfg.ProfileForDir(cwd); ok {
		if p, err := a.registry.Get(id); err == nil {
			return p, true, nil
		}
	}

	profiles, err := a.registry.List()
	if err != nil {
		return nil, false, err
	}
	if len(profiles) == 0 {
		return nil, false, errors.New("no profiles configured, run `ccm add` to create one")
	}
	if id := a.cfg.DefaultProfileID; id != "" {
		for i := range profiles {
			if profiles[i].ID == id {
				return &profiles[i], false, nil
			}
		}
	}
	return &profiles[0], false, nil
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
