// Package swap moves the shared OS credential store from one profile to
// another. It is the only code that mutates the store.
package swap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ccm-dev/ccm/internal/auth"
	"github.com/ccm-dev/ccm/internal/config"
)

// ErrLoginFailed is returned when the login flow exits non-zero
var ErrLoginFailed = errors.New("login failed")

// LoginError carries the exit status of a failed login
type LoginError struct {
	ExitCode int
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("login failed or was cancelled (exit status %d)", e.ExitCode)
}

func (e *LoginError) Unwrap() error {
	return ErrLoginFailed
}

// LoginRunner runs the interactive login flow for one profile and returns
// its exit status. On success the fresh credential is in the shared store.
type LoginRunner interface {
	Login(ctx context.Context, profileID string) (int, error)
}

// Target is the profile being switched to
type Target struct {
	ID   string
	Name string
}

// Coordinator runs the swap protocol
type Coordinator struct {
	vault  *auth.Vault
	login  LoginRunner
	paths  config.Paths
	logger *zap.Logger
	now    func() time.Time
}

// New creates a coordinator. The active marker is written under paths.
func New(vault *auth.Vault, login LoginRunner, paths config.Paths, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		vault:  vault,
		login:  login,
		paths:  paths,
		logger: logger,
		now:    time.Now,
	}
}

// SwapTo makes target's credential the one in the shared store. currentID
// is the profile believed to occupy the store now, or empty.
//
// The current credential is backed up first. A target without a backup goes
// through login. Any failure aborts the swap and is returned as is.
func (c *Coordinator) SwapTo(ctx context.Context, target Target, currentID string) error {
	log := c.logger.With(zap.String("target", target.ID), zap.String("current", currentID))

	if err := c.backupCurrent(ctx, currentID); err != nil {
		return err
	}

	if !c.vault.HasBackup(target.ID) {
		log.Info("no stored credential, starting login")
		if err := c.loginAndBackup(ctx, target); err != nil {
			return err
		}
	}

	restored, err := c.vault.RestoreToVault(ctx, target.ID)
	if err != nil {
		log.Error("restore failed", zap.Error(err))
		return err
	}
	if !restored {
		return fmt.Errorf("no stored credential for %s: %w", target.Name, auth.ErrNoCredential)
	}

	if err := c.markActive(target); err != nil {
		return err
	}
	log.Info("swapped credential")
	return nil
}

// Login runs the login flow for target and keeps the resulting credential
// as its backup. The current credential is backed up first because login
// replaces whatever the store holds.
func (c *Coordinator) Login(ctx context.Context, target Target, currentID string) error {
	if err := c.backupCurrent(ctx, currentID); err != nil {
		return err
	}
	if err := c.loginAndBackup(ctx, target); err != nil {
		return err
	}
	return c.markActive(target)
}

// backupCurrent saves the store into currentID's backup. This includes a
// swap to the active profile itself, which keeps a token the assistant
// refreshed since the last swap.
func (c *Coordinator) backupCurrent(ctx context.Context, currentID string) error {
	if currentID == "" {
		return nil
	}
	saved, err := c.vault.BackupFromVault(ctx, currentID)
	if err != nil {
		return fmt.Errorf("failed to back up the active credential: %w", err)
	}
	c.logger.Debug("backed up current credential", zap.String("profile", currentID), zap.Bool("saved", saved))
	return nil
}

// loginAndBackup runs the login flow and saves what it stored as target's
// backup. An empty or unchanged store afterwards means the login stored
// nothing for target, and no backup is written.
func (c *Coordinator) loginAndBackup(ctx context.Context, target Target) error {
	before := c.vault.ReadCurrent(ctx)

	code, err := c.login.Login(ctx, target.ID)
	if err != nil {
		return fmt.Errorf("failed to run login for %s: %w", target.Name, err)
	}
	if code != 0 {
		c.logger.Warn("login exited non-zero", zap.String("profile", target.ID), zap.Int("exitCode", code))
		return &LoginError{ExitCode: code}
	}

	after := c.vault.ReadCurrent(ctx)
	if after == nil || (before != nil && after.Secret == before.Secret) {
		c.logger.Warn("login left no new credential", zap.String("profile", target.ID), zap.Bool("storeEmpty", after == nil))
		return fmt.Errorf("login finished but no credential was stored for %s: %w", target.Name, auth.ErrNoCredential)
	}

	saved, err := c.vault.BackupFromVault(ctx, target.ID)
	if err != nil {
		return err
	}
	if !saved {
		return fmt.Errorf("login finished but no credential was stored for %s: %w", target.Name, auth.ErrNoCredential)
	}
	return nil
}

func (c *Coordinator) markActive(target Target) error {
	if err := config.SaveActive(c.paths, target.ID, target.Name, c.now()); err != nil {
		return fmt.Errorf("failed to record active profile: %w", err)
	}
	return nil
}
