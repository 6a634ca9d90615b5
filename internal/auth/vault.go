package auth

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ccm-dev/ccm/internal/config"
)

// Vault moves credentials between the shared store and per-profile backups
type Vault struct {
	store  Store
	paths  config.Paths
	logger *zap.Logger
}

// NewVault creates a vault over store. Backups live under paths.
func NewVault(store Store, paths config.Paths, logger *zap.Logger) *Vault {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Vault{store: store, paths: paths, logger: logger}
}

// ReadCurrent returns what the shared store holds. Any failure to read it
// counts as "no credential".
func (v *Vault) ReadCurrent(ctx context.Context) *Credential {
	cred, err := v.store.Find(ctx)
	if err != nil {
		v.logger.Debug("credential store read failed", zap.Error(err))
		return nil
	}
	if cred.Empty() {
		return nil
	}
	return cred
}

// Write replaces the shared store entry with cred. The store has no upsert,
// so the entry is deleted first; if the add then fails the store is empty.
func (v *Vault) Write(ctx context.Context, cred Credential) error {
	if err := v.store.Delete(ctx); err != nil {
		v.logger.Warn("failed to clear credential store before write", zap.Error(err))
	}
	if err := v.store.Add(ctx, cred); err != nil {
		v.logger.Error("credential store write failed", zap.Object("credential", cred), zap.Error(err))
		return &VaultWriteError{Operation: "add", Err: err}
	}
	v.logger.Debug("credential store written", zap.Object("credential", cred))
	return nil
}

// Delete clears the shared store. Deleting an empty store succeeds.
func (v *Vault) Delete(ctx context.Context) error {
	if err := v.store.Delete(ctx); err != nil {
		return fmt.Errorf("failed to clear credential store: %w", err)
	}
	return nil
}

// BackupFromVault copies the shared store into profileID's backup. It
// reports false, and leaves any existing backup alone, when the store holds
// no secret. The error is only set when the backup file cannot be written.
func (v *Vault) BackupFromVault(ctx context.Context, profileID string) (bool, error) {
	cred := v.ReadCurrent(ctx)
	if cred == nil {
		v.logger.Debug("nothing to back up", zap.String("profile", profileID))
		return false, nil
	}
	if err := v.saveBackup(profileID, *cred); err != nil {
		return false, err
	}
	v.logger.Info("credential backed up", zap.String("profile", profileID), zap.Object("credential", *cred))
	return true, nil
}

// RestoreToVault writes profileID's backup into the shared store. It reports
// false without touching the store when there is no usable backup.
func (v *Vault) RestoreToVault(ctx context.Context, profileID string) (bool, error) {
	cred, err := v.LoadBackup(profileID)
	if err != nil {
		v.logger.Warn("unreadable credential backup", zap.String("profile", profileID), zap.Error(err))
		return false, nil
	}
	if cred.Empty() {
		return false, nil
	}
	if err := v.Write(ctx, *cred); err != nil {
		return false, err
	}
	v.logger.Info("credential restored", zap.String("profile", profileID))
	return true, nil
}

// HasBackup reports whether profileID has a backup that can be restored. A
// missing, unreadable or secretless file does not count.
func (v *Vault) HasBackup(profileID string) bool {
	cred, err := v.LoadBackup(profileID)
	return err == nil && !cred.Empty()
}

// LoadBackup reads profileID's backup; nil when there is none
func (v *Vault) LoadBackup(profileID string) (*Credential, error) {
	var cred Credential
	found, err := config.ReadJSON(v.paths.CredentialFile(profileID), &cred)
	if err != nil || !found {
		return nil, err
	}
	return &cred, nil
}

// RemoveBackup deletes profileID's backup; a missing file is fine
func (v *Vault) RemoveBackup(profileID string) error {
	err := os.Remove(v.paths.CredentialFile(profileID))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove credential backup: %w", err)
	}
	return nil
}

// AuthStatus reports whether profileID holds a usable backup
func (v *Vault) AuthStatus(profileID string) Status {
	if !v.HasBackup(profileID) {
		return StatusNoCredential
	}
	return StatusAuthenticated
}

func (v *Vault) saveBackup(profileID string, cred Credential) error {
	if err := config.WriteJSON(v.paths.CredentialFile(profileID), cred, 0o600); err != nil {
		return fmt.Errorf("failed to save credential backup: %w", err)
	}
	return nil
}
