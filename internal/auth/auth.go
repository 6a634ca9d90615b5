// Package auth moves the assistant's credential in and out of the shared OS
// credential store and keeps per-profile backups of it.
package auth

import (
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap/zapcore"
)

// ServiceName is the OS store entry the assistant CLI reads its credential from
const ServiceName = "Claude Code-credentials"

var (
	// ErrNoCredential is returned when no usable credential is available
	ErrNoCredential = errors.New("no credential available")

	// ErrVaultWriteFailed is returned when the shared store could not be written
	ErrVaultWriteFailed = errors.New("failed to write credential to the OS store")
)

// Credential mirrors exactly what the shared OS store holds. The secret is
// never rendered by String, GoString or the zap encoder.
type Credential struct {
	Account string `json:"account"`
	Secret  string `json:"password"`
}

// Empty reports whether the credential carries no secret
func (c *Credential) Empty() bool {
	return c == nil || c.Secret == ""
}

func (c Credential) String() string {
	return fmt.Sprintf("Credential{account: %q, secret: <%d bytes>}", c.Account, len(c.Secret))
}

// GoString keeps %#v from leaking the secret
func (c Credential) GoString() string {
	return c.String()
}

// MarshalLogObject implements zapcore.ObjectMarshaler
func (c Credential) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("account", c.Account)
	enc.AddInt("secretLen", len(c.Secret))
	return nil
}

// VaultWriteError reports a store write that left the store without the
// intended credential. After a failed add the store is empty.
type VaultWriteError struct {
	Operation string
	Err       error
}

func (e *VaultWriteError) Error() string {
	return fmt.Sprintf("credential store %s failed, the store may now be empty: %v", e.Operation, e.Err)
}

func (e *VaultWriteError) Unwrap() []error {
	return []error{ErrVaultWriteFailed, e.Err}
}

// Backend selects the OS store implementation
type Backend string

const (
	// BackendAuto picks security on macOS and the system keyring elsewhere.
	// Off macOS the assistant keeps its login in <config dir>/.credentials.json
	// rather than the keyring, so a login there is reported as storing no
	// credential.
	BackendAuto Backend = "auto"
	// BackendSecurity shells out to macOS security(1)
	BackendSecurity Backend = "security"
	// BackendKeyring uses Secret Service / Windows Credential Manager
	BackendKeyring Backend = "keyring"
)

// ValidateBackend checks if the given string is a valid Backend
func ValidateBackend(backend string) (Backend, error) {
	switch Backend(backend) {
	case "", BackendAuto:
		return BackendAuto, nil
	case BackendSecurity:
		return BackendSecurity, nil
	case BackendKeyring:
		return BackendKeyring, nil
	default:
		return "", fmt.Errorf("invalid backend %q: must be 'auto', 'security' or 'keyring'", backend)
	}
}

// Resolve turns BackendAuto into a concrete backend for goos
func (b Backend) Resolve(goos string) Backend {
	if b != BackendAuto && b != "" {
		return b
	}
	if goos == "darwin" {
		return BackendSecurity
	}
	return BackendKeyring
}

// ResolveCurrent resolves b for the running platform
func (b Backend) ResolveCurrent() Backend {
	return b.Resolve(runtime.GOOS)
}

// Status is the credential state of one profile
type Status string

const (
	StatusAuthenticated Status = "authenticated"
	StatusNoCredential  Status = "no-credential"
)
