package auth

import (
	"context"
	"fmt"

	"github.com/ccm-dev/ccm/internal/runner"
)

// Store is the shared OS credential store. It holds one entry for
// ServiceName and offers no atomic upsert.
type Store interface {
	// Find returns the current entry, or nil when there is none.
	Find(ctx context.Context) (*Credential, error)
	// Add creates the entry. It fails if one already exists.
	Add(ctx context.Context, cred Credential) error
	// Delete removes the entry. A missing entry is not an error.
	Delete(ctx context.Context) error
}

// StoreError wraps a failed store command
type StoreError struct {
	Operation string
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("credential store %s failed: %v", e.Operation, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStore builds the store for backend. exec is used by command-line
// backends.
func NewStore(backend Backend, exec runner.Executor, account string) (Store, error) {
	switch backend.ResolveCurrent() {
	case BackendSecurity:
		return NewSecurityStore(exec, ServiceName), nil
	case BackendKeyring:
		return NewKeyringStore(ServiceName, account), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}
