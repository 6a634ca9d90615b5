package auth

import (
	"context"
	"errors"
	"os/user"

	"github.com/zalando/go-keyring"
)

// KeyringStore uses the platform keyring (Secret Service on Linux, Windows
// Credential Manager, Keychain via go-keyring). Entries are keyed by service
// and a fixed account.
type KeyringStore struct {
	service string
	account string
}

// NewKeyringStore creates a keyring-backed store. An empty account falls
// back to the current OS user name.
func NewKeyringStore(service, account string) *KeyringStore {
	if account == "" {
		if u, err := user.Current(); err == nil {
			account = u.Username
		}
	}
	return &KeyringStore{service: service, account: account}
}

// Find returns the stored secret for the configured account
func (s *KeyringStore) Find(ctx context.Context) (*Credential, error) {
	secret, err := withContext(ctx, "get", func() (string, error) {
		return keyring.Get(s.service, s.account)
	})
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &Credential{Account: s.account, Secret: secret}, nil
}

// Add stores the secret under the configured account. go-keyring has no
// create-only call, so an existing entry is reported as an error to keep
// Store's contract.
func (s *KeyringStore) Add(ctx context.Context, cred Credential) error {
	existing, err := s.Find(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		return &StoreError{Operation: "add", Err: errors.New("entry already exists")}
	}
	_, err = withContext(ctx, "set", func() (string, error) {
		return "", keyring.Set(s.service, s.account, cred.Secret)
	})
	return err
}

// Delete removes the entry; a missing entry is fine
func (s *KeyringStore) Delete(ctx context.Context) error {
	_, err := withContext(ctx, "delete", func() (string, error) {
		return "", keyring.Delete(s.service, s.account)
	})
	if err != nil && errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// withContext runs a blocking keyring call, giving up when ctx is done.
// Secret Service calls can hang on a locked collection.
func withContext(ctx context.Context, op string, fn func() (string, error)) (string, error) {
	type result struct {
		value string
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{value: v, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return "", &StoreError{Operation: op, Err: r.err}
		}
		return r.value, nil
	case <-ctx.Done():
		return "", &StoreError{Operation: op, Err: ctx.Err()}
	}
}
