package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ccm-dev/ccm/internal/runner"
)

const securityBin = "security"

// security(1) exits with 44 when the item could not be found
const securityNotFound = 44

var acctPattern = regexp.MustCompile(`"acct"<blob>="([^"]*)"`)

// SecurityStore talks to the macOS login keychain through security(1)
type SecurityStore struct {
	exec    runner.Executor
	service string
}

// NewSecurityStore creates a store for the given keychain service
func NewSecurityStore(exec runner.Executor, service string) *SecurityStore {
	return &SecurityStore{exec: exec, service: service}
}

// Find reads the secret (-w) and then the account attribute
func (s *SecurityStore) Find(ctx context.Context) (*Credential, error) {
	res, err := s.exec.Run(ctx, runner.Command{
		Name: securityBin,
		Args: []string{"find-generic-password", "-s", s.service, "-w"},
	})
	if err != nil {
		return nil, &StoreError{Operation: "find", Err: err}
	}
	if res.ExitCode == securityNotFound {
		return nil, nil
	}
	if !res.Success() {
		return nil, &StoreError{Operation: "find", Err: commandFailure(res)}
	}

	cred := &Credential{Secret: strings.TrimSpace(res.Stdout)}

	// Without -w/-g only the attributes are printed, so the secret does
	// not pass through this call's output.
	attrs, err := s.exec.Run(ctx, runner.Command{
		Name: securityBin,
		Args: []string{"find-generic-password", "-s", s.service},
	})
	if err == nil && attrs.Success() {
		if m := acctPattern.FindStringSubmatch(attrs.Stdout + attrs.Stderr); m != nil {
			cred.Account = m[1]
		}
	}
	return cred, nil
}

// Add creates the keychain item. The command is fed to `security -i` on
// stdin so the secret never shows up in the process table. The result is
// read back because interactive mode does not report failures through its
// exit status.
func (s *SecurityStore) Add(ctx context.Context, cred Credential) error {
	script := fmt.Sprintf("add-generic-password -s %s -a %s -w %s -U\n",
		quoteArg(s.service), quoteArg(cred.Account), quoteArg(cred.Secret))

	res, err := s.exec.Run(ctx, runner.Command{
		Name:  securityBin,
		Args:  []string{"-i"},
		Stdin: script,
	})
	if err != nil {
		return &StoreError{Operation: "add", Err: err}
	}
	if !res.Success() {
		return &StoreError{Operation: "add", Err: commandFailure(res)}
	}

	got, err := s.Find(ctx)
	if err != nil {
		return &StoreError{Operation: "add", Err: err}
	}
	if got == nil || got.Secret != cred.Secret {
		return &StoreError{Operation: "add", Err: errors.New("entry not present after add")}
	}
	return nil
}

// Delete removes the keychain item; a missing item is fine
func (s *SecurityStore) Delete(ctx context.Context) error {
	res, err := s.exec.Run(ctx, runner.Command{
		Name: securityBin,
		Args: []string{"delete-generic-password", "-s", s.service},
	})
	if err != nil {
		return &StoreError{Operation: "delete", Err: err}
	}
	if res.Success() || res.ExitCode == securityNotFound {
		return nil
	}
	return &StoreError{Operation: "delete", Err: commandFailure(res)}
}

// quoteArg quotes v for the security -i command parser
func quoteArg(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(v) + `"`
}

// commandFailure describes a failed command without echoing its output,
// which may contain a secret.
func commandFailure(res runner.Result) error {
	return fmt.Errorf("exit status %d", res.ExitCode)
}
