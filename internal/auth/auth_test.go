package auth

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCredentialNeverRendersSecret(t *testing.T) {
	cred := Credential{Account: "alice@example.com", Secret: "sk-ant-topsecret"}

	for _, s := range []string{
		cred.String(),
		fmt.Sprintf("%v", cred),
		fmt.Sprintf("%+v", cred),
		fmt.Sprintf("%#v", cred),
		fmt.Sprintf("%s", &cred),
	} {
		assert.NotContains(t, s, cred.Secret)
		assert.Contains(t, s, "alice@example.com")
	}
}

func TestCredentialLogObject(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	cred := Credential{Account: "alice@example.com", Secret: "sk-ant-topsecret"}
	logger.Info("test", zap.Object("credential", cred))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	obj, ok := fields["credential"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", obj["account"])
	assert.EqualValues(t, len(cred.Secret), obj["secretLen"])
	assert.NotContains(t, fmt.Sprint(fields), cred.Secret)
}

func TestCredentialEmpty(t *testing.T) {
	var nilCred *Credential
	assert.True(t, nilCred.Empty())
	assert.True(t, (&Credential{Account: "a"}).Empty())
	assert.False(t, (&Credential{Secret: "s"}).Empty())
}

func TestValidateBackend(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Backend
		wantErr bool
	}{
		{name: "empty means auto", input: "", want: BackendAuto},
		{name: "auto", input: "auto", want: BackendAuto},
		{name: "security", input: "security", want: BackendSecurity},
		{name: "keyring", input: "keyring", want: BackendKeyring},
		{name: "unknown", input: "vault", wantErr: true},
		{name: "case sensitive", input: "Keyring", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateBackend(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBackendResolve(t *testing.T) {
	assert.Equal(t, BackendSecurity, BackendAuto.Resolve("darwin"))
	assert.Equal(t, BackendKeyring, BackendAuto.Resolve("linux"))
	assert.Equal(t, BackendKeyring, BackendAuto.Resolve("windows"))
	assert.Equal(t, BackendKeyring, BackendKeyring.Resolve("darwin"))
	assert.Equal(t, BackendSecurity, BackendSecurity.Resolve("linux"))
}

func TestVaultWriteErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := error(&VaultWriteError{Operation: "add", Err: cause})
	assert.ErrorIs(t, err, ErrVaultWriteFailed)
	assert.ErrorIs(t, err, cause)
}
