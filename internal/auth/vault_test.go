package auth

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccm-dev/ccm/internal/config"
)

func newTestVault(t *testing.T, current *Credential) (*Vault, *MemoryStore, config.Paths) {
	t.Helper()
	paths := config.Paths{Root: t.TempDir()}
	store := NewMemoryStore(current)
	return NewVault(store, paths, nil), store, paths
}

func TestReadCurrent(t *testing.T) {
	ctx := context.Background()

	v, _, _ := newTestVault(t, nil)
	assert.Nil(t, v.ReadCurrent(ctx))

	v, _, _ = newTestVault(t, &Credential{Account: "a", Secret: "s"})
	assert.Equal(t, &Credential{Account: "a", Secret: "s"}, v.ReadCurrent(ctx))

	v, store, _ := newTestVault(t, &Credential{Account: "a", Secret: "s"})
	store.FindErr = errors.New("locked")
	assert.Nil(t, v.ReadCurrent(ctx), "read failures count as no credential")

	v, _, _ = newTestVault(t, &Credential{Account: "a"})
	assert.Nil(t, v.ReadCurrent(ctx), "an empty secret is no credential")
}

func TestWriteReplacesEntry(t *testing.T) {
	ctx := context.Background()
	v, store, _ := newTestVault(t, &Credential{Account: "old", Secret: "s-old"})

	require.NoError(t, v.Write(ctx, Credential{Account: "new", Secret: "s-new"}))
	assert.Equal(t, &Credential{Account: "new", Secret: "s-new"}, store.Current())
}

func TestWriteFailureLeavesStoreEmpty(t *testing.T) {
	ctx := context.Background()
	v, store, _ := newTestVault(t, &Credential{Account: "old", Secret: "s-old"})
	store.AddErr = errors.New("keychain locked")

	err := v.Write(ctx, Credential{Account: "new", Secret: "s-new"})
	require.ErrorIs(t, err, ErrVaultWriteFailed)
	var writeErr *VaultWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "add", writeErr.Operation)
	assert.Nil(t, store.Current())
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	v, store, _ := newTestVault(t, &Credential{Secret: "s"})
	require.NoError(t, v.Delete(ctx))
	require.NoError(t, v.Delete(ctx))
	assert.Nil(t, store.Current())
}

func TestBackupFromVault(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store writes nothing", func(t *testing.T) {
		v, _, paths := newTestVault(t, nil)
		ok, err := v.BackupFromVault(ctx, "p1")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, v.HasBackup("p1"))
		assert.NoFileExists(t, paths.CredentialFile("p1"))
	})

	t.Run("empty store keeps existing backup", func(t *testing.T) {
		v, store, _ := newTestVault(t, &Credential{Account: "a", Secret: "s"})
		ok, err := v.BackupFromVault(ctx, "p1")
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, store.Delete(ctx))
		ok, err = v.BackupFromVault(ctx, "p1")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, StatusAuthenticated, v.AuthStatus("p1"))
	})

	t.Run("writes private file", func(t *testing.T) {
		v, _, paths := newTestVault(t, &Credential{Account: "a", Secret: "s"})
		ok, err := v.BackupFromVault(ctx, "p1")
		require.NoError(t, err)
		assert.True(t, ok)

		info, err := os.Stat(paths.CredentialFile("p1"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		dir, err := os.Stat(paths.ProfileDir("p1"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o700), dir.Mode().Perm())

		data, err := os.ReadFile(paths.CredentialFile("p1"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"account":"a","password":"s"}`, string(data))
	})

	t.Run("write failure is reported", func(t *testing.T) {
		v, _, paths := newTestVault(t, &Credential{Secret: "s"})
		// a file where the profile directory should be
		require.NoError(t, os.MkdirAll(paths.ProfileDir(""), 0o700))
		require.NoError(t, os.WriteFile(paths.ProfileDir("blocked"), []byte("x"), 0o600))

		ok, err := v.BackupFromVault(ctx, "blocked")
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestRestoreToVault(t *testing.T) {
	ctx := context.Background()

	t.Run("missing backup leaves store alone", func(t *testing.T) {
		v, store, _ := newTestVault(t, &Credential{Secret: "current"})
		ok, err := v.RestoreToVault(ctx, "p1")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, "current", store.Current().Secret)
		assert.Zero(t, store.Writes())
	})

	t.Run("empty backup counts as missing", func(t *testing.T) {
		v, store, paths := newTestVault(t, nil)
		require.NoError(t, config.WriteJSON(paths.CredentialFile("p1"), Credential{Account: "a"}, 0o600))
		ok, err := v.RestoreToVault(ctx, "p1")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, store.Current())
	})

	t.Run("is idempotent", func(t *testing.T) {
		v, store, paths := newTestVault(t, nil)
		require.NoError(t, config.WriteJSON(paths.CredentialFile("p1"), Credential{Account: "a", Secret: "s"}, 0o600))

		for i := 0; i < 2; i++ {
			ok, err := v.RestoreToVault(ctx, "p1")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, &Credential{Account: "a", Secret: "s"}, store.Current())
		}
	})

	t.Run("store failure is surfaced", func(t *testing.T) {
		v, store, paths := newTestVault(t, nil)
		require.NoError(t, config.WriteJSON(paths.CredentialFile("p1"), Credential{Secret: "s"}, 0o600))
		store.AddErr = errors.New("locked")

		ok, err := v.RestoreToVault(ctx, "p1")
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrVaultWriteFailed)
	})
}

func TestBackupThenRestoreIsNoOp(t *testing.T) {
	ctx := context.Background()
	original := Credential{Account: "alice@example.com", Secret: "sk-alice"}
	v, store, _ := newTestVault(t, &original)

	ok, err := v.BackupFromVault(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = v.RestoreToVault(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, &original, store.Current())
}

func TestRemoveBackup(t *testing.T) {
	ctx := context.Background()
	v, _, _ := newTestVault(t, &Credential{Secret: "s"})

	_, err := v.BackupFromVault(ctx, "p1")
	require.NoError(t, err)
	require.True(t, v.HasBackup("p1"))

	require.NoError(t, v.RemoveBackup("p1"))
	assert.False(t, v.HasBackup("p1"))
	assert.Equal(t, StatusNoCredential, v.AuthStatus("p1"))
	require.NoError(t, v.RemoveBackup("p1"))
}

func TestHasBackupNeedsRestorableSecret(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{name: "secret", content: `{"account":"a@x.io","password":"s"}`, want: true},
		{name: "no secret", content: `{"account":"a@x.io"}`, want: false},
		{name: "empty secret", content: `{"account":"a@x.io","password":""}`, want: false},
		{name: "empty file", content: ``, want: false},
		{name: "truncated", content: `{"account":"a@x`, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _, paths := newTestVault(t, nil)
			require.NoError(t, os.MkdirAll(paths.ProfileDir("p1"), 0o700))
			require.NoError(t, os.WriteFile(paths.CredentialFile("p1"), []byte(tt.content), 0o600))

			assert.Equal(t, tt.want, v.HasBackup("p1"))
			want := StatusNoCredential
			if tt.want {
				want = StatusAuthenticated
			}
			assert.Equal(t, want, v.AuthStatus("p1"))
		})
	}
}
