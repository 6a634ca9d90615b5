package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledIsNop(t *testing.T) {
	t.Setenv(DebugEnv, "")
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := New(Options{LogDir: dir})
	require.NoError(t, err)
	logger.Info("dropped")
	assert.NoDirExists(t, dir)
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		env   string
		debug bool
		want  bool
	}{
		{env: "", debug: false, want: false},
		{env: "", debug: true, want: true},
		{env: "1", want: true},
		{env: "TRUE", want: true},
		{env: "0", want: false},
		{env: "no", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(DebugEnv, tt.env)
			assert.Equal(t, tt.want, Options{Debug: tt.debug}.Enabled())
		})
	}
}

func TestWritesPrivateJSONFile(t *testing.T) {
	t.Setenv(DebugEnv, "")
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := New(Options{Debug: true, LogDir: dir})
	require.NoError(t, err)
	logger.Debug("hello")
	_ = logger.Sync()

	path := filepath.Join(dir, FileName)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"level":"debug"`)
}
