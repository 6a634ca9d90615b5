package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPaths(t *testing.T) Paths {
	t.Helper()
	return Paths{Root: filepath.Join(t.TempDir(), ".ccm")}
}

func TestDefaultPathsHonoursEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	p, err := DefaultPaths()
	require.NoError(t, err)
	assert.Equal(t, dir, p.Root)
	assert.Equal(t, filepath.Join(dir, "profiles", "abc", "credential.json"), p.CredentialFile("abc"))
	assert.Equal(t, filepath.Join(dir, "profiles", "abc", ".claude"), p.AssistantConfigDir("abc"))
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	p := testPaths(t)

	cfg, err := Load(p)
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("default config mismatch (-want +got):\n%s", diff)
	}
	assert.DirExists(t, p.Root)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p := testPaths(t)
	want := &Config{
		Theme:               ThemeAura,
		DefaultProfileID:    "p-1",
		DirectoryProfileMap: map[string]string{"/work/acme": "p-1"},
		Backend:             "keyring",
	}
	require.NoError(t, Save(p, want))

	got, err := Load(p)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFillsMissingFields(t *testing.T) {
	p := testPaths(t)
	require.NoError(t, p.EnsureRoot())
	require.NoError(t, os.WriteFile(p.ConfigFile(), []byte(`{"defaultProfileId":"x"}`), 0o600))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, ThemeMidnight, cfg.Theme)
	assert.Equal(t, "x", cfg.DefaultProfileID)
	assert.NotNil(t, cfg.DirectoryProfileMap)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown theme", content: `{"theme":"neon"}`},
		{name: "map values must be strings", content: `{"directoryProfileMap":{"/x":1}}`},
		{name: "not an object", content: `[]`},
		{name: "unknown backend", content: `{"backend":"gpg"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPaths(t)
			require.NoError(t, p.EnsureRoot())
			require.NoError(t, os.WriteFile(p.ConfigFile(), []byte(tt.content), 0o600))

			_, err := Load(p)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config.json")
		})
	}
}

func TestValidateProfilesJSON(t *testing.T) {
	assert.NoError(t, ValidateProfilesJSON([]byte(`[{"id":"a","name":"Alice"}]`)))
	assert.NoError(t, ValidateProfilesJSON(nil))
	assert.Error(t, ValidateProfilesJSON([]byte(`[{"name":"no id"}]`)))
	assert.Error(t, ValidateProfilesJSON([]byte(`{"id":"a"}`)))
}

func TestWriteJSONPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	path := filepath.Join(t.TempDir(), "nested", "secret.json")
	require.NoError(t, WriteJSON(path, map[string]string{"k": "v"}, 0o600))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	var got map[string]string
	found, err := ReadJSON(path, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", got["k"])
}

func TestReadJSONMissingAndEmpty(t *testing.T) {
	dir := t.TempDir()
	var v map[string]any

	found, err := ReadJSON(filepath.Join(dir, "absent.json"), &v)
	require.NoError(t, err)
	assert.False(t, found)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))
	found, err = ReadJSON(empty, &v)
	require.NoError(t, err)
	assert.False(t, found)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0o600))
	_, err = ReadJSON(broken, &v)
	assert.Error(t, err)
}

func TestProfileForDir(t *testing.T) {
	cfg := &Config{DirectoryProfileMap: map[string]string{
		"/work":          "outer",
		"/work/acme":     "acme",
		"/work/acme-old": "old",
	}}

	tests := []struct {
		dir    string
		want   string
		wantOK bool
	}{
		{dir: "/work/acme", want: "acme", wantOK: true},
		{dir: "/work/acme/api/src", want: "acme", wantOK: true},
		{dir: "/work/acme-old/x", want: "old", wantOK: true},
		{dir: "/work/other", want: "outer", wantOK: true},
		{dir: "/home/me", want: "", wantOK: false},
		{dir: "/workshop", want: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			got, ok := cfg.ProfileForDir(tt.dir)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapUnmapForget(t *testing.T) {
	cfg := Default()
	cfg.MapDirectory("/a/b/", "p1")
	cfg.MapDirectory("/c", "p2")
	cfg.DefaultProfileID = "p1"

	id, ok := cfg.ProfileForDir("/a/b/c")
	require.True(t, ok)
	assert.Equal(t, "p1", id)

	assert.True(t, cfg.UnmapDirectory("/c"))
	assert.False(t, cfg.UnmapDirectory("/c"))

	cfg.ForgetProfile("p1")
	assert.Empty(t, cfg.DefaultProfileID)
	assert.Empty(t, cfg.DirectoryProfileMap)
}

func TestActiveMarker(t *testing.T) {
	p := testPaths(t)

	m, err := LoadActive(p)
	require.NoError(t, err)
	assert.Nil(t, m)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, SaveActive(p, "id-b", "Bob", at))

	m, err = LoadActive(p)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "id-b", m.ProfileID)
	assert.Equal(t, "Bob", m.ProfileName)
	assert.True(t, at.Equal(m.ActivatedAt))
}

func TestRepoRoot(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)
	nested := filepath.Join(root, "services", "api")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := RepoRoot(nested)
	require.NoError(t, err)
	wantRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)

	plain := t.TempDir()
	got, err = RepoRoot(plain)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}
