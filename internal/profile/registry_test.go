package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccm-dev/ccm/internal/config"
)

func newTestRegistry(t *testing.T) (*Registry, config.Paths) {
	t.Helper()
	paths := config.Paths{Root: filepath.Join(t.TempDir(), ".ccm")}
	r := NewRegistry(paths, nil)
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return r, paths
}

func strPtr(s string) *string { return &s }

func TestCreateOnFreshInstall(t *testing.T) {
	r, paths := newTestRegistry(t)

	p, err := r.Create(Input{Name: "Alice", Company: "Acme", Email: "alice@acme.com", Color: "#818cf8"})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	assert.Nil(t, p.LastUsedAt)
	assert.DirExists(t, paths.AssistantConfigDir(p.ID))

	list, err := r.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	if diff := cmp.Diff(*p, list[0]); diff != "" {
		t.Fatalf("stored profile mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateAssignsUniqueIDsAndPaletteColors(t *testing.T) {
	r, _ := newTestRegistry(t)

	a, err := r.Create(Input{Name: "A", Email: "a@x.io"})
	require.NoError(t, err)
	b, err := r.Create(Input{Name: "B", Email: "b@x.io"})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, Colors[0], a.Color)
	assert.Equal(t, Colors[1], b.Color)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		want  string
	}{
		{name: "missing name", input: Input{Email: "a@b.c"}, want: "name is required"},
		{name: "missing email", input: Input{Name: "A"}, want: "email is required"},
		{name: "bad color", input: Input{Name: "A", Email: "a@b.c", Color: "red"}, want: "#rrggbb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRegistry(t)
			_, err := r.Create(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidProfile))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestUpdateMergesPatch(t *testing.T) {
	r, _ := newTestRegistry(t)
	p, err := r.Create(Input{Name: "Alice", Company: "Acme", Email: "alice@acme.com"})
	require.NoError(t, err)

	updated, err := r.Update(p.ID, Patch{Company: strPtr("Globex"), DefaultProjectDir: strPtr("/src/globex")})
	require.NoError(t, err)

	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "Globex", updated.Company)
	assert.Equal(t, "/src/globex", updated.DefaultProjectDir)
	assert.True(t, updated.UpdatedAt.After(p.UpdatedAt))
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)

	stored, err := r.Get(p.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(updated, stored); diff != "" {
		t.Fatalf("update not persisted (-want +got):\n%s", diff)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	r, paths := newTestRegistry(t)

	_, err := r.Update("missing", Patch{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.NoFileExists(t, paths.ProfilesFile())
}

func TestDeleteRemovesEntryAndDirectory(t *testing.T) {
	r, paths := newTestRegistry(t)
	a, err := r.Create(Input{Name: "A", Email: "a@x.io"})
	require.NoError(t, err)
	b, err := r.Create(Input{Name: "B", Email: "b@x.io"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(paths.CredentialFile(a.ID), []byte(`{}`), 0o600))

	ok, err := r.Delete(a.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoDirExists(t, paths.ProfileDir(a.ID))

	list, err := r.List()
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{b.ID}, ids)

	ok, err = r.Delete(a.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteSurvivesMissingDirectory(t *testing.T) {
	r, paths := newTestRegistry(t)
	p, err := r.Create(Input{Name: "A", Email: "a@x.io"})
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(paths.ProfileDir(p.ID)))

	ok, err := r.Delete(p.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTouchOnlyUpdatesLastUsed(t *testing.T) {
	r, _ := newTestRegistry(t)
	p, err := r.Create(Input{Name: "A", Email: "a@x.io"})
	require.NoError(t, err)

	require.NoError(t, r.Touch(p.ID))

	got, err := r.Get(p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastUsedAt)
	assert.True(t, got.LastUsedAt.After(p.UpdatedAt))
	if diff := cmp.Diff(p, got, cmpopts.IgnoreFields(Profile{}, "LastUsedAt")); diff != "" {
		t.Fatalf("touch changed more than lastUsedAt (-want +got):\n%s", diff)
	}

	assert.NoError(t, r.Touch("unknown"))
}

func TestFindByName(t *testing.T) {
	r, _ := newTestRegistry(t)
	p, err := r.Create(Input{Name: "Work", Email: "me@work.io"})
	require.NoError(t, err)

	got, err := r.FindByName("  wORk ")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = r.FindByName("home")
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.Contains(t, err.Error(), `"home"`)
}

func TestListRejectsCorruptFile(t *testing.T) {
	r, paths := newTestRegistry(t)
	require.NoError(t, paths.EnsureRoot())
	require.NoError(t, os.WriteFile(paths.ProfilesFile(), []byte(`[{"name":"no id"}]`), 0o600))

	_, err := r.List()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid profiles.json")
}

func TestListEmptyFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty", content: ""},
		{name: "whitespace", content: "\n  \n"},
		{name: "null", content: "null"},
		{name: "empty array", content: "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, paths := newTestRegistry(t)
			require.NoError(t, paths.EnsureRoot())
			require.NoError(t, os.WriteFile(paths.ProfilesFile(), []byte(tt.content), 0o600))

			list, err := r.List()
			require.NoError(t, err)
			assert.NotNil(t, list)
			assert.Empty(t, list)
		})
	}
}

func TestListReadsOriginalTimestampFormat(t *testing.T) {
	r, paths := newTestRegistry(t)
	require.NoError(t, paths.EnsureRoot())
	content := `[{"id":"1","name":"A","company":"","email":"a@x","color":"#818cf8",
	  "createdAt":"2025-06-01T10:00:00.000Z","updatedAt":"2025-06-01T10:00:00.000Z"}]`
	require.NoError(t, os.WriteFile(paths.ProfilesFile(), []byte(content), 0o600))

	list, err := r.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2025, list[0].CreatedAt.Year())
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{ago: 10 * time.Second, want: "just now"},
		{ago: 5 * time.Minute, want: "5 min ago"},
		{ago: 3 * time.Hour, want: "3h ago"},
		{ago: 50 * time.Hour, want: "2d ago"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeAgo(now.Add(-tt.ago), now))
		})
	}

	assert.Equal(t, "Never used", Profile{}.LastUsed(now))
}
