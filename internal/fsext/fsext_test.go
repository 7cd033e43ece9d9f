package fsext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	env := map[string]string{"HOME": "/home/me", "STATE": "state"}
	lookup := func(k string) string { return env[k] }

	for in, want := range map[string]string{
		"":              "",
		".anchor":       ".anchor",
		"$STATE/logs":   "state/logs",
		"${STATE}-dir":  "state-dir",
		"~/anchor":      "/home/me/anchor",
		"$MISSING/data": "/data",
	} {
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			got, err := Expand(in, lookup)
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}

	t.Run("unterminated", func(t *testing.T) {
		t.Parallel()
		_, err := Expand("${STATE", lookup)
		require.Error(t, err)
	})
}

func TestGlob(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yaml", "nested/c.yaml", "nested/skip.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o600))
	}

	got, err := Glob(filepath.Join(dir, "**", "*.yaml"))
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "nested", "c.yaml"),
	}, got)

	require.True(t, IsPattern("scripts/*.yaml"))
	require.False(t, IsPattern("scripts/a.yaml"))
}
