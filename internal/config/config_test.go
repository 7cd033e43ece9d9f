package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumosx/anchor/internal/env"
	"github.com/yumosx/anchor/internal/layout"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	exitVal := m.Run()
	os.Exit(exitVal)
}

func TestConfig_LoadFromReaders(t *testing.T) {
	t.Parallel()

	data1 := strings.NewReader(`{"options": {"debug": true, "tui": {"estimated_rows": 5}}}`)
	data2 := strings.NewReader(`{"options": {"tui": {"gap": 0}, "layout": {"spacing": 4}}}`)
	data3 := strings.NewReader(`{"options": {"data_directory": "state"}}`)

	cfg, err := loadFromReaders([]io.Reader{data1, data2, data3})
	require.NoError(t, err)

	assert.True(t, cfg.Options.Debug)
	assert.Equal(t, 5, cfg.Options.TUI.EstimatedRows)
	assert.Equal(t, 0, cfg.Options.TUI.Gap)
	assert.Equal(t, 4.0, cfg.Options.Layout.Spacing)
	assert.Equal(t, layout.DefaultEstimatedItemHeight, cfg.Options.Layout.EstimatedItemHeight)
	assert.Equal(t, "state", cfg.Options.DataDirectory)
}

func TestConfig_LoadFromReadersLaterWins(t *testing.T) {
	t.Parallel()

	cfg, err := loadFromReaders([]io.Reader{
		strings.NewReader(`{"options": {"tui": {"gap": 3}}}`),
		strings.NewReader(`{"options": {"tui": {"gap": 2}}}`),
	})
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Options.TUI.Gap)
}

func TestConfig_LoadFromReadersEmpty(t *testing.T) {
	t.Parallel()

	cfg, err := loadFromReaders(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestConfig_LoadReaderInvalid(t *testing.T) {
	t.Parallel()

	_, err := LoadReader(strings.NewReader(`{"options": {"tui": {"gap": "wide"}}}`))
	require.Error(t, err)
}

func TestConfig_setDefaults(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}
		cfg.setDefaults("/work")

		require.NotNil(t, cfg.Options)
		require.NotNil(t, cfg.Options.TUI)
		assert.Equal(t, defaultEstimatedRows, cfg.Options.TUI.EstimatedRows)
		assert.Equal(t, layout.DefaultEstimatedItemHeight, cfg.Options.Layout.EstimatedItemHeight)
		assert.Equal(t, filepath.Join("/work", defaultDataDirectory), cfg.Options.DataDirectory)
		assert.Equal(t, "/work", cfg.WorkingDir())
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()
		cfg := Default()
		cfg.Options.TUI.EstimatedRows = -1
		cfg.Options.TUI.Gap = -2
		cfg.Options.Layout.Spacing = -1
		cfg.setDefaults("/work")

		assert.Equal(t, defaultEstimatedRows, cfg.Options.TUI.EstimatedRows)
		assert.Equal(t, defaultGap, cfg.Options.TUI.Gap)
		assert.Equal(t, layout.DefaultSpacing, cfg.Options.Layout.Spacing)
	})

	t.Run("absolute data directory", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "data")
		cfg := Default()
		cfg.Options.DataDirectory = dir
		cfg.setDefaults("/work")

		assert.Equal(t, dir, cfg.Options.DataDirectory)
		assert.Equal(t, filepath.Join(dir, "logs", "anchor.log"), cfg.LogFile())
	})
}

func TestTUIOptions_Interval(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "", want: defaultFeedInterval},
		{in: "250ms", want: 250 * time.Millisecond},
		{in: "soon", wantErr: true},
		{in: "-1s", wantErr: true},
	} {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := TUIOptions{FeedInterval: tt.in}.Interval()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_load(t *testing.T) {
	testConfigDir = t.TempDir()
	t.Cleanup(func() { testConfigDir = "" })

	workDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Dir(globalConfig()), 0o755))
	require.NoError(t, os.WriteFile(globalConfig(), []byte(`{"options": {"tui": {"gap": 4, "estimated_rows": 2}}}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "anchor.json"), []byte(`{"options": {"tui": {"gap": 2}}}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".anchor.json"), []byte(`{"options": {"metrics_addr": "localhost:9999"}}`), 0o600))

	t.Run("files merge in order", func(t *testing.T) {
		cfg, err := load(workDir, false, env.NewFromMap(nil))
		require.NoError(t, err)

		assert.Equal(t, 2, cfg.Options.TUI.Gap)
		assert.Equal(t, 2, cfg.Options.TUI.EstimatedRows)
		assert.Equal(t, "localhost:9999", cfg.Options.MetricsAddr)
		assert.False(t, cfg.Options.Debug)
		assert.Equal(t, filepath.Join(workDir, defaultDataDirectory), cfg.Options.DataDirectory)
	})

	t.Run("environment overrides", func(t *testing.T) {
		cfg, err := load(workDir, false, env.NewFromMap(map[string]string{
			"ANCHOR_DEBUG":    "1",
			"ANCHOR_DATA_DIR": "elsewhere",
		}))
		require.NoError(t, err)

		assert.True(t, cfg.Options.Debug)
		assert.Equal(t, filepath.Join(workDir, "elsewhere"), cfg.Options.DataDirectory)
	})

	t.Run("data directory expands variables", func(t *testing.T) {
		state := t.TempDir()
		cfg, err := load(workDir, false, env.NewFromMap(map[string]string{
			"ANCHOR_DATA_DIR": "$STATE_ROOT/anchor",
			"STATE_ROOT":      state,
		}))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(state, "anchor"), cfg.Options.DataDirectory)
	})

	t.Run("debug flag wins", func(t *testing.T) {
		cfg, err := load(workDir, true, env.NewFromMap(map[string]string{"ANCHOR_DEBUG": "false"}))
		require.NoError(t, err)
		assert.True(t, cfg.Options.Debug)
	})

	t.Run("bad feed interval", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "anchor.json"), []byte(`{"options": {"tui": {"feed_interval": "often"}}}`), 0o600))
		_, err := load(dir, false, env.NewFromMap(nil))
		require.ErrorContains(t, err, "feed_interval")
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".anchor.json"), []byte(`{"options": `), 0o600))
		_, err := load(dir, false, env.NewFromMap(nil))
		require.Error(t, err)
	})
}

func TestSetField(t *testing.T) {
	t.Parallel()

	t.Run("creates file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "nested", "anchor.json")

		require.NoError(t, SetField(path, "options.tui.gap", "2"))
		require.NoError(t, SetField(path, "options.metrics_addr", "localhost:6060"))
		require.NoError(t, SetField(path, "options.debug", "true"))

		fd, err := os.Open(path)
		require.NoError(t, err)
		defer fd.Close()
		cfg, err := LoadReader(fd)
		require.NoError(t, err)

		assert.Equal(t, 2, cfg.Options.TUI.Gap)
		assert.Equal(t, "localhost:6060", cfg.Options.MetricsAddr)
		assert.True(t, cfg.Options.Debug)
	})

	t.Run("keeps existing fields", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "anchor.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"$schema": "https://example.com/anchor.json", "options": {"debug": true}}`), 0o600))

		require.NoError(t, SetField(path, "options.layout.spacing", "8"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		cfg, err := LoadReader(strings.NewReader(string(data)))
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/anchor.json", cfg.Schema)
		assert.True(t, cfg.Options.Debug)
		assert.Equal(t, 8.0, cfg.Options.Layout.Spacing)
	})

	t.Run("rejects mistyped value", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "anchor.json")

		require.Error(t, SetField(path, "options.tui.gap", "wide"))
		_, err := os.Stat(path)
		require.True(t, os.IsNotExist(err))
	})

	t.Run("rejects empty key", func(t *testing.T) {
		t.Parallel()
		require.Error(t, SetField(filepath.Join(t.TempDir(), "anchor.json"), "", "1"))
	})
}

func TestMerge(t *testing.T) {
	t.Parallel()

	got, err := Merge([]io.Reader{
		strings.NewReader(`{"a": {"b": 1, "c": 2}}`),
		strings.NewReader(`{"a": {"c": 3}}`),
	})
	require.NoError(t, err)

	data, err := io.ReadAll(got)
	require.NoError(t, err)
	require.JSONEq(t, `{"a": {"b": 1, "c": 3}}`, string(data))
}

func TestSchema(t *testing.T) {
	t.Parallel()

	schema := Schema()
	require.Equal(t, "Anchor Configuration", schema.Title)

	options, ok := schema.Properties.Get("options")
	require.True(t, ok)
	require.NotNil(t, options)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	require.Contains(t, string(data), "estimated_rows")
	require.Contains(t, string(data), "metrics_addr")
}
