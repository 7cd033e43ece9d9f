package tui

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumosx/anchor/internal/transcript"
	"github.com/yumosx/anchor/internal/tui/util"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) *appModel {
	t.Helper()
	a, ok := New(t.Context(), Options{EstimatedRows: 3, Gap: 1, Seed: 1, Paused: true}).(*appModel)
	require.True(t, ok)
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return a
}

func TestFeed(t *testing.T) {
	t.Parallel()

	t.Run("seed is newest first", func(t *testing.T) {
		t.Parallel()
		msgs := NewFeed(1, 0).Seed(4)
		require.Len(t, msgs, 4)
		assert.Equal(t, transcript.Assistant, msgs[0].Role)
		assert.Equal(t, transcript.User, msgs[3].Role)
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		a, b := NewFeed(7, 0), NewFeed(7, 0)
		assert.Equal(t, a.Seed(5), b.Seed(5))
	})

	t.Run("steps change the transcript", func(t *testing.T) {
		t.Parallel()
		tr := transcript.New(nil, transcript.WithEstimatedRows(2))
		f := NewFeed(3, 0)
		for _, msg := range f.Seed(4) {
			tr.Append(msg)
		}
		tr.SetSize(60, 20)

		seen := map[string]bool{}
		for range 200 {
			action, _ := f.Step(tr)
			seen[action] = true
			require.Equal(t, tr.Len(), tr.Engine().Len())
		}
		for _, action := range []string{"message", "reply", "stream", "history", "delete", "move"} {
			assert.True(t, seen[action], action)
		}
	})
}

func TestApp(t *testing.T) {
	t.Parallel()

	t.Run("view", func(t *testing.T) {
		t.Parallel()
		a := newTestApp(t)
		assert.True(t, a.View().AltScreen)
		plain := ansi.Strip(a.render())
		assert.Contains(t, plain, "PAUSED")
		assert.Contains(t, plain, "msgs 6")
		assert.GreaterOrEqual(t, len(strings.Split(plain, "\n")), 20)
	})

	t.Run("pause and step", func(t *testing.T) {
		t.Parallel()
		a := newTestApp(t)

		a.Update(feedTickMsg{})
		assert.Empty(t, a.lastAction)

		a.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
		assert.NotEmpty(t, a.lastAction)

		a.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
		assert.False(t, a.paused)
	})

	t.Run("search shrinks the transcript", func(t *testing.T) {
		t.Parallel()
		a := newTestApp(t)
		before := a.transcript.Bounds().Height

		a.Update(tea.KeyPressMsg{Code: '/', Text: "/"})
		require.True(t, a.searching)
		assert.Equal(t, before-1, a.transcript.Bounds().Height)

		a.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
		assert.False(t, a.searching)
		assert.Equal(t, before, a.transcript.Bounds().Height)
	})

	t.Run("status info", func(t *testing.T) {
		t.Parallel()
		a := newTestApp(t)
		_, cmd := a.Update(util.InfoMsg{Msg: "copied"})
		assert.NotNil(t, cmd)
		assert.Contains(t, ansi.Strip(a.render()), "copied")

		a.Update(util.ClearStatusMsg{})
		assert.NotContains(t, ansi.Strip(a.render()), "copied")
	})

	t.Run("quit", func(t *testing.T) {
		t.Parallel()
		a := newTestApp(t)
		_, cmd := a.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})
}
