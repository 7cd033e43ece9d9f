package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumosx/anchor/internal/measure"
)

func TestHex(t *testing.T) {
	t.Parallel()

	got := hex(NewAnchorTheme().FgBase)
	assert.Len(t, got, 7)
	assert.True(t, strings.HasPrefix(got, "#"))
}

func TestRenderer(t *testing.T) {
	t.Parallel()

	render := NewAnchorTheme().Renderer()

	t.Run("markdown", func(t *testing.T) {
		t.Parallel()
		out, err := render(measure.Markdown, "## Plan\n\n- one\n- two", 30)
		require.NoError(t, err)
		plain := ansi.Strip(out)
		assert.Contains(t, plain, "Plan")
		assert.Contains(t, plain, "• one")
	})

	t.Run("plain passes through", func(t *testing.T) {
		t.Parallel()
		out, err := render(measure.Plain, "## not a heading", 40)
		require.NoError(t, err)
		assert.Contains(t, out, "## not a heading")
	})
}
