package layout

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	exitVal := m.Run()
	os.Exit(exitVal)
}

type fakeContainer struct {
	bounds    Size
	offset    float64
	inset     Insets
	scrolling bool
	count     int
	visible   map[int]bool
}

func (c *fakeContainer) Bounds() Size           { return c.bounds }
func (c *fakeContainer) ContentOffset() float64 { return c.offset }
func (c *fakeContainer) ContentInset() Insets   { return c.inset }
func (c *fakeContainer) IsScrolling() bool      { return c.scrolling }
func (c *fakeContainer) ItemCount() int         { return c.count }
func (c *fakeContainer) IsItemVisible(index int) bool {
	return c.visible[index]
}

// newTestEngine returns an engine holding n items of height 100 spaced by 2,
// at offsets 0, 102, 204, ...
func newTestEngine(t *testing.T, n int) (*Engine, *fakeContainer) {
	t.Helper()
	c := &fakeContainer{bounds: Size{Width: 320, Height: 150}}
	e := New(c, WithOptions(Options{EstimatedItemHeight: 100, Spacing: 2}))
	e.Initialize(n)
	require.Equal(t, n, e.Len())
	return e, c
}

func offsets(e *Engine) []float64 {
	var out []float64
	for _, it := range e.current.All() {
		out = append(out, it.Offset)
	}
	return out
}

func heights(e *Engine) []float64 {
	var out []float64
	for _, it := range e.current.All() {
		out = append(out, it.Height)
	}
	return out
}

func requireStacked(t *testing.T, e *Engine) {
	t.Helper()
	spacing := e.Options().Spacing
	for i := 0; i+1 < e.current.Len(); i++ {
		below, _ := e.current.At(i)
		above, _ := e.current.At(i + 1)
		require.InDelta(t, below.MaxY()+spacing, above.Offset, 1e-9, "items %d and %d are not stacked", i, i+1)
	}
	if first, ok := e.current.At(0); ok {
		require.InDelta(t, 0, first.Offset, 1e-9, "bottom item must sit at offset 0")
	}
}
