// Package measure renders message bodies off the UI goroutine and reports
// how many terminal rows each one takes.
package measure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/yumosx/anchor/internal/ansiext"
	"github.com/yumosx/anchor/internal/csync"
	"github.com/yumosx/anchor/internal/layout"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency = 4
	defaultCacheSize   = 4096
)

// Kind selects how a body is rendered.
type Kind uint8

const (
	Plain Kind = iota
	Markdown
)

func (k Kind) String() string {
	if k == Markdown {
		return "markdown"
	}
	return "plain"
}

// Request asks for the rendering of one item.
type Request struct {
	ID      layout.ItemID
	Kind    Kind
	Content string
}

// Result is a rendered item. Key identifies the content and width it was
// rendered from, so a host can tell a stale result from a current one.
type Result struct {
	ID       layout.ItemID
	Key      uint64
	Height   int
	Rendered string
}

// ResultsMsg carries a finished batch back to the UI goroutine.
type ResultsMsg struct {
	Width   int
	Results []Result
	Err     error
}

// RenderFunc renders content at width.
type RenderFunc func(kind Kind, content string, width int) (string, error)

type Option func(*Measurer)

// WithConcurrency bounds the number of bodies rendered at once.
func WithConcurrency(n int) Option {
	return func(m *Measurer) {
		if n > 0 {
			m.limit = n
		}
	}
}

// WithRenderer replaces the default renderer.
func WithRenderer(fn RenderFunc) Option {
	return func(m *Measurer) {
		if fn != nil {
			m.render = fn
		}
	}
}

// WithCacheSize sets how many renderings are kept before the cache is
// dropped.
func WithCacheSize(n int) Option {
	return func(m *Measurer) {
		if n > 0 {
			m.cacheSize = n
		}
	}
}

// Measurer renders and measures batches of items. It is safe for
// concurrent use.
type Measurer struct {
	render    RenderFunc
	limit     int
	cacheSize int
	cache     *csync.Map[uint64, string]
}

func New(opts ...Option) *Measurer {
	m := &Measurer{
		render:    Render,
		limit:     defaultConcurrency,
		cacheSize: defaultCacheSize,
		cache:     csync.NewMap[uint64, string](),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Key hashes what a rendering depends on.
func Key(kind Kind, content string, width int) uint64 {
	h := xxh3.New()
	fmt.Fprintf(h, "%d-%d-", kind, width)
	_, _ = io.WriteString(h, content)
	return h.Sum64()
}

// Measure renders every request at width. Results keep the order of reqs.
func (m *Measurer) Measure(ctx context.Context, width int, reqs []Request) ([]Result, error) {
	if m.cache.Len() > m.cacheSize {
		slog.Debug("Dropping render cache", "entries", m.cache.Len())
		m.cache.Reset()
	}

	results := make([]Result, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.limit)
	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := Key(req.Kind, req.Content, width)
			out, ok := m.cache.Get(key)
			if !ok {
				var err error
				out, err = m.render(req.Kind, req.Content, width)
				if err != nil {
					return fmt.Errorf("rendering item %s: %w", req.ID, err)
				}
				m.cache.Set(key, out)
			}
			results[i] = Result{
				ID:       req.ID,
				Key:      key,
				Height:   lipgloss.Height(out),
				Rendered: out,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Cmd measures reqs in the background and delivers a ResultsMsg.
func (m *Measurer) Cmd(ctx context.Context, width int, reqs []Request) tea.Cmd {
	if len(reqs) == 0 {
		return nil
	}
	return func() tea.Msg {
		results, err := m.Measure(ctx, width, reqs)
		return ResultsMsg{Width: width, Results: results, Err: err}
	}
}

// Render is the default renderer: plain text is wrapped to width, markdown
// goes through glamour.
func Render(kind Kind, content string, width int) (string, error) {
	width = max(width, 1)
	if kind == Markdown && strings.TrimSpace(content) != "" {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("creating markdown renderer: %w", err)
		}
		out, err := r.Render(content)
		if err != nil {
			return "", fmt.Errorf("rendering markdown: %w", err)
		}
		return strings.Trim(out, "\n"), nil
	}
	return lipgloss.NewStyle().Width(width).Render(ansiext.Escape(content)), nil
}
