// Package transcript is a scrollable chat transcript for bubbletea. Rows are
// positioned by a bottom-anchored layout engine: the newest message sits at
// the bottom, history can be loaded above without moving what the user is
// reading, and heights measured after rendering are folded in as they arrive.
package transcript

import (
	"context"
	"math"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/google/uuid"
	"github.com/yumosx/anchor/internal/csync"
	"github.com/yumosx/anchor/internal/layout"
	"github.com/yumosx/anchor/internal/measure"
)

const (
	gutterWidth = 2
	headerRows  = 1

	// scrollSettle is how long after the last scroll input the user still
	// counts as scrolling.
	scrollSettle = 300 * time.Millisecond
)

type Role uint8

const (
	User Role = iota
	Assistant
	System
)

func (r Role) String() string {
	switch r {
	case Assistant:
		return "Assistant"
	case System:
		return "System"
	default:
		return "You"
	}
}

// Message is one transcript entry. An empty ID is filled in with a UUID.
type Message struct {
	ID      string
	Role    Role
	Kind    measure.Kind
	Content string
}

type entry struct {
	Message
	item layout.ItemID

	// key identifies the rendering in rendered; zero until the first
	// measurement lands and after the content or width changes.
	key      uint64
	inflight uint64
	rendered []string
}

type Styles struct {
	User        lipgloss.Style
	Assistant   lipgloss.Style
	System      lipgloss.Style
	Focused     lipgloss.Style
	Placeholder lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		User:        lipgloss.NewStyle().Foreground(charmtone.Malibu).Bold(true),
		Assistant:   lipgloss.NewStyle().Foreground(charmtone.Charple).Bold(true),
		System:      lipgloss.NewStyle().Foreground(charmtone.Squid).Italic(true),
		Focused:     lipgloss.NewStyle().Foreground(charmtone.Zest),
		Placeholder: lipgloss.NewStyle().Foreground(charmtone.Oyster),
	}
}

func (s Styles) header(r Role) lipgloss.Style {
	switch r {
	case Assistant:
		return s.Assistant
	case System:
		return s.System
	default:
		return s.User
	}
}

type Option func(*Model)

func WithKeyMap(km KeyMap) Option {
	return func(m *Model) {
		m.keyMap = km
	}
}

func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithEstimatedRows sets the height, header included, a message is given
// until it has been measured.
func WithEstimatedRows(rows int) Option {
	return func(m *Model) {
		if rows > 0 {
			m.rows = rows
		}
	}
}

// WithGap sets the number of blank rows between messages.
func WithGap(gap int) Option {
	return func(m *Model) {
		if gap >= 0 {
			m.gap = gap
		}
	}
}

// WithContext sets the context background measurements run under.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// Model is the transcript component. It implements layout.Container for
// its own engine, so it must be used through a pointer.
type Model struct {
	ctx      context.Context
	engine   *layout.Engine
	measurer *measure.Measurer
	keyMap   KeyMap
	styles   Styles
	rows     int
	gap      int

	// entries is ordered like the layout: index 0 is the newest message.
	entries []*entry
	byItem  *csync.Map[layout.ItemID, *entry]

	width, height int
	offset        float64
	ready         bool

	scrolling bool
	scrollSeq int
	// follow is set while the user reads the newest messages.
	follow bool

	focus string
}

func New(measurer *measure.Measurer, opts ...Option) *Model {
	if measurer == nil {
		measurer = measure.New()
	}
	m := &Model{
		ctx:      context.Background(),
		measurer: measurer,
		keyMap:   DefaultKeyMap(),
		styles:   DefaultStyles(),
		rows:     3,
		gap:      1,
		byItem:   csync.NewMap[layout.ItemID, *entry](),
		follow:   true,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.engine = layout.New(m, layout.WithOptions(layout.Options{
		EstimatedItemHeight: float64(m.rows),
		Spacing:             float64(m.gap),
	}))
	return m
}

// Bounds implements layout.Container.
func (m *Model) Bounds() layout.Size {
	return layout.Size{Width: float64(m.width), Height: float64(m.height)}
}

// ContentOffset implements layout.Container.
func (m *Model) ContentOffset() float64 {
	return m.offset
}

// ContentInset implements layout.Container.
func (m *Model) ContentInset() layout.Insets {
	return layout.Insets{}
}

// IsScrolling reports whether the user is scrolling or holds a reading
// position away from the newest message.
func (m *Model) IsScrolling() bool {
	return m.scrolling || !m.follow
}

// ItemCount implements layout.Container.
func (m *Model) ItemCount() int {
	return len(m.entries)
}

// IsItemVisible implements layout.Container.
func (m *Model) IsItemVisible(index int) bool {
	attrs, ok := m.engine.Item(index)
	if !ok {
		return false
	}
	h := m.contentHeight()
	top := attrs.Top(h)
	bottom := h - attrs.Offset
	return bottom > m.offset && top < m.offset+float64(m.height)
}

// Engine exposes the layout engine for inspection.
func (m *Model) Engine() *layout.Engine {
	return m.engine
}

func (m *Model) KeyMap() KeyMap {
	return m.keyMap
}

// Offset is the number of rows between the top of the content and the top
// of the viewport.
func (m *Model) Offset() float64 {
	return m.offset
}

func (m *Model) Len() int {
	return len(m.entries)
}

// Messages returns the messages newest first.
func (m *Model) Messages() []Message {
	msgs := make([]Message, len(m.entries))
	for i, e := range m.entries {
		msgs[i] = e.Message
	}
	return msgs
}

// Focused returns the focused message.
func (m *Model) Focused() (Message, bool) {
	i, ok := m.indexOf(m.focus)
	if !ok {
		return Message{}, false
	}
	return m.entries[i].Message, true
}

// AtBottom reports whether the newest row is fully in view.
func (m *Model) AtBottom() bool {
	return m.offset >= m.bottomOffset()-0.5
}

func (m *Model) indexOf(id string) (int, bool) {
	if id == "" {
		return 0, false
	}
	for i, e := range m.entries {
		if e.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (m *Model) contentHeight() float64 {
	return m.engine.ContentSize().Height
}

func (m *Model) contentWidth() int {
	return max(m.width-gutterWidth, 1)
}

func (m *Model) bottomOffset() float64 {
	return max(m.contentHeight()-float64(m.height), 0)
}

func (m *Model) clampOffset(v float64) float64 {
	return math.Round(min(max(v, 0), m.bottomOffset()))
}

func newEntry(msg Message) *entry {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	return &entry{Message: msg}
}
