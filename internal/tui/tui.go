// Package tui is the demo terminal app: a chat transcript fed by a simulated
// conversation, with the layout's geometry in a status bar.
package tui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/yumosx/anchor/internal/measure"
	"github.com/yumosx/anchor/internal/transcript"
	"github.com/yumosx/anchor/internal/tui/styles"
	"github.com/yumosx/anchor/internal/tui/util"
)

const seedMessages = 6

type Options struct {
	// EstimatedRows is the height given to a message until it is measured.
	EstimatedRows int
	// Gap is the number of blank rows between messages.
	Gap          int
	FeedInterval time.Duration
	Seed         uint64
	Paused       bool
}

// appModel is the root model.
type appModel struct {
	width, height int
	keyMap        KeyMap
	styles        styles.Styles

	transcript *transcript.Model
	feed       *Feed
	paused     bool
	lastAction string

	status    statusCmp
	help      help.Model
	search    textinput.Model
	searching bool
}

// New creates the demo app.
func New(ctx context.Context, opts Options) tea.Model {
	theme := styles.NewAnchorTheme()
	st := theme.Styles()

	t := transcript.New(
		measure.New(measure.WithRenderer(theme.Renderer())),
		transcript.WithContext(ctx),
		transcript.WithStyles(st.Transcript),
		transcript.WithEstimatedRows(opts.EstimatedRows),
		transcript.WithGap(opts.Gap),
	)
	feed := NewFeed(opts.Seed, opts.FeedInterval)
	seed := feed.Seed(seedMessages)
	for i := len(seed) - 1; i >= 0; i-- {
		t.Append(seed[i])
	}

	km := DefaultKeyMap()
	km.transcript = t.KeyMap()

	h := help.New()
	h.Styles = st.Help

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "find a message"

	return &appModel{
		keyMap:     km,
		styles:     st,
		transcript: t,
		feed:       feed,
		paused:     opts.Paused,
		status:     statusCmp{styles: st},
		help:       h,
		search:     search,
	}
}

func (a *appModel) Init() tea.Cmd {
	return a.feed.Tick()
}

func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.status.width = msg.Width
		return a, a.resize()
	case feedTickMsg:
		var cmd tea.Cmd
		if !a.paused {
			a.lastAction, cmd = a.feed.Step(a.transcript)
		}
		return a, tea.Batch(cmd, a.feed.Tick())
	case util.InfoMsg:
		a.status.setInfo(msg)
		return a, util.ClearAfter(msg)
	case util.ClearStatusMsg:
		a.status.clear()
		return a, nil
	case tea.KeyPressMsg:
		return a, a.handleKeyPressMsg(msg)
	}
	return a, a.transcript.Update(msg)
}

func (a *appModel) handleKeyPressMsg(msg tea.KeyPressMsg) tea.Cmd {
	if a.searching {
		switch {
		case key.Matches(msg, a.keyMap.Accept):
			query := a.search.Value()
			a.closeSearch()
			if !a.transcript.JumpTo(query) {
				return tea.Batch(a.resize(), util.ReportWarn("No message matches "+query))
			}
			return a.resize()
		case key.Matches(msg, a.keyMap.Cancel):
			a.closeSearch()
			return a.resize()
		}
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, a.keyMap.Quit):
		return tea.Quit
	case key.Matches(msg, a.keyMap.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a.resize()
	case key.Matches(msg, a.keyMap.Search):
		a.searching = true
		return tea.Batch(a.search.Focus(), a.resize())
	case key.Matches(msg, a.keyMap.Pause):
		a.paused = !a.paused
		return nil
	case key.Matches(msg, a.keyMap.Step):
		var cmd tea.Cmd
		a.lastAction, cmd = a.feed.Step(a.transcript)
		return cmd
	}
	return a.transcript.Update(msg)
}

func (a *appModel) closeSearch() {
	a.searching = false
	a.search.Blur()
	a.search.SetValue("")
}

// resize gives the transcript whatever the bars below it leave.
func (a *appModel) resize() tea.Cmd {
	a.help.SetWidth(a.width)
	a.search.SetWidth(max(a.width-4, 1))
	chrome := 1 + lipgloss.Height(a.help.View(a.keyMap))
	if a.searching {
		chrome++
	}
	return a.transcript.SetSize(a.width, max(a.height-chrome, 1))
}

func (a *appModel) View() tea.View {
	v := tea.NewView(a.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (a *appModel) render() string {
	parts := []string{a.transcript.View()}
	if a.searching {
		parts = append(parts, a.search.View())
	}
	parts = append(parts,
		a.status.View(a.transcript, a.lastAction, a.paused),
		a.help.View(a.keyMap),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
