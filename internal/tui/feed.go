package tui

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/yumosx/anchor/internal/measure"
	"github.com/yumosx/anchor/internal/transcript"
)

const defaultFeedInterval = 1200 * time.Millisecond

type feedTickMsg struct{}

var (
	questions = []string{
		"Why does the list jump when an old message finishes rendering?",
		"Can you load the earlier part of the conversation?",
		"What happens to a row that is deleted mid-scroll?",
		"How are heights estimated before a row is measured?",
		"Show me the offsets after a resize.",
	}
	answers = []string{
		"Rows are positioned from the **bottom** of the content, so growth above the viewport is absorbed by moving the offset.",
		"Older messages are inserted above the oldest row and the distance from the bottom is restored afterwards:\n\n- capture the anchor\n- apply the inserts\n- scroll to `height - anchor`",
		"A deleted row is removed by id. Every row above it moves down by its height plus the spacing.",
		"Each new row starts at an *estimated* height. The real height arrives later and every row above shifts by the difference.",
		"```\noffset  height\n0       4\n5       3\n9       2\n```",
	}
	followUps = []string{
		"The anchor only applies when the content is taller than the viewport.",
		"Measurements for removed rows are dropped.",
		"Moves are a delete followed by an insert, so the row is measured again.",
	}
)

// Feed plays a simulated conversation into a transcript.
type Feed struct {
	rng      *rand.Rand
	interval time.Duration
	turn     int
	history  int
	// streaming is the assistant message still receiving text.
	streaming string
}

func NewFeed(seed uint64, interval time.Duration) *Feed {
	if interval <= 0 {
		interval = defaultFeedInterval
	}
	return &Feed{
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		interval: interval,
	}
}

// Tick schedules the next feed event.
func (f *Feed) Tick() tea.Cmd {
	return tea.Tick(f.interval, func(time.Time) tea.Msg {
		return feedTickMsg{}
	})
}

// Seed returns the messages a transcript starts with, newest first.
func (f *Feed) Seed(n int) []transcript.Message {
	msgs := make([]transcript.Message, 0, n)
	for range n {
		msgs = append(msgs, f.next())
	}
	// next produces oldest first
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs
}

func (f *Feed) next() transcript.Message {
	f.turn++
	if f.turn%2 == 1 {
		return transcript.Message{
			Role:    transcript.User,
			Content: questions[f.rng.IntN(len(questions))],
		}
	}
	return transcript.Message{
		Role:    transcript.Assistant,
		Kind:    measure.Markdown,
		Content: answers[f.rng.IntN(len(answers))],
	}
}

// Step applies one event to t and names it.
func (f *Feed) Step(t *transcript.Model) (string, tea.Cmd) {
	msgs := t.Messages()
	if f.streaming != "" {
		for _, msg := range msgs {
			if msg.ID == f.streaming {
				id := f.streaming
				f.streaming = ""
				return "stream", t.Edit(id, msg.Content+"\n\n"+followUps[f.rng.IntN(len(followUps))])
			}
		}
		f.streaming = ""
	}

	roll := f.rng.IntN(100)
	switch {
	case roll < 10 && len(msgs) > 3:
		victim := msgs[1+f.rng.IntN(len(msgs)-1)]
		return "delete", t.Remove(victim.ID)
	case roll < 20 && len(msgs) > 3:
		moved := msgs[1+f.rng.IntN(len(msgs)-1)]
		return "move", t.MoveToBottom(moved.ID)
	case roll < 30:
		return "history", t.Prepend(f.older(1 + f.rng.IntN(3))...)
	case roll < 35:
		return "notice", t.Append(transcript.Message{
			Role:    transcript.System,
			Content: fmt.Sprintf("%d messages in the conversation", len(msgs)+1),
		})
	}

	msg := f.next()
	if msg.Role == transcript.Assistant {
		msg.Content = firstParagraph(msg.Content)
		cmd := t.Append(msg)
		if newest := t.Messages(); len(newest) > 0 {
			f.streaming = newest[0].ID
		}
		return "reply", cmd
	}
	return "message", t.Append(msg)
}

// older makes n history messages, newest first.
func (f *Feed) older(n int) []transcript.Message {
	msgs := make([]transcript.Message, n)
	for i := range msgs {
		f.history++
		msgs[i] = transcript.Message{
			Role:    transcript.System,
			Content: fmt.Sprintf("Earlier message %d from the archive.", f.history),
		}
	}
	return msgs
}

func firstParagraph(s string) string {
	before, _, _ := strings.Cut(s, "\n\n")
	return before
}
