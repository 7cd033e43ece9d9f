package util

import (
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
)

// DefaultInfoTTL is how long a status message stays up when it does not set
// its own TTL.
const DefaultInfoTTL = 3 * time.Second

func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

func ReportError(err error) tea.Cmd {
	slog.Error("Error reported", "error", err)
	return CmdHandler(InfoMsg{
		Type: InfoTypeError,
		Msg:  err.Error(),
	})
}

type InfoType int

const (
	InfoTypeInfo InfoType = iota
	InfoTypeWarn
	InfoTypeError
)

func (t InfoType) String() string {
	switch t {
	case InfoTypeWarn:
		return "warn"
	case InfoTypeError:
		return "error"
	default:
		return "info"
	}
}

func ReportInfo(info string) tea.Cmd {
	return CmdHandler(InfoMsg{
		Type: InfoTypeInfo,
		Msg:  info,
	})
}

func ReportWarn(warn string) tea.Cmd {
	return CmdHandler(InfoMsg{
		Type: InfoTypeWarn,
		Msg:  warn,
	})
}

type (
	InfoMsg struct {
		Type InfoType
		Msg  string
		TTL  time.Duration
	}
	ClearStatusMsg struct{}
)

// ClearAfter schedules a ClearStatusMsg for msg.
func ClearAfter(msg InfoMsg) tea.Cmd {
	ttl := msg.TTL
	if ttl <= 0 {
		ttl = DefaultInfoTTL
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

func Clamp(v, low, high int) int {
	if high < low {
		low, high = high, low
	}
	return min(high, max(low, v))
}
