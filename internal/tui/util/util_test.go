package util

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	msg, ok := ReportError(errors.New("disk full"))().(InfoMsg)
	require.True(t, ok)
	assert.Equal(t, InfoTypeError, msg.Type)
	assert.Equal(t, "disk full", msg.Msg)

	msg = ReportInfo("copied")().(InfoMsg)
	assert.Equal(t, InfoTypeInfo, msg.Type)
	msg = ReportWarn("slow")().(InfoMsg)
	assert.Equal(t, "warn", msg.Type.String())
}

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, Clamp(7, 0, 5))
	assert.Equal(t, 0, Clamp(-1, 0, 5))
	assert.Equal(t, 3, Clamp(3, 5, 0))
}
