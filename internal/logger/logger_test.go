package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Config{Level: "WARN", Format: "json"})

	l.Info("hidden")
	l.Warn("shown", "k", "v")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "v", rec["k"])
	assert.Equal(t, "WARN", rec["level"])
}

func TestNew_TextDefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Config{Level: "bogus"})
	l.Debug("nope")
	l.Info("yes")
	assert.NotContains(t, buf.String(), "nope")
	assert.Contains(t, buf.String(), "msg=yes")
}

func TestInitAndGet(t *testing.T) {
	l := Init(Config{Level: "DEBUG", Format: "text"})
	assert.Same(t, l, Get())
	assert.True(t, IsDebug())

	Init(Config{Level: "INFO"})
	assert.False(t, IsDebug())
}
