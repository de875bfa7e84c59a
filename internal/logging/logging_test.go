package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		" warn": slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, slog.LevelInfo))

	log.Debug("hidden")
	log.Info("request", "method", "GET", "status", 200, "path", "/api/planets")
	log.With("request_id", "abc").WithGroup("db").Warn("slow query", "table", "planets", "err", errors.New("took too long"))
	log.Error("nested", slog.Group("user", "id", 5, "name", "ada"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "INFO: request method=GET status=200 path=/api/planets")
	assert.Contains(t, lines[1], `WARN: slow query request_id=abc db.table=planets db.err="took too long"`)
	assert.Contains(t, lines[2], "ERROR: nested user.id=5 user.name=ada")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelDebug, "JSON").Debug("hello", "n", 1)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.EqualValues(t, 1, line["n"])
}
