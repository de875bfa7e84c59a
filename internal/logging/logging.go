// Package logging builds the slog handlers used by the CLI and server.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// ParseLevel maps debug, info, warn and error (any case) to a level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}

// New returns a logger writing to out. Format "json" selects
// slog.JSONHandler; anything else the colored text handler.
func New(out io.Writer, level slog.Level, format string) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(NewHandler(out, level))
}

// Handler writes one colored line per record:
//
//	15:04:05.000 INFO: message key=value group.key=value
type Handler struct {
	mu    *sync.Mutex
	out   io.Writer
	level slog.Leveler

	// prefix is the pre-rendered WithAttrs output.
	prefix string
	group  string
}

func NewHandler(out io.Writer, level slog.Leveler) *Handler {
	return &Handler{mu: &sync.Mutex{}, out: out, level: level}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	if !r.Time.IsZero() {
		b.WriteString(r.Time.Format("15:04:05.000"))
		b.WriteByte(' ')
	}
	b.WriteString(levelColor(r.Level)(r.Level.String() + ":"))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	b.WriteString(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.group, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.prefix)
	for _, a := range attrs {
		writeAttr(&b, h.group, a)
	}
	h2 := *h
	h2.prefix = b.String()
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.group = joinKey(h.group, name)
	return &h2
}

func writeAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		sub := group
		if a.Key != "" {
			sub = joinKey(group, a.Key)
		}
		for _, ga := range a.Value.Group() {
			writeAttr(b, sub, ga)
		}
		return
	}

	var val string
	switch a.Value.Kind() {
	case slog.KindTime:
		val = a.Value.Time().Format(time.RFC3339)
	case slog.KindDuration:
		val = a.Value.Duration().String()
	default:
		val = fmt.Sprint(a.Value.Any())
	}
	if strings.ContainsAny(val, " \t\n\"=") {
		val = fmt.Sprintf("%q", val)
	}
	b.WriteByte(' ')
	b.WriteString(color.GreenString(joinKey(group, a.Key)))
	b.WriteByte('=')
	b.WriteString(val)
}

func joinKey(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

func levelColor(l slog.Level) func(string, ...any) string {
	switch {
	case l >= slog.LevelError:
		return color.RedString
	case l >= slog.LevelWarn:
		return color.YellowString
	case l >= slog.LevelInfo:
		return color.HiBlueString
	default:
		return color.MagentaString
	}
}
