// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gmackall/flutter-fix-status/internal/ui/output"
	"github.com/gmackall/flutter-fix-status/internal/ui/style"
	"github.com/muesli/termenv"
)

// PrettyHandler is a custom slog.Handler that produces human-readable,
// colored output using the shared UI components.
//
// Output is tuned for fix-status logs: a channel attribute becomes a leading
// [channel] tag and full commit hashes are shortened like in the result table.
type PrettyHandler struct {
	out     *termenv.Output
	level   slog.Leveler
	attrs   []slog.Attr
	prefix  string
	channel string
}

// shortSHALength matches the width of commit hashes in the result table.
const shortSHALength = 10

// channelKey is the attribute rendered as a leading tag instead of key=value.
const channelKey = "channel"

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var icon string
	var color termenv.Color

	switch {
	case r.Level < slog.LevelInfo:
		icon = style.Dot
		color = termenv.RGBColor(string(style.Slate))
	case r.Level == slog.LevelWarn:
		icon = style.Warning
		color = termenv.RGBColor(string(style.Yellow))
	case r.Level >= slog.LevelError:
		icon = style.Cross
		color = termenv.RGBColor(string(style.Red))
	default:
		color = termenv.RGBColor(string(style.Slate))
	}

	channel := h.channel
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		attrs, channel = appendAttr(attrs, channel, h.prefix, attr)
		return true
	})

	var b strings.Builder
	if icon != "" {
		b.WriteString(icon + " ")
	}
	if channel != "" {
		b.WriteString("[" + channel + "] ")
	}
	b.WriteString(r.Message)
	for _, attr := range attrs {
		b.WriteString(" " + attr.Key + "=" + formatValue(attr.Value))
	}

	styled := h.out.String(b.String()).Foreground(color)
	_, err := h.out.WriteString(styled.String() + "\n")

	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
// The attributes are qualified by the groups opened so far.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, attr := range attrs {
		next.attrs, next.channel = appendAttr(next.attrs, next.channel, h.prefix, attr)
	}
	return next
}

// WithGroup returns a new Handler that qualifies later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.prefix = h.prefix + name + "."
	return next
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		out:     h.out,
		level:   h.level,
		attrs:   append([]slog.Attr(nil), h.attrs...),
		prefix:  h.prefix,
		channel: h.channel,
	}
}

// appendAttr flattens attr under prefix and appends it to attrs.
// A channel attribute replaces the current channel tag instead.
func appendAttr(attrs []slog.Attr, channel, prefix string, attr slog.Attr) ([]slog.Attr, string) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return attrs, channel
	}

	if attr.Value.Kind() == slog.KindGroup {
		if attr.Key != "" {
			prefix += attr.Key + "."
		}
		for _, inner := range attr.Value.Group() {
			attrs, channel = appendAttr(attrs, channel, prefix, inner)
		}
		return attrs, channel
	}

	if attr.Key == channelKey && attr.Value.Kind() == slog.KindString {
		return attrs, attr.Value.String()
	}

	attr.Key = prefix + attr.Key
	return append(attrs, attr), channel
}

// formatValue renders a value, shortening full commit hashes and printing
// only the outermost message of structured errors.
func formatValue(v slog.Value) string {
	if v.Kind() == slog.KindAny {
		if m, ok := v.Any().(messager); ok {
			return m.Message()
		}
	}

	s := v.String()
	if isFullSHA(s) {
		return s[:shortSHALength]
	}
	return s
}

func isFullSHA(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
