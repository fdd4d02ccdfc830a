package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/navy/internal/ui/output"
	"go.trai.ch/navy/internal/ui/style"
)

// Scope keys are lifted out of the attribute list and rendered in front of
// the message as "[environment/service]".
const (
	KeyEnvironment = "environment"
	KeyService     = "service"
)

// PrettyHandler is a slog.Handler that produces human-readable,
// colored output using the shared UI components.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
}

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
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		attrs = appendQualified(attrs, h.prefix, attr)
		return true
	})

	var env, service string
	rest := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		switch attr.Key {
		case KeyEnvironment:
			env = attr.Value.String()
		case KeyService:
			service = attr.Value.String()
		default:
			rest = append(rest, attr.Key+"="+attr.Value.String())
		}
	}

	var b strings.Builder
	b.WriteString(levelIcon(r.Level))
	if scope := scopeOf(env, service); scope != "" {
		b.WriteString("[" + scope + "] ")
	}
	b.WriteString(r.Message)
	if len(rest) > 0 {
		b.WriteString(" " + strings.Join(rest, " "))
	}

	styled := h.out.String(b.String()).Foreground(termenv.RGBColor(string(levelColor(r.Level))))
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
// Keys are qualified with the groups opened so far.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(next, h.attrs)
	for _, attr := range attrs {
		next = appendQualified(next, h.prefix, attr)
	}

	return &PrettyHandler{
		out:    h.out,
		level:  h.level,
		attrs:  next,
		prefix: h.prefix,
	}
}

// WithGroup returns a new Handler that nests later attributes under name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &PrettyHandler{
		out:    h.out,
		level:  h.level,
		attrs:  h.attrs,
		prefix: h.prefix + name + ".",
	}
}

// appendQualified flattens attr into dst, prefixing keys and expanding groups.
func appendQualified(dst []slog.Attr, prefix string, attr slog.Attr) []slog.Attr {
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		inner := prefix
		if attr.Key != "" {
			inner += attr.Key + "."
		}
		for _, a := range attr.Value.Group() {
			dst = appendQualified(dst, inner, a)
		}
		return dst
	}
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	attr.Key = prefix + attr.Key
	return append(dst, attr)
}

func scopeOf(env, service string) string {
	switch {
	case env != "" && service != "":
		return env + "/" + service
	case env != "":
		return env
	default:
		return service
	}
}

func levelIcon(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return style.Cross + " "
	case level >= slog.LevelWarn:
		return style.Warning + " "
	default:
		return ""
	}
}

func levelColor(level slog.Level) lipgloss.Color {
	switch {
	case level >= slog.LevelError:
		return style.Red
	case level >= slog.LevelWarn:
		return style.Yellow
	case level < slog.LevelInfo:
		return style.Slate
	default:
		return style.Mist
	}
}
