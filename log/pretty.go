package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handler. Styles are bound to a
// renderer for the handler's output, so colors are dropped when the output
// is not a terminal.
type palette struct {
	key, text, number, truth, falsity, null lipgloss.Style
	levels                                  map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:     fg("8"),
		text:    fg("6"),
		number:  fg("3"),
		truth:   fg("2"),
		falsity: fg("1"),
		null:    fg("8"),
		levels: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("5"),
			slog.Level(LevelDebug): fg("4"),
			slog.Level(LevelInfo):  fg("2"),
			slog.Level(LevelWarn):  fg("3").Bold(true),
			slog.Level(LevelError): fg("1").Bold(true),
		},
	}
}

// prettyHandler is a [slog.Handler] for humans. In text mode each record is
// one line of key=value pairs; in JSON mode each record is an indented
// object with unquoted values.
type prettyHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	opts   slog.HandlerOptions
	style  palette
	attrs  []slog.Attr
	prefix string
	json   bool
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, json bool) *prettyHandler {
	return &prettyHandler{
		mu:    &sync.Mutex{},
		w:     w,
		opts:  *opts,
		style: newPalette(w),
		json:  json,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(c.attrs[:len(c.attrs):len(c.attrs)], h.qualify(attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

// qualify prefixes attribute keys with the open groups.
func (h *prettyHandler) qualify(attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		if a = h.replace(nil, a); a.Key == "" {
			continue
		}

		a.Key = h.prefix + a.Key
		out = append(out, a)
	}

	return out
}

func (h *prettyHandler) replace(groups []string, a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()
	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(groups, a)
	}

	return a
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = append(fields, h.replace(nil, slog.Time(slog.TimeKey, r.Time)))
	}

	level := slog.Any(slog.LevelKey, r.Level)
	fields = append(fields, h.replace(nil, level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			fields = append(fields, slog.String(slog.SourceKey,
				src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, h.qualify([]slog.Attr{a})...)

		return true
	})

	var buf bytes.Buffer

	if h.json {
		h.writeJSON(&buf, r.Level, fields)
	} else {
		h.writeText(&buf, r.Level, fields)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) writeText(buf *bytes.Buffer, level slog.Level, fields []slog.Attr) {
	n := 0

	for _, a := range flatten("", fields) {
		if a.Key == "" {
			continue
		}

		if n++; n > 1 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteByte('=')
		buf.WriteString(h.value(level, a))
	}

	buf.WriteByte('\n')
}

func (h *prettyHandler) writeJSON(buf *bytes.Buffer, level slog.Level, fields []slog.Attr) {
	buf.WriteString("{\n")

	first := true

	for _, a := range flatten("", fields) {
		if a.Key == "" {
			continue
		}

		if !first {
			buf.WriteString(",\n")
		}

		first = false

		buf.WriteString("  ")
		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteString(": ")
		buf.WriteString(h.value(level, a))
	}

	buf.WriteString("\n}\n")
}

// flatten expands group values into dotted keys.
func flatten(prefix string, attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))

	for _, a := range attrs {
		if a.Value.Kind() != slog.KindGroup {
			a.Key = prefix + a.Key
			out = append(out, a)

			continue
		}

		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}

		out = append(out, flatten(p, a.Value.Group())...)
	}

	return out
}

func (h *prettyHandler) value(level slog.Level, a slog.Attr) string {
	v := a.Value

	if a.Key == slog.LevelKey {
		s, ok := h.style.levels[level]
		if !ok {
			s = h.style.text
		}

		return s.Render(v.String())
	}

	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64, slog.KindDuration:
		return h.style.number.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.style.truth.Render("true")
		}

		return h.style.falsity.Render("false")

	case slog.KindAny:
		switch x := v.Any().(type) {
		case nil:
			return h.style.null.Render("null")
		case error:
			return h.style.falsity.Render(x.Error())
		case fmt.Stringer:
			return h.style.text.Render(x.String())
		}
	}

	return h.style.text.Render(strings.TrimSpace(v.String()))
}
