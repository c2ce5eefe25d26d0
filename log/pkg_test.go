package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestPackageFunctions(t *testing.T) {
	saved := Default()
	t.Cleanup(func() { SetDefault(saved) })

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelTrace), WithPretty(false), WithFormat(FormatJSON))

	ctx := t.Context()

	tests := []struct {
		name  string
		log   func()
		level string
	}{
		{"Trace", func() { Trace("m", slog.String("k", "v")) }, "TRACE"},
		{"Debug", func() { Debug("m", slog.String("k", "v")) }, "DEBUG"},
		{"Info", func() { Info("m", slog.String("k", "v")) }, "INFO"},
		{"Warn", func() { Warn("m", slog.String("k", "v")) }, "WARN"},
		{"Error", func() { Error("m", slog.String("k", "v")) }, "ERROR"},
		{"TraceContext", func() { TraceContext(ctx, "m", slog.String("k", "v")) }, "TRACE"},
		{"DebugContext", func() { DebugContext(ctx, "m", slog.String("k", "v")) }, "DEBUG"},
		{"InfoContext", func() { InfoContext(ctx, "m", slog.String("k", "v")) }, "INFO"},
		{"WarnContext", func() { WarnContext(ctx, "m", slog.String("k", "v")) }, "WARN"},
		{"ErrorContext", func() { ErrorContext(ctx, "m", slog.String("k", "v")) }, "ERROR"},
		{"With", func() { With(slog.String("k", "v")).Info("m") }, "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log()

			m := decode(t, buf.Bytes())
			if m["level"] != tt.level || m["msg"] != "m" || m["k"] != "v" {
				t.Errorf("record = %v", m)
			}
		})
	}
}

func TestPackageFunctions_Caller(t *testing.T) {
	saved := Default()
	t.Cleanup(func() { SetDefault(saved) })

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithPretty(false), WithCaller(true))
	Info("where")

	if !strings.Contains(buf.String(), "pkg_test.go") {
		t.Errorf("caller not reported: %q", buf.String())
	}
}
