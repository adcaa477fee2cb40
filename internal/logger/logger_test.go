package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"WARNING": zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q): expected %s, got %s", in, want, got)
		}
	}
}

func TestWithComponentAddsField(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "info", false)
	t.Cleanup(func() { InitWriter(&bytes.Buffer{}, "info", false) })

	WithComponent("x11").Info().Msg("hello")
	WithComponent("x11").Debug().Msg("hidden")

	out := buf.String()
	if !strings.Contains(out, `"component":"x11"`) || !strings.Contains(out, "hello") {
		t.Fatalf("unexpected output %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug message logged at info level: %q", out)
	}
}
