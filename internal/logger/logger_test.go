package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSetupFormats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		format string
		want   string
	}{
		{"json", `"msg":"imported"`},
		{"text", "msg=imported"},
		{"pretty", "song=3"},
		// A bytes.Buffer is never a terminal, so auto falls back to text.
		{"auto", "msg=imported"},
		{"", "msg=imported"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		log := Setup(&buf, tc.format, "info")
		log.Info("imported", "song", 3)
		if !strings.Contains(buf.String(), tc.want) {
			t.Fatalf("format %q: expected %q in %q", tc.format, tc.want, buf.String())
		}
	}
}

func TestSetupLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := Setup(&buf, "json", "warn")
	log.Info("hidden")
	log.Debug("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got: %s", buf.String())
	}
	log.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected warn output, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Fatalf("ParseLevel(%q): got %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := WithContext(context.Background(), JSON(&buf, slog.LevelInfo))
	FromContext(ctx).With("component", "api").Info("via context")
	out := buf.String()
	if !strings.Contains(out, "via context") || !strings.Contains(out, `"component":"api"`) {
		t.Fatalf("context logger output: %s", out)
	}
	if FromContext(context.Background()) == nil {
		t.Fatalf("FromContext without a logger returned nil")
	}
}

func TestPrettyHandlerAttrsAndGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)
	l := slog.New(h.WithAttrs([]slog.Attr{slog.String("sav", "a.sav")}).WithGroup("song").WithGroup("chain"))
	l.Info("decoded", "blocks", 4, "name", "MY SONG")

	out := buf.String()
	for _, want := range []string{"decoded", " sav=a.sav", "song.chain.blocks=4", `song.chain.name="MY SONG"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
	if strings.Contains(out, "song.chain.sav") {
		t.Fatalf("attrs added before a group must not be qualified: %q", out)
	}
	if h.WithGroup("") != h {
		t.Fatalf("empty group should return the same handler")
	}
}

func TestPrettyHandlerEnabled(t *testing.T) {
	t.Parallel()

	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info enabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("error disabled at warn level")
	}
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	if IsTerminal(&bytes.Buffer{}) {
		t.Fatalf("buffer reported as terminal")
	}
}
