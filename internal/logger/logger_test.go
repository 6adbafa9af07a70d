package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		format      string
		wantJSON    bool
	}{
		{name: "production uses json", environment: "production", wantJSON: true},
		{name: "development uses pretty", environment: "development", wantJSON: false},
		{name: "explicit json wins", environment: "development", format: FormatJSON, wantJSON: true},
		{name: "explicit pretty wins", environment: "production", format: FormatPretty, wantJSON: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(Config{
				Writer:      &buf,
				Format:      tt.format,
				Environment: tt.environment,
				Level:       slog.LevelInfo,
			})
			l.Info("collection saved")

			if tt.wantJSON {
				assert.Contains(t, buf.String(), `"msg":"collection saved"`)
			} else {
				assert.Contains(t, buf.String(), "INF")
				assert.Contains(t, buf.String(), "collection saved")
				assert.NotContains(t, buf.String(), `"msg"`)
			}
		})
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Format: FormatJSON, Level: slog.LevelWarn})

	l.Info("dropped")
	l.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	require.NotNil(t, l.Logger)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	l.Error("nothing happens")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"DeBuG", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"WARNING", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.input)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	r := slog.NewRecord(time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC), slog.LevelDebug, "collection loaded", 0)
	r.AddAttrs(
		slog.String("owner", "misa"),
		slog.String("path", "/tmp/misa shelf.txt"),
		slog.Int("records", 3),
	)
	require.NoError(t, h.Handle(context.Background(), r))

	out := buf.String()
	assert.Contains(t, out, "15:04:05")
	assert.Contains(t, out, "DBG")
	assert.Contains(t, out, "collection loaded")
	assert.Contains(t, out, "owner=misa")
	assert.Contains(t, out, `path="/tmp/misa shelf.txt"`)
	assert.Contains(t, out, "records=3")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))

	defaults := NewPrettyHandler(&bytes.Buffer{}, nil)
	assert.False(t, defaults.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, defaults.Enabled(context.Background(), slog.LevelInfo))
}

func TestPrettyHandler_GroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyHandler(&buf, nil))

	l.With("owner", "misa").
		WithGroup("codec").
		With("format", "xml").
		Info("saved", slog.Group("file", slog.String("ext", ".xml")), "records", 2)

	out := buf.String()
	assert.Contains(t, out, "owner=misa")
	assert.Contains(t, out, "codec.format=xml")
	assert.Contains(t, out, "codec.file.ext=.xml")
	assert.Contains(t, out, "codec.records=2")
}

func TestPrettyHandler_WithAttrsDoesNotShare(t *testing.T) {
	var buf bytes.Buffer
	base := NewPrettyHandler(&buf, nil)
	a := slog.New(base.WithAttrs([]slog.Attr{slog.String("side", "a")}))
	b := slog.New(base.WithAttrs([]slog.Attr{slog.String("side", "b")}))

	a.Info("first")
	b.Info("second")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "side=a")
	assert.NotContains(t, lines[0], "side=b")
	assert.Contains(t, lines[1], "side=b")
}

func TestLogger_Helpers(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Format: FormatJSON})

	l.WithError(errors.New("disk full")).
		WithField("owner", "misa").
		WithFields(map[string]any{"collection": "shelf", "records": 4}).
		Error("save failed")

	out := buf.String()
	assert.Contains(t, out, `"error":"disk full"`)
	assert.Contains(t, out, `"owner":"misa"`)
	assert.Contains(t, out, `"collection":"shelf"`)
	assert.Contains(t, out, `"records":4`)

	assert.Same(t, l, l.WithError(nil))
}
