package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(raw), &entry))
	return entry
}

func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "engine")

	l.Info().Msg("hello")

	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "engine", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")
	assert.Empty(t, buf.String())
}

func TestChildLoggers(t *testing.T) {
	tests := []struct {
		name  string
		child func(*Logger) *Logger
		want  map[string]any
	}{
		{
			name:  "child inherits role",
			child: (*Logger).GetChildLogger,
			want:  map[string]any{"role": "parent"},
		},
		{
			name:  "component child is tagged",
			child: func(l *Logger) *Logger { return l.Component("sync") },
			want:  map[string]any{"role": "parent", "component": "sync"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			parent := newLogger(&buf, "parent")

			child := tt.child(parent)
			assert.NotSame(t, parent, child)
			child.Info().Msg("child message")

			entry := decodeEntry(t, buf.Bytes())
			for k, v := range tt.want {
				assert.Equal(t, v, entry[k])
			}
		})
	}
}

func TestFromContextAndRequest(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "abc").Logger()
	ctx := zl.WithContext(context.Background())

	FromContext(ctx).Info().Msg("from context")
	assert.Equal(t, "abc", decodeEntry(t, buf.Bytes())["trace_id"])

	buf.Reset()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	FromRequest(req).Info().Msg("from request")
	assert.Equal(t, "abc", decodeEntry(t, buf.Bytes())["trace_id"])

	require.NotNil(t, FromContext(context.Background()))
}

func TestNewClientLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")

	l := NewClientLogger("client", path)
	l.Info().Msg("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	entry := decodeEntry(t, data)
	assert.Equal(t, "client", entry["role"])
	assert.Equal(t, "to file", entry["message"])
}

func TestNewClientLogger_FallsBackToStdout(t *testing.T) {
	l := NewClientLogger("client", filepath.Join(t.TempDir(), "missing", "dir", "client.log"))
	require.NotNil(t, l)
}
