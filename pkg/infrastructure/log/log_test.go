package log

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl.Level())

	_, err = ParseLevel("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log level "loud"`)
}

func TestInitLog(t *testing.T) {
	lvl, err := ParseLevel("warn")
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := InitLog(&buf, lvl).Named("schc")
	logger.Info("dropped")
	logger.Warn("reference data reloaded", zap.String("dir", "/data"))

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "warn\tschc\t")
	assert.Contains(t, out, "reference data reloaded")
	assert.Contains(t, out, `{"dir": "/data"}`)

	lvl.SetLevel(zapcore.InfoLevel)
	logger.Info("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	r := chi.NewRouter()
	r.Use(Logger(zap.New(core), "http"))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})
	r.Get("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	for _, path := range []string{"/health", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "http", entries[1].LoggerName)
	assert.Equal(t, int64(http.StatusNotFound), entries[1].ContextMap()["http_status_code"])
}
