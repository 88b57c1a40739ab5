package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// observe подменяет логгер мидлварей на observer и возвращает его записи.
func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	prev := sugar
	SetLogger(zap.New(core).Sugar())
	t.Cleanup(func() { SetLogger(prev) })
	return logs
}

func TestWithLogging_RecordsRequest(t *testing.T) {
	logs := observe(t)

	h := WithLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, `{"error":"unauthorized"}`, rr.Body.String())

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/auth/me", fields["uri"])
	assert.Equal(t, http.MethodGet, fields["method"])
	assert.EqualValues(t, http.StatusUnauthorized, fields["status"])
	assert.EqualValues(t, len(`{"error":"unauthorized"}`), fields["size"])
}

func TestWithLogging_DefaultStatusOK(t *testing.T) {
	logs := observe(t)

	// хендлер не вызывает WriteHeader: в логе 200
	h := WithLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, 1, logs.Len())
	assert.EqualValues(t, http.StatusOK, logs.All()[0].ContextMap()["status"])
}

func TestSetLogger_IgnoresNil(t *testing.T) {
	prev := sugar
	SetLogger(nil)
	assert.Same(t, prev, sugar)
}
