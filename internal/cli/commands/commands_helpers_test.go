package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"AuthDesk/internal/config"
	"AuthDesk/internal/model"
)

// withTempConfig переопределяет пользовательские каталоги на время теста,
// чтобы артефакты (токен/логин) создавались в temp.
func withTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return dir
}

// testCfg — конфиг клиента для тестового сервера с изолированным StateDir.
func testCfg(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	return &config.Config{ServerURL: serverURL, StateDir: withTempConfig(t)}
}

// withStdoutCapture перехватывает вывод команд на время теста.
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// authServer отвечает AuthResponse на любой POST и запоминает тело последнего запроса.
func authServer(t *testing.T, path string, last *map[string]any) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if last != nil {
			_ = json.NewDecoder(r.Body).Decode(last)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.AuthResponse{
			AccessToken: "tok-123",
			TokenType:   model.TokenTypeBearer,
			User:        model.User{ID: "u-1", Email: "alice@example.com", Name: "Alice"},
		})
	}))
	t.Cleanup(ts.Close)
	return ts
}

// statusServer отвечает заданным статусом и телом {"error": msg}.
func statusServer(t *testing.T, status int, msg string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
	}))
	t.Cleanup(ts.Close)
	return ts
}
