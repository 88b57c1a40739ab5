package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Transport — внешний HTTP-коллаборатор AuthClient: путь + тело → разобранный ответ.
type Transport interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

// TokenSource отдаёт текущий токен доступа. Реализуется файловым хранилищем CLI.
type TokenSource interface {
	Load() (string, error)
}

// HTTPTransport — JSON-транспорт поверх net/http. Безопасен для конкурентного использования.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	logger  *zap.SugaredLogger
}

// Option настраивает HTTPTransport.
type Option func(*HTTPTransport)

// WithHTTPClient задаёт http.Client (таймауты, TLS).
func WithHTTPClient(c *http.Client) Option {
	return func(t *HTTPTransport) {
		if c != nil {
			t.client = c
		}
	}
}

// WithTimeout задаёт таймаут всего запроса. Клиент из WithHTTPClient сохраняется:
// таймаут ставится на его копию.
func WithTimeout(d time.Duration) Option {
	return func(t *HTTPTransport) {
		if d > 0 {
			c := *t.client
			c.Timeout = d
			t.client = &c
		}
	}
}

// WithTokenSource включает заголовок Authorization: Bearer.
func WithTokenSource(ts TokenSource) Option {
	return func(t *HTTPTransport) { t.tokens = ts }
}

// WithLogger включает debug-логирование запросов.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(t *HTTPTransport) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewHTTPTransport создаёт транспорт для сервера baseURL, например "http://localhost:8081".
func NewHTTPTransport(baseURL string, opts ...Option) *HTTPTransport {
	t := &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
		logger:  zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Get sends a GET request and decodes the JSON response into out.
func (t *HTTPTransport) Get(ctx context.Context, path string, out any) error {
	return t.do(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON. A nil body sends an empty request.
func (t *HTTPTransport) Post(ctx context.Context, path string, body, out any) error {
	return t.do(ctx, http.MethodPost, path, body, out)
}

func (t *HTTPTransport) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return &TransportError{Method: method, Path: path, Err: err}
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, body)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.tokens != nil {
		if token, err := t.tokens.Load(); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Debugw("request failed", "method", method, "path", path, "error", err)
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	t.logger.Debugw("request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw),
		}
	}
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return &TransportError{Method: method, Path: path, Err: errors.New("empty response body")}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	return nil
}

// errorMessage достаёт текст ошибки из {"error": ...} или {"detail": ...},
// иначе возвращает тело как есть.
func errorMessage(raw []byte) string {
	var body struct {
		Error  string `json:"error"`
		Detail any    `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if s, ok := body.Detail.(string); ok && s != "" {
			return s
		}
	}
	return strings.TrimSpace(string(raw))
}
