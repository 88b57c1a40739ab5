package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uidHandler отвечает 200 и ID пользователя из контекста, либо 401.
func uidHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid, ok := GetUserIDFromContext(r.Context()); ok {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(uid))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})
}

// Тест: SetLoginCookie + WithAuth — user_id попадает в контекст
func TestWithAuth_ValidCookieSetsUserID(t *testing.T) {
	const secret = "test-secret"
	h := WithAuth(secret)(uidHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rrCookie := httptest.NewRecorder()
	_, err := SetLoginCookie(rrCookie, "user-77", secret, time.Hour)
	require.NoError(t, err)
	for _, c := range rrCookie.Result().Cookies() {
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "user-77", rr.Body.String())
}

func TestWithAuth_BearerHeader(t *testing.T) {
	const secret = "test-secret"
	token, err := IssueToken("user-5", secret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	WithAuth(secret)(uidHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "user-5", rr.Body.String())
}

// Тест: заголовок Authorization важнее cookie, даже если он битый
func TestWithAuth_HeaderWinsOverCookie(t *testing.T) {
	const secret = "test-secret"
	rrCookie := httptest.NewRecorder()
	_, _ = SetLoginCookie(rrCookie, "cookie-user", secret, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rrCookie.Result().Cookies() {
		req.AddCookie(c)
	}
	req.Header.Set("Authorization", "Basic abc")
	rr := httptest.NewRecorder()
	WithAuth(secret)(uidHandler()).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// Тест: отсутствие токена — user_id не устанавливается
func TestWithAuth_NoTokenLeavesAnonymous(t *testing.T) {
	rr := httptest.NewRecorder()
	WithAuth("any-secret")(uidHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// Тест: токен, подписанный другим секретом, просроченный или с другим алгоритмом, не принимается
func TestWithAuth_InvalidTokens(t *testing.T) {
	wrongSecret, _ := IssueToken("u", "secret-A", time.Hour)
	expired, _ := IssueToken("u", "secret-B", -time.Minute)
	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)

	for name, tok := range map[string]string{"wrong secret": wrongSecret, "expired": expired, "alg none": none, "garbage": "abc"} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+tok)
			rr := httptest.NewRecorder()
			WithAuth("secret-B")(uidHandler()).ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestIssueToken_EmptyUser(t *testing.T) {
	_, err := IssueToken("", "s", time.Hour)
	assert.Error(t, err)
}

func TestParseToken_RoundTrip(t *testing.T) {
	tok, err := IssueToken("abc", "s", time.Hour)
	require.NoError(t, err)
	uid, err := ParseToken(tok, "s")
	require.NoError(t, err)
	assert.Equal(t, "abc", uid)
}
