package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"AuthDesk/internal/cli/api"
	"AuthDesk/internal/handlers"
	"AuthDesk/internal/model"
	"AuthDesk/internal/repo"
	"AuthDesk/internal/service"
)

// mutableToken — TokenSource, в который тест кладёт токен после входа.
type mutableToken struct{ token string }

func (m *mutableToken) Load() (string, error) { return m.token, nil }

func newE2EServer(t *testing.T) *httptest.Server {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))

	svc := service.NewUserService(repo.NewUserRepository(db))
	h := handlers.NewHandler(svc, zap.NewNop().Sugar(), testConfig())
	ts := httptest.NewServer(h.Router)
	t.Cleanup(ts.Close)
	return ts
}

func TestE2E_ClientAgainstServer(t *testing.T) {
	ts := newE2EServer(t)
	ctx := context.Background()
	tok := &mutableToken{}
	c := api.NewAuthClient(api.NewHTTPTransport(ts.URL, api.WithTokenSource(tok)))

	// без токена: me → ErrAuth, verify → valid=false без ошибки
	_, err := c.CurrentUser(ctx)
	assert.ErrorIs(t, err, api.ErrAuth)
	vr, err := c.VerifyToken(ctx)
	require.NoError(t, err)
	assert.False(t, vr.Valid)
	assert.Nil(t, vr.UserID)

	reg, err := c.Register(ctx, model.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, model.TokenTypeBearer, reg.TokenType)
	assert.Nil(t, reg.User.DepartmentID)

	_, err = c.Register(ctx, model.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "password1"})
	assert.ErrorIs(t, err, api.ErrConflict)

	_, err = c.Register(ctx, model.RegisterRequest{Name: "Bad", Email: "bad", Password: "x"})
	assert.ErrorIs(t, err, api.ErrValidation)

	_, err = c.Login(ctx, model.LoginRequest{Email: "alice@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, api.ErrAuth)

	login, err := c.Login(ctx, model.LoginRequest{Email: "alice@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	tok.token = login.AccessToken
	me, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Email)

	vr, err = c.VerifyToken(ctx)
	require.NoError(t, err)
	assert.True(t, vr.Valid)
	require.NotNil(t, vr.UserID)
	assert.Equal(t, reg.User.ID, *vr.UserID)
}

func TestE2E_SSO(t *testing.T) {
	ts := newE2EServer(t)
	ctx := context.Background()
	c := api.NewAuthClient(api.NewHTTPTransport(ts.URL))

	req := model.SSOLoginRequest{Email: "sam@example.com", Name: "Sam", SSOProvider: "okta", SSOID: "o-1", DepartmentID: model.StringPtr("ops")}
	first, err := c.SSOLogin(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, first.User.DepartmentID)
	assert.Equal(t, "ops", *first.User.DepartmentID)

	again, err := c.SSOLogin(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, again.User.ID)

	// email занят SSO-учёткой: пароль не подходит, регистрация конфликтует
	_, err = c.Login(ctx, model.LoginRequest{Email: "sam@example.com", Password: "anything"})
	assert.ErrorIs(t, err, api.ErrAuth)
	_, err = c.Register(ctx, model.RegisterRequest{Name: "Sam", Email: "sam@example.com", Password: "password1"})
	assert.ErrorIs(t, err, api.ErrConflict)

	// тот же email от другого провайдера — конфликт
	_, err = c.SSOLogin(ctx, model.SSOLoginRequest{Email: "sam@example.com", Name: "Sam", SSOProvider: "google", SSOID: "g-1"})
	assert.ErrorIs(t, err, api.ErrConflict)
}

// newFileServer поднимает сервер на SQLite-файле через repo.InitDB, как в проде.
func newFileServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := repo.InitDB(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	svc := service.NewUserService(repo.NewUserRepository(db))
	h := handlers.NewHandler(svc, zap.NewNop().Sugar(), testConfig())
	ts := httptest.NewServer(h.Router)
	t.Cleanup(ts.Close)
	return ts
}

func TestE2E_ConcurrentDuplicateRegistration(t *testing.T) {
	ts := newFileServer(t)
	c := api.NewAuthClient(api.NewHTTPTransport(ts.URL))
	req := model.RegisterRequest{Name: "Dup", Email: "dup@example.com", Password: "password1"}

	const n = 16
	var (
		mu        sync.Mutex
		created   int
		conflicts int
	)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := c.Register(context.Background(), req)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, api.ErrConflict):
				conflicts++
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, conflicts)
}

func TestE2E_ConcurrentFirstSSOLogin(t *testing.T) {
	ts := newFileServer(t)
	c := api.NewAuthClient(api.NewHTTPTransport(ts.URL))
	req := model.SSOLoginRequest{Email: "race@example.com", Name: "Race", SSOProvider: "okta", SSOID: "o-42"}

	const n = 16
	ids := make([]string, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			resp, err := c.SSOLogin(context.Background(), req)
			if err != nil {
				return err
			}
			ids[i] = resp.User.ID
			return nil
		})
	}
	require.NoError(t, g.Wait())
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}
