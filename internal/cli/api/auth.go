package api

import (
	"context"

	"AuthDesk/internal/model"
)

// Пути API аутентификации.
const (
	PathLogin    = "/auth/login"
	PathRegister = "/auth/register"
	PathMe       = "/auth/me"
	PathVerify   = "/auth/verify"
	PathSSO      = "/auth/sso"
)

// AuthClient — типизированный клиент API аутентификации.
// Каждый метод делает ровно один вызов транспорта и возвращает его ошибку без изменений.
type AuthClient struct {
	t Transport
}

// NewAuthClient создаёт клиент поверх транспорта.
func NewAuthClient(t Transport) *AuthClient {
	return &AuthClient{t: t}
}

// Login authenticates with email and password.
func (c *AuthClient) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.t.Post(ctx, PathLogin, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account. A nil DepartmentID is left out of the payload.
func (c *AuthClient) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.t.Post(ctx, PathRegister, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser returns the user the transport's credential belongs to.
func (c *AuthClient) CurrentUser(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.t.Get(ctx, PathMe, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyToken checks the transport's credential. An invalid token comes back
// as Valid=false with a nil error.
func (c *AuthClient) VerifyToken(ctx context.Context) (*model.VerifyResult, error) {
	var res model.VerifyResult
	if err := c.t.Post(ctx, PathVerify, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SSOLogin authenticates with an identity asserted by an external provider.
func (c *AuthClient) SSOLogin(ctx context.Context, req model.SSOLoginRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.t.Post(ctx, PathSSO, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
