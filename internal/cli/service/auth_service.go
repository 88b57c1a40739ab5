package service

import (
	"context"
	"errors"
	"fmt"

	"AuthDesk/internal/cli/api"
	"AuthDesk/internal/cli/repo"
	"AuthDesk/internal/model"
)

// AuthService описывает юзкейс-уровень аутентификации для CLI.
type AuthService interface {
	// Login логирование пользователя.
	Login(ctx context.Context, email, password string) (*model.User, error)

	// Register создаёт аккаунт и сразу сохраняет токен.
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)

	// SSOLogin входит по идентичности, подтверждённой SSO-провайдером.
	SSOLogin(ctx context.Context, req model.SSOLoginRequest) (*model.User, error)

	// Logout очищает локальный контекст аутентификации.
	Logout() error

	// CurrentUser запрашивает профиль по сохранённому токену.
	CurrentUser(ctx context.Context) (*model.User, error)

	// Verify проверяет сохранённый токен на сервере.
	Verify(ctx context.Context) (*model.VerifyResult, error)

	// LastLogin возвращает email последнего входа, если он сохранён.
	LastLogin() (string, error)
}

// ErrNotLoggedIn — локально нет сохранённого логина.
var ErrNotLoggedIn = errors.New("not logged in")

type authService struct {
	client *api.AuthClient
	store  repo.AuthStore
}

// NewAuthService связывает API-клиент с локальным хранилищем токена.
func NewAuthService(client *api.AuthClient, store repo.AuthStore) AuthService {
	return &authService{client: client, store: store}
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	resp, err := s.client.Login(ctx, model.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return s.persist(resp)
}

func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.persist(resp)
}

func (s *authService) SSOLogin(ctx context.Context, req model.SSOLoginRequest) (*model.User, error) {
	resp, err := s.client.SSOLogin(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.persist(resp)
}

func (s *authService) Logout() error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clearing auth: %w", err)
	}
	return nil
}

func (s *authService) CurrentUser(ctx context.Context) (*model.User, error) {
	return s.client.CurrentUser(ctx)
}

func (s *authService) Verify(ctx context.Context) (*model.VerifyResult, error) {
	return s.client.VerifyToken(ctx)
}

func (s *authService) LastLogin() (string, error) {
	login, err := s.store.LoadLogin()
	if err != nil {
		return "", ErrNotLoggedIn
	}
	return login, nil
}

// persist сохраняет токен и email после успешного входа.
func (s *authService) persist(resp *model.AuthResponse) (*model.User, error) {
	if resp.AccessToken == "" {
		return nil, errors.New("server returned an empty access token")
	}
	if err := s.store.Save(resp.AccessToken); err != nil {
		return nil, fmt.Errorf("saving auth: %w", err)
	}
	if err := s.store.SaveLogin(resp.User.Email); err != nil {
		return nil, fmt.Errorf("saving login: %w", err)
	}
	user := resp.User
	return &user, nil
}
