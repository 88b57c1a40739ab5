package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"AuthDesk/internal/model"
	"AuthDesk/internal/repo"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSSOConflict        = errors.New("email is linked to another sign-in method")
	ErrUserNotFound       = errors.New("user not found")
)

// UserService — регистрация, вход по паролю и через SSO.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// NormalizeEmail приводит email к виду, в котором он хранится.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создаёт учётку с паролем. Занятый email → ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	email := NormalizeEmail(req.Email)
	existing, err := s.findBy(s.repo.GetUserByEmail(ctx, email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.repo.CreateUser(ctx, &model.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Password:     string(hash),
		DepartmentID: req.DepartmentID,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login проверяет пароль. Неизвестный email, неверный пароль и учётка без пароля
// дают одну и ту же ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.findBy(s.repo.GetUserByEmail(ctx, NormalizeEmail(email)))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// SSOLogin находит учётку по (провайдер, sso_id) или создаёт новую.
// Если email уже принадлежит учётке с паролем или другой SSO-идентичности → ErrSSOConflict.
func (s *UserService) SSOLogin(ctx context.Context, req model.SSOLoginRequest) (*model.User, error) {
	linked, err := s.findBy(s.repo.GetUserBySSO(ctx, req.SSOProvider, req.SSOID))
	if err != nil {
		return nil, err
	}
	if linked != nil {
		return linked, nil
	}

	email := NormalizeEmail(req.Email)
	existing, err := s.findBy(s.repo.GetUserByEmail(ctx, email))
	if err != nil {
		return nil, err
	}
	if existing.LinkedTo(req.SSOProvider, req.SSOID) {
		return existing, nil
	}
	if existing != nil {
		return nil, ErrSSOConflict
	}

	provider, ssoID := req.SSOProvider, req.SSOID
	user, err := s.repo.CreateUser(ctx, &model.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		DepartmentID: req.DepartmentID,
		SSOProvider:  &provider,
		SSOID:        &ssoID,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// параллельный первый вход с той же идентичностью уже создал учётку
		raced, lookupErr := s.findBy(s.repo.GetUserBySSO(ctx, provider, ssoID))
		if lookupErr != nil {
			return nil, lookupErr
		}
		if raced.LinkedTo(provider, ssoID) {
			return raced, nil
		}
		return nil, ErrSSOConflict
	}
	if err != nil {
		return nil, fmt.Errorf("create sso user: %w", err)
	}
	return user, nil
}

// GetByID возвращает учётку или ErrUserNotFound.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.findBy(s.repo.GetUserByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// findBy сводит «не найдено» (nil или gorm.ErrRecordNotFound) к (nil, nil).
func (s *UserService) findBy(user *model.User, err error) (*model.User, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}
