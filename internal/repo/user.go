package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"AuthDesk/internal/model"
)

// UserRepository — доступ к учёткам. Методы Get* возвращают gorm.ErrRecordNotFound,
// если записи нет.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserBySSO(ctx context.Context, provider, ssoID string) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт gorm-реализацию UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

// translateError приводит нарушение уникальности к gorm.ErrDuplicatedKey.
// Postgres-драйвер gorm делает это сам (TranslateError), для modernc sqlite
// код ошибки приходится читать вручную.
func translateError(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %s", gorm.ErrDuplicatedKey, se.Error())
		}
	}
	return err
}

func (r *userRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepo) GetUserBySSO(ctx context.Context, provider, ssoID string) (*model.User, error) {
	return r.first(ctx, "sso_provider = ? AND sso_id = ?", provider, ssoID)
}

func (r *userRepo) first(ctx context.Context, query string, args ...any) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
