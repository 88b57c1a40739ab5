package commands

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"AuthDesk/internal/cli/api"
	"AuthDesk/internal/cli/repo"
	fsrepo "AuthDesk/internal/cli/repo/fs"
	"AuthDesk/internal/cli/service"
	"AuthDesk/internal/config"
	"AuthDesk/internal/model"
)

var _ repo.AuthStore = fsrepo.AuthFSStore{}

// newStore возвращает файловое хранилище токена для текущей конфигурации.
func newStore(cfg *config.Config) fsrepo.AuthFSStore {
	return fsrepo.AuthFSStore{Dir: cfg.StateDir}
}

// newClient собирает AuthClient: HTTP-транспорт с таймаутом, токеном из store
// и debug-логированием при --debug.
func newClient(cfg *config.Config, tokens api.TokenSource) *api.AuthClient {
	logger := zap.NewNop().Sugar()
	if cfg.Debug {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l.Sugar()
		}
	}
	tr := api.NewHTTPTransport(cfg.ServerURL,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithTokenSource(tokens),
		api.WithLogger(logger),
	)
	return api.NewAuthClient(tr)
}

// newService связывает клиент и хранилище. Для входа токен не нужен:
// старый токен не должен уходить на сервер.
func newService(cfg *config.Config, sendToken bool) service.AuthService {
	store := newStore(cfg)
	var tokens api.TokenSource
	if sendToken {
		tokens = store
	}
	return service.NewAuthService(newClient(cfg, tokens), store)
}

// describeError переводит ошибку API в сообщение для пользователя.
func describeError(err error) error {
	var se *api.StatusError
	var te *api.TransportError
	switch {
	case errors.Is(err, api.ErrAuth):
		return errors.New("invalid credentials or session")
	case errors.Is(err, api.ErrConflict):
		return errors.New("account already exists")
	case errors.Is(err, api.ErrValidation) && errors.As(err, &se):
		return fmt.Errorf("rejected: %s", se.Message)
	case errors.As(err, &se):
		return fmt.Errorf("server error: %s", se.Message)
	case errors.As(err, &te):
		return fmt.Errorf("server unreachable: %v", te.Err)
	}
	return err
}

func optional(args []string, i int) *string {
	if len(args) > i {
		return model.StringPtr(args[i])
	}
	return nil
}
