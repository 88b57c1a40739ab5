package commands

import (
	"context"
	"fmt"

	"AuthDesk/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show the locally stored login" }
func (statusCmd) Usage() string       { return "status" }

// Run не ходит на сервер: для проверки токена есть verify.
func (statusCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	login, err := newService(cfg, false).LastLogin()
	if err != nil {
		fmt.Fprintln(Out, "Not logged in")
		return nil
	}
	token := "absent"
	if _, err := newStore(cfg).Load(); err == nil {
		token = "stored"
	}
	fmt.Fprintf(Out, "Server: %s\nLogin:  %s\nToken:  %s\n", cfg.ServerURL, login, token)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
