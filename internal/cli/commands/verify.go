package commands

import (
	"context"
	"fmt"

	"AuthDesk/internal/config"
)

type verifyCmd struct{}

func (verifyCmd) Name() string        { return "verify" }
func (verifyCmd) Description() string { return "Check whether the stored token is still valid" }
func (verifyCmd) Usage() string       { return "verify" }

// Run печатает результат проверки. Невалидный токен не ошибка команды.
func (verifyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	res, err := newService(cfg, true).Verify(ctx)
	if err != nil {
		return describeError(err)
	}
	if res.Valid && res.UserID != nil {
		fmt.Fprintf(Out, "Token valid (user %s)\n", *res.UserID)
		return nil
	}
	fmt.Fprintln(Out, "Token invalid")
	return nil
}

func init() { RegisterCmd(verifyCmd{}) }
