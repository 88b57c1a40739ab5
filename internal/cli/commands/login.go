package commands

import (
	"context"
	"fmt"

	"AuthDesk/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store the access token" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	user, err := newService(cfg, false).Login(ctx, args[0], args[1])
	if err != nil {
		return describeError(err)
	}
	fmt.Fprintf(Out, "Logged in as %s\n", user.Email)
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
