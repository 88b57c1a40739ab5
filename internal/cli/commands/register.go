package commands

import (
	"context"
	"fmt"

	"AuthDesk/internal/config"
	"AuthDesk/internal/model"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and store the access token" }
func (registerCmd) Usage() string {
	return "register <name> <email> <password> [department_id]"
}

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return ErrUsage
	}
	req := model.RegisterRequest{
		Name:         args[0],
		Email:        args[1],
		Password:     args[2],
		DepartmentID: optional(args, 3),
	}
	user, err := newService(cfg, false).Register(ctx, req)
	if err != nil {
		return describeError(err)
	}
	fmt.Fprintf(Out, "Registered %s\n", user.Email)
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
