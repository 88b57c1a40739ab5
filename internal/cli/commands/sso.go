package commands

import (
	"context"
	"fmt"

	"AuthDesk/internal/config"
	"AuthDesk/internal/model"
)

type ssoCmd struct{}

func (ssoCmd) Name() string        { return "sso" }
func (ssoCmd) Description() string { return "Login with an identity asserted by an SSO provider" }
func (ssoCmd) Usage() string {
	return "sso <provider> <sso_id> <email> <name> [department_id]"
}

func (ssoCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 4 || len(args) > 5 {
		return ErrUsage
	}
	req := model.SSOLoginRequest{
		SSOProvider:  args[0],
		SSOID:        args[1],
		Email:        args[2],
		Name:         args[3],
		DepartmentID: optional(args, 4),
	}
	user, err := newService(cfg, false).SSOLogin(ctx, req)
	if err != nil {
		return describeError(err)
	}
	fmt.Fprintf(Out, "Logged in via %s as %s\n", req.SSOProvider, user.Email)
	return nil
}

func init() { RegisterCmd(ssoCmd{}) }
