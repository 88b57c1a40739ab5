package commands

import (
	"context"
	"fmt"

	"AuthDesk/internal/config"
)

type meCmd struct{}

func (meCmd) Name() string        { return "me" }
func (meCmd) Description() string { return "Show the current user" }
func (meCmd) Usage() string       { return "me" }

func (meCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	user, err := newService(cfg, true).CurrentUser(ctx)
	if err != nil {
		return describeError(err)
	}
	fmt.Fprintf(Out, "ID:         %s\n", user.ID)
	fmt.Fprintf(Out, "Email:      %s\n", user.Email)
	fmt.Fprintf(Out, "Name:       %s\n", user.Name)
	if user.DepartmentID != nil {
		fmt.Fprintf(Out, "Department: %s\n", *user.DepartmentID)
	}
	if user.SSOProvider != nil {
		fmt.Fprintf(Out, "SSO:        %s\n", *user.SSOProvider)
	}
	return nil
}

func init() { RegisterCmd(meCmd{}) }
