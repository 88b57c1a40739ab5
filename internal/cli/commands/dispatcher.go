package commands

import (
	"context"
	"errors"
	"fmt"

	"AuthDesk/internal/config"
)

// Коды выхода CLI.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Dispatch выполняет команду из args (аргументы после флагов) и возвращает код выхода.
// "help", "-h" и "--help" показывают общий help или help команды.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	if isHelp(args[0]) {
		if len(args) == 1 {
			fmt.Fprint(Out, FormatGlobalUsage())
			return ExitOK
		}
		return commandHelp(args[1])
	}

	c, ok := Get(args[0])
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[0])
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}
	// authdesk login --help
	if len(args) > 1 && isHelp(args[1]) {
		return commandHelp(c.Name())
	}

	err := c.Run(ctx, cfg, args[1:])
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		fmt.Fprint(Out, FormatCommandUsage(c))
		return ExitUsage
	default:
		fmt.Fprintf(Out, "%s error: %v\n", c.Name(), err)
		return ExitError
	}
}

func commandHelp(name string) int {
	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}
	fmt.Fprint(Out, FormatCommandUsage(c))
	return ExitOK
}

func isHelp(arg string) bool {
	return arg == "help" || arg == "-h" || arg == "--help"
}
