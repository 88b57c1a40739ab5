package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"AuthDesk/internal/config"
)

// ErrUsage — аргументы не подходят команде; диспетчер печатает её usage.
var ErrUsage = errors.New("usage")

// Command — подкоманда authdesk.
type Command interface {
	// Name — имя, под которым команда вызывается ("login").
	Name() string
	// Description — одна строка для общего help.
	Description() string
	// Usage — синтаксис аргументов ("login <email> <password>").
	Usage() string
	// Run выполняет команду; args без имени команды.
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

var registry = map[string]Command{}

// Out — writer для вывода CLI. В тестах подменяется буфером.
var Out io.Writer = os.Stdout

// RegisterCmd регистрирует команду, вызывается из init() файла команды.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

// Get ищет команду по имени без учёта регистра.
func Get(name string) (Command, bool) {
	c, ok := registry[strings.ToLower(name)]
	return c, ok
}

// List возвращает команды, отсортированные по имени.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// FormatCommandUsage — help одной команды: синтаксис и описание.
func FormatCommandUsage(c Command) string {
	return fmt.Sprintf("Usage: %s\n  %s\n", c.Usage(), c.Description())
}

// FormatGlobalUsage — общий help: команды, окружение и коды выхода.
func FormatGlobalUsage() string {
	var b strings.Builder
	b.WriteString("AuthDesk CLI: sign in to an AuthDesk server and inspect the session\n\n")
	b.WriteString("Usage:\n  authdesk [flags] <command> [args]\n  authdesk help <command>\n\n")
	b.WriteString("Commands:\n")
	for _, c := range List() {
		fmt.Fprintf(&b, "  %-52s %s\n", c.Usage(), c.Description())
	}
	b.WriteString("\nEnvironment:\n")
	b.WriteString("  BASE_URL      server host:port (default localhost:8081)\n")
	b.WriteString("  ENABLE_HTTPS  talk to the server over https\n")
	b.WriteString("  STATE_DIR     where the token and last login are kept\n")
	b.WriteString("  HTTP_TIMEOUT  per-request timeout (default 10s)\n")
	b.WriteString("\nExit codes: 0 ok, 1 command failed, 2 usage error\n")
	return b.String()
}
