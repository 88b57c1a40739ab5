package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const appDir = "AuthDesk"

// AuthFSStore — файловое хранилище токена и контекста пользователя для CLI.
// Dir == "" означает <UserConfigDir>/AuthDesk.
type AuthFSStore struct {
	Dir string
}

func (s AuthFSStore) configDir() (string, error) {
	p := s.Dir
	if p == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(dir, appDir)
	}
	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}
	return p, nil
}

func (s AuthFSStore) path(name string) (string, error) {
	dir, err := s.configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Save сохраняет auth‑токен в файл.
func (s AuthFSStore) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty token")
	}
	return s.write("auth_token", token)
}

// Load читает auth‑токен из файла.
func (s AuthFSStore) Load() (string, error) {
	tok, err := s.read("auth_token")
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "", errors.New("empty token file")
	}
	return tok, nil
}

// Clear удаляет токен и сохранённый логин. Отсутствие файлов не ошибка.
func (s AuthFSStore) Clear() error {
	for _, name := range []string{"auth_token", "last_login"} {
		p, err := s.path(name)
		if err != nil {
			return err
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// SaveLogin сохраняет email пользователя в файл.
func (s AuthFSStore) SaveLogin(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("empty login")
	}
	return s.write("last_login", email)
}

// LoadLogin читает email пользователя из файла.
func (s AuthFSStore) LoadLogin() (string, error) {
	login, err := s.read("last_login")
	if err != nil {
		return "", err
	}
	if login == "" {
		return "", errors.New("no stored login")
	}
	return login, nil
}

func (s AuthFSStore) write(name, value string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(value), 0o600)
}

// read возвращает содержимое файла без завершающих переводов строки/пробелов.
func (s AuthFSStore) read(name string) (string, error) {
	p, err := s.path(name)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), " \t\r\n"), nil
}
