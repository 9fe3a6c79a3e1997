package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	tokenDirPerm  = 0o700
	tokenFilePerm = 0o600
)

// Session - то, что клиент хранит между запусками.
type Session struct {
	AccessToken string `json:"access_token"`
	Role        Role   `json:"role,omitempty"`
}

// TokenStore хранит сессию в JSON файле, доступном только владельцу.
type TokenStore struct {
	path string
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// DefaultTokenPath возвращает ~/.dormctl/token.json.
func DefaultTokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".dormctl", "token.json"), nil
}

func (s *TokenStore) Path() string {
	return s.path
}

// Load возвращает ErrNotLoggedIn, если файла нет или токен пустой.
func (s *TokenStore) Load() (Session, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, ErrNotLoggedIn
	}
	if err != nil {
		return Session{}, fmt.Errorf("read token file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, fmt.Errorf("decode token file: %w", err)
	}
	if sess.AccessToken == "" {
		return Session{}, ErrNotLoggedIn
	}
	return sess, nil
}

func (s *TokenStore) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), tokenDirPerm); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	// пишем во временный файл и переименовываем, чтобы не оставить обрезанный токен
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, tokenFilePerm); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Join(fmt.Errorf("replace token file: %w", err), os.Remove(tmp))
	}
	return nil
}

// Clear удаляет сессию. Отсутствие файла ошибкой не считается.
func (s *TokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
