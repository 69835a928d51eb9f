package session

import (
	"os"
	"path/filepath"
	"strings"
)

// tokenFile persists the bearer token, the only durable client state.
// Everything else is rebuilt from the server on startup.
type tokenFile struct {
	path string
}

func newTokenFile(path string) *tokenFile {
	return &tokenFile{path: path}
}

func (f *tokenFile) load() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *tokenFile) save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(token+"\n"), 0o600)
}

func (f *tokenFile) remove() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
