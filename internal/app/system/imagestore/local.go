package imagestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes photos under a directory served by the static file
// handler. Used in development when no S3 bucket is configured.
type LocalStore struct {
	root    string
	urlBase string
}

func NewLocal(root, urlBase string) *LocalStore {
	return &LocalStore{root: root, urlBase: strings.TrimSuffix(urlBase, "/")}
}

func (s *LocalStore) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	dest := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("imagestore: mkdir: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("imagestore: create %s: %w", dest, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("imagestore: write %s: %w", dest, err)
	}
	return s.urlBase + "/" + key, nil
}
