// internal/uploads/local.go
package uploads

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// LocalStore writes images under a directory served at URLPrefix.
type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: urlPrefix}, nil
}

func (l *LocalStore) Save(_ context.Context, name string, data []byte, _ string) (string, error) {
	name = filepath.Base(name)
	if err := os.WriteFile(filepath.Join(l.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return path.Join(l.urlPrefix, name), nil
}

// Handler serves stored files; mount it at the store's URL prefix.
// Directories are not listed.
func (l *LocalStore) Handler() http.Handler {
	files := http.FileServer(http.Dir(l.dir))
	return http.StripPrefix(l.urlPrefix+"/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(l.dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		info, err := os.Stat(name)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	}))
}
