package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oksasatya/rentify/internal/domain/repository"
)

// PublicPrefix is the URL path under which local uploads are served.
const PublicPrefix = "/uploads"

var ErrInvalidName = errors.New("invalid file name")

const maxNameAttempts = 16

// Local writes uploads into a directory served by the HTTP layer.
type Local struct {
	Dir     string
	BaseURL string
}

func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Local{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *Local) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", ErrInvalidName
	}
	return filepath.Join(s.Dir, name), nil
}

func (s *Local) Save(ctx context.Context, name, _ string, r io.Reader) (repository.StoredFile, error) {
	p, err := s.path(name)
	if err != nil {
		return repository.StoredFile{}, err
	}
	if err := ctx.Err(); err != nil {
		return repository.StoredFile{}, err
	}
	f, name, p, err := s.create(name, p)
	if err != nil {
		return repository.StoredFile{}, err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return repository.StoredFile{}, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(p)
		return repository.StoredFile{}, err
	}
	return repository.StoredFile{Name: name, Path: s.BaseURL + PublicPrefix + "/" + name}, nil
}

// create opens a new file, adding a numeric suffix when name is already taken.
// Existing files are never overwritten.
func (s *Local) create(name, p string) (*os.File, string, string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, name, p, nil
		}
		if !errors.Is(err, os.ErrExist) || i > maxNameAttempts {
			return nil, "", "", err
		}
		name = fmt.Sprintf("%s-%d%s", stem, i, ext)
		p = filepath.Join(s.Dir, name)
	}
}

func (s *Local) Delete(_ context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

var _ repository.FileStore = (*Local)(nil)
