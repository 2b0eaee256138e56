// Package local stores run artifacts on a filesystem, laid out as
// <root>/<bucket>/<key>.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"rfpflow/internal/domain"
	"rfpflow/internal/port"
)

type localStorage struct {
	fs   afero.Fs
	root string
}

// NewLocalStorage creates an ObjectStorage rooted at root on fs.
func NewLocalStorage(fs afero.Fs, root string) port.ObjectStorage {
	return &localStorage{fs: fs, root: root}
}

// NewOSStorage creates an ObjectStorage on the operating system filesystem.
func NewOSStorage(root string) port.ObjectStorage {
	return NewLocalStorage(afero.NewOsFs(), root)
}

func (s *localStorage) objectPath(bucket, key string) (string, error) {
	clean := path.Clean("/" + key)
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("local storage: invalid key %q", key)
	}
	return filepath.Join(s.root, bucket, filepath.FromSlash(clean)), nil
}

func (s *localStorage) Upload(_ context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	p, err := s.objectPath(input.Bucket, input.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, fmt.Errorf("%w: local mkdir: %v", domain.ErrUploadFailed, err)
	}

	f, err := s.fs.Create(p)
	if err != nil {
		return nil, fmt.Errorf("%w: local create: %v", domain.ErrUploadFailed, err)
	}
	_, err = io.Copy(f, input.Body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// No partial artifact is left behind.
		_ = s.fs.Remove(p)
		return nil, fmt.Errorf("%w: local write: %v", domain.ErrUploadFailed, err)
	}
	return &port.UploadOutput{Location: p}, nil
}

func (s *localStorage) Download(_ context.Context, bucket, key string) ([]byte, error) {
	p, err := s.objectPath(bucket, key)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("local download: %w", err)
	}
	return data, nil
}

func (s *localStorage) Delete(_ context.Context, bucket, key string) error {
	p, err := s.objectPath(bucket, key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("local delete: %w", err)
	}
	return nil
}

// GetPresignedURL returns a file URL; local artifacts need no signing.
func (s *localStorage) GetPresignedURL(_ context.Context, bucket, key string, _ int64) (string, error) {
	p, err := s.objectPath(bucket, key)
	if err != nil {
		return "", err
	}
	return "file://" + filepath.ToSlash(p), nil
}
