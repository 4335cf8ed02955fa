package keys

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophvault/internal/filex"
)

// FileStore keeps each key in <dir>/<tag>.key with 0600 permissions.
//
// Put writes a temporary file and publishes it with os.Link, which fails
// when the target exists, so readers never observe a half-written key and
// at most one writer wins across processes.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(tag string) (string, error) {
	if tag == "" || strings.ContainsAny(tag, `/\`) || tag == "." || tag == ".." {
		return "", fmt.Errorf("invalid key tag %q", tag)
	}
	return filepath.Join(s.dir, tag+".key"), nil
}

func (s *FileStore) Get(ctx context.Context, tag string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	p, err := s.path(tag)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read key file: %w", err)
	}
	return data, true, nil
}

func (s *FileStore) Put(ctx context.Context, tag string, key []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(tag)
	if err != nil {
		return err
	}

	if _, err := filex.EnsureDir(s.dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".pending-*.key")
	if err != nil {
		return fmt.Errorf("create temp key file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(key); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp key file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp key file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp key file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("chmod temp key file: %w", err)
	}

	if err := os.Link(tmpName, p); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrKeyExists
		}
		return fmt.Errorf("publish key file: %w", err)
	}
	return nil
}
