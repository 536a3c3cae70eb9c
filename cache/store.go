package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	defaultDirPerm  = 0o755
	defaultFilePerm = 0o644
)

// Store is a disk-backed tier cache rooted at one directory.
// It is safe for concurrent use; it does no locking of its own.
type Store struct {
	root     string
	layout   PathLayout
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// Option configures a Store.
type Option func(*Store)

// WithLayout sets the key-to-path mapping. Defaults to DefaultLayout.
func WithLayout(l PathLayout) Option {
	return func(s *Store) {
		if l != nil {
			s.layout = l
		}
	}
}

// WithDirPerm sets the permissions used for cache directories.
func WithDirPerm(mode os.FileMode) Option {
	return func(s *Store) {
		s.dirPerm = mode
	}
}

// WithFilePerm sets the permissions used for cache entries.
func WithFilePerm(mode os.FileMode) Option {
	return func(s *Store) {
		s.filePerm = mode
	}
}

// New creates a Store rooted at dir, creating the namespace directories.
func New(dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, errors.New("cache: dir is empty")
	}
	s := &Store{
		root:     dir,
		layout:   DefaultLayout,
		dirPerm:  defaultDirPerm,
		filePerm: defaultFilePerm,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, ns := range Namespaces() {
		if err := os.MkdirAll(filepath.Join(dir, ns.String()), s.dirPerm); err != nil {
			return nil, fmt.Errorf("cache: create %s: %w", ns, err)
		}
	}
	return s, nil
}

// Root returns the directory the store is rooted at.
func (s *Store) Root() string {
	return s.root
}

// Path returns the file path of k.
func (s *Store) Path(k Key) (string, error) {
	if err := k.Validate(); err != nil {
		return "", err
	}
	return filepath.Join(s.root, s.layout.Path(k)), nil
}

// Get returns the bytes stored under k.
// A missing entry is (nil, false, nil); any other failure is an error.
func (s *Store) Get(k Key) ([]byte, bool, error) {
	path, err := s.Path(k)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from a validated key
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache: read %s: %w", k, err)
	}
	return data, true, nil
}

// Has reports whether an entry exists for k.
func (s *Store) Has(k Key) (bool, error) {
	path, err := s.Path(k)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("cache: stat %s: %w", k, err)
	}
}

// Put stores data under k, replacing any existing entry.
func (s *Store) Put(k Key, data []byte) error {
	path, err := s.Path(k)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, s.dirPerm); err != nil {
		return fmt.Errorf("cache: write %s: %w", k, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("cache: write %s: %w", k, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("cache: write %s: %w", k, err)
	}
	if err := tmp.Chmod(s.filePerm); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("cache: write %s: %w", k, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("cache: write %s: %w", k, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("cache: write %s: %w", k, err)
	}
	return nil
}
