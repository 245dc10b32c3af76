package capture

import (
	iofs "io/fs"
	"path/filepath"

	"github.com/bearlytools/pkmn/internal/compress"
	"github.com/gopherfs/fs"
	osfs "github.com/gopherfs/fs/io/os"
	"github.com/pkg/errors"
)

// FS is the filesystem a Store reads and writes.
type FS interface {
	iofs.ReadFileFS
	fs.Writer
}

// Store keeps captures as files in a directory.
type Store struct {
	fs   FS
	dir  string
	kind compress.Kind
}

type storeOption func(s *Store)

// WithFS uses the fs passed instead of the local filesystem.
func WithFS(fs FS) storeOption {
	return func(s *Store) {
		s.fs = fs
	}
}

// WithCompression sets the compression of saved captures. The default is zstd.
func WithCompression(kind compress.Kind) storeOption {
	return func(s *Store) {
		s.kind = kind
	}
}

// NewStore creates a Store for dir, which must exist.
func NewStore(dir string, options ...storeOption) (*Store, error) {
	s := &Store{dir: dir, kind: compress.Zstd}
	for _, o := range options {
		o(s)
	}
	if s.fs == nil {
		fs, err := osfs.New()
		if err != nil {
			return nil, errors.Errorf("could not create an osfs: %s", err)
		}
		s.fs = fs
	}
	return s, nil
}

// Save writes c to the file name in the Store's directory.
func (s *Store) Save(name string, c *Capture) error {
	b, err := c.Compress(s.kind)
	if err != nil {
		return err
	}
	if err := s.fs.WriteFile(s.path(name), b, 0600); err != nil {
		return errors.Wrapf(err, "capture.Store.Save(%s)", name)
	}
	return nil
}

// Load reads the capture in the file name. Captures saved with any compression can be
// loaded.
func (s *Store) Load(name string) (*Capture, error) {
	b, err := s.fs.ReadFile(s.path(name))
	if err != nil {
		return nil, errors.Wrapf(err, "capture.Store.Load(%s)", name)
	}
	return Read(b)
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}
