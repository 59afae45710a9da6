package storage

import (
	"context"
	"io/fs"
	"time"

	"github.com/spf13/afero"

	"github.com/sdejongh/foldermatch/pkg/models"
)

// FileInfo represents metadata about a regular file below a root
type FileInfo struct {
	Path         string
	RelativePath string
	Size         int64
	ModTime      time.Time
	Mode         fs.FileMode
}

// Backend defines the filesystem operations needed to compare and
// reconcile one directory tree. Paths are snapshot keys relative to Root.
type Backend interface {
	// Root returns the absolute root of the tree
	Root() string

	// List returns every regular file below the root. Entries that cannot
	// be read are reported individually and do not stop the walk.
	List(ctx context.Context) ([]FileInfo, []*models.FileError, error)

	// Open opens a file for reading
	Open(ctx context.Context, path string) (afero.File, error)

	// Exists checks if a file or directory exists
	Exists(ctx context.Context, path string) (bool, error)

	// MkdirAll creates a directory and all necessary parents
	MkdirAll(ctx context.Context, path string) error

	// Move renames a file inside the tree, replacing any existing file at
	// the destination. It reports whether something was replaced.
	Move(ctx context.Context, from, to string) (bool, error)

	// Delete permanently removes a single file
	Delete(ctx context.Context, path string) error

	// Close releases any resources held by the backend
	Close() error
}
