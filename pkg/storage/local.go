package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/sdejongh/foldermatch/internal/platform"
	"github.com/sdejongh/foldermatch/pkg/models"
)

// Local is an afero-backed storage backend anchored at a directory
type Local struct {
	fs       afero.Fs
	rootPath string
}

// NewLocal creates a backend rooted at rootPath. The root must exist and
// be a directory; otherwise a *models.FilesystemError is returned.
func NewLocal(fsys afero.Fs, rootPath string) (*Local, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	absPath, err := ResolveRoot(fsys, rootPath)
	if err != nil {
		return nil, err
	}

	info, err := fsys.Stat(absPath)
	if err != nil {
		return nil, &models.FilesystemError{Path: absPath, Err: fmt.Errorf("failed to access path: %w", err)}
	}

	if !info.IsDir() {
		return nil, &models.FilesystemError{Path: absPath, Err: errors.New("path is not a directory")}
	}

	return &Local{fs: fsys, rootPath: absPath}, nil
}

// ResolveRoot returns rootPath as an absolute path. On the OS filesystem
// (or a nil fsys) symlinks are resolved too, so a root given as a link to a
// directory is walked like the directory itself and two spellings of one
// directory compare equal.
func ResolveRoot(fsys afero.Fs, rootPath string) (string, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return "", &models.FilesystemError{Path: rootPath, Err: fmt.Errorf("failed to resolve path: %w", err)}
	}

	if _, ok := fsys.(*afero.OsFs); fsys != nil && !ok {
		return absPath, nil
	}

	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", &models.FilesystemError{Path: absPath, Err: fmt.Errorf("failed to access path: %w", err)}
	}
	return realPath, nil
}

// Root returns the absolute root path
func (l *Local) Root() string {
	return l.rootPath
}

func (l *Local) abs(path string) string {
	return platform.FromSnapshotKey(l.rootPath, path)
}

// List walks the tree and returns its regular files. Symlinks are
// followed only when they point at a regular file.
func (l *Local) List(ctx context.Context) ([]FileInfo, []*models.FileError, error) {
	var files []FileInfo
	var fileErrs []*models.FileError

	err := afero.Walk(l.fs, l.rootPath, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if p == l.rootPath {
				return &models.FilesystemError{Path: p, Err: err}
			}
			fileErrs = append(fileErrs, &models.FileError{Path: p, Op: "list", Err: err})
			return nil
		}

		mode := info.Mode()
		if mode&os.ModeSymlink != 0 {
			target, statErr := l.fs.Stat(p)
			if statErr != nil {
				fileErrs = append(fileErrs, &models.FileError{Path: p, Op: "list", Err: statErr})
				return nil
			}
			info = target
			mode = target.Mode()
		}

		if !mode.IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(l.rootPath, p)
		if err != nil {
			fileErrs = append(fileErrs, &models.FileError{Path: p, Op: "list", Err: err})
			return nil
		}

		files = append(files, FileInfo{
			Path:         p,
			RelativePath: platform.SnapshotKey(relPath),
			Size:         info.Size(),
			ModTime:      info.ModTime(),
			Mode:         mode,
		})

		return nil
	})

	if err != nil {
		var fsErr *models.FilesystemError
		if errors.As(err, &fsErr) {
			return nil, nil, fsErr
		}
		return nil, nil, &models.FilesystemError{Path: l.rootPath, Err: fmt.Errorf("failed to list files: %w", err)}
	}

	return files, fileErrs, nil
}

// Open opens a file for reading
func (l *Local) Open(ctx context.Context, path string) (afero.File, error) {
	file, err := l.fs.Open(l.abs(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Exists checks if a file or directory exists
func (l *Local) Exists(ctx context.Context, path string) (bool, error) {
	ok, err := afero.Exists(l.fs, l.abs(path))
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return ok, nil
}

// MkdirAll creates a directory and all necessary parents
func (l *Local) MkdirAll(ctx context.Context, path string) error {
	if err := l.fs.MkdirAll(l.abs(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Move renames from to to. An existing file at to is replaced.
func (l *Local) Move(ctx context.Context, from, to string) (bool, error) {
	dst := l.abs(to)

	replaced, err := afero.Exists(l.fs, dst)
	if err != nil {
		return false, fmt.Errorf("failed to check destination: %w", err)
	}

	if err := l.fs.Rename(l.abs(from), dst); err != nil {
		return false, fmt.Errorf("failed to move: %w", err)
	}

	return replaced, nil
}

// Delete removes a single file
func (l *Local) Delete(ctx context.Context, path string) error {
	if err := l.fs.Remove(l.abs(path)); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	return nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
