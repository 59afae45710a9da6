package cli

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/sdejongh/foldermatch/internal/platform"
	"github.com/sdejongh/foldermatch/pkg/models"
	"github.com/sdejongh/foldermatch/pkg/storage"
)

// validateRoots resolves both roots and rejects combinations that cannot
// be compared safely. It returns the absolute paths.
func validateRoots(fsys afero.Fs, source, target string, action models.ActionKind) (string, string, error) {
	sourceAbs, err := checkRoot(fsys, "source", source)
	if err != nil {
		return "", "", err
	}
	targetAbs, err := checkRoot(fsys, "target", target)
	if err != nil {
		return "", "", err
	}

	if sourceAbs == targetAbs {
		return "", "", fmt.Errorf("source and target cannot be the same: %s", sourceAbs)
	}

	// Moving or deleting inside one tree would change the other one.
	if action != models.ActionNone {
		if platform.IsWithin(sourceAbs, targetAbs) {
			return "", "", fmt.Errorf("target cannot be inside source directory when using --action %s", action)
		}
		if platform.IsWithin(targetAbs, sourceAbs) {
			return "", "", fmt.Errorf("source cannot be inside target directory when using --action %s", action)
		}
	}

	return sourceAbs, targetAbs, nil
}

func checkRoot(fsys afero.Fs, name, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%s path is required", name)
	}

	// Symlinks are resolved before comparing roots, otherwise a link could
	// hide that both roots are the same directory or nested.
	abs, err := storage.ResolveRoot(fsys, path)
	if err != nil {
		return "", fmt.Errorf("%s path is not accessible: %w", name, err)
	}

	info, err := fsys.Stat(abs)
	if err != nil {
		return "", &models.FilesystemError{Path: abs, Err: fmt.Errorf("%s path is not accessible: %w", name, err)}
	}
	if !info.IsDir() {
		return "", &models.FilesystemError{Path: abs, Err: fmt.Errorf("%s path is not a directory", name)}
	}

	return abs, nil
}
