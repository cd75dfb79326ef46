package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LocalDirName marks a project-local notes directory.
const LocalDirName = ".notemaster"

// ErrNoLocalDir is returned by FindRoot when no ancestor holds a LocalDirName.
var ErrNoLocalDir = errors.New("no " + LocalDirName + " directory found")

// FindRoot returns the absolute path of the nearest LocalDirName directory
// in startDir or one of its ancestors.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for start := dir; ; {
		marker := filepath.Join(dir, LocalDirName)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return marker, nil
		}
		up := filepath.Dir(dir)
		if up == dir {
			return "", fmt.Errorf("%w above %s", ErrNoLocalDir, start)
		}
		dir = up
	}
}
