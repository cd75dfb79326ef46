package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix names in-flight writes. Keys and the watcher skip them.
const TempFilePrefix = "notemaster-tmp-"

// replaceFile swaps the content of target for data. The bytes go to a
// sibling temp file first, so readers see the old value or the new one.
func replaceFile(target string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("fs: stage %s: %w", filepath.Base(target), err)
	}
	staged := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(staged)
		}
	}()

	_, werr := tmp.Write(data)
	if werr == nil {
		werr = tmp.Sync()
	}
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Chmod(staged, perm)
	}
	if werr != nil {
		return fmt.Errorf("fs: stage %s: %w", filepath.Base(target), werr)
	}

	if err = os.Rename(staged, target); err != nil {
		return fmt.Errorf("fs: replace %s: %w", target, err)
	}
	return syncDir(dir)
}

// syncDir makes the rename durable. Platforms that cannot fsync a
// directory report EINVAL or a permission error, both ignored.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return nil
	}
	defer d.Close()
	if err := d.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) && !errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("fs: sync %s: %w", dir, err)
	}
	return nil
}
