package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TrashDirName is the soft-delete area inside the recordings directory.
const TrashDirName = "trash"

// uniqueDest returns path, or path with a numeric suffix when it already
// exists, so moves never clobber.
func uniqueDest(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// Trash moves a recording into the trash directory beside it.
func Trash(e Entry) error {
	trashDir := filepath.Join(filepath.Dir(e.Path), TrashDirName)
	if err := os.MkdirAll(trashDir, 0o755); err != nil {
		return fmt.Errorf("trash %s: %w", e.Name, err)
	}
	dest := uniqueDest(filepath.Join(trashDir, e.Name))
	if err := os.Rename(e.Path, dest); err != nil {
		return fmt.Errorf("trash %s: %w", e.Name, err)
	}
	return nil
}

// Restore moves a trashed recording back into the library.
func Restore(e Entry) error {
	libDir := filepath.Dir(filepath.Dir(e.Path))
	dest := uniqueDest(filepath.Join(libDir, e.Name))
	if err := os.Rename(e.Path, dest); err != nil {
		return fmt.Errorf("restore %s: %w", e.Name, err)
	}
	return nil
}

// Purge permanently deletes a trashed recording.
func Purge(e Entry) error {
	if err := os.Remove(e.Path); err != nil {
		return fmt.Errorf("purge %s: %w", e.Name, err)
	}
	return nil
}
