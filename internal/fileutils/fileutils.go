// Package fileutils provides the small file-system helpers shared by the
// file-backed stores and the report exporter.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirPermission is used for every directory created on behalf of a data file.
const DirPermission = 0750

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// RequireFile returns nil when filePath names an existing regular file.
// A missing file yields an error satisfying errors.Is(err, os.ErrNotExist).
func RequireFile(filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", filePath)
	}
	return nil
}

// EnsureParentDir creates the directory that will hold filePath.
func EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, DirPermission); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
