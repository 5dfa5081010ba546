// Package validation checks user-supplied paths before commands touch them.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SupportedAudioExtensions lists the recordings accepted by the transcriber.
var SupportedAudioExtensions = []string{".mp3", ".m4a", ".wav", ".webm", ".ogg", ".flac", ".mp4", ".mpeg", ".mpga"}

// IsValidInputFile checks that path exists and is a regular file.
func IsValidInputFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path cannot be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s: %w", path, err)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}

// IsValidAudioFile checks that path is an existing recording with a known extension.
func IsValidAudioFile(path string) error {
	if err := IsValidInputFile(path); err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedAudioExtensions {
		if ext == supported {
			return nil
		}
	}
	return fmt.Errorf("unsupported audio format: %s. Supported formats are %s", ext, strings.Join(SupportedAudioExtensions, ", "))
}

// IsValidReportPath checks that an export target is an .xlsx workbook and
// not an existing directory.
func IsValidReportPath(path string) error {
	if strings.ToLower(filepath.Ext(path)) != ".xlsx" {
		return fmt.Errorf("unsupported report format: %s. Reports are written as .xlsx", path)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("report path %s is a directory", path)
	}
	return nil
}

// IsValidFilePermissions checks if the given file mode is valid for sensitive files.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 { // Check if 'others' have any permissions
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0640", mode.String())
	}
	return nil
}
