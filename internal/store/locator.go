package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

// Extension is the file extension of store files
const Extension = "fa"

var namePattern = regexp.MustCompile(`^[^/\x00]+$`)

// ValidateName checks that name can be used as a store file name
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Resolve returns the file path of the named store. It does not touch the filesystem.
func Resolve(name, basePath string) string {
	return filepath.Join(basePath, name+"."+Extension)
}

// Exists reports whether path exists. Permission failures are returned as
// errors; any other stat failure counts as absent.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrPermission) {
		return false, fmt.Errorf("failed to check %s: %w", path, err)
	}
	return false, nil
}
