// Package filex holds small filesystem helpers for locating and creating the
// vault's data directories.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDirName is the directory created under the user's config dir.
const AppDirName = "gophvault"

// EnsureDir creates dir (and parents) with perm if missing and tightens the
// permissions of an existing directory to perm. It returns the absolute path.
func EnsureDir(dir string, perm os.FileMode) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, perm); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	if err := os.Chmod(abs, perm); err != nil {
		return "", fmt.Errorf("chmod %s: %w", abs, err)
	}

	return abs, nil
}

// DataDir returns <user config dir>/gophvault, or ./.gophvault when the
// platform has no user config dir. The directory is not created.
func DataDir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return filepath.Join(".", "."+AppDirName)
	}
	return filepath.Join(base, AppDirName)
}
