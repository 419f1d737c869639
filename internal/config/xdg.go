package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// ErrEnvironmentVariable is returned when a required environment variable is missing.
var ErrEnvironmentVariable = errors.New("environment variable error")

// FileName is the name of the config file inside the config directory
const FileName = "config.json5"

// HomeVariable is the variable used to locate the user's config directory
const HomeVariable = "HOME"

// DefaultDir returns the XDG-compliant config directory for fa
// Typically ~/.config/fa/ on Linux. Fails when $HOME is unset.
func DefaultDir() (string, error) {
	if _, ok := os.LookupEnv(HomeVariable); !ok {
		return "", fmt.Errorf("%w: the environment variable $%s is not set", ErrEnvironmentVariable, HomeVariable)
	}
	return filepath.Join(xdg.ConfigHome, "fa"), nil
}

// DefaultStorePath returns the store directory offered by init,
// typically ~/.local/share/fa/stores on Linux.
func DefaultStorePath() string {
	return filepath.Join(xdg.DataHome, "fa", "stores")
}
