package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
)

// BackendKind names a secret store implementation
type BackendKind string

const (
	BackendKeyring BackendKind = "keyring"
	BackendFile    BackendKind = "file"
)

// BackendVariable forces a backend regardless of detection
const BackendVariable = "FA_SECRET_BACKEND"

// procVersion is read to detect WSL
var procVersion = "/proc/version"

// Backend reports which backend NewStore picks on this machine.
// FA_SECRET_BACKEND wins; WSL and headless Linux get the file backend.
func Backend() BackendKind {
	switch BackendKind(strings.ToLower(os.Getenv(BackendVariable))) {
	case BackendKeyring:
		return BackendKeyring
	case BackendFile:
		return BackendFile
	}

	if IsWSL() || IsHeadless() {
		return BackendFile
	}
	return BackendKeyring
}

// NewStore opens the detected backend. When the keyring cannot be opened
// it falls back to the encrypted file.
func NewStore() (Store, error) {
	kind := Backend()
	if kind == BackendKeyring {
		store, err := NewKeyringStore()
		if err == nil {
			return store, nil
		}
		fallbackNotice("keyring unavailable, using encrypted file for secret keys", "error", err)
	} else {
		fallbackNotice("using encrypted file for secret keys", "wsl", IsWSL(), "headless", IsHeadless())
	}

	return NewFileStore(DefaultFilePath(), os.Getenv(PasswordVariable))
}

// fallbackNotice logs the file-backend warning once per machine.
// A marker file in the data directory keeps later commands quiet.
func fallbackNotice(msg string, args ...any) {
	marker := filepath.Join(xdg.DataHome, ServiceName, ".file-store-notice")
	if _, err := os.Stat(marker); err == nil {
		slog.Debug(msg, args...)
		return
	}

	slog.Warn(msg, args...)
	if err := os.MkdirAll(filepath.Dir(marker), 0700); err != nil {
		return
	}
	if err := os.WriteFile(marker, []byte("1"), 0600); err != nil {
		slog.Debug("failed to write notice marker", "path", marker, "error", err)
	}
}

// IsWSL returns true if running under Windows Subsystem for Linux.
func IsWSL() bool {
	if runtime.GOOS != "linux" {
		return false
	}

	data, err := os.ReadFile(procVersion)
	if err != nil {
		return false
	}

	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

// IsHeadless returns true on Linux without an X11 or Wayland display.
func IsHeadless() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	return os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
}

// String implements fmt.Stringer
func (k BackendKind) String() string {
	switch k {
	case BackendFile:
		return "encrypted file"
	case BackendKeyring:
		return "keyring"
	default:
		return fmt.Sprintf("BackendKind(%s)", string(k))
	}
}
