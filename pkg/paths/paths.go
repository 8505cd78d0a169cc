package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/medialink/pkg/errors"
)

const (
	// AppName names the XDG subdirectories
	AppName = "medialink"

	// LedgerFileName is the undo log kept next to the executable
	LedgerFileName = ".medialink-ledger"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// executable is replaced in tests
var executable = os.Executable

// LedgerPath returns where the undo log lives. A configured path wins
// (with ~ expanded); otherwise the log sits next to the running binary.
func LedgerPath(configured string) (string, error) {
	if configured != "" {
		return Normalize(configured)
	}

	exe, err := executable()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "cannot locate the medialink executable")
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), LedgerFileName), nil
}

// ConfigDir returns the medialink directory below XDG_CONFIG_HOME
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// StateDir returns the medialink directory below XDG_STATE_HOME
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// Normalize expands ~, makes path absolute and cleans it
func Normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrMissingArgument, "path cannot be empty")
	}
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", path)
	}
	return abs, nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			// Can't expand, return as-is
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	// Handle both ~/ and ~
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	// ~something (not the user's home)
	return path
}
