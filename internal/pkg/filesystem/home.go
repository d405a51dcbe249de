package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// AppDirName is the per-user state directory under $HOME.
const AppDirName = ".termnamer"

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// AppDir returns ~/.termnamer.
func AppDir() string {
	return filepath.Join(UserHomeDir(), AppDirName)
}

// AppPath joins elem under ~/.termnamer.
func AppPath(elem ...string) string {
	return filepath.Join(append([]string{AppDir()}, elem...)...)
}

// ExpandHome resolves a leading "~/" against the home directory.
func ExpandHome(path string) string {
	if path == "~" {
		return UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(UserHomeDir(), path[2:])
	}
	return path
}
