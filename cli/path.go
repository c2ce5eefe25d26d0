package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/manifest/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// defaultDirMode is the permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// basePrefix returns the name of the configuration and cache directories.
//
// It is the base name of the executable, without extension, except that a
// dlv debug binary ("__debug_bin" followed by digits) maps to [pkg.Name] and
// leading dots are removed.
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = filepath.Base(id)
		id = strings.TrimSuffix(id, filepath.Ext(id))

		return normalizePrefix(id)
	},
)

var (
	debugBinPattern = regexp.MustCompile(`^__debug_bin\d*$`)
	leadingDots     = regexp.MustCompile(`^\.+`)
)

func normalizePrefix(id string) string {
	id = debugBinPattern.ReplaceAllString(id, pkg.Name)
	id = leadingDots.ReplaceAllString(id, "")

	if id == "" {
		return pkg.Name
	}

	return id
}

// userDir returns the directory reported by dirFunc, falling back to
// fallback under the home directory, then to the working directory.
func userDir(dirFunc func() (string, error), fallback string) string {
	if dir, err := dirFunc(); err == nil {
		return dir
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, fallback)
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	return "."
}

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(func() string {
	return filepath.Join(userDir(os.UserConfigDir, ".config"), basePrefix())
})

// cacheDir returns the directory for history and profiles.
var cacheDir = sync.OnceValue(func() string {
	return filepath.Join(userDir(os.UserCacheDir, ".cache"), basePrefix())
})

// configPath joins elem to the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
