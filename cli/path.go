package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/bmk/cli/cmd"
	"github.com/ardnew/bmk/log"
	"github.com/ardnew/bmk/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// basePrefix returns the base prefix string used to construct the paths to
// the configuration and cache directories.
//
// By default, basePrefix is the base name of the executable file unless it
// matches one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with cmd
//   - "^\.+" (dot-prefixed names): remove the dot prefix
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		ext := filepath.Ext(filepath.Base(id))
		id = strings.TrimSuffix(filepath.Base(id), ext)

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): pkg.Name, // dlv default output
			regexp.MustCompile(`^\.+`):             "",       // remove leading dot(s)
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		if id == "" {
			id = pkg.Name
		}

		return id
	},
)

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(
	func() string {
		return userDir(os.UserConfigDir, ".config")
	},
)

// cacheDir returns the cache directory path used for profile output.
var cacheDir = sync.OnceValue(
	func() string {
		return userDir(os.UserCacheDir, ".cache")
	},
)

// userDir returns the per-user directory reported by find, falling back to
// fallback under the home directory and then to the working directory.
func userDir(find func() (string, error), fallback string) string {
	dir, err := find()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err == nil {
			dir = filepath.Join(dir, fallback)
		} else {
			dir, err = os.Getwd()
			if err != nil {
				dir = "."
			}
		}
	}

	return filepath.Join(dir, basePrefix())
}

// configPath returns the path formed by joining dir with the given path
// elements.
func configPath(dir string, elem ...string) string {
	return filepath.Join(append([]string{dir}, elem...)...)
}

// chdir changes the working directory to dir and returns a function that
// changes it back.
func chdir(ctx context.Context, dir string) (restore func(), err error) {
	prev, err := os.Getwd()
	if err != nil {
		return nil, cmd.ErrWorkdir.With(slog.String("dir", dir)).Wrap(err)
	}

	if err := os.Chdir(dir); err != nil {
		return nil, cmd.ErrWorkdir.With(slog.String("dir", dir)).Wrap(err)
	}

	log.InfoContext(ctx, "entering directory", slog.String("dir", dir))

	return func() {
		if err := os.Chdir(prev); err != nil {
			log.ErrorContext(ctx, "restore working directory",
				slog.String("dir", prev), slog.Any("error", err))

			return
		}

		log.InfoContext(ctx, "leaving directory", slog.String("dir", dir))
	}, nil
}
