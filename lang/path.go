package lang

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/bmk/pkg"
)

// searchPath returns the include directories in search order: those given
// with [WithIncludeDirs] followed by the entries of the environment variable
// named by [pkg.PathVar]. Entries that are not directories are dropped.
func (c config) searchPath() []string {
	list, _ := c.lookupEnv(pkg.PathVar)

	joined := mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(c.includeDirs...),
		mung.WithFilter(isDir),
	).String()

	var dirs []string

	for dir := range strings.SplitSeq(joined, string(os.PathListSeparator)) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

// locate finds the file named by path. It tries the path as given, then with
// backslashes converted to slashes, then relative to dir (the directory of
// the including file), then relative to each search path directory.
func (c config) locate(path, dir string) (string, bool) {
	candidates := []string{path}

	if strings.Contains(path, `\`) {
		path = strings.ReplaceAll(path, `\`, "/")
		candidates = append(candidates, path)
	}

	if !filepath.IsAbs(path) {
		if dir != "" {
			candidates = append(candidates, filepath.Join(dir, path))
		}

		for _, d := range c.searchPath() {
			candidates = append(candidates, filepath.Join(d, path))
		}
	}

	for _, name := range candidates {
		if isFile(name) {
			return name, true
		}
	}

	return "", false
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
