//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version returns the semantic version of the bmk module embedded at build
// time, without surrounding whitespace.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command and module identifier. It appears in help
	// text, default config paths, and the include search path variable.
	Name = "bmk"
	// Description is a short, human-readable summary used in help output.
	Description = "Build-description parser and macro resolver"
	// DefaultFile is the build description read when no file is given.
	DefaultFile = "Makefile"
	// PathVar names the environment variable holding extra include
	// directories, separated by the OS path list separator.
	PathVar = "BMKPATH"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
