package lang

import (
	"os"
	"strings"

	"github.com/ardnew/bmk/log"
)

// DefaultMaxSubstitutions bounds the number of variable references expanded
// in a single string, which stops self-referential definitions such as
// A = $(A) from expanding forever.
const DefaultMaxSubstitutions = 1000

// Option configures parsing, substitution and resolution.
type Option func(*config)

type config struct {
	logger           log.Logger
	includeDirs      []string
	maxSubstitutions int
	lookupEnv        func(string) (string, bool)
}

func makeConfig(opts ...Option) config {
	cfg := config{
		maxSubstitutions: DefaultMaxSubstitutions,
		lookupEnv:        os.LookupEnv,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithLogger sets the logger used for parse and resolution tracing.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithIncludeDirs appends directories searched by !include after the
// including file's own directory.
func WithIncludeDirs(dirs ...string) Option {
	return func(c *config) {
		c.includeDirs = append(c.includeDirs, dirs...)
	}
}

// WithMaxSubstitutions sets the maximum number of references expanded in a
// single string. Values less than 1 restore [DefaultMaxSubstitutions].
func WithMaxSubstitutions(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = DefaultMaxSubstitutions
		}

		c.maxSubstitutions = n
	}
}

// WithEnviron replaces the process environment consulted when a variable is
// not defined in the table. Entries have the form "KEY=VALUE".
func WithEnviron(env []string) Option {
	m := make(map[string]string, len(env))

	for _, entry := range env {
		if key, value, ok := strings.Cut(entry, "="); ok {
			m[key] = value
		}
	}

	return WithLookupEnv(func(key string) (string, bool) {
		value, ok := m[key]

		return value, ok
	})
}

// WithLookupEnv replaces the function used to read the environment.
// A nil function disables the environment fallback.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(c *config) {
		if fn == nil {
			fn = func(string) (string, bool) { return "", false }
		}

		c.lookupEnv = fn
	}
}
