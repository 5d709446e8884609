package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/ardnew/bmk/cli/cmd"
	"github.com/ardnew/bmk/lang"
	"github.com/ardnew/bmk/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads config files
// written in the build description language.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, path), path)
//
// The file is parsed and resolved like any build description, so it may
// use variable references, conditionals and !include. Each assignment in
// the resulting variable table provides the default for the flag of the
// same name, with hyphens written as underscores:
//
//	# ~/.config/bmk/config
//	!ifdef CI
//	log_format = json
//	!endif
//	log_level = info
//	include_dir = $(HOME)/mk,/usr/share/mk
//
// Rules and commands in the file are ignored. Command-line flags override
// config file values. A file that fails to parse or resolve is reported
// and otherwise ignored.
func resolve(ctx context.Context, path string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		items, err := lang.ParseReader(ctx, r, path)
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration", slog.Any("error", err))

			return config{}, nil
		}

		res, err := lang.Resolve(ctx, items, nil)
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration", slog.Any("error", err))

			return config{}, nil
		}

		log.DebugContext(ctx, "loaded configuration",
			slog.String("file", path),
			slog.Int("vars", res.Vars.Len()))

		return config(res.Vars.Map()), nil
	}
}

// config implements [kong.Resolver] for build description configs.
type config map[string]string

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already resolved successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Variable names cannot contain hyphens, so "log-level" is read from
	// log_level.
	if value, ok := r[cmd.ConfigName(flag.Name)]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
