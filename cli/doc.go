// Package cli contains the command line interface for bmk.
//
// # Usage
//
//	bmk [flags] [resolve] [target ...]
//	bmk [flags] parse
//	bmk [flags] vars [name ...]
//	bmk [flags] init [--force]
//
// The resolve command is the default. It reads the build description named
// by --file (Makefile), resolves conditionals and variable references, and
// prints the retained items. Given targets, only the explicit rules for
// those targets are printed. The parse command prints the items as read,
// and vars prints the final variable table.
//
// # Options
//
//   - -f, --file: build description to read
//   - -D, --workdir: change to a directory first; restored on exit
//   - -I, --include-dir: search directory for !include (repeatable)
//   - -o, --output: native, json or yaml
//   - -v, --verbose: log phase transitions and directory changes
//   - --parse-debug: trace parsing and resolution
//
// # Configuration
//
// Flag defaults are read from the file "config" in the user configuration
// directory (for example ~/.config/bmk/config). The file is a build
// description whose assignments name flags with underscores in place of
// hyphens:
//
//	log_level = info
//	output = yaml
//
// A JSON file "config.json" in the same directory is read as well. The init
// command writes the current flag values to the configuration file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o bmk .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default ~/.cache/bmk/pprof)
package cli
