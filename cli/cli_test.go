package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/bmk/cli/cmd"
	"github.com/ardnew/bmk/lang"
	"github.com/ardnew/bmk/log"
)

const testMakefile = `CC = gcc
!ifdef CC
all: main.o
	$(CC) -o app main.o
!else
all:
	false
!endif
`

// runTest runs the CLI with an isolated configuration directory and returns
// what it printed.
func runTest(t *testing.T, confDir string, args ...string) (string, error) {
	t.Helper()

	if confDir == "" {
		confDir = t.TempDir()
	}

	// Every run reconfigures the package logger.
	prev := log.Default()
	t.Cleanup(func() { log.Config(log.WithLevel(prev.Level())) })

	var stdout, stderr bytes.Buffer

	err := run(context.Background(), env{
		exit:      func(code int) { t.Fatalf("unexpected exit(%d)", code) },
		stdout:    &stdout,
		stderr:    &stderr,
		configDir: confDir,
	}, args...)

	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRunOutputs(t *testing.T) {
	path := writeFile(t, t.TempDir(), "Makefile", testMakefile)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "default command",
			args: []string{"-f", path},
			want: []string{"ExplicitRule[", "target=all deps=main.o", "  ==> gcc -o app main.o"},
		},
		{
			name: "explicit resolve with target",
			args: []string{"-f", path, "--indent=0", "resolve", "all"},
			want: []string{"Assignment[", "\n==> gcc -o app main.o"},
		},
		{
			name: "json",
			args: []string{"--file", path, "-o", "json", "--indent=0"},
			want: []string{`"target":"all"`, `"commands":["gcc -o app main.o"]`, `"vars":{"CC":"gcc"}`},
		},
		{
			name: "yaml",
			args: []string{"--file", path, "--output", "yaml"},
			want: []string{"items:", "target: all", "vars:", "CC: gcc"},
		},
		{
			name: "parse",
			args: []string{"-f", path, "parse"},
			want: []string{"Conditional[", "directive=ifdef condition=CC", "==> false"},
		},
		{
			name: "vars",
			args: []string{"-f", path, "vars"},
			want: []string{"CC = gcc\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runTest(t, "", tt.args...)
			if err != nil {
				t.Fatalf("run() error = %v", err)
			}

			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"parse", "!bogus\n", lang.ErrParse},
		{"resolve", "!endif\n", lang.ErrResolve},
		{"missing file", "", lang.ErrReadInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if tt.content != "" {
				writeFile(t, dir, tt.name, tt.content)
			}

			_, err := runTest(t, "", "-f", path)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("run() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunWorkdir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Makefile", "X = 1\n")
	writeFile(t, dir, "inc.mk", "Y = 2\n")

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	out, err := runTest(t, "", "-D", dir, "vars")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if out != "X = 1\n" {
		t.Errorf("output = %q, want %q", out, "X = 1\n")
	}

	if after, _ := os.Getwd(); after != wd {
		t.Errorf("working directory = %q, want %q", after, wd)
	}

	_, err = runTest(t, "", "-D", filepath.Join(dir, "missing"))
	if !errors.Is(err, cmd.ErrWorkdir) {
		t.Errorf("run() error = %v, want %v", err, cmd.ErrWorkdir)
	}
}

func TestRunIncludeDir(t *testing.T) {
	inc := t.TempDir()
	writeFile(t, inc, "common.mk", "COMMON = yes\n")

	path := writeFile(t, t.TempDir(), "Makefile", "!include \"common.mk\"\n")

	out, err := runTest(t, "", "-f", path, "-I", inc, "vars")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if out != "COMMON = yes\n" {
		t.Errorf("output = %q, want %q", out, "COMMON = yes\n")
	}
}

func TestRunConfigFile(t *testing.T) {
	confDir := t.TempDir()
	writeFile(t, confDir, baseConfig, "output = json\nindent = 0\n")

	path := writeFile(t, t.TempDir(), "Makefile", "X = 1\n")

	out, err := runTest(t, confDir, "-f", path, "vars")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if out != "{\"X\":\"1\"}\n" {
		t.Errorf("output = %q", out)
	}

	// Flags override the file.
	out, err = runTest(t, confDir, "-f", path, "-o", "native", "vars")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if out != "X = 1\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRunInit(t *testing.T) {
	confDir := filepath.Join(t.TempDir(), "bmk")

	if _, err := runTest(t, confDir, "-o", "yaml", "init"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	res, err := lang.Load(context.Background(), filepath.Join(confDir, baseConfig))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if v, _ := res.Vars.Lookup("output"); v != "yaml" {
		t.Errorf("output = %q, want %q", v, "yaml")
	}

	if v, _ := res.Vars.Lookup("log_level"); v != log.DefaultLevel.String() {
		t.Errorf("log_level = %q, want %q", v, log.DefaultLevel.String())
	}

	if _, err := runTest(t, confDir, "init"); !errors.Is(err, cmd.ErrFileExists) {
		t.Errorf("second init error = %v, want %v", err, cmd.ErrFileExists)
	}
}

func TestRaiseLogLevel(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.Config(log.WithLevel(prev.Level())) })

	tests := []struct {
		name  string
		cli   CLI
		start log.Level
		want  log.Level
	}{
		{"none", CLI{}, log.LevelWarn, log.LevelWarn},
		{"verbose", CLI{Verbose: true}, log.LevelWarn, log.LevelInfo},
		{"verbose keeps debug", CLI{Verbose: true}, log.LevelDebug, log.LevelDebug},
		{"parse debug", CLI{ParseDebug: true, Verbose: true}, log.LevelError, log.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log.Config(log.WithLevel(tt.start))
			tt.cli.raiseLogLevel()

			if got := log.Default().Level(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}
