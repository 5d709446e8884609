package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/bmk/lang"
	"github.com/ardnew/bmk/log"
	"github.com/ardnew/bmk/pkg"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Output selects how commands print their results.
type Output string

const (
	OutputNative Output = "native"
	OutputJSON   Output = "json"
	OutputYAML   Output = "yaml"
)

// Outputs returns the names of all output formats.
func Outputs() []string {
	return []string{string(OutputNative), string(OutputJSON), string(OutputYAML)}
}

// Input describes the build description every command reads and where its
// results go.
type Input struct {
	// File is the build description to read. Empty means [pkg.DefaultFile].
	File string
	// IncludeDirs are searched by !include after the including file's
	// directory.
	IncludeDirs []string
	// Output is the result format. Empty means [OutputNative].
	Output Output
	// Indent is the indent width of structured output.
	Indent int
	// Logger receives parse and resolution traces.
	Logger log.Logger
	// Stdout receives command output. Nil means os.Stdout.
	Stdout io.Writer
}

type inputKey struct{}

// WithInput returns a new context.Context containing in.
func WithInput(ctx context.Context, in Input) context.Context {
	return context.WithValue(ctx, inputKey{}, in)
}

// inputFrom returns the Input stored in ctx with defaults filled in.
func inputFrom(ctx context.Context) Input {
	in, _ := ctx.Value(inputKey{}).(Input)

	if in.File == "" {
		in.File = pkg.DefaultFile
	}

	if in.Output == "" {
		in.Output = OutputNative
	}

	if in.Stdout == nil {
		in.Stdout = os.Stdout
	}

	return in
}

func (in Input) options() []lang.Option {
	return []lang.Option{
		lang.WithLogger(in.Logger),
		lang.WithIncludeDirs(in.IncludeDirs...),
	}
}

// formatter is implemented by every printable result.
type formatter interface {
	Format(ctx context.Context, w io.Writer, indent int) error
	FormatJSON(ctx context.Context, w io.Writer, indent int) error
	FormatYAML(ctx context.Context, w io.Writer, indent int) error
}

// write prints f to the input's output in the selected format.
func (in Input) write(ctx context.Context, f formatter) error {
	var err error

	switch Output(strings.ToLower(string(in.Output))) {
	case OutputNative:
		err = f.Format(ctx, in.Stdout, in.Indent)
	case OutputJSON:
		err = f.FormatJSON(ctx, in.Stdout, in.Indent)
	case OutputYAML:
		err = f.FormatYAML(ctx, in.Stdout, in.Indent)
	default:
		return ErrUnknownOutput.With(slog.String("output", string(in.Output)))
	}

	if err != nil {
		return ErrWriteOutput.
			With(slog.String("output", string(in.Output))).
			Wrap(err)
	}

	return nil
}

// load parses and resolves the input's build description.
func (in Input) load(ctx context.Context) (*lang.Result, error) {
	log.InfoContext(ctx, "parse", slog.String("file", in.File))

	items, err := lang.ParseFile(ctx, in.File, in.options()...)
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "resolve", slog.Int("items", len(items)))

	return lang.Resolve(ctx, items, nil, in.options()...)
}
