package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/bmk/lang"
	"github.com/ardnew/bmk/log"
)

// Parse reads the build description without resolving it and prints every
// item, conditionals included, with references left unexpanded.
type Parse struct{}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) error {
	in := inputFrom(ctx)

	log.InfoContext(ctx, "parse", slog.String("file", in.File))

	items, err := lang.ParseFile(ctx, in.File, in.options()...)
	if err != nil {
		return err
	}

	return in.write(ctx, &lang.Result{Items: items})
}
