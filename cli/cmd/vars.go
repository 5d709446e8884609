package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/bmk/log"
)

// Vars parses and resolves the build description and prints the variable
// table.
type Vars struct {
	Names []string `arg:"" help:"Print only these variables, consulting the environment." name:"name" optional:""`
}

// Run executes the vars command.
func (v *Vars) Run(ctx context.Context) error {
	in := inputFrom(ctx)

	res, err := in.load(ctx)
	if err != nil {
		return err
	}

	vars := res.Vars

	if len(v.Names) > 0 {
		var missing []string

		vars, missing = vars.Select(v.Names...)
		if len(missing) > 0 {
			log.WarnContext(ctx, "undefined variables",
				slog.String("names", strings.Join(missing, ",")))
		}
	}

	return in.write(ctx, vars)
}
