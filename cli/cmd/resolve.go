package cmd

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ardnew/bmk/lang"
	"github.com/ardnew/bmk/log"
)

// Resolve parses and resolves the build description and prints the
// retained items.
type Resolve struct {
	Targets []string `arg:"" help:"Print only these explicit rules." name:"target" optional:""`
}

// Run executes the resolve command.
func (r *Resolve) Run(ctx context.Context) error {
	in := inputFrom(ctx)

	res, err := in.load(ctx)
	if err != nil {
		return err
	}

	if len(r.Targets) > 0 {
		res = selectTargets(ctx, res, r.Targets)
	}

	return in.write(ctx, res)
}

// selectTargets returns a copy of res in which the only explicit rules are
// those building one of targets. Other items are kept.
func selectTargets(ctx context.Context, res *lang.Result, targets []string) *lang.Result {
	found := make(map[string]bool, len(targets))
	items := make([]*lang.Item, 0, len(res.Items))

	for _, it := range res.Items {
		if it.Kind == lang.KindExplicitRule {
			if !slices.Contains(targets, it.ExplicitRule.Target) {
				continue
			}

			found[it.ExplicitRule.Target] = true
		}

		items = append(items, it)
	}

	for _, t := range targets {
		if !found[t] {
			log.WarnContext(ctx, "no rule for target", slog.String("target", t))
		}
	}

	return &lang.Result{Items: items, Vars: res.Vars}
}
