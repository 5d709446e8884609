package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/bmk/log"
)

// state is the execution state of one conditional level.
type state int

const (
	// stateExec: the current branch is taken.
	stateExec state = iota
	// stateSkip: no branch has been taken yet; a later !elif or !else may be.
	stateSkip
	// stateSkipAll: a branch was taken, or the whole level is inside an
	// untaken branch. Nothing more at this level is taken.
	stateSkipAll
)

func (s state) String() string {
	switch s {
	case stateExec:
		return "EXEC"
	case stateSkip:
		return "SKIP"
	case stateSkipAll:
		return "SKIPALL"
	default:
		return "UNKNOWN"
	}
}

// frame is one open conditional level.
type frame struct {
	item  *Item
	state state
}

// Result is the output of [Resolve].
type Result struct {
	// Items holds the retained items with all references substituted.
	// It contains no Empty or Conditional items.
	Items []*Item
	// Vars is the variable table after every taken assignment.
	Vars *Vars
}

// Resolve evaluates conditionals and substitutes variable references in
// items, which are modified in place. Items in untaken branches are dropped,
// as are all Empty and Conditional items.
//
// Assignments are written to vars; a nil vars is replaced with
// NewVars(opts...). Every returned error matches [ErrResolve].
func Resolve(
	ctx context.Context,
	items []*Item,
	vars *Vars,
	opts ...Option,
) (*Result, error) {
	cfg := makeConfig(opts...)

	if vars == nil {
		vars = NewVars(opts...)
	}

	r := &resolver{ctx: ctx, logger: cfg.logger, vars: vars}

	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return nil, ErrResolve.At(it.Location).Wrap(err)
		}

		if err := r.step(it); err != nil {
			return nil, err
		}
	}

	if n := len(r.stack); n > 0 {
		open := r.stack[n-1].item

		return nil, ErrUnterminated.About(
			"!" + string(open.Conditional.Directive),
		).At(open.Location).With(slog.Int("depth", n))
	}

	r.logger.DebugContext(ctx, "resolve complete",
		slog.Int("items", len(r.out)),
		slog.Int("vars", vars.Len()))

	return &Result{Items: r.out, Vars: vars}, nil
}

// Load parses the file at path and resolves it.
func Load(ctx context.Context, path string, opts ...Option) (*Result, error) {
	items, err := ParseFile(ctx, path, opts...)
	if err != nil {
		return nil, err
	}

	return Resolve(ctx, items, nil, opts...)
}

type resolver struct {
	ctx    context.Context
	logger log.Logger
	vars   *Vars
	stack  []frame
	out    []*Item
}

// top returns the state governing the next item; an empty stack executes.
func (r *resolver) top() state {
	if n := len(r.stack); n > 0 {
		return r.stack[n-1].state
	}

	return stateExec
}

func (r *resolver) step(it *Item) error {
	switch it.Kind {
	case KindEmpty:
		return nil

	case KindConditional:
		return r.conditional(it)

	default:
		if r.top() != stateExec {
			r.logger.TraceContext(r.ctx, "drop",
				slog.String("at", it.Location.String()),
				slog.String("kind", it.Kind.String()))

			return nil
		}

		if err := r.substitute(it); err != nil {
			return err
		}

		r.out = append(r.out, it)

		return nil
	}
}

func (r *resolver) conditional(it *Item) error {
	c := it.Conditional
	cur := r.top()

	switch c.Directive {
	case DirectiveIf, DirectiveIfdef, DirectiveIfndef:
		next := stateSkipAll

		if cur == stateExec {
			ok, err := r.test(it)
			if err != nil {
				return err
			}

			next = stateSkip
			if ok {
				next = stateExec
			}
		}

		r.stack = append(r.stack, frame{item: it, state: next})

	case DirectiveElif:
		if len(r.stack) == 0 {
			return ErrMismatched.About("!elif").At(it.Location)
		}

		switch cur {
		case stateExec:
			r.stack[len(r.stack)-1].state = stateSkipAll

		case stateSkip:
			ok, err := r.test(it)
			if err != nil {
				return err
			}

			if ok {
				r.stack[len(r.stack)-1].state = stateExec
			}
		}

	case DirectiveElse:
		if len(r.stack) == 0 {
			return ErrMismatched.About("!else").At(it.Location)
		}

		switch cur {
		case stateExec:
			r.stack[len(r.stack)-1].state = stateSkip
		case stateSkip:
			r.stack[len(r.stack)-1].state = stateExec
		}

	case DirectiveEndif:
		if len(r.stack) == 0 {
			return ErrMismatched.About("!endif").At(it.Location)
		}

		r.stack = r.stack[:len(r.stack)-1]

	default:
		return ErrUnsupportedDirective.About("!" + string(c.Directive)).
			At(it.Location)
	}

	r.logger.TraceContext(r.ctx, "conditional",
		slog.String("at", it.Location.String()),
		slog.String("directive", string(c.Directive)),
		slog.String("state", r.top().String()),
		slog.Int("depth", len(r.stack)))

	return nil
}

// test evaluates the condition of an opening or !elif directive.
func (r *resolver) test(it *Item) (bool, error) {
	c := it.Conditional

	var (
		ok  bool
		err error
	)

	switch c.Directive {
	case DirectiveIfdef, DirectiveIfndef:
		ok, err = r.vars.IsDefined(c.Condition, it.Location)
		if c.Directive == DirectiveIfndef {
			ok = !ok
		}

	default:
		ok, err = r.vars.Evaluate(c.Condition, it.Location)
	}

	return ok, err
}

// substitute expands references in the string fields of a retained item and
// applies assignments to the table.
func (r *resolver) substitute(it *Item) error {
	sub := func(s string) (string, error) {
		return r.vars.Substitute(s, it.Location)
	}

	subAll := func(list []string) error {
		for i, s := range list {
			out, err := sub(s)
			if err != nil {
				return err
			}

			list[i] = out
		}

		return nil
	}

	var err error

	switch it.Kind {
	case KindAssignment:
		a := it.Assignment
		if a.Value, err = sub(a.Value); err != nil {
			return err
		}

		r.vars.Set(a.Name, a.Value, it.Location)

		r.logger.TraceContext(r.ctx, "assign",
			slog.String("at", it.Location.String()),
			slog.String("name", a.Name),
			slog.String("value", a.Value))

	case KindExplicitRule:
		e := it.ExplicitRule
		if e.Target, err = sub(e.Target); err != nil {
			return err
		}

		if err = subAll(e.Dependencies); err != nil {
			return err
		}

		return subAll(e.Commands)

	case KindImplicitRule:
		i := it.ImplicitRule
		if i.SourceSuffix, err = sub(i.SourceSuffix); err != nil {
			return err
		}

		if i.DestSuffix, err = sub(i.DestSuffix); err != nil {
			return err
		}

		return subAll(i.Commands)
	}

	return nil
}
