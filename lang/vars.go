package lang

import (
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// Vars is the variable table: a single global scope of name/value bindings
// that falls back to the environment on lookup. The environment is never
// written.
//
// A Vars is not safe for concurrent use.
type Vars struct {
	cfg    config
	values map[string]string
	locs   map[string]Location
}

// NewVars returns an empty variable table. Options that only concern
// parsing are ignored.
func NewVars(opts ...Option) *Vars {
	return &Vars{
		cfg:    makeConfig(opts...),
		values: make(map[string]string),
		locs:   make(map[string]Location),
	}
}

// Set binds name to value, recording where the binding was made.
func (v *Vars) Set(name, value string, loc Location) {
	v.values[name] = value
	v.locs[name] = loc
}

// Lookup returns the value bound to name in the table, or else in the
// environment.
func (v *Vars) Lookup(name string) (string, bool) {
	if value, ok := v.values[name]; ok {
		return value, true
	}

	return v.cfg.lookupEnv(name)
}

// Defined reports whether name is bound in the table or the environment.
func (v *Vars) Defined(name string) bool {
	_, ok := v.Lookup(name)

	return ok
}

// Location returns where name was last assigned. Environment variables have
// no location.
func (v *Vars) Location(name string) (Location, bool) {
	loc, ok := v.locs[name]

	return loc, ok
}

// Len returns the number of bindings in the table.
func (v *Vars) Len() int { return len(v.values) }

// Names returns the names bound in the table in sorted order.
func (v *Vars) Names() []string {
	return slices.Sorted(maps.Keys(v.values))
}

// Map returns a copy of the table's bindings.
func (v *Vars) Map() map[string]string {
	return maps.Clone(v.values)
}

// Select returns a new table binding each of names to its value in v,
// looked up in the table and then the environment. Names bound in neither
// are returned as missing.
func (v *Vars) Select(names ...string) (sel *Vars, missing []string) {
	sel = &Vars{
		cfg:    v.cfg,
		values: make(map[string]string, len(names)),
		locs:   make(map[string]Location, len(names)),
	}

	for _, name := range names {
		value, ok := v.Lookup(name)
		if !ok {
			missing = append(missing, name)

			continue
		}

		sel.values[name] = value
		if loc, ok := v.locs[name]; ok {
			sel.locs[name] = loc
		}
	}

	return sel, missing
}

var reReference = regexp.MustCompile(`\$\((\w+)\)`)

// Substitute expands every $(NAME) reference in text. Each expansion
// replaces all occurrences of that reference, and the result is scanned
// again, so values may themselves contain references.
//
// Expansion stops with [ErrSubstitutionLimit] after the configured number of
// expansions, and fails with [ErrUndefinedVariable] on an unbound name.
// Errors are located at loc.
func (v *Vars) Substitute(text string, loc Location) (string, error) {
	for n := 0; ; n++ {
		m := reReference.FindStringSubmatchIndex(text)
		if m == nil {
			return text, nil
		}

		ref, name := text[m[0]:m[1]], text[m[2]:m[3]]

		if n >= v.cfg.maxSubstitutions {
			return "", ErrSubstitutionLimit.About(name).At(loc).With(
				slog.Int("limit", v.cfg.maxSubstitutions))
		}

		value, ok := v.Lookup(name)
		if !ok {
			return "", ErrUndefinedVariable.About(name).At(loc)
		}

		v.cfg.logger.Trace("substitute",
			slog.String("at", loc.String()),
			slog.String("name", name),
			slog.String("value", value))

		text = strings.ReplaceAll(text, ref, value)
	}
}
