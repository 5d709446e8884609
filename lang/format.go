package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// CommandPrefix introduces each command line in native output.
const CommandPrefix = "==> "

// String returns the native description of the item. Rule commands follow
// on separate lines, each introduced by [CommandPrefix].
func (it *Item) String() string {
	var b strings.Builder

	b.WriteString(it.Kind.String())
	b.WriteString(it.Location.String())

	switch it.Kind {
	case KindAssignment:
		fmt.Fprintf(&b, " name=%s value=%s", it.Assignment.Name, it.Assignment.Value)

	case KindConditional:
		fmt.Fprintf(&b, " directive=%s", it.Conditional.Directive)

		if it.Conditional.Condition != "" {
			fmt.Fprintf(&b, " condition=%s", it.Conditional.Condition)
		}

	case KindExplicitRule:
		fmt.Fprintf(&b, " target=%s deps=%s",
			it.ExplicitRule.Target, strings.Join(it.ExplicitRule.Dependencies, ","))

	case KindImplicitRule:
		fmt.Fprintf(&b, " source=%s dest=%s",
			it.ImplicitRule.SourceSuffix, it.ImplicitRule.DestSuffix)
	}

	for _, cmd := range it.Commands() {
		b.WriteString("\n")
		b.WriteString(CommandPrefix)
		b.WriteString(cmd)
	}

	return b.String()
}

// Format writes the items in native form, one per line. Command lines are
// indented by indent spaces.
func (r *Result) Format(_ context.Context, w io.Writer, indent int) error {
	pad := strings.Repeat(" ", max(indent, 0))

	for _, it := range r.Items {
		s := strings.ReplaceAll(it.String(), "\n", "\n"+pad)
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the result as JSON to the writer.
func (r *Result) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	return writeJSON(w, r.ToMap(), indent)
}

// FormatYAML writes the result as YAML to the writer.
func (r *Result) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	return writeYAML(ctx, w, r.ToMap(), indent)
}

// Format writes the bindings in the table as NAME = value lines in name
// order.
func (v *Vars) Format(_ context.Context, w io.Writer, _ int) error {
	for _, name := range v.Names() {
		if _, err := fmt.Fprintf(w, "%s = %s\n", name, v.values[name]); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the table as a JSON object to the writer.
func (v *Vars) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	return writeJSON(w, v.ToMap(), indent)
}

// FormatYAML writes the table as a YAML mapping to the writer.
func (v *Vars) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	return writeYAML(ctx, w, v.ToMap(), indent)
}

func writeJSON(w io.Writer, v any, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(v)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

func writeYAML(ctx context.Context, w io.Writer, v any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
