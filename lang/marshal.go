package lang

import (
	"encoding/json"
)

// MarshalJSON implements json.Marshaler for Result.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}

// ToMap converts the result to native Go maps and slices of the form
//
//	{"items": [...], "vars": {...}}
func (r *Result) ToMap() map[string]any {
	items := make([]any, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, it.ToMap())
	}

	vars := map[string]any{}
	if r.Vars != nil {
		vars = r.Vars.ToMap()
	}

	return map[string]any{
		"items": items,
		"vars":  vars,
	}
}

// MarshalJSON implements json.Marshaler for Item.
func (it *Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(it.ToMap())
}

// ToMap converts the item to a map holding its kind, location and the
// fields of its payload.
func (it *Item) ToMap() map[string]any {
	m := map[string]any{
		"kind": it.Kind.String(),
		"file": it.Location.File,
		"line": it.Location.Line,
	}

	switch it.Kind {
	case KindAssignment:
		m["name"] = it.Assignment.Name
		m["value"] = it.Assignment.Value

	case KindConditional:
		m["directive"] = string(it.Conditional.Directive)
		if it.Conditional.Condition != "" {
			m["condition"] = it.Conditional.Condition
		}

	case KindExplicitRule:
		m["target"] = it.ExplicitRule.Target
		m["dependencies"] = nonNil(it.ExplicitRule.Dependencies)
		m["commands"] = nonNil(it.ExplicitRule.Commands)

	case KindImplicitRule:
		m["source"] = it.ImplicitRule.SourceSuffix
		m["dest"] = it.ImplicitRule.DestSuffix
		m["commands"] = nonNil(it.ImplicitRule.Commands)
	}

	return m
}

// MarshalJSON implements json.Marshaler for Vars.
func (v *Vars) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToMap())
}

// ToMap converts the table to a map from name to value. Environment
// variables are not included.
func (v *Vars) ToMap() map[string]any {
	m := make(map[string]any, len(v.values))
	for name, value := range v.values {
		m[name] = value
	}

	return m
}

// nonNil returns s, or an empty slice when s is nil, so that empty lists
// encode as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
