package lang

import (
	"strconv"
)

// Location identifies the physical line a logical line started on.
type Location struct {
	File string
	Line int
}

// String returns the location as "[file:line]".
func (l Location) String() string {
	return "[" + l.File + ":" + strconv.Itoa(l.Line) + "]"
}

// Kind identifies the variant of an [Item].
type Kind int

const (
	// KindEmpty represents one or more blank lines.
	KindEmpty Kind = iota

	// KindAssignment represents NAME = value.
	KindAssignment

	// KindConditional represents a !if, !elif, !else, !endif, !ifdef or
	// !ifndef directive.
	KindConditional

	// KindExplicitRule represents target: dependencies.
	KindExplicitRule

	// KindImplicitRule represents .src.dst: suffix rules.
	KindImplicitRule
)

// String returns a string representation of the item kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindAssignment:
		return "Assignment"
	case KindConditional:
		return "Conditional"
	case KindExplicitRule:
		return "ExplicitRule"
	case KindImplicitRule:
		return "ImplicitRule"
	default:
		return "Unknown"
	}
}

// AcceptsCommands reports whether indented command lines may follow an item
// of this kind.
func (k Kind) AcceptsCommands() bool {
	return k == KindExplicitRule || k == KindImplicitRule
}

// Directive names a conditional directive.
type Directive string

const (
	DirectiveIf     Directive = "if"
	DirectiveElif   Directive = "elif"
	DirectiveElse   Directive = "else"
	DirectiveEndif  Directive = "endif"
	DirectiveIfdef  Directive = "ifdef"
	DirectiveIfndef Directive = "ifndef"
)

// Opens reports whether the directive opens a new conditional level.
func (d Directive) Opens() bool {
	return d == DirectiveIf || d == DirectiveIfdef || d == DirectiveIfndef
}

// takesCondition reports whether the directive requires an argument.
func (d Directive) takesCondition() bool {
	return d.Opens() || d == DirectiveElif
}

func parseDirective(s string) (Directive, bool) {
	switch d := Directive(s); d {
	case DirectiveIf, DirectiveElif, DirectiveElse,
		DirectiveEndif, DirectiveIfdef, DirectiveIfndef:
		return d, true
	default:
		return "", false
	}
}

// Item is one logical element of a build description.
type Item struct {
	Kind     Kind
	Location Location
	// Exactly one of these is set based on Kind; none for KindEmpty.
	Assignment   *Assignment
	Conditional  *Conditional
	ExplicitRule *ExplicitRule
	ImplicitRule *ImplicitRule
}

// Assignment binds Name to Value in the variable table.
type Assignment struct {
	Name  string
	Value string
}

// Conditional is a conditional directive. Condition is empty for !else and
// !endif.
type Conditional struct {
	Directive Directive
	Condition string
}

// ExplicitRule declares how Target is made from Dependencies.
type ExplicitRule struct {
	Target       string
	Dependencies []string
	Commands     []string
}

// ImplicitRule declares how files ending in DestSuffix are made from files
// ending in SourceSuffix.
type ImplicitRule struct {
	SourceSuffix string
	DestSuffix   string
	Commands     []string
}

// Commands returns the command list of a rule item, or nil.
func (it *Item) Commands() []string {
	switch it.Kind {
	case KindExplicitRule:
		return it.ExplicitRule.Commands
	case KindImplicitRule:
		return it.ImplicitRule.Commands
	default:
		return nil
	}
}

// appendCommand adds cmd to the command list of a rule item.
func (it *Item) appendCommand(cmd string) {
	switch it.Kind {
	case KindExplicitRule:
		it.ExplicitRule.Commands = append(it.ExplicitRule.Commands, cmd)
	case KindImplicitRule:
		it.ImplicitRule.Commands = append(it.ImplicitRule.Commands, cmd)
	}
}

func newEmpty(loc Location) *Item {
	return &Item{Kind: KindEmpty, Location: loc}
}

func newAssignment(loc Location, name, value string) *Item {
	return &Item{
		Kind:       KindAssignment,
		Location:   loc,
		Assignment: &Assignment{Name: name, Value: value},
	}
}

func newConditional(loc Location, d Directive, cond string) *Item {
	return &Item{
		Kind:        KindConditional,
		Location:    loc,
		Conditional: &Conditional{Directive: d, Condition: cond},
	}
}

func newExplicitRule(loc Location, target string, deps []string) *Item {
	return &Item{
		Kind:         KindExplicitRule,
		Location:     loc,
		ExplicitRule: &ExplicitRule{Target: target, Dependencies: deps},
	}
}

func newImplicitRule(loc Location, src, dst string) *Item {
	return &Item{
		Kind:     KindImplicitRule,
		Location: loc,
		ImplicitRule: &ImplicitRule{
			SourceSuffix: src,
			DestSuffix:   dst,
		},
	}
}
