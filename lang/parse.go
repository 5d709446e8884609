package lang

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// Line grammars, tried in order.
var (
	reInclude      = regexp.MustCompile(`^!include\s+"(.*)"$`)
	reAssign       = regexp.MustCompile(`^([A-Za-z0-9_]+)\s*=\s*(.*)$`)
	reImplicit     = regexp.MustCompile(`^\.([^.\s:]+)\.([^.\s:]+):\s*$`)
	reExplicit     = regexp.MustCompile(`^(\S+)\s*:\s+(\S.*)$`)
	reExplicitNil  = regexp.MustCompile(`^(\S+)\s*:\s*$`)
	reDirective    = regexp.MustCompile(`^!(\w+)\s+(\S.*)$`)
	reDirectiveNil = regexp.MustCompile(`^!(\w+)$`)
	reCommand      = regexp.MustCompile(`^[ \t]+(.*)$`)
)

// maxLineSize bounds a single physical line.
const maxLineSize = 1 << 20

// ParseFile parses the build description at path, including any files it
// names with !include, and returns its items in source order.
//
// Every returned error matches [ErrParse].
func ParseFile(ctx context.Context, path string, opts ...Option) ([]*Item, error) {
	p := newParser(ctx, opts...)

	name, ok := p.cfg.locate(path, "")
	if !ok {
		return nil, ErrReadInput.About(path).Wrap(os.ErrNotExist)
	}

	if err := p.parseFile(name); err != nil {
		return nil, err
	}

	return p.done(), nil
}

// ParseReader parses a build description read from r. The name is used in
// locations, and its directory is searched first by !include.
//
// Every returned error matches [ErrParse].
func ParseReader(
	ctx context.Context,
	r io.Reader,
	name string,
	opts ...Option,
) ([]*Item, error) {
	p := newParser(ctx, opts...)

	if abs, err := filepath.Abs(name); err == nil {
		p.open = append(p.open, abs)
	}

	if err := p.scan(r, name); err != nil {
		return nil, err
	}

	return p.done(), nil
}

// ParseString parses a build description held in s.
func ParseString(ctx context.Context, s, name string, opts ...Option) ([]*Item, error) {
	return ParseReader(ctx, strings.NewReader(s), name, opts...)
}

// parser holds the state shared across a file and everything it includes.
type parser struct {
	ctx   context.Context
	cfg   config
	items []*Item
	open  []string // absolute paths of files being parsed, outermost first
}

func newParser(ctx context.Context, opts ...Option) *parser {
	return &parser{ctx: ctx, cfg: makeConfig(opts...)}
}

func (p *parser) done() []*Item {
	p.cfg.logger.DebugContext(p.ctx, "parse complete",
		slog.Int("items", len(p.items)))

	return p.items
}

func (p *parser) parseFile(name string) error {
	abs, err := filepath.Abs(name)
	if err != nil {
		abs = filepath.Clean(name)
	}

	for _, f := range p.open {
		if f == abs {
			return ErrCircularInclude.About(name)
		}
	}

	f, err := os.Open(name)
	if err != nil {
		return ErrReadInput.About(name).Wrap(err)
	}
	defer f.Close()

	p.open = append(p.open, abs)
	defer func() { p.open = p.open[:len(p.open)-1] }()

	p.cfg.logger.TraceContext(p.ctx, "parse file", slog.String("file", name))

	return p.scan(f, name)
}

// scan splits r into logical lines and parses each one.
func (p *parser) scan(r io.Reader, name string) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)

	var (
		num     int
		start   Location
		pending []string
		joining bool
	)

	for sc.Scan() {
		if err := p.ctx.Err(); err != nil {
			return ErrReadInput.About(name).Wrap(err)
		}

		num++

		line := strings.TrimRightFunc(sc.Text(), unicode.IsSpace)

		if strings.HasPrefix(line, "#") {
			continue
		}

		if joining {
			line = strings.TrimLeftFunc(line, unicode.IsSpace)
		} else {
			start = Location{File: name, Line: num}
		}

		if continues(line) {
			piece := strings.TrimRightFunc(line[:len(line)-1], unicode.IsSpace)
			if piece != "" {
				pending = append(pending, piece)
			}

			joining = true

			continue
		}

		if joining {
			if line != "" {
				pending = append(pending, line)
			}

			line = strings.Join(pending, " ")
			pending, joining = pending[:0], false
		}

		if err := p.parseLine(line, start); err != nil {
			return err
		}
	}

	if err := sc.Err(); err != nil {
		return ErrReadInput.About(name).Wrap(err)
	}

	if joining {
		return p.parseLine(strings.Join(pending, " "), start)
	}

	return nil
}

// continues reports whether line ends in an unescaped backslash.
func continues(line string) bool {
	n := len(line) - len(strings.TrimRight(line, `\`))

	return n%2 == 1
}

// parseLine classifies one logical line and appends the resulting item.
func (p *parser) parseLine(line string, loc Location) error {
	trace := func(what string, attrs ...slog.Attr) {
		p.cfg.logger.TraceContext(p.ctx, what,
			append([]slog.Attr{slog.String("at", loc.String())}, attrs...)...)
	}

	if line == "" {
		trace("empty")

		if n := len(p.items); n == 0 || p.items[n-1].Kind != KindEmpty {
			p.items = append(p.items, newEmpty(loc))
		}

		return nil
	}

	if m := reInclude.FindStringSubmatch(line); m != nil {
		trace("include", slog.String("file", m[1]))

		name, ok := p.cfg.locate(m[1], filepath.Dir(loc.File))
		if !ok {
			return ErrInclude.About(m[1]).At(loc).Wrap(os.ErrNotExist)
		}

		err := p.parseFile(name)

		// Failures to open the file itself are reported at the include site.
		var e *Error
		if errors.As(err, &e) && e.loc == nil {
			return e.At(loc)
		}

		return err
	}

	if m := reAssign.FindStringSubmatch(line); m != nil {
		trace("assignment", slog.String("name", m[1]), slog.String("value", m[2]))
		p.items = append(p.items, newAssignment(loc, m[1], m[2]))

		return nil
	}

	if m := reImplicit.FindStringSubmatch(line); m != nil {
		trace("implicit rule", slog.String("src", m[1]), slog.String("dst", m[2]))
		p.items = append(p.items, newImplicitRule(loc, m[1], m[2]))

		return nil
	}

	if m := reExplicit.FindStringSubmatch(line); m != nil {
		deps := strings.Fields(m[2])
		trace("explicit rule",
			slog.String("target", m[1]), slog.Any("deps", deps))
		p.items = append(p.items, newExplicitRule(loc, m[1], deps))

		return nil
	}

	if m := reExplicitNil.FindStringSubmatch(line); m != nil {
		trace("explicit rule", slog.String("target", m[1]))
		p.items = append(p.items, newExplicitRule(loc, m[1], nil))

		return nil
	}

	if m := reDirective.FindStringSubmatch(line); m != nil {
		d, ok := parseDirective(m[1])
		if !ok || !d.takesCondition() {
			return ErrSyntax.About(line).At(loc)
		}

		trace("conditional",
			slog.String("directive", string(d)), slog.String("condition", m[2]))
		p.items = append(p.items, newConditional(loc, d, m[2]))

		return nil
	}

	if m := reDirectiveNil.FindStringSubmatch(line); m != nil {
		d, ok := parseDirective(m[1])
		if !ok || d.takesCondition() {
			return ErrSyntax.About(line).At(loc)
		}

		trace("conditional", slog.String("directive", string(d)))
		p.items = append(p.items, newConditional(loc, d, ""))

		return nil
	}

	if m := reCommand.FindStringSubmatch(line); m != nil {
		n := len(p.items)
		if n == 0 || !p.items[n-1].Kind.AcceptsCommands() {
			return ErrCommandList.At(loc)
		}

		trace("command", slog.String("command", m[1]))
		p.items[n-1].appendCommand(m[1])

		return nil
	}

	return ErrSyntax.About(line).At(loc)
}
