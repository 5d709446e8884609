package lang

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Condition forms, tried in order.
var (
	reBare    = regexp.MustCompile(`^(\d+)$`)
	reNumeric = regexp.MustCompile(`^(\d+)\s*([=!<>]+)\s*(\d+)$`)
	reWord    = regexp.MustCompile(`^(\w+)\s*([=!]+)\s*(\w+)$`)
	reQuoted  = regexp.MustCompile(`^"(.*)"\s*([=!]+)\s*"(.*)"$`)
)

// operand is the type both sides of a comparison are converted to.
type operand int

const (
	operandNumber operand = iota
	operandString
)

func (o operand) allows(op string) bool {
	switch op {
	case "==", "!=":
		return true
	case "<", "<=", ">", ">=":
		return o == operandNumber
	default:
		return false
	}
}

type programKey struct {
	op      string
	operand operand
}

// programs caches one compiled comparison per operator and operand type.
var programs = struct {
	sync.Mutex
	m map[programKey]*vm.Program
}{m: make(map[programKey]*vm.Program)}

func program(op string, typ operand) (*vm.Program, error) {
	key := programKey{op: op, operand: typ}

	programs.Lock()
	defer programs.Unlock()

	if prog, ok := programs.m[key]; ok {
		return prog, nil
	}

	var env map[string]any

	switch typ {
	case operandNumber:
		env = map[string]any{"lhs": int64(0), "rhs": int64(0)}
	default:
		env = map[string]any{"lhs": "", "rhs": ""}
	}

	prog, err := expr.Compile("lhs "+op+" rhs", expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, err
	}

	programs.m[key] = prog

	return prog, nil
}

// EvalExpr evaluates a condition that has already been substituted. The
// recognized forms are:
//
//	digits                      true if nonzero
//	digits OP digits            OP is one of == != < <= > >=
//	word OP word                OP is one of == !=
//	"text" OP "text"            OP is one of == !=
//
// Input matching none of the forms fails with [ErrInvalidExpression]; an
// operator outside the form's set fails with [ErrUnsupportedOperator].
func EvalExpr(text string) (bool, error) {
	text = strings.TrimSpace(text)

	if m := reBare.FindStringSubmatch(text); m != nil {
		return strings.TrimLeft(m[1], "0") != "", nil
	}

	var (
		lhs, rhs any
		op       string
		typ      operand
	)

	if m := reNumeric.FindStringSubmatch(text); m != nil {
		l, lerr := strconv.ParseInt(m[1], 10, 64)
		r, rerr := strconv.ParseInt(m[3], 10, 64)

		if lerr != nil || rerr != nil {
			return false, ErrInvalidExpression.About(text).Wrap(
				firstError(lerr, rerr))
		}

		lhs, op, rhs, typ = l, m[2], r, operandNumber
	} else if m := reWord.FindStringSubmatch(text); m != nil {
		lhs, op, rhs, typ = m[1], m[2], m[3], operandString
	} else if m := reQuoted.FindStringSubmatch(text); m != nil {
		lhs, op, rhs, typ = m[1], m[2], m[3], operandString
	} else {
		return false, ErrInvalidExpression.About(text)
	}

	if !typ.allows(op) {
		return false, ErrUnsupportedOperator.About(op)
	}

	prog, err := program(op, typ)
	if err != nil {
		return false, ErrInvalidExpression.About(text).Wrap(err)
	}

	out, err := expr.Run(prog, map[string]any{"lhs": lhs, "rhs": rhs})
	if err != nil {
		return false, ErrInvalidExpression.About(text).Wrap(err)
	}

	result, ok := out.(bool)
	if !ok {
		return false, ErrInvalidExpression.About(text)
	}

	return result, nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

// Evaluate substitutes references in cond and evaluates the result with
// [EvalExpr]. Errors are located at loc.
func (v *Vars) Evaluate(cond string, loc Location) (bool, error) {
	text, err := v.Substitute(cond, loc)
	if err != nil {
		return false, err
	}

	result, err := EvalExpr(text)
	if err != nil {
		return false, WrapError(err).At(loc)
	}

	v.cfg.logger.Trace("evaluate",
		slog.String("at", loc.String()),
		slog.String("condition", strings.TrimSpace(text)),
		slog.Bool("result", result))

	return result, nil
}

// IsDefined substitutes references in name and reports whether the trimmed
// result is bound in the table or the environment.
func (v *Vars) IsDefined(name string, loc Location) (bool, error) {
	text, err := v.Substitute(name, loc)
	if err != nil {
		return false, err
	}

	return v.Defined(strings.TrimSpace(text)), nil
}
