package lang

import (
	"errors"
	"testing"
)

func TestEvalExpr(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"0", false},
		{"000", false},
		{"1", true},
		{"42", true},
		{"99999999999999999999999", true},
		{"5 < 10", true},
		{"10 < 5", false},
		{"5 == 5", true},
		{"05 == 5", true},
		{"5 != 5", false},
		{"5<=5", true},
		{"6 >= 7", false},
		{"7 > 6", true},
		{"abc != abc", false},
		{"abc == def", false},
		{"abc == abc", true},
		{"abc != def", true},
		{"abc == 1", false},
		{`"hello world" == "hello world"`, true},
		{`"a" != "b"`, true},
		{`"" == ""`, true},
		{`"x y"=="x z"`, false},
		{"  1  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := EvalExpr(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("EvalExpr(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvalExpr_Errors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrInvalidExpression},
		{"abc", ErrInvalidExpression},
		{"1 + 2", ErrInvalidExpression},
		{"a < b", ErrInvalidExpression},
		{`"a" < "b"`, ErrInvalidExpression},
		{"a b == c", ErrInvalidExpression},
		{"99999999999999999999999 > 1", ErrInvalidExpression},
		{"1 = 2", ErrUnsupportedOperator},
		{"1 <> 2", ErrUnsupportedOperator},
		{"1 =< 2", ErrUnsupportedOperator},
		{"a === b", ErrUnsupportedOperator},
		{"a = b", ErrUnsupportedOperator},
		{`"a" != = "b"`, ErrInvalidExpression},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := EvalExpr(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("EvalExpr(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestVars_Evaluate(t *testing.T) {
	v := NewVars(WithEnviron([]string{"MODE=release"}))
	v.Set("LEVEL", "3", here)

	tests := []struct {
		cond string
		want bool
	}{
		{"$(LEVEL) > 2", true},
		{"$(LEVEL)", true},
		{"$(MODE) == release", true},
		{`"$(MODE)" == "debug"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.cond, func(t *testing.T) {
			got, err := v.Evaluate(tt.cond, here)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	_, err := v.Evaluate("$(LEVEL) ~ 2", here)

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %v", err)
	}

	if loc, ok := e.Location(); !ok || loc != here {
		t.Errorf("location = %v", loc)
	}
}

func TestVars_IsDefined(t *testing.T) {
	v := NewVars(WithEnviron([]string{"FROM_ENV=1"}))
	v.Set("NAME", "FROM_ENV", here)
	v.Set("EMPTY", "", here)

	tests := []struct {
		name string
		want bool
	}{
		{"NAME", true},
		{"EMPTY", true},
		{"FROM_ENV", true},
		{" NAME ", true},
		{"$(NAME)", true},
		{"MISSING", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.IsDefined(tt.name, here)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("IsDefined(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
