package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

const formatSource = "CC = gcc\n!if 1\n.c.o:\n\t$(CC) -c\n!endif\nall: a.o b.o\n\t$(CC) -o all\n\techo done\n"

func TestResult_Format(t *testing.T) {
	res := mustResolve(t, formatSource)

	var buf bytes.Buffer
	if err := res.Format(context.Background(), &buf, 0); err != nil {
		t.Fatalf("format error: %v", err)
	}

	want := "Assignment[Makefile:1] name=CC value=gcc\n" +
		"ImplicitRule[Makefile:3] source=c dest=o\n" +
		"==> gcc -c\n" +
		"ExplicitRule[Makefile:6] target=all deps=a.o,b.o\n" +
		"==> gcc -o all\n" +
		"==> echo done\n"

	if got := buf.String(); got != want {
		t.Errorf("format mismatch:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestResult_FormatIndent(t *testing.T) {
	res := mustResolve(t, "all:\n\techo\n")

	var buf bytes.Buffer
	if err := res.Format(context.Background(), &buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	if want := "ExplicitRule[Makefile:1] target=all deps=\n  ==> echo\n"; buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestItem_String(t *testing.T) {
	items := mustParse(t, "\n!ifdef X\n!else\n")

	want := []string{
		"Empty[Makefile:1]",
		"Conditional[Makefile:2] directive=ifdef condition=X",
		"Conditional[Makefile:3] directive=else",
	}

	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}

	for i, it := range items {
		if got := it.String(); got != want[i] {
			t.Errorf("item %d: got %q, want %q", i, got, want[i])
		}
	}
}

func TestResult_FormatJSON(t *testing.T) {
	res := mustResolve(t, formatSource)

	var buf bytes.Buffer
	if err := res.FormatJSON(context.Background(), &buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	var doc struct {
		Items []struct {
			Kind         string   `json:"kind"`
			Line         int      `json:"line"`
			Target       string   `json:"target"`
			Dependencies []string `json:"dependencies"`
			Commands     []string `json:"commands"`
		} `json:"items"`
		Vars map[string]string `json:"vars"`
	}

	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if len(doc.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(doc.Items))
	}

	rule := doc.Items[2]
	if rule.Kind != "ExplicitRule" || rule.Target != "all" || rule.Line != 6 {
		t.Errorf("rule = %+v", rule)
	}

	if strings.Join(rule.Dependencies, " ") != "a.o b.o" || len(rule.Commands) != 2 {
		t.Errorf("rule = %+v", rule)
	}

	if doc.Vars["CC"] != "gcc" {
		t.Errorf("vars = %v", doc.Vars)
	}
}

func TestResult_FormatYAML(t *testing.T) {
	res := mustResolve(t, formatSource)

	var buf bytes.Buffer
	if err := res.FormatYAML(context.Background(), &buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}

	items, ok := doc["items"].([]any)
	if !ok || len(items) != 3 {
		t.Fatalf("items = %v", doc["items"])
	}

	vars, ok := doc["vars"].(map[string]any)
	if !ok || vars["CC"] != "gcc" {
		t.Errorf("vars = %v", doc["vars"])
	}
}

func TestVars_Format(t *testing.T) {
	res := mustResolve(t, "B = 2\nA = 1\n")

	var buf bytes.Buffer
	if err := res.Vars.Format(context.Background(), &buf, 0); err != nil {
		t.Fatalf("format error: %v", err)
	}

	if want := "A = 1\nB = 2\n"; buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	buf.Reset()

	if err := res.Vars.FormatJSON(context.Background(), &buf, 0); err != nil {
		t.Fatalf("format error: %v", err)
	}

	if want := `{"A":"1","B":"2"}` + "\n"; buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
