package when

import (
	"strings"
	"testing"
)

func testResolver() Resolver {
	vars := map[string]any{
		"tabCount":                    float64(2),
		"paneCount":                   3,
		"hasActivePane":               true,
		"maximized":                   false,
		"activeProvider":              "terminal",
		"capability.clipboard-copy":   true,
		"capability.file-saving":      false,
		"capability.find-and-replace": false,
	}
	return ResolverFunc(func(name string) (any, bool) {
		v, ok := vars[name]
		return v, ok
	})
}

func TestEval(t *testing.T) {
	cases := []struct {
		expr string
		want bool
	}{
		{"true", true},
		{"false", false},
		{"!false", true},
		{"!!true", true},
		{"hasActivePane", true},
		{"!maximized", true},
		{"tabCount > 1", true},
		{"tabCount >= 2", true},
		{"tabCount < 2", false},
		{"paneCount == 3", true},
		{"paneCount != 3", false},
		{"tabCount > 1 && !maximized", true},
		{"maximized || hasActivePane", true},
		{"maximized && hasActivePane || tabCount > 1", true},
		{"maximized && (hasActivePane || tabCount > 1)", false},
		{"activeProvider == 'terminal'", true},
		{"activeProvider != \"editor\"", true},
		{"activeProvider < 'z'", true},
		{"capability.clipboard-copy", true},
		{"capability.file-saving || capability.find-and-replace", false},
		{"hasActivePane == true", true},
		{"maximized != true", true},
		{"1.5 < 2", true},
		{"tabCount == 2.0", true},
	}
	r := testResolver()
	for _, tc := range cases {
		expr, err := Parse(tc.expr)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.expr, err)
		}
		got, err := expr.Eval(r)
		if err != nil {
			t.Fatalf("eval %q: %v", tc.expr, err)
		}
		if got != tc.want {
			t.Fatalf("%q = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"",
		"tabCount >",
		"&& true",
		"tabCount = 2",
		"(tabCount > 1",
		"'unterminated",
		"tabCount > 1 extra",
		"a & b",
		"1.2.3 > 1",
	}
	for _, src := range cases {
		if _, err := Parse(src); err == nil {
			t.Fatalf("expected parse error for %q", src)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	r := testResolver()
	cases := []struct {
		expr    string
		wantSub string
	}{
		{"nosuchvar", "unknown variable"},
		{"tabCount", "not boolean"},
		{"!tabCount", "not boolean"},
		{"tabCount && true", "not boolean"},
		{"tabCount == 'two'", "cannot compare"},
		{"activeProvider == 2", "cannot compare"},
		{"maximized < true", "not defined for booleans"},
	}
	for _, tc := range cases {
		expr, err := Parse(tc.expr)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.expr, err)
		}
		if _, err := expr.Eval(r); err == nil || !strings.Contains(err.Error(), tc.wantSub) {
			t.Fatalf("eval %q: expected error containing %q, got %v", tc.expr, tc.wantSub, err)
		}
	}
}

func TestShortCircuit(t *testing.T) {
	calls := 0
	r := ResolverFunc(func(name string) (any, bool) {
		if name == "counted" {
			calls++
			return true, true
		}
		return nil, false
	})
	expr, err := Parse("false && counted")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got, err := expr.Eval(r); err != nil || got {
		t.Fatalf("eval: %v %v", got, err)
	}
	expr, err = Parse("true || counted")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got, err := expr.Eval(r); err != nil || !got {
		t.Fatalf("eval: %v %v", got, err)
	}
	if calls != 0 {
		t.Fatalf("short-circuited operand was resolved %d times", calls)
	}
}

func TestStringKeepsSource(t *testing.T) {
	src := "tabCount > 1 && hasActivePane"
	expr, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if expr.String() != src {
		t.Fatalf("expected source %q, got %q", src, expr.String())
	}
}
