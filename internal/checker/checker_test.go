package checker

import (
	"testing"

	"github.com/funvibe/golf/internal/parser"
	"github.com/funvibe/golf/internal/typesystem"
)

func inferSource(t *testing.T, src string) typesystem.Type {
	t.Helper()
	expr, errs := parser.ParseProgram(src)
	if len(errs) > 0 {
		t.Fatalf("parse %q: %v", src, errs[0])
	}
	c := New()
	env := c.BuiltinEnv()
	typ, err := c.InferWithEnv(expr, env)
	if err != nil {
		t.Fatalf("infer %q: %v", src, err)
	}
	return typ
}

func TestInferLiterals(t *testing.T) {
	cases := map[string]string{
		`5`:     "Int",
		`true`:  "Bool",
		`"hi"`:  "String",
	}
	for src, want := range cases {
		if got := inferSource(t, src).String(); got != want {
			t.Errorf("infer(%q) = %s, want %s", src, got, want)
		}
	}
}

func TestInferLambdaAndApp(t *testing.T) {
	typ := inferSource(t, `(\x -> x + 1) 5`)
	if typ.String() != "Int" {
		t.Fatalf("got %s, want Int", typ)
	}
}

func TestInferListUnifiesElements(t *testing.T) {
	typ := inferSource(t, `[1, 2, 3]`)
	if typ.String() != "[Int]" {
		t.Fatalf("got %s, want [Int]", typ)
	}
}

func TestInferMismatchedListElementsFails(t *testing.T) {
	_, errs := parser.ParseProgram(`[1, true]`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse error: %v", errs[0])
	}
	expr, _ := parser.ParseProgram(`[1, true]`)
	c := New()
	if _, err := c.InferWithEnv(expr, c.BuiltinEnv()); err == nil {
		t.Fatal("want a type mismatch error, got nil")
	}
}

func TestInferUndefinedVariable(t *testing.T) {
	expr, errs := parser.ParseProgram(`y`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse error: %v", errs[0])
	}
	c := New()
	if _, err := c.InferWithEnv(expr, c.BuiltinEnv()); err == nil {
		t.Fatal("want undefined variable error, got nil")
	}
}

func TestInferConsAndMatch(t *testing.T) {
	typ := inferSource(t, `match [1,2,3] with [] -> 0 | p::rest -> p`)
	if typ.String() != "Int" {
		t.Fatalf("got %s, want Int", typ)
	}
}

func TestInferRecursiveLet(t *testing.T) {
	src := `let fib = \n -> match n with 0 -> 0 | 1 -> 1 | _ -> fib (n - 1) + fib (n - 2) in fib 10`
	typ := inferSource(t, src)
	if typ.String() != "Int" {
		t.Fatalf("got %s, want Int", typ)
	}
}

func TestInferBuiltinMap(t *testing.T) {
	typ := inferSource(t, `map (\x -> x + 1) [1, 2, 3]`)
	if typ.String() != "[Int]" {
		t.Fatalf("got %s, want [Int]", typ)
	}
}
