package evaluator

import (
	"context"
	"testing"
	"time"

	"github.com/funvibe/golf/internal/parser"
)

func evalSource(t *testing.T, src string) Value {
	t.Helper()
	expr, errs := parser.ParseProgram(src)
	if len(errs) > 0 {
		t.Fatalf("parse %q: %v", src, errs[0])
	}
	ev := New(DefaultTimeout)
	v, err := ev.Eval(context.Background(), expr, InitialEnv())
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return v
}

func TestEvalArithmetic(t *testing.T) {
	v := evalSource(t, `(\x -> x * 2) 5`)
	n, ok := v.(Number)
	if !ok || n.Value != 10 {
		t.Fatalf("got %v", v)
	}
}

func TestEvalPartialApplication(t *testing.T) {
	v1 := evalSource(t, `let f = \a b -> a + b in (f 3) 4`)
	v2 := evalSource(t, `let f = \a b -> a + b in f 3 4`)
	n1, ok1 := v1.(Number)
	n2, ok2 := v2.(Number)
	if !ok1 || !ok2 || n1.Value != n2.Value {
		t.Fatalf("partial application diverged: %v vs %v", v1, v2)
	}
}

func TestEvalRecursiveLet(t *testing.T) {
	src := `let fib = \n -> match n with 0 -> 0 | 1 -> 1 | _ -> fib (n - 1) + fib (n - 2) in fib 10`
	v := evalSource(t, src)
	n, ok := v.(Number)
	if !ok || n.Value != 55 {
		t.Fatalf("got %v, want 55", v)
	}
}

func TestEvalFilter(t *testing.T) {
	v := evalSource(t, `filter (\x -> x > 0) [1, -2, 3, -4, 5]`)
	list, ok := v.(List)
	if !ok || len(list.Elements) != 3 {
		t.Fatalf("got %v", v)
	}
}

func TestEvalHeadOfEmptyListErrors(t *testing.T) {
	expr, _ := parser.ParseProgram(`head []`)
	ev := New(DefaultTimeout)
	if _, err := ev.Eval(context.Background(), expr, InitialEnv()); err == nil {
		t.Fatal("want error, got nil")
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	expr, _ := parser.ParseProgram(`1 / 0`)
	ev := New(DefaultTimeout)
	if _, err := ev.Eval(context.Background(), expr, InitialEnv()); err == nil {
		t.Fatal("want error, got nil")
	}
}

func TestEvalNonExhaustiveMatchErrors(t *testing.T) {
	expr, _ := parser.ParseProgram(`match 5 with 1 -> 1`)
	ev := New(DefaultTimeout)
	if _, err := ev.Eval(context.Background(), expr, InitialEnv()); err == nil {
		t.Fatal("want error, got nil")
	}
}

func TestEvalMaxRecursionDepth(t *testing.T) {
	src := `let loop = \n -> loop (n + 1) in loop 0`
	expr, _ := parser.ParseProgram(src)
	ev := New(5 * time.Second)
	if _, err := ev.Eval(context.Background(), expr, InitialEnv()); err == nil {
		t.Fatal("want MaxRecursionDepth error, got nil")
	}
}

func TestEvalTimeout(t *testing.T) {
	src := `let loop = \n -> loop (n + 1) in loop 0`
	expr, _ := parser.ParseProgram(src)
	ev := New(10 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := ev.Eval(ctx, expr, InitialEnv()); err == nil {
		t.Fatal("want an error (timeout or recursion depth), got nil")
	}
}

func TestPrintList(t *testing.T) {
	v := evalSource(t, `[1, 2, 3]`)
	if Print(v) != "[1, 2, 3]" {
		t.Fatalf("got %q", Print(v))
	}
}

func TestPipeOperators(t *testing.T) {
	v1 := evalSource(t, `5 >> (\x -> x + 1)`)
	v2 := evalSource(t, `(\x -> x + 1) << 5`)
	n1, ok1 := v1.(Number)
	n2, ok2 := v2.(Number)
	if !ok1 || !ok2 || n1.Value != 6 || n2.Value != 6 {
		t.Fatalf("got %v, %v", v1, v2)
	}
}
