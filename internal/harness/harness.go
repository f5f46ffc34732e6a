// Package harness implements the §4.5 pipeline: parse, type-check,
// evaluate, print, compare — the same sequence the original Rust runner
// (runner.rs) drove over a rusqlite-backed catalogue of test cases.
package harness

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/funvibe/golf/internal/ast"
	"github.com/funvibe/golf/internal/checker"
	"github.com/funvibe/golf/internal/evaluator"
	"github.com/funvibe/golf/internal/parser"
)

// Limits bounds one evaluation, per §5.
type Limits struct {
	MaxCallDepth int
	Timeout      time.Duration
}

// DefaultLimits returns the §5 defaults: 10000 call depth, 2s wall clock.
func DefaultLimits() Limits {
	return Limits{MaxCallDepth: evaluator.MaxCallDepth, Timeout: evaluator.DefaultTimeout}
}

// TestCase is one literal input/expected-output pair from a challenge's
// battery (§6.1).
type TestCase struct {
	Input       string
	Expected    string
	Description string
}

// TestResult is the outcome record of §6.2.
type TestResult struct {
	Passed      bool
	Expected    string
	Actual      string
	Description string
	Error       string
}

// Parse parses a single top-level expression (§6.2's parse).
func Parse(source string) (ast.Expr, error) {
	expr, errs := parser.ParseProgram(source)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return expr, nil
}

// Infer type-checks expr against the builtin type environment (§6.2's
// infer).
func Infer(expr ast.Expr) error {
	c := checker.New()
	env := c.BuiltinEnv()
	_, err := c.InferWithEnv(expr, env)
	return err
}

// Evaluate runs expr to a Value against the builtin value environment and
// limits.Timeout (§6.2's evaluate). limits.MaxCallDepth is not applied: the
// call-depth bound is always evaluator.MaxCallDepth.
func Evaluate(expr ast.Expr, limits Limits) (evaluator.Value, error) {
	ctx, cancel := context.WithTimeout(context.Background(), limits.Timeout)
	defer cancel()
	ev := evaluator.New(limits.Timeout)
	return ev.Eval(ctx, expr, evaluator.InitialEnv())
}

// Print renders a Value canonically (§4.4 / §6.2's print).
func Print(v evaluator.Value) string {
	return evaluator.Print(v)
}

// CountChars counts non-whitespace characters in source (§6.2's
// count_chars) — the golf score.
func CountChars(source string) int {
	n := 0
	for _, r := range source {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// RunTests drives the §4.5 pipeline over every case: parse and type-check E
// once, then for each case re-parse and type-check the applied source
// `(E) input` (or E alone when input is empty) and evaluate it, comparing
// trimmed strings.
func RunTests(source string, cases []TestCase, limits Limits) []TestResult {
	results := make([]TestResult, len(cases))

	baseExpr, err := Parse(source)
	if err != nil {
		return failAll(cases, err.Error())
	}
	if err := Infer(baseExpr); err != nil {
		return failAll(cases, err.Error())
	}

	for i, tc := range cases {
		results[i] = runSingleTest(source, tc, limits)
	}
	return results
}

func runSingleTest(source string, tc TestCase, limits Limits) TestResult {
	applied := source
	if strings.TrimSpace(tc.Input) != "" {
		applied = "(" + source + ") " + tc.Input
	}

	expr, err := Parse(applied)
	if err != nil {
		return TestResult{Expected: tc.Expected, Description: tc.Description, Error: err.Error()}
	}
	if err := Infer(expr); err != nil {
		return TestResult{Expected: tc.Expected, Description: tc.Description, Error: err.Error()}
	}

	value, err := Evaluate(expr, limits)
	if err != nil {
		return TestResult{Expected: tc.Expected, Description: tc.Description, Error: renderRuntimeError(err)}
	}

	actual := strings.TrimSpace(Print(value))
	expected := strings.TrimSpace(tc.Expected)
	return TestResult{
		Passed:      actual == expected,
		Expected:    tc.Expected,
		Actual:      actual,
		Description: tc.Description,
	}
}

// renderRuntimeError applies §7's stable contract-string remapping: the
// interpreter's own call-depth guard is surfaced to callers as infinite
// recursion, not as a generic runtime error.
func renderRuntimeError(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "Maximum recursion depth") || strings.Contains(msg, "maximum recursion depth") {
		return "Infinite recursion detected"
	}
	return msg
}

func failAll(cases []TestCase, msg string) []TestResult {
	out := make([]TestResult, len(cases))
	for i, tc := range cases {
		out[i] = TestResult{Expected: tc.Expected, Description: tc.Description, Error: msg}
	}
	return out
}
