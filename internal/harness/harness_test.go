package harness

import "testing"

func TestRunTestsDoubling(t *testing.T) {
	results := RunTests(`\x -> x * 2`, []TestCase{
		{Input: "5", Expected: "10", Description: "double 5"},
		{Input: "-3", Expected: "-6", Description: "double -3"},
	}, DefaultLimits())

	for _, r := range results {
		if !r.Passed {
			t.Errorf("%s: expected %q, got %q (err=%s)", r.Description, r.Expected, r.Actual, r.Error)
		}
	}
}

func TestRunTestsRecursiveFib(t *testing.T) {
	src := `let fib = \n -> match n with 0 -> 0 | 1 -> 1 | _ -> fib (n - 1) + fib (n - 2) in fib`
	results := RunTests(src, []TestCase{
		{Input: "10", Expected: "55", Description: "fib 10"},
	}, DefaultLimits())
	if !results[0].Passed {
		t.Fatalf("expected %q, got %q (err=%s)", results[0].Expected, results[0].Actual, results[0].Error)
	}
}

func TestRunTestsQuicksort(t *testing.T) {
	src := `let qs = \list -> match list with [] -> [] | p::rest -> (qs (filter (\x -> x < p) rest)) ++ [p] ++ (qs (filter (\x -> x >= p) rest)) in qs`
	results := RunTests(src, []TestCase{
		{Input: "[3, 1, 4, 1, 5, 9, 2, 6]", Expected: "[1, 1, 2, 3, 4, 5, 6, 9]", Description: "sorts"},
	}, DefaultLimits())
	if !results[0].Passed {
		t.Fatalf("expected %q, got %q (err=%s)", results[0].Expected, results[0].Actual, results[0].Error)
	}
}

func TestRunTestsReportsTypeError(t *testing.T) {
	results := RunTests(`\x -> x && 1`, []TestCase{
		{Input: "5", Expected: "true", Description: "ill typed"},
	}, DefaultLimits())
	if results[0].Passed {
		t.Fatal("want a failing TestResult")
	}
	if results[0].Error == "" {
		t.Fatal("want a populated error field")
	}
}

func TestRunTestsEmptyInputUsesExpressionDirectly(t *testing.T) {
	results := RunTests(`sum [1, 2, 3, 4, 5]`, []TestCase{
		{Input: "", Expected: "15", Description: "no input needed"},
	}, DefaultLimits())
	if !results[0].Passed {
		t.Fatalf("expected %q, got %q (err=%s)", results[0].Expected, results[0].Actual, results[0].Error)
	}
}

func TestCountChars(t *testing.T) {
	if got := CountChars("a b\tc\n d"); got != 4 {
		t.Fatalf("got %d, want 4", got)
	}
}

func TestFoldBoundaryProperties(t *testing.T) {
	results := RunTests(`\xs -> (sum xs) == (fold (\a b -> a + b) 0 xs)`, []TestCase{
		{Input: "[1,2,3,4,5]", Expected: "true", Description: "sum equals foldl add"},
		{Input: "[]", Expected: "true", Description: "empty list"},
	}, DefaultLimits())
	for _, r := range results {
		if !r.Passed {
			t.Errorf("%s: expected %q, got %q (err=%s)", r.Description, r.Expected, r.Actual, r.Error)
		}
	}
}
