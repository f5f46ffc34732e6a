package parser

import (
	"testing"

	"github.com/funvibe/golf/internal/ast"
)

func mustParse(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, errs := ParseProgram(src)
	if len(errs) > 0 {
		t.Fatalf("parse %q: %v", src, errs[0])
	}
	return expr
}

func TestParseLambdaApplication(t *testing.T) {
	expr := mustParse(t, `(\x -> x * 2) 5`)
	app, ok := expr.(*ast.App)
	if !ok {
		t.Fatalf("want *ast.App, got %T", expr)
	}
	if _, ok := app.Fn.(*ast.Lambda); !ok {
		t.Fatalf("want lambda callee, got %T", app.Fn)
	}
	if len(app.Args) != 1 {
		t.Fatalf("want 1 arg, got %d", len(app.Args))
	}
}

func TestParseLetIn(t *testing.T) {
	expr := mustParse(t, `let x = 5 in x + 1`)
	let, ok := expr.(*ast.Let)
	if !ok {
		t.Fatalf("want *ast.Let, got %T", expr)
	}
	if let.Name != "x" {
		t.Fatalf("want name x, got %s", let.Name)
	}
}

func TestParseMatchWithConsPattern(t *testing.T) {
	expr := mustParse(t, `match xs with [] -> 0 | p::rest -> p`)
	m, ok := expr.(*ast.Match)
	if !ok {
		t.Fatalf("want *ast.Match, got %T", expr)
	}
	if len(m.Arms) != 2 {
		t.Fatalf("want 2 arms, got %d", len(m.Arms))
	}
	if _, ok := m.Arms[0].Pattern.(*ast.ListLit); !ok {
		t.Fatalf("want ListLit pattern, got %T", m.Arms[0].Pattern)
	}
	cons, ok := m.Arms[1].Pattern.(*ast.Cons)
	if !ok {
		t.Fatalf("want Cons pattern, got %T", m.Arms[1].Pattern)
	}
	if _, ok := cons.Head.(*ast.VarBind); !ok {
		t.Fatalf("want VarBind head, got %T", cons.Head)
	}
}

func TestParsePrecedenceConsIsRightAssociative(t *testing.T) {
	expr := mustParse(t, `1 :: 2 :: []`)
	outer, ok := expr.(*ast.BinOp)
	if !ok || outer.Op != ast.OpCons {
		t.Fatalf("want outer ::, got %T", expr)
	}
	if _, ok := outer.Left.(*ast.Number); !ok {
		t.Fatalf("want Number left operand, got %T", outer.Left)
	}
	inner, ok := outer.Right.(*ast.BinOp)
	if !ok || inner.Op != ast.OpCons {
		t.Fatalf("want nested :: on the right, got %T", outer.Right)
	}
}

func TestParseListComprehension(t *testing.T) {
	expr := mustParse(t, `[x * 2 | x <- xs, x > 0]`)
	comp, ok := expr.(*ast.ListComp)
	if !ok {
		t.Fatalf("want *ast.ListComp, got %T", expr)
	}
	if comp.Var != "x" {
		t.Fatalf("want iterator var x, got %s", comp.Var)
	}
	if len(comp.Guards) != 1 {
		t.Fatalf("want 1 guard, got %d", len(comp.Guards))
	}
}

func TestParseRange(t *testing.T) {
	expr := mustParse(t, `[1..5]`)
	r, ok := expr.(*ast.Range)
	if !ok {
		t.Fatalf("want *ast.Range, got %T", expr)
	}
	if _, ok := r.Start.(*ast.Number); !ok {
		t.Fatalf("want Number start, got %T", r.Start)
	}
}

func TestParseIfExpr(t *testing.T) {
	expr := mustParse(t, `if x > 0 then 1 else 0`)
	if _, ok := expr.(*ast.If); !ok {
		t.Fatalf("want *ast.If, got %T", expr)
	}
}

func TestParseMatchArmBodyConsumesTrailingPipeOperator(t *testing.T) {
	expr := mustParse(t, `match 1 with _ -> 2 >> f`)
	m, ok := expr.(*ast.Match)
	if !ok {
		t.Fatalf("want *ast.Match, got %T", expr)
	}
	body, ok := m.Arms[0].Body.(*ast.BinOp)
	if !ok || body.Op != ast.OpPipeFwd {
		t.Fatalf("want arm body to be a >> BinOp, got %T", m.Arms[0].Body)
	}
}

func TestParseComparisonIsNonAssociative(t *testing.T) {
	_, errs := ParseProgram(`a == b == c`)
	if len(errs) == 0 {
		t.Fatal("want a parse error for chained comparison, got none")
	}
}

func TestParseApplicationIsLeftAssociative(t *testing.T) {
	expr := mustParse(t, `f a b c`)
	app, ok := expr.(*ast.App)
	if !ok {
		t.Fatalf("want *ast.App, got %T", expr)
	}
	if len(app.Args) != 3 {
		t.Fatalf("want 3 args collected at one App node, got %d", len(app.Args))
	}
}
