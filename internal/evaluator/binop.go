package evaluator

import (
	"context"

	"github.com/funvibe/golf/internal/ast"
	"github.com/funvibe/golf/internal/diagnostics"
)

func (ev *Evaluator) evalBinOp(ctx context.Context, n *ast.BinOp, env *Env) (Value, error) {
	// Pipe operators desugar to application (§4.3) before either operand's
	// "both sides evaluated" rule would otherwise apply.
	if n.Op == ast.OpPipeFwd || n.Op == ast.OpPipeBack {
		return ev.evalPipe(ctx, n, env)
	}

	left, err := ev.Eval(ctx, n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := ev.Eval(ctx, n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpPow:
		return ev.evalArith(n, left, right)
	case ast.OpEq:
		return Bool{Value: valuesEqual(left, right)}, nil
	case ast.OpNotEq:
		return Bool{Value: !valuesEqual(left, right)}, nil
	case ast.OpLt, ast.OpGt, ast.OpLte, ast.OpGte:
		return ev.evalCompare(n, left, right)
	case ast.OpAnd, ast.OpOr:
		return ev.evalLogical(n, left, right)
	case ast.OpCons:
		return ev.evalCons(n, left, right)
	case ast.OpConcat:
		return ev.evalConcat(n, left, right)
	}
	return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, n.Token, "unsupported operator")
}

func (ev *Evaluator) evalPipe(ctx context.Context, n *ast.BinOp, env *Env) (Value, error) {
	var valueSide, fnSide ast.Expr
	if n.Op == ast.OpPipeFwd {
		valueSide, fnSide = n.Left, n.Right
	} else {
		fnSide, valueSide = n.Left, n.Right
	}
	val, err := ev.Eval(ctx, valueSide, env)
	if err != nil {
		return nil, err
	}
	fn, err := ev.Eval(ctx, fnSide, env)
	if err != nil {
		return nil, err
	}
	return ev.apply(ctx, n.Token, fn, []Value{val})
}

func (ev *Evaluator) evalArith(n *ast.BinOp, left, right Value) (Value, error) {
	l, ok1 := left.(Number)
	r, ok2 := right.(Number)
	if !ok1 || !ok2 {
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, n.Token, "arithmetic requires Number operands")
	}
	switch n.Op {
	case ast.OpAdd:
		return Number{Value: l.Value + r.Value}, nil
	case ast.OpSub:
		return Number{Value: l.Value - r.Value}, nil
	case ast.OpMul:
		return Number{Value: l.Value * r.Value}, nil
	case ast.OpDiv:
		if r.Value == 0 {
			return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrDivisionByZero, n.Token)
		}
		return Number{Value: l.Value / r.Value}, nil
	case ast.OpMod:
		if r.Value == 0 {
			return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrModuloByZero, n.Token)
		}
		return Number{Value: l.Value % r.Value}, nil
	case ast.OpPow:
		if r.Value < 0 {
			return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrNegativeExponent, n.Token)
		}
		result := int64(1)
		for i := int64(0); i < r.Value; i++ {
			result *= l.Value
		}
		return Number{Value: result}, nil
	}
	return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, n.Token, "unsupported arithmetic operator")
}

func (ev *Evaluator) evalCompare(n *ast.BinOp, left, right Value) (Value, error) {
	l, ok1 := left.(Number)
	r, ok2 := right.(Number)
	if !ok1 || !ok2 {
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, n.Token, "comparison requires Number operands")
	}
	switch n.Op {
	case ast.OpLt:
		return Bool{Value: l.Value < r.Value}, nil
	case ast.OpGt:
		return Bool{Value: l.Value > r.Value}, nil
	case ast.OpLte:
		return Bool{Value: l.Value <= r.Value}, nil
	case ast.OpGte:
		return Bool{Value: l.Value >= r.Value}, nil
	}
	return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, n.Token, "unsupported comparison operator")
}

func (ev *Evaluator) evalLogical(n *ast.BinOp, left, right Value) (Value, error) {
	l, ok1 := left.(Bool)
	r, ok2 := right.(Bool)
	if !ok1 || !ok2 {
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, n.Token, "logical operators require Bool operands")
	}
	if n.Op == ast.OpAnd {
		return Bool{Value: l.Value && r.Value}, nil
	}
	return Bool{Value: l.Value || r.Value}, nil
}

func (ev *Evaluator) evalCons(n *ast.BinOp, left, right Value) (Value, error) {
	list, ok := right.(List)
	if !ok {
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, n.Token, "cons requires a List on the right")
	}
	elems := make([]Value, 0, len(list.Elements)+1)
	elems = append(elems, left)
	elems = append(elems, list.Elements...)
	return List{Elements: elems}, nil
}

func (ev *Evaluator) evalConcat(n *ast.BinOp, left, right Value) (Value, error) {
	if ls, ok := left.(List); ok {
		rs, ok := right.(List)
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, n.Token, "concat requires two Lists or two Strings")
		}
		elems := make([]Value, 0, len(ls.Elements)+len(rs.Elements))
		elems = append(elems, ls.Elements...)
		elems = append(elems, rs.Elements...)
		return List{Elements: elems}, nil
	}
	if ls, ok := left.(String); ok {
		rs, ok := right.(String)
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, n.Token, "concat requires two Lists or two Strings")
		}
		return String{Value: ls.Value + rs.Value}, nil
	}
	return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, n.Token, "concat requires two Lists or two Strings")
}

// valuesEqual is structural equality across Number, Bool, String, and List;
// mismatched types compare unequal rather than erroring (§4.3).
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av.Value == bv.Value
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.Value == bv.Value
	case String:
		bv, ok := b.(String)
		return ok && av.Value == bv.Value
	case List:
		bv, ok := b.(List)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !valuesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	}
	return false
}
