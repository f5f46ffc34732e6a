// Package evaluator implements the §4.3 tree-walking evaluator: strict
// evaluation, thunked Let bindings, partial application, and the
// resource bounds of §5.
package evaluator

import (
	"context"
	"time"

	"github.com/funvibe/golf/internal/ast"
	"github.com/funvibe/golf/internal/diagnostics"
	"github.com/funvibe/golf/internal/token"
)

// MaxCallDepth is the default recursion-depth bound (§5).
const MaxCallDepth = 10000

// DefaultTimeout is the default wall-clock evaluation budget (§5).
const DefaultTimeout = 2 * time.Second

// Evaluator holds the per-run mutable state: the call-depth counter and the
// deadline against which every step is checked. Unlike the teacher's
// Evaluator, this one carries no io.Writer: the language has no print
// builtin (§1 Non-goals exclude side effects beyond expression evaluation).
type Evaluator struct {
	depth    int
	deadline time.Time
}

// New returns an Evaluator with a deadline timeout from now.
func New(timeout time.Duration) *Evaluator {
	return &Evaluator{deadline: time.Now().Add(timeout)}
}

// Eval evaluates expr in env, honoring ctx for external cancellation in
// addition to the evaluator's own wall-clock deadline.
func (ev *Evaluator) Eval(ctx context.Context, expr ast.Expr, env *Env) (Value, error) {
	select {
	case <-ctx.Done():
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrTimeout, expr.GetToken())
	default:
	}
	if time.Now().After(ev.deadline) {
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrTimeout, expr.GetToken())
	}
	return ev.evalCore(ctx, expr, env)
}

func (ev *Evaluator) evalCore(ctx context.Context, expr ast.Expr, env *Env) (Value, error) {
	switch n := expr.(type) {
	case *ast.Number:
		return Number{Value: n.Value}, nil
	case *ast.Bool:
		return Bool{Value: n.Value}, nil
	case *ast.String:
		return String{Value: n.Value}, nil

	case *ast.List:
		elems := make([]Value, len(n.Elements))
		for i, e := range n.Elements {
			v, err := ev.Eval(ctx, e, env)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return List{Elements: elems}, nil

	case *ast.Var:
		v, ok := env.Get(n.Name)
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeUndefinedVariable, n.Token, n.Name)
		}
		if th, ok := v.(Thunk); ok {
			return ev.Eval(ctx, th.Body, th.Env)
		}
		return v, nil

	case *ast.Lambda:
		return Closure{Params: n.Params, Body: n.Body, Env: env}, nil

	case *ast.Let:
		// Knot-tying (§9): allocate the frame first, bind the Thunk pointing
		// at that same frame, then patch it in so a self-reference inside
		// Value resolves once the Thunk is forced.
		frame := env.Extend(n.Name, nil)
		frame.set(n.Name, Thunk{Body: n.Value, Env: frame})
		return ev.Eval(ctx, n.Body, frame)

	case *ast.If:
		cond, err := ev.Eval(ctx, n.Cond, env)
		if err != nil {
			return nil, err
		}
		b, ok := cond.(Bool)
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrNonBooleanCondition, n.Token)
		}
		if b.Value {
			return ev.Eval(ctx, n.Then, env)
		}
		return ev.Eval(ctx, n.Else, env)

	case *ast.UnOp:
		v, err := ev.Eval(ctx, n.Operand, env)
		if err != nil {
			return nil, err
		}
		num, ok := v.(Number)
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, n.Token, "unary negation requires a Number")
		}
		return Number{Value: -num.Value}, nil

	case *ast.BinOp:
		return ev.evalBinOp(ctx, n, env)

	case *ast.Range:
		return ev.evalRange(ctx, n, env)

	case *ast.ListComp:
		return ev.evalListComp(ctx, n, env)

	case *ast.Match:
		return ev.evalMatch(ctx, n, env)

	case *ast.App:
		return ev.evalApp(ctx, n, env)
	}
	return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, expr.GetToken(), "unsupported expression")
}

func (ev *Evaluator) evalRange(ctx context.Context, n *ast.Range, env *Env) (Value, error) {
	startV, err := ev.Eval(ctx, n.Start, env)
	if err != nil {
		return nil, err
	}
	endV, err := ev.Eval(ctx, n.End, env)
	if err != nil {
		return nil, err
	}
	start, ok1 := startV.(Number)
	end, ok2 := endV.(Number)
	if !ok1 || !ok2 {
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, n.Token, "range bounds must be Number")
	}
	var elems []Value
	for i := start.Value; i <= end.Value; i++ {
		elems = append(elems, Number{Value: i})
	}
	return List{Elements: elems}, nil
}

func (ev *Evaluator) evalListComp(ctx context.Context, n *ast.ListComp, env *Env) (Value, error) {
	sourceV, err := ev.Eval(ctx, n.Source, env)
	if err != nil {
		return nil, err
	}
	source, ok := sourceV.(List)
	if !ok {
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, n.Token, "comprehension source must be a List")
	}

	var out []Value
	for _, elem := range source.Elements {
		iterEnv := env.Extend(n.Var, elem)
		keep := true
		for _, g := range n.Guards {
			gv, err := ev.Eval(ctx, g, iterEnv)
			if err != nil {
				return nil, err
			}
			b, ok := gv.(Bool)
			if !ok {
				return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, g.GetToken(), "comprehension guard must be Bool")
			}
			if !b.Value {
				keep = false
				break
			}
		}
		if !keep {
			continue
		}
		v, err := ev.Eval(ctx, n.Result, iterEnv)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return List{Elements: out}, nil
}

// evalApp implements §4.3's application semantics: partial, exact, and
// over-application for Closures; arity-checked, non-currying Builtins.
func (ev *Evaluator) evalApp(ctx context.Context, n *ast.App, env *Env) (Value, error) {
	fn, err := ev.Eval(ctx, n.Fn, env)
	if err != nil {
		return nil, err
	}
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := ev.Eval(ctx, a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return ev.apply(ctx, n.Token, fn, args)
}

// apply implements the three Closure cases and the Builtin case of §4.3.
func (ev *Evaluator) apply(ctx context.Context, pos token.Token, fn Value, args []Value) (Value, error) {
	switch callee := fn.(type) {
	case Builtin:
		if len(args) < callee.Arity {
			return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrArityError, pos, callee.Name, callee.Arity, len(args))
		}
		result, err := callee.Fn(ev, args[:callee.Arity])
		if err != nil {
			return nil, err
		}
		if len(args) > callee.Arity {
			return ev.apply(ctx, pos, result, args[callee.Arity:])
		}
		return result, nil

	case Closure:
		n, k := len(callee.Params), len(args)
		ev.depth++
		if ev.depth > MaxCallDepth {
			ev.depth--
			return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrMaxRecursionDepth, pos)
		}
		defer func() { ev.depth-- }()

		switch {
		case k < n:
			boundEnv := callee.Env.ExtendMany(callee.Params[:k], args)
			return Closure{Params: callee.Params[k:], Body: callee.Body, Env: boundEnv}, nil
		case k == n:
			bodyEnv := callee.Env.ExtendMany(callee.Params, args)
			return ev.Eval(ctx, callee.Body, bodyEnv)
		default: // k > n
			bodyEnv := callee.Env.ExtendMany(callee.Params, args[:n])
			result, err := ev.Eval(ctx, callee.Body, bodyEnv)
			if err != nil {
				return nil, err
			}
			switch result.(type) {
			case Closure, Builtin:
				return ev.apply(ctx, pos, result, args[n:])
			default:
				return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, pos, "over-application of a non-function value")
			}
		}

	default:
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, pos, "attempt to call a non-function value")
	}
}
