package evaluator

import (
	"context"

	"github.com/funvibe/golf/internal/ast"
	"github.com/funvibe/golf/internal/diagnostics"
)

// evalMatch walks arms in source order and evaluates the body of the first
// one whose pattern matches; it does not backtrack across arms (§4.3).
func (ev *Evaluator) evalMatch(ctx context.Context, n *ast.Match, env *Env) (Value, error) {
	scrutinee, err := ev.Eval(ctx, n.Scrutinee, env)
	if err != nil {
		return nil, err
	}
	for _, arm := range n.Arms {
		armEnv, ok := matchPattern(arm.Pattern, scrutinee, env)
		if !ok {
			continue
		}
		return ev.Eval(ctx, arm.Body, armEnv)
	}
	return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrNonExhaustiveMatch, n.Token)
}

// matchPattern attempts to match pat against v, returning an environment
// extended with the pattern's bindings on success.
func matchPattern(pat ast.Pattern, v Value, env *Env) (*Env, bool) {
	switch p := pat.(type) {
	case *ast.Wildcard:
		return env, true
	case *ast.VarBind:
		return env.Extend(p.Name, v), true
	case *ast.NumberLit:
		n, ok := v.(Number)
		return env, ok && n.Value == p.Value
	case *ast.BoolLit:
		b, ok := v.(Bool)
		return env, ok && b.Value == p.Value
	case *ast.StringLit:
		s, ok := v.(String)
		return env, ok && s.Value == p.Value
	case *ast.ListLit:
		list, ok := v.(List)
		if !ok || len(list.Elements) != len(p.Elements) {
			return env, false
		}
		cur := env
		for i, sub := range p.Elements {
			var matched bool
			cur, matched = matchPattern(sub, list.Elements[i], cur)
			if !matched {
				return env, false
			}
		}
		return cur, true
	case *ast.Cons:
		list, ok := v.(List)
		if !ok || len(list.Elements) == 0 {
			return env, false
		}
		head, tailMatched := matchPattern(p.Head, list.Elements[0], env)
		if !tailMatched {
			return env, false
		}
		tailList := List{Elements: list.Elements[1:]}
		return matchPattern(p.Tail, tailList, head)
	}
	return env, false
}
