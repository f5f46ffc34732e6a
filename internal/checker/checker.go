// Package checker implements the §4.2 unification-based type inference.
package checker

import (
	"github.com/funvibe/golf/internal/ast"
	"github.com/funvibe/golf/internal/diagnostics"
	"github.com/funvibe/golf/internal/token"
	"github.com/funvibe/golf/internal/typesystem"
)

// Checker carries the fresh-variable counter across one inference run.
type Checker struct {
	nextVar int
}

// New returns a Checker ready to infer a single top-level expression.
func New() *Checker {
	return &Checker{}
}

func (c *Checker) fresh() typesystem.Var {
	c.nextVar++
	return typesystem.Var{ID: c.nextVar}
}

// Infer computes the principal type of expr under env using a fresh
// Checker. Callers that also need BuiltinEnv should build both from the
// same Checker (via InferWithEnv) so builtin type variables and the
// expression's own fresh variables never collide.
func Infer(expr ast.Expr, env typesystem.Env) (typesystem.Type, error) {
	c := New()
	return c.InferWithEnv(expr, env)
}

// InferWithEnv infers expr under env using c's own fresh-var counter.
func (c *Checker) InferWithEnv(expr ast.Expr, env typesystem.Env) (typesystem.Type, error) {
	t, s, err := c.infer(expr, env)
	if err != nil {
		return nil, err
	}
	return t.Apply(s), nil
}

// BuiltinEnv returns the §6.3 catalogue's type signatures. Per §9's
// "polymorphic builtins" note, each builtin gets one fresh id per
// registration here, not one per call site: a single program cannot use
// `map` at two different element types without a unification conflict.
// This is built with c's own fresh-var counter so the ids it mints don't
// collide with the ones minted while inferring the expression that follows.
func (c *Checker) BuiltinEnv() typesystem.Env {
	env := typesystem.Env{}
	a, b := c.fresh(), c.fresh()
	env["map"] = typesystem.Function{
		Params: []typesystem.Type{typesystem.Function{Params: []typesystem.Type{a}, Return: b}, typesystem.List{Elem: a}},
		Return: typesystem.List{Elem: b},
	}

	a2 := c.fresh()
	env["filter"] = typesystem.Function{
		Params: []typesystem.Type{typesystem.Function{Params: []typesystem.Type{a2}, Return: typesystem.Bool{}}, typesystem.List{Elem: a2}},
		Return: typesystem.List{Elem: a2},
	}

	a3, b3 := c.fresh(), c.fresh()
	foldT := typesystem.Function{
		Params: []typesystem.Type{
			typesystem.Function{Params: []typesystem.Type{b3, a3}, Return: b3},
			b3,
			typesystem.List{Elem: a3},
		},
		Return: b3,
	}
	env["fold"] = foldT
	env["foldl"] = foldT

	a4, b4 := c.fresh(), c.fresh()
	env["foldr"] = typesystem.Function{
		Params: []typesystem.Type{
			typesystem.Function{Params: []typesystem.Type{a4, b4}, Return: b4},
			b4,
			typesystem.List{Elem: a4},
		},
		Return: b4,
	}

	a5, b5 := c.fresh(), c.fresh()
	env["zip"] = typesystem.Function{
		Params: []typesystem.Type{typesystem.List{Elem: a5}, typesystem.List{Elem: b5}},
		Return: typesystem.List{Elem: typesystem.List{Elem: typesystem.Unknown{}}},
		// zip's result element is a 2-element list mixing a5/b5; §3.3 has no
		// tuple type (explicit Non-goal), so its precise shape is Unknown
		// here and enforced only at runtime.
	}

	a6 := c.fresh()
	env["take"] = typesystem.Function{Params: []typesystem.Type{typesystem.Int{}, typesystem.List{Elem: a6}}, Return: typesystem.List{Elem: a6}}
	a7 := c.fresh()
	env["drop"] = typesystem.Function{Params: []typesystem.Type{typesystem.Int{}, typesystem.List{Elem: a7}}, Return: typesystem.List{Elem: a7}}
	a8 := c.fresh()
	env["reverse"] = typesystem.Function{Params: []typesystem.Type{typesystem.List{Elem: a8}}, Return: typesystem.List{Elem: a8}}
	env["sort"] = typesystem.Function{Params: []typesystem.Type{typesystem.List{Elem: typesystem.Int{}}}, Return: typesystem.List{Elem: typesystem.Int{}}}
	a9 := c.fresh()
	env["length"] = typesystem.Function{Params: []typesystem.Type{typesystem.List{Elem: a9}}, Return: typesystem.Int{}}
	a10 := c.fresh()
	env["head"] = typesystem.Function{Params: []typesystem.Type{typesystem.List{Elem: a10}}, Return: a10}
	a11 := c.fresh()
	env["tail"] = typesystem.Function{Params: []typesystem.Type{typesystem.List{Elem: a11}}, Return: typesystem.List{Elem: a11}}
	env["sum"] = typesystem.Function{Params: []typesystem.Type{typesystem.List{Elem: typesystem.Int{}}}, Return: typesystem.Int{}}
	env["product"] = typesystem.Function{Params: []typesystem.Type{typesystem.List{Elem: typesystem.Int{}}}, Return: typesystem.Int{}}
	a12 := c.fresh()
	env["concat"] = typesystem.Function{Params: []typesystem.Type{typesystem.List{Elem: typesystem.List{Elem: a12}}}, Return: typesystem.List{Elem: a12}}
	a13 := c.fresh()
	env["elem"] = typesystem.Function{Params: []typesystem.Type{a13, typesystem.List{Elem: a13}}, Return: typesystem.Bool{}}

	return env
}

func (c *Checker) infer(expr ast.Expr, env typesystem.Env) (typesystem.Type, typesystem.Subst, error) {
	switch n := expr.(type) {
	case *ast.Number:
		return typesystem.Int{}, typesystem.Subst{}, nil
	case *ast.Bool:
		return typesystem.Bool{}, typesystem.Subst{}, nil
	case *ast.String:
		return typesystem.String{}, typesystem.Subst{}, nil

	case *ast.Var:
		t, ok := env[n.Name]
		if !ok {
			return nil, nil, diagnostics.New(diagnostics.PhaseChecker, diagnostics.ErrUndefinedVariable, n.Token, n.Name)
		}
		return t, typesystem.Subst{}, nil

	case *ast.List:
		return c.inferList(n, env)

	case *ast.Lambda:
		return c.inferLambda(n, env)

	case *ast.App:
		return c.inferApp(n, env)

	case *ast.Let:
		// letrec: bind a fresh type variable for n.Name before inferring
		// n.Value, so a self-reference inside Value (the language's only
		// recursion mechanism, §9) resolves during inference the same way
		// the evaluator's knot-tying resolves it at runtime.
		tv := c.fresh()
		valType, s1, err := c.infer(n.Value, env.Extend(n.Name, tv))
		if err != nil {
			return nil, nil, err
		}
		s2, err := typesystem.Unify(tv.Apply(s1), valType.Apply(s1))
		if err != nil {
			return nil, nil, typeMismatch(n.Token, err)
		}
		s1 = s1.Compose(s2)
		bodyType, s3, err := c.infer(n.Body, env.Apply(s1).Extend(n.Name, valType.Apply(s1)))
		if err != nil {
			return nil, nil, err
		}
		return bodyType, s1.Compose(s3), nil

	case *ast.If:
		return c.inferIf(n, env)

	case *ast.BinOp:
		return c.inferBinOp(n, env)

	case *ast.UnOp:
		operand, s1, err := c.infer(n.Operand, env)
		if err != nil {
			return nil, nil, err
		}
		s2, err := typesystem.Unify(operand.Apply(s1), typesystem.Int{})
		if err != nil {
			return nil, nil, typeMismatch(n.Token, err)
		}
		return typesystem.Int{}, s1.Compose(s2), nil

	case *ast.Range:
		return typesystem.List{Elem: typesystem.Int{}}, typesystem.Subst{}, nil

	case *ast.ListComp:
		return c.inferListComp(n, env)

	case *ast.Match:
		return c.inferMatch(n, env)
	}
	return typesystem.Unknown{}, typesystem.Subst{}, nil
}

func (c *Checker) inferList(n *ast.List, env typesystem.Env) (typesystem.Type, typesystem.Subst, error) {
	if len(n.Elements) == 0 {
		return typesystem.List{Elem: c.fresh()}, typesystem.Subst{}, nil
	}
	elemType, s, err := c.infer(n.Elements[0], env)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range n.Elements[1:] {
		t, s2, err := c.infer(e, env.Apply(s))
		if err != nil {
			return nil, nil, err
		}
		s = s.Compose(s2)
		next, err := typesystem.Unify(elemType.Apply(s), t.Apply(s))
		if err != nil {
			return nil, nil, typeMismatch(e.GetToken(), err)
		}
		s = s.Compose(next)
	}
	return typesystem.List{Elem: elemType.Apply(s)}, s, nil
}

func (c *Checker) inferLambda(n *ast.Lambda, env typesystem.Env) (typesystem.Type, typesystem.Subst, error) {
	paramTypes := make([]typesystem.Type, len(n.Params))
	inner := env
	for i, p := range n.Params {
		v := c.fresh()
		paramTypes[i] = v
		inner = inner.Extend(p, v)
	}
	bodyType, s, err := c.infer(n.Body, inner)
	if err != nil {
		return nil, nil, err
	}
	applied := make([]typesystem.Type, len(paramTypes))
	for i, p := range paramTypes {
		applied[i] = p.Apply(s)
	}
	return typesystem.Function{Params: applied, Return: bodyType.Apply(s)}, s, nil
}

func (c *Checker) inferApp(n *ast.App, env typesystem.Env) (typesystem.Type, typesystem.Subst, error) {
	fnType, s, err := c.infer(n.Fn, env)
	if err != nil {
		return nil, nil, err
	}
	argTypes := make([]typesystem.Type, len(n.Args))
	for i, a := range n.Args {
		t, s2, err := c.infer(a, env.Apply(s))
		if err != nil {
			return nil, nil, err
		}
		s = s.Compose(s2)
		argTypes[i] = t
	}
	for i := range argTypes {
		argTypes[i] = argTypes[i].Apply(s)
	}
	result := c.fresh()
	expected := typesystem.Function{Params: argTypes, Return: result}
	s2, err := typesystem.Unify(fnType.Apply(s), expected)
	if err != nil {
		return nil, nil, typeMismatch(n.Token, err)
	}
	s = s.Compose(s2)
	return result.Apply(s), s, nil
}

func (c *Checker) inferIf(n *ast.If, env typesystem.Env) (typesystem.Type, typesystem.Subst, error) {
	condType, s, err := c.infer(n.Cond, env)
	if err != nil {
		return nil, nil, err
	}
	s2, err := typesystem.Unify(condType.Apply(s), typesystem.Bool{})
	if err != nil {
		return nil, nil, typeMismatch(n.Cond.GetToken(), err)
	}
	s = s.Compose(s2)

	thenType, s3, err := c.infer(n.Then, env.Apply(s))
	if err != nil {
		return nil, nil, err
	}
	s = s.Compose(s3)
	elseType, s4, err := c.infer(n.Else, env.Apply(s))
	if err != nil {
		return nil, nil, err
	}
	s = s.Compose(s4)
	s5, err := typesystem.Unify(thenType.Apply(s), elseType.Apply(s))
	if err != nil {
		return nil, nil, typeMismatch(n.Token, err)
	}
	s = s.Compose(s5)
	return thenType.Apply(s), s, nil
}

func (c *Checker) inferBinOp(n *ast.BinOp, env typesystem.Env) (typesystem.Type, typesystem.Subst, error) {
	left, s1, err := c.infer(n.Left, env)
	if err != nil {
		return nil, nil, err
	}
	right, s2, err := c.infer(n.Right, env.Apply(s1))
	if err != nil {
		return nil, nil, err
	}
	s := s1.Compose(s2)
	left = left.Apply(s)
	right = right.Apply(s)

	switch n.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpPow:
		s3, err := typesystem.UnifyAll([][2]typesystem.Type{{left, typesystem.Int{}}, {right, typesystem.Int{}}})
		if err != nil {
			return nil, nil, typeMismatch(n.Token, err)
		}
		return typesystem.Int{}, s.Compose(s3), nil

	case ast.OpEq, ast.OpNotEq, ast.OpLt, ast.OpGt, ast.OpLte, ast.OpGte:
		s3, err := typesystem.Unify(left, right)
		if err != nil {
			return nil, nil, typeMismatch(n.Token, err)
		}
		return typesystem.Bool{}, s.Compose(s3), nil

	case ast.OpAnd, ast.OpOr:
		s3, err := typesystem.UnifyAll([][2]typesystem.Type{{left, typesystem.Bool{}}, {right, typesystem.Bool{}}})
		if err != nil {
			return nil, nil, typeMismatch(n.Token, err)
		}
		return typesystem.Bool{}, s.Compose(s3), nil

	case ast.OpCons:
		elem := c.fresh()
		s3, err := typesystem.UnifyAll([][2]typesystem.Type{
			{left, elem},
			{right, typesystem.List{Elem: elem}},
		})
		if err != nil {
			return nil, nil, typeMismatch(n.Token, err)
		}
		s = s.Compose(s3)
		return typesystem.List{Elem: elem.Apply(s)}, s, nil

	case ast.OpConcat:
		// String concatenation is handled permissively at runtime (§4.3).
		// Operands that unify as lists give a list type; any other operands
		// (two Strings, or a mismatch) give Unknown and raise no error.
		elem := c.fresh()
		listType := typesystem.List{Elem: elem}
		s3, err := typesystem.UnifyAll([][2]typesystem.Type{{left, listType}, {right, listType}})
		if err != nil {
			return typesystem.Unknown{}, s, nil
		}
		return listType.Apply(s.Compose(s3)), s.Compose(s3), nil

	case ast.OpPipeFwd:
		result := c.fresh()
		s3, err := typesystem.Unify(right, typesystem.Function{Params: []typesystem.Type{left}, Return: result})
		if err != nil {
			return nil, nil, typeMismatch(n.Token, err)
		}
		return result.Apply(s.Compose(s3)), s.Compose(s3), nil

	case ast.OpPipeBack:
		result := c.fresh()
		s3, err := typesystem.Unify(left, typesystem.Function{Params: []typesystem.Type{right}, Return: result})
		if err != nil {
			return nil, nil, typeMismatch(n.Token, err)
		}
		return result.Apply(s.Compose(s3)), s.Compose(s3), nil
	}

	return typesystem.Unknown{}, s, nil
}

func (c *Checker) inferListComp(n *ast.ListComp, env typesystem.Env) (typesystem.Type, typesystem.Subst, error) {
	elem := c.fresh()
	sourceType, s, err := c.infer(n.Source, env)
	if err != nil {
		return nil, nil, err
	}
	s2, err := typesystem.Unify(sourceType.Apply(s), typesystem.List{Elem: elem})
	if err != nil {
		return nil, nil, typeMismatch(n.Source.GetToken(), err)
	}
	s = s.Compose(s2)

	inner := env.Apply(s).Extend(n.Var, elem.Apply(s))
	for _, g := range n.Guards {
		gt, s3, err := c.infer(g, inner)
		if err != nil {
			return nil, nil, err
		}
		s = s.Compose(s3)
		s4, err := typesystem.Unify(gt.Apply(s), typesystem.Bool{})
		if err != nil {
			return nil, nil, typeMismatch(g.GetToken(), err)
		}
		s = s.Compose(s4)
		inner = inner.Apply(s)
	}

	bodyType, s5, err := c.infer(n.Result, inner)
	if err != nil {
		return nil, nil, err
	}
	s = s.Compose(s5)
	return typesystem.List{Elem: bodyType.Apply(s)}, s, nil
}

func (c *Checker) inferMatch(n *ast.Match, env typesystem.Env) (typesystem.Type, typesystem.Subst, error) {
	if len(n.Arms) == 0 {
		return nil, nil, diagnostics.New(diagnostics.PhaseChecker, diagnostics.ErrEmptyMatch, n.Token)
	}
	scrutType, s, err := c.infer(n.Scrutinee, env)
	if err != nil {
		return nil, nil, err
	}

	var resultType typesystem.Type
	for _, arm := range n.Arms {
		armEnv, s2, err := c.elaboratePattern(arm.Pattern, scrutType.Apply(s), env.Apply(s))
		if err != nil {
			return nil, nil, err
		}
		s = s.Compose(s2)
		bodyType, s3, err := c.infer(arm.Body, armEnv.Apply(s))
		if err != nil {
			return nil, nil, err
		}
		s = s.Compose(s3)
		bodyType = bodyType.Apply(s)
		if resultType == nil {
			resultType = bodyType
			continue
		}
		s4, err := typesystem.Unify(resultType.Apply(s), bodyType)
		if err != nil {
			return nil, nil, typeMismatch(arm.Body.GetToken(), err)
		}
		s = s.Compose(s4)
		resultType = resultType.Apply(s)
	}
	return resultType.Apply(s), s, nil
}

// elaboratePattern implements §4.2's pattern elaboration rules.
func (c *Checker) elaboratePattern(pat ast.Pattern, scrut typesystem.Type, env typesystem.Env) (typesystem.Env, typesystem.Subst, error) {
	switch p := pat.(type) {
	case *ast.Wildcard:
		return env, typesystem.Subst{}, nil
	case *ast.VarBind:
		return env.Extend(p.Name, scrut), typesystem.Subst{}, nil
	case *ast.NumberLit:
		s, err := typesystem.Unify(scrut, typesystem.Int{})
		if err != nil {
			return nil, nil, typeMismatch(p.Token, err)
		}
		return env, s, nil
	case *ast.BoolLit:
		s, err := typesystem.Unify(scrut, typesystem.Bool{})
		if err != nil {
			return nil, nil, typeMismatch(p.Token, err)
		}
		return env, s, nil
	case *ast.StringLit:
		s, err := typesystem.Unify(scrut, typesystem.String{})
		if err != nil {
			return nil, nil, typeMismatch(p.Token, err)
		}
		return env, s, nil
	case *ast.ListLit:
		elem := c.fresh()
		s, err := typesystem.Unify(scrut, typesystem.List{Elem: elem})
		if err != nil {
			return nil, nil, typeMismatch(p.Token, err)
		}
		out := env.Apply(s)
		for _, sub := range p.Elements {
			var s2 typesystem.Subst
			out, s2, err = c.elaboratePattern(sub, elem.Apply(s), out)
			if err != nil {
				return nil, nil, err
			}
			s = s.Compose(s2)
			out = out.Apply(s)
		}
		return out, s, nil
	case *ast.Cons:
		elem := c.fresh()
		s, err := typesystem.Unify(scrut, typesystem.List{Elem: elem})
		if err != nil {
			return nil, nil, typeMismatch(p.Token, err)
		}
		out, s2, err := c.elaboratePattern(p.Head, elem.Apply(s), env.Apply(s))
		if err != nil {
			return nil, nil, err
		}
		s = s.Compose(s2)
		out, s3, err := c.elaboratePattern(p.Tail, typesystem.List{Elem: elem}.Apply(s), out.Apply(s))
		if err != nil {
			return nil, nil, err
		}
		s = s.Compose(s3)
		return out, s, nil
	}
	return env, typesystem.Subst{}, nil
}

func typeMismatch(tok token.Token, err error) error {
	ue, ok := err.(*typesystem.UnifyError)
	if !ok {
		return err
	}
	return diagnostics.New(diagnostics.PhaseChecker, diagnostics.ErrTypeMismatch, tok, ue.Left.String(), ue.Right.String())
}
