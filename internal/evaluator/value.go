package evaluator

import (
	"fmt"
	"strings"

	"github.com/funvibe/golf/internal/ast"
)

// ValueType tags a runtime Value variant.
type ValueType string

const (
	NumberType  ValueType = "Number"
	BoolType    ValueType = "Bool"
	StringType  ValueType = "String"
	ListType    ValueType = "List"
	ClosureType ValueType = "Closure"
	BuiltinType ValueType = "Builtin"
	ThunkType   ValueType = "Thunk"
)

// Value is any runtime value per §3.4.
type Value interface {
	Type() ValueType
	Inspect() string
}

// Number is a 64-bit signed integer value.
type Number struct{ Value int64 }

func (Number) Type() ValueType    { return NumberType }
func (n Number) Inspect() string  { return fmt.Sprintf("%d", n.Value) }

// Bool is a boolean value.
type Bool struct{ Value bool }

func (Bool) Type() ValueType { return BoolType }
func (b Bool) Inspect() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// String is a string value.
type String struct{ Value string }

func (String) Type() ValueType   { return StringType }
func (s String) Inspect() string { return `"` + s.Value + `"` }

// List is an immutable ordered sequence of Values.
type List struct{ Elements []Value }

func (List) Type() ValueType { return ListType }
func (l List) Inspect() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Closure pairs a parameter list, a body AST, and the environment captured
// at the point the Lambda was evaluated.
type Closure struct {
	Params []string
	Body   ast.Expr
	Env    *Env
}

func (Closure) Type() ValueType    { return ClosureType }
func (c Closure) Inspect() string  { return "<closure>" }

// BuiltinFn is the Go implementation backing a Builtin value.
type BuiltinFn func(ev *Evaluator, args []Value) (Value, error)

// Builtin is a named host function; builtins do not curry (§6.3).
type Builtin struct {
	Name  string
	Arity int
	Fn    BuiltinFn
}

func (Builtin) Type() ValueType   { return BuiltinType }
func (b Builtin) Inspect() string { return "<builtin " + b.Name + ">" }

// Thunk is an unevaluated expression paired with its captured environment,
// forced on lookup (§3.4, §9 "knot-tying"). Thunks are one-shot per §3.6:
// forcing does not memoize or mutate the binding in place.
type Thunk struct {
	Body ast.Expr
	Env  *Env
}

func (Thunk) Type() ValueType   { return ThunkType }
func (t Thunk) Inspect() string { return "<thunk>" }

// Print renders a Value canonically, per §4.4.
func Print(v Value) string {
	return v.Inspect()
}
