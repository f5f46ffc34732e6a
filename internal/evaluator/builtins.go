package evaluator

import (
	"context"
	"sort"

	"github.com/funvibe/golf/internal/diagnostics"
	"github.com/funvibe/golf/internal/token"
)

// Builtins returns the §6.3 catalogue, ready to seed an initial
// environment. Each entry's Arity is its declared minimum; builtins do not
// curry (§6.3) — calling with fewer arguments is an ArityError raised by
// apply before Fn ever runs.
func Builtins() map[string]Builtin {
	return map[string]Builtin{
		"map":     {Name: "map", Arity: 2, Fn: builtinMap},
		"filter":  {Name: "filter", Arity: 2, Fn: builtinFilter},
		"fold":    {Name: "fold", Arity: 3, Fn: builtinFoldl},
		"foldl":   {Name: "foldl", Arity: 3, Fn: builtinFoldl},
		"foldr":   {Name: "foldr", Arity: 3, Fn: builtinFoldr},
		"zip":     {Name: "zip", Arity: 2, Fn: builtinZip},
		"take":    {Name: "take", Arity: 2, Fn: builtinTake},
		"drop":    {Name: "drop", Arity: 2, Fn: builtinDrop},
		"reverse": {Name: "reverse", Arity: 1, Fn: builtinReverse},
		"sort":    {Name: "sort", Arity: 1, Fn: builtinSort},
		"length":  {Name: "length", Arity: 1, Fn: builtinLength},
		"head":    {Name: "head", Arity: 1, Fn: builtinHead},
		"tail":    {Name: "tail", Arity: 1, Fn: builtinTail},
		"sum":     {Name: "sum", Arity: 1, Fn: builtinSum},
		"product": {Name: "product", Arity: 1, Fn: builtinProduct},
		"concat":  {Name: "concat", Arity: 1, Fn: builtinConcat},
		"elem":    {Name: "elem", Arity: 2, Fn: builtinElem},
	}
}

func wantList(v Value, name string, pos token.Token) (List, error) {
	l, ok := v.(List)
	if !ok {
		return List{}, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, pos, name+" expects a List argument")
	}
	return l, nil
}

func wantNumber(v Value, name string, pos token.Token) (Number, error) {
	n, ok := v.(Number)
	if !ok {
		return Number{}, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, pos, name+" expects a Number argument")
	}
	return n, nil
}

var builtinPos = token.Token{Line: 0, Column: 0}

func builtinMap(ev *Evaluator, args []Value) (Value, error) {
	fn := args[0]
	list, err := wantList(args[1], "map", builtinPos)
	if err != nil {
		return nil, err
	}
	out := make([]Value, len(list.Elements))
	for i, e := range list.Elements {
		v, err := ev.apply(context.Background(), builtinPos, fn, []Value{e})
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return List{Elements: out}, nil
}

func builtinFilter(ev *Evaluator, args []Value) (Value, error) {
	pred := args[0]
	list, err := wantList(args[1], "filter", builtinPos)
	if err != nil {
		return nil, err
	}
	var out []Value
	for _, e := range list.Elements {
		v, err := ev.apply(context.Background(), builtinPos, pred, []Value{e})
		if err != nil {
			return nil, err
		}
		b, ok := v.(Bool)
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, builtinPos, "filter predicate must return Bool")
		}
		if b.Value {
			out = append(out, e)
		}
	}
	return List{Elements: out}, nil
}

func builtinFoldl(ev *Evaluator, args []Value) (Value, error) {
	fn, acc := args[0], args[1]
	list, err := wantList(args[2], "foldl", builtinPos)
	if err != nil {
		return nil, err
	}
	for _, e := range list.Elements {
		acc, err = ev.apply(context.Background(), builtinPos, fn, []Value{acc, e})
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func builtinFoldr(ev *Evaluator, args []Value) (Value, error) {
	fn, acc := args[0], args[1]
	list, err := wantList(args[2], "foldr", builtinPos)
	if err != nil {
		return nil, err
	}
	for i := len(list.Elements) - 1; i >= 0; i-- {
		acc, err = ev.apply(context.Background(), builtinPos, fn, []Value{list.Elements[i], acc})
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func builtinZip(ev *Evaluator, args []Value) (Value, error) {
	a, err := wantList(args[0], "zip", builtinPos)
	if err != nil {
		return nil, err
	}
	b, err := wantList(args[1], "zip", builtinPos)
	if err != nil {
		return nil, err
	}
	n := len(a.Elements)
	if len(b.Elements) < n {
		n = len(b.Elements)
	}
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		out[i] = List{Elements: []Value{a.Elements[i], b.Elements[i]}}
	}
	return List{Elements: out}, nil
}

func builtinTake(ev *Evaluator, args []Value) (Value, error) {
	n, err := wantNumber(args[0], "take", builtinPos)
	if err != nil {
		return nil, err
	}
	list, err := wantList(args[1], "take", builtinPos)
	if err != nil {
		return nil, err
	}
	if n.Value <= 0 {
		return List{}, nil
	}
	if int(n.Value) >= len(list.Elements) {
		return List{Elements: append([]Value{}, list.Elements...)}, nil
	}
	return List{Elements: append([]Value{}, list.Elements[:n.Value]...)}, nil
}

func builtinDrop(ev *Evaluator, args []Value) (Value, error) {
	n, err := wantNumber(args[0], "drop", builtinPos)
	if err != nil {
		return nil, err
	}
	list, err := wantList(args[1], "drop", builtinPos)
	if err != nil {
		return nil, err
	}
	if n.Value <= 0 {
		return List{Elements: append([]Value{}, list.Elements...)}, nil
	}
	if int(n.Value) >= len(list.Elements) {
		return List{}, nil
	}
	return List{Elements: append([]Value{}, list.Elements[n.Value:]...)}, nil
}

func builtinReverse(ev *Evaluator, args []Value) (Value, error) {
	list, err := wantList(args[0], "reverse", builtinPos)
	if err != nil {
		return nil, err
	}
	out := make([]Value, len(list.Elements))
	for i, e := range list.Elements {
		out[len(out)-1-i] = e
	}
	return List{Elements: out}, nil
}

func builtinSort(ev *Evaluator, args []Value) (Value, error) {
	list, err := wantList(args[0], "sort", builtinPos)
	if err != nil {
		return nil, err
	}
	out := make([]Value, len(list.Elements))
	copy(out, list.Elements)
	var innerErr error
	sort.SliceStable(out, func(i, j int) bool {
		a, ok1 := out[i].(Number)
		b, ok2 := out[j].(Number)
		if !ok1 || !ok2 {
			innerErr = diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, builtinPos, "sort expects a [Int]")
			return false
		}
		return a.Value < b.Value
	})
	if innerErr != nil {
		return nil, innerErr
	}
	return List{Elements: out}, nil
}

func builtinLength(ev *Evaluator, args []Value) (Value, error) {
	list, err := wantList(args[0], "length", builtinPos)
	if err != nil {
		return nil, err
	}
	return Number{Value: int64(len(list.Elements))}, nil
}

func builtinHead(ev *Evaluator, args []Value) (Value, error) {
	list, err := wantList(args[0], "head", builtinPos)
	if err != nil {
		return nil, err
	}
	if len(list.Elements) == 0 {
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrEmptyListHead, builtinPos)
	}
	return list.Elements[0], nil
}

func builtinTail(ev *Evaluator, args []Value) (Value, error) {
	list, err := wantList(args[0], "tail", builtinPos)
	if err != nil {
		return nil, err
	}
	if len(list.Elements) == 0 {
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrEmptyListTail, builtinPos)
	}
	return List{Elements: append([]Value{}, list.Elements[1:]...)}, nil
}

func builtinSum(ev *Evaluator, args []Value) (Value, error) {
	list, err := wantList(args[0], "sum", builtinPos)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, e := range list.Elements {
		n, ok := e.(Number)
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, builtinPos, "sum expects a [Int]")
		}
		total += n.Value
	}
	return Number{Value: total}, nil
}

func builtinProduct(ev *Evaluator, args []Value) (Value, error) {
	list, err := wantList(args[0], "product", builtinPos)
	if err != nil {
		return nil, err
	}
	total := int64(1)
	for _, e := range list.Elements {
		n, ok := e.(Number)
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, builtinPos, "product expects a [Int]")
		}
		total *= n.Value
	}
	return Number{Value: total}, nil
}

func builtinConcat(ev *Evaluator, args []Value) (Value, error) {
	outer, err := wantList(args[0], "concat", builtinPos)
	if err != nil {
		return nil, err
	}
	var out []Value
	for _, e := range outer.Elements {
		inner, ok := e.(List)
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeTypeError, builtinPos, "concat expects a [[a]]")
		}
		out = append(out, inner.Elements...)
	}
	return List{Elements: out}, nil
}

func builtinElem(ev *Evaluator, args []Value) (Value, error) {
	target := args[0]
	list, err := wantList(args[1], "elem", builtinPos)
	if err != nil {
		return nil, err
	}
	for _, e := range list.Elements {
		if valuesEqual(target, e) {
			return Bool{Value: true}, nil
		}
	}
	return Bool{Value: false}, nil
}
