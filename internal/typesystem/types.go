// Package typesystem implements the §3.3 type language and the
// unification-based inference of §4.2.
package typesystem

import "fmt"

// Type is any member of the §3.3 type language.
type Type interface {
	String() string
	Apply(Subst) Type
}

// Int is the 64-bit signed integer type.
type Int struct{}

func (Int) String() string     { return "Int" }
func (t Int) Apply(Subst) Type { return t }

// Bool is the boolean type.
type Bool struct{}

func (Bool) String() string     { return "Bool" }
func (t Bool) Apply(Subst) Type { return t }

// String is the string type.
type String struct{}

func (String) String() string     { return "String" }
func (t String) Apply(Subst) Type { return t }

// List is a homogeneous list of Elem.
type List struct {
	Elem Type
}

func (l List) String() string { return "[" + l.Elem.String() + "]" }
func (l List) Apply(s Subst) Type {
	return List{Elem: l.Elem.Apply(s)}
}

// Function is a function from Params to Return. It is not curried:
// unification requires both sides to have the same number of Params, so a
// partial application does not type-check.
type Function struct {
	Params []Type
	Return Type
}

func (f Function) String() string {
	out := ""
	for _, p := range f.Params {
		out += p.String() + " -> "
	}
	return out + f.Return.String()
}

func (f Function) Apply(s Subst) Type {
	params := make([]Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Apply(s)
	}
	return Function{Params: params, Return: f.Return.Apply(s)}
}

// Var is a unification variable, identified by a fresh integer id.
type Var struct {
	ID int
}

func (v Var) String() string { return fmt.Sprintf("t%d", v.ID) }

func (v Var) Apply(s Subst) Type {
	if t, ok := s[v.ID]; ok {
		if tv, ok := t.(Var); ok && tv.ID == v.ID {
			return t
		}
		return t.Apply(s)
	}
	return v
}

// Unknown unifies permissively with anything; an escape hatch.
type Unknown struct{}

func (Unknown) String() string     { return "?" }
func (t Unknown) Apply(Subst) Type { return t }

// Subst maps a Var id to the Type it has been unified with.
type Subst map[int]Type

// Compose returns a substitution equivalent to applying s first, then other.
func (s Subst) Compose(other Subst) Subst {
	out := make(Subst, len(s)+len(other))
	for id, t := range s {
		out[id] = t.Apply(other)
	}
	for id, t := range other {
		if _, ok := out[id]; !ok {
			out[id] = t
		}
	}
	return out
}

// Env is a type environment mapping identifiers to their Type.
type Env map[string]Type

// Extend returns a new Env with name bound to t, leaving the receiver
// unmodified (environments are treated as immutable, per §3.5's Value
// environment discipline applied to types).
func (e Env) Extend(name string, t Type) Env {
	out := make(Env, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	out[name] = t
	return out
}

func (e Env) Apply(s Subst) Env {
	out := make(Env, len(e))
	for k, v := range e {
		out[k] = v.Apply(s)
	}
	return out
}
