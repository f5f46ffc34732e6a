package typesystem

import "fmt"

// UnifyError reports two types that cannot be made structurally identical.
type UnifyError struct {
	Left  Type
	Right Type
}

func (e *UnifyError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s", e.Left, e.Right)
}

// Unify attempts to make t1 and t2 structurally identical, returning the
// substitution that does so. The occurs check is omitted per §4.2: the
// corpus has no recursive type aliases to trigger it.
func Unify(t1, t2 Type) (Subst, error) {
	if _, ok := t1.(Unknown); ok {
		return Subst{}, nil
	}
	if _, ok := t2.(Unknown); ok {
		return Subst{}, nil
	}

	if v1, ok := t1.(Var); ok {
		if v2, ok := t2.(Var); ok && v1.ID == v2.ID {
			return Subst{}, nil
		}
		return Subst{v1.ID: t2}, nil
	}
	if v2, ok := t2.(Var); ok {
		return Subst{v2.ID: t1}, nil
	}

	switch a := t1.(type) {
	case Int:
		if _, ok := t2.(Int); ok {
			return Subst{}, nil
		}
	case Bool:
		if _, ok := t2.(Bool); ok {
			return Subst{}, nil
		}
	case String:
		if _, ok := t2.(String); ok {
			return Subst{}, nil
		}
	case List:
		b, ok := t2.(List)
		if !ok {
			break
		}
		return Unify(a.Elem, b.Elem)
	case Function:
		b, ok := t2.(Function)
		if !ok || len(a.Params) != len(b.Params) {
			break
		}
		s := Subst{}
		for i := range a.Params {
			next, err := Unify(a.Params[i].Apply(s), b.Params[i].Apply(s))
			if err != nil {
				return nil, err
			}
			s = s.Compose(next)
		}
		next, err := Unify(a.Return.Apply(s), b.Return.Apply(s))
		if err != nil {
			return nil, err
		}
		return s.Compose(next), nil
	}

	return nil, &UnifyError{Left: t1, Right: t2}
}

// UnifyAll folds Unify across a slice of (a, b) type pairs, threading the
// substitution so later pairs see the effect of earlier ones.
func UnifyAll(pairs [][2]Type) (Subst, error) {
	s := Subst{}
	for _, p := range pairs {
		next, err := Unify(p[0].Apply(s), p[1].Apply(s))
		if err != nil {
			return nil, err
		}
		s = s.Compose(next)
	}
	return s, nil
}
