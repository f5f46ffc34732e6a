package typesystem

import "testing"

func TestUnifyVarWithConcrete(t *testing.T) {
	v := Var{ID: 1}
	s, err := Unify(v, Int{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s[1].String() != "Int" {
		t.Fatalf("got %v", s[1])
	}
}

func TestUnifyMismatchedBaseTypes(t *testing.T) {
	if _, err := Unify(Int{}, Bool{}); err == nil {
		t.Fatal("want an error, got nil")
	}
}

func TestUnifyLists(t *testing.T) {
	s, err := Unify(List{Elem: Var{ID: 1}}, List{Elem: Int{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s[1].String() != "Int" {
		t.Fatalf("got %v", s[1])
	}
}

func TestUnifyFunctions(t *testing.T) {
	a := Function{Params: []Type{Var{ID: 1}}, Return: Var{ID: 2}}
	b := Function{Params: []Type{Int{}}, Return: Bool{}}
	s, err := Unify(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s[1].String() != "Int" || s[2].String() != "Bool" {
		t.Fatalf("got %v", s)
	}
}

func TestUnifyUnknownIsPermissive(t *testing.T) {
	if _, err := Unify(Unknown{}, Bool{}); err != nil {
		t.Fatalf("want Unknown to unify with anything, got %v", err)
	}
}
