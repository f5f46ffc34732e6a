package evaluator

// Env is an immutable mapping from identifier to Value (§3.5). Extending an
// environment never mutates the receiver; it links a new frame in front of
// it, so a Closure that captured an outer Env is unaffected by bindings
// added after capture.
type Env struct {
	vars  map[string]Value
	outer *Env
}

// NewEnv returns an empty root environment.
func NewEnv() *Env {
	return &Env{vars: map[string]Value{}}
}

// Extend returns a new frame binding name to val, chained in front of e.
func (e *Env) Extend(name string, val Value) *Env {
	return &Env{vars: map[string]Value{name: val}, outer: e}
}

// ExtendMany binds several names at once in a single new frame, used when
// a closure's k parameters are all bound together (§4.3).
func (e *Env) ExtendMany(names []string, vals []Value) *Env {
	frame := make(map[string]Value, len(names))
	for i, n := range names {
		frame[n] = vals[i]
	}
	return &Env{vars: frame, outer: e}
}

// Get looks up name, walking outward through enclosing frames. Duplicate
// names shadow: the innermost frame wins.
func (e *Env) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.outer {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// set mutates the binding for name in place, used only to complete the
// knot-tying trick for self-referential Let bindings (§9): the Thunk for a
// Let's value is allocated against an environment frame that is then
// patched, after the fact, to contain the Thunk itself under its own name.
func (e *Env) set(name string, val Value) {
	e.vars[name] = val
}
