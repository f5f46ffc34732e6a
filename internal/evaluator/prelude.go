package evaluator

// InitialEnv returns the value environment seeded with the §6.3 builtin
// catalogue, ready for top-level evaluation.
func InitialEnv() *Env {
	env := NewEnv()
	for name, b := range Builtins() {
		env = env.Extend(name, b)
	}
	return env
}
