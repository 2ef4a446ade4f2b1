package zylox

import (
	"fmt"
	"sort"
	"strings"
)

// Environment maps names to values. One is made per block entry and
// per function call. Any number of children (blocks, closures) may
// share one parent; they alias its bindings rather than copy them.
// The parent link is fixed at construction.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]Value),
		enclosing: enclosing,
	}
}

func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Define binds name in this frame only, overwriting any
// earlier binding here.
func (e *Environment) Define(name string, v Value) {
	e.values[name] = v
}

// Get walks the chain outward from this frame.
func (e *Environment) Get(name Token) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
	}
	return Nil, undefinedVariable(name)
}

// Assign updates the nearest frame that binds name.
func (e *Environment) Assign(name Token, v Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = v
			return nil
		}
	}
	return undefinedVariable(name)
}

// Ancestor returns the frame distance hops up; distance 0 is e itself,
// which is the same convention the resolver counts with.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance && env != nil; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name from exactly the frame distance hops up.
func (e *Environment) GetAt(distance int, name Token) (Value, error) {
	anc := e.Ancestor(distance)
	if anc != nil {
		if v, ok := anc.values[name.Lexeme]; ok {
			return v, nil
		}
	}
	return Nil, undefinedVariable(name)
}

// AssignAt writes name in exactly the frame distance hops up.
func (e *Environment) AssignAt(distance int, name Token, v Value) error {
	anc := e.Ancestor(distance)
	if anc == nil {
		return undefinedVariable(name)
	}
	anc.values[name.Lexeme] = v
	return nil
}

// Lookup is the untyped read used by the repl dot-commands.
func (e *Environment) Lookup(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Names returns this frame's own bindings in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for k := range e.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (e *Environment) Depth() int {
	n := 0
	for env := e.enclosing; env != nil; env = env.enclosing {
		n++
	}
	return n
}

// Show renders this frame's bindings one per line, like the
// repl's .dump command prints them.
func (e *Environment) Show(label string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (depth %d, %p)\n", label, e.Depth(), e)
	if len(e.values) == 0 {
		b.WriteString("    empty-scope: no symbols\n")
		return b.String()
	}
	for _, name := range e.Names() {
		fmt.Fprintf(&b, "    %s -> %s\n", name, Stringify(e.values[name]))
	}
	return b.String()
}

func undefinedVariable(name Token) *RuntimeError {
	return runtimeErrorf(name, "Undefined variable '%s'.", name.Lexeme)
}
