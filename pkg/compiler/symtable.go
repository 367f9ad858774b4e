package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// Function describes an entry of the global function table.
type Function struct {
	Arity   int
	Builtin bool // part of the runtime API rather than the program
}

// builtins is the runtime API every program can call without declaring it.
var builtins = map[string]int{
	"printi":  1,
	"printc":  1,
	"prints":  1,
	"println": 0,
	"readi":   0,
	"reads":   0,
	"new":     1,
	"size":    1,
	"add":     2,
	"get":     2,
	"set":     3,
}

// Scope is the flat set of names visible inside one function. Parameters and
// local variables share it; there is no block scoping.
type Scope map[string]struct{}

// Has reports whether name is declared in the scope.
func (s Scope) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the declared names in sorted order.
func (s Scope) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SymbolTable holds the declarations known to one checker run.
// Globals and functions are filled in pass 1; one local scope at a time is
// active in pass 2 and kept in locals once its function is done.
type SymbolTable struct {
	globals   Scope
	functions map[string]Function

	current Scope            // scope of the function being checked, nil outside one
	locals  map[string]Scope // finished scopes by function name
}

// NewSymbolTable returns a table with the runtime API pre-registered.
func NewSymbolTable() *SymbolTable {
	s := &SymbolTable{
		globals:   make(Scope),
		functions: make(map[string]Function, len(builtins)),
		locals:    make(map[string]Scope),
	}
	for name, arity := range builtins {
		s.functions[name] = Function{Arity: arity, Builtin: true}
	}
	return s
}

// DeclareGlobal registers a global variable. It reports false when the name
// is already a global.
func (s *SymbolTable) DeclareGlobal(name string) bool {
	if s.globals.Has(name) {
		return false
	}
	s.globals[name] = struct{}{}
	return true
}

// DeclareFunction registers a user function. It reports false when the name
// is already taken by a user function or the runtime API.
func (s *SymbolTable) DeclareFunction(name string, arity int) bool {
	if _, ok := s.functions[name]; ok {
		return false
	}
	s.functions[name] = Function{Arity: arity}
	return true
}

// Function looks up a function by name.
func (s *SymbolTable) Function(name string) (Function, bool) {
	f, ok := s.functions[name]
	return f, ok
}

func (s *SymbolTable) EnterFunction() {
	s.current = make(Scope)
}

// ExitFunction stores the active scope under name and deactivates it.
func (s *SymbolTable) ExitFunction(name string) {
	if s.current == nil {
		panic("ExitFunction called outside function scope")
	}
	s.locals[name] = s.current
	s.current = nil
}

// DeclareLocal adds name to the active scope. It reports false when the name
// is already declared there. Locals may shadow globals.
func (s *SymbolTable) DeclareLocal(name string) bool {
	if s.current == nil {
		panic("DeclareLocal called outside function scope")
	}
	if s.current.Has(name) {
		return false
	}
	s.current[name] = struct{}{}
	return true
}

// Resolve reports whether name is visible from the active scope.
func (s *SymbolTable) Resolve(name string) bool {
	return s.current.Has(name) || s.globals.Has(name)
}

// Globals returns the global variable set.
func (s *SymbolTable) Globals() Scope { return s.globals }

// Locals returns the finished scope of the named function.
func (s *SymbolTable) Locals(function string) (Scope, bool) {
	scope, ok := s.locals[function]
	return scope, ok
}

// String returns a deterministically ordered dump of the table.
func (s *SymbolTable) String() string {
	var sb strings.Builder
	if len(s.globals) > 0 {
		sb.WriteString("Globals:\n")
		for _, name := range s.globals.Names() {
			fmt.Fprintf(&sb, "  %s\n", name)
		}
	} else {
		sb.WriteString("Globals: (empty)\n")
	}

	sb.WriteString("Functions:\n")
	names := make([]string, 0, len(s.functions))
	for name := range s.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f := s.functions[name]
		origin := "user"
		if f.Builtin {
			origin = "api"
		}
		fmt.Fprintf(&sb, "  %-20s  arity %d (%s)\n", name, f.Arity, origin)
	}

	if len(s.locals) > 0 {
		sb.WriteString("Locals:\n")
		funcs := make([]string, 0, len(s.locals))
		for name := range s.locals {
			funcs = append(funcs, name)
		}
		sort.Strings(funcs)
		for _, fn := range funcs {
			fmt.Fprintf(&sb, "  %s: %s\n", fn, strings.Join(s.locals[fn].Names(), ", "))
		}
	}
	return sb.String()
}
