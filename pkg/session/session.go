// Package session provides a stateful evaluation context that
// persists variables and user-defined functions across multiple
// Eval calls, the way a calculator or REPL needs.
package session

import (
	"github.com/wildfunctions/exath/pkg/angle"
	"github.com/wildfunctions/exath/pkg/ast"
	"github.com/wildfunctions/exath/pkg/eval"
)

// Session holds the variables, user-defined functions, and angle mode
// that persist between calls to Eval. It is not safe for concurrent
// use. varOrder/fnOrder track insertion order alongside the lookup
// maps, since varNames()/fnNames() must reflect the exact sequence of
// insertions (with removals filtered out), not alphabetical order.
type Session struct {
	Angle angle.Mode

	vars     map[string]complex128
	varOrder []string
	fns      map[string]*eval.FuncDef
	fnOrder  []string
}

// New returns an empty Session in the given angle mode.
func New(mode angle.Mode) *Session {
	return &Session{
		Angle: mode,
		vars:  make(map[string]complex128),
		fns:   make(map[string]*eval.FuncDef),
	}
}

// IsCallable implements ast.Scope: a name is callable if it is a
// built-in or an already-defined user function.
func (s *Session) IsCallable(name string) bool {
	if _, ok := s.fns[name]; ok {
		return true
	}
	return eval.IsBuiltin(name)
}

// IsBuiltin implements ast.Scope: only built-ins are reserved against
// assignment, so a user function may later be redefined.
func (s *Session) IsBuiltin(name string) bool {
	return eval.IsBuiltin(name)
}

// BuiltinArity implements ast.Scope, letting a function definition
// shadow a built-in of matching arity.
func (s *Session) BuiltinArity(name string) (int, bool) {
	return eval.BuiltinArity(name)
}

// Eval parses and evaluates one line against the session's state.
// A line is one of three forms:
//   - "f(x, y) = expr" defines a user function and returns 0
//   - "ident = expr"   assigns a variable and returns its value
//   - "expr"           evaluates the expression and returns its value
func (s *Session) Eval(line string) (complex128, error) {
	parsed, err := ast.ParseLine(line, s)
	if err != nil {
		return 0, err
	}

	switch parsed.Kind {
	case ast.LineFunctionDef:
		// Stored without evaluation or validation: names in the body
		// that aren't yet declared are resolved at call time, so
		// forward references (defining f(x) = x + y before y exists)
		// are legal and only fail later if y is still undefined when
		// f is actually called.
		s.setFn(parsed.Name, &eval.FuncDef{Params: parsed.Params, Body: parsed.Expr})
		return 0, nil

	case ast.LineAssignment:
		value, err := s.evalNode(parsed.Expr)
		if err != nil {
			return 0, err
		}
		s.SetVar(parsed.Name, value)
		return value, nil

	default:
		return s.evalNode(parsed.Expr)
	}
}

func (s *Session) evalNode(node ast.Node) (complex128, error) {
	ctx := eval.NewContextWithState(s.vars, s.fns, s.Angle)
	return eval.Eval(node, ctx)
}

// SetVar assigns a variable directly, bypassing parsing — used by
// host wrappers (C-ABI, WASM) that set state from outside the DSL.
// Reassigning an existing name overwrites its value without moving its
// position in VarNames's insertion order.
func (s *Session) SetVar(name string, value complex128) {
	if _, exists := s.vars[name]; !exists {
		s.varOrder = append(s.varOrder, name)
	}
	s.vars[name] = value
}

// Var reads a variable's current value.
func (s *Session) Var(name string) (complex128, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// RemoveVar removes a variable.
func (s *Session) RemoveVar(name string) {
	if _, exists := s.vars[name]; !exists {
		return
	}
	delete(s.vars, name)
	s.varOrder = removeName(s.varOrder, name)
}

// ClearVars removes all variables.
func (s *Session) ClearVars() {
	s.vars = make(map[string]complex128)
	s.varOrder = nil
}

// VarNames returns all variable names in the order they were first
// assigned, with later removals filtered out. Reassigning a name does
// not change its position.
func (s *Session) VarNames() []string {
	names := make([]string, len(s.varOrder))
	copy(names, s.varOrder)
	return names
}

// setFn stores a user-defined function, recording fnOrder only on its
// first definition — a redefinition keeps its original position.
func (s *Session) setFn(name string, fn *eval.FuncDef) {
	if _, exists := s.fns[name]; !exists {
		s.fnOrder = append(s.fnOrder, name)
	}
	s.fns[name] = fn
}

// RemoveFn removes a user-defined function.
func (s *Session) RemoveFn(name string) {
	if _, exists := s.fns[name]; !exists {
		return
	}
	delete(s.fns, name)
	s.fnOrder = removeName(s.fnOrder, name)
}

// FnNames returns all user-defined function names in the order they
// were first defined, with later removals filtered out.
func (s *Session) FnNames() []string {
	names := make([]string, len(s.fnOrder))
	copy(names, s.fnOrder)
	return names
}

// removeName returns order with name's first occurrence deleted.
func removeName(order []string, name string) []string {
	for i, n := range order {
		if n == name {
			return append(order[:i:i], order[i+1:]...)
		}
	}
	return order
}
