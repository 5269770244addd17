// Package eval evaluates an ast.Node over the complex numbers,
// against a mutable evaluation Context of variables, user-defined
// functions, and an angle mode.
package eval

import (
	"github.com/wildfunctions/exath/pkg/angle"
	"github.com/wildfunctions/exath/pkg/ast"
	"github.com/wildfunctions/exath/pkg/exatherr"
)

// FuncDef is a user-defined function: its parameter names, in
// declared order, and its body expression.
type FuncDef struct {
	Params []string
	Body   ast.Node
}

// Context holds everything evaluation needs beyond the AST itself.
// It is not safe for concurrent use — callers needing concurrent
// evaluation should clone Vars/Fns into separate Contexts.
type Context struct {
	Vars  map[string]complex128
	Fns   map[string]*FuncDef
	Angle angle.Mode

	// calling tracks the names currently on the call stack, so a
	// function body that (directly or indirectly) calls itself is
	// rejected instead of recursing until the Go stack overflows.
	calling map[string]bool
}

// NewContext returns an empty Context in the given angle mode.
func NewContext(mode angle.Mode) *Context {
	return NewContextWithState(make(map[string]complex128), make(map[string]*FuncDef), mode)
}

// NewContextWithState returns a Context over existing variable and
// function tables — used by a session, which owns those maps across
// calls to Eval. Each returned Context starts with an empty recursion
// guard.
func NewContextWithState(vars map[string]complex128, fns map[string]*FuncDef, mode angle.Mode) *Context {
	return &Context{
		Vars:    vars,
		Fns:     fns,
		Angle:   mode,
		calling: make(map[string]bool),
	}
}

func (c *Context) enterCall(name string) error {
	if c.calling[name] {
		return exatherr.Undefined("recursive call to %q is not allowed", name)
	}
	c.calling[name] = true
	return nil
}

func (c *Context) leaveCall(name string) { delete(c.calling, name) }

// withVars returns a shallow copy of Vars with bindings overridden,
// used to evaluate a user function's body without mutating the
// caller's variable table.
func (c *Context) withVars(bindings map[string]complex128) map[string]complex128 {
	out := make(map[string]complex128, len(c.Vars)+len(bindings))
	for k, v := range c.Vars {
		out[k] = v
	}
	for k, v := range bindings {
		out[k] = v
	}
	return out
}
