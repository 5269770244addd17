// Package exath is a pure, embeddable evaluator for a small expression
// language over the complex numbers: a lexer, a recursive-descent
// parser, a tree-walking evaluator, and a handful of numerical
// methods, wrapped behind a stateless free-function API and a
// stateful Session for REPL-style use.
package exath

import (
	"math"

	"github.com/wildfunctions/exath/pkg/angle"
	"github.com/wildfunctions/exath/pkg/ast"
	"github.com/wildfunctions/exath/pkg/eval"
	"github.com/wildfunctions/exath/pkg/exatherr"
	"github.com/wildfunctions/exath/pkg/session"
)

// Re-exported so callers of this package never need to import the
// internal pkg/angle, pkg/ast, or pkg/session packages directly.
type (
	AngleMode = angle.Mode
	Node      = ast.Node
	Session   = session.Session
	Error     = exatherr.Error
	ErrorKind = exatherr.Kind
)

const (
	Deg  = angle.Deg
	Rad  = angle.Rad
	Grad = angle.Grad
)

// NewSession returns a new, empty Session in the given angle mode.
func NewSession(mode AngleMode) *Session { return session.New(mode) }

// Result is the outcome of evaluating an expression: either a real
// number or a complex pair, distinguished by IsComplex.
type Result struct {
	Re, Im float64
}

// IsComplex reports whether the result's imaginary part is outside
// the tolerance the engine uses to treat a value as real.
func (r Result) IsComplex() bool { return math.Abs(r.Im) >= 1e-12 }

func resultOf(z complex128) Result { return Result{Re: real(z), Im: imag(z)} }

// Evaluate parses and evaluates expr with no variables or user
// functions in scope, returning a real result. It returns a
// KindComplexResult error if the expression's value is complex.
func Evaluate(expr string, mode AngleMode) (float64, error) {
	r, err := EvaluateComplex(expr, mode)
	if err != nil {
		return 0, err
	}
	if r.IsComplex() {
		return 0, exatherr.ComplexResult("result is complex")
	}
	return r.Re, nil
}

// EvaluateComplex parses and evaluates expr with no variables or user
// functions in scope, returning a Result that may be complex.
func EvaluateComplex(expr string, mode AngleMode) (Result, error) {
	return EvaluateWithVars(expr, mode, nil)
}

// EvaluateWithVars parses and evaluates expr against a fixed variable
// map, with no user-defined functions in scope.
func EvaluateWithVars(expr string, mode AngleMode, vars map[string]complex128) (Result, error) {
	return EvaluateWithVarsAndFns(expr, mode, vars, nil)
}

// EvaluateWithVarsAndFns parses and evaluates expr against a variable
// map and a table of user-defined functions — the most general
// stateless entry point; Session builds on top of this shape to add
// persistence across calls.
func EvaluateWithVarsAndFns(expr string, mode AngleMode, vars map[string]complex128, fns map[string]*eval.FuncDef) (Result, error) {
	scope := scopeOf(fns)
	node, err := ast.Parse(expr, scope)
	if err != nil {
		return Result{}, err
	}
	if vars == nil {
		vars = map[string]complex128{}
	}
	if fns == nil {
		fns = map[string]*eval.FuncDef{}
	}
	ctx := eval.NewContextWithState(vars, fns, mode)
	z, err := eval.Eval(node, ctx)
	if err != nil {
		return Result{}, err
	}
	return resultOf(z), nil
}

// scopeOf builds the ast.Scope a one-shot evaluation needs: built-ins
// plus whatever user functions were supplied.
type fnScope map[string]*eval.FuncDef

func (s fnScope) IsCallable(name string) bool {
	if _, ok := s[name]; ok {
		return true
	}
	return eval.IsBuiltin(name)
}
func (s fnScope) IsBuiltin(name string) bool           { return eval.IsBuiltin(name) }
func (s fnScope) BuiltinArity(name string) (int, bool) { return eval.BuiltinArity(name) }

func scopeOf(fns map[string]*eval.FuncDef) ast.Scope { return fnScope(fns) }

// IsValid reports whether expr parses without error. It does not
// evaluate expr, so undefined variables do not make it invalid.
func IsValid(expr string) bool {
	_, err := ast.Parse(expr, eval.BuiltinScope{})
	return err == nil
}

// Parse parses expr into an inspectable Node against the built-in
// function set (no user-defined functions).
func Parse(expr string) (Node, error) {
	return ast.Parse(expr, eval.BuiltinScope{})
}

// SupportedFunctions returns the names of every built-in function.
func SupportedFunctions() []string { return eval.SupportedFunctions() }

// Deriv numerically differentiates expr with respect to var at x.
func Deriv(expr, varName string, x float64, mode AngleMode) (float64, error) {
	return eval.Deriv(expr, varName, x, mode)
}

// Integrate numerically integrates expr with respect to var over [a, b].
func Integrate(expr, varName string, a, b float64, mode AngleMode) (float64, error) {
	return eval.Integrate(expr, varName, a, b, mode)
}

// Sum computes the discrete sum of expr over var = from..to inclusive.
func Sum(expr, varName string, from, to int64, mode AngleMode) (float64, error) {
	return eval.Sum(expr, varName, from, to, mode)
}

// Prod computes the discrete product of expr over var = from..to inclusive.
func Prod(expr, varName string, from, to int64, mode AngleMode) (float64, error) {
	return eval.Prod(expr, varName, from, to, mode)
}
