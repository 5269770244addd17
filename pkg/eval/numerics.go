package eval

import (
	"github.com/wildfunctions/exath/pkg/angle"
	"github.com/wildfunctions/exath/pkg/ast"
	"github.com/wildfunctions/exath/pkg/exatherr"
)

// maxTerms bounds Sum and Prod so a typo in a range ("1 to 1e9")
// fails fast instead of evaluating for minutes.
const maxTerms = 10_000_000

// evalNodeAt evaluates node with var bound to x and no other
// variables or user functions in scope, rejecting a complex result
// since every numerical method here operates on real single-variable
// functions.
func evalNodeAt(node ast.Node, varName string, x float64, mode angle.Mode) (float64, error) {
	ctx := NewContext(mode)
	ctx.Vars[varName] = complex(x, 0)
	result, err := Eval(node, ctx)
	if err != nil {
		return 0, err
	}
	if !isReal(result) {
		return 0, exatherr.ComplexResult("expression produced a complex value at %s=%v", varName, x)
	}
	return real(result), nil
}

// Deriv numerically differentiates expr with respect to var at x using
// a central finite difference with a step scaled to x's magnitude.
func Deriv(expr, varName string, x float64, mode angle.Mode) (float64, error) {
	node, err := ast.Parse(expr, BuiltinScope{})
	if err != nil {
		return 0, err
	}
	h := absF(x) * 1e-7
	if h < 1e-10 {
		h = 1e-10
	}
	forward, err := evalNodeAt(node, varName, x+h, mode)
	if err != nil {
		return 0, err
	}
	backward, err := evalNodeAt(node, varName, x-h, mode)
	if err != nil {
		return 0, err
	}
	return (forward - backward) / (2 * h), nil
}

// Integrate numerically integrates expr with respect to var over
// [a, b] using composite Simpson's rule with 1000 subintervals.
func Integrate(expr, varName string, a, b float64, mode angle.Mode) (float64, error) {
	const n = 1000
	node, err := ast.Parse(expr, BuiltinScope{})
	if err != nil {
		return 0, err
	}
	step := (b - a) / n

	first, err := evalNodeAt(node, varName, a, mode)
	if err != nil {
		return 0, err
	}
	last, err := evalNodeAt(node, varName, b, mode)
	if err != nil {
		return 0, err
	}

	total := first + last
	for i := 1; i < n; i++ {
		x := a + float64(i)*step
		v, err := evalNodeAt(node, varName, x, mode)
		if err != nil {
			return 0, err
		}
		if i%2 == 0 {
			total += 2 * v
		} else {
			total += 4 * v
		}
	}
	return total * step / 3, nil
}

// Sum computes the discrete sum of expr over var = from..to inclusive.
func Sum(expr, varName string, from, to int64, mode angle.Mode) (float64, error) {
	if to-from >= maxTerms {
		return 0, exatherr.RangeTooLarge("sum range too large (max %d terms)", maxTerms)
	}
	node, err := ast.Parse(expr, BuiltinScope{})
	if err != nil {
		return 0, err
	}
	var acc float64
	for k := from; k <= to; k++ {
		v, err := evalNodeAt(node, varName, float64(k), mode)
		if err != nil {
			return 0, err
		}
		acc += v
	}
	return acc, nil
}

// Prod computes the discrete product of expr over var = from..to inclusive.
func Prod(expr, varName string, from, to int64, mode angle.Mode) (float64, error) {
	if to-from >= maxTerms {
		return 0, exatherr.RangeTooLarge("product range too large (max %d terms)", maxTerms)
	}
	node, err := ast.Parse(expr, BuiltinScope{})
	if err != nil {
		return 0, err
	}
	acc := 1.0
	for k := from; k <= to; k++ {
		v, err := evalNodeAt(node, varName, float64(k), mode)
		if err != nil {
			return 0, err
		}
		acc *= v
	}
	return acc, nil
}
