package eval

import (
	"math"
	"math/cmplx"

	"github.com/wildfunctions/exath/pkg/ast"
	"github.com/wildfunctions/exath/pkg/exatherr"
)

const (
	eqTolerance = 1e-12
)

// Eval evaluates node against ctx's variables, user functions, and
// angle mode, returning the resulting complex value or the first
// error encountered.
func Eval(node ast.Node, ctx *Context) (complex128, error) {
	switch n := node.(type) {
	case *ast.NumberNode:
		return complex(n.Value, 0), nil

	case *ast.VarNode:
		v, ok := ctx.Vars[n.Name]
		if !ok {
			return 0, exatherr.Undefined("undefined variable: %s", n.Name)
		}
		return v, nil

	case *ast.UnaryOpNode:
		return evalUnary(n, ctx)

	case *ast.BinOpNode:
		return evalBinOp(n, ctx)

	case *ast.CallNode:
		return evalCall(n, ctx)

	case *ast.LogBaseNode:
		arg, err := Eval(n.Arg, ctx)
		if err != nil {
			return 0, err
		}
		return logBase(n.Base, arg)

	case *ast.AbsNode:
		v, err := Eval(n.Child, ctx)
		if err != nil {
			return 0, err
		}
		return complex(cmplx.Abs(v), 0), nil

	case *ast.FactorialNode:
		v, err := Eval(n.Child, ctx)
		if err != nil {
			return 0, err
		}
		if !isReal(v) {
			return 0, exatherr.ArgType("factorial only defined for real numbers")
		}
		f, err := factorial(real(v))
		if err != nil {
			return 0, err
		}
		return complex(f, 0), nil

	default:
		return 0, exatherr.Parse("unsupported AST node %T", node)
	}
}

func evalUnary(n *ast.UnaryOpNode, ctx *Context) (complex128, error) {
	v, err := Eval(n.Child, ctx)
	if err != nil {
		return 0, err
	}
	switch n.Kind {
	case ast.Neg:
		// Subtracting from zero rather than negating keeps a zero
		// imaginary part at +0, so -1 sits on the principal branch of
		// sqrt and ln (sqrt(-1) = i, not -i).
		return 0 - v, nil
	case ast.Not:
		if v == 0 {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, exatherr.Parse("unknown unary operator")
	}
}

func evalBinOp(n *ast.BinOpNode, ctx *Context) (complex128, error) {
	// Logical operators short-circuit, so the right side must not be
	// evaluated (and any error it would raise must not surface) unless
	// the left side already decided the result.
	switch n.Kind {
	case ast.And:
		left, err := Eval(n.Left, ctx)
		if err != nil {
			return 0, err
		}
		if left == 0 {
			return 0, nil
		}
		right, err := Eval(n.Right, ctx)
		if err != nil {
			return 0, err
		}
		return truthy(right), nil
	case ast.Or:
		left, err := Eval(n.Left, ctx)
		if err != nil {
			return 0, err
		}
		if left != 0 {
			return 1, nil
		}
		right, err := Eval(n.Right, ctx)
		if err != nil {
			return 0, err
		}
		return truthy(right), nil
	}

	left, err := Eval(n.Left, ctx)
	if err != nil {
		return 0, err
	}
	right, err := Eval(n.Right, ctx)
	if err != nil {
		return 0, err
	}

	switch n.Kind {
	case ast.Add:
		return left + right, nil
	case ast.Sub:
		return left - right, nil
	case ast.Mul:
		return left * right, nil
	case ast.Div:
		if right == 0 {
			return 0, exatherr.Domain("division by zero")
		}
		return left / right, nil
	case ast.Pow:
		return cxPow(left, right)
	case ast.Mod:
		if right == 0 {
			return 0, exatherr.Domain("modulo by zero")
		}
		if !isReal(right) {
			return 0, exatherr.ArgType("modulo only defined for real numbers")
		}
		if !isReal(left) {
			return 0, exatherr.ArgType("modulo only defined for real numbers")
		}
		return complex(math.Mod(real(left), real(right)), 0), nil
	case ast.Eq:
		return cmpOp(left, right, func(a, b float64) bool { return math.Abs(a-b) < eqTolerance })
	case ast.Ne:
		return cmpOp(left, right, func(a, b float64) bool { return math.Abs(a-b) >= eqTolerance })
	case ast.Lt:
		return cmpOp(left, right, func(a, b float64) bool { return a < b })
	case ast.Le:
		return cmpOp(left, right, func(a, b float64) bool { return a <= b })
	case ast.Gt:
		return cmpOp(left, right, func(a, b float64) bool { return a > b })
	case ast.Ge:
		return cmpOp(left, right, func(a, b float64) bool { return a >= b })
	default:
		return 0, exatherr.Parse("unknown binary operator")
	}
}

func truthy(z complex128) complex128 {
	if z != 0 {
		return 1
	}
	return 0
}

func cmpOp(left, right complex128, compare func(a, b float64) bool) (complex128, error) {
	if !isReal(left) || !isReal(right) {
		return 0, exatherr.ArgType("comparison operators only defined for real numbers")
	}
	if compare(real(left), real(right)) {
		return 1, nil
	}
	return 0, nil
}

// cxPow implements exponentiation via the principal branch of ln,
// matching z^w = exp(w·ln z), with the 0^w edge case carved out since
// ln(0) is undefined: 0^positive is 0, everything else is a domain
// error. An integer exponent on a real base is special-cased to
// repeated-square real arithmetic: cmplx.Pow routes even a real base
// through the complex logarithm, and a negative real base's principal
// branch picks up a spurious, tolerance-busting imaginary component
// ((-3)^21 via cmplx.Pow drifts by ~1e-5i) that real repeated squaring
// never introduces.
func cxPow(base, exponent complex128) (complex128, error) {
	if base == 0 {
		if real(exponent) > 0 {
			return 0, nil
		}
		return 0, exatherr.Domain("0^x undefined for x<=0")
	}
	if isReal(base) && isReal(exponent) {
		if n, ok := integerExponent(real(exponent)); ok {
			return complex(realIntPow(real(base), n), 0), nil
		}
	}
	return cmplx.Pow(base, exponent), nil
}

// integerExponent reports whether x is within toInteger's integrality
// tolerance of a whole number small enough to repeated-square without
// an unbounded number of iterations.
func integerExponent(x float64) (int64, bool) {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return 0, false
	}
	rounded := math.Round(x)
	if absF(x-rounded) > 1e-9 {
		return 0, false
	}
	if absF(rounded) > 1e15 {
		return 0, false
	}
	return int64(rounded), true
}

// realIntPow computes base^n by exponentiation by squaring, staying in
// real arithmetic throughout so sign is preserved exactly and no
// imaginary drift is ever introduced.
func realIntPow(base float64, n int64) float64 {
	neg := n < 0
	if neg {
		n = -n
	}
	result := 1.0
	b := base
	for n > 0 {
		if n&1 == 1 {
			result *= b
		}
		b *= b
		n >>= 1
	}
	if neg {
		return 1 / result
	}
	return result
}

func evalCall(n *ast.CallNode, ctx *Context) (complex128, error) {
	if fn, ok := ctx.Fns[n.Name]; ok {
		return evalUserCall(n, fn, ctx)
	}

	if n.Name == "if" {
		return evalIf(n, ctx)
	}

	argVals := make([]complex128, len(n.Args))
	for i, a := range n.Args {
		v, err := Eval(a, ctx)
		if err != nil {
			return 0, err
		}
		argVals[i] = v
	}
	return ctx.evalBuiltinCall(n.Name, argVals)
}

// evalIf evaluates only the branch its condition selects: the
// unchosen branch's errors must never surface, the same short-circuit
// rule evalBinOp applies to && and ||.
func evalIf(n *ast.CallNode, ctx *Context) (complex128, error) {
	if len(n.Args) != 3 {
		return 0, exatherr.ArgCount("if requires 3 arguments: if(condition, true_value, false_value)")
	}
	cond, err := Eval(n.Args[0], ctx)
	if err != nil {
		return 0, err
	}
	if cond != 0 {
		return Eval(n.Args[1], ctx)
	}
	return Eval(n.Args[2], ctx)
}

func evalUserCall(n *ast.CallNode, fn *FuncDef, ctx *Context) (complex128, error) {
	if len(n.Args) != len(fn.Params) {
		return 0, exatherr.ArgCount("%s() expects %d argument(s), got %d", n.Name, len(fn.Params), len(n.Args))
	}
	if err := ctx.enterCall(n.Name); err != nil {
		return 0, err
	}
	defer ctx.leaveCall(n.Name)

	bindings := make(map[string]complex128, len(fn.Params))
	for i, param := range fn.Params {
		v, err := Eval(n.Args[i], ctx)
		if err != nil {
			return 0, err
		}
		bindings[param] = v
	}

	callCtx := &Context{
		Vars:    ctx.withVars(bindings),
		Fns:     ctx.Fns,
		Angle:   ctx.Angle,
		calling: ctx.calling,
	}
	return Eval(fn.Body, callCtx)
}

// factorial computes n! for a non-negative integral n, saturating to
// +Inf past 170 the way float64 factorials naturally overflow.
func factorial(n float64) (float64, error) {
	if n < 0 || math.Trunc(n) != n {
		return 0, exatherr.Domain("factorial only defined for non-negative integers")
	}
	if n > 170 {
		return math.Inf(1), nil
	}
	result := 1.0
	for i := 2.0; i <= n; i++ {
		result *= i
	}
	return result, nil
}
