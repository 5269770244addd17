package eval

import (
	"math"
	"math/big"
	"sort"

	"github.com/wildfunctions/exath/pkg/exatherr"
)

// special holds the built-ins whose arity isn't the uniform "exactly
// one complex argument" shape that unaryBuiltins covers: control flow,
// the integer-domain pair gcd/lcm, and the variadic real-valued
// reducers min/max (arity -1, meaning "no fixed arity" — see
// BuiltinArity).
var special = map[string]int{
	"if": 3, "clamp": 3, "gcd": 2, "lcm": 2,
	"min": -1, "max": -1,
}

// BuiltinScope is an ast.Scope containing only the built-in function
// set, with no user-defined functions — the scope Deriv/Integrate/Sum/Prod
// parse their expression argument against, since those methods
// evaluate a bare single-variable expression outside any session.
type BuiltinScope struct{}

func (BuiltinScope) IsCallable(name string) bool          { return IsBuiltin(name) }
func (BuiltinScope) IsBuiltin(name string) bool           { return IsBuiltin(name) }
func (BuiltinScope) BuiltinArity(name string) (int, bool) { return BuiltinArity(name) }

// IsBuiltin reports whether name is any reserved built-in — a unary
// math function or a special-form function — so a session can refuse
// to let it be shadowed by an assignment or function definition.
func IsBuiltin(name string) bool {
	if _, ok := unaryBuiltins[name]; ok {
		return true
	}
	_, ok := special[name]
	return ok
}

// BuiltinArity reports the fixed parameter count of a built-in
// function, if it has one. A user function may shadow a built-in only
// when its own parameter count matches this arity (spec's "same arity
// semantics" carve-out); ok is false both for names that aren't
// built-ins and for built-ins with no single fixed arity (min, max),
// which therefore can never be legally shadowed.
func BuiltinArity(name string) (int, bool) {
	if _, ok := unaryBuiltins[name]; ok {
		return 1, true
	}
	if n, ok := special[name]; ok && n >= 0 {
		return n, true
	}
	return 0, false
}

// SupportedFunctions returns every built-in function name, sorted,
// for a host to present to a user (e.g. autocomplete, a help screen).
func SupportedFunctions() []string {
	names := make([]string, 0, len(unaryBuiltins)+len(special))
	for name := range unaryBuiltins {
		names = append(names, name)
	}
	for name := range special {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// evalBuiltinCall dispatches a Call node whose name is not a
// user-defined function: either a special multi-argument form or a
// single-argument unary math function.
func (c *Context) evalBuiltinCall(name string, argVals []complex128) (complex128, error) {
	switch name {
	case "min":
		return reduceReal(argVals, "min", func(best, v float64) float64 {
			if v < best {
				return v
			}
			return best
		})

	case "max":
		return reduceReal(argVals, "max", func(best, v float64) float64 {
			if v > best {
				return v
			}
			return best
		})

	case "clamp":
		if len(argVals) != 3 {
			return 0, exatherr.ArgCount("clamp requires 3 arguments: clamp(x, min, max)")
		}
		x, lo, hi, err := realTriple(argVals, "clamp")
		if err != nil {
			return 0, err
		}
		v := x
		if v < lo {
			v = lo
		}
		if v > hi {
			v = hi
		}
		return complex(v, 0), nil

	case "gcd":
		if len(argVals) != 2 {
			return 0, exatherr.ArgCount("gcd requires 2 arguments")
		}
		a, b, err := integerPair(argVals, "gcd")
		if err != nil {
			return 0, err
		}
		return complex(float64(gcd(abs64(a), abs64(b))), 0), nil

	case "lcm":
		if len(argVals) != 2 {
			return 0, exatherr.ArgCount("lcm requires 2 arguments")
		}
		a, b, err := integerPair(argVals, "lcm")
		if err != nil {
			return 0, err
		}
		divisor := gcd(abs64(a), abs64(b))
		if divisor == 0 {
			return 0, nil
		}
		result := new(big.Int).Mul(big.NewInt(a/divisor), big.NewInt(b))
		result.Abs(result)
		f, _ := new(big.Float).SetInt(result).Float64()
		return complex(f, 0), nil

	default:
		fn, ok := unaryBuiltins[name]
		if !ok {
			return 0, exatherr.Undefined("unknown function: %s", name)
		}
		if len(argVals) != 1 {
			return 0, exatherr.ArgCount("%q requires exactly 1 argument", name)
		}
		return fn(argVals[0], c.Angle)
	}
}

func reduceReal(argVals []complex128, name string, pick func(best, v float64) float64) (complex128, error) {
	if len(argVals) == 0 {
		return 0, exatherr.ArgCount("%s requires at least one argument", name)
	}
	reals := make([]float64, len(argVals))
	for i, v := range argVals {
		if !isReal(v) {
			return 0, exatherr.ArgType("%s only defined for real arguments", name)
		}
		reals[i] = real(v)
	}
	best := reals[0]
	for _, v := range reals[1:] {
		best = pick(best, v)
	}
	return complex(best, 0), nil
}

func realTriple(argVals []complex128, name string) (float64, float64, float64, error) {
	for _, v := range argVals {
		if !isReal(v) {
			return 0, 0, 0, exatherr.ArgType("%s only defined for real arguments", name)
		}
	}
	return real(argVals[0]), real(argVals[1]), real(argVals[2]), nil
}

func integerPair(argVals []complex128, name string) (int64, int64, error) {
	a, err := toInteger(argVals[0], name)
	if err != nil {
		return 0, 0, err
	}
	b, err := toInteger(argVals[1], name)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// toInteger converts a complex value to an int64, rejecting anything
// non-real, non-finite, non-integral (within tolerance), or too large
// to represent exactly as an int64.
func toInteger(z complex128, name string) (int64, error) {
	if !isReal(z) {
		return 0, exatherr.ArgType("%s requires real arguments", name)
	}
	x := real(z)
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return 0, exatherr.ArgType("%s requires finite integer arguments", name)
	}
	rounded := math.Round(x)
	if absF(x-rounded) > 1e-9 {
		return 0, exatherr.ArgType("%s requires integer arguments, got %v", name, x)
	}
	if absF(rounded) >= 1<<63 {
		return 0, exatherr.Overflow("%s argument too large for integer arithmetic", name)
	}
	return int64(rounded), nil
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
