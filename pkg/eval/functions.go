package eval

import (
	"math"
	"math/cmplx"

	"github.com/wildfunctions/exath/pkg/angle"
	"github.com/wildfunctions/exath/pkg/exatherr"
)

// unaryBuiltins dispatches every single-argument built-in by name.
// Trig and hyperbolic functions route through math/cmplx, which
// already implements the same branch-cut formulas the rest of this
// table writes out by hand for functions cmplx has no analog for
// (deg/rad, sign, the rounding family).
var unaryBuiltins = map[string]func(complex128, angle.Mode) (complex128, error){
	"sin": func(z complex128, m angle.Mode) (complex128, error) {
		return cmplx.Sin(scaleAngle(z, m)), nil
	},
	"cos": func(z complex128, m angle.Mode) (complex128, error) {
		return cmplx.Cos(scaleAngle(z, m)), nil
	},
	"tan": func(z complex128, m angle.Mode) (complex128, error) {
		return cmplx.Tan(scaleAngle(z, m)), nil
	},
	"cot": func(z complex128, m angle.Mode) (complex128, error) {
		return 1 / cmplx.Tan(scaleAngle(z, m)), nil
	},
	"sec": func(z complex128, m angle.Mode) (complex128, error) {
		return 1 / cmplx.Cos(scaleAngle(z, m)), nil
	},
	"csc": func(z complex128, m angle.Mode) (complex128, error) {
		return 1 / cmplx.Sin(scaleAngle(z, m)), nil
	},

	"asin": func(z complex128, m angle.Mode) (complex128, error) {
		return unscaleAngle(cmplx.Asin(z), m), nil
	},
	"acos": func(z complex128, m angle.Mode) (complex128, error) {
		return unscaleAngle(cmplx.Acos(z), m), nil
	},
	"atan": func(z complex128, m angle.Mode) (complex128, error) {
		return unscaleAngle(cmplx.Atan(z), m), nil
	},
	"acot": func(z complex128, m angle.Mode) (complex128, error) {
		inv, err := reciprocal(z)
		if err != nil {
			return 0, err
		}
		return unscaleAngle(cmplx.Atan(inv), m), nil
	},
	"asec": func(z complex128, m angle.Mode) (complex128, error) {
		inv, err := reciprocal(z)
		if err != nil {
			return 0, err
		}
		return unscaleAngle(cmplx.Acos(inv), m), nil
	},
	"acsc": func(z complex128, m angle.Mode) (complex128, error) {
		inv, err := reciprocal(z)
		if err != nil {
			return 0, err
		}
		return unscaleAngle(cmplx.Asin(inv), m), nil
	},

	"sinh":  func(z complex128, _ angle.Mode) (complex128, error) { return cmplx.Sinh(z), nil },
	"cosh":  func(z complex128, _ angle.Mode) (complex128, error) { return cmplx.Cosh(z), nil },
	"tanh":  func(z complex128, _ angle.Mode) (complex128, error) { return cmplx.Tanh(z), nil },
	"coth":  func(z complex128, _ angle.Mode) (complex128, error) { return 1 / cmplx.Tanh(z), nil },
	"sech":  func(z complex128, _ angle.Mode) (complex128, error) { return 1 / cmplx.Cosh(z), nil },
	"csch":  func(z complex128, _ angle.Mode) (complex128, error) { return 1 / cmplx.Sinh(z), nil },
	"asinh": func(z complex128, _ angle.Mode) (complex128, error) { return cmplx.Asinh(z), nil },
	"acosh": func(z complex128, _ angle.Mode) (complex128, error) { return cmplx.Acosh(z), nil },
	"atanh": func(z complex128, _ angle.Mode) (complex128, error) { return cmplx.Atanh(z), nil },
	"acoth": func(z complex128, _ angle.Mode) (complex128, error) {
		inv, err := reciprocal(z)
		if err != nil {
			return 0, err
		}
		return cmplx.Atanh(inv), nil
	},
	"asech": func(z complex128, _ angle.Mode) (complex128, error) {
		inv, err := reciprocal(z)
		if err != nil {
			return 0, err
		}
		return cmplx.Acosh(inv), nil
	},
	"acsch": func(z complex128, _ angle.Mode) (complex128, error) {
		inv, err := reciprocal(z)
		if err != nil {
			return 0, err
		}
		return cmplx.Asinh(inv), nil
	},

	"exp": func(z complex128, _ angle.Mode) (complex128, error) { return cmplx.Exp(z), nil },
	"ln": func(z complex128, _ angle.Mode) (complex128, error) {
		if z == 0 {
			return 0, exatherr.Domain("ln undefined for 0")
		}
		return cmplx.Log(z), nil
	},
	"lg":   logBuiltin,
	"log":  logBuiltin,
	"sqrt": func(z complex128, _ angle.Mode) (complex128, error) { return cmplx.Sqrt(z), nil },
	"cbrt": func(z complex128, _ angle.Mode) (complex128, error) {
		return cmplx.Pow(z, complex(1.0/3.0, 0)), nil
	},
	"abs": func(z complex128, _ angle.Mode) (complex128, error) { return complex(cmplx.Abs(z), 0), nil },

	"floor": realOnlyUnary("floor", math.Floor),
	"ceil":  realOnlyUnary("ceil", math.Ceil),
	"round": realOnlyUnary("round", roundHalfToPosInf),
	"trunc": realOnlyUnary("trunc", math.Trunc),
	"frac":  realOnlyUnary("frac", func(x float64) float64 { return x - math.Trunc(x) }),
	"sign":  realOnlyUnary("sign", signum),
	"sgn":   realOnlyUnary("sgn", signum),

	"arg":  func(z complex128, _ angle.Mode) (complex128, error) { return complex(cmplx.Phase(z), 0), nil },
	"conj": func(z complex128, _ angle.Mode) (complex128, error) { return cmplx.Conj(z), nil },
	"real": func(z complex128, _ angle.Mode) (complex128, error) { return complex(real(z), 0), nil },
	"imag": func(z complex128, _ angle.Mode) (complex128, error) { return complex(imag(z), 0), nil },

	"deg": realOnlyUnary("deg", func(x float64) float64 { return x * 180 / math.Pi }),
	"rad": realOnlyUnary("rad", func(x float64) float64 { return x * math.Pi / 180 }),
}

func logBuiltin(z complex128, _ angle.Mode) (complex128, error) {
	if z == 0 {
		return 0, exatherr.Domain("ln undefined for 0")
	}
	return cmplx.Log(z) / complex(math.Log(10), 0), nil
}

// logBase evaluates log base `base` of z, backing the parser's
// LogBaseNode rather than the unaryBuiltins table since its base is
// carried on the node, not looked up by name.
func logBase(base float64, z complex128) (complex128, error) {
	if base <= 0 || base == 1 {
		return 0, exatherr.Domain("log base must be positive and not 1")
	}
	if z == 0 {
		return 0, exatherr.Domain("ln undefined for 0")
	}
	return cmplx.Log(z) / complex(math.Log(base), 0), nil
}

func scaleAngle(z complex128, m angle.Mode) complex128 {
	return complex(m.ToRadians(real(z)), imag(z))
}

func unscaleAngle(z complex128, m angle.Mode) complex128 {
	return complex(m.FromRadians(real(z)), imag(z))
}

func reciprocal(z complex128) (complex128, error) {
	if z == 0 {
		return 0, exatherr.Domain("division by zero")
	}
	return 1 / z, nil
}

// roundHalfToPosInf rounds to the nearest integer, ties rounding
// toward +∞ (round(0.5) = 1, round(-0.5) = 0), unlike math.Round's
// round-half-away-from-zero.
func roundHalfToPosInf(x float64) float64 {
	return math.Floor(x + 0.5)
}

func signum(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// realOnlyUnary wraps a real-valued math function as a builtin that
// rejects any argument with non-negligible imaginary part.
func realOnlyUnary(name string, f func(float64) float64) func(complex128, angle.Mode) (complex128, error) {
	return func(z complex128, _ angle.Mode) (complex128, error) {
		if !isReal(z) {
			return 0, exatherr.ArgType("%s is only defined for real numbers", name)
		}
		return complex(f(real(z)), 0), nil
	}
}

// isReal reports whether z's imaginary part is within tolerance of
// zero, the threshold the session model uses to treat a value as real
// for the purposes of type-checking real-only operations.
func isReal(z complex128) bool {
	return math.Abs(imag(z)) < 1e-12
}
