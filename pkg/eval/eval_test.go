package eval

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/wildfunctions/exath/pkg/angle"
	"github.com/wildfunctions/exath/pkg/ast"
)

func mustParse(t *testing.T, src string, scope ast.Scope) ast.Node {
	t.Helper()
	node, err := ast.Parse(src, scope)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return node
}

func assertEval(t *testing.T, ctx *Context, src string, want complex128, tol float64) {
	t.Helper()
	node := mustParse(t, src, testScope{ctx: ctx})
	got, err := Eval(node, ctx)
	if err != nil {
		t.Fatalf("Eval(%q) error: %v", src, err)
	}
	if cmplx.Abs(got-want) > tol {
		t.Errorf("Eval(%q) = %v, want %v", src, got, want)
	}
}

// testScope wires a Context's variables and functions into ast.Scope
// for tests that need implicit-multiplication disambiguation.
type testScope struct{ ctx *Context }

func (s testScope) IsCallable(name string) bool {
	if s.ctx != nil {
		if _, ok := s.ctx.Fns[name]; ok {
			return true
		}
	}
	return IsBuiltin(name)
}
func (s testScope) IsBuiltin(name string) bool           { return IsBuiltin(name) }
func (s testScope) BuiltinArity(name string) (int, bool) { return BuiltinArity(name) }

func newCtx() *Context { return NewContext(angle.Rad) }

func TestEvalArithmetic(t *testing.T) {
	ctx := newCtx()
	assertEval(t, ctx, "1 + 2 * 3", 7, 0)
	assertEval(t, ctx, "(1 + 2) * 3", 9, 0)
	assertEval(t, ctx, "2^10", 1024, 1e-9)
	assertEval(t, ctx, "-2^2", -4, 1e-9)
	assertEval(t, ctx, "7 mod 3", 1, 1e-9)
}

func TestEvalNegativeRealBaseIntegerExponentStaysReal(t *testing.T) {
	ctx := newCtx()
	cases := []struct {
		src  string
		want float64
	}{
		{"(-3)^21", -10460353203},
		{"(-3)^50", 717897987691852588770249},
		{"(-2)^3", -8},
	}
	for _, c := range cases {
		node := mustParse(t, c.src, testScope{ctx: ctx})
		got, err := Eval(node, ctx)
		if err != nil {
			t.Fatalf("Eval(%q) error: %v", c.src, err)
		}
		if imag(got) != 0 {
			t.Errorf("Eval(%q) = %v, want exactly zero imaginary part, got %v", c.src, got, imag(got))
		}
		if math.Abs(real(got)-c.want) > math.Abs(c.want)*1e-9 {
			t.Errorf("Eval(%q) = %v, want %v", c.src, real(got), c.want)
		}
	}
}

func TestEvalComparisonsAndLogic(t *testing.T) {
	ctx := newCtx()
	assertEval(t, ctx, "1 < 2", 1, 0)
	assertEval(t, ctx, "1 > 2", 0, 0)
	assertEval(t, ctx, "1 == 1", 1, 0)
	assertEval(t, ctx, "1 != 1", 0, 0)
	assertEval(t, ctx, "1 && 0", 0, 0)
	assertEval(t, ctx, "1 || 0", 1, 0)
	assertEval(t, ctx, "!0", 1, 0)
	assertEval(t, ctx, "!1", 0, 0)
}

func TestEvalShortCircuitSkipsErroringSide(t *testing.T) {
	ctx := newCtx()
	// the right side divides by zero; short-circuit means it's never
	// evaluated for "0 && ..." and "1 || ...".
	assertEval(t, ctx, "0 && (1/0)", 0, 0)
	assertEval(t, ctx, "1 || (1/0)", 1, 0)
}

func TestEvalFactorial(t *testing.T) {
	ctx := newCtx()
	assertEval(t, ctx, "5!", 120, 0)
	assertEval(t, ctx, "0!", 1, 0)
	assertEval(t, ctx, "2^3!", 64, 1e-9)
}

func TestEvalAbsAndComplex(t *testing.T) {
	ctx := newCtx()
	assertEval(t, ctx, "|3 - 5|", 2, 1e-9)
	assertEval(t, ctx, "sqrt(-4)", complex(0, 2), 1e-9)
}

func TestEvalVariablesAndAssignmentSemantics(t *testing.T) {
	ctx := newCtx()
	ctx.Vars["x"] = complex(3, 0)
	assertEval(t, ctx, "x + 1", 4, 0)
}

func TestEvalUndefinedVariable(t *testing.T) {
	ctx := newCtx()
	node := mustParse(t, "y", testScope{ctx: ctx})
	if _, err := Eval(node, ctx); err == nil {
		t.Fatal("expected error for undefined variable")
	}
}

func TestEvalConstants(t *testing.T) {
	ctx := newCtx()
	assertEval(t, ctx, "pi", math.Pi, 1e-12)
	assertEval(t, ctx, "e", math.E, 1e-12)
}

func TestEvalUserFunctionCall(t *testing.T) {
	ctx := newCtx()
	body := mustParse(t, "x^2 + 1", testScope{ctx: ctx})
	ctx.Fns["f"] = &FuncDef{Params: []string{"x"}, Body: body}
	assertEval(t, ctx, "f(3)", 10, 1e-9)
}

func TestEvalRecursionRejected(t *testing.T) {
	ctx := newCtx()
	body := mustParse(t, "f(x) + 1", testScope{ctx: ctx})
	ctx.Fns["f"] = &FuncDef{Params: []string{"x"}, Body: body}
	node := mustParse(t, "f(1)", testScope{ctx: ctx})
	if _, err := Eval(node, ctx); err == nil {
		t.Fatal("expected recursion to be rejected")
	}
}

func TestEvalDivisionAndModByZero(t *testing.T) {
	ctx := newCtx()
	node := mustParse(t, "1/0", testScope{ctx: ctx})
	if _, err := Eval(node, ctx); err == nil {
		t.Fatal("expected division-by-zero error")
	}
	node = mustParse(t, "1 mod 0", testScope{ctx: ctx})
	if _, err := Eval(node, ctx); err == nil {
		t.Fatal("expected modulo-by-zero error")
	}
}

func TestEvalRealOnlyRejectsComplex(t *testing.T) {
	ctx := newCtx()
	node := mustParse(t, "floor(sqrt(-1))", testScope{ctx: ctx})
	if _, err := Eval(node, ctx); err == nil {
		t.Fatal("expected floor to reject a complex argument")
	}
}

func TestEvalMinMaxClampGcdLcm(t *testing.T) {
	ctx := newCtx()
	assertEval(t, ctx, "min(3, 1, 2)", 1, 0)
	assertEval(t, ctx, "max(3, 1, 2)", 3, 0)
	assertEval(t, ctx, "clamp(5, 0, 3)", 3, 0)
	assertEval(t, ctx, "gcd(12, 18)", 6, 0)
	assertEval(t, ctx, "lcm(4, 6)", 12, 0)
}

func TestEvalRoundHalfToPosInf(t *testing.T) {
	ctx := newCtx()
	assertEval(t, ctx, "round(0.5)", 1, 0)
	assertEval(t, ctx, "round(-0.5)", 0, 0)
	assertEval(t, ctx, "round(2.4)", 2, 0)
	assertEval(t, ctx, "round(-2.6)", -3, 0)
}

func TestEvalIf(t *testing.T) {
	ctx := newCtx()
	assertEval(t, ctx, "if(1, 10, 20)", 10, 0)
	assertEval(t, ctx, "if(0, 10, 20)", 20, 0)
}

func TestEvalIfShortCircuitsUnchosenBranch(t *testing.T) {
	ctx := newCtx()
	assertEval(t, ctx, "if(1, 1, 1/0)", 1, 0)
	assertEval(t, ctx, "if(0, 1/0, 1)", 1, 0)
}
