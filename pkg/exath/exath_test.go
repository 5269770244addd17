package exath

import (
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	got, err := Evaluate("2 + 3 * 4", Rad)
	if err != nil {
		t.Fatal(err)
	}
	if got != 14 {
		t.Errorf("Evaluate(2+3*4) = %v, want 14", got)
	}
}

func TestEvaluateComplexResultRejectedByEvaluate(t *testing.T) {
	if _, err := Evaluate("sqrt(-1)", Rad); err == nil {
		t.Fatal("expected Evaluate to reject a complex result")
	}
}

func TestEvaluateComplexAcceptsComplexResult(t *testing.T) {
	r, err := EvaluateComplex("sqrt(-1)", Rad)
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsComplex() || math.Abs(r.Im-1) > 1e-9 {
		t.Errorf("EvaluateComplex(sqrt(-1)) = %+v, want i", r)
	}
}

func TestEvaluateWithVars(t *testing.T) {
	r, err := EvaluateWithVars("x + 1", Rad, map[string]complex128{"x": 4})
	if err != nil {
		t.Fatal(err)
	}
	if r.Re != 5 {
		t.Errorf("got %+v, want Re=5", r)
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("1 + 2") {
		t.Error("expected 1 + 2 to be valid")
	}
	if IsValid("1 +") {
		t.Error("expected 1 + to be invalid")
	}
	if IsValid("sin(1") {
		t.Error("expected unclosed paren to be invalid")
	}
}

func TestSupportedFunctionsIncludesCoreSet(t *testing.T) {
	names := SupportedFunctions()
	want := map[string]bool{"sin": true, "sqrt": true, "gcd": true, "if": true}
	got := map[string]bool{}
	for _, n := range names {
		got[n] = true
	}
	for n := range want {
		if !got[n] {
			t.Errorf("SupportedFunctions() missing %q", n)
		}
	}
}

func TestSession(t *testing.T) {
	s := NewSession(Rad)
	if _, err := s.Eval("a = 5"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Eval("a * 2")
	if err != nil {
		t.Fatal(err)
	}
	if got != 10 {
		t.Errorf("got %v, want 10", got)
	}
}

func TestDerivIntegrateSumProd(t *testing.T) {
	d, err := Deriv("x^3", "x", 2, Rad)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d-12) > 1e-3 {
		t.Errorf("Deriv(x^3, x=2) = %v, want ~12", d)
	}

	i, err := Integrate("x", "x", 0, 4, Rad)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(i-8) > 1e-6 {
		t.Errorf("Integrate(x, 0, 4) = %v, want 8", i)
	}

	sum, err := Sum("1", "x", 1, 100, Rad)
	if err != nil {
		t.Fatal(err)
	}
	if sum != 100 {
		t.Errorf("Sum(1, 1, 100) = %v, want 100", sum)
	}

	prod, err := Prod("2", "x", 1, 3, Rad)
	if err != nil {
		t.Fatal(err)
	}
	if prod != 8 {
		t.Errorf("Prod(2, 1, 3) = %v, want 8", prod)
	}
}
