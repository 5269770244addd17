package session

import (
	"math/cmplx"
	"testing"

	"github.com/wildfunctions/exath/pkg/angle"
)

func assertSessionEval(t *testing.T, s *Session, line string, want complex128, tol float64) {
	t.Helper()
	got, err := s.Eval(line)
	if err != nil {
		t.Fatalf("Eval(%q) error: %v", line, err)
	}
	if cmplx.Abs(got-want) > tol {
		t.Errorf("Eval(%q) = %v, want %v", line, got, want)
	}
}

func TestSessionAssignmentPersists(t *testing.T) {
	s := New(angle.Rad)
	assertSessionEval(t, s, "a = 5", 5, 0)
	assertSessionEval(t, s, "b = sqrt(a)", complex(2.2360679774997896, 0), 1e-9)
	assertSessionEval(t, s, "a + b", 7.23606797749979, 1e-9)
}

func TestSessionFunctionDef(t *testing.T) {
	s := New(angle.Rad)
	assertSessionEval(t, s, "f(x) = x^2 + 1", 0, 0)
	assertSessionEval(t, s, "f(4)", 17, 0)
}

func TestSessionFunctionDefAllowsForwardReference(t *testing.T) {
	s := New(angle.Rad)
	assertSessionEval(t, s, "f(x) = x + y", 0, 0)
	if _, err := s.Eval("f(1)"); err == nil {
		t.Fatal("expected error: y is not yet defined when f is called")
	}
	assertSessionEval(t, s, "y = 5", 5, 0)
	assertSessionEval(t, s, "f(1)", 6, 0)
}

func TestSessionCannotShadowBuiltin(t *testing.T) {
	s := New(angle.Rad)
	if _, err := s.Eval("sin = 5"); err == nil {
		t.Fatal("expected error assigning to built-in name sin")
	}
}

func TestSessionFunctionDefMayShadowBuiltinOfSameArity(t *testing.T) {
	s := New(angle.Rad)
	// sin is a fixed-arity-1 built-in; a one-parameter redefinition
	// matches that arity and is allowed to shadow it.
	assertSessionEval(t, s, "sin(x) = x * 2", 0, 0)
	assertSessionEval(t, s, "sin(3)", 6, 0)
}

func TestSessionFunctionDefRejectsBuiltinOfDifferentArity(t *testing.T) {
	s := New(angle.Rad)
	if _, err := s.Eval("sin(x, y) = x + y"); err == nil {
		t.Fatal("expected error: sin takes 1 argument, redefinition takes 2")
	}
}

func TestSessionFunctionDefCannotShadowVariadicBuiltin(t *testing.T) {
	s := New(angle.Rad)
	if _, err := s.Eval("min(x) = x"); err == nil {
		t.Fatal("expected error: min has no fixed arity, so it can never be shadowed")
	}
}

func TestSessionVarLifecycle(t *testing.T) {
	s := New(angle.Rad)
	if _, err := s.Eval("x = 1"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Var("x"); !ok {
		t.Fatal("expected x to be set")
	}
	s.RemoveVar("x")
	if _, ok := s.Var("x"); ok {
		t.Fatal("expected x to be removed")
	}
}

func TestSessionFnLifecycle(t *testing.T) {
	s := New(angle.Rad)
	if _, err := s.Eval("f(x) = x"); err != nil {
		t.Fatal(err)
	}
	names := s.FnNames()
	if len(names) != 1 || names[0] != "f" {
		t.Fatalf("FnNames() = %v, want [f]", names)
	}
	s.RemoveFn("f")
	if len(s.FnNames()) != 0 {
		t.Fatal("expected f to be removed")
	}
}

func TestSessionFunctionRedefinitionAllowed(t *testing.T) {
	s := New(angle.Rad)
	assertSessionEval(t, s, "f(x) = x", 0, 0)
	assertSessionEval(t, s, "f(x) = x^2", 0, 0)
	assertSessionEval(t, s, "f(3)", 9, 0)
}

func TestSessionVarNamesReflectsInsertionOrder(t *testing.T) {
	s := New(angle.Rad)
	assertSessionEval(t, s, "b = 1", 1, 0)
	assertSessionEval(t, s, "a = 2", 2, 0)
	names := s.VarNames()
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Fatalf("VarNames() = %v, want [b a]", names)
	}
}

func TestSessionVarNamesFiltersRemovals(t *testing.T) {
	s := New(angle.Rad)
	assertSessionEval(t, s, "a = 1", 1, 0)
	assertSessionEval(t, s, "b = 2", 2, 0)
	assertSessionEval(t, s, "c = 3", 3, 0)
	s.RemoveVar("b")
	names := s.VarNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "c" {
		t.Fatalf("VarNames() = %v, want [a c]", names)
	}
}

func TestSessionVarNamesReassignmentKeepsPosition(t *testing.T) {
	s := New(angle.Rad)
	assertSessionEval(t, s, "a = 1", 1, 0)
	assertSessionEval(t, s, "b = 2", 2, 0)
	assertSessionEval(t, s, "a = 9", 9, 0)
	names := s.VarNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("VarNames() = %v, want [a b]", names)
	}
}

func TestSessionFnNamesReflectsInsertionOrder(t *testing.T) {
	s := New(angle.Rad)
	assertSessionEval(t, s, "g(x) = x", 0, 0)
	assertSessionEval(t, s, "f(x) = x", 0, 0)
	names := s.FnNames()
	if len(names) != 2 || names[0] != "g" || names[1] != "f" {
		t.Fatalf("FnNames() = %v, want [g f]", names)
	}
}

func TestSessionAngleMode(t *testing.T) {
	s := New(angle.Deg)
	assertSessionEval(t, s, "sin(90)", 1, 1e-9)
}
