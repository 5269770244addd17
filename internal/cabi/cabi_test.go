package cabi

import (
	"testing"

	"github.com/wildfunctions/exath/pkg/angle"
)

func TestEvaluate(t *testing.T) {
	r := Evaluate("1 + 2", angle.Rad)
	if r.IsError || r.Re != 3 {
		t.Fatalf("Evaluate(1+2) = %+v, want Re=3", r)
	}
}

func TestEvaluateError(t *testing.T) {
	r := Evaluate("1 +", angle.Rad)
	if !r.IsError {
		t.Fatal("expected IsError for malformed input")
	}
}

func TestSessionLifecycle(t *testing.T) {
	h := SessionNew(angle.Rad)
	defer SessionFree(h)

	if r := SessionEval(h, "x = 5"); r.IsError {
		t.Fatalf("unexpected error: %s", r.ErrorMsg)
	}
	r := SessionEval(h, "x + 1")
	if r.IsError || r.Re != 6 {
		t.Fatalf("SessionEval(x+1) = %+v, want Re=6", r)
	}
}

func TestSessionEvalUnknownHandle(t *testing.T) {
	r := SessionEval(999999, "1")
	if !r.IsError {
		t.Fatal("expected error for unknown handle")
	}
}
