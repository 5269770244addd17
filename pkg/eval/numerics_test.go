package eval

import (
	"math"
	"testing"

	"github.com/wildfunctions/exath/pkg/angle"
)

func TestDeriv(t *testing.T) {
	got, err := Deriv("x^2", "x", 3, angle.Rad)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-6) > 1e-4 {
		t.Errorf("Deriv(x^2, x=3) = %v, want ~6", got)
	}
}

func TestDerivOfSin(t *testing.T) {
	got, err := Deriv("sin(x)", "x", 0, angle.Rad)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-1) > 1e-4 {
		t.Errorf("Deriv(sin(x), x=0) = %v, want ~1", got)
	}
}

func TestIntegrate(t *testing.T) {
	got, err := Integrate("x^2", "x", 0, 3, angle.Rad)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-9) > 1e-6 {
		t.Errorf("Integrate(x^2, 0, 3) = %v, want 9", got)
	}
}

func TestSum(t *testing.T) {
	got, err := Sum("x", "x", 1, 10, angle.Rad)
	if err != nil {
		t.Fatal(err)
	}
	if got != 55 {
		t.Errorf("Sum(x, 1, 10) = %v, want 55", got)
	}
}

func TestProd(t *testing.T) {
	got, err := Prod("x", "x", 1, 5, angle.Rad)
	if err != nil {
		t.Fatal(err)
	}
	if got != 120 {
		t.Errorf("Prod(x, 1, 5) = %v, want 120", got)
	}
}

func TestSumRangeTooLarge(t *testing.T) {
	_, err := Sum("x", "x", 0, 20_000_000, angle.Rad)
	if err == nil {
		t.Fatal("expected range-too-large error")
	}
}

func TestIntegrateComplexResultRejected(t *testing.T) {
	_, err := Integrate("sqrt(x)", "x", -1, 1, angle.Rad)
	if err == nil {
		t.Fatal("expected complex-result error for sqrt of a negative x")
	}
}
