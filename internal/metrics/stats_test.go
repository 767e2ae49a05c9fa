package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"softmax-forge/internal/config"
)

func TestCompareAgreement(t *testing.T) {
	a := Result{Loss: 1.2, Grad: mat.NewDense(2, 2, []float64{1, 2, 3, 4})}
	b := Result{Loss: 1.2 + 1e-9, Grad: mat.NewDense(2, 2, []float64{1, 2, 3, 4 + 1e-9})}
	snap := Compare(a, b, config.DefaultTolerance())
	if !snap.Agree {
		t.Fatalf("expected agreement, got %+v", snap)
	}
	if math.Abs(snap.MaxAbsDiff-1e-9) > 1e-12 {
		t.Fatalf("unexpected max abs diff %g", snap.MaxAbsDiff)
	}
}

func TestCompareDisagreement(t *testing.T) {
	a := Result{Loss: 1, Grad: mat.NewDense(1, 2, []float64{0, 0})}
	b := Result{Loss: 1, Grad: mat.NewDense(1, 2, []float64{3, 4})}
	snap := Compare(a, b, config.DefaultTolerance())
	if snap.Agree {
		t.Fatal("expected disagreement")
	}
	if math.Abs(snap.GradFroDiff-5) > 1e-12 {
		t.Fatalf("expected frobenius diff 5, got %f", snap.GradFroDiff)
	}
	if snap.MaxAbsDiff != 4 {
		t.Fatalf("expected max abs diff 4, got %f", snap.MaxAbsDiff)
	}
}

func TestCompareShapeMismatch(t *testing.T) {
	a := Result{Grad: mat.NewDense(1, 2, nil)}
	b := Result{Grad: mat.NewDense(2, 1, nil)}
	snap := Compare(a, b, config.DefaultTolerance())
	if snap.Agree || !math.IsInf(snap.GradFroDiff, 1) {
		t.Fatalf("expected shape mismatch to disagree, got %+v", snap)
	}
}

func TestRelError(t *testing.T) {
	if RelError(0, 0) != 0 {
		t.Fatal("expected zero relative error for zeros")
	}
	if got := RelError(1, 3); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("expected 0.5, got %f", got)
	}
}
