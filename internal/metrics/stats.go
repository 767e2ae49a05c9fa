package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"

	"softmax-forge/internal/config"
)

// Result is the output of one loss evaluation.
type Result struct {
	Loss float64
	Grad *mat.Dense
}

// Snapshot represents loggable agreement metrics between two results.
type Snapshot struct {
	LossDiff    float64
	GradFroDiff float64 // Frobenius norm of the gradient difference
	MaxAbsDiff  float64
	Agree       bool
}

// Compare measures how closely b matches a. Results with gradients of
// different shapes never agree and report infinite gradient differences.
func Compare(a, b Result, tol config.Tolerance) Snapshot {
	snap := Snapshot{LossDiff: math.Abs(a.Loss - b.Loss)}
	agree := scalar.EqualWithinAbsOrRel(a.Loss, b.Loss, tol.Abs, tol.Rel)

	if a.Grad == nil || b.Grad == nil {
		snap.GradFroDiff = math.Inf(1)
		snap.MaxAbsDiff = math.Inf(1)
		return snap
	}
	ar, ac := a.Grad.Dims()
	br, bc := b.Grad.Dims()
	if ar != br || ac != bc {
		snap.GradFroDiff = math.Inf(1)
		snap.MaxAbsDiff = math.Inf(1)
		return snap
	}

	var diff mat.Dense
	diff.Sub(a.Grad, b.Grad)
	snap.GradFroDiff = mat.Norm(&diff, 2)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			av, bv := a.Grad.At(i, j), b.Grad.At(i, j)
			if d := math.Abs(av - bv); d > snap.MaxAbsDiff {
				snap.MaxAbsDiff = d
			}
			if !scalar.EqualWithinAbsOrRel(av, bv, tol.Abs, tol.Rel) {
				agree = false
			}
		}
	}
	snap.Agree = agree
	return snap
}

// RelError is the symmetric relative error |a-b| / (|a|+|b|), zero when both
// values are zero.
func RelError(a, b float64) float64 {
	denom := math.Abs(a) + math.Abs(b)
	if denom == 0 {
		return 0
	}
	return math.Abs(a-b) / denom
}
