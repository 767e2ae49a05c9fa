package model

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidInput is returned, wrapped with details, when the weights, batch
// or regularization strength cannot be evaluated.
var ErrInvalidInput = errors.New("invalid input")

// shape holds the dimensions shared by both loss forms.
type shape struct {
	n, d, c int
}

func validate(w *mat.Dense, batch Batch, reg float64) (shape, error) {
	if w == nil {
		return shape{}, errors.Wrap(ErrInvalidInput, "weights are nil")
	}
	if batch.Inputs == nil {
		return shape{}, errors.Wrap(ErrInvalidInput, "batch inputs are nil")
	}
	if w.IsEmpty() || batch.Inputs.IsEmpty() {
		return shape{}, errors.Wrap(ErrInvalidInput, "empty matrix")
	}
	d, c := w.Dims()
	n, xd := batch.Inputs.Dims()
	if xd != d {
		return shape{}, errors.Wrapf(ErrInvalidInput, "inputs have %d features but weights have %d rows", xd, d)
	}
	if len(batch.Labels) != n {
		return shape{}, errors.Wrapf(ErrInvalidInput, "got %d labels for %d examples", len(batch.Labels), n)
	}
	for i, label := range batch.Labels {
		if label < 0 || label >= c {
			return shape{}, errors.Wrapf(ErrInvalidInput, "labels[%d] = %d outside [0, %d)", i, label, c)
		}
	}
	if reg < 0 || math.IsNaN(reg) || math.IsInf(reg, 0) {
		return shape{}, errors.Wrapf(ErrInvalidInput, "regularization strength %v must be finite and >= 0", reg)
	}
	return shape{n: n, d: d, c: c}, nil
}
