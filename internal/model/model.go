package model

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Batch represents a minibatch of features and labels.
type Batch struct {
	Inputs *mat.Dense // N x D
	Labels []int      // N, each in [0, C)
}

// NewBatch copies row-major inputs into a Batch.
func NewBatch(inputs [][]float64, labels []int) (Batch, error) {
	if len(inputs) == 0 {
		return Batch{}, errors.Wrap(ErrInvalidInput, "batch has no examples")
	}
	dim := len(inputs[0])
	if dim == 0 {
		return Batch{}, errors.Wrap(ErrInvalidInput, "batch has zero features")
	}
	data := make([]float64, 0, len(inputs)*dim)
	for i, row := range inputs {
		if len(row) != dim {
			return Batch{}, errors.Wrapf(ErrInvalidInput, "inputs[%d] has %d features, want %d", i, len(row), dim)
		}
		data = append(data, row...)
	}
	return Batch{
		Inputs: mat.NewDense(len(inputs), dim, data),
		Labels: append([]int(nil), labels...),
	}, nil
}

// Size returns the number of examples in the batch.
func (b Batch) Size() int {
	if b.Inputs == nil {
		return 0
	}
	n, _ := b.Inputs.Dims()
	return n
}

// LossFunc computes the loss and the gradient with respect to w for a batch.
// Implementations never modify w or batch and return a freshly allocated
// gradient with the same shape as w.
type LossFunc func(w *mat.Dense, batch Batch, reg float64) (float64, *mat.Dense, error)
