package model

import (
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const initScale = 1e-4

// Classifier is a linear softmax classifier over D features and C classes.
// It holds the weights for a caller-driven training loop; the caller applies
// gradient updates directly to W.
type Classifier struct {
	W *mat.Dense // D x C
}

// NewClassifier constructs the model with small Gaussian weights.
func NewClassifier(numFeatures, numClasses int, seed int64) (*Classifier, error) {
	if numFeatures <= 0 {
		return nil, errors.Errorf("classifier: features must be > 0 (got %d)", numFeatures)
	}
	if numClasses <= 0 {
		return nil, errors.Errorf("classifier: classes must be > 0 (got %d)", numClasses)
	}
	rng := rand.New(rand.NewSource(seed))
	weights := make([]float64, numFeatures*numClasses)
	for i := range weights {
		weights[i] = rng.NormFloat64() * initScale
	}
	return &Classifier{W: mat.NewDense(numFeatures, numClasses, weights)}, nil
}

// Loss evaluates the regularized softmax loss and its gradient for batch.
func (m *Classifier) Loss(batch Batch, reg float64) (float64, *mat.Dense, error) {
	return LossVectorized(m.W, batch, reg)
}

// Scores returns the N x C class scores inputs · W.
func (m *Classifier) Scores(inputs *mat.Dense) (*mat.Dense, error) {
	if err := m.checkInputs(inputs); err != nil {
		return nil, err
	}
	n, _ := inputs.Dims()
	_, c := m.W.Dims()
	scores := mat.NewDense(n, c, nil)
	scores.Mul(inputs, m.W)
	return scores, nil
}

// Probabilities returns the row-wise softmax of the class scores.
func (m *Classifier) Probabilities(inputs *mat.Dense) (*mat.Dense, error) {
	scores, err := m.Scores(inputs)
	if err != nil {
		return nil, err
	}
	n, _ := scores.Dims()
	for i := 0; i < n; i++ {
		row := scores.RawRowView(i)
		copy(row, Softmax(row))
	}
	return scores, nil
}

// Predict returns the highest scoring class for each input row.
func (m *Classifier) Predict(inputs *mat.Dense) ([]int, error) {
	scores, err := m.Scores(inputs)
	if err != nil {
		return nil, err
	}
	n, _ := scores.Dims()
	labels := make([]int, n)
	for i := range labels {
		labels[i] = floats.MaxIdx(scores.RawRowView(i))
	}
	return labels, nil
}

func (m *Classifier) checkInputs(inputs *mat.Dense) error {
	if m.W == nil || m.W.IsEmpty() {
		return errors.Wrap(ErrInvalidInput, "classifier has no weights")
	}
	if inputs == nil || inputs.IsEmpty() {
		return errors.Wrap(ErrInvalidInput, "inputs are empty")
	}
	d, _ := m.W.Dims()
	if _, xd := inputs.Dims(); xd != d {
		return errors.Wrapf(ErrInvalidInput, "inputs have %d features but weights have %d rows", xd, d)
	}
	return nil
}
