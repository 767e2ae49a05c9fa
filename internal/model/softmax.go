package model

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Softmax returns the probability distribution of a score vector. The maximum
// score is subtracted before exponentiating so large scores cannot overflow.
func Softmax(scores []float64) []float64 {
	out := make([]float64, len(scores))
	if len(scores) == 0 {
		return out
	}
	stableSoftmax(out, scores)
	return out
}

// stableSoftmax writes softmax(scores) into dst and returns the log of the
// normalizer, max(scores) + log(sum(exp(scores - max))). The loss of a class
// is logNorm - scores[class], which stays finite even when its probability
// underflows to zero.
func stableSoftmax(dst, scores []float64) (logNorm float64) {
	maxScore := floats.Max(scores)
	sum := 0.0
	for i, v := range scores {
		e := math.Exp(v - maxScore)
		dst[i] = e
		sum += e
	}
	floats.Scale(1/sum, dst)
	return maxScore + math.Log(sum)
}

// LossNaive computes the softmax loss and gradient one example at a time.
func LossNaive(w *mat.Dense, batch Batch, reg float64) (float64, *mat.Dense, error) {
	sh, err := validate(w, batch, reg)
	if err != nil {
		return 0, nil, err
	}

	loss := 0.0
	dW := mat.NewDense(sh.d, sh.c, nil)
	scores := make([]float64, sh.c)
	probs := make([]float64, sh.c)

	for i := 0; i < sh.n; i++ {
		x := batch.Inputs.RawRowView(i)
		for c := 0; c < sh.c; c++ {
			sum := 0.0
			for j := 0; j < sh.d; j++ {
				sum += x[j] * w.At(j, c)
			}
			scores[c] = sum
		}
		label := batch.Labels[i]
		logNorm := stableSoftmax(probs, scores)
		loss += logNorm - scores[label]

		// dW[:, c] += x * (p[c] - 1{c == label})
		probs[label] -= 1
		for j := 0; j < sh.d; j++ {
			floats.AddScaled(dW.RawRowView(j), x[j], probs)
		}
	}

	invN := 1 / float64(sh.n)
	loss *= invN
	sumSq := 0.0
	for j := 0; j < sh.d; j++ {
		wRow := w.RawRowView(j)
		gRow := dW.RawRowView(j)
		for c, v := range wRow {
			sumSq += v * v
			gRow[c] = gRow[c]*invN + reg*v
		}
	}
	loss += 0.5 * reg * sumSq

	return loss, dW, nil
}

// LossVectorized computes the same loss and gradient as LossNaive using
// whole-batch matrix operations.
func LossVectorized(w *mat.Dense, batch Batch, reg float64) (float64, *mat.Dense, error) {
	sh, err := validate(w, batch, reg)
	if err != nil {
		return 0, nil, err
	}

	scores := mat.NewDense(sh.n, sh.c, nil)
	scores.Mul(batch.Inputs, w)

	maxes := make([]float64, sh.n)
	for i := range maxes {
		maxes[i] = floats.Max(scores.RawRowView(i))
	}
	scores.Apply(func(i, _ int, v float64) float64 { return v - maxes[i] }, scores)

	probs := mat.NewDense(sh.n, sh.c, nil)
	probs.Apply(func(_, _ int, v float64) float64 { return math.Exp(v) }, scores)

	ones := mat.NewVecDense(sh.c, nil)
	for c := 0; c < sh.c; c++ {
		ones.SetVec(c, 1)
	}
	sums := mat.NewVecDense(sh.n, nil)
	sums.MulVec(probs, ones)
	probs.Apply(func(i, _ int, v float64) float64 { return v / sums.AtVec(i) }, probs)

	// -log p[i, y[i]] = log(sum_i) - shifted[i, y[i]]
	correct := make([]float64, sh.n)
	for i, label := range batch.Labels {
		correct[i] = math.Log(sums.AtVec(i)) - scores.At(i, label)
	}
	n := float64(sh.n)

	sq := mat.NewDense(sh.d, sh.c, nil)
	sq.MulElem(w, w)
	loss := floats.Sum(correct)/n + 0.5*reg*mat.Sum(sq)

	for i, label := range batch.Labels {
		probs.Set(i, label, probs.At(i, label)-1)
	}
	dW := mat.NewDense(sh.d, sh.c, nil)
	dW.Mul(batch.Inputs.T(), probs)
	dW.Scale(1/n, dW)

	regGrad := mat.NewDense(sh.d, sh.c, nil)
	regGrad.Scale(reg, w)
	dW.Add(dW, regGrad)

	return loss, dW, nil
}
