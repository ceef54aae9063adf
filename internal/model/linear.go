package model

import (
	"math/rand"

	"batchfeed/internal/tensor"
)

// Linear is a flattened linear regressor trained with SGD on MSE loss.
// Each sample's time and feature axes are flattened into one vector.
type Linear struct {
	inSize  int
	outSize int
	weights []float64
	bias    []float64
	lr      float64
}

// NewLinear constructs the model with random initialization.
func NewLinear(inSize, outSize int, lr float64, seed int64) *Linear {
	if inSize <= 0 {
		inSize = 1
	}
	if outSize <= 0 {
		outSize = 1
	}
	if lr <= 0 {
		lr = 0.01
	}
	rng := rand.New(rand.NewSource(seed))
	weights := make([]float64, outSize*inSize)
	for i := range weights {
		weights[i] = (rng.Float64()*2 - 1) * 0.01
	}
	bias := make([]float64, outSize)
	return &Linear{
		inSize:  inSize,
		outSize: outSize,
		weights: weights,
		bias:    bias,
		lr:      lr,
	}
}

// TrainStep executes one SGD step over the batch and returns the
// average loss. Samples whose flattened sizes do not match the model
// are skipped.
func (m *Linear) TrainStep(batch Batch) float64 {
	if batch.Inputs == nil || batch.Targets == nil {
		return 0
	}
	n := batch.Inputs.Shape()[1]
	if n == 0 {
		return 0
	}
	totalLoss := 0.0
	counted := 0
	for b := 0; b < n; b++ {
		x := gatherSample(batch.Inputs, b)
		y := gatherSample(batch.Targets, b)
		if len(x) != m.inSize || len(y) != m.outSize {
			continue
		}
		counted++
		for o := 0; o < m.outSize; o++ {
			pred := m.bias[o]
			wStart := o * m.inSize
			for j := 0; j < m.inSize; j++ {
				pred += m.weights[wStart+j] * x[j]
			}
			diff := pred - y[o]
			totalLoss += diff * diff

			grad := 2 * diff / float64(m.outSize)
			m.bias[o] -= m.lr * grad
			for j := 0; j < m.inSize; j++ {
				m.weights[wStart+j] -= m.lr * grad * x[j]
			}
		}
	}
	if counted == 0 {
		return 0
	}
	return totalLoss / float64(counted*m.outSize)
}

// gatherSample flattens the time and feature axes of sample b into a
// contiguous vector.
func gatherSample(t *tensor.Tensor, b int) []float64 {
	shape := t.Shape()
	batch := shape[1]
	rest := 1
	for _, dim := range shape[2:] {
		rest *= dim
	}
	out := make([]float64, 0, shape[0]*rest)
	data := t.Data()
	for ti := 0; ti < shape[0]; ti++ {
		start := ti*batch*rest + b*rest
		out = append(out, data[start:start+rest]...)
	}
	return out
}
