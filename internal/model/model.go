package model

import "batchfeed/internal/tensor"

// Batch pairs the input and target arrays for one training step. Both
// follow the (time, batch, features...) layout and share the batch
// dimension.
type Batch struct {
	Inputs  *tensor.Tensor
	Targets *tensor.Tensor
}

// Model defines the minimal training functionality required by the demo.
type Model interface {
	TrainStep(batch Batch) float64
}
