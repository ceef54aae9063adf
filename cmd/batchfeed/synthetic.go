package main

import (
	"batchfeed/internal/feed"
	"batchfeed/internal/tensor"
)

// syntheticDataset builds a toy regression problem: inputs are
// standard-normal draws, targets are the per-timestep feature sums
// plus small noise. Shapes follow the (time, batch, features) layout.
func syntheticDataset(sequences, timeSteps, features int, seed int64) feed.NamedData {
	h := tensor.NewCPU(uint64(seed))

	inputs := h.Zeros([]int{timeSteps, sequences, features})
	h.FillGaussian(0, 1, inputs)

	targets := h.Zeros([]int{timeSteps, sequences, 1})
	h.FillGaussian(0, 0.05, targets)

	in := inputs.Data()
	tg := targets.Data()
	for ti := 0; ti < timeSteps; ti++ {
		for b := 0; b < sequences; b++ {
			sum := 0.0
			start := ti*sequences*features + b*features
			for f := 0; f < features; f++ {
				sum += in[start+f]
			}
			tg[ti*sequences+b] += sum
		}
	}

	return feed.NamedData{"inputs": inputs, "targets": targets}
}
