package model

import (
	"testing"

	"batchfeed/internal/tensor"
)

func TestLinearTrainStepReducesLoss(t *testing.T) {
	inputs := tensor.FromData([]float64{
		0.1, 0.2, 0.3, 0.4, // time 0, samples 0 and 1
		0.4, 0.3, 0.2, 0.1, // time 1
	}, 2, 2, 2)
	targets := tensor.FromData([]float64{
		1.0, 0.5,
		0.5, 1.0,
	}, 2, 2, 1)
	batch := Batch{Inputs: inputs, Targets: targets}

	mdl := NewLinear(4, 2, 0.1, 1)
	loss1 := mdl.TrainStep(batch)
	loss2 := mdl.TrainStep(batch)
	if loss2 > loss1 {
		t.Fatalf("expected loss to decrease; loss1=%f loss2=%f", loss1, loss2)
	}
}

func TestLinearEmptyBatch(t *testing.T) {
	mdl := NewLinear(2, 1, 0.1, 1)
	if loss := mdl.TrainStep(Batch{}); loss != 0 {
		t.Fatalf("expected zero loss for empty batch, got %f", loss)
	}
	empty := Batch{
		Inputs:  tensor.New(1, 0, 2),
		Targets: tensor.New(1, 0, 1),
	}
	if loss := mdl.TrainStep(empty); loss != 0 {
		t.Fatalf("expected zero loss for zero samples, got %f", loss)
	}
}
