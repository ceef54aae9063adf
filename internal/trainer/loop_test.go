package trainer

import (
	"context"
	"errors"
	"testing"

	"batchfeed/internal/feed"
	"batchfeed/internal/tensor"
)

func demoData() feed.NamedData {
	inputs := tensor.New(2, 6, 3)
	targets := tensor.New(2, 6, 1)
	in := inputs.Data()
	tg := targets.Data()
	for i := range in {
		in[i] = float64(i%7) / 7
	}
	// target is the feature sum of its sample slot
	for ti := 0; ti < 2; ti++ {
		for b := 0; b < 6; b++ {
			sum := 0.0
			for f := 0; f < 3; f++ {
				sum += in[ti*18+b*3+f]
			}
			tg[ti*6+b] = sum
		}
	}
	return feed.NamedData{"inputs": inputs, "targets": targets}
}

func TestRunCompletes(t *testing.T) {
	cfg := RunConfig{
		Data:      demoData(),
		BatchSize: 2,
		Epochs:    2,
		Shuffle:   true,
		Seed:      1,
		LearnRate: 0.05,
		LogEvery:  100,
	}
	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run error: %v", err)
	}
}

func TestRunWithNoise(t *testing.T) {
	cfg := RunConfig{
		Data:      demoData(),
		BatchSize: 3,
		Epochs:    1,
		Seed:      1,
		NoiseStd:  map[string]float64{"inputs": 0.01},
		LearnRate: 0.05,
	}
	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run error: %v", err)
	}
}

func TestRunValidation(t *testing.T) {
	data := demoData()
	inputsOnly := feed.NamedData{"inputs": data["inputs"]}
	cases := []RunConfig{
		{Data: data, BatchSize: 2},
		{Data: data, Epochs: 1},
		{Data: inputsOnly, BatchSize: 2, Epochs: 1},
		{Data: data, BatchSize: 2, Epochs: 1, NoiseStd: map[string]float64{"nope": 1}},
	}
	for i, cfg := range cases {
		if err := Run(context.Background(), cfg); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := RunConfig{
		Data:      demoData(),
		BatchSize: 2,
		Epochs:    1,
		Seed:      1,
	}
	err := Run(ctx, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
