package trainer

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"batchfeed/internal/feed"
	"batchfeed/internal/metrics"
	"batchfeed/internal/model"
	"batchfeed/internal/tensor"
)

const inputsName = "inputs"
const targetsName = "targets"

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	Data      feed.NamedData
	BatchSize int
	Epochs    int
	Shuffle   bool
	Seed      int64
	NoiseStd  map[string]float64
	NoiseMean map[string]float64
	LearnRate float64
	LogEvery  int
	Verbose   bool
}

// Run executes the training workload: a minibatch feed over the named
// dataset, optionally noise-wrapped, driving a linear model.
func Run(ctx context.Context, cfg RunConfig) error {
	if cfg.Epochs <= 0 {
		return errors.New("trainer: epochs must be > 0")
	}
	if cfg.BatchSize <= 0 {
		return errors.New("trainer: batch size must be > 0")
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 50
	}

	inputs, ok := cfg.Data[inputsName]
	if !ok {
		return errors.Errorf("trainer: dataset has no %q array", inputsName)
	}
	targets, ok := cfg.Data[targetsName]
	if !ok {
		return errors.Errorf("trainer: dataset has no %q array", targetsName)
	}

	mb, err := feed.NewMinibatches(cfg.Data, feed.MinibatchOptions{
		BatchSize: cfg.BatchSize,
		Shuffle:   cfg.Shuffle,
		Seed:      cfg.Seed,
	})
	if err != nil {
		return err
	}
	var it feed.Iterator = mb
	if len(cfg.NoiseStd) > 0 {
		it, err = feed.NewGaussianNoise(it, cfg.NoiseStd, cfg.NoiseMean)
		if err != nil {
			return err
		}
	}

	h := tensor.NewCPU(uint64(cfg.Seed))
	mdl := model.NewLinear(flatSize(inputs), flatSize(targets), cfg.LearnRate, cfg.Seed)
	var window metrics.Window

	n, err := feed.Validate(cfg.Data)
	if err != nil {
		return err
	}
	log.Info().Int("sequences", n).Int("batch_size", cfg.BatchSize).
		Int("epochs", cfg.Epochs).Bool("shuffle", cfg.Shuffle).Msg("starting training")

	step := 0
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		stream := it.Run(h, cfg.Verbose)
		startFeed := time.Now()
		for stream.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			batch := stream.Batch()
			feedTime := time.Since(startFeed)

			startCompute := time.Now()
			loss := mdl.TrainStep(model.Batch{
				Inputs:  batch[inputsName],
				Targets: batch[targetsName],
			})
			computeTime := time.Since(startCompute)

			window.Record(batch[inputsName].Shape()[1], feedTime, computeTime, loss)
			step++

			if step%cfg.LogEvery == 0 {
				snap := window.Snapshot()
				log.Info().
					Int("step", step).
					Int("epoch", epoch).
					Float64("samples_per_sec", snap.SamplesPerSec).
					Float64("feed_ms", snap.AvgFeedMS).
					Float64("compute_ms", snap.AvgComputeMS).
					Float64("loss", snap.LastLoss).
					Msg("train")
			}
			startFeed = time.Now()
		}
		log.Debug().Int("epoch", epoch).Msg("epoch complete")
	}

	snap := window.Snapshot()
	log.Info().Int("steps", step).Int("samples", snap.TotalSamples).
		Float64("loss", snap.LastLoss).Msg("training finished")
	return nil
}

// flatSize is the per-sample vector size: all axes except batch.
func flatSize(t *tensor.Tensor) int {
	shape := t.Shape()
	size := shape[0]
	for _, dim := range shape[2:] {
		size *= dim
	}
	return size
}
