package metrics

import "time"

// Window accumulates per-step feed and compute timings between
// snapshots, plus a cumulative sample total that survives resets.
type Window struct {
	samples  int
	total    int
	feed     time.Duration
	compute  time.Duration
	steps    int
	lastLoss float64
}

// Record adds a new measurement to the window.
func (w *Window) Record(batchSize int, feedTime, computeTime time.Duration, loss float64) {
	w.samples += batchSize
	w.total += batchSize
	w.feed += feedTime
	w.compute += computeTime
	w.steps++
	w.lastLoss = loss
}

// Snapshot returns aggregated metrics and resets the rolling window.
// The cumulative total is preserved.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{TotalSamples: w.total, LastLoss: w.lastLoss}
	elapsed := w.feed + w.compute
	if elapsed > 0 {
		snap.SamplesPerSec = float64(w.samples) / elapsed.Seconds()
	}
	if w.steps > 0 {
		snap.AvgFeedMS = (w.feed.Seconds() * 1000) / float64(w.steps)
		snap.AvgComputeMS = (w.compute.Seconds() * 1000) / float64(w.steps)
	}

	w.samples = 0
	w.feed = 0
	w.compute = 0
	w.steps = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	SamplesPerSec float64
	AvgFeedMS     float64
	AvgComputeMS  float64
	LastLoss      float64
	TotalSamples  int
}
