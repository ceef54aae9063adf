package feed

import (
	"fmt"
	"io"

	"batchfeed/internal/tensor"
)

const defaultBatchSize = 10

// MinibatchOptions configures a Minibatches iterator. A non-positive
// BatchSize defaults to 10; the remaining fields behave as in
// OnlineOptions.
type MinibatchOptions struct {
	BatchSize int
	Shuffle   bool
	Verbose   *bool
	Seed      int64
	Source    Source
	Out       io.Writer
}

// Minibatches yields contiguous chunks of BatchSize samples along the
// batch axis. Shuffling permutes chunk order only, never the samples
// within a chunk. The final chunk may be shorter.
type Minibatches struct {
	data      NamedData
	names     []string
	n         int
	batchSize int
	shuffle   bool
	verbose   *bool
	src       Source
	out       io.Writer
}

// NewMinibatches validates data and builds the iterator.
func NewMinibatches(data NamedData, opts MinibatchOptions) (*Minibatches, error) {
	n, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	normalizeFeedOptions(&opts.Seed, &opts.Source, &opts.Out)
	return &Minibatches{
		data:      data,
		names:     data.Names(),
		n:         n,
		batchSize: opts.BatchSize,
		shuffle:   opts.Shuffle,
		verbose:   opts.Verbose,
		src:       opts.Source,
		out:       opts.Out,
	}, nil
}

func (it *Minibatches) DataNames() []string {
	return append([]string(nil), it.names...)
}

func (it *Minibatches) Run(_ tensor.Handler, verbose bool) *Stream {
	meter := meterFor(it.verbose, verbose, float64(it.n))
	chunks := (it.n + it.batchSize - 1) / it.batchSize
	order := indexOrder(chunks, it.shuffle, it.src)
	pos := 0
	started := false
	return newStream(func() (NamedData, bool) {
		if !started {
			started = true
			fmt.Fprint(it.out, meter.Start())
		} else {
			// Progress counts samples, not chunks; the bar clamps
			// the overshoot of a short final chunk.
			fmt.Fprint(it.out, meter.Advance(float64(pos*it.batchSize)))
		}
		if pos >= len(order) {
			return nil, false
		}
		chunk := order[pos]
		pos++
		lo := chunk * it.batchSize
		batch := make(NamedData, len(it.data))
		for name, arr := range it.data {
			batch[name] = arr.SliceBatch(lo, lo+it.batchSize)
		}
		return batch, true
	})
}
