package feed

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"batchfeed/internal/progress"
	"batchfeed/internal/tensor"
)

const defaultSeed = 42

// Source is the shuffle capability an iterator owns. *math/rand.Rand
// satisfies it.
type Source interface {
	Shuffle(n int, swap func(i, j int))
}

// OnlineOptions configures an Online iterator. Zero values mean: no
// shuffling, defer verbosity to the Run flag, default seed, progress
// to stdout.
type OnlineOptions struct {
	Shuffle bool
	// Verbose overrides the Run flag when non-nil.
	Verbose *bool
	Seed    int64
	// Source replaces the default seeded math/rand source.
	Source Source
	// Out receives progress text; defaults to os.Stdout.
	Out io.Writer
}

// Online yields one size-1 batch per sample, optionally in shuffled
// order. The shuffle source is seeded once at construction and keeps
// its running state across runs.
type Online struct {
	data    NamedData
	names   []string
	n       int
	shuffle bool
	verbose *bool
	src     Source
	out     io.Writer
}

// NewOnline validates data and builds the iterator.
func NewOnline(data NamedData, opts OnlineOptions) (*Online, error) {
	n, err := Validate(data)
	if err != nil {
		return nil, err
	}
	normalizeFeedOptions(&opts.Seed, &opts.Source, &opts.Out)
	return &Online{
		data:    data,
		names:   data.Names(),
		n:       n,
		shuffle: opts.Shuffle,
		verbose: opts.Verbose,
		src:     opts.Source,
		out:     opts.Out,
	}, nil
}

func (it *Online) DataNames() []string {
	return append([]string(nil), it.names...)
}

func (it *Online) Run(_ tensor.Handler, verbose bool) *Stream {
	meter := meterFor(it.verbose, verbose, float64(it.n))
	order := indexOrder(it.n, it.shuffle, it.src)
	pos := 0
	started := false
	return newStream(func() (NamedData, bool) {
		if !started {
			started = true
			fmt.Fprint(it.out, meter.Start())
		} else {
			fmt.Fprint(it.out, meter.Advance(float64(pos)))
		}
		if pos >= len(order) {
			return nil, false
		}
		idx := order[pos]
		pos++
		batch := make(NamedData, len(it.data))
		for name, arr := range it.data {
			batch[name] = arr.SliceBatch(idx, idx+1)
		}
		return batch, true
	})
}

func normalizeFeedOptions(seed *int64, src *Source, out *io.Writer) {
	if *seed == 0 {
		*seed = defaultSeed
	}
	if *src == nil {
		*src = rand.New(rand.NewSource(*seed))
	}
	if *out == nil {
		*out = os.Stdout
	}
}

// meterFor resolves the effective verbosity: the iterator-level
// tri-state wins over the run flag when set.
func meterFor(override *bool, verbose bool, max float64) progress.Meter {
	on := verbose
	if override != nil {
		on = *override
	}
	if !on {
		return progress.Silent{}
	}
	return progress.NewBar(max)
}

// indexOrder returns 0..n-1, shuffled in place when requested.
func indexOrder(n int, shuffle bool, src Source) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if shuffle {
		src.Shuffle(n, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}
	return order
}
