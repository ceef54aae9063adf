// Package feed slices pre-loaded named datasets into batches for a
// training loop. Iterators validate eagerly, own their shuffle source
// and produce a fresh pull-based stream on every run.
package feed

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"batchfeed/internal/tensor"
)

// ErrInvalidData marks dataset and noise-configuration validation
// failures. All such errors wrap this sentinel.
var ErrInvalidData = errors.New("invalid feed data")

// NamedData maps a data name (e.g. "inputs", "targets") to its array.
// Every array must share the batch (second) dimension size.
type NamedData map[string]*tensor.Tensor

// Names returns the data names in sorted order.
func (d NamedData) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every array is present, has at least 3
// dimensions (time, batch, features...) and that all batch-dimension
// sizes agree. It returns the common number of sequences.
func Validate(data NamedData) (int, error) {
	if len(data) == 0 {
		return 0, errors.Wrap(ErrInvalidData, "no data arrays provided")
	}
	names := data.Names()
	sizes := make(map[string]int, len(names))
	for _, name := range names {
		arr := data[name]
		if arr == nil {
			return 0, errors.Wrapf(ErrInvalidData, "%s has no shape", name)
		}
		if arr.Dims() < 3 {
			return 0, errors.Wrapf(ErrInvalidData,
				"%s must have at least 3 dimensions (time, batch, features), got %d",
				name, arr.Dims())
		}
		sizes[name] = arr.Shape()[1]
	}
	common := sizes[names[0]]
	for _, name := range names {
		if sizes[name] != common {
			return 0, errors.Wrapf(ErrInvalidData,
				"batch-dimension sizes disagree across arrays: %s", formatSizes(names, sizes))
		}
	}
	return common, nil
}

func formatSizes(names []string, sizes map[string]int) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", name, sizes[name]))
	}
	return strings.Join(parts, " ")
}

// Iterator is the contract all batch producers satisfy. Run returns an
// independent stream each call; shuffling and progress restart from
// scratch while the owned shuffle source keeps its running state.
type Iterator interface {
	// DataNames lists the names present in every produced batch.
	DataNames() []string

	// Run starts a fresh pass over the data. verbose enables the
	// console progress bar unless the iterator overrides it.
	Run(h tensor.Handler, verbose bool) *Stream
}

// Stream is a pull-based cursor over batches. Production of the next
// batch is entirely driven by Next; no background work happens.
type Stream struct {
	next func() (NamedData, bool)
	cur  NamedData
}

func newStream(next func() (NamedData, bool)) *Stream {
	return &Stream{next: next}
}

// Next advances to the next batch, reporting whether one is available.
func (s *Stream) Next() bool {
	if s.next == nil {
		return false
	}
	batch, ok := s.next()
	if !ok {
		s.next = nil
		s.cur = nil
		return false
	}
	s.cur = batch
	return true
}

// Batch returns the batch produced by the last successful Next.
func (s *Stream) Batch() NamedData {
	return s.cur
}
