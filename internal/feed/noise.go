package feed

import (
	"sort"

	"github.com/pkg/errors"

	"batchfeed/internal/tensor"
)

// GaussianNoise wraps another iterator and perturbs configured data
// names with Gaussian noise drawn through the compute handler.
// Unconfigured names pass through untouched.
type GaussianNoise struct {
	src      Iterator
	stdNames []string
	std      map[string]float64
	mean     map[string]float64
}

// NewGaussianNoise builds the decorator. std maps data names to noise
// standard deviations; mean is optional and defaults to 0 per name.
// Every mean key must have a std entry and every configured name must
// be produced by the wrapped iterator; both are checked eagerly.
func NewGaussianNoise(it Iterator, std map[string]float64, mean map[string]float64) (*GaussianNoise, error) {
	for name := range mean {
		if _, ok := std[name]; !ok {
			return nil, errors.Wrapf(ErrInvalidData,
				"noise mean configured for %s without a matching standard deviation", name)
		}
	}
	names := it.DataNames()
	produced := make(map[string]struct{}, len(names))
	for _, name := range names {
		produced[name] = struct{}{}
	}
	stdNames := make([]string, 0, len(std))
	for name := range std {
		if _, ok := produced[name]; !ok {
			return nil, errors.Wrapf(ErrInvalidData,
				"noise target %s is not produced by the wrapped iterator (available: %v)", name, names)
		}
		stdNames = append(stdNames, name)
	}
	// Draw order must not depend on map iteration order.
	sort.Strings(stdNames)
	g := &GaussianNoise{
		src:      it,
		stdNames: stdNames,
		std:      make(map[string]float64, len(std)),
		mean:     make(map[string]float64, len(mean)),
	}
	for name, v := range std {
		g.std[name] = v
	}
	for name, v := range mean {
		g.mean[name] = v
	}
	return g, nil
}

func (g *GaussianNoise) DataNames() []string {
	return g.src.DataNames()
}

func (g *GaussianNoise) Run(h tensor.Handler, verbose bool) *Stream {
	inner := g.src.Run(h, verbose)
	return newStream(func() (NamedData, bool) {
		if !inner.Next() {
			return nil, false
		}
		src := inner.Batch()
		batch := make(NamedData, len(src))
		for name, arr := range src {
			batch[name] = arr
		}
		for _, name := range g.stdNames {
			arr := batch[name]
			noise := h.Zeros(arr.Shape())
			h.FillGaussian(g.mean[name], g.std[name], noise)
			h.Add(arr, noise, noise)
			batch[name] = noise
		}
		return batch, true
	})
}
