package tensor

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Handler is the narrow compute capability the feed iterators rely on.
// A concrete backend only needs allocation, Gaussian fills and
// elementwise addition.
type Handler interface {
	// Zeros allocates a zero-filled array of the given shape.
	Zeros(shape []int) *Tensor

	// FillGaussian overwrites out in place with N(mean, std) draws.
	FillGaussian(mean, std float64, out *Tensor)

	// Add stores the elementwise sum of a and b into out. out may
	// alias either operand.
	Add(a, b, out *Tensor)
}

// CPU is the reference Handler, backed by gonum.
type CPU struct {
	src *rand.Rand
}

// NewCPU returns a CPU handler with a seeded Gaussian source. A zero
// seed falls back to the default.
func NewCPU(seed uint64) *CPU {
	if seed == 0 {
		seed = 42
	}
	return &CPU{src: rand.New(rand.NewSource(seed))}
}

func (c *CPU) Zeros(shape []int) *Tensor {
	return New(shape...)
}

func (c *CPU) FillGaussian(mean, std float64, out *Tensor) {
	dist := distuv.Normal{Mu: mean, Sigma: std, Src: c.src}
	data := out.Data()
	for i := range data {
		data[i] = dist.Rand()
	}
}

func (c *CPU) Add(a, b, out *Tensor) {
	floats.AddTo(out.Data(), a.Data(), b.Data())
}
