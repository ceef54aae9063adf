package tensor

import "fmt"

// Tensor is a dense row-major float64 array with an explicit shape.
// Feed data follows the (time, batch, features...) axis convention.
type Tensor struct {
	shape []int
	data  []float64
}

// New allocates a zero-filled tensor with the given shape.
func New(shape ...int) *Tensor {
	size := 1
	for _, dim := range shape {
		if dim < 0 {
			panic(fmt.Sprintf("tensor: negative dimension %d", dim))
		}
		size *= dim
	}
	return &Tensor{
		shape: append([]int(nil), shape...),
		data:  make([]float64, size),
	}
}

// FromData wraps an existing flat slice. The slice is not copied; its
// length must match the product of the shape.
func FromData(data []float64, shape ...int) *Tensor {
	t := &Tensor{shape: append([]int(nil), shape...), data: data}
	size := 1
	for _, dim := range shape {
		size *= dim
	}
	if len(data) != size {
		panic(fmt.Sprintf("tensor: data length %d does not match shape %v", len(data), shape))
	}
	return t
}

// Shape returns a copy of the tensor's dimensions.
func (t *Tensor) Shape() []int {
	return append([]int(nil), t.shape...)
}

// Dims returns the number of dimensions.
func (t *Tensor) Dims() int {
	return len(t.shape)
}

// Size returns the total number of elements.
func (t *Tensor) Size() int {
	return len(t.data)
}

// Data exposes the flat backing slice.
func (t *Tensor) Data() []float64 {
	return t.data
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	c := &Tensor{
		shape: append([]int(nil), t.shape...),
		data:  make([]float64, len(t.data)),
	}
	copy(c.data, t.data)
	return c
}

// Equal reports whether two tensors have identical shapes and values.
func (t *Tensor) Equal(o *Tensor) bool {
	if o == nil || len(t.shape) != len(o.shape) {
		return false
	}
	for i, dim := range t.shape {
		if o.shape[i] != dim {
			return false
		}
	}
	for i, v := range t.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}

// SliceBatch copies the [lo, hi) range along the batch (second) axis,
// preserving dimensionality. hi clamps to the batch size so a truncated
// final chunk slices without error.
func (t *Tensor) SliceBatch(lo, hi int) *Tensor {
	if len(t.shape) < 2 {
		panic("tensor: SliceBatch requires at least 2 dimensions")
	}
	batch := t.shape[1]
	if hi > batch {
		hi = batch
	}
	if lo < 0 || lo > hi {
		panic(fmt.Sprintf("tensor: invalid batch range [%d, %d)", lo, hi))
	}
	rest := 1
	for _, dim := range t.shape[2:] {
		rest *= dim
	}
	outShape := t.Shape()
	outShape[1] = hi - lo
	out := New(outShape...)
	width := (hi - lo) * rest
	for ti := 0; ti < t.shape[0]; ti++ {
		src := ti*batch*rest + lo*rest
		copy(out.data[ti*width:(ti+1)*width], t.data[src:src+width])
	}
	return out
}
