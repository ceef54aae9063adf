package tensor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func arange(shape ...int) *Tensor {
	t := New(shape...)
	for i := range t.Data() {
		t.Data()[i] = float64(i)
	}
	return t
}

func TestNewZeroFilled(t *testing.T) {
	a := New(2, 3, 4)
	require.Equal(t, []int{2, 3, 4}, a.Shape())
	require.Equal(t, 3, a.Dims())
	require.Equal(t, 24, a.Size())
	for _, v := range a.Data() {
		require.Zero(t, v)
	}
}

func TestFromDataLengthMismatchPanics(t *testing.T) {
	require.Panics(t, func() {
		FromData([]float64{1, 2, 3}, 2, 2)
	})
}

func TestSliceBatchValues(t *testing.T) {
	a := arange(2, 4, 3)

	got := a.SliceBatch(1, 3)
	require.Equal(t, []int{2, 2, 3}, got.Shape())
	// time 0 holds samples 1 and 2, time 1 the same offset further on
	require.Equal(t, []float64{3, 4, 5, 6, 7, 8, 15, 16, 17, 18, 19, 20}, got.Data())
}

func TestSliceBatchClampsUpperBound(t *testing.T) {
	a := arange(2, 4, 3)

	got := a.SliceBatch(3, 6)
	require.Equal(t, []int{2, 1, 3}, got.Shape())
	require.Equal(t, []float64{9, 10, 11, 21, 22, 23}, got.Data())
}

func TestCloneAndEqual(t *testing.T) {
	a := arange(1, 2, 3)
	b := a.Clone()
	require.True(t, a.Equal(b))

	b.Data()[0] = 99
	require.False(t, a.Equal(b))
	require.False(t, a.Equal(arange(2, 1, 3)))
}
