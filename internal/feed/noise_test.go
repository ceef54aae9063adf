package feed

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"batchfeed/internal/tensor"
)

func TestGaussianNoisePerturbsConfiguredNames(t *testing.T) {
	data := NamedData{
		"x": arange(2, 4, 3),
		"y": arange(2, 4, 1),
	}
	base, err := NewUndivided(data)
	require.NoError(t, err)

	// zero std with a fixed mean makes the perturbation exact
	it, err := NewGaussianNoise(base, map[string]float64{"x": 0}, map[string]float64{"x": 5})
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, it.DataNames())

	batches := drain(t, it.Run(tensor.NewCPU(1), false))
	require.Len(t, batches, 1)

	x := batches[0]["x"]
	require.Equal(t, data["x"].Shape(), x.Shape())
	for i, v := range x.Data() {
		require.Equal(t, data["x"].Data()[i]+5, v)
	}

	// unconfigured names pass through untouched
	require.True(t, batches[0]["y"].Equal(data["y"]))
}

func TestGaussianNoiseOverMinibatches(t *testing.T) {
	data := NamedData{"x": arange(2, 5, 2)}
	base, err := NewMinibatches(data, MinibatchOptions{BatchSize: 2, Out: io.Discard})
	require.NoError(t, err)

	it, err := NewGaussianNoise(base, map[string]float64{"x": 1}, nil)
	require.NoError(t, err)

	batches := drain(t, it.Run(tensor.NewCPU(1), false))
	require.Len(t, batches, 3)
	require.Equal(t, []int{2, 2, 2}, batches[0]["x"].Shape())
	require.Equal(t, []int{2, 1, 2}, batches[2]["x"].Shape())
}

func TestGaussianNoiseRejectsUnknownName(t *testing.T) {
	base, err := NewUndivided(NamedData{"x": arange(1, 2, 1)})
	require.NoError(t, err)

	_, err = NewGaussianNoise(base, map[string]float64{"z": 1}, nil)
	require.ErrorIs(t, err, ErrInvalidData)
	require.Contains(t, err.Error(), "z")
}

func TestGaussianNoiseRejectsMeanWithoutStd(t *testing.T) {
	base, err := NewUndivided(NamedData{"x": arange(1, 2, 1), "y": arange(1, 2, 1)})
	require.NoError(t, err)

	_, err = NewGaussianNoise(base, map[string]float64{"x": 1}, map[string]float64{"y": 2})
	require.ErrorIs(t, err, ErrInvalidData)
	require.Contains(t, err.Error(), "y")
}

func TestGaussianNoiseStdOnlyDefaultsMeanToZero(t *testing.T) {
	data := NamedData{"x": arange(1, 2, 2)}
	base, err := NewUndivided(data)
	require.NoError(t, err)

	it, err := NewGaussianNoise(base, map[string]float64{"x": 0}, nil)
	require.NoError(t, err)

	batches := drain(t, it.Run(tensor.NewCPU(1), false))
	// std 0 and default mean 0: identity
	require.True(t, batches[0]["x"].Equal(data["x"]))
}
