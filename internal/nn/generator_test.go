package nn

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeLayerConfigs() []LayerConfig {
	return []LayerConfig{
		{NeuronCount: 2},
		{NeuronCount: 3, Activation: Tanh, WeightInit: XavierUniformInit, BiasInit: BiasZero},
		{NeuronCount: 1, Activation: Linear, WeightInit: XavierUniformInit, BiasInit: BiasZero},
	}
}

func TestGenerate_Shapes(t *testing.T) {
	rng := rand.New(rand.NewSource(23144532)) //nolint:gosec // deterministic test data

	network, err := Generate(rng, threeLayerConfigs(), -0.1, 0.1)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3, 1}, network.LayerSizes())
	assert.Equal(t, 3, network.LayerCount())
	assert.Nil(t, network.Weights[0])
	require.Len(t, network.Weights[1], 3)
	for _, w := range network.Weights[1] {
		assert.Len(t, w, 2)
	}
	require.Len(t, network.Weights[2], 1)
	assert.Len(t, network.Weights[2][0], 3)

	for l := 1; l < network.LayerCount(); l++ {
		for i := range network.Weights[l] {
			assert.Len(t, network.WeightResults[l][i], len(network.Activations[l-1]))
			for _, w := range network.Weights[l][i] {
				assert.GreaterOrEqual(t, w, -0.1-1e-12)
				assert.LessOrEqual(t, w, 0.1+1e-12)
			}
		}
		assert.Equal(t, make([]float64, len(network.Biases[l])), network.Biases[l])
	}

	assert.Equal(t, Tanh, network.ActivationFunctions[1][0])
	assert.Equal(t, Linear, network.ActivationFunctions[2][0])
	assert.Equal(t, -0.1, network.WeightMin)
	assert.Equal(t, 0.1, network.WeightMax)
	assert.Zero(t, network.WeightDeltaMin)
	assert.Zero(t, network.WeightDeltaMax)
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(rand.New(rand.NewSource(5)), threeLayerConfigs(), -0.5, 0.5) //nolint:gosec // deterministic test data
	require.NoError(t, err)
	b, err := Generate(rand.New(rand.NewSource(5)), threeLayerConfigs(), -0.5, 0.5) //nolint:gosec // deterministic test data
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Generate(rand.New(rand.NewSource(6)), threeLayerConfigs(), -0.5, 0.5) //nolint:gosec // deterministic test data
	require.NoError(t, err)
	assert.NotEqual(t, a.Weights, c.Weights)
}

func TestGenerate_BiasStrategies(t *testing.T) {
	rng := rand.New(rand.NewSource(1)) //nolint:gosec // deterministic test data
	configs := []LayerConfig{
		{NeuronCount: 1},
		{NeuronCount: 2, Activation: ReLU, WeightInit: RandomInit, BiasInit: BiasOne},
		{NeuronCount: 2, Activation: Sigmoid, WeightInit: NormalInit, BiasInit: BiasHundredth},
	}

	network, err := Generate(rng, configs, -1, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, network.Biases[1])
	assert.Equal(t, []float64{0.01, 0.01}, network.Biases[2])
}

func TestGenerate_CopiesActivationArgs(t *testing.T) {
	rng := rand.New(rand.NewSource(1)) //nolint:gosec // deterministic test data
	args := []float64{0.2}
	configs := []LayerConfig{
		{NeuronCount: 1},
		{NeuronCount: 2, Activation: LeakyReLU, ActivationArgs: args, WeightInit: RandomInit, BiasInit: BiasZero},
	}

	network, err := Generate(rng, configs, -1, 1)
	require.NoError(t, err)
	args[0] = 9
	assert.Equal(t, []float64{0.2}, network.ActivationArgs[1][0])
	network.ActivationArgs[1][0][0] = 3
	assert.Equal(t, []float64{0.2}, network.ActivationArgs[1][1])
}

func TestGenerate_InputOnly(t *testing.T) {
	rng := rand.New(rand.NewSource(1)) //nolint:gosec // deterministic test data
	network, err := Generate(rng, []LayerConfig{{NeuronCount: 4}}, -1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, network.LayerSizes())
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		configs []LayerConfig
		target  error
	}{
		{"no layers", nil, ErrInvalidLayerConfig},
		{"empty layer", []LayerConfig{{NeuronCount: 1}, {NeuronCount: 0}}, ErrInvalidLayerConfig},
		{"bad activation", []LayerConfig{{NeuronCount: 1}, {NeuronCount: 1, Activation: Activation(9)}}, ErrUnsupported},
		{"bad weight init", []LayerConfig{{NeuronCount: 1}, {NeuronCount: 1, WeightInit: WeightInit(9)}}, ErrUnsupported},
		{"bad bias init", []LayerConfig{{NeuronCount: 1}, {NeuronCount: 1, BiasInit: BiasInit(9)}}, ErrUnsupported},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1)) //nolint:gosec // deterministic test data
			network, err := Generate(rng, tc.configs, -1, 1)
			assert.Nil(t, network)
			assert.True(t, errors.Is(err, tc.target), "got %v", err)
		})
	}
}

func TestDefaultLayerConfig(t *testing.T) {
	c := DefaultLayerConfig(8)
	assert.Equal(t, 8, c.NeuronCount)
	assert.Equal(t, Tanh, c.Activation)
	assert.NoError(t, c.Validate(1))
}
