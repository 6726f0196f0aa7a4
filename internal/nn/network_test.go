package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/neuralviz/internal/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, seed int64, configs []LayerConfig) *Network {
	t.Helper()
	network, err := Generate(rand.New(rand.NewSource(seed)), configs, -0.5, 0.5) //nolint:gosec // deterministic test data
	require.NoError(t, err)
	return network
}

func TestForwardPropagate_KnownValues(t *testing.T) {
	network := generate(t, 1, []LayerConfig{
		{NeuronCount: 2},
		{NeuronCount: 1, Activation: Linear, WeightInit: RandomInit, BiasInit: BiasZero},
	})
	network.Weights[1][0] = []float64{0.5, -1}
	network.Biases[1][0] = 0.25

	out, err := network.Predict([]float64{2, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, out[0], 1e-12)
	assert.Equal(t, []float64{1, -1}, network.WeightResults[1][0])
	assert.InDelta(t, 0.25, network.SumResults[1][0], 1e-12)
}

func TestForwardPropagate_ReLUHidden(t *testing.T) {
	network := generate(t, 1, []LayerConfig{
		{NeuronCount: 1},
		{NeuronCount: 2, Activation: ReLU, WeightInit: RandomInit, BiasInit: BiasZero},
		{NeuronCount: 1, Activation: Sigmoid, WeightInit: RandomInit, BiasInit: BiasZero},
	})
	network.Weights[1] = [][]float64{{1}, {-1}}
	network.Biases[1] = []float64{0, 0}
	network.Weights[2] = [][]float64{{2, 3}}
	network.Biases[2] = []float64{0}

	out, err := network.Predict([]float64{1.5})
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 0}, network.Activations[1])
	assert.InDelta(t, SigmoidFunc(3), out[0], 1e-12)
	assert.Equal(t, 0.0, network.ActivationMin)
	assert.Equal(t, 1.5, network.ActivationMax)
}

func TestForwardPropagate_Deterministic(t *testing.T) {
	a := generate(t, 11, threeLayerConfigs())
	b := generate(t, 11, threeLayerConfigs())

	outA, err := a.Predict([]float64{0.3, -0.8})
	require.NoError(t, err)
	outB, err := b.Predict([]float64{0.3, -0.8})
	require.NoError(t, err)
	assert.Equal(t, outA, outB)
	assert.Equal(t, a.Activations, b.Activations)
}

// Stepping weight by weight must end in the same state as a full pass.
func TestForwardPropagate_GranularityEquivalence(t *testing.T) {
	base := generate(t, 3, threeLayerConfigs())
	base.SetInput([]float64{0.7, 0.1})

	byNetwork := base.Clone()
	require.NoError(t, byNetwork.ForwardPropagate())

	byLayer := base.Clone()
	for l := 1; l < byLayer.LayerCount(); l++ {
		require.NoError(t, byLayer.ForwardPropagateLayer(l))
	}

	byNeuron := base.Clone()
	for l := 1; l < byNeuron.LayerCount(); l++ {
		for i := range byNeuron.Activations[l] {
			require.NoError(t, byNeuron.ForwardPropagateNeuron(l, i))
		}
	}

	byWeight := base.Clone()
	for l := 1; l < byWeight.LayerCount(); l++ {
		for i := range byWeight.Activations[l] {
			for w := range byWeight.Weights[l][i] {
				byWeight.ForwardPropagateWeight(l, i, w)
			}
			byWeight.ForwardPropagateSum(l, i)
			require.NoError(t, byWeight.ForwardPropagateActivationFunction(l, i))
		}
	}

	for _, other := range []*Network{byLayer, byNeuron, byWeight} {
		assert.Equal(t, byNetwork.Activations, other.Activations)
		assert.Equal(t, byNetwork.SumResults, other.SumResults)
		assert.Equal(t, byNetwork.WeightResults, other.WeightResults)
		assert.Equal(t, byNetwork.ActivationMin, other.ActivationMin)
		assert.Equal(t, byNetwork.ActivationMax, other.ActivationMax)
	}
}

func TestForwardPropagate_ParallelMatchesSequential(t *testing.T) {
	configs := []LayerConfig{
		{NeuronCount: 3},
		{NeuronCount: 64, Activation: Tanh, WeightInit: XavierUniformInit, BiasInit: BiasHundredth},
		{NeuronCount: 48, Activation: LeakyReLU, ActivationArgs: []float64{0.05}, WeightInit: XavierNormalInit, BiasInit: BiasZero},
		{NeuronCount: 2, Activation: Linear, WeightInit: XavierUniformInit, BiasInit: BiasZero},
	}
	seq := generate(t, 8, configs)
	par := seq.Clone()
	par.SetParallel(parallel.Config{Enabled: true, Workers: 4, MinChunk: 4})

	input := []float64{0.1, -0.4, 0.9}
	outSeq, err := seq.Predict(input)
	require.NoError(t, err)
	outPar, err := par.Predict(input)
	require.NoError(t, err)

	assert.Equal(t, outSeq, outPar)
	assert.Equal(t, seq.Activations, par.Activations)
	assert.Equal(t, seq.ActivationMin, par.ActivationMin)
	assert.Equal(t, seq.ActivationMax, par.ActivationMax)
}

func TestForwardPropagate_UnsupportedActivation(t *testing.T) {
	network := generate(t, 1, threeLayerConfigs())
	network.ActivationFunctions[2][0] = Activation(77)
	_, err := network.Predict([]float64{0, 0})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestSetInput_ShapeMismatchPanics(t *testing.T) {
	network := generate(t, 1, threeLayerConfigs())
	assert.Panics(t, func() { network.SetInput([]float64{1, 2, 3}) })
}

func TestClone_NoAliasing(t *testing.T) {
	network := generate(t, 2, threeLayerConfigs())
	network.ActivationArgs[1][0] = []float64{0.3}
	clone := network.Clone()
	require.Equal(t, network, clone)

	clone.Weights[1][0][0] = 42
	clone.Biases[2][0] = 42
	clone.Activations[0][1] = 42
	clone.ActivationArgs[1][0][0] = 42
	clone.ActivationFunctions[1][0] = ReLU

	assert.NotEqual(t, 42.0, network.Weights[1][0][0])
	assert.NotEqual(t, 42.0, network.Biases[2][0])
	assert.NotEqual(t, 42.0, network.Activations[0][1])
	assert.Equal(t, 0.3, network.ActivationArgs[1][0][0])
	assert.Equal(t, Tanh, network.ActivationFunctions[1][0])
}

func TestNetwork_String(t *testing.T) {
	network := generate(t, 1, threeLayerConfigs())
	s := network.String()
	assert.Contains(t, s, "Layers:")
	assert.Contains(t, s, "ActivationFunction: tanh")
	assert.Contains(t, s, "ActivationFunction: linear")
	assert.Contains(t, s, "3. Neuron:")
}

func TestNetwork_FreshExtrema(t *testing.T) {
	network := newNetwork([]int{1, 1})
	assert.Equal(t, math.MaxFloat64, network.ActivationMin)
	assert.Equal(t, -math.MaxFloat64, network.ActivationMax)
}
