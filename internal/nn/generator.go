package nn

import (
	"math"
	"math/rand"
	"slices"

	"github.com/born-ml/neuralviz/internal/mathutil"
	"github.com/pkg/errors"
)

// LayerConfig describes one layer of a network to generate.
//
// For the input layer only NeuronCount is used.
type LayerConfig struct {
	NeuronCount    int
	Activation     Activation
	ActivationArgs []float64 // e.g. {slope} for LeakyReLU
	WeightInit     WeightInit
	BiasInit       BiasInit
}

// DefaultLayerConfig returns a tanh layer with Xavier uniform weights and zero biases.
func DefaultLayerConfig(neurons int) LayerConfig {
	return LayerConfig{
		NeuronCount:    neurons,
		Activation:     Tanh,
		ActivationArgs: []float64{DefaultLeakySlope},
		WeightInit:     XavierUniformInit,
		BiasInit:       BiasZero,
	}
}

// Validate checks the config of layer index l.
func (c LayerConfig) Validate(l int) error {
	if c.NeuronCount < 1 {
		return errors.Wrapf(ErrInvalidLayerConfig, "layer %d: neuron count %d < 1", l, c.NeuronCount)
	}
	if l == 0 {
		return nil
	}
	if !c.Activation.Valid() {
		return errors.Wrapf(Unsupported("activation function", c.Activation), "layer %d", l)
	}
	if !c.WeightInit.Valid() {
		return errors.Wrapf(Unsupported("weights initialization strategy", c.WeightInit), "layer %d", l)
	}
	if !c.BiasInit.Valid() {
		return errors.Wrapf(Unsupported("biases initialization strategy", c.BiasInit), "layer %d", l)
	}
	return nil
}

// Generate builds a fully allocated network from layer configs.
//
// Biases are set from each layer's constant strategy and weights are drawn
// from its initializer with the previous and next layer sizes as fan-in and
// fan-out. The observed min/max over all weights and biases then defines a
// linear map onto [weightScaleMin, weightScaleMax] which is applied to the
// weights only. WeightMin/WeightMax are set to the requested bounds.
//
// Nothing is returned on error; rng may have advanced.
func Generate(rng *rand.Rand, configs []LayerConfig, weightScaleMin, weightScaleMax float64) (*Network, error) {
	if len(configs) == 0 {
		return nil, errors.Wrap(ErrInvalidLayerConfig, "network needs at least one layer")
	}
	sizes := make([]int, len(configs))
	for l, c := range configs {
		if err := c.Validate(l); err != nil {
			return nil, err
		}
		sizes[l] = c.NeuronCount
	}

	network := newNetwork(sizes)
	lo, hi := math.MaxFloat64, -math.MaxFloat64

	for l := 1; l < len(configs); l++ {
		c := configs[l]
		fanIn := sizes[l-1]
		fanOut := 0
		if l+1 < len(sizes) {
			fanOut = sizes[l+1]
		}

		bias, err := c.BiasInit.Value()
		if err != nil {
			return nil, err
		}

		for i := range c.NeuronCount {
			network.ActivationFunctions[l][i] = c.Activation
			network.ActivationArgs[l][i] = slices.Clone(c.ActivationArgs)
			network.Biases[l][i] = bias
			lo, hi = math.Min(lo, bias), math.Max(hi, bias)

			for w := range network.Weights[l][i] {
				v, err := c.WeightInit.Sample(rng, fanIn, fanOut)
				if err != nil {
					return nil, err
				}
				network.Weights[l][i][w] = v
				lo, hi = math.Min(lo, v), math.Max(hi, v)
			}
		}
	}

	if len(configs) > 1 {
		if err := scaleWeights(network, lo, hi, weightScaleMin, weightScaleMax); err != nil {
			return nil, err
		}
	}

	network.WeightMin = weightScaleMin
	network.WeightMax = weightScaleMax
	network.WeightDeltaMin = 0
	network.WeightDeltaMax = 0
	return network, nil
}

func scaleWeights(network *Network, lo, hi, newMin, newMax float64) error {
	scaler, err := mathutil.NewScaler(lo, hi, newMin, newMax)
	if err != nil {
		return errors.Wrap(err, "scale initial weights")
	}
	for l := 1; l < len(network.Weights); l++ {
		for _, neuron := range network.Weights[l] {
			for w, v := range neuron {
				neuron[w] = scaler.Scale(v)
			}
		}
	}
	return nil
}
