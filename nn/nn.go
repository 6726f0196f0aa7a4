// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/neuralviz/internal/nn"
)

// Network is a fully connected feedforward network.
type Network = nn.Network

// LayerConfig describes one layer of a network to generate.
type LayerConfig = nn.LayerConfig

// DefaultLayerConfig returns a tanh layer with Xavier uniform weights and zero biases.
func DefaultLayerConfig(neurons int) LayerConfig {
	return nn.DefaultLayerConfig(neurons)
}

// Generate builds a network from configs and rescales its initial weights
// into [weightScaleMin, weightScaleMax].
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	network, err := nn.Generate(rng, []nn.LayerConfig{
//	    {NeuronCount: 2},
//	    nn.DefaultLayerConfig(4),
//	}, -0.5, 0.5)
func Generate(rng *rand.Rand, configs []LayerConfig, weightScaleMin, weightScaleMax float64) (*Network, error) {
	return nn.Generate(rng, configs, weightScaleMin, weightScaleMax)
}

// Errors

var (
	// ErrUnsupported matches any enum value outside its set.
	ErrUnsupported = nn.ErrUnsupported

	// ErrInvalidLayerConfig is returned for layers that cannot be generated.
	ErrInvalidLayerConfig = nn.ErrInvalidLayerConfig

	// ErrShapeMismatch is wrapped by shape panics.
	ErrShapeMismatch = nn.ErrShapeMismatch
)

// UnsupportedError carries the kind and value of an unsupported enum.
type UnsupportedError = nn.UnsupportedError

// Activations

// Activation selects a neuron's activation function.
type Activation = nn.Activation

// Activation functions.
const (
	ReLU      = nn.ReLU
	LeakyReLU = nn.LeakyReLU
	Sigmoid   = nn.Sigmoid
	Tanh      = nn.Tanh
	Linear    = nn.Linear
)

// DefaultLeakySlope is the LeakyReLU slope used when a neuron has no argument.
const DefaultLeakySlope = nn.DefaultLeakySlope

// AllActivations lists every activation function.
func AllActivations() []Activation { return nn.AllActivations() }

// ParseActivation resolves names such as "tanh" or "leaky_relu".
func ParseActivation(name string) (Activation, error) { return nn.ParseActivation(name) }

// Losses

// Loss selects the loss function of a trainer.
type Loss = nn.Loss

// Loss functions.
const (
	MSE     = nn.MSE
	SE      = nn.SE
	E       = nn.E
	MAE     = nn.MAE
	RMSE    = nn.RMSE
	Huber   = nn.Huber
	LogCosh = nn.LogCosh
	MBCE    = nn.MBCE
	RMLSE   = nn.RMLSE
)

// AllLosses lists every loss function.
func AllLosses() []Loss { return nn.AllLosses() }

// ParseLoss resolves names such as "mse" or "log_cosh".
func ParseLoss(name string) (Loss, error) { return nn.ParseLoss(name) }

// Initialization

// WeightInit selects how initial weights are drawn.
type WeightInit = nn.WeightInit

// Weight initialization strategies.
const (
	RandomInit        = nn.RandomInit
	NormalInit        = nn.NormalInit
	XavierUniformInit = nn.XavierUniformInit
	XavierNormalInit  = nn.XavierNormalInit
)

// AllWeightInits lists every weight initialization strategy.
func AllWeightInits() []WeightInit { return nn.AllWeightInits() }

// ParseWeightInit resolves names such as "xavier_uniform".
func ParseWeightInit(name string) (WeightInit, error) { return nn.ParseWeightInit(name) }

// BiasInit selects the constant every bias of a layer starts at.
type BiasInit = nn.BiasInit

// Bias initialization strategies.
const (
	BiasOne       = nn.BiasOne
	BiasHundredth = nn.BiasHundredth
	BiasZero      = nn.BiasZero
)

// AllBiasInits lists every bias initialization strategy.
func AllBiasInits() []BiasInit { return nn.AllBiasInits() }

// ParseBiasInit resolves names such as "zero" or "0.01".
func ParseBiasInit(name string) (BiasInit, error) { return nn.ParseBiasInit(name) }
