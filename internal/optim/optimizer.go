// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - Adam: Adaptive Moment Estimation with a time step supplied by the caller
//   - SGD: Stochastic Gradient Descent with momentum
//
// Parameters are the jagged arrays owned by nn.Network: weights indexed
// [layer][neuron][incoming] and biases indexed [layer][neuron], with layer 0
// (the input layer) left empty. Gradients must have exactly the same shape.
//
// Example usage:
//
//	adam := optim.NewAdam(optim.AdamConfig{LR: 0.05})
//	adam.Init(network.LayerSizes())
//
//	for epoch := range epochs {
//	    for _, batch := range batches {
//	        wGrads, bGrads := meanGradients(network, batch)
//	        ext := adam.Update(network.Weights, network.Biases, wGrads, bGrads, epoch+1)
//	        network.WeightMin, network.WeightMax = ext.WeightMin, ext.WeightMax
//	    }
//	}
package optim

import (
	"math"
	"strings"

	"github.com/born-ml/neuralviz/internal/nn"
	"github.com/pkg/errors"
)

// Optimizer is the base interface for all optimization algorithms.
//
// Optimizers are stateful: their accumulators mirror the network shape passed
// to Init and persist across Update calls until Init is called again.
type Optimizer interface {
	// Init (re)allocates the optimizer state for the given layer sizes and
	// zeroes all accumulators.
	Init(layerSizes []int)

	// Initialized reports whether Init has been called.
	Initialized() bool

	// Update applies one step to weights and biases in place and returns the
	// post-update parameter extrema and the extrema of the applied deltas.
	//
	// timeStep starts at 1. Panics with nn.ErrShapeMismatch if the gradients,
	// the parameters and the optimizer state disagree in shape.
	Update(weights [][][]float64, biases [][]float64, weightGrads [][][]float64, biasGrads [][]float64, timeStep int) Extrema

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR updates the learning rate.
	SetLR(lr float64)
}

// Extrema holds the min/max of all updated weights and biases, and of all
// their deltas (new - old), for one Update call.
type Extrema struct {
	WeightMin float64
	WeightMax float64
	DeltaMin  float64
	DeltaMax  float64
}

func newExtrema() Extrema {
	return Extrema{
		WeightMin: math.MaxFloat64,
		WeightMax: -math.MaxFloat64,
		DeltaMin:  math.MaxFloat64,
		DeltaMax:  -math.MaxFloat64,
	}
}

func (e *Extrema) observe(value, delta float64) {
	e.WeightMin = math.Min(e.WeightMin, value)
	e.WeightMax = math.Max(e.WeightMax, value)
	e.DeltaMin = math.Min(e.DeltaMin, delta)
	e.DeltaMax = math.Max(e.DeltaMax, delta)
}

// Kind names an optimizer in configuration.
type Kind string

// Supported optimizers.
const (
	KindAdam Kind = "adam"
	KindSGD  Kind = "sgd"
)

// ParseKind resolves "adam" or "sgd".
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case KindAdam, KindSGD:
		return k, nil
	default:
		return "", nn.Unsupported("optimizer", name)
	}
}

// New builds an optimizer of the given kind. momentum is only used by SGD.
func New(kind Kind, lr, momentum float64) (Optimizer, error) {
	switch kind {
	case KindAdam:
		return NewAdam(AdamConfig{LR: lr}), nil
	case KindSGD:
		return NewSGD(SGDConfig{LR: lr, Momentum: momentum}), nil
	default:
		return nil, nn.Unsupported("optimizer", kind)
	}
}

// zeros3 allocates [layer][neuron][incoming] zeros for layer sizes, leaving layer 0 nil.
func zeros3(layerSizes []int) [][][]float64 {
	out := make([][][]float64, len(layerSizes))
	for l := 1; l < len(layerSizes); l++ {
		out[l] = make([][]float64, layerSizes[l])
		for i := range out[l] {
			out[l][i] = make([]float64, layerSizes[l-1])
		}
	}
	return out
}

// checkShapes panics unless weights, gradients and state share one shape.
func checkShapes(weights, weightGrads, state [][][]float64, biases, biasGrads [][]float64) {
	if len(weights) != len(weightGrads) || len(weights) != len(state) || len(weights) != len(biases) || len(weights) != len(biasGrads) {
		shapePanic("layer count: weights %d, weight grads %d, state %d, biases %d, bias grads %d",
			len(weights), len(weightGrads), len(state), len(biases), len(biasGrads))
	}
	for l := 1; l < len(weights); l++ {
		if len(weights[l]) != len(weightGrads[l]) || len(weights[l]) != len(state[l]) ||
			len(weights[l]) != len(biases[l]) || len(weights[l]) != len(biasGrads[l]) {
			shapePanic("layer %d neuron count differs", l)
		}
		for i := range weights[l] {
			if len(weights[l][i]) != len(weightGrads[l][i]) || len(weights[l][i]) != len(state[l][i]) {
				shapePanic("layer %d neuron %d: %d weights, %d grads, %d state",
					l, i, len(weights[l][i]), len(weightGrads[l][i]), len(state[l][i]))
			}
		}
	}
}

func shapePanic(format string, args ...any) {
	panic(errors.Wrapf(nn.ErrShapeMismatch, "optim: "+format, args...))
}
