package nn

import (
	"math"

	"github.com/born-ml/neuralviz/internal/parallel"
	"gonum.org/v1/gonum/floats"
)

// Forward propagation is exposed at four granularities so a display can step
// through it: weight, sum, activation function, neuron, layer and network.
// All layer indices must lie in [1, LayerCount()); layer 0 is the input.

// ForwardPropagate runs every layer from 1 to LayerCount()-1 in order.
// Activations[0] must be set by the caller beforehand.
func (n *Network) ForwardPropagate() error {
	for l := 1; l < len(n.Activations); l++ {
		if err := n.ForwardPropagateLayer(l); err != nil {
			return err
		}
	}
	return nil
}

// ForwardPropagateLayer computes every neuron of layer l.
//
// With parallelism enabled (see SetParallel) and a wide enough layer, neurons
// are computed concurrently and the activation extrema are refreshed once at
// the end of the layer. The resulting activations are identical to the
// sequential path.
func (n *Network) ForwardPropagateLayer(l int) error {
	size := len(n.Activations[l])
	if !n.parallel.Parallel(size) {
		for i := range size {
			if err := n.ForwardPropagateNeuron(l, i); err != nil {
				return err
			}
		}
		return nil
	}

	errs := make([]error, size)
	parallel.For(size, n.parallel, func(i int) {
		errs[i] = n.computeNeuron(l, i)
	})
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	n.updateActivationExtrema()
	return nil
}

// ForwardPropagateNeuron computes all weight results, the sum and the
// activation of neuron i in layer l.
func (n *Network) ForwardPropagateNeuron(l, i int) error {
	for w := range n.Weights[l][i] {
		n.ForwardPropagateWeight(l, i, w)
	}
	n.ForwardPropagateSum(l, i)
	return n.ForwardPropagateActivationFunction(l, i)
}

// ForwardPropagateWeight stores activation[l-1][w] * weight[l][i][w].
func (n *Network) ForwardPropagateWeight(l, i, w int) {
	n.WeightResults[l][i][w] = n.Activations[l-1][w] * n.Weights[l][i][w]
}

// ForwardPropagateSum stores bias[l][i] + Σ weightResults[l][i].
func (n *Network) ForwardPropagateSum(l, i int) {
	n.SumResults[l][i] = n.Biases[l][i] + floats.Sum(n.WeightResults[l][i])
}

// ForwardPropagateActivationFunction applies the neuron's activation to its
// sum, then rescans every activation in the network for ActivationMin/Max.
func (n *Network) ForwardPropagateActivationFunction(l, i int) error {
	if err := n.activate(l, i); err != nil {
		return err
	}
	n.updateActivationExtrema()
	return nil
}

// computeNeuron is ForwardPropagateNeuron without the global extrema scan.
// It only writes state owned by neuron i, so neurons of one layer may run
// concurrently.
func (n *Network) computeNeuron(l, i int) error {
	floats.MulTo(n.WeightResults[l][i], n.Activations[l-1], n.Weights[l][i])
	n.ForwardPropagateSum(l, i)
	return n.activate(l, i)
}

func (n *Network) activate(l, i int) error {
	a, err := n.ActivationFunctions[l][i].Apply(n.SumResults[l][i], n.ActivationArgs[l][i])
	if err != nil {
		return err
	}
	n.Activations[l][i] = a
	return nil
}

func (n *Network) updateActivationExtrema() {
	lo, hi := math.MaxFloat64, -math.MaxFloat64
	for _, layer := range n.Activations {
		if len(layer) == 0 {
			continue
		}
		lo = math.Min(lo, floats.Min(layer))
		hi = math.Max(hi, floats.Max(layer))
	}
	n.ActivationMin, n.ActivationMax = lo, hi
}
