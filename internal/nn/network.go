package nn

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/born-ml/neuralviz/internal/parallel"
)

// Network is a fully-connected feedforward network stored as jagged arrays.
//
// Layer 0 is the input layer and only has Activations; every other per-layer
// slice has a nil entry at index 0. For l >= 1 and neuron n:
//
//	len(Weights[l][n]) == len(WeightResults[l][n]) == len(Activations[l-1])
//
// A Network is a passive value container: the forward-pass methods mutate it
// in place, the trainer writes Errors and the optimizer writes Weights and
// Biases. It has no internal locking and must not be mutated concurrently.
type Network struct {
	// Diagnostic extrema, read by displays.
	WeightMin      float64
	WeightMax      float64
	WeightDeltaMin float64
	WeightDeltaMax float64
	ActivationMin  float64
	ActivationMax  float64

	Weights       [][][]float64 // [layer][neuron][incoming]
	WeightResults [][][]float64 // activation[l-1][w] * weight[l][n][w]
	Biases        [][]float64   // [layer][neuron]
	Activations   [][]float64   // [layer][neuron]
	SumResults    [][]float64   // bias + Σ weight results
	Errors        [][]float64   // ∂loss/∂sum, written by backpropagation

	ActivationFunctions [][]Activation // [layer][neuron]
	ActivationArgs      [][][]float64  // [layer][neuron][arg], e.g. LeakyReLU slope

	ErrorTotal float64 // last loss computed for this network

	parallel parallel.Config
}

// newNetwork allocates a network for the given layer sizes with zeroed parameters.
func newNetwork(sizes []int) *Network {
	layers := len(sizes)
	n := &Network{
		WeightMin:           math.MaxFloat64,
		WeightMax:           -math.MaxFloat64,
		WeightDeltaMin:      math.MaxFloat64,
		WeightDeltaMax:      -math.MaxFloat64,
		ActivationMin:       math.MaxFloat64,
		ActivationMax:       -math.MaxFloat64,
		Weights:             make([][][]float64, layers),
		WeightResults:       make([][][]float64, layers),
		Biases:              make([][]float64, layers),
		Activations:         make([][]float64, layers),
		SumResults:          make([][]float64, layers),
		Errors:              make([][]float64, layers),
		ActivationFunctions: make([][]Activation, layers),
		ActivationArgs:      make([][][]float64, layers),
	}

	for l, size := range sizes {
		n.Activations[l] = make([]float64, size)
		if l == 0 {
			continue
		}
		fanIn := sizes[l-1]
		n.Weights[l] = make([][]float64, size)
		n.WeightResults[l] = make([][]float64, size)
		n.Biases[l] = make([]float64, size)
		n.SumResults[l] = make([]float64, size)
		n.Errors[l] = make([]float64, size)
		n.ActivationFunctions[l] = make([]Activation, size)
		n.ActivationArgs[l] = make([][]float64, size)
		for i := range size {
			n.Weights[l][i] = make([]float64, fanIn)
			n.WeightResults[l][i] = make([]float64, fanIn)
		}
	}
	return n
}

// LayerCount returns the number of layers including the input layer.
func (n *Network) LayerCount() int {
	return len(n.Activations)
}

// LayerSizes returns the neuron count of every layer.
func (n *Network) LayerSizes() []int {
	sizes := make([]int, len(n.Activations))
	for l, a := range n.Activations {
		sizes[l] = len(a)
	}
	return sizes
}

// SetParallel configures per-neuron parallelism inside ForwardPropagateLayer.
func (n *Network) SetParallel(cfg parallel.Config) {
	n.parallel = cfg
}

// SetInput copies x into the input layer.
//
// Panics with ErrShapeMismatch if len(x) differs from the input layer size.
func (n *Network) SetInput(x []float64) {
	if len(x) != len(n.Activations[0]) {
		shapePanic("input has %d values, input layer has %d neurons", len(x), len(n.Activations[0]))
	}
	copy(n.Activations[0], x)
}

// Output returns the output layer activations. The slice aliases network state.
func (n *Network) Output() []float64 {
	return n.Activations[len(n.Activations)-1]
}

// Predict sets the input, runs a full forward pass and returns a copy of the output.
func (n *Network) Predict(x []float64) ([]float64, error) {
	n.SetInput(x)
	if err := n.ForwardPropagate(); err != nil {
		return nil, err
	}
	return slices.Clone(n.Output()), nil
}

// Clone returns a deep copy that shares no memory with n.
func (n *Network) Clone() *Network {
	return &Network{
		WeightMin:           n.WeightMin,
		WeightMax:           n.WeightMax,
		WeightDeltaMin:      n.WeightDeltaMin,
		WeightDeltaMax:      n.WeightDeltaMax,
		ActivationMin:       n.ActivationMin,
		ActivationMax:       n.ActivationMax,
		Weights:             clone3(n.Weights),
		WeightResults:       clone3(n.WeightResults),
		Biases:              clone2(n.Biases),
		Activations:         clone2(n.Activations),
		SumResults:          clone2(n.SumResults),
		Errors:              clone2(n.Errors),
		ActivationFunctions: clone2(n.ActivationFunctions),
		ActivationArgs:      clone3(n.ActivationArgs),
		ErrorTotal:          n.ErrorTotal,
		parallel:            n.parallel,
	}
}

// String renders every layer, neuron and weight for debugging.
func (n *Network) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ErrorTotal: %g\n", n.ErrorTotal)
	fmt.Fprintf(&sb, "WeightMin: %g\n", n.WeightMin)
	fmt.Fprintf(&sb, "WeightMax: %g\n", n.WeightMax)
	fmt.Fprintf(&sb, "ActivationMin: %g\n", n.ActivationMin)
	fmt.Fprintf(&sb, "ActivationMax: %g\n", n.ActivationMax)
	sb.WriteString("Layers:\n")
	for l := range n.Activations {
		fmt.Fprintf(&sb, "  %d. Layer:\n", l+1)
		for i, a := range n.Activations[l] {
			fmt.Fprintf(&sb, "    %d. Neuron:\n", i+1)
			fmt.Fprintf(&sb, "      Activation: %g\n", a)
			if l == 0 {
				continue
			}
			fmt.Fprintf(&sb, "      Error: %g\n", n.Errors[l][i])
			fmt.Fprintf(&sb, "      ActivationFunction: %s\n", n.ActivationFunctions[l][i])
			fmt.Fprintf(&sb, "      ActivationFunctionArgs: %v\n", n.ActivationArgs[l][i])
			fmt.Fprintf(&sb, "      SumResult: %g\n", n.SumResults[l][i])
			fmt.Fprintf(&sb, "      Bias: %g\n", n.Biases[l][i])
			sb.WriteString("      Weights:\n")
			for w, weight := range n.Weights[l][i] {
				fmt.Fprintf(&sb, "        %d. Weight: %g (result %g)\n", w+1, weight, n.WeightResults[l][i][w])
			}
		}
	}
	return sb.String()
}

func clone2[T any](src [][]T) [][]T {
	if src == nil {
		return nil
	}
	dst := make([][]T, len(src))
	for i, row := range src {
		dst[i] = slices.Clone(row)
	}
	return dst
}

func clone3[T any](src [][][]T) [][][]T {
	if src == nil {
		return nil
	}
	dst := make([][][]T, len(src))
	for i, plane := range src {
		dst[i] = clone2(plane)
	}
	return dst
}
