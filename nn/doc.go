// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides fully connected feedforward networks of scalar neurons.
//
// # Overview
//
// This package contains:
//   - Network: per-layer weights, biases and forward-pass intermediates
//   - Generate: builds a Network from per-layer configs
//   - Activations: ReLU, LeakyReLU, Sigmoid, Tanh, Linear
//   - Losses: MSE, SE, E, MAE, RMSE, Huber, LogCosh, MBCE, RMLSE
//   - Initialization: random, normal, Xavier uniform, Xavier normal weights and
//     constant biases
//
// Every network stores its state as plain [layer][neuron] slices so a display
// can read weights, sums and activations directly. Layer 0 is the input layer
// and has no incoming weights.
//
// # Basic Usage
//
//	import (
//	    "fmt"
//	    "log"
//	    "math/rand"
//
//	    "github.com/born-ml/neuralviz/nn"
//	)
//
//	func main() {
//	    rng := rand.New(rand.NewSource(23144532))
//
//	    network, err := nn.Generate(rng, []nn.LayerConfig{
//	        {NeuronCount: 1},
//	        nn.DefaultLayerConfig(8),
//	        {NeuronCount: 1, Activation: nn.Linear, WeightInit: nn.XavierUniformInit, BiasInit: nn.BiasZero},
//	    }, -0.5, 0.5)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    out, err := network.Predict([]float64{0.25})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(out)
//	}
//
// # Stepping the Forward Pass
//
// A visualizer can animate the forward pass at any granularity. Running every
// step of a coarser level is equivalent to one call of the coarser method:
//
//	network.SetInput(x)
//	for l := 1; l < network.LayerCount(); l++ {
//	    network.ForwardPropagateLayer(l) // or per neuron, or per weight
//	}
//
// # Errors
//
// Enum values outside their set return an error matching ErrUnsupported, with
// details in *UnsupportedError. Mismatched slice shapes are programming errors
// and panic with an error wrapping ErrShapeMismatch.
package nn
