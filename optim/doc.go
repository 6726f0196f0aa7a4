// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the parameter update rules used by the trainer.
//
// # Overview
//
// This package contains:
//   - Adam: Adaptive Moment Estimation with bias correction
//   - SGD: Stochastic Gradient Descent with optional momentum
//   - Optimizer interface for custom optimizers
//
// Optimizers work on the [layer][neuron][weight] slices of an nn.Network and
// update them in place. Each Update returns the weight and delta extrema of
// the step so a display can color parameters without another pass.
//
// # Basic Usage
//
//	opt := optim.NewAdam(optim.AdamConfig{LR: 0.05})
//	opt.Init(network.LayerSizes())
//
//	for step := 1; step <= steps; step++ {
//	    // ... fill weightGrads and biasGrads ...
//	    ext := opt.Update(network.Weights, network.Biases, weightGrads, biasGrads, step)
//	    network.WeightMin, network.WeightMax = ext.WeightMin, ext.WeightMax
//	}
//
// # Adam Bias Moments
//
// Bias moments are kept per neuron. Set AdamConfig.SharedBiasMoments to keep a
// single pair per layer that every neuron of the layer updates in turn.
package optim
