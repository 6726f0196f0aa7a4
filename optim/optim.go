// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/neuralviz/internal/optim"
)

// Optimizer updates network parameters from averaged gradients.
type Optimizer = optim.Optimizer

// Extrema reports the weight and delta bounds seen during one update.
type Extrema = optim.Extrema

// Kind names an optimizer in configuration.
type Kind = optim.Kind

// Optimizer kinds.
const (
	KindAdam = optim.KindAdam
	KindSGD  = optim.KindSGD
)

// ParseKind resolves "adam" or "sgd".
func ParseKind(name string) (Kind, error) {
	return optim.ParseKind(name)
}

// New builds an optimizer of the given kind. momentum is used by SGD only.
func New(kind Kind, lr, momentum float64) (Optimizer, error) {
	return optim.New(kind, lr, momentum)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
//
// Example:
//
//	optimizer := optim.NewAdam(optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: [2]float64{0.9, 0.999},
//	})
func NewAdam(config AdamConfig) *Adam {
	return optim.NewAdam(config)
}

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}
