// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package train

import (
	"github.com/born-ml/neuralviz/internal/nn"
	"github.com/born-ml/neuralviz/internal/train"
)

// Trainer trains one network.
type Trainer = train.Trainer

// Config controls a training run.
type Config = train.Config

// Session is one training run advanced by Step.
type Session = train.Session

// Progress is a snapshot of a running session.
type Progress = train.Progress

// Yield identifies the point at which Session.Step returned.
type Yield = train.Yield

// Yield points.
const (
	YieldBatch        = train.YieldBatch
	YieldEpochTrained = train.YieldEpochTrained
	YieldTest         = train.YieldTest
	YieldEpochEnd     = train.YieldEpochEnd
	YieldDone         = train.YieldDone
)

// Errors.
var (
	ErrEmptyDataset  = train.ErrEmptyDataset
	ErrStopped       = train.ErrStopped
	ErrInvalidConfig = train.ErrInvalidConfig
)

// DefaultConfig returns 50 epochs of Adam at lr 0.05 on MAE, batch size 32.
func DefaultConfig() Config {
	return train.DefaultConfig()
}

// New creates a trainer for network.
//
// Example:
//
//	cfg := train.DefaultConfig()
//	cfg.Loss = nn.MSE
//	tr, err := train.New(network, cfg)
func New(network *nn.Network, cfg Config) (*Trainer, error) {
	return train.New(network, cfg)
}
