// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package data

import (
	"math/rand"

	"github.com/born-ml/neuralviz/internal/data"
	"github.com/born-ml/neuralviz/internal/mathutil"
)

// Entry is one (x, y) sample.
type Entry = data.Entry

// Set is an ordered list of samples.
type Set = data.Set

// Datasets is the output of Generate.
type Datasets = data.Datasets

// GeneratorConfig controls sampling, splitting and scaling.
type GeneratorConfig = data.GeneratorConfig

// DefaultGeneratorConfig returns noisy sin samples over [-2π, 2π] scaled to [-1, 1].
func DefaultGeneratorConfig() GeneratorConfig {
	return data.DefaultGeneratorConfig()
}

// Generate draws, splits, scales and optionally shuffles samples per cfg.
func Generate(rng *rand.Rand, cfg GeneratorConfig) (*Datasets, error) {
	return data.Generate(rng, cfg)
}

// ErrInvalidConfig is returned for generator settings outside their valid range.
var ErrInvalidConfig = data.ErrInvalidConfig

// Target functions

// TargetFunction selects the function samples are drawn from.
type TargetFunction = data.TargetFunction

// Target functions.
const (
	Exponential = data.Exponential
	Linear      = data.Linear
	Sin         = data.Sin
	CustomStep  = data.CustomStep
)

// AllTargetFunctions lists every target function.
func AllTargetFunctions() []TargetFunction { return data.AllTargetFunctions() }

// ParseTargetFunction resolves names such as "sin" or "custom_step".
func ParseTargetFunction(name string) (TargetFunction, error) {
	return data.ParseTargetFunction(name)
}

// Scaling

// Scaler maps one range linearly onto another.
type Scaler = mathutil.Scaler

// ErrDegenerateRange is returned for a scaler over a zero-width range.
var ErrDegenerateRange = mathutil.ErrDegenerateRange

// NewScaler builds a scaler from [originalMin, originalMax] to [newMin, newMax].
//
// Example:
//
//	s, err := data.NewScaler(0, 10, -1, 1)
//	s.Scale(5) // 0
func NewScaler(originalMin, originalMax, newMin, newMax float64) (*Scaler, error) {
	return mathutil.NewScaler(originalMin, originalMax, newMin, newMax)
}
