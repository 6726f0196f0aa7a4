// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package data_test

import (
	"math/rand"
	"testing"

	"github.com/born-ml/neuralviz/data"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	cfg := data.DefaultGeneratorConfig()
	cfg.DataCount = 100

	ds, err := data.Generate(rand.New(rand.NewSource(1)), cfg) //nolint:gosec // deterministic test data
	require.NoError(t, err)
	assert.Equal(t, 101, len(ds.Train)+len(ds.Test))
	assert.Len(t, ds.TrainPrepared, len(ds.Train))
	assert.Len(t, ds.TestPreparedOriginalOrder, len(ds.Test))
}

func TestNewScaler(t *testing.T) {
	s, err := data.NewScaler(0, 10, -1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0, s.Scale(5), 1e-12)

	_, err = data.NewScaler(3, 3, 0, 1)
	assert.True(t, errors.Is(err, data.ErrDegenerateRange))
}

func TestParseTargetFunction(t *testing.T) {
	tf, err := data.ParseTargetFunction("Custom Step")
	require.NoError(t, err)
	assert.Equal(t, data.CustomStep, tf)
}
