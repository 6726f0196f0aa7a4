// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package train_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/born-ml/neuralviz/data"
	"github.com/born-ml/neuralviz/nn"
	"github.com/born-ml/neuralviz/train"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainSin(t *testing.T) {
	rng := rand.New(rand.NewSource(23144532)) //nolint:gosec // deterministic test data
	network, err := nn.Generate(rng, []nn.LayerConfig{
		{NeuronCount: 1},
		nn.DefaultLayerConfig(8),
		{NeuronCount: 1, Activation: nn.Linear, WeightInit: nn.XavierUniformInit, BiasInit: nn.BiasZero},
	}, -0.5, 0.5)
	require.NoError(t, err)

	gen := data.DefaultGeneratorConfig()
	gen.DataCount = 200
	ds, err := data.Generate(rng, gen)
	require.NoError(t, err)

	cfg := train.DefaultConfig()
	cfg.EpochCount = 20
	cfg.BatchSize = 8
	tr, err := train.New(network, cfg)
	require.NoError(t, err)

	var ends int
	err = tr.Train(context.Background(), ds.TrainPrepared, ds.TestPrepared, func(p train.Progress) {
		if p.Yield == train.YieldEpochEnd {
			ends++
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 20, ends)
	require.Len(t, tr.EpochErrors, 20)
	require.Len(t, tr.TestErrors, 20)
	assert.Less(t, tr.EpochErrors[19], tr.EpochErrors[0])
}
