package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/born-ml/neuralviz/internal/data"
	"github.com/born-ml/neuralviz/internal/nn"
	"github.com/born-ml/neuralviz/internal/optim"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, int64(DefaultSeed), cfg.Seed)

	layers, err := cfg.LayerConfigs()
	require.NoError(t, err)
	require.Len(t, layers, 3)
	assert.Equal(t, 1, layers[0].NeuronCount)
	assert.Equal(t, 8, layers[1].NeuronCount)
	assert.Equal(t, nn.Tanh, layers[1].Activation)
	assert.Equal(t, nn.XavierUniformInit, layers[1].WeightInit)
	assert.Equal(t, nn.BiasZero, layers[1].BiasInit)
	assert.Equal(t, nn.Linear, layers[2].Activation)

	gen, err := cfg.GeneratorConfig()
	require.NoError(t, err)
	assert.Equal(t, data.DefaultGeneratorConfig(), gen)

	tr, err := cfg.TrainConfig()
	require.NoError(t, err)
	assert.Equal(t, 50, tr.EpochCount)
	assert.Equal(t, nn.MAE, tr.Loss)
	assert.Equal(t, optim.KindAdam, tr.Optimizer)
	assert.True(t, tr.ReinitializeOptimizer)
}

func TestParse_Overlay(t *testing.T) {
	doc := `
seed: 7
network:
  layers:
    - neurons: 2
    - {neurons: 16, activation: leaky_relu, activation_args: [0.2], weight_init: xavier normal, bias_init: hundredth}
    - {neurons: 1, activation: sigmoid}
  parallel: {enabled: true, workers: 4, min_chunk: 8}
data:
  target_function: custom_step
  noise_factor: 0
training:
  loss: huber
  optimizer: sgd
  momentum: 0.9
  batch_size: 8
`
	cfg, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)

	layers, err := cfg.LayerConfigs()
	require.NoError(t, err)
	require.Len(t, layers, 3)
	assert.Equal(t, nn.LayerConfig{
		NeuronCount:    16,
		Activation:     nn.LeakyReLU,
		ActivationArgs: []float64{0.2},
		WeightInit:     nn.XavierNormalInit,
		BiasInit:       nn.BiasHundredth,
	}, layers[1])
	// Unset fields on a trained layer fall back to layer defaults.
	assert.Equal(t, nn.Sigmoid, layers[2].Activation)
	assert.Equal(t, nn.XavierUniformInit, layers[2].WeightInit)

	p := cfg.ParallelConfig()
	assert.True(t, p.Enabled)
	assert.Equal(t, 4, p.Workers)
	assert.Equal(t, 8, p.MinChunk)

	gen, err := cfg.GeneratorConfig()
	require.NoError(t, err)
	assert.Equal(t, data.CustomStep, gen.TargetFunction)
	assert.Zero(t, gen.NoiseFactor)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, 1500, gen.DataCount)
	assert.InDelta(t, 2*math.Pi, gen.XRangeMax, 1e-12)

	tr, err := cfg.TrainConfig()
	require.NoError(t, err)
	assert.Equal(t, nn.Huber, tr.Loss)
	assert.Equal(t, optim.KindSGD, tr.Optimizer)
	assert.InDelta(t, 0.9, tr.Momentum, 1e-12)
	assert.Equal(t, 8, tr.BatchSize)
	assert.Equal(t, 50, tr.EpochCount)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		target error
	}{
		{"unknown key", "trainign: {}", nil},
		{"bad activation", "network: {layers: [{neurons: 1}, {neurons: 2, activation: softmax}]}", nn.ErrUnsupported},
		{"bad weight init", "network: {layers: [{neurons: 1}, {neurons: 2, weight_init: he}]}", nn.ErrUnsupported},
		{"bad bias init", "network: {layers: [{neurons: 1}, {neurons: 2, bias_init: '0.5'}]}", nn.ErrUnsupported},
		{"empty layer", "network: {layers: [{neurons: 1}, {neurons: 0}]}", nn.ErrInvalidLayerConfig},
		{"input only", "network: {layers: [{neurons: 1}]}", ErrInvalidConfig},
		{"empty weight scale", "network: {weight_scale_min: 1, weight_scale_max: 1}", ErrInvalidConfig},
		{"negative workers", "network: {parallel: {workers: -1}}", ErrInvalidConfig},
		{"bad target", "data: {target_function: cosine}", nn.ErrUnsupported},
		{"bad split", "data: {train_test_split_percent: 101}", data.ErrInvalidConfig},
		{"bad loss", "training: {loss: hinge}", nn.ErrUnsupported},
		{"bad optimizer", "training: {optimizer: rmsprop}", nn.ErrUnsupported},
		{"zero batch", "training: {batch_size: 0}", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.doc))
			require.Error(t, err)
			if tc.target != nil {
				assert.True(t, errors.Is(err, tc.target), "got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("training: {epochs: 3}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Training.Epochs)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("training: {loss: nope}\n"), 0o600))
	_, err = Load(bad)
	assert.True(t, errors.Is(err, nn.ErrUnsupported))
	assert.Contains(t, err.Error(), bad)
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Training.Optimizer = "sgd"
	cfg.Training.Momentum = 0.5

	out, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), "target_function: sin")

	back, err := Parse(strings.NewReader(string(out)))
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestBuild_Deterministic(t *testing.T) {
	cfg := Default()
	cfg.Data.DataCount = 100

	n1, d1, err := cfg.Build()
	require.NoError(t, err)
	n2, d2, err := cfg.Build()
	require.NoError(t, err)

	assert.Equal(t, []int{1, 8, 1}, n1.LayerSizes())
	assert.Equal(t, n1.Weights, n2.Weights)
	assert.Equal(t, d1.TrainPrepared, d2.TrainPrepared)

	cfg.Seed++
	n3, _, err := cfg.Build()
	require.NoError(t, err)
	assert.NotEqual(t, n1.Weights, n3.Weights)
}
