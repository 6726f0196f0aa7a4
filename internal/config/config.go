// Package config loads the YAML configuration of a network, its dataset and
// its training run, and converts it into the component configs.
//
// Enum values are spelled by name, for example:
//
//	seed: 23144532
//	network:
//	  weight_scale_min: -0.5
//	  weight_scale_max: 0.5
//	  layers:
//	    - neurons: 1
//	    - {neurons: 8, activation: tanh, weight_init: xavier_uniform, bias_init: zero}
//	    - {neurons: 1, activation: linear, weight_init: xavier_uniform, bias_init: zero}
//	data:
//	  target_function: sin
//	training:
//	  loss: mae
//	  optimizer: adam
package config

import (
	"bytes"
	"io"
	"math/rand"
	"os"

	"github.com/born-ml/neuralviz/internal/data"
	"github.com/born-ml/neuralviz/internal/nn"
	"github.com/born-ml/neuralviz/internal/optim"
	"github.com/born-ml/neuralviz/internal/parallel"
	"github.com/born-ml/neuralviz/internal/train"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a value is out of range. Unknown enum
// names match nn.ErrUnsupported instead.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultSeed seeds every random consumer when the file sets none.
const DefaultSeed = 23144532

// Config is the root of the YAML document.
type Config struct {
	Seed     int64    `yaml:"seed"`
	Network  Network  `yaml:"network"`
	Data     Data     `yaml:"data"`
	Training Training `yaml:"training"`
}

// Network describes the layers to generate. The first layer is the input
// layer; only its neuron count is used.
type Network struct {
	Layers         []Layer  `yaml:"layers"`
	WeightScaleMin float64  `yaml:"weight_scale_min"`
	WeightScaleMax float64  `yaml:"weight_scale_max"`
	Parallel       Parallel `yaml:"parallel"`
}

// Layer is one entry of Network.Layers.
type Layer struct {
	Neurons        int       `yaml:"neurons"`
	Activation     string    `yaml:"activation,omitempty"`
	ActivationArgs []float64 `yaml:"activation_args,omitempty"`
	WeightInit     string    `yaml:"weight_init,omitempty"`
	BiasInit       string    `yaml:"bias_init,omitempty"`
}

// Parallel controls per-layer parallel forward propagation.
type Parallel struct {
	Enabled  bool `yaml:"enabled"`
	Workers  int  `yaml:"workers"`
	MinChunk int  `yaml:"min_chunk"`
}

// Data mirrors data.GeneratorConfig.
type Data struct {
	TargetFunction        string  `yaml:"target_function"`
	DataCount             int     `yaml:"data_count"`
	XRangeMin             float64 `yaml:"x_range_min"`
	XRangeMax             float64 `yaml:"x_range_max"`
	ScaleMin              float64 `yaml:"scale_min"`
	ScaleMax              float64 `yaml:"scale_max"`
	TrainTestSplitPercent float64 `yaml:"train_test_split_percent"`
	PickTestFromWholeSet  bool    `yaml:"pick_test_from_whole_set"`
	TestIsEvenlyPicked    bool    `yaml:"test_is_evenly_picked"`
	Shuffle               bool    `yaml:"shuffle"`
	NoiseFactor           float64 `yaml:"noise_factor"`
}

// Training mirrors train.Config.
type Training struct {
	Epochs                int     `yaml:"epochs"`
	LearningRate          float64 `yaml:"learning_rate"`
	Loss                  string  `yaml:"loss"`
	BatchSize             int     `yaml:"batch_size"`
	BatchesPerYield       int     `yaml:"batches_per_yield"`
	ReinitializeOptimizer bool    `yaml:"reinitialize_optimizer"`
	Optimizer             string  `yaml:"optimizer"`
	Momentum              float64 `yaml:"momentum,omitempty"`
}

// Default returns a 1 -> 8 tanh -> 1 linear network fitted to noisy sin
// samples with Adam on MAE.
func Default() Config {
	gen := data.DefaultGeneratorConfig()
	tr := train.DefaultConfig()
	return Config{
		Seed: DefaultSeed,
		Network: Network{
			Layers: []Layer{
				{Neurons: 1},
				{Neurons: 8, Activation: nn.Tanh.String(), WeightInit: nn.XavierUniformInit.String(), BiasInit: nn.BiasZero.String()},
				{Neurons: 1, Activation: nn.Linear.String(), WeightInit: nn.XavierUniformInit.String(), BiasInit: nn.BiasZero.String()},
			},
			WeightScaleMin: -0.5,
			WeightScaleMax: 0.5,
		},
		Data: Data{
			TargetFunction:        gen.TargetFunction.String(),
			DataCount:             gen.DataCount,
			XRangeMin:             gen.XRangeMin,
			XRangeMax:             gen.XRangeMax,
			ScaleMin:              gen.ScaleMin,
			ScaleMax:              gen.ScaleMax,
			TrainTestSplitPercent: gen.TrainTestSplitPercent,
			PickTestFromWholeSet:  gen.PickTestFromWholeSet,
			TestIsEvenlyPicked:    gen.TestIsEvenlyPicked,
			Shuffle:               gen.Shuffle,
			NoiseFactor:           gen.NoiseFactor,
		},
		Training: Training{
			Epochs:                tr.EpochCount,
			LearningRate:          tr.LearningRate,
			Loss:                  tr.Loss.String(),
			BatchSize:             tr.BatchSize,
			BatchesPerYield:       tr.BatchesPerYield,
			ReinitializeOptimizer: tr.ReinitializeOptimizer,
			Optimizer:             string(tr.Optimizer),
			Momentum:              tr.Momentum,
		},
	}
}

// Load reads path and overlays it on Default. The result is validated.
func Load(path string) (Config, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return Config{}, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes a YAML document from r over Default and validates it.
// Unknown keys are rejected. An empty document yields Default.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "decode yaml")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, errors.Wrap(err, "encode yaml")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encode yaml")
	}
	return buf.Bytes(), nil
}

// Validate checks every section by converting it.
func (c Config) Validate() error {
	layers, err := c.LayerConfigs()
	if err != nil {
		return err
	}
	if len(layers) < 2 {
		return errors.Wrapf(ErrInvalidConfig, "network: %d layers, need an input and at least one trained layer", len(layers))
	}
	for l, lc := range layers {
		if err := lc.Validate(l); err != nil {
			return errors.Wrap(err, "network")
		}
	}
	if !(c.Network.WeightScaleMin < c.Network.WeightScaleMax) {
		return errors.Wrapf(ErrInvalidConfig, "network: weight scale [%v, %v] is empty",
			c.Network.WeightScaleMin, c.Network.WeightScaleMax)
	}
	if c.Network.Parallel.Workers < 0 || c.Network.Parallel.MinChunk < 0 {
		return errors.Wrap(ErrInvalidConfig, "network: parallel workers and min_chunk must be >= 0")
	}

	gen, err := c.GeneratorConfig()
	if err != nil {
		return err
	}
	if err := gen.Validate(); err != nil {
		return errors.Wrap(err, "data")
	}

	tr, err := c.TrainConfig()
	if err != nil {
		return err
	}
	if err := tr.Validate(); err != nil {
		return errors.Wrap(err, "training")
	}
	return nil
}

// LayerConfigs resolves the layer names. Fields left empty on a trained
// layer take nn.DefaultLayerConfig values.
func (c Config) LayerConfigs() ([]nn.LayerConfig, error) {
	out := make([]nn.LayerConfig, len(c.Network.Layers))
	for l, layer := range c.Network.Layers {
		if l == 0 {
			out[l] = nn.LayerConfig{NeuronCount: layer.Neurons}
			continue
		}
		lc := nn.DefaultLayerConfig(layer.Neurons)
		var err error
		if layer.Activation != "" {
			if lc.Activation, err = nn.ParseActivation(layer.Activation); err != nil {
				return nil, errors.Wrapf(err, "network: layer %d", l)
			}
		}
		if layer.ActivationArgs != nil {
			lc.ActivationArgs = append([]float64(nil), layer.ActivationArgs...)
		}
		if layer.WeightInit != "" {
			if lc.WeightInit, err = nn.ParseWeightInit(layer.WeightInit); err != nil {
				return nil, errors.Wrapf(err, "network: layer %d", l)
			}
		}
		if layer.BiasInit != "" {
			if lc.BiasInit, err = nn.ParseBiasInit(layer.BiasInit); err != nil {
				return nil, errors.Wrapf(err, "network: layer %d", l)
			}
		}
		out[l] = lc
	}
	return out, nil
}

// ParallelConfig returns the parallel settings of forward propagation.
func (c Config) ParallelConfig() parallel.Config {
	return parallel.Config{
		Enabled:  c.Network.Parallel.Enabled,
		Workers:  c.Network.Parallel.Workers,
		MinChunk: c.Network.Parallel.MinChunk,
	}
}

// GeneratorConfig converts the data section.
func (c Config) GeneratorConfig() (data.GeneratorConfig, error) {
	d := c.Data
	target, err := data.ParseTargetFunction(d.TargetFunction)
	if err != nil {
		return data.GeneratorConfig{}, errors.Wrap(err, "data")
	}
	return data.GeneratorConfig{
		TargetFunction:        target,
		DataCount:             d.DataCount,
		XRangeMin:             d.XRangeMin,
		XRangeMax:             d.XRangeMax,
		ScaleMin:              d.ScaleMin,
		ScaleMax:              d.ScaleMax,
		TrainTestSplitPercent: d.TrainTestSplitPercent,
		PickTestFromWholeSet:  d.PickTestFromWholeSet,
		TestIsEvenlyPicked:    d.TestIsEvenlyPicked,
		Shuffle:               d.Shuffle,
		NoiseFactor:           d.NoiseFactor,
	}, nil
}

// TrainConfig converts the training section.
func (c Config) TrainConfig() (train.Config, error) {
	t := c.Training
	loss, err := nn.ParseLoss(t.Loss)
	if err != nil {
		return train.Config{}, errors.Wrap(err, "training")
	}
	kind, err := optim.ParseKind(t.Optimizer)
	if err != nil {
		return train.Config{}, errors.Wrap(err, "training")
	}
	return train.Config{
		EpochCount:            t.Epochs,
		LearningRate:          t.LearningRate,
		Loss:                  loss,
		BatchSize:             t.BatchSize,
		BatchesPerYield:       t.BatchesPerYield,
		ReinitializeOptimizer: t.ReinitializeOptimizer,
		Optimizer:             kind,
		Momentum:              t.Momentum,
	}, nil
}

// Rand returns a generator seeded with Seed.
func (c Config) Rand() *rand.Rand {
	return rand.New(rand.NewSource(c.Seed)) //nolint:gosec // reproducible runs, not security
}

// Build generates the network and datasets from one generator seeded with
// Seed, network first, so equal configs yield equal runs.
func (c Config) Build() (*nn.Network, *data.Datasets, error) {
	layers, err := c.LayerConfigs()
	if err != nil {
		return nil, nil, err
	}
	gen, err := c.GeneratorConfig()
	if err != nil {
		return nil, nil, err
	}

	rng := c.Rand()
	network, err := nn.Generate(rng, layers, c.Network.WeightScaleMin, c.Network.WeightScaleMax)
	if err != nil {
		return nil, nil, errors.Wrap(err, "generate network")
	}
	network.SetParallel(c.ParallelConfig())

	ds, err := data.Generate(rng, gen)
	if err != nil {
		return nil, nil, errors.Wrap(err, "generate data")
	}
	return network, ds, nil
}
