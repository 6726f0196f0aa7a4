// Package train fits a network to a dataset with mini-batch backpropagation.
//
// A Trainer owns the loss configuration, the optimizer state and the
// per-epoch diagnostics. Training runs as an explicit state machine
// (Session) that stops at fixed yield points so a host can render between
// batches, or through Train, which drives a Session to completion and calls a
// hook at every yield point.
package train

import (
	"log/slog"
	"slices"

	"github.com/born-ml/neuralviz/internal/data"
	"github.com/born-ml/neuralviz/internal/nn"
	"github.com/born-ml/neuralviz/internal/optim"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrEmptyDataset  = errors.New("empty dataset")
	ErrStopped       = errors.New("training stopped")
	ErrInvalidConfig = errors.New("invalid training config")
)

// Config controls a training run.
type Config struct {
	EpochCount   int
	LearningRate float64
	Loss         nn.Loss
	BatchSize    int

	// BatchesPerYield is how many batches run between two yield points.
	BatchesPerYield int

	// ReinitializeOptimizer discards optimizer state at the next Begin. The
	// flag is cleared once honored.
	ReinitializeOptimizer bool

	Optimizer optim.Kind
	Momentum  float64 // SGD only
}

// DefaultConfig returns 50 epochs of Adam at lr 0.05 on MAE, batch size 32.
func DefaultConfig() Config {
	return Config{
		EpochCount:            50,
		LearningRate:          0.05,
		Loss:                  nn.MAE,
		BatchSize:             32,
		BatchesPerYield:       1,
		ReinitializeOptimizer: true,
		Optimizer:             optim.KindAdam,
	}
}

// Validate checks ranges and enum values.
func (c Config) Validate() error {
	switch {
	case c.EpochCount < 0:
		return errors.Wrapf(ErrInvalidConfig, "epoch count %d < 0", c.EpochCount)
	case !(c.LearningRate > 0):
		return errors.Wrapf(ErrInvalidConfig, "learning rate %v <= 0", c.LearningRate)
	case c.BatchSize < 1:
		return errors.Wrapf(ErrInvalidConfig, "batch size %d < 1", c.BatchSize)
	case c.BatchesPerYield < 1:
		return errors.Wrapf(ErrInvalidConfig, "batches per yield %d < 1", c.BatchesPerYield)
	case c.Momentum < 0 || c.Momentum >= 1:
		return errors.Wrapf(ErrInvalidConfig, "momentum %v outside [0, 1)", c.Momentum)
	case !c.Loss.Valid():
		return nn.Unsupported("loss function", c.Loss)
	}
	if _, err := optim.ParseKind(string(c.Optimizer)); err != nil {
		return err
	}
	return nil
}

// Trainer trains one network. It is not safe for concurrent use; a host may
// read the exported progress fields between Session steps.
type Trainer struct {
	Network   *nn.Network
	Config    Config
	Optimizer optim.Optimizer
	Logger    *slog.Logger

	// OutputExpected is the target of the sample being processed.
	OutputExpected []float64

	// Progress, reset by Begin.
	RunID            uuid.UUID
	CurrentEpoch     int
	CurrentIteration int
	IterationCount   int
	EpochErrors      []float64 // mean training loss per epoch
	TestErrors       []float64 // mean test loss per epoch, when a test set is given

	// Predictions of the current epoch, in processing order.
	EpochTrainingPredictions data.Set
	EpochTestPredictions     data.Set

	optimizerShape []int
}

// New creates a trainer for network. The optimizer is built from
// cfg.Optimizer and initialized lazily by Begin.
func New(network *nn.Network, cfg Config) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opt, err := optim.New(cfg.Optimizer, cfg.LearningRate, cfg.Momentum)
	if err != nil {
		return nil, err
	}
	return &Trainer{
		Network:   network,
		Config:    cfg,
		Optimizer: opt,
		Logger:    slog.New(slog.DiscardHandler),
	}, nil
}

func (t *Trainer) logger() *slog.Logger {
	if t.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return t.Logger
}

// CalculateError stores the loss between OutputExpected and the output layer
// in Network.ErrorTotal.
func (t *Trainer) CalculateError() error {
	loss, err := t.Config.Loss.Compute(t.OutputExpected, t.Network.Output())
	if err != nil {
		return err
	}
	t.Network.ErrorTotal = loss
	return nil
}

// BackpropagateError fills Network.Errors with ∂loss/∂sum for every neuron,
// from the output layer down to layer 1.
func (t *Trainer) BackpropagateError() error {
	n := t.Network
	last := n.LayerCount() - 1

	grad, err := t.Config.Loss.Derivative(t.OutputExpected, n.Output())
	if err != nil {
		return err
	}
	for i := range n.Errors[last] {
		d, err := n.ActivationFunctions[last][i].Derivative(n.SumResults[last][i], n.ActivationArgs[last][i])
		if err != nil {
			return err
		}
		n.Errors[last][i] = grad[i] * d
	}

	for l := last - 1; l >= 1; l-- {
		for i := range n.Errors[l] {
			var sum float64
			for next, e := range n.Errors[l+1] {
				sum += n.Weights[l+1][next][i] * e
			}
			d, err := n.ActivationFunctions[l][i].Derivative(n.SumResults[l][i], n.ActivationArgs[l][i])
			if err != nil {
				return err
			}
			n.Errors[l][i] = sum * d
		}
	}
	return nil
}

// Backpropagate runs CalculateError then BackpropagateError.
func (t *Trainer) Backpropagate() error {
	if err := t.CalculateError(); err != nil {
		return err
	}
	return t.BackpropagateError()
}

// Evaluate returns the mean loss over set without updating parameters.
// Network activations are left at the last sample.
func (t *Trainer) Evaluate(set data.Set) (float64, error) {
	if len(set) == 0 {
		return 0, ErrEmptyDataset
	}
	if err := t.checkShapes(set); err != nil {
		return 0, err
	}
	var total float64
	for _, e := range set {
		if err := t.forward(e); err != nil {
			return 0, err
		}
		if err := t.CalculateError(); err != nil {
			return 0, err
		}
		total += t.Network.ErrorTotal
	}
	return total / float64(len(set)), nil
}

// forward runs the network on e and sets OutputExpected to its target.
func (t *Trainer) forward(e data.Entry) error {
	t.Network.SetInput(e.X)
	if err := t.Network.ForwardPropagate(); err != nil {
		return err
	}
	t.OutputExpected = e.Y
	return nil
}

func (t *Trainer) prediction(e data.Entry) data.Entry {
	return data.Entry{X: e.X, Y: slices.Clone(t.Network.Output())}
}

// checkShapes verifies every entry matches the input and output layer widths.
func (t *Trainer) checkShapes(set data.Set) error {
	sizes := t.Network.LayerSizes()
	in, out := sizes[0], sizes[len(sizes)-1]
	for i, e := range set {
		if len(e.X) != in || len(e.Y) != out {
			return errors.Wrapf(nn.ErrShapeMismatch, "entry %d has %d inputs and %d targets, network expects %d and %d",
				i, len(e.X), len(e.Y), in, out)
		}
	}
	return nil
}
