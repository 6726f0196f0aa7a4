package train

import (
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/born-ml/neuralviz/internal/data"
	"github.com/born-ml/neuralviz/internal/nn"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Yield identifies the point at which Session.Step returned.
type Yield int

// Yield points, in the order they occur within one epoch.
const (
	YieldBatch        Yield = iota // after every BatchesPerYield-th batch
	YieldEpochTrained              // all batches of the epoch are done
	YieldTest                      // periodically while evaluating the test set
	YieldEpochEnd                  // test evaluation of the epoch is done
	YieldDone                      // every epoch has run
)

var yieldNames = [...]string{"batch", "epoch_trained", "test", "epoch_end", "done"}

func (y Yield) String() string {
	if int(y) < len(yieldNames) {
		return yieldNames[y]
	}
	return "unknown"
}

type phase int

const (
	phaseEpochStart phase = iota
	phaseBatches
	phaseTrained
	phaseTesting
	phaseDone
)

// Session is one training run. Each Step advances to the next yield point.
//
// The network and optimizer are mutated in place; stopping leaves them as
// last updated.
type Session struct {
	t     *Trainer
	log   *slog.Logger
	train data.Set
	test  data.Set

	batches []data.Set
	phase   phase
	epoch   int
	batch   int
	sample  int

	epochError float64
	testError  float64

	weightGrads [][][]float64
	biasGrads   [][]float64

	stopped atomic.Bool
}

// Progress is a snapshot of a running session.
type Progress struct {
	RunID          uuid.UUID
	Yield          Yield
	Epoch          int // 0-based
	EpochCount     int
	Iteration      int // samples processed in this epoch
	IterationCount int // training plus test samples per epoch
	EpochErrors    []float64
	TestErrors     []float64
}

// Begin prepares a training run over train, evaluating on test after every
// epoch. test may be empty.
//
// The optimizer is (re)initialized when it never was, when
// Config.ReinitializeOptimizer is set, or when the network shape changed
// since it was initialized. Progress fields are reset.
func (t *Trainer) Begin(train, test data.Set) (*Session, error) {
	if err := t.Config.Validate(); err != nil {
		return nil, err
	}
	if t.Network.LayerCount() < 2 {
		return nil, errors.Wrap(nn.ErrInvalidLayerConfig, "network has no trainable layer")
	}
	if len(train) == 0 {
		return nil, errors.Wrap(ErrEmptyDataset, "training set")
	}
	if err := t.checkShapes(train); err != nil {
		return nil, errors.Wrap(err, "training set")
	}
	if err := t.checkShapes(test); err != nil {
		return nil, errors.Wrap(err, "test set")
	}

	t.RunID = uuid.New()
	log := t.logger().With("run", t.RunID.String())

	sizes := t.Network.LayerSizes()
	if !t.Optimizer.Initialized() || t.Config.ReinitializeOptimizer || !slices.Equal(sizes, t.optimizerShape) {
		t.Optimizer.Init(sizes)
		t.optimizerShape = sizes
		t.Config.ReinitializeOptimizer = false
		log.Debug("optimizer initialized", "layers", sizes)
	}
	t.Optimizer.SetLR(t.Config.LearningRate)

	t.CurrentEpoch = 0
	t.CurrentIteration = 0
	t.IterationCount = len(train) + len(test)
	t.EpochErrors = nil
	t.TestErrors = nil
	t.EpochTrainingPredictions = nil
	t.EpochTestPredictions = nil

	s := &Session{
		t:       t,
		log:     log,
		train:   train,
		test:    test,
		batches: train.Batches(t.Config.BatchSize),
	}
	s.weightGrads = make([][][]float64, len(sizes))
	s.biasGrads = make([][]float64, len(sizes))
	for l := 1; l < len(sizes); l++ {
		s.weightGrads[l] = make([][]float64, sizes[l])
		for i := range s.weightGrads[l] {
			s.weightGrads[l][i] = make([]float64, sizes[l-1])
		}
		s.biasGrads[l] = make([]float64, sizes[l])
	}
	if t.Config.EpochCount == 0 {
		s.phase = phaseDone
	}

	log.Info("training started",
		"epochs", t.Config.EpochCount,
		"train", len(train),
		"test", len(test),
		"batch_size", t.Config.BatchSize,
		"loss", t.Config.Loss.String(),
		"optimizer", string(t.Config.Optimizer),
		"lr", t.Config.LearningRate)
	return s, nil
}

// Stop requests a cooperative stop. The next Step returns ErrStopped without
// doing any work. Safe to call from another goroutine.
func (s *Session) Stop() {
	s.stopped.Store(true)
}

// Stopped reports whether Stop has been called.
func (s *Session) Stopped() bool {
	return s.stopped.Load()
}

// Done reports whether every epoch has run.
func (s *Session) Done() bool {
	return s.phase == phaseDone
}

// Progress returns a snapshot of the trainer's progress.
func (s *Session) Progress(y Yield) Progress {
	return Progress{
		RunID:          s.t.RunID,
		Yield:          y,
		Epoch:          s.t.CurrentEpoch,
		EpochCount:     s.t.Config.EpochCount,
		Iteration:      s.t.CurrentIteration,
		IterationCount: s.t.IterationCount,
		EpochErrors:    slices.Clone(s.t.EpochErrors),
		TestErrors:     slices.Clone(s.t.TestErrors),
	}
}

// Step runs until the next yield point and reports which one it reached.
//
// Returns YieldDone once every epoch has run, and ErrStopped after Stop.
// Any other error aborts the run; parameters keep their last update.
func (s *Session) Step() (Yield, error) {
	if s.Stopped() {
		s.log.Info("training stopped", "epoch", s.t.CurrentEpoch, "iteration", s.t.CurrentIteration)
		return 0, ErrStopped
	}

	t := s.t
	for {
		switch s.phase {
		case phaseEpochStart:
			t.CurrentEpoch = s.epoch
			t.CurrentIteration = 0
			t.EpochTrainingPredictions = make(data.Set, 0, len(s.train))
			t.EpochTestPredictions = make(data.Set, 0, len(s.test))
			s.epochError = 0
			s.testError = 0
			s.batch = 0
			s.sample = 0
			s.phase = phaseBatches

		case phaseBatches:
			if s.batch == len(s.batches) {
				s.phase = phaseTrained
				return YieldEpochTrained, nil
			}
			b := s.batch
			if err := s.runBatch(s.batches[b]); err != nil {
				return 0, err
			}
			s.batch++
			if b%t.Config.BatchesPerYield == 0 {
				return YieldBatch, nil
			}

		case phaseTrained:
			mean := s.epochError / float64(len(s.train))
			t.EpochErrors = append(t.EpochErrors, mean)
			s.log.Debug("epoch trained", "epoch", s.epoch, "error", mean)
			s.phase = phaseTesting

		case phaseTesting:
			if s.sample == len(s.test) {
				s.finishEpoch()
				return YieldEpochEnd, nil
			}
			i := s.sample
			if err := s.runTest(s.test[i]); err != nil {
				return 0, err
			}
			s.sample++
			if i < len(s.test)-1 {
				t.CurrentIteration++
			}
			if i%t.Config.BatchSize == 0 {
				return YieldTest, nil
			}

		case phaseDone:
			return YieldDone, nil
		}
	}
}

// runBatch accumulates the gradients of every sample in batch, averages
// them and applies one optimizer update with time step epoch+1.
func (s *Session) runBatch(batch data.Set) error {
	t := s.t
	n := t.Network

	for l := 1; l < len(s.weightGrads); l++ {
		for i := range s.weightGrads[l] {
			clear(s.weightGrads[l][i])
		}
		clear(s.biasGrads[l])
	}

	for _, e := range batch {
		if err := t.forward(e); err != nil {
			return err
		}
		t.EpochTrainingPredictions = append(t.EpochTrainingPredictions, t.prediction(e))
		if err := t.CalculateError(); err != nil {
			return err
		}
		s.epochError += n.ErrorTotal
		if err := t.BackpropagateError(); err != nil {
			return err
		}

		for l := 1; l < len(s.weightGrads); l++ {
			for i, delta := range n.Errors[l] {
				floats.AddScaled(s.weightGrads[l][i], delta, n.Activations[l-1])
				s.biasGrads[l][i] += delta
			}
		}
	}

	inv := 1 / float64(len(batch))
	for l := 1; l < len(s.weightGrads); l++ {
		for i := range s.weightGrads[l] {
			floats.Scale(inv, s.weightGrads[l][i])
		}
		floats.Scale(inv, s.biasGrads[l])
	}

	ext := t.Optimizer.Update(n.Weights, n.Biases, s.weightGrads, s.biasGrads, s.epoch+1)
	n.WeightMin, n.WeightMax = ext.WeightMin, ext.WeightMax
	n.WeightDeltaMin, n.WeightDeltaMax = ext.DeltaMin, ext.DeltaMax

	t.CurrentIteration += len(batch)
	return nil
}

func (s *Session) runTest(e data.Entry) error {
	t := s.t
	if err := t.forward(e); err != nil {
		return err
	}
	t.EpochTestPredictions = append(t.EpochTestPredictions, t.prediction(e))
	if err := t.CalculateError(); err != nil {
		return err
	}
	s.testError += t.Network.ErrorTotal
	return nil
}

func (s *Session) finishEpoch() {
	t := s.t
	attrs := []any{"epoch", s.epoch, "train_error", t.EpochErrors[len(t.EpochErrors)-1]}
	if len(s.test) > 0 {
		mean := s.testError / float64(len(s.test))
		t.TestErrors = append(t.TestErrors, mean)
		attrs = append(attrs, "test_error", mean)
	}
	s.log.Info("epoch finished", attrs...)

	s.epoch++
	if s.epoch == t.Config.EpochCount {
		s.phase = phaseDone
		s.log.Info("training finished", "epochs", s.epoch)
		return
	}
	s.phase = phaseEpochStart
}
