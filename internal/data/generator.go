package data

import (
	"math"
	"math/rand"

	"github.com/born-ml/neuralviz/internal/mathutil"
	"github.com/born-ml/neuralviz/internal/nn"
	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned for generator settings outside their valid range.
var ErrInvalidConfig = errors.New("invalid data generator config")

// GeneratorConfig controls sampling, splitting and scaling.
type GeneratorConfig struct {
	TargetFunction TargetFunction
	DataCount      int // dataCount+1 samples are drawn, both range ends included
	XRangeMin      float64
	XRangeMax      float64
	ScaleMin       float64
	ScaleMax       float64

	// TrainTestSplitPercent is the share of samples used for training, 0..100.
	TrainTestSplitPercent float64

	// PickTestFromWholeSet draws test samples from across the whole x range.
	// When false the first TrainTestSplitPercent% of samples (in x order)
	// train and the rest test.
	PickTestFromWholeSet bool

	// TestIsEvenlyPicked selects test samples at a fixed stride; otherwise
	// they are drawn at random without replacement. Only used together with
	// PickTestFromWholeSet.
	TestIsEvenlyPicked bool

	Shuffle     bool
	NoiseFactor float64
}

// DefaultGeneratorConfig returns noisy sin samples over [-2π, 2π] scaled to [-1, 1].
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		TargetFunction:        Sin,
		DataCount:             1500,
		XRangeMin:             -2 * math.Pi,
		XRangeMax:             2 * math.Pi,
		ScaleMin:              -1,
		ScaleMax:              1,
		TrainTestSplitPercent: 75,
		PickTestFromWholeSet:  true,
		TestIsEvenlyPicked:    true,
		Shuffle:               true,
		NoiseFactor:           0.15,
	}
}

// Validate checks the config before any sample is drawn.
func (c GeneratorConfig) Validate() error {
	switch {
	case !c.TargetFunction.Valid():
		return nn.Unsupported("target function", c.TargetFunction)
	case c.DataCount < 1:
		return errors.Wrapf(ErrInvalidConfig, "data count %d < 1", c.DataCount)
	case !(c.XRangeMin < c.XRangeMax):
		return errors.Wrapf(ErrInvalidConfig, "x range [%v, %v] is empty", c.XRangeMin, c.XRangeMax)
	case !(c.ScaleMin < c.ScaleMax):
		return errors.Wrapf(ErrInvalidConfig, "scale range [%v, %v] is empty", c.ScaleMin, c.ScaleMax)
	case c.TrainTestSplitPercent < 0 || c.TrainTestSplitPercent > 100:
		return errors.Wrapf(ErrInvalidConfig, "train/test split %v%% outside [0, 100]", c.TrainTestSplitPercent)
	case c.NoiseFactor < 0 || math.IsNaN(c.NoiseFactor):
		return errors.Wrapf(ErrInvalidConfig, "noise factor %v < 0", c.NoiseFactor)
	}
	return nil
}

// Datasets is the output of Generate.
//
// Train and Test hold raw samples. The prepared sets hold the same samples
// scaled into [ScaleMin, ScaleMax], shuffled when configured; the
// original-order copies keep x order so predictions can be matched back to
// raw samples by position.
type Datasets struct {
	Train Set
	Test  Set

	TrainPrepared Set
	TestPrepared  Set

	TrainPreparedOriginalOrder Set
	TestPreparedOriginalOrder  Set

	// Observed extrema over all samples, before scaling.
	XMin, XMax float64
	YMin, YMax float64

	XScaler *mathutil.Scaler
	YScaler *mathutil.Scaler

	yInverse *mathutil.Scaler
}

// UnscaleY maps a prepared (scaled) target or prediction back to raw units.
func (d *Datasets) UnscaleY(v float64) float64 {
	return d.yInverse.Scale(v)
}

type sample struct {
	x, y float64
}

// Generate draws, splits, scales and optionally shuffles samples per cfg.
//
// All randomness (noise, random test pick, shuffle) comes from rng. Returns
// ErrInvalidConfig for bad settings and mathutil.ErrDegenerateRange when all
// samples share one y value.
func Generate(rng *rand.Rand, cfg GeneratorConfig) (*Datasets, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	samples, err := sampleTarget(rng, cfg)
	if err != nil {
		return nil, err
	}

	ds := &Datasets{
		XMin: math.MaxFloat64, XMax: -math.MaxFloat64,
		YMin: math.MaxFloat64, YMax: -math.MaxFloat64,
	}
	for _, s := range samples {
		ds.XMin, ds.XMax = math.Min(ds.XMin, s.x), math.Max(ds.XMax, s.x)
		ds.YMin, ds.YMax = math.Min(ds.YMin, s.y), math.Max(ds.YMax, s.y)
	}

	ds.Train, ds.Test = split(rng, samples, cfg)

	if ds.XScaler, err = mathutil.NewScaler(ds.XMin, ds.XMax, cfg.ScaleMin, cfg.ScaleMax); err != nil {
		return nil, errors.Wrap(err, "scale x")
	}
	if ds.YScaler, err = mathutil.NewScaler(ds.YMin, ds.YMax, cfg.ScaleMin, cfg.ScaleMax); err != nil {
		return nil, errors.Wrap(err, "scale y")
	}
	if ds.yInverse, err = ds.YScaler.Inverse(); err != nil {
		return nil, errors.Wrap(err, "invert y scale")
	}

	ds.TrainPrepared = ds.prepare(ds.Train)
	ds.TestPrepared = ds.prepare(ds.Test)
	ds.TrainPreparedOriginalOrder = ds.TrainPrepared.Clone()
	ds.TestPreparedOriginalOrder = ds.TestPrepared.Clone()

	if cfg.Shuffle {
		shuffle(rng, ds.TrainPrepared)
		shuffle(rng, ds.TestPrepared)
	}
	return ds, nil
}

// sampleTarget evaluates the target at dataCount+1 evenly stepped x values
// and adds scaled Gaussian noise to each y.
func sampleTarget(rng *rand.Rand, cfg GeneratorConfig) ([]sample, error) {
	step := (cfg.XRangeMax - cfg.XRangeMin) / float64(cfg.DataCount)
	samples := make([]sample, cfg.DataCount+1)
	for i := range samples {
		x := cfg.XRangeMin + float64(i)*step
		y, err := cfg.TargetFunction.Eval(x)
		if err != nil {
			return nil, err
		}
		y += cfg.NoiseFactor * mathutil.GaussianNoise(rng)
		samples[i] = sample{x: x, y: y}
	}
	return samples, nil
}

func split(rng *rand.Rand, samples []sample, cfg GeneratorConfig) (train, test Set) {
	isTest := make([]bool, len(samples))

	if cfg.PickTestFromWholeSet {
		testSize := cfg.DataCount - int(math.Floor(cfg.TrainTestSplitPercent/100*float64(cfg.DataCount)))
		testSize = min(testSize, len(samples))
		if cfg.TestIsEvenlyPicked {
			markEvenly(isTest, testSize)
		} else {
			for _, idx := range rng.Perm(len(samples))[:testSize] {
				isTest[idx] = true
			}
		}
	} else {
		splitIndex := int(math.Floor(float64(cfg.DataCount) * cfg.TrainTestSplitPercent / 100))
		for i := splitIndex; i < len(samples); i++ {
			isTest[i] = true
		}
	}

	for i, s := range samples {
		e := Entry{X: []float64{s.x}, Y: []float64{s.y}}
		if isTest[i] {
			test = append(test, e)
		} else {
			train = append(train, e)
		}
	}
	return train, test
}

// markEvenly marks testSize indices at stride len(isTest)/testSize, starting at 0.
func markEvenly(isTest []bool, testSize int) {
	if testSize <= 0 {
		return
	}
	stride := float64(len(isTest)) / float64(testSize)
	next := 0.0
	for i := range isTest {
		if i >= int(math.Floor(next)) {
			isTest[i] = true
			next += stride
		}
	}
}

func (d *Datasets) prepare(set Set) Set {
	out := make(Set, len(set))
	for i, e := range set {
		out[i] = Entry{X: d.XScaler.ScaleAll(e.X), Y: d.YScaler.ScaleAll(e.Y)}
	}
	return out
}

func shuffle(rng *rand.Rand, set Set) {
	rng.Shuffle(len(set), func(i, j int) { set[i], set[j] = set[j], set[i] })
}
