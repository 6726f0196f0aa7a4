package nn

import (
	"math"
	"strconv"
)

// Loss identifies a loss function.
//
// Every loss takes equal-length actual (target) and predicted slices. The
// derivative is taken with respect to predicted, so a gradient step along
// its negative moves predicted toward actual.
type Loss int

// Supported loss functions.
const (
	MSE Loss = iota
	SE
	E
	MAE
	RMSE
	Huber
	LogCosh
	MBCE
	RMLSE
)

// Numeric constants used by the loss functions.
const (
	HuberDelta      = 1.0
	CrossEntropyEps = 1e-15
	RMLSEEps        = 1e-15
)

type lossFunc struct {
	name       string
	value      func(actual, predicted []float64) float64
	derivative func(actual, predicted []float64) []float64
}

var losses = map[Loss]lossFunc{
	MSE:     {"mse", MeanSquaredError, MeanSquaredErrorDerivative},
	SE:      {"se", SquaredError, SquaredErrorDerivative},
	E:       {"e", PlainError, PlainErrorDerivative},
	MAE:     {"mae", MeanAbsoluteError, MeanAbsoluteErrorDerivative},
	RMSE:    {"rmse", RootMeanSquaredError, RootMeanSquaredErrorDerivative},
	Huber:   {"huber", HuberLoss, HuberLossDerivative},
	LogCosh: {"log_cosh", LogCoshLoss, LogCoshLossDerivative},
	MBCE:    {"mbce", MeanBinaryCrossEntropy, MeanBinaryCrossEntropyDerivative},
	RMLSE:   {"rmlse", RootMeanLogSquaredError, RootMeanLogSquaredErrorDerivative},
}

// AllLosses lists every loss in declaration order.
func AllLosses() []Loss {
	return []Loss{MSE, SE, E, MAE, RMSE, Huber, LogCosh, MBCE, RMLSE}
}

// String returns the configuration name of the loss.
func (l Loss) String() string {
	if f, ok := losses[l]; ok {
		return f.name
	}
	return "Loss(" + strconv.Itoa(int(l)) + ")"
}

// Valid reports whether l is a known loss.
func (l Loss) Valid() bool {
	_, ok := losses[l]
	return ok
}

// Compute returns the scalar loss.
func (l Loss) Compute(actual, predicted []float64) (float64, error) {
	f, ok := losses[l]
	if !ok {
		return 0, Unsupported("loss function", l)
	}
	return f.value(actual, predicted), nil
}

// Derivative returns ∂loss/∂predicted element-wise.
func (l Loss) Derivative(actual, predicted []float64) ([]float64, error) {
	f, ok := losses[l]
	if !ok {
		return nil, Unsupported("loss function", l)
	}
	return f.derivative(actual, predicted), nil
}

// ParseLoss resolves a configuration name such as "mse" or "log_cosh".
func ParseLoss(name string) (Loss, error) {
	key := normalizeName(name)
	for l, f := range losses {
		if f.name == key {
			return l, nil
		}
	}
	return 0, Unsupported("loss function", name)
}

func checkLengths(actual, predicted []float64) {
	if len(actual) != len(predicted) {
		shapePanic("loss: actual has %d values, predicted has %d", len(actual), len(predicted))
	}
}

// MeanSquaredError computes mean((a-p)²).
func MeanSquaredError(actual, predicted []float64) float64 {
	return SquaredError(actual, predicted) / float64(len(actual))
}

// MeanSquaredErrorDerivative computes -2(a-p)/n.
func MeanSquaredErrorDerivative(actual, predicted []float64) []float64 {
	checkLengths(actual, predicted)
	n := float64(len(actual))
	d := make([]float64, len(actual))
	for i := range actual {
		d[i] = -2 * (actual[i] - predicted[i]) / n
	}
	return d
}

// SquaredError computes sum((a-p)²) without averaging.
func SquaredError(actual, predicted []float64) float64 {
	checkLengths(actual, predicted)
	var sum float64
	for i := range actual {
		e := actual[i] - predicted[i]
		sum += e * e
	}
	return sum
}

// SquaredErrorDerivative computes -2(a-p).
func SquaredErrorDerivative(actual, predicted []float64) []float64 {
	checkLengths(actual, predicted)
	d := make([]float64, len(actual))
	for i := range actual {
		d[i] = -2 * (actual[i] - predicted[i])
	}
	return d
}

// PlainError computes the signed sum of (a-p). It can be negative.
func PlainError(actual, predicted []float64) float64 {
	checkLengths(actual, predicted)
	var sum float64
	for i := range actual {
		sum += actual[i] - predicted[i]
	}
	return sum
}

// PlainErrorDerivative is -1 for every element.
func PlainErrorDerivative(actual, predicted []float64) []float64 {
	checkLengths(actual, predicted)
	d := make([]float64, len(actual))
	for i := range d {
		d[i] = -1
	}
	return d
}

// MeanAbsoluteError computes mean(|a-p|).
func MeanAbsoluteError(actual, predicted []float64) float64 {
	checkLengths(actual, predicted)
	var sum float64
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual))
}

// MeanAbsoluteErrorDerivative computes -sign(a-p), 0 where a == p.
func MeanAbsoluteErrorDerivative(actual, predicted []float64) []float64 {
	checkLengths(actual, predicted)
	d := make([]float64, len(actual))
	for i := range actual {
		d[i] = -sign(actual[i] - predicted[i])
	}
	return d
}

// RootMeanSquaredError computes sqrt(MSE).
func RootMeanSquaredError(actual, predicted []float64) float64 {
	return math.Sqrt(MeanSquaredError(actual, predicted))
}

// RootMeanSquaredErrorDerivative computes -(a-p)/(rmse·n). At a perfect fit
// (rmse == 0) the derivative is zero.
func RootMeanSquaredErrorDerivative(actual, predicted []float64) []float64 {
	rmse := RootMeanSquaredError(actual, predicted)
	n := float64(len(actual))
	d := make([]float64, len(actual))
	if rmse == 0 {
		return d
	}
	for i := range actual {
		d[i] = -(actual[i] - predicted[i]) / (rmse * n)
	}
	return d
}

// HuberLoss is quadratic for |a-p| <= HuberDelta and linear beyond, averaged.
func HuberLoss(actual, predicted []float64) float64 {
	return HuberLossDelta(actual, predicted, HuberDelta)
}

// HuberLossDelta is HuberLoss with an explicit delta.
func HuberLossDelta(actual, predicted []float64, delta float64) float64 {
	checkLengths(actual, predicted)
	var sum float64
	for i := range actual {
		e := actual[i] - predicted[i]
		if math.Abs(e) <= delta {
			sum += 0.5 * e * e
		} else {
			sum += delta*math.Abs(e) - 0.5*delta*delta
		}
	}
	return sum / float64(len(actual))
}

// HuberLossDerivative is the element-wise derivative with HuberDelta.
func HuberLossDerivative(actual, predicted []float64) []float64 {
	return HuberLossDeltaDerivative(actual, predicted, HuberDelta)
}

// HuberLossDeltaDerivative computes -(a-p) inside delta and -delta·sign(a-p) outside.
func HuberLossDeltaDerivative(actual, predicted []float64, delta float64) []float64 {
	checkLengths(actual, predicted)
	d := make([]float64, len(actual))
	for i := range actual {
		e := actual[i] - predicted[i]
		if math.Abs(e) <= delta {
			d[i] = -e
		} else {
			d[i] = -delta * sign(e)
		}
	}
	return d
}

// LogCoshLoss computes sum(log(cosh(a-p))).
func LogCoshLoss(actual, predicted []float64) float64 {
	checkLengths(actual, predicted)
	var sum float64
	for i := range actual {
		sum += logCosh(actual[i] - predicted[i])
	}
	return sum
}

// LogCoshLossDerivative computes -tanh(a-p).
func LogCoshLossDerivative(actual, predicted []float64) []float64 {
	checkLengths(actual, predicted)
	d := make([]float64, len(actual))
	for i := range actual {
		d[i] = -math.Tanh(actual[i] - predicted[i])
	}
	return d
}

// logCosh evaluates log(cosh(x)) as |x| + log1p(e^-2|x|) - log 2, which
// matches the direct form and stays finite where cosh overflows. Rounding
// near zero is floored at 0.
func logCosh(x float64) float64 {
	ax := math.Abs(x)
	return math.Max(0, ax+math.Log1p(math.Exp(-2*ax))-math.Ln2)
}

// MeanBinaryCrossEntropy computes
// -mean(a·log(ε+p) + (1-a)·log(ε+1-p)) with ε = CrossEntropyEps.
func MeanBinaryCrossEntropy(actual, predicted []float64) float64 {
	checkLengths(actual, predicted)
	var sum float64
	for i := range actual {
		a, p := actual[i], predicted[i]
		sum += a*math.Log(CrossEntropyEps+p) + (1-a)*math.Log(CrossEntropyEps+1-p)
	}
	return -sum / float64(len(actual))
}

// MeanBinaryCrossEntropyDerivative computes -(a/(p+ε) - (1-a)/(1-p+ε))/n.
func MeanBinaryCrossEntropyDerivative(actual, predicted []float64) []float64 {
	checkLengths(actual, predicted)
	n := float64(len(actual))
	d := make([]float64, len(actual))
	for i := range actual {
		a, p := actual[i], predicted[i]
		d[i] = -(a/(p+CrossEntropyEps) - (1-a)/(1-p+CrossEntropyEps)) / n
	}
	return d
}

// RootMeanLogSquaredError computes sqrt(mean(log((a-p)² + ε))).
//
// The mean of logs is negative whenever the squared errors are mostly below
// one; it is floored at zero so the loss stays real and non-negative.
func RootMeanLogSquaredError(actual, predicted []float64) float64 {
	checkLengths(actual, predicted)
	var sum float64
	for i := range actual {
		e := actual[i] - predicted[i]
		sum += math.Log(e*e + RMLSEEps)
	}
	return math.Sqrt(math.Max(0, sum/float64(len(actual))))
}

// RootMeanLogSquaredErrorDerivative computes -2(a-p)/((a-p)² + ε).
func RootMeanLogSquaredErrorDerivative(actual, predicted []float64) []float64 {
	checkLengths(actual, predicted)
	d := make([]float64, len(actual))
	for i := range actual {
		e := actual[i] - predicted[i]
		d[i] = -2 * e / (e*e + RMLSEEps)
	}
	return d
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
