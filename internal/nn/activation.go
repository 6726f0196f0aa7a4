package nn

import (
	"math"
	"strconv"
	"strings"
)

// Activation identifies a neuron activation function.
type Activation int

// Supported activation functions.
const (
	ReLU Activation = iota
	LeakyReLU
	Sigmoid
	Tanh
	Linear
)

// DefaultLeakySlope is the negative-side slope of LeakyReLU when no argument is given.
const DefaultLeakySlope = 0.01

type activationFunc struct {
	name       string
	forward    func(x float64, args []float64) float64
	derivative func(x float64, args []float64) float64
}

var activations = map[Activation]activationFunc{
	ReLU: {
		name:       "relu",
		forward:    func(x float64, _ []float64) float64 { return ReLUFunc(x) },
		derivative: func(x float64, _ []float64) float64 { return ReLUDerivative(x) },
	},
	LeakyReLU: {
		name:       "leaky_relu",
		forward:    func(x float64, args []float64) float64 { return LeakyReLUFunc(x, leakySlope(args)) },
		derivative: func(x float64, args []float64) float64 { return LeakyReLUDerivative(x, leakySlope(args)) },
	},
	Sigmoid: {
		name:       "sigmoid",
		forward:    func(x float64, _ []float64) float64 { return SigmoidFunc(x) },
		derivative: func(x float64, _ []float64) float64 { return SigmoidDerivative(x) },
	},
	Tanh: {
		name:       "tanh",
		forward:    func(x float64, _ []float64) float64 { return TanhFunc(x) },
		derivative: func(x float64, _ []float64) float64 { return TanhDerivative(x) },
	},
	Linear: {
		name:       "linear",
		forward:    func(x float64, _ []float64) float64 { return LinearFunc(x) },
		derivative: func(x float64, _ []float64) float64 { return LinearDerivative(x) },
	},
}

// AllActivations lists every activation in declaration order.
func AllActivations() []Activation {
	return []Activation{ReLU, LeakyReLU, Sigmoid, Tanh, Linear}
}

// String returns the configuration name of the activation.
func (a Activation) String() string {
	if f, ok := activations[a]; ok {
		return f.name
	}
	return "Activation(" + strconv.Itoa(int(a)) + ")"
}

// Valid reports whether a is a known activation.
func (a Activation) Valid() bool {
	_, ok := activations[a]
	return ok
}

// Apply evaluates the activation at x.
func (a Activation) Apply(x float64, args []float64) (float64, error) {
	f, ok := activations[a]
	if !ok {
		return 0, Unsupported("activation function", a)
	}
	return f.forward(x, args), nil
}

// Derivative evaluates the activation derivative at the pre-activation x.
func (a Activation) Derivative(x float64, args []float64) (float64, error) {
	f, ok := activations[a]
	if !ok {
		return 0, Unsupported("activation function", a)
	}
	return f.derivative(x, args), nil
}

// ParseActivation resolves a configuration name such as "tanh" or "leaky_relu".
func ParseActivation(name string) (Activation, error) {
	key := normalizeName(name)
	for a, f := range activations {
		if f.name == key {
			return a, nil
		}
	}
	return 0, Unsupported("activation function", name)
}

func leakySlope(args []float64) float64 {
	if len(args) == 0 {
		return DefaultLeakySlope
	}
	return args[0]
}

// ReLUFunc computes max(0, x).
func ReLUFunc(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// ReLUDerivative is 1 for x > 0 and 0 otherwise (including x == 0).
func ReLUDerivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// LeakyReLUFunc computes x for x > 0 and alpha*x otherwise.
func LeakyReLUFunc(x, alpha float64) float64 {
	if x > 0 {
		return x
	}
	return alpha * x
}

// LeakyReLUDerivative is 1 for x > 0 and alpha otherwise.
func LeakyReLUDerivative(x, alpha float64) float64 {
	if x > 0 {
		return 1
	}
	return alpha
}

// SigmoidFunc computes 1 / (1 + e^-x).
func SigmoidFunc(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// SigmoidDerivative computes s(1-s) with s = sigmoid(x).
func SigmoidDerivative(x float64) float64 {
	s := SigmoidFunc(x)
	return s * (1.0 - s)
}

// TanhFunc computes (e^x - e^-x) / (e^x + e^-x).
//
// The exponential form overflows for |x| above ~709; the result is then
// taken from math.Tanh, which saturates to ±1.
func TanhFunc(x float64) float64 {
	ep, en := math.Exp(x), math.Exp(-x)
	if math.IsInf(ep, 0) || math.IsInf(en, 0) {
		return math.Tanh(x)
	}
	return (ep - en) / (ep + en)
}

// TanhDerivative computes 1 - tanh(x)².
func TanhDerivative(x float64) float64 {
	t := TanhFunc(x)
	return 1.0 - t*t
}

// LinearFunc is the identity.
func LinearFunc(x float64) float64 {
	return x
}

// LinearDerivative is always 1.
func LinearDerivative(float64) float64 {
	return 1
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "_", " ", "_").Replace(name)
}
