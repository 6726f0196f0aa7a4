package data

import (
	"math"
	"strconv"
	"strings"

	"github.com/born-ml/neuralviz/internal/nn"
)

// TargetFunction identifies the function samples are drawn from.
type TargetFunction int

// Supported target functions.
const (
	Exponential TargetFunction = iota
	Linear
	Sin
	CustomStep
)

var targetFunctions = map[TargetFunction]struct {
	name string
	f    func(float64) float64
}{
	Exponential: {"exponential", func(x float64) float64 { return x * x }},
	Linear:      {"linear", func(x float64) float64 { return 1.4*x + 1 }},
	Sin:         {"sin", math.Sin},
	CustomStep:  {"custom_step", customStep},
}

// customStep is a sawtooth: |(x-0.5)/3 - floor(x/3)|.
func customStep(x float64) float64 {
	return math.Abs((x-0.5)/3 - math.Floor(x/3))
}

// AllTargetFunctions lists every target function.
func AllTargetFunctions() []TargetFunction {
	return []TargetFunction{Exponential, Linear, Sin, CustomStep}
}

func (t TargetFunction) String() string {
	if f, ok := targetFunctions[t]; ok {
		return f.name
	}
	return "TargetFunction(" + strconv.Itoa(int(t)) + ")"
}

// Valid reports whether t is a known target function.
func (t TargetFunction) Valid() bool {
	_, ok := targetFunctions[t]
	return ok
}

// Eval returns f(x).
func (t TargetFunction) Eval(x float64) (float64, error) {
	f, ok := targetFunctions[t]
	if !ok {
		return 0, nn.Unsupported("target function", t)
	}
	return f.f(x), nil
}

// ParseTargetFunction resolves "exponential", "linear", "sin" or "custom_step".
func ParseTargetFunction(name string) (TargetFunction, error) {
	key := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(name)))
	for t, f := range targetFunctions {
		if f.name == key {
			return t, nil
		}
	}
	return 0, nn.Unsupported("target function", name)
}
