package nn

import (
	"math"
	"math/rand"
	"strconv"
)

// WeightInit identifies a weight initialization strategy.
type WeightInit int

// Supported weight initialization strategies.
const (
	RandomInit WeightInit = iota
	NormalInit
	XavierUniformInit
	XavierNormalInit
)

var weightInitNames = map[WeightInit]string{
	RandomInit:        "random",
	NormalInit:        "normal",
	XavierUniformInit: "xavier_uniform",
	XavierNormalInit:  "xavier_normal",
}

// AllWeightInits lists every weight initialization strategy.
func AllWeightInits() []WeightInit {
	return []WeightInit{RandomInit, NormalInit, XavierUniformInit, XavierNormalInit}
}

// String returns the configuration name of the strategy.
func (w WeightInit) String() string {
	if name, ok := weightInitNames[w]; ok {
		return name
	}
	return "WeightInit(" + strconv.Itoa(int(w)) + ")"
}

// Valid reports whether w is a known strategy.
func (w WeightInit) Valid() bool {
	_, ok := weightInitNames[w]
	return ok
}

// Sample draws one initial weight. fanIn and fanOut are the sizes of the
// previous and next layer (fanOut is 0 for the output layer).
func (w WeightInit) Sample(rng *rand.Rand, fanIn, fanOut int) (float64, error) {
	switch w {
	case RandomInit:
		return Random(rng), nil
	case NormalInit:
		return Normal(rng), nil
	case XavierUniformInit:
		return XavierUniform(rng, fanIn, fanOut), nil
	case XavierNormalInit:
		return XavierNormal(rng, fanIn, fanOut), nil
	default:
		return 0, Unsupported("weights initialization strategy", w)
	}
}

// ParseWeightInit resolves a configuration name such as "xavier_uniform".
func ParseWeightInit(name string) (WeightInit, error) {
	key := normalizeName(name)
	for w, n := range weightInitNames {
		if n == key {
			return w, nil
		}
	}
	return 0, Unsupported("weights initialization strategy", name)
}

// Random draws uniformly from [0, 1).
func Random(rng *rand.Rand) float64 {
	return rng.Float64()
}

// Normal returns exp(-r²) for r uniform in [0, 1).
//
// This is a bell-shaped transform of a uniform draw, not a Gaussian sample;
// values fall in (e^-1, 1].
func Normal(rng *rand.Rand) float64 {
	r := rng.Float64()
	return math.Exp(-r * r)
}

// XavierUniform draws from U(-√(6/(fanIn+fanOut)), +√(6/(fanIn+fanOut))).
func XavierUniform(rng *rand.Rand, fanIn, fanOut int) float64 {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return (rng.Float64()*2.0 - 1.0) * bound
}

// XavierNormal draws uniformly within ±√(2/(fanIn+fanOut)).
//
// The bound is the Xavier normal standard deviation, but the draw itself is
// uniform.
func XavierNormal(rng *rand.Rand, fanIn, fanOut int) float64 {
	bound := math.Sqrt(2.0 / float64(fanIn+fanOut))
	return (rng.Float64()*2.0 - 1.0) * bound
}

// BiasInit identifies a constant bias initialization strategy.
type BiasInit int

// Supported bias initialization strategies.
const (
	BiasOne BiasInit = iota
	BiasHundredth
	BiasZero
)

var biasInitValues = map[BiasInit]struct {
	name  string
	value float64
}{
	BiasOne:       {"one", 1},
	BiasHundredth: {"hundredth", 0.01},
	BiasZero:      {"zero", 0},
}

// AllBiasInits lists every bias initialization strategy.
func AllBiasInits() []BiasInit {
	return []BiasInit{BiasOne, BiasHundredth, BiasZero}
}

// String returns the configuration name of the strategy.
func (b BiasInit) String() string {
	if v, ok := biasInitValues[b]; ok {
		return v.name
	}
	return "BiasInit(" + strconv.Itoa(int(b)) + ")"
}

// Valid reports whether b is a known strategy.
func (b BiasInit) Valid() bool {
	_, ok := biasInitValues[b]
	return ok
}

// Value returns the constant the strategy assigns to every bias.
func (b BiasInit) Value() (float64, error) {
	v, ok := biasInitValues[b]
	if !ok {
		return 0, Unsupported("biases initialization strategy", b)
	}
	return v.value, nil
}

// ParseBiasInit resolves "one", "hundredth" or "zero". The numeric spellings
// "1", "0.01" and "0" are accepted too.
func ParseBiasInit(name string) (BiasInit, error) {
	key := normalizeName(name)
	for b, v := range biasInitValues {
		if v.name == key {
			return b, nil
		}
	}
	if f, err := strconv.ParseFloat(key, 64); err == nil {
		for b, v := range biasInitValues {
			if v.value == f {
				return b, nil
			}
		}
	}
	return 0, Unsupported("biases initialization strategy", name)
}
