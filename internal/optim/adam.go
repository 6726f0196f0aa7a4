package optim

import (
	"math"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Adam combines ideas from RMSprop and momentum:
//   - Maintains exponential moving averages of gradients (first moment)
//   - Maintains exponential moving averages of squared gradients (second moment)
//   - Applies bias correction to compensate for initialization at zero
//
// Update rule, with t the caller-supplied time step:
//
//	lr_t  = lr * sqrt(1 - beta2^t) / (1 - beta1^t)        // Corrected learning rate
//	m_t   = beta1 * m_{t-1} + (1-beta1) * gradient        // First moment
//	v_t   = beta2 * v_{t-1} + (1-beta2) * gradient²       // Second moment
//	m_hat = m_t / (1 - beta1^t)                           // Bias correction
//	v_hat = v_t / (1 - beta2^t)                           // Bias correction
//	param = param - lr_t * m_hat / (sqrt(v_hat) + eps)    // Parameter update
//
// Both the corrected learning rate and the corrected moments are applied, so
// the bias correction acts twice.
//
// The trainer passes epoch+1 as t, so every batch of one epoch shares a time
// step.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64

	sharedBiasMoments bool

	m     [][][]float64 // First moment estimates, shaped like weights
	v     [][][]float64 // Second moment estimates, shaped like weights
	mBias [][]float64   // [layer][neuron], or [layer][0] when shared
	vBias [][]float64
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)

	// SharedBiasMoments keeps one bias moment pair per layer instead of per
	// neuron. Each neuron's bias update then folds into the moments left by
	// the previous neuron of the same layer.
	SharedBiasMoments bool
}

// NewAdam creates a new Adam optimizer. Call Init before Update.
//
// Default hyperparameters:
//   - LR: 0.001
//   - Beta1: 0.9
//   - Beta2: 0.999
//   - Eps: 1e-8
func NewAdam(config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		lr:                config.LR,
		beta1:             config.Betas[0],
		beta2:             config.Betas[1],
		eps:               config.Eps,
		sharedBiasMoments: config.SharedBiasMoments,
	}
}

// Init allocates zeroed moments for a network with the given layer sizes.
func (a *Adam) Init(layerSizes []int) {
	a.m = zeros3(layerSizes)
	a.v = zeros3(layerSizes)
	a.mBias = make([][]float64, len(layerSizes))
	a.vBias = make([][]float64, len(layerSizes))
	for l := 1; l < len(layerSizes); l++ {
		n := layerSizes[l]
		if a.sharedBiasMoments {
			n = 1
		}
		a.mBias[l] = make([]float64, n)
		a.vBias[l] = make([]float64, n)
	}
}

// Initialized reports whether Init has been called.
func (a *Adam) Initialized() bool {
	return a.m != nil
}

// Update performs one Adam step with time step t (t >= 1).
func (a *Adam) Update(weights [][][]float64, biases [][]float64, weightGrads [][][]float64, biasGrads [][]float64, t int) Extrema {
	checkShapes(weights, weightGrads, a.m, biases, biasGrads)

	biasCorrection1 := 1.0 - math.Pow(a.beta1, float64(t))
	biasCorrection2 := 1.0 - math.Pow(a.beta2, float64(t))
	correctedLR := a.lr * math.Sqrt(biasCorrection2) / biasCorrection1

	ext := newExtrema()
	for l := 1; l < len(weights); l++ {
		for i := range weights[l] {
			m, v := a.m[l][i], a.v[l][i]
			for w, g := range weightGrads[l][i] {
				m[w] = a.beta1*m[w] + (1.0-a.beta1)*g
				v[w] = a.beta2*v[w] + (1.0-a.beta2)*g*g

				mHat := m[w] / biasCorrection1
				vHat := v[w] / biasCorrection2

				old := weights[l][i][w]
				weights[l][i][w] = old - correctedLR*mHat/(math.Sqrt(vHat)+a.eps)
				ext.observe(weights[l][i][w], weights[l][i][w]-old)
			}

			b := i
			if a.sharedBiasMoments {
				b = 0
			}
			g := biasGrads[l][i]
			a.mBias[l][b] = a.beta1*a.mBias[l][b] + (1.0-a.beta1)*g
			a.vBias[l][b] = a.beta2*a.vBias[l][b] + (1.0-a.beta2)*g*g

			mHat := a.mBias[l][b] / biasCorrection1
			vHat := a.vBias[l][b] / biasCorrection2

			old := biases[l][i]
			biases[l][i] = old - correctedLR*mHat/(math.Sqrt(vHat)+a.eps)
			ext.observe(biases[l][i], biases[l][i]-old)
		}
	}
	return ext
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}

// Moments returns the first and second moment estimates of weight w of
// neuron i in layer l.
func (a *Adam) Moments(l, i, w int) (m, v float64) {
	return a.m[l][i][w], a.v[l][i][w]
}

// BiasMoments returns the bias moment estimates for neuron i in layer l.
// With shared bias moments every neuron of a layer reports the same pair.
func (a *Adam) BiasMoments(l, i int) (m, v float64) {
	if a.sharedBiasMoments {
		i = 0
	}
	return a.mBias[l][i], a.vBias[l][i]
}
