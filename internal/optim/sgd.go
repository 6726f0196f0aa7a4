package optim

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Momentum helps accelerate SGD in relevant directions and dampens oscillations.
// The time step passed to Update is ignored.
type SGD struct {
	lr       float64
	momentum float64

	velocities     [][][]float64 // shaped like weights
	biasVelocities [][]float64   // shaped like biases
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer. Call Init before Update.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		lr:       config.LR,
		momentum: config.Momentum,
	}
}

// Init allocates zeroed velocities for a network with the given layer sizes.
func (s *SGD) Init(layerSizes []int) {
	s.velocities = zeros3(layerSizes)
	s.biasVelocities = make([][]float64, len(layerSizes))
	for l := 1; l < len(layerSizes); l++ {
		s.biasVelocities[l] = make([]float64, layerSizes[l])
	}
}

// Initialized reports whether Init has been called.
func (s *SGD) Initialized() bool {
	return s.velocities != nil
}

// Update performs a single optimization step.
//
// Applies gradient descent update to all parameters:
//   - Without momentum: param -= lr * grad
//   - With momentum: velocity = momentum * velocity + grad, param -= lr * velocity
func (s *SGD) Update(weights [][][]float64, biases [][]float64, weightGrads [][][]float64, biasGrads [][]float64, _ int) Extrema {
	checkShapes(weights, weightGrads, s.velocities, biases, biasGrads)

	ext := newExtrema()
	for l := 1; l < len(weights); l++ {
		for i := range weights[l] {
			velocity := s.velocities[l][i]
			for w, g := range weightGrads[l][i] {
				step := s.step(&velocity[w], g)
				weights[l][i][w] -= step
				ext.observe(weights[l][i][w], -step)
			}

			step := s.step(&s.biasVelocities[l][i], biasGrads[l][i])
			biases[l][i] -= step
			ext.observe(biases[l][i], -step)
		}
	}
	return ext
}

// step advances one velocity and returns the amount to subtract from the parameter.
func (s *SGD) step(velocity *float64, grad float64) float64 {
	if s.momentum == 0 {
		return s.lr * grad
	}
	*velocity = s.momentum**velocity + grad
	return s.lr * *velocity
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
