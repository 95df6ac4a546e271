package optim

import (
	"github.com/born-ml/mlnotes/internal/nn"
	"github.com/born-ml/mlnotes/internal/tensor"
)

// SGD implements Stochastic Gradient Descent with optional momentum.
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
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 1e-3})
//	out, cache := net.Forward(x)
//	_, dout := nn.L2Loss(out, labels)
//	net.Backward(dout, cache)
//	sgd.Step(net.Params(), net.Grads())
type SGD struct {
	lr         float64
	momentum   float64
	velocities map[string]*tensor.Tensor
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 1e-3)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 1e-3
	}

	return &SGD{
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[string]*tensor.Tensor),
	}
}

// Step performs a single optimization step, mutating params in place.
//
// Parameters with no gradient yet are skipped.
func (s *SGD) Step(params *nn.Params, grads *nn.Grads) {
	gradList := grads.Named()
	for i, param := range params.Named() {
		grad := gradList[i].Tensor
		if grad == nil {
			continue
		}

		if s.momentum == 0 {
			param.Tensor.AddScaledInPlace(-s.lr, grad)
			continue
		}

		velocity, exists := s.velocities[param.Name]
		if !exists {
			velocity = tensor.Zeros(param.Tensor.Shape())
			s.velocities[param.Name] = velocity
		}
		// velocity = momentum * velocity + grad
		data := velocity.Data()
		for j, g := range grad.Data() {
			data[j] = s.momentum*data[j] + g
		}
		param.Tensor.AddScaledInPlace(-s.lr, velocity)
	}
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
