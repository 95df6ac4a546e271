// Package optim implements parameter update rules for nn.TwoLayerNet.
package optim

import "github.com/born-ml/mlnotes/internal/nn"

// Optimizer updates parameters in place from their gradients.
type Optimizer interface {
	// Step applies one update to every parameter that has a gradient.
	Step(params *nn.Params, grads *nn.Grads)

	// GetLR returns the current learning rate.
	GetLR() float64
}
