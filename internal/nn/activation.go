package nn

import (
	"math"

	"github.com/born-ml/mlnotes/internal/tensor"
)

// ReLUCache holds the ReLU input.
type ReLUCache struct {
	X *tensor.Tensor
}

// SigmoidCache holds the sigmoid output, which is all its derivative needs.
type SigmoidCache struct {
	Out *tensor.Tensor
}

// ReLUForward applies f(x) = max(0, x) elementwise.
func ReLUForward(x *tensor.Tensor) (*tensor.Tensor, ReLUCache) {
	out := x.Map(func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
	return out, ReLUCache{X: x}
}

// ReLUBackward passes dout through where the cached input was positive and
// zeroes it elsewhere. The slope at x = 0 is taken to be 0.
func ReLUBackward(dout *tensor.Tensor, cache ReLUCache) *tensor.Tensor {
	mask := cache.X.Map(func(v float64) float64 {
		if v > 0 {
			return 1
		}
		return 0
	})
	return dout.Mul(mask)
}

// SigmoidForward applies σ(x) = 1 / (1 + exp(-x)) elementwise.
func SigmoidForward(x *tensor.Tensor) (*tensor.Tensor, SigmoidCache) {
	out := x.Map(func(v float64) float64 {
		return 1 / (1 + math.Exp(-v))
	})
	return out, SigmoidCache{Out: out}
}

// SigmoidBackward computes dx = σ(x) * (1 - σ(x)) * dout from the cached output.
func SigmoidBackward(dout *tensor.Tensor, cache SigmoidCache) *tensor.Tensor {
	deriv := cache.Out.Map(func(s float64) float64 {
		return s * (1 - s)
	})
	return dout.Mul(deriv)
}
