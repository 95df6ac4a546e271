package nn

import (
	"github.com/born-ml/mlnotes/internal/tensor"
)

// AffineCache holds the forward inputs needed by AffineBackward.
type AffineCache struct {
	X *tensor.Tensor // [N, c_in]
	W *tensor.Tensor // [c_out, c_in]
	B *tensor.Tensor // [c_out]
}

// AffineForward computes the output of a fully connected layer.
//
// Performs: out = x @ W.T + b
//
// where:
//   - x has shape [N, c_in]
//   - W has shape [c_out, c_in]
//   - b has shape [c_out]
//   - out has shape [N, c_out]
//
// The returned cache holds the three inputs.
func AffineForward(x, w, b *tensor.Tensor) (*tensor.Tensor, AffineCache) {
	out := x.MatMul(w.Transpose()).AddRowVector(b)
	return out, AffineCache{X: x, W: w, B: b}
}

// AffineBackward computes the gradients of a fully connected layer.
//
//   - dx = dout @ W       [N, c_in]
//   - dW = dout.T @ x     [c_out, c_in]
//   - db = sum_N dout     [c_out]
func AffineBackward(dout *tensor.Tensor, cache AffineCache) (dx, dW, db *tensor.Tensor) {
	dx = dout.MatMul(cache.W)
	dW = dout.Transpose().MatMul(cache.X)
	db = dout.SumRows()
	return dx, dW, db
}
