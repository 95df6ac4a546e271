// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/mlnotes/internal/nn"
	"github.com/born-ml/mlnotes/internal/tensor"
)

// Layer primitives

// AffineCache holds the inputs of an affine forward pass.
type AffineCache = nn.AffineCache

// ReLUCache holds the input of a ReLU forward pass.
type ReLUCache = nn.ReLUCache

// SigmoidCache holds the output of a sigmoid forward pass.
type SigmoidCache = nn.SigmoidCache

// AffineForward computes x · wᵀ + b for x (N, in), w (out, in) and b (out).
func AffineForward(x, w, b *tensor.Tensor) (*tensor.Tensor, AffineCache) {
	return nn.AffineForward(x, w, b)
}

// AffineBackward returns the gradients of an affine layer.
func AffineBackward(dout *tensor.Tensor, cache AffineCache) (dx, dW, db *tensor.Tensor) {
	return nn.AffineBackward(dout, cache)
}

// ReLUForward computes max(0, x) element-wise.
func ReLUForward(x *tensor.Tensor) (*tensor.Tensor, ReLUCache) {
	return nn.ReLUForward(x)
}

// ReLUBackward passes dout through where the forward input was positive.
func ReLUBackward(dout *tensor.Tensor, cache ReLUCache) *tensor.Tensor {
	return nn.ReLUBackward(dout, cache)
}

// SigmoidForward computes 1 / (1 + exp(-x)) element-wise.
func SigmoidForward(x *tensor.Tensor) (*tensor.Tensor, SigmoidCache) {
	return nn.SigmoidForward(x)
}

// SigmoidBackward returns dout * s * (1 - s).
func SigmoidBackward(dout *tensor.Tensor, cache SigmoidCache) *tensor.Tensor {
	return nn.SigmoidBackward(dout, cache)
}

// Loss

// OneHot encodes labels as rows of a (len(labels), width) tensor.
func OneHot(labels []int, width int) *tensor.Tensor {
	return nn.OneHot(labels, width)
}

// L2Loss returns the squared error of pred against one-hot labels, averaged
// over the batch, and its gradient with respect to pred.
func L2Loss(pred *tensor.Tensor, labels []int) (float64, *tensor.Tensor) {
	return nn.L2Loss(pred, labels)
}

// Two-layer network

// TwoLayerNet is affine → ReLU → affine → sigmoid.
type TwoLayerNet = nn.TwoLayerNet

// TwoLayerCache holds the per-layer caches of a forward pass.
type TwoLayerCache = nn.TwoLayerCache

// Params holds the network weights.
type Params = nn.Params

// Grads holds the gradients of the last backward pass.
type Grads = nn.Grads

// Forwarder is anything that maps inputs to class scores.
type Forwarder = nn.Forwarder

// NewTwoLayerNet creates a network with He-initialized weights and zero biases.
//
// Example:
//
//	model := nn.NewTwoLayerNet(784, 128, 10, rand.New(rand.NewSource(1)))
func NewTwoLayerNet(inDim, hiddenDim, outDim int, rng *rand.Rand) *TwoLayerNet {
	return nn.NewTwoLayerNet(inDim, hiddenDim, outDim, rng)
}

// Accuracy returns the fraction of rows whose arg-max class equals the label.
func Accuracy(model Forwarder, x *tensor.Tensor, labels []int) float64 {
	return nn.Accuracy(model, x, labels)
}
