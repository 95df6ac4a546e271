// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides hand-written forward and backward passes for a small
// fully connected network.
//
// # Overview
//
// Every layer is a pair of functions. The forward function returns its output
// and a cache; the backward function takes the upstream gradient and that
// cache and returns gradients for its inputs:
//   - AffineForward / AffineBackward: out = x · Wᵀ + b
//   - ReLUForward / ReLUBackward
//   - SigmoidForward / SigmoidBackward
//   - L2Loss: squared error against one-hot labels and its gradient
//
// TwoLayerNet chains them as affine → ReLU → affine → sigmoid and stores the
// gradients of the last backward pass next to its parameters.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/mlnotes/nn"
//	    "github.com/born-ml/mlnotes/optim"
//	)
//
//	func main() {
//	    model := nn.NewTwoLayerNet(784, 128, 10, rand.New(rand.NewSource(1)))
//	    sgd := optim.NewSGD(optim.SGDConfig{LR: 1e-3})
//
//	    out, cache := model.Forward(x)
//	    loss, dout := nn.L2Loss(out, labels)
//	    model.Backward(dout, cache)
//	    sgd.Step(model.Params(), model.Grads())
//	}
package nn
