// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training the networks
// in package nn.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with optional momentum
//   - Optimizer interface for custom optimizers
//
// With zero momentum SGD applies param -= lr * grad to W1, b1, W2 and b2 in
// that order.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/mlnotes/nn"
//	    "github.com/born-ml/mlnotes/optim"
//	)
//
//	func main() {
//	    model := nn.NewTwoLayerNet(784, 128, 10, nil)
//	    optimizer := optim.NewSGD(optim.SGDConfig{LR: 1e-3})
//
//	    for epoch := range 10 {
//	        out, cache := model.Forward(x)
//	        _, dout := nn.L2Loss(out, labels)
//	        model.Backward(dout, cache)
//	        optimizer.Step(model.Params(), model.Grads())
//	    }
//	}
package optim
