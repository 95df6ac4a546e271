// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim_test

import (
	"math/rand"
	"testing"

	"github.com/born-ml/mlnotes/nn"
	"github.com/born-ml/mlnotes/optim"
	"github.com/born-ml/mlnotes/tensor"
	"github.com/stretchr/testify/assert"
)

// TestSGDImplementsOptimizer verifies the facade alias keeps the interface.
func TestSGDImplementsOptimizer(_ *testing.T) {
	var _ optim.Optimizer = (*optim.SGD)(nil)
}

func TestSGDStepThroughFacade(t *testing.T) {
	model := nn.NewTwoLayerNet(2, 3, 2, rand.New(rand.NewSource(1)))
	before := model.Params().Clone()

	x := tensor.Randn(tensor.Shape{4, 2}, rand.New(rand.NewSource(2)))
	out, cache := model.Forward(x)
	_, dout := nn.L2Loss(out, []int{0, 1, 0, 1})
	model.Backward(dout, cache)

	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1})
	assert.Equal(t, 0.1, sgd.GetLR())
	sgd.Step(model.Params(), model.Grads())

	grads := model.Grads().Named()
	after := model.Params().Named()
	for i, p := range before.Named() {
		want := p.Tensor.Clone()
		want.AddScaledInPlace(-0.1, grads[i].Tensor)
		assert.InDeltaSlice(t, want.Data(), after[i].Tensor.Data(), 1e-12, p.Name)
	}
}

func TestSGDMomentumThroughFacade(t *testing.T) {
	model := nn.NewTwoLayerNet(2, 2, 2, rand.New(rand.NewSource(3)))
	x := tensor.Randn(tensor.Shape{2, 2}, rand.New(rand.NewSource(4)))
	out, cache := model.Forward(x)
	_, dout := nn.L2Loss(out, []int{0, 1})
	model.Backward(dout, cache)

	b2 := model.Params().B2.Clone()
	g := model.Grads().B2.Clone()

	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.5, Momentum: 0.9})
	sgd.Step(model.Params(), model.Grads())
	sgd.Step(model.Params(), model.Grads())

	// Two steps with the same gradient: v1 = g, v2 = 0.9g + g.
	for j, v := range b2.Data() {
		assert.InDelta(t, v-0.5*(g.Data()[j]+1.9*g.Data()[j]), model.Params().B2.Data()[j], 1e-12)
	}
}
