package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/born-ml/mlnotes/internal/tensor"
)

// Params holds the trainable tensors of a TwoLayerNet.
type Params struct {
	W1 *tensor.Tensor // [hidden, in]
	B1 *tensor.Tensor // [hidden]
	W2 *tensor.Tensor // [out, hidden]
	B2 *tensor.Tensor // [out]
}

// Grads mirrors Params with the gradients of the most recent Backward call.
type Grads struct {
	W1 *tensor.Tensor
	B1 *tensor.Tensor
	W2 *tensor.Tensor
	B2 *tensor.Tensor
}

// Named pairs a tensor with its conventional parameter name.
type Named struct {
	Name   string
	Tensor *tensor.Tensor
}

// Named returns the parameters in the fixed order W1, b1, W2, b2.
func (p *Params) Named() [4]Named {
	return [4]Named{
		{"W1", p.W1},
		{"b1", p.B1},
		{"W2", p.W2},
		{"b2", p.B2},
	}
}

// Named returns the gradients in the same order as Params.Named.
func (g *Grads) Named() [4]Named {
	return [4]Named{
		{"W1", g.W1},
		{"b1", g.B1},
		{"W2", g.W2},
		{"b2", g.B2},
	}
}

// Clone returns a deep copy of every parameter.
func (p *Params) Clone() *Params {
	return &Params{
		W1: p.W1.Clone(),
		B1: p.B1.Clone(),
		W2: p.W2.Clone(),
		B2: p.B2.Clone(),
	}
}

// TwoLayerCache threads the per-layer caches from Forward to Backward.
type TwoLayerCache struct {
	Hidden  AffineCache
	ReLU    ReLUCache
	Out     AffineCache
	Sigmoid SigmoidCache
}

// Forwarder is anything that maps a batch [N, c_in] to class scores [N, c_out].
type Forwarder interface {
	Predict(x *tensor.Tensor) *tensor.Tensor
}

// TwoLayerNet is a fixed-topology network: affine → ReLU → affine → sigmoid.
//
// Example:
//
//	net := nn.NewTwoLayerNet(784, 128, 10, rand.New(rand.NewSource(1)))
//	out, cache := net.Forward(x)
//	loss, dout := nn.L2Loss(out, labels)
//	net.Backward(dout, cache)
type TwoLayerNet struct {
	inDim     int
	hiddenDim int
	outDim    int
	params    *Params
	grads     *Grads
}

// NewTwoLayerNet allocates and initializes a TwoLayerNet.
//
// Biases start at zero. W1 is drawn from N(0, 2/inDim) (He).
//
// W2 is also drawn with std sqrt(2/inDim). The intent is Xavier,
// sqrt(2/(hiddenDim+outDim)) (see XavierStd), but the first layer's fan-in is
// used here so that trained results match the reference tutorial. Changing it
// changes every reported accuracy.
func NewTwoLayerNet(inDim, hiddenDim, outDim int, rng *rand.Rand) *TwoLayerNet {
	std := HeStd(inDim)
	return &TwoLayerNet{
		inDim:     inDim,
		hiddenDim: hiddenDim,
		outDim:    outDim,
		params: &Params{
			W1: Normal(tensor.Shape{hiddenDim, inDim}, std, rng),
			B1: Zeros(tensor.Shape{hiddenDim}),
			W2: Normal(tensor.Shape{outDim, hiddenDim}, std, rng),
			B2: Zeros(tensor.Shape{outDim}),
		},
		grads: &Grads{},
	}
}

// Forward runs affine → ReLU → affine → sigmoid on x [N, inDim].
func (n *TwoLayerNet) Forward(x *tensor.Tensor) (*tensor.Tensor, TwoLayerCache) {
	var (
		out   *tensor.Tensor
		cache TwoLayerCache
	)
	out, cache.Hidden = AffineForward(x, n.params.W1, n.params.B1)
	out, cache.ReLU = ReLUForward(out)
	out, cache.Out = AffineForward(out, n.params.W2, n.params.B2)
	out, cache.Sigmoid = SigmoidForward(out)
	return out, cache
}

// Predict runs Forward and discards the cache.
func (n *TwoLayerNet) Predict(x *tensor.Tensor) *tensor.Tensor {
	out, _ := n.Forward(x)
	return out
}

// Backward propagates dout [N, outDim] through the cached forward pass and
// overwrites the gradients returned by Grads.
func (n *TwoLayerNet) Backward(dout *tensor.Tensor, cache TwoLayerCache) {
	dx := SigmoidBackward(dout, cache.Sigmoid)
	dx, n.grads.W2, n.grads.B2 = AffineBackward(dx, cache.Out)
	dx = ReLUBackward(dx, cache.ReLU)
	_, n.grads.W1, n.grads.B1 = AffineBackward(dx, cache.Hidden)
}

// Params returns the network's parameters. Updates through it are visible to
// subsequent Forward calls.
func (n *TwoLayerNet) Params() *Params {
	return n.params
}

// Grads returns the gradients from the most recent Backward call.
// All fields are nil before the first call.
func (n *TwoLayerNet) Grads() *Grads {
	return n.grads
}

// Dims returns the input, hidden and output sizes.
func (n *TwoLayerNet) Dims() (in, hidden, out int) {
	return n.inDim, n.hiddenDim, n.outDim
}

// NumParameters returns the total number of trainable scalars.
func (n *TwoLayerNet) NumParameters() int {
	total := 0
	for _, p := range n.params.Named() {
		total += p.Tensor.NumElements()
	}
	return total
}

// Accuracy returns the fraction of rows whose arg-max class equals the label.
// An empty input yields NaN, the mean of no observations.
// Panics if the number of labels differs from the number of predicted rows.
func Accuracy(model Forwarder, x *tensor.Tensor, labels []int) float64 {
	if len(labels) == 0 {
		return math.NaN()
	}
	scores := model.Predict(x)
	if scores.Rows() != len(labels) {
		panic(fmt.Sprintf("accuracy: %d labels for %d predictions", len(labels), scores.Rows()))
	}
	predicted := scores.ArgMaxRows()
	correct := 0
	for i, p := range predicted {
		if p == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(labels))
}
