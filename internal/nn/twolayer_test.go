package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/mlnotes/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStd(t *tensor.Tensor) float64 {
	data := t.Data()
	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	var ss float64
	for _, v := range data {
		ss += (v - mean) * (v - mean)
	}
	return math.Sqrt(ss / float64(len(data)))
}

func TestNewTwoLayerNetShapes(t *testing.T) {
	net := NewTwoLayerNet(7, 5, 3, rand.New(rand.NewSource(1)))
	p := net.Params()

	assert.True(t, p.W1.Shape().Equal(tensor.Shape{5, 7}))
	assert.True(t, p.B1.Shape().Equal(tensor.Shape{5}))
	assert.True(t, p.W2.Shape().Equal(tensor.Shape{3, 5}))
	assert.True(t, p.B2.Shape().Equal(tensor.Shape{3}))

	assert.Zero(t, p.B1.Sum())
	assert.Zero(t, p.B2.Sum())

	in, hidden, out := net.Dims()
	assert.Equal(t, []int{7, 5, 3}, []int{in, hidden, out})
	assert.Equal(t, 5*7+5+3*5+3, net.NumParameters())
}

func TestNewTwoLayerNetDeterministic(t *testing.T) {
	a := NewTwoLayerNet(4, 3, 2, rand.New(rand.NewSource(99)))
	b := NewTwoLayerNet(4, 3, 2, rand.New(rand.NewSource(99)))

	for i, p := range a.Params().Named() {
		assert.Equal(t, p.Tensor.Data(), b.Params().Named()[i].Tensor.Data(), p.Name)
	}
}

// TestInitScales checks that both weight matrices use the first layer's
// fan-in, not the Xavier scale.
func TestInitScales(t *testing.T) {
	const in, hidden, out = 8, 2000, 50
	net := NewTwoLayerNet(in, hidden, out, rand.New(rand.NewSource(4)))

	he := HeStd(in)
	assert.InEpsilon(t, he, sampleStd(net.Params().W1), 0.05)
	assert.InEpsilon(t, he, sampleStd(net.Params().W2), 0.05)

	xavier := XavierStd(hidden, out)
	assert.Greater(t, sampleStd(net.Params().W2), 10*xavier)
}

func TestForwardOutputRange(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	net := NewTwoLayerNet(6, 4, 3, rng)
	x := tensor.Randn(tensor.Shape{10, 6}, rng)

	out, cache := net.Forward(x)

	require.True(t, out.Shape().Equal(tensor.Shape{10, 3}))
	for _, v := range out.Data() {
		assert.Greater(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
	assert.Same(t, x, cache.Hidden.X)
	assert.Same(t, out, cache.Sigmoid.Out)
}

func TestBackwardPopulatesAllGrads(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	net := NewTwoLayerNet(6, 4, 3, rng)
	x := tensor.Randn(tensor.Shape{5, 6}, rng)

	for _, g := range net.Grads().Named() {
		assert.Nil(t, g.Tensor, "%s before backward", g.Name)
	}

	out, cache := net.Forward(x)
	_, dout := L2Loss(out, []int{0, 1, 2, 0, 1})
	net.Backward(dout, cache)

	params := net.Params().Named()
	for i, g := range net.Grads().Named() {
		require.NotNil(t, g.Tensor, g.Name)
		assert.Equal(t, params[i].Name, g.Name)
		assert.True(t, params[i].Tensor.Shape().Equal(g.Tensor.Shape()), g.Name)
	}
}

func TestParamsClone(t *testing.T) {
	net := NewTwoLayerNet(3, 2, 2, rand.New(rand.NewSource(5)))
	snapshot := net.Params().Clone()

	net.Params().W1.Data()[0] += 1

	assert.NotEqual(t, snapshot.W1.Data()[0], net.Params().W1.Data()[0])
}

type fixedScores struct {
	scores *tensor.Tensor
}

func (f fixedScores) Predict(*tensor.Tensor) *tensor.Tensor {
	return f.scores
}

func TestAccuracy(t *testing.T) {
	scores, err := tensor.FromSlice([]float64{
		0.9, 0.1,
		0.2, 0.8,
		0.6, 0.4,
		0.3, 0.7,
	}, tensor.Shape{4, 2})
	require.NoError(t, err)

	acc := Accuracy(fixedScores{scores}, nil, []int{0, 1, 1, 1})
	assert.InDelta(t, 0.75, acc, 1e-12)
}

func TestAccuracyLabelCountMismatchPanics(t *testing.T) {
	scores := tensor.Zeros(tensor.Shape{2, 3})

	assert.PanicsWithValue(t, "accuracy: 3 labels for 2 predictions", func() {
		Accuracy(fixedScores{scores}, nil, []int{0, 1, 2})
	})
}

func TestAccuracyEmptyIsNaN(t *testing.T) {
	acc := Accuracy(fixedScores{}, nil, nil)
	assert.True(t, math.IsNaN(acc))
}
