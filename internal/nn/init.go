package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/mlnotes/internal/tensor"
)

// HeStd returns the He (Kaiming) standard deviation sqrt(2 / fan_in).
func HeStd(fanIn int) float64 {
	return math.Sqrt(2.0 / float64(fanIn))
}

// XavierStd returns the Xavier (Glorot) normal standard deviation
// sqrt(2 / (fan_in + fan_out)).
func XavierStd(fanIn, fanOut int) float64 {
	return math.Sqrt(2.0 / float64(fanIn+fanOut))
}

// Normal creates a tensor with values drawn from N(0, std²).
//
// Parameters:
//   - shape: Shape of the tensor
//   - std: Standard deviation
//   - rng: Random source (nil uses the math/rand global source)
func Normal(shape tensor.Shape, std float64, rng *rand.Rand) *tensor.Tensor {
	return tensor.Randn(shape, rng).Scale(std)
}

// Zeros creates a zero-filled tensor.
//
// This is commonly used for bias initialization.
func Zeros(shape tensor.Shape) *tensor.Tensor {
	return tensor.Zeros(shape)
}
