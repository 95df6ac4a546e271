package dataset

import (
	"math/rand"

	"github.com/born-ml/mlnotes/internal/tensor"
)

// Synthetic generates n samples drawn from one Gaussian blob per class.
//
// Blob centers are drawn uniformly from [-3, 3] per feature and samples add
// N(0, 0.5²) noise. Labels cycle 0, 1, ..., classes-1 so every prefix of the
// dataset is roughly balanced. This is NOT realistic data; it exists to
// exercise the training pipeline without files.
func Synthetic(n, features, classes int, rng *rand.Rand) *Dataset {
	centers := make([][]float64, classes)
	for c := range centers {
		centers[c] = make([]float64, features)
		for f := range centers[c] {
			centers[c][f] = rng.Float64()*6 - 3
		}
	}

	x := tensor.Zeros(tensor.Shape{n, features})
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		label := i % classes
		labels[i] = label
		for f := 0; f < features; f++ {
			x.Set(i, f, centers[label][f]+0.5*rng.NormFloat64())
		}
	}

	return &Dataset{X: x, Labels: labels}
}
