package tensor

import (
	"fmt"
	"math"

	"github.com/born-ml/mlnotes/internal/parallel"
)

var kernelConfig = parallel.DefaultConfig()

// MatMul performs matrix multiplication.
// (M, K) @ (K, N) -> (M, N). Output rows are computed in parallel.
func (t *Tensor) MatMul(other *Tensor) *Tensor {
	t.mustRank(2, "matmul")
	other.mustRank(2, "matmul")

	m, k := t.shape[0], t.shape[1]
	kAlt, n := other.shape[0], other.shape[1]
	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	result := Zeros(Shape{m, n})
	c, a, b := result.data, t.data, other.data

	parallel.For(m, func(i int) {
		row := c[i*n : (i+1)*n]
		for kIdx := 0; kIdx < k; kIdx++ {
			aik := a[i*k+kIdx]
			bRow := b[kIdx*n : (kIdx+1)*n]
			for j, bkj := range bRow {
				row[j] += aik * bkj
			}
		}
	}, kernelConfig)

	return result
}

// Transpose returns a new (N, M) tensor for an (M, N) input.
func (t *Tensor) Transpose() *Tensor {
	t.mustRank(2, "transpose")
	m, n := t.shape[0], t.shape[1]
	result := Zeros(Shape{n, m})
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			result.data[j*m+i] = t.data[i*n+j]
		}
	}
	return result
}

// Add returns t + other elementwise.
func (t *Tensor) Add(other *Tensor) *Tensor {
	return t.zip(other, "add", func(a, b float64) float64 { return a + b })
}

// Sub returns t - other elementwise.
func (t *Tensor) Sub(other *Tensor) *Tensor {
	return t.zip(other, "sub", func(a, b float64) float64 { return a - b })
}

// Mul returns t * other elementwise.
func (t *Tensor) Mul(other *Tensor) *Tensor {
	return t.zip(other, "mul", func(a, b float64) float64 { return a * b })
}

// Scale returns t * s.
func (t *Tensor) Scale(s float64) *Tensor {
	return t.Map(func(v float64) float64 { return v * s })
}

// Map applies f to every element and returns the result as a new tensor.
func (t *Tensor) Map(f func(float64) float64) *Tensor {
	result := &Tensor{shape: t.shape.Clone(), data: make([]float64, len(t.data))}
	for i, v := range t.data {
		result.data[i] = f(v)
	}
	return result
}

// AddRowVector broadcasts a [C] vector over every row of an [N, C] tensor.
func (t *Tensor) AddRowVector(v *Tensor) *Tensor {
	t.mustRank(2, "add row vector")
	v.mustRank(1, "add row vector")
	cols := t.shape[1]
	if v.shape[0] != cols {
		panic(fmt.Sprintf("add row vector: shape mismatch %v + %v", t.shape, v.shape))
	}
	result := t.Clone()
	for i := 0; i < t.shape[0]; i++ {
		row := result.data[i*cols : (i+1)*cols]
		for j := range row {
			row[j] += v.data[j]
		}
	}
	return result
}

// SumRows reduces an [N, C] tensor over its first axis, returning [C].
func (t *Tensor) SumRows() *Tensor {
	t.mustRank(2, "sum rows")
	cols := t.shape[1]
	result := Zeros(Shape{cols})
	for i := 0; i < t.shape[0]; i++ {
		row := t.data[i*cols : (i+1)*cols]
		for j, v := range row {
			result.data[j] += v
		}
	}
	return result
}

// Sum returns the sum of all elements.
func (t *Tensor) Sum() float64 {
	var sum float64
	for _, v := range t.data {
		sum += v
	}
	return sum
}

// ArgMaxRows returns the column index of the largest value in each row.
// The first maximum wins ties.
func (t *Tensor) ArgMaxRows() []int {
	t.mustRank(2, "argmax")
	rows, cols := t.shape[0], t.shape[1]
	out := make([]int, rows)
	for i := 0; i < rows; i++ {
		row := t.data[i*cols : (i+1)*cols]
		best := 0
		for j := 1; j < len(row); j++ {
			if row[j] > row[best] {
				best = j
			}
		}
		out[i] = best
	}
	return out
}

// AddScaledInPlace performs t += alpha * other, mutating t.
func (t *Tensor) AddScaledInPlace(alpha float64, other *Tensor) {
	if !t.shape.Equal(other.shape) {
		panic(fmt.Sprintf("add scaled: shape mismatch %v vs %v", t.shape, other.shape))
	}
	for i, v := range other.data {
		t.data[i] += alpha * v
	}
}

// MaxAbsDiff returns the largest elementwise absolute difference.
func (t *Tensor) MaxAbsDiff(other *Tensor) float64 {
	if !t.shape.Equal(other.shape) {
		panic(fmt.Sprintf("max abs diff: shape mismatch %v vs %v", t.shape, other.shape))
	}
	var m float64
	for i, v := range t.data {
		m = math.Max(m, math.Abs(v-other.data[i]))
	}
	return m
}

// AllClose reports whether both tensors share a shape and every element
// differs by at most tol.
func (t *Tensor) AllClose(other *Tensor, tol float64) bool {
	if !t.shape.Equal(other.shape) {
		return false
	}
	return t.MaxAbsDiff(other) <= tol
}

func (t *Tensor) zip(other *Tensor, op string, f func(a, b float64) float64) *Tensor {
	if !t.shape.Equal(other.shape) {
		panic(fmt.Sprintf("%s: shape mismatch %v vs %v", op, t.shape, other.shape))
	}
	result := &Tensor{shape: t.shape.Clone(), data: make([]float64, len(t.data))}
	for i, v := range t.data {
		result.data[i] = f(v, other.data[i])
	}
	return result
}
