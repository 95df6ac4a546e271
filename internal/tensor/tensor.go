// Package tensor implements the dense float64 arrays used by the two-layer
// network and its training loop.
//
// Tensors are row-major. Matrix kernels only accept rank-2 tensors; elementwise
// kernels accept any rank as long as both operands have the same shape.
// Shape violations panic with a descriptive message, the same way an index out
// of range would.
package tensor

import (
	"fmt"
	"math/rand"
)

// Tensor is a dense, row-major float64 array.
type Tensor struct {
	shape Shape
	data  []float64
}

// FromSlice creates a tensor that takes ownership of data.
//
// Returns an error if the shape is invalid or len(data) does not match it.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	return &Tensor{shape: shape.Clone(), data: data}, nil
}

// FromRows copies a slice of equally sized rows into a [len(rows), cols] tensor.
func FromRows(rows [][]float64) (*Tensor, error) {
	if len(rows) == 0 {
		return Zeros(Shape{0, 0}), nil
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return FromSlice(data, Shape{len(rows), cols})
}

// Zeros creates a zero-filled tensor.
// Panics if the shape is invalid.
func Zeros(shape Shape) *Tensor {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("zeros: %v", err))
	}
	return &Tensor{shape: shape.Clone(), data: make([]float64, shape.NumElements())}
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float64) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// Randn creates a tensor with values drawn from N(0, 1).
// A nil rng uses the math/rand global source.
func Randn(shape Shape, rng *rand.Rand) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		if rng != nil {
			t.data[i] = rng.NormFloat64()
		} else {
			//nolint:gosec // weight initialization, not security-critical
			t.data[i] = rand.NormFloat64()
		}
	}
	return t
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Data returns the underlying row-major storage.
// Writes through the returned slice modify the tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Rows returns the size of the first dimension.
func (t *Tensor) Rows() int {
	t.mustRank(2, "rows")
	return t.shape[0]
}

// Cols returns the size of the second dimension.
func (t *Tensor) Cols() int {
	t.mustRank(2, "cols")
	return t.shape[1]
}

// At returns element (i, j) of a rank-2 tensor.
func (t *Tensor) At(i, j int) float64 {
	t.mustRank(2, "at")
	return t.data[i*t.shape[1]+j]
}

// Set writes element (i, j) of a rank-2 tensor.
func (t *Tensor) Set(i, j int, v float64) {
	t.mustRank(2, "set")
	t.data[i*t.shape[1]+j] = v
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Tensor{shape: t.shape.Clone(), data: data}
}

// Reshape returns a view with a new shape over the same storage.
func (t *Tensor) Reshape(dims ...int) *Tensor {
	shape := Shape(dims)
	if shape.NumElements() != len(t.data) {
		panic(fmt.Sprintf("reshape: cannot reshape %v into %v", t.shape, shape))
	}
	return &Tensor{shape: shape.Clone(), data: t.data}
}

// SliceRows returns rows [start, end) of a rank-2 tensor as a view sharing storage.
func (t *Tensor) SliceRows(start, end int) *Tensor {
	t.mustRank(2, "slice rows")
	if start < 0 || end > t.shape[0] || start > end {
		panic(fmt.Sprintf("slice rows: range [%d:%d] out of bounds for %v", start, end, t.shape))
	}
	cols := t.shape[1]
	return &Tensor{
		shape: Shape{end - start, cols},
		data:  t.data[start*cols : end*cols : end*cols],
	}
}

// String renders the shape and, for small tensors, the values.
func (t *Tensor) String() string {
	if len(t.data) > 32 {
		return fmt.Sprintf("Tensor%v", t.shape)
	}
	return fmt.Sprintf("Tensor%v%v", t.shape, t.data)
}

func (t *Tensor) mustRank(rank int, op string) {
	if len(t.shape) != rank {
		panic(fmt.Sprintf("%s: expected %dD tensor, got shape %v", op, rank, t.shape))
	}
}
