// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 matrices used by the mlnotes
// network code.
//
// # Overview
//
// A Tensor is a row-major block of float64 values with a Shape. The network
// only ever needs rank-1 and rank-2 tensors, so the operations here are
// matrix operations:
//   - MatMul (row-parallel on multi-core machines)
//   - Transpose, AddRowVector, SumRows
//   - element-wise Add, Sub, Mul, Scale, Map
//   - ArgMaxRows for classification
//
// # Basic Usage
//
//	import "github.com/born-ml/mlnotes/tensor"
//
//	func main() {
//	    x, _ := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
//	    w := tensor.Full(tensor.Shape{3, 2}, 0.5)
//
//	    y := x.MatMul(w.Transpose()) // (2, 3)
//	    fmt.Println(y)
//	}
//
// # Shape Errors
//
// Shape mismatches are programming errors and panic with a message naming
// the operation and both shapes, the same way the CPU kernels do. Functions
// that take external data (FromSlice, FromRows) return errors instead.
package tensor
