package dataset

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/born-ml/mlnotes/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidates(t *testing.T) {
	x := tensor.Zeros(tensor.Shape{2, 3})

	_, err := New(x, []int{0})
	assert.Error(t, err)

	_, err = New(x, []int{0, -1})
	assert.Error(t, err)

	d, err := New(x, []int{0, 4})
	require.NoError(t, err)
	assert.Equal(t, 2, d.NumSamples())
	assert.Equal(t, 3, d.NumFeatures())
	assert.Equal(t, 5, d.NumClasses())
}

func TestSplit(t *testing.T) {
	d := Synthetic(10, 2, 2, rand.New(rand.NewSource(1)))

	train, val := d.Split(0.5)

	assert.Equal(t, 5, train.NumSamples())
	assert.Equal(t, 5, val.NumSamples())
	assert.Equal(t, 5, train.X.Rows())
	assert.Equal(t, d.Labels[5:], val.Labels)
	assert.Equal(t, d.X.At(5, 1), val.X.At(0, 1))
}

func TestSplitZeroRatio(t *testing.T) {
	d := Synthetic(4, 2, 2, rand.New(rand.NewSource(1)))

	train, val := d.Split(0)

	assert.Equal(t, 4, train.NumSamples())
	assert.Equal(t, 0, val.NumSamples())
}

func TestSynthetic(t *testing.T) {
	d := Synthetic(12, 5, 3, rand.New(rand.NewSource(2)))

	assert.True(t, d.X.Shape().Equal(tensor.Shape{12, 5}))
	assert.Equal(t, 3, d.NumClasses())
	assert.Equal(t, []int{0, 1, 2, 0}, d.Labels[:4])
}

func TestReadCSV(t *testing.T) {
	input := "label,a,b\n1,0,255\n0,51,102\n"

	d, err := ReadCSV(strings.NewReader(input), CSVOptions{Header: true, Scale: 1.0 / 255})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 0}, d.Labels)
	assert.InDeltaSlice(t, []float64{0, 1, 0.2, 0.4}, d.X.Data(), 1e-12)
}

func TestReadCSVMaxSamples(t *testing.T) {
	input := "1,1\n0,2\n1,3\n"

	d, err := ReadCSV(strings.NewReader(input), CSVOptions{MaxSamples: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, d.NumSamples())
	assert.Equal(t, []float64{1, 2}, d.X.Data())
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  CSVOptions
	}{
		{"empty", "", CSVOptions{}},
		{"header only", "label,a\n", CSVOptions{Header: true}},
		{"label only", "1\n2\n", CSVOptions{}},
		{"bad label", "x,1\n", CSVOptions{}},
		{"bad feature", "1,y\n", CSVOptions{}},
		{"ragged", "1,2,3\n1,2\n", CSVOptions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input), tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), CSVOptions{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func writeIDX(t *testing.T, path string, header []uint32, payload []byte) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, header))
	buf.Write(payload)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestLoadIDX(t *testing.T) {
	dir := t.TempDir()
	images := filepath.Join(dir, "images-idx3-ubyte")
	labels := filepath.Join(dir, "labels-idx1-ubyte")

	// Three 2x2 images.
	writeIDX(t, images, []uint32{2051, 3, 2, 2}, []byte{
		0, 255, 0, 255,
		255, 255, 0, 0,
		51, 0, 0, 0,
	})
	writeIDX(t, labels, []uint32{2049, 3}, []byte{7, 1, 3})

	d, err := LoadIDX(images, labels, 0)
	require.NoError(t, err)
	assert.True(t, d.X.Shape().Equal(tensor.Shape{3, 4}))
	assert.Equal(t, []int{7, 1, 3}, d.Labels)
	assert.InDelta(t, 1.0, d.X.At(0, 1), 1e-12)
	assert.InDelta(t, 0.2, d.X.At(2, 0), 1e-12)

	limited, err := LoadIDX(images, labels, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, limited.NumSamples())
}

func TestLoadIDXErrors(t *testing.T) {
	dir := t.TempDir()
	images := filepath.Join(dir, "images")
	labels := filepath.Join(dir, "labels")

	writeIDX(t, images, []uint32{2051, 2, 1, 1}, []byte{1, 2})
	writeIDX(t, labels, []uint32{2049, 1}, []byte{0})

	_, err := LoadIDX(images, labels, 0)
	assert.ErrorContains(t, err, "image count (2) != label count (1)")

	// Swapped files fail the magic check.
	_, err = LoadIDX(labels, images, 0)
	assert.ErrorContains(t, err, "invalid magic number")

	// 65536*65536 wraps to 0 in uint32; the size must not.
	huge := filepath.Join(dir, "huge")
	writeIDX(t, huge, []uint32{2051, 1, 65536, 65536}, []byte{1, 2, 3, 4})
	_, err = LoadIDX(huge, labels, 0)
	assert.ErrorContains(t, err, "declares 1 images of 65536x65536")

	_, err = LoadIDX(filepath.Join(dir, "nope"), labels, 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
