package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/mlnotes/internal/tensor"
)

const (
	idxImagesMagic = 2051
	idxLabelsMagic = 2049
)

// LoadIDX loads an image/label pair in the MNIST IDX format.
//
// Pixels are scaled from 0-255 to [0, 1] and each image is flattened into one
// row. maxSamples = 0 loads all samples.
func LoadIDX(imagesFile, labelsFile string, maxSamples int) (*Dataset, error) {
	images, imageSize, err := readIDXImages(imagesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	labelsRaw, err := readIDXLabels(labelsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}
	if len(images) != len(labelsRaw) {
		return nil, fmt.Errorf("image count (%d) != label count (%d)", len(images), len(labelsRaw))
	}

	n := len(images)
	if maxSamples > 0 && n > maxSamples {
		n = maxSamples
	}

	features := make([]float64, 0, n*imageSize)
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		for _, px := range images[i] {
			features = append(features, float64(px)/255.0)
		}
		labels[i] = int(labelsRaw[i])
	}

	x, err := tensor.FromSlice(features, tensor.Shape{n, imageSize})
	if err != nil {
		return nil, err
	}
	return New(x, labels)
}

// readIDXImages reads an image file in IDX format.
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes
//	number of cols: 4 bytes
//	pixel data: unsigned bytes (0-255)
func readIDXImages(filename string) ([][]byte, int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	var magic uint32
	if err := binary.Read(file, binary.BigEndian, &magic); err != nil {
		return nil, 0, fmt.Errorf("failed to read magic: %w", err)
	}
	if magic != idxImagesMagic {
		return nil, 0, fmt.Errorf("invalid magic number: got %d, want %d", magic, idxImagesMagic)
	}

	var dims [3]uint32 // images, rows, cols
	if err := binary.Read(file, binary.BigEndian, &dims); err != nil {
		return nil, 0, fmt.Errorf("failed to read dimensions: %w", err)
	}

	imageSize := int(dims[1]) * int(dims[2])

	info, err := file.Stat()
	if err != nil {
		return nil, 0, err
	}
	const headerSize = 16
	if payload := info.Size() - headerSize; int64(dims[0])*int64(imageSize) > payload {
		return nil, 0, fmt.Errorf("header declares %d images of %dx%d but file holds %d pixel bytes",
			dims[0], dims[1], dims[2], payload)
	}

	images := make([][]byte, dims[0])
	for i := range images {
		images[i] = make([]byte, imageSize)
		if _, err := io.ReadFull(file, images[i]); err != nil {
			return nil, 0, fmt.Errorf("failed to read image %d: %w", i, err)
		}
	}

	return images, imageSize, nil
}

// readIDXLabels reads a label file in IDX format.
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes
func readIDXLabels(filename string) ([]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var magic uint32
	if err := binary.Read(file, binary.BigEndian, &magic); err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", err)
	}
	if magic != idxLabelsMagic {
		return nil, fmt.Errorf("invalid magic number: got %d, want %d", magic, idxLabelsMagic)
	}

	var numLabels uint32
	if err := binary.Read(file, binary.BigEndian, &numLabels); err != nil {
		return nil, err
	}

	labels := make([]byte, numLabels)
	if _, err := io.ReadFull(file, labels); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}

	return labels, nil
}
