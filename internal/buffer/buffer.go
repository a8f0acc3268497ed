package buffer

import (
	"fmt"
	"unsafe"

	"github.com/dustin/go-humanize"
)

// Device represents the compute device a buffer lives on.
type Device int

// Supported compute devices. Only CPU is implemented today; the constant set
// mirrors the Backend abstraction so a GPU backend can slot in later.
const (
	CPU Device = iota
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	default:
		return "Unknown"
	}
}

// Buffer is the n-dimensional numeric storage unit. It owns its bytes
// exclusively: the graph core never shares mutable storage between nodes,
// so no reference counting is needed.
type Buffer struct {
	data   []byte
	shape  Shape
	stride []int
	dtype  DataType
	device Device
}

// New creates a zero-initialized Buffer with the given shape and type.
func New(shape Shape, dtype DataType) (*Buffer, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	byteSize := shape.NumElements() * dtype.Size()

	return &Buffer{
		data:   make([]byte, byteSize),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: CPU,
	}, nil
}

// Shape returns the buffer's shape.
func (b *Buffer) Shape() Shape {
	return b.shape
}

// Strides returns the buffer's memory strides (row-major).
func (b *Buffer) Strides() []int {
	return b.stride
}

// DType returns the buffer's data type.
func (b *Buffer) DType() DataType {
	return b.dtype
}

// Device returns the buffer's compute device.
func (b *Buffer) Device() Device {
	return b.device
}

// NumElements returns the total number of elements.
func (b *Buffer) NumElements() int {
	return b.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (b *Buffer) ByteSize() int {
	return b.NumElements() * b.dtype.Size()
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (b *Buffer) Data() []byte {
	return b.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the buffer's dtype is not Float32.
func (b *Buffer) AsFloat32() []float32 {
	if b.dtype != Float32 {
		panic(fmt.Sprintf("buffer dtype is %s, not float32", b.dtype))
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b.data[0])), b.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the buffer's dtype is not Float64.
func (b *Buffer) AsFloat64() []float64 {
	if b.dtype != Float64 {
		panic(fmt.Sprintf("buffer dtype is %s, not float64", b.dtype))
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&b.data[0])), b.NumElements())
}

// AsFloat16 interprets the data as raw IEEE 754 half-precision bits.
// Use Cast to convert to a computable float type.
// Panics if the buffer's dtype is not Float16.
func (b *Buffer) AsFloat16() []uint16 {
	if b.dtype != Float16 {
		panic(fmt.Sprintf("buffer dtype is %s, not float16", b.dtype))
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(&b.data[0])), b.NumElements())
}

// AsInt32 interprets the data as []int32.
// Panics if the buffer's dtype is not Int32.
func (b *Buffer) AsInt32() []int32 {
	if b.dtype != Int32 {
		panic(fmt.Sprintf("buffer dtype is %s, not int32", b.dtype))
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&b.data[0])), b.NumElements())
}

// AsBool interprets the data as []bool.
// Panics if the buffer's dtype is not Bool.
func (b *Buffer) AsBool() []bool {
	if b.dtype != Bool {
		panic(fmt.Sprintf("buffer dtype is %s, not bool", b.dtype))
	}
	return unsafe.Slice((*bool)(unsafe.Pointer(&b.data[0])), b.NumElements())
}

// Clone creates a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	clone := &Buffer{
		data:   make([]byte, len(b.data)),
		shape:  b.shape.Clone(),
		stride: append([]int(nil), b.stride...),
		dtype:  b.dtype,
		device: b.device,
	}
	copy(clone.data, b.data)
	return clone
}

// TransposeInPlace swaps the two dimensions of a matrix buffer in place.
// Panics if the buffer is not 2D. This is a storage-level utility; the
// differentiable transpose lives in the graph operator set.
func (b *Buffer) TransposeInPlace() {
	if len(b.shape) != 2 {
		panic(fmt.Sprintf("transpose in place: only 2D buffers supported, got %dD", len(b.shape)))
	}

	rows, cols := b.shape[0], b.shape[1]
	transposed := make([]byte, len(b.data))
	size := b.dtype.Size()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			src := (i*cols + j) * size
			dst := (j*rows + i) * size
			copy(transposed[dst:dst+size], b.data[src:src+size])
		}
	}
	b.data = transposed
	b.shape = Shape{cols, rows}
	b.stride = b.shape.ComputeStrides()
}

// At returns the element at the given indices as a float64, converting from
// the buffer's dtype. Panics on non-float dtypes or out-of-bounds indices.
func (b *Buffer) At(indices ...int) float64 {
	if len(indices) != len(b.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(b.shape), len(indices)))
	}

	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= b.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, b.shape[i]))
		}
		offset += idx * b.stride[i]
	}

	switch b.dtype {
	case Float32:
		return float64(b.AsFloat32()[offset])
	case Float64:
		return b.AsFloat64()[offset]
	default:
		panic(fmt.Sprintf("at: unsupported dtype %s (only float32/float64 supported)", b.dtype))
	}
}

// String returns a human-readable representation of the buffer.
func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer[%s]%v (%s) on %s",
		b.dtype, b.shape, humanize.Bytes(uint64(b.ByteSize())), b.device)
}
