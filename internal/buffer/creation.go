package buffer

import "fmt"

// FromSlice creates a buffer from a flat Go slice.
// The slice is copied into the buffer's memory.
func FromSlice[T Float](data []T, shape Shape) (*Buffer, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	var dummy T
	dtype := inferDataType(dummy)

	b, err := New(shape, dtype)
	if err != nil {
		return nil, err
	}

	switch dtype {
	case Float32:
		copy(b.AsFloat32(), any(data).([]float32))
	case Float64:
		copy(b.AsFloat64(), any(data).([]float64))
	}

	return b, nil
}

// FromScalar creates a 0-D buffer holding a single value.
func FromScalar[T Float](value T) *Buffer {
	b, err := FromSlice([]T{value}, Shape{})
	if err != nil {
		panic(err) // Shape{} always holds exactly one element
	}
	return b
}

// Zeros creates a buffer filled with zeros.
func Zeros(shape Shape, dtype DataType) *Buffer {
	b, err := New(shape, dtype)
	if err != nil {
		panic(err)
	}
	// Data is already zero-initialized by make()
	return b
}

// Ones creates a buffer filled with ones.
// Panics for non-float dtypes.
func Ones(shape Shape, dtype DataType) *Buffer {
	return Full(shape, dtype, 1.0)
}

// Full creates a buffer filled with a specific value.
// Panics for non-float dtypes.
func Full(shape Shape, dtype DataType, value float64) *Buffer {
	b := Zeros(shape, dtype)

	switch dtype {
	case Float32:
		data := b.AsFloat32()
		for i := range data {
			data[i] = float32(value)
		}
	case Float64:
		data := b.AsFloat64()
		for i := range data {
			data[i] = value
		}
	default:
		panic(fmt.Sprintf("full: unsupported dtype %s (only float32/float64 supported)", dtype))
	}
	return b
}
