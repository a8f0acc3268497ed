package buffer

import (
	"fmt"

	"github.com/x448/float16"
)

// Cast converts a buffer to a different data type, returning a new buffer.
// Half-precision conversion goes through IEEE 754 binary16 with
// round-to-nearest-even, matching how checkpoints store fp16 weights.
//
// Supported conversions: any pairing of Float16, Float32, Float64, plus
// Int32 -> Float32/Float64 for loading integer-coded data.
func Cast(b *Buffer, dtype DataType) (*Buffer, error) {
	if b.DType() == dtype {
		return b.Clone(), nil
	}

	out, err := New(b.Shape(), dtype)
	if err != nil {
		return nil, err
	}

	// Widen the source to float64, then narrow to the target.
	src := make([]float64, b.NumElements())
	switch b.DType() {
	case Float16:
		for i, bits := range b.AsFloat16() {
			src[i] = float64(float16.Frombits(bits).Float32())
		}
	case Float32:
		for i, v := range b.AsFloat32() {
			src[i] = float64(v)
		}
	case Float64:
		copy(src, b.AsFloat64())
	case Int32:
		for i, v := range b.AsInt32() {
			src[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("cast: unsupported source dtype %s", b.DType())
	}

	switch dtype {
	case Float16:
		dst := out.AsFloat16()
		for i, v := range src {
			dst[i] = float16.Fromfloat32(float32(v)).Bits()
		}
	case Float32:
		dst := out.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case Float64:
		copy(out.AsFloat64(), src)
	default:
		return nil, fmt.Errorf("cast: unsupported target dtype %s", dtype)
	}

	return out, nil
}

// FromFloat16Bits creates a Float16 buffer from raw half-precision bits.
func FromFloat16Bits(bits []uint16, shape Shape) (*Buffer, error) {
	if shape.NumElements() != len(bits) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(bits))
	}

	b, err := New(shape, Float16)
	if err != nil {
		return nil, err
	}
	copy(b.AsFloat16(), bits)
	return b, nil
}
