// Copyright 2026 Fusion ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package buffer is the public surface of the fusion numeric storage layer.
package buffer

import "github.com/fusion-ml/fusion/internal/buffer"

// Buffer is the n-dimensional numeric storage unit.
type Buffer = buffer.Buffer

// Shape represents the dimensions of a buffer.
type Shape = buffer.Shape

// DataType represents runtime type information for buffers.
type DataType = buffer.DataType

// Device represents the compute device a buffer lives on.
type Device = buffer.Device

// Backend is the capability set the autodiff core requires from a numeric
// backend.
type Backend = buffer.Backend

// Supported data types.
const (
	Float16 = buffer.Float16
	Float32 = buffer.Float32
	Float64 = buffer.Float64
	Int32   = buffer.Int32
	Bool    = buffer.Bool
)

// CPU is the only compute device implemented today.
const CPU = buffer.CPU

// New creates a zero-initialized Buffer with the given shape and type.
func New(shape Shape, dtype DataType) (*Buffer, error) {
	return buffer.New(shape, dtype)
}

// FromSlice creates a buffer from a flat Go slice.
func FromSlice[T buffer.Float](data []T, shape Shape) (*Buffer, error) {
	return buffer.FromSlice(data, shape)
}

// FromScalar creates a 0-D buffer holding a single value.
func FromScalar[T buffer.Float](value T) *Buffer {
	return buffer.FromScalar(value)
}

// FromFloat16Bits creates a Float16 buffer from raw half-precision bits.
func FromFloat16Bits(bits []uint16, shape Shape) (*Buffer, error) {
	return buffer.FromFloat16Bits(bits, shape)
}

// Zeros creates a buffer filled with zeros.
func Zeros(shape Shape, dtype DataType) *Buffer {
	return buffer.Zeros(shape, dtype)
}

// Ones creates a buffer filled with ones.
func Ones(shape Shape, dtype DataType) *Buffer {
	return buffer.Ones(shape, dtype)
}

// Full creates a buffer filled with a specific value.
func Full(shape Shape, dtype DataType, value float64) *Buffer {
	return buffer.Full(shape, dtype, value)
}

// Cast converts a buffer to a different data type, returning a new buffer.
func Cast(b *Buffer, dtype DataType) (*Buffer, error) {
	return buffer.Cast(b, dtype)
}

// BroadcastShapes implements NumPy-style broadcasting rules.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return buffer.BroadcastShapes(a, b)
}
