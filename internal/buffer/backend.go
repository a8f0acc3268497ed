package buffer

// Backend defines the capability set the autodiff core requires from a
// numeric backend: elementwise arithmetic, matrix product, reduction,
// transpose, and the pointwise math functions the operator set is built on.
//
// Implementations:
//   - cpu: pure Go kernels (internal/backend/cpu)
//
// Kernels panic with a contextual message on shape or dtype misuse; these are
// programming errors, not recoverable conditions.
type Backend interface {
	// Element-wise binary operations (NumPy-style broadcasting)
	Add(a, b *Buffer) *Buffer
	Sub(a, b *Buffer) *Buffer
	Mul(a, b *Buffer) *Buffer
	Div(a, b *Buffer) *Buffer

	// Pow computes element-wise a^b with broadcasting.
	Pow(a, b *Buffer) *Buffer

	// Matrix operations (2D)
	MatMul(a, b *Buffer) *Buffer
	Transpose(a *Buffer) *Buffer

	// Element-wise math operations
	Exp(x *Buffer) *Buffer
	Log(x *Buffer) *Buffer
	Sigmoid(x *Buffer) *Buffer
	Relu(x *Buffer) *Buffer

	// Sum reduces all elements to a scalar (0-D) buffer.
	Sum(x *Buffer) *Buffer

	// Metadata
	Name() string
	Device() Device
}
