// Package cpu implements the pure-Go CPU backend for the fusion numeric core.
package cpu

import "github.com/fusion-ml/fusion/internal/buffer"

// Backend implements buffer.Backend with pure Go kernels.
// Every kernel allocates a fresh result buffer: the autodiff core relies on
// forward buffers staying intact until the backward pass has consumed them.
type Backend struct {
	device buffer.Device
}

// New creates a new CPU backend.
func New() *Backend {
	return &Backend{
		device: buffer.CPU,
	}
}

// Name returns the backend name.
func (cpu *Backend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *Backend) Device() buffer.Device {
	return cpu.device
}
