// Copyright 2026 Fusion ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu is the public surface of the pure-Go CPU backend.
package cpu

import "github.com/fusion-ml/fusion/internal/backend/cpu"

// Backend implements the numeric capability set with pure Go kernels.
type Backend = cpu.Backend

// New creates a new CPU backend.
func New() *Backend {
	return cpu.New()
}
