// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package bitdb

import "runtime"

// Options configures a batched kernel call: a plain struct with a
// constructor returning documented neutral defaults, validated lazily by
// the consuming call rather than by the constructor itself.
type Options struct {
	// DeviceID selects the GPU device for the GPU backend.
	DeviceID int
	// NumCPUThreads is the desired worker count for the threaded backend.
	// <= 0 means "use the implementation's maximum" (runtime.NumCPU()).
	NumCPUThreads int

	// UpdateFirstOperand asks the GPU backend to refresh an already
	// device-resident first operand from host memory before compute.
	UpdateFirstOperand bool
	// UpdateSecondOperand is UpdateFirstOperand for the second operand.
	UpdateSecondOperand bool

	// ReleaseFirstOperand asks the GPU backend to evict the first
	// operand's device-side buffer after compute.
	ReleaseFirstOperand bool
	// ReleaseSecondOperand is ReleaseFirstOperand for the second operand.
	ReleaseSecondOperand bool
	// ReleaseCounts asks the GPU backend to evict the count matrix's
	// device-side buffer after compute (its host copy is always written
	// back regardless of this flag).
	ReleaseCounts bool
}

// DefaultOptions returns the documented neutral options: device 0, no
// refresh or release requested, and a thread count resolved to the host's
// logical CPU count.
func DefaultOptions() Options {
	return Options{}
}

// resolveThreads returns the worker count to use for the threaded backend:
// the configured value if positive, otherwise runtime.NumCPU().
func (o Options) resolveThreads() int {
	if o.NumCPUThreads > 0 {
		return o.NumCPUThreads
	}
	return runtime.NumCPU()
}
