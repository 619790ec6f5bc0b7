// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package bitdb

// Backend selects which execution model a caller wants the CLI harness (or
// any other driver built on this package) to default to.
type Backend int

const (
	BackendSerial Backend = iota
	BackendThreaded
	BackendGPU
)

// Config wraps engine-wide tunables a driver reuses across many kernel
// calls: a plain struct with a constructor returning documented defaults,
// validated lazily by whatever consumes it rather than by the constructor
// itself.
type Config struct {
	// DefaultBackend is the backend a driver should pick when the caller
	// does not ask for one explicitly.
	DefaultBackend Backend
	// Options carries the per-call knobs (device, thread count, residency
	// flags) applied whenever this Config's DefaultBackend is used.
	Options Options
}

// DefaultConfig returns the neutral configuration: serial backend, default
// options (see DefaultOptions).
func DefaultConfig() Config {
	return Config{DefaultBackend: BackendSerial, Options: DefaultOptions()}
}
