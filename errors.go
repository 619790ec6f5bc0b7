// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package bitdb

import (
	"errors"
	"fmt"
)

// Resource errors: recoverable, always returned rather than panicked.
// Host allocation failure has no sentinel here because the Go runtime
// aborts on it before a value could be returned.
var (
	ErrNoDevice      = errors.New("bitdb: no GPU device available")
	ErrDeviceCompute = errors.New("bitdb: device kernel failed")
)

// PreconditionError reports a violated programmer-facing invariant: a null
// handle where one is required, mismatched lengths, an out-of-range index,
// a double free, or similar misuse. Callers are not expected to recover
// from it in normal operation; it exists as a typed value (rather than a
// bare string panic) so tests can assert on which invariant was violated
// via errors.As after a recover().
type PreconditionError struct {
	Op   string // operation that detected the violation, e.g. "Bit.Get"
	Kind string // short machine-checkable name, e.g. "index-out-of-range"
	Msg  string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("bitdb: %s: %s: %s", e.Op, e.Kind, e.Msg)
}

func fail(op, kind, format string, args ...any) {
	panic(&PreconditionError{Op: op, Kind: kind, Msg: fmt.Sprintf(format, args...)})
}
