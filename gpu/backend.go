// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "errors"

// ErrNoGPU is returned by the native backend when the requested nonzero
// device id names no attached accelerator. The simulated backend never
// returns it: a binary built without the gpuoffload tag computes every
// request on the host, whatever device id was asked for.
var ErrNoGPU = errors.New("gpu: no such offload device")

// Op mirrors the closed operator set of the host package (diff/inter/minus/
// union) without importing it, keeping this package free of a dependency
// on the host bitset representation.
type Op int

const (
	OpDiff Op = iota
	OpInter
	OpMinus
	OpUnion
)

// Request is one batched kernel invocation: two concatenated slot arrays
// (N and M slots of WordWidth words each) and a count matrix to fill,
// together with the GPU residency flags (refresh/release per operand).
type Request struct {
	DeviceID  int
	Op        Op
	WordWidth int
	N, M      int
	AWords    []uint64 // N * WordWidth
	BWords    []uint64 // M * WordWidth
	Counts    []uint32 // N * M, written in place

	UpdateA, UpdateB                  bool
	ReleaseA, ReleaseB, ReleaseCounts bool
}

// Kernel runs req against reg, implementing the device-residency protocol:
//
//  1. transfer in any of {A, B, counts} not yet resident,
//  2. refresh A/B if already resident and a refresh was requested,
//  3. always map counts for write-out,
//  4. run the compute kernel (native offload or simulated fallback),
//  5. release each buffer whose flag asks for it.
//
// The actual numeric compute is delegated to compute, which is
// implemented once under the gpuoffload build tag (real OpenMP target
// offload via cgo) and once without it (a pure-Go simulated device that
// computes the identical result against host memory). Both
// implementations share this orchestration so the residency bookkeeping
// is identical regardless of which one is linked in. The steps above
// update the Registry only; compute does not read it, so the native
// kernel transfers A and B in and counts out on every call, and a buffer
// marked resident is not reused on the device across calls.
func Kernel(reg *Registry, req Request) error {
	if req.N == 0 || req.M == 0 || req.WordWidth == 0 {
		return nil
	}

	transferOrRefresh(reg, req.AWords, req.DeviceID, req.UpdateA)
	transferOrRefresh(reg, req.BWords, req.DeviceID, req.UpdateB)
	// Counts is always (re)transferred in: the protocol maps it for
	// write-out on every call regardless of prior residency.
	reg.MarkCountsResident(req.Counts, req.DeviceID)

	err := compute(req)

	// Releases are honored even when compute failed: a buffer already in
	// flight stays controlled by its own flag alone.
	if req.ReleaseA {
		reg.Release(req.AWords, req.DeviceID)
	}
	if req.ReleaseB {
		reg.Release(req.BWords, req.DeviceID)
	}
	if req.ReleaseCounts {
		reg.ReleaseCounts(req.Counts, req.DeviceID)
	}
	return err
}

func transferOrRefresh(reg *Registry, words []uint64, device int, refresh bool) {
	if !reg.Present(words, device) {
		reg.MarkResident(words, device)
		return
	}
	if refresh {
		// The host copy is already authoritative in this process (there
		// is no separate device address space to copy into outside the
		// native build); marking resident again is the refresh.
		reg.MarkResident(words, device)
	}
}
