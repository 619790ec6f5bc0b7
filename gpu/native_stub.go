//go:build !(cgo && gpuoffload)

// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package gpu

// compute is the simulated-device fallback used whenever this binary is
// not built with cgo and the gpuoffload tag (i.e. on any machine without
// an OpenMP-capable C toolchain wired in, including CGO_ENABLED=0). It
// computes the identical teams-over-rows/threads-over-columns reduction on
// the host, against the same buffers the native backend would transfer to
// a device, so Kernel's residency bookkeeping is exercised identically
// regardless of which compute is linked in.
func compute(req Request) error {
	for i := 0; i < req.N; i++ {
		aRow := req.AWords[i*req.WordWidth : (i+1)*req.WordWidth]
		for j := 0; j < req.M; j++ {
			bRow := req.BWords[j*req.WordWidth : (j+1)*req.WordWidth]
			var n uint64
			for k := 0; k < req.WordWidth; k++ {
				n += popcountPortable(applyOp(req.Op, aRow[k], bRow[k]))
			}
			req.Counts[i*req.M+j] = uint32(n)
		}
	}
	return nil
}
