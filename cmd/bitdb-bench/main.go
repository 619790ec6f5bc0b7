// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Command bitdb-bench is a thin demo/benchmark harness over the bitdb
// public API. Wall-clock timing, per-size logging, and backend selection
// live here, never inside the core package.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/luxfi/bitdb"
)

func main() {
	length := flag.Uint("length", 1<<20, "bit length of each generated bitset")
	nA := flag.Uint("na", 64, "number of slots in the first batch container")
	nB := flag.Uint("nb", 64, "number of slots in the second batch container")
	density := flag.Float64("density", 0.01, "fraction of bits set in each generated bitset")
	backend := flag.String("backend", "serial", "backend to benchmark: serial, threaded, or gpu")
	op := flag.String("op", "inter", "set operator: diff, inter, minus, or union")
	threads := flag.Int("threads", 0, "worker count for the threaded backend (<=0: runtime.NumCPU())")
	device := flag.Int("device", 0, "GPU device id for the gpu backend")
	seed := flag.Int64("seed", 1, "PRNG seed for generated bitsets")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bitdb-bench [options]\n\nBenchmarks a batched set-op-and-count kernel over two randomly populated BitDBs.\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  bitdb-bench -length 65536 -na 128 -nb 128 -backend threaded -threads 8\n")
		fmt.Fprintf(os.Stderr, "  bitdb-bench -backend gpu -op union\n")
	}
	flag.Parse()

	opVal, err := parseOp(*op)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := parseConfig(*backend, *threads, *device)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	a := randomBitDB(rng, uint32(*length), uint32(*nA), *density)
	b := randomBitDB(rng, uint32(*length), uint32(*nB), *density)

	start := time.Now()
	matrix, err := run(context.Background(), cfg, opVal, a, b)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var total uint64
	for _, c := range matrix.Data {
		total += uint64(c)
	}
	fmt.Printf("length=%d na=%d nb=%d backend=%s op=%s elapsed=%s total=%d\n",
		*length, *nA, *nB, *backend, *op, elapsed, total)
}

func parseOp(s string) (opKind, error) {
	switch strings.ToLower(s) {
	case "diff":
		return opKindDiff, nil
	case "inter":
		return opKindInter, nil
	case "minus":
		return opKindMinus, nil
	case "union":
		return opKindUnion, nil
	default:
		return 0, fmt.Errorf("unknown operator %q (want diff, inter, minus, or union)", s)
	}
}

// parseConfig resolves the backend flags into a bitdb.Config reused across
// the run's kernel calls.
func parseConfig(backend string, threads, device int) (bitdb.Config, error) {
	cfg := bitdb.DefaultConfig()
	cfg.Options.NumCPUThreads = threads
	cfg.Options.DeviceID = device
	switch strings.ToLower(backend) {
	case "serial":
		cfg.DefaultBackend = bitdb.BackendSerial
		cfg.Options.NumCPUThreads = 1
	case "threaded":
		cfg.DefaultBackend = bitdb.BackendThreaded
	case "gpu":
		cfg.DefaultBackend = bitdb.BackendGPU
	default:
		return cfg, fmt.Errorf("unknown backend %q (want serial, threaded, or gpu)", backend)
	}
	return cfg, nil
}

type opKind int

const (
	opKindDiff opKind = iota
	opKindInter
	opKindMinus
	opKindUnion
)

func run(ctx context.Context, cfg bitdb.Config, op opKind, a, b *bitdb.BitDB) (*bitdb.CountMatrix, error) {
	if cfg.DefaultBackend == bitdb.BackendGPU {
		switch op {
		case opKindDiff:
			return bitdb.DiffCountGPU(a, b, cfg.Options)
		case opKindInter:
			return bitdb.InterCountGPU(a, b, cfg.Options)
		case opKindMinus:
			return bitdb.MinusCountGPU(a, b, cfg.Options)
		default:
			return bitdb.UnionCountGPU(a, b, cfg.Options)
		}
	}
	switch op {
	case opKindDiff:
		return bitdb.DiffCountCPU(ctx, a, b, cfg.Options)
	case opKindInter:
		return bitdb.InterCountCPU(ctx, a, b, cfg.Options)
	case opKindMinus:
		return bitdb.MinusCountCPU(ctx, a, b, cfg.Options)
	default:
		return bitdb.UnionCountCPU(ctx, a, b, cfg.Options)
	}
}

// randomBitDB allocates an n-slot container of the given length and sets
// each bit independently with probability density, for benchmark input
// only; the core itself never generates random data.
func randomBitDB(rng *rand.Rand, length, n uint32, density float64) *bitdb.BitDB {
	d := bitdb.NewBitDB(length, n)
	for i := uint32(0); i < n; i++ {
		bit := bitdb.NewBit(length)
		for k := uint32(0); k < length; k++ {
			if rng.Float64() < density {
				bit.Set(k)
			}
		}
		d.PutAt(i, bit)
	}
	return d
}
