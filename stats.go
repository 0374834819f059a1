package resonance

import (
	"sync/atomic"
	"time"
)

// Stats holds the monotonic performance counters of spec.md §6. All fields
// are read via Engine.PerformanceStats; the engine updates the underlying
// atomics directly so a concurrent read never observes a torn read of any single
// counter (though, per §5, the caller must not invoke two operations
// concurrently on the same engine; Stats is safe to read from another
// goroutine while an operation is in flight, which is the only concurrent
// access the core promises).
type Stats struct {
	TotalVectorOperations uint64
	TotalParallelTasks    uint64
	CacheSize             int
	CategoryCount         int
	AvgComputeTimeMs      float64

	// Variant-specific counters; a variant that does not use one leaves it
	// at zero.
	AttentionWeightUpdates uint64
	TopologyAdjustments    uint64
	PruningOperations      uint64
	VigilanceAdjustments   uint64
	StabilityRegulations   uint64
	ConvergenceOptimizations uint64
	SIMDOperations         uint64
	SIMDUtilization        float64
	ThroughputOpsPerSec    float64
}

// counters is the mutable, atomic-backed storage behind Stats. It lives on
// the engine and is reset by ResetPerformanceTracking (Clear leaves it).
type counters struct {
	totalVectorOps   atomic.Uint64
	totalParallel    atomic.Uint64
	attentionUpdates atomic.Uint64
	topologyAdj      atomic.Uint64
	pruningOps       atomic.Uint64
	vigilanceAdj     atomic.Uint64
	stabilityReg     atomic.Uint64
	convergenceOpt   atomic.Uint64
	simdOps          atomic.Uint64

	opCount      atomic.Uint64
	totalOpNanos atomic.Int64
	lastCacheSz  atomic.Int64
	start        time.Time
}

func newCounters() *counters {
	return &counters{start: time.Now()}
}

// IncTopologyAdjustments records a structural change to a variant's category
// graph (e.g. TopoART recording an edge between winners).
func (c *counters) IncTopologyAdjustments() { c.topologyAdj.Add(1) }

// IncPruningOperations records n categories removed by a variant's
// maintenance pass (e.g. ARTSTAR's Store.Prune call).
func (c *counters) IncPruningOperations(n int) { c.pruningOps.Add(uint64(n)) }

// IncVigilanceAdjustments records one regulated-vigilance change (e.g.
// ARTSTAR's success-rate-driven regulation).
func (c *counters) IncVigilanceAdjustments() { c.vigilanceAdj.Add(1) }

// IncStabilityRegulations records n categories whose stability score was
// decayed by a variant's maintenance pass.
func (c *counters) IncStabilityRegulations(n int) { c.stabilityReg.Add(uint64(n)) }

// IncSIMDOperations records n vector operations dispatched through the
// accelerated internal/simd backend, for SIMDUtilization's numerator.
func (c *counters) IncSIMDOperations(n uint64) { c.simdOps.Add(n) }

func (c *counters) reset() {
	c.totalVectorOps.Store(0)
	c.totalParallel.Store(0)
	c.attentionUpdates.Store(0)
	c.topologyAdj.Store(0)
	c.pruningOps.Store(0)
	c.vigilanceAdj.Store(0)
	c.stabilityReg.Store(0)
	c.convergenceOpt.Store(0)
	c.simdOps.Store(0)
	c.opCount.Store(0)
	c.totalOpNanos.Store(0)
	c.lastCacheSz.Store(0)
	c.start = time.Now()
}

// recordOp records one operation's timing. It must not touch lastCacheSz:
// that watermark is set by scanActivations with the real per-call cache
// size, and an op with zero active categories never reaches the scan.
func (c *counters) recordOp(d time.Duration) {
	c.opCount.Add(1)
	c.totalOpNanos.Add(int64(d))
}

func (c *counters) snapshot(categoryCount int, simdEnabled bool) Stats {
	ops := c.opCount.Load()
	var avgMs, throughput float64
	if ops > 0 {
		totalNanos := c.totalOpNanos.Load()
		avgMs = float64(totalNanos) / float64(ops) / 1e6
		elapsed := time.Since(c.start).Seconds()
		if elapsed > 0 {
			throughput = float64(ops) / elapsed
		}
	}

	var simdUtil float64
	vecOps := c.totalVectorOps.Load()
	if simdEnabled && vecOps > 0 {
		simdUtil = float64(c.simdOps.Load()) / float64(vecOps)
		if simdUtil > 1 {
			simdUtil = 1
		}
	}

	return Stats{
		TotalVectorOperations:    vecOps,
		TotalParallelTasks:       c.totalParallel.Load(),
		CacheSize:                int(c.lastCacheSz.Load()),
		CategoryCount:            categoryCount,
		AvgComputeTimeMs:         avgMs,
		AttentionWeightUpdates:   c.attentionUpdates.Load(),
		TopologyAdjustments:      c.topologyAdj.Load(),
		PruningOperations:        c.pruningOps.Load(),
		VigilanceAdjustments:     c.vigilanceAdj.Load(),
		StabilityRegulations:     c.stabilityReg.Load(),
		ConvergenceOptimizations: c.convergenceOpt.Load(),
		SIMDOperations:           c.simdOps.Load(),
		SIMDUtilization:          simdUtil,
		ThroughputOpsPerSec:      throughput,
	}
}
