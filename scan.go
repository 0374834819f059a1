package resonance

import (
	"slices"
	"sync"
)

// activationResult is one category's rank input: its store index and the
// activation value Rules.Activation computed for it.
type activationResult struct {
	index      int
	activation float64
}

// scanBatchSize is large enough to amortize goroutine spawn cost, small
// enough to keep shards balanced across a typical core count.
const scanBatchSize = 64

// scanActivations computes Rules.Activation for every active category
// against input, shards the work across up to params.ParallelismLevel
// workers when the category count reaches params.ParallelThreshold (C5's
// bounded-parallel scan), and returns the results ordered by descending
// activation with ties broken by ascending category index (spec.md §4.2,
// tie-break). The observable ordering is identical whether or not the scan
// ran in parallel; only wall-clock time differs.
func scanActivations[W any](store *Store[W], rules Rules[W], input []float64, params Params, c *counters, pool chan struct{}) []activationResult {
	weights, indices := store.snapshot()
	n := len(weights)
	results := make([]activationResult, n)

	if n >= params.ParallelThreshold && params.ParallelismLevel > 1 {
		runParallelScan(weights, indices, input, params, rules, results, c, pool)
	} else {
		for i := range weights {
			results[i] = activationResult{index: indices[i], activation: rules.Activation(input, weights[i], params)}
		}
	}

	c.totalVectorOps.Add(uint64(n))
	if params.EnableSIMD {
		c.IncSIMDOperations(uint64(n))
	}

	cacheSize := n
	if params.MaxCacheSize > 0 && cacheSize > params.MaxCacheSize {
		cacheSize = params.MaxCacheSize
	}
	if params.MaxCacheSize == 0 {
		cacheSize = 0
	}
	c.lastCacheSz.Store(int64(cacheSize))

	sortByActivationDesc(results)
	return results
}

// runParallelScan shards [0, n) into contiguous batches of scanBatchSize,
// bounded by the engine's worker-pool semaphore (acquired at construction,
// released on Close) via a channel-semaphore + sync.WaitGroup pattern,
// generalized to any Rules[W]. Each batch also takes a slot of a per-call
// semaphore of params.ParallelismLevel slots, so at most the smaller of
// ParallelismLevel and the pool's capacity run at once.
func runParallelScan[W any](weights []W, indices []int, input []float64, params Params, rules Rules[W], results []activationResult, c *counters, pool chan struct{}) {
	n := len(weights)
	var wg sync.WaitGroup
	level := make(chan struct{}, params.ParallelismLevel)

	for start := 0; start < n; start += scanBatchSize {
		end := min(start+scanBatchSize, n)

		wg.Add(1)
		level <- struct{}{}
		pool <- struct{}{}
		c.totalParallel.Add(1)

		go func(start, end int) {
			defer func() {
				<-pool
				<-level
				wg.Done()
			}()
			for i := start; i < end; i++ {
				results[i] = activationResult{index: indices[i], activation: rules.Activation(input, weights[i], params)}
			}
		}(start, end)
	}

	wg.Wait()
}

func sortByActivationDesc(results []activationResult) {
	slices.SortFunc(results, func(a, b activationResult) int {
		if a.activation == b.activation {
			if a.index < b.index {
				return -1
			}
			return 1
		}
		if a.activation > b.activation {
			return -1
		}
		return 1
	})
}
