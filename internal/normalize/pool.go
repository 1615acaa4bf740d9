package normalize

import "sync"

// mapOverIndices distributes [0, n) across a bounded pool of worker
// goroutines, each running fn(i) for its assigned indices. This is the
// same indexed-jobs-channel-plus-WaitGroup shape the evaluator's worker
// pool uses for EvaluateBatch: every worker writes to a distinct slice
// index, so no additional synchronization is needed inside fn beyond
// not touching another index.
//
// Used for the Batch Normalizer's two parallel map phases (§5): the
// per-record classify phase and the per-record convert phase, with the
// Auto-Target Selector's single-threaded reduce phase running between
// them.
func mapOverIndices(n, numWorkers int, fn func(i int)) {
	if n == 0 {
		return
	}
	if numWorkers <= 0 || numWorkers > n {
		numWorkers = n
	}

	jobs := make(chan int, n)
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}
