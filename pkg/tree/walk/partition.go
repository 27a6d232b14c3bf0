package walk

import (
	"sync"

	"github.com/flier/gotree/internal/xsync"
)

// Partition splits start's immediate children into up to n disjoint,
// order-preserving groups (round-robin), materializing the traversal's
// frontier so a caller can hand each group to an independent worker. n <= 1
// yields a single group containing every child.
func Partition[N any](start N, c Cursor[N], n int) [][]N {
	if n <= 1 {
		n = 1
	}

	groups := make([][]N, n)

	i := 0
	for child := range c.Children(start) {
		groups[i%n] = append(groups[i%n], child)
		i++
	}

	return groups
}

// Parallel partitions start's frontier into up to workers groups (via
// Partition) and traverses each group's subtrees concurrently in the given
// order, using the same state machine [Walk] uses — only the scheduling of
// disjoint partitions across goroutines is added here. Results are
// delivered to visit one at a time on the calling goroutine, so visit
// itself never needs its own synchronization; the worker goroutines only
// ever read through c, matching the "parallel reads only" concurrency
// model. start itself is delivered as well: first for BFS and DFSPre, last
// for PostOrder. Parallel returns once every partition has finished.
func Parallel[N any](start N, c Cursor[N], order Order, workers int, visit func(Item[N])) {
	if order != PostOrder {
		visit(Item[N]{Node: start})
	}

	groups := Partition(start, c, workers)

	// One pool shared by every worker goroutine for this call's scratch
	// batches; sync.Pool (which xsync.Pool wraps) is itself safe for
	// concurrent Get/Put, so workers reuse each other's buffers instead of
	// each allocating their own.
	pool := &xsync.Pool[[]Item[N]]{
		New:   func() *[]Item[N] { s := make([]Item[N], 0, 16); return &s },
		Reset: func(s *[]Item[N]) { *s = (*s)[:0] },
	}

	results := make(chan Item[N])

	var wg sync.WaitGroup
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}

		wg.Add(1)
		go func(group []N) {
			defer wg.Done()

			for _, root := range group {
				buf := pool.Get()
				for item := range Walk(root, c, order) {
					*buf = append(*buf, item)
				}
				for _, item := range *buf {
					results <- item
				}
				pool.Put(buf)
			}
		}(group)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for item := range results {
		visit(item)
	}

	if order == PostOrder {
		visit(Item[N]{Node: start})
	}
}
