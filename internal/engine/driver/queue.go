package driver

import (
	"maps"
	"slices"
	"sync"
)

// changeQueue accumulates changed paths between rebuilds. Any number of
// pushes while a rebuild runs result in a single pending signal.
type changeQueue struct {
	mu    sync.Mutex
	paths map[string]struct{}
	ready chan struct{}
}

func newChangeQueue() *changeQueue {
	return &changeQueue{
		paths: make(map[string]struct{}),
		ready: make(chan struct{}, 1),
	}
}

func (q *changeQueue) push(paths []string) {
	q.mu.Lock()
	for _, p := range paths {
		q.paths[p] = struct{}{}
	}
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *changeQueue) take() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.paths) == 0 {
		return nil
	}
	paths := slices.Sorted(maps.Keys(q.paths))
	clear(q.paths)
	return paths
}
