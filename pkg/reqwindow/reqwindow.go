// Package reqwindow tracks query outcomes over a fixed-width rolling window,
// counting how many of the most recent calls returned zero results.
//
// Grounded on the original search server's RequestQueue (request_queue.h): a
// deque of outcome flags plus a running empty-count, evicting the oldest
// entry once the deque reaches REQUEST_WINDOW capacity. The ring-buffer +
// running-counter shape also mirrors the LRU cache's hit/miss counters in
// pkg/cache/query_cache.go.
package reqwindow

import "container/list"

// DefaultSize matches the spec boundary constant REQUEST_WINDOW.
const DefaultSize = 1440

// Window wraps any search call at the boundary, recording whether it
// returned an empty result set and exposing a rolling count of empty
// results over the last Size requests.
type Window struct {
	size       int
	outcomes   *list.List // front = oldest, back = newest; each element is bool
	emptyCount int
}

// New creates a Window tracking the last size requests. size must be
// positive; a non-positive value falls back to DefaultSize.
func New(size int) *Window {
	if size <= 0 {
		size = DefaultSize
	}
	return &Window{size: size, outcomes: list.New()}
}

// Record freeing up space for a new request (evicting the oldest outcome if
// the window is full) and then records whether the new request's result was
// empty.
func (w *Window) Record(resultWasEmpty bool) {
	w.freeUpPlace()
	w.outcomes.PushBack(resultWasEmpty)
	if resultWasEmpty {
		w.emptyCount++
	}
}

func (w *Window) freeUpPlace() {
	for w.outcomes.Len() >= w.size {
		front := w.outcomes.Front()
		if front.Value.(bool) {
			w.emptyCount--
		}
		w.outcomes.Remove(front)
	}
}

// EmptyRequestCount returns the number of empty-result requests among the
// most recent (up to Size) requests recorded.
func (w *Window) EmptyRequestCount() int {
	return w.emptyCount
}

// Do runs call, a FindTopDocuments-shaped function, through the window:
// records whether the result was empty, then returns the result unchanged.
func Do[T any](w *Window, call func() ([]T, error)) ([]T, error) {
	results, err := call()
	if err != nil {
		return results, err
	}
	w.Record(len(results) == 0)
	return results, nil
}
