// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package weboverlay

import "sync"

// UIThread runs functions on the goroutine that owns the window. Post must
// not block and must preserve submission order.
type UIThread interface {
	Post(fn func())
}

// Queue is a FIFO UIThread. Any goroutine may Post; the UI owner calls Drain
// once per frame.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	closed  bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Post appends fn. Nil functions and posts after Close are dropped.
func (q *Queue) Post(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	if !q.closed {
		q.pending = append(q.pending, fn)
	}
	q.mu.Unlock()
}

// Drain runs queued functions in order until the queue is empty, including
// functions posted while draining. It returns how many ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()
		if len(batch) == 0 {
			return n
		}
		for _, fn := range batch {
			fn()
			n++
		}
	}
}

// Len returns the number of queued functions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close drops pending work and rejects further posts.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.pending = nil
	q.mu.Unlock()
}
