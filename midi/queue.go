package midi

import (
	"sync"
	"time"
)

type (
	renderJob struct {
		channel  int32
		keys     []int32
		velocity int32
		hold     time.Duration
	}

	// renderQueue renders jobs in order on its own goroutine and hands each clip to out.
	renderQueue struct {
		mu     sync.Mutex
		closed bool
		jobs   chan renderJob
		done   chan struct{}
	}
)

func newRenderQueue(size int, render func(renderJob) *Clip, out func(*Clip)) *renderQueue {
	q := &renderQueue{
		jobs: make(chan renderJob, size),
		done: make(chan struct{}),
	}
	go func() {
		defer close(q.done)
		for j := range q.jobs {
			out(render(j))
		}
	}()
	return q
}

// push queues j without blocking. It returns false if the queue is full or closed.
func (q *renderQueue) push(j renderJob) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	select {
	case q.jobs <- j:
		return true
	default:
		return false
	}
}

// close stops accepting jobs and waits for the queued ones to finish.
func (q *renderQueue) close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()
	<-q.done
}
