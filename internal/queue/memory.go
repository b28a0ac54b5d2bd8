package queue

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// MemoryQueue fires each job from its own timer inside this process.
type MemoryQueue struct {
	handler Handler
	ctx     context.Context
	cancel  context.CancelFunc

	mu     sync.Mutex
	nextID uint64
	timers map[uint64]*time.Timer
	closed bool
	wg     sync.WaitGroup
}

func NewMemoryQueue(handler Handler) *MemoryQueue {
	ctx, cancel := context.WithCancel(context.Background())
	return &MemoryQueue{
		handler: handler,
		ctx:     ctx,
		cancel:  cancel,
		timers:  make(map[uint64]*time.Timer),
	}
}

// Schedule arms a timer. The handler runs detached from ctx, which usually
// belongs to the request that created the to-do.
func (q *MemoryQueue) Schedule(ctx context.Context, todoID string, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}

	id := q.nextID
	q.nextID++

	q.wg.Add(1)
	q.timers[id] = time.AfterFunc(max(delay, 0), func() {
		defer q.wg.Done()

		q.mu.Lock()
		delete(q.timers, id)
		q.mu.Unlock()

		q.handler(q.ctx, todoID)
	})

	slog.Debug("reminder timer armed", "todo_id", todoID, "delay", delay)
	return nil
}

// Pending returns the number of armed timers that have not fired.
func (q *MemoryQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.timers)
}

// Close drops timers that have not fired and waits for running handlers.
func (q *MemoryQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true

	dropped := 0
	for id, t := range q.timers {
		if t.Stop() {
			q.wg.Done()
			dropped++
		}
		delete(q.timers, id)
	}
	q.mu.Unlock()

	if dropped > 0 {
		slog.Warn("dropped pending in-memory reminders", "count", dropped)
	}

	q.wg.Wait()
	q.cancel()
}
