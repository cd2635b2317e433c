package match

import "sync"

// Queue holds players awaiting a quick match and pairs them FIFO. All
// mutation goes through its methods; there is no starvation policy or
// maximum wait beyond first-in-first-out order.
type Queue struct {
	mu      sync.Mutex
	waiting []string
}

// NewQueue returns an empty waiting queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends the player to the tail. The moment the queue holds two or
// more entries the two oldest are dequeued atomically and returned as a pair
// ready to form a match.
func (q *Queue) Enqueue(playerID string) (pair [2]string, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.waiting = append(q.waiting, playerID)
	if len(q.waiting) < 2 {
		return pair, false
	}

	pair[0], pair[1] = q.waiting[0], q.waiting[1]
	q.waiting = q.waiting[2:]
	return pair, true
}

// Cancel removes the player if still queued. Idempotent: cancelling a player
// who was already matched or never enqueued is a no-op.
func (q *Queue) Cancel(playerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, id := range q.waiting {
		if id == playerID {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of players currently waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting)
}
