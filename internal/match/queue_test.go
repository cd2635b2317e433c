package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueuePairsFIFO(t *testing.T) {
	t.Parallel()

	q := NewQueue()

	_, ok := q.Enqueue("alice")
	assert.False(t, ok)
	assert.Equal(t, 1, q.Len())

	pair, ok := q.Enqueue("bob")
	require.True(t, ok)
	assert.Equal(t, [2]string{"alice", "bob"}, pair, "oldest two pair first")
	assert.Equal(t, 0, q.Len())
}

// A third player enqueued while a pair is being formed must never be matched
// with an already-paired player.
func TestQueueThirdPlayerWaits(t *testing.T) {
	t.Parallel()

	q := NewQueue()
	q.Enqueue("alice")
	pair, ok := q.Enqueue("bob")
	require.True(t, ok)

	_, ok = q.Enqueue("carol")
	assert.False(t, ok, "carol has no partner yet")
	assert.Equal(t, 1, q.Len())

	second, ok := q.Enqueue("dave")
	require.True(t, ok)
	assert.Equal(t, [2]string{"carol", "dave"}, second)
	assert.NotContains(t, second, pair[0])
	assert.NotContains(t, second, pair[1])
}

// Enqueueing the same player twice pairs them with themselves. Deliberately
// preserved behavior of the matchmaking queue; see DESIGN.md.
func TestQueueDoubleEnqueueSelfPairs(t *testing.T) {
	t.Parallel()

	q := NewQueue()
	q.Enqueue("alice")
	pair, ok := q.Enqueue("alice")
	require.True(t, ok)
	assert.Equal(t, [2]string{"alice", "alice"}, pair)
	assert.Equal(t, 0, q.Len())
}

func TestQueueCancelIsIdempotent(t *testing.T) {
	t.Parallel()

	q := NewQueue()
	q.Enqueue("alice")

	assert.True(t, q.Cancel("alice"))
	assert.False(t, q.Cancel("alice"), "second cancel is a no-op")
	assert.False(t, q.Cancel("never-queued"))
	assert.Equal(t, 0, q.Len())

	// A cancelled player is not paired afterwards.
	q.Enqueue("bob")
	pair, ok := q.Enqueue("carol")
	require.True(t, ok)
	assert.Equal(t, [2]string{"bob", "carol"}, pair)
}
