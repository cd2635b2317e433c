package match

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadehall/pongmatch/internal/game"
)

func TestCreateStoresDescriptor(t *testing.T) {
	t.Parallel()

	inv := NewInvites()
	settings := game.Settings{GameMode: game.ModeTime, GameDuration: 90, BallSpeed: 3, FrameRate: 60}

	d := inv.Create("host-1", settings)

	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{6}$`), d.Code)
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9]{6}$`), d.RoomID)
	assert.Equal(t, "host-1", d.Host)
	assert.Empty(t, d.Guest)
	assert.False(t, d.Started)
	assert.Equal(t, settings, d.Settings)
	assert.Equal(t, 1, inv.Len())
}

// Code generation retries until the code does not collide with a pending one.
func TestCreateRetriesOnCodeCollision(t *testing.T) {
	t.Parallel()

	inv := NewInvites()
	codes := []string{"AAAAAA", "AAAAAA", "AAAAAA", "BBBBBB"}
	inv.newCode = func() string {
		c := codes[0]
		codes = codes[1:]
		return c
	}

	first := inv.Create("host-1", game.DefaultSettings())
	second := inv.Create("host-2", game.DefaultSettings())

	assert.Equal(t, "AAAAAA", first.Code)
	assert.Equal(t, "BBBBBB", second.Code, "colliding codes are regenerated")
	assert.Empty(t, codes, "generator consumed until a free code appeared")
}

func TestJoinUnknownCode(t *testing.T) {
	t.Parallel()

	inv := NewInvites()
	_, err := inv.Join("NOPE42", "guest-1")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestJoinConsumesDescriptor(t *testing.T) {
	t.Parallel()

	inv := NewInvites()
	created := inv.Create("host-1", game.DefaultSettings())

	d, err := inv.Join(created.Code, "guest-1")
	require.NoError(t, err)
	assert.Equal(t, "guest-1", d.Guest)
	assert.True(t, d.Started)
	assert.Equal(t, created.RoomID, d.RoomID)
	assert.Equal(t, 0, inv.Len(), "descriptor removed on successful join")

	// The code is gone; a second guest cannot join.
	_, err = inv.Join(created.Code, "guest-2")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestJoinFullDescriptor(t *testing.T) {
	t.Parallel()

	inv := NewInvites()
	created := inv.Create("host-1", game.DefaultSettings())

	// Simulate a descriptor that kept its guest (e.g. mid-start).
	inv.mu.Lock()
	inv.pending[created.Code] = &Descriptor{Code: created.Code, Host: "host-1", Guest: "guest-1"}
	inv.mu.Unlock()

	_, err := inv.Join(created.Code, "guest-2")
	assert.ErrorIs(t, err, ErrGameFull)
}

func TestCancelHost(t *testing.T) {
	t.Parallel()

	inv := NewInvites()
	d := inv.Create("host-1", game.DefaultSettings())

	assert.True(t, inv.CancelHost("host-1"))
	assert.Equal(t, 0, inv.Len())
	assert.False(t, inv.CancelHost("host-1"), "second cancel is a no-op")

	_, err := inv.Join(d.Code, "guest-1")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestCodeAlphabets(t *testing.T) {
	t.Parallel()

	invitePattern := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	roomPattern := regexp.MustCompile(`^[A-Za-z0-9]{6}$`)

	for i := 0; i < 200; i++ {
		assert.Regexp(t, invitePattern, InviteCode())
		assert.Regexp(t, roomPattern, RoomID())
	}
}
