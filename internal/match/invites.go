package match

import (
	"sync"

	"github.com/rotisserie/eris"

	"github.com/arcadehall/pongmatch/internal/game"
)

var (
	// ErrCodeNotFound is returned when no pending invite has the code.
	ErrCodeNotFound = eris.New("invite code not found")
	// ErrGameFull is returned when the invite already has a guest or the
	// match already started.
	ErrGameFull = eris.New("private game is full")
)

// Descriptor is a pending private game: an invite code, the room allocated
// for it, the host, and the host's chosen settings. It accepts at most one
// guest and is removed from the registry the moment the guest joins.
type Descriptor struct {
	Code     string
	RoomID   string
	Host     string
	Guest    string
	Started  bool
	Settings game.Settings
}

// Invites is the registry of pending private games keyed by invite code.
type Invites struct {
	mu      sync.Mutex
	pending map[string]*Descriptor

	// newCode is swappable in tests to force collisions.
	newCode func() string
}

// NewInvites returns an empty invite registry.
func NewInvites() *Invites {
	return &Invites{
		pending: make(map[string]*Descriptor),
		newCode: InviteCode,
	}
}

// Create stores a new pending game for the host and returns its descriptor.
// Code generation retries until the code does not collide with a currently
// pending one. The room identifier is allocated up front.
func (inv *Invites) Create(host string, settings game.Settings) *Descriptor {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	code := inv.newCode()
	for _, taken := inv.pending[code]; taken; _, taken = inv.pending[code] {
		code = inv.newCode()
	}

	d := &Descriptor{
		Code:     code,
		RoomID:   RoomID(),
		Host:     host,
		Settings: settings,
	}
	inv.pending[code] = d
	return d
}

// Join attaches the guest to the pending game with the given code, marks it
// started, removes it from the registry, and returns the descriptor so the
// caller can instantiate the session. Fails with ErrCodeNotFound for an
// unknown code and ErrGameFull when a guest is already present or the game
// already started.
func (inv *Invites) Join(code, guest string) (*Descriptor, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	d, ok := inv.pending[code]
	if !ok {
		return nil, ErrCodeNotFound
	}
	if d.Guest != "" || d.Started {
		return nil, ErrGameFull
	}

	d.Guest = guest
	d.Started = true
	delete(inv.pending, code)
	return d, nil
}

// CancelHost removes any pending game hosted by the player. Used when a host
// abandons before a guest joins. Reports whether one was removed.
func (inv *Invites) CancelHost(host string) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	for code, d := range inv.pending {
		if d.Host == host {
			delete(inv.pending, code)
			return true
		}
	}
	return false
}

// Len returns the number of pending private games.
func (inv *Invites) Len() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return len(inv.pending)
}
