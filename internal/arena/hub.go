package arena

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/arcadehall/pongmatch"
	"github.com/arcadehall/pongmatch/internal/game"
	"github.com/arcadehall/pongmatch/internal/match"
)

// startDelay is the pause between delivering the session snapshot and
// signalling match start, giving clients time to set up rendering.
const startDelay = 1500 * time.Millisecond

// Sender delivers an event to one connected client. Implemented by the
// transport server.
type Sender interface {
	SendTo(ctx context.Context, clientID string, event string, payload any) error
}

// Hub owns all process-wide matchmaking state: the quick-match queue, the
// invite registry, and the store of active sessions. Every mutation goes
// through its methods; session state itself is mutated only by the session's
// runner goroutine.
type Hub struct {
	sender  Sender
	log     zerolog.Logger
	queue   *match.Queue
	invites *match.Invites

	mu       sync.Mutex
	sessions map[string]*runner

	startDelay time.Duration
}

// Option configures a Hub.
type Option func(*Hub)

// WithStartDelay overrides the pre-start delay. Used by tests.
func WithStartDelay(d time.Duration) Option {
	return func(h *Hub) { h.startDelay = d }
}

// NewHub builds a hub delivering through the given sender.
func NewHub(sender Sender, log zerolog.Logger, opts ...Option) *Hub {
	h := &Hub{
		sender:     sender,
		log:        log,
		queue:      match.NewQueue(),
		invites:    match.NewInvites(),
		sessions:   make(map[string]*runner),
		startDelay: startDelay,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// QuickMatch puts the player in the waiting queue and forms a match with
// default settings the moment a pair is available. Pairing is FIFO.
func (h *Hub) QuickMatch(ctx context.Context, playerID string) {
	h.send(ctx, playerID, pongmatch.EventWaitingForPlayer, WaitingPayload{})

	pair, ok := h.queue.Enqueue(playerID)
	if !ok {
		return
	}
	h.startSession(ctx, match.RoomID(), pair[0], pair[1], game.DefaultSettings())
}

// CreatePrivateGame registers a pending private game with the host's
// settings and sends the invite code back to the host.
func (h *Hub) CreatePrivateGame(ctx context.Context, playerID string, settings game.Settings) {
	settings, err := settings.Normalize()
	if err != nil {
		h.log.Debug().Err(err).Str("client_id", playerID).Msg("rejected private game settings")
		return
	}

	d := h.invites.Create(playerID, settings)
	h.log.Info().Str("invite_code", d.Code).Str("room", d.RoomID).
		Str("game_mode", string(settings.GameMode)).Float64("ball_speed", settings.BallSpeed).
		Int("frame_rate", settings.FrameRate).Msg("private game created")

	code := d.Code
	h.send(ctx, playerID, pongmatch.EventWaitingForPlayer, WaitingPayload{InviteCode: &code})
}

// JoinPrivateGame attaches the guest to a pending private game and starts
// the session with the host's settings. Failures are reported to the
// requester only.
func (h *Hub) JoinPrivateGame(ctx context.Context, playerID, code string) {
	d, err := h.invites.Join(code, playerID)
	switch {
	case eris.Is(err, match.ErrCodeNotFound):
		h.send(ctx, playerID, pongmatch.EventGameNotFound, nil)
		return
	case eris.Is(err, match.ErrGameFull):
		h.send(ctx, playerID, pongmatch.EventGameFull, nil)
		return
	case err != nil:
		h.log.Error().Err(err).Str("client_id", playerID).Msg("join private game")
		return
	}
	h.startSession(ctx, d.RoomID, d.Host, playerID, d.Settings)
}

// CancelWaiting removes the player from the quick-match queue and drops any
// pending private game they host. Idempotent.
func (h *Hub) CancelWaiting(playerID string) {
	h.queue.Cancel(playerID)
	h.invites.CancelHost(playerID)
}

// MovePaddle records a self-reported paddle position and relays it to the
// opponent. A stale room is a safe no-op.
func (h *Hub) MovePaddle(room, playerID string, paddle game.Paddle) {
	if r := h.runner(room); r != nil {
		r.post(command{kind: cmdMove, player: playerID, paddle: paddle})
	}
}

// PauseGame moves the session to Paused.
func (h *Hub) PauseGame(room string) {
	if r := h.runner(room); r != nil {
		r.post(command{kind: cmdPause})
	}
}

// ResumeGame restores a paused session to Active.
func (h *Hub) ResumeGame(room string) {
	if r := h.runner(room); r != nil {
		r.post(command{kind: cmdResume})
	}
}

// EndGame terminates the session at a player's request. The winner is
// decided by comparing the scores at that moment.
func (h *Hub) EndGame(room string) {
	if r := h.runner(room); r != nil {
		r.post(command{kind: cmdEnd})
	}
}

// Disconnect handles a dropped connection: the player leaves the queue, any
// hosted invite is withdrawn, and an active match is torn down with the
// survivor notified exactly once.
func (h *Hub) Disconnect(playerID string) {
	h.CancelWaiting(playerID)

	if r := h.runnerFor(playerID); r != nil {
		r.post(command{kind: cmdLeave, player: playerID})
	}
}

// Shutdown cancels every active session without notifications. Used on
// process exit.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, r := range h.sessions {
		r.cancel()
		delete(h.sessions, room)
	}
}

// SessionCount returns the number of active sessions.
func (h *Hub) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// startSession allocates the match state, stores the runner, notifies both
// players of their identity and the full snapshot, and hands control to the
// runner goroutine, which signals match start after the configured delay.
func (h *Hub) startSession(ctx context.Context, roomID, player1, player2 string, settings game.Settings) {
	s := game.NewSession(roomID, player1, player2, settings)
	r := newRunner(h, s)

	h.mu.Lock()
	h.sessions[roomID] = r
	h.mu.Unlock()

	h.log.Info().Str("room", roomID).Str("player1", player1).Str("player2", player2).
		Str("game_mode", string(settings.GameMode)).Msg("session created")

	h.send(ctx, player1, pongmatch.EventID, IDPayload{ID: player1, Num: 1})
	h.send(ctx, player2, pongmatch.EventID, IDPayload{ID: player2, Num: 2})

	snapshot := s.Snapshot()
	h.send(ctx, player1, pongmatch.EventGame, snapshot)
	h.send(ctx, player2, pongmatch.EventGame, snapshot)

	go r.run()
}

// runner returns the live runner for a room, nil if the session is gone.
func (h *Hub) runner(room string) *runner {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[room]
}

// runnerFor finds the session a player belongs to.
func (h *Hub) runnerFor(playerID string) *runner {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.sessions {
		if r.session.PlayerNum(playerID) != 0 {
			return r
		}
	}
	return nil
}

// drop cancels the runner's tick before removing the session from the store,
// so no tick can fire against a removed session.
func (h *Hub) drop(room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.sessions[room]; ok {
		r.cancel()
		delete(h.sessions, room)
	}
}

func (h *Hub) send(ctx context.Context, clientID, event string, payload any) {
	if err := h.sender.SendTo(ctx, clientID, event, payload); err != nil {
		h.log.Debug().Err(err).Str("client_id", clientID).Str("event", event).Msg("send failed")
	}
}
