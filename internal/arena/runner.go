package arena

import (
	"context"
	"time"

	"github.com/arcadehall/pongmatch"
	"github.com/arcadehall/pongmatch/internal/game"
)

type cmdKind int

const (
	cmdMove cmdKind = iota
	cmdPause
	cmdResume
	cmdEnd
	cmdLeave
)

// command is one inbound request for a session: a paddle update, a pause or
// resume, an explicit end, or a player leaving.
type command struct {
	kind   cmdKind
	player string
	paddle game.Paddle
}

// runner drives one session. All ticks and commands for the session are
// handled by its single goroutine, so state mutations are strictly
// serialized: a paddle update may land between two ticks, never inside one.
type runner struct {
	hub     *Hub
	session *game.Session
	cmds    chan command
	ctx     context.Context
	cancel  context.CancelFunc
}

func newRunner(h *Hub, s *game.Session) *runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &runner{
		hub:     h,
		session: s,
		cmds:    make(chan command, 32),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// post hands a command to the runner. Returns without blocking once the
// runner is cancelled, so commands against a terminated session are no-ops.
func (r *runner) post(c command) {
	select {
	case r.cmds <- c:
	case <-r.ctx.Done():
	}
}

// run waits out the start delay, signals match start, then ticks at the
// configured rate until the session terminates. The deferred drop cancels
// the runner before the session leaves the store.
func (r *runner) run() {
	defer r.hub.drop(r.session.RoomID)

	log := r.hub.log.With().Str("room", r.session.RoomID).Logger()

	start := time.NewTimer(r.hub.startDelay)
	defer start.Stop()

	var tickC <-chan time.Time

	for {
		select {
		case <-r.ctx.Done():
			return

		case <-start.C:
			r.session.Start(time.Now())
			r.broadcast(pongmatch.EventGameStart, r.session.Settings)
			log.Info().Str("game_mode", string(r.session.Settings.GameMode)).
				Int("frame_rate", r.session.Settings.FrameRate).Msg("match started")

			tick := time.NewTicker(r.session.Settings.TickInterval())
			defer tick.Stop()
			tickC = tick.C

		case now := <-tickC:
			if r.step(now) {
				log.Info().Int("player1", r.session.Scores.Player1).
					Int("player2", r.session.Scores.Player2).Msg("match finished")
				return
			}

		case cmd := <-r.cmds:
			if r.handle(cmd) {
				return
			}
		}
	}
}

// step runs one simulation tick and broadcasts its events. Reports whether
// the session terminated.
func (r *runner) step(now time.Time) bool {
	for _, ev := range r.session.Tick(now) {
		switch e := ev.(type) {
		case game.BallMoved:
			r.broadcast(pongmatch.EventUpdateBall, e.Ball)
		case game.ScoreChanged:
			r.broadcast(pongmatch.EventUpdateScores, e.Scores)
		case game.Scored:
			r.broadcast(pongmatch.EventScored, nil)
		case game.PaddleHit:
			r.broadcast(pongmatch.EventPaddleHit, PaddleHitPayload{PaddleID: e.Paddle})
		case game.Finished:
			r.broadcast(pongmatch.EventGameOver, GameOverPayload{Winner: e.Winner, Scores: e.Scores})
		}
	}
	return r.session.State() == game.StateTerminated
}

// handle applies one inbound command. Reports whether the session
// terminated.
func (r *runner) handle(cmd command) bool {
	s := r.session

	switch cmd.kind {
	case cmdMove:
		if !s.ApplyPaddle(cmd.player, cmd.paddle) {
			return false
		}
		// Paused sessions record the position but freeze the opponent's view.
		if s.State() == game.StatePaused {
			return false
		}
		if opponent, ok := s.Opponent(cmd.player); ok {
			num := s.PlayerNum(cmd.player)
			r.send(opponent, pongmatch.EventUpdatePaddle, s.Paddles[num-1])
		}

	case cmdPause:
		if s.Pause(time.Now()) {
			r.broadcast(pongmatch.EventGamePaused, PausedPayload{
				Ball:    s.Ball,
				Paddles: []game.Paddle{s.Paddles[0], s.Paddles[1]},
			})
		}

	case cmdResume:
		if s.Resume(time.Now()) {
			r.broadcast(pongmatch.EventGameResumed, nil)
		}

	case cmdEnd:
		winner := s.Scores.Winner()
		s.Terminate()
		r.broadcast(pongmatch.EventGameOver, GameOverPayload{Winner: winner, Scores: s.Scores})
		return true

	case cmdLeave:
		s.Terminate()
		if opponent, ok := s.Opponent(cmd.player); ok {
			r.send(opponent, pongmatch.EventOpponentDisconnected, nil)
		}
		return true
	}

	return false
}

func (r *runner) broadcast(event string, payload any) {
	r.send(r.session.Player1, event, payload)
	r.send(r.session.Player2, event, payload)
}

func (r *runner) send(clientID, event string, payload any) {
	r.hub.send(context.Background(), clientID, event, payload)
}
