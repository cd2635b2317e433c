package game

import "time"

// State is the lifecycle of a session: Pending until the start signal fires,
// then Active, optionally Paused and back, and finally Terminated.
type State int

const (
	StatePending State = iota
	StateActive
	StatePaused
	StateTerminated
)

// Session is one active match between two players. It is owned by a single
// session runner goroutine and carries no locking of its own: ticks and
// inbound commands for one session are strictly serialized by the runner.
type Session struct {
	RoomID   string
	Player1  string
	Player2  string
	Ball     Ball
	Scores   Scores
	Paddles  [2]Paddle
	Settings Settings

	state       State
	startedAt   time.Time
	paused      time.Time
	pausedTotal time.Duration
}

// NewSession builds the initial match state: paddles at mirrored default
// positions, ball centered with velocity magnitude taken from the configured
// speed level, scores at zero. Player numbers follow submission order.
func NewSession(roomID, player1, player2 string, settings Settings) *Session {
	speed := settings.BallSpeed
	return &Session{
		RoomID:  roomID,
		Player1: player1,
		Player2: player2,
		Ball: Ball{
			X:      BallStartX,
			Y:      BallStartY,
			SpeedX: speed,
			SpeedY: speed,
			Radius: BallRadius,
		},
		Paddles: [2]Paddle{
			{X: 0, Y: PaddleStartY, Width: PaddleWidth, Height: PaddleHeight, ID: player1},
			{X: RightPaddleX, Y: PaddleStartY, Width: PaddleWidth, Height: PaddleHeight, ID: player2},
		},
		Settings: settings,
	}
}

// Start moves the session from Pending to Active and records the match start
// timestamp used by the time-mode deadline.
func (s *Session) Start(now time.Time) {
	if s.state != StatePending {
		return
	}
	s.state = StateActive
	s.startedAt = now
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// StartedAt returns the match start timestamp, zero while Pending.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Pause moves an Active session to Paused. Reports whether the transition
// happened.
func (s *Session) Pause(now time.Time) bool {
	if s.state != StateActive {
		return false
	}
	s.state = StatePaused
	s.paused = now
	return true
}

// Resume restores an Active state and adds the pause interval to the
// accumulated paused duration, keeping time-mode deadlines unaffected.
func (s *Session) Resume(now time.Time) bool {
	if s.state != StatePaused {
		return false
	}
	s.state = StateActive
	s.pausedTotal += now.Sub(s.paused)
	return true
}

// Terminate marks the session Terminated. Further ticks are no-ops.
func (s *Session) Terminate() {
	s.state = StateTerminated
}

// Elapsed is the active (non-paused) play time since Start.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	elapsed := now.Sub(s.startedAt) - s.pausedTotal
	if s.state == StatePaused {
		elapsed -= now.Sub(s.paused)
	}
	return elapsed
}

// PlayerNum maps a player reference to its number, 0 if not a member.
func (s *Session) PlayerNum(playerID string) int {
	switch playerID {
	case s.Player1:
		return 1
	case s.Player2:
		return 2
	default:
		return 0
	}
}

// Opponent returns the other player's reference.
func (s *Session) Opponent(playerID string) (string, bool) {
	switch playerID {
	case s.Player1:
		return s.Player2, true
	case s.Player2:
		return s.Player1, true
	default:
		return "", false
	}
}

// ApplyPaddle stores a player's self-reported paddle position. Ownership is
// checked; coordinates are trusted as-is. Reports whether the update was
// accepted. Updates are accepted while Paused too, they are just not
// rebroadcast by the caller.
func (s *Session) ApplyPaddle(playerID string, p Paddle) bool {
	num := s.PlayerNum(playerID)
	if num == 0 || s.state == StateTerminated {
		return false
	}
	p.ID = playerID
	s.Paddles[num-1] = p
	return true
}

// Tick advances the simulation by one step and returns the events to
// broadcast. It does nothing while Pending, Paused, or Terminated.
func (s *Session) Tick(now time.Time) []Event {
	if s.state != StateActive {
		return nil
	}

	// Time-limited matches end on the deadline regardless of ball state.
	if s.Settings.GameMode == ModeTime {
		limit := time.Duration(s.Settings.GameDuration) * time.Second
		if s.Elapsed(now) >= limit {
			s.Terminate()
			return []Event{Finished{Winner: s.Scores.Winner(), Scores: s.Scores}}
		}
	}

	var events []Event

	s.Ball.X += s.Ball.SpeedX
	s.Ball.Y += s.Ball.SpeedY

	// Reflect off the top and bottom walls.
	if s.Ball.Y <= 0 || s.Ball.Y >= FieldHeight {
		s.Ball.SpeedY = -s.Ball.SpeedY
	}

	// A ball past the left or right boundary scores for the opposite player
	// and respawns at the center, X direction inverted.
	if s.Ball.X <= 0 || s.Ball.X >= FieldWidth {
		if s.Ball.X <= 0 {
			s.Scores.Player2++
		} else {
			s.Scores.Player1++
		}
		s.Ball.X = BallStartX
		s.Ball.Y = BallStartY
		s.Ball.SpeedX = -s.Ball.SpeedX
		events = append(events, ScoreChanged{Scores: s.Scores}, Scored{})

		if s.Settings.GameMode == ModeScore &&
			(s.Scores.Player1 >= WinScore || s.Scores.Player2 >= WinScore) {
			winner := 1
			if s.Scores.Player2 >= WinScore {
				winner = 2
			}
			s.Terminate()
			return append(events, Finished{Winner: winner, Scores: s.Scores})
		}
	}

	// Per-tick overlap test. Both paddles are checked; if the ball overlaps
	// both in the same tick, both inversions apply.
	for i := range s.Paddles {
		if s.Paddles[i].contains(s.Ball.X, s.Ball.Y) {
			s.Ball.SpeedX = -s.Ball.SpeedX
			s.Paddles[i].Hit = true
			events = append(events, PaddleHit{Paddle: i + 1})
		}
	}

	return append(events, BallMoved{Ball: s.Ball})
}
