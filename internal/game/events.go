package game

// Event is one observable outcome of a simulation tick. The arena translates
// events into wire messages for the two players of the session.
type Event interface {
	event()
}

// BallMoved carries the ball state broadcast at the end of a tick.
type BallMoved struct {
	Ball Ball
}

// ScoreChanged is emitted when a ball exits the field and a point is
// credited. It is always followed by Scored in the same tick.
type ScoreChanged struct {
	Scores Scores
}

// Scored is the notification-only companion of ScoreChanged.
type Scored struct{}

// PaddleHit identifies the struck paddle by player number (1 or 2).
type PaddleHit struct {
	Paddle int
}

// Finished ends the session: a score reached the threshold, or the time
// limit expired. No further ticks produce events after Finished.
type Finished struct {
	Winner int
	Scores Scores
}

func (BallMoved) event()    {}
func (ScoreChanged) event() {}
func (Scored) event()       {}
func (PaddleHit) event()    {}
func (Finished) event()     {}
