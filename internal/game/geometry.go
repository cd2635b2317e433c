package game

// Field geometry. These are the agreed constants between the simulation and
// the rendering client; collision tests and drawing must use the same values.
const (
	FieldWidth  = 500.0
	FieldHeight = 300.0

	PaddleWidth  = 15.0
	PaddleHeight = 100.0

	BallRadius = 5.0

	// Spawn positions. Paddles are vertically centered; the ball starts at
	// the field center.
	PaddleStartY = (FieldHeight - PaddleHeight) / 2
	BallStartX   = FieldWidth / 2
	BallStartY   = FieldHeight / 2

	// RightPaddleX is the left edge of the right paddle, flush with the
	// right boundary.
	RightPaddleX = FieldWidth - PaddleWidth
)

// WinScore is the score-mode win threshold.
const WinScore = 10
