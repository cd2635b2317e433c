package game

import (
	"time"

	"github.com/rotisserie/eris"
)

// Mode selects the win condition of a match.
type Mode string

const (
	// ModeScore ends the match when a player reaches WinScore points.
	ModeScore Mode = "score"
	// ModeTime ends the match when the active play time reaches the
	// configured duration; the higher score wins, equal scores tie.
	ModeTime Mode = "time"
)

// Settings are the per-match configuration chosen by the host (or the
// defaults for quick matches).
type Settings struct {
	GameMode     Mode    `json:"gameMode"`
	GameDuration int     `json:"gameDuration"` // seconds, time mode only
	BallSpeed    float64 `json:"ballSpeed"`
	FrameRate    int     `json:"frameRate"` // simulation ticks per second
}

// MaxFrameRate caps the simulation tick rate. Anything above it would be
// indistinguishable to clients, and unbounded rates degenerate to a
// zero tick interval.
const MaxFrameRate = 240

// DefaultSettings are used for quick matches and to fill omitted
// private-game fields.
func DefaultSettings() Settings {
	return Settings{
		GameMode:     ModeScore,
		GameDuration: 60,
		BallSpeed:    2,
		FrameRate:    35,
	}
}

// Normalize fills zero-valued fields with defaults and validates the result.
func (s Settings) Normalize() (Settings, error) {
	def := DefaultSettings()
	if s.GameMode == "" {
		s.GameMode = def.GameMode
	}
	if s.GameDuration == 0 {
		s.GameDuration = def.GameDuration
	}
	if s.BallSpeed == 0 {
		s.BallSpeed = def.BallSpeed
	}
	if s.FrameRate == 0 {
		s.FrameRate = def.FrameRate
	}

	if s.GameMode != ModeScore && s.GameMode != ModeTime {
		return s, eris.Errorf("unknown game mode %q", s.GameMode)
	}
	if s.GameDuration < 0 || s.BallSpeed < 0 || s.FrameRate < 0 {
		return s, eris.New("negative game setting")
	}
	if s.FrameRate > MaxFrameRate {
		return s, eris.Errorf("frame rate %d above maximum %d", s.FrameRate, MaxFrameRate)
	}
	return s, nil
}

// TickInterval is the wall-clock spacing between simulation ticks.
func (s Settings) TickInterval() time.Duration {
	return time.Second / time.Duration(s.FrameRate)
}

// Ball is the match ball. Mutated only by the simulation, once per tick.
// Speed components never change magnitude after match creation, only sign.
type Ball struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	SpeedX float64 `json:"speedX"`
	SpeedY float64 `json:"speedY"`
	Radius float64 `json:"radius"`
}

// Paddle is one player's paddle. Position is client-reported; Hit is the
// cosmetic hit-effect flag set by collision resolution.
type Paddle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	ID     string  `json:"id"`
	Hit    bool    `json:"hit,omitempty"`
}

// contains reports whether the point lies within the paddle's rectangle.
func (p Paddle) contains(x, y float64) bool {
	return x >= p.X && x <= p.X+p.Width && y >= p.Y && y <= p.Y+p.Height
}

// Scores holds both players' points. Non-decreasing within a match.
type Scores struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

// Winner compares the scores: 1 or 2 for the leading player, 0 for a tie.
func (s Scores) Winner() int {
	switch {
	case s.Player1 > s.Player2:
		return 1
	case s.Player2 > s.Player1:
		return 2
	default:
		return 0
	}
}
