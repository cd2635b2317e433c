package game

// PlayerRef is the wire form of a player reference.
type PlayerRef struct {
	PlayerID string `json:"playerId"`
}

// Players pairs the two player references by number.
type Players struct {
	Player1 PlayerRef `json:"player1"`
	Player2 PlayerRef `json:"player2"`
}

// Snapshot is the full session state sent to both players when a match is
// created, and the ball/paddle subset is reused by the pause notification.
type Snapshot struct {
	RoomID       string   `json:"roomId"`
	Players      Players  `json:"players"`
	Ball         Ball     `json:"ball"`
	Scores       Scores   `json:"scores"`
	Paddles      []Paddle `json:"paddles"`
	GameMode     Mode     `json:"gameMode"`
	GameDuration int      `json:"gameDuration"`
	BallSpeed    float64  `json:"ballSpeed"`
	FrameRate    int      `json:"frameRate"`
	StartTime    *int64   `json:"startTime"` // unix millis, null before start
}

// Snapshot captures the current session state for the wire.
func (s *Session) Snapshot() Snapshot {
	var startTime *int64
	if !s.startedAt.IsZero() {
		ms := s.startedAt.UnixMilli()
		startTime = &ms
	}
	return Snapshot{
		RoomID: s.RoomID,
		Players: Players{
			Player1: PlayerRef{PlayerID: s.Player1},
			Player2: PlayerRef{PlayerID: s.Player2},
		},
		Ball:         s.Ball,
		Scores:       s.Scores,
		Paddles:      []Paddle{s.Paddles[0], s.Paddles[1]},
		GameMode:     s.Settings.GameMode,
		GameDuration: s.Settings.GameDuration,
		BallSpeed:    s.Settings.BallSpeed,
		FrameRate:    s.Settings.FrameRate,
		StartTime:    startTime,
	}
}
