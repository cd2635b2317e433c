package arena

import (
	"github.com/goccy/go-json"

	"github.com/arcadehall/pongmatch/internal/game"
)

// Server → client payloads.

// IDPayload tells a player its connection identifier and player number.
type IDPayload struct {
	ID  string `json:"id"`
	Num int    `json:"num"`
}

// WaitingPayload acknowledges a matchmaking request. InviteCode is null for
// quick matches and the shareable code for private games.
type WaitingPayload struct {
	InviteCode *string `json:"inviteCode"`
}

// GameOverPayload carries the final outcome.
type GameOverPayload struct {
	Winner int         `json:"winner"`
	Scores game.Scores `json:"scores"`
}

// PaddleHitPayload identifies the struck paddle by player number.
type PaddleHitPayload struct {
	PaddleID int `json:"paddleId"`
}

// PausedPayload freezes the current ball and paddles on the client.
type PausedPayload struct {
	Ball    game.Ball     `json:"ball"`
	Paddles []game.Paddle `json:"paddles"`
}

// Client → server payloads. Each is the fixed schema of one event, decoded
// and validated at the transport boundary.

// MovePaddlePayload is a player's self-reported paddle position. The room
// addresses the session; the sender's connection identity decides which
// paddle may be written, so ID and MyID are carried only for wire
// compatibility with existing clients.
type MovePaddlePayload struct {
	Paddle game.Paddle `json:"paddle"`
	Room   string      `json:"room"`
	ID     string      `json:"id"`
	MyID   string      `json:"myId"`
}

// RoomPayload addresses a session, used by pause, resume, and end requests.
type RoomPayload struct {
	Room string `json:"room"`
}

// JoinPayload carries an invite code. Existing clients send the code as a
// bare JSON string, so both forms decode.
type JoinPayload struct {
	Code string `json:"code"`
}

func (p *JoinPayload) UnmarshalJSON(data []byte) error {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		p.Code = bare
		return nil
	}

	type plain JoinPayload
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = JoinPayload(decoded)
	return nil
}
