package pongmatch

// Client → server events.
const (
	EventQuickMatch        = "quickMatch"
	EventCreatePrivateGame = "createPrivateGame"
	EventJoinPrivateGame   = "joinPrivateGame"
	EventCancelWaiting     = "cancelWaiting"
	EventMovePaddle        = "movePaddle"
	EventPauseGame         = "pauseGame"
	EventResumeGame        = "resumeGame"
	EventEndGame           = "endGame"
)

// Server → client events. The two space-separated names are legacy wire
// names kept for client compatibility.
const (
	EventID                   = "id"
	EventWaitingForPlayer     = "waitingForPlayer"
	EventGameNotFound         = "gameNotFound"
	EventGameFull             = "gameFull"
	EventGame                 = "game"
	EventGameStart            = "gameStart"
	EventUpdatePaddle         = "updatePaddle"
	EventUpdateBall           = "updateBall"
	EventUpdateScores         = "update scores"
	EventScored               = "scored"
	EventPaddleHit            = "paddle hit"
	EventGamePaused           = "gamePaused"
	EventGameResumed          = "gameResumed"
	EventOpponentDisconnected = "opponentDisconnected"
	EventGameOver             = "gameOver"
)

// Standard error messages
const (
	// Protocol errors
	ErrInvalidMessageFormat = "Invalid message format"
	ErrUnknownEvent         = "unknown event"

	// Connection errors
	ErrClientNotFound       = "client not found"
	ErrConnectionClosed     = "client connection is closed"
	ErrContextCancelled     = "client context cancelled"
	ErrFailedToEncode       = "failed to encode message"
	ErrServerAlreadyRunning = "server already running"
)
