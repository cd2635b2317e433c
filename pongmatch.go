package pongmatch

import "context"

// Server defines the interface for the WebSocket server that carries the
// game's event protocol.
//
// All messages exchanged between the server and clients are JSON envelopes
// with an event name and an optional data payload.
//
// Example usage:
//
//	import "github.com/arcadehall/pongmatch/ws"
//
//	rateLimitConfig := ws.DefaultRateLimitConfig()
//	server := ws.New(ws.NewConfig(":4000", rateLimitConfig, ws.AllOrigins(), nil, nil, logger))
//
//	// Register a handler for the quickMatch event
//	server.RegisterHandler(ctx, pongmatch.EventQuickMatch, func(client pongmatch.Client, data []byte) {
//	    client.Send(ctx, pongmatch.EventWaitingForPlayer, map[string]any{"inviteCode": nil})
//	})
//
//	server.Start(ctx)
type Server interface {
	// Start starts the WebSocket server and begins listening for connections.
	// The server will continue running until Stop is called or the context is cancelled.
	//
	// Returns an error if the server is already running or if there's a problem
	// binding to the network address.
	Start(ctx context.Context) error

	// Stop gracefully stops the WebSocket server and closes all client connections.
	// Active connections are given time to close properly.
	//
	// Returns an error if there's a problem during shutdown.
	Stop(ctx context.Context) error

	// RegisterHandler registers a handler function for a named client event.
	//
	// The handler is executed asynchronously (fire-and-forget pattern). It
	// receives the client instance and the raw JSON payload of the envelope,
	// allowing you to send responses or address other clients as needed.
	// There is no request-response pairing; every event stands alone.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - event: The event name to handle (see the Event constants)
	//   - handler: Function that processes the payload with access to the client
	//
	// Example:
	//
	//	server.RegisterHandler(ctx, pongmatch.EventEndGame, func(client pongmatch.Client, data []byte) {
	//	    var p struct{ Room string `json:"room"` }
	//	    if err := json.Unmarshal(data, &p); err != nil {
	//	        return // malformed input is dropped
	//	    }
	//	    hub.EndGame(p.Room)
	//	})
	RegisterHandler(ctx context.Context, event string, handler func(client Client, data []byte)) error

	// SendTo sends an event to a single connected client by identifier.
	//
	// The payload is marshalled to JSON and wrapped in the event envelope.
	// A nil payload produces an envelope with no data field.
	//
	// Returns an error if no client with the given identifier is connected.
	SendTo(ctx context.Context, clientID string, event string, payload any) error

	// Broadcast sends an event to every connected client.
	//
	// Useful for system-wide notices. Game state updates are addressed to the
	// two members of a session via SendTo instead.
	Broadcast(ctx context.Context, event string, payload any) error
}

// Client represents a connected WebSocket client.
//
// Each client has a unique identifier and maintains its own connection state.
// The client's context is automatically cancelled when the connection closes.
type Client interface {
	// ID returns a unique identifier for the connected client.
	//
	// The ID is automatically generated when the client connects and remains
	// constant for the lifetime of the connection. It doubles as the player
	// reference inside match sessions.
	ID() string

	// RemoteAddr returns the client's remote network address.
	RemoteAddr() string

	// Context returns the client's lifecycle context.
	//
	// This context is automatically cancelled when the connection closes,
	// allowing goroutines and operations associated with the client to be
	// properly cleaned up.
	Context() context.Context

	// Send sends an event to the client over the WebSocket connection.
	//
	// The event name and payload are encoded into the JSON envelope before
	// being sent. The send operation is non-blocking and queued for delivery.
	//
	// Returns an error if the connection is closed or the context is cancelled.
	Send(ctx context.Context, event string, payload any) error

	// Close closes the client connection gracefully.
	//
	// This is equivalent to calling CloseWithCode with websocket.CloseNormalClosure.
	Close(ctx context.Context) error

	// CloseWithCode closes the connection with a specific WebSocket close code
	// and optional reason.
	CloseWithCode(ctx context.Context, code int, reason string) error

	// IsAlive returns true if the connection is still active.
	IsAlive() bool
}
