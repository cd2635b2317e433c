// Package pongmatch implements a real-time two-player Pong server: matchmaking,
// private invite-code games, and an authoritative per-match simulation streamed
// to both clients over WebSocket.
//
// # Architecture
//
// The server is split into four layers:
//
//   - internal/websocket: the transport. One bidirectional connection per
//     client, a buffered write pump, per-client rate limiting, and handler
//     dispatch keyed by event name.
//   - internal/protocol: the wire format. Every message is a JSON envelope
//     {"event": name, "data": payload} with one fixed payload schema per
//     event, validated at the boundary.
//   - internal/match: matchmaking state. A FIFO waiting queue for quick
//     matches and a registry of pending private games keyed by 6-character
//     invite codes.
//   - internal/arena: the hub. It owns the session store, pairs players into
//     sessions, runs one goroutine per session that drives the fixed-rate
//     simulation tick, and tears sessions down on win, explicit end, or
//     disconnect.
//
// # Quick Start
//
//	import (
//	    "github.com/arcadehall/pongmatch/ws"
//	)
//
//	server := ws.New(ws.NewConfig(":4000", ws.DefaultRateLimitConfig(), ws.AllOrigins(), nil, nil, logger))
//
//	server.RegisterHandler(ctx, pongmatch.EventQuickMatch, func(client pongmatch.Client, data []byte) {
//	    hub.QuickMatch(ctx, client.ID())
//	})
//
//	server.Start(ctx)
//
// # Protocol Format
//
// Text WebSocket messages, one JSON envelope each:
//
//	{"event": "movePaddle", "data": {"paddle": {...}, "room": "aB3xYz"}}
//
// Server state updates ("updateBall", "updatePaddle", "update scores", ...)
// are addressed per player; the rendering client consumes them directly.
// Unknown events and malformed payloads are silently dropped so a single bad
// client cannot take the process down.
//
// # Simulation
//
// Each session ticks at its configured rate (default 35/s). A tick advances
// the ball, reflects it off the top and bottom walls, credits a score and
// recentres the ball when it exits left or right, applies the per-tick paddle
// overlap test, and broadcasts the ball to both players. Matches end when a
// score reaches 10 (score mode) or the active play time reaches the
// configured duration (time mode, paused time excluded). Either player can
// pause, resume, or end the match; a disconnect notifies the opponent and
// tears the session down.
//
// # Rate Limiting
//
// Each client has independent rate limiting using a token bucket:
//
//	// Default: 100 messages/second, burst 200
//	rateLimitConfig := ws.DefaultRateLimitConfig()
//
//	// Disabled
//	rateLimitConfig := ws.NoRateLimit()
//
// When the limit is exceeded, the client receives close code 1008 (Policy
// Violation). The default comfortably covers paddle updates at the maximum
// tick rate.
//
// # Important
//
//   - The server trusts client-reported paddle coordinates; ownership is
//     checked but positions are not clamped.
//   - Handlers execute in goroutines; per-session ordering is restored by the
//     session runner's command channel.
//   - Configure the origin check in production (never use ws.AllOrigins() in
//     production).
package pongmatch
