package websocket

import (
	"context"
	"net/http"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/arcadehall/pongmatch"
	"github.com/arcadehall/pongmatch/internal/protocol"
)

// TestDefaultRateLimitConfig tests the default rate limit configuration
func TestDefaultRateLimitConfig(t *testing.T) {
	t.Parallel()

	config := DefaultRateLimitConfig()

	if config == nil {
		t.Fatal("DefaultRateLimitConfig() returned nil")
	}

	if !config.Enabled {
		t.Error("Expected rate limiting to be enabled by default")
	}

	if config.MessagesPerSecond != 100 {
		t.Errorf("MessagesPerSecond = %v, want 100", config.MessagesPerSecond)
	}

	if config.Burst != 200 {
		t.Errorf("Burst = %v, want 200", config.Burst)
	}
}

// TestNoRateLimit tests the no rate limit configuration
func TestNoRateLimit(t *testing.T) {
	t.Parallel()

	config := NoRateLimit()

	if config == nil {
		t.Fatal("NoRateLimit() returned nil")
	}

	if config.Enabled {
		t.Error("Expected rate limiting to be disabled")
	}
}

// TestRateLimitConfigValues tests various rate limit configurations
func TestRateLimitConfigValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		config      *RateLimitConfig
		wantMPS     rate.Limit
		wantBurst   int
		wantEnabled bool
	}{
		{
			name:        "default config",
			config:      DefaultRateLimitConfig(),
			wantMPS:     100,
			wantBurst:   200,
			wantEnabled: true,
		},
		{
			name:        "no rate limit",
			config:      NoRateLimit(),
			wantMPS:     0,
			wantBurst:   0,
			wantEnabled: false,
		},
		{
			name: "custom config",
			config: &RateLimitConfig{
				MessagesPerSecond: 50,
				Burst:             100,
				Enabled:           true,
			},
			wantMPS:     50,
			wantBurst:   100,
			wantEnabled: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.config.MessagesPerSecond != tt.wantMPS {
				t.Errorf("MessagesPerSecond = %v, want %v", tt.config.MessagesPerSecond, tt.wantMPS)
			}

			if tt.config.Burst != tt.wantBurst {
				t.Errorf("Burst = %v, want %v", tt.config.Burst, tt.wantBurst)
			}

			if tt.config.Enabled != tt.wantEnabled {
				t.Errorf("Enabled = %v, want %v", tt.config.Enabled, tt.wantEnabled)
			}
		})
	}
}

// TestEventEcho runs a real server and checks envelope round-tripping and
// handler dispatch end to end.
func TestEventEcho(t *testing.T) {
	t.Parallel()

	server := New(&ServerConfig{
		Addr:            "127.0.0.1:18093",
		RateLimitConfig: DefaultRateLimitConfig(),
		CheckOrigin:     func(r *http.Request) bool { return true },
		Logger:          zerolog.Nop(),
	})
	ctx := context.Background()

	server.RegisterHandler(ctx, "echo", func(client pongmatch.Client, data []byte) {
		client.Send(context.Background(), "echo", json.RawMessage(data))
	})

	if err := server.Start(ctx); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Stop(stopCtx)
	}()

	time.Sleep(200 * time.Millisecond)

	dialer := &websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.Dial("ws://127.0.0.1:18093/ws", nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	encoded, err := protocol.Encode("echo", "hello")
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, encoded); err != nil {
		t.Fatalf("Failed to send: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, response, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}

	event, payload, err := protocol.Decode(response)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if event != "echo" {
		t.Errorf("event = %q, want %q", event, "echo")
	}
	if string(payload) != `"hello"` {
		t.Errorf("payload = %s, want %q", payload, `"hello"`)
	}
}

// TestMalformedMessageKeepsConnection checks that invalid envelopes are
// dropped without closing the connection.
func TestMalformedMessageKeepsConnection(t *testing.T) {
	t.Parallel()

	received := make(chan struct{}, 1)
	server := New(&ServerConfig{
		Addr:            "127.0.0.1:18094",
		RateLimitConfig: NoRateLimit(),
		CheckOrigin:     func(r *http.Request) bool { return true },
		Logger:          zerolog.Nop(),
	})
	ctx := context.Background()

	server.RegisterHandler(ctx, "ping", func(client pongmatch.Client, data []byte) {
		received <- struct{}{}
	})

	if err := server.Start(ctx); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Stop(stopCtx)
	}()

	time.Sleep(200 * time.Millisecond)

	dialer := &websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.Dial("ws://127.0.0.1:18094/ws", nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	// Not an envelope at all.
	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("Failed to send: %v", err)
	}

	// The connection survives and a valid message still dispatches.
	encoded, _ := protocol.Encode("ping", nil)
	if err := conn.WriteMessage(websocket.TextMessage, encoded); err != nil {
		t.Fatalf("Failed to send valid message: %v", err)
	}

	select {
	case <-received:
	case <-time.After(5 * time.Second):
		t.Fatal("handler never ran after malformed message")
	}
}
