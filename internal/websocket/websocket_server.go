package websocket

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/arcadehall/pongmatch"
	"github.com/arcadehall/pongmatch/internal/protocol"
)

// CheckOriginFn is a function that validates the origin of a WebSocket
// connection request. It receives the HTTP request and returns true if the
// origin is allowed, false otherwise. Use this to implement CORS policies.
type CheckOriginFn = func(r *http.Request) bool

// OnConnectFn is a callback function that is called when a new client
// connects. It is called after the WebSocket handshake completes and before
// the message reading loop starts. This is the ideal place to track
// connected players or initialize client-specific state.
//
// Note: This function is called synchronously during connection setup.
// Avoid long-running operations that could block new connections.
type OnConnectFn = func(client pongmatch.Client)

// OnClientDisconnectFn is invoked when a connected client disconnects. The
// voluntary flag is true when the disconnect was initiated by the client and
// false for unexpected or server-initiated disconnects. The hub uses this
// hook to remove the player from matchmaking and tear down their match.
type OnClientDisconnectFn = func(client pongmatch.Client, voluntary bool)

type ServerConfig struct {
	Addr               string
	RateLimitConfig    *RateLimitConfig
	CheckOrigin        CheckOriginFn
	OnConnect          OnConnectFn
	OnClientDisconnect OnClientDisconnectFn
	Logger             zerolog.Logger
}

// RateLimitConfig defines rate limiting configuration for clients
type RateLimitConfig struct {
	// MessagesPerSecond defines how many messages a client can send per second
	MessagesPerSecond rate.Limit
	// Burst defines the maximum burst size (token bucket capacity)
	Burst int
	// Enabled determines if rate limiting is active
	Enabled bool
}

// DefaultRateLimitConfig returns the default rate limit configuration.
// Allows 100 messages per second with burst of 200, comfortably above
// paddle-update traffic at the maximum tick rate.
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		MessagesPerSecond: 100,
		Burst:             200,
		Enabled:           true,
	}
}

// NoRateLimit returns a configuration with rate limiting disabled
func NoRateLimit() *RateLimitConfig {
	return &RateLimitConfig{
		Enabled: false,
	}
}

// Server implements the pongmatch.Server interface
type Server struct {
	addr     string
	server   *http.Server
	clients  sync.Map // map[string]*Client
	handlers sync.Map // map[string]func(client pongmatch.Client, data []byte)

	rateLimitConfig *RateLimitConfig

	mu           sync.RWMutex
	running      bool
	upgrader     websocket.Upgrader
	onConnect    OnConnectFn
	onDisconnect OnClientDisconnectFn
	log          zerolog.Logger
}

// New creates a new WebSocket server instance with the specified
// configuration. If RateLimitConfig is nil, DefaultRateLimitConfig() is
// used. The server uses the Gorilla WebSocket library with read/write
// buffer sizes of 1024 bytes; rate limiting is applied per client using a
// token bucket.
func New(cfg *ServerConfig) *Server {
	if cfg.RateLimitConfig == nil {
		cfg.RateLimitConfig = DefaultRateLimitConfig()
	}
	return &Server{
		addr:            cfg.Addr,
		rateLimitConfig: cfg.RateLimitConfig,
		onConnect:       cfg.OnConnect,
		onDisconnect:    cfg.OnClientDisconnect,
		log:             cfg.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.CheckOrigin,
		},
	}
}

// Start starts the WebSocket server
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return eris.New(pongmatch.ErrServerAlreadyRunning)
	}
	s.running = true
	s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)

	s.server = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Check for immediate startup errors with a small timeout
	select {
	case err := <-errChan:
		// Reset running state without calling Stop to avoid deadlock
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return err
	case <-ctx.Done():
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(stopCtx)
	case <-time.After(100 * time.Millisecond):
		// Server started successfully, no immediate errors
		return nil
	}
}

// Stop stops the WebSocket server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	// Close all client connections
	s.clients.Range(func(key, value interface{}) bool {
		if client, ok := value.(*Client); ok {
			client.Close(ctx)
		}
		return true
	})

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// RegisterHandler registers a handler for a named client event.
// The handler is executed asynchronously and receives the client and the
// raw JSON payload of the envelope.
func (s *Server) RegisterHandler(ctx context.Context, event string, handler func(client pongmatch.Client, data []byte)) error {
	s.handlers.Store(event, handler)
	return nil
}

// handleWebSocket handles incoming WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "Failed to upgrade connection", http.StatusBadRequest)
		return
	}

	client := NewClient(conn, r.RemoteAddr, s.rateLimitConfig)
	s.clients.Store(client.ID(), client)

	// Start reading messages from client
	go s.handleClient(client)
}

// handleClient handles messages from a connected client
func (s *Server) handleClient(client *Client) {
	defer func() {
		voluntary := client.Context().Err() == context.Canceled

		if s.onDisconnect != nil {
			s.onDisconnect(client, voluntary)
		}
		s.clients.Delete(client.ID())
		client.Close(context.Background())
	}()

	// Set read deadline to prevent indefinite blocking
	client.conn.SetReadDeadline(time.Now().Add(60 * time.Second))

	// Set pong handler to reset read deadline on pong
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	if s.onConnect != nil {
		s.onConnect(client)
	}

	for {
		select {
		case <-client.Context().Done():
			return
		default:
			_, data, err := client.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					s.log.Debug().Err(err).Str("client_id", client.ID()).Msg("unexpected websocket close")
				}
				return
			}

			// Reset read deadline after successful read
			client.conn.SetReadDeadline(time.Now().Add(60 * time.Second))

			// Check rate limit before processing message
			if !client.CheckRateLimit(context.Background()) {
				s.log.Warn().Str("client_id", client.ID()).Str("remote_addr", client.RemoteAddr()).
					Msg("rate limit exceeded")
				client.CloseWithCode(context.Background(), websocket.ClosePolicyViolation, "Rate limit exceeded")
				return
			}

			event, payload, err := protocol.Decode(data)
			if err != nil {
				// Malformed input fails closed: drop the message, keep the
				// connection.
				s.log.Debug().Err(err).Str("client_id", client.ID()).Msg(pongmatch.ErrInvalidMessageFormat)
				continue
			}

			s.handleEvent(client, event, payload)
		}
	}
}

// handleEvent dispatches an inbound event to its registered handler.
// Handlers are executed in separate goroutines to avoid blocking the read
// loop; per-session ordering is restored by the hub's session runners.
func (s *Server) handleEvent(client *Client, event string, payload []byte) {
	handler, ok := s.handlers.Load(event)
	if !ok {
		// Unknown events are silently ignored (fire-and-forget pattern)
		s.log.Debug().Str("client_id", client.ID()).Str("event", event).Msg(pongmatch.ErrUnknownEvent)
		return
	}
	if handlerFunc, ok := handler.(func(pongmatch.Client, []byte)); ok {
		go handlerFunc(client, payload)
	}
}

// GetClient returns a client by ID
func (s *Server) GetClient(id string) (*Client, bool) {
	if client, ok := s.clients.Load(id); ok {
		return client.(*Client), true
	}
	return nil, false
}

// SendTo sends an event to a specific client
func (s *Server) SendTo(ctx context.Context, clientID string, event string, payload any) error {
	client, ok := s.GetClient(clientID)
	if !ok {
		return eris.Errorf("%s: %s", pongmatch.ErrClientNotFound, clientID)
	}

	return client.Send(ctx, event, payload)
}

// Broadcast sends an event to all connected clients
func (s *Server) Broadcast(ctx context.Context, event string, payload any) error {
	s.clients.Range(func(key, value interface{}) bool {
		if client, ok := value.(*Client); ok {
			client.Send(ctx, event, payload)
		}
		return true
	})
	return nil
}
