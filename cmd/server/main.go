// Command server runs the pongmatch game server: a WebSocket endpoint that
// matches players, hosts private invite-code games, and simulates matches
// server-side, streaming state to both players.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JeremyLoy/config"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/arcadehall/pongmatch"
	"github.com/arcadehall/pongmatch/internal/arena"
	"github.com/arcadehall/pongmatch/internal/game"
	"github.com/arcadehall/pongmatch/ws"
)

type serverConfig struct {
	Addr             string `config:"PONG_ADDR"`
	LogLevel         string `config:"PONG_LOG_LEVEL"`
	LogPretty        bool   `config:"PONG_LOG_PRETTY"`
	DisableRateLimit bool   `config:"PONG_DISABLE_RATE_LIMIT"`
}

func loadConfig() serverConfig {
	cfg := serverConfig{
		Addr:     ":8080",
		LogLevel: "info",
	}
	_ = config.FromEnv().To(&cfg)
	return cfg
}

func newLogger(cfg serverConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = os.Stderr
	logger := zerolog.New(out)
	if cfg.LogPretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen})
	}
	return logger.Level(level).With().Timestamp().Logger()
}

func main() {
	cfg := loadConfig()
	logger := newLogger(cfg)

	rateLimit := ws.DefaultRateLimitConfig()
	if cfg.DisableRateLimit {
		rateLimit = ws.NoRateLimit()
	}

	// The hub needs the server to send events and the server needs the hub
	// to handle disconnects, so the disconnect hook late-binds the hub.
	var hub *arena.Hub
	server := ws.New(ws.NewConfig(cfg.Addr, rateLimit, ws.AllOrigins(), nil,
		func(client pongmatch.Client, voluntary bool) {
			hub.Disconnect(client.ID())
		}, logger))
	hub = arena.NewHub(server, logger)

	ctx := context.Background()
	registerHandlers(ctx, server, hub, logger)

	if err := server.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
	logger.Info().Str("addr", cfg.Addr).Msg("pongmatch server listening")

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	logger.Info().Msg("shutting down")
	hub.Shutdown()

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(stopCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}

// registerHandlers binds every client event to its hub operation. Payloads
// with the wrong shape are logged and dropped; the connection stays open.
func registerHandlers(ctx context.Context, server pongmatch.Server, hub *arena.Hub, logger zerolog.Logger) {
	drop := func(event string, client pongmatch.Client, err error) {
		logger.Debug().Err(err).Str("event", event).Str("client", client.ID()).Msg("dropping malformed payload")
	}

	server.RegisterHandler(ctx, pongmatch.EventQuickMatch, func(client pongmatch.Client, data []byte) {
		hub.QuickMatch(ctx, client.ID())
	})

	server.RegisterHandler(ctx, pongmatch.EventCreatePrivateGame, func(client pongmatch.Client, data []byte) {
		var settings game.Settings
		if len(data) > 0 {
			if err := json.Unmarshal(data, &settings); err != nil {
				drop(pongmatch.EventCreatePrivateGame, client, err)
				return
			}
		}
		hub.CreatePrivateGame(ctx, client.ID(), settings)
	})

	server.RegisterHandler(ctx, pongmatch.EventJoinPrivateGame, func(client pongmatch.Client, data []byte) {
		var payload arena.JoinPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			drop(pongmatch.EventJoinPrivateGame, client, err)
			return
		}
		hub.JoinPrivateGame(ctx, client.ID(), payload.Code)
	})

	server.RegisterHandler(ctx, pongmatch.EventCancelWaiting, func(client pongmatch.Client, data []byte) {
		hub.CancelWaiting(client.ID())
	})

	server.RegisterHandler(ctx, pongmatch.EventMovePaddle, func(client pongmatch.Client, data []byte) {
		var payload arena.MovePaddlePayload
		if err := json.Unmarshal(data, &payload); err != nil {
			drop(pongmatch.EventMovePaddle, client, err)
			return
		}
		hub.MovePaddle(payload.Room, client.ID(), payload.Paddle)
	})

	server.RegisterHandler(ctx, pongmatch.EventPauseGame, func(client pongmatch.Client, data []byte) {
		var payload arena.RoomPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			drop(pongmatch.EventPauseGame, client, err)
			return
		}
		hub.PauseGame(payload.Room)
	})

	server.RegisterHandler(ctx, pongmatch.EventResumeGame, func(client pongmatch.Client, data []byte) {
		var payload arena.RoomPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			drop(pongmatch.EventResumeGame, client, err)
			return
		}
		hub.ResumeGame(payload.Room)
	})

	server.RegisterHandler(ctx, pongmatch.EventEndGame, func(client pongmatch.Client, data []byte) {
		var payload arena.RoomPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			drop(pongmatch.EventEndGame, client, err)
			return
		}
		hub.EndGame(payload.Room)
	})
}
