package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"playroom/auth"
	"playroom/moderation"
	"playroom/protocol"
	"playroom/repositories"
	"playroom/runtime"
	"playroom/runtime/workers"
	"playroom/services"
	"playroom/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components and manages the server lifecycle, so that
// every defer (database close, index close) executes before the process
// exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Storage (BadgerDB + Bluge index)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	index, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return fmt.Errorf("search index opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing search index...")
		_ = index.Close()
	}()

	// 3. Repositories
	users := repositories.NewUserRepository(db)
	profiles := repositories.NewProfileRepository(db)
	friendships := repositories.NewFriendshipRepository(db)
	sessions := repositories.NewSessionRepository(db)
	messages := repositories.NewMessageRepository(db, index, log)

	// 4. Moderation
	wordlists, err := moderation.DefaultWordlists()
	if err != nil {
		return fmt.Errorf("wordlists loading failed: %w", err)
	}
	moderator, err := moderation.NewModerator(wordlists, config.ModerationFallback, config.ModerationCharReplacement)
	if err != nil {
		return fmt.Errorf("moderator setup failed: %w", err)
	}

	// 5. Identity & Accounts
	tokens := auth.NewJWTProvider([]byte(config.JWTSecret), config.TokenDuration)
	authenticator := auth.NewAuthenticator(tokens, config.VerifyTimeout)
	accounts := services.NewAccountService(users, profiles, tokens)

	// 6. Realtime layer
	registry := runtime.NewRegistry()
	hub := runtime.NewHub(log, registry, protocol.NewTransformer(), moderator,
		messages, friendships, sessions, profiles,
		nil, // no rules engine deployed yet, moves are relayed as-is
		config.DeliveryTimeout)

	// 7. Supervision & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sup := workers.NewSupervisor(log, config.RestartInterval).
		Add(workers.NewHeartbeatWorker(log, registry, config.HeartbeatInterval))
	sup.Run(ctx)

	// 8. HTTP Server Setup
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := transport.NewServer(log, authenticator, accounts, registry, hub)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 9. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 10. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	sup.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
