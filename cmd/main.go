package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alpha4Coders/AlphaChat-V2/config"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/presence"
	user_repo "github.com/Alpha4Coders/AlphaChat-V2/internal/repo/user"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/routers"
	channel_service "github.com/Alpha4Coders/AlphaChat-V2/internal/use-case/channel-case"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/websocket"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/worker"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := config.LoadConfig(); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appState, err := state.InitAppState(ctx, stop)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application state")
	}
	defer appState.Close()

	if err := appState.DB.AutoMigrate(
		&entity.User{},
		&entity.Channel{},
		&entity.ChannelMember{},
		&entity.ChannelPin{},
		&entity.Conversation{},
		&entity.ConversationMember{},
		&entity.SavedItem{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	channelService := channel_service.NewChannelService(appState)
	if appErr := channelService.SeedDefaultChannels(ctx); appErr != nil {
		log.Fatal().Str("message", appErr.Message).Msg("failed to seed default channels")
	}

	registry := presence.NewRegistry()
	typing := presence.NewTypingTracker()
	wsHub := websocket.NewHub(registry, typing)
	log.Info().Msg("Websocket hub initialized")

	authFunc := websocket.JWTWebSocketAuth(appState.JwtSecret, appState.Redis)
	authorizer := channel_service.NewChannelAuthorizer(appState)
	statusStore := user_repo.NewUserRepo(appState)

	wsHandler := websocket.NewWebSocketHandler(wsHub, authFunc, authorizer, statusStore)
	if config.Conf.WS.MaxConnections > 0 {
		wsHandler.MaxConnections = config.Conf.WS.MaxConnections
	}
	if config.Conf.WS.ConnectionsPerIP > 0 {
		wsHandler.RateLimit.ConnectionsPerIP = config.Conf.WS.ConnectionsPerIP
	}
	go wsHandler.StartCleanup(ctx)
	log.Info().Msg("Websocket handler initialized")

	workerPool := worker.NewWorkerPool(appState, 5, wsHub)
	go workerPool.Start(ctx)
	go workerPool.StartDLQDrain(ctx)
	go workerPool.StartDLQRetryConsumer(ctx)

	r := routers.NewRouter(appState, wsHub, wsHandler, workerPool)

	server := &http.Server{
		Addr:         config.Conf.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Msgf("Starting server on http://localhost%s", config.Conf.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(fmt.Sprintf("ListenAndServe failed: %v", err))
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown initiated...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Graceful shutdown failed: %v\n", err)
	} else {
		fmt.Println("Server exited gracefully.")
	}

	wsHub.Close()
	workerPool.Wait()
}
