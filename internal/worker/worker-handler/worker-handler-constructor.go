package worker_handler

import (
	"context"

	dm_service "github.com/Alpha4Coders/AlphaChat-V2/internal/use-case/dm-case"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/websocket"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/redis/go-redis/v9"
)

type WorkerHandler struct {
	Ctx   context.Context
	Redis *redis.Client
	Ws    *websocket.Hub
	DM    dm_service.DMServiceContract
}

func NewWorkerHandler(ctx context.Context, appState *state.AppState, ws *websocket.Hub) *WorkerHandler {
	return &WorkerHandler{
		Ctx:   ctx,
		Redis: appState.Redis,
		Ws:    ws,
		DM:    dm_service.NewDMService(appState),
	}
}
