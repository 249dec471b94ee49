package routers

import (
	"github.com/Alpha4Coders/AlphaChat-V2/internal/handlers"
	user_handler "github.com/Alpha4Coders/AlphaChat-V2/internal/handlers/user-handler"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/middleware"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/go-chi/chi/v5"
)

func UserRouter(r chi.Router, appState *state.AppState) {
	userHandler := user_handler.NewUserHandler(appState)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(appState.JwtSecret, appState.Redis))

		protected.Get("/api/v1/users", handlers.WrapHandler(userHandler.GetUsers))
		protected.Get("/api/v1/users/me", handlers.WrapHandler(userHandler.GetMe))
		protected.Get("/api/v1/users/{userId}", handlers.WrapHandler(userHandler.GetUser))
		protected.Patch("/api/v1/users/me/status", handlers.WrapHandler(userHandler.UpdateStatus))
	})
}
