package routes

import (
	"context"

	"taskboard/app/controllers"
	"taskboard/app/logging"
	"taskboard/app/services"
	"taskboard/app/store"

	"github.com/gorilla/mux"
)

// NewBackend wires services and controllers over kv and returns the router
// serving the mock REST API.
func NewBackend(ctx context.Context, kv store.KV, log *logging.Logger) (*mux.Router, error) {
	records := store.NewRecords(kv)
	taskService, err := services.NewTaskService(ctx, records)
	if err != nil {
		return nil, err
	}
	authService := services.NewAuthService(records)
	return NewRouter(
		controllers.NewAuthController(authService, log),
		controllers.NewTaskController(taskService, log),
		log,
	), nil
}
