package routes

import (
	"net/http"

	"taskboard/app/controllers"
	"taskboard/app/logging"
	"taskboard/app/middleware"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all routes for the application.
func RegisterRoutes(router *mux.Router, authController *controllers.AuthController, taskController *controllers.TaskController) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	router.HandleFunc("/register", authController.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", authController.Login).Methods(http.MethodPost)
	router.HandleFunc("/tasks", taskController.GetTasks).Methods(http.MethodGet)
	router.HandleFunc("/tasks", taskController.CreateTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{taskID}", taskController.UpdateTask).Methods(http.MethodPut)
	router.HandleFunc("/tasks/{taskID}", taskController.DeleteTask).Methods(http.MethodDelete)
}

// NewRouter builds the full mock backend handler with its middleware.
func NewRouter(authController *controllers.AuthController, taskController *controllers.TaskController, log *logging.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestID, middleware.AccessLog(log))
	RegisterRoutes(router, authController, taskController)
	return router
}
