package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"taskboard/app/logging"
	"taskboard/app/models"
	"taskboard/app/services"

	"github.com/gorilla/mux"
)

// TaskController handles HTTP requests for tasks.
type TaskController struct {
	Service *services.TaskService
	Log     *logging.Logger
}

// NewTaskController creates a new TaskController.
func NewTaskController(service *services.TaskService, log *logging.Logger) *TaskController {
	return &TaskController{Service: service, Log: log}
}

// GetTasks handles GET /tasks?username=.
func (c *TaskController) GetTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := c.Service.GetTasks(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		c.internalError(w, "list tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// CreateTask handles POST /tasks.
func (c *TaskController) CreateTask(w http.ResponseWriter, r *http.Request) {
	var in models.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	task, err := c.Service.CreateTask(r.Context(), in)
	if err != nil {
		c.internalError(w, "create task", err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// UpdateTask handles PUT /tasks/{taskID}.
func (c *TaskController) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	var in models.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	task, err := c.Service.UpdateTask(r.Context(), id, in)
	if err != nil {
		c.internalError(w, "update task", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{taskID}.
func (c *TaskController) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteTask(r.Context(), id); err != nil {
		c.internalError(w, "delete task", err)
		return
	}
	writeMessage(w, http.StatusOK, "Task deleted")
}

func (c *TaskController) internalError(w http.ResponseWriter, op string, err error) {
	c.Log.Errorf("%s: %v", op, err)
	writeMessage(w, http.StatusInternalServerError, err.Error())
}

func taskID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["taskID"])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid task id")
		return 0, false
	}
	return id, true
}
