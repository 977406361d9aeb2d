package state

import (
	"context"
	"sync"

	"taskboard/app/logging"
	"taskboard/app/models"
)

// TaskAPI is the part of the backend the task machine calls.
type TaskAPI interface {
	ListTasks(ctx context.Context, username string) ([]models.Task, error)
	CreateTask(ctx context.Context, in models.TaskInput) (models.Task, error)
	UpdateTask(ctx context.Context, id int, in models.TaskInput) (models.Task, error)
	DeleteTask(ctx context.Context, id int) error
}

// TasksState is a snapshot of the task machine. Error is only set by Fetch.
type TasksState struct {
	Tasks   []models.Task
	Loading bool
	Error   string
}

// Tasks holds the in-memory task list of the current user.
type Tasks struct {
	api TaskAPI
	log *logging.Logger

	mu sync.Mutex
	st TasksState
}

// NewTasks returns an empty task machine.
func NewTasks(api TaskAPI, log *logging.Logger) *Tasks {
	return &Tasks{api: api, log: log, st: TasksState{Tasks: []models.Task{}}}
}

// State returns a snapshot; the task slice is a copy.
func (t *Tasks) State() TasksState {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := t.st
	st.Tasks = make([]models.Task, len(t.st.Tasks))
	copy(st.Tasks, t.st.Tasks)
	return st
}

// Fetch replaces the list with the tasks of username. On failure the list is
// kept and the error recorded.
func (t *Tasks) Fetch(ctx context.Context, username string) error {
	t.mu.Lock()
	t.st.Loading = true
	t.mu.Unlock()

	tasks, err := t.api.ListTasks(ctx, username)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.st.Loading = false
	if err != nil {
		t.st.Error = rejectionMessage(err, "Failed to fetch tasks")
		return err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	t.st.Tasks = tasks
	t.st.Error = ""
	return nil
}

// Add creates a task and appends the stored record. A failure is logged and
// returned but leaves the state untouched.
func (t *Tasks) Add(ctx context.Context, in models.TaskInput) (models.Task, error) {
	task, err := t.api.CreateTask(ctx, in)
	if err != nil {
		t.log.Warnf("add task %q: %v", in.Title, err)
		return models.Task{}, err
	}
	t.mu.Lock()
	t.st.Tasks = append(t.st.Tasks, task)
	t.mu.Unlock()
	return task, nil
}

// Update replaces the task with the returned record's id. If the list has no
// such task, the list is left as is.
func (t *Tasks) Update(ctx context.Context, task models.Task) (models.Task, error) {
	updated, err := t.api.UpdateTask(ctx, task.ID, task.Input())
	if err != nil {
		t.log.Warnf("update task %d: %v", task.ID, err)
		return models.Task{}, err
	}
	t.mu.Lock()
	for i := range t.st.Tasks {
		if t.st.Tasks[i].ID == updated.ID {
			t.st.Tasks[i] = updated
			break
		}
	}
	t.mu.Unlock()
	return updated, nil
}

// Delete removes task id from the backend and then from the list.
func (t *Tasks) Delete(ctx context.Context, id int) error {
	if err := t.api.DeleteTask(ctx, id); err != nil {
		t.log.Warnf("delete task %d: %v", id, err)
		return err
	}
	t.mu.Lock()
	kept := make([]models.Task, 0, len(t.st.Tasks))
	for _, task := range t.st.Tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	t.st.Tasks = kept
	t.mu.Unlock()
	return nil
}
