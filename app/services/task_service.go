package services

import (
	"context"
	"sync"

	"taskboard/app/models"
	"taskboard/app/store"
)

// TaskService handles task-related operations against the record store.
type TaskService struct {
	records *store.Records

	// mu serializes the load-modify-save cycles on the tasks collection
	// and guards nextID.
	mu     sync.Mutex
	nextID int
}

// NewTaskService creates a TaskService and seeds its id counter from the stored tasks.
func NewTaskService(ctx context.Context, records *store.Records) (*TaskService, error) {
	s := &TaskService{records: records}
	if err := s.Reset(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset recomputes the id counter as max(stored ids)+1.
func (s *TaskService) Reset(ctx context.Context) error {
	tasks, err := s.records.LoadTasks(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = nextTaskID(tasks)
	return nil
}

func nextTaskID(tasks []models.Task) int {
	highest := 0
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}

// GetTasks returns the tasks owned by username.
func (s *TaskService) GetTasks(ctx context.Context, username string) ([]models.Task, error) {
	tasks, err := s.records.LoadTasks(ctx)
	if err != nil {
		return nil, err
	}
	owned := []models.Task{}
	for _, t := range tasks {
		if t.Username == username {
			owned = append(owned, t)
		}
	}
	return owned, nil
}

// CreateTask stores a new task under the next id and returns it.
func (s *TaskService) CreateTask(ctx context.Context, in models.TaskInput) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.records.LoadTasks(ctx)
	if err != nil {
		return models.Task{}, err
	}
	task := in.WithID(s.nextID)
	if err := s.records.SaveTasks(ctx, append(tasks, task)); err != nil {
		return models.Task{}, err
	}
	s.nextID++
	return task, nil
}

// UpdateTask replaces every field of task id. An unknown id leaves the store
// untouched, and the would-be record is still returned.
func (s *TaskService) UpdateTask(ctx context.Context, id int, in models.TaskInput) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.records.LoadTasks(ctx)
	if err != nil {
		return models.Task{}, err
	}
	updated := in.WithID(id)
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i] = updated
		}
	}
	if err := s.records.SaveTasks(ctx, tasks); err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

// DeleteTask removes task id. Ownership is not checked and an unknown id is not an error.
func (s *TaskService) DeleteTask(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.records.LoadTasks(ctx)
	if err != nil {
		return err
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return s.records.SaveTasks(ctx, kept)
}
