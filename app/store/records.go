package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"taskboard/app/models"
)

// Records exposes the users and tasks collections. Every save overwrites
// the whole collection; there is no transaction across the two.
type Records struct {
	kv KV
}

// NewRecords returns a Records view over kv.
func NewRecords(kv KV) *Records {
	return &Records{kv: kv}
}

// LoadUsers returns the stored users, or an empty slice if none were saved yet.
func (r *Records) LoadUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.load(ctx, UsersKey, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// SaveUsers replaces the stored users.
func (r *Records) SaveUsers(ctx context.Context, users []models.User) error {
	return r.save(ctx, UsersKey, users)
}

// LoadTasks returns the stored tasks, or an empty slice if none were saved yet.
func (r *Records) LoadTasks(ctx context.Context) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.load(ctx, TasksKey, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// SaveTasks replaces the stored tasks.
func (r *Records) SaveTasks(ctx context.Context, tasks []models.Task) error {
	return r.save(ctx, TasksKey, tasks)
}

func (r *Records) load(ctx context.Context, key string, v any) error {
	data, err := r.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *Records) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := r.kv.Put(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
