// Package store holds the local record store: a small key-value abstraction with
// several backends, and typed views over the users, tasks and session keys.
package store

import (
	"context"
	"errors"
)

// Keys under which records are persisted.
const (
	UsersKey   = "mock_users"
	TasksKey   = "mock_tasks"
	SessionKey = "user"
)

// ErrNotFound is returned by KV.Get when the key has never been written or was deleted.
var ErrNotFound = errors.New("store: key not found")

// KV is a durable key-value store. Each Put replaces the whole value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
