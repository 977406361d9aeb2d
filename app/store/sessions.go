package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"taskboard/app/models"
)

// Sessions persists the current session so a restart can restore it.
type Sessions struct {
	kv KV
}

// NewSessions returns a Sessions view over kv.
func NewSessions(kv KV) *Sessions {
	return &Sessions{kv: kv}
}

// Load returns the persisted session, or nil when nobody is logged in.
func (s *Sessions) Load(ctx context.Context) (*models.Session, error) {
	data, err := s.kv.Get(ctx, SessionKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess *models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if sess == nil || sess.Username == "" {
		return nil, nil
	}
	return sess, nil
}

// Save persists sess as the current session.
func (s *Sessions) Save(ctx context.Context, sess models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, SessionKey, data)
}

// Clear forgets the current session.
func (s *Sessions) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, SessionKey)
}
