// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"
	"time"

	"github.com/jeranaias/convertxpert/internal/convert"
	"github.com/jeranaias/convertxpert/internal/logging"
)

// Store keeps one Session per id. Sessions never share history.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session

	engine  *convert.Engine
	opts    Options
	timeout time.Duration
}

// NewStore creates a store whose sessions start with opts and expire after
// timeout of inactivity (0 disables expiry).
func NewStore(engine *convert.Engine, opts Options, timeout time.Duration) *Store {
	if engine == nil {
		engine = convert.New(nil)
	}
	return &Store{
		sessions: make(map[string]*Session),
		engine:   engine,
		opts:     opts,
		timeout:  timeout,
	}
}

// Create starts a new session.
func (st *Store) Create() (*Session, error) {
	s, err := New(st.engine, st.opts)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	st.sessions[s.ID()] = s
	st.mu.Unlock()

	logging.For("session").WithField("session_id", s.ID()).Info("session started")
	return s, nil
}

// Get returns a live session. Expired sessions are ended and reported as
// missing.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()
	if !ok {
		return nil, false
	}
	if s.IsExpired(st.timeout) {
		st.End(id)
		return nil, false
	}
	return s, true
}

// GetOrCreate returns the session for id, creating a new one on first
// access or after expiry. The second result is true when a session was
// created; callers should use the returned session's ID from then on.
func (st *Store) GetOrCreate(id string) (*Session, bool, error) {
	if id != "" {
		if s, ok := st.Get(id); ok {
			return s, false, nil
		}
	}
	s, err := st.Create()
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// End discards a session and its history.
func (st *Store) End(id string) bool {
	st.mu.Lock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if ok {
		logging.For("session").WithField("session_id", id).Info("session ended")
	}
	return ok
}

// Sweep ends every expired session and returns how many were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	var expired []string
	for id, s := range st.sessions {
		if s.IsExpired(st.timeout) {
			expired = append(expired, id)
		}
	}
	st.mu.Unlock()

	for _, id := range expired {
		st.End(id)
	}
	return len(expired)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
