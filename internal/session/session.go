// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the per-user converter state: current selections
// and the history log.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/convertxpert/internal/convert"
	"github.com/jeranaias/convertxpert/internal/history"
	"github.com/jeranaias/convertxpert/internal/logging"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options holds the selections a new session starts with.
type Options struct {
	Category string
	// From and To are optional; empty picks the first and second unit
	From  string
	To    string
	Value float64
	// RecentCount is how many entries Recent returns (default 5)
	RecentCount int
	// Clock replaces time.Now in tests
	Clock func() time.Time
}

// DefaultRecentCount is the number of history entries shown to the user.
const DefaultRecentCount = 5

// =============================================================================
// SESSION
// =============================================================================

// Session is the state of one user of the converter.
type Session struct {
	mu sync.Mutex

	id           string
	startTime    time.Time
	lastActivity time.Time
	clock        func() time.Time

	engine   *convert.Engine
	category string
	from     string
	to       string
	value    float64

	log         *history.Log
	recentCount int
}

// New creates a session with the given starting selections.
func New(engine *convert.Engine, opts Options) (*Session, error) {
	if engine == nil {
		engine = convert.New(nil)
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	recent := opts.RecentCount
	if recent <= 0 {
		recent = DefaultRecentCount
	}

	now := clock()
	s := &Session{
		id:           uuid.New().String(),
		startTime:    now,
		lastActivity: now,
		clock:        clock,
		engine:       engine,
		value:        opts.Value,
		log:          history.New(),
		recentCount:  recent,
	}

	if err := s.selectCategory(opts.Category); err != nil {
		return nil, err
	}
	if opts.From != "" {
		if err := s.SetFrom(opts.From); err != nil {
			return nil, err
		}
	}
	if opts.To != "" {
		if err := s.SetTo(opts.To); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// StartTime returns when the session was created.
func (s *Session) StartTime() time.Time { return s.startTime }

// Engine returns the conversion engine used by the session.
func (s *Session) Engine() *convert.Engine { return s.engine }

// =============================================================================
// SELECTIONS
// =============================================================================

// Selection is a snapshot of the current inputs.
type Selection struct {
	Category string
	From     string
	To       string
	Value    float64
}

// Selection returns the current inputs.
func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Selection{Category: s.category, From: s.from, To: s.to, Value: s.value}
}

// SetCategory switches category and resets both units to the category's
// defaults. Selecting the current category is a no-op.
func (s *Session) SetCategory(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if name == s.category {
		return nil
	}
	return s.selectCategory(name)
}

func (s *Session) selectCategory(name string) error {
	names, err := s.engine.Registry().Units(name)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("category %s has no units", name)
	}
	s.category = name
	s.from = names[0]
	s.to = names[0]
	if len(names) > 1 {
		s.to = names[1]
	}
	return nil
}

// SetFrom selects the source unit.
func (s *Session) SetFrom(unit string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.checkUnit(unit); err != nil {
		return err
	}
	s.from = unit
	return nil
}

// SetTo selects the destination unit.
func (s *Session) SetTo(unit string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.checkUnit(unit); err != nil {
		return err
	}
	s.to = unit
	return nil
}

func (s *Session) checkUnit(unit string) error {
	cat, err := s.engine.Registry().Category(s.category)
	if err != nil {
		return err
	}
	_, err = cat.Unit(unit)
	return err
}

// SetValue sets the input value.
func (s *Session) SetValue(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.value = v
}

// =============================================================================
// CONVERSION
// =============================================================================

// Convert converts the current selection and records it in the history
// unless it repeats the last entry. A failed conversion leaves the history
// untouched.
func (s *Session) Convert() (convert.Result, error) {
	s.mu.Lock()
	sel := Selection{Category: s.category, From: s.from, To: s.to, Value: s.value}
	s.touch()
	s.mu.Unlock()

	log := logging.For("session").WithField("session_id", s.id)

	res, err := s.engine.Convert(sel.Category, sel.From, sel.To, sel.Value)
	if err != nil {
		log.WithError(err).Warn("conversion rejected")
		return convert.Result{}, err
	}

	added := s.log.Record(history.Entry{
		Input:    sel.Value,
		From:     sel.From,
		Output:   res.Display,
		To:       sel.To,
		Category: sel.Category,
	})
	log.WithFields(logrus.Fields{
		"category": sel.Category,
		"from":     sel.From,
		"to":       sel.To,
		"input":    sel.Value,
		"output":   res.Display,
		"recorded": added,
	}).Debug("converted")

	return res, nil
}

// Swap exchanges the source and destination units and converts again.
func (s *Session) Swap() (convert.Result, error) {
	s.mu.Lock()
	s.from, s.to = convert.Swap(s.from, s.to)
	s.mu.Unlock()
	return s.Convert()
}

// =============================================================================
// HISTORY
// =============================================================================

// Recent returns the entries shown to the user, oldest first.
func (s *Session) Recent() []history.Entry {
	return s.log.Recent(s.recentCount)
}

// History returns the session's history log.
func (s *Session) History() *history.Log {
	return s.log
}

// =============================================================================
// ACTIVITY
// =============================================================================

// touch records activity. Caller must hold s.mu.
func (s *Session) touch() {
	s.lastActivity = s.clock()
}

// IdleTime returns how long since the last activity.
func (s *Session) IdleTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock().Sub(s.lastActivity)
}

// IsExpired reports whether the session has been idle for at least timeout.
// A zero timeout never expires.
func (s *Session) IsExpired(timeout time.Duration) bool {
	if timeout <= 0 {
		return false
	}
	return s.IdleTime() >= timeout
}
