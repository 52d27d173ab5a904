// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the per-user converter state: current selections
// and the history log.
//
// # Key Types
//
//   - Session: selections, conversion entry point and a history.Log
//   - Store: sessions keyed by id, created on first access and swept when idle
//
// # Usage
//
//	s, err := session.New(engine, session.Options{Category: units.Length, Value: 1})
//	res, err := s.Convert()   // records history unless it repeats
//	res, err = s.Swap()       // exchange units and convert again
//	for _, e := range s.Recent() {
//	    fmt.Println(e)
//	}
package session
