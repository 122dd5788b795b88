package service

import (
	"sync/atomic"
	"time"
)

type State struct {
	ready     atomic.Bool
	startedAt time.Time

	lastPollUnix atomic.Int64 // unix seconds of the last successful signal poll
	suggestions  atomic.Int64 // size of the latest suggestion snapshot
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

func (s *State) TouchTick(t time.Time) { s.lastPollUnix.Store(t.Unix()) }
func (s *State) LastTick() time.Time {
	u := s.lastPollUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) SetSuggestions(n int) { s.suggestions.Store(int64(n)) }
func (s *State) Suggestions() int     { return int(s.suggestions.Load()) }

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
