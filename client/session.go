package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/ksuid"

	"xpclient/fault"
	"xpclient/xpmap"
)

// ErrNotConnected is returned by Setup after Cleanup or before Connect.
var ErrNotConnected = errors.New("not connected")

// Session is the lifecycle of one connection: Connect, Setup once the map
// is known, then frames until Cleanup.
type Session struct {
	ID      ksuid.KSUID
	Started time.Time
	State   *State

	cfg       Config
	reporter  fault.Reporter
	connected bool
}

// Connect starts a session with a fresh id.
func Connect(cfg Config, rep fault.Reporter) *Session {
	if rep == nil {
		rep = fault.Discard
	}
	return &Session{
		ID:        ksuid.New(),
		Started:   time.Now(),
		cfg:       cfg,
		reporter:  rep,
		connected: true,
	}
}

// Connected reports whether the session is still usable.
func (s *Session) Connected() bool {
	return s.connected
}

// Setup builds the client state for map m. A fatal failure tears the
// session down and is returned; the caller must not feed frames after it.
func (s *Session) Setup(m *xpmap.Map) error {
	if !s.connected {
		return ErrNotConnected
	}
	st, err := NewState(m, s.cfg, s.reporter)
	if err != nil {
		s.reporter.Report(err)
		s.Cleanup()
		return fmt.Errorf("session %s: %w", s.ID, err)
	}
	if s.State != nil {
		s.State.Close()
	}
	s.State = st
	return nil
}

// Feed runs fn against the state and tears the session down if it reports
// a fatal error.
func (s *Session) Feed(fn func(*State) error) error {
	if !s.connected || s.State == nil {
		return ErrNotConnected
	}
	if err := fn(s.State); err != nil {
		if fault.Fatal(err) {
			s.Cleanup()
		}
		return err
	}
	return nil
}

// Uptime is how long the session has been connected.
func (s *Session) Uptime() time.Duration {
	return time.Since(s.Started)
}

// Cleanup releases the state. It is safe to call more than once.
func (s *Session) Cleanup() {
	if s.State != nil {
		s.State.Close()
		s.State = nil
	}
	s.connected = false
}
