// Package client holds everything the client knows about a running game:
// the static map and its index, the objects of the current frame, the
// players, and the local ship. Messages from the server are applied through
// the Handle methods; the renderer reads the result after HandleEnd.
package client

import (
	"fmt"

	"xpclient/fault"
	"xpclient/frame"
	"xpclient/roster"
	"xpclient/viewport"
	"xpclient/xpmap"
)

// Config carries the per-session choices that shape the state.
type Config struct {
	Nick string
	View viewport.Vec
	Dots xpmap.DotOptions
	Mode roster.Mode
	// ScoreDebounce is how many frames a score change waits before the
	// score list is ranked again.
	ScoreDebounce int
	// ObjectLimit caps each frame buffer; zero uses the default.
	ObjectLimit int
}

// DefaultScoreDebounce is used when Config.ScoreDebounce is not positive.
const DefaultScoreDebounce = 2

// State is the client's view of one connection. It is created by
// Session.Setup and must only be used from the goroutine that feeds it.
type State struct {
	Map      *xpmap.Map
	Index    *xpmap.Index
	Store    *frame.Store
	Roster   *roster.Roster
	Self     *viewport.Self
	Scores   frame.ScoreObjects
	Messages *frame.Messages
	Ranking  roster.Ranking

	cfg      Config
	reporter fault.Reporter

	loops    int64
	inFrame  bool
	complete bool
	err      error
}

// NewState indexes m and prepares it for drawing. A failure to index the
// map is fatal and carries fault.ErrNoMemory.
func NewState(m *xpmap.Map, cfg Config, rep fault.Reporter) (*State, error) {
	if rep == nil {
		rep = fault.Discard
	}
	if cfg.ScoreDebounce <= 0 {
		cfg.ScoreDebounce = DefaultScoreDebounce
	}
	idx, err := xpmap.Build(m)
	if err != nil {
		return nil, fmt.Errorf("map setup: %w", err)
	}
	m.ComputeDots(idx, cfg.Dots)
	m.OptimizeBlue()

	mapSize := viewport.Vec{X: m.PixelWidth(), Y: m.PixelHeight()}
	s := &State{
		Map:      m,
		Index:    idx,
		Store:    frame.NewStore(cfg.ObjectLimit),
		Roster:   roster.New(cfg.Nick),
		Self:     viewport.New(cfg.View, mapSize, m.Wrap),
		Messages: frame.NewMessages(),
		Ranking:  roster.Ranking{Best: -1},
		cfg:      cfg,
		reporter: rep,
	}
	return s, nil
}

// Mode returns the ranking rules in effect.
func (s *State) Mode() roster.Mode { return s.cfg.Mode }

// DotOptions returns the dot pass settings in effect.
func (s *State) DotOptions() xpmap.DotOptions { return s.cfg.Dots }

// SetDotOptions recomputes the dot pass, e.g. after the decoration setting
// changed.
func (s *State) SetDotOptions(opt xpmap.DotOptions) {
	s.cfg.Dots = opt
	s.Map.ComputeDots(s.Index, opt)
}

// Loops is the server frame number of the last HandleStart.
func (s *State) Loops() int64 { return s.loops }

// FrameComplete reports whether the stores hold a whole frame, i.e. the
// last HandleStart was matched by HandleEnd.
func (s *State) FrameComplete() bool { return s.complete }

// Err returns the fatal error that stopped ingestion, if any.
func (s *State) Err() error { return s.err }

// check forwards err to the reporter. Fatal errors are latched and returned;
// anything else is swallowed after reporting.
func (s *State) check(err error) error {
	if err == nil {
		return nil
	}
	s.reporter.Report(err)
	if fault.Fatal(err) {
		if s.err == nil {
			s.err = err
		}
		return err
	}
	return nil
}

// Close releases the per-connection data.
func (s *State) Close() {
	s.Store.Reset()
	s.Roster.Clear()
	s.Scores.Clear()
	s.Messages.Clear()
	s.Ranking = roster.Ranking{Best: -1}
	s.complete = false
}
