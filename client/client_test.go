package client

import (
	"errors"
	"strings"
	"testing"

	"xpclient/fault"
	"xpclient/frame"
	"xpclient/roster"
	"xpclient/viewport"
	"xpclient/xpmap"
)

const smallMap = `mapName: Box
edgeWrap: yes
mapData: \multiline: End
xxxxxxxx
x#   A x
x 0  r x
x  !  1x
xxxxxxxx
End
`

type collector struct {
	errs []error
}

func (c *collector) Report(err error) { c.errs = append(c.errs, err) }

func (c *collector) has(target error) bool {
	for _, err := range c.errs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func newSession(t *testing.T, cfg Config) (*Session, *collector) {
	t.Helper()
	m, err := xpmap.Parse(strings.NewReader(smallMap))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Nick == "" {
		cfg.Nick = "Nick"
	}
	if cfg.View == (viewport.Vec{}) {
		cfg.View = viewport.Vec{X: 200, Y: 100}
	}
	rep := &collector{}
	s := Connect(cfg, rep)
	if err := s.Setup(m); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return s, rep
}

func TestNickJoinsAndLeaves(t *testing.T) {
	s, _ := newSession(t, Config{})
	st := s.State
	if err := st.HandlePlayer(3, 0, roster.CharPlaying, "Nick", "nick", "localhost", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	self, ok := st.Roster.Self()
	if !ok || self.ID != 3 || st.Roster.Others()[0].ID != 3 {
		t.Fatalf("Nick is not self at index 0")
	}
	if err := st.HandleLeave(3); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if _, ok := st.Roster.Self(); ok || st.Roster.Len() != 0 {
		t.Fatalf("roster not empty after leave")
	}
	if got := st.Messages.History(); len(got) != 1 || got[0] != "Nick left this world." {
		t.Fatalf("messages %v", got)
	}
}

func TestSetupRunsBothPasses(t *testing.T) {
	s, _ := newSession(t, Config{Dots: xpmap.DotOptions{Distance: 2, PointSize: 2}})
	m := s.State.Map
	if m.At(4, 2) != xpmap.SpaceDot {
		t.Fatalf("stride cell not dotted: %d", m.At(4, 2))
	}
	if m.At(3, 2) != xpmap.Space {
		t.Fatalf("off-stride cell dotted: %d", m.At(3, 2))
	}
	if m.At(1, 3)&xpmap.BlueBit == 0 {
		t.Fatalf("fuel not blue coded: %#x", m.At(1, 3))
	}
	if s.State.Index.NumChecks() != 1 || len(s.State.Index.Bases) != 2 {
		t.Fatalf("index: %d checks %d bases", s.State.Index.NumChecks(), len(s.State.Index.Bases))
	}
}

func TestRecoverableErrorsAreReported(t *testing.T) {
	s, rep := newSession(t, Config{})
	st := s.State
	if err := st.HandleCannon(99, 5); err != nil {
		t.Fatalf("bad cannon index was fatal: %v", err)
	}
	if !rep.has(fault.ErrBadIndex) {
		t.Fatalf("bad index not reported: %v", rep.errs)
	}
	if err := st.HandleTarget(0, 0, xpmap.TargetDamage+1); err != nil {
		t.Fatalf("inconsistent target was fatal: %v", err)
	}
	if !rep.has(fault.ErrInconsistent) {
		t.Fatalf("inconsistent target not reported")
	}
	if st.Index.Targets[0].Damage != xpmap.TargetDamage+1 {
		t.Fatalf("inconsistent target update not applied")
	}
	if err := st.HandleScore(7, 1, 1, ' ', 0); err != nil {
		t.Fatalf("unknown player was fatal: %v", err)
	}
	if !rep.has(fault.ErrUnknownPlayer) {
		t.Fatalf("unknown player not reported")
	}
	if err := st.HandleDebris(0, nil, 0); err != nil {
		t.Fatalf("empty debris: %v", err)
	}
	if !s.Connected() {
		t.Fatalf("session closed on recoverable errors")
	}
}

func TestStoreOverflowEndsSession(t *testing.T) {
	s, rep := newSession(t, Config{ObjectLimit: 2})
	err := s.Feed(func(st *State) error {
		if err := st.HandleStart(1); err != nil {
			return err
		}
		for i := 0; i < 3; i++ {
			if err := st.HandleShip(frame.Ship{ID: i}); err != nil {
				return err
			}
		}
		return st.HandleEnd(1)
	})
	if !fault.Fatal(err) {
		t.Fatalf("want fatal error, got %v", err)
	}
	if s.Connected() || s.State != nil {
		t.Fatalf("session survived a fatal error")
	}
	if !rep.has(fault.ErrNoMemory) {
		t.Fatalf("fatal error not reported")
	}
	if err := s.Setup(&xpmap.Map{}); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("setup after teardown: %v", err)
	}
}

func TestSetupFailureIsFatal(t *testing.T) {
	m, err := xpmap.New(300, 300, false)
	if err != nil {
		t.Fatal(err)
	}
	for i := range m.Data {
		m.Data[i] = xpmap.Fuel
	}
	s := Connect(Config{}, nil)
	err = s.Setup(m)
	if !fault.Fatal(err) {
		t.Fatalf("want fatal setup error, got %v", err)
	}
	if s.Connected() {
		t.Fatalf("session still connected")
	}
}

func TestFrameRanksAfterDebounce(t *testing.T) {
	s, _ := newSession(t, Config{ScoreDebounce: 2})
	st := s.State
	st.HandlePlayer(1, 0, roster.CharPlaying, "Bob", "bob", "", "")
	st.HandlePlayer(2, 0, roster.CharPlaying, "Nick", "nick", "", "")
	st.HandleScore(1, 10, 0, roster.CharPlaying, 0)
	st.HandleScore(2, 20, 0, roster.CharPlaying, 0)

	st.HandleStart(10)
	st.HandleEnd(10)
	if len(st.Ranking.Entries) != 0 {
		t.Fatalf("ranked before the debounce ran out")
	}
	st.HandleStart(11)
	st.HandleEnd(11)
	if len(st.Ranking.Entries) != 2 || st.Ranking.Entries[0].Label != "Nick" {
		t.Fatalf("ranking %+v", st.Ranking.Entries)
	}
	if !st.FrameComplete() {
		t.Fatalf("frame not complete after end")
	}
}

func TestSelfVisibleFromShip(t *testing.T) {
	s, _ := newSession(t, Config{})
	st := s.State
	st.HandlePlayer(4, 0, roster.CharPlaying, "Nick", "", "", "")
	st.HandleStart(1)
	st.HandleSelf(viewport.Update{Pos: viewport.Vec{X: 50, Y: 50}, FuelSum: 10})
	st.HandleShip(frame.Ship{ID: 4, X: 50, Y: 50})
	if !st.Self.Visible() {
		t.Fatalf("own ship not marked visible")
	}
	st.HandleSelf(viewport.Update{Pos: viewport.Vec{X: 50, Y: 50}, FuelSum: 20})
	if !st.Self.FuelNotify() {
		t.Fatalf("refuel not notified")
	}

	st.HandleEyes(9)
	st.HandleShip(frame.Ship{ID: 4})
	if st.Self.Visible() {
		t.Fatalf("own ship counted while spectating")
	}
	st.HandleShip(frame.Ship{ID: 9})
	if !st.Self.Visible() {
		t.Fatalf("spectated ship not marked visible")
	}
}

func TestLeaveReleasesBase(t *testing.T) {
	s, _ := newSession(t, Config{})
	st := s.State
	st.HandlePlayer(5, 1, roster.CharPlaying, "Eve", "", "", "")
	if err := st.HandleBase(5, 1); err != nil {
		t.Fatal(err)
	}
	if err := st.HandleBase(5, 0); err != nil {
		t.Fatal(err)
	}
	if st.Index.Bases[1].ID != -1 || st.Index.Bases[0].ID != 5 {
		t.Fatalf("player owns two bases: %+v", st.Index.Bases)
	}
	st.HandleLeave(5)
	if st.Index.Bases[0].ID != -1 {
		t.Fatalf("base kept after leave")
	}
}

func TestLookupMissReported(t *testing.T) {
	cases := []struct {
		name string
		look func(*State) bool
		hit  bool
	}{
		{"FuelHit", func(st *State) bool { _, ok := st.FuelLevel(1, 3); return ok }, true},
		{"FuelMiss", func(st *State) bool { _, ok := st.FuelLevel(2, 3); return ok }, false},
		{"CannonHit", func(st *State) bool { _, _, ok := st.CannonDeadTime(5, 2); return ok }, true},
		{"CannonMiss", func(st *State) bool { _, _, ok := st.CannonDeadTime(0, 0); return ok }, false},
		{"TargetMiss", func(st *State) bool { _, _, ok := st.TargetAlive(0, 0); return ok }, false},
		{"BaseMiss", func(st *State) bool { _, _, ok := st.BaseInfo(0, 0); return ok }, false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			s, rep := newSession(t, Config{})
			if ok := tt.look(s.State); ok != tt.hit {
				t.Fatalf("found %v, want %v", ok, tt.hit)
			}
			if reported := rep.has(fault.ErrNotFound); reported == tt.hit {
				t.Fatalf("miss reported %v for hit %v: %v", reported, tt.hit, rep.errs)
			}
			if !s.Connected() {
				t.Fatalf("lookup miss ended the session")
			}
		})
	}
}
