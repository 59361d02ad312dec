package main

import (
	"reflect"
	"slices"
	"testing"

	"xpclient/viewport"
)

func TestLocalFeedFirstFrame(t *testing.T) {
	st, rep := newTestState(t)
	f := newLocalFeed(st.Map, st.Index, "Nick", 2)
	dispatchAll(t, st, f.frame(feedInput{}, st.Self.View())...)

	if len(*rep) != 0 {
		t.Fatalf("unexpected reports %v", *rep)
	}
	if !st.FrameComplete() || st.Loops() != 1 {
		t.Fatalf("complete %v loops %d", st.FrameComplete(), st.Loops())
	}
	self, ok := st.Roster.Self()
	if !ok || self.Name != "Nick" || self.ID != feedSelfID {
		t.Fatalf("self %+v ok %v", self, ok)
	}
	if st.Roster.Len() != 3 {
		t.Fatalf("roster has %d players, want 3", st.Roster.Len())
	}
	if !st.Self.Visible() {
		t.Fatalf("own ship not visible")
	}
	if got := st.Messages.History(); !slices.Contains(got, "Welcome to Box, Nick.") {
		t.Fatalf("messages %q", got)
	}
}

func TestLocalFeedDeterministic(t *testing.T) {
	st, _ := newTestState(t)
	a := newLocalFeed(st.Map, st.Index, "Nick", 3)
	b := newLocalFeed(st.Map, st.Index, "Nick", 3)
	view := viewport.Vec{X: 200, Y: 100}
	for i := 0; i < 50; i++ {
		in := feedInput{thrust: i%2 == 0, fire: true}
		if fa, fb := a.frame(in, view), b.frame(in, view); !reflect.DeepEqual(fa, fb) {
			t.Fatalf("frame %d differs", i)
		}
	}
}

func TestLocalFeedShotsInView(t *testing.T) {
	st, _ := newTestState(t)
	f := newLocalFeed(st.Map, st.Index, "Nick", 0)
	seen := false
	for i := 0; i < 6; i++ {
		dispatchAll(t, st, f.frame(feedInput{fire: true}, st.Self.View())...)
		for k := range st.Store.FastShots {
			if st.Store.FastShots[k].Len() > 0 {
				seen = true
			}
		}
	}
	if !seen {
		t.Fatalf("no fast shots stored while firing")
	}
}

func TestLocalFeedRefuels(t *testing.T) {
	st, _ := newTestState(t)
	f := newLocalFeed(st.Map, st.Index, "Nick", 0)
	x, y := st.Map.XY(st.Index.Fuels[0].Pos)
	f.self.x, f.self.y = blockCentre(x+1, y)
	before := st.Index.Fuels[0].Fuel
	dispatchAll(t, st, f.frame(feedInput{}, st.Self.View())...)
	if st.Index.Fuels[0].Fuel >= before {
		t.Fatalf("station fuel %d, was %d", st.Index.Fuels[0].Fuel, before)
	}
	if st.Store.Refuels.Len() != 1 {
		t.Fatalf("refuels %d", st.Store.Refuels.Len())
	}
}
