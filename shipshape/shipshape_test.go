package shipshape

import "testing"

func TestParse(t *testing.T) {
	s, err := Parse("(NM: Arrow)(SH: 14,0 -8,7 -5,0 -8,-7)(GU: 14,0)(EN: -6,0)(LG: 2,5)(AU: someone)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Name != "Arrow" || s.Author != "someone" {
		t.Fatalf("name=%q author=%q", s.Name, s.Author)
	}
	if len(s.Hull) != 4 || s.Hull[1] != (Point{-8, 7}) {
		t.Fatalf("hull %+v", s.Hull)
	}
	if s.Engine != (Point{-6, 0}) || len(s.Mounts["LG"]) != 1 {
		t.Fatalf("engine %+v mounts %+v", s.Engine, s.Mounts)
	}
}

func TestConvertFallsBack(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"Empty", "", false},
		{"TooFewPoints", "(SH: 1,1 2,2)", true},
		{"OutOfRange", "(SH: 40,0 -9,8 -9,-8)", true},
		{"Garbage", "(SH: a,b c,d e,f)", true},
		{"Unterminated", "(SH: 15,0 -9,8 -9,-8", true},
	}
	for _, tt := range cases {
		s, err := Convert(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%v: err=%v", tt.name, err)
		}
		if s == nil || len(s.Hull) != 3 || s.Hull[0] != (Point{15, 0}) {
			t.Errorf("%v: not the default ship: %+v", tt.name, s)
		}
	}
}

func TestHullAt(t *testing.T) {
	s := Default()
	if got := s.HullAt(0)[0]; got != (Point{15, 0}) {
		t.Fatalf("heading 0 nose %+v", got)
	}
	if got := s.HullAt(Res / 4)[0]; got != (Point{0, 15}) {
		t.Fatalf("quarter turn nose %+v", got)
	}
	if got := s.HullAt(-Res / 4)[0]; got != (Point{0, -15}) {
		t.Fatalf("negative heading nose %+v", got)
	}
}

func TestStringRoundTrip(t *testing.T) {
	s := Default()
	again, err := Parse(s.String())
	if err != nil {
		t.Fatalf("reparse %q: %v", s.String(), err)
	}
	if again.String() != s.String() {
		t.Fatalf("%q != %q", again.String(), s.String())
	}
}
