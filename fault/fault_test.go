package fault

import (
	"fmt"
	"testing"
)

func TestCategory(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		want  string
		fatal bool
	}{
		{"Memory", fmt.Errorf("grow ships: %w", ErrNoMemory), "memory", true},
		{"Index", fmt.Errorf("fuel 7: %w", ErrBadIndex), "index", false},
		{"Lookup", fmt.Errorf("cannon at 3,4: %w", ErrNotFound), "lookup", false},
		{"Bug", fmt.Errorf("target damage: %w", ErrInconsistent), "bug", false},
		{"Player", fmt.Errorf("score 9: %w", ErrUnknownPlayer), "player", false},
		{"Other", fmt.Errorf("plain"), "other", false},
	}
	for _, tt := range cases {
		if got := Category(tt.err); got != tt.want {
			t.Errorf("%v: category %q want %q", tt.name, got, tt.want)
		}
		if got := Fatal(tt.err); got != tt.fatal {
			t.Errorf("%v: fatal %v want %v", tt.name, got, tt.fatal)
		}
	}
}

func TestReporterFunc(t *testing.T) {
	var got []error
	r := ReporterFunc(func(err error) { got = append(got, err) })
	r.Report(nil)
	r.Report(ErrBadIndex)
	if len(got) != 1 || got[0] != ErrBadIndex {
		t.Fatalf("got %v", got)
	}
}
