package xpmap

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"xpclient/fault"
)

const testMap = `mapName: Test Ring
mapAuthor: nobody
edgeWrap: yes
mapData: \multiline: EndOfMapdata
xxxxxxxxxx
x#  r   Ax
x  q w  !x
x 0 xx 1 x
x  a s   x
x  f  d Bx
x  #   c x
xxxxxxxxxx
EndOfMapdata
`

func loadTestMap(t *testing.T) *Map {
	t.Helper()
	m, err := Parse(strings.NewReader(testMap))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return m
}

func TestParse(t *testing.T) {
	m := loadTestMap(t)
	if m.Width != 10 || m.Height != 8 || !m.Wrap {
		t.Fatalf("got %dx%d wrap=%v", m.Width, m.Height, m.Wrap)
	}
	if m.Name != "Test Ring" {
		t.Fatalf("name %q", m.Name)
	}
	// First text row is the top of the map.
	if c := m.At(1, 6); c != Fuel {
		t.Fatalf("fuel at 1,6 got %d", c)
	}
	if c := m.At(8, 6); c != CheckLowest {
		t.Fatalf("check A at 8,6 got %d", c)
	}
	if c := m.At(2, 4); c != BaseUp {
		t.Fatalf("base team 0 at 2,4 got %d", c)
	}
	if c := m.At(7, 4); c != BaseUp+1 {
		t.Fatalf("base team 1 at 7,4 got %d", c)
	}
}

func TestIndexSortedAndLookup(t *testing.T) {
	m := loadTestMap(t)
	idx, err := Build(m)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(idx.Fuels) != 2 || len(idx.Cannons) != 4 || len(idx.Targets) != 1 || len(idx.Bases) != 2 {
		t.Fatalf("counts fuel=%d cannon=%d target=%d base=%d",
			len(idx.Fuels), len(idx.Cannons), len(idx.Targets), len(idx.Bases))
	}
	sorted := func(name string, n int, pos func(int) int) {
		for i := 1; i < n; i++ {
			if pos(i-1) >= pos(i) {
				t.Fatalf("%s not sorted at %d", name, i)
			}
		}
	}
	sorted("fuels", len(idx.Fuels), func(i int) int { return idx.Fuels[i].Pos })
	sorted("cannons", len(idx.Cannons), func(i int) int { return idx.Cannons[i].Pos })
	sorted("bases", len(idx.Bases), func(i int) int { return idx.Bases[i].Pos })
	sorted("checks", len(idx.Checks), func(i int) int { return idx.Checks[i].Pos })

	for x := -1; x <= m.Width; x++ {
		for y := -1; y <= m.Height; y++ {
			_, f, err := idx.FuelAt(x, y)
			want := m.Inside(x, y) && m.At(x, y) == Fuel
			if want {
				if err != nil || f.Pos != m.Pos(x, y) {
					t.Fatalf("fuel at %d,%d: %v", x, y, err)
				}
			} else if !errors.Is(err, fault.ErrNotFound) {
				t.Fatalf("fuel at %d,%d: want not found, got %v", x, y, err)
			}
		}
	}

	_, c, err := idx.CannonAt(4, 6)
	if err != nil || c.Dir != DirUp {
		t.Fatalf("cannon at 4,6: %+v %v", c, err)
	}
	if idx.NumChecks() != 2 {
		t.Fatalf("checks %d", idx.NumChecks())
	}
	if x, y, err := idx.CheckPosByIndex(1); err != nil || x != 8 || y != 2 {
		t.Fatalf("check B at %d,%d %v", x, y, err)
	}
	if l, err := idx.CheckIndexByPos(8, 6); err != nil || l != 0 {
		t.Fatalf("check at 8,6 letter %d %v", l, err)
	}
	if _, _, err := idx.CheckPosByIndex(5); !errors.Is(err, fault.ErrBadIndex) {
		t.Fatalf("missing letter: %v", err)
	}
}

func TestIndexUpdates(t *testing.T) {
	m := loadTestMap(t)
	idx, err := Build(m)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"FuelOK", idx.SetFuel(1, 42), nil},
		{"FuelNegative", idx.SetFuel(-1, 42), fault.ErrBadIndex},
		{"FuelPastEnd", idx.SetFuel(2, 42), fault.ErrBadIndex},
		{"CannonOK", idx.SetCannonDeadTime(0, 10), nil},
		{"CannonPastEnd", idx.SetCannonDeadTime(4, 10), fault.ErrBadIndex},
		{"TargetOK", idx.SetTarget(0, 0, 100), nil},
		{"TargetBadDamage", idx.SetTarget(0, 0, TargetDamage+1), fault.ErrInconsistent},
		{"TargetPastEnd", idx.SetTarget(1, 0, 0), fault.ErrBadIndex},
		{"BaseBad", idx.SetBaseOwner(3, 9), fault.ErrBadIndex},
	}
	for _, tt := range cases {
		if tt.want == nil && tt.err != nil {
			t.Errorf("%v: unexpected %v", tt.name, tt.err)
		}
		if tt.want != nil && !errors.Is(tt.err, tt.want) {
			t.Errorf("%v: got %v want %v", tt.name, tt.err, tt.want)
		}
	}
	if idx.Fuels[1].Fuel != 42 {
		t.Fatalf("fuel not stored")
	}
	// The inconsistent update is still applied.
	if idx.Targets[0].Damage != TargetDamage+1 {
		t.Fatalf("target damage %d", idx.Targets[0].Damage)
	}
}

func TestBaseOwnerUnique(t *testing.T) {
	m := loadTestMap(t)
	idx, err := Build(m)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := idx.SetBaseOwner(7, 0); err != nil {
		t.Fatal(err)
	}
	if err := idx.SetBaseOwner(7, 1); err != nil {
		t.Fatal(err)
	}
	if idx.Bases[0].ID != -1 || idx.Bases[1].ID != 7 {
		t.Fatalf("bases %+v", idx.Bases)
	}
	x, y := m.XY(idx.Bases[1].Pos)
	if id, team, err := idx.BaseInfo(x, y); err != nil || id != 7 || team != 1 {
		t.Fatalf("base info id=%d team=%d %v", id, team, err)
	}
}

func TestDotRoundTrip(t *testing.T) {
	for _, wrap := range []bool{false, true} {
		for _, decor := range []bool{false, true} {
			m := loadTestMap(t)
			m.Wrap = wrap
			m.Set(5, 1, DecorFilled)
			orig := append([]byte(nil), m.Data...)
			idx, _ := Build(m)
			m.ComputeDots(idx, DotOptions{Distance: 3, PointSize: 2, ShowDecor: decor})
			if bytes.Equal(orig, m.Data) {
				t.Fatalf("wrap=%v decor=%v: no dots placed", wrap, decor)
			}
			m.RestoreDots()
			if !bytes.Equal(orig, m.Data) {
				t.Fatalf("wrap=%v decor=%v: restore mismatch", wrap, decor)
			}
		}
	}
}

func TestDotsSeamsAndStride(t *testing.T) {
	m, _ := New(7, 7, true)
	m.Set(3, 3, Filled)
	m.Set(0, 5, CannonUp)
	m.Set(4, 4, CannonDown)
	m.Set(6, 6, DecorFilled)
	idx, _ := Build(m)
	m.ComputeDots(idx, DotOptions{Distance: 3, PointSize: 1})

	if m.At(4, 0) != SpaceDot || m.At(0, 4) != SpaceDot {
		t.Fatalf("seams not dotted")
	}
	if m.At(3, 3) != Filled {
		t.Fatalf("wall dotted")
	}
	if m.At(6, 6) != DecorDotFilled {
		t.Fatalf("hidden decor not dotted: %d", m.At(6, 6))
	}
	if m.At(1, 1) != Space {
		t.Fatalf("off-stride cell dotted")
	}
	if !idx.Cannons[0].Dot || idx.Cannons[1].Dot {
		t.Fatalf("cannon dots %+v", idx.Cannons)
	}

	// Point size zero keeps only the seams.
	m.ComputeDots(idx, DotOptions{Distance: 3, PointSize: 0})
	if m.At(6, 6) != DecorFilled || m.At(4, 0) != SpaceDot {
		t.Fatalf("point size zero: %d %d", m.At(6, 6), m.At(4, 0))
	}
}

func TestBlueEdges(t *testing.T) {
	m, _ := New(5, 5, false)
	m.Set(1, 1, Filled)
	m.Set(2, 1, Filled)
	m.Set(3, 1, RecRU)
	m.Set(0, 4, Fuel)
	m.OptimizeBlue()

	if got := m.At(1, 1); got != BlueBit|BlueLeft|BlueUp|BlueDown {
		t.Fatalf("left block %#x", got)
	}
	// The corner's left side is open, so the block next to it shows an edge.
	if got := m.At(2, 1); got != BlueBit|BlueUp|BlueDown|BlueRight {
		t.Fatalf("middle block %#x", got)
	}
	if got := m.At(3, 1); got != BlueBit|BlueOpen|BlueRight|BlueUp {
		t.Fatalf("corner %#x", got)
	}
	// Without wrap the map border always counts as open.
	if got := m.At(0, 4); got != BlueBit|BlueFuel|blueEdges {
		t.Fatalf("fuel %#x", got)
	}
	if Classify(m.At(0, 4)) != FamilyFuel {
		t.Fatalf("blue fuel lost its family")
	}
}

func TestBlueWrap(t *testing.T) {
	m, _ := New(4, 3, true)
	for y := 0; y < 3; y++ {
		m.Set(0, y, Filled)
		m.Set(3, y, Filled)
	}
	m.OptimizeBlue()
	// Column 0 and column 3 touch across the seam and every column is full
	// height, so no horizontal or vertical edge faces space on the seam side.
	if got := m.At(0, 1); got != BlueBit|BlueRight {
		t.Fatalf("wrapped left column %#x", got)
	}
	if got := m.At(3, 1); got != BlueBit|BlueLeft {
		t.Fatalf("wrapped right column %#x", got)
	}
}

func TestBlueIdempotent(t *testing.T) {
	m := loadTestMap(t)
	canonical := append([]byte(nil), m.Data...)
	m.OptimizeBlue()
	once := append([]byte(nil), m.Data...)
	m.OptimizeBlue()
	if !bytes.Equal(once, m.Data) {
		t.Fatalf("second pass changed the map")
	}
	// Incremental pass over a region that hangs off every edge.
	m.ComputeBlue(-3, -2, 6, 5)
	m.ComputeBlue(7, 5, 6, 6)
	if !bytes.Equal(once, m.Data) {
		t.Fatalf("region pass changed the map")
	}
	m.Canonicalize()
	if !bytes.Equal(canonical, m.Data) {
		t.Fatalf("canonicalize mismatch")
	}
}

func TestPassesCompose(t *testing.T) {
	m := loadTestMap(t)
	canonical := append([]byte(nil), m.Data...)
	idx, _ := Build(m)
	m.OptimizeBlue()
	m.ComputeDots(idx, DotOptions{Distance: 2, PointSize: 1})
	m.OptimizeBlue()
	m.Canonicalize()
	if !bytes.Equal(canonical, m.Data) {
		t.Fatalf("dot and blue passes interfere")
	}
}

func TestNewTooLarge(t *testing.T) {
	if _, err := New(1<<13, 1<<13, false); !fault.Fatal(err) {
		t.Fatalf("want fatal allocation error, got %v", err)
	}
	if _, err := New(0, 5, false); err == nil || fault.Fatal(err) {
		t.Fatalf("zero width: %v", err)
	}
}

func TestCellFeedback(t *testing.T) {
	m := loadTestMap(t)
	idx, err := Build(m)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if fuel, err := idx.FuelLevel(1, 6); err != nil || fuel != MaxStationFuel {
		t.Fatalf("fuel level %d, %v", fuel, err)
	}
	ind, _, err := idx.CannonAt(4, 6)
	if err != nil {
		t.Fatalf("cannon lookup: %v", err)
	}
	if err := idx.SetCannonDeadTime(ind, 33); err != nil {
		t.Fatalf("set dead time: %v", err)
	}
	if dead, _, err := idx.CannonDeadTime(4, 6); err != nil || dead != 33 {
		t.Fatalf("cannon dead time %d, %v", dead, err)
	}
	tind, _, err := idx.TargetAt(8, 5)
	if err != nil {
		t.Fatalf("target lookup: %v", err)
	}
	if err := idx.SetTarget(tind, 5, 30); err != nil {
		t.Fatalf("set target: %v", err)
	}
	if dead, damage, err := idx.TargetAlive(8, 5); err != nil || dead != 5 || damage != 30 {
		t.Fatalf("target %d/%d, %v", dead, damage, err)
	}
	if _, _, err := idx.TargetAlive(0, 0); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("miss got %v", err)
	}
}

func TestWrapCoord(t *testing.T) {
	cases := []struct {
		name   string
		v, n   int
		wrap   bool
		want   int
		wantOK bool
	}{
		{"Inside", 3, 10, false, 3, true},
		{"BelowWraps", -1, 10, true, 9, true},
		{"FarAboveWraps", 25, 10, true, 5, true},
		{"OffMapNoWrap", 10, 10, false, 10, false},
		{"EmptyAxis", 4, 0, true, 4, false},
	}
	for _, tt := range cases {
		if v, ok := WrapCoord(tt.v, tt.n, tt.wrap); v != tt.want || ok != tt.wantOK {
			t.Errorf("%v: got %d %v", tt.name, v, ok)
		}
	}
}
