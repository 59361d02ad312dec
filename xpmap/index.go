package xpmap

import (
	"cmp"
	"fmt"
	"slices"

	"xpclient/fault"
)

const (
	// MaxStationFuel is the fuel a station holds when the map is loaded.
	MaxStationFuel = 500 << 8
	// TargetDamage is the damage a fresh target can absorb.
	TargetDamage = 250 << 8

	// maxIndexed caps every index category.
	maxIndexed = 1 << 16
)

type FuelStation struct {
	Pos  int
	Fuel int
}

type Cannon struct {
	Pos      int
	Dir      Dir
	DeadTime int
	Dot      bool
}

type Target struct {
	Pos      int
	Team     int
	DeadTime int
	Damage   int
}

// Base is a home base. ID is -1 while nobody owns it.
type Base struct {
	Pos  int
	Dir  Dir
	Team int
	ID   int
}

// Check is a race checkpoint. Letter is its 0-based ordinal (A = 0).
type Check struct {
	Pos    int
	Letter int
}

// Index keeps one slice per category, each sorted by Pos. An entity's
// ordinal is its slice index and never changes after Build.
type Index struct {
	width, height int

	Fuels   []FuelStation
	Cannons []Cannon
	Targets []Target
	Bases   []Base
	Checks  []Check // sorted by Pos

	checkByLetter [MaxChecks]int // Pos per letter, -1 when absent
	numChecks     int
}

// Build scans the map in increasing position order and fills the index.
// Scanning x-major keeps every category sorted by Pos without a sort.
func Build(m *Map) (*Index, error) {
	idx := &Index{width: m.Width, height: m.Height}
	for i := range idx.checkByLetter {
		idx.checkByLetter[i] = -1
	}

	counts := map[Family]int{}
	for _, c := range m.Data {
		counts[Classify(c)]++
	}
	for _, fam := range []Family{FamilyFuel, FamilyCannon, FamilyTarget, FamilyBase, FamilyCheck} {
		if n := counts[fam]; n > maxIndexed {
			return nil, fmt.Errorf("index %d entries of family %d: %w", n, fam, fault.ErrNoMemory)
		}
	}
	idx.Fuels = make([]FuelStation, 0, counts[FamilyFuel])
	idx.Cannons = make([]Cannon, 0, counts[FamilyCannon])
	idx.Targets = make([]Target, 0, counts[FamilyTarget])
	idx.Bases = make([]Base, 0, counts[FamilyBase])
	idx.Checks = make([]Check, 0, counts[FamilyCheck])

	for pos, c := range m.Data {
		if c&BlueBit != 0 {
			c = unblue(c)
		}
		switch Classify(c) {
		case FamilyFuel:
			idx.Fuels = append(idx.Fuels, FuelStation{Pos: pos, Fuel: MaxStationFuel})
		case FamilyCannon:
			idx.Cannons = append(idx.Cannons, Cannon{Pos: pos, Dir: cannonDir(c)})
		case FamilyTarget:
			idx.Targets = append(idx.Targets, Target{
				Pos:    pos,
				Team:   int(c) - TargetLowest,
				Damage: TargetDamage,
			})
		case FamilyBase:
			dir, team := baseDirTeam(c)
			idx.Bases = append(idx.Bases, Base{Pos: pos, Dir: dir, Team: team, ID: -1})
		case FamilyCheck:
			letter := int(c) - CheckLowest
			idx.Checks = append(idx.Checks, Check{Pos: pos, Letter: letter})
			if idx.checkByLetter[letter] < 0 {
				idx.numChecks++
			}
			idx.checkByLetter[letter] = pos
		}
	}
	return idx, nil
}

// NumChecks is the number of distinct checkpoint letters on the map.
func (idx *Index) NumChecks() int {
	return idx.numChecks
}

// pos linearizes (x, y); off-grid coordinates give -1, which matches nothing.
func (idx *Index) pos(x, y int) int {
	if x < 0 || x >= idx.width || y < 0 || y >= idx.height {
		return -1
	}
	return x*idx.height + y
}

// find binary searches a Pos-sorted slice and returns the ordinal, or -1.
func find[T any](items []T, pos int, key func(*T) int) int {
	i, ok := slices.BinarySearchFunc(items, pos, func(e T, p int) int {
		return cmp.Compare(key(&e), p)
	})
	if !ok {
		return -1
	}
	return i
}

// FuelAt returns the ordinal and station at block (x, y).
func (idx *Index) FuelAt(x, y int) (int, *FuelStation, error) {
	i := find(idx.Fuels, idx.pos(x, y), func(f *FuelStation) int { return f.Pos })
	if i < 0 {
		return -1, nil, fmt.Errorf("fuel station at %d,%d: %w", x, y, fault.ErrNotFound)
	}
	return i, &idx.Fuels[i], nil
}

// CannonAt returns the ordinal and cannon at block (x, y).
func (idx *Index) CannonAt(x, y int) (int, *Cannon, error) {
	i := find(idx.Cannons, idx.pos(x, y), func(c *Cannon) int { return c.Pos })
	if i < 0 {
		return -1, nil, fmt.Errorf("cannon at %d,%d: %w", x, y, fault.ErrNotFound)
	}
	return i, &idx.Cannons[i], nil
}

// TargetAt returns the ordinal and target at block (x, y).
func (idx *Index) TargetAt(x, y int) (int, *Target, error) {
	i := find(idx.Targets, idx.pos(x, y), func(t *Target) int { return t.Pos })
	if i < 0 {
		return -1, nil, fmt.Errorf("target at %d,%d: %w", x, y, fault.ErrNotFound)
	}
	return i, &idx.Targets[i], nil
}

// BaseAt returns the ordinal and base at block (x, y).
func (idx *Index) BaseAt(x, y int) (int, *Base, error) {
	i := find(idx.Bases, idx.pos(x, y), func(b *Base) int { return b.Pos })
	if i < 0 {
		return -1, nil, fmt.Errorf("base at %d,%d: %w", x, y, fault.ErrNotFound)
	}
	return i, &idx.Bases[i], nil
}

// CheckAt returns the checkpoint at block (x, y).
func (idx *Index) CheckAt(x, y int) (*Check, error) {
	i := find(idx.Checks, idx.pos(x, y), func(c *Check) int { return c.Pos })
	if i < 0 {
		return nil, fmt.Errorf("checkpoint at %d,%d: %w", x, y, fault.ErrNotFound)
	}
	return &idx.Checks[i], nil
}

// FuelLevel returns the fuel of the station at (x, y), or -1.
func (idx *Index) FuelLevel(x, y int) (int, error) {
	_, f, err := idx.FuelAt(x, y)
	if err != nil {
		return -1, err
	}
	return f.Fuel, nil
}

// CannonDeadTime returns the dead time and dot flag of the cannon at (x, y).
func (idx *Index) CannonDeadTime(x, y int) (int, bool, error) {
	_, c, err := idx.CannonAt(x, y)
	if err != nil {
		return -1, false, err
	}
	return c.DeadTime, c.Dot, nil
}

// TargetAlive returns the dead time and damage of the target at (x, y).
func (idx *Index) TargetAlive(x, y int) (int, int, error) {
	_, t, err := idx.TargetAt(x, y)
	if err != nil {
		return -1, 0, err
	}
	return t.DeadTime, t.Damage, nil
}

// BaseInfo returns the owner id and team of the base at (x, y).
func (idx *Index) BaseInfo(x, y int) (int, int, error) {
	_, b, err := idx.BaseAt(x, y)
	if err != nil {
		return -1, -1, err
	}
	return b.ID, b.Team, nil
}

// CheckIndexByPos returns the letter of the checkpoint at (x, y).
func (idx *Index) CheckIndexByPos(x, y int) (int, error) {
	c, err := idx.CheckAt(x, y)
	if err != nil {
		return -1, err
	}
	return c.Letter, nil
}

// CheckPosByIndex returns the block of checkpoint letter ind.
func (idx *Index) CheckPosByIndex(ind int) (int, int, error) {
	if ind < 0 || ind >= MaxChecks || idx.checkByLetter[ind] < 0 {
		return -1, -1, fmt.Errorf("checkpoint index %d: %w", ind, fault.ErrBadIndex)
	}
	pos := idx.checkByLetter[ind]
	return pos / idx.height, pos % idx.height, nil
}

// SetFuel updates the fuel of station ind.
func (idx *Index) SetFuel(ind, fuel int) error {
	if ind < 0 || ind >= len(idx.Fuels) {
		return fmt.Errorf("fuel station index %d of %d: %w", ind, len(idx.Fuels), fault.ErrBadIndex)
	}
	idx.Fuels[ind].Fuel = fuel
	return nil
}

// SetCannonDeadTime updates the dead time of cannon ind.
func (idx *Index) SetCannonDeadTime(ind, deadTime int) error {
	if ind < 0 || ind >= len(idx.Cannons) {
		return fmt.Errorf("cannon index %d of %d: %w", ind, len(idx.Cannons), fault.ErrBadIndex)
	}
	idx.Cannons[ind].DeadTime = deadTime
	return nil
}

// SetTarget updates target ind. A live target with damage out of range is
// still stored, but the returned error carries fault.ErrInconsistent.
func (idx *Index) SetTarget(ind, deadTime, damage int) error {
	if ind < 0 || ind >= len(idx.Targets) {
		return fmt.Errorf("target index %d of %d: %w", ind, len(idx.Targets), fault.ErrBadIndex)
	}
	t := &idx.Targets[ind]
	t.DeadTime = deadTime
	t.Damage = damage
	if deadTime == 0 && (damage < 0 || damage > TargetDamage) {
		return fmt.Errorf("target %d, dead %d, damage %d: %w", ind, deadTime, damage, fault.ErrInconsistent)
	}
	return nil
}

// SetBaseOwner gives base ind to player id. A player owns at most one base,
// so any other base held by id is cleared first.
func (idx *Index) SetBaseOwner(id, ind int) error {
	if ind < 0 || ind >= len(idx.Bases) {
		return fmt.Errorf("homebase index %d of %d: %w", ind, len(idx.Bases), fault.ErrBadIndex)
	}
	for i := range idx.Bases {
		if idx.Bases[i].ID == id {
			idx.Bases[i].ID = -1
		}
	}
	idx.Bases[ind].ID = id
	return nil
}

// ClearOwner releases any base owned by id.
func (idx *Index) ClearOwner(id int) {
	for i := range idx.Bases {
		if idx.Bases[i].ID == id {
			idx.Bases[i].ID = -1
		}
	}
}
