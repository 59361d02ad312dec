package frame

import (
	"fmt"

	"xpclient/fault"
)

// DebrisTypes is the number of debris sub-types (color and size classes).
// Fast shots use twice as many: one set per team relation.
const DebrisTypes = 8 * 4 * 4

// Store owns every per-frame buffer. Readers may iterate a buffer only after
// the frame's ingestion finished and until the next Reset.
type Store struct {
	Refuels    Buffer[Refuel]
	Connectors Buffer[Connector]
	Lasers     Buffer[Laser]
	Missiles   Buffer[Missile]
	Balls      Buffer[Ball]
	Ships      Buffer[Ship]
	Mines      Buffer[Mine]
	Items      Buffer[Item]
	ECMs       Buffer[ECM]
	Trans      Buffer[Trans]
	Paused     Buffer[Paused]
	Appearing  Buffer[Appearing]
	Radar      Buffer[Radar]
	VCannons   Buffer[VCannon]
	VFuels     Buffer[VFuel]
	VBases     Buffer[VBase]
	VDecors    Buffer[VDecor]
	Wreckage   Buffer[Wreckage]
	Asteroids  Buffer[Asteroid]
	Wormholes  Buffer[Wormhole]

	Debris    [DebrisTypes]Buffer[Debris]
	FastShots [DebrisTypes * 2]Buffer[Debris]
}

// NewStore returns a store whose buffers each hold at most limit records;
// zero selects the default.
func NewStore(limit int) *Store {
	s := &Store{
		Refuels:    NewBuffer[Refuel](limit),
		Connectors: NewBuffer[Connector](limit),
		Lasers:     NewBuffer[Laser](limit),
		Missiles:   NewBuffer[Missile](limit),
		Balls:      NewBuffer[Ball](limit),
		Ships:      NewBuffer[Ship](limit),
		Mines:      NewBuffer[Mine](limit),
		Items:      NewBuffer[Item](limit),
		ECMs:       NewBuffer[ECM](limit),
		Trans:      NewBuffer[Trans](limit),
		Paused:     NewBuffer[Paused](limit),
		Appearing:  NewBuffer[Appearing](limit),
		Radar:      NewBuffer[Radar](limit),
		VCannons:   NewBuffer[VCannon](limit),
		VFuels:     NewBuffer[VFuel](limit),
		VBases:     NewBuffer[VBase](limit),
		VDecors:    NewBuffer[VDecor](limit),
		Wreckage:   NewBuffer[Wreckage](limit),
		Asteroids:  NewBuffer[Asteroid](limit),
		Wormholes:  NewBuffer[Wormhole](limit),
	}
	for i := range s.Debris {
		s.Debris[i] = NewBuffer[Debris](limit)
	}
	for i := range s.FastShots {
		s.FastShots[i] = NewBuffer[Debris](limit)
	}
	return s
}

// Reset empties every buffer at the start of a frame.
func (s *Store) Reset() {
	s.Refuels.Reset()
	s.Connectors.Reset()
	s.Lasers.Reset()
	s.Missiles.Reset()
	s.Balls.Reset()
	s.Ships.Reset()
	s.Mines.Reset()
	s.Items.Reset()
	s.ECMs.Reset()
	s.Trans.Reset()
	s.Paused.Reset()
	s.Appearing.Reset()
	s.Radar.Reset()
	s.VCannons.Reset()
	s.VFuels.Reset()
	s.VBases.Reset()
	s.VDecors.Reset()
	s.Wreckage.Reset()
	s.Asteroids.Reset()
	s.Wormholes.Reset()
	for i := range s.Debris {
		s.Debris[i].Reset()
	}
	for i := range s.FastShots {
		s.FastShots[i].Reset()
	}
}

// ReplaceDebris replaces the particles of debris sub-type kind with the
// first n entries of buf. A non-positive n leaves the buffer untouched and
// reports false.
func (s *Store) ReplaceDebris(kind int, buf []Debris, n int) (bool, error) {
	if kind < 0 || kind >= len(s.Debris) {
		return false, fmt.Errorf("debris type %d: %w", kind, fault.ErrBadIndex)
	}
	return replaceBlob(&s.Debris[kind], buf, n)
}

// ReplaceFastShots does the same for fast shot sub-type kind.
func (s *Store) ReplaceFastShots(kind int, buf []Debris, n int) (bool, error) {
	if kind < 0 || kind >= len(s.FastShots) {
		return false, fmt.Errorf("fastshot type %d: %w", kind, fault.ErrBadIndex)
	}
	return replaceBlob(&s.FastShots[kind], buf, n)
}

func replaceBlob(b *Buffer[Debris], buf []Debris, n int) (bool, error) {
	if n <= 0 {
		return false, nil
	}
	if n > len(buf) {
		return false, fmt.Errorf("blob of %d particles holds only %d: %w", n, len(buf), fault.ErrBadIndex)
	}
	if err := b.Replace(buf[:n]); err != nil {
		return false, err
	}
	return true, nil
}

// Bytes is the memory retained by all buffers.
func (s *Store) Bytes() int {
	n := s.Refuels.Bytes() + s.Connectors.Bytes() + s.Lasers.Bytes() +
		s.Missiles.Bytes() + s.Balls.Bytes() + s.Ships.Bytes() +
		s.Mines.Bytes() + s.Items.Bytes() + s.ECMs.Bytes() +
		s.Trans.Bytes() + s.Paused.Bytes() + s.Appearing.Bytes() +
		s.Radar.Bytes() + s.VCannons.Bytes() + s.VFuels.Bytes() +
		s.VBases.Bytes() + s.VDecors.Bytes() + s.Wreckage.Bytes() +
		s.Asteroids.Bytes() + s.Wormholes.Bytes()
	for i := range s.Debris {
		n += s.Debris[i].Bytes()
	}
	for i := range s.FastShots {
		n += s.FastShots[i].Bytes()
	}
	return n
}
