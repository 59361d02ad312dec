// Package xpmap holds the static block map received at setup time, the
// position index over its fuel stations, cannons, targets, bases and
// checkpoints, and the two rendering passes (dots and blue bits) that recode
// cells in place.
package xpmap

import (
	"fmt"

	"xpclient/fault"
)

// maxCells caps the size of a map grid. A larger setup is treated like a
// failed allocation.
const maxCells = 1 << 24

// Map is a column-major block grid: the cell at (x, y) lives at x*Height+y.
// Y grows upward.
type Map struct {
	Name   string
	Author string
	Width  int
	Height int
	Wrap   bool
	Data   []byte
}

// New allocates an all-space map.
func New(width, height int, wrap bool) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("map size %dx%d", width, height)
	}
	if width > maxCells/height {
		return nil, fmt.Errorf("map size %dx%d: %w", width, height, fault.ErrNoMemory)
	}
	return &Map{
		Width:  width,
		Height: height,
		Wrap:   wrap,
		Data:   make([]byte, width*height),
	}, nil
}

// Pos linearizes a block coordinate.
func (m *Map) Pos(x, y int) int {
	return x*m.Height + y
}

// XY splits a linear position back into block coordinates.
func (m *Map) XY(pos int) (int, int) {
	return pos / m.Height, pos % m.Height
}

// Inside reports whether (x, y) is on the grid.
func (m *Map) Inside(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns the cell code at (x, y), or Space when off the grid.
func (m *Map) At(x, y int) byte {
	if !m.Inside(x, y) {
		return Space
	}
	return m.Data[m.Pos(x, y)]
}

// Set stores a cell code. Off-grid writes are ignored.
func (m *Map) Set(x, y int, c byte) {
	if m.Inside(x, y) {
		m.Data[m.Pos(x, y)] = c
	}
}

// PixelWidth is the map width in world pixels.
func (m *Map) PixelWidth() int {
	return m.Width * BlockSize
}

// PixelHeight is the map height in world pixels.
func (m *Map) PixelHeight() int {
	return m.Height * BlockSize
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	c := *m
	c.Data = append([]byte(nil), m.Data...)
	return &c
}

// WrapCoord folds a block coordinate onto [0, n) when wrapping. The boolean
// is false when the coordinate is off the grid and the map does not wrap.
func WrapCoord(v, n int, wrap bool) (int, bool) {
	if v >= 0 && v < n {
		return v, true
	}
	if !wrap || n <= 0 {
		return v, false
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v, true
}
