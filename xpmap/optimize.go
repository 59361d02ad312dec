package xpmap

// DotOptions controls where open space is marked with a dot.
type DotOptions struct {
	// Distance is the stride in blocks between dots. Zero disables the grid.
	Distance int
	// PointSize is the rendered dot size. Zero disables the grid as well.
	PointSize int
	// ShowDecor keeps decorations drawn as decorations. When it is off,
	// decoration blocks look like open space and get dots too.
	ShowDecor bool
}

// blueNeighbour holds, for every cell code, the sides on which the block is
// solid. Codes at or above BlueBit map to the value of their canonical code,
// so neighbours can be consulted whether or not they were recoded yet.
var blueNeighbour [256]byte

func init() {
	full := byte(BlueLeft | BlueUp | BlueRight | BlueDown)
	blueNeighbour[Filled] = full
	blueNeighbour[FilledNoDraw] = full
	blueNeighbour[Fuel] = full
	blueNeighbour[RecRU] = BlueRight | BlueUp
	blueNeighbour[RecRD] = BlueRight | BlueDown
	blueNeighbour[RecLU] = BlueLeft | BlueUp
	blueNeighbour[RecLD] = BlueLeft | BlueDown
	for i := BlueBit; i < len(blueNeighbour); i++ {
		blueNeighbour[i] = blueNeighbour[unblue(byte(i))]
	}
}

// unblue returns the canonical code of a blue-annotated cell.
func unblue(c byte) byte {
	switch {
	case c&BlueFuel == BlueFuel:
		return Fuel
	case c&BlueOpen != 0:
		if c&BlueBelow != 0 {
			return RecLD
		}
		return RecRU
	case c&BlueClosed != 0:
		if c&BlueBelow != 0 {
			return RecRD
		}
		return RecLU
	}
	return Filled
}

// undot returns the canonical code of a dotted cell.
func undot(c byte) byte {
	switch {
	case c == SpaceDot:
		return Space
	case c >= DecorDotFilled && c <= DecorDotLD:
		return c - DecorDotFilled + DecorFilled
	}
	return c
}

// RestoreDots turns every dotted cell back into its canonical code.
func (m *Map) RestoreDots() {
	for i, c := range m.Data {
		m.Data[i] = undot(c)
	}
}

// ComputeDots restores previous dots and marks open cells again: every cell
// on the wrap seams (x == 0 or y == 0) when the map wraps, and every
// Distance-th cell in both directions. Cannon dot flags follow the same rule.
func (m *Map) ComputeDots(idx *Index, opt DotOptions) {
	m.RestoreDots()

	var dot [256]byte
	dot[Space] = SpaceDot
	if !opt.ShowDecor {
		for c := DecorFilled; c <= DecorLD; c++ {
			dot[c] = byte(c - DecorFilled + DecorDotFilled)
		}
	}
	mark := func(pos int) {
		if d := dot[m.Data[pos]]; d != 0 {
			m.Data[pos] = d
		}
	}

	start := 0
	if m.Wrap {
		for x := 0; x < m.Width; x++ {
			mark(m.Pos(x, 0))
		}
		for y := 0; y < m.Height; y++ {
			mark(m.Pos(0, y))
		}
		start = opt.Distance
	}

	if opt.Distance <= 0 || opt.PointSize <= 0 {
		return
	}
	for x := start; x < m.Width; x += opt.Distance {
		for y := start; y < m.Height; y += opt.Distance {
			mark(m.Pos(x, y))
		}
	}
	if idx == nil {
		return
	}
	for i := range idx.Cannons {
		c := &idx.Cannons[i]
		x, y := m.XY(c.Pos)
		switch {
		case m.Wrap && (x == 0 || y == 0):
			c.Dot = true
		case x%opt.Distance == 0 && y%opt.Distance == 0:
			c.Dot = true
		default:
			c.Dot = false
		}
	}
}

// RestoreBlue turns blue-annotated walls in the region (grown by one block on
// every side) back into canonical codes.
func (m *Map) RestoreBlue(startX, startY, width, height int) {
	m.eachBlueCell(startX, startY, width, height, func(pos int) {
		if c := m.Data[pos]; c&BlueBit != 0 {
			m.Data[pos] = unblue(c)
		}
	})
}

// ComputeBlue annotates the walls in the region with the edges that face
// open space. Coordinates may be negative or past the map edge; on a
// wrapping map they fold around, otherwise those cells are skipped.
func (m *Map) ComputeBlue(startX, startY, width, height int) {
	m.RestoreBlue(startX, startY, width, height)
	m.eachBlueCell(startX, startY, width, height, func(pos int) {
		x, y := m.XY(pos)
		var code byte
		switch c := m.Data[pos]; c {
		case Filled, Fuel:
			code = BlueBit
			if c == Fuel {
				code |= BlueFuel
			}
			code |= m.exposed(x, y, -1, 0, BlueRight, BlueLeft)
			code |= m.exposed(x, y, 0, 1, BlueDown, BlueUp)
			code |= m.exposed(x, y, 1, 0, BlueLeft, BlueRight)
			code |= m.exposed(x, y, 0, -1, BlueUp, BlueDown)
		case RecRU:
			code = BlueBit | BlueOpen
			code |= m.exposed(x, y, 1, 0, BlueLeft, BlueRight)
			code |= m.exposed(x, y, 0, 1, BlueDown, BlueUp)
		case RecRD:
			code = BlueBit | BlueClosed | BlueBelow
			code |= m.exposed(x, y, 1, 0, BlueLeft, BlueRight)
			code |= m.exposed(x, y, 0, -1, BlueUp, BlueDown)
		case RecLU:
			code = BlueBit | BlueClosed
			code |= m.exposed(x, y, -1, 0, BlueRight, BlueLeft)
			code |= m.exposed(x, y, 0, 1, BlueDown, BlueUp)
		case RecLD:
			code = BlueBit | BlueOpen | BlueBelow
			code |= m.exposed(x, y, -1, 0, BlueRight, BlueLeft)
			code |= m.exposed(x, y, 0, -1, BlueUp, BlueDown)
		default:
			return
		}
		m.Data[pos] = code
	})
}

// OptimizeBlue annotates the whole map.
func (m *Map) OptimizeBlue() {
	m.ComputeBlue(0, 0, m.Width, m.Height)
}

// Canonicalize undoes both passes over the whole map.
func (m *Map) Canonicalize() {
	m.RestoreDots()
	m.RestoreBlue(0, 0, m.Width, m.Height)
}

// exposed returns edge when the neighbour at (x+dx, y+dy) is not solid on
// its facing side. Off-grid neighbours of a non-wrapping map count as open.
func (m *Map) exposed(x, y, dx, dy int, facing, edge byte) byte {
	nx, okx := WrapCoord(x+dx, m.Width, m.Wrap)
	ny, oky := WrapCoord(y+dy, m.Height, m.Wrap)
	if !okx || !oky {
		return edge
	}
	if blueNeighbour[m.Data[m.Pos(nx, ny)]]&facing == 0 {
		return edge
	}
	return 0
}

func (m *Map) eachBlueCell(startX, startY, width, height int, fn func(pos int)) {
	if width <= 0 || height <= 0 {
		return
	}
	for x := startX - 1; x <= startX+width; x++ {
		cx, ok := WrapCoord(x, m.Width, m.Wrap)
		if !ok {
			continue
		}
		for y := startY - 1; y <= startY+height; y++ {
			cy, ok := WrapCoord(y, m.Height, m.Wrap)
			if !ok {
				continue
			}
			fn(m.Pos(cx, cy))
		}
	}
}
