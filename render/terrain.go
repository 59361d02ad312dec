package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"xpclient/client"
	"xpclient/xpmap"
)

type segment struct {
	x0, y0, x1, y1 float32
}

// wallSegments appends the lines of a blue-coded wall block whose
// bottom-left corner is at screen (x, y). Screen y grows downward.
func wallSegments(dst []segment, code byte, x, y, bs float32) []segment {
	top, right := y-bs, x+bs
	switch {
	case code&xpmap.BlueFuel == xpmap.BlueFuel:
	case code&xpmap.BlueOpen != 0:
		dst = append(dst, segment{x, top, right, y})
	case code&xpmap.BlueClosed != 0:
		dst = append(dst, segment{x, y, right, top})
	}
	if code&xpmap.BlueUp != 0 {
		dst = append(dst, segment{x, top, right, top})
	}
	if code&xpmap.BlueDown != 0 {
		dst = append(dst, segment{x, y, right, y})
	}
	if code&xpmap.BlueLeft != 0 {
		dst = append(dst, segment{x, top, x, y})
	}
	if code&xpmap.BlueRight != 0 {
		dst = append(dst, segment{right, top, right, y})
	}
	return dst
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func (r *Renderer) drawTerrain(screen *ebiten.Image, st *client.State) {
	const bs = xpmap.BlockSize
	m := st.Map
	self := st.Self
	view := self.View()
	x0 := floorDiv(self.World.X, bs)
	y0 := floorDiv(self.World.Y, bs)
	nx := view.X/bs + 2
	ny := view.Y/bs + 2

	r.segs = r.segs[:0]
	for bx := x0; bx < x0+nx; bx++ {
		cx, ok := xpmap.WrapCoord(bx, m.Width, m.Wrap)
		if !ok {
			continue
		}
		sx := float32(bx*bs - self.World.X)
		for by := y0; by < y0+ny; by++ {
			cy, ok := xpmap.WrapCoord(by, m.Height, m.Wrap)
			if !ok {
				continue
			}
			sy := float32(view.Y - (by*bs - self.World.Y))
			r.drawBlock(screen, st, cx, cy, sx, sy)
		}
	}
	for _, s := range r.segs {
		vector.StrokeLine(screen, s.x0, s.y0, s.x1, s.y1, 1, r.Palette.Wall, false)
	}
}

// drawBlock draws block (cx, cy) with its bottom-left corner at (sx, sy).
// Wall edges are collected in r.segs and stroked in one go afterwards.
func (r *Renderer) drawBlock(screen *ebiten.Image, st *client.State, cx, cy int, sx, sy float32) {
	const bs = float32(xpmap.BlockSize)
	c := st.Map.At(cx, cy)
	pal := &r.Palette
	top := sy - bs

	if c&xpmap.BlueBit != 0 {
		if c&xpmap.BlueFuel == xpmap.BlueFuel {
			r.drawFuel(screen, st, cx, cy, sx, sy)
		}
		r.segs = wallSegments(r.segs, c, sx, sy, bs)
		return
	}

	switch {
	case c == xpmap.SpaceDot || (c >= xpmap.DecorDotFilled && c <= xpmap.DecorDotLD):
		size := float32(max(st.DotOptions().PointSize, 1))
		vector.DrawFilledRect(screen, sx+bs/2-size/2, top+bs/2-size/2, size, size, pal.Dot, false)
	case c >= xpmap.DecorFilled && c <= xpmap.DecorLD:
		vector.DrawFilledRect(screen, sx, top, bs, bs, pal.Decor, false)
	case xpmap.Classify(c) == xpmap.FamilyCannon:
		dead, dot, ok := st.CannonDeadTime(cx, cy)
		if !ok || dead > 0 {
			return
		}
		if dot {
			vector.DrawFilledRect(screen, sx+bs/2-1, top+bs/2-1, 2, 2, pal.Dot, false)
		}
		drawCannon(screen, c, sx, sy, bs, pal.Cannon)
	case xpmap.Classify(c) == xpmap.FamilyBase:
		id, team, ok := st.BaseInfo(cx, cy)
		if !ok {
			return
		}
		vector.StrokeLine(screen, sx, sy, sx+bs, sy, 2, pal.Base, false)
		label := fmt.Sprint(team)
		if o, ok := st.Roster.ByID(id); ok {
			label = o.Name
		}
		r.text(screen, label, int(sx), int(sy), pal.Base)
	case xpmap.Classify(c) == xpmap.FamilyTarget:
		dead, damage, ok := st.TargetAlive(cx, cy)
		if !ok || dead > 0 {
			return
		}
		vector.StrokeRect(screen, sx+2, top+2, bs-4, bs-4, 1, pal.Target, false)
		h := (bs - 8) * float32(damage) / float32(xpmap.TargetDamage)
		vector.DrawFilledRect(screen, sx+4, sy-4-h, bs-8, h, pal.Target, false)
	case xpmap.Classify(c) == xpmap.FamilyCheck:
		letter := int(c) - xpmap.CheckLowest
		clr := pal.Dim
		if letter == st.Self.NextCheck {
			clr = pal.Check
		}
		vector.StrokeCircle(screen, sx+bs/2, top+bs/2, bs/2-2, 1, clr, true)
		r.text(screen, string(rune('A'+letter)), int(sx+bs/2)-glyphW/2, int(top+bs/2)-glyphH/2, clr)
	case xpmap.Classify(c) == xpmap.FamilyWormhole:
		vector.StrokeCircle(screen, sx+bs/2, top+bs/2, bs/2-4, 1, pal.Dim, true)
	case xpmap.Classify(c) == xpmap.FamilyTreasure:
		vector.StrokeCircle(screen, sx+bs/2, sy-bs/4, bs/4, 1, pal.Highlight, true)
	}
}

func (r *Renderer) drawFuel(screen *ebiten.Image, st *client.State, cx, cy int, sx, sy float32) {
	const bs = float32(xpmap.BlockSize)
	fuel, ok := st.FuelLevel(cx, cy)
	if !ok || fuel <= 0 {
		return
	}
	h := bs * float32(min(fuel, xpmap.MaxStationFuel)) / float32(xpmap.MaxStationFuel)
	vector.DrawFilledRect(screen, sx+1, sy-h, bs-2, h, r.Palette.Fuel, false)
}

func drawCannon(screen *ebiten.Image, c byte, sx, sy, bs float32, clr color.Color) {
	top := sy - bs
	var pts [3][2]float32
	switch c {
	case xpmap.CannonUp:
		pts = [3][2]float32{{sx, sy}, {sx + bs, sy}, {sx + bs/2, sy - bs/3}}
	case xpmap.CannonDown:
		pts = [3][2]float32{{sx, top}, {sx + bs, top}, {sx + bs/2, top + bs/3}}
	case xpmap.CannonRight:
		pts = [3][2]float32{{sx, top}, {sx, sy}, {sx + bs/3, top + bs/2}}
	case xpmap.CannonLeft:
		pts = [3][2]float32{{sx + bs, top}, {sx + bs, sy}, {sx + bs - bs/3, top + bs/2}}
	}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%3]
		vector.StrokeLine(screen, a[0], a[1], b[0], b[1], 1, clr, false)
	}
}
