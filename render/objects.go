package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"xpclient/client"
	"xpclient/frame"
	"xpclient/shipshape"
)

const (
	// debrisAreas is the number of 256 pixel strips per axis that debris
	// coordinates are relative to.
	debrisAreas = 4
	// radarSize is the on-screen side of the radar box.
	radarSize = 128
)

// debrisScreen returns the screen position of a particle of the given kind.
// A kind packs the color class with the strip the particle lies in.
func debrisScreen(kind int, d frame.Debris, viewH int) (x, y float32, color int) {
	xi := kind % debrisAreas
	yi := (kind / debrisAreas) % debrisAreas
	color = (kind / (debrisAreas * debrisAreas)) % 8
	x = float32(xi*256 + int(d.X))
	y = float32(viewH - 1 - (yi*256 + int(d.Y)))
	return x, y, color
}

// heading converts a direction in ship resolution to radians.
func heading(dir int) float64 {
	return 2 * math.Pi * float64(dir) / shipshape.Res
}

func (r *Renderer) drawObjects(screen *ebiten.Image, st *client.State) {
	s := st.Store
	self := st.Self
	pal := &r.Palette
	viewH := self.View().Y

	for _, v := range s.Refuels.Items() {
		x0, y0 := self.Screen(v.X0, v.Y0)
		x1, y1 := self.Screen(v.X1, v.Y1)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, pal.Fuel, false)
	}
	for _, v := range s.Connectors.Items() {
		x0, y0 := self.Screen(v.X0, v.Y0)
		x1, y1 := self.Screen(v.X1, v.Y1)
		clr := pal.Dim
		if v.Tractor {
			clr = pal.Highlight
		}
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, clr, false)
	}
	for _, v := range s.Trans.Items() {
		x0, y0 := self.Screen(v.X1, v.Y1)
		x1, y1 := self.Screen(v.X2, v.Y2)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, pal.Check, false)
	}
	for _, v := range s.Lasers.Items() {
		x, y := self.Screen(v.X, v.Y)
		a := heading(v.Dir)
		x1 := float32(x) + float32(float64(v.Len)*math.Cos(a))
		y1 := float32(y) - float32(float64(v.Len)*math.Sin(a))
		vector.StrokeLine(screen, float32(x), float32(y), x1, y1, 1, pal.Debris[v.Color%8], false)
	}
	for _, v := range s.Missiles.Items() {
		x, y := self.Screen(v.X, v.Y)
		a := heading(v.Dir)
		x1 := float32(x) - float32(float64(v.Len)*math.Cos(a))
		y1 := float32(y) + float32(float64(v.Len)*math.Sin(a))
		vector.StrokeLine(screen, float32(x), float32(y), x1, y1, 2, pal.Shot, false)
	}
	for _, v := range s.Balls.Items() {
		x, y := self.Screen(v.X, v.Y)
		vector.StrokeCircle(screen, float32(x), float32(y), 10, 1, pal.Shot, true)
	}
	for _, v := range s.Mines.Items() {
		x, y := self.Screen(v.X, v.Y)
		clr := pal.Shot
		if v.TeamMine {
			clr = pal.Check
		}
		vector.StrokeRect(screen, float32(x)-4, float32(y)-2, 8, 4, 1, clr, false)
	}
	for _, v := range s.Items.Items() {
		x, y := self.Screen(v.X, v.Y)
		vector.StrokeRect(screen, float32(x)-8, float32(y)-8, 16, 16, 1, pal.Highlight, false)
	}
	for _, v := range s.ECMs.Items() {
		x, y := self.Screen(v.X, v.Y)
		vector.StrokeCircle(screen, float32(x), float32(y), float32(v.Size), 1, pal.Dim, true)
	}
	for _, v := range s.Asteroids.Items() {
		x, y := self.Screen(v.X, v.Y)
		vector.StrokeCircle(screen, float32(x), float32(y), float32(8*(v.Size+1)), 1, pal.Dim, true)
	}
	for _, v := range s.Wreckage.Items() {
		x, y := self.Screen(v.X, v.Y)
		a := heading(v.Rotation)
		l := float64(4 * (v.Size + 1))
		dx, dy := float32(l*math.Cos(a)), float32(l*math.Sin(a))
		vector.StrokeLine(screen, float32(x)-dx, float32(y)+dy, float32(x)+dx, float32(y)-dy, 1, pal.Dim, false)
	}
	for _, v := range s.Wormholes.Items() {
		x, y := self.Screen(v.X, v.Y)
		vector.StrokeCircle(screen, float32(x), float32(y), 12, 1, pal.Highlight, true)
	}
	for _, v := range s.Paused.Items() {
		x, y := self.Screen(v.X, v.Y)
		vector.StrokeRect(screen, float32(x)-10, float32(y)-10, 20, 20, 1, pal.Dim, false)
		r.text(screen, "P", x-glyphW/2, y-glyphH/2, pal.Dim)
	}
	for _, v := range s.Appearing.Items() {
		x, y := self.Screen(v.X, v.Y)
		vector.StrokeCircle(screen, float32(x), float32(y), float32(v.Count%32), 1, pal.Dim, true)
	}

	for kind := range s.Debris {
		for _, d := range s.Debris[kind].Items() {
			x, y, c := debrisScreen(kind, d, viewH)
			vector.DrawFilledRect(screen, x, y, 2, 2, pal.Debris[c], false)
		}
	}
	for kind := range s.FastShots {
		clr := pal.Shot
		if kind >= frame.DebrisTypes {
			clr = pal.Fuel
		}
		for _, d := range s.FastShots[kind].Items() {
			x, y, _ := debrisScreen(kind%frame.DebrisTypes, d, viewH)
			vector.DrawFilledRect(screen, x-1, y-1, 3, 3, clr, false)
		}
	}

	r.drawShips(screen, st)
	r.drawRadar(screen, st)
}

func (r *Renderer) drawShips(screen *ebiten.Image, st *client.State) {
	self := st.Self
	pal := &r.Palette
	selfID := st.Roster.SelfID()
	for _, v := range st.Store.Ships.Items() {
		shape := shipshape.Default()
		name := ""
		if o, ok := st.Roster.ByID(v.ID); ok {
			if o.Ship != nil {
				shape = o.Ship
			}
			name = o.Name
		}
		clr := pal.Ship
		if v.ID == selfID {
			clr = pal.Self
		}
		if v.Cloak || v.Phased {
			clr = pal.Dim
		}
		x, y := self.Screen(v.X, v.Y)
		hull := shape.HullAt(v.Dir)
		for i := range hull {
			a, b := hull[i], hull[(i+1)%len(hull)]
			vector.StrokeLine(screen,
				float32(x+a.X), float32(y-a.Y),
				float32(x+b.X), float32(y-b.Y),
				1, clr, true)
		}
		if v.Shield || v.EShield {
			vector.StrokeCircle(screen, float32(x), float32(y), shipshape.MaxRadius+6, 1, clr, true)
		}
		if v.Deflector {
			vector.StrokeCircle(screen, float32(x), float32(y), shipshape.MaxRadius+10, 1, pal.Dim, true)
		}
		if name != "" && v.ID != selfID {
			r.text(screen, name, x-measureName(name)/2, y+shipshape.MaxRadius+4, pal.Dim)
		}
	}
}

func (r *Renderer) drawRadar(screen *ebiten.Image, st *client.State) {
	blips := st.Store.Radar.Items()
	if len(blips) == 0 {
		return
	}
	pal := &r.Palette
	ox := float32(screen.Bounds().Dx() - radarSize - 8)
	const oy = 8
	vector.StrokeRect(screen, ox, oy, radarSize, radarSize, 1, pal.Dim, false)
	for _, b := range blips {
		clr := pal.Ship
		size := b.Size
		if size&frame.RadarFriend != 0 {
			clr = pal.Check
			size &^= frame.RadarFriend
		}
		size = max(size, 1)
		x := ox + float32(b.X%256)/2
		y := oy + radarSize - float32(b.Y%256)/2
		vector.DrawFilledRect(screen, x, y, float32(size), float32(size), clr, false)
	}
}
