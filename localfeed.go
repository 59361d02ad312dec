package main

import (
	"fmt"
	"math"
	"math/rand/v2"

	"xpclient/frame"
	"xpclient/roster"
	"xpclient/shipshape"
	"xpclient/viewport"
	"xpclient/xpmap"
)

const (
	feedSelfID    = 1
	feedFuelMax   = 1000.0
	feedShotLife  = 40
	feedShotSpeed = 12.0
	feedHitRange  = 20.0
	feedRoundTime = 600
)

// feedInput is the keyboard state for one tick.
type feedInput struct {
	left, right, thrust, fire bool
}

type feedShip struct {
	id     int
	name   string
	x, y   float64
	vx, vy float64
	dir    int
	score  float64
	life   int
	orbit  float64
	cx, cy float64
	radius float64
	away   int // frames until a departed robot rejoins
}

type feedShot struct {
	x, y, vx, vy float64
	ttl          int
}

// localFeed stands in for the server: it flies our ship and a few robots
// over the loaded map and produces one frame of messages per tick.
type localFeed struct {
	m      *xpmap.Map
	idx    *xpmap.Index
	nick   string
	rng    *rand.Rand
	loops  int64
	joined bool

	self   feedShip
	fuel   float64
	robots []*feedShip
	shots  []feedShot
	left   int
}

func newLocalFeed(m *xpmap.Map, idx *xpmap.Index, nick string, robots int) *localFeed {
	f := &localFeed{
		m:    m,
		idx:  idx,
		nick: nick,
		rng:  rand.New(rand.NewPCG(1, 2)),
		fuel: feedFuelMax / 2,
		left: feedRoundTime,
	}
	x, y := f.startPos()
	f.self = feedShip{id: feedSelfID, name: nick, x: x, y: y}
	for i := 0; i < robots; i++ {
		cx, cy := f.openPos()
		f.robots = append(f.robots, &feedShip{
			id:     feedSelfID + 1 + i,
			name:   fmt.Sprintf("Robot%d", i+1),
			cx:     cx,
			cy:     cy,
			radius: 60 + f.rng.Float64()*120,
			orbit:  f.rng.Float64() * 2 * math.Pi,
		})
	}
	return f
}

func (f *localFeed) pixelSize() (float64, float64) {
	return float64(f.m.PixelWidth()), float64(f.m.PixelHeight())
}

// startPos is the centre of the first home base, or of any open block.
func (f *localFeed) startPos() (float64, float64) {
	if len(f.idx.Bases) > 0 {
		x, y := f.m.XY(f.idx.Bases[0].Pos)
		return blockCentre(x, y)
	}
	return f.openPos()
}

func (f *localFeed) openPos() (float64, float64) {
	for tries := 0; tries < 1000; tries++ {
		x, y := f.rng.IntN(f.m.Width), f.rng.IntN(f.m.Height)
		if xpmap.Classify(f.m.At(x, y)) == xpmap.FamilySpace {
			return blockCentre(x, y)
		}
	}
	return blockCentre(f.m.Width/2, f.m.Height/2)
}

func blockCentre(x, y int) (float64, float64) {
	return float64(x*xpmap.BlockSize + xpmap.BlockSize/2), float64(y*xpmap.BlockSize + xpmap.BlockSize/2)
}

func (f *localFeed) wrap(x, y float64) (float64, float64) {
	w, h := f.pixelSize()
	if f.m.Wrap {
		x = math.Mod(math.Mod(x, w)+w, w)
		y = math.Mod(math.Mod(y, h)+h, h)
		return x, y
	}
	return math.Min(math.Max(x, 0), w-1), math.Min(math.Max(y, 0), h-1)
}

func (f *localFeed) joinMsg(s *feedShip, char byte) msgPlayer {
	return msgPlayer{
		id:       s.id,
		team:     0,
		char:     char,
		name:     encodeLatin1(s.name),
		realName: encodeLatin1(gs.RealName),
		host:     encodeLatin1("localhost"),
		shape:    shipshape.Default().String(),
	}
}

// frame advances the simulation one tick and returns its messages.
func (f *localFeed) frame(in feedInput, view viewport.Vec) []any {
	var out []any
	if !f.joined {
		f.joined = true
		out = append(out, f.joinMsg(&f.self, roster.CharPlaying))
		for _, r := range f.robots {
			out = append(out, f.joinMsg(r, roster.CharRobot))
		}
		out = append(out, msgTalk{text: encodeLatin1(fmt.Sprintf("Welcome to %s, %s.", f.m.Name, f.nick))})
	}

	f.loops++
	out = append(out, msgStart{loops: f.loops})

	f.steer(in)
	if in.fire && f.loops%3 == 0 {
		a := 2 * math.Pi * float64(f.self.dir) / shipshape.Res
		f.shots = append(f.shots, feedShot{
			x:   f.self.x,
			y:   f.self.y,
			vx:  f.self.vx + feedShotSpeed*math.Cos(a),
			vy:  f.self.vy + feedShotSpeed*math.Sin(a),
			ttl: feedShotLife,
		})
	}
	out = f.moveRobots(out)
	out = f.moveShots(out)
	out = f.refuel(out)

	if f.left > 0 && f.loops%14 == 0 {
		f.left--
		out = append(out, msgTimeLeft{sec: f.left})
	}

	packet := 200 + len(f.shots)*4 + f.rng.IntN(64)
	out = append(out, msgSelf{viewport.Update{
		Pos:        viewport.Vec{X: int(f.self.x), Y: int(f.self.y)},
		Vel:        viewport.Vec{X: int(f.self.vx), Y: int(f.self.vy)},
		Heading:    f.self.dir,
		Power:      55,
		TurnSpeed:  10,
		LockID:     -1,
		FuelSum:    f.fuel,
		FuelMax:    feedFuelMax,
		PacketSize: packet,
	}})
	out = append(out, frame.Ship{ID: f.self.id, X: int(f.self.x), Y: int(f.self.y), Dir: f.self.dir, Shield: in.fire && f.fuel < 50})
	for _, r := range f.robots {
		if r.away == 0 {
			out = append(out, frame.Ship{ID: r.id, X: int(r.x), Y: int(r.y), Dir: r.dir})
		}
	}
	out = append(out, f.radar()...)
	out = append(out, f.debris(view)...)
	out = append(out, msgEnd{loops: f.loops})
	return out
}

func (f *localFeed) steer(in feedInput) {
	s := &f.self
	if in.left {
		s.dir = (s.dir + 3) % shipshape.Res
	}
	if in.right {
		s.dir = (s.dir - 3 + shipshape.Res) % shipshape.Res
	}
	if in.thrust && f.fuel > 0 {
		a := 2 * math.Pi * float64(s.dir) / shipshape.Res
		s.vx += 0.4 * math.Cos(a)
		s.vy += 0.4 * math.Sin(a)
		f.fuel = math.Max(f.fuel-0.5, 0)
	}
	s.vx *= 0.99
	s.vy *= 0.99
	s.x, s.y = f.wrap(s.x+s.vx, s.y+s.vy)
}

func (f *localFeed) moveRobots(out []any) []any {
	for i, r := range f.robots {
		if r.away > 0 {
			r.away--
			if r.away == 0 {
				out = append(out, f.joinMsg(r, roster.CharRobot))
			}
			continue
		}
		r.orbit += 0.02
		r.x, r.y = f.wrap(r.cx+r.radius*math.Cos(r.orbit), r.cy+r.radius*math.Sin(r.orbit))
		r.dir = int((r.orbit+math.Pi/2)/(2*math.Pi)*shipshape.Res) % shipshape.Res

		if f.loops%100 == int64(i*7) {
			r.score += float64(f.rng.IntN(5))
			out = append(out, msgScore{id: r.id, score: r.score, life: r.life, char: roster.CharRobot})
		}
		if i == 0 && f.loops%500 == 0 {
			r.away = 30
			out = append(out, msgLeave{id: r.id})
		}
	}
	return out
}

func (f *localFeed) moveShots(out []any) []any {
	w, h := f.pixelSize()
	keep := f.shots[:0]
	for _, s := range f.shots {
		s.ttl--
		s.x, s.y = f.wrap(s.x+s.vx, s.y+s.vy)
		hit := false
		for _, r := range f.robots {
			if r.away > 0 || math.Hypot(wrapDist(s.x-r.x, w), wrapDist(s.y-r.y, h)) > feedHitRange {
				continue
			}
			hit = true
			r.life++
			f.self.score++
			out = append(out,
				msgScore{id: f.self.id, score: f.self.score, char: roster.CharPlaying},
				msgScore{id: r.id, score: r.score, life: r.life, char: roster.CharRobot},
				msgScoreObject{score: 1, x: int(r.x) / xpmap.BlockSize, y: int(r.y) / xpmap.BlockSize},
				msgTalk{text: encodeLatin1(fmt.Sprintf("%s was shot down by %s.", r.name, f.self.name))},
			)
			break
		}
		if !hit && s.ttl > 0 {
			keep = append(keep, s)
		}
	}
	f.shots = keep
	return out
}

func wrapDist(d, size float64) float64 {
	d = math.Abs(d)
	return math.Min(d, size-d)
}

// refuel drains the station under our ship into the tank.
func (f *localFeed) refuel(out []any) []any {
	bx, by := int(f.self.x)/xpmap.BlockSize, int(f.self.y)/xpmap.BlockSize
	for _, d := range [][2]int{{0, 0}, {-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		ind, st, err := f.idx.FuelAt(bx+d[0], by+d[1])
		if err != nil || st.Fuel <= 0 || f.fuel >= feedFuelMax {
			continue
		}
		take := min(st.Fuel, 256)
		f.fuel = math.Min(f.fuel+float64(take)/64, feedFuelMax)
		out = append(out, msgFuel{ind: ind, fuel: st.Fuel - take})
		sx, sy := blockCentre(bx+d[0], by+d[1])
		out = append(out, frame.Refuel{X0: int(sx), Y0: int(sy), X1: int(f.self.x), Y1: int(f.self.y)})
		break
	}
	return out
}

// radar places every robot on a 256 pixel wide map overview.
func (f *localFeed) radar() []any {
	w, h := f.pixelSize()
	var out []any
	for _, r := range f.robots {
		if r.away > 0 {
			continue
		}
		out = append(out, frame.Radar{X: int(r.x / w * 256), Y: int(r.y / h * 256), Size: 2})
	}
	out = append(out, frame.Radar{X: int(f.self.x / w * 256), Y: int(f.self.y / h * 256), Size: 3 | frame.RadarFriend})
	return out
}

// debris packs the shots in view into fast shot blobs, one per 256 pixel
// strip of the view.
func (f *localFeed) debris(view viewport.Vec) []any {
	ox := f.self.x - float64(view.X)/2
	oy := f.self.y - float64(view.Y)/2
	w, h := f.pixelSize()
	blobs := map[int][]frame.Debris{}
	for _, s := range f.shots {
		rx := s.x - ox
		ry := s.y - oy
		if f.m.Wrap {
			rx = math.Mod(math.Mod(rx, w)+w, w)
			ry = math.Mod(math.Mod(ry, h)+h, h)
		}
		if rx < 0 || ry < 0 || rx >= float64(view.X) || ry >= float64(view.Y) || rx >= 4*256 || ry >= 4*256 {
			continue
		}
		xi, yi := int(rx)/256, int(ry)/256
		kind := xi + yi*4
		blobs[kind] = append(blobs[kind], frame.Debris{X: uint8(int(rx) % 256), Y: uint8(int(ry) % 256)})
	}
	var out []any
	for kind := 0; kind < 16; kind++ {
		if b := blobs[kind]; len(b) > 0 {
			out = append(out, msgDebris{kind: kind, buf: b, n: len(b), fast: true})
		}
	}
	return out
}
