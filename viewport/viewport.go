// Package viewport keeps the local player's ship state and the world origin
// the screen is drawn from.
package viewport

const (
	// FuelNotifyTime is how many frames the refuel indicator stays lit.
	FuelNotifyTime = 16
	// packetShrinkStep limits how fast the packet size display falls.
	packetShrinkStep = 16
	// NumItems is the number of item kinds a ship can carry.
	NumItems = 21
)

type Vec struct {
	X, Y int
}

// Update is the per-frame self report.
type Update struct {
	Pos, Vel       Vec
	Heading        int
	Power          float64
	TurnSpeed      float64
	TurnResistance float64
	LockID         int
	LockDist       int
	LockDir        int
	NextCheck      int
	AutopilotLight bool
	Items          [NumItems]int
	CurrentTank    int
	FuelSum        float64
	FuelMax        float64
	PacketSize     int
}

// Timer is a countdown the server reports with its starting value.
type Timer struct {
	Left, Max int
}

// HUD holds the scalars the server sends outside the self report.
type HUD struct {
	TimeLeft   int // seconds, 0 when the round has no limit
	Eyes       int // id being spectated, -1 for our own ship
	Modifiers  string
	Damaged    int
	Destruct   int
	Shutdown   int
	Thrust     Timer
	Shield     Timer
	Phasing    Timer
	RoundDelay Timer
}

// Self is the local ship as last reported, plus the derived view origin.
type Self struct {
	Update

	// World is the origin the screen is drawn from. RealWorld is the same
	// origin kept continuous across the wrap seam; one of the two is the
	// unwrapped coordinate.
	World     Vec
	RealWorld Vec

	HUD HUD

	view     Vec
	mapSize  Vec
	wrap     bool
	visible  bool
	fuelTime int
}

// New returns the state for a view of view pixels over a map of mapSize
// pixels.
func New(view, mapSize Vec, wrap bool) *Self {
	return &Self{view: view, mapSize: mapSize, wrap: wrap, HUD: HUD{Eyes: -1}}
}

// View is the viewport extent in pixels.
func (s *Self) View() Vec { return s.view }

// Resize changes the viewport extent. The origin follows on the next Apply.
func (s *Self) Resize(view Vec) { s.view = view }

// MarkVisible records that our ship was drawn this frame.
func (s *Self) MarkVisible() { s.visible = true }

// Visible reports whether our ship was drawn this frame.
func (s *Self) Visible() bool { return s.visible }

// FuelNotify reports whether the refuel indicator is lit.
func (s *Self) FuelNotify() bool { return s.fuelTime > 0 }

// Apply stores a self report and recomputes the view origin.
func (s *Self) Apply(u Update) {
	if u.FuelSum > s.FuelSum && s.visible {
		s.fuelTime = FuelNotifyTime
	}
	s.visible = false

	packet := s.PacketSize
	s.Update = u
	if u.PacketSize+packetShrinkStep < packet {
		s.PacketSize = packet - packetShrinkStep
	}

	s.World = Vec{X: u.Pos.X - s.view.X/2, Y: u.Pos.Y - s.view.Y/2}
	s.RealWorld = s.World
	if s.wrap {
		s.World.X, s.RealWorld.X = unwrap(s.World.X, s.view.X, s.mapSize.X)
		s.World.Y, s.RealWorld.Y = unwrap(s.World.Y, s.view.Y, s.mapSize.Y)
	}
}

// unwrap returns the render origin and the continuous origin for one axis.
func unwrap(world, view, size int) (int, int) {
	cont := world
	switch {
	case world < 0 && world+view < size:
		world += size
	case world > 0 && world+view >= size:
		cont -= size
	}
	return world, cont
}

// Tick advances the per-frame countdowns.
func (s *Self) Tick() {
	if s.fuelTime > 0 {
		s.fuelTime--
	}
}

// Screen converts a world position to viewport pixels. Y grows up in world
// coordinates and down on screen.
func (s *Self) Screen(x, y int) (int, int) {
	dx := x - s.World.X
	dy := y - s.World.Y
	if s.wrap {
		dx = wrapDelta(dx, s.mapSize.X)
		dy = wrapDelta(dy, s.mapSize.Y)
	}
	return dx, s.view.Y - dy
}

func wrapDelta(d, size int) int {
	if size <= 0 {
		return d
	}
	if d < 0 {
		d += size
	} else if d >= size {
		d -= size
	}
	return d
}

// InView reports whether a world position lies within margin pixels of the
// viewport.
func (s *Self) InView(x, y, margin int) bool {
	sx, sy := s.Screen(x, y)
	return sx >= -margin && sx < s.view.X+margin && sy >= -margin && sy < s.view.Y+margin
}
