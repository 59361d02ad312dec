package frame

// Record types, one per kind of object the server reports each frame.
// Coordinates are world pixels unless noted.

type Refuel struct {
	X0, Y0, X1, Y1 int
}

type Connector struct {
	X0, Y0, X1, Y1 int
	Tractor        bool
}

type Laser struct {
	Color, Dir, Len int
	X, Y            int
}

type Missile struct {
	X, Y, Dir, Len int
}

type Ball struct {
	X, Y, ID int
}

type Ship struct {
	X, Y, ID, Dir int
	Shield        bool
	Cloak         bool
	EShield       bool
	Phased        bool
	Deflector     bool
}

type Mine struct {
	X, Y     int
	TeamMine bool
	ID       int
}

type Item struct {
	X, Y, Type int
}

type ECM struct {
	X, Y, Size int
}

type Trans struct {
	X1, Y1, X2, Y2 int
}

type Paused struct {
	X, Y, Count int
}

type Appearing struct {
	X, Y, ID, Count int
}

// Radar is a blip in radar coordinates. Friendly blips carry RadarFriend in
// Size.
type Radar struct {
	X, Y, Size int
}

const RadarFriend = 0x80

// VCannon, VFuel, VBase and VDecor are map objects in view this frame; X and
// Y are block coordinates.
type VCannon struct {
	X, Y, Type int
}

type VFuel struct {
	X, Y, Fuel int
}

type VBase struct {
	X, Y, XI, YI, Type int
}

type VDecor struct {
	X, Y, XI, YI, Type int
}

// Debris is one particle of a debris or fast shot blob, in view-relative
// 8-bit coordinates.
type Debris struct {
	X, Y uint8
}

type Wreckage struct {
	X, Y      int
	WreckType int
	Size      int
	Rotation  int
}

type Asteroid struct {
	X, Y     int
	Type     int
	Size     int
	Rotation int
}

type Wormhole struct {
	X, Y int
}
