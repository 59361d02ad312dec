package xpmap

// BlockSize is the side of one map block in world pixels.
const BlockSize = 35

// Cell codes as sent in the map setup. Some of them are rewritten in place by
// the dot and blue passes and restored again before each pass.
const (
	Space         = 0
	Filled        = 1
	FilledNoDraw  = 2
	Fuel          = 3
	RecRU         = 4
	RecRD         = 5
	RecLU         = 6
	RecLD         = 7
	AcwiseGrav    = 8
	CwiseGrav     = 9
	PosGrav       = 10
	NegGrav       = 11
	WormNormal    = 12
	WormIn        = 13
	WormOut       = 14
	CannonUp      = 15
	CannonRight   = 16
	CannonDown    = 17
	CannonLeft    = 18
	SpaceDot      = 19
	Treasure      = 20 // + team
	BaseLowest    = 30
	BaseUp        = 30 // + team
	BaseRight     = 40 // + team
	BaseDown      = 50 // + team
	BaseLeft      = 60 // + team
	BaseHighest   = 69
	TargetLowest  = 70 // + team
	TargetHighest = 79
	CheckLowest   = 80 // + letter index
	CheckHighest  = 105

	ItemConcentrator = 110

	DecorFilled    = 111
	DecorRU        = 112
	DecorRD        = 113
	DecorLU        = 114
	DecorLD        = 115
	DecorDotFilled = 116
	DecorDotRU     = 117
	DecorDotRD     = 118
	DecorDotLU     = 119
	DecorDotLD     = 120

	UpGrav               = 121
	DownGrav             = 122
	RightGrav            = 123
	LeftGrav             = 124
	AsteroidConcentrator = 125
)

// MaxTeams is the number of team-coded variants for bases, targets and
// treasures.
const MaxTeams = 10

// MaxChecks is the number of checkpoint letters.
const MaxChecks = CheckHighest - CheckLowest + 1

// Blue bits. A wall cell carrying BlueBit is annotated with the edges that
// face open space.
const (
	BlueUp     = 0x01
	BlueRight  = 0x02
	BlueDown   = 0x04
	BlueLeft   = 0x08
	BlueOpen   = 0x10 // diagonal top-left to bottom-right
	BlueClosed = 0x20 // diagonal bottom-left to top-right
	BlueFuel   = 0x30 // filled block that is a fuel station
	BlueBelow  = 0x40 // triangle lies below the diagonal
	BlueBit    = 0x80

	blueEdges = BlueUp | BlueRight | BlueDown | BlueLeft
)

// Family groups cell codes by what they are, regardless of annotation.
type Family int

const (
	FamilySpace Family = iota
	FamilyDecor
	FamilyWall
	FamilyFuel
	FamilyCannon
	FamilyTarget
	FamilyBase
	FamilyCheck
	FamilyTreasure
	FamilyWormhole
	FamilyGravity
	FamilyOther
)

// Classify maps any cell code, canonical or optimized, to its family.
func Classify(c byte) Family {
	if c&BlueBit != 0 {
		if unblue(c) == Fuel {
			return FamilyFuel
		}
		return FamilyWall
	}
	switch {
	case c == Space || c == SpaceDot:
		return FamilySpace
	case c == Filled || c == FilledNoDraw || (c >= RecRU && c <= RecLD):
		return FamilyWall
	case c == Fuel:
		return FamilyFuel
	case c >= CannonUp && c <= CannonLeft:
		return FamilyCannon
	case c >= TargetLowest && c <= TargetHighest:
		return FamilyTarget
	case c >= BaseLowest && c <= BaseHighest:
		return FamilyBase
	case c >= CheckLowest && c <= CheckHighest:
		return FamilyCheck
	case c >= Treasure && c < Treasure+MaxTeams:
		return FamilyTreasure
	case c >= WormNormal && c <= WormOut:
		return FamilyWormhole
	case c >= DecorFilled && c <= DecorDotLD:
		return FamilyDecor
	case (c >= AcwiseGrav && c <= NegGrav) || (c >= UpGrav && c <= LeftGrav):
		return FamilyGravity
	}
	return FamilyOther
}

// Dir is the facing of a cannon or a home base.
type Dir int

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	}
	return "?"
}

// cannonDir returns the facing of a cannon cell.
func cannonDir(c byte) Dir {
	return Dir(c - CannonUp)
}

// baseDirTeam splits a base cell code into its facing and team.
func baseDirTeam(c byte) (Dir, int) {
	v := int(c) - BaseLowest
	return Dir(v / MaxTeams), v % MaxTeams
}
