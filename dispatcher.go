package main

import (
	"fmt"

	"xpclient/client"
	"xpclient/fault"
	"xpclient/frame"
	"xpclient/viewport"
)

// Messages as the network layer hands them over. Object records use the
// frame types directly. Text fields are still ISO 8859-1 bytes.

type msgStart struct{ loops int64 }

type msgEnd struct{ loops int64 }

type msgSelf struct{ viewport.Update }

type msgPlayer struct {
	id, team             int
	char                 byte
	name, realName, host []byte
	shape                string
}

type msgLeave struct{ id int }

type msgScore struct {
	id             int
	score          float64
	life           int
	char, alliance byte
}

type msgTiming struct {
	id, check, round int
	loops            int64
}

type msgWar struct{ robot, killer int }

type msgSeek struct{ programmer, robot, sought int }

type msgTeamScore struct {
	team  int
	score float64
}

type msgDebris struct {
	kind int
	buf  []frame.Debris
	n    int
	fast bool
}

type msgFuel struct{ ind, fuel int }

type msgCannon struct{ ind, deadTime int }

type msgTarget struct{ ind, deadTime, damage int }

type msgBase struct{ id, ind int }

type msgScoreObject struct {
	score float64
	x, y  int
	text  []byte
}

type msgTalk struct{ text []byte }

type msgTimeLeft struct{ sec int }

type msgEyes struct{ id int }

type msgModifiers struct{ mods string }

type msgDamaged struct{ n int }

type msgDestruct struct{ n int }

type msgShutdown struct{ n int }

type msgTimer struct {
	kind        byte // 't'hrust, 's'hield, 'p'hasing, 'r'ound delay
	left, total int
}

// dispatchMessage applies one message to st. Only errors that end the
// session are returned; everything else has already been reported.
func dispatchMessage(st *client.State, m any) error {
	switch m := m.(type) {
	case msgStart:
		return st.HandleStart(m.loops)
	case msgEnd:
		return st.HandleEnd(m.loops)
	case msgSelf:
		return st.HandleSelf(m.Update)
	case msgPlayer:
		return st.HandlePlayer(m.id, m.team, m.char,
			decodeLatin1(m.name), decodeLatin1(m.realName), decodeLatin1(m.host), m.shape)
	case msgLeave:
		return st.HandleLeave(m.id)
	case msgScore:
		return st.HandleScore(m.id, m.score, m.life, m.char, m.alliance)
	case msgTiming:
		return st.HandleTiming(m.id, m.check, m.round, m.loops)
	case msgWar:
		return st.HandleWar(m.robot, m.killer)
	case msgSeek:
		return st.HandleSeek(m.programmer, m.robot, m.sought)
	case msgTeamScore:
		return st.HandleTeamScore(m.team, m.score)
	case msgDebris:
		if m.fast {
			return st.HandleFastShot(m.kind, m.buf, m.n)
		}
		return st.HandleDebris(m.kind, m.buf, m.n)
	case msgFuel:
		return st.HandleFuel(m.ind, m.fuel)
	case msgCannon:
		return st.HandleCannon(m.ind, m.deadTime)
	case msgTarget:
		return st.HandleTarget(m.ind, m.deadTime, m.damage)
	case msgBase:
		return st.HandleBase(m.id, m.ind)
	case msgScoreObject:
		return st.HandleScoreObject(m.score, m.x, m.y, decodeLatin1(m.text))
	case msgTalk:
		return st.HandleMessage(decodeLatin1(m.text))
	case msgTimeLeft:
		return st.HandleTimeLeft(m.sec)
	case msgEyes:
		return st.HandleEyes(m.id)
	case msgModifiers:
		return st.HandleModifiers(m.mods)
	case msgDamaged:
		return st.HandleDamaged(m.n)
	case msgDestruct:
		return st.HandleDestruct(m.n)
	case msgShutdown:
		return st.HandleShutdown(m.n)
	case msgTimer:
		switch m.kind {
		case 't':
			return st.HandleThrustTime(m.left, m.total)
		case 's':
			return st.HandleShieldTime(m.left, m.total)
		case 'p':
			return st.HandlePhasingTime(m.left, m.total)
		case 'r':
			return st.HandleRoundDelay(m.left, m.total)
		}
		coreReporter.Report(fmt.Errorf("timer kind %q: %w", m.kind, fault.ErrBadIndex))
		return nil

	case frame.Refuel:
		return st.HandleRefuel(m)
	case frame.Connector:
		return st.HandleConnector(m)
	case frame.Laser:
		return st.HandleLaser(m)
	case frame.Missile:
		return st.HandleMissile(m)
	case frame.Ball:
		return st.HandleBall(m)
	case frame.Ship:
		return st.HandleShip(m)
	case frame.Mine:
		return st.HandleMine(m)
	case frame.Item:
		return st.HandleItem(m)
	case frame.ECM:
		return st.HandleECM(m)
	case frame.Trans:
		return st.HandleTrans(m)
	case frame.Paused:
		return st.HandlePaused(m)
	case frame.Appearing:
		return st.HandleAppearing(m)
	case frame.Radar:
		return st.HandleRadar(m)
	case frame.VCannon:
		return st.HandleVCannon(m)
	case frame.VFuel:
		return st.HandleVFuel(m)
	case frame.VBase:
		return st.HandleVBase(m)
	case frame.VDecor:
		return st.HandleVDecor(m)
	case frame.Wreckage:
		return st.HandleWreckage(m)
	case frame.Asteroid:
		return st.HandleAsteroid(m)
	case frame.Wormhole:
		return st.HandleWormhole(m)
	}
	logDebug("unhandled message %T", m)
	return nil
}
