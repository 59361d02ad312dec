package client

import (
	"fmt"

	"xpclient/fault"
	"xpclient/frame"
	"xpclient/viewport"
)

// Every Handle method returns a non-nil error only when the session can no
// longer continue. Recoverable problems go to the reporter and the message
// is skipped.

// HandleStart opens frame loops and empties the object stores.
func (s *State) HandleStart(loops int64) error {
	if s.err != nil {
		return s.err
	}
	s.Store.Reset()
	s.loops = loops
	s.inFrame = true
	s.complete = false

	h := &s.Self.HUD
	h.Damaged = 0
	h.Destruct = 0
	h.Shutdown = 0
	h.Thrust = viewport.Timer{}
	h.Shield = viewport.Timer{}
	h.Phasing = viewport.Timer{}
	return nil
}

// HandleEnd closes the frame. The score list is ranked again here once a
// change has waited out the debounce.
func (s *State) HandleEnd(loops int64) error {
	if s.err != nil {
		return s.err
	}
	switch {
	case !s.inFrame:
		s.check(fmt.Errorf("frame end %d without start: %w", loops, fault.ErrInconsistent))
	case loops != s.loops:
		s.check(fmt.Errorf("frame end %d does not match start %d: %w", loops, s.loops, fault.ErrInconsistent))
	}
	s.inFrame = false
	s.complete = true
	s.Self.Tick()
	s.Scores.Tick()
	s.Roster.Tick()
	if s.Roster.RankingDue(s.cfg.ScoreDebounce) {
		s.Ranking = s.Roster.ComputeOrder(s.cfg.Mode)
	}
	return nil
}

func store[T any](s *State, b *frame.Buffer[T], v T) error {
	if s.err != nil {
		return s.err
	}
	return s.check(b.Append(v))
}

func (s *State) HandleRefuel(v frame.Refuel) error       { return store(s, &s.Store.Refuels, v) }
func (s *State) HandleConnector(v frame.Connector) error { return store(s, &s.Store.Connectors, v) }
func (s *State) HandleLaser(v frame.Laser) error         { return store(s, &s.Store.Lasers, v) }
func (s *State) HandleMissile(v frame.Missile) error     { return store(s, &s.Store.Missiles, v) }
func (s *State) HandleBall(v frame.Ball) error           { return store(s, &s.Store.Balls, v) }
func (s *State) HandleMine(v frame.Mine) error           { return store(s, &s.Store.Mines, v) }
func (s *State) HandleItem(v frame.Item) error           { return store(s, &s.Store.Items, v) }
func (s *State) HandleECM(v frame.ECM) error             { return store(s, &s.Store.ECMs, v) }
func (s *State) HandleTrans(v frame.Trans) error         { return store(s, &s.Store.Trans, v) }
func (s *State) HandlePaused(v frame.Paused) error       { return store(s, &s.Store.Paused, v) }
func (s *State) HandleAppearing(v frame.Appearing) error { return store(s, &s.Store.Appearing, v) }
func (s *State) HandleRadar(v frame.Radar) error         { return store(s, &s.Store.Radar, v) }
func (s *State) HandleVCannon(v frame.VCannon) error     { return store(s, &s.Store.VCannons, v) }
func (s *State) HandleVFuel(v frame.VFuel) error         { return store(s, &s.Store.VFuels, v) }
func (s *State) HandleVBase(v frame.VBase) error         { return store(s, &s.Store.VBases, v) }
func (s *State) HandleVDecor(v frame.VDecor) error       { return store(s, &s.Store.VDecors, v) }
func (s *State) HandleWreckage(v frame.Wreckage) error   { return store(s, &s.Store.Wreckage, v) }
func (s *State) HandleAsteroid(v frame.Asteroid) error   { return store(s, &s.Store.Asteroids, v) }
func (s *State) HandleWormhole(v frame.Wormhole) error   { return store(s, &s.Store.Wormholes, v) }

// HandleShip stores a ship and notes when it is the one we are watching.
func (s *State) HandleShip(v frame.Ship) error {
	if err := store(s, &s.Store.Ships, v); err != nil {
		return err
	}
	eyes := s.Self.HUD.Eyes
	if (eyes < 0 && v.ID == s.Roster.SelfID()) || v.ID == eyes {
		s.Self.MarkVisible()
	}
	return nil
}

// HandleDebris replaces the particles of one debris kind.
func (s *State) HandleDebris(kind int, buf []frame.Debris, n int) error {
	if s.err != nil {
		return s.err
	}
	_, err := s.Store.ReplaceDebris(kind, buf, n)
	return s.check(err)
}

// HandleFastShot replaces the particles of one fast shot kind.
func (s *State) HandleFastShot(kind int, buf []frame.Debris, n int) error {
	if s.err != nil {
		return s.err
	}
	_, err := s.Store.ReplaceFastShots(kind, buf, n)
	return s.check(err)
}

// HandleSelf applies the report about our own ship.
func (s *State) HandleSelf(u viewport.Update) error {
	s.Self.Apply(u)
	return nil
}

// HandleFuel sets the fuel of station ind.
func (s *State) HandleFuel(ind, fuel int) error {
	return s.check(s.Index.SetFuel(ind, fuel))
}

// HandleCannon sets how long cannon ind stays dead.
func (s *State) HandleCannon(ind, deadTime int) error {
	return s.check(s.Index.SetCannonDeadTime(ind, deadTime))
}

// HandleTarget updates target ind.
func (s *State) HandleTarget(ind, deadTime, damage int) error {
	return s.check(s.Index.SetTarget(ind, deadTime, damage))
}

// HandleBase gives base ind to player id.
func (s *State) HandleBase(id, ind int) error {
	return s.check(s.Index.SetBaseOwner(id, ind))
}

// HandlePlayer adds or refreshes a player.
func (s *State) HandlePlayer(id, team int, char byte, name, realName, host, shape string) error {
	return s.check(s.Roster.Join(id, team, char, name, realName, host, shape))
}

// HandleLeave removes a player, frees its base and announces the departure.
func (s *State) HandleLeave(id int) error {
	msg, err := s.Roster.Leave(id)
	if err != nil {
		return s.check(err)
	}
	s.Index.ClearOwner(id)
	s.Messages.Add(msg)
	return nil
}

func (s *State) HandleScore(id int, score float64, life int, char, alliance byte) error {
	return s.check(s.Roster.UpdateScore(id, score, life, char, alliance))
}

// HandleTiming records race progress; loops is the frame it was reached in.
func (s *State) HandleTiming(id, check, round int, loops int64) error {
	return s.check(s.Roster.UpdateTiming(id, check, round, loops, s.Index.NumChecks()))
}

func (s *State) HandleWar(robot, killer int) error {
	return s.check(s.Roster.War(robot, killer))
}

func (s *State) HandleSeek(programmer, robot, sought int) error {
	return s.check(s.Roster.Seek(programmer, robot, sought))
}

func (s *State) HandleTeamScore(team int, score float64) error {
	return s.check(s.Roster.SetTeamScore(team, score))
}

// HandleScoreObject shows a floating score label at block (x, y).
func (s *State) HandleScoreObject(score float64, x, y int, msg string) error {
	s.Scores.Add(score, x, y, msg)
	return nil
}

// HandleMessage adds a talk or game message.
func (s *State) HandleMessage(msg string) error {
	s.Messages.Add(msg)
	return nil
}

func (s *State) HandleTimeLeft(sec int) error {
	s.Self.HUD.TimeLeft = sec
	return nil
}

// HandleEyes switches the spectated player; -1 returns to our own ship.
func (s *State) HandleEyes(id int) error {
	if id == s.Roster.SelfID() {
		id = -1
	}
	s.Self.HUD.Eyes = id
	return nil
}

func (s *State) HandleModifiers(mods string) error {
	s.Self.HUD.Modifiers = mods
	return nil
}

func (s *State) HandleDamaged(n int) error {
	s.Self.HUD.Damaged = n
	return nil
}

func (s *State) HandleDestruct(n int) error {
	s.Self.HUD.Destruct = n
	return nil
}

func (s *State) HandleShutdown(n int) error {
	s.Self.HUD.Shutdown = n
	return nil
}

func (s *State) HandleThrustTime(left, total int) error {
	s.Self.HUD.Thrust = viewport.Timer{Left: left, Max: total}
	return nil
}

func (s *State) HandleShieldTime(left, total int) error {
	s.Self.HUD.Shield = viewport.Timer{Left: left, Max: total}
	return nil
}

func (s *State) HandlePhasingTime(left, total int) error {
	s.Self.HUD.Phasing = viewport.Timer{Left: left, Max: total}
	return nil
}

func (s *State) HandleRoundDelay(left, total int) error {
	s.Self.HUD.RoundDelay = viewport.Timer{Left: left, Max: total}
	return nil
}
