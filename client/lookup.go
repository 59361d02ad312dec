package client

// Map-cell lookups for the renderer. A miss means the map and the index
// disagree; it is reported and the caller draws nothing for that cell.

// FuelLevel returns the fuel left in the station at block (x, y).
func (s *State) FuelLevel(x, y int) (int, bool) {
	fuel, err := s.Index.FuelLevel(x, y)
	if err != nil {
		s.check(err)
		return 0, false
	}
	return fuel, true
}

// CannonDeadTime returns the dead time and dot flag of the cannon at (x, y).
func (s *State) CannonDeadTime(x, y int) (int, bool, bool) {
	dead, dot, err := s.Index.CannonDeadTime(x, y)
	if err != nil {
		s.check(err)
		return 0, false, false
	}
	return dead, dot, true
}

// TargetAlive returns the dead time and damage of the target at (x, y).
func (s *State) TargetAlive(x, y int) (int, int, bool) {
	dead, damage, err := s.Index.TargetAlive(x, y)
	if err != nil {
		s.check(err)
		return 0, 0, false
	}
	return dead, damage, true
}

// BaseInfo returns the owner id and team of the base at (x, y).
func (s *State) BaseInfo(x, y int) (int, int, bool) {
	id, team, err := s.Index.BaseInfo(x, y)
	if err != nil {
		s.check(err)
		return -1, -1, false
	}
	return id, team, true
}
