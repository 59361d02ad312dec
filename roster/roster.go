// Package roster tracks the other players in the game and ranks them for the
// score list. The local player, once identified, always sits at index 0.
package roster

import (
	"fmt"
	"slices"

	"xpclient/fault"
	"xpclient/shipshape"
	"xpclient/xpmap"
)

// maxOthers bounds the roster like the frame buffers are bounded.
const maxOthers = 1 << 10

// NoWar is the WarID of a player with no robot war target.
const NoWar = -1

// Player role characters as announced by the server.
const (
	CharPlaying = ' '
	CharPaused  = 'P'
	CharTank    = 'T'
	CharRobot   = 'R'
	CharWaiting = 'W'
	CharDead    = 'D'
)

// Other is one player known to the client, including the local one.
type Other struct {
	ID       int
	Team     int
	Name     string
	RealName string
	Host     string
	Char     byte
	Alliance byte
	Score    float64
	Life     int

	Check       int
	Round       int
	Timing      int
	TimingLoops int64

	// WarID is the id a robot has declared war on, or NoWar.
	WarID int
	Ship  *shipshape.Shape

	nameWidth int
}

// Roster is the ordered list of known players.
type Roster struct {
	others []Other
	nick   string
	self   bool

	changed bool
	pending int

	teamScore [xpmap.MaxTeams]float64
}

// New returns an empty roster that recognises nick as the local player.
func New(nick string) *Roster {
	return &Roster{nick: nick}
}

// Len is the number of known players.
func (r *Roster) Len() int { return len(r.others) }

// Others returns the players in roster order. The slice is only valid until
// the next Join or Leave.
func (r *Roster) Others() []Other { return r.others }

// Self returns the local player, if one has been identified.
func (r *Roster) Self() (*Other, bool) {
	if !r.self {
		return nil, false
	}
	return &r.others[0], true
}

// SelfID returns the local player's id or -1.
func (r *Roster) SelfID() int {
	if !r.self {
		return -1
	}
	return r.others[0].ID
}

// ScoresChanged reports whether a ranking-relevant field changed since the
// last ComputeOrder.
func (r *Roster) ScoresChanged() bool { return r.changed }

func (r *Roster) index(id int) int {
	for i := range r.others {
		if r.others[i].ID == id {
			return i
		}
	}
	return -1
}

// ByID resolves a player id. The pointer is valid until the next Join or
// Leave; keep ids, not pointers, across frames.
func (r *Roster) ByID(id int) (*Other, bool) {
	i := r.index(id)
	if i < 0 {
		return nil, false
	}
	return &r.others[i], true
}

// Join adds a player or refreshes one already known. The ship shape is
// replaced either way. A malformed shape still admits the player with the
// stock ship; the returned error then says what was wrong with it.
func (r *Roster) Join(id, team int, char byte, name, realName, host, shape string) error {
	ship, shapeErr := shipshape.Convert(shape)
	i := r.index(id)
	if i < 0 {
		if len(r.others) >= maxOthers {
			return fmt.Errorf("join %q: roster full at %d: %w", name, maxOthers, fault.ErrNoMemory)
		}
		r.others = append(r.others, Other{ID: id, WarID: NoWar})
		i = len(r.others) - 1
	}
	o := &r.others[i]
	if o.Name != name {
		o.nameWidth = 0
	}
	o.Team = team
	o.Char = char
	o.Name = name
	o.RealName = realName
	o.Host = host
	o.Ship = ship

	if !r.self && name == r.nick {
		r.others[0], r.others[i] = r.others[i], r.others[0]
		r.self = true
	}
	r.changed = true
	if shapeErr != nil {
		return fmt.Errorf("ship of %q: %w", name, shapeErr)
	}
	return nil
}

// Leave removes a player and returns the announcement for the message
// history, which is empty for tanks and robots.
func (r *Roster) Leave(id int) (string, error) {
	i := r.index(id)
	if i < 0 {
		return "", fmt.Errorf("leave of player %d: %w", id, fault.ErrUnknownPlayer)
	}
	o := &r.others[i]
	var msg string
	if o.Char != CharTank && o.Char != CharRobot {
		msg = o.Name + " left this world."
	}
	if i == 0 && r.self {
		r.self = false
	}
	o.Ship = nil
	r.others = slices.Delete(r.others, i, i+1)
	for j := range r.others {
		if r.others[j].WarID == id {
			r.others[j].WarID = NoWar
		}
	}
	r.changed = true
	return msg, nil
}

// UpdateScore applies a score message.
func (r *Roster) UpdateScore(id int, score float64, life int, char, alliance byte) error {
	o, ok := r.ByID(id)
	if !ok {
		return fmt.Errorf("score of player %d: %w", id, fault.ErrUnknownPlayer)
	}
	if o.Score != score || o.Life != life || o.Char != char || o.Alliance != alliance {
		o.Score = score
		o.Life = life
		o.Char = char
		o.Alliance = alliance
		r.changed = true
	}
	return nil
}

// UpdateTiming applies a race progress message. The timing composite is
// round*numChecks+check; loops records when it was reached.
func (r *Roster) UpdateTiming(id, check, round int, loops int64, numChecks int) error {
	o, ok := r.ByID(id)
	if !ok {
		return fmt.Errorf("timing of player %d: %w", id, fault.ErrUnknownPlayer)
	}
	if o.Check == check && o.Round == round {
		return nil
	}
	r.changed = true
	o.Check = check
	o.Round = round
	o.Timing = round*numChecks + check
	o.TimingLoops = loops
	return nil
}

// War records that robot is hunting killer.
func (r *Roster) War(robot, killer int) error {
	o, ok := r.ByID(robot)
	if !ok {
		return fmt.Errorf("war of robot %d: %w", robot, fault.ErrUnknownPlayer)
	}
	o.WarID = killer
	r.changed = true
	return nil
}

// Seek records that programmer set robot to hunt sought.
func (r *Roster) Seek(programmer, robot, sought int) error {
	if _, ok := r.ByID(programmer); !ok {
		return fmt.Errorf("seek by %d: %w", programmer, fault.ErrUnknownPlayer)
	}
	o, ok := r.ByID(robot)
	if !ok {
		return fmt.Errorf("seek of robot %d: %w", robot, fault.ErrUnknownPlayer)
	}
	o.WarID = sought
	r.changed = true
	return nil
}

// SetTeamScore stores the server's score for a team.
func (r *Roster) SetTeamScore(team int, score float64) error {
	if team < 0 || team >= len(r.teamScore) {
		return fmt.Errorf("team %d score: %w", team, fault.ErrBadIndex)
	}
	if r.teamScore[team] != score {
		r.teamScore[team] = score
		r.changed = true
	}
	return nil
}

// TeamScore returns the last score the server sent for team.
func (r *Roster) TeamScore(team int) float64 {
	if team < 0 || team >= len(r.teamScore) {
		return 0
	}
	return r.teamScore[team]
}

// NameWidth returns the drawn width of the name, measuring it once.
func (o *Other) NameWidth(measure func(string) int) int {
	if o.nameWidth == 0 {
		o.nameWidth = measure(o.Name)
	}
	return o.nameWidth
}

// Tick ages a pending score change by one frame.
func (r *Roster) Tick() {
	if r.changed {
		r.pending++
	}
}

// RankingDue reports whether scores changed at least threshold frames ago.
func (r *Roster) RankingDue(threshold int) bool {
	return r.changed && r.pending >= threshold
}

// Clear forgets every player, for a session teardown.
func (r *Roster) Clear() {
	for i := range r.others {
		r.others[i].Ship = nil
	}
	r.others = r.others[:0]
	r.self = false
	r.changed = false
	r.pending = 0
	r.teamScore = [xpmap.MaxTeams]float64{}
}
