package roster

import (
	"fmt"
	"slices"

	"xpclient/xpmap"
)

// Mode selects the ranking rules.
type Mode struct {
	Timing       bool
	Team         bool
	LimitedLives bool
}

// Entry is one line of the score list. ID is the player id, to be resolved
// with Roster.ByID when drawn; team lines have ID == -1.
type Entry struct {
	ID    int
	Team  int
	Label string
	Score float64
	Life  int
}

// Ranking is the computed score list.
type Ranking struct {
	Entries []Entry
	// Best is the index in Entries of the highlighted leader, or -1.
	Best int
}

func bottomChar(c byte) bool {
	return c == CharPaused || c == CharTank || c == CharWaiting
}

// ComputeOrder ranks the players under mode and clears the change flag.
func (r *Roster) ComputeOrder(mode Mode) Ranking {
	r.changed = false
	r.pending = 0

	order := make([]int, 0, len(r.others))
	for i := range r.others {
		o := &r.others[i]
		j := len(order)
		if mode.Timing {
			if !bottomChar(o.Char) {
				j = slices.IndexFunc(order, func(k int) bool {
					p := &r.others[k]
					switch {
					case p.Timing < o.Timing, bottomChar(p.Char):
						return true
					case p.Timing == o.Timing:
						return p.TimingLoops > o.TimingLoops
					}
					return false
				})
			}
		} else {
			j = slices.IndexFunc(order, func(k int) bool {
				return r.others[k].Score < o.Score
			})
		}
		if j < 0 {
			j = len(order)
		}
		order = slices.Insert(order, j, i)
	}

	rk := Ranking{Best: -1, Entries: make([]Entry, 0, len(order))}
	for _, i := range order {
		o := &r.others[i]
		rk.Entries = append(rk.Entries, Entry{
			ID:    o.ID,
			Team:  o.Team,
			Label: o.Name,
			Score: o.Score,
			Life:  o.Life,
		})
	}
	if len(order) > 0 {
		if mode.Timing {
			rk.Best = 0
		} else {
			rk.Best = r.bestRatio(rk.Entries, mode.LimitedLives)
		}
	}
	if mode.Team && !mode.Timing {
		rk.Entries = append(rk.Entries, r.teamOrder(mode.LimitedLives)...)
	}
	return rk
}

func (r *Roster) bestRatio(entries []Entry, limited bool) int {
	best := -1
	var bestRatio float64
	for k, e := range entries {
		ratio := e.Score
		if !limited {
			ratio = e.Score / float64(e.Life+1)
		}
		if best < 0 || ratio > bestRatio {
			best, bestRatio = k, ratio
		}
	}
	return best
}

func (r *Roster) teamOrder(limited bool) []Entry {
	var (
		score [xpmap.MaxTeams]float64
		life  [xpmap.MaxTeams]int
		seen  [xpmap.MaxTeams]bool
	)
	for i := range r.others {
		o := &r.others[i]
		if o.Char == CharPaused || o.Char == CharWaiting || o.Char == CharTank {
			continue
		}
		if o.Team < 0 || o.Team >= xpmap.MaxTeams {
			continue
		}
		seen[o.Team] = true
		score[o.Team] += o.Score
		if limited {
			life[o.Team] += o.Life + 1
		} else {
			life[o.Team] += o.Life
		}
	}

	var teams []Entry
	for t := range seen {
		if !seen[t] {
			continue
		}
		e := Entry{ID: -1, Team: t, Label: fmt.Sprintf("Team %d", t), Score: score[t], Life: life[t]}
		j := slices.IndexFunc(teams, func(p Entry) bool {
			if p.Score != e.Score {
				return p.Score < e.Score
			}
			if limited {
				return p.Life > e.Life
			}
			return p.Life < e.Life
		})
		if j < 0 {
			j = len(teams)
		}
		teams = slices.Insert(teams, j, e)
	}
	return teams
}
