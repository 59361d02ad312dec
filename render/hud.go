package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/hako/durafmt"

	"xpclient/client"
	"xpclient/roster"
	"xpclient/xpmap"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

// scoreLine is one row of the score list.
type scoreLine struct {
	Text string
	Best bool
	Self bool
}

// scoreLines formats the last computed ranking. Names are padded to the
// widest one so the score column lines up.
func scoreLines(st *client.State) []scoreLine {
	rk := st.Ranking
	width := 0
	for _, e := range rk.Entries {
		if o, ok := st.Roster.ByID(e.ID); ok && e.ID >= 0 {
			width = max(width, o.NameWidth(measureName))
		} else {
			width = max(width, measureName(e.Label))
		}
	}
	cols := width / glyphW

	selfID := st.Roster.SelfID()
	out := make([]scoreLine, 0, len(rk.Entries))
	for i, e := range rk.Entries {
		char := byte(' ')
		if o, ok := st.Roster.ByID(e.ID); ok && e.ID >= 0 {
			char = o.Char
		}
		score := humanize.Commaf(math.Round(e.Score))
		text := fmt.Sprintf("%c %-*s %8s %3d", char, cols, e.Label, score, e.Life)
		out = append(out, scoreLine{Text: text, Best: i == rk.Best, Self: e.ID >= 0 && e.ID == selfID})
	}
	return out
}

// formatTimeLeft renders the round clock, or "" when there is no limit.
func formatTimeLeft(sec int) string {
	if sec <= 0 {
		return ""
	}
	return durafmt.Parse(time.Duration(sec) * time.Second).LimitFirstN(2).Format(shortUnits)
}

// modeLabel names the game mode the score list is ranked by.
func (r *Renderer) modeLabel(m roster.Mode) string {
	var parts []string
	if m.Team {
		parts = append(parts, "team")
	}
	if m.Timing {
		parts = append(parts, "race")
	} else {
		parts = append(parts, "scores")
	}
	if m.LimitedLives {
		parts = append(parts, "(limited lives)")
	}
	return r.title.String(strings.Join(parts, " "))
}

func (r *Renderer) drawHUD(screen *ebiten.Image, st *client.State) {
	pal := &r.Palette
	self := st.Self
	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy()

	// Score list, top left.
	y := 8
	r.text(screen, r.modeLabel(st.Mode()), 8, y, pal.Dim)
	y += glyphH
	for _, l := range scoreLines(st) {
		clr := pal.Text
		switch {
		case l.Self:
			clr = pal.Self
		case l.Best:
			clr = pal.Highlight
		}
		r.text(screen, l.Text, 8, y, clr)
		y += glyphH
	}

	// Floating score labels at the block they were scored in.
	r.labels = st.Scores.Live(r.labels[:0])
	for _, o := range r.labels {
		x, sy := self.Screen(o.X*xpmap.BlockSize+xpmap.BlockSize/2, o.Y*xpmap.BlockSize+xpmap.BlockSize/2)
		r.text(screen, o.Text, x-measureName(o.Text)/2, sy, pal.Highlight)
	}

	// Fuel gauge, bottom right.
	if self.FuelMax > 0 {
		const gw, gh = 120, 8
		gx, gy := float32(w-gw-8), float32(h-gh-8)
		frac := float32(min(self.FuelSum/self.FuelMax, 1))
		vector.StrokeRect(screen, gx, gy, gw, gh, 1, pal.Dim, false)
		clr := pal.Fuel
		if self.FuelNotify() {
			clr = pal.Highlight
		}
		vector.DrawFilledRect(screen, gx, gy, gw*frac, gh, clr, false)
	}

	var status []string
	if t := formatTimeLeft(self.HUD.TimeLeft); t != "" {
		status = append(status, "Time left "+t)
	}
	if self.HUD.Modifiers != "" {
		status = append(status, "Mods "+self.HUD.Modifiers)
	}
	if d := self.HUD.Destruct; d > 0 {
		status = append(status, fmt.Sprintf("Self destruct %d", d))
	}
	if d := self.HUD.Shutdown; d > 0 {
		status = append(status, fmt.Sprintf("Shutdown %d", d))
	}
	if d := self.HUD.Damaged; d > 0 {
		status = append(status, "Damaged")
	}
	if rd := self.HUD.RoundDelay; rd.Left > 0 {
		status = append(status, fmt.Sprintf("Next round in %d", rd.Left))
	}
	if st.Self.HUD.Eyes >= 0 {
		if o, ok := st.Roster.ByID(st.Self.HUD.Eyes); ok {
			status = append(status, "Watching "+o.Name)
		}
	}
	sy := h - 8 - glyphH*len(status)
	for _, s := range status {
		r.text(screen, s, w-8-measureName(s)-130, sy, pal.Text)
		sy += glyphH
	}

	// Messages, bottom left, newest last.
	msgs := st.Messages.Recent()
	my := h - 8 - glyphH*len(msgs)
	for _, m := range msgs {
		r.text(screen, m, 8, my, pal.Text)
		my += glyphH
	}

	if r.Debug {
		dbg := fmt.Sprintf("frame %d  objects %s  fps %.0f",
			st.Loops(), humanize.Bytes(uint64(st.Store.Bytes())), ebiten.ActualFPS())
		r.text(screen, dbg, w/2-measureName(dbg)/2, 8, pal.Dim)
	}
}
