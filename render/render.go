// Package render draws a client.State with ebiten. It only reads the state.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"xpclient/client"
	"xpclient/frame"
)

// glyphW and glyphH are the cell size of ebitenutil's debug font.
const (
	glyphW = 6
	glyphH = 16
)

// Renderer draws complete frames.
type Renderer struct {
	Palette Palette
	// Debug adds the memory and timing overlay.
	Debug bool

	title  cases.Caser
	labels []frame.ScoreObject
	segs   []segment
	glyphs map[string]*ebiten.Image
}

// maxCachedText bounds the rendered label cache.
const maxCachedText = 512

func New(p Palette) *Renderer {
	return &Renderer{
		Palette: p,
		title:   cases.Title(language.English),
		glyphs:  make(map[string]*ebiten.Image),
	}
}

// Draw paints st onto screen. Until the first frame is complete only the
// background and a status line are drawn.
func (r *Renderer) Draw(screen *ebiten.Image, st *client.State) {
	screen.Fill(r.Palette.Background)
	if st == nil {
		r.text(screen, "Not connected", 8, 8, r.Palette.Dim)
		return
	}
	if !st.FrameComplete() {
		r.text(screen, "Waiting for the first frame...", 8, 8, r.Palette.Dim)
		return
	}
	r.drawTerrain(screen, st)
	r.drawObjects(screen, st)
	r.drawHUD(screen, st)
}

// text draws s with the debug font. ebitenutil always prints white, so
// labels are rendered once into cached images and tinted when drawn.
func (r *Renderer) text(dst *ebiten.Image, s string, x, y int, clr color.RGBA) {
	if s == "" {
		return
	}
	img, ok := r.glyphs[s]
	if !ok {
		if len(r.glyphs) >= maxCachedText {
			for k, old := range r.glyphs {
				old.Deallocate()
				delete(r.glyphs, k)
			}
		}
		w, h := textSize(s)
		img = ebiten.NewImage(w, h)
		ebitenutil.DebugPrint(img, s)
		r.glyphs[s] = img
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	dst.DrawImage(img, op)
}

func textSize(s string) (int, int) {
	lines, width, cur := 1, 0, 0
	for _, ch := range s {
		if ch == '\n' {
			lines++
			cur = 0
			continue
		}
		cur++
		width = max(width, cur)
	}
	return max(width*glyphW, 1), lines * glyphH
}

func measureName(name string) int {
	w, _ := textSize(name)
	return w
}
