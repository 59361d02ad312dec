package render

import "image/color"

// Palette is the set of colors the renderer draws with.
type Palette struct {
	Background color.RGBA
	Wall       color.RGBA
	Fuel       color.RGBA
	Dot        color.RGBA
	Decor      color.RGBA
	Cannon     color.RGBA
	Base       color.RGBA
	Target     color.RGBA
	Check      color.RGBA
	Ship       color.RGBA
	Self       color.RGBA
	Shot       color.RGBA
	Text       color.RGBA
	Highlight  color.RGBA
	Dim        color.RGBA

	// Debris holds one color per debris color class.
	Debris [8]color.RGBA
}

// DarkPalette is the classic look: blue walls on black.
func DarkPalette() Palette {
	return Palette{
		Background: color.RGBA{0, 0, 0, 255},
		Wall:       color.RGBA{0x4e, 0x7c, 0xff, 255},
		Fuel:       color.RGBA{0xff, 0x3a, 0x27, 255},
		Dot:        color.RGBA{0x90, 0x90, 0x90, 255},
		Decor:      color.RGBA{0x5a, 0x5a, 0x5a, 255},
		Cannon:     color.RGBA{0xff, 0xff, 0xff, 255},
		Base:       color.RGBA{0xe0, 0xe0, 0xe0, 255},
		Target:     color.RGBA{0xff, 0xa0, 0x20, 255},
		Check:      color.RGBA{0x20, 0xe0, 0x20, 255},
		Ship:       color.RGBA{0xff, 0xff, 0xff, 255},
		Self:       color.RGBA{0xff, 0xff, 0x60, 255},
		Shot:       color.RGBA{0xff, 0xff, 0xff, 255},
		Text:       color.RGBA{0xe8, 0xe8, 0xe8, 255},
		Highlight:  color.RGBA{0xff, 0xd0, 0x30, 255},
		Dim:        color.RGBA{0x80, 0x80, 0x80, 255},
		Debris: [8]color.RGBA{
			{0xff, 0xff, 0xff, 255},
			{0xff, 0xd0, 0x30, 255},
			{0xff, 0x80, 0x20, 255},
			{0xff, 0x30, 0x20, 255},
			{0xc0, 0x20, 0x20, 255},
			{0x90, 0x20, 0x20, 255},
			{0x60, 0x20, 0x20, 255},
			{0x40, 0x20, 0x20, 255},
		},
	}
}

// LightPalette inverts the background for light desktops.
func LightPalette() Palette {
	p := DarkPalette()
	p.Background = color.RGBA{0xf4, 0xf4, 0xf0, 255}
	p.Wall = color.RGBA{0x1c, 0x3c, 0xb0, 255}
	p.Dot = color.RGBA{0x60, 0x60, 0x60, 255}
	p.Decor = color.RGBA{0xb0, 0xb0, 0xb0, 255}
	p.Cannon = color.RGBA{0x20, 0x20, 0x20, 255}
	p.Base = color.RGBA{0x30, 0x30, 0x30, 255}
	p.Ship = color.RGBA{0x10, 0x10, 0x10, 255}
	p.Self = color.RGBA{0x90, 0x60, 0x00, 255}
	p.Shot = color.RGBA{0x10, 0x10, 0x10, 255}
	p.Text = color.RGBA{0x18, 0x18, 0x18, 255}
	p.Highlight = color.RGBA{0xb0, 0x50, 0x00, 255}
	p.Debris[0] = color.RGBA{0x30, 0x30, 0x30, 255}
	return p
}
