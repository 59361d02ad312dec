// Package shipshape parses the ship shape descriptions players announce when
// they join, e.g. "(SH: 15,0 -9,8 -9,-8)(GU: 15,0)(EN: -9,0)".
package shipshape

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// Res is the number of headings a ship can point in.
	Res = 128
	// MaxPoints bounds the hull outline.
	MaxPoints = 24
	// MinPoints is the smallest usable hull.
	MinPoints = 3
	// MaxRadius bounds every coordinate.
	MaxRadius = 15

	defaultShape = "(SH: 15,0 -9,8 -9,-8)(GU: 15,0)(EN: -9,0)"
)

type Point struct {
	X, Y int
}

// Shape is a parsed ship. Points are in ship coordinates for heading 0.
type Shape struct {
	Name   string
	Author string
	Hull   []Point
	Gun    Point
	Engine Point
	// Extra guns and lights, by section tag (LG, RG, LR, RR, MR, LL, RL).
	Mounts map[string][]Point

	rotated [][]Point
}

// Default returns the stock ship.
func Default() *Shape {
	s, err := Parse(defaultShape)
	if err != nil {
		panic(err)
	}
	return s
}

// Convert parses str and falls back to the stock ship when it is empty or
// invalid. The error, if any, says why the fallback happened.
func Convert(str string) (*Shape, error) {
	if strings.TrimSpace(str) == "" {
		return Default(), nil
	}
	s, err := Parse(str)
	if err != nil {
		return Default(), err
	}
	return s, nil
}

// Parse reads a shape description.
func Parse(str string) (*Shape, error) {
	s := &Shape{Mounts: map[string][]Point{}}
	gun, engine := false, false
	rest := str
	for {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open:], ')')
		if end < 0 {
			return nil, fmt.Errorf("unterminated section in %q", str)
		}
		section := rest[open+1 : open+end]
		rest = rest[open+end+1:]

		tag, body, ok := strings.Cut(section, ":")
		if !ok {
			return nil, fmt.Errorf("section %q has no tag", section)
		}
		tag = strings.ToUpper(strings.TrimSpace(tag))
		body = strings.TrimSpace(body)
		switch tag {
		case "NM":
			s.Name = body
			continue
		case "AU":
			s.Author = body
			continue
		}
		pts, err := parsePoints(body)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", tag, err)
		}
		switch tag {
		case "SH":
			s.Hull = pts
		case "GU":
			if len(pts) > 0 {
				s.Gun, gun = pts[0], true
			}
		case "EN":
			if len(pts) > 0 {
				s.Engine, engine = pts[0], true
			}
		default:
			s.Mounts[tag] = pts
		}
	}
	if len(s.Hull) < MinPoints {
		return nil, fmt.Errorf("hull has %d points, need %d", len(s.Hull), MinPoints)
	}
	if len(s.Hull) > MaxPoints {
		return nil, fmt.Errorf("hull has %d points, max %d", len(s.Hull), MaxPoints)
	}
	if !gun {
		s.Gun = s.Hull[0]
	}
	if !engine {
		s.Engine = Point{X: -s.Hull[0].X, Y: 0}
	}
	return s, nil
}

func parsePoints(body string) ([]Point, error) {
	var pts []Point
	for _, f := range strings.Fields(body) {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("bad point %q", f)
		}
		x, err := strconv.Atoi(xs)
		if err != nil {
			return nil, fmt.Errorf("bad point %q: %w", f, err)
		}
		y, err := strconv.Atoi(ys)
		if err != nil {
			return nil, fmt.Errorf("bad point %q: %w", f, err)
		}
		if x < -MaxRadius || x > MaxRadius || y < -MaxRadius || y > MaxRadius {
			return nil, fmt.Errorf("point %q outside radius %d", f, MaxRadius)
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts, nil
}

// HullAt returns the outline rotated to heading dir (0..Res-1). Rotations are
// computed on first use and cached.
func (s *Shape) HullAt(dir int) []Point {
	if s.rotated == nil {
		s.rotated = make([][]Point, Res)
	}
	dir = ((dir % Res) + Res) % Res
	if s.rotated[dir] == nil {
		s.rotated[dir] = rotate(s.Hull, dir)
	}
	return s.rotated[dir]
}

func rotate(pts []Point, dir int) []Point {
	a := 2 * math.Pi * float64(dir) / Res
	sin, cos := math.Sincos(a)
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{
			X: int(math.Round(float64(p.X)*cos - float64(p.Y)*sin)),
			Y: int(math.Round(float64(p.X)*sin + float64(p.Y)*cos)),
		}
	}
	return out
}

// String renders the shape back into the description format.
func (s *Shape) String() string {
	var b strings.Builder
	writePts := func(tag string, pts []Point) {
		b.WriteString("(" + tag + ":")
		for _, p := range pts {
			fmt.Fprintf(&b, " %d,%d", p.X, p.Y)
		}
		b.WriteString(")")
	}
	writePts("SH", s.Hull)
	writePts("GU", []Point{s.Gun})
	writePts("EN", []Point{s.Engine})
	if s.Name != "" {
		b.WriteString("(NM: " + s.Name + ")")
	}
	return b.String()
}
