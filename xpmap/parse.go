package xpmap

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// mapChars is the block legend of the text map format.
var mapChars = map[rune]byte{
	' ': Space,
	'.': Space,
	'x': Filled,
	'X': FilledNoDraw,
	'#': Fuel,
	'w': RecRU,
	's': RecRD,
	'q': RecLU,
	'a': RecLD,
	'r': CannonUp,
	'd': CannonLeft,
	'f': CannonRight,
	'c': CannonDown,
	'!': TargetLowest,
	'*': Treasure,
	'_': BaseUp,
	'+': PosGrav,
	'-': NegGrav,
	'>': CwiseGrav,
	'<': AcwiseGrav,
	'i': UpGrav,
	'm': DownGrav,
	'k': RightGrav,
	'j': LeftGrav,
	'@': WormNormal,
	'(': WormIn,
	')': WormOut,
	'b': DecorFilled,
	't': DecorRU,
	'g': DecorRD,
	'y': DecorLU,
	'h': DecorLD,
	'%': ItemConcentrator,
	'&': AsteroidConcentrator,
}

// Parse reads a text map. The file is a list of "key: value" options; the
// block rows follow "mapData: \multiline: <terminator>" up to the terminator
// line. The first row is the top of the map. Digits are home bases of that
// team, capital letters are checkpoints.
func Parse(r io.Reader) (*Map, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	opts := map[string]string{}
	var rows []string
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		key, val, ok := strings.Cut(line, ":")
		if !ok || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)
		if key != "mapdata" {
			opts[key] = val
			continue
		}
		term, found := strings.CutPrefix(val, `\multiline:`)
		if !found {
			return nil, fmt.Errorf("mapData without multiline terminator")
		}
		term = strings.TrimSpace(term)
		for sc.Scan() {
			row := strings.TrimRight(sc.Text(), "\r")
			if row == term {
				break
			}
			rows = append(rows, row)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("map has no block data")
	}

	width, height := 0, len(rows)
	for _, row := range rows {
		width = max(width, len([]rune(row)))
	}
	if v, ok := opts["mapwidth"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("mapWidth %q: %w", v, err)
		}
		width = n
	}
	if v, ok := opts["mapheight"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("mapHeight %q: %w", v, err)
		}
		height = n
	}

	m, err := New(width, height, parseBool(opts["edgewrap"]))
	if err != nil {
		return nil, err
	}
	m.Name = opts["mapname"]
	m.Author = opts["mapauthor"]

	for row, line := range rows {
		y := height - 1 - row
		if y < 0 {
			break
		}
		x := 0
		for _, ch := range line {
			if x >= width {
				break
			}
			m.Set(x, y, blockCode(ch))
			x++
		}
	}
	return m, nil
}

func blockCode(ch rune) byte {
	switch {
	case ch >= '0' && ch <= '9':
		return byte(BaseUp + int(ch-'0'))
	case ch >= 'A' && ch <= 'Z':
		return byte(CheckLowest + int(ch-'A'))
	}
	if c, ok := mapChars[ch]; ok {
		return c
	}
	return Space
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "yes", "true", "on", "1":
		return true
	}
	return false
}
