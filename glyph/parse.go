package glyph

import (
	"strconv"
	"unicode"

	"github.com/pkg/errors"
)

var (
	ErrEmptyPath   = errors.New("glyph: empty path data")
	ErrBadCommand  = errors.New("glyph: unsupported command")
	ErrBadNumber   = errors.New("glyph: malformed number")
	ErrMissingArgs = errors.New("glyph: missing command arguments")
	ErrNoMoveTo    = errors.New("glyph: path must start with a move")
)

// argCount is the number of scalars each command letter consumes per repetition
var argCount = map[rune]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'Q': 4, 'C': 6, 'Z': 0,
}

type token struct {
	cmd rune
	num float64
	pos int
}

// Parse converts SVG path data into a Shape
// Supports M L H V Q C Z in absolute and relative form, implicit repetition,
// comma or whitespace separators
func Parse(data string) (Shape, error) {
	toks, err := tokenize(data)
	if err != nil {
		return Shape{}, err
	}
	if len(toks) == 0 {
		return Shape{}, ErrEmptyPath
	}

	p := pathBuilder{}
	i := 0
	for i < len(toks) {
		t := toks[i]
		if t.cmd == 0 {
			return Shape{}, errors.Wrapf(ErrMissingArgs, "number without command at offset %d", t.pos)
		}
		i++

		upper := unicode.ToUpper(t.cmd)
		relative := t.cmd != upper
		n := argCount[upper]

		if len(p.cmds) == 0 && upper != 'M' {
			return Shape{}, errors.Wrapf(ErrNoMoveTo, "got %q at offset %d", t.cmd, t.pos)
		}

		if n == 0 {
			p.close()
			continue
		}

		// At least one argument group is required, more groups repeat the command
		first := true
		for first || (i < len(toks) && toks[i].cmd == 0) {
			if i+n > len(toks) {
				return Shape{}, errors.Wrapf(ErrMissingArgs, "%q at offset %d", t.cmd, t.pos)
			}
			args := make([]float64, n)
			for k := 0; k < n; k++ {
				if toks[i+k].cmd != 0 {
					return Shape{}, errors.Wrapf(ErrMissingArgs, "%q at offset %d", t.cmd, t.pos)
				}
				args[k] = toks[i+k].num
			}
			i += n

			op := upper
			// Extra pairs after a move are implicit line-tos
			if upper == 'M' && !first {
				op = 'L'
			}
			p.apply(op, relative, args)
			first = false
		}
	}

	return Shape{index: -1, data: data, cmds: p.cmds}, nil
}

// MustParse is Parse for built-in data; panics on error
func MustParse(data string) Shape {
	s, err := Parse(data)
	if err != nil {
		panic(errors.Wrapf(err, "parse %q", data))
	}
	return s
}

func tokenize(data string) ([]token, error) {
	var toks []token
	runes := []rune(data)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == ',' || unicode.IsSpace(r):
			i++
		case unicode.IsLetter(r) && r != 'e' && r != 'E':
			if _, ok := argCount[unicode.ToUpper(r)]; !ok {
				return nil, errors.Wrapf(ErrBadCommand, "%q at offset %d", r, i)
			}
			toks = append(toks, token{cmd: r, pos: i})
			i++
		case r == '-' || r == '+' || r == '.' || unicode.IsDigit(r):
			start := i
			i = scanNumber(runes, i)
			v, err := strconv.ParseFloat(string(runes[start:i]), 64)
			if err != nil {
				return nil, errors.Wrapf(ErrBadNumber, "%q at offset %d", string(runes[start:i]), start)
			}
			toks = append(toks, token{num: v, pos: start})
		default:
			return nil, errors.Wrapf(ErrBadCommand, "%q at offset %d", r, i)
		}
	}
	return toks, nil
}

// scanNumber returns the index just past the number starting at i
func scanNumber(runes []rune, i int) int {
	if runes[i] == '-' || runes[i] == '+' {
		i++
	}
	seenDot := false
	for i < len(runes) {
		r := runes[i]
		if unicode.IsDigit(r) {
			i++
			continue
		}
		if r == '.' && !seenDot {
			seenDot = true
			i++
			continue
		}
		break
	}
	if i < len(runes) && (runes[i] == 'e' || runes[i] == 'E') {
		i++
		if i < len(runes) && (runes[i] == '-' || runes[i] == '+') {
			i++
		}
		for i < len(runes) && unicode.IsDigit(runes[i]) {
			i++
		}
	}
	return i
}

// pathBuilder tracks the pen so relative and axis commands resolve to absolute points
type pathBuilder struct {
	cmds  []Command
	pen   Point
	start Point
}

func (p *pathBuilder) apply(op rune, relative bool, a []float64) {
	off := Point{}
	if relative {
		off = p.pen
	}
	pt := func(x, y float64) Point {
		return Point{X: x + off.X, Y: y + off.Y}
	}

	switch op {
	case 'M':
		end := pt(a[0], a[1])
		p.cmds = append(p.cmds, Command{Op: OpMove, Pts: [3]Point{end}})
		p.pen, p.start = end, end
	case 'L':
		end := pt(a[0], a[1])
		p.cmds = append(p.cmds, Command{Op: OpLine, Pts: [3]Point{end}})
		p.pen = end
	case 'H':
		end := Point{X: a[0] + off.X, Y: p.pen.Y}
		p.cmds = append(p.cmds, Command{Op: OpLine, Pts: [3]Point{end}})
		p.pen = end
	case 'V':
		end := Point{X: p.pen.X, Y: a[0] + off.Y}
		p.cmds = append(p.cmds, Command{Op: OpLine, Pts: [3]Point{end}})
		p.pen = end
	case 'Q':
		c, end := pt(a[0], a[1]), pt(a[2], a[3])
		p.cmds = append(p.cmds, Command{Op: OpQuad, Pts: [3]Point{c, end}})
		p.pen = end
	case 'C':
		c1, c2, end := pt(a[0], a[1]), pt(a[2], a[3]), pt(a[4], a[5])
		p.cmds = append(p.cmds, Command{Op: OpCubic, Pts: [3]Point{c1, c2, end}})
		p.pen = end
	}
}

func (p *pathBuilder) close() {
	p.cmds = append(p.cmds, Command{Op: OpClose})
	p.pen = p.start
}
