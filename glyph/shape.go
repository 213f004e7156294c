package glyph

// Op is a single path drawing operation
type Op uint8

const (
	OpMove Op = iota
	OpLine
	OpQuad
	OpCubic
	OpClose
)

func (o Op) String() string {
	switch o {
	case OpMove:
		return "M"
	case OpLine:
		return "L"
	case OpQuad:
		return "Q"
	case OpCubic:
		return "C"
	case OpClose:
		return "Z"
	}
	return "?"
}

// BoxSize is the side of the square design box all shapes are authored in
const BoxSize = 100.0

// Point is a coordinate inside the design box
type Point struct {
	X, Y float64
}

// Command is an absolute drawing command
// Pts holds control points followed by the end point; unused slots are zero
// Move/Line use Pts[0], Quad uses Pts[0..1], Cubic uses Pts[0..2], Close uses none
type Command struct {
	Op  Op
	Pts [3]Point
}

// End returns the point the pen rests on after the command
func (c Command) End() Point {
	switch c.Op {
	case OpMove, OpLine:
		return c.Pts[0]
	case OpQuad:
		return c.Pts[1]
	case OpCubic:
		return c.Pts[2]
	}
	return Point{}
}

// Tracer receives path commands; *gg.Context satisfies it
type Tracer interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
}

// Shape is an immutable glyph path; the zero value is an empty shape
type Shape struct {
	index int
	data  string
	cmds  []Command
}

// Data returns the source path data
func (s Shape) Data() string {
	return s.data
}

// Index returns the catalog position, or -1 for shapes parsed outside the catalog
func (s Shape) Index() int {
	if s.cmds == nil {
		return -1
	}
	return s.index
}

// IsZero reports whether the shape has no commands
func (s Shape) IsZero() bool {
	return len(s.cmds) == 0
}

// Len returns the number of commands
func (s Shape) Len() int {
	return len(s.cmds)
}

// Commands returns a copy of the command list
func (s Shape) Commands() []Command {
	out := make([]Command, len(s.cmds))
	copy(out, s.cmds)
	return out
}

// Equal compares shapes by their command sequence
func (s Shape) Equal(o Shape) bool {
	if len(s.cmds) != len(o.cmds) {
		return false
	}
	for i := range s.cmds {
		if s.cmds[i] != o.cmds[i] {
			return false
		}
	}
	return true
}

// Trace replays the shape onto t
func (s Shape) Trace(t Tracer) {
	for _, c := range s.cmds {
		switch c.Op {
		case OpMove:
			t.MoveTo(c.Pts[0].X, c.Pts[0].Y)
		case OpLine:
			t.LineTo(c.Pts[0].X, c.Pts[0].Y)
		case OpQuad:
			t.QuadraticTo(c.Pts[0].X, c.Pts[0].Y, c.Pts[1].X, c.Pts[1].Y)
		case OpCubic:
			t.CubicTo(c.Pts[0].X, c.Pts[0].Y, c.Pts[1].X, c.Pts[1].Y, c.Pts[2].X, c.Pts[2].Y)
		case OpClose:
			t.ClosePath()
		}
	}
}

// Bounds returns the axis-aligned box of all command points
// Control points are included, so curves may overshoot their true extent slightly
func (s Shape) Bounds() (min, max Point) {
	if len(s.cmds) == 0 {
		return Point{}, Point{}
	}
	first := true
	for _, c := range s.cmds {
		n := 0
		switch c.Op {
		case OpMove, OpLine:
			n = 1
		case OpQuad:
			n = 2
		case OpCubic:
			n = 3
		}
		for _, p := range c.Pts[:n] {
			if first {
				min, max = p, p
				first = false
				continue
			}
			min.X = minf(min.X, p.X)
			min.Y = minf(min.Y, p.Y)
			max.X = maxf(max.X, p.X)
			max.Y = maxf(max.Y, p.Y)
		}
	}
	return min, max
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
