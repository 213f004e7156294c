package render

import (
	"github.com/lixenwraith/echoji/field"
)

// Context provides frame state for renderers, passed by value
type Context struct {
	// Elapsed is seconds since the field mounted, DeltaTime since the previous frame
	Elapsed   float64
	DeltaTime float64

	Width  int
	Height int

	// Mouse position in cells, MouseIn false when the pointer left the window
	MouseX  int
	MouseY  int
	MouseIn bool

	Snapshot field.Snapshot
}

// Cell maps a viewport percentage point to the cell grid
func (c Context) Cell(p field.Point) (float64, float64) {
	return p.X / 100 * float64(c.Width), p.Y / 100 * float64(c.Height)
}
