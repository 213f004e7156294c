package render

import (
	"fmt"

	"github.com/lixenwraith/echoji/field"
	"github.com/lixenwraith/echoji/status"
)

// StatusRenderer prints population and alignment state on the top row in debug mode
type StatusRenderer struct {
	Visible bool
	// Metrics are appended after the population counts, optional
	Metrics *status.Registry
}

// IsVisible implements VisibilityToggle
func (r *StatusRenderer) IsVisible() bool {
	return r.Visible
}

// Render implements Renderer
func (r *StatusRenderer) Render(ctx Context, buf *Buffer) {
	snap := ctx.Snapshot
	c := snap.CountByLayer()
	line := fmt.Sprintf(" glyphs %d  bg %d  mid %d  fg %d", snap.Len(),
		c[field.LayerBackground], c[field.LayerMiddle], c[field.LayerForeground])
	if snap.Alignment.Active {
		line += fmt.Sprintf("  aligned @ %.0f,%.0f", snap.Alignment.Target.X, snap.Alignment.Target.Y)
	}
	if r.Metrics != nil {
		if m := r.Metrics.Line(); m != "" {
			line += "  " + m
		}
	}
	w, _ := buf.Size()
	n := buf.SetString(0, 0, line, Scale(ColorText, 0.6))
	for x := 0; x < min(n, w); x++ {
		buf.Set(x, 0, 0, RGBBlack, ColorAccent, BlendAlphaBg, 0.8)
	}
}
