package render

import "math"

// BackdropRenderer paints the radial glow behind the field
type BackdropRenderer struct{}

// Render implements Renderer
func (BackdropRenderer) Render(ctx Context, buf *Buffer) {
	w, h := buf.Size()
	if w == 0 || h == 0 {
		return
	}
	cx, cy := float64(w)/2, float64(h)/2
	// Ellipse reaches the farthest corner
	rx, ry := cx*math.Sqrt2, cy*math.Sqrt2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			t := min(1, math.Sqrt(dx*dx+dy*dy))
			buf.SetBg(x, y, Blend(ColorBackground, ColorGlow, BackdropAlpha*(1-t)))
		}
	}
}
