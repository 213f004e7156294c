package render

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/echoji/field"
	"github.com/lixenwraith/echoji/motion"
)

// DefaultBoxCells is the glyph box width at scale 1 when the renderer is not told otherwise
const DefaultBoxCells = 18

type mounted struct {
	plan    motion.Plan
	anchor  *motion.Anchor
	mountAt float64
}

type placement struct {
	inst   field.Instance
	layer  field.Layer
	frame  motion.Frame
	cx, cy float64
}

// FieldRenderer draws every instance of the snapshot with its aura, glow and stroke
type FieldRenderer struct {
	// BoxCells overrides the scale-1 glyph width, 0 derives it from the screen width
	BoxCells int

	raster  *Rasterizer
	log     *logrus.Entry
	mounted map[string]*mounted
	order   []placement
	hovered string
}

// NewFieldRenderer creates a renderer with its own mask cache
func NewFieldRenderer(log *logrus.Entry) *FieldRenderer {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &FieldRenderer{
		raster:  NewRasterizer(),
		log:     log.WithField("component", "field_renderer"),
		mounted: make(map[string]*mounted),
	}
}

// Hovered returns the id under the pointer in the last frame
func (r *FieldRenderer) Hovered() string {
	return r.hovered
}

// Mounted returns the number of instances with live animation state
func (r *FieldRenderer) Mounted() int {
	return len(r.mounted)
}

func (r *FieldRenderer) boxCells(ctx Context) int {
	if r.BoxCells > 0 {
		return r.BoxCells
	}
	return max(8, ctx.Width/8)
}

// Render implements Renderer
func (r *FieldRenderer) Render(ctx Context, buf *Buffer) {
	r.sync(ctx)
	base := float64(r.boxCells(ctx))

	r.hovered = ""
	if ctx.MouseIn {
		for _, p := range r.order {
			half := base * p.frame.Scale / 2
			if math.Abs(float64(ctx.MouseX)+0.5-p.cx) <= half && math.Abs(float64(ctx.MouseY)+0.5-p.cy) <= half/2 {
				r.hovered = p.inst.ID
			}
		}
	}

	for _, p := range r.order {
		f := p.frame
		if p.inst.ID == r.hovered {
			f = f.Hovered()
		}
		box := int(math.Round(base * f.Scale))
		if box < 1 || f.Opacity <= 0 {
			continue
		}
		r.drawAura(buf, p.cx, p.cy, float64(box), f)

		mask, err := r.raster.Mask(p.inst.Shape, f.Rotation, box)
		if err != nil {
			r.log.WithError(err).WithField("id", p.inst.ID).Debug("rasterize failed")
			continue
		}
		ox := int(math.Round(p.cx)) - mask.W/2
		oy := int(math.Round(p.cy)) - mask.H/2
		r.drawGlow(buf, mask, ox, oy, float64(box), p.layer, f)
		r.drawStroke(buf, mask, ox, oy, p.layer, f)
	}
}

// sync mounts new instances, drops departed ones and orders the rest by layer
func (r *FieldRenderer) sync(ctx Context) {
	snap := ctx.Snapshot
	seen := make(map[string]struct{}, snap.Len())
	r.order = r.order[:0]

	for l := field.LayerBackground; l < field.LayerCount; l++ {
		for _, inst := range snap.Instances {
			layer := inst.Layer
			if !layer.Valid() {
				layer = field.LayerBackground
			}
			if layer != l {
				continue
			}
			seen[inst.ID] = struct{}{}

			target := snap.Project(inst)
			e, ok := r.mounted[inst.ID]
			if !ok {
				e = &mounted{
					plan:    motion.NewPlan(inst),
					anchor:  motion.NewAnchor(target),
					mountAt: ctx.Elapsed,
				}
				r.mounted[inst.ID] = e
			}
			e.anchor.Follow(target)
			pos := e.anchor.Update(ctx.DeltaTime)

			frame := e.plan.Sample(ctx.Elapsed - e.mountAt)
			cx, cy := ctx.Cell(field.Point{X: pos.X + frame.OffsetX, Y: pos.Y + frame.OffsetY})
			r.order = append(r.order, placement{inst: inst, layer: layer, frame: frame, cx: cx, cy: cy})
		}
	}

	for id := range r.mounted {
		if _, ok := seen[id]; !ok {
			delete(r.mounted, id)
		}
	}
}

func (r *FieldRenderer) drawAura(buf *Buffer, cx, cy, box float64, f motion.Frame) {
	strength := f.Aura * AuraAlpha * f.Opacity
	if strength <= 0 {
		return
	}
	rx := box * AuraRadius
	ry := rx / 2
	for y := int(cy - ry); y <= int(cy+ry); y++ {
		for x := int(cx - rx); x <= int(cx+rx); x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			d := math.Sqrt(dx*dx + dy*dy)
			if d >= AuraStop {
				continue
			}
			buf.Set(x, y, 0, RGBBlack, ColorGlow, BlendScreenBg, strength*(1-d/AuraStop))
		}
	}
}

// drawGlow tints the background around lit cells, radius given in design-box pixels
func (r *FieldRenderer) drawGlow(buf *Buffer, m *Mask, ox, oy int, box float64, layer field.Layer, f motion.Frame) {
	if f.Glow <= 0 {
		return
	}
	rx := int(math.Ceil(f.Glow / 100 * box))
	ry := max(1, rx/2)
	alpha := GlowAlpha * min(1, f.Glow/motion.HoverGlow) * f.Opacity
	if alpha <= 0 {
		return
	}

	w, h := m.W+2*rx, m.H+2*ry
	halo := make([]bool, w*h)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if bits, _ := m.At(x, y); bits == 0 {
				continue
			}
			for dy := -ry; dy <= ry; dy++ {
				for dx := -rx; dx <= rx; dx++ {
					halo[(y+ry+dy)*w+x+rx+dx] = true
				}
			}
		}
	}

	tint := LayerColor(layer)
	for i, on := range halo {
		if on {
			buf.Set(ox-rx+i%w, oy-ry+i/w, 0, RGBBlack, tint, BlendScreenBg, alpha)
		}
	}
}

func (r *FieldRenderer) drawStroke(buf *Buffer, m *Mask, ox, oy int, layer field.Layer, f motion.Frame) {
	strength := LayerIntensity(layer) * f.Opacity
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			bits, cover := m.At(x, y)
			if bits == 0 {
				continue
			}
			bg := buf.Get(ox+x, oy+y).Bg
			buf.SetFg(ox+x, oy+y, QuadrantChars[bits], Blend(bg, ColorText, cover*strength))
		}
	}
}
