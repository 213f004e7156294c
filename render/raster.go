package render

import (
	"image"
	"math"
	"sync"

	"github.com/gogpu/gg"

	"github.com/lixenwraith/echoji/glyph"
)

// QuadrantChars provides 2x2 sub-cell resolution
// Bitmap encoding: bit0=UL, bit1=UR, bit2=LL, bit3=LR
var QuadrantChars = [16]rune{
	' ', '▘', '▝', '▀',
	'▖', '▌', '▞', '▛',
	'▗', '▚', '▐', '▜',
	'▄', '▙', '▟', '█',
}

const (
	// Design-box units the canvas extends past each edge, room for rotated corners
	rasterPad = 20.0
	// Raster pixels per quadrant column; rows use twice this since cells are twice as tall as wide
	superSample = 2
	// Quadrant lights at this mean stroke coverage
	quadrantThreshold = 0.2
	strokeWidth       = 3.0
	rotationStep      = 6.0
	maxCachedMasks    = 1024
)

// Mask is a rasterized glyph footprint on the cell grid
// The design box center sits at (W/2, H/2)
type Mask struct {
	W, H  int
	Bits  []uint8
	Cover []float64
}

// At returns quadrant bits and mean lit coverage of a cell
func (m *Mask) At(x, y int) (uint8, float64) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return 0, 0
	}
	i := y*m.W + x
	return m.Bits[i], m.Cover[i]
}

// Lit counts non-empty cells
func (m *Mask) Lit() int {
	n := 0
	for _, b := range m.Bits {
		if b != 0 {
			n++
		}
	}
	return n
}

type rasterKey struct {
	path  string
	step  int
	cells int
}

// Rasterizer strokes shapes with gg and caches the quadrant masks
type Rasterizer struct {
	mu    sync.Mutex
	cache map[rasterKey]*Mask
}

// NewRasterizer creates an empty cache
func NewRasterizer() *Rasterizer {
	return &Rasterizer{cache: make(map[rasterKey]*Mask)}
}

// Footprint returns the mask size in cells for a glyph box of boxCells width
func Footprint(boxCells int) (int, int) {
	w := int(math.Ceil(float64(boxCells) * (100 + 2*rasterPad) / 100))
	if w%2 != 0 {
		w++
	}
	return w, w / 2
}

// Mask strokes shape rotated by deg degrees into a box boxCells wide
func (r *Rasterizer) Mask(shape glyph.Shape, deg float64, boxCells int) (*Mask, error) {
	if boxCells < 1 || shape.IsZero() {
		return &Mask{}, nil
	}
	step := int(math.Round(normalizeDeg(deg) / rotationStep))
	key := rasterKey{path: shape.Data(), step: step, cells: boxCells}

	r.mu.Lock()
	m, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return m, nil
	}

	m, err := rasterize(shape, float64(step)*rotationStep, boxCells)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if len(r.cache) >= maxCachedMasks {
		clear(r.cache)
	}
	r.cache[key] = m
	r.mu.Unlock()
	return m, nil
}

// Len returns the number of cached masks
func (r *Rasterizer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

func normalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func rasterize(shape glyph.Shape, deg float64, boxCells int) (*Mask, error) {
	w, h := Footprint(boxCells)
	// Square canvas: w cells = 2w quadrant columns, h cells = 2h quadrant rows of double height
	px := 2 * w * superSample
	dc := gg.NewContext(px, px)
	defer dc.Close()

	span := 100 + 2*rasterPad
	k := float64(px) / span
	dc.Scale(k, k)
	dc.Translate(rasterPad, rasterPad)
	dc.RotateAbout(deg*math.Pi/180, glyph.BoxSize/2, glyph.BoxSize/2)

	// Hairlines at small sizes would fall between quadrant centers
	dc.SetLineWidth(max(strokeWidth, float64(superSample)/k))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetRGBA(1, 1, 1, 1)
	shape.Trace(dc)
	if err := dc.Stroke(); err != nil {
		return nil, err
	}

	return quantize(dc.Image(), w, h), nil
}

// quantize averages alpha over each quadrant and packs the lit ones per cell
func quantize(img image.Image, w, h int) *Mask {
	m := &Mask{W: w, H: h, Bits: make([]uint8, w*h), Cover: make([]float64, w*h)}
	qw, qh := superSample, 2*superSample
	rgba, _ := img.(*image.RGBA)

	alphaAt := func(x, y int) float64 {
		if rgba != nil {
			return float64(rgba.Pix[rgba.PixOffset(x, y)+3]) / 255
		}
		_, _, _, a := img.At(x, y).RGBA()
		return float64(a) / 0xffff
	}

	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			var bits uint8
			var sum float64
			lit := 0
			for q := 0; q < 4; q++ {
				ox := (cx*2 + q%2) * qw
				oy := (cy*2 + q/2) * qh
				var a float64
				for y := oy; y < oy+qh; y++ {
					for x := ox; x < ox+qw; x++ {
						a += alphaAt(x, y)
					}
				}
				a /= float64(qw * qh)
				if a >= quadrantThreshold {
					bits |= 1 << q
					sum += a
					lit++
				}
			}
			i := cy*w + cx
			m.Bits[i] = bits
			if lit > 0 {
				m.Cover[i] = min(1, sum/float64(lit))
			}
		}
	}
	return m
}
