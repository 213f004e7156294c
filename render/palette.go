package render

import (
	"github.com/lixenwraith/echoji/field"
)

// Palette
var (
	ColorBackground = Hex("#000000")
	ColorText       = Hex("#f5f4f5")
	ColorAccent     = Hex("#292828")
	ColorGlow       = RGB{158, 127, 255}
)

// Effect strengths, as alpha over the backdrop
const (
	BackdropAlpha = 0.1
	AuraAlpha     = 0.3
	// Aura gradient fades out at this fraction of its radius
	AuraStop = 0.7
	// Aura radius relative to the glyph box (150 over 100)
	AuraRadius = 0.75
	// Glow halo opacity at the hover glow radius
	GlowAlpha = 0.35
)

// LayerIntensity is the text color strength for a tier, invalid layers use background
func LayerIntensity(l field.Layer) float64 {
	return l.Params().Intensity
}

// LayerColor is the text color at the tier's intensity over black
func LayerColor(l field.Layer) RGB {
	return Scale(ColorText, LayerIntensity(l))
}
