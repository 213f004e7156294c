package field

import "fmt"

// Layer is a parallax depth tier
type Layer int

const (
	LayerBackground Layer = iota
	LayerMiddle
	LayerForeground
)

// LayerCount is the number of depth tiers
const LayerCount = 3

// LayerParams holds the fixed visual parameters of a layer
type LayerParams struct {
	ScaleMin, ScaleMax     float64
	OpacityMin, OpacityMax float64
	// SpeedFactor scales drift amplitude; background drifts farthest to read as depth
	SpeedFactor float64
	// Intensity is the share of the text color applied to strokes
	Intensity float64
	// Z orders layers back to front
	Z int
}

var layerParams = [LayerCount]LayerParams{
	{ScaleMin: 0.2, ScaleMax: 0.4, OpacityMin: 0.1, OpacityMax: 0.3, SpeedFactor: 1.0, Intensity: 0.3, Z: 0},
	{ScaleMin: 0.3, ScaleMax: 0.6, OpacityMin: 0.2, OpacityMax: 0.5, SpeedFactor: 0.7, Intensity: 0.5, Z: 10},
	{ScaleMin: 0.4, ScaleMax: 0.8, OpacityMin: 0.3, OpacityMax: 0.7, SpeedFactor: 0.4, Intensity: 0.7, Z: 20},
}

// Valid reports whether l is one of the three tiers
func (l Layer) Valid() bool {
	return l >= LayerBackground && l <= LayerForeground
}

// Params returns the layer's parameters, falling back to background for invalid layers
func (l Layer) Params() LayerParams {
	if !l.Valid() {
		return layerParams[LayerBackground]
	}
	return layerParams[l]
}

func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerMiddle:
		return "middle"
	case LayerForeground:
		return "foreground"
	}
	return fmt.Sprintf("layer(%d)", int(l))
}
