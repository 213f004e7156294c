package glyph

import (
	"math/rand"
)

// catalogData holds the abstract calligraphic strokes, authored in a 100x100 box
// They are evocative but deliberately not legible as any character
var catalogData = [...]string{
	"M20 80 C40 20, 60 20, 80 80",
	"M50 20 V80 M20 50 H80",
	"M20 20 Q50 50, 80 20",
	"M20 80 Q50 50, 80 80",
	"M20 30 H80 M20 70 H80 M50 10 V90",
	"M30 20 L70 80 M70 20 L30 80",
	"M50 10 C 20 40, 80 60, 50 90",
	"M20 50 C 40 20, 60 80, 80 50",
	"M25 25 H75 V75 H25 Z",
	"M50 20 L80 80 L20 80 Z",
	"M20 20 C 80 20, 20 80, 80 80",
	"M30 70 Q50 90, 70 70 M50 20 V70",
	"M20 80 C 30 40, 70 40, 80 80 M50 20 V50",
	"M20 20 L80 80 M20 80 L80 20 M50 15 V85",
	"M30 30 C 30 70, 70 70, 70 30",
}

var catalog = buildCatalog()

func buildCatalog() []Shape {
	shapes := make([]Shape, len(catalogData))
	for i, d := range catalogData {
		s := MustParse(d)
		s.index = i
		shapes[i] = s
	}
	return shapes
}

// Len returns the catalog size
func Len() int {
	return len(catalog)
}

// At returns the catalog shape at i
func At(i int) Shape {
	return catalog[i]
}

// Catalog returns all catalog shapes in order
func Catalog() []Shape {
	out := make([]Shape, len(catalog))
	copy(out, catalog)
	return out
}

// PickRandom selects a catalog shape uniformly
func PickRandom(r *rand.Rand) Shape {
	return catalog[r.Intn(len(catalog))]
}
