package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/echoji/glyph"
	"github.com/lixenwraith/echoji/render"
)

const (
	catalogBox     = 12
	catalogPerLine = 4
)

var (
	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(render.ColorAccent.Colorful().Hex())).
			Foreground(lipgloss.Color(render.ColorText.Colorful().Hex())).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(render.ColorGlow.Colorful().Hex()))
)

// printCatalog writes every catalog shape as a quadrant-block tile
func printCatalog(w io.Writer, boxCells int) error {
	if boxCells <= 0 {
		boxCells = catalogBox
	}
	raster := render.NewRasterizer()

	tiles := make([]string, 0, glyph.Len())
	for i, shape := range glyph.Catalog() {
		m, err := raster.Mask(shape, 0, boxCells)
		if err != nil {
			return fmt.Errorf("glyph %d: %w", i, err)
		}
		title := titleStyle.Render(fmt.Sprintf("#%d", i))
		tiles = append(tiles, tileStyle.Render(lipgloss.JoinVertical(lipgloss.Center, title, maskText(m))))
	}

	var rows []string
	for i := 0; i < len(tiles); i += catalogPerLine {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles[i:min(i+catalogPerLine, len(tiles))]...))
	}
	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, rows...))
	return err
}

// maskText renders a mask as rows of quadrant characters
func maskText(m *render.Mask) string {
	var sb strings.Builder
	for y := 0; y < m.H; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < m.W; x++ {
			bits, _ := m.At(x, y)
			sb.WriteRune(render.QuadrantChars[bits&0xF])
		}
	}
	return sb.String()
}
