package prism

import (
	"math"
	"strconv"
	"strings"
)

// Svg is a rendered isometric image, grounded on
// original_source/lib/src/svg.rs's Svg.
type Svg struct {
	// Content is the full <svg>...</svg> markup.
	Content string
	// Unit is the grid unit length each vertex coordinate was scaled by.
	Unit float64
	// ShiftX and ShiftY are the minimum x/y coordinates across all
	// polygon vertices, after force-square centering (if applied) —
	// useful for a caller that wants to map its own coordinates onto
	// the same grid the SVG was drawn on.
	ShiftX float64
	ShiftY float64
}

// BuildSvg serializes polygons into an SVG document. unit scales
// every vertex coordinate; forceSquare pads the narrower
// dimension of the bounding box so width equals height, centering the
// artwork within the square.
func BuildSvg(polygons []Polygon, unit float64, forceSquare bool) Svg {
	shiftX, shiftY, width, height := svgBounds(polygons, forceSquare)

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="`)
	b.WriteString(formatCoord(width * unit))
	b.WriteString(`" height="`)
	b.WriteString(formatCoord(height * unit))
	b.WriteString(`">`)
	for _, poly := range polygons {
		b.WriteString(makePolygonTag(poly, shiftX, shiftY, unit))
	}
	b.WriteString("</svg>")

	return Svg{
		Content: b.String(),
		Unit:    unit,
		ShiftX:  -shiftX,
		ShiftY:  -shiftY,
	}
}

// svgBounds returns (shiftX, shiftY, width, height), where shiftX/shiftY
// are the amount to add to every vertex so the minimum coordinate lands
// at 0 (plus any force-square centering offset).
func svgBounds(polygons []Polygon, forceSquare bool) (shiftX, shiftY, width, height float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for _, poly := range polygons {
		for _, v := range poly.Verts {
			minX = math.Min(minX, v[0])
			minY = math.Min(minY, v[1])
			maxX = math.Max(maxX, v[0])
			maxY = math.Max(maxY, v[1])
		}
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 0, 0
	}

	shiftX = -minX
	shiftY = -minY
	width = maxX - minX
	height = maxY - minY

	if !forceSquare {
		return shiftX, shiftY, width, height
	}

	side := math.Max(width, height)
	shiftX += (side - width) / 2
	shiftY += (side - height) / 2
	return shiftX, shiftY, side, side
}

func makePolygonTag(poly Polygon, shiftX, shiftY, unit float64) string {
	if len(poly.Verts) == 0 {
		return ""
	}
	path := makePath(poly.Verts, shiftX, shiftY, unit)
	return `<path d="` + path + `" fill="` + poly.Color.String() + `"/>`
}

func makePath(verts [][2]float64, shiftX, shiftY, unit float64) string {
	var b strings.Builder
	b.WriteByte('M')
	for _, v := range verts {
		b.WriteString(formatCoord((v[0] + shiftX) * unit))
		b.WriteByte(' ')
		b.WriteString(formatCoord((v[1] + shiftY) * unit))
		b.WriteByte('L')
	}
	s := b.String()
	return s[:len(s)-1] + "Z"
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
