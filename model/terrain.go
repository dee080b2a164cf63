package model

import "math"

// HeightGrid is a coarse row-major sampling of ground height sent by the host
// at instance start. NaN samples mark holes (void, out of the playable area).
type HeightGrid struct {
	Cols     int       `json:"cols"`
	Rows     int       `json:"rows"`
	CellSize float64   `json:"cell_size"` // world units per cell, square cells
	OriginX  float64   `json:"origin_x"`
	OriginY  float64   `json:"origin_y"`
	Heights  []float64 `json:"heights"` // row-major: Heights[row*Cols + col]
}

// At returns the height at grid coordinates (col, row). ok is false for
// out-of-bounds coordinates and holes.
func (g *HeightGrid) At(col, row int) (float64, bool) {
	if g == nil || col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return 0, false
	}
	idx := row*g.Cols + col
	if idx >= len(g.Heights) {
		return 0, false
	}
	h := g.Heights[idx]
	if math.IsNaN(h) {
		return 0, false
	}
	return h, true
}

// Cell converts world coordinates to grid coordinates.
func (g *HeightGrid) Cell(x, y float64) (int, int) {
	col := int(math.Floor((x - g.OriginX) / g.CellSize))
	row := int(math.Floor((y - g.OriginY) / g.CellSize))
	return col, row
}

// AtWorld returns the height under world position (x, y). Zero-sized cells
// report no data.
func (g *HeightGrid) AtWorld(x, y float64) (float64, bool) {
	if g == nil || g.CellSize <= 0 {
		return 0, false
	}
	return g.At(g.Cell(x, y))
}

// CellCenter returns the world coordinates of the center of cell (col, row).
func (g *HeightGrid) CellCenter(col, row int) (float64, float64) {
	x := g.OriginX + (float64(col)+0.5)*g.CellSize
	y := g.OriginY + (float64(row)+0.5)*g.CellSize
	return x, y
}

// Contains reports whether world position (x, y) falls inside the grid.
func (g *HeightGrid) Contains(x, y float64) bool {
	if g == nil || g.CellSize <= 0 {
		return false
	}
	col, row := g.Cell(x, y)
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}
