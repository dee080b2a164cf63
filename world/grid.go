package world

import (
	"math"

	"github.com/nstehr/rally/rally-core/model"
)

// DefaultCellSize should be at least as large as the largest density radius
// queried, so a lookup never needs more than the 3x3 neighbourhood.
const DefaultCellSize = 40.0

// SpatialGrid buckets agents by cell so density queries only touch nearby
// agents. Unlike a fixed-size map grid it hashes cells, because match
// instances have no fixed bounds.
type SpatialGrid struct {
	cellSize float64
	cells    map[[2]int][]int // cell → indexes into agents
	agents   []model.AgentView
}

func NewSpatialGrid(cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &SpatialGrid{
		cellSize: cellSize,
		cells:    make(map[[2]int][]int),
	}
}

func (g *SpatialGrid) cell(x, y float64) [2]int {
	return [2]int{int(math.Floor(x / g.cellSize)), int(math.Floor(y / g.cellSize))}
}

// Index resets the grid and inserts every live agent.
func (g *SpatialGrid) Index(agents []model.AgentView) {
	clear(g.cells)
	g.agents = agents
	for i, a := range agents {
		if !a.Alive || !a.InMatch {
			continue
		}
		c := g.cell(a.Pos.X, a.Pos.Y)
		g.cells[c] = append(g.cells[c], i)
	}
}

// Within calls fn for every indexed agent within radius of p (2D distance).
// Radii larger than the cell size widen the scanned neighbourhood.
func (g *SpatialGrid) Within(p model.Vec3, radius float64, fn func(a model.AgentView, dist float64)) {
	span := int(math.Ceil(radius / g.cellSize))
	if span < 1 {
		span = 1
	}
	center := g.cell(p.X, p.Y)
	for dr := -span; dr <= span; dr++ {
		for dc := -span; dc <= span; dc++ {
			for _, idx := range g.cells[[2]int{center[0] + dc, center[1] + dr}] {
				a := g.agents[idx]
				if d := a.Pos.Dist2D(p); d <= radius {
					fn(a, d)
				}
			}
		}
	}
}

// Count returns how many live agents of team are within radius of p.
func (g *SpatialGrid) Count(team model.TeamID, p model.Vec3, radius float64) int {
	n := 0
	g.Within(p, radius, func(a model.AgentView, _ float64) {
		if a.Team == team {
			n++
		}
	})
	return n
}

// Nearest returns the closest live agent of team within radius of p. Ties
// go to the lower agent id so results do not depend on map iteration.
func (g *SpatialGrid) Nearest(team model.TeamID, p model.Vec3, radius float64) (model.AgentView, bool) {
	var (
		best  model.AgentView
		bestD = math.Inf(1)
		found bool
	)
	g.Within(p, radius, func(a model.AgentView, d float64) {
		if a.Team != team {
			return
		}
		if d < bestD || (d == bestD && a.ID < best.ID) {
			best, bestD, found = a, d, true
		}
	})
	return best, found
}
