package world

import (
	"math"

	"github.com/nstehr/rally/rally-core/model"
)

// EyeHeight is added to both endpoints of a sight line.
const EyeHeight = 1.8

// lineOfSight samples the height grid along a→b and reports false as soon
// as the ground rises above the sight line. A sample with no height data
// blocks the line.
func lineOfSight(g *model.HeightGrid, a, b model.Vec3) bool {
	if g == nil || g.CellSize <= 0 {
		return false
	}
	from := model.Vec3{X: a.X, Y: a.Y, Z: a.Z + EyeHeight}
	to := model.Vec3{X: b.X, Y: b.Y, Z: b.Z + EyeHeight}

	steps := int(math.Ceil(from.Dist2D(to) / (g.CellSize / 2)))
	for i := 1; i < steps; i++ {
		p := from.Lerp(to, float64(i)/float64(steps))
		h, ok := g.AtWorld(p.X, p.Y)
		if !ok || h > p.Z {
			return false
		}
	}
	return true
}
