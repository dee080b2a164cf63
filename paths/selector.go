package paths

import (
	"math"

	"github.com/nstehr/rally/rally-core/model"
)

// Selection is the segment chosen to approach a destination.
type Selection struct {
	Segment int
	Reverse bool
	// Entry is the waypoint index closest to the agent when selected.
	Entry int
	Score float64
}

// Terminal returns the index of the last waypoint in the travel direction.
func (s Selection) Terminal(seg Segment) int {
	if s.Reverse {
		return 0
	}
	return len(seg.Points) - 1
}

// Select scores every segment of g for an agent at from heading to dest and
// returns the lowest-scoring one. ok is false when no segment qualifies and
// the caller should move directly instead.
func Select(g *Graph, t Tuning, from, dest model.Vec3) (Selection, bool) {
	if g == nil {
		return Selection{}, false
	}
	var (
		best  Selection
		found bool
	)
	for i, seg := range g.segments {
		distStart := seg.Start().Dist(dest)
		distEnd := seg.End().Dist(dest)

		reverse := distStart < distEnd
		if reverse && !seg.Reversible {
			continue
		}

		closest, closestDist := closestWaypoint(seg.Points, from)

		far := len(seg.Points) - 1
		exitDist := distEnd
		if reverse {
			far = 0
			exitDist = distStart
		}
		if closest == far || closestDist > t.MaxJoinDistance {
			continue
		}

		score := math.Max(0, closestDist-t.NearBand)*t.ProximityWeight + exitDist
		if !found || score < best.Score {
			best = Selection{Segment: i, Reverse: reverse, Entry: closest, Score: score}
			found = true
		}
	}
	return best, found
}

// closestWaypoint returns the first index at minimum distance from p.
func closestWaypoint(pts []model.Waypoint, p model.Vec3) (int, float64) {
	idx, best := 0, math.Inf(1)
	for i, wp := range pts {
		if d := wp.Dist(p); d < best {
			idx, best = i, d
		}
	}
	return idx, best
}
