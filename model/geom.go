package model

import "math"

// Vec3 is a world-space position. Waypoints, agents and objective points all
// share it; Z is height.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Waypoint is one authored vertex of a path segment.
type Waypoint = Vec3

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Dist returns the straight-line 3D distance between v and o.
func (v Vec3) Dist(o Vec3) float64 {
	d := v.Sub(o)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

// Dist2D ignores height. Spatial density queries use it so a point on a
// ramp still counts agents standing just below it.
func (v Vec3) Dist2D(o Vec3) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Lerp returns the point t (0–1) of the way from v to o.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
		Z: v.Z + (o.Z-v.Z)*t,
	}
}
