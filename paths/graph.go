// Package paths holds the hand-authored path graphs and the selector and
// walker that move agents along them.
package paths

import (
	"errors"
	"fmt"
	"slices"

	"github.com/nstehr/rally/rally-core/model"
)

var (
	ErrUnknownMatchType = errors.New("unknown match type")
	ErrDuplicateGraph   = errors.New("duplicate path graph")
	ErrEmptySegment     = errors.New("segment has no waypoints")
)

// Segment is an ordered polyline. Segments that model one-way transitions
// (drops, jump pads) are not reversible and are only ever walked forward.
type Segment struct {
	Name       string
	Points     []model.Waypoint
	Reversible bool
}

func (s Segment) Start() model.Waypoint { return s.Points[0] }
func (s Segment) End() model.Waypoint   { return s.Points[len(s.Points)-1] }

// Length is the walked distance from start to end.
func (s Segment) Length() float64 {
	total := 0.0
	for i := 1; i < len(s.Points); i++ {
		total += s.Points[i-1].Dist(s.Points[i])
	}
	return total
}

// Graph is the immutable segment collection for one match type. A segment's
// identity is its index.
type Graph struct {
	matchType model.MatchType
	segments  []Segment
}

// NewGraph copies segs so later changes by the caller cannot leak in.
func NewGraph(mt model.MatchType, segs []Segment) (*Graph, error) {
	if !mt.Known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMatchType, mt)
	}
	g := &Graph{matchType: mt, segments: make([]Segment, len(segs))}
	for i, s := range segs {
		if len(s.Points) == 0 {
			return nil, fmt.Errorf("%s segment %d (%s): %w", mt, i, s.Name, ErrEmptySegment)
		}
		s.Points = slices.Clone(s.Points)
		g.segments[i] = s
	}
	return g, nil
}

func (g *Graph) MatchType() model.MatchType { return g.matchType }

func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.segments)
}

// Segment returns a copy of segment i for diagnostics.
func (g *Graph) Segment(i int) (Segment, bool) {
	if g == nil || i < 0 || i >= len(g.segments) {
		return Segment{}, false
	}
	s := g.segments[i]
	s.Points = slices.Clone(s.Points)
	return s, true
}

// Tuning holds the per-match-type selector constants.
type Tuning struct {
	// NearBand is the join distance below which proximity is not penalised.
	NearBand float64 `yaml:"near_band" json:"near_band"`
	// ProximityWeight scales the join distance beyond NearBand.
	ProximityWeight float64 `yaml:"proximity_weight" json:"proximity_weight"`
	// MaxJoinDistance is the ceiling beyond which a segment is ignored.
	MaxJoinDistance float64 `yaml:"max_join_distance" json:"max_join_distance"`
}

func DefaultTuning() Tuning {
	return Tuning{
		NearBand:        15,
		ProximityWeight: 3,
		MaxJoinDistance: 120,
	}
}

// Library maps match types to their graphs. It is built once at start and
// only read afterwards, so lookups need no locking.
type Library struct {
	graphs map[model.MatchType]*Graph
}

func NewLibrary(graphs ...*Graph) (*Library, error) {
	l := &Library{graphs: make(map[model.MatchType]*Graph, len(graphs))}
	for _, g := range graphs {
		if _, dup := l.graphs[g.matchType]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateGraph, g.matchType)
		}
		l.graphs[g.matchType] = g
	}
	return l, nil
}

func (l *Library) Get(mt model.MatchType) (*Graph, bool) {
	if l == nil {
		return nil, false
	}
	g, ok := l.graphs[mt]
	return g, ok
}

// MatchTypes lists the loaded match types in canonical order.
func (l *Library) MatchTypes() []model.MatchType {
	var out []model.MatchType
	for _, mt := range model.MatchTypes {
		if _, ok := l.graphs[mt]; ok {
			out = append(out, mt)
		}
	}
	return out
}
