package paths

import (
	"testing"

	"github.com/nstehr/rally/rally-core/model"
	"pgregory.net/rapid"
)

func genPoint(t *rapid.T, label string) model.Vec3 {
	return model.Vec3{
		X: rapid.Float64Range(-400, 400).Draw(t, label+".x"),
		Y: rapid.Float64Range(-400, 400).Draw(t, label+".y"),
		Z: rapid.Float64Range(-20, 20).Draw(t, label+".z"),
	}
}

func genGraph(t *rapid.T) *Graph {
	n := rapid.IntRange(1, 6).Draw(t, "segments")
	segs := make([]Segment, n)
	for i := range segs {
		m := rapid.IntRange(1, 5).Draw(t, "points")
		pts := make([]model.Waypoint, m)
		for j := range pts {
			pts[j] = genPoint(t, "wp")
		}
		segs[i] = Segment{Points: pts, Reversible: rapid.Bool().Draw(t, "reversible")}
	}
	g, err := NewGraph(model.MatchDomination, segs)
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	return g
}

func TestSelectDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := genGraph(t)
		from := genPoint(t, "from")
		dest := genPoint(t, "dest")

		a, okA := Select(g, testTuning, from, dest)
		b, okB := Select(g, testTuning, from, dest)
		if okA != okB || a != b {
			t.Fatalf("Select not deterministic: %+v/%v vs %+v/%v", a, okA, b, okB)
		}
	})
}

func TestSelectNeverReversesOneWaySegments(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := genGraph(t)
		from := genPoint(t, "from")
		dest := genPoint(t, "dest")

		sel, ok := Select(g, testTuning, from, dest)
		if !ok {
			return
		}
		seg, _ := g.Segment(sel.Segment)
		if sel.Reverse && !seg.Reversible {
			t.Fatalf("segment %d is one-way but was selected in reverse", sel.Segment)
		}
		if sel.Entry == sel.Terminal(seg) {
			t.Fatalf("entry %d is the terminal waypoint", sel.Entry)
		}
	})
}

// Destinations on either side of a one-way segment must always yield a
// forward selection, or none at all.
func TestOneWaySegmentBothSides(t *testing.T) {
	g, err := NewGraph(model.MatchDomination, []Segment{
		{Name: "drop", Points: []model.Waypoint{v(0, 0, 20), v(40, 0, 10), v(80, 0, 0)}},
	})
	if err != nil {
		t.Fatal(err)
	}
	rapid.Check(t, func(t *rapid.T) {
		from := model.Vec3{X: rapid.Float64Range(-50, 130).Draw(t, "fx"), Y: rapid.Float64Range(-30, 30).Draw(t, "fy")}
		dest := model.Vec3{X: rapid.Float64Range(-300, 300).Draw(t, "dx"), Y: rapid.Float64Range(-300, 300).Draw(t, "dy")}
		if sel, ok := Select(g, testTuning, from, dest); ok && sel.Reverse {
			t.Fatalf("one-way segment selected in reverse for dest %+v", dest)
		}
	})
}
