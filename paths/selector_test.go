package paths

import (
	"testing"

	"github.com/nstehr/rally/rally-core/model"
)

var testTuning = Tuning{NearBand: 10, ProximityWeight: 2, MaxJoinDistance: 200}

func v(x, y, z float64) model.Vec3 { return model.Vec3{X: x, Y: y, Z: z} }

// twoSegmentGraph is segment A (0→50) and segment B (100→150) on the x axis.
func twoSegmentGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := NewGraph(model.MatchDomination, []Segment{
		{Name: "A", Reversible: true, Points: []model.Waypoint{v(0, 0, 0), v(25, 0, 0), v(50, 0, 0)}},
		{Name: "B", Reversible: true, Points: []model.Waypoint{v(100, 0, 0), v(125, 0, 0), v(150, 0, 0)}},
	})
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	return g
}

func TestSelectForwardTowardDestination(t *testing.T) {
	g := twoSegmentGraph(t)

	sel, ok := Select(g, testTuning, v(0, 0, 0), v(100, 0, 0))
	if !ok {
		t.Fatal("expected a segment")
	}
	if sel.Segment != 0 || sel.Reverse || sel.Entry != 0 {
		t.Errorf("Select = %+v, want segment A forward from index 0", sel)
	}
}

func TestSelectReverseThenReselect(t *testing.T) {
	g := twoSegmentGraph(t)
	dest := v(0, 0, 0)

	sel, ok := Select(g, testTuning, v(150, 0, 0), dest)
	if !ok {
		t.Fatal("expected a segment")
	}
	if sel.Segment != 1 || !sel.Reverse || sel.Entry != 2 {
		t.Fatalf("Select = %+v, want segment B reversed from index 2", sel)
	}

	// Walk B to its end, then choose again from there.
	w := NewWalker()
	tr := NewTravel(sel, dest)
	mover := &recordingMover{}
	agent := model.AgentView{ID: 1, Alive: true, InMatch: true, Pos: v(150, 0, 0)}
	for range 5 {
		step := w.Step(g, tr, agent, false, flatTerrain{}, mover)
		if step.Result == StepExhausted {
			if step.Reason != ExhaustTerminal {
				t.Fatalf("exhausted with %v, want terminal", step.Reason)
			}
			break
		}
		agent.Pos = step.Target
	}
	if agent.Pos != v(100, 0, 0) {
		t.Fatalf("agent ended at %+v, want the start of B", agent.Pos)
	}

	sel, ok = Select(g, testTuning, agent.Pos, dest)
	if !ok {
		t.Fatal("expected a segment after exhaustion")
	}
	if sel.Segment != 0 || !sel.Reverse || sel.Entry != 2 {
		t.Errorf("reselect = %+v, want segment A reversed from index 2", sel)
	}
}

func TestSelectRejections(t *testing.T) {
	tests := []struct {
		name     string
		seg      Segment
		from     model.Vec3
		dest     model.Vec3
		wantFind bool
	}{
		{
			name:     "one-way segment never reversed",
			seg:      Segment{Points: []model.Waypoint{v(0, 0, 0), v(50, 0, 0)}},
			from:     v(50, 0, 0),
			dest:     v(-10, 0, 0),
			wantFind: false,
		},
		{
			name:     "one-way segment forward",
			seg:      Segment{Points: []model.Waypoint{v(0, 0, 0), v(50, 0, 0)}},
			from:     v(0, 0, 0),
			dest:     v(60, 0, 0),
			wantFind: true,
		},
		{
			name:     "closest point is the far end",
			seg:      Segment{Reversible: true, Points: []model.Waypoint{v(0, 0, 0), v(50, 0, 0)}},
			from:     v(55, 0, 0),
			dest:     v(80, 0, 0),
			wantFind: false,
		},
		{
			name:     "too far to join",
			seg:      Segment{Reversible: true, Points: []model.Waypoint{v(0, 0, 0), v(50, 0, 0)}},
			from:     v(-300, 0, 0),
			dest:     v(80, 0, 0),
			wantFind: false,
		},
		{
			name:     "single waypoint leads nowhere",
			seg:      Segment{Reversible: true, Points: []model.Waypoint{v(0, 0, 0)}},
			from:     v(0, 0, 0),
			dest:     v(80, 0, 0),
			wantFind: false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := NewGraph(model.MatchFlag, []Segment{tc.seg})
			if err != nil {
				t.Fatalf("NewGraph: %v", err)
			}
			_, ok := Select(g, testTuning, tc.from, tc.dest)
			if ok != tc.wantFind {
				t.Errorf("Select found = %v, want %v", ok, tc.wantFind)
			}
		})
	}
}

func TestSelectScore(t *testing.T) {
	g, err := NewGraph(model.MatchAssault, []Segment{
		{Reversible: true, Points: []model.Waypoint{v(0, 30, 0), v(100, 30, 0)}},
	})
	if err != nil {
		t.Fatal(err)
	}
	sel, ok := Select(g, testTuning, v(0, 0, 0), v(120, 30, 0))
	if !ok {
		t.Fatal("expected a segment")
	}
	// (30 - 10) * 2 + 20
	if sel.Score != 60 {
		t.Errorf("Score = %v, want 60", sel.Score)
	}
}

func TestSelectTieKeepsFirst(t *testing.T) {
	pts := []model.Waypoint{v(0, 0, 0), v(50, 0, 0)}
	g, err := NewGraph(model.MatchDomination, []Segment{
		{Name: "first", Reversible: true, Points: pts},
		{Name: "second", Reversible: true, Points: pts},
	})
	if err != nil {
		t.Fatal(err)
	}
	sel, ok := Select(g, testTuning, v(0, 0, 0), v(80, 0, 0))
	if !ok || sel.Segment != 0 {
		t.Errorf("Select = %+v, %v, want the first segment", sel, ok)
	}
}

func TestSelectNilGraph(t *testing.T) {
	if _, ok := Select(nil, testTuning, v(0, 0, 0), v(1, 0, 0)); ok {
		t.Error("nil graph should select nothing")
	}
}

func TestNewGraphRejectsEmptySegment(t *testing.T) {
	_, err := NewGraph(model.MatchDomination, []Segment{{Name: "empty"}})
	if err == nil {
		t.Fatal("expected an error for an empty segment")
	}
	if _, err := NewGraph("arena", nil); err == nil {
		t.Error("expected an error for an unknown match type")
	}
}

func TestGraphIsolatedFromCaller(t *testing.T) {
	pts := []model.Waypoint{v(0, 0, 0), v(50, 0, 0)}
	g, err := NewGraph(model.MatchDomination, []Segment{{Points: pts}})
	if err != nil {
		t.Fatal(err)
	}
	pts[0] = v(999, 0, 0)
	seg, _ := g.Segment(0)
	if seg.Start() != v(0, 0, 0) {
		t.Error("graph should not see caller mutations")
	}
	seg.Points[1] = v(-1, 0, 0)
	again, _ := g.Segment(0)
	if again.End() != v(50, 0, 0) {
		t.Error("graph should not see mutations through Segment copies")
	}
}
