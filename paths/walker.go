package paths

import (
	"github.com/nstehr/rally/rally-core/model"
	"github.com/nstehr/rally/rally-core/world"
)

// DefaultReachRadius is how close an agent must get to the terminal
// waypoint for the segment to count as walked.
const DefaultReachRadius = 3.0

// Travel is an agent's progress along a selected segment.
type Travel struct {
	Selection
	// Cursor is the furthest waypoint the agent has been closest to. The
	// walker never looks behind it, so the agent cannot be pulled backwards.
	Cursor int
	Dest   model.Vec3
}

func NewTravel(sel Selection, dest model.Vec3) *Travel {
	return &Travel{Selection: sel, Cursor: sel.Entry, Dest: dest}
}

type StepResult uint8

const (
	StepMoved StepResult = iota
	// StepWaiting means the move was rejected; the walker retries next tick.
	StepWaiting
	StepExhausted
)

type ExhaustReason uint8

const (
	ExhaustNone ExhaustReason = iota
	ExhaustTerminal
	ExhaustCombat
	ExhaustDead
	ExhaustInvalid
)

func (r ExhaustReason) String() string {
	switch r {
	case ExhaustTerminal:
		return "terminal"
	case ExhaustCombat:
		return "combat"
	case ExhaustDead:
		return "dead"
	case ExhaustInvalid:
		return "invalid"
	}
	return "none"
}

// Step is the outcome of one walker tick.
type Step struct {
	Result StepResult
	Reason ExhaustReason
	Target model.Vec3
	Move   model.MoveResult
}

// Walker advances agents one waypoint per tick.
type Walker struct {
	ReachRadius float64
}

func NewWalker() Walker { return Walker{ReachRadius: DefaultReachRadius} }

// Step moves the agent toward the waypoint after the one it is currently
// closest to. Carrying a match-critical token keeps the agent walking
// through combat.
func (w Walker) Step(g *Graph, tr *Travel, a model.AgentView, inCombat bool, terrain world.Terrain, mover world.Mover) Step {
	if !a.Alive {
		return Step{Result: StepExhausted, Reason: ExhaustDead}
	}
	if inCombat && !a.CarryingToken {
		return Step{Result: StepExhausted, Reason: ExhaustCombat}
	}
	if tr == nil || tr.Segment < 0 || tr.Segment >= g.Len() {
		return Step{Result: StepExhausted, Reason: ExhaustInvalid}
	}
	seg := g.segments[tr.Segment]
	terminal := tr.Terminal(seg)
	dir := 1
	if tr.Reverse {
		dir = -1
	}
	if tr.Cursor < 0 || tr.Cursor >= len(seg.Points) {
		tr.Cursor = tr.Entry
	}

	closest, closestDist := tr.Cursor, seg.Points[tr.Cursor].Dist(a.Pos)
	for i := tr.Cursor + dir; i >= 0 && i < len(seg.Points); i += dir {
		if d := seg.Points[i].Dist(a.Pos); d < closestDist {
			closest, closestDist = i, d
		}
	}
	tr.Cursor = closest

	next := closest + dir
	if closest == terminal {
		if closestDist <= w.ReachRadius {
			return Step{Result: StepExhausted, Reason: ExhaustTerminal}
		}
		next = terminal
	}

	target := seg.Points[next]
	if h, ok := terrain.Height(target.X, target.Y); ok {
		target.Z = h
	}

	res := mover.RequestMove(a.ID, target)
	if res != model.MoveAccepted {
		return Step{Result: StepWaiting, Target: target, Move: res}
	}
	return Step{Result: StepMoved, Target: target, Move: res}
}
