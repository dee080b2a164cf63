package rules

import (
	"testing"

	"github.com/nstehr/rally/rally-core/model"
)

func TestDefenseBoard(t *testing.T) {
	h := newHarness(t, model.MatchDomination, dominationLayout())
	h.state.Points[1] = model.PointState{Status: model.Owned, Owner: model.TeamAlliance}
	h.state.Points[2] = model.PointState{Status: model.Contested, Owner: model.TeamAlliance}
	h.state.Points[3] = model.PointState{Status: model.Owned, Owner: model.TeamHorde}

	// Three horde agents and one defender at the mill.
	h.put(model.AgentView{ID: 1, Team: model.TeamAlliance, Pos: v(2, 2)})
	h.put(model.AgentView{ID: 10, Team: model.TeamHorde, Pos: v(5, 0)})
	h.put(model.AgentView{ID: 11, Team: model.TeamHorde, Pos: v(-5, 0)})
	h.put(model.AgentView{ID: 12, Team: model.TeamHorde, Pos: v(0, 5)})

	snap := h.snapshot()
	board := h.arb.DefenseBoard(h.inst.ID, h.inst.MatchType, snap, snap)

	alliance := board[model.TeamAlliance]
	if got := alliance[1]; got != 2.5 {
		t.Errorf("mill priority = %v, want 2.5", got)
	}
	// Contested with nobody around still carries the contested bonus.
	if got := alliance[2]; got != 1 {
		t.Errorf("farm priority = %v, want 1", got)
	}
	if _, ok := alliance[3]; ok {
		t.Error("enemy-held point should not be on the alliance board")
	}
	if got := len(board[model.TeamHorde]); got != 0 {
		t.Errorf("horde board has %d entries, want 0", got)
	}
}

func TestDefenseBoard_AlliesCancelThreat(t *testing.T) {
	h := newHarness(t, model.MatchDomination, dominationLayout())
	h.state.Points[1] = model.PointState{Status: model.Owned, Owner: model.TeamAlliance}
	h.put(model.AgentView{ID: 10, Team: model.TeamHorde, Pos: v(5, 0)})
	h.put(model.AgentView{ID: 1, Team: model.TeamAlliance, Pos: v(1, 0)})
	h.put(model.AgentView{ID: 2, Team: model.TeamAlliance, Pos: v(-1, 0)})

	snap := h.snapshot()
	board := h.arb.DefenseBoard(h.inst.ID, h.inst.MatchType, snap, snap)
	if _, ok := board[model.TeamAlliance][1]; ok {
		t.Errorf("board = %v, want mill absent", board[model.TeamAlliance])
	}
}
