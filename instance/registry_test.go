package instance

import (
	"testing"
	"time"

	"github.com/nstehr/rally/rally-core/model"
)

func TestEnterFiresOncePerInstance(t *testing.T) {
	r := NewRegistry(DefaultIntervals())
	in := r.Open(1, model.MatchDomination)

	_, first := r.Enter(in, 10, model.TeamAlliance)
	if !first {
		t.Fatal("first Enter should report first")
	}
	for range 3 {
		if _, first := r.Enter(in, 10, model.TeamAlliance); first {
			t.Fatal("repeat Enter should not report first")
		}
	}
}

func TestEndPrunesEverything(t *testing.T) {
	r := NewRegistry(DefaultIntervals())
	a := r.Open(1, model.MatchDomination)
	b := r.Open(2, model.MatchFlag)

	st, _ := r.Enter(a, 10, model.TeamAlliance)
	st.Throttle.Allow("defense", time.Second, 5*time.Second)
	st.Commit(model.ObjectiveCandidate{Point: 3, Intent: model.IntentCapture}, true)
	r.Enter(a, 11, model.TeamHorde)
	r.Enter(b, 20, model.TeamAlliance)
	a.SetStance(model.TeamAlliance, model.Stance{Posture: model.Defensive})
	a.Board.Publish(time.Second, Board{model.TeamAlliance: {3: 4}})

	r.End(1)

	if _, ok := r.Get(1); ok {
		t.Error("instance 1 should be gone")
	}
	for _, agent := range []model.AgentID{10, 11} {
		if _, ok := r.InstanceOf(agent); ok {
			t.Errorf("agent %d still indexed after instance end", agent)
		}
	}
	if len(a.Agents()) != 0 {
		t.Error("stale instance handle still holds agents")
	}
	if _, ok := a.Stance(model.TeamAlliance); ok {
		t.Error("stale instance handle still holds a stance")
	}
	if _, ok := a.Board.PublishedAt(); ok {
		t.Error("stale instance handle still holds a scoreboard")
	}

	if id, ok := r.InstanceOf(20); !ok || id != 2 {
		t.Errorf("agent 20 should remain in instance 2, got %d, %v", id, ok)
	}

	// A new match reusing the id starts from scratch.
	again := r.Open(1, model.MatchDomination)
	if _, first := r.Enter(again, 10, model.TeamAlliance); !first {
		t.Error("agent should be treated as new in a reopened instance")
	}
}

func TestLeavePrunesAgent(t *testing.T) {
	r := NewRegistry(DefaultIntervals())
	in := r.Open(1, model.MatchAssault)
	r.Enter(in, 10, model.TeamAlliance)
	r.Enter(in, 11, model.TeamAlliance)

	r.Leave(10)
	r.Leave(99) // unknown agents are ignored

	if _, ok := in.Agent(10); ok {
		t.Error("agent 10 should be pruned")
	}
	if _, ok := r.InstanceOf(10); ok {
		t.Error("agent 10 should not be indexed")
	}
	if _, first := r.Enter(in, 10, model.TeamAlliance); !first {
		t.Error("re-entering after leaving should count as first")
	}
	if got := in.Roster(model.TeamAlliance); len(got) != 2 {
		t.Errorf("Roster = %v, want two agents", got)
	}
}

func TestEnterNewInstancePrunesOld(t *testing.T) {
	r := NewRegistry(DefaultIntervals())
	a := r.Open(1, model.MatchDomination)
	b := r.Open(2, model.MatchDomination)

	r.Enter(a, 10, model.TeamAlliance)
	r.Enter(b, 10, model.TeamAlliance)

	if _, ok := a.Agent(10); ok {
		t.Error("agent should be pruned from its previous instance")
	}
	if id, _ := r.InstanceOf(10); id != 2 {
		t.Errorf("InstanceOf = %d, want 2", id)
	}
}

func TestInstancesSorted(t *testing.T) {
	r := NewRegistry(DefaultIntervals())
	r.Open(5, model.MatchFlag)
	r.Open(2, model.MatchFlag)
	r.Open(9, model.MatchFlag)
	got := r.Instances()
	if len(got) != 3 || got[0] != 2 || got[2] != 9 {
		t.Errorf("Instances = %v, want [2 5 9]", got)
	}
}

func TestAllowTeam(t *testing.T) {
	r := NewRegistry(DefaultIntervals())
	in := r.Open(1, model.MatchFlag)
	if !in.AllowTeam(model.TeamHorde, "roles", 0, 10*time.Second) {
		t.Fatal("first call should be allowed")
	}
	if in.AllowTeam(model.TeamHorde, "roles", 5*time.Second, 10*time.Second) {
		t.Error("call inside the interval should be throttled")
	}
	if !in.AllowTeam(model.TeamAlliance, "roles", 5*time.Second, 10*time.Second) {
		t.Error("teams are throttled independently")
	}
}
