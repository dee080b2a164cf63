package instance

import (
	"time"

	"github.com/nstehr/rally/rally-core/model"
	"github.com/nstehr/rally/rally-core/paths"
)

// ObjectiveState is the per-agent arbitration state machine.
type ObjectiveState uint8

const (
	NoObjective ObjectiveState = iota
	Traveling
	AtObjective
)

func (s ObjectiveState) String() string {
	switch s {
	case Traveling:
		return "traveling"
	case AtObjective:
		return "at_objective"
	}
	return "no_objective"
}

// Throttle remembers when named actions last ran, in match time.
type Throttle map[string]time.Duration

// Allow reports whether name may run at now and, if so, records the run.
// A clock that went backwards always allows.
func (t Throttle) Allow(name string, now, every time.Duration) bool {
	if last, ok := t[name]; ok && now >= last && now-last < every {
		return false
	}
	t[name] = now
	return true
}

// Reset forgets name so the next Allow succeeds.
func (t Throttle) Reset(name string) { delete(t, name) }

// AgentState is everything the engine remembers about one agent inside one
// instance. It is only mutated during that agent's own tick.
type AgentState struct {
	ID   model.AgentID
	Team model.TeamID
	Role model.Role

	Objective    model.ObjectiveCandidate
	HasObjective bool
	// Sticky commitments survive arbitration until arrival, staleness or
	// preemption; non-sticky ones are re-derived every tick.
	Sticky bool
	State  ObjectiveState
	Travel *paths.Travel

	// DefenseTarget is the cached emergency-defense point, model.NoPoint when
	// none is held.
	DefenseTarget model.PointID

	Throttle Throttle
}

func newAgentState(id model.AgentID, team model.TeamID) *AgentState {
	return &AgentState{
		ID:            id,
		Team:          team,
		DefenseTarget: model.NoPoint,
		Throttle:      make(Throttle),
	}
}

// Commit replaces the committed destination as a whole. Committing the
// destination already held only refreshes its score and position and
// reports false, leaving state and travel untouched.
func (a *AgentState) Commit(c model.ObjectiveCandidate, sticky bool) bool {
	if a.HasObjective && a.Objective.SameTarget(c) {
		a.Objective.Score = c.Score
		a.Objective.Rule = c.Rule
		if c.Target != 0 {
			a.Objective.Pos = c.Pos
		}
		a.Sticky = sticky
		return false
	}
	a.Objective = c
	a.HasObjective = true
	a.Sticky = sticky
	a.State = Traveling
	a.Travel = nil
	return true
}

// Clear drops the committed destination and any travel in progress.
func (a *AgentState) Clear() {
	a.Objective = model.ObjectiveCandidate{}
	a.HasObjective = false
	a.Sticky = false
	a.State = NoObjective
	a.Travel = nil
}
