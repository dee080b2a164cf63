// Package instance owns the ephemeral state of running match instances:
// per-agent objectives and throttles, team postures and the defense
// scoreboard. Everything is torn down explicitly when an instance ends or
// an agent leaves.
package instance

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/nstehr/rally/rally-core/model"
)

// Intervals bound how often shared per-instance state is recomputed.
type Intervals struct {
	ScoreboardRefresh time.Duration `yaml:"scoreboard_refresh"`
	RoleRebalance     time.Duration `yaml:"role_rebalance"`
}

func DefaultIntervals() Intervals {
	return Intervals{
		ScoreboardRefresh: 2500 * time.Millisecond,
		RoleRebalance:     10 * time.Second,
	}
}

// Instance is the context object for one running match instance.
type Instance struct {
	ID        model.InstanceID
	MatchType model.MatchType
	Board     *Scoreboard

	mu      sync.Mutex
	agents  map[model.AgentID]*AgentState
	stances map[model.TeamID]model.Stance
	teams   Throttle
}

func newInstance(id model.InstanceID, mt model.MatchType, iv Intervals) *Instance {
	return &Instance{
		ID:        id,
		MatchType: mt,
		Board:     NewScoreboard(iv.ScoreboardRefresh),
		agents:    make(map[model.AgentID]*AgentState),
		stances:   make(map[model.TeamID]model.Stance),
		teams:     make(Throttle),
	}
}

// Agent returns the state of an agent that has entered this instance.
func (in *Instance) Agent(id model.AgentID) (*AgentState, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	a, ok := in.agents[id]
	return a, ok
}

// Agents returns every agent's state ordered by id.
func (in *Instance) Agents() []*AgentState {
	in.mu.Lock()
	out := make([]*AgentState, 0, len(in.agents))
	for _, a := range in.agents {
		out = append(out, a)
	}
	in.mu.Unlock()
	slices.SortFunc(out, func(a, b *AgentState) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Roster lists the ids of team's agents ordered by id.
func (in *Instance) Roster(team model.TeamID) []model.AgentID {
	var ids []model.AgentID
	for _, a := range in.Agents() {
		if a.Team == team {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Stance returns the cached posture for team. ok is false until the first
// SetStance in this instance.
func (in *Instance) Stance(team model.TeamID) (model.Stance, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	s, ok := in.stances[team]
	return s, ok
}

func (in *Instance) SetStance(team model.TeamID, s model.Stance) {
	in.mu.Lock()
	in.stances[team] = s
	in.mu.Unlock()
}

// AllowTeam throttles a per-team action such as role rebalancing.
func (in *Instance) AllowTeam(team model.TeamID, name string, now, every time.Duration) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.teams.Allow(team.String()+"/"+name, now, every)
}

func (in *Instance) enter(id model.AgentID, team model.TeamID) (*AgentState, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if a, ok := in.agents[id]; ok {
		return a, false
	}
	a := newAgentState(id, team)
	in.agents[id] = a
	return a, true
}

func (in *Instance) leave(id model.AgentID) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	_, ok := in.agents[id]
	delete(in.agents, id)
	return ok
}

// reset drops everything so holders of a stale *Instance see nothing.
func (in *Instance) reset() {
	in.mu.Lock()
	defer in.mu.Unlock()
	clear(in.agents)
	clear(in.stances)
	clear(in.teams)
	in.Board.board.Store(nil)
}

// Registry tracks the instances served by one host connection and which
// instance each agent is in.
type Registry struct {
	intervals Intervals

	mu        sync.Mutex
	instances map[model.InstanceID]*Instance
	agentIn   map[model.AgentID]model.InstanceID
}

func NewRegistry(iv Intervals) *Registry {
	return &Registry{
		intervals: iv,
		instances: make(map[model.InstanceID]*Instance),
		agentIn:   make(map[model.AgentID]model.InstanceID),
	}
}

// Open returns the instance for id, creating it on first use.
func (r *Registry) Open(id model.InstanceID, mt model.MatchType) *Instance {
	r.mu.Lock()
	defer r.mu.Unlock()
	if in, ok := r.instances[id]; ok {
		return in
	}
	in := newInstance(id, mt, r.intervals)
	r.instances[id] = in
	slog.Info("instance opened", "instance", id, "matchType", mt)
	return in
}

func (r *Registry) Get(id model.InstanceID) (*Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.instances[id]
	return in, ok
}

// Enter records that an agent is in inst. first is true exactly once per
// agent per instance, so one-time setup runs once. An agent seen in a new
// instance is pruned from its previous one.
func (r *Registry) Enter(inst *Instance, agent model.AgentID, team model.TeamID) (st *AgentState, first bool) {
	r.mu.Lock()
	if prev, ok := r.agentIn[agent]; ok && prev != inst.ID {
		if old, ok := r.instances[prev]; ok {
			old.leave(agent)
		}
		slog.Info("agent changed instance", "agent", agent, "from", prev, "to", inst.ID)
	}
	r.agentIn[agent] = inst.ID
	r.mu.Unlock()

	return inst.enter(agent, team)
}

// Leave prunes an agent that is no longer in a match.
func (r *Registry) Leave(agent model.AgentID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.agentIn[agent]
	if !ok {
		return
	}
	delete(r.agentIn, agent)
	if in, ok := r.instances[id]; ok && in.leave(agent) {
		slog.Info("agent left instance", "agent", agent, "instance", id)
	}
}

// End tears down an instance and every agent entry pointing at it.
func (r *Registry) End(id model.InstanceID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.instances[id]
	if !ok {
		return
	}
	delete(r.instances, id)
	in.reset()
	pruned := 0
	for agent, in := range r.agentIn {
		if in == id {
			delete(r.agentIn, agent)
			pruned++
		}
	}
	slog.Info("instance ended", "instance", id, "agentsPruned", pruned)
}

// InstanceOf reports which instance an agent is in.
func (r *Registry) InstanceOf(agent model.AgentID) (model.InstanceID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.agentIn[agent]
	return id, ok
}

// Instances lists open instance ids in ascending order.
func (r *Registry) Instances() []model.InstanceID {
	r.mu.Lock()
	ids := make([]model.InstanceID, 0, len(r.instances))
	for id := range r.instances {
		ids = append(ids, id)
	}
	r.mu.Unlock()
	slices.Sort(ids)
	return ids
}
