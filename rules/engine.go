// Package rules arbitrates, per agent and per tick, which destination an
// agent pursues. A priority cascade of expr-gated rules runs until one
// produces a candidate, which replaces the agent's committed destination.
package rules

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/rally/rally-core/instance"
	"github.com/nstehr/rally/rally-core/model"
	"github.com/nstehr/rally/rally-core/strategy"
	"github.com/nstehr/rally/rally-core/world"
)

// Decision is the outcome of one arbitration call.
type Decision struct {
	Candidate    model.ObjectiveCandidate
	HasObjective bool
	Rule         string
	Changed      bool // the committed destination was replaced
	Kept         bool // a sticky commitment was held without re-scoring
	Stale        bool // the previous commitment was dropped on arrival
}

// Arbiter owns the compiled cascade and the per-match-type layouts.
type Arbiter struct {
	rules   []*Rule
	weights Weights
	layouts map[model.MatchType]Layout
	kinds   map[model.MatchType]MatchTypeRules
}

// NewArbiter compiles the default cascade. overrides replaces the condition
// source of rules by name; an unknown name or a condition that fails to
// compile is an error.
func NewArbiter(w Weights, layouts map[model.MatchType]Layout, overrides map[string]string) (*Arbiter, error) {
	w.Validate()
	a := &Arbiter{
		weights: w,
		layouts: layouts,
		kinds: map[model.MatchType]MatchTypeRules{
			model.MatchDomination: Domination{},
			model.MatchFlag:       Flag{},
			model.MatchAssault:    Assault{},
		},
	}
	rules := a.defaultRules()
	for name, src := range overrides {
		i := slices.IndexFunc(rules, func(r *Rule) bool { return r.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("override for unknown rule %q", name)
		}
		rules[i].ConditionSrc = src
	}
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	a.rules = compiled
	return a, nil
}

func (a *Arbiter) Weights() Weights { return a.weights }

// Layout returns the objective layout for mt.
func (a *Arbiter) Layout(mt model.MatchType) Layout { return a.layouts[mt] }

// Rules returns the cascade in evaluation order.
func (a *Arbiter) Rules() []*Rule { return slices.Clone(a.rules) }

// NewSituation assembles the arbitration input for one agent.
func (a *Arbiter) NewSituation(inst *instance.Instance, agent model.AgentView, st *instance.AgentState, stance model.Stance, profile strategy.Profile, w world.World, now time.Duration) *Situation {
	return &Situation{
		Inst:     inst,
		Agent:    agent,
		State:    st,
		Stance:   stance,
		Profile:  profile,
		World:    w,
		Now:      now,
		InCombat: w.InCombat(agent.ID),
		layout:   a.layouts[inst.MatchType],
		rules:    a.kinds[inst.MatchType],
	}
}

// Decide runs arrival and staleness checks, then the cascade. Only the
// agent's committed destination is written; nothing is moved.
func (a *Arbiter) Decide(s *Situation) Decision {
	st := s.State
	var d Decision

	if st.HasObjective {
		dist := s.Agent.Pos.Dist(st.Objective.Pos)
		switch {
		case st.State == instance.Traveling && dist <= a.weights.ArriveRadius:
			st.State = instance.AtObjective
		case st.State == instance.AtObjective && dist > 2*a.weights.ArriveRadius:
			// Knocked off the objective; walk back to it.
			st.State = instance.Traveling
		}
		if st.State == instance.AtObjective && a.stale(s, st.Objective) {
			slog.Debug("objective stale on arrival", "agent", s.Agent.ID, "rule", st.Objective.Rule, "point", st.Objective.Point)
			st.Clear()
			d.Stale = true
		}
	}

	a.probe(s)
	env := newEnv(s)

	for _, r := range a.rules {
		if st.HasObjective && st.Sticky && !r.Preempts {
			d.Candidate, d.HasObjective, d.Rule, d.Kept = st.Objective, true, st.Objective.Rule, true
			return d
		}

		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}
		if match, ok := result.(bool); !ok || !match {
			continue
		}

		cand, ok := r.Select(s)
		if !ok {
			continue
		}
		cand.Rule = r.Name
		cand.RequiresGraphTravel = s.Agent.Pos.Dist(cand.Pos) > s.layout.DirectMoveRange

		d.Changed = st.Commit(cand, r.Sticky)
		if st.State == instance.Traveling && s.Agent.Pos.Dist(st.Objective.Pos) <= a.weights.ArriveRadius {
			st.State = instance.AtObjective
		}
		if d.Changed {
			slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "agent", s.Agent.ID, "intent", cand.Intent, "point", cand.Point, "score", cand.Score)
		}
		d.Candidate, d.HasObjective, d.Rule = st.Objective, true, r.Name
		return d
	}

	if st.HasObjective {
		d.Candidate, d.HasObjective, d.Rule, d.Kept = st.Objective, true, st.Objective.Rule, true
	}
	return d
}

// probe runs the world queries the gates and selectors share.
func (a *Arbiter) probe(s *Situation) {
	s.probe = probe{}
	if s.rules == nil {
		return
	}
	s.probe.threatened = s.Inst.Board.Threatened(s.Agent.Team, s.Profile.DefenseThreshold)

	if ref, ok := a.enemyInRange(s); ok {
		s.probe.enemy, s.probe.enemyOK = ref, true
		s.probe.enemyDist = s.Agent.Pos.Dist(ref.Pos)
	}

	for _, p := range s.layout.Points {
		if s.Agent.Pos.Dist(p.Pos) > a.weights.OpportunisticRadius {
			continue
		}
		if s.rules.Capturable(s, p) {
			s.probe.capturable = append(s.probe.capturable, p)
		}
	}
	slices.SortStableFunc(s.probe.capturable, func(x, y model.ObjectivePoint) int {
		dx, dy := s.Agent.Pos.Dist(x.Pos), s.Agent.Pos.Dist(y.Pos)
		switch {
		case dx < dy:
			return -1
		case dx > dy:
			return 1
		}
		return 0
	})
}

// enemyInRange prefers the combat layer's current target, then the nearest
// visible enemy. A missing line of sight blocks the engagement.
func (a *Arbiter) enemyInRange(s *Situation) (model.EntityRef, bool) {
	r := a.weights.EngageRange
	if ref, ok := s.World.CurrentEnemyTarget(s.Agent.ID); ok && s.Agent.Pos.Dist(ref.Pos) <= r {
		if s.World.HasLineOfSight(s.Agent.Pos, ref.Pos) {
			return ref, true
		}
	}
	ref, ok := s.World.NearestEnemy(s.Agent.Team, s.Agent.Pos, r)
	if !ok || !s.World.HasLineOfSight(s.Agent.Pos, ref.Pos) {
		return model.EntityRef{}, false
	}
	return ref, true
}

// stale reports whether a commitment reached this tick no longer makes sense
// because its point changed hands since it was scored.
func (a *Arbiter) stale(s *Situation, c model.ObjectiveCandidate) bool {
	if c.Point == model.NoPoint || s.rules == nil {
		return false
	}
	p, ok := s.layout.Point(c.Point)
	if !ok {
		return true
	}
	switch c.Intent {
	case model.IntentCapture:
		return !s.rules.Capturable(s, p)
	case model.IntentDefend:
		return !s.World.PointState(s.Inst.ID, p.ID).Friendly(s.Agent.Team)
	}
	return false
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	slices.SortStableFunc(rules, func(x, y *Rule) int { return y.Priority - x.Priority })
	return rules, nil
}

// distance-based term of the scoring formula.
func distancePenalty(d, divisor float64) float64 {
	if divisor <= 0 || math.IsInf(d, 0) {
		return 0
	}
	return d / divisor
}
