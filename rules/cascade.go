package rules

import (
	"slices"

	"github.com/nstehr/rally/rally-core/model"
)

const (
	RuleEmergencyDefense     = "emergency-defense"
	RuleCombatOverride       = "combat-override"
	RuleOpportunisticCapture = "opportunistic-capture"
	RuleRoleScoring          = "role-scoring"
	RuleFallbackRally        = "fallback-rally"
)

const throttleDefense = "defense-target"

// defaultRules builds the cascade. Conditions are plain expr so they can be
// tightened from config without a rebuild.
func (a *Arbiter) defaultRules() []*Rule {
	return []*Rule{
		{
			Name:         RuleEmergencyDefense,
			Priority:     500,
			Preempts:     true,
			Sticky:       true,
			ConditionSrc: `Threatened > 0 && !Carrying`,
			Select:       a.selectDefense,
		},
		{
			Name:         RuleCombatOverride,
			Priority:     400,
			Preempts:     true,
			ConditionSrc: `EnemyInRange && (IsDefender() || !Carrying)`,
			Select:       a.selectEngage,
		},
		{
			Name:         RuleOpportunisticCapture,
			Priority:     300,
			Preempts:     true,
			Sticky:       true,
			ConditionSrc: `!Carrying && Capturable > 0`,
			Select:       a.selectNearbyCapture,
		},
		{
			Name:         RuleRoleScoring,
			Priority:     200,
			Sticky:       true,
			ConditionSrc: `true`,
			Select:       a.selectScored,
		},
		{
			Name:         RuleFallbackRally,
			Priority:     100,
			ConditionSrc: `true`,
			Select:       a.selectRally,
		},
	}
}

// selectDefense answers a threatened friendly point. The agent's own
// committed point wins if it is threatened; otherwise defenders take the
// most threatened point and attackers only points within response radius.
// A held defense target is not re-chosen more than once per
// DefenseRecompute while it stays threatened.
func (a *Arbiter) selectDefense(s *Situation) (model.ObjectiveCandidate, bool) {
	st := s.State
	threatened := s.probe.threatened
	every := a.weights.DefenseRecompute

	if st.DefenseTarget != model.NoPoint && slices.Contains(threatened, st.DefenseTarget) {
		if !st.Throttle.Allow(throttleDefense, s.Now, every) {
			return a.defendCandidate(s, st.DefenseTarget)
		}
	}

	best := model.NoPoint
	if st.HasObjective && st.Objective.Point != model.NoPoint && slices.Contains(threatened, st.Objective.Point) {
		best = st.Objective.Point
	}
	if best == model.NoPoint {
		for _, id := range threatened {
			p, ok := s.layout.Point(id)
			if !ok {
				continue
			}
			if st.Role == model.RoleDefender || s.Agent.Pos.Dist(p.Pos) <= a.weights.DefenseResponseRadius {
				best = id
				break
			}
		}
	}

	if best == model.NoPoint {
		st.DefenseTarget = model.NoPoint
		st.Throttle.Reset(throttleDefense)
		return model.ObjectiveCandidate{}, false
	}
	if best != st.DefenseTarget {
		st.Throttle.Reset(throttleDefense)
		st.Throttle.Allow(throttleDefense, s.Now, every)
		st.DefenseTarget = best
	}
	return a.defendCandidate(s, best)
}

func (a *Arbiter) defendCandidate(s *Situation, id model.PointID) (model.ObjectiveCandidate, bool) {
	p, ok := s.layout.Point(id)
	if !ok {
		return model.ObjectiveCandidate{}, false
	}
	return model.ObjectiveCandidate{
		Point:  p.ID,
		Pos:    p.Pos,
		Score:  s.Inst.Board.Priority(s.Agent.Team, p.ID),
		Intent: model.IntentDefend,
	}, true
}

func (a *Arbiter) selectEngage(s *Situation) (model.ObjectiveCandidate, bool) {
	if !s.probe.enemyOK {
		return model.ObjectiveCandidate{}, false
	}
	return model.ObjectiveCandidate{
		Point:  model.NoPoint,
		Target: s.probe.enemy.ID,
		Pos:    s.probe.enemy.Pos,
		Score:  -s.probe.enemyDist,
		Intent: model.IntentEngage,
	}, true
}

// selectNearbyCapture keeps the committed point when it is among the nearby
// capturable ones, so passing another point does not flip the commitment
// back and forth.
func (a *Arbiter) selectNearbyCapture(s *Situation) (model.ObjectiveCandidate, bool) {
	if len(s.probe.capturable) == 0 {
		return model.ObjectiveCandidate{}, false
	}
	pick := s.probe.capturable[0]
	if st := s.State; st.HasObjective && st.Objective.Intent == model.IntentCapture {
		for _, p := range s.probe.capturable {
			if p.ID == st.Objective.Point {
				pick = p
				break
			}
		}
	}
	return model.ObjectiveCandidate{
		Point:  pick.ID,
		Pos:    pick.Pos,
		Score:  pick.Value,
		Intent: model.IntentCapture,
	}, true
}

// selectScored scores every admissible candidate of the match type and
// returns the best. Ties keep the earlier candidate.
func (a *Arbiter) selectScored(s *Situation) (model.ObjectiveCandidate, bool) {
	if s.rules == nil {
		return model.ObjectiveCandidate{}, false
	}
	var (
		best  model.ObjectiveCandidate
		found bool
	)
	for _, c := range s.rules.Candidates(s) {
		c.Score = a.score(s, c)
		if !found || c.Score > best.Score {
			best, found = c, true
		}
	}
	return best, found
}

func (a *Arbiter) score(s *Situation, c model.ObjectiveCandidate) float64 {
	w := a.weights
	team := s.Agent.Team
	allies := s.World.AlliesNear(team, c.Pos, w.DensityRadius)
	enemies := s.World.EnemiesNear(team, c.Pos, w.DensityRadius)

	value := 0.0
	if p, ok := s.layout.Point(c.Point); ok {
		value = p.Value
	}

	score := value*w.ValueWeight +
		float64(allies-enemies)*w.DensityWeight -
		distancePenalty(s.Agent.Pos.Dist(c.Pos), w.DistanceDivisor)

	switch c.Intent {
	case model.IntentCapture:
		score += s.Profile.OffenseBias
		if s.State.Role == model.RoleAttacker {
			score += w.RoleBias
		}
	case model.IntentDefend:
		score += s.Profile.DefenseBias
		if s.State.Role == model.RoleDefender {
			score += w.RoleBias
		}
	}

	if enemies-allies > w.OutnumberedMargin && !s.Stance.Critical {
		score -= w.OutnumberedPenalty
	}
	return score
}

// selectRally returns the team's waiting position, or holds the agent where
// it stands when the match type has none configured.
func (a *Arbiter) selectRally(s *Situation) (model.ObjectiveCandidate, bool) {
	pos, ok := s.layout.Rally[s.Agent.Team]
	if !ok {
		pos = s.Agent.Pos
		if st := s.State; st.HasObjective && st.Objective.Intent == model.IntentRally {
			pos = st.Objective.Pos
		}
	}
	return model.ObjectiveCandidate{
		Point:  model.NoPoint,
		Pos:    pos,
		Intent: model.IntentRally,
	}, true
}
