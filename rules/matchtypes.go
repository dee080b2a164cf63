package rules

import (
	"cmp"
	"slices"

	"github.com/nstehr/rally/rally-core/model"
)

// MatchTypeRules specialises the cascade for one match type. Only candidate
// enumeration and capturability differ between match types.
type MatchTypeRules interface {
	// Candidates lists the admissible objectives for scoring, unscored.
	Candidates(s *Situation) []model.ObjectiveCandidate
	// Capturable reports whether the agent could take p right now.
	Capturable(s *Situation, p model.ObjectivePoint) bool
}

func capture(p model.ObjectivePoint) model.ObjectiveCandidate {
	return model.ObjectiveCandidate{Point: p.ID, Pos: p.Pos, Intent: model.IntentCapture}
}

func defend(p model.ObjectivePoint) model.ObjectiveCandidate {
	return model.ObjectiveCandidate{Point: p.ID, Pos: p.Pos, Intent: model.IntentDefend}
}

func pointState(s *Situation, p model.ObjectivePoint) model.PointState {
	return s.World.PointState(s.Inst.ID, p.ID)
}

// Domination: every point not held by the team can be taken; friendly
// points under assault need defending.
type Domination struct{}

func (Domination) Candidates(s *Situation) []model.ObjectiveCandidate {
	team := s.Agent.Team
	var out []model.ObjectiveCandidate
	for _, p := range s.layout.Points {
		ps := pointState(s, p)
		switch {
		case !ps.Friendly(team):
			out = append(out, capture(p))
		case ps.Status == model.Contested:
			out = append(out, defend(p))
		}
	}
	return out
}

func (Domination) Capturable(s *Situation, p model.ObjectivePoint) bool {
	return !pointState(s, p).Friendly(s.Agent.Team)
}

// Flag: each team has a base holding its flag. A base owned by its team
// has the flag home; a contested base has had its flag taken.
type Flag struct{}

func bases(s *Situation) (own, enemy model.ObjectivePoint, ok bool) {
	var foundOwn, foundEnemy bool
	for _, p := range s.layout.Points {
		if p.Base == nil {
			continue
		}
		if *p.Base == s.Agent.Team {
			own, foundOwn = p, true
		} else {
			enemy, foundEnemy = p, true
		}
	}
	return own, enemy, foundOwn && foundEnemy
}

func (Flag) Candidates(s *Situation) []model.ObjectiveCandidate {
	own, enemy, ok := bases(s)
	if !ok {
		return nil
	}
	if s.Agent.CarryingToken {
		return []model.ObjectiveCandidate{capture(own)}
	}
	var out []model.ObjectiveCandidate
	if ps := pointState(s, enemy); ps.OwnedBy(s.Agent.Team.Enemy()) {
		out = append(out, capture(enemy))
	}
	if ps := pointState(s, own); ps.Status == model.Contested {
		out = append(out, defend(own))
	}
	return out
}

// Capturable is true for the enemy base while its flag is home, and for
// the own base when bringing the enemy flag back.
func (Flag) Capturable(s *Situation, p model.ObjectivePoint) bool {
	if p.Base == nil {
		return false
	}
	if *p.Base == s.Agent.Team {
		return s.Agent.CarryingToken
	}
	return !s.Agent.CarryingToken && pointState(s, p).OwnedBy(s.Agent.Team.Enemy())
}

// Assault: points fall in order. Alliance attacks along ascending Order and
// horde along descending Order; only the first FrontWidth points not yet
// held are attackable.
type Assault struct{}

func front(s *Situation) []model.ObjectivePoint {
	pts := slices.Clone(s.layout.Points)
	slices.SortStableFunc(pts, func(a, b model.ObjectivePoint) int { return cmp.Compare(a.Order, b.Order) })
	if s.Agent.Team == model.TeamHorde {
		slices.Reverse(pts)
	}
	width := s.layout.FrontWidth
	if width < 1 {
		width = 1
	}
	var out []model.ObjectivePoint
	for _, p := range pts {
		if pointState(s, p).Friendly(s.Agent.Team) {
			continue
		}
		out = append(out, p)
		if len(out) == width {
			break
		}
	}
	return out
}

func (Assault) Candidates(s *Situation) []model.ObjectiveCandidate {
	var out []model.ObjectiveCandidate
	for _, p := range front(s) {
		out = append(out, capture(p))
	}
	for _, p := range s.layout.Points {
		if ps := pointState(s, p); ps.Friendly(s.Agent.Team) && ps.Status == model.Contested {
			out = append(out, defend(p))
		}
	}
	return out
}

func (Assault) Capturable(s *Situation, p model.ObjectivePoint) bool {
	return slices.ContainsFunc(front(s), func(f model.ObjectivePoint) bool { return f.ID == p.ID })
}
