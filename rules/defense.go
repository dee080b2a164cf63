package rules

import (
	"github.com/nstehr/rally/rally-core/instance"
	"github.com/nstehr/rally/rally-core/model"
	"github.com/nstehr/rally/rally-core/world"
)

// DefenseBoard scores, for both teams, how urgently each friendly point
// needs defending. Points nobody is threatening score zero and are left out.
func (a *Arbiter) DefenseBoard(inst model.InstanceID, mt model.MatchType, m world.Match, d world.Density) instance.Board {
	w := a.weights
	board := make(instance.Board, 2)
	for _, team := range []model.TeamID{model.TeamAlliance, model.TeamHorde} {
		scores := make(map[model.PointID]float64)
		for _, p := range a.layouts[mt].Points {
			ps := m.PointState(inst, p.ID)
			if !ps.Friendly(team) {
				continue
			}
			enemies := d.EnemiesNear(team, p.Pos, w.ThreatRadius)
			if enemies == 0 && ps.Status != model.Contested {
				continue
			}
			allies := d.AlliesNear(team, p.Pos, w.ThreatRadius)
			priority := float64(enemies)*p.Value - float64(allies)*w.AllyRelief
			if ps.Status == model.Contested {
				priority += w.ContestedBonus
			}
			if priority > 0 {
				scores[p.ID] = priority
			}
		}
		board[team] = scores
	}
	return board
}
