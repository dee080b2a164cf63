package agent

import (
	"log/slog"

	"github.com/nstehr/rally/rally-core/instance"
	"github.com/nstehr/rally/rally-core/model"
	"github.com/nstehr/rally/rally-core/strategy"
	"github.com/nstehr/rally/rally-core/world"
)

var teams = []model.TeamID{model.TeamAlliance, model.TeamHorde}

// Strategist keeps both teams' stance and role split current for an
// instance. It runs once per tick before any agent is arbitrated, so every
// agent of a team sees the same posture on a tick.
type Strategist struct {
	Controller *strategy.Controller
	Intervals  instance.Intervals
}

func NewStrategist(c *strategy.Controller, iv instance.Intervals) *Strategist {
	return &Strategist{Controller: c, Intervals: iv}
}

// Assess refreshes each team's stance. Roles are rebalanced on the regular
// interval, and immediately when the posture changed or a team gained a
// member this tick.
func (s *Strategist) Assess(inst *instance.Instance, m world.Match, state *model.MatchState, totalPoints int, joined map[model.TeamID]bool) []Event {
	if totalPoints == 0 {
		totalPoints = len(state.Points)
	}
	var events []Event
	for _, team := range teams {
		stance, changed := s.Controller.Refresh(inst, m, team, state.Controlled(team), totalPoints)
		if changed {
			events = append(events, Event{
				Kind:     EventPostureChanged,
				Instance: inst.ID,
				Elapsed:  state.Elapsed.Seconds(),
				Team:     team.String(),
				Detail:   describeStance(stance),
			})
		}
		if s.Controller.Rebalance(inst, team, state.Elapsed, s.Intervals.RoleRebalance, changed || joined[team]) {
			slog.Debug("roles rebalanced", "instance", inst.ID, "team", team, "posture", stance.Posture)
		}
	}
	return events
}

func describeStance(s model.Stance) string {
	if s.Critical {
		return s.Posture.String() + " (critical)"
	}
	return s.Posture.String()
}
