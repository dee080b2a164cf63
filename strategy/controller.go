package strategy

import (
	"log/slog"
	"time"

	"github.com/nstehr/rally/rally-core/instance"
	"github.com/nstehr/rally/rally-core/model"
	"github.com/nstehr/rally/rally-core/world"
)

// Controller keeps each team's stance current inside an instance.
type Controller struct {
	Thresholds Thresholds
	Profiles   Profiles
}

func NewController(th Thresholds, p Profiles) *Controller {
	p.Validate()
	return &Controller{Thresholds: th, Profiles: p}
}

// Refresh derives team's stance for this tick and caches it on the instance.
// changed is true when the posture differs from the cached one, including
// the first refresh in an instance.
func (c *Controller) Refresh(inst *instance.Instance, m world.Match, team model.TeamID, controlled, total int) (model.Stance, bool) {
	s := Derive(Inputs{
		TeamScore:        m.TeamScore(inst.ID, team),
		EnemyScore:       m.TeamScore(inst.ID, team.Enemy()),
		Elapsed:          m.ElapsedTime(inst.ID),
		PointsControlled: controlled,
		TotalPoints:      total,
	}, c.Thresholds)

	prev, ok := inst.Stance(team)
	inst.SetStance(team, s)
	if ok && prev == s {
		return s, false
	}
	slog.Info("posture changed", "instance", inst.ID, "team", team, "posture", s.Posture, "critical", s.Critical)
	return s, true
}

// Stance returns team's cached stance, balanced when none was derived yet.
func (c *Controller) Stance(inst *instance.Instance, team model.TeamID) model.Stance {
	s, _ := inst.Stance(team)
	return s
}

// Profile returns the tuning for team's current posture.
func (c *Controller) Profile(inst *instance.Instance, team model.TeamID) Profile {
	return c.Profiles.For(c.Stance(inst, team).Posture)
}

// Rebalance reassigns defender and attacker roles for team's roster, at
// most once per interval unless forced by a posture change or a new arrival.
func (c *Controller) Rebalance(inst *instance.Instance, team model.TeamID, now, every time.Duration, force bool) bool {
	if !inst.AllowTeam(team, "roles", now, every) && !force {
		return false
	}
	roles := AssignRoles(inst.Roster(team), c.Profile(inst, team).DefenderShare)
	for _, a := range inst.Agents() {
		if r, ok := roles[a.ID]; ok {
			a.Role = r
		}
	}
	return true
}
