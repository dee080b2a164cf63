package rules

import (
	"math"
	"time"

	"github.com/nstehr/rally/rally-core/instance"
	"github.com/nstehr/rally/rally-core/model"
	"github.com/nstehr/rally/rally-core/strategy"
	"github.com/nstehr/rally/rally-core/world"
)

// Situation is everything one agent's arbitration reads on one tick.
type Situation struct {
	Inst     *instance.Instance
	Agent    model.AgentView
	State    *instance.AgentState
	Stance   model.Stance
	Profile  strategy.Profile
	World    world.World
	Now      time.Duration
	InCombat bool

	layout Layout
	rules  MatchTypeRules
	probe  probe
}

// probe caches the world queries shared by the rule gates and selectors.
type probe struct {
	threatened []model.PointID
	enemy      model.EntityRef
	enemyDist  float64
	enemyOK    bool
	capturable []model.ObjectivePoint // within the opportunistic radius, nearest first
}

// Env is the view of a Situation that rule conditions are written against.
type Env struct {
	Posture       string
	Critical      bool
	Role          string
	Carrying      bool
	InCombat      bool
	HasObjective  bool
	Sticky        bool
	State         string
	Intent        string
	Elapsed       float64 // seconds
	TeamScore     float64
	EnemyScore    float64
	Threatened    int
	EnemyInRange  bool
	EnemyDistance float64 // -1 when no enemy is in range
	Capturable    int     // capturable points within the opportunistic radius
}

func (e Env) IsDefender() bool   { return e.Role == model.RoleDefender.String() }
func (e Env) IsAttacker() bool   { return e.Role == model.RoleAttacker.String() }
func (e Env) ScoreDiff() float64 { return e.TeamScore - e.EnemyScore }
func (e Env) Behind() bool       { return e.TeamScore < e.EnemyScore }
func (e Env) Ahead() bool        { return e.TeamScore > e.EnemyScore }

// Minutes returns elapsed match time in minutes.
func (e Env) Minutes() float64 { return e.Elapsed / 60 }

func newEnv(s *Situation) Env {
	env := Env{
		Posture:       s.Stance.Posture.String(),
		Critical:      s.Stance.Critical,
		Role:          s.State.Role.String(),
		Carrying:      s.Agent.CarryingToken,
		InCombat:      s.InCombat,
		HasObjective:  s.State.HasObjective,
		Sticky:        s.State.Sticky,
		State:         s.State.State.String(),
		Elapsed:       s.Now.Seconds(),
		TeamScore:     s.World.TeamScore(s.Inst.ID, s.Agent.Team),
		EnemyScore:    s.World.TeamScore(s.Inst.ID, s.Agent.Team.Enemy()),
		Threatened:    len(s.probe.threatened),
		EnemyInRange:  s.probe.enemyOK,
		EnemyDistance: -1,
		Capturable:    len(s.probe.capturable),
	}
	if s.State.HasObjective {
		env.Intent = s.State.Objective.Intent.String()
	}
	if s.probe.enemyOK {
		env.EnemyDistance = math.Round(s.probe.enemyDist*10) / 10
	}
	return env
}
