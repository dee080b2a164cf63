// Package world defines the collaborators the engine consults each tick and
// a snapshot-backed implementation of them built from host tick messages.
package world

import (
	"time"

	"github.com/nstehr/rally/rally-core/model"
)

//go:generate go tool mockgen -destination=./mocks/world_mock.go -package=mocks . Terrain,Density,Match,Combat,Mover,Interactor

// Terrain answers geometry queries. Height reports ok=false when no data is
// available; callers keep their prior z in that case.
type Terrain interface {
	Height(x, y float64) (float64, bool)
	HasLineOfSight(a, b model.Vec3) bool
}

// Density counts live agents around a point relative to a team.
type Density interface {
	AlliesNear(team model.TeamID, p model.Vec3, radius float64) int
	EnemiesNear(team model.TeamID, p model.Vec3, radius float64) int
	NearestEnemy(team model.TeamID, p model.Vec3, radius float64) (model.EntityRef, bool)
}

// Match is read-only score and objective bookkeeping for an instance.
type Match interface {
	TeamScore(inst model.InstanceID, team model.TeamID) float64
	ElapsedTime(inst model.InstanceID) time.Duration
	PointState(inst model.InstanceID, point model.PointID) model.PointState
}

type Combat interface {
	InCombat(agent model.AgentID) bool
	CurrentEnemyTarget(agent model.AgentID) (model.EntityRef, bool)
}

// Mover accepts at most one move per agent per tick.
type Mover interface {
	RequestMove(agent model.AgentID, pos model.Vec3) model.MoveResult
}

// Interactor performs the objective-specific act (capture, defend) for an
// agent standing at a point. It reports whether the act was carried out.
type Interactor interface {
	Interact(inst model.InstanceID, agent model.AgentID, point model.PointID) bool
}

// World bundles every collaborator for one instance tick.
type World interface {
	Terrain
	Density
	Match
	Combat
	Mover
	Interactor
}
