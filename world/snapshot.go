package world

import (
	"cmp"
	"slices"
	"time"

	"github.com/nstehr/rally/rally-core/model"
)

// MoveOrder is a move accepted during a tick, to be sent back to the host.
type MoveOrder struct {
	Agent model.AgentID
	Pos   model.Vec3
}

// InteractOrder asks the host to perform the objective act for an agent.
type InteractOrder struct {
	Agent model.AgentID
	Point model.PointID
}

// Snapshot answers every collaborator query from a single host tick. It is
// built fresh each tick and buffers the orders issued against it.
type Snapshot struct {
	state   *model.MatchState
	terrain *model.HeightGrid
	grid    *SpatialGrid
	agents  map[model.AgentID]model.AgentView

	moved     map[model.AgentID]bool
	moves     []MoveOrder
	interacts []InteractOrder
}

var _ World = (*Snapshot)(nil)

// NewSnapshot indexes state for density queries. terrain may be nil when the
// host did not send a height grid; height lookups then report no data.
func NewSnapshot(state *model.MatchState, terrain *model.HeightGrid, cellSize float64) *Snapshot {
	s := &Snapshot{
		state:   state,
		terrain: terrain,
		grid:    NewSpatialGrid(cellSize),
		agents:  make(map[model.AgentID]model.AgentView, len(state.Agents)),
		moved:   make(map[model.AgentID]bool),
	}
	s.grid.Index(state.Agents)
	for _, a := range state.Agents {
		s.agents[a.ID] = a
	}
	return s
}

func (s *Snapshot) Height(x, y float64) (float64, bool) {
	return s.terrain.AtWorld(x, y)
}

func (s *Snapshot) HasLineOfSight(a, b model.Vec3) bool {
	return lineOfSight(s.terrain, a, b)
}

func (s *Snapshot) AlliesNear(team model.TeamID, p model.Vec3, radius float64) int {
	return s.grid.Count(team, p, radius)
}

func (s *Snapshot) EnemiesNear(team model.TeamID, p model.Vec3, radius float64) int {
	return s.grid.Count(team.Enemy(), p, radius)
}

func (s *Snapshot) NearestEnemy(team model.TeamID, p model.Vec3, radius float64) (model.EntityRef, bool) {
	a, ok := s.grid.Nearest(team.Enemy(), p, radius)
	if !ok {
		return model.EntityRef{}, false
	}
	return model.EntityRef{ID: a.ID, Pos: a.Pos}, true
}

func (s *Snapshot) TeamScore(inst model.InstanceID, team model.TeamID) float64 {
	if inst != s.state.Instance {
		return 0
	}
	return s.state.Scores[team]
}

func (s *Snapshot) ElapsedTime(inst model.InstanceID) time.Duration {
	if inst != s.state.Instance {
		return 0
	}
	return s.state.Elapsed
}

// PointState reports unknown points as uncontrolled.
func (s *Snapshot) PointState(inst model.InstanceID, point model.PointID) model.PointState {
	if inst != s.state.Instance {
		return model.PointState{}
	}
	return s.state.Points[point]
}

func (s *Snapshot) InCombat(agent model.AgentID) bool {
	return s.agents[agent].InCombat
}

// CurrentEnemyTarget only reports targets that are still alive this tick.
func (s *Snapshot) CurrentEnemyTarget(agent model.AgentID) (model.EntityRef, bool) {
	a, ok := s.agents[agent]
	if !ok || a.Target == 0 {
		return model.EntityRef{}, false
	}
	t, ok := s.agents[a.Target]
	if !ok || !t.Alive {
		return model.EntityRef{}, false
	}
	return model.EntityRef{ID: t.ID, Pos: t.Pos}, true
}

// RequestMove rejects a second move in the same tick with MoveTooSoon, and
// destinations off the height grid with MoveUnreachable.
func (s *Snapshot) RequestMove(agent model.AgentID, pos model.Vec3) model.MoveResult {
	a, ok := s.agents[agent]
	if !ok || !a.Alive {
		return model.MoveUnreachable
	}
	if s.moved[agent] {
		return model.MoveTooSoon
	}
	if s.terrain != nil {
		if _, ok := s.terrain.AtWorld(pos.X, pos.Y); !ok {
			return model.MoveUnreachable
		}
	}
	s.moved[agent] = true
	s.moves = append(s.moves, MoveOrder{Agent: agent, Pos: pos})
	return model.MoveAccepted
}

// Interact queues the act once per agent per tick.
func (s *Snapshot) Interact(inst model.InstanceID, agent model.AgentID, point model.PointID) bool {
	if inst != s.state.Instance {
		return false
	}
	for _, o := range s.interacts {
		if o.Agent == agent {
			return false
		}
	}
	s.interacts = append(s.interacts, InteractOrder{Agent: agent, Point: point})
	return true
}

// Orders returns the buffered orders sorted by agent id.
func (s *Snapshot) Orders() ([]MoveOrder, []InteractOrder) {
	moves := slices.Clone(s.moves)
	slices.SortFunc(moves, func(a, b MoveOrder) int { return cmp.Compare(a.Agent, b.Agent) })
	interacts := slices.Clone(s.interacts)
	slices.SortFunc(interacts, func(a, b InteractOrder) int { return cmp.Compare(a.Agent, b.Agent) })
	return moves, interacts
}
