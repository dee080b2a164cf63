package model

import "fmt"

type (
	AgentID    uint64
	InstanceID uint32
	PointID    int
)

// NoPoint marks a candidate that targets a position or an agent rather than
// an objective point.
const NoPoint PointID = -1

// TeamID identifies one of the two sides of a match.
type TeamID uint8

const (
	TeamAlliance TeamID = 0
	TeamHorde    TeamID = 1
)

// Enemy returns the opposing team.
func (t TeamID) Enemy() TeamID {
	if t == TeamAlliance {
		return TeamHorde
	}
	return TeamAlliance
}

func (t TeamID) String() string {
	switch t {
	case TeamAlliance:
		return "alliance"
	case TeamHorde:
		return "horde"
	}
	return fmt.Sprintf("team(%d)", uint8(t))
}

// ParseTeam accepts the names String returns.
func ParseTeam(name string) (TeamID, error) {
	switch name {
	case "alliance":
		return TeamAlliance, nil
	case "horde":
		return TeamHorde, nil
	}
	return 0, fmt.Errorf("unknown team %q", name)
}

// MatchType selects the path graph, objective layout and candidate rules.
type MatchType string

const (
	MatchDomination MatchType = "domination"
	MatchFlag       MatchType = "flag"
	MatchAssault    MatchType = "assault"
)

// MatchTypes lists every supported match type in a stable order.
var MatchTypes = []MatchType{MatchDomination, MatchFlag, MatchAssault}

// Known reports whether m is a supported match type.
func (m MatchType) Known() bool {
	for _, k := range MatchTypes {
		if k == m {
			return true
		}
	}
	return false
}

type PointStatus uint8

const (
	Uncontrolled PointStatus = iota
	Owned
	Contested
)

func (s PointStatus) String() string {
	switch s {
	case Owned:
		return "owned"
	case Contested:
		return "contested"
	}
	return "uncontrolled"
}

// PointState is the match layer's view of an objective point. For a
// contested point Owner is the team that held it before the assault began.
type PointState struct {
	Status PointStatus `json:"status"`
	Owner  TeamID      `json:"owner"`
}

// OwnedBy reports whether team holds the point outright.
func (p PointState) OwnedBy(team TeamID) bool {
	return p.Status == Owned && p.Owner == team
}

// Friendly reports whether team holds the point, contested or not.
func (p PointState) Friendly(team TeamID) bool {
	return p.Status != Uncontrolled && p.Owner == team
}

// ObjectivePoint is static per match type and authored in config.
type ObjectivePoint struct {
	ID    PointID `json:"id"`
	Name  string  `json:"name"`
	Pos   Vec3    `json:"pos"`
	Value float64 `json:"value"`
	// Order is the position along the assault front, lowest first for the
	// attacking alliance side.
	Order int `json:"order,omitempty"`
	// Base marks a flag base; only meaningful in flag matches.
	Base *TeamID `json:"base,omitempty"`
}

// AgentView is what the engine sees of an agent on a tick.
type AgentView struct {
	ID            AgentID `json:"id"`
	Team          TeamID  `json:"team"`
	Pos           Vec3    `json:"pos"`
	Alive         bool    `json:"alive"`
	InMatch       bool    `json:"in_match"`
	CarryingToken bool    `json:"carrying_token"`
	InCombat      bool    `json:"in_combat"`
	// Target is the enemy the combat layer is engaged with, 0 when none.
	Target AgentID `json:"target,omitempty"`
}

// EntityRef points at another agent, with the position it had when observed.
type EntityRef struct {
	ID  AgentID
	Pos Vec3
}

type MoveResult uint8

const (
	MoveAccepted MoveResult = iota
	MoveTooSoon
	MoveUnreachable
)

func (r MoveResult) String() string {
	switch r {
	case MoveAccepted:
		return "accepted"
	case MoveTooSoon:
		return "too_soon"
	case MoveUnreachable:
		return "unreachable"
	}
	return "unknown"
}

// Intent records why a candidate was chosen so it can be re-validated on arrival.
type Intent uint8

const (
	IntentRally Intent = iota
	IntentCapture
	IntentDefend
	IntentEngage
)

func (i Intent) String() string {
	switch i {
	case IntentCapture:
		return "capture"
	case IntentDefend:
		return "defend"
	case IntentEngage:
		return "engage"
	}
	return "rally"
}

// ObjectiveCandidate is produced by arbitration and never persisted beyond
// the agent's single committed destination.
type ObjectiveCandidate struct {
	Point               PointID
	Target              AgentID
	Pos                 Vec3
	Score               float64
	RequiresGraphTravel bool
	Intent              Intent
	Rule                string
}

// SameTarget reports whether c and o refer to the same destination.
func (c ObjectiveCandidate) SameTarget(o ObjectiveCandidate) bool {
	if c.Intent != o.Intent {
		return false
	}
	switch {
	case c.Target != 0 || o.Target != 0:
		return c.Target == o.Target
	case c.Point != NoPoint || o.Point != NoPoint:
		return c.Point == o.Point
	}
	return c.Pos == o.Pos
}

type Posture uint8

const (
	Balanced Posture = iota
	Aggressive
	Defensive
)

func (p Posture) String() string {
	switch p {
	case Aggressive:
		return "aggressive"
	case Defensive:
		return "defensive"
	}
	return "balanced"
}

// Stance is a team's posture plus whether the match is declared critical
// for it (losing badly enough to take overmatched fights).
type Stance struct {
	Posture  Posture
	Critical bool
}

type Role uint8

const (
	RoleAttacker Role = iota
	RoleDefender
)

func (r Role) String() string {
	if r == RoleDefender {
		return "defender"
	}
	return "attacker"
}
