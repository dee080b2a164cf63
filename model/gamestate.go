package model

import "time"

// MatchState is one tick of a match instance as reported by the host.
type MatchState struct {
	Instance InstanceID             `json:"instance"`
	Elapsed  time.Duration          `json:"elapsed"`
	Scores   map[TeamID]float64     `json:"scores"`
	Points   map[PointID]PointState `json:"points"`
	Agents   []AgentView            `json:"agents"`
}

// Agent returns the view of id, if it was reported this tick.
func (s *MatchState) Agent(id AgentID) (AgentView, bool) {
	for _, a := range s.Agents {
		if a.ID == id {
			return a, true
		}
	}
	return AgentView{}, false
}

// Controlled counts points team holds outright.
func (s *MatchState) Controlled(team TeamID) int {
	n := 0
	for _, p := range s.Points {
		if p.OwnedBy(team) {
			n++
		}
	}
	return n
}
