package ipc

import (
	"math"

	"github.com/nstehr/rally/rally-core/model"
)

// Message types exchanged with the host. The host sends everything except
// ack, commands and paths.
const (
	TypeHello         = "hello"
	TypeAck           = "ack"
	TypeInstanceStart = "instance_start"
	TypeTick          = "tick"
	TypeCommands      = "commands"
	TypeInstanceEnd   = "instance_end"
	TypeListPaths     = "list_paths"
	TypeShowPath      = "show_path"
	TypePaths         = "paths"
)

type HelloMessage struct {
	Host    string `json:"host"`
	Version string `json:"version,omitempty"`
}

type AckMessage struct {
	Status string `json:"status"`
}

// InstanceStartMessage opens a match instance. Terrain is optional; without
// it heights and line of sight report no data.
type InstanceStartMessage struct {
	Instance  model.InstanceID `json:"instance"`
	MatchType model.MatchType  `json:"match_type"`
	Terrain   *TerrainData     `json:"terrain,omitempty"`
}

// TerrainData carries the coarse height grid. JSON has no NaN, so holes
// arrive as null samples.
type TerrainData struct {
	Cols     int        `json:"cols"`
	Rows     int        `json:"rows"`
	CellSize float64    `json:"cell_size"`
	OriginX  float64    `json:"origin_x"`
	OriginY  float64    `json:"origin_y"`
	Heights  []*float64 `json:"heights"`
}

// Grid converts the wire form, marking null samples as holes.
func (t *TerrainData) Grid() *model.HeightGrid {
	if t == nil {
		return nil
	}
	heights := make([]float64, len(t.Heights))
	for i, h := range t.Heights {
		if h == nil {
			heights[i] = math.NaN()
			continue
		}
		heights[i] = *h
	}
	return &model.HeightGrid{
		Cols:     t.Cols,
		Rows:     t.Rows,
		CellSize: t.CellSize,
		OriginX:  t.OriginX,
		OriginY:  t.OriginY,
		Heights:  heights,
	}
}

// PointReport is the host's view of one objective point.
type PointReport struct {
	ID     model.PointID     `json:"id"`
	Status model.PointStatus `json:"status"`
	Owner  model.TeamID      `json:"owner"`
}

// Interaction reports a capture or defend act the host completed since the
// previous tick.
type Interaction struct {
	Agent model.AgentID `json:"agent"`
	Point model.PointID `json:"point"`
}

type TickMessage struct {
	Instance     model.InstanceID         `json:"instance"`
	ElapsedMS    int64                    `json:"elapsed_ms"`
	Scores       map[model.TeamID]float64 `json:"scores"`
	Points       []PointReport            `json:"points"`
	Agents       []model.AgentView        `json:"agents"`
	Interactions []Interaction            `json:"interactions,omitempty"`
}

type InstanceEndMessage struct {
	Instance model.InstanceID `json:"instance"`
}

type ListPathsMessage struct {
	MatchType model.MatchType `json:"match_type"`
}

type ShowPathMessage struct {
	MatchType model.MatchType `json:"match_type"`
	Index     int             `json:"index"`
}

// PathSummary describes one segment for diagnostics.
type PathSummary struct {
	Index      int              `json:"index"`
	Name       string           `json:"name"`
	Reversible bool             `json:"reversible"`
	Length     float64          `json:"length"`
	Points     []model.Waypoint `json:"points,omitempty"`
}

type PathsMessage struct {
	MatchType model.MatchType `json:"match_type"`
	Segments  []PathSummary   `json:"segments"`
	Error     string          `json:"error,omitempty"`
}
