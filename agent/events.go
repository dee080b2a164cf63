package agent

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nstehr/rally/rally-core/model"
)

// EventKind identifies something worth showing an operator.
type EventKind string

const (
	EventAgentEntered       EventKind = "agent_entered"
	EventAgentLeft          EventKind = "agent_left"
	EventPostureChanged     EventKind = "posture_changed"
	EventObjectiveCommitted EventKind = "objective_committed"
	EventObjectiveStale     EventKind = "objective_stale"
	EventObjectiveCompleted EventKind = "objective_completed"
	EventPathSelected       EventKind = "path_selected"
	EventPathExhausted      EventKind = "path_exhausted"
	EventPointCaptured      EventKind = "point_captured"
	EventPointContested     EventKind = "point_contested"
	EventPointLost          EventKind = "point_lost"
)

// Event is one entry of the decision feed. Zero fields are omitted on the
// wire, so an event only carries what applies to it.
type Event struct {
	Kind     EventKind        `json:"kind"`
	Instance model.InstanceID `json:"instance"`
	Elapsed  float64          `json:"elapsed"` // seconds
	Agent    model.AgentID    `json:"agent,omitempty"`
	Team     string           `json:"team,omitempty"`
	Rule     string           `json:"rule,omitempty"`
	Intent   string           `json:"intent,omitempty"`
	Point    *model.PointID   `json:"point,omitempty"`
	Detail   string           `json:"detail,omitempty"`
}

// Sink receives events as they are produced.
type Sink func(Event)

func pointRef(id model.PointID) *model.PointID {
	if id == model.NoPoint {
		return nil
	}
	return &id
}

// detectPointEvents diffs point ownership between consecutive ticks. The
// first tick of an instance only establishes the baseline.
func detectPointEvents(inst model.InstanceID, prev, cur map[model.PointID]model.PointState) []Event {
	if prev == nil {
		return nil
	}
	ids := make([]model.PointID, 0, len(cur))
	for id := range cur {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var events []Event
	for _, id := range ids {
		was, now := prev[id], cur[id]
		if was == now {
			continue
		}
		ev := Event{Instance: inst, Point: pointRef(id)}
		switch {
		case now.Status == model.Owned:
			ev.Kind, ev.Team = EventPointCaptured, now.Owner.String()
		case now.Status == model.Contested:
			ev.Kind, ev.Team = EventPointContested, now.Owner.String()
		case was.Status != model.Uncontrolled:
			ev.Kind, ev.Team = EventPointLost, was.Owner.String()
		default:
			continue
		}
		ev.Detail = fmt.Sprintf("%s -> %s", was.Status, now.Status)
		events = append(events, ev)
	}
	return events
}

// formatEvents renders events for a log line.
func formatEvents(events []Event) string {
	if len(events) == 0 {
		return ""
	}
	var b strings.Builder
	for i, e := range events {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(string(e.Kind))
		if e.Agent != 0 {
			fmt.Fprintf(&b, " agent=%d", e.Agent)
		}
		if e.Point != nil {
			fmt.Fprintf(&b, " point=%d", *e.Point)
		}
		if e.Detail != "" {
			fmt.Fprintf(&b, " (%s)", e.Detail)
		}
	}
	return b.String()
}
