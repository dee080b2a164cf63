package agent

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/nstehr/rally/rally-core/instance"
	"github.com/nstehr/rally/rally-core/ipc"
	"github.com/nstehr/rally/rally-core/model"
	"github.com/nstehr/rally/rally-core/paths"
	"github.com/nstehr/rally/rally-core/rules"
	"github.com/nstehr/rally/rally-core/world"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/nstehr/rally/rally-core/agent"

// Driver runs the per-tick control flow for every instance of one host
// connection: roster, scoreboard, posture, then one decision and at most
// one movement per agent.
type Driver struct {
	Registry   *instance.Registry
	Library    *paths.Library
	Arbiter    *rules.Arbiter
	Strategist *Strategist
	Tuning     func(model.MatchType) paths.Tuning
	Walker     paths.Walker

	tracer trace.Tracer

	mu     sync.Mutex
	points map[model.InstanceID]map[model.PointID]model.PointState
}

func NewDriver(reg *instance.Registry, lib *paths.Library, arb *rules.Arbiter, strat *Strategist, tuning func(model.MatchType) paths.Tuning) *Driver {
	if tuning == nil {
		tuning = func(model.MatchType) paths.Tuning { return paths.DefaultTuning() }
	}
	return &Driver{
		Registry:   reg,
		Library:    lib,
		Arbiter:    arb,
		Strategist: strat,
		Tuning:     tuning,
		Walker:     paths.NewWalker(),
		tracer:     otel.Tracer(tracerName),
		points:     make(map[model.InstanceID]map[model.PointID]model.PointState),
	}
}

// TickInstance advances every agent of inst by one tick. Orders are issued
// against w; the returned events describe what changed.
func (d *Driver) TickInstance(ctx context.Context, inst *instance.Instance, w world.World, state *model.MatchState, completed []ipc.Interaction) []Event {
	_, span := d.tracer.Start(ctx, "agent.TickInstance", trace.WithAttributes(
		attribute.Int64("instance", int64(inst.ID)),
		attribute.String("match_type", string(inst.MatchType)),
		attribute.Int("agents", len(state.Agents)),
	))
	defer span.End()

	now := state.Elapsed
	layout := d.Arbiter.Layout(inst.MatchType)

	events, joined := d.syncRoster(inst, state)
	events = append(events, d.pointEvents(inst.ID, state)...)

	for _, c := range completed {
		st, ok := inst.Agent(c.Agent)
		if !ok || !st.HasObjective || st.Objective.Point != c.Point {
			continue
		}
		events = append(events, Event{
			Kind:     EventObjectiveCompleted,
			Instance: inst.ID,
			Elapsed:  now.Seconds(),
			Agent:    c.Agent,
			Team:     st.Team.String(),
			Intent:   st.Objective.Intent.String(),
			Point:    pointRef(c.Point),
		})
		st.Clear()
	}

	if inst.Board.Refresh(now, func() instance.Board {
		return d.Arbiter.DefenseBoard(inst.ID, inst.MatchType, w, w)
	}) {
		span.AddEvent("scoreboard refreshed")
	}

	events = append(events, d.Strategist.Assess(inst, w, state, len(layout.Points), joined)...)

	agents := slices.Clone(state.Agents)
	slices.SortFunc(agents, func(a, b model.AgentView) int { return cmp.Compare(a.ID, b.ID) })
	for _, a := range agents {
		st, ok := inst.Agent(a.ID)
		if !ok {
			continue
		}
		events = append(events, d.tickAgent(inst, a, st, w, now)...)
	}

	span.SetAttributes(attribute.Int("events", len(events)))
	return events
}

// syncRoster enters every agent reported in the match and prunes the ones
// that left it. joined reports which teams gained a member.
func (d *Driver) syncRoster(inst *instance.Instance, state *model.MatchState) ([]Event, map[model.TeamID]bool) {
	var events []Event
	joined := make(map[model.TeamID]bool)
	present := make(map[model.AgentID]bool, len(state.Agents))
	for _, a := range state.Agents {
		if !a.InMatch {
			continue
		}
		present[a.ID] = true
		if _, first := d.Registry.Enter(inst, a.ID, a.Team); first {
			joined[a.Team] = true
			slog.Info("agent entered instance", "instance", inst.ID, "agent", a.ID, "team", a.Team)
			events = append(events, Event{Kind: EventAgentEntered, Instance: inst.ID, Elapsed: state.Elapsed.Seconds(), Agent: a.ID, Team: a.Team.String()})
		}
	}
	for _, st := range inst.Agents() {
		if present[st.ID] {
			continue
		}
		d.Registry.Leave(st.ID)
		events = append(events, Event{Kind: EventAgentLeft, Instance: inst.ID, Elapsed: state.Elapsed.Seconds(), Agent: st.ID, Team: st.Team.String()})
	}
	return events, joined
}

func (d *Driver) pointEvents(id model.InstanceID, state *model.MatchState) []Event {
	cur := make(map[model.PointID]model.PointState, len(state.Points))
	for k, v := range state.Points {
		cur[k] = v
	}
	d.mu.Lock()
	prev := d.points[id]
	d.points[id] = cur
	d.mu.Unlock()

	events := detectPointEvents(id, prev, cur)
	for i := range events {
		events[i].Elapsed = state.Elapsed.Seconds()
	}
	return events
}

// Forget drops the point baseline kept for an ended instance.
func (d *Driver) Forget(id model.InstanceID) {
	d.mu.Lock()
	delete(d.points, id)
	d.mu.Unlock()
}

func (d *Driver) tickAgent(inst *instance.Instance, a model.AgentView, st *instance.AgentState, w world.World, now time.Duration) []Event {
	var events []Event
	base := Event{Instance: inst.ID, Elapsed: now.Seconds(), Agent: a.ID, Team: a.Team.String()}

	if !a.Alive {
		if st.Travel != nil {
			st.Travel = nil
			ev := base
			ev.Kind, ev.Detail = EventPathExhausted, paths.ExhaustDead.String()
			events = append(events, ev)
		}
		return events
	}

	decide := func() rules.Decision {
		stance := d.Strategist.Controller.Stance(inst, a.Team)
		profile := d.Strategist.Controller.Profile(inst, a.Team)
		dec := d.Arbiter.Decide(d.Arbiter.NewSituation(inst, a, st, stance, profile, w, now))
		events = append(events, decisionEvents(base, dec)...)
		return dec
	}

	if dec := decide(); !dec.HasObjective {
		return events
	}
	if st.State == instance.AtObjective {
		d.interact(inst, a, st, w)
		return events
	}

	g, _ := d.Library.Get(inst.MatchType)
	if st.Travel == nil && d.needsGraph(inst, a, st) {
		if sel, ok := paths.Select(g, d.Tuning(inst.MatchType), a.Pos, st.Objective.Pos); ok {
			st.Travel = paths.NewTravel(sel, st.Objective.Pos)
			ev := base
			ev.Kind, ev.Point = EventPathSelected, pointRef(st.Objective.Point)
			if seg, ok := g.Segment(sel.Segment); ok {
				ev.Detail = seg.Name
				if sel.Reverse {
					ev.Detail += " (reverse)"
				}
			}
			events = append(events, ev)
		}
	}

	if st.Travel != nil {
		step := d.Walker.Step(g, st.Travel, a, w.InCombat(a.ID), w, w)
		if step.Result != paths.StepExhausted {
			if step.Result == paths.StepWaiting {
				slog.Debug("path step rejected", "agent", a.ID, "move", step.Move)
			}
			return events
		}
		st.Travel = nil
		ev := base
		ev.Kind, ev.Detail = EventPathExhausted, step.Reason.String()
		events = append(events, ev)

		// Exhaustion hands control back to the arbiter before moving directly.
		if dec := decide(); !dec.HasObjective {
			return events
		}
		if st.State == instance.AtObjective {
			d.interact(inst, a, st, w)
			return events
		}
	}

	d.moveDirect(a, st, w)
	return events
}

// needsGraph reports whether the committed destination is far enough to
// be worth a path segment.
func (d *Driver) needsGraph(inst *instance.Instance, a model.AgentView, st *instance.AgentState) bool {
	if !st.Objective.RequiresGraphTravel || st.Objective.Intent == model.IntentEngage {
		return false
	}
	return a.Pos.Dist(st.Objective.Pos) > d.Arbiter.Layout(inst.MatchType).DirectMoveRange
}

// moveDirect walks straight at the destination. A rejected move is retried
// next tick.
func (d *Driver) moveDirect(a model.AgentView, st *instance.AgentState, w world.World) {
	target := st.Objective.Pos
	if h, ok := w.Height(target.X, target.Y); ok {
		target.Z = h
	}
	if res := w.RequestMove(a.ID, target); res != model.MoveAccepted {
		slog.Debug("direct move rejected", "agent", a.ID, "move", res)
	}
}

// interact performs the objective act once the agent stands on a point it
// means to capture or defend. The commitment is released when the host
// reports the act completed.
func (d *Driver) interact(inst *instance.Instance, a model.AgentView, st *instance.AgentState, w world.World) {
	o := st.Objective
	if o.Point == model.NoPoint || (o.Intent != model.IntentCapture && o.Intent != model.IntentDefend) {
		return
	}
	w.Interact(inst.ID, a.ID, o.Point)
}

func decisionEvents(base Event, dec rules.Decision) []Event {
	var events []Event
	if dec.Stale {
		ev := base
		ev.Kind = EventObjectiveStale
		events = append(events, ev)
	}
	if dec.Changed {
		ev := base
		ev.Kind = EventObjectiveCommitted
		ev.Rule = dec.Rule
		ev.Intent = dec.Candidate.Intent.String()
		ev.Point = pointRef(dec.Candidate.Point)
		if dec.Candidate.Target != 0 {
			ev.Detail = fmt.Sprintf("target %d", dec.Candidate.Target)
		}
		events = append(events, ev)
	}
	return events
}
