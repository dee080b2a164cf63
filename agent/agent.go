// Package agent serves one host connection: it owns the connection's
// instance registry and turns each tick into movement and interaction
// commands.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nstehr/rally/rally-core/ipc"
	"github.com/nstehr/rally/rally-core/model"
	"github.com/nstehr/rally/rally-core/paths"
	"github.com/nstehr/rally/rally-core/world"
)

// Agent owns the decision-making for a single host session.
type Agent struct {
	Conn   *ipc.Connection
	Host   string
	Driver *Driver

	ctx      context.Context
	sink     Sink
	cellSize float64

	mu      sync.Mutex
	terrain map[model.InstanceID]*model.HeightGrid
}

// New builds a session. sink may be nil; cellSize is the density index
// bucket size.
func New(ctx context.Context, conn *ipc.Connection, driver *Driver, sink Sink, cellSize float64) *Agent {
	return &Agent{
		Conn:     conn,
		Driver:   driver,
		ctx:      ctx,
		sink:     sink,
		cellSize: cellSize,
		terrain:  make(map[model.InstanceID]*model.HeightGrid),
	}
}

// Register installs every handler on the connection.
func (a *Agent) Register() {
	a.Conn.RegisterHandler(ipc.TypeHello, a.HandleHello)
	a.Conn.RegisterHandler(ipc.TypeInstanceStart, a.HandleInstanceStart)
	a.Conn.RegisterHandler(ipc.TypeTick, a.HandleTick)
	a.Conn.RegisterHandler(ipc.TypeInstanceEnd, a.HandleInstanceEnd)
	a.Conn.RegisterHandler(ipc.TypeListPaths, a.HandleListPaths)
	a.Conn.RegisterHandler(ipc.TypeShowPath, a.HandleShowPath)
}

func ack() (*ipc.Envelope, error) {
	env, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &env, nil
}

// HandleHello completes the handshake so the host knows the sidecar is ready.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := env.Decode(&hello); err != nil {
		return nil, err
	}
	a.Host = hello.Host
	a.Conn.Host = hello.Host
	slog.Info("host identified", "conn", a.Conn.ID, "host", a.Host, "version", hello.Version)
	return ack()
}

func (a *Agent) HandleInstanceStart(env ipc.Envelope) (*ipc.Envelope, error) {
	var msg ipc.InstanceStartMessage
	if err := env.Decode(&msg); err != nil {
		return nil, err
	}
	if !msg.MatchType.Known() {
		return nil, fmt.Errorf("instance %d: %w: %q", msg.Instance, paths.ErrUnknownMatchType, msg.MatchType)
	}
	if _, ok := a.Driver.Library.Get(msg.MatchType); !ok {
		slog.Warn("no path graph for match type, agents will move directly", "instance", msg.Instance, "matchType", msg.MatchType)
	}
	a.Driver.Registry.Open(msg.Instance, msg.MatchType)

	a.mu.Lock()
	a.terrain[msg.Instance] = msg.Terrain.Grid()
	a.mu.Unlock()
	if msg.Terrain == nil {
		slog.Info("instance started without terrain", "instance", msg.Instance)
	}
	return ack()
}

// HandleTick runs one decision pass for the instance and replies with the
// resulting orders. Problems are logged and answered with an empty order
// list; the host never sees a tick fail.
func (a *Agent) HandleTick(env ipc.Envelope) (*ipc.Envelope, error) {
	var msg ipc.TickMessage
	if err := env.Decode(&msg); err != nil {
		return nil, err
	}
	reply := ipc.CommandsMessage{Instance: uint32(msg.Instance), Moves: []ipc.MoveCommand{}}

	inst, ok := a.Driver.Registry.Get(msg.Instance)
	if !ok {
		slog.Warn("tick for unknown instance", "conn", a.Conn.ID, "instance", msg.Instance)
		return commands(reply)
	}

	state := matchState(msg)
	a.mu.Lock()
	terrain := a.terrain[msg.Instance]
	a.mu.Unlock()

	snap := world.NewSnapshot(state, terrain, a.cellSize)
	events := a.Driver.TickInstance(a.ctx, inst, snap, state, msg.Interactions)

	moves, interacts := snap.Orders()
	for _, m := range moves {
		reply.Moves = append(reply.Moves, ipc.MoveCommand{Agent: uint64(m.Agent), X: m.Pos.X, Y: m.Pos.Y, Z: m.Pos.Z})
	}
	for _, o := range interacts {
		reply.Interacts = append(reply.Interacts, ipc.InteractCommand{Agent: uint64(o.Agent), Point: int(o.Point)})
	}

	if len(events) > 0 {
		slog.Debug("tick events", "instance", msg.Instance, "events", formatEvents(events))
	}
	if a.sink != nil {
		for _, ev := range events {
			a.sink(ev)
		}
	}
	return commands(reply)
}

func commands(msg ipc.CommandsMessage) (*ipc.Envelope, error) {
	env, err := ipc.NewEnvelope(ipc.TypeCommands, msg)
	if err != nil {
		return nil, err
	}
	return &env, nil
}

func matchState(msg ipc.TickMessage) *model.MatchState {
	state := &model.MatchState{
		Instance: msg.Instance,
		Elapsed:  time.Duration(msg.ElapsedMS) * time.Millisecond,
		Scores:   msg.Scores,
		Points:   make(map[model.PointID]model.PointState, len(msg.Points)),
		Agents:   msg.Agents,
	}
	if state.Scores == nil {
		state.Scores = make(map[model.TeamID]float64)
	}
	for _, p := range msg.Points {
		state.Points[p.ID] = model.PointState{Status: p.Status, Owner: p.Owner}
	}
	return state
}

func (a *Agent) HandleInstanceEnd(env ipc.Envelope) (*ipc.Envelope, error) {
	var msg ipc.InstanceEndMessage
	if err := env.Decode(&msg); err != nil {
		return nil, err
	}
	a.Driver.Registry.End(msg.Instance)
	a.Driver.Forget(msg.Instance)
	a.mu.Lock()
	delete(a.terrain, msg.Instance)
	a.mu.Unlock()
	return ack()
}

func (a *Agent) HandleListPaths(env ipc.Envelope) (*ipc.Envelope, error) {
	var msg ipc.ListPathsMessage
	if err := env.Decode(&msg); err != nil {
		return nil, err
	}
	return a.paths(msg.MatchType, -1)
}

func (a *Agent) HandleShowPath(env ipc.Envelope) (*ipc.Envelope, error) {
	var msg ipc.ShowPathMessage
	if err := env.Decode(&msg); err != nil {
		return nil, err
	}
	return a.paths(msg.MatchType, msg.Index)
}

// paths answers the diagnostics requests. index < 0 lists every segment
// without its waypoints.
func (a *Agent) paths(mt model.MatchType, index int) (*ipc.Envelope, error) {
	reply := ipc.PathsMessage{MatchType: mt, Segments: []ipc.PathSummary{}}
	g, ok := a.Driver.Library.Get(mt)
	switch {
	case !ok:
		reply.Error = fmt.Sprintf("no path graph for %q", mt)
	case index < 0:
		for i := range g.Len() {
			seg, _ := g.Segment(i)
			reply.Segments = append(reply.Segments, Summarize(i, seg, false))
		}
	default:
		seg, ok := g.Segment(index)
		if !ok {
			reply.Error = fmt.Sprintf("segment %d out of range (%d segments)", index, g.Len())
			break
		}
		reply.Segments = append(reply.Segments, Summarize(index, seg, true))
	}
	env, err := ipc.NewEnvelope(ipc.TypePaths, reply)
	if err != nil {
		return nil, err
	}
	return &env, nil
}

// Summarize describes a segment for diagnostics.
func Summarize(index int, seg paths.Segment, withPoints bool) ipc.PathSummary {
	s := ipc.PathSummary{Index: index, Name: seg.Name, Reversible: seg.Reversible, Length: seg.Length()}
	if withPoints {
		s.Points = seg.Points
	}
	return s
}
