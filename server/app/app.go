/*
 fleetd, a lightweight workload orchestrator.
 Copyright (C) 2024 fleetd contributors

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as published by
 the Free Software Foundation, either version 3 of the License, or
 (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package app wires server/state.Manager and server/statedb.WorkloadStateDB
// to the transport layer: it is the single owning goroutine so that no
// lock is needed around the manager's state. Every transport.ServerHandler
// call, no matter which connection's read loop it arrived on, is funneled
// through one channel and handled serially.
package app

import (
	"context"
	"log/slog"

	"github.com/spacechunks/fleetd/objects"
	"github.com/spacechunks/fleetd/server/state"
	"github.com/spacechunks/fleetd/server/statedb"
	"github.com/spacechunks/fleetd/transport"
)

// App is a fleetd server's process-wide state, driven by Run from a
// single goroutine.
type App struct {
	logger *slog.Logger

	manager *state.Manager
	db      *statedb.WorkloadStateDB

	agents map[string]*transport.AgentLink

	events chan func()
}

func New(logger *slog.Logger) *App {
	return &App{
		logger:  logger.With("component", "server-app"),
		manager: state.New(logger),
		db:      statedb.New(),
		agents:  make(map[string]*transport.AgentLink),
		events:  make(chan func(), 128),
	}
}

// Run drains the event queue until ctx is canceled. Every
// ServerHandler method below submits its work as a closure here,
// so this is the only goroutine that ever touches manager, db, or
// agents.
func (a *App) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-a.events:
			fn()
		}
	}
}

var _ transport.ServerHandler = (*App)(nil)

// OnAgentHello registers the agent's link and pushes its current set
// of assigned workloads up front, because transport pushes future
// changes as they occur rather than on a reconcile tick.
func (a *App) OnAgentHello(ctx context.Context, link *transport.AgentLink, agentName string) {
	a.submit(func() {
		logger := a.logger.With("agent_name", agentName)
		logger.InfoContext(ctx, "agent connected")

		if existing, ok := a.agents[agentName]; ok {
			logger.WarnContext(ctx, "replacing existing connection for agent")
			_ = existing.Close()
		}
		a.agents[agentName] = link

		specs := a.manager.GetWorkloadsForAgent(agentName)
		if len(specs) == 0 {
			return
		}
		if err := link.PushAddWorkloads(ctx, specs); err != nil {
			logger.ErrorContext(ctx, "failed to push initial workloads", "err", err)
		}
	})
}

// OnAgentWorkloadStates records a reported batch. Terminal (Removed)
// reports are kept, not dropped, because a later CompleteStateRequest
// may still need to observe them before the caller prunes a delete
// condition waiting on them.
func (a *App) OnAgentWorkloadStates(ctx context.Context, agentName string, states []objects.WorkloadState) {
	a.submit(func() {
		a.db.Insert(states)
	})
}

// OnUpdateStateRequest applies a client's desired-state update and, if
// accepted, pushes the resulting add/update/delete commands to every affected
// agent's connection.
func (a *App) OnUpdateStateRequest(ctx context.Context, req objects.UpdateStateRequest) error {
	result := make(chan error, 1)
	a.submit(func() {
		addedDeleted, err := a.manager.Update(req.NewState, req.UpdateMask)
		if err != nil {
			result <- err
			return
		}
		a.dispatch(ctx, addedDeleted)
		result <- nil
	})
	return <-result
}

// OnCompleteStateRequest answers a field-masked read of the current
// state.
func (a *App) OnCompleteStateRequest(ctx context.Context, req objects.CompleteStateRequest) (objects.CompleteState, error) {
	type outcome struct {
		state objects.CompleteState
		err   error
	}
	result := make(chan outcome, 1)
	a.submit(func() {
		s, err := a.manager.GetCompleteStateByFieldMask(req, a.db)
		result <- outcome{state: s, err: err}
	})
	o := <-result
	return o.state, o.err
}

// dispatch splits ad into per-agent Add/Update/Delete pushes. A workload
// whose spec changed appears in both ad.Added and ad.Deleted under the same
// name (see extractAddedAndDeleted); that pair is pushed as a single
// PushUpdateWorkloads rather than as a delete followed by an add, since the
// agent's supervisor treats an Add for an already-managed entry as a no-op
// and would otherwise just tear the workload down without recreating it.
func (a *App) dispatch(ctx context.Context, ad state.AddedDeleted) {
	deletedByName := make(map[string]objects.DeletedWorkload, len(ad.Deleted))
	for _, dw := range ad.Deleted {
		deletedByName[dw.Name] = dw
	}

	addByAgent := make(map[string][]objects.WorkloadSpec)
	updateByAgent := make(map[string][]objects.WorkloadUpdate)
	// sameAgentUpdate tracks names replaced in place, i.e. the old and new
	// spec are pinned to the same agent. A spec change that also moves the
	// workload to a different agent is not an in-place update: the old
	// agent still needs a Delete and the new agent still needs an Add.
	sameAgentUpdate := make(map[string]bool, len(ad.Added))
	for _, spec := range ad.Added {
		if old, ok := deletedByName[spec.Name]; ok && old.Agent == spec.Agent {
			sameAgentUpdate[spec.Name] = true
			updateByAgent[spec.Agent] = append(updateByAgent[spec.Agent], objects.WorkloadUpdate{
				Spec:         spec,
				Dependencies: old.Dependencies,
			})
			continue
		}
		addByAgent[spec.Agent] = append(addByAgent[spec.Agent], spec)
	}

	for agentName, specs := range addByAgent {
		link, ok := a.agents[agentName]
		if !ok {
			a.logger.WarnContext(ctx, "workload assigned to unconnected agent", "agent_name", agentName)
			continue
		}
		if err := link.PushAddWorkloads(ctx, specs); err != nil {
			a.logger.ErrorContext(ctx, "failed to push added workloads", "agent_name", agentName, "err", err)
		}
	}

	for agentName, updates := range updateByAgent {
		link, ok := a.agents[agentName]
		if !ok {
			a.logger.WarnContext(ctx, "workload assigned to unconnected agent", "agent_name", agentName)
			continue
		}
		if err := link.PushUpdateWorkloads(ctx, updates); err != nil {
			a.logger.ErrorContext(ctx, "failed to push updated workloads", "agent_name", agentName, "err", err)
		}
	}

	byAgentDel := make(map[string][]objects.DeletedWorkload)
	for _, dw := range ad.Deleted {
		if sameAgentUpdate[dw.Name] {
			continue
		}
		byAgentDel[dw.Agent] = append(byAgentDel[dw.Agent], dw)
	}
	for agentName, dws := range byAgentDel {
		link, ok := a.agents[agentName]
		if !ok {
			a.logger.WarnContext(ctx, "delete targets unconnected agent", "agent_name", agentName)
			continue
		}
		if err := link.PushDeleteWorkloads(ctx, dws); err != nil {
			a.logger.ErrorContext(ctx, "failed to push deleted workloads", "agent_name", agentName, "err", err)
		}
	}
}

// submit enqueues fn on the owning goroutine's event queue. Called from
// whichever connection's read-goroutine a transport callback fires on.
func (a *App) submit(fn func()) {
	a.events <- fn
}
