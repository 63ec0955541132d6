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

// Package supervisor is the agent's per-workload control loop: it owns
// a mapping from workload name to (runtime ID, checker handle) pairs,
// drives each through the Absent/Creating/Running/Deleting state
// machine, and forwards every observed execution-state change onward.
// Its single-owning-goroutine shape -- one command channel, one report
// channel, no lock on the map -- replaces a tick-and-poll reconcile
// cycle with a command stream plus the shared checker report sink.
package supervisor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spacechunks/fleetd/agent/checker"
	"github.com/spacechunks/fleetd/agent/runtime"
	"github.com/spacechunks/fleetd/objects"
)

// ReportForwarder is the supervisor's outbound side: whatever sends
// observed state reports on to the server. transport.AgentConn
// implements it against a live connection; tests substitute a
// recording fake.
type ReportForwarder interface {
	ForwardStates(ctx context.Context, states []objects.WorkloadState) error
}

type entry struct {
	spec      objects.WorkloadSpec
	state     lifecycle
	runtimeID string
	checker   runtime.CheckerHandle

	// pendingDelete is set once a DeleteWorkloads command names this
	// entry, or once an UpdateWorkloads command needs the old generation
	// torn down first. The delete is carried out once every dependency
	// condition it carries is observed satisfied; until then it stays
	// parked.
	pendingDelete *objects.DeletedWorkload

	// pendingUpdate is set alongside pendingDelete when the parked
	// teardown is an in-place replacement rather than a removal: once
	// the delete completes, tryDelete recreates the entry with this
	// spec instead of reporting it Removed.
	pendingUpdate *objects.WorkloadSpec
}

// Supervisor is the per-agent workload supervisor. It must be driven
// by Run from a single goroutine; Commands and the report sink it was
// built with are the only safe ways to reach it from elsewhere.
type Supervisor struct {
	logger    *slog.Logger
	agentName string

	adapter  runtime.Adapter
	getter   runtime.StateGetter
	checkers runtime.CheckerFactory
	forward  ReportForwarder

	sink     *checker.ChanSink
	commands chan Command

	entries  map[string]*entry
	observed map[string]objects.ExecutionState
}

// New builds a Supervisor. sinkBuffer sizes the shared checker report
// channel with a real bound rather than leaving it unbounded, so a full
// buffer suspends the reporting checker rather than dropping data.
func New(
	logger *slog.Logger,
	agentName string,
	adapter runtime.Adapter,
	getter runtime.StateGetter,
	checkers runtime.CheckerFactory,
	forward ReportForwarder,
	sinkBuffer int,
) *Supervisor {
	return &Supervisor{
		logger:    logger.With("component", "supervisor", "agent_name", agentName),
		agentName: agentName,
		adapter:   adapter,
		getter:    getter,
		checkers:  checkers,
		forward:   forward,
		sink:      checker.NewChanSink(sinkBuffer),
		commands:  make(chan Command, 32),
		entries:   make(map[string]*entry),
		observed:  make(map[string]objects.ExecutionState),
	}
}

// Commands returns the send side of the command stream.
func (s *Supervisor) Commands() chan<- Command {
	return s.commands
}

// SetForwarder installs the outbound report forwarder. It exists
// because a transport connection's incoming-message handler typically
// needs this Supervisor's Commands() channel before the connection
// itself -- the Supervisor's own forwarder -- exists; callers build the
// Supervisor with a nil forwarder and call SetForwarder once the
// connection is up. Must be called before Run, or not at all while Run
// is reading reports concurrently.
func (s *Supervisor) SetForwarder(f ReportForwarder) {
	s.forward = f
}

// Run is the supervisor's owning goroutine. It returns once ctx is
// canceled, having first stopped every checker it still owns so that
// cancellation of the supervisor aborts all owned checkers transitively.
func (s *Supervisor) Run(ctx context.Context) {
	defer s.shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-s.commands:
			s.handleCommand(ctx, cmd)
		case report := <-s.sink.C():
			s.handleReport(ctx, report)
		}
	}
}

func (s *Supervisor) shutdown() {
	for name, e := range s.entries {
		if e.checker != nil {
			e.checker.Stop()
		}
		delete(s.entries, name)
	}
}

func (s *Supervisor) handleCommand(ctx context.Context, cmd Command) {
	switch c := cmd.(type) {
	case AddWorkloads:
		for _, spec := range c.Specs {
			s.add(ctx, spec)
		}
	case UpdateWorkloads:
		for _, upd := range c.Updates {
			s.update(ctx, upd)
		}
	case DeleteWorkloads:
		for _, dw := range c.Workloads {
			s.requestDelete(ctx, dw)
		}
	default:
		s.logger.ErrorContext(ctx, "received command of unknown type", "type", fmt.Sprintf("%T", cmd))
	}
}

// add is the Absent -> Creating -> {Running, Failed} transition.
func (s *Supervisor) add(ctx context.Context, spec objects.WorkloadSpec) {
	if e, ok := s.entries[spec.Name]; ok && e.state != lifecycleFailed {
		s.logger.WarnContext(ctx, "add for already managed workload ignored", "workload_name", spec.Name)
		return
	}

	logger := s.logger.With("workload_name", spec.Name)

	e := &entry{spec: spec, state: lifecycleCreating}
	s.entries[spec.Name] = e

	id, err := s.adapter.Create(ctx, spec)
	if err != nil {
		logger.ErrorContext(ctx, "create workload failed", "err", err)
		e.state = lifecycleFailed
		s.reportLocal(ctx, spec.Name, objects.ExecFailed)
		return
	}

	e.runtimeID = id
	e.checker = s.checkers.StartChecker(ctx, spec, id, s.sink, s.getter)
	e.state = lifecycleRunning

	logger.InfoContext(ctx, "workload created", "runtime_id", id)
}

// update is the Running (spec changed) -> Deleting -> Creating
// transition, or a plain add if the workload is not yet managed. The
// old generation's teardown is parked on the same pendingDelete/tryDelete
// gating a DeleteWorkloads goes through, honoring upd.Dependencies rather
// than tearing the old generation down unconditionally.
func (s *Supervisor) update(ctx context.Context, upd objects.WorkloadUpdate) {
	spec := upd.Spec

	e, ok := s.entries[spec.Name]
	if !ok || e.state == lifecycleFailed {
		s.add(ctx, spec)
		return
	}

	if e.spec.Equal(spec) {
		return
	}

	s.logger.InfoContext(ctx, "workload spec changed, replacing", "workload_name", spec.Name)

	next := spec
	e.pendingUpdate = &next
	e.pendingDelete = &objects.DeletedWorkload{
		Name:         spec.Name,
		Agent:        spec.Agent,
		Dependencies: upd.Dependencies,
	}
	s.tryDelete(ctx, spec.Name, e)
}

// requestDelete registers dw against its entry and attempts the delete
// immediately; the attempt parks itself if conditions are unmet.
func (s *Supervisor) requestDelete(ctx context.Context, dw objects.DeletedWorkload) {
	e, ok := s.entries[dw.Name]
	if !ok {
		s.logger.WarnContext(ctx, "delete for unmanaged workload ignored", "workload_name", dw.Name)
		return
	}

	e.pendingDelete = &dw
	s.tryDelete(ctx, dw.Name, e)
}

// tryDelete carries out a parked delete once every dependency
// condition it carries is satisfied by the last-observed execution
// state of the named dependency. If the parked teardown belongs to an
// UpdateWorkloads rather than a DeleteWorkloads, a successful delete is
// followed by recreating the entry with the new spec instead of
// reporting the workload Removed.
func (s *Supervisor) tryDelete(ctx context.Context, name string, e *entry) {
	if e.pendingDelete == nil || e.state == lifecycleDeleting {
		return
	}

	for depName, cond := range e.pendingDelete.Dependencies {
		state, seen := s.observed[depName]
		if !seen || !conditionSatisfied(cond, state) {
			return
		}
	}

	logger := s.logger.With("workload_name", name)

	pendingUpdate := e.pendingUpdate

	if e.checker != nil {
		e.checker.Stop()
		e.checker = nil
	}

	e.state = lifecycleDeleting
	if err := s.adapter.Delete(ctx, e.runtimeID); err != nil {
		logger.ErrorContext(ctx, "delete workload failed", "err", err)
		e.state = lifecycleFailed
		s.reportLocal(ctx, name, objects.ExecFailed)
		return
	}

	delete(s.entries, name)

	if pendingUpdate != nil {
		s.add(ctx, *pendingUpdate)
		return
	}

	s.reportLocal(ctx, name, objects.ExecRemoved)
}

func conditionSatisfied(cond objects.DeleteCondition, state objects.ExecutionState) bool {
	switch cond {
	case objects.DeleteConditionRunning:
		return state == objects.ExecRunning
	case objects.DeleteConditionSucceeded:
		return state == objects.ExecSucceeded
	case objects.DeleteConditionNotPendingNorRunning:
		return state != objects.ExecPending && state != objects.ExecRunning
	default:
		return false
	}
}

// handleReport folds a checker's report into local lifecycle state,
// re-evaluates any delete parked on the states that just changed, and
// forwards the report onward regardless of what, if anything, it
// changed locally.
func (s *Supervisor) handleReport(ctx context.Context, states []objects.WorkloadState) {
	for _, st := range states {
		s.observed[st.WorkloadName] = st.ExecutionState

		e, ok := s.entries[st.WorkloadName]
		if !ok {
			continue
		}

		switch {
		case st.ExecutionState == objects.ExecRemoved:
			if e.checker != nil {
				e.checker.Stop()
			}
			delete(s.entries, st.WorkloadName)
		case st.ExecutionState == objects.ExecFailed:
			e.state = lifecycleFailed
		}
	}

	for name, e := range s.entries {
		if e.pendingDelete != nil {
			s.tryDelete(ctx, name, e)
		}
	}

	if s.forward == nil {
		return
	}
	if err := s.forward.ForwardStates(ctx, states); err != nil {
		s.logger.ErrorContext(ctx, "forward state reports failed", "err", err)
	}
}

// reportLocal synthesizes a single-element report for a transition the
// supervisor itself drove (a failed create, a completed delete) rather
// than one observed by a checker, and routes it through the same path
// real reports take so observers see one consistent stream.
func (s *Supervisor) reportLocal(ctx context.Context, workloadName string, state objects.ExecutionState) {
	s.observed[workloadName] = state

	if s.forward == nil {
		return
	}

	report := []objects.WorkloadState{{
		AgentName:      s.agentName,
		WorkloadName:   workloadName,
		ExecutionState: state,
	}}
	if err := s.forward.ForwardStates(ctx, report); err != nil {
		s.logger.ErrorContext(ctx, "forward state report failed", "err", err)
	}
}
