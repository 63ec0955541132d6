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

// Package state owns the server's authoritative desired state: merging
// field-masked updates, diffing old against new to find what changed,
// rejecting cyclic workload dependencies, and serving filtered reads.
// Manager is driven by a single owning goroutine — it takes no lock of
// its own, trusting its caller (server/app.App) to serialize access.
package state

import (
	"fmt"
	"log/slog"

	"github.com/spacechunks/fleetd/objects"
	"github.com/spacechunks/fleetd/server/state/cyclecheck"
	"github.com/spacechunks/fleetd/server/state/deletegraph"
	"github.com/spacechunks/fleetd/server/statedb"
	"github.com/spacechunks/fleetd/statedoc"
)

// AddedDeleted is the result of an accepted Update: the new specs that
// must be (re)started somewhere, and the workloads that must be torn
// down, now carrying the delete conditions that gate when that may
// happen. A nil AddedDeleted (both slices nil) means the update
// committed but produced no workload-level action.
type AddedDeleted struct {
	Added   []objects.WorkloadSpec
	Deleted []objects.DeletedWorkload
}

// IsEmpty reports whether the update produced no workload-level action.
func (a AddedDeleted) IsEmpty() bool {
	return len(a.Added) == 0 && len(a.Deleted) == 0
}

// Manager holds the current CompleteState and the delete-condition
// graph derived from it.
type Manager struct {
	logger *slog.Logger

	state       objects.CompleteState
	deleteGraph *deletegraph.Graph
}

func New(logger *slog.Logger) *Manager {
	return &Manager{
		logger:      logger.With("component", "state-manager"),
		deleteGraph: deletegraph.New(),
	}
}

// GetCompleteStateByFieldMask builds a CompleteState view of the
// current desired state plus a db snapshot of observed execution
// states, then, if req carries a non-empty field mask, projects that
// view down to just the masked paths. A masked path that does not
// exist in the view is skipped silently (logged at debug level), not
// treated as an error.
func (m *Manager) GetCompleteStateByFieldMask(req objects.CompleteStateRequest, db *statedb.WorkloadStateDB) (objects.CompleteState, error) {
	view := objects.CompleteState{
		CurrentState:   m.state.CurrentState,
		StartupState:   m.state.StartupState,
		WorkloadStates: db.Snapshot(),
	}

	if len(req.FieldMask) == 0 {
		return view, nil
	}

	doc, err := statedoc.FromCompleteState(view)
	if err != nil {
		return objects.CompleteState{}, fmt.Errorf("project current state: %w", err)
	}

	result := statedoc.Empty()
	for _, field := range req.FieldMask {
		path := statedoc.NewPath(field)
		value, ok := doc.Get(path)
		if !ok {
			m.logger.Debug("result for complete state incomplete, field does not exist", "field", field)
			continue
		}
		if err := result.Set(path, value); err != nil {
			return objects.CompleteState{}, fmt.Errorf("set field %q: %w", field, err)
		}
	}

	out, err := statedoc.ToCompleteState(result)
	if err != nil {
		return objects.CompleteState{}, fmt.Errorf("the result for complete state is invalid: %w", err)
	}

	return out, nil
}

// GetWorkloadsForAgent returns every workload spec currently assigned
// to agentName. Order is unspecified.
func (m *Manager) GetWorkloadsForAgent(agentName string) []objects.WorkloadSpec {
	out := make([]objects.WorkloadSpec, 0)
	for _, w := range m.state.CurrentState.Workloads {
		if w.Agent == agentName {
			out = append(out, w)
		}
	}
	return out
}

// Update merges newState into the current state through updateMask,
// diffs the result against the current workloads, rejects it outright
// if the new state would contain a dependency cycle, and otherwise
// commits it. On any error the Manager is left byte-for-byte unchanged.
func (m *Manager) Update(newState objects.CompleteState, updateMask []string) (AddedDeleted, UpdateStateError) {
	merged, err := mergeState(m.state, newState, updateMask)
	if err != nil {
		return AddedDeleted{}, err
	}

	added, deleted := extractAddedAndDeleted(m.state.CurrentState, merged.CurrentState)
	if added == nil && deleted == nil {
		// no workload-level action, but the merge may have touched
		// ancillary fields (startup state, opaque config) that still
		// need to observe the commit.
		m.state = merged
		return AddedDeleted{}, nil
	}

	roots := make([]string, 0, len(added))
	for _, w := range added {
		if len(w.Dependencies) > 0 {
			roots = append(roots, w.Name)
		}
	}

	if name, found := cyclecheck.DFS(merged.CurrentState, roots); found {
		return AddedDeleted{}, CycleInDependenciesError{WorkloadName: name}
	}

	m.deleteGraph.Insert(added)
	m.deleteGraph.ApplyDeleteConditionsTo(deleted)

	m.state = merged

	return AddedDeleted{Added: added, Deleted: deleted}, nil
}
