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

// Package statedb holds the server's view of what agents report back:
// one execution state per (agent, workload) pair, append-overwrite.
package statedb

import (
	"sync"

	"github.com/spacechunks/fleetd/objects"
)

type key struct {
	agent    string
	workload string
}

// WorkloadStateDB is written whenever a workload state report arrives
// and read whenever a client requests a complete state. It never holds
// more than one entry per (agent, workload) pair.
type WorkloadStateDB struct {
	mu   sync.Mutex
	data map[key]objects.ExecutionState
}

func New() *WorkloadStateDB {
	return &WorkloadStateDB{
		data: make(map[key]objects.ExecutionState),
	}
}

// Insert applies a batch of workload state reports, overwriting any
// prior state for the same (agent, workload) pair.
func (db *WorkloadStateDB) Insert(states []objects.WorkloadState) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, s := range states {
		db.data[key{agent: s.AgentName, workload: s.WorkloadName}] = s.ExecutionState
	}
}

// Get returns the last reported execution state for a workload, or
// ExecUnknown if nothing has been reported yet.
func (db *WorkloadStateDB) Get(agentName, workloadName string) objects.ExecutionState {
	db.mu.Lock()
	defer db.mu.Unlock()

	s, ok := db.data[key{agent: agentName, workload: workloadName}]
	if !ok {
		return objects.ExecUnknown
	}
	return s
}

// Remove drops a (agent, workload) entry. server/app does not call it,
// so terminal (Removed) reports stay in the database.
func (db *WorkloadStateDB) Remove(agentName, workloadName string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.data, key{agent: agentName, workload: workloadName})
}

// Snapshot returns every known (agent, workload) -> execution state
// fact as a flat slice, order unspecified. It is the projection
// server/state.Manager embeds into a CompleteState on read.
func (db *WorkloadStateDB) Snapshot() []objects.WorkloadState {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]objects.WorkloadState, 0, len(db.data))
	for k, v := range db.data {
		out = append(out, objects.WorkloadState{
			AgentName:      k.agent,
			WorkloadName:   k.workload,
			ExecutionState: v,
		})
	}
	return out
}
