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

package objects

// ExecutionState is the agent-observed runtime status of a workload.
// Removed is terminal: once reported, no further reports for the same
// workload generation follow.
type ExecutionState string

const (
	ExecUnknown   ExecutionState = "UNKNOWN"
	ExecPending   ExecutionState = "PENDING"
	ExecRunning   ExecutionState = "RUNNING"
	ExecSucceeded ExecutionState = "SUCCEEDED"
	ExecFailed    ExecutionState = "FAILED"
	ExecRemoved   ExecutionState = "REMOVED"
)

// Terminal reports whether no further execution state transitions are
// expected for this workload generation.
func (e ExecutionState) Terminal() bool {
	return e == ExecRemoved
}

// WorkloadState is a single (agent, workload) -> execution state fact,
// as reported by a checker and stored in a WorkloadStateDB.
type WorkloadState struct {
	AgentName      string         `yaml:"agentName"`
	WorkloadName   string         `yaml:"workloadName"`
	ExecutionState ExecutionState `yaml:"executionState"`
}

// DeletedWorkload names a workload slated for removal along with the
// delete conditions its dependents registered against it. Dependencies
// is populated by deletegraph.Graph.ApplyDeleteConditionsTo at diff
// time; it is empty on construction.
type DeletedWorkload struct {
	Name         string
	Agent        string
	Dependencies map[string]DeleteCondition
}

// WorkloadUpdate pairs a workload's new spec with the delete-condition
// dependencies its previous generation was carrying, so the agent can gate
// the old generation's teardown the same way an explicit DeletedWorkload
// delete is gated, instead of tearing it down unconditionally.
type WorkloadUpdate struct {
	Spec         WorkloadSpec
	Dependencies map[string]DeleteCondition
}
