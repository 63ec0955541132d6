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

// CompleteState is the orchestrator's whole public state surface: the
// live desired state, the state it started up with, and a snapshot of
// observed execution states. WorkloadStates is a read-time projection;
// it is never persisted as part of a committed CompleteState.
type CompleteState struct {
	CurrentState   State           `yaml:"currentState"`
	StartupState   State           `yaml:"startupState"`
	WorkloadStates []WorkloadState `yaml:"workloadStates"`
}

// Clone returns a deep-enough copy for safe cross-goroutine handoff and
// for statedoc round-trips that must not alias the original.
func (c CompleteState) Clone() CompleteState {
	ws := make([]WorkloadState, len(c.WorkloadStates))
	copy(ws, c.WorkloadStates)
	return CompleteState{
		CurrentState:   c.CurrentState.Clone(),
		StartupState:   c.StartupState.Clone(),
		WorkloadStates: ws,
	}
}

// CompleteStateRequest selects which parts of a CompleteState a reader
// wants back. An empty FieldMask means "the whole document".
type CompleteStateRequest struct {
	FieldMask []string
}

// UpdateStateRequest carries a caller's desired replacement state plus
// the mask of fields that should actually be applied. An empty
// UpdateMask means "replace the whole document".
type UpdateStateRequest struct {
	NewState   CompleteState
	UpdateMask []string
}
