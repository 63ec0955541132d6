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

package supervisor

import "github.com/spacechunks/fleetd/objects"

// Command is the closed set of messages a transport implementation
// feeds into a Supervisor's command stream.
type Command interface {
	isCommand()
}

// AddWorkloads requests that each spec be brought up, one per
// workload_name not already managed by this supervisor.
type AddWorkloads struct {
	Specs []objects.WorkloadSpec
}

func (AddWorkloads) isCommand() {}

// UpdateWorkloads is the semantic equivalent of deleting and re-adding
// each spec: an entry whose spec changed is torn down and recreated
// with the new one, honoring the same delete-condition gating a
// DeleteWorkloads does, since the old generation's dependents may still
// need it around until their conditions are satisfied.
type UpdateWorkloads struct {
	Updates []objects.WorkloadUpdate
}

func (UpdateWorkloads) isCommand() {}

// DeleteWorkloads requests removal of each named workload, parked
// until the dependency conditions it carries are observed satisfied.
type DeleteWorkloads struct {
	Workloads []objects.DeletedWorkload
}

func (DeleteWorkloads) isCommand() {}
