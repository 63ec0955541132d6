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

package state

import "github.com/spacechunks/fleetd/objects"

// extractAddedAndDeleted diffs two desired states by workload name: a
// workload present in both states but changed contributes to both
// slices, one present only in old contributes to deleted, one present
// only in new contributes to added. A nil, nil result means neither
// slice would have anything in it.
func extractAddedAndDeleted(oldState, newState objects.State) ([]objects.WorkloadSpec, []objects.DeletedWorkload) {
	var (
		added   []objects.WorkloadSpec
		deleted []objects.DeletedWorkload
	)

	for name, old := range oldState.Workloads {
		newSpec, ok := newState.Workloads[name]
		if !ok {
			deleted = append(deleted, objects.DeletedWorkload{
				Name:  name,
				Agent: old.Agent,
			})
			continue
		}
		if !old.Equal(newSpec) {
			added = append(added, newSpec)
			deleted = append(deleted, objects.DeletedWorkload{
				Name:  name,
				Agent: old.Agent,
			})
		}
	}

	for name, newSpec := range newState.Workloads {
		if _, ok := oldState.Workloads[name]; !ok {
			added = append(added, newSpec)
		}
	}

	if len(added) == 0 && len(deleted) == 0 {
		return nil, nil
	}

	return added, deleted
}
