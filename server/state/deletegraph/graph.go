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

// Package deletegraph tracks, for each workload, which other workloads
// depend on it and under which condition those dependents must be
// reached before it may be torn down. It never schedules deletions
// itself; it only supplies the metadata a caller orders deletions by.
package deletegraph

import (
	"sync"

	"github.com/spacechunks/fleetd/objects"
)

// Graph records delete-condition edges: edges[dependency][dependent] is
// the condition dependent must be observed in before dependency may be
// deleted.
type Graph struct {
	mu    sync.Mutex
	edges map[string]map[string]objects.DeleteCondition
}

func New() *Graph {
	return &Graph{
		edges: make(map[string]map[string]objects.DeleteCondition),
	}
}

// Insert records, for every dependency declared by a newly added
// workload, the condition the workload itself must reach before that
// dependency can be deleted. It is idempotent: inserting the same specs
// again just overwrites the same edges.
func (g *Graph) Insert(added []objects.WorkloadSpec) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, w := range added {
		for dep, cond := range w.Dependencies {
			dependents, ok := g.edges[dep]
			if !ok {
				dependents = make(map[string]objects.DeleteCondition)
				g.edges[dep] = dependents
			}
			dependents[w.Name] = cond
		}
	}
}

// ApplyDeleteConditionsTo annotates each deleted workload with the
// delete conditions registered against it, then forgets those edges:
// once a workload is gone there is nothing left to gate its deletion
// on.
func (g *Graph) ApplyDeleteConditionsTo(deleted []objects.DeletedWorkload) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range deleted {
		d := &deleted[i]
		dependents, ok := g.edges[d.Name]
		if !ok {
			continue
		}

		d.Dependencies = make(map[string]objects.DeleteCondition, len(dependents))
		for name, cond := range dependents {
			d.Dependencies[name] = cond
		}

		delete(g.edges, d.Name)
	}
}
