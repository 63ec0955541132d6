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

package deletegraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacechunks/fleetd/objects"
	"github.com/spacechunks/fleetd/server/state/deletegraph"
)

func TestGraphInsertAndApply(t *testing.T) {
	g := deletegraph.New()

	g.Insert([]objects.WorkloadSpec{
		{
			Name: "web",
			Dependencies: map[string]objects.DeleteCondition{
				"db": objects.DeleteConditionRunning,
			},
		},
	})

	deleted := []objects.DeletedWorkload{{Name: "db", Agent: "agent-1"}}
	g.ApplyDeleteConditionsTo(deleted)

	require.Equal(t, map[string]objects.DeleteCondition{"web": objects.DeleteConditionRunning}, deleted[0].Dependencies)
}

func TestGraphInsertIsIdempotent(t *testing.T) {
	g := deletegraph.New()

	spec := objects.WorkloadSpec{
		Name:         "web",
		Dependencies: map[string]objects.DeleteCondition{"db": objects.DeleteConditionRunning},
	}
	g.Insert([]objects.WorkloadSpec{spec})
	g.Insert([]objects.WorkloadSpec{spec})

	deleted := []objects.DeletedWorkload{{Name: "db"}}
	g.ApplyDeleteConditionsTo(deleted)

	require.Len(t, deleted[0].Dependencies, 1)
}

func TestGraphForgetsEdgesAfterApply(t *testing.T) {
	g := deletegraph.New()

	g.Insert([]objects.WorkloadSpec{
		{Name: "web", Dependencies: map[string]objects.DeleteCondition{"db": objects.DeleteConditionRunning}},
	})

	first := []objects.DeletedWorkload{{Name: "db"}}
	g.ApplyDeleteConditionsTo(first)
	require.NotEmpty(t, first[0].Dependencies)

	second := []objects.DeletedWorkload{{Name: "db"}}
	g.ApplyDeleteConditionsTo(second)
	require.Empty(t, second[0].Dependencies)
}

func TestGraphNoDependentsLeavesDependenciesUnset(t *testing.T) {
	g := deletegraph.New()

	deleted := []objects.DeletedWorkload{{Name: "standalone"}}
	g.ApplyDeleteConditionsTo(deleted)

	require.Nil(t, deleted[0].Dependencies)
}
