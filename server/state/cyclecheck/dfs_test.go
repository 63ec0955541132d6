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

package cyclecheck_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacechunks/fleetd/objects"
	"github.com/spacechunks/fleetd/server/state/cyclecheck"
)

func spec(name string, deps ...string) objects.WorkloadSpec {
	d := make(map[string]objects.DeleteCondition, len(deps))
	for _, dep := range deps {
		d[dep] = objects.DeleteConditionRunning
	}
	return objects.WorkloadSpec{Name: name, Dependencies: d}
}

func TestDFSNoCycle(t *testing.T) {
	state := objects.State{Workloads: map[string]objects.WorkloadSpec{
		"web": spec("web", "db"),
		"db":  spec("db"),
	}}

	_, found := cyclecheck.DFS(state, nil)
	require.False(t, found)
}

func TestDFSDirectCycle(t *testing.T) {
	state := objects.State{Workloads: map[string]objects.WorkloadSpec{
		"a": spec("a", "b"),
		"b": spec("b", "a"),
	}}

	name, found := cyclecheck.DFS(state, nil)
	require.True(t, found)
	require.Contains(t, []string{"a", "b"}, name)
}

func TestDFSSelfCycle(t *testing.T) {
	state := objects.State{Workloads: map[string]objects.WorkloadSpec{
		"a": spec("a", "a"),
	}}

	name, found := cyclecheck.DFS(state, nil)
	require.True(t, found)
	require.Equal(t, "a", name)
}

func TestDFSLongerCycle(t *testing.T) {
	state := objects.State{Workloads: map[string]objects.WorkloadSpec{
		"a": spec("a", "b"),
		"b": spec("b", "c"),
		"c": spec("c", "a"),
	}}

	_, found := cyclecheck.DFS(state, nil)
	require.True(t, found)
}

func TestDFSScopedToRoots(t *testing.T) {
	state := objects.State{Workloads: map[string]objects.WorkloadSpec{
		"a": spec("a", "b"),
		"b": spec("b", "a"),
		"c": spec("c"),
	}}

	_, found := cyclecheck.DFS(state, []string{"c"})
	require.False(t, found, "root c does not reach the a/b cycle, so it should not be reported")
}

func TestDFSDependencyOnUnknownWorkload(t *testing.T) {
	state := objects.State{Workloads: map[string]objects.WorkloadSpec{
		"a": spec("a", "missing"),
	}}

	_, found := cyclecheck.DFS(state, nil)
	require.False(t, found)
}
