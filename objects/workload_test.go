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

package objects_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacechunks/fleetd/objects"
)

func testSpec() objects.WorkloadSpec {
	return objects.WorkloadSpec{
		Name:          "web",
		Agent:         "agent-1",
		Runtime:       "docker",
		RuntimeConfig: "image: nginx",
		Dependencies:  map[string]objects.DeleteCondition{"db": objects.DeleteConditionRunning},
		Tags:          map[string]string{"env": "prod"},
		RestartPolicy: objects.RestartPolicyAlways,
	}
}

func TestWorkloadSpecEqual(t *testing.T) {
	a := testSpec()
	b := testSpec()
	require.True(t, a.Equal(b))

	b.Tags = map[string]string{"env": "staging"}
	require.False(t, a.Equal(b))

	b = testSpec()
	b.Dependencies = map[string]objects.DeleteCondition{"db": objects.DeleteConditionSucceeded}
	require.False(t, a.Equal(b))

	b = testSpec()
	b.Dependencies = nil
	require.False(t, a.Equal(b))

	b = testSpec()
	b.RuntimeConfig = "image: redis"
	require.False(t, a.Equal(b))
}

func TestWorkloadSpecCloneIsIndependent(t *testing.T) {
	orig := testSpec()
	clone := orig.Clone()

	clone.Tags["env"] = "staging"
	clone.Dependencies["db"] = objects.DeleteConditionSucceeded

	require.Equal(t, "prod", orig.Tags["env"])
	require.Equal(t, objects.DeleteConditionRunning, orig.Dependencies["db"])
	require.True(t, orig.Equal(testSpec()))
}

func TestStateCloneIsIndependent(t *testing.T) {
	orig := objects.State{
		Workloads: map[string]objects.WorkloadSpec{"web": testSpec()},
		Ancillary: map[string]any{"startupTimeout": 30},
	}
	clone := orig.Clone()

	clone.Workloads["web"] = objects.WorkloadSpec{Name: "replaced"}
	clone.Ancillary["startupTimeout"] = 60

	require.Equal(t, "web", orig.Workloads["web"].Name)
	require.Equal(t, 30, orig.Ancillary["startupTimeout"])
}

func TestExecutionStateTerminal(t *testing.T) {
	require.True(t, objects.ExecRemoved.Terminal())
	require.False(t, objects.ExecRunning.Terminal())
	require.False(t, objects.ExecFailed.Terminal())
}
