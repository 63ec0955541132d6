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

package transport_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacechunks/fleetd/objects"
	"github.com/spacechunks/fleetd/transport"
)

func roundTrip[T any](t *testing.T, in T) T {
	t.Helper()
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestAddWorkloadsParamsRoundTrip(t *testing.T) {
	in := transport.AddWorkloadsParams{
		Specs: []objects.WorkloadSpec{{Name: "web", Agent: "agent-1", Runtime: "docker"}},
	}
	require.Equal(t, in, roundTrip(t, in))
}

func TestUpdateWorkloadsParamsRoundTrip(t *testing.T) {
	in := transport.UpdateWorkloadsParams{
		Updates: []objects.WorkloadUpdate{
			{
				Spec:         objects.WorkloadSpec{Name: "web", Agent: "agent-1"},
				Dependencies: map[string]objects.DeleteCondition{"db": objects.DeleteConditionRunning},
			},
		},
	}
	require.Equal(t, in, roundTrip(t, in))
}

func TestDeleteWorkloadsParamsRoundTrip(t *testing.T) {
	in := transport.DeleteWorkloadsParams{
		Workloads: []objects.DeletedWorkload{
			{Name: "web", Agent: "agent-1", Dependencies: map[string]objects.DeleteCondition{"db": objects.DeleteConditionRunning}},
		},
	}
	require.Equal(t, in, roundTrip(t, in))
}

func TestCompleteStateResponseParamsRoundTrip(t *testing.T) {
	in := transport.CompleteStateResponseParams{
		State: objects.CompleteState{
			CurrentState: objects.State{
				Workloads: map[string]objects.WorkloadSpec{"web": {Name: "web"}},
			},
		},
	}
	require.Equal(t, in, roundTrip(t, in))
}

func TestUpdateWorkloadStateParamsRoundTrip(t *testing.T) {
	in := transport.UpdateWorkloadStateParams{
		WorkloadStates: []objects.WorkloadState{
			{AgentName: "agent-1", WorkloadName: "web", ExecutionState: objects.ExecRunning},
		},
	}
	require.Equal(t, in, roundTrip(t, in))
}

func TestAgentHelloParamsRoundTrip(t *testing.T) {
	in := transport.AgentHelloParams{AgentName: "agent-1"}
	require.Equal(t, in, roundTrip(t, in))
}

func TestAgentGoneParamsRoundTrip(t *testing.T) {
	in := transport.AgentGoneParams{AgentName: "agent-1"}
	require.Equal(t, in, roundTrip(t, in))
}

func TestMethodNamesAreDistinct(t *testing.T) {
	methods := []string{
		transport.MethodAddWorkloads,
		transport.MethodUpdateWorkloads,
		transport.MethodDeleteWorkloads,
		transport.MethodCompleteStateResp,
		transport.MethodUpdateWorkloadState,
		transport.MethodAgentHello,
		transport.MethodAgentGone,
		transport.MethodUpdateStateRequest,
		transport.MethodCompleteStateRequest,
	}

	seen := make(map[string]bool, len(methods))
	for _, m := range methods {
		require.False(t, seen[m], "duplicate method name: %s", m)
		seen[m] = true
	}
}
