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

// Package transport is the wire boundary between the server and its
// agents, and between an external client and the server: a
// gorilla/websocket connection framed with sourcegraph/jsonrpc2's
// request/notification protocol. Framing is kept opaque to the rest of
// the module; this package is the one place the value shapes that
// cross the wire get a method name and a JSON encoding. Nothing
// outside this package imports jsonrpc2 or gorilla/websocket.
package transport

import "github.com/spacechunks/fleetd/objects"

// Method names, one per message shape exchanged between server and
// agent. Server-to-agent methods are sent as notifications (no reply
// expected); the two client-to-server requests and the agent's
// AgentHello are sent as calls so the sender can observe failure.
const (
	MethodAddWorkloads         = "fleetd/addWorkloads"
	MethodUpdateWorkloads      = "fleetd/updateWorkloads"
	MethodDeleteWorkloads      = "fleetd/deleteWorkloads"
	MethodCompleteStateResp    = "fleetd/completeStateResponse"
	MethodUpdateWorkloadState  = "fleetd/updateWorkloadState"
	MethodAgentHello           = "fleetd/agentHello"
	MethodAgentGone            = "fleetd/agentGone"
	MethodUpdateStateRequest   = "fleetd/updateStateRequest"
	MethodCompleteStateRequest = "fleetd/completeStateRequest"
)

// AddWorkloadsParams is MethodAddWorkloads's payload.
type AddWorkloadsParams struct {
	Specs []objects.WorkloadSpec `json:"specs"`
}

// UpdateWorkloadsParams is MethodUpdateWorkloads's payload. Each update
// carries the old generation's delete-condition dependencies alongside the
// new spec, so the receiving agent can gate the old generation's teardown
// instead of tearing it down unconditionally.
type UpdateWorkloadsParams struct {
	Updates []objects.WorkloadUpdate `json:"updates"`
}

// DeleteWorkloadsParams is MethodDeleteWorkloads's payload.
type DeleteWorkloadsParams struct {
	Workloads []objects.DeletedWorkload `json:"workloads"`
}

// CompleteStateResponseParams is MethodCompleteStateResp's payload, the
// server's answer to a CompleteStateRequest call.
type CompleteStateResponseParams struct {
	State objects.CompleteState `json:"state"`
}

// UpdateWorkloadStateParams is MethodUpdateWorkloadState's payload: one
// batch from a single checker, preserving that checker's own ordering.
type UpdateWorkloadStateParams struct {
	WorkloadStates []objects.WorkloadState `json:"workloadStates"`
}

// AgentHelloParams announces an agent's presence to the server.
type AgentHelloParams struct {
	AgentName string `json:"agentName"`
}

// AgentGoneParams is MethodAgentGone's payload, sent to one peer by
// AgentLink.PushAgentGone. server/app never calls PushAgentGone, so a
// lost agent connection is not announced to the other peers.
type AgentGoneParams struct {
	AgentName string `json:"agentName"`
}
