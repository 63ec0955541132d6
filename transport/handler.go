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

package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/spacechunks/fleetd/objects"
)

// ServerHandler reacts to everything an agent or a client can send a
// server over this transport. server/app.App implements it, gluing
// these calls to server/state.Manager, server/statedb and its map of
// connected agents; transport itself never imports them, keeping the
// wire boundary a one-way dependency.
type ServerHandler interface {
	// OnAgentHello fires when the peer on link identifies itself. link
	// is how the handler pushes messages back to this specific peer
	// for the lifetime of the connection.
	OnAgentHello(ctx context.Context, link *AgentLink, agentName string)
	OnAgentWorkloadStates(ctx context.Context, agentName string, states []objects.WorkloadState)
	OnUpdateStateRequest(ctx context.Context, req objects.UpdateStateRequest) error
	OnCompleteStateRequest(ctx context.Context, req objects.CompleteStateRequest) (objects.CompleteState, error)
}

// AgentHandler reacts to everything the server can send an agent over
// this transport. cmd/fleet-agent implements it by forwarding straight
// into a supervisor.Supervisor's command channel.
type AgentHandler interface {
	OnAddWorkloads(ctx context.Context, specs []objects.WorkloadSpec)
	OnUpdateWorkloads(ctx context.Context, updates []objects.WorkloadUpdate)
	OnDeleteWorkloads(ctx context.Context, workloads []objects.DeletedWorkload)
	OnCompleteStateResponse(ctx context.Context, state objects.CompleteState)
	OnAgentGone(ctx context.Context, agentName string)
}

// serverSideHandler is the jsonrpc2.Handler a server installs on one
// accepted connection, dispatching by method name into a ServerHandler.
// agentName is filled in once an AgentHello call arrives on a
// connection that turns out to belong to an agent rather than a
// stateless client.
type serverSideHandler struct {
	h         ServerHandler
	agentName *string
	link      *AgentLink
}

func (s *serverSideHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	switch req.Method {
	case MethodAgentHello:
		var p AgentHelloParams
		if !unmarshalParams(ctx, conn, req, &p) {
			return
		}
		*s.agentName = p.AgentName
		s.h.OnAgentHello(ctx, s.link, p.AgentName)
		_ = conn.Reply(ctx, req.ID, struct{}{})
	case MethodUpdateWorkloadState:
		var p UpdateWorkloadStateParams
		if !unmarshalParams(ctx, conn, req, &p) {
			return
		}
		s.h.OnAgentWorkloadStates(ctx, *s.agentName, p.WorkloadStates)
	case MethodUpdateStateRequest:
		var p objects.UpdateStateRequest
		if !unmarshalParams(ctx, conn, req, &p) {
			return
		}
		err := s.h.OnUpdateStateRequest(ctx, p)
		replyOrError(ctx, conn, req, struct{}{}, err)
	case MethodCompleteStateRequest:
		var p objects.CompleteStateRequest
		if !unmarshalParams(ctx, conn, req, &p) {
			return
		}
		state, err := s.h.OnCompleteStateRequest(ctx, p)
		replyOrError(ctx, conn, req, state, err)
	default:
		if req.Notif {
			return
		}
		if err := conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("unknown method %q", req.Method),
		}); err != nil {
			return
		}
	}
}

// agentSideHandler is the jsonrpc2.Handler an agent installs on its one
// connection to the server, dispatching into an AgentHandler.
type agentSideHandler struct {
	h AgentHandler
}

func (a agentSideHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	switch req.Method {
	case MethodAddWorkloads:
		var p AddWorkloadsParams
		if !unmarshalParams(ctx, conn, req, &p) {
			return
		}
		a.h.OnAddWorkloads(ctx, p.Specs)
	case MethodUpdateWorkloads:
		var p UpdateWorkloadsParams
		if !unmarshalParams(ctx, conn, req, &p) {
			return
		}
		a.h.OnUpdateWorkloads(ctx, p.Updates)
	case MethodDeleteWorkloads:
		var p DeleteWorkloadsParams
		if !unmarshalParams(ctx, conn, req, &p) {
			return
		}
		a.h.OnDeleteWorkloads(ctx, p.Workloads)
	case MethodCompleteStateResp:
		var p CompleteStateResponseParams
		if !unmarshalParams(ctx, conn, req, &p) {
			return
		}
		a.h.OnCompleteStateResponse(ctx, p.State)
	case MethodAgentGone:
		var p AgentGoneParams
		if !unmarshalParams(ctx, conn, req, &p) {
			return
		}
		a.h.OnAgentGone(ctx, p.AgentName)
	}
}

func unmarshalParams(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request, v any) bool {
	if req.Params == nil {
		return true
	}
	if err := json.Unmarshal(*req.Params, v); err != nil {
		if !req.Notif {
			_ = conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
				Code:    jsonrpc2.CodeInvalidParams,
				Message: err.Error(),
			})
		}
		return false
	}
	return true
}

func replyOrError(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request, result any, err error) {
	if err != nil {
		_ = conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeInternalError,
			Message: err.Error(),
		})
		return
	}
	_ = conn.Reply(ctx, req.ID, result)
}
