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
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/spacechunks/fleetd/objects"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// AgentLink is the server's handle to one connected agent (or, before
// its first AgentHello arrives, one not-yet-identified connection).
// Name is empty until OnAgentHello fires on the ServerHandler sharing
// this link's agentName pointer.
type AgentLink struct {
	conn      *jsonrpc2.Conn
	agentName *string
}

// Name returns the connected agent's announced name, or "" if no
// AgentHello has arrived yet.
func (l *AgentLink) Name() string {
	return *l.agentName
}

// PushAddWorkloads notifies the agent to bring up the given specs.
func (l *AgentLink) PushAddWorkloads(ctx context.Context, specs []objects.WorkloadSpec) error {
	return l.conn.Notify(ctx, MethodAddWorkloads, AddWorkloadsParams{Specs: specs})
}

// PushUpdateWorkloads notifies the agent to replace each named workload's
// old generation with the paired new spec, honoring the old generation's
// carried-over delete-condition dependencies during teardown.
func (l *AgentLink) PushUpdateWorkloads(ctx context.Context, updates []objects.WorkloadUpdate) error {
	return l.conn.Notify(ctx, MethodUpdateWorkloads, UpdateWorkloadsParams{Updates: updates})
}

// PushDeleteWorkloads notifies the agent to remove the given workloads.
func (l *AgentLink) PushDeleteWorkloads(ctx context.Context, workloads []objects.DeletedWorkload) error {
	return l.conn.Notify(ctx, MethodDeleteWorkloads, DeleteWorkloadsParams{Workloads: workloads})
}

// PushCompleteStateResponse answers an earlier CompleteStateRequest.
func (l *AgentLink) PushCompleteStateResponse(ctx context.Context, state objects.CompleteState) error {
	return l.conn.Notify(ctx, MethodCompleteStateResp, CompleteStateResponseParams{State: state})
}

// PushAgentGone tells this connection's peer that a different agent
// disconnected.
func (l *AgentLink) PushAgentGone(ctx context.Context, agentName string) error {
	return l.conn.Notify(ctx, MethodAgentGone, AgentGoneParams{AgentName: agentName})
}

// DisconnectNotify returns a channel closed once the underlying
// connection is torn down, mirroring jsonrpc2.Conn's own shutdown
// signal so callers can clean up their side of AgentLink bookkeeping.
func (l *AgentLink) DisconnectNotify() <-chan struct{} {
	return l.conn.DisconnectNotify()
}

func (l *AgentLink) Close() error {
	return l.conn.Close()
}

// Accept upgrades one incoming HTTP request to a websocket and wires a
// jsonrpc2 connection over it, dispatching into h until the connection
// closes. It does not block: the jsonrpc2.Conn it returns runs its own
// read loop in the background.
func Accept(w http.ResponseWriter, r *http.Request, h ServerHandler) (*AgentLink, error) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("upgrade websocket: %w", err)
	}

	var (
		name = new(string)
		link = &AgentLink{agentName: name}
	)
	handler := &serverSideHandler{h: h, agentName: name, link: link}

	link.conn = jsonrpc2.NewConn(context.Background(), newWSStream(wsConn), handler)

	return link, nil
}
