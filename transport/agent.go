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

	"github.com/gorilla/websocket"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/spacechunks/fleetd/objects"
)

// AgentConn is one agent's connection to the server. It implements
// supervisor.ReportForwarder directly, so a Supervisor can be handed
// an AgentConn wherever it wants a ReportForwarder without this
// package importing agent/supervisor.
type AgentConn struct {
	conn *jsonrpc2.Conn
}

// Dial connects to a server's websocket endpoint, installs h to handle
// incoming push messages, and announces agentName with an AgentHello
// call.
func Dial(ctx context.Context, url string, agentName string, h AgentHandler) (*AgentConn, error) {
	wsConn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	conn := jsonrpc2.NewConn(context.Background(), newWSStream(wsConn), agentSideHandler{h: h})

	ac := &AgentConn{conn: conn}
	if err := ac.sendHello(ctx, agentName); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("agent hello: %w", err)
	}

	return ac, nil
}

func (a *AgentConn) sendHello(ctx context.Context, agentName string) error {
	return a.conn.Call(ctx, MethodAgentHello, AgentHelloParams{AgentName: agentName}, nil)
}

// ForwardStates implements supervisor.ReportForwarder: it notifies the
// server of one checker's reported batch.
func (a *AgentConn) ForwardStates(ctx context.Context, states []objects.WorkloadState) error {
	return a.conn.Notify(ctx, MethodUpdateWorkloadState, UpdateWorkloadStateParams{WorkloadStates: states})
}

// RequestCompleteState issues the client-facing CompleteStateRequest
// call and waits for the server's response.
func (a *AgentConn) RequestCompleteState(ctx context.Context, req objects.CompleteStateRequest) (objects.CompleteState, error) {
	var resp objects.CompleteState
	if err := a.conn.Call(ctx, MethodCompleteStateRequest, req, &resp); err != nil {
		return objects.CompleteState{}, fmt.Errorf("complete state request: %w", err)
	}
	return resp, nil
}

// RequestUpdateState issues the client-facing UpdateStateRequest call.
func (a *AgentConn) RequestUpdateState(ctx context.Context, req objects.UpdateStateRequest) error {
	if err := a.conn.Call(ctx, MethodUpdateStateRequest, req, nil); err != nil {
		return fmt.Errorf("update state request: %w", err)
	}
	return nil
}

func (a *AgentConn) DisconnectNotify() <-chan struct{} {
	return a.conn.DisconnectNotify()
}

func (a *AgentConn) Close() error {
	return a.conn.Close()
}
