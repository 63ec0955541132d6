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
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spacechunks/fleetd/objects"
	"github.com/spacechunks/fleetd/transport"
)

var errUpdateRejected = errors.New("update rejected")

type fakeServerHandler struct {
	mu          sync.Mutex
	helloAgent  string
	helloLink   *transport.AgentLink
	states      []objects.WorkloadState
	updateErr   error
	completeRet objects.CompleteState
}

func (f *fakeServerHandler) OnAgentHello(_ context.Context, link *transport.AgentLink, agentName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.helloAgent = agentName
	f.helloLink = link
}

func (f *fakeServerHandler) OnAgentWorkloadStates(_ context.Context, _ string, states []objects.WorkloadState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states = append(f.states, states...)
}

func (f *fakeServerHandler) OnUpdateStateRequest(_ context.Context, _ objects.UpdateStateRequest) error {
	return f.updateErr
}

func (f *fakeServerHandler) OnCompleteStateRequest(_ context.Context, _ objects.CompleteStateRequest) (objects.CompleteState, error) {
	return f.completeRet, nil
}

type fakeAgentHandler struct {
	mu      sync.Mutex
	added   []objects.WorkloadSpec
	deleted []objects.DeletedWorkload
	gone    []string
}

func (f *fakeAgentHandler) OnAddWorkloads(_ context.Context, specs []objects.WorkloadSpec) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, specs...)
}

func (f *fakeAgentHandler) OnUpdateWorkloads(_ context.Context, updates []objects.WorkloadUpdate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range updates {
		f.added = append(f.added, u.Spec)
	}
}

func (f *fakeAgentHandler) OnDeleteWorkloads(_ context.Context, workloads []objects.DeletedWorkload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, workloads...)
}

func (f *fakeAgentHandler) OnCompleteStateResponse(_ context.Context, _ objects.CompleteState) {}

func (f *fakeAgentHandler) OnAgentGone(_ context.Context, agentName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gone = append(f.gone, agentName)
}

func newTestServer(t *testing.T, h transport.ServerHandler) (wsURL string, links chan *transport.AgentLink) {
	t.Helper()
	links = make(chan *transport.AgentLink, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/agent", func(w http.ResponseWriter, r *http.Request) {
		link, err := transport.Accept(w, r, h)
		require.NoError(t, err)
		links <- link
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/agent", links
}

func TestAgentHelloRegistersLink(t *testing.T) {
	handler := &fakeServerHandler{}
	url, links := newTestServer(t, handler)

	agentHandler := &fakeAgentHandler{}
	conn, err := transport.Dial(context.Background(), url, "agent-1", agentHandler)
	require.NoError(t, err)
	defer conn.Close()

	<-links

	require.Eventually(t, func() bool {
		handler.mu.Lock()
		defer handler.mu.Unlock()
		return handler.helloAgent == "agent-1"
	}, time.Second, 10*time.Millisecond)
}

func TestForwardStatesReachesServer(t *testing.T) {
	handler := &fakeServerHandler{}
	url, links := newTestServer(t, handler)

	agentHandler := &fakeAgentHandler{}
	conn, err := transport.Dial(context.Background(), url, "agent-1", agentHandler)
	require.NoError(t, err)
	defer conn.Close()
	<-links

	require.NoError(t, conn.ForwardStates(context.Background(), []objects.WorkloadState{
		{AgentName: "agent-1", WorkloadName: "web", ExecutionState: objects.ExecRunning},
	}))

	require.Eventually(t, func() bool {
		handler.mu.Lock()
		defer handler.mu.Unlock()
		return len(handler.states) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestPushAddWorkloadsReachesAgent(t *testing.T) {
	handler := &fakeServerHandler{}
	url, links := newTestServer(t, handler)

	agentHandler := &fakeAgentHandler{}
	conn, err := transport.Dial(context.Background(), url, "agent-1", agentHandler)
	require.NoError(t, err)
	defer conn.Close()

	link := <-links
	require.NoError(t, link.PushAddWorkloads(context.Background(), []objects.WorkloadSpec{
		{Name: "web", Agent: "agent-1"},
	}))

	require.Eventually(t, func() bool {
		agentHandler.mu.Lock()
		defer agentHandler.mu.Unlock()
		return len(agentHandler.added) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestCompleteStateRequestRoundTrip(t *testing.T) {
	want := objects.CompleteState{
		CurrentState: objects.State{
			Workloads: map[string]objects.WorkloadSpec{"web": {Name: "web"}},
		},
	}
	handler := &fakeServerHandler{completeRet: want}
	url, links := newTestServer(t, handler)

	agentHandler := &fakeAgentHandler{}
	conn, err := transport.Dial(context.Background(), url, "agent-1", agentHandler)
	require.NoError(t, err)
	defer conn.Close()
	<-links

	got, err := conn.RequestCompleteState(context.Background(), objects.CompleteStateRequest{})
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestUpdateStateRequestPropagatesError(t *testing.T) {
	handler := &fakeServerHandler{updateErr: errUpdateRejected}
	url, links := newTestServer(t, handler)

	agentHandler := &fakeAgentHandler{}
	conn, err := transport.Dial(context.Background(), url, "agent-1", agentHandler)
	require.NoError(t, err)
	defer conn.Close()
	<-links

	err = conn.RequestUpdateState(context.Background(), objects.UpdateStateRequest{})
	require.Error(t, err)
}
