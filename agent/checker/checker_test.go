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

package checker_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spacechunks/fleetd/agent/checker"
	"github.com/spacechunks/fleetd/objects"
)

type sequenceGetter struct {
	mu     sync.Mutex
	states []objects.ExecutionState
	idx    int
}

func (g *sequenceGetter) GetState(_ context.Context, _ string) (objects.ExecutionState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.states) {
		return g.states[len(g.states)-1], nil
	}
	s := g.states[g.idx]
	g.idx++
	return s, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCheckerDedupsRepeatedState(t *testing.T) {
	getter := &sequenceGetter{states: []objects.ExecutionState{
		objects.ExecPending,
		objects.ExecPending,
		objects.ExecRunning,
	}}
	sink := checker.NewChanSink(8)

	c := checker.Start(context.Background(), testLogger(), objects.WorkloadSpec{Name: "web", Agent: "agent-1"}, "container-id", time.Millisecond, sink, getter)
	defer c.Stop()

	var reports []objects.ExecutionState
	timeout := time.After(2 * time.Second)
	for len(reports) < 2 {
		select {
		case batch := <-sink.C():
			reports = append(reports, batch[0].ExecutionState)
		case <-timeout:
			t.Fatal("timed out waiting for state reports")
		}
	}

	require.Equal(t, []objects.ExecutionState{objects.ExecPending, objects.ExecRunning}, reports)
}

func TestCheckerStopsAfterRemoved(t *testing.T) {
	getter := &sequenceGetter{states: []objects.ExecutionState{
		objects.ExecRunning,
		objects.ExecRemoved,
	}}
	sink := checker.NewChanSink(8)

	c := checker.Start(context.Background(), testLogger(), objects.WorkloadSpec{Name: "web", Agent: "agent-1"}, "container-id", time.Millisecond, sink, getter)

	var last objects.ExecutionState
	timeout := time.After(2 * time.Second)
	for last != objects.ExecRemoved {
		select {
		case batch := <-sink.C():
			last = batch[0].ExecutionState
		case <-timeout:
			t.Fatal("timed out waiting for removed report")
		}
	}

	// the polling goroutine has already returned on its own; Stop must
	// still be safe to call.
	c.Stop()
}

func TestCheckerStopIsIdempotent(t *testing.T) {
	getter := &sequenceGetter{states: []objects.ExecutionState{objects.ExecPending}}
	sink := checker.NewChanSink(8)

	c := checker.Start(context.Background(), testLogger(), objects.WorkloadSpec{Name: "web"}, "id", time.Millisecond, sink, getter)
	c.Stop()
	c.Stop()
}
