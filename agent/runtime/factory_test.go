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

package runtime_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spacechunks/fleetd/agent/checker"
	"github.com/spacechunks/fleetd/agent/runtime"
	"github.com/spacechunks/fleetd/objects"
)

type constGetter struct {
	state objects.ExecutionState
}

func (g constGetter) GetState(_ context.Context, _ string) (objects.ExecutionState, error) {
	return g.state, nil
}

func TestDefaultCheckerFactoryStartsARealChecker(t *testing.T) {
	factory := runtime.DefaultCheckerFactory{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Interval: time.Millisecond,
	}

	sink := checker.NewChanSink(4)
	handle := factory.StartChecker(
		context.Background(),
		objects.WorkloadSpec{Name: "web", Agent: "agent-1"},
		"container-1",
		sink,
		constGetter{state: objects.ExecRunning},
	)
	defer handle.Stop()

	select {
	case batch := <-sink.C():
		require.Equal(t, objects.ExecRunning, batch[0].ExecutionState)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a report from the default checker factory")
	}
}
