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

package checker

import (
	"context"

	"github.com/spacechunks/fleetd/objects"
)

// ReportSink is the many-producer/single-consumer boundary a checker
// sends state-change batches on. It is shared across every checker
// belonging to one agent, so a full channel backs up the sender
// instead of dropping reports.
type ReportSink interface {
	Send(ctx context.Context, states []objects.WorkloadState) error
}

// ChanSink is the in-process ReportSink fleetd wires by default: a
// single buffered channel, drained by the supervisor's owning
// goroutine and forwarded on to the server via a
// supervisor.ReportForwarder.
type ChanSink struct {
	ch chan []objects.WorkloadState
}

// NewChanSink creates a sink with the given channel buffer size. A
// backlog larger than the buffer suspends the sending checker rather
// than dropping reports.
func NewChanSink(buffer int) *ChanSink {
	return &ChanSink{ch: make(chan []objects.WorkloadState, buffer)}
}

func (s *ChanSink) Send(ctx context.Context, states []objects.WorkloadState) error {
	select {
	case s.ch <- states:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// C exposes the underlying channel for the consumer side.
func (s *ChanSink) C() <-chan []objects.WorkloadState {
	return s.ch
}
