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

// Package checker is the generic polling state checker: the reusable
// piece that turns "the runtime only answers point-in-time queries"
// into "the rest of the system sees a stream of state-change events".
// Its ticker-plus-stop-channel loop generalizes a fan-out-to-N
// collector pattern down to a single state-getter, deduping by
// last-reported state and terminating once a workload reaches Removed.
package checker

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacechunks/fleetd/objects"
)

// DefaultPollInterval is used when Start is given a non-positive
// interval.
const DefaultPollInterval = time.Second

// StateGetter is a runtime-specific point-in-time state query. It may
// suspend.
type StateGetter interface {
	GetState(ctx context.Context, workloadID string) (objects.ExecutionState, error)
}

// Checker is a running polling task for one workload. Stop aborts it
// and waits for the goroutine to exit; dropping the value without
// calling Stop leaks the goroutine, so every caller must defer Stop.
type Checker struct {
	workloadName string
	logger       *slog.Logger
	cancel       context.CancelFunc
	done         chan struct{}
}

// Start spawns the polling goroutine. It polls getter every interval
// and, whenever the observed state differs from the last one reported,
// sends a single-element batch on sink. After a Removed report the
// goroutine exits on its own; Stop is then a no-op.
func Start(
	ctx context.Context,
	logger *slog.Logger,
	spec objects.WorkloadSpec,
	workloadID string,
	interval time.Duration,
	sink ReportSink,
	getter StateGetter,
) *Checker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	cctx, cancel := context.WithCancel(ctx)
	c := &Checker{
		workloadName: spec.Name,
		logger:       logger.With("component", "state-checker", "workload_name", spec.Name),
		cancel:       cancel,
		done:         make(chan struct{}),
	}

	go c.run(cctx, spec, workloadID, interval, sink, getter)

	return c
}

func (c *Checker) run(ctx context.Context, spec objects.WorkloadSpec, workloadID string, interval time.Duration, sink ReportSink, getter StateGetter) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastState := objects.ExecUnknown

	for {
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}

		current, err := getter.GetState(ctx, workloadID)
		if err != nil {
			c.logger.ErrorContext(ctx, "failed to query runtime state", "err", err)
			continue
		}

		if current == lastState {
			continue
		}

		c.logger.DebugContext(ctx, "workload changed state", "from", lastState, "to", current)
		lastState = current

		report := []objects.WorkloadState{{
			AgentName:      spec.Agent,
			WorkloadName:   spec.Name,
			ExecutionState: current,
		}}

		// a send failure here means the sink -- and therefore the
		// supervisor that owns it -- is gone while this checker is
		// still alive, a process-wide invariant violation, not a
		// recoverable runtime condition.
		if err := sink.Send(ctx, report); err != nil {
			if ctx.Err() != nil {
				return
			}
			panic("checker: report sink closed while checker still running: " + err.Error())
		}

		if lastState.Terminal() {
			return
		}
	}
}

// Stop cancels the polling goroutine and waits for it to exit. Calling
// Stop more than once, or after the goroutine already exited on its
// own (e.g. after reporting Removed), is safe.
func (c *Checker) Stop() {
	c.cancel()
	<-c.done
}
