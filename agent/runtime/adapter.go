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

// Package runtime declares the capability interfaces the agent
// supervisor depends on: an Adapter that knows how to create and tear
// down one concrete kind of runtime child, and a CheckerFactory that
// starts the generic polling checker against it. Concrete
// implementations (dockerengine being the one fleetd ships) live in
// subpackages and are never imported by agent/supervisor directly --
// only through these interfaces.
package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacechunks/fleetd/agent/checker"
	"github.com/spacechunks/fleetd/objects"
)

// Adapter owns the mechanics of one runtime kind (container engine,
// process runner, ...). The workloadID it returns is whatever opaque
// identifier that runtime hands back on creation (a container ID, a
// PID, ...).
type Adapter interface {
	// Create starts spec's runtime child and returns its runtime-level
	// identifier.
	Create(ctx context.Context, spec objects.WorkloadSpec) (workloadID string, err error)

	// Delete tears down the runtime child identified by workloadID.
	Delete(ctx context.Context, workloadID string) error

	// ListOwned returns every (workload name, workload ID) pair this
	// adapter's runtime currently reports as belonging to fleetd, used
	// by the supervisor to recover its map after a restart.
	ListOwned(ctx context.Context) ([]OwnedWorkload, error)
}

// OwnedWorkload is one entry ListOwned returns.
type OwnedWorkload struct {
	WorkloadName string
	WorkloadID   string
}

// StateGetter is re-exported from checker so callers that only need the
// polling capability don't have to import both packages.
type StateGetter = checker.StateGetter

// CheckerHandle is whatever StartChecker returns: something that can be
// stopped. *checker.Checker satisfies it directly.
type CheckerHandle interface {
	Stop()
}

// CheckerFactory starts a generic polling checker against one
// workload. The default implementation simply forwards to
// checker.Start; tests substitute a fake that records calls instead of
// sleeping in real time.
type CheckerFactory interface {
	StartChecker(
		ctx context.Context,
		spec objects.WorkloadSpec,
		workloadID string,
		sink checker.ReportSink,
		getter StateGetter,
	) CheckerHandle
}

// DefaultCheckerFactory starts a real checker.Checker polling at
// Interval (checker.DefaultPollInterval if zero).
type DefaultCheckerFactory struct {
	Logger   *slog.Logger
	Interval time.Duration
}

func (f DefaultCheckerFactory) StartChecker(
	ctx context.Context,
	spec objects.WorkloadSpec,
	workloadID string,
	sink checker.ReportSink,
	getter StateGetter,
) CheckerHandle {
	return checker.Start(ctx, f.Logger, spec, workloadID, f.Interval, sink, getter)
}
