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

package dockerengine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/google/uuid"

	"github.com/spacechunks/fleetd/agent/checker"
	"github.com/spacechunks/fleetd/agent/runtime"
	"github.com/spacechunks/fleetd/objects"
)

// OwnerLabel marks every container this adapter creates, so ListOwned
// can tell fleetd's own children apart from everything else the engine
// is running.
const OwnerLabel = "io.fleetd.owner"

// NamePrefix is prepended to the container name fleetd assigns, mostly
// so `docker ps` output is legible during manual debugging.
const NamePrefix = "fleetd-"

// Adapter implements runtime.Adapter against a Docker-compatible
// engine (docker itself, or any daemon-less OCI engine such as Podman
// that serves the same API on a unix socket), reached through
// docker/docker's client package: a logger plus a single client, with
// Create/Delete/List each wrapping one client call in
// fmt.Errorf("...: %w", err).
type Adapter struct {
	logger *slog.Logger
	client *client.Client
}

var (
	_ runtime.Adapter    = (*Adapter)(nil)
	_ checker.StateGetter = (*Adapter)(nil)
)

// New wraps an already-configured Docker API client. Callers typically
// build cli with client.NewClientWithOpts(client.FromEnv,
// client.WithAPIVersionNegotiation()).
func New(logger *slog.Logger, cli *client.Client) *Adapter {
	return &Adapter{
		logger: logger.With("component", "dockerengine-adapter"),
		client: cli,
	}
}

// Create parses spec's opaque RuntimeConfig, pulls the image if it is
// not already present locally, and starts a container labelled as
// owned by fleetd. The returned workloadID is the container ID.
func (a *Adapter) Create(ctx context.Context, spec objects.WorkloadSpec) (string, error) {
	cfg, err := ParseConfig(spec)
	if err != nil {
		return "", fmt.Errorf("parse runtime config: %w", err)
	}

	logger := a.logger.With("workload_name", spec.Name, "image", cfg.Image)

	if err := a.pullImageIfNotPresent(ctx, logger, cfg.Image); err != nil {
		return "", fmt.Errorf("pull image if not present: %w", err)
	}

	labels := make(map[string]string, len(spec.Tags)+1)
	for k, v := range spec.Tags {
		labels[k] = v
	}
	labels[OwnerLabel] = spec.Name

	containerCfg := &container.Config{
		Image:  cfg.Image,
		Cmd:    cfg.CommandArgs,
		Labels: labels,
	}

	hostCfg := &container.HostConfig{}

	name := NamePrefix + spec.Name + "-" + uuid.NewString()

	createResp, err := a.client.ContainerCreate(ctx, containerCfg, hostCfg, nil, nil, name)
	if err != nil {
		return "", fmt.Errorf("create container: %w", err)
	}

	if err := a.client.ContainerStart(ctx, createResp.ID, container.StartOptions{}); err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	logger.InfoContext(ctx, "started container", "container_id", createResp.ID)
	return createResp.ID, nil
}

// Delete force-removes the container identified by workloadID. A
// container that is already gone is not an error: the supervisor may
// call Delete after an earlier attempt crashed partway through.
func (a *Adapter) Delete(ctx context.Context, workloadID string) error {
	a.logger.InfoContext(ctx, "removing container", "container_id", workloadID)

	err := a.client.ContainerRemove(ctx, workloadID, container.RemoveOptions{
		Force: true,
	})
	if err != nil && !client.IsErrNotFound(err) {
		return fmt.Errorf("remove container: %w", err)
	}

	return nil
}

// ListOwned lists every container carrying OwnerLabel, including
// stopped ones, so the supervisor can rebuild its ownership map after
// an agent restart.
func (a *Adapter) ListOwned(ctx context.Context) ([]runtime.OwnedWorkload, error) {
	f := filters.NewArgs(filters.Arg("label", OwnerLabel))

	containers, err := a.client.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: f,
	})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}

	out := make([]runtime.OwnedWorkload, 0, len(containers))
	for _, c := range containers {
		name, ok := c.Labels[OwnerLabel]
		if !ok {
			continue
		}
		out = append(out, runtime.OwnedWorkload{
			WorkloadName: name,
			WorkloadID:   c.ID,
		})
	}

	return out, nil
}

// GetState implements checker.StateGetter against a container's
// reported status.
func (a *Adapter) GetState(ctx context.Context, workloadID string) (objects.ExecutionState, error) {
	inspect, err := a.client.ContainerInspect(ctx, workloadID)
	if err != nil {
		if client.IsErrNotFound(err) {
			return objects.ExecRemoved, nil
		}
		return "", fmt.Errorf("inspect container: %w", err)
	}

	if inspect.State == nil {
		return objects.ExecUnknown, nil
	}

	switch {
	case inspect.State.Running:
		return objects.ExecRunning, nil
	case inspect.State.Status == "created":
		return objects.ExecPending, nil
	case inspect.State.ExitCode == 0 && inspect.State.Status == "exited":
		return objects.ExecSucceeded, nil
	case inspect.State.Status == "exited":
		return objects.ExecFailed, nil
	default:
		return objects.ExecUnknown, nil
	}
}

// pullImageIfNotPresent checks locally first, only hitting the
// registry on a miss.
func (a *Adapter) pullImageIfNotPresent(ctx context.Context, logger *slog.Logger, imageRef string) error {
	_, err := a.client.ImageInspect(ctx, imageRef)
	if err == nil {
		return nil
	}
	if !client.IsErrNotFound(err) {
		return fmt.Errorf("inspect image: %w", err)
	}

	logger.InfoContext(ctx, "pulling image")

	rc, err := a.client.ImagePull(ctx, imageRef, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("pull image: %w", err)
	}
	defer rc.Close()

	if _, err := io.Copy(io.Discard, rc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read pull progress: %w", err)
	}

	logger.InfoContext(ctx, "image pulled")
	return nil
}
