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

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	dockerclient "github.com/docker/docker/client"
	"github.com/hashicorp/go-multierror"
	"github.com/peterbourgon/ff/v3"

	"github.com/spacechunks/fleetd/agent/runtime"
	"github.com/spacechunks/fleetd/agent/runtime/dockerengine"
	"github.com/spacechunks/fleetd/agent/supervisor"
	"github.com/spacechunks/fleetd/objects"
	"github.com/spacechunks/fleetd/transport"
)

func main() {
	var (
		logger       = slog.New(slog.NewTextHandler(os.Stdout, nil))
		fs           = flag.NewFlagSet("fleet-agent", flag.ContinueOnError)
		agentName    = fs.String("agent-name", "", "name this agent announces to the server")
		serverURL    = fs.String("server-url", "ws://127.0.0.1:7870/agent", "websocket URL of the fleet server's agent endpoint")
		pollInterval = fs.Duration("poll-interval", 1*time.Second, "how often to poll the runtime for state changes")
		reportBuffer = fs.Int("report-buffer", 64, "size of the shared checker report channel")
		_            = fs.String("config", "/etc/fleetd/agent.json", "path to the config file")
	)
	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("FLEET_AGENT"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.JSONParser),
	); err != nil {
		die(logger, "failed to parse config", err)
	}

	if *agentName == "" {
		die(logger, "failed to start", errors.New("missing required flag -agent-name"))
	}

	dockerCli, err := dockerclient.NewClientWithOpts(
		dockerclient.FromEnv,
		dockerclient.WithAPIVersionNegotiation(),
	)
	if err != nil {
		die(logger, "failed to build docker client", err)
	}

	var (
		adapter  = dockerengine.New(logger, dockerCli)
		checkers = runtime.DefaultCheckerFactory{Logger: logger, Interval: *pollInterval}
		sup      = supervisor.New(logger, *agentName, adapter, adapter, checkers, nil, *reportBuffer)
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn, err := transport.Dial(ctx, *serverURL, *agentName, agentHandler{commands: sup.Commands()})
	if err != nil {
		die(logger, "failed to connect to server", err)
	}
	sup.SetForwarder(conn)

	go sup.Run(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("received shutdown signal", "signal", s)
	case <-conn.DisconnectNotify():
		logger.Error("lost connection to server")
	}

	cancel()

	var shutdownErr *multierror.Error
	shutdownErr = multierror.Append(shutdownErr, conn.Close())
	shutdownErr = multierror.Append(shutdownErr, dockerCli.Close())
	if err := shutdownErr.ErrorOrNil(); err != nil {
		logger.Error("errors during shutdown", "err", err)
	}
}

// agentHandler forwards every server-pushed message straight into a
// supervisor's command stream, event-driven rather than ticker-driven.
type agentHandler struct {
	commands chan<- supervisor.Command
}

func (h agentHandler) OnAddWorkloads(_ context.Context, specs []objects.WorkloadSpec) {
	h.commands <- supervisor.AddWorkloads{Specs: specs}
}

func (h agentHandler) OnUpdateWorkloads(_ context.Context, updates []objects.WorkloadUpdate) {
	h.commands <- supervisor.UpdateWorkloads{Updates: updates}
}

func (h agentHandler) OnDeleteWorkloads(_ context.Context, workloads []objects.DeletedWorkload) {
	h.commands <- supervisor.DeleteWorkloads{Workloads: workloads}
}

func (h agentHandler) OnCompleteStateResponse(_ context.Context, _ objects.CompleteState) {
	// the agent has no local use for a full-state snapshot today; the
	// server pushes every command this agent needs to act on directly.
}

func (h agentHandler) OnAgentGone(_ context.Context, _ string) {}

func die(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}
