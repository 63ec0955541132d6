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
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"github.com/peterbourgon/ff/v3"

	"github.com/spacechunks/fleetd/server/app"
	"github.com/spacechunks/fleetd/transport"
)

func main() {
	var (
		logger     = slog.New(slog.NewTextHandler(os.Stdout, nil))
		fs         = flag.NewFlagSet("fleet-server", flag.ContinueOnError)
		listenAddr = fs.String("listen-addr", ":7870", "address to listen on for agent and client connections")
		_          = fs.String("config", "/etc/fleetd/server.json", "path to the config file")
	)
	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("FLEET_SERVER"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.JSONParser),
	); err != nil {
		die(logger, "failed to parse config", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := app.New(logger)
	go a.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/agent", func(w http.ResponseWriter, r *http.Request) {
		if _, err := transport.Accept(w, r, a); err != nil {
			logger.ErrorContext(r.Context(), "failed to accept connection", "err", err)
		}
	})

	httpServer := &http.Server{Addr: *listenAddr, Handler: mux}

	var shutdownErr *multierror.Error
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		s := <-sig
		logger.Info("received shutdown signal", "signal", s)
		cancel()
		shutdownErr = multierror.Append(shutdownErr, httpServer.Close())
	}()

	logger.Info("listening", "addr", *listenAddr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		shutdownErr = multierror.Append(shutdownErr, err)
	}
	if err := shutdownErr.ErrorOrNil(); err != nil {
		die(logger, "errors during shutdown", err)
	}
}

func die(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}
