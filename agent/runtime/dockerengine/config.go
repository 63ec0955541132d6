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

// Package dockerengine is fleetd's bundled RuntimeAdapter, targeting a
// daemon-less OCI engine exposed through the Docker-compatible API
// (docker/docker's client package talks to either docker itself or any
// engine, such as Podman, that serves the same API on a unix socket).
package dockerengine

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/spacechunks/fleetd/objects"
)

// RuntimeName is the value a WorkloadSpec.Runtime must carry to be
// routed to this adapter.
const RuntimeName = "docker"

// Config is the decoded shape of WorkloadSpec.RuntimeConfig for this
// runtime.
type Config struct {
	GeneralOptions []string `yaml:"generalOptions"`
	CommandOptions []string `yaml:"commandOptions"`
	Image          string   `yaml:"image"`
	CommandArgs    []string `yaml:"commandArgs"`
}

// ParseConfig decodes and validates spec.RuntimeConfig. It fails if
// spec is not routed to this runtime, or if the decoded document has no
// image.
func ParseConfig(spec objects.WorkloadSpec) (Config, error) {
	if spec.Runtime != RuntimeName {
		return Config{}, fmt.Errorf("received a spec for the wrong runtime: %q", spec.Runtime)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(spec.RuntimeConfig), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse runtime config: %w", err)
	}

	if cfg.Image == "" {
		return Config{}, fmt.Errorf("runtime config has no image")
	}

	return cfg, nil
}
