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

// Package objects holds the data model shared between the server and the
// agent: workload specs, desired state, and execution state. Nothing in
// this package talks to a runtime, a transport, or a store.
package objects

import "maps"

// DeleteCondition names the execution state a dependent workload must
// be observed in before the workload it depends on may be torn down.
type DeleteCondition string

const (
	DeleteConditionRunning   DeleteCondition = "RUNNING"
	DeleteConditionSucceeded DeleteCondition = "SUCCEEDED"
	DeleteConditionNotPendingNorRunning DeleteCondition = "NOT_PENDING_NOR_RUNNING"
)

// RestartPolicy is carried in a WorkloadSpec and compared by Equal.
// The agent supervisor does not read it: a workload whose runtime
// child exits on its own is not recreated.
type RestartPolicy string

const (
	RestartPolicyNever  RestartPolicy = "NEVER"
	RestartPolicyAlways RestartPolicy = "ALWAYS"
	RestartPolicyOnFailure RestartPolicy = "ON_FAILURE"
)

// WorkloadSpec describes one workload. It is immutable by convention:
// callers build a new value rather than mutating one in place.
type WorkloadSpec struct {
	Name string `yaml:"name"`

	// Agent is the name of the agent this workload is assigned to.
	// fleetd does not schedule workloads; placement is part of the spec.
	Agent string `yaml:"agent"`

	// Runtime selects the adapter that understands RuntimeConfig, e.g.
	// "docker" for the bundled dockerengine adapter.
	Runtime string `yaml:"runtime"`

	// RuntimeConfig is an opaque string whose schema is owned by the
	// runtime adapter named by Runtime. fleetd never parses it itself.
	RuntimeConfig string `yaml:"runtimeConfig"`

	// Dependencies maps the name of a workload this one depends on to
	// the condition this workload must be observed in before that
	// dependency may be deleted.
	Dependencies map[string]DeleteCondition `yaml:"dependencies"`

	Tags          map[string]string `yaml:"tags"`
	RestartPolicy RestartPolicy     `yaml:"restartPolicy"`
}

// Equal reports whether two specs are equal in every semantically
// significant field. It drives changed-workload detection in
// server/state's diff and deliberately does not use reflect.DeepEqual
// so that field additions are a conscious decision, not a silent one.
func (w WorkloadSpec) Equal(o WorkloadSpec) bool {
	if w.Name != o.Name ||
		w.Agent != o.Agent ||
		w.Runtime != o.Runtime ||
		w.RuntimeConfig != o.RuntimeConfig ||
		w.RestartPolicy != o.RestartPolicy {
		return false
	}
	if !mapsEqual(w.Dependencies, o.Dependencies) {
		return false
	}
	if !mapsEqual(w.Tags, o.Tags) {
		return false
	}
	return true
}

func mapsEqual[V comparable](a, b map[string]V) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// Clone returns a deep copy, used whenever a spec crosses a goroutine
// boundary (command dispatch, state commit) so no caller can mutate a
// spec another goroutine is holding.
func (w WorkloadSpec) Clone() WorkloadSpec {
	c := w
	c.Dependencies = maps.Clone(w.Dependencies)
	c.Tags = maps.Clone(w.Tags)
	return c
}

// State is an unordered collection of workloads keyed by name, plus
// fields opaque to the core (startup configs, cron-like schedules, ...)
// that a caller may carry through Ancillary without fleetd interpreting
// them.
type State struct {
	Workloads map[string]WorkloadSpec `yaml:"workloads"`

	// Ancillary holds fields the core treats as opaque payload: it is
	// merged and projected by statedoc like any other part of State,
	// but never inspected by server/state's diff or cycle check.
	Ancillary map[string]any `yaml:"ancillary"`
}

// Clone returns a deep-enough copy for safe cross-goroutine handoff.
func (s State) Clone() State {
	wl := make(map[string]WorkloadSpec, len(s.Workloads))
	for k, v := range s.Workloads {
		wl[k] = v.Clone()
	}
	return State{
		Workloads: wl,
		Ancillary: cloneAny(s.Ancillary),
	}
}

func cloneAny(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	c := make(map[string]any, len(m))
	maps.Copy(c, m)
	return c
}
