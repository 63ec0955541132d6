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

// Package cyclecheck finds cycles in a State's workload-dependency
// graph. It is intentionally a standalone, dependency-free package: the
// graph it walks is tiny (one edge per declared dependency) and a
// generic graph library would bring far more machinery than an
// iterative DFS needs.
package cyclecheck

import "github.com/spacechunks/fleetd/objects"

// DFS walks the dependency edges of state starting from roots (or from
// every workload name, in map-iteration order, if roots is nil) and
// returns the name of a workload that sits on a cycle, if any. Callers
// must not rely on which cycle is reported when more than one exists,
// only on whether the result is non-empty.
func DFS(state objects.State, roots []string) (string, bool) {
	if roots == nil {
		roots = make([]string, 0, len(state.Workloads))
		for name := range state.Workloads {
			roots = append(roots, name)
		}
	}

	visited := make(map[string]bool, len(state.Workloads))
	onStack := make(map[string]bool, len(state.Workloads))

	for _, root := range roots {
		if visited[root] {
			continue
		}
		if name, found := visit(state, root, visited, onStack); found {
			return name, true
		}
	}

	return "", false
}

// frame is one entry in visit's explicit stack: name is the workload
// currently being walked, and deps holds its dependency names not yet
// examined.
type frame struct {
	name string
	deps []string
}

func newFrame(state objects.State, name string) frame {
	w, ok := state.Workloads[name]
	if !ok {
		return frame{name: name}
	}
	deps := make([]string, 0, len(w.Dependencies))
	for dep := range w.Dependencies {
		deps = append(deps, dep)
	}
	return frame{name: name, deps: deps}
}

// visit performs an iterative depth-first traversal from name, pushing
// and popping frame values on an explicit stack instead of recursing, so
// the walk's depth is bounded by heap, not by Go's call stack.
func visit(state objects.State, name string, visited, onStack map[string]bool) (string, bool) {
	stack := []frame{newFrame(state, name)}
	onStack[name] = true

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if len(top.deps) == 0 {
			delete(onStack, top.name)
			stack = stack[:len(stack)-1]
			continue
		}

		dep := top.deps[0]
		top.deps = top.deps[1:]

		if onStack[dep] {
			return dep, true
		}
		if visited[dep] {
			continue
		}

		visited[dep] = true
		onStack[dep] = true
		stack = append(stack, newFrame(state, dep))
	}

	return "", false
}
