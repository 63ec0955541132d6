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

// Package statedoc is a dotted-path projector over generic structured
// documents: Object is a generic structured document (a decoded YAML
// value) and Path is a dotted-segment selector over it. Neither type
// knows anything about CompleteState; the conversion lives in
// document.go so this package stays pure data manipulation.
package statedoc

import "strings"

// Path is an ordered list of dotted-path segments, e.g.
// "currentState.workloads.web" becomes ["currentState", "workloads", "web"].
// A segment is always treated as a map key; sequences are addressed by
// the stringified index.
type Path []string

// NewPath splits a dotted field-mask string into its segments. An empty
// string yields an empty Path, which callers treat as "the whole
// document".
func NewPath(s string) Path {
	if s == "" {
		return nil
	}
	return strings.Split(s, ".")
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// IsEmpty reports whether the path selects the whole document.
func (p Path) IsEmpty() bool {
	return len(p) == 0
}
