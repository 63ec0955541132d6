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

package statedoc

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/spacechunks/fleetd/objects"
)

// FromCompleteState projects a CompleteState into a generic Object by
// round-tripping it through YAML. This keeps this package ignorant of
// objects.CompleteState's concrete shape.
func FromCompleteState(cs objects.CompleteState) (Object, error) {
	data, err := yaml.Marshal(cs)
	if err != nil {
		return Object{}, fmt.Errorf("marshal complete state: %w", err)
	}

	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Object{}, fmt.Errorf("unmarshal into document: %w", err)
	}

	return NewObject(root), nil
}

// ToCompleteState parses an Object back into a CompleteState. It fails
// if the document's shape doesn't match, which is how
// server/state's merge surfaces a ResultInvalidError.
func ToCompleteState(o Object) (objects.CompleteState, error) {
	data, err := yaml.Marshal(o.root)
	if err != nil {
		return objects.CompleteState{}, fmt.Errorf("marshal document: %w", err)
	}

	var cs objects.CompleteState
	if err := yaml.Unmarshal(data, &cs); err != nil {
		return objects.CompleteState{}, fmt.Errorf("unmarshal into complete state: %w", err)
	}

	return cs, nil
}
