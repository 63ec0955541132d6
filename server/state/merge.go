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

package state

import (
	"fmt"

	"github.com/spacechunks/fleetd/objects"
	"github.com/spacechunks/fleetd/statedoc"
)

// mergeState folds updatedState into currentState according to
// updateMask: an empty mask replaces the document wholesale; otherwise
// each masked field is copied from updatedState when present, and
// removed from the working document when absent there.
func mergeState(currentState, updatedState objects.CompleteState, updateMask []string) (objects.CompleteState, UpdateStateError) {
	if len(updateMask) == 0 {
		return updatedState, nil
	}

	working, err := statedoc.FromCompleteState(currentState)
	if err != nil {
		return objects.CompleteState{}, ResultInvalidError{Reason: fmt.Sprintf("parse current state: %s", err)}
	}

	fromUpdate, err := statedoc.FromCompleteState(updatedState)
	if err != nil {
		return objects.CompleteState{}, ResultInvalidError{Reason: fmt.Sprintf("parse new state: %s", err)}
	}

	for _, field := range updateMask {
		path := statedoc.NewPath(field)

		if value, ok := fromUpdate.Get(path); ok {
			if err := working.Set(path, value); err != nil {
				return objects.CompleteState{}, FieldNotFoundError{Field: field}
			}
			continue
		}

		if err := working.Remove(path); err != nil {
			return objects.CompleteState{}, FieldNotFoundError{Field: field}
		}
	}

	merged, err := statedoc.ToCompleteState(working)
	if err != nil {
		return objects.CompleteState{}, ResultInvalidError{Reason: "could not parse into complete state"}
	}

	return merged, nil
}
