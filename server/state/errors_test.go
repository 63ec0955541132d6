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
	"testing"

	"github.com/stretchr/testify/require"
)

// updateStateErrorKinds is the exhaustive set of concrete types
// implementing UpdateStateError, kept by hand. Every kind listed here
// must have a case in the switch below, or the default branch fails
// the test; a kind added to errors.go but not listed here is not
// checked at all.
var updateStateErrorKinds = []UpdateStateError{
	FieldNotFoundError{Field: "currentState.workloads.web"},
	ResultInvalidError{Reason: "malformed document"},
	CycleInDependenciesError{WorkloadName: "web"},
}

func TestUpdateStateErrorKindsAreExhaustive(t *testing.T) {
	for _, err := range updateStateErrorKinds {
		switch e := err.(type) {
		case FieldNotFoundError:
			require.NotEmpty(t, e.Field)
		case ResultInvalidError:
			require.NotEmpty(t, e.Reason)
		case CycleInDependenciesError:
			require.NotEmpty(t, e.WorkloadName)
		default:
			t.Fatalf("unhandled UpdateStateError kind: %T", err)
		}
		require.NotEmpty(t, err.Error())
	}
}
