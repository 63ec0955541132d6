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

import "fmt"

// UpdateStateError is the closed set of ways Manager.Update can fail.
// It is a sum type realized as an interface implemented by three
// struct kinds; updateStateErrorKinds in errors_test.go lists them and
// checks that the test's own type switch covers each one.
type UpdateStateError interface {
	error
	updateStateError()
}

// FieldNotFoundError means the update mask referenced a path that
// could not be set or removed in the working document.
type FieldNotFoundError struct {
	Field string
}

func (e FieldNotFoundError) Error() string {
	return fmt.Sprintf("could not find field %q", e.Field)
}

func (FieldNotFoundError) updateStateError() {}

// ResultInvalidError means the document assembled after a merge or
// projection could not be parsed back into a CompleteState.
type ResultInvalidError struct {
	Reason string
}

func (e ResultInvalidError) Error() string {
	return fmt.Sprintf("resulting state is invalid: %s", e.Reason)
}

func (ResultInvalidError) updateStateError() {}

// CycleInDependenciesError means the accepted new state would introduce
// a dependency cycle; WorkloadName names a workload on that cycle.
type CycleInDependenciesError struct {
	WorkloadName string
}

func (e CycleInDependenciesError) Error() string {
	return fmt.Sprintf("workload dependency %q is part of a cycle", e.WorkloadName)
}

func (CycleInDependenciesError) updateStateError() {}
