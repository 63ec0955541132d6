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

package statedoc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacechunks/fleetd/statedoc"
)

func TestObjectGetSet(t *testing.T) {
	obj := statedoc.Empty()

	require.NoError(t, obj.Set(statedoc.NewPath("currentState.workloads.web.agent"), "agent-1"))

	val, ok := obj.Get(statedoc.NewPath("currentState.workloads.web.agent"))
	require.True(t, ok)
	require.Equal(t, "agent-1", val)

	_, ok = obj.Get(statedoc.NewPath("currentState.workloads.db.agent"))
	require.False(t, ok)
}

func TestObjectGetWholeDocument(t *testing.T) {
	obj := statedoc.NewObject(map[string]any{"a": 1})
	val, ok := obj.Get(nil)
	require.True(t, ok)
	require.Equal(t, map[string]any{"a": 1}, val)
}

func TestObjectSetOnScalarFails(t *testing.T) {
	obj := statedoc.NewObject("a plain string")
	err := obj.Set(statedoc.NewPath("a.b"), 1)
	require.ErrorIs(t, err, statedoc.ErrPathNotFound)
}

func TestObjectRemove(t *testing.T) {
	obj := statedoc.NewObject(map[string]any{
		"currentState": map[string]any{
			"workloads": map[string]any{
				"web": "spec",
			},
		},
	})

	require.NoError(t, obj.Remove(statedoc.NewPath("currentState.workloads.web")))

	_, ok := obj.Get(statedoc.NewPath("currentState.workloads.web"))
	require.False(t, ok)
}

func TestObjectRemoveMissingFails(t *testing.T) {
	obj := statedoc.Empty()
	err := obj.Remove(statedoc.NewPath("currentState.workloads.web"))
	require.ErrorIs(t, err, statedoc.ErrPathNotFound)
}

func TestObjectRemoveWholeDocument(t *testing.T) {
	obj := statedoc.NewObject(map[string]any{"a": 1})
	require.NoError(t, obj.Remove(nil))
	require.Nil(t, obj.Root())
}

func TestObjectSequenceIndex(t *testing.T) {
	obj := statedoc.NewObject(map[string]any{
		"items": []any{"first", "second"},
	})

	val, ok := obj.Get(statedoc.NewPath("items.1"))
	require.True(t, ok)
	require.Equal(t, "second", val)

	_, ok = obj.Get(statedoc.NewPath("items.5"))
	require.False(t, ok)
}
