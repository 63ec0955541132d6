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
	"errors"
	"strconv"
)

// ErrPathNotFound is returned by Set and Remove when a path segment
// traverses into something that is neither a map nor a sequence, or
// removes a key that was never there.
var ErrPathNotFound = errors.New("statedoc: path not found")

// Object is a generic structured document: the decoding of a YAML
// mapping into Go's usual map[string]any / []any / scalar shapes.
type Object struct {
	root any
}

// NewObject wraps an already-decoded document, e.g. the result of
// yaml.Unmarshal into an any.
func NewObject(root any) Object {
	return Object{root: root}
}

// Empty returns a freshly initialized Object with an empty mapping
// root, the starting point for building up a projection field by field.
func Empty() Object {
	return Object{root: map[string]any{}}
}

// Root returns the underlying decoded document.
func (o Object) Root() any {
	return o.root
}

// Get returns the value addressed by path and whether it was present.
// An empty path returns the whole document.
func (o Object) Get(path Path) (any, bool) {
	cur := o.root
	for _, seg := range path {
		next, ok := step(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Set writes value at path, creating intermediate mappings as needed.
// It fails with ErrPathNotFound if an intermediate segment already
// holds something that is neither a map nor a sequence of the right
// shape to keep descending into.
func (o *Object) Set(path Path, value any) error {
	if path.IsEmpty() {
		o.root = value
		return nil
	}

	root, err := setAt(o.root, path, value)
	if err != nil {
		return err
	}
	o.root = root
	return nil
}

// Remove deletes the value at path. It fails with ErrPathNotFound if
// any segment along the way is not a mapping, or the final key is not
// present.
func (o *Object) Remove(path Path) error {
	if path.IsEmpty() {
		o.root = nil
		return nil
	}

	root, err := removeAt(o.root, path)
	if err != nil {
		return err
	}
	o.root = root
	return nil
}

func step(cur any, seg string) (any, bool) {
	switch v := cur.(type) {
	case map[string]any:
		val, ok := v[seg]
		return val, ok
	case []any:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(v) {
			return nil, false
		}
		return v[idx], true
	default:
		return nil, false
	}
}

func setAt(cur any, path Path, value any) (any, error) {
	seg, rest := path[0], path[1:]

	if seq, ok := cur.([]any); ok {
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(seq) {
			return nil, ErrPathNotFound
		}
		if len(rest) == 0 {
			seq[idx] = value
			return seq, nil
		}
		child, err := setAt(seq[idx], rest, value)
		if err != nil {
			return nil, err
		}
		seq[idx] = child
		return seq, nil
	}

	m, ok := cur.(map[string]any)
	if !ok {
		if cur != nil {
			return nil, ErrPathNotFound
		}
		m = map[string]any{}
	}

	if len(rest) == 0 {
		m[seg] = value
		return m, nil
	}

	child, err := setAt(m[seg], rest, value)
	if err != nil {
		return nil, err
	}
	m[seg] = child
	return m, nil
}

func removeAt(cur any, path Path) (any, error) {
	seg, rest := path[0], path[1:]

	m, ok := cur.(map[string]any)
	if !ok {
		return nil, ErrPathNotFound
	}

	if len(rest) == 0 {
		if _, ok := m[seg]; !ok {
			return nil, ErrPathNotFound
		}
		delete(m, seg)
		return m, nil
	}

	child, err := removeAt(m[seg], rest)
	if err != nil {
		return nil, err
	}
	m[seg] = child
	return m, nil
}
