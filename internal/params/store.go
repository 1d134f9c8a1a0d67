/*
 *    Copyright 2025 blockarchitech
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package params

import (
	"errors"
	"strings"
)

// ErrNotConfigured is returned by a Store when a parameter has no value for
// the current item. Resolvers treat it as "not found".
var ErrNotConfigured = errors.New("parameter not configured")

// Store is the host's per-node configuration, evaluated per input item.
type Store interface {
	NodeParameter(name string, itemIndex int) (any, error)
}

// StoreFunc adapts a function to Store.
type StoreFunc func(name string, itemIndex int) (any, error)

func (f StoreFunc) NodeParameter(name string, itemIndex int) (any, error) {
	return f(name, itemIndex)
}

// MapStore serves node configuration from plain maps. Items holds per-item
// overrides indexed like the input items; Base applies to every item.
// Dotted names such as "filterOptions.listNames" walk nested maps.
type MapStore struct {
	Base  map[string]any
	Items []map[string]any
}

func (s MapStore) NodeParameter(name string, itemIndex int) (any, error) {
	if itemIndex >= 0 && itemIndex < len(s.Items) {
		if v, ok := lookupPath(s.Items[itemIndex], name); ok {
			return v, nil
		}
	}
	if v, ok := lookupPath(s.Base, name); ok {
		return v, nil
	}
	return nil, ErrNotConfigured
}

func lookupPath(m map[string]any, name string) (any, bool) {
	if m == nil {
		return nil, false
	}
	if v, ok := m[name]; ok && v != nil {
		return v, true
	}
	head, rest, found := strings.Cut(name, ".")
	if !found {
		return nil, false
	}
	inner, ok := m[head].(map[string]any)
	if !ok {
		return nil, false
	}
	return lookupPath(inner, rest)
}
