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

// Package params resolves logical field values from an input payload, its
// nested params/parameters objects, registered aliases and the host's node
// configuration, in that order.
package params

// Strategy looks a field up in an input payload.
type Strategy func(payload map[string]any) (any, bool)

// Containers holding nested parameters inside an input payload, in lookup order.
var Containers = []string{"params", "parameters"}

// Flat reads payload[name].
func Flat(name string) Strategy {
	return func(payload map[string]any) (any, bool) {
		return present(payload, name)
	}
}

// Nested reads payload[container][name].
func Nested(container, name string) Strategy {
	return func(payload map[string]any) (any, bool) {
		inner, ok := payload[container].(map[string]any)
		if !ok {
			return nil, false
		}
		return present(inner, name)
	}
}

func present(m map[string]any, key string) (any, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Aliases maps a canonical field name to its alternate names, in lookup order.
type Aliases map[string][]string

// Merge returns a new table holding a's entries overlaid with b's.
func (a Aliases) Merge(b Aliases) Aliases {
	out := make(Aliases, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Source records where a resolved value came from.
type Source int

const (
	SourceNone Source = iota
	SourcePayload
	SourceHost
	SourceDefault
)

func (s Source) String() string {
	switch s {
	case SourcePayload:
		return "payload"
	case SourceHost:
		return "host"
	case SourceDefault:
		return "default"
	default:
		return "none"
	}
}

// Resolver applies the lookup order for one resource module.
type Resolver struct {
	aliases Aliases
	store   Store
}

// NewResolver binds an alias table to a host parameter store. A nil store
// behaves as one with nothing configured.
func NewResolver(store Store, aliases Aliases) *Resolver {
	if aliases == nil {
		aliases = Aliases{}
	}
	return &Resolver{aliases: aliases, store: store}
}

// Names returns field followed by its aliases.
func (r *Resolver) Names(field string) []string {
	return append([]string{field}, r.aliases[field]...)
}

// Strategies returns the payload lookups for field in priority order:
// flat, params, parameters, then the same three for each alias.
func (r *Resolver) Strategies(field string) []Strategy {
	names := r.Names(field)
	out := make([]Strategy, 0, len(names)*(1+len(Containers)))
	for _, name := range names {
		out = append(out, Flat(name))
		for _, c := range Containers {
			out = append(out, Nested(c, name))
		}
	}
	return out
}

// Lookup finds field without applying a default.
func (r *Resolver) Lookup(field string, itemIndex int, payload map[string]any) (any, Source) {
	if payload != nil {
		for _, strategy := range r.Strategies(field) {
			if v, ok := strategy(payload); ok {
				return v, SourcePayload
			}
		}
	}
	if r.store != nil {
		for _, name := range r.Names(field) {
			v, err := r.store.NodeParameter(name, itemIndex)
			if err == nil && v != nil {
				return v, SourceHost
			}
		}
	}
	return nil, SourceNone
}

// Resolve returns the effective value of field, or def when nothing matches.
func (r *Resolver) Resolve(field string, itemIndex int, payload map[string]any, def any) any {
	if v, src := r.Lookup(field, itemIndex, payload); src != SourceNone {
		return v
	}
	return def
}
