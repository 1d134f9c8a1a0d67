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

package nodes

import (
	"context"
	"fmt"
	"sort"

	"blockarchitech.com/remindernodes/internal/models"
)

// shortNames lets CLI and HTTP callers address nodes without the host prefix.
var shortNames = map[string]string{
	"list":    ListsNodeName,
	"lists":   ListsNodeName,
	"task":    TasksNodeName,
	"tasks":   TasksNodeName,
	"search":  SearchNodeName,
	"webhook": WebhooksNodeName,
	"ai":      AIToolNodeName,
}

// Registry holds the five resource modules keyed by host name.
type Registry struct {
	nodes map[string]Node
}

// NewRegistry builds every resource module over the same dependencies.
func NewRegistry(deps Deps) *Registry {
	r := &Registry{nodes: map[string]Node{}}
	for _, n := range []Node{
		NewLists(deps),
		NewTasks(deps),
		NewSearch(deps),
		NewWebhooks(deps),
		NewAITool(deps),
	} {
		r.nodes[n.Name()] = n
	}
	return r
}

// Get finds a node by host name or short name.
func (r *Registry) Get(name string) (Node, bool) {
	if full, ok := shortNames[name]; ok {
		name = full
	}
	n, ok := r.nodes[name]
	return n, ok
}

// All returns the nodes sorted by name.
func (r *Registry) All() []Node {
	out := make([]Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Execute runs the named node over inv.
func (r *Registry) Execute(ctx context.Context, name string, inv Invocation) ([]models.Item, error) {
	n, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("node %s not registered", name)
	}
	return n.Execute(ctx, inv)
}
