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
	"time"

	"blockarchitech.com/remindernodes/internal/params"
	"blockarchitech.com/remindernodes/internal/request"
	"go.uber.org/zap"
)

// Call is the per-item execution context handed to an operation.
type Call struct {
	Index     int
	Operation string
	Input     map[string]any
	Now       time.Time

	resolver *params.Resolver
	store    params.Store
	client   Doer
	logger   *zap.Logger
}

// Value resolves field through the payload, aliases and host configuration.
func (c *Call) Value(field string, def any) any {
	return c.resolver.Resolve(field, c.Index, c.Input, def)
}

// Lookup resolves field and reports where the value came from.
func (c *Call) Lookup(field string) (any, params.Source) {
	return c.resolver.Lookup(field, c.Index, c.Input)
}

// String resolves field as a string.
func (c *Call) String(field string, def any) string {
	return params.String(c.Value(field, def))
}

// Bool resolves field as a boolean. Non-boolean values fall back to truthiness.
func (c *Call) Bool(field string, def bool) bool {
	v := c.Value(field, nil)
	if v == nil {
		return def
	}
	return flag(v)
}

// Collection resolves an object-valued field such as additionalFields.
func (c *Call) Collection(name string) map[string]any {
	return params.Map(c.Value(name, nil))
}

// HostParameter reads the host configuration directly, bypassing the payload.
func (c *Call) HostParameter(name string) (any, bool) {
	if c.store == nil {
		return nil, false
	}
	v, err := c.store.NodeParameter(name, c.Index)
	if err != nil || v == nil {
		return nil, false
	}
	return v, true
}

// Do sends req through the node's client.
func (c *Call) Do(ctx context.Context, req *request.OperationRequest) (any, error) {
	c.logger.Debug("Dispatching request",
		zap.Int("item", c.Index),
		zap.String("operation", c.Operation),
		zap.Stringer("request", req),
	)
	return c.client.Do(ctx, req)
}

// coalesce returns the first value that is neither nil nor "". Unlike
// params.First it keeps false and 0.
func coalesce(values ...any) any {
	for _, v := range values {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		return v
	}
	return nil
}

func boolPtr(v any) *bool {
	if b, ok := params.Bool(v); ok {
		return &b
	}
	return nil
}

func intPtr(v any) *int {
	if n, ok := params.Int(v); ok {
		return &n
	}
	return nil
}

// flag reads v as a boolean, accepting "true"/"false" strings before
// falling back to truthiness.
func flag(v any) bool {
	if b, ok := params.Bool(v); ok {
		return b
	}
	return params.Truthy(v)
}
