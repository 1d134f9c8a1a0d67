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

// Package nodes implements the Reminders resource modules (Lists, Tasks,
// Search, Webhooks, AI Tool) and the per-item operation dispatcher they share.
package nodes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blockarchitech.com/remindernodes/internal/domain"
	"blockarchitech.com/remindernodes/internal/enrich"
	"blockarchitech.com/remindernodes/internal/models"
	"blockarchitech.com/remindernodes/internal/params"
	"blockarchitech.com/remindernodes/internal/request"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Doer performs Reminders API requests. *service.RemindersService implements it.
type Doer interface {
	Do(ctx context.Context, req *request.OperationRequest) (any, error)
}

// Invocation is one host execution of a node over a batch of items.
type Invocation struct {
	Items          []models.Item
	Parameters     params.Store
	ContinueOnFail bool
}

// Node is an executable resource module.
type Node interface {
	Name() string
	Description() string
	Schema() Schema
	Execute(ctx context.Context, inv Invocation) ([]models.Item, error)
}

// Deps are the collaborators every node needs.
type Deps struct {
	Client Doer
	Logger *zap.Logger
	Tracer trace.Tracer
	Now    func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Tracer == nil {
		d.Tracer = noop.NewTracerProvider().Tracer("remindernodes")
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

type operationFunc func(ctx context.Context, c *Call) (any, error)

// ack marks confirmation results. They are emitted as-is, never enriched.
type ack map[string]any

type dispatcher struct {
	name        string
	description string
	schema      Schema
	aliases     params.Aliases
	operations  map[string]operationFunc

	// fixedOperation, when set, replaces the operation lookup.
	fixedOperation string
	// operationField is the input key naming the operation.
	operationField string
	enrich         bool

	// unknown handles operations outside the table; nil means UnknownOperationError.
	unknown   operationFunc
	errorItem func(c *Call, err error) map[string]any

	client Doer
	logger *zap.Logger
	tracer trace.Tracer
	now    func() time.Time
}

func newDispatcher(name, description string, deps Deps) *dispatcher {
	deps = deps.withDefaults()
	return &dispatcher{
		name:           name,
		description:    description,
		operations:     map[string]operationFunc{},
		operationField: "operation",
		errorItem:      defaultErrorItem,
		client:         deps.Client,
		logger:         deps.Logger.Named(name),
		tracer:         deps.Tracer,
		now:            deps.Now,
	}
}

func (d *dispatcher) Name() string        { return d.name }
func (d *dispatcher) Description() string { return d.description }
func (d *dispatcher) Schema() Schema      { return d.schema }

// Execute processes items strictly in order, one at a time. With
// ContinueOnFail a failing item becomes an error-shaped output item;
// otherwise the batch stops and the items emitted so far are returned with
// the error.
func (d *dispatcher) Execute(ctx context.Context, inv Invocation) ([]models.Item, error) {
	ctx, span := d.tracer.Start(ctx, d.name+".Execute",
		trace.WithAttributes(attribute.Int("node.items", len(inv.Items))))
	defer span.End()

	resolver := params.NewResolver(inv.Parameters, d.aliases)
	out := make([]models.Item, 0, len(inv.Items))

	for i, item := range inv.Items {
		input := item.JSON
		if input == nil {
			input = map[string]any{}
		}
		c := &Call{
			Index:    i,
			Input:    input,
			Now:      d.now(),
			resolver: resolver,
			store:    inv.Parameters,
			client:   d.client,
			logger:   d.logger,
		}
		c.Operation = d.operation(c)

		results, err := d.runItem(ctx, c)
		if err != nil {
			if inv.ContinueOnFail {
				d.logger.Warn("Item failed, continuing",
					zap.Int("item", i), zap.String("operation", c.Operation), zap.Error(err))
				out = append(out, models.NewItem(d.errorItem(c, err), i))
				continue
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, "item failed")
			return out, fmt.Errorf("%s item %d: %w", d.name, i, err)
		}
		out = append(out, results...)
	}
	return out, nil
}

func (d *dispatcher) operation(c *Call) string {
	if d.fixedOperation != "" {
		return d.fixedOperation
	}
	if op := params.String(c.Input[d.operationField]); op != "" {
		return op
	}
	if c.store != nil {
		if v, err := c.store.NodeParameter(d.operationField, c.Index); err == nil {
			return params.String(v)
		}
	}
	return ""
}

func (d *dispatcher) runItem(ctx context.Context, c *Call) ([]models.Item, error) {
	fn, ok := d.operations[c.Operation]
	if !ok {
		if d.unknown == nil {
			return nil, domain.NewUnknownOperation(d.name, c.Operation)
		}
		fn = d.unknown
	}

	ctx, span := d.tracer.Start(ctx, d.name+"."+c.Operation,
		trace.WithAttributes(attribute.Int("node.item", c.Index)))
	defer span.End()

	result, err := fn(ctx, c)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return d.shape(c, result), nil
}

// shape fans arrays out into one item each, enriches objects when the module
// asks for it and turns an empty result into a success marker.
func (d *dispatcher) shape(c *Call, result any) []models.Item {
	switch t := result.(type) {
	case nil:
		return []models.Item{models.NewItem(map[string]any{"success": true, "operation": c.Operation}, c.Index)}
	case ack:
		return []models.Item{models.NewItem(map[string]any(t), c.Index)}
	case []any:
		items := make([]models.Item, 0, len(t))
		for _, e := range t {
			items = append(items, models.NewItem(d.object(e, c.Now), c.Index))
		}
		return items
	default:
		return []models.Item{models.NewItem(d.object(t, c.Now), c.Index)}
	}
}

func (d *dispatcher) object(v any, now time.Time) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		m = toObject(v)
	}
	if d.enrich && ok {
		return enrich.Reminder(m, now)
	}
	return m
}

// toObject converts structs to JSON objects and wraps scalars as {"value": v}.
func toObject(v any) map[string]any {
	b, err := json.Marshal(v)
	if err == nil {
		var m map[string]any
		if json.Unmarshal(b, &m) == nil && m != nil {
			return m
		}
	}
	return map[string]any{"value": v}
}

func defaultErrorItem(_ *Call, err error) map[string]any {
	return map[string]any{"error": err.Error()}
}

// asArray returns v as a JSON array, or an empty one for anything else.
func asArray(v any) []any {
	if arr, ok := v.([]any); ok {
		return arr
	}
	return []any{}
}
