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

	"blockarchitech.com/remindernodes/internal/params"
	"blockarchitech.com/remindernodes/internal/request"
	"blockarchitech.com/remindernodes/internal/types/reminders"
)

// WebhooksNodeName is the host name of the Webhooks module.
const WebhooksNodeName = "remindersWebhook"

var webhookAliases = params.Aliases{
	"listNames":      {"lists"},
	"listUUIDs":      {"listIds"},
	"priorityLevels": {"priorities"},
	"hasQuery":       {"textFilter", "query"},
}

// NewWebhooks builds the Webhooks module: subscription CRUD and test delivery.
// Webhook objects are not reminders, so results are emitted unenriched.
func NewWebhooks(deps Deps) Node {
	d := newDispatcher(WebhooksNodeName, "Manage webhook subscriptions for reminder changes", deps)
	d.schema = webhooksSchema
	d.aliases = webhookAliases
	for _, op := range []string{
		request.OpList, request.OpGet, request.OpCreate,
		request.OpUpdate, request.OpDelete, request.OpTest,
	} {
		d.operations[op] = runWebhook
	}
	return d
}

func runWebhook(ctx context.Context, c *Call) (any, error) {
	in := request.WebhookInput{
		WebhookID: c.String("webhookId", ""),
		URL:       c.String("url", ""),
		Name:      c.String("name", ""),
		IsActive:  boolPtr(c.Value("isActive", nil)),
	}
	if c.Operation == request.OpCreate || c.Operation == request.OpUpdate {
		in.Filter = webhookFilter(c)
	}

	req, err := request.BuildWebhook(c.Operation, in)
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if c.Operation == request.OpDelete {
		return ack{"success": true, "webhookId": in.WebhookID}, nil
	}
	return resp, nil
}

// webhookFilter reads each filter field from the payload (aliases included)
// and host, then from the filterOptions collection. A completed value of
// "all" means no constraint and is left out.
func webhookFilter(c *Call) reminders.WebhookFilter {
	opts := c.Collection("filterOptions")
	value := func(name string) any {
		candidates := []any{c.Value(name, nil), opts[name]}
		for _, alias := range webhookAliases[name] {
			candidates = append(candidates, opts[alias])
		}
		return coalesce(candidates...)
	}

	f := reminders.WebhookFilter{
		ListNames:      request.StringList(value("listNames")),
		ListUUIDs:      request.StringList(value("listUUIDs")),
		PriorityLevels: request.IntList(value("priorityLevels")),
		HasQuery:       params.String(value("hasQuery")),
	}
	if completed := params.String(value("completed")); completed != "all" {
		f.Completed = completed
	}
	return f
}
