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

package request

import (
	"net/http"

	"blockarchitech.com/remindernodes/internal/domain"
	"blockarchitech.com/remindernodes/internal/types/reminders"
)

// WebhookInput carries the resolved parameters of the Webhooks module.
type WebhookInput struct {
	WebhookID string
	URL       string
	Name      string
	IsActive  *bool
	Filter    reminders.WebhookFilter
}

// BuildWebhook builds the request for a Webhooks operation.
func BuildWebhook(op string, in WebhookInput) (*OperationRequest, error) {
	switch op {
	case OpList:
		return New(http.MethodGet, "/webhooks"), nil

	case OpCreate:
		if in.URL == "" {
			return nil, domain.NewMissingRequiredField("url", op)
		}
		if in.Name == "" {
			return nil, domain.NewMissingRequiredField("name", op)
		}
		return New(http.MethodPost, "/webhooks").WithBody(webhookBody(in)), nil

	case OpGet, OpUpdate, OpDelete, OpTest:
		if in.WebhookID == "" {
			return nil, domain.NewMissingRequiredField("webhookId", op)
		}
	default:
		return nil, domain.NewUnknownOperation("webhooks", op)
	}

	switch op {
	case OpGet:
		return webhookPath(http.MethodGet, "/webhooks/{id}", in.WebhookID), nil
	case OpUpdate:
		return webhookPath(http.MethodPatch, "/webhooks/{id}", in.WebhookID).WithBody(webhookBody(in)), nil
	case OpDelete:
		return webhookPath(http.MethodDelete, "/webhooks/{id}", in.WebhookID), nil
	default:
		return webhookPath(http.MethodPost, "/webhooks/{id}/test", in.WebhookID), nil
	}
}

func webhookPath(method, path, id string) *OperationRequest {
	return New(method, path).WithParam("id", id)
}

// webhookBody is sparse: the filter is attached only when it constrains something.
func webhookBody(in WebhookInput) map[string]any {
	body := Compact(map[string]any{
		"url":  in.URL,
		"name": in.Name,
	})
	if in.IsActive != nil {
		body["isActive"] = *in.IsActive
	}
	if !in.Filter.IsEmpty() {
		body["filter"] = in.Filter
	}
	return body
}
