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

// Package listsearch answers interactive list pickers from GET /lists.
package listsearch

import (
	"context"
	"net/url"
	"strings"

	"blockarchitech.com/remindernodes/internal/params"
	"blockarchitech.com/remindernodes/internal/request"
	"blockarchitech.com/remindernodes/internal/types/reminders"
	"go.uber.org/zap"
)

// Client performs Reminders API requests.
type Client interface {
	Do(ctx context.Context, req *request.OperationRequest) (any, error)
}

// SearchItem is one selectable list.
type SearchItem struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	URL   string `json:"url,omitempty"`
}

// Result is the picker payload.
type Result struct {
	Results []SearchItem `json:"results"`
}

// Provider looks lists up on every call; nothing is cached.
type Provider struct {
	client Client
	logger *zap.Logger
}

func NewProvider(client Client, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{client: client, logger: logger.Named("listsearch")}
}

// Search returns the lists whose name contains filter, ignoring case. An
// empty filter returns every list. Fetch failures yield an empty result.
func (p *Provider) Search(ctx context.Context, filter string) Result {
	out := Result{Results: []SearchItem{}}

	resp, err := p.client.Do(ctx, request.GetAllLists())
	if err != nil {
		p.logger.Warn("Failed to load lists for search", zap.String("filter", filter), zap.Error(err))
		return out
	}
	entries, _ := resp.([]any)

	needle := strings.ToLower(filter)
	for _, entry := range entries {
		name := reminders.ListDisplayName(entry)
		if name == "" {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(name), needle) {
			continue
		}
		out.Results = append(out.Results, SearchItem{Name: name, Value: name, URL: listURL(entry, name)})
	}
	return out
}

func listURL(entry any, name string) string {
	if m, ok := entry.(map[string]any); ok {
		if id := params.String(m["uuid"]); id != "" {
			return "/lists/" + url.PathEscape(id)
		}
	}
	return "/lists/" + url.PathEscape(name)
}
