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
)

// SearchNodeName is the host name of the Search module.
const SearchNodeName = "remindersSearch"

var searchAliases = params.Aliases{
	"query":       {"search", "text"},
	"reminderId":  {"uuid", "reminderUUID"},
	"lists":       {"listNames"},
	"listUUIDs":   {"listIds"},
	"dueBefore":   {"dueBy"},
	"dueAfter":    {"dueFrom"},
	"priorityMin": {"minPriority"},
	"priorityMax": {"maxPriority"},
	"limit":       {"count", "maxResults"},
}

// NewSearch builds the Search module, a single operation over GET /search.
func NewSearch(deps Deps) Node {
	d := newDispatcher(SearchNodeName, "Search reminders by text, list, dates, flags and priority", deps)
	d.schema = searchSchema
	d.enrich = true
	d.aliases = searchAliases
	d.fixedOperation = request.OpSearch
	d.operations[request.OpSearch] = runSearch
	return d
}

func runSearch(ctx context.Context, c *Call) (any, error) {
	in := searchInput(c)
	resp, err := c.Do(ctx, request.BuildSearch(in))
	if err != nil {
		return nil, err
	}
	if in.ReminderID != "" {
		return resp, nil
	}
	return asArray(resp), nil
}

// searchInput resolves search criteria. Values missing from the payload and
// host fall back to the searchOptions collection.
func searchInput(c *Call) request.SearchInput {
	opts := c.Collection("searchOptions")
	value := func(name string) any {
		return c.Value(name, opts[name])
	}
	limit, _ := params.Int(value("limit"))

	return request.SearchInput{
		ReminderID:     c.String("reminderId", ""),
		Query:          params.String(value("query")),
		Lists:          request.StringList(value("lists")),
		ListUUIDs:      request.StringList(value("listUUIDs")),
		Completed:      params.String(value("completed")),
		DueBefore:      params.String(value("dueBefore")),
		DueAfter:       params.String(value("dueAfter")),
		CreatedAfter:   params.String(value("createdAfter")),
		ModifiedAfter:  params.String(value("modifiedAfter")),
		HasDueDate:     flag(value("hasDueDate")),
		HasNotes:       flag(value("hasNotes")),
		IsSubtask:      boolPtr(value("isSubtask")),
		HasAttachedURL: boolPtr(value("hasAttachedUrl")),
		HasMailURL:     boolPtr(value("hasMailUrl")),
		Priority:       value("priority"),
		PriorityMin:    intPtr(value("priorityMin")),
		PriorityMax:    intPtr(value("priorityMax")),
		SortBy:         params.String(value("sortBy")),
		SortOrder:      params.String(value("sortOrder")),
		Limit:          limit,
	}
}
