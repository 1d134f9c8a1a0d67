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
	"strconv"
	"strings"

	"blockarchitech.com/remindernodes/internal/params"
	"blockarchitech.com/remindernodes/internal/utils"
)

const (
	defaultSearchLimit     = 50
	defaultSearchSortBy    = "lastModified"
	defaultSearchSortOrder = "desc"
	defaultSearchCompleted = "false"
)

// SearchInput carries the resolved parameters of the Search module.
// Tri-state filters (IsSubtask, HasAttachedURL, HasMailURL) use nil for "all".
// PriorityMin is sent only above 0 and PriorityMax only below 9.
type SearchInput struct {
	ReminderID     string
	Query          string
	Lists          []string
	ListUUIDs      []string
	Completed      string
	DueBefore      string
	DueAfter       string
	CreatedAfter   string
	ModifiedAfter  string
	HasDueDate     bool
	HasNotes       bool
	IsSubtask      *bool
	HasAttachedURL *bool
	HasMailURL     *bool
	Priority       any
	PriorityMin    *int
	PriorityMax    *int
	SortBy         string
	SortOrder      string
	Limit          int
}

// BuildSearch builds GET /search, or GET /reminders/{uuid} when a reminder
// id is given, which bypasses every other criterion.
func BuildSearch(in SearchInput) *OperationRequest {
	if in.ReminderID != "" {
		return New(http.MethodGet, "/reminders/{uuid}").WithParam("uuid", in.ReminderID)
	}

	r := New(http.MethodGet, "/search")
	q := r.Query

	setIfNotEmpty(q, "query", in.Query)
	if len(in.Lists) > 0 {
		q.Set("lists", strings.Join(in.Lists, ","))
	}
	if len(in.ListUUIDs) > 0 {
		q.Set("listUUIDs", strings.Join(in.ListUUIDs, ","))
	}

	completed := in.Completed
	if completed == "" {
		completed = defaultSearchCompleted
	}
	q.Set("completed", completed)

	setIfNotEmpty(q, "dueBefore", utils.NormalizeDate(in.DueBefore))
	setIfNotEmpty(q, "dueAfter", utils.NormalizeDate(in.DueAfter))
	setIfNotEmpty(q, "createdAfter", utils.NormalizeDate(in.CreatedAfter))
	setIfNotEmpty(q, "modifiedAfter", utils.NormalizeDate(in.ModifiedAfter))

	if in.HasDueDate {
		setBool(q, "hasDueDate", true)
	}
	if in.HasNotes {
		setBool(q, "hasNotes", true)
	}
	if in.IsSubtask != nil {
		setBool(q, "isSubtask", *in.IsSubtask)
	}
	if in.HasAttachedURL != nil {
		setBool(q, "hasAttachedUrl", *in.HasAttachedURL)
	}
	if in.HasMailURL != nil {
		setBool(q, "hasMailUrl", *in.HasMailURL)
	}

	if p, ok := PriorityFilter(in.Priority); ok {
		q.Set("priority", p)
	}
	if in.PriorityMin != nil && *in.PriorityMin > 0 {
		q.Set("priorityMin", strconv.Itoa(*in.PriorityMin))
	}
	if in.PriorityMax != nil && *in.PriorityMax < 9 {
		q.Set("priorityMax", strconv.Itoa(*in.PriorityMax))
	}

	sortBy, sortOrder, limit := in.SortBy, in.SortOrder, in.Limit
	if sortBy == "" {
		sortBy = defaultSearchSortBy
	}
	if sortOrder == "" {
		sortOrder = defaultSearchSortOrder
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	q.Set("sortBy", sortBy)
	q.Set("sortOrder", sortOrder)
	q.Set("limit", strconv.Itoa(limit))
	return r
}

// SearchWithFilters builds GET /search from a free-form filter object, as
// sent by AI agents. Arrays are comma-joined and booleans become "true"/"false".
func SearchWithFilters(query string, filters map[string]any) *OperationRequest {
	r := New(http.MethodGet, "/search")
	for k, v := range filters {
		switch t := v.(type) {
		case []any, []string:
			if list := StringList(t); len(list) > 0 {
				r.Query.Set(k, strings.Join(list, ","))
			}
		default:
			setIfNotEmpty(r.Query, k, params.String(t))
		}
	}
	setIfNotEmpty(r.Query, "query", query)
	return r
}
