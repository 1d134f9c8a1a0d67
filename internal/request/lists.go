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

	"blockarchitech.com/remindernodes/internal/domain"
)

// ListInput carries the resolved parameters of the Lists module.
type ListInput struct {
	ListName         string
	IncludeCompleted bool
}

// GetAllLists builds GET /lists.
func GetAllLists() *OperationRequest {
	return New(http.MethodGet, "/lists")
}

// GetListReminders builds GET /lists/{identifier}?completed=.
func GetListReminders(in ListInput) (*OperationRequest, error) {
	if in.ListName == "" {
		return nil, domain.NewMissingRequiredField("listName", OpGetListReminders)
	}
	r := New(http.MethodGet, "/lists/{identifier}").WithParam("identifier", in.ListName)
	setBool(r.Query, "completed", in.IncludeCompleted)
	return r, nil
}

// GetReminders builds GET /reminders with an optional limit (0 means none).
func GetReminders(includeCompleted bool, limit int) *OperationRequest {
	r := New(http.MethodGet, "/reminders")
	setBool(r.Query, "completed", includeCompleted)
	if limit > 0 {
		r.Query.Set("limit", strconv.Itoa(limit))
	}
	return r
}
