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
	"blockarchitech.com/remindernodes/internal/utils"
)

// ReminderInput carries the resolved parameters of the Tasks module.
// Priority is a word (none/low/medium/high) or a number on the 0-9 scale.
// IsCompleted is only sent on update and only when non-nil.
type ReminderInput struct {
	ReminderID       string
	ListName         string
	NewListName      string
	Title            string
	Notes            string
	DueDate          string
	StartDate        string
	Priority         any
	IsCompleted      *bool
	ParentID         string
	AttachedURL      string
	IncludeCompleted bool
}

// BuildReminder builds the request for a Tasks operation.
func BuildReminder(op string, in ReminderInput) (*OperationRequest, error) {
	switch op {
	case OpGetAll:
		return GetReminders(in.IncludeCompleted, 0), nil

	case OpGet:
		if in.ReminderID == "" {
			return nil, domain.NewMissingRequiredField("reminderId", op)
		}
		return reminderPath(http.MethodGet, "/reminders/{uuid}", in.ReminderID), nil

	case OpCreate, OpCreateSubtask:
		if in.Title == "" {
			return nil, domain.NewMissingRequiredField("title", op)
		}
		if op == OpCreateSubtask && in.ParentID == "" {
			return nil, domain.NewMissingRequiredField("parentId", op)
		}
		if in.ListName == "" {
			return nil, domain.NewMissingRequiredField("listName", op)
		}
		body := reminderBody(in)
		if op == OpCreateSubtask {
			body["parentId"] = in.ParentID
		}
		return New(http.MethodPost, "/lists/{identifier}/reminders").
			WithParam("identifier", in.ListName).
			WithBody(body), nil

	case OpUpdate:
		if in.ReminderID == "" {
			return nil, domain.NewMissingRequiredField("reminderId", op)
		}
		body := reminderBody(in)
		if in.IsCompleted != nil {
			body["isCompleted"] = *in.IsCompleted
		}
		if in.NewListName != "" {
			body["list"] = in.NewListName
		}
		return reminderPath(http.MethodPatch, "/reminders/{uuid}", in.ReminderID).WithBody(body), nil

	case OpDelete:
		if in.ReminderID == "" {
			return nil, domain.NewMissingRequiredField("reminderId", op)
		}
		return reminderPath(http.MethodDelete, "/reminders/{uuid}", in.ReminderID), nil

	case OpComplete, OpUncomplete:
		if in.ReminderID == "" {
			return nil, domain.NewMissingRequiredField("reminderId", op)
		}
		return reminderPath(http.MethodPatch, "/reminders/{uuid}/"+op, in.ReminderID), nil
	}
	return nil, domain.NewUnknownOperation("tasks", op)
}

func reminderPath(method, path, id string) *OperationRequest {
	return New(method, path).WithParam("uuid", id)
}

// reminderBody holds the writable fields shared by create and update, sparse.
func reminderBody(in ReminderInput) map[string]any {
	body := map[string]any{
		"title":       in.Title,
		"notes":       in.Notes,
		"dueDate":     utils.NormalizeDate(in.DueDate),
		"startDate":   utils.NormalizeDate(in.StartDate),
		"attachedUrl": in.AttachedURL,
	}
	if p, ok := MapPriority(in.Priority); ok {
		body["priority"] = p
	}
	return Compact(body)
}
