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

// Package enrich adds derived convenience fields to reminder objects
// returned by the Reminders API.
package enrich

import (
	"encoding/json"
	"time"

	"blockarchitech.com/remindernodes/internal/params"
	"blockarchitech.com/remindernodes/internal/utils"
)

// Derived field names. They are always overwritten, never read.
const (
	FieldHasAttachments = "hasAttachments"
	FieldPriorityLevel  = "priorityLevel"
	FieldIsOverdue      = "isOverdue"
	FieldHasParent      = "hasParent"
	FieldHasSubtasks    = "hasSubtasks"
)

// Priority bucket names.
const (
	LevelNone    = "none"
	LevelLow     = "low"
	LevelMedium  = "medium"
	LevelHigh    = "high"
	LevelUnknown = "unknown"
)

// Reminder returns a copy of raw with the derived fields added. It reads only
// raw fields, so enriching an enriched object yields the same derived values.
// isOverdue does not look at isCompleted: a completed reminder with a past due
// date is still overdue.
func Reminder(raw map[string]any, now time.Time) map[string]any {
	out := make(map[string]any, len(raw)+5)
	for k, v := range raw {
		out[k] = v
	}
	out[FieldHasAttachments] = params.Truthy(raw["attachedUrl"]) || params.Truthy(raw["mailUrl"])
	out[FieldPriorityLevel] = PriorityLevel(raw["priority"])
	out[FieldIsOverdue] = isOverdue(raw["dueDate"], now)
	out[FieldHasParent] = params.Truthy(raw["parentId"])
	out[FieldHasSubtasks] = false
	return out
}

// PriorityLevel buckets a 0-9 priority: 0 none, 1-3 low, 4-6 medium,
// 7-9 high. Anything else, including strings, is unknown.
func PriorityLevel(v any) string {
	var p float64
	switch t := v.(type) {
	case float64:
		p = t
	case int:
		p = float64(t)
	case int64:
		p = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return LevelUnknown
		}
		p = f
	default:
		return LevelUnknown
	}
	switch {
	case p == 0:
		return LevelNone
	case p >= 1 && p <= 3:
		return LevelLow
	case p >= 4 && p <= 6:
		return LevelMedium
	case p >= 7 && p <= 9:
		return LevelHigh
	}
	return LevelUnknown
}

func isOverdue(due any, now time.Time) bool {
	s, ok := due.(string)
	if !ok || s == "" {
		return false
	}
	t, err := utils.ParseDate(s)
	if err != nil {
		return false
	}
	return t.Before(now)
}

// Value enriches v when it is an object and returns anything else unchanged.
func Value(v any, now time.Time) any {
	if m, ok := v.(map[string]any); ok {
		return Reminder(m, now)
	}
	return v
}
