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
	"strconv"
	"strings"

	"blockarchitech.com/remindernodes/internal/params"
	"blockarchitech.com/remindernodes/internal/types/reminders"
	"blockarchitech.com/remindernodes/internal/utils"
)

var priorityWords = map[string]int{
	"low":    reminders.PriorityLow,
	"medium": reminders.PriorityMedium,
	"high":   reminders.PriorityHigh,
}

// ListIdentifier normalizes a list reference: a plain string, or a selector
// object from list search, read as .value, then .name, then .uuid.
func ListIdentifier(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		for _, key := range []string{"value", "name", "uuid"} {
			if s := params.String(t[key]); s != "" {
				return s
			}
		}
	}
	return ""
}

// MapPriority converts a priority for a request body. Words map to the 0-9
// scale (low 1, medium 5, high 9); "none" and empty values are omitted
// (ok is false). Numbers pass through unchanged and numeric strings become
// numbers. Any other string is forwarded for the server to reject.
func MapPriority(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case string:
		word := strings.ToLower(strings.TrimSpace(t))
		if word == "" || word == "none" {
			return nil, false
		}
		if n, ok := priorityWords[word]; ok {
			return n, true
		}
		if n, err := strconv.Atoi(word); err == nil {
			return n, true
		}
		return t, true
	default:
		if _, ok := params.Number(t); ok {
			return t, true
		}
		return nil, false
	}
}

// PriorityFilter converts a priority for the search query, where "none" is a
// real filter value (0) rather than an omission.
func PriorityFilter(v any) (string, bool) {
	if s, ok := v.(string); ok && strings.EqualFold(strings.TrimSpace(s), "none") {
		return strconv.Itoa(reminders.PriorityNone), true
	}
	mapped, ok := MapPriority(v)
	if !ok {
		return "", false
	}
	return params.String(mapped), true
}

// StringList normalizes an array-valued field given as a native array or a
// comma-separated string. Elements are trimmed and empties dropped.
func StringList(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return utils.SplitAndTrim(t, ",")
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s := strings.TrimSpace(params.String(e)); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// IntList normalizes priority-level style fields: a single number, an array
// of numbers, or a comma-separated string. Non-numeric elements are dropped.
func IntList(v any) []int {
	var raw []any
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		raw = t
	case []int:
		return append([]int(nil), t...)
	case string:
		for _, s := range utils.SplitAndTrim(t, ",") {
			raw = append(raw, s)
		}
	default:
		raw = []any{t}
	}
	out := make([]int, 0, len(raw))
	for _, e := range raw {
		if n, ok := params.Int(e); ok {
			out = append(out, n)
		}
	}
	return out
}

// Compact drops nil and empty-string entries so partial updates leave
// unspecified server fields alone.
func Compact(body map[string]any) map[string]any {
	out := make(map[string]any, len(body))
	for k, v := range body {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		out[k] = v
	}
	return out
}
