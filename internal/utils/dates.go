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

package utils

import (
	"fmt"
	"time"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// zoned layouts carry their own offset; the rest are read as UTC.
var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04Z07:00",
	}
	localLayouts = []string{
		"2006-01-02T15:04:05.000",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

// ParseDate parses the date shapes the Reminders API and its callers use:
// RFC3339 (with or without fractional seconds), offset-less date-times and
// plain dates. Offset-less values are interpreted as UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %s", s)
}

// NormalizeDate returns s as an ISO-8601 timestamp. Values that are already
// RFC3339 are returned untouched; other parseable shapes are converted to UTC
// with millisecond precision; unparseable values pass through for the server to judge.
func NormalizeDate(s string) string {
	if s == "" {
		return s
	}
	for _, layout := range zonedLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return s
		}
	}
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.UTC().Format(isoMillis)
}
