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
	"encoding/json"

	"blockarchitech.com/remindernodes/internal/request"
	"blockarchitech.com/remindernodes/internal/types/reminders"
	"go.uber.org/zap"
)

const (
	contextPrefetchLimit = 10
	contextSampleSize    = 5
)

// prefetchSamples loads a few incomplete reminders for AI context. Failures
// are logged and yield no samples.
func prefetchSamples(ctx context.Context, c *Call) []reminders.ReminderSample {
	resp, err := c.Do(ctx, request.GetReminders(false, contextPrefetchLimit))
	if err != nil {
		c.logger.Warn("AI context pre-fetch failed", zap.String("target", "reminders"), zap.Error(err))
		return []reminders.ReminderSample{}
	}

	out := []reminders.ReminderSample{}
	for _, entry := range asArray(resp) {
		var r reminders.Reminder
		b, err := json.Marshal(entry)
		if err != nil || json.Unmarshal(b, &r) != nil {
			continue
		}
		out = append(out, r.Sample())
	}
	return out
}

// prefetchListNames loads the display names of every list. Failures are
// logged and yield no names.
func prefetchListNames(ctx context.Context, c *Call) []string {
	resp, err := c.Do(ctx, request.GetAllLists())
	if err != nil {
		c.logger.Warn("AI context pre-fetch failed", zap.String("target", "lists"), zap.Error(err))
		return []string{}
	}
	names := []string{}
	for _, entry := range asArray(resp) {
		if name := reminders.ListDisplayName(entry); name != "" {
			names = append(names, name)
		}
	}
	return names
}
