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

package reminders

import "strings"

// Priority values on the Reminders API 0-9 scale.
const (
	PriorityNone   = 0
	PriorityLow    = 1
	PriorityMedium = 5
	PriorityHigh   = 9
)

// ReminderList is a list as returned by GET /lists. Either Name or Title is set
// depending on the server version; UUID may be absent.
type ReminderList struct {
	Name  string  `json:"name,omitempty"`
	Title string  `json:"title,omitempty"`
	UUID  *string `json:"uuid,omitempty"`
}

// DisplayName returns the first non-empty of name and title.
func (l ReminderList) DisplayName() string {
	if l.Name != "" {
		return l.Name
	}
	return l.Title
}

// ListDisplayName extracts a list name from a raw /lists entry, which may be a
// bare string or an object carrying name or title.
func ListDisplayName(entry any) string {
	switch v := entry.(type) {
	case string:
		return v
	case map[string]any:
		for _, key := range []string{"name", "title"} {
			if s, ok := v[key].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}

// Reminder is a single reminder. Private API fields (ParentID, AttachedURL,
// MailURL) are only populated by servers that expose them.
type Reminder struct {
	UUID        string `json:"uuid"`
	Title       string `json:"title"`
	Notes       string `json:"notes,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	Priority    int    `json:"priority"`
	IsCompleted bool   `json:"isCompleted"`
	IsSubtask   bool   `json:"isSubtask,omitempty"`
	ParentID    string `json:"parentId,omitempty"`
	AttachedURL string `json:"attachedUrl,omitempty"`
	MailURL     string `json:"mailUrl,omitempty"`
	List        string `json:"list"`
}

// ReminderSample is the compact projection attached to AI context.
type ReminderSample struct {
	UUID           string `json:"uuid"`
	Title          string `json:"title"`
	Notes          string `json:"notes,omitempty"`
	IsCompleted    bool   `json:"isCompleted"`
	Priority       int    `json:"priority"`
	List           string `json:"list"`
	DueDate        string `json:"dueDate,omitempty"`
	IsSubtask      bool   `json:"isSubtask"`
	ParentID       string `json:"parentId,omitempty"`
	AttachedURL    string `json:"attachedUrl,omitempty"`
	MailURL        string `json:"mailUrl,omitempty"`
	HasAttachments bool   `json:"hasAttachments"`
}

// Sample projects a reminder for AI context.
func (r Reminder) Sample() ReminderSample {
	return ReminderSample{
		UUID:           r.UUID,
		Title:          r.Title,
		Notes:          r.Notes,
		IsCompleted:    r.IsCompleted,
		Priority:       r.Priority,
		List:           r.List,
		DueDate:        r.DueDate,
		IsSubtask:      r.IsSubtask,
		ParentID:       r.ParentID,
		AttachedURL:    r.AttachedURL,
		MailURL:        r.MailURL,
		HasAttachments: r.AttachedURL != "" || r.MailURL != "",
	}
}

// WebhookFilter narrows which reminder events a webhook receives. Empty fields
// are omitted so the server applies no constraint for them.
type WebhookFilter struct {
	ListNames      []string `json:"listNames,omitempty"`
	ListUUIDs      []string `json:"listUUIDs,omitempty"`
	Completed      string   `json:"completed,omitempty"`
	PriorityLevels []int    `json:"priorityLevels,omitempty"`
	HasQuery       string   `json:"hasQuery,omitempty"`
}

// IsEmpty reports whether no filter field is set.
func (f WebhookFilter) IsEmpty() bool {
	return len(f.ListNames) == 0 && len(f.ListUUIDs) == 0 && f.Completed == "" &&
		len(f.PriorityLevels) == 0 && f.HasQuery == ""
}

// Webhook is a registered webhook subscription.
type Webhook struct {
	ID       string         `json:"id"`
	URL      string         `json:"url"`
	Name     string         `json:"name"`
	IsActive bool           `json:"isActive"`
	Filter   *WebhookFilter `json:"filter,omitempty"`
}
