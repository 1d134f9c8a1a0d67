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

// Field types understood by Schema.JSONSchema.
const (
	TypeString        = "string"
	TypeBoolean       = "boolean"
	TypeNumber        = "number"
	TypeObject        = "object"
	TypeStringOrArray = "string|array"
	TypeNumberOrArray = "number|array"
)

// Field is one optional input field of a node.
type Field struct {
	Name        string
	Type        string
	Description string
	Enum        []string
	Default     any
	Min         *float64
	Max         *float64
}

// Schema is the input contract a node publishes to callers and AI agents.
type Schema struct {
	OperationField       string
	Operations           []string
	OperationDescription string
	// OperationDefault is set for single-operation nodes.
	OperationDefault string
	Fields           []Field
}

// JSONSchema renders the contract as a JSON Schema object.
func (s Schema) JSONSchema() map[string]any {
	props := map[string]any{}
	var required []string

	if s.OperationField != "" {
		op := map[string]any{
			"type":        TypeString,
			"enum":        s.Operations,
			"description": s.OperationDescription,
		}
		if s.OperationDefault != "" {
			op["default"] = s.OperationDefault
		} else {
			required = append(required, s.OperationField)
		}
		props[s.OperationField] = op
	}

	for _, f := range s.Fields {
		props[f.Name] = f.jsonSchema()
	}

	out := map[string]any{
		"type":       TypeObject,
		"properties": props,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

func (f Field) jsonSchema() map[string]any {
	var p map[string]any
	switch f.Type {
	case TypeStringOrArray:
		p = map[string]any{"anyOf": []any{
			map[string]any{"type": TypeString},
			map[string]any{"type": "array", "items": map[string]any{"type": TypeString}},
		}}
	case TypeNumberOrArray:
		p = map[string]any{"anyOf": []any{
			map[string]any{"type": TypeNumber},
			map[string]any{"type": "array", "items": map[string]any{"type": TypeNumber}},
		}}
	default:
		p = map[string]any{"type": f.Type}
	}
	if f.Description != "" {
		p["description"] = f.Description
	}
	if len(f.Enum) > 0 {
		p["enum"] = f.Enum
	}
	if f.Default != nil {
		p["default"] = f.Default
	}
	if f.Min != nil {
		p["minimum"] = *f.Min
	}
	if f.Max != nil {
		p["maximum"] = *f.Max
	}
	return p
}

func bound(v float64) *float64 { return &v }

var priorityWordsEnum = []string{"none", "low", "medium", "high"}

var listsSchema = Schema{
	OperationField:       "operation",
	Operations:           []string{"getAllLists", "getListReminders"},
	OperationDescription: "The operation to perform",
	Fields: []Field{
		{Name: "listName", Type: TypeString, Description: "Name or UUID of the list to get reminders from"},
		{Name: "list", Type: TypeString, Description: "Alias for listName"},
		{Name: "listUUID", Type: TypeString, Description: "Alias for listName - UUID of the list"},
		{Name: "includeCompleted", Type: TypeBoolean, Description: "Whether to include completed reminders in results"},
		{Name: "completed", Type: TypeBoolean, Description: "Alias for includeCompleted"},
		{Name: "includeAIContext", Type: TypeBoolean, Description: "Include pre-fetched reminders for AI context"},
	},
}

var tasksSchema = Schema{
	OperationField:       "operation",
	Operations:           []string{"getAll", "get", "create", "update", "delete", "complete", "uncomplete", "createSubtask"},
	OperationDescription: "The operation to perform on reminders",
	Fields: []Field{
		{Name: "listName", Type: TypeString, Description: "Name or UUID of the reminder list (for create operations)"},
		{Name: "newListName", Type: TypeString, Description: "Name or UUID of the list to move the reminder to (for update operations)"},
		{Name: "reminderId", Type: TypeString, Description: "UUID of the specific reminder (for get, update, delete, complete operations)"},
		{Name: "title", Type: TypeString, Description: "Title/name of the reminder"},
		{Name: "notes", Type: TypeString, Description: "Additional notes or description for the reminder"},
		{Name: "dueDate", Type: TypeString, Description: "Due date in ISO format (e.g., 2024-01-15T10:00:00Z)"},
		{Name: "startDate", Type: TypeString, Description: "Start date in ISO format"},
		{Name: "priority", Type: TypeString, Enum: priorityWordsEnum, Description: "Priority level of the reminder"},
		{Name: "isCompleted", Type: TypeBoolean, Description: "Whether the reminder is completed"},
		{Name: "parentId", Type: TypeString, Description: "UUID of parent reminder (for creating subtasks)"},
		{Name: "attachedUrl", Type: TypeString, Description: "URL to attach to the reminder"},
		{Name: "includeCompleted", Type: TypeBoolean, Description: "Whether to include completed reminders in results"},
	},
}

var searchSchema = Schema{
	OperationField:       "operation",
	Operations:           []string{"search"},
	OperationDescription: `Search operation (always "search")`,
	OperationDefault:     "search",
	Fields: []Field{
		{Name: "query", Type: TypeString, Description: "Text to search for in reminder titles and notes"},
		{Name: "search", Type: TypeString, Description: "Alias for query - text to search for"},
		{Name: "text", Type: TypeString, Description: "Alias for query - text to search for"},
		{Name: "reminderId", Type: TypeString, Description: "Search for a specific reminder by UUID"},
		{Name: "uuid", Type: TypeString, Description: "Alias for reminderId - reminder UUID to find"},
		{Name: "reminderUUID", Type: TypeString, Description: "Alias for reminderId - reminder UUID to find"},
		{Name: "lists", Type: TypeStringOrArray, Description: "List names to search in (comma-separated string or array)"},
		{Name: "listNames", Type: TypeStringOrArray, Description: "Alias for lists - list names to search in"},
		{Name: "listUUIDs", Type: TypeStringOrArray, Description: "List UUIDs to search in (comma-separated string or array)"},
		{Name: "completed", Type: TypeString, Enum: []string{"all", "true", "false", "incomplete", "complete"}, Default: "false",
			Description: "Filter by completion status (defaults to incomplete only)"},
		{Name: "dueBefore", Type: TypeString, Description: "Find reminders due before this date (ISO format)"},
		{Name: "dueAfter", Type: TypeString, Description: "Find reminders due after this date (ISO format)"},
		{Name: "dueBy", Type: TypeString, Description: "Alias for dueBefore"},
		{Name: "dueFrom", Type: TypeString, Description: "Alias for dueAfter"},
		{Name: "modifiedAfter", Type: TypeString, Description: "Find reminders modified after this date (ISO format)"},
		{Name: "createdAfter", Type: TypeString, Description: "Find reminders created after this date (ISO format)"},
		{Name: "hasNotes", Type: TypeBoolean, Default: false, Description: "Filter by presence of notes (defaults to all)"},
		{Name: "hasDueDate", Type: TypeBoolean, Default: false, Description: "Filter by presence of due date (defaults to all)"},
		{Name: "isSubtask", Type: TypeBoolean, Default: false, Description: "Filter for subtasks only (defaults to all)"},
		{Name: "hasAttachedUrl", Type: TypeBoolean, Default: false, Description: "Filter for reminders with URL attachments (defaults to all)"},
		{Name: "hasMailUrl", Type: TypeBoolean, Default: false, Description: "Filter for reminders with mail links (defaults to all)"},
		{Name: "priority", Type: TypeString, Enum: priorityWordsEnum,
			Description: "Exact priority level to match (none=0, low=1, medium=5, high=9)"},
		{Name: "priorityMin", Type: TypeNumber, Min: bound(0), Max: bound(9), Default: 0,
			Description: "Minimum priority level (0-9, defaults to 0)"},
		{Name: "priorityMax", Type: TypeNumber, Min: bound(0), Max: bound(9), Default: 9,
			Description: "Maximum priority level (0-9, defaults to 9)"},
		{Name: "minPriority", Type: TypeNumber, Min: bound(0), Max: bound(9), Description: "Alias for priorityMin"},
		{Name: "maxPriority", Type: TypeNumber, Min: bound(0), Max: bound(9), Description: "Alias for priorityMax"},
		{Name: "sortBy", Type: TypeString, Enum: []string{"title", "dueDate", "creationDate", "lastModified", "priority", "list"},
			Default: "lastModified", Description: "Field to sort results by (defaults to lastModified)"},
		{Name: "sortOrder", Type: TypeString, Enum: []string{"asc", "desc"}, Default: "desc",
			Description: "Sort direction (defaults to desc)"},
		{Name: "limit", Type: TypeNumber, Min: bound(1), Max: bound(1000), Default: 50,
			Description: "Maximum number of results to return (defaults to 50)"},
		{Name: "count", Type: TypeNumber, Min: bound(1), Max: bound(1000), Description: "Alias for limit"},
		{Name: "maxResults", Type: TypeNumber, Min: bound(1), Max: bound(1000), Description: "Alias for limit"},
		{Name: "includeAIContext", Type: TypeBoolean, Default: false, Description: "Include pre-fetched reminders for AI context"},
	},
}

var webhooksSchema = Schema{
	OperationField:       "operation",
	Operations:           []string{"list", "get", "create", "update", "delete", "test"},
	OperationDescription: "The webhook operation to perform",
	Fields: []Field{
		{Name: "webhookId", Type: TypeString, Description: "UUID of the webhook (for get, update, delete, test operations)"},
		{Name: "url", Type: TypeString, Description: "Webhook URL endpoint to receive notifications"},
		{Name: "name", Type: TypeString, Description: "Name/description for the webhook"},
		{Name: "isActive", Type: TypeBoolean, Description: "Whether the webhook is active"},
		{Name: "listNames", Type: TypeStringOrArray, Description: "List names to monitor (comma-separated string or array)"},
		{Name: "lists", Type: TypeStringOrArray, Description: "Alias for listNames"},
		{Name: "listUUIDs", Type: TypeStringOrArray, Description: "List UUIDs to monitor (comma-separated string or array)"},
		{Name: "listIds", Type: TypeStringOrArray, Description: "Alias for listUUIDs"},
		{Name: "completed", Type: TypeString, Enum: []string{"all", "complete", "incomplete"},
			Description: "Completion status filter for webhook notifications"},
		{Name: "priorityLevels", Type: TypeNumberOrArray, Description: "Priority levels to monitor (0-9, single number or array)"},
		{Name: "priorities", Type: TypeNumberOrArray, Description: "Alias for priorityLevels"},
		{Name: "hasQuery", Type: TypeString, Description: "Text that must be present in reminder title/notes"},
		{Name: "textFilter", Type: TypeString, Description: "Alias for hasQuery"},
		{Name: "query", Type: TypeString, Description: "Alias for hasQuery"},
	},
}

var aiToolSchema = Schema{
	OperationField: "action",
	Operations: []string{
		actionGetLists, actionGetReminders, actionCreateReminder, actionUpdateReminder,
		actionDeleteReminder, actionSearchReminders, actionCompleteReminder, actionSetupWebhook,
	},
	OperationDescription: "The reminders action to perform",
	Fields: []Field{
		{Name: "list_name", Type: TypeString, Description: "Name or UUID of the reminder list"},
		{Name: "include_completed", Type: TypeBoolean, Description: "Whether to include completed reminders"},
		{Name: "title", Type: TypeString, Description: "Title of the reminder"},
		{Name: "notes", Type: TypeString, Description: "Notes for the reminder"},
		{Name: "due_date", Type: TypeString, Description: "Due date in ISO format"},
		{Name: "priority", Type: TypeString, Enum: priorityWordsEnum, Description: "Priority level of the reminder"},
		{Name: "uuid", Type: TypeString, Description: "UUID of the reminder to update, delete or complete"},
		{Name: "is_completed", Type: TypeBoolean, Description: "Completion state to set on update"},
		{Name: "search_query", Type: TypeString, Description: "Text to search for in reminder titles and notes"},
		{Name: "filters", Type: TypeObject, Description: "Additional search filters passed to the search endpoint"},
		{Name: "completed", Type: TypeBoolean, Description: "false to mark a reminder incomplete again"},
		{Name: "webhook_config", Type: TypeObject, Description: "Webhook settings: url, name and lists"},
	},
}
