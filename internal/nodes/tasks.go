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

// TasksNodeName is the host name of the Tasks module.
const TasksNodeName = "remindersTask"

var taskOperations = []string{
	request.OpGetAll, request.OpGet, request.OpCreate, request.OpUpdate,
	request.OpDelete, request.OpComplete, request.OpUncomplete, request.OpCreateSubtask,
}

// NewTasks builds the Tasks module: reminder CRUD, completion and subtasks.
func NewTasks(deps Deps) Node {
	d := newDispatcher(TasksNodeName, "Create, read, update, complete and delete reminders", deps)
	d.schema = tasksSchema
	d.enrich = true
	d.aliases = params.Aliases{
		"reminderId":  {"uuid", "reminderUUID"},
		"listName":    {"list", "listUUID"},
		"notes":       {"description"},
		"attachedUrl": {"url"},
		"parentId":    {"parentUuid"},
	}
	for _, op := range taskOperations {
		d.operations[op] = runTask
	}
	return d
}

func runTask(ctx context.Context, c *Call) (any, error) {
	in := taskInput(c)
	req, err := request.BuildReminder(c.Operation, in)
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	switch c.Operation {
	case request.OpGetAll:
		return asArray(resp), nil
	case request.OpDelete:
		return ack{"success": true, "deleted": in.ReminderID}, nil
	case request.OpComplete:
		return ack{"success": true, "completed": in.ReminderID}, nil
	case request.OpUncomplete:
		return ack{"success": true, "uncompleted": in.ReminderID}, nil
	}
	return resp, nil
}

// taskInput resolves every Tasks field. Optional fields may also come from
// the additionalFields and privateFeatures collections.
func taskInput(c *Call) request.ReminderInput {
	extra := c.Collection("additionalFields")
	private := c.Collection("privateFeatures")
	field := func(name string, collection map[string]any) any {
		return coalesce(c.Value(name, nil), collection[name])
	}

	return request.ReminderInput{
		ReminderID:       c.String("reminderId", ""),
		ListName:         request.ListIdentifier(c.Value("listName", nil)),
		NewListName:      request.ListIdentifier(c.Value("newListName", nil)),
		Title:            c.String("title", ""),
		Notes:            params.String(field("notes", extra)),
		DueDate:          params.String(field("dueDate", extra)),
		StartDate:        params.String(field("startDate", extra)),
		Priority:         field("priority", extra),
		IsCompleted:      completion(c, extra),
		ParentID:         params.String(field("parentId", private)),
		AttachedURL:      params.String(field("attachedUrl", private)),
		IncludeCompleted: c.Bool("includeCompleted", false),
	}
}

// completion decides whether an update carries isCompleted. Payload and
// additionalFields values are sent as given; a host toggle only when true.
func completion(c *Call, extra map[string]any) *bool {
	v, src := c.Lookup("isCompleted")
	if src == params.SourcePayload {
		return boolPtr(v)
	}
	if b := boolPtr(extra["isCompleted"]); b != nil {
		return b
	}
	if src == params.SourceHost {
		if b, ok := params.Bool(v); ok && b {
			return &b
		}
	}
	return nil
}
