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
	"fmt"
	"strings"

	"blockarchitech.com/remindernodes/internal/domain"
	"blockarchitech.com/remindernodes/internal/params"
	"blockarchitech.com/remindernodes/internal/request"
	"blockarchitech.com/remindernodes/internal/types/reminders"
	"blockarchitech.com/remindernodes/internal/utils"
	"go.uber.org/zap"
)

// AIToolNodeName is the host name of the AI Tool module.
const AIToolNodeName = "remindersAiTool"

const (
	actionGetLists         = "get_lists"
	actionGetReminders     = "get_reminders"
	actionCreateReminder   = "create_reminder"
	actionUpdateReminder   = "update_reminder"
	actionDeleteReminder   = "delete_reminder"
	actionSearchReminders  = "search_reminders"
	actionCompleteReminder = "complete_reminder"
	actionSetupWebhook     = "setup_webhook"
)

const (
	defaultToolList     = "Reminders"
	defaultWebhookName  = "AI Tool Webhook"
	summaryDateLayout   = "1/2/2006"
	unknownActionMarker = "unknown"
)

// ToolResponse is the envelope every AI Tool action returns.
type ToolResponse struct {
	Success bool   `json:"success"`
	Action  string `json:"action"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Summary string `json:"summary"`
}

// toolConfig holds the host-level AI Tool settings.
type toolConfig struct {
	DefaultList    string
	AutoParseDates bool
	IncludeContext bool
}

// NewAITool builds the AI Tool module. Actions take snake_case parameters and
// answer with a ToolResponse carrying a one-line summary for the agent.
func NewAITool(deps Deps) Node {
	d := newDispatcher(AIToolNodeName, "Manage Apple Reminders from an AI agent", deps)
	d.schema = aiToolSchema
	d.operationField = "action"
	d.operations[actionGetLists] = toolGetLists
	d.operations[actionGetReminders] = toolGetReminders
	d.operations[actionCreateReminder] = toolCreateReminder
	d.operations[actionUpdateReminder] = toolUpdateReminder
	d.operations[actionDeleteReminder] = toolDeleteReminder
	d.operations[actionSearchReminders] = toolSearchReminders
	d.operations[actionCompleteReminder] = toolCompleteReminder
	d.operations[actionSetupWebhook] = toolSetupWebhook
	d.unknown = toolUnknownAction
	d.errorItem = toolErrorItem
	return d
}

func readToolConfig(c *Call) toolConfig {
	cfg := toolConfig{DefaultList: defaultToolList, AutoParseDates: true}
	v, _ := c.HostParameter("toolConfig")
	m := params.Map(v)
	if s := params.String(m["defaultList"]); s != "" {
		cfg.DefaultList = s
	}
	if b, ok := params.Bool(m["autoParseDates"]); ok {
		cfg.AutoParseDates = b
	}
	if b, ok := params.Bool(m["includeContext"]); ok {
		cfg.IncludeContext = b
	}
	return cfg
}

func toolAction(c *Call) string {
	if c.Operation == "" {
		return unknownActionMarker
	}
	return c.Operation
}

func toolUnknownAction(_ context.Context, c *Call) (any, error) {
	return ToolResponse{
		Success: false,
		Action:  toolAction(c),
		Error:   "Unknown action: " + c.Operation,
		Summary: fmt.Sprintf("Error: Unknown action %q", c.Operation),
	}, nil
}

func toolErrorItem(c *Call, err error) map[string]any {
	return map[string]any{
		"success": false,
		"action":  toolAction(c),
		"error":   err.Error(),
		"summary": "Error: " + err.Error(),
	}
}

// toolUUID reads the uuid parameter. Malformed ids are forwarded; the server
// has the final say.
func toolUUID(c *Call) (string, error) {
	id := c.String("uuid", "")
	if id == "" {
		return "", domain.NewMissingRequiredField("uuid", c.Operation)
	}
	if !utils.IsValidUUID(id) {
		c.logger.Warn("Reminder id is not a UUID", zap.String("action", c.Operation), zap.String("uuid", id))
	}
	return id, nil
}

func toolGetLists(ctx context.Context, c *Call) (any, error) {
	resp, err := c.Do(ctx, request.GetAllLists())
	if err != nil {
		return nil, err
	}
	lists := asArray(resp)
	names := make([]string, 0, len(lists))
	for _, l := range lists {
		names = append(names, reminders.ListDisplayName(l))
	}
	return ToolResponse{
		Success: true,
		Action:  actionGetLists,
		Data:    map[string]any{"lists": lists, "count": len(lists)},
		Summary: fmt.Sprintf("Found %d reminder lists: %s", len(lists), strings.Join(names, ", ")),
	}, nil
}

func toolGetReminders(ctx context.Context, c *Call) (any, error) {
	listName := request.ListIdentifier(c.Value("list_name", nil))
	includeCompleted := c.Bool("include_completed", false)

	req := request.GetReminders(includeCompleted, 0)
	if listName != "" {
		var err error
		req, err = request.GetListReminders(request.ListInput{ListName: listName, IncludeCompleted: includeCompleted})
		if err != nil {
			return nil, err
		}
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	items := asArray(resp)
	data := map[string]any{"reminders": items, "count": len(items)}
	if readToolConfig(c).IncludeContext {
		data["availableLists"] = prefetchListNames(ctx, c)
	}

	where := " across all lists"
	if listName != "" {
		where = fmt.Sprintf(" from %s list", listName)
	}
	return ToolResponse{
		Success: true,
		Action:  actionGetReminders,
		Data:    data,
		Summary: fmt.Sprintf("Found %d reminders%s", len(items), where),
	}, nil
}

func toolCreateReminder(ctx context.Context, c *Call) (any, error) {
	cfg := readToolConfig(c)
	in := request.ReminderInput{
		Title:    c.String("title", ""),
		ListName: request.ListIdentifier(c.Value("list_name", nil)),
		Notes:    c.String("notes", ""),
		DueDate:  c.String("due_date", ""),
		Priority: c.Value("priority", nil),
	}
	if in.ListName == "" {
		in.ListName = cfg.DefaultList
	}

	req, err := request.BuildReminder(request.OpCreate, in)
	if err != nil {
		return nil, err
	}
	if !cfg.AutoParseDates && in.DueDate != "" {
		req.Body["dueDate"] = in.DueDate
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	due := ""
	if in.DueDate != "" {
		due = " due " + in.DueDate
		if t, err := utils.ParseDate(in.DueDate); err == nil {
			due = " due " + t.Format(summaryDateLayout)
		}
	}
	return ToolResponse{
		Success: true,
		Action:  actionCreateReminder,
		Data:    resp,
		Summary: fmt.Sprintf("Created reminder %q in %s list%s", in.Title, in.ListName, due),
	}, nil
}

func toolUpdateReminder(ctx context.Context, c *Call) (any, error) {
	id, err := toolUUID(c)
	if err != nil {
		return nil, err
	}
	req, err := request.BuildReminder(request.OpUpdate, request.ReminderInput{
		ReminderID:  id,
		Title:       c.String("title", ""),
		Notes:       c.String("notes", ""),
		DueDate:     c.String("due_date", ""),
		Priority:    c.Value("priority", nil),
		IsCompleted: boolPtr(c.Value("is_completed", nil)),
	})
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return ToolResponse{
		Success: true,
		Action:  actionUpdateReminder,
		Data:    resp,
		Summary: fmt.Sprintf("Updated reminder %q", params.String(params.Map(resp)["title"])),
	}, nil
}

func toolDeleteReminder(ctx context.Context, c *Call) (any, error) {
	id, err := toolUUID(c)
	if err != nil {
		return nil, err
	}
	req, err := request.BuildReminder(request.OpDelete, request.ReminderInput{ReminderID: id})
	if err != nil {
		return nil, err
	}
	if _, err := c.Do(ctx, req); err != nil {
		return nil, err
	}
	return ToolResponse{
		Success: true,
		Action:  actionDeleteReminder,
		Data:    map[string]any{"uuid": id},
		Summary: "Deleted reminder with UUID " + id,
	}, nil
}

func toolSearchReminders(ctx context.Context, c *Call) (any, error) {
	query := c.String("search_query", "")
	resp, err := c.Do(ctx, request.SearchWithFilters(query, c.Collection("filters")))
	if err != nil {
		return nil, err
	}
	items := asArray(resp)
	matching := ""
	if query != "" {
		matching = fmt.Sprintf(" matching %q", query)
	}
	return ToolResponse{
		Success: true,
		Action:  actionSearchReminders,
		Data:    map[string]any{"reminders": items, "count": len(items)},
		Summary: fmt.Sprintf("Found %d reminders%s", len(items), matching),
	}, nil
}

func toolCompleteReminder(ctx context.Context, c *Call) (any, error) {
	id, err := toolUUID(c)
	if err != nil {
		return nil, err
	}
	completed := true
	if b, ok := params.Bool(c.Value("completed", nil)); ok && !b {
		completed = false
	}

	op, summary := request.OpComplete, "Reminder marked as completed"
	if !completed {
		op, summary = request.OpUncomplete, "Reminder unmarked as completed"
	}
	req, err := request.BuildReminder(op, request.ReminderInput{ReminderID: id})
	if err != nil {
		return nil, err
	}
	if _, err := c.Do(ctx, req); err != nil {
		return nil, err
	}
	return ToolResponse{
		Success: true,
		Action:  actionCompleteReminder,
		Data:    map[string]any{"uuid": id, "completed": completed},
		Summary: summary,
	}, nil
}

func toolSetupWebhook(ctx context.Context, c *Call) (any, error) {
	cfg := c.Collection("webhook_config")
	in := request.WebhookInput{
		URL:  params.String(cfg["url"]),
		Name: params.String(cfg["name"]),
		Filter: reminders.WebhookFilter{
			ListNames: request.StringList(cfg["lists"]),
			Completed: "all",
		},
	}
	if in.URL == "" {
		return nil, domain.NewMissingRequiredField("webhook_config.url", c.Operation)
	}
	if in.Name == "" {
		in.Name = defaultWebhookName
	}

	req, err := request.BuildWebhook(request.OpCreate, in)
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	created := params.Map(resp)
	name := params.String(coalesce(created["name"], in.Name))
	url := params.String(coalesce(created["url"], in.URL))
	return ToolResponse{
		Success: true,
		Action:  actionSetupWebhook,
		Data:    resp,
		Summary: fmt.Sprintf("Created webhook %q for URL %s", name, url),
	}, nil
}
