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

// Package tools exposes the resource modules as MCP tools.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"blockarchitech.com/remindernodes/internal/listsearch"
	"blockarchitech.com/remindernodes/internal/models"
	"blockarchitech.com/remindernodes/internal/nodes"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const serverInstructions = "Apple Reminders tools. Use reminders_ai for most requests; its action " +
	"field picks get_lists, get_reminders, create_reminder, update_reminder, delete_reminder, " +
	"search_reminders, complete_reminder or setup_webhook. The other tools mirror the workflow " +
	"nodes and accept their field names and aliases."

// toolNames maps node names to MCP tool names.
var toolNames = map[string]string{
	nodes.ListsNodeName:    "reminders_list",
	nodes.TasksNodeName:    "reminders_task",
	nodes.SearchNodeName:   "reminders_search",
	nodes.WebhooksNodeName: "reminders_webhook",
	nodes.AIToolNodeName:   "reminders_ai",
}

const findListsTool = "reminders_find_lists"

// Tools adapts a node registry to MCP tool handlers.
type Tools struct {
	registry       *nodes.Registry
	lists          *listsearch.Provider
	logger         *zap.Logger
	continueOnFail bool
}

func New(registry *nodes.Registry, lists *listsearch.Provider, logger *zap.Logger, continueOnFail bool) *Tools {
	return &Tools{
		registry:       registry,
		lists:          lists,
		logger:         logger.Named("mcp"),
		continueOnFail: continueOnFail,
	}
}

// NewServer builds an MCP server with one tool per node plus list lookup.
func (t *Tools) NewServer(name, version string) (*server.MCPServer, error) {
	s := server.NewMCPServer(name, version,
		server.WithToolCapabilities(false),
		server.WithInstructions(serverInstructions),
	)
	for _, n := range t.registry.All() {
		tool, err := nodeTool(n)
		if err != nil {
			return nil, err
		}
		s.AddTool(tool, t.NodeHandler(n))
	}
	s.AddTool(mcp.NewTool(findListsTool,
		mcp.WithDescription("Find reminder lists whose name contains a filter"),
		mcp.WithString("filter", mcp.Description("Case-insensitive text to match; empty returns every list")),
	), t.handleFindLists)
	return s, nil
}

func nodeTool(n nodes.Node) (mcp.Tool, error) {
	schema, err := json.Marshal(n.Schema().JSONSchema())
	if err != nil {
		return mcp.Tool{}, fmt.Errorf("failed to encode schema for %s: %w", n.Name(), err)
	}
	name, ok := toolNames[n.Name()]
	if !ok {
		name = n.Name()
	}
	return mcp.NewToolWithRawSchema(name, n.Description(), schema), nil
}

// NodeHandler runs n with the tool arguments as the single input item.
func (t *Tools) NodeHandler(n nodes.Node) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		if args == nil {
			args = map[string]any{}
		}
		out, err := n.Execute(ctx, nodes.Invocation{
			Items:          []models.Item{models.NewItem(args, 0)},
			ContinueOnFail: t.continueOnFail,
		})
		if err != nil {
			t.logger.Warn("Tool call failed", zap.String("tool", req.Params.Name), zap.Error(err))
			return mcp.NewToolResultError(err.Error()), nil
		}

		results := make([]map[string]any, 0, len(out))
		for _, it := range out {
			results = append(results, it.JSON)
		}
		return jsonResult(results), nil
	}
}

func (t *Tools) handleFindLists(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(t.lists.Search(ctx, req.GetString("filter", ""))), nil
}

func jsonResult(v any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("json marshal: %v", err))
	}
	return mcp.NewToolResultText(string(b))
}
