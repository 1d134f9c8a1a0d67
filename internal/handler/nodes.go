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

package handler

import (
	"fmt"
	"net/http"

	"blockarchitech.com/remindernodes/internal/domain"
	"blockarchitech.com/remindernodes/internal/logger"
	"blockarchitech.com/remindernodes/internal/models"
	"blockarchitech.com/remindernodes/internal/nodes"
	"blockarchitech.com/remindernodes/internal/params"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ExecuteRequest is the body of POST /api/v1/nodes/:node/execute. Parameters
// play the host's node configuration; ItemParameters override it per item.
type ExecuteRequest struct {
	Items          []models.Item    `json:"items"`
	Parameters     map[string]any   `json:"parameters"`
	ItemParameters []map[string]any `json:"itemParameters"`
	ContinueOnFail *bool            `json:"continueOnFail"`
}

type nodeSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Operations  []string `json:"operations"`
}

func (h *HttpHandlers) HandleListNodes(c *gin.Context) {
	_, span := h.Tracer.Start(c.Request.Context(), "HandleListNodes")
	defer span.End()

	out := []nodeSummary{}
	for _, n := range h.registry.All() {
		out = append(out, nodeSummary{
			Name:        n.Name(),
			Description: n.Description(),
			Operations:  n.Schema().Operations,
		})
	}
	c.JSON(http.StatusOK, gin.H{"nodes": out})
}

func (h *HttpHandlers) HandleNodeSchema(c *gin.Context) {
	_, span := h.Tracer.Start(c.Request.Context(), "HandleNodeSchema")
	defer span.End()

	n, ok := h.node(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, n.Schema().JSONSchema())
}

// HandleExecuteNode runs one node over the posted items. A batch that aborts
// reports the failing item's error; nothing is returned for the items before it.
func (h *HttpHandlers) HandleExecuteNode(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleExecuteNode")
	defer span.End()

	n, ok := h.node(c)
	if !ok {
		return
	}

	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abortWithError(c, span, "Invalid execute request", domain.NewInvalidInput("invalid request body", err))
		return
	}
	if len(req.Items) == 0 {
		req.Items = []models.Item{models.NewItem(map[string]any{}, 0)}
	}

	inv := nodes.Invocation{
		Items:          req.Items,
		Parameters:     params.MapStore{Base: req.Parameters, Items: req.ItemParameters},
		ContinueOnFail: h.config.ContinueOnFail,
	}
	if req.ContinueOnFail != nil {
		inv.ContinueOnFail = *req.ContinueOnFail
	}
	span.SetAttributes(
		attribute.String("node.name", n.Name()),
		attribute.Bool("node.continue_on_fail", inv.ContinueOnFail),
	)

	out, err := n.Execute(ctx, inv)
	if err != nil {
		h.abortWithError(c, span, "Node execution failed", err)
		return
	}

	logger.WithRequestID(ctx, h.logger).Debug("Node executed",
		zap.String("node", n.Name()),
		zap.Int("items_in", len(req.Items)),
		zap.Int("items_out", len(out)),
	)
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (h *HttpHandlers) node(c *gin.Context) (nodes.Node, bool) {
	name := c.Param("node")
	n, ok := h.registry.Get(name)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("node %s not registered", name),
			"code":  codeNodeNotFound,
		})
		return nil, false
	}
	return n, true
}
