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
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleListSearch backs list pickers. It always answers 200; an unreachable
// Reminders API yields an empty result.
func (h *HttpHandlers) HandleListSearch(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleListSearch")
	defer span.End()

	c.JSON(http.StatusOK, h.lists.Search(ctx, c.Query("filter")))
}
