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
	"errors"
	"net/http"

	"blockarchitech.com/remindernodes/internal/domain"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const codeNodeNotFound = "node_not_found"

// statusFor maps node-layer failures onto HTTP: caller mistakes are 400s,
// Reminders API failures 502s.
func statusFor(err error) (int, string) {
	code, ok := domain.CodeOf(err)
	if !ok {
		return http.StatusInternalServerError, "internal"
	}
	switch code {
	case domain.CodeMissingRequiredField, domain.CodeUnknownOperation, domain.CodeInvalidInput:
		return http.StatusBadRequest, string(code)
	case domain.CodeRemoteRequest:
		var remote *domain.RemoteRequestError
		if errors.As(err, &remote) && remote.StatusCode == http.StatusNotFound {
			return http.StatusNotFound, string(code)
		}
		return http.StatusBadGateway, string(code)
	}
	return http.StatusInternalServerError, string(code)
}

func (h *HttpHandlers) abortWithError(c *gin.Context, span trace.Span, message string, err error) {
	status, code := statusFor(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, message)

	l := h.logger.With(zap.String("request_id", c.GetString(requestIDContextKey)))
	if status >= http.StatusInternalServerError {
		l.Error(message, zap.Error(err), zap.Int("status", status))
	} else {
		l.Warn(message, zap.Error(err), zap.Int("status", status))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "code": code})
}
