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

package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"blockarchitech.com/remindernodes/internal/config"
	"blockarchitech.com/remindernodes/internal/domain"
	"blockarchitech.com/remindernodes/internal/request"
	"blockarchitech.com/remindernodes/internal/utils"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const maxErrorBody = 512

// RemindersService is responsible for interacting with the Reminders API.
type RemindersService struct {
	client     *http.Client
	baseURL    string
	tracer     trace.Tracer
	logger     *zap.Logger
	apiTimeout time.Duration
}

// NewRemindersService creates a new RemindersService. The transport chain is
// otelhttp -> oauth2 bearer (when a token is set) -> base transport, with TLS
// verification disabled when the credentials allow unauthorized certificates.
func NewRemindersService(creds config.Credentials, timeout time.Duration, tracer trace.Tracer, logger *zap.Logger) *RemindersService {
	base := http.DefaultTransport.(*http.Transport).Clone()
	if creds.AllowUnauthorizedCerts {
		base.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	var rt http.RoundTripper = base
	if creds.APIToken != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.APIToken, TokenType: "Bearer"}),
			Base:   base,
		}
	}

	client := &http.Client{
		Transport: otelhttp.NewTransport(rt,
			otelhttp.WithTracerProvider(otel.GetTracerProvider()),
		),
		Timeout: timeout,
	}
	return &RemindersService{
		client:     client,
		baseURL:    creds.BaseURL,
		tracer:     tracer,
		logger:     logger.Named("reminders_service"),
		apiTimeout: timeout,
	}
}

// Do performs req and decodes the JSON response. An empty body decodes to nil.
// Non-2xx answers and transport failures are returned as *domain.RemoteRequestError.
func (s *RemindersService) Do(ctx context.Context, req *request.OperationRequest) (any, error) {
	ctx, span := s.tracer.Start(ctx, "RemindersService.Do",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("reminders.method", req.Method),
			attribute.String("reminders.path", req.Path),
		),
	)
	defer span.End()

	target, err := req.URL(s.baseURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to render request URL")
		return nil, fmt.Errorf("failed to render request URL: %w", err)
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to encode request body")
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.apiTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, req.Method, target, body)
	if err != nil {
		s.logger.Error("Failed to create request to Reminders API", zap.String("url", target), zap.Error(err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create request for Reminders API: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")

	s.logger.Debug("Calling Reminders API", zap.String("method", req.Method), zap.String("url", target))

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.logger.Error("Request to Reminders API failed", zap.String("method", req.Method), zap.String("url", target), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, &domain.RemoteRequestError{Method: req.Method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Error("Failed to read response body from Reminders API", zap.Error(err))
		span.RecordError(err)
		return nil, &domain.RemoteRequestError{Method: req.Method, URL: target, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Error("Reminders API returned non-OK status",
			zap.String("method", req.Method),
			zap.String("url", target),
			zap.Int("statusCode", resp.StatusCode),
			zap.ByteString("responseBody", bodyBytes),
		)
		rerr := &domain.RemoteRequestError{
			Method:     req.Method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       utils.Truncate(string(bodyBytes), maxErrorBody),
		}
		span.RecordError(rerr)
		span.SetStatus(codes.Error, fmt.Sprintf("status %d", resp.StatusCode))
		return nil, rerr
	}

	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil, nil
	}

	var decoded any
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil {
		s.logger.Error("Failed to unmarshal Reminders API response", zap.Error(err), zap.ByteString("responseBody", bodyBytes))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to unmarshal Reminders API response: %w", err)
	}
	return decoded, nil
}
