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
	"blockarchitech.com/remindernodes/internal/config"
	"blockarchitech.com/remindernodes/internal/listsearch"
	"blockarchitech.com/remindernodes/internal/nodes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// HttpHandlers holds application-wide state and dependencies.
type HttpHandlers struct {
	logger   *zap.Logger
	registry *nodes.Registry
	lists    *listsearch.Provider
	config   *config.Config
	Tracer   trace.Tracer
}

// NewHttpHandlers creates a new HttpHandlers instance.
func NewHttpHandlers(
	logger *zap.Logger,
	registry *nodes.Registry,
	lists *listsearch.Provider,
	cfg *config.Config,
	tracer trace.Tracer,
) *HttpHandlers {
	return &HttpHandlers{
		logger:   logger.Named("http_handler"),
		registry: registry,
		lists:    lists,
		config:   cfg,
		Tracer:   tracer,
	}
}
