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

package remindernodes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"blockarchitech.com/remindernodes/internal/config"
	"blockarchitech.com/remindernodes/internal/handler"
	"blockarchitech.com/remindernodes/internal/listsearch"
	"blockarchitech.com/remindernodes/internal/models"
	"blockarchitech.com/remindernodes/internal/nodes"
	"blockarchitech.com/remindernodes/internal/service"
	"blockarchitech.com/remindernodes/internal/tools"
	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const serviceName = "remindernodes"

// App wires configuration, the Reminders client and the node registry, and
// serves them over HTTP, MCP or direct execution.
type App struct {
	logger   *zap.Logger
	cfg      *config.Config
	tp       *sdktrace.TracerProvider
	tracer   trace.Tracer
	registry *nodes.Registry
	lists    *listsearch.Provider
	server   *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger, cfg: cfg}

	if cfg.OtelExporterEndpoint != "" {
		tp, err := a.initTracerProvider(ctx)
		if err != nil {
			return nil, err
		}
		a.tp = tp
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	}
	a.tracer = otel.Tracer(serviceName)

	client := service.NewRemindersService(cfg.Credentials, cfg.RequestTimeout, a.tracer, logger)
	a.registry = nodes.NewRegistry(nodes.Deps{Client: client, Logger: logger, Tracer: a.tracer})
	a.lists = listsearch.NewProvider(client, logger)
	return a, nil
}

// Close flushes pending spans.
func (a *App) Close(ctx context.Context) {
	if a.tp == nil {
		return
	}
	if err := a.tp.Shutdown(ctx); err != nil {
		a.logger.Error("Error shutting down tracer provider", zap.Error(err))
	}
}

func (a *App) Registry() *nodes.Registry { return a.registry }

// Execute runs one node outside any server.
func (a *App) Execute(ctx context.Context, node string, inv nodes.Invocation) ([]models.Item, error) {
	return a.registry.Execute(ctx, node, inv)
}

// SearchLists answers a list picker query.
func (a *App) SearchLists(ctx context.Context, filter string) listsearch.Result {
	return a.lists.Search(ctx, filter)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	handlers := handler.NewHttpHandlers(a.logger, a.registry, a.lists, a.cfg, a.tracer)

	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.cfg.Port),
		Handler:      a.setupRouter(handlers),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: a.cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Server starting", zap.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("could not listen on %s: %w", a.server.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}
	a.logger.Info("Server shutting down...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := a.server.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	a.logger.Info("Server exited properly")
	return nil
}

// ServeMCP serves the node tools over stdio until the client disconnects.
func (a *App) ServeMCP() error {
	s, err := tools.New(a.registry, a.lists, a.logger, a.cfg.ContinueOnFail).NewServer(serviceName, a.cfg.Version)
	if err != nil {
		return err
	}
	a.logger.Info("MCP server starting on stdio", zap.String("version", a.cfg.Version))
	return server.ServeStdio(s)
}

func (a *App) initTracerProvider(ctx context.Context) (*sdktrace.TracerProvider, error) {
	traceExporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(a.cfg.OtelExporterEndpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP HTTP trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(a.cfg.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenTelemetry resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	a.logger.Info("OTLP HTTP trace exporter initialized", zap.String("endpoint", a.cfg.OtelExporterEndpoint))
	return tp, nil
}

func (a *App) setupRouter(handlers *handler.HttpHandlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	if a.tp != nil {
		router.Use(otelgin.Middleware(serviceName+"-http", otelgin.WithTracerProvider(a.tp)))
	}

	handlers.RegisterRoutes(router)

	router.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return router
}
