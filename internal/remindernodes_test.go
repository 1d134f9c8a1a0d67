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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blockarchitech.com/remindernodes/internal/config"
	"blockarchitech.com/remindernodes/internal/handler"
	"blockarchitech.com/remindernodes/internal/models"
	"blockarchitech.com/remindernodes/internal/nodes"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, baseURL string) *App {
	t.Helper()
	cfg := &config.Config{
		Credentials:    config.Credentials{BaseURL: baseURL},
		RequestTimeout: 5 * time.Second,
		Port:           "0",
		Version:        "test",
	}
	a, err := NewApp(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return a
}

func TestHealthz(t *testing.T) {
	a := newTestApp(t, "http://127.0.0.1:1")
	router := a.setupRouter(handler.NewHttpHandlers(a.logger, a.registry, a.lists, a.cfg, a.tracer))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("expected 200 ok, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestExecuteAgainstAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lists" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"title":"Shopping"},{"title":"Work"}]`))
	}))
	defer srv.Close()
	a := newTestApp(t, srv.URL)

	out, err := a.Execute(context.Background(), "ai", nodes.Invocation{
		Items: models.ItemsFromJSON(map[string]any{"action": "get_lists"}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].JSON["summary"] != "Found 2 reminder lists: Shopping, Work" {
		t.Errorf("unexpected output %v", out)
	}

	lists := a.SearchLists(context.Background(), "work")
	if len(lists.Results) != 1 {
		t.Errorf("expected one matching list, got %v", lists.Results)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	a := newTestApp(t, "http://127.0.0.1:1")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
