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
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"blockarchitech.com/remindernodes/internal/domain"
	"blockarchitech.com/remindernodes/internal/models"
	"blockarchitech.com/remindernodes/internal/params"
	"blockarchitech.com/remindernodes/internal/request"
	"blockarchitech.com/remindernodes/internal/types/reminders"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeClient records requests and answers from respond, keyed by the
// rendered path.
type fakeClient struct {
	calls   []*request.OperationRequest
	respond func(req *request.OperationRequest) (any, error)
}

func (f *fakeClient) Do(_ context.Context, req *request.OperationRequest) (any, error) {
	f.calls = append(f.calls, req)
	if f.respond == nil {
		return nil, nil
	}
	return f.respond(req)
}

func (f *fakeClient) paths(t *testing.T) []string {
	t.Helper()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		p, err := c.RenderPath()
		if err != nil {
			t.Fatalf("render path: %v", err)
		}
		out = append(out, c.Method+" "+p)
	}
	return out
}

func respondWith(byPath map[string]any) func(*request.OperationRequest) (any, error) {
	return func(req *request.OperationRequest) (any, error) {
		p, _ := req.RenderPath()
		if v, ok := byPath[p]; ok {
			if err, isErr := v.(error); isErr {
				return nil, err
			}
			return v, nil
		}
		return nil, nil
	}
}

func testDeps(client Doer) Deps {
	return Deps{Client: client, Logger: zap.NewNop(), Now: func() time.Time { return fixedNow }}
}

func run(t *testing.T, n Node, inv Invocation) []models.Item {
	t.Helper()
	out, err := n.Execute(context.Background(), inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func items(objs ...map[string]any) []models.Item {
	return models.ItemsFromJSON(objs...)
}

func TestTasks_CreateMissingTitleMakesNoCall(t *testing.T) {
	client := &fakeClient{}
	n := NewTasks(testDeps(client))

	_, err := n.Execute(context.Background(), Invocation{
		Items: items(map[string]any{"operation": "create"}),
	})

	var missing *domain.MissingRequiredFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingRequiredFieldError, got %v", err)
	}
	if missing.Field != "title" {
		t.Errorf("expected title to be reported first, got %q", missing.Field)
	}
	if len(client.calls) != 0 {
		t.Errorf("expected no requests, got %d", len(client.calls))
	}
}

func TestTasks_UnknownOperation(t *testing.T) {
	client := &fakeClient{}
	n := NewTasks(testDeps(client))

	_, err := n.Execute(context.Background(), Invocation{
		Items: items(map[string]any{"operation": "frobnicate"}),
	})
	if !domain.IsCode(err, domain.CodeUnknownOperation) {
		t.Fatalf("expected unknown operation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "frobnicate") {
		t.Errorf("expected operation name in error, got %q", err.Error())
	}
	if len(client.calls) != 0 {
		t.Errorf("expected no requests, got %d", len(client.calls))
	}
}

func TestTasks_ContinueOnFail(t *testing.T) {
	client := &fakeClient{respond: func(*request.OperationRequest) (any, error) {
		return map[string]any{"uuid": "r1", "title": "ok", "priority": 0.0}, nil
	}}
	n := NewTasks(testDeps(client))

	out := run(t, n, Invocation{
		ContinueOnFail: true,
		Items: items(
			map[string]any{"operation": "get", "reminderId": "r1"},
			map[string]any{"operation": "get"},
			map[string]any{"operation": "get", "uuid": "r3"},
		),
	})

	if len(out) != 3 {
		t.Fatalf("expected 3 items, got %d", len(out))
	}
	if _, ok := out[1].JSON["error"]; !ok {
		t.Errorf("expected item 2 to be an error record, got %v", out[1].JSON)
	}
	for _, i := range []int{0, 2} {
		if out[i].JSON["title"] != "ok" {
			t.Errorf("item %d: expected success record, got %v", i, out[i].JSON)
		}
		if out[i].PairedItem == nil || out[i].PairedItem.Item != i {
			t.Errorf("item %d: wrong pairing %v", i, out[i].PairedItem)
		}
	}
	if len(client.calls) != 2 {
		t.Errorf("expected 2 requests, got %d", len(client.calls))
	}
}

func TestTasks_FailureAbortsBatch(t *testing.T) {
	client := &fakeClient{respond: func(*request.OperationRequest) (any, error) {
		return map[string]any{"uuid": "r1"}, nil
	}}
	n := NewTasks(testDeps(client))

	out, err := n.Execute(context.Background(), Invocation{
		Items: items(
			map[string]any{"operation": "get", "reminderId": "r1"},
			map[string]any{"operation": "get"},
			map[string]any{"operation": "get", "reminderId": "r3"},
		),
	})
	if !domain.IsCode(err, domain.CodeMissingRequiredField) {
		t.Fatalf("expected missing field error, got %v", err)
	}
	if len(out) != 1 {
		t.Errorf("expected the first item to be kept, got %d items", len(out))
	}
	if len(client.calls) != 1 {
		t.Errorf("expected processing to stop, got %d requests", len(client.calls))
	}
}

func TestTasks_SparseUpdate(t *testing.T) {
	client := &fakeClient{}
	n := NewTasks(testDeps(client))

	run(t, n, Invocation{
		Items: items(map[string]any{"operation": "update", "reminderId": "r1", "title": "New", "notes": ""}),
	})

	if len(client.calls) != 1 {
		t.Fatalf("expected 1 request, got %d", len(client.calls))
	}
	want := map[string]any{"title": "New"}
	if !reflect.DeepEqual(client.calls[0].Body, want) {
		t.Errorf("expected body %v, got %v", want, client.calls[0].Body)
	}
}

func TestTasks_UpdateCompletionSources(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
		host  map[string]any
		want  any
	}{
		{"payload false", map[string]any{"isCompleted": false}, nil, false},
		{"host true", nil, map[string]any{"isCompleted": true}, true},
		{"host false", nil, map[string]any{"isCompleted": false}, nil},
		{"additional fields", nil, map[string]any{"additionalFields": map[string]any{"isCompleted": false}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			input := map[string]any{"operation": "update", "reminderId": "r1"}
			for k, v := range tt.input {
				input[k] = v
			}
			run(t, NewTasks(testDeps(client)), Invocation{
				Items:      items(input),
				Parameters: params.MapStore{Base: tt.host},
			})
			got, ok := client.calls[0].Body["isCompleted"]
			if tt.want == nil {
				if ok {
					t.Errorf("expected isCompleted to be omitted, got %v", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("expected isCompleted %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTasks_GetAllSendsCompletedString(t *testing.T) {
	client := &fakeClient{}
	run(t, NewTasks(testDeps(client)), Invocation{
		Items: items(map[string]any{"operation": "getAll", "includeCompleted": true}),
	})
	if got := client.calls[0].Query.Get("completed"); got != "true" {
		t.Errorf("expected completed=true, got %q", got)
	}
}

func TestTasks_FanOutAndEnrich(t *testing.T) {
	client := &fakeClient{respond: func(*request.OperationRequest) (any, error) {
		return []any{
			map[string]any{"uuid": "a", "priority": 5.0, "dueDate": "2025-01-01T00:00:00Z", "isCompleted": true},
			map[string]any{"uuid": "b", "priority": 0.0, "parentId": "a"},
		}, nil
	}}

	out := run(t, NewTasks(testDeps(client)), Invocation{
		Items: items(map[string]any{"operation": "getAll"}),
	})
	if len(out) != 2 {
		t.Fatalf("expected fan out to 2 items, got %d", len(out))
	}
	if out[0].JSON["priorityLevel"] != "medium" || out[0].JSON["isOverdue"] != true {
		t.Errorf("unexpected enrichment of first item: %v", out[0].JSON)
	}
	if out[1].JSON["hasParent"] != true || out[1].JSON["priorityLevel"] != "none" {
		t.Errorf("unexpected enrichment of second item: %v", out[1].JSON)
	}
	for _, it := range out {
		if it.PairedItem.Item != 0 {
			t.Errorf("expected all results paired with item 0, got %d", it.PairedItem.Item)
		}
	}
}

func TestTasks_AcknowledgementsNotEnriched(t *testing.T) {
	client := &fakeClient{}
	n := NewTasks(testDeps(client))

	out := run(t, n, Invocation{Items: items(
		map[string]any{"operation": "delete", "reminderId": "r1"},
		map[string]any{"operation": "complete", "reminderId": "r2"},
		map[string]any{"operation": "uncomplete", "reminderId": "r3"},
	)})

	want := []map[string]any{
		{"success": true, "deleted": "r1"},
		{"success": true, "completed": "r2"},
		{"success": true, "uncompleted": "r3"},
	}
	for i, w := range want {
		if !reflect.DeepEqual(out[i].JSON, w) {
			t.Errorf("item %d: expected %v, got %v", i, w, out[i].JSON)
		}
	}
	wantPaths := []string{"DELETE /reminders/r1", "PATCH /reminders/r2/complete", "PATCH /reminders/r3/uncomplete"}
	if got := client.paths(t); !reflect.DeepEqual(got, wantPaths) {
		t.Errorf("expected %v, got %v", wantPaths, got)
	}
}

func TestTasks_CreateFromCollectionsAndHost(t *testing.T) {
	client := &fakeClient{}
	store := params.MapStore{Base: map[string]any{
		"operation":        "createSubtask",
		"listName":         map[string]any{"mode": "list", "value": "Home & Garden"},
		"title":            "Rake leaves",
		"additionalFields": map[string]any{"priority": "high", "notes": "front yard"},
		"privateFeatures":  map[string]any{"parentId": "p1", "attachedUrl": "https://example.com"},
	}}

	run(t, NewTasks(testDeps(client)), Invocation{
		Items:      items(map[string]any{}),
		Parameters: store,
	})

	if got := client.paths(t); !reflect.DeepEqual(got, []string{"POST /lists/Home%20&%20Garden/reminders"}) {
		t.Errorf("unexpected request path: %v", got)
	}
	want := map[string]any{
		"title":       "Rake leaves",
		"notes":       "front yard",
		"priority":    9,
		"parentId":    "p1",
		"attachedUrl": "https://example.com",
	}
	if !reflect.DeepEqual(client.calls[0].Body, want) {
		t.Errorf("expected body %v, got %v", want, client.calls[0].Body)
	}
}

func TestLists_GetListRemindersAliases(t *testing.T) {
	client := &fakeClient{respond: respondWith(map[string]any{
		"/lists/Work": []any{map[string]any{"uuid": "a", "priority": 1.0}},
	})}

	out := run(t, NewLists(testDeps(client)), Invocation{
		Items: items(map[string]any{"operation": "getListReminders", "params": map[string]any{"list": "Work", "completed": true}}),
	})

	if len(out) != 1 || out[0].JSON["priorityLevel"] != "low" {
		t.Fatalf("expected one enriched reminder, got %v", out)
	}
	if got := client.calls[0].Query.Get("completed"); got != "true" {
		t.Errorf("expected completed=true, got %q", got)
	}
}

func TestLists_NonArrayResponseIsEmpty(t *testing.T) {
	client := &fakeClient{respond: respondWith(map[string]any{"/lists": map[string]any{"unexpected": true}})}

	out := run(t, NewLists(testDeps(client)), Invocation{
		Items: items(map[string]any{"operation": "getAllLists"}),
	})
	if len(out) != 0 {
		t.Errorf("expected no items, got %v", out)
	}
}

func TestLists_AIContext(t *testing.T) {
	samples := make([]any, 0, 7)
	for i := 0; i < 7; i++ {
		samples = append(samples, map[string]any{"uuid": "r", "title": "t", "priority": 5.0, "list": "Work"})
	}
	client := &fakeClient{respond: respondWith(map[string]any{
		"/lists":     []any{map[string]any{"title": "Work"}, map[string]any{"title": "Home"}},
		"/reminders": samples,
	})}

	out := run(t, NewLists(testDeps(client)), Invocation{
		Items: items(map[string]any{"operation": "getAllLists", "includeAIContext": true}),
	})

	if len(out) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(out))
	}
	aiContext, ok := out[0].JSON["aiContext"].(map[string]any)
	if !ok {
		t.Fatalf("expected aiContext, got %v", out[0].JSON)
	}
	if aiContext["totalLists"] != 2 {
		t.Errorf("expected totalLists 2, got %v", aiContext["totalLists"])
	}
	if got := reflect.ValueOf(aiContext["sampleReminders"]).Len(); got != contextSampleSize {
		t.Errorf("expected %d samples, got %d", contextSampleSize, got)
	}
	if q := client.calls[1].Query; q.Get("limit") != "10" || q.Get("completed") != "false" {
		t.Errorf("unexpected pre-fetch query %v", q)
	}
}

func TestLists_AIContextPrefetchFailsSoft(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	client := &fakeClient{respond: respondWith(map[string]any{
		"/lists/Work": []any{map[string]any{"uuid": "a"}},
		"/lists":      &domain.RemoteRequestError{Method: "GET", URL: "/lists", StatusCode: 500},
	})}
	deps := testDeps(client)
	deps.Logger = zap.New(core)

	out := run(t, NewLists(deps), Invocation{
		Items: items(map[string]any{
			"operation":        "getListReminders",
			"listName":         "Work",
			"aiContextOptions": map[string]any{"includeAIContext": true},
		}),
	})

	aiContext, ok := out[0].JSON["aiContext"].(map[string]any)
	if !ok {
		t.Fatalf("expected aiContext, got %v", out[0].JSON)
	}
	if names, _ := aiContext["availableLists"].([]string); len(names) != 0 {
		t.Errorf("expected no available lists, got %v", names)
	}
	if aiContext["listName"] != "Work" || aiContext["totalReminders"] != 1 {
		t.Errorf("unexpected aiContext %v", aiContext)
	}
	if logs.FilterMessage("AI context pre-fetch failed").Len() != 1 {
		t.Errorf("expected a pre-fetch warning, got %v", logs.All())
	}
}

func TestSearch_AliasesAndOptions(t *testing.T) {
	client := &fakeClient{respond: func(*request.OperationRequest) (any, error) { return []any{}, nil }}
	store := params.MapStore{Base: map[string]any{
		"searchOptions": map[string]any{"sortBy": "dueDate", "isSubtask": "all", "hasMailUrl": false},
	}}

	run(t, NewSearch(testDeps(client)), Invocation{
		Items: items(map[string]any{
			"search":      "milk",
			"listNames":   "Work, Personal",
			"dueBy":       "2025-01-15",
			"minPriority": 4.0,
			"count":       5.0,
			"priority":    "none",
			"hasNotes":    "false",
		}),
		Parameters: store,
	})

	q := client.calls[0].Query
	want := map[string]string{
		"query":       "milk",
		"lists":       "Work,Personal",
		"completed":   "false",
		"dueBefore":   "2025-01-15T00:00:00.000Z",
		"priorityMin": "4",
		"priority":    "0",
		"sortBy":      "dueDate",
		"sortOrder":   "desc",
		"limit":       "5",
		"hasMailUrl":  "false",
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Errorf("%s: expected %q, got %q", k, v, got)
		}
	}
	for _, k := range []string{"isSubtask", "hasNotes", "priorityMax"} {
		if q.Has(k) {
			t.Errorf("expected %s to be omitted, got %q", k, q.Get(k))
		}
	}
}

func TestSearch_ReminderIDSingleObject(t *testing.T) {
	client := &fakeClient{respond: func(*request.OperationRequest) (any, error) {
		return map[string]any{"uuid": "r1", "priority": 9.0}, nil
	}}

	out := run(t, NewSearch(testDeps(client)), Invocation{
		Items: items(map[string]any{"reminderUUID": "r1", "query": "ignored"}),
	})
	if got := client.paths(t); !reflect.DeepEqual(got, []string{"GET /reminders/r1"}) {
		t.Errorf("unexpected request %v", got)
	}
	if len(out) != 1 || out[0].JSON["priorityLevel"] != "high" {
		t.Errorf("expected one enriched reminder, got %v", out)
	}
}

func TestWebhooks_CreateSparseFilter(t *testing.T) {
	client := &fakeClient{respond: func(*request.OperationRequest) (any, error) {
		return map[string]any{"id": "w1", "url": "https://hook"}, nil
	}}
	store := params.MapStore{Base: map[string]any{
		"filterOptions": map[string]any{"completed": "all", "priorityLevels": 9.0},
	}}

	out := run(t, NewWebhooks(testDeps(client)), Invocation{
		Items: items(map[string]any{
			"operation":  "create",
			"url":        "https://hook",
			"name":       "Hook",
			"lists":      "Work, Home",
			"textFilter": "urgent",
		}),
		Parameters: store,
	})

	body := client.calls[0].Body
	filter, ok := body["filter"].(reminders.WebhookFilter)
	if !ok {
		t.Fatalf("expected a filter in body %v", body)
	}
	want := reminders.WebhookFilter{ListNames: []string{"Work", "Home"}, PriorityLevels: []int{9}, HasQuery: "urgent"}
	if !reflect.DeepEqual(filter, want) {
		t.Errorf("expected filter %+v, got %+v", want, filter)
	}
	if _, enriched := out[0].JSON["priorityLevel"]; enriched {
		t.Errorf("webhook results must not be enriched: %v", out[0].JSON)
	}
}

func TestWebhooks_UpdateWithoutFilterAndDelete(t *testing.T) {
	client := &fakeClient{}
	n := NewWebhooks(testDeps(client))

	out := run(t, n, Invocation{Items: items(
		map[string]any{"operation": "update", "webhookId": "w1", "isActive": false},
		map[string]any{"operation": "delete", "webhookId": "w2"},
	)})

	if want := map[string]any{"isActive": false}; !reflect.DeepEqual(client.calls[0].Body, want) {
		t.Errorf("expected body %v, got %v", want, client.calls[0].Body)
	}
	if want := map[string]any{"success": true, "webhookId": "w2"}; !reflect.DeepEqual(out[1].JSON, want) {
		t.Errorf("expected %v, got %v", want, out[1].JSON)
	}
}

func TestWebhooks_CreateRequiresURLThenName(t *testing.T) {
	client := &fakeClient{}
	_, err := NewWebhooks(testDeps(client)).Execute(context.Background(), Invocation{
		Items: items(map[string]any{"operation": "create", "url": "https://hook"}),
	})
	var missing *domain.MissingRequiredFieldError
	if !errors.As(err, &missing) || missing.Field != "name" {
		t.Fatalf("expected missing name, got %v", err)
	}
	if len(client.calls) != 0 {
		t.Errorf("expected no requests, got %d", len(client.calls))
	}
}

func TestEmptyResultBecomesSuccessMarker(t *testing.T) {
	client := &fakeClient{}
	out := run(t, NewWebhooks(testDeps(client)), Invocation{
		Items: items(map[string]any{"operation": "test", "webhookId": "w1"}),
	})
	want := map[string]any{"success": true, "operation": "test"}
	if !reflect.DeepEqual(out[0].JSON, want) {
		t.Errorf("expected %v, got %v", want, out[0].JSON)
	}
}

func TestOperationFromHost(t *testing.T) {
	client := &fakeClient{respond: func(*request.OperationRequest) (any, error) { return []any{}, nil }}
	run(t, NewLists(testDeps(client)), Invocation{
		Items:      items(map[string]any{}),
		Parameters: params.MapStore{Base: map[string]any{"operation": "getAllLists"}},
	})
	if got := client.paths(t); !reflect.DeepEqual(got, []string{"GET /lists"}) {
		t.Errorf("unexpected requests %v", got)
	}
}

func TestScalarResultWrapped(t *testing.T) {
	client := &fakeClient{respond: func(*request.OperationRequest) (any, error) { return true, nil }}
	out := run(t, NewWebhooks(testDeps(client)), Invocation{
		Items: items(map[string]any{"operation": "test", "webhookId": "w1"}),
	})
	if want := map[string]any{"value": true}; !reflect.DeepEqual(out[0].JSON, want) {
		t.Errorf("expected %v, got %v", want, out[0].JSON)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(testDeps(&fakeClient{}))

	if len(r.All()) != 5 {
		t.Errorf("expected 5 nodes, got %d", len(r.All()))
	}
	for short, full := range map[string]string{"task": TasksNodeName, "ai": AIToolNodeName, SearchNodeName: SearchNodeName} {
		n, ok := r.Get(short)
		if !ok || n.Name() != full {
			t.Errorf("Get(%q): expected %s", short, full)
		}
	}
	if _, err := r.Execute(context.Background(), "nope", Invocation{}); err == nil {
		t.Error("expected error for an unregistered node")
	}
}

func TestSchemaJSON(t *testing.T) {
	s := NewSearch(testDeps(nil)).Schema().JSONSchema()
	props := s["properties"].(map[string]any)

	if _, ok := s["required"]; ok {
		t.Error("single-operation schema should not require the operation")
	}
	lists := props["lists"].(map[string]any)
	if _, ok := lists["anyOf"]; !ok {
		t.Errorf("expected union type for lists, got %v", lists)
	}
	limit := props["limit"].(map[string]any)
	if limit["minimum"] != 1.0 || limit["maximum"] != 1000.0 || limit["default"] != 50 {
		t.Errorf("unexpected limit schema %v", limit)
	}

	ai := NewAITool(testDeps(nil)).Schema().JSONSchema()
	if !reflect.DeepEqual(ai["required"], []string{"action"}) {
		t.Errorf("expected action to be required, got %v", ai["required"])
	}
}
