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

package listsearch

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"blockarchitech.com/remindernodes/internal/request"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubClient struct {
	resp  any
	err   error
	calls int
}

func (s *stubClient) Do(_ context.Context, _ *request.OperationRequest) (any, error) {
	s.calls++
	return s.resp, s.err
}

var lists = []any{
	map[string]any{"title": "Shopping", "uuid": "A1"},
	map[string]any{"name": "Work Projects"},
	"Home & Garden",
}

func TestSearch_AllWhenFilterEmpty(t *testing.T) {
	p := NewProvider(&stubClient{resp: lists}, nil)

	got := p.Search(context.Background(), "")

	want := []SearchItem{
		{Name: "Shopping", Value: "Shopping", URL: "/lists/A1"},
		{Name: "Work Projects", Value: "Work Projects", URL: "/lists/Work%20Projects"},
		{Name: "Home & Garden", Value: "Home & Garden", URL: "/lists/Home%20&%20Garden"},
	}
	if !reflect.DeepEqual(got.Results, want) {
		t.Errorf("expected %v, got %v", want, got.Results)
	}
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	p := NewProvider(&stubClient{resp: lists}, nil)

	got := p.Search(context.Background(), "PROJ")

	if len(got.Results) != 1 || got.Results[0].Name != "Work Projects" {
		t.Errorf("expected only Work Projects, got %v", got.Results)
	}
}

func TestSearch_FailSoft(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	client := &stubClient{err: errors.New("connection refused")}
	p := NewProvider(client, zap.New(core))

	got := p.Search(context.Background(), "shop")

	if got.Results == nil || len(got.Results) != 0 {
		t.Errorf("expected an empty result set, got %v", got.Results)
	}
	if client.calls != 1 {
		t.Errorf("expected one fetch, got %d", client.calls)
	}
	if logs.Len() != 1 {
		t.Errorf("expected one warning, got %d", logs.Len())
	}
}

func TestSearch_NonArrayResponse(t *testing.T) {
	p := NewProvider(&stubClient{resp: map[string]any{"lists": lists}}, nil)
	if got := p.Search(context.Background(), ""); len(got.Results) != 0 {
		t.Errorf("expected no results, got %v", got.Results)
	}
}
