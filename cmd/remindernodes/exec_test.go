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

package main

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeItems(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []map[string]any
	}{
		{"empty", "  ", []map[string]any{{}}},
		{"single object", `{"action":"get_lists"}`, []map[string]any{{"action": "get_lists"}}},
		{"wrapped array", `[{"json":{"a":1}},{"b":2}]`, []map[string]any{{"a": 1.0}, {"b": 2.0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := decodeItems([]byte(tt.in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := make([]map[string]any, 0, len(items))
			for _, it := range items {
				got = append(got, it.JSON)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	if _, err := decodeItems([]byte("[{")); err == nil {
		t.Error("expected an error for malformed input")
	}
}

func TestReadItemsFromPipe(t *testing.T) {
	items, err := readItems(strings.NewReader(`[{"operation":"getAll"}]`), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].JSON["operation"] != "getAll" {
		t.Errorf("unexpected items %v", items)
	}
}

func TestParseParams(t *testing.T) {
	got, err := parseParams([]string{
		"operation=getAll",
		"includeCompleted=true",
		"toolConfig.defaultList=Inbox",
		"toolConfig.autoParseDates=false",
		"listName=Home & Garden",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"operation":        "getAll",
		"includeCompleted": true,
		"toolConfig":       map[string]any{"defaultList": "Inbox", "autoParseDates": false},
		"listName":         "Home & Garden",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if _, err := parseParams([]string{"novalue"}); err == nil {
		t.Error("expected an error for a pair without =")
	}
}

func TestWriteJSONCompactForPipes(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, map[string]any{"a": 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "{\"a\":1}\n" {
		t.Errorf("expected compact output, got %q", got)
	}
}
