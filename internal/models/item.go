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

package models

import (
	"encoding/json"
)

// PairedItem links an output item back to the input item that produced it.
type PairedItem struct {
	Item int `json:"item"`
}

// Item is one unit of work flowing through a node: a JSON object plus, on
// output, the index of the input item it came from.
type Item struct {
	JSON       map[string]any `json:"json"`
	PairedItem *PairedItem    `json:"pairedItem,omitempty"`
}

// NewItem wraps a JSON object as an output item paired with input index i.
func NewItem(json map[string]any, i int) Item {
	return Item{JSON: json, PairedItem: &PairedItem{Item: i}}
}

// UnmarshalJSON accepts both the wrapped form {"json": {...}} and a bare object,
// so programmatic callers can send plain payloads.
func (it *Item) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if isWrapped(probe) {
		type wrapped Item
		var w wrapped
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		*it = Item(w)
	} else {
		var bare map[string]any
		if err := json.Unmarshal(data, &bare); err != nil {
			return err
		}
		*it = Item{JSON: bare}
	}
	if it.JSON == nil {
		it.JSON = map[string]any{}
	}
	return nil
}

func isWrapped(probe map[string]json.RawMessage) bool {
	if _, ok := probe["json"]; !ok {
		return false
	}
	for k := range probe {
		if k != "json" && k != "pairedItem" {
			return false
		}
	}
	return true
}

// ItemsFromJSON wraps bare objects as input items.
func ItemsFromJSON(objects ...map[string]any) []Item {
	items := make([]Item, len(objects))
	for i, obj := range objects {
		items[i] = Item{JSON: obj}
	}
	return items
}
