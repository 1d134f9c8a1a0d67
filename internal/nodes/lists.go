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

	"blockarchitech.com/remindernodes/internal/params"
	"blockarchitech.com/remindernodes/internal/request"
)

// ListsNodeName is the host name of the Lists module.
const ListsNodeName = "remindersList"

// NewLists builds the Lists module: enumerate lists and read one list's reminders.
func NewLists(deps Deps) Node {
	d := newDispatcher(ListsNodeName, "Read reminder lists and the reminders they contain", deps)
	d.schema = listsSchema
	d.enrich = true
	d.aliases = params.Aliases{
		"listName":         {"list", "listUUID"},
		"includeCompleted": {"completed"},
	}
	d.operations[request.OpGetAllLists] = getAllLists
	d.operations[request.OpGetListReminders] = getListReminders
	return d
}

func getAllLists(ctx context.Context, c *Call) (any, error) {
	resp, err := c.Do(ctx, request.GetAllLists())
	if err != nil {
		return nil, err
	}
	lists := asArray(resp)
	if !includeAIContext(c) {
		return lists, nil
	}

	samples := prefetchSamples(ctx, c)
	if len(samples) > contextSampleSize {
		samples = samples[:contextSampleSize]
	}
	for _, entry := range lists {
		if m, ok := entry.(map[string]any); ok {
			m["aiContext"] = map[string]any{
				"totalLists":      len(lists),
				"sampleReminders": samples,
			}
		}
	}
	return lists, nil
}

func getListReminders(ctx context.Context, c *Call) (any, error) {
	in := request.ListInput{
		ListName:         request.ListIdentifier(c.Value("listName", nil)),
		IncludeCompleted: c.Bool("includeCompleted", false),
	}
	req, err := request.GetListReminders(in)
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	items := asArray(resp)
	if !includeAIContext(c) {
		return items, nil
	}

	names := prefetchListNames(ctx, c)
	for _, entry := range items {
		if m, ok := entry.(map[string]any); ok {
			m["aiContext"] = map[string]any{
				"listName":       in.ListName,
				"totalReminders": len(items),
				"availableLists": names,
			}
		}
	}
	return items, nil
}

func includeAIContext(c *Call) bool {
	if c.Bool("includeAIContext", false) {
		return true
	}
	b, _ := params.Bool(c.Collection("aiContextOptions")["includeAIContext"])
	return b
}
