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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"blockarchitech.com/remindernodes/internal/models"
	"blockarchitech.com/remindernodes/internal/nodes"
	"blockarchitech.com/remindernodes/internal/params"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	execInput          string
	execParams         []string
	execContinueOnFail bool
)

var execCmd = &cobra.Command{
	Use:   "exec <node>",
	Short: "Run a node over JSON input items",
	Long: `Run a node over JSON input items read from --input or stdin.

The input is an array of items, either bare objects or {"json": {...}}
wrappers, or a single object. --param sets node configuration; dotted keys
such as toolConfig.defaultList build nested objects and values are parsed
as JSON when possible.`,
	Example: `  remindernodes exec task --param operation=getAll --param includeCompleted=true
  echo '{"action":"get_lists"}' | remindernodes exec ai`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := readItems(cmd.InOrStdin(), execInput)
		if err != nil {
			return err
		}
		base, err := parseParams(execParams)
		if err != nil {
			return err
		}

		inv := nodes.Invocation{
			Items:          items,
			Parameters:     params.MapStore{Base: base},
			ContinueOnFail: execContinueOnFail || cfg.ContinueOnFail,
		}
		out, err := app.Execute(cmd.Context(), args[0], inv)
		if len(out) > 0 {
			if werr := writeJSON(cmd.OutOrStdout(), out); werr != nil {
				return werr
			}
		}
		return err
	},
}

// readItems loads input items from path, or stdin when path is "-" or empty
// and stdin is piped. With nothing to read the node runs once on an empty item.
func readItems(stdin io.Reader, path string) ([]models.Item, error) {
	var data []byte
	var err error
	switch {
	case path != "" && path != "-":
		data, err = os.ReadFile(path)
	case path == "-" || !isTerminal(stdin):
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return decodeItems(data)
}

func decodeItems(data []byte) ([]models.Item, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return []models.Item{models.NewItem(map[string]any{}, 0)}, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var items []models.Item
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return nil, fmt.Errorf("decode input items: %w", err)
		}
		return items, nil
	}
	var item models.Item
	if err := json.Unmarshal([]byte(trimmed), &item); err != nil {
		return nil, fmt.Errorf("decode input item: %w", err)
	}
	return []models.Item{item}, nil
}

// parseParams turns key=value pairs into node configuration.
func parseParams(pairs []string) (map[string]any, error) {
	out := map[string]any{}
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", pair)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		setPath(out, strings.Split(key, "."), value)
	}
	return out, nil
}

func setPath(m map[string]any, path []string, value any) {
	if len(path) == 1 {
		m[path[0]] = value
		return
	}
	inner, ok := m[path[0]].(map[string]any)
	if !ok {
		inner = map[string]any{}
		m[path[0]] = inner
	}
	setPath(inner, path[1:], value)
}

func init() {
	execCmd.Flags().StringVarP(&execInput, "input", "i", "", "File with input items (- for stdin)")
	execCmd.Flags().StringArrayVarP(&execParams, "param", "p", nil, "Node parameter as key=value (repeatable)")
	execCmd.Flags().BoolVar(&execContinueOnFail, "continue-on-fail", false, "Emit error items instead of stopping")
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
